package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/existflow/credboard/internal/clip"
	"github.com/existflow/credboard/internal/fixture"
	"github.com/existflow/credboard/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend serves the sample fixture and points HOME at a temp dir
func newBackend(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CREDBOARD_LOG_FILE", filepath.Join(home, "credboard.log"))

	ctx := context.Background()
	srv, err := server.New(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	f, err := fixture.Load(fixture.SampleName)
	require.NoError(t, err)
	require.NoError(t, f.Seed(ctx, srv.Store()))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts.URL + "/api"
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSections(t *testing.T) {
	api := newBackend(t)

	out, _, err := execute(t, "sections", "--server", api)
	require.NoError(t, err)
	assert.Contains(t, out, "Schools")
	assert.Contains(t, out, "Hospitals")
	assert.Contains(t, out, "Banks")
	assert.Regexp(t, `2\s+Hospitals\s+FaHospital\s+2`, out)

	out, _, err = execute(t, "sections", "--server", api, "--search", "HOSP")
	require.NoError(t, err)
	assert.Contains(t, out, "Hospitals")
	assert.NotContains(t, out, "Schools")
}

func TestShow(t *testing.T) {
	api := newBackend(t)

	out, _, err := execute(t, "show", "2", "--server", api)
	require.NoError(t, err)
	assert.Contains(t, out, "📁 Hospitals")
	assert.Contains(t, out, "*All")
	assert.Contains(t, out, "St. Mary Clinic (2)")
	assert.Contains(t, out, "Attachments (3)")
	assert.Contains(t, out, "******")
	assert.NotContains(t, out, "s3cret")

	out, _, err = execute(t, "show", "2", "--server", api, "--project", "2", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "*St. Mary Clinic (2)")
	assert.Contains(t, out, "s3cret")
	assert.Contains(t, out, "Credentials (1)")
	assert.NotContains(t, out, "Shared Drive")
}

func TestShow_Errors(t *testing.T) {
	api := newBackend(t)

	_, _, err := execute(t, "show", "abc", "--server", api)
	assert.ErrorContains(t, err, `invalid section id "abc"`)

	_, _, err = execute(t, "show", "99", "--server", api)
	assert.ErrorContains(t, err, "section 99 not found")

	_, _, err = execute(t, "show", "1", "--server", api, "--project", "x")
	assert.ErrorContains(t, err, "invalid project selection")
}

func TestCopyProject_PipedStdout(t *testing.T) {
	api := newBackend(t)

	out, _, err := execute(t, "copy", "project", "1", "1", "--server", api)
	require.NoError(t, err)
	assert.Contains(t, out, "Project: Greenfield Academy\n\n"+
		"Attachments for Greenfield Academy:\n"+
		"Attachment1: https://files.example.com/greenfield/contract.pdf\n"+
		"Attachment1 Type: PDF\n")
	assert.Contains(t, out, "--- Category2 ---\nCategory: Email")

	_, _, err = execute(t, "copy", "project", "1", "All", "--server", api)
	assert.ErrorContains(t, err, "Please select a specific project to copy credentials!")
}

func TestCopy_ToClipboard(t *testing.T) {
	api := newBackend(t)

	board := &clip.Memory{}
	oldWriter, oldTerminal := clipboardWriter, isTerminal
	clipboardWriter = board
	isTerminal = func(io.Writer) bool { return true }
	defer func() { clipboardWriter, isTerminal = oldWriter, oldTerminal }()

	out, _, err := execute(t, "copy", "credential", "2", "3", "--no-attachments", "--server", api)
	require.NoError(t, err)
	assert.Equal(t, "✓ Copied credentials without attachments for St. Mary Clinic\n", out)
	assert.Equal(t, "Project: St. Mary Clinic\n\nCategory: VPN\nURL: vpn.stmary.example.com\nUsername: ops\nPassword: s3cret\nNotes: Split tunnel only", board.Last())

	// --stdout wins over the clipboard
	out, _, err = execute(t, "copy", "section", "3", "--stdout", "--server", api)
	require.NoError(t, err)
	assert.Contains(t, out, "Section: Banks\n\nProject1 Name: Harbor Savings")
	assert.Equal(t, 1, board.Len())
}

func TestCopyCredential_NotFound(t *testing.T) {
	api := newBackend(t)

	_, _, err := execute(t, "copy", "credential", "1", "999", "--server", api)
	assert.ErrorContains(t, err, `credential 999 not found in section "Schools"`)
}

func TestSections_LogsClientBaseURL(t *testing.T) {
	api := newBackend(t)
	t.Setenv("CREDBOARD_LOG_LEVEL", "DEBUG")

	_, _, err := execute(t, "sections", "--server", api+"/")
	require.NoError(t, err)

	data, err := os.ReadFile(os.Getenv("CREDBOARD_LOG_FILE"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "API client ready")
	assert.Contains(t, string(data), "base_url="+api+" ")
}

func TestConfig_SavesChanges(t *testing.T) {
	api := newBackend(t)

	out, _, err := execute(t, "config", "--server", api, "--concurrency", "4", "--refresh-interval", "1m")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Config saved")
	assert.Contains(t, out, "concurrency: 4")
	assert.Contains(t, out, "refresh_interval: 1m0s")
	assert.Contains(t, out, "server_url: "+api)

	data, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".credboard", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "concurrency: 4")

	_, _, err = execute(t, "config", "--concurrency", "0")
	assert.ErrorContains(t, err, "concurrency must be at least 1")
}
