package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/clip"
	"github.com/existflow/credboard/internal/export"
	"github.com/existflow/credboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	sections []model.Section
	creds    map[int64][]model.Credential
	atts     map[int64][]model.Attachment
	attErr   map[int64]error
}

func (f *fakeSource) FetchSections(ctx context.Context) ([]model.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sections, ctx.Err()
}

func (f *fakeSource) FetchCredentials(ctx context.Context, sectionID int64) ([]model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds[sectionID], ctx.Err()
}

func (f *fakeSource) FetchAttachments(ctx context.Context, projectID int64) ([]model.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.attErr[projectID]; err != nil {
		return nil, err
	}
	return f.atts[projectID], ctx.Err()
}

type failingClipboard struct{}

func (failingClipboard) Write(string) error {
	return errors.New("no clipboard utility")
}

func newSource() *fakeSource {
	return &fakeSource{
		sections: []model.Section{
			{ID: 1, Title: "Schools", Icon: model.IconSchool},
			{ID: 2, Title: "Banks", Icon: "Unknown"},
		},
		creds: map[int64][]model.Credential{
			1: {
				{ID: 10, ProjectID: 5, ProjectName: "Acme", Category: "Portal", URL: "http://x", Username: "u", Password: "p", Notes: "n"},
				{ID: 11, ProjectID: 6, ProjectName: "Globex", Category: "Mail", URL: "http://g", Username: "g", Password: "q"},
			},
			2: {},
		},
		atts: map[int64][]model.Attachment{
			5: {{URL: "http://f", TypeName: "PDF", TypeIcon: model.IconFile}},
		},
		attErr: map[int64]error{},
	}
}

func newTestModel(t *testing.T, src *fakeSource, board clip.Writer) Model {
	t.Helper()
	m := NewModel(Options{
		Engine:        aggregate.New(src, aggregate.Options{}),
		Clipboard:     board,
		MaskPasswords: true,
	})
	t.Cleanup(m.Close)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// run executes a command synchronously and feeds its message back
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func loadedHome(t *testing.T, src *fakeSource, board clip.Writer) Model {
	t.Helper()
	m := newTestModel(t, src, board)
	m, cmd := m.loadHome()
	return run(t, m, cmd)
}

func openFirstSection(t *testing.T, src *fakeSource, board clip.Writer) Model {
	t.Helper()
	m := loadedHome(t, src, board)
	m, cmd := press(m, "enter")
	return run(t, m, cmd)
}

func TestHome_LoadsSections(t *testing.T) {
	m := loadedHome(t, newSource(), &clip.Memory{})

	assert.False(t, m.homeLoading)
	require.Len(t, m.sections, 2)
	view := m.View()
	assert.Contains(t, view, "🏫  Schools")
	assert.Contains(t, view, defaultSectionGlyph+"  Banks")
	assert.Contains(t, view, "2 credentials")
}

func TestHome_StalePassIsDropped(t *testing.T) {
	src := newSource()
	m := newTestModel(t, src, &clip.Memory{})

	m, first := m.loadHome()
	m, second := m.loadHome()

	m = run(t, m, second)
	require.NotNil(t, m.home)
	current := m.home

	// the superseded pass finishes late
	m = run(t, m, first)
	assert.Same(t, current, m.home)
}

func TestHome_Search(t *testing.T) {
	m := loadedHome(t, newSource(), &clip.Memory{})

	m, _ = press(m, "/")
	assert.Equal(t, ModeSearch, m.mode)
	for _, r := range "BAN" {
		m, _ = press(m, string(r))
	}
	require.Len(t, m.sections, 1)
	assert.Equal(t, "Banks", m.sections[0].Title)

	m, _ = press(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "BAN", m.searchTerm)

	m, _ = press(m, "esc")
	assert.Len(t, m.sections, 2)
}

func TestHome_CopySection(t *testing.T) {
	board := &clip.Memory{}
	m := loadedHome(t, newSource(), board)

	m, cmd := press(m, "c")
	assert.NotNil(t, cmd)
	assert.Contains(t, board.Last(), "Section: Schools\n\nProject1 Name: Acme")
	assert.Equal(t, export.SectionCopied(), m.notice.text)
	assert.False(t, m.notice.isErr)

	// Banks has no credentials
	m, _ = press(m, "down")
	m, _ = press(m, "c")
	assert.Equal(t, 1, board.Len())
	assert.Equal(t, "No credentials available to copy!", m.notice.text)
	assert.True(t, m.notice.isErr)
}

func TestHome_AttachmentFailureShowsNotice(t *testing.T) {
	src := newSource()
	src.attErr[6] = errors.New("down")

	m := loadedHome(t, src, &clip.Memory{})
	assert.Equal(t, "Failed to load attachments for project Globex", m.notice.text)
	// partial data stays visible
	assert.Len(t, m.home.CredentialsFor(1), 2)
}

func TestDetail_ProjectCopyNeedsSelection(t *testing.T) {
	board := &clip.Memory{}
	m := openFirstSection(t, newSource(), board)

	require.Equal(t, ScreenDetail, m.screen)
	assert.Equal(t, "Schools", m.section.Title)
	assert.Len(t, m.result.Credentials, 2)
	assert.Len(t, m.result.Attachments, 1)

	m, _ = press(m, "c")
	assert.Equal(t, "Please select a specific project to copy credentials!", m.notice.text)
	assert.Equal(t, 0, board.Len())

	m, _ = press(m, "]")
	id, ok := m.selection.ProjectID()
	require.True(t, ok)
	assert.Equal(t, int64(5), id)
	assert.Len(t, m.result.Credentials, 1)

	m, _ = press(m, "c")
	assert.Equal(t, "Credentials for Acme copied to clipboard!", m.notice.text)
	assert.True(t, strings.HasPrefix(board.Last(), "Project: Acme\n\nAttachments for Acme:\nAttachment1: http://f"))

	// cycling past the last project returns to All
	m, _ = press(m, "]")
	m, _ = press(m, "]")
	assert.True(t, m.selection.IsAll())
	m, _ = press(m, "[")
	id, _ = m.selection.ProjectID()
	assert.Equal(t, int64(6), id)
}

func TestDetail_CopyCredentialAndFields(t *testing.T) {
	board := &clip.Memory{}
	m := openFirstSection(t, newSource(), board)

	m, _ = press(m, "y")
	assert.Contains(t, board.Last(), "Attachments for Acme:")
	assert.Equal(t, "Copied credentials with attachments for Acme", m.notice.text)

	m, _ = press(m, "Y")
	assert.NotContains(t, board.Last(), "Attachments")
	assert.Equal(t, "Copied credentials without attachments for Acme", m.notice.text)

	m, _ = press(m, "p")
	assert.Equal(t, "p", board.Last())
	assert.Equal(t, "Password copied to clipboard!", m.notice.text)

	m, _ = press(m, "j")
	_, _ = press(m, "u")
	assert.Equal(t, "g", board.Last())
	_, _ = press(m, "o")
	assert.Equal(t, "http://g", board.Last())
}

func TestDetail_PasswordMasking(t *testing.T) {
	m := openFirstSection(t, newSource(), &clip.Memory{})

	assert.Contains(t, m.View(), maskedPassword)

	m, _ = press(m, "v")
	assert.True(t, m.revealed)
	assert.NotContains(t, m.View(), maskedPassword)
}

func TestDetail_ClipboardFailure(t *testing.T) {
	m := openFirstSection(t, newSource(), failingClipboard{})

	m, _ = press(m, "y")
	assert.True(t, m.notice.isErr)
	assert.Contains(t, m.notice.text, "no clipboard utility")
}

func TestDetail_BackDropsLateResult(t *testing.T) {
	m := loadedHome(t, newSource(), &clip.Memory{})

	m, load := press(m, "enter")
	require.Equal(t, ScreenDetail, m.screen)

	m, _ = press(m, "esc")
	assert.Equal(t, ScreenSections, m.screen)

	m = run(t, m, load)
	assert.Nil(t, m.detail)
	assert.Equal(t, ScreenSections, m.screen)
}

func TestDetail_RefreshRefetchesAttachments(t *testing.T) {
	src := newSource()
	m := openFirstSection(t, src, &clip.Memory{})

	src.mu.Lock()
	src.atts[5] = []model.Attachment{{URL: "http://new", TypeName: "PDF"}}
	src.mu.Unlock()

	m, cmd := press(m, "r")
	assert.True(t, m.detailLoading)
	m = run(t, m, cmd)
	assert.False(t, m.detailLoading)
	require.Len(t, m.result.Attachments, 1)
	assert.Equal(t, "http://new", m.result.Attachments[0].URL)
}

func TestHome_RefreshKeyTriggersBackgroundRefresh(t *testing.T) {
	src := newSource()
	m := NewModel(Options{
		Engine:          aggregate.New(src, aggregate.Options{}),
		Clipboard:       &clip.Memory{},
		RefreshInterval: time.Hour,
	})
	t.Cleanup(m.Close)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m, cmd := m.loadHome()
	m = run(t, m, cmd)
	require.Len(t, m.sections, 2)

	src.mu.Lock()
	src.sections = append(src.sections, model.Section{ID: 3, Title: "Hospitals", Icon: model.IconHospital})
	src.mu.Unlock()

	m, cmd = press(m, "r")
	assert.Nil(t, cmd)
	assert.True(t, m.refresher.IsPending())
	assert.Contains(t, m.View(), "Refreshing...")

	m = run(t, m, m.waitForRefresh())
	assert.False(t, m.refresher.IsPending())
	assert.NoError(t, m.refresher.LastError())
	require.Len(t, m.sections, 3)
	assert.Equal(t, "Hospitals", m.sections[2].Title)
}

func TestNotice_Expires(t *testing.T) {
	m := loadedHome(t, newSource(), &clip.Memory{})
	m, _ = press(m, "c")
	first := m.notice.id

	// a newer notice outlives the older timer
	m, _ = press(m, "c")
	next, _ := m.Update(noticeExpiredMsg{id: first})
	m = next.(Model)
	assert.NotEmpty(t, m.notice.text)

	next, _ = m.Update(noticeExpiredMsg{id: m.notice.id})
	m = next.(Model)
	assert.Empty(t, m.notice.text)
}

func TestRefreshMsg_StaleViewIgnored(t *testing.T) {
	m := loadedHome(t, newSource(), &clip.Memory{})
	current := m.home

	next, _ := m.Update(refreshMsg{view: &aggregate.View{Generation: 9999}})
	assert.Same(t, current, next.(Model).home)
}

func TestHelpMode(t *testing.T) {
	m := loadedHome(t, newSource(), &clip.Memory{})
	m, _ = press(m, "?")
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	m, _ = press(m, "x")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestGlyphFallbacks(t *testing.T) {
	assert.Equal(t, "🏦", sectionGlyph(model.IconBank))
	assert.Equal(t, defaultSectionGlyph, sectionGlyph("FaNope"))
	assert.Equal(t, defaultAttachmentGlyph, attachmentGlyph(""))

	for _, k := range model.IconKeys() {
		assert.NotEqual(t, defaultSectionGlyph, sectionGlyph(k), string(k))
		assert.NotEqual(t, defaultAttachmentGlyph, attachmentGlyph(k), string(k))
	}
}
