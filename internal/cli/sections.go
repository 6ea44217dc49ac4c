package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/credboard/internal/filter"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:     "sections",
	Aliases: []string{"ls"},
	Short:   "List sections",
	Long: `List every section with the number of credentials it holds.

Examples:
  credboard sections
  credboard sections --search school`,
	Args: cobra.NoArgs,
	RunE: runSections,
}

var sectionsSearch string

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsSearch, "search", "s", "", "Only show sections whose title contains this text")
}

func runSections(cmd *cobra.Command, args []string) error {
	view, err := newEngine(cfg).Load(cmd.Context())
	if err != nil {
		return err
	}
	warnFailures(cmd.ErrOrStderr(), view)

	sections := filter.Sections(view.Sections, sectionsSearch)
	out := cmd.OutOrStdout()
	if len(sections) == 0 {
		fmt.Fprintln(out, "No sections found.")
		return nil
	}

	fmt.Fprintf(out, "\n%-6s  %-30s  %-20s  %s\n", "ID", "SECTION", "ICON", "CREDENTIALS")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, s := range sections {
		fmt.Fprintf(out, "%-6d  %-30s  %-20s  %d\n", s.ID, s.Title, s.Icon, len(view.CredentialsFor(s.ID)))
	}
	fmt.Fprintln(out)
	return nil
}
