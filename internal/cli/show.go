package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <section-id>",
	Short: "Show the attachments and credentials of a section",
	Long: `Show a section's attachments and credentials, optionally narrowed to one project.

Examples:
  credboard show 1
  credboard show 1 --project 5
  credboard show 1 --reveal`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showProject string
	showReveal  bool
)

func init() {
	showCmd.Flags().StringVarP(&showProject, "project", "P", filter.AllLabel, "Project id, or All")
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "Print passwords in clear text")
}

func runShow(cmd *cobra.Command, args []string) error {
	sectionID, err := parseID("section", args[0])
	if err != nil {
		return err
	}
	sel, err := filter.ParseSelection(showProject)
	if err != nil {
		return err
	}

	section, view, err := loadSection(cmd.Context(), cfg, sectionID)
	if err != nil {
		return err
	}
	warnFailures(cmd.ErrOrStderr(), view)

	creds := view.PlainCredentials(section.ID)
	projects := filter.Projects(creds)
	res := filter.Apply(creds, view.Attachments, sel)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n📁 %s\n", section.Title)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	printProjects(out, projects, sel)
	printAttachments(out, res.Attachments)
	printCredentials(out, res.Credentials, showReveal || !cfg.MaskPasswords)
	fmt.Fprintln(out)
	return nil
}

func printProjects(out io.Writer, projects []model.Project, sel filter.Selection) {
	names := []string{marker(sel.IsAll()) + filter.AllLabel}
	selected, _ := sel.ProjectID()
	for _, p := range projects {
		names = append(names, fmt.Sprintf("%s%s (%d)", marker(!sel.IsAll() && p.ID == selected), p.Name, p.ID))
	}
	fmt.Fprintf(out, "Projects: %s\n", strings.Join(names, "  "))
}

func marker(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}

func printAttachments(out io.Writer, atts []model.Attachment) {
	fmt.Fprintf(out, "\nAttachments (%d)\n", len(atts))
	if len(atts) == 0 {
		fmt.Fprintln(out, "  No attachments")
		return
	}
	for _, a := range atts {
		fmt.Fprintf(out, "  %-12s  %s\n", a.TypeName, a.URL)
	}
}

func printCredentials(out io.Writer, creds []model.Credential, reveal bool) {
	fmt.Fprintf(out, "\nCredentials (%d)\n", len(creds))
	if len(creds) == 0 {
		fmt.Fprintln(out, "  No credentials")
		return
	}
	for _, c := range creds {
		password := c.Password
		if !reveal && password != "" {
			password = "******"
		}
		fmt.Fprintf(out, "\n  #%d  %s · %s\n", c.ID, c.Category, c.ProjectName)
		fmt.Fprintf(out, "    URL:       %s\n", c.URL)
		fmt.Fprintf(out, "    Username:  %s\n", c.Username)
		fmt.Fprintf(out, "    Password:  %s\n", password)
		if c.Notes != "" {
			fmt.Fprintf(out, "    Notes:     %s\n", c.Notes)
		}
	}
}
