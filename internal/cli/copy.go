package cli

import (
	"fmt"

	"github.com/existflow/credboard/internal/clip"
	"github.com/existflow/credboard/internal/export"
	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/logger"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy credentials to the clipboard",
	Long: `Copy a section, a project or a single credential as plain text.

When stdout is not a terminal, or with --stdout, the text is printed instead
of being written to the clipboard.`,
}

var copySectionCmd = &cobra.Command{
	Use:   "section <section-id>",
	Short: "Copy every credential of a section, grouped by project",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopySection,
}

var copyProjectCmd = &cobra.Command{
	Use:   "project <section-id> <project-id>",
	Short: "Copy one project's attachments and credentials",
	Long: `Copy one project's attachments and credentials.

Examples:
  credboard copy project 1 5
  credboard copy project 1 5 --stdout`,
	Args: cobra.ExactArgs(2),
	RunE: runCopyProject,
}

var copyCredentialCmd = &cobra.Command{
	Use:   "credential <section-id> <credential-id>",
	Short: "Copy a single credential",
	Args:  cobra.ExactArgs(2),
	RunE:  runCopyCredential,
}

var (
	copyStdout        bool
	copyNoAttachments bool
)

func init() {
	copyCmd.PersistentFlags().BoolVar(&copyStdout, "stdout", false, "Print instead of writing the clipboard")
	copyCredentialCmd.Flags().BoolVar(&copyNoAttachments, "no-attachments", false, "Leave out the project's attachments")

	copyCmd.AddCommand(copySectionCmd)
	copyCmd.AddCommand(copyProjectCmd)
	copyCmd.AddCommand(copyCredentialCmd)
}

func runCopySection(cmd *cobra.Command, args []string) error {
	sectionID, err := parseID("section", args[0])
	if err != nil {
		return err
	}

	section, view, err := loadSection(cmd.Context(), cfg, sectionID)
	if err != nil {
		return err
	}
	warnFailures(cmd.ErrOrStderr(), view)

	text, err := export.SectionCopy(section.Title, view.CredentialsFor(section.ID))
	if err != nil {
		return fmt.Errorf("%s: %w", export.Notice(err), err)
	}
	return deliver(cmd, text, export.SectionCopied())
}

func runCopyProject(cmd *cobra.Command, args []string) error {
	sectionID, err := parseID("section", args[0])
	if err != nil {
		return err
	}
	sel, err := filter.ParseSelection(args[1])
	if err != nil {
		return err
	}

	section, view, err := loadSection(cmd.Context(), cfg, sectionID)
	if err != nil {
		return err
	}
	warnFailures(cmd.ErrOrStderr(), view)

	text, name, err := export.ProjectCopy(sel, view.PlainCredentials(section.ID), view.Attachments)
	if err != nil {
		return fmt.Errorf("%s: %w", export.Notice(err), err)
	}
	return deliver(cmd, text, export.ProjectCopied(name))
}

func runCopyCredential(cmd *cobra.Command, args []string) error {
	sectionID, err := parseID("section", args[0])
	if err != nil {
		return err
	}
	credentialID, err := parseID("credential", args[1])
	if err != nil {
		return err
	}

	section, view, err := loadSection(cmd.Context(), cfg, sectionID)
	if err != nil {
		return err
	}
	warnFailures(cmd.ErrOrStderr(), view)

	for _, c := range view.CredentialsFor(section.ID) {
		if c.ID != credentialID {
			continue
		}
		withAttachments := !copyNoAttachments
		text := export.FormatCredential(c.Credential, c.Attachments, withAttachments)
		return deliver(cmd, text, export.CredentialCopied(c.ProjectName, withAttachments))
	}
	return fmt.Errorf("credential %d not found in section %q", credentialID, section.Title)
}

// deliver writes text to the clipboard, or to stdout when asked to or when
// stdout is piped
func deliver(cmd *cobra.Command, text, success string) error {
	out := cmd.OutOrStdout()
	if copyStdout || !isTerminal(out) {
		return clip.Stream{W: out}.Write(text)
	}

	if err := clipboardWriter.Write(text); err != nil {
		logger.Error("Clipboard write failed", logger.F("error", err))
		return fmt.Errorf("failed to copy (try --stdout): %w", err)
	}
	fmt.Fprintf(out, "✓ %s\n", success)
	return nil
}
