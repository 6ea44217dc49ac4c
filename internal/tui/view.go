package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var mainContent string
	switch {
	case m.mode == ModeHelp:
		mainContent = m.renderHelp()
	case m.screen == ScreenDetail:
		mainContent = m.renderDetail()
	default:
		mainContent = m.renderSections()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatusBar())
}

func (m Model) renderSections() string {
	width := m.width - 4
	var s string

	s += HeaderStyle.Render("Credentials") + "\n"
	s += SubtitleStyle.Render("Sections") + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(divider(width-2)) + "\n\n"

	if m.home == nil {
		if m.homeLoading {
			s += LoadingStyle.Render("  Loading sections...")
		} else {
			s += HelpStyle.Render("  No sections loaded. Press 'r' to retry.")
		}
		return ListStyle.Width(width).Height(m.height - 2).Render(s)
	}

	if len(m.sections) == 0 {
		if m.searchTerm != "" {
			s += HelpStyle.Render(fmt.Sprintf("  No section matches %q", m.searchTerm))
		} else {
			s += HelpStyle.Render("  No sections.")
		}
	}

	for i, sec := range m.sections {
		cursor := "  "
		style := ItemStyle
		if i == m.sectionCursor {
			cursor = "❯ "
			style = ItemSelectedStyle
		}

		creds := m.home.CredentialsFor(sec.ID)
		count := CountStyle.Render(fmt.Sprintf("%d credentials", len(creds)))
		line := fmt.Sprintf("%s%s  %-*s", cursor, sectionGlyph(sec.Icon), 30, truncate(sec.Title, 30))
		s += style.Render(line) + " " + count + "\n"
	}

	return ListStyle.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) renderDetail() string {
	width := m.width - 4
	var s string

	header := fmt.Sprintf("%s  %s", sectionGlyph(m.section.Icon), m.section.Title)
	s += HeaderStyle.Render(header) + "\n"
	s += m.renderProjectTabs() + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(divider(width-2)) + "\n"

	if m.detail == nil {
		if m.detailLoading {
			s += LoadingStyle.Render("  Loading credentials...")
		}
		return ListStyle.Width(width).Height(m.height - 2).Render(s)
	}

	s += m.renderAttachments(width) + "\n"
	s += m.renderCredentials(width)

	return ListStyle.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) renderProjectTabs() string {
	tabs := []string{m.renderTab(filter.AllLabel, m.selection.IsAll())}
	selected, _ := m.selection.ProjectID()
	for _, p := range m.projects {
		tabs = append(tabs, m.renderTab(p.Name, !m.selection.IsAll() && p.ID == selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTab(label string, active bool) string {
	if active {
		return TabActiveStyle.Render(label)
	}
	return TabStyle.Render(label)
}

func (m Model) renderAttachments(width int) string {
	var s string
	s += PaneTitleStyle.Render(fmt.Sprintf("Attachments (%d)", len(m.result.Attachments))) + "\n"

	if len(m.result.Attachments) == 0 {
		s += HelpStyle.Render("No attachments")
	}
	for i, a := range m.result.Attachments {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("%s %-10s %s", attachmentGlyph(a.TypeIcon), truncate(a.TypeName, 10), truncate(a.URL, width-20))
	}

	return PaneStyle.Width(width - 2).Render(s)
}

func (m Model) renderCredentials(width int) string {
	var s string
	s += PaneTitleStyle.Render(fmt.Sprintf("Credentials (%d)", len(m.result.Credentials))) + "\n"

	if len(m.result.Credentials) == 0 {
		s += HelpStyle.Render("No credentials")
	}
	for i, c := range m.result.Credentials {
		if i > 0 {
			s += "\n"
		}
		s += m.renderCredential(c, i == m.credCursor, width)
	}

	return PaneStyle.Width(width - 2).Render(s)
}

func (m Model) renderCredential(c model.Credential, selected bool, width int) string {
	cursor := "  "
	titleStyle := ItemStyle
	if selected {
		cursor = "❯ "
		titleStyle = ItemSelectedStyle
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s%s · %s", cursor, c.Category, c.ProjectName)),
		field("URL", truncate(c.URL, width-20)),
		field("Username", c.Username),
		field("Password", mask(c.Password, m.revealed)),
	}
	if c.Notes != "" {
		lines = append(lines, field("Notes", truncate(c.Notes, width-20)))
	}
	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return "    " + LabelStyle.Render(label) + value
}

func (m Model) renderStatusBar() string {
	// When searching, show inline search input (like vim)
	if m.mode == ModeSearch {
		matches := fmt.Sprintf(" [%d]", len(m.sections))
		return StatusBarStyle.Width(m.width).Render("/" + m.search.View() + matches)
	}

	var help string
	switch m.screen {
	case ScreenDetail:
		help = "[/]:project  y/Y:copy cred  u/p/o:copy field  c:copy project  v:reveal  esc:back  ?:help"
	default:
		help = "/:search  enter:open  c:copy section  r:refresh  ?:help  q:quit"
		if m.searchTerm != "" {
			help = fmt.Sprintf("/%s  [%d matches]  Esc:clear", m.searchTerm, len(m.sections))
		}
	}

	if m.notice.text != "" {
		help = NoticeStyle(m.notice.isErr).Render(m.notice.text)
	}

	// Loading status (right aligned)
	status := ""
	if (m.screen == ScreenSections && m.homeLoading) || (m.screen == ScreenDetail && m.detailLoading) {
		status = "Loading..."
	} else if m.refresher != nil && m.refresher.IsPending() {
		status = "Refreshing..."
	} else if m.refresher != nil && m.refresher.LastError() != nil {
		status = "Refresh Error!"
	}

	if status != "" {
		avail := m.width - lipgloss.Width(help) - len(status) - 2
		if avail > 0 {
			help += strings.Repeat(" ", avail) + status
		} else {
			help += " " + status
		}
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	help := `
╭──── Keyboard Shortcuts ─────╮
│                             │
│  Sections                   │
│  ────────                   │
│  j/↓ k/↑  Move              │
│  /        Search            │
│  Enter    Open section      │
│  c        Copy section      │
│  r        Refresh           │
│                             │
│  Section                    │
│  ───────                    │
│  [ ] f    Cycle project     │
│  c        Copy project      │
│  y / Y    Copy credential   │
│           (with / without   │
│           attachments)      │
│  u p o    Copy user/pass/url│
│  v        Show passwords    │
│  Esc      Back              │
│                             │
│  Other                      │
│  ─────                      │
│  ?        Toggle help       │
│  q        Quit              │
│                             │
╰─────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
