package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/credboard/internal/export"
	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/logger"
)

// Init starts the first listing pass
func (m Model) Init() tea.Cmd {
	m, load := m.loadHome()
	return tea.Batch(load, m.waitForRefresh())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case homeLoadedMsg:
		return m.handleHomeLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case refreshMsg:
		return m.handleRefresh(msg)

	case noticeExpiredMsg:
		if msg.id == m.notice.id {
			m.notice = notice{}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}

		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		if m.screen == ScreenDetail {
			return m.handleDetailKeys(msg)
		}
		return m.handleSectionKeys(msg)
	}

	return m, nil
}

func (m Model) handleHomeLoaded(msg homeLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.IsCurrent(keyHome, msg.gen) {
		m.log.Debug("Dropping stale listing pass", logger.F("generation", msg.gen))
		return m, nil
	}
	m.homeLoading = false

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		cmd := m.setNotice("Failed to load sections", true)
		return m, cmd
	}

	m.home = msg.view
	m.applySearch()
	if len(msg.view.Failures) > 0 {
		cmd := m.setNotice(export.Notice(msg.view.Failures[0]), true)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.IsCurrent(keyDetail, msg.gen) || msg.sectionID != m.section.ID {
		m.log.Debug("Dropping stale detail pass", logger.F("generation", msg.gen))
		return m, nil
	}
	m.detailLoading = false

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		cmd := m.setNotice(export.Notice(msg.err), true)
		return m, cmd
	}

	m.detail = msg.view
	m.applySelection()
	if len(msg.view.Failures) > 0 {
		cmd := m.setNotice(export.Notice(msg.view.Failures[0]), true)
		return m, cmd
	}
	return m, nil
}

// handleRefresh accepts a background view and, on the detail screen, reloads
// the open section against the refreshed cache
func (m Model) handleRefresh(msg refreshMsg) (tea.Model, tea.Cmd) {
	next := m.waitForRefresh()
	if msg.view == nil || !m.tracker.IsCurrent(keyHome, msg.view.Generation) {
		return m, next
	}

	m.home = msg.view
	m.applySearch()

	if m.screen == ScreenDetail {
		var load tea.Cmd
		m, load = m.loadDetail()
		return m, tea.Batch(next, load)
	}
	return m, next
}

// handleSectionKeys handles keys on the listing screen
func (m Model) handleSectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.sectionCursor > 0 {
			m.sectionCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.sectionCursor < len(m.sections)-1 {
			m.sectionCursor++
		}

	case key.Matches(msg, keys.GoTop):
		m.sectionCursor = 0

	case key.Matches(msg, keys.GoBottom):
		m.sectionCursor = clamp(len(m.sections)-1, len(m.sections))

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(m.searchTerm)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, keys.Escape):
		if m.searchTerm != "" {
			m.searchTerm = ""
			m.applySearch()
		}

	case key.Matches(msg, keys.Enter):
		return m.openSection()

	case key.Matches(msg, keys.Copy):
		cmd := m.copySection()
		return m, cmd

	case key.Matches(msg, keys.Refresh):
		if m.refresher != nil {
			m.refresher.Trigger()
			return m, nil
		}
		m.engine.Cache().Invalidate()
		return m.loadHome()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// handleDetailKeys handles keys on the detail screen
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		return m.closeSection(), nil

	case key.Matches(msg, keys.Up):
		if m.credCursor > 0 {
			m.credCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.credCursor < len(m.result.Credentials)-1 {
			m.credCursor++
		}

	case key.Matches(msg, keys.GoTop):
		m.credCursor = 0

	case key.Matches(msg, keys.GoBottom):
		m.credCursor = clamp(len(m.result.Credentials)-1, len(m.result.Credentials))

	case key.Matches(msg, keys.NextProj):
		m.selection = filter.Next(m.selection, m.projects)
		m.credCursor = 0
		m.applySelection()

	case key.Matches(msg, keys.PrevProj):
		m.selection = filter.Prev(m.selection, m.projects)
		m.credCursor = 0
		m.applySelection()

	case key.Matches(msg, keys.Reveal):
		m.revealed = !m.revealed

	case key.Matches(msg, keys.Copy):
		cmd := m.copyProject()
		return m, cmd

	case key.Matches(msg, keys.CopyCred):
		cmd := m.copyCredential(true)
		return m, cmd

	case key.Matches(msg, keys.CopyBare):
		cmd := m.copyCredential(false)
		return m, cmd

	case key.Matches(msg, keys.CopyUser):
		cmd := m.copyField("Username")
		return m, cmd

	case key.Matches(msg, keys.CopyPass):
		cmd := m.copyField("Password")
		return m, cmd

	case key.Matches(msg, keys.CopyURL):
		cmd := m.copyField("URL")
		return m, cmd

	case key.Matches(msg, keys.Refresh):
		m.engine.Cache().Invalidate()
		return m.loadDetail()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m Model) openSection() (tea.Model, tea.Cmd) {
	s, ok := m.currentSection()
	if !ok {
		return m, nil
	}

	m.screen = ScreenDetail
	m.section = s
	m.selection = filter.All()
	m.credCursor = 0
	m.detail = nil
	m.applySelection()

	m.log.Debug("Opening section", logger.F("section", s.ID))
	return m.loadDetail()
}

func (m Model) closeSection() Model {
	m.tracker.Abandon(keyDetail)
	m.screen = ScreenSections
	m.detail = nil
	m.detailLoading = false
	m.applySelection()
	return m
}

// updateSearch edits the live section search
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.search.Blur()
		m.searchTerm = ""
		m.applySearch()
		return m, nil

	case tea.KeyEnter:
		m.mode = ModeNormal
		m.search.Blur()
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		if msg.Type == tea.KeyUp && m.sectionCursor > 0 {
			m.sectionCursor--
		}
		if msg.Type == tea.KeyDown && m.sectionCursor < len(m.sections)-1 {
			m.sectionCursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filter as user types
	m.searchTerm = m.search.Value()
	m.applySearch()
	return m, cmd
}

// copySection copies the export of the section under the cursor
func (m *Model) copySection() tea.Cmd {
	s, ok := m.currentSection()
	if !ok || m.home == nil {
		return m.setNotice(export.Notice(export.ErrNoData), true)
	}

	text, err := export.SectionCopy(s.Title, m.home.CredentialsFor(s.ID))
	if err != nil {
		return m.setNotice(export.Notice(err), true)
	}
	return m.write(text, export.SectionCopied())
}

// copyProject copies the export of the selected project
func (m *Model) copyProject() tea.Cmd {
	if m.detail == nil {
		return m.setNotice(export.Notice(export.ErrNoData), true)
	}

	text, name, err := export.ProjectCopy(m.selection, m.detail.PlainCredentials(m.section.ID), m.detail.Attachments)
	if err != nil {
		return m.setNotice(export.Notice(err), true)
	}
	return m.write(text, export.ProjectCopied(name))
}

func (m *Model) copyCredential(withAttachments bool) tea.Cmd {
	c, ok := m.currentCredential()
	if !ok {
		return m.setNotice(export.Notice(export.ErrNoData), true)
	}

	text := export.FormatCredential(c, m.detail.Attachments[c.ProjectID], withAttachments)
	return m.write(text, export.CredentialCopied(c.ProjectName, withAttachments))
}

func (m *Model) copyField(field string) tea.Cmd {
	c, ok := m.currentCredential()
	if !ok {
		return m.setNotice(export.Notice(export.ErrNoData), true)
	}

	var value string
	switch field {
	case "Username":
		value = c.Username
	case "Password":
		value = c.Password
	case "URL":
		value = c.URL
	}
	return m.write(value, export.FieldCopied(field))
}

// write puts text on the clipboard and reports the outcome
func (m *Model) write(text, success string) tea.Cmd {
	if err := m.clipboard.Write(text); err != nil {
		m.log.Error("Clipboard write failed", logger.F("error", err))
		return m.setNotice("Failed to copy: "+err.Error(), true)
	}
	return m.setNotice(success, false)
}
