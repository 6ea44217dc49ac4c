package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/clip"
	"github.com/existflow/credboard/internal/filter"
	"github.com/existflow/credboard/internal/logger"
	"github.com/existflow/credboard/internal/model"
)

// Screen is the page being shown
type Screen int

const (
	ScreenSections Screen = iota
	ScreenDetail
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeHelp
)

const (
	keyHome           = "home"
	keyDetail         = "detail"
	defaultNoticeTime = 3 * time.Second
)

// Options wires the model to its collaborators
type Options struct {
	Engine          *aggregate.Engine
	Clipboard       clip.Writer
	NoticeTimeout   time.Duration
	MaskPasswords   bool
	RefreshInterval time.Duration // zero disables background refresh
}

// notice is a transient status-bar message
type notice struct {
	id    int
	text  string
	isErr bool
}

// Model is the main TUI model
type Model struct {
	engine    *aggregate.Engine
	tracker   *aggregate.Tracker
	clipboard clip.Writer
	log       *logger.Logger

	// Background refresh
	refresher   *aggregate.Refresher
	refreshChan chan *aggregate.View // Buffered; fed by the refresher callback

	// UI state
	width  int
	height int
	screen Screen
	mode   Mode

	// Listing screen
	home          *aggregate.View
	sections      []model.Section // home sections after search
	sectionCursor int
	search        textinput.Model
	searchTerm    string
	homeLoading   bool

	// Detail screen. section comes from the listing screen, not from the pass.
	section       model.Section
	detail        *aggregate.View
	detailLoading bool
	selection     filter.Selection
	projects      []model.Project
	result        filter.Result
	credCursor    int
	revealed      bool

	notice        notice
	noticeSeq     int
	noticeTimeout time.Duration
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	log := logger.WithFields(logger.F("component", "tui"))
	log.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Search for a section..."
	ti.CharLimit = 128
	ti.Width = 40

	m := Model{
		engine:        opts.Engine,
		tracker:       aggregate.NewTracker(),
		clipboard:     opts.Clipboard,
		log:           log,
		screen:        ScreenSections,
		mode:          ModeNormal,
		search:        ti,
		homeLoading:   true,
		selection:     filter.All(),
		revealed:      !opts.MaskPasswords,
		noticeTimeout: opts.NoticeTimeout,
	}
	if m.clipboard == nil {
		m.clipboard = clip.System{}
	}
	if m.noticeTimeout <= 0 {
		m.noticeTimeout = defaultNoticeTime
	}

	if opts.RefreshInterval > 0 {
		m.refreshChan = make(chan *aggregate.View, 1)
		m.refresher = aggregate.NewRefresher(opts.RefreshInterval, m.refreshLoad())
		refreshChan := m.refreshChan
		m.refresher.SetOnRefresh(func(v *aggregate.View) {
			// Non-blocking send; a newer view replaces an unread one
			select {
			case refreshChan <- v:
			default:
				select {
				case <-refreshChan:
				default:
				}
				select {
				case refreshChan <- v:
				default:
				}
			}
		})
	}

	return m
}

// Close stops background work and cancels in-flight passes
func (m Model) Close() {
	if m.refresher != nil {
		m.refresher.Stop()
	}
	m.tracker.CancelAll()
}

func (m *Model) currentSection() (model.Section, bool) {
	if m.sectionCursor < len(m.sections) {
		return m.sections[m.sectionCursor], true
	}
	return model.Section{}, false
}

func (m *Model) currentCredential() (model.Credential, bool) {
	if m.credCursor < len(m.result.Credentials) {
		return m.result.Credentials[m.credCursor], true
	}
	return model.Credential{}, false
}

// applySearch recomputes the visible section list
func (m *Model) applySearch() {
	if m.home == nil {
		m.sections = nil
		m.sectionCursor = 0
		return
	}
	m.sections = filter.Sections(m.home.Sections, m.searchTerm)
	m.sectionCursor = clamp(m.sectionCursor, len(m.sections))
}

// applySelection recomputes the detail panes from the current pass and
// project selection
func (m *Model) applySelection() {
	if m.detail == nil {
		m.projects = nil
		m.result = filter.Result{}
		m.credCursor = 0
		return
	}
	creds := m.detail.PlainCredentials(m.section.ID)
	m.projects = filter.Projects(creds)

	if id, ok := m.selection.ProjectID(); ok && !hasProject(m.projects, id) {
		m.selection = filter.All()
	}

	m.result = filter.Apply(creds, m.detail.Attachments, m.selection)
	m.credCursor = clamp(m.credCursor, len(m.result.Credentials))
}

func hasProject(projects []model.Project, id int64) bool {
	for _, p := range projects {
		if p.ID == id {
			return true
		}
	}
	return false
}
