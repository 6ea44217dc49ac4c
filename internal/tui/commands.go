package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/credboard/internal/aggregate"
	"github.com/existflow/credboard/internal/logger"
)

// homeLoadedMsg carries the result of a listing pass
type homeLoadedMsg struct {
	gen  uint64
	view *aggregate.View
	err  error
}

// detailLoadedMsg carries the result of a detail pass
type detailLoadedMsg struct {
	gen       uint64
	sectionID int64
	view      *aggregate.View
	err       error
}

// refreshMsg is sent when the background refresher produced a view
type refreshMsg struct {
	view *aggregate.View
}

// noticeExpiredMsg dismisses the notice with the given id
type noticeExpiredMsg struct {
	id int
}

// loadHome starts a pass over every section, superseding any running one
func (m Model) loadHome() (Model, tea.Cmd) {
	ctx, gen := m.tracker.Begin(context.Background(), keyHome)
	engine, tracker := m.engine, m.tracker
	m.homeLoading = true

	return m, func() tea.Msg {
		defer tracker.Finish(keyHome, gen)
		view, err := engine.Load(ctx)
		return homeLoadedMsg{gen: gen, view: view, err: err}
	}
}

// loadDetail starts a pass over the open section
func (m Model) loadDetail() (Model, tea.Cmd) {
	ctx, gen := m.tracker.Begin(context.Background(), keyDetail)
	engine, tracker, section := m.engine, m.tracker, m.section
	m.detailLoading = true

	return m, func() tea.Msg {
		defer tracker.Finish(keyDetail, gen)
		view, err := engine.Section(ctx, section)
		return detailLoadedMsg{gen: gen, sectionID: section.ID, view: view, err: err}
	}
}

// refreshLoad is the refresher's load: drop cached attachments, then run a
// tracked listing pass
func (m Model) refreshLoad() aggregate.LoadFunc {
	engine, tracker := m.engine, m.tracker
	return func(ctx context.Context) (*aggregate.View, error) {
		engine.Cache().Invalidate()
		ctx, gen := tracker.Begin(ctx, keyHome)
		defer tracker.Finish(keyHome, gen)
		view, err := engine.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("background refresh: %w", err)
		}
		return view, nil
	}
}

// waitForRefresh listens for views from the background refresher
func (m Model) waitForRefresh() tea.Cmd {
	if m.refreshChan == nil {
		return nil
	}
	ch := m.refreshChan
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return refreshMsg{view: v}
	}
}

// setNotice shows a message and schedules its dismissal
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice = notice{id: m.noticeSeq, text: text, isErr: isErr}
	if isErr {
		m.log.Warn("Notice", logger.F("text", text))
	}

	id := m.noticeSeq
	return tea.Tick(m.noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}
