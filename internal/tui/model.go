package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/filter"
	"todos/internal/service"
	"todos/internal/state"
)

// errorTimeout is how long an error stays on screen unless replaced.
const errorTimeout = 3 * time.Second

type focus int

const (
	focusList focus = iota
	focusInput
	focusEdit
)

// changedMsg is sent whenever the store reports a change.
type changedMsg struct{}

// opDoneMsg is sent when a store operation returns.
type opDoneMsg struct{ err error }

// addDoneMsg is sent when a create returns.
type addDoneMsg struct{ err error }

// errorTimeoutMsg asks to clear the error write seq if it is still current.
type errorTimeoutMsg struct{ seq uint64 }

type model struct {
	ctx     context.Context
	store   *state.Store
	changes chan struct{}

	input  textinput.Model
	focus  focus
	editID int
	cursor int
	width  int

	// draft holds the add text while the input is borrowed for an edit.
	draft string

	snap     state.Snapshot
	shownSeq uint64
}

func newModel(ctx context.Context, store *state.Store) model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "› "
	ti.CharLimit = 256

	changes := make(chan struct{}, 1)
	store.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	return model{
		ctx:     ctx,
		store:   store,
		changes: changes,
		input:   ti,
		snap:    store.Snapshot(),
	}
}

// waitForChange blocks until the store changes. Re-armed after every changedMsg.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.run(m.store.Load),
		waitForChange(m.changes),
	)
}

// run executes a store operation off the UI loop.
func (m model) run(op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: op(ctx)}
	}
}

func (m model) add(title string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		_, err := store.Add(ctx, title)
		return addDoneMsg{err: err}
	}
}

// refresh copies the store state and keeps the cursor in range.
func (m *model) refresh() {
	m.snap = m.store.Snapshot()
	if m.cursor >= len(m.snap.Visible) {
		m.cursor = len(m.snap.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// errorTimer schedules auto-dismissal for every new error write, including
// a repeat of the message already on screen.
func (m *model) errorTimer() tea.Cmd {
	if m.snap.Error == "" || m.snap.ErrorSeq == m.shownSeq {
		return nil
	}
	seq := m.snap.ErrorSeq
	m.shownSeq = seq
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg {
		return errorTimeoutMsg{seq: seq}
	})
}

func (m model) selected() (service.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Visible) {
		return service.Todo{}, false
	}
	t := m.snap.Visible[m.cursor]
	if m.snap.IsPending(t.ID) {
		return service.Todo{}, false
	}
	return t, true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case changedMsg:
		m.refresh()
		return m, tea.Batch(waitForChange(m.changes), m.errorTimer())

	case opDoneMsg:
		m.refresh()
		return m, m.errorTimer()

	case addDoneMsg:
		m.refresh()
		timer := m.errorTimer()
		if m.focus == focusEdit {
			// The input holds an edit; only the parked add text is affected.
			if msg.err == nil {
				m.draft = ""
			}
			return m, timer
		}
		if msg.err == nil {
			m.input.Reset()
		}
		if m.focus == focusInput {
			return m, tea.Batch(m.input.Focus(), timer)
		}
		return m, timer

	case errorTimeoutMsg:
		m.store.ExpireError(msg.seq)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.focus == focusEdit {
			m.endEdit()
		}
		m.focus = focusList
		m.input.Blur()
		return m, nil

	case "enter":
		if m.focus == focusEdit {
			id, title := m.editID, m.input.Value()
			m.endEdit()
			m.focus = focusList
			m.input.Blur()
			return m, m.run(func(ctx context.Context) error {
				return m.store.Rename(ctx, id, title)
			})
		}
		if m.snap.Submitting {
			return m, nil
		}
		m.snap.Submitting = true
		return m, m.add(m.input.Value())
	}

	// Input is disabled while a create is in flight.
	if m.focus == focusInput && m.snap.Submitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.snap.Visible)-1 {
			m.cursor++
		}

	case "i", "n":
		m.focus = focusInput
		return m, m.input.Focus()

	case "e", "enter":
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.focus = focusEdit
		m.editID = t.ID
		m.draft = m.input.Value()
		m.input.SetValue(t.Title)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case " ", "x":
		if t, ok := m.selected(); ok {
			return m, m.run(func(ctx context.Context) error {
				return m.store.Toggle(ctx, t.ID)
			})
		}

	case "d", "delete":
		if t, ok := m.selected(); ok {
			return m, m.run(func(ctx context.Context) error {
				return m.store.Delete(ctx, t.ID)
			})
		}

	case "a":
		if len(m.snap.Todos) > 0 {
			return m, m.run(m.store.ToggleAll)
		}

	case "c":
		if m.snap.CompletedCount() > 0 {
			return m, m.run(m.store.ClearCompleted)
		}

	case "f", "tab":
		m.store.SetFilter(m.snap.Filter.Next())
		m.refresh()

	case "1", "2", "3":
		m.store.SetFilter(filter.Modes[msg.String()[0]-'1'])
		m.refresh()

	case "r":
		return m, m.run(m.store.Load)

	case "esc":
		m.store.DismissError()
		m.refresh()
	}
	return m, nil
}

// endEdit leaves edit mode and gives the input back to the add text.
func (m *model) endEdit() {
	m.editID = 0
	m.input.SetValue(m.draft)
	m.draft = ""
}
