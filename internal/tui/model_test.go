package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/filter"
	"todos/internal/state"
	"todos/internal/testutil"
)

const userID = 7

func newTestModel(t *testing.T, completed ...bool) (model, *testutil.FakeService) {
	t.Helper()
	fake := testutil.NewFakeService()
	for i, c := range completed {
		fake.AddTodo(userID, "todo "+string(rune('a'+i)), c)
	}
	store := state.New(fake, userID)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	fake.ResetCalls()

	m := newModel(context.Background(), store)
	m.refresh()
	return m, fake
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}
	return nm, cmd
}

// press sends a key and drops any returned command.
func press(t *testing.T, m model, k string) model {
	t.Helper()
	m, _ = update(t, m, key(k))
	return m
}

// pressRun sends a key that starts a store operation and feeds the result back.
func pressRun(t *testing.T, m model, k string) model {
	t.Helper()
	m, cmd := update(t, m, key(k))
	if cmd == nil {
		t.Fatalf("expected a command for key %q", k)
	}
	switch msg := cmd().(type) {
	case opDoneMsg, addDoneMsg:
		m, _ = update(t, m, msg)
	default:
		t.Fatalf("unexpected message %T for key %q", msg, k)
	}
	return m
}

func TestView_ShowsTodosAndFooter(t *testing.T) {
	m, _ := newTestModel(t, false, true)
	view := m.View()

	for _, want := range []string{"todo a", "todo b", "1 item left", "All", "Active", "Completed", "Clear completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestView_EmptyHidesFooter(t *testing.T) {
	m, _ := newTestModel(t)
	if strings.Contains(m.View(), "items left") {
		t.Errorf("expected no footer for empty collection:\n%s", m.View())
	}
}

func TestAddFromInput(t *testing.T) {
	m, fake := newTestModel(t)

	m = press(t, m, "i")
	if m.focus != focusInput {
		t.Fatal("expected input focus")
	}
	m.input.SetValue("Buy milk")
	m = pressRun(t, m, "enter")

	if len(fake.Todos()) != 1 {
		t.Fatalf("expected todo created on server, got %v", fake.Calls())
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared after success, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Errorf("expected new todo in view:\n%s", m.View())
	}
}

func TestAddBlankShowsError(t *testing.T) {
	m, fake := newTestModel(t)

	m = press(t, m, "i")
	m.input.SetValue("   ")
	m = pressRun(t, m, "enter")

	if len(fake.Calls()) != 0 {
		t.Errorf("expected no remote calls, got %v", fake.Calls())
	}
	if !strings.Contains(m.View(), state.MsgEmptyTitle) {
		t.Errorf("expected empty title error in view:\n%s", m.View())
	}
}

func TestAddFailureKeepsInput(t *testing.T) {
	m, fake := newTestModel(t)
	fake.CreateErr = testutil.ErrInjected

	m = press(t, m, "i")
	m.input.SetValue("keep me")
	m = pressRun(t, m, "enter")

	if m.input.Value() != "keep me" {
		t.Errorf("expected input kept after failure, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), state.MsgAdd) {
		t.Errorf("expected add error in view:\n%s", m.View())
	}
	if m.snap.Submitting {
		t.Error("expected submission guard released")
	}
}

func TestToggleSelected(t *testing.T) {
	m, fake := newTestModel(t, false, false)

	m = press(t, m, "j")
	m = pressRun(t, m, " ")

	if calls := fake.Calls(); len(calls) != 1 || calls[0] != "update 2" {
		t.Errorf("expected [update 2], got %v", calls)
	}
	if !m.snap.Todos[1].Completed {
		t.Error("expected second todo completed")
	}
}

func TestDeleteSelected(t *testing.T) {
	m, _ := newTestModel(t, false, false)

	m = pressRun(t, m, "d")
	if len(m.snap.Todos) != 1 || m.snap.Todos[0].ID != 2 {
		t.Errorf("expected only todo 2 left, got %+v", m.snap.Todos)
	}
}

func TestDeleteFailureShowsError(t *testing.T) {
	m, fake := newTestModel(t, false)
	fake.DeleteErr = testutil.ErrInjected

	m = pressRun(t, m, "d")
	if len(m.snap.Todos) != 1 {
		t.Error("expected todo kept after failed delete")
	}
	if !strings.Contains(m.View(), state.MsgDelete) {
		t.Errorf("expected delete error in view:\n%s", m.View())
	}
}

func TestEditSelected(t *testing.T) {
	m, _ := newTestModel(t, false)

	m = press(t, m, "e")
	if m.focus != focusEdit || m.input.Value() != "todo a" {
		t.Fatalf("expected edit mode with current title, got focus %v value %q", m.focus, m.input.Value())
	}
	m.input.SetValue("renamed")
	m = pressRun(t, m, "enter")

	if m.focus != focusList {
		t.Error("expected list focus after save")
	}
	if m.snap.Todos[0].Title != "renamed" {
		t.Errorf("expected renamed todo, got %+v", m.snap.Todos[0])
	}
}

func TestEditCancel(t *testing.T) {
	m, fake := newTestModel(t, false)

	m = press(t, m, "e")
	m.input.SetValue("discarded")
	m = press(t, m, "esc")

	if m.focus != focusList || m.input.Value() != "" {
		t.Errorf("expected edit cancelled, got focus %v value %q", m.focus, m.input.Value())
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("expected no calls, got %v", fake.Calls())
	}
}

func TestToggleAllAndClearCompleted(t *testing.T) {
	m, _ := newTestModel(t, false, true)

	m = pressRun(t, m, "a")
	if !m.snap.AllCompleted() {
		t.Fatalf("expected all completed, got %+v", m.snap.Todos)
	}

	m = pressRun(t, m, "c")
	if len(m.snap.Todos) != 0 {
		t.Errorf("expected empty collection, got %+v", m.snap.Todos)
	}
}

func TestFilterCycle(t *testing.T) {
	m, _ := newTestModel(t, false, true)

	m = press(t, m, "f")
	if m.snap.Filter != filter.Active {
		t.Fatalf("expected active filter, got %v", m.snap.Filter)
	}
	view := m.View()
	if !strings.Contains(view, "todo a") || strings.Contains(view, "todo b") {
		t.Errorf("expected only active todo visible:\n%s", view)
	}

	m = press(t, m, "3")
	if m.snap.Filter != filter.Completed {
		t.Errorf("expected completed filter, got %v", m.snap.Filter)
	}
}

func TestErrorDismissAndTimeout(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "i")
	m = pressRun(t, m, "enter")
	if m.snap.Error == "" {
		t.Fatal("expected error")
	}
	seq := m.snap.ErrorSeq

	m, _ = update(t, m, errorTimeoutMsg{seq: seq + 1})
	if m.snap.Error == "" {
		t.Error("a timeout for another write must not clear the error")
	}

	m, _ = update(t, m, errorTimeoutMsg{seq: seq})
	if m.snap.Error != "" {
		t.Errorf("expected error cleared by timeout, got %q", m.snap.Error)
	}

	m = pressRun(t, m, "enter")
	m = press(t, m, "esc")
	m = press(t, m, "esc")
	if m.snap.Error != "" {
		t.Errorf("expected error dismissed, got %q", m.snap.Error)
	}
}

func TestErrorTimerScheduledOnce(t *testing.T) {
	m, _ := newTestModel(t)
	m.store.DismissError()
	_, _ = m.store.Add(context.Background(), "")
	m.refresh()

	if cmd := m.errorTimer(); cmd == nil {
		t.Error("expected timer for new error")
	}
	if cmd := m.errorTimer(); cmd != nil {
		t.Error("expected no second timer for the same error")
	}
}

func TestRepeatedErrorGetsFullTimeout(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "i")
	m = pressRun(t, m, "enter")
	first := m.snap.ErrorSeq

	// The same failure again, before the first timer fires.
	m = pressRun(t, m, "enter")
	if m.snap.Error != state.MsgEmptyTitle || m.snap.ErrorSeq == first {
		t.Fatalf("expected a fresh write of %q, got %q seq %d", state.MsgEmptyTitle, m.snap.Error, m.snap.ErrorSeq)
	}

	m, _ = update(t, m, errorTimeoutMsg{seq: first})
	if m.snap.Error != state.MsgEmptyTitle {
		t.Errorf("the first timer must not clear the repeated error, got %q", m.snap.Error)
	}

	m, _ = update(t, m, errorTimeoutMsg{seq: m.snap.ErrorSeq})
	if m.snap.Error != "" {
		t.Errorf("expected repeated error cleared by its own timer, got %q", m.snap.Error)
	}
}

func TestAddSettlingDuringEditKeepsEditText(t *testing.T) {
	m, fake := newTestModel(t, false)

	m = press(t, m, "i")
	m.input.SetValue("buy milk")
	m, addCmd := update(t, m, key("enter"))
	if addCmd == nil {
		t.Fatal("expected an add command")
	}

	// Create still in flight: start editing the first todo.
	m = press(t, m, "esc")
	m = press(t, m, "e")
	if m.focus != focusEdit || m.input.Value() != "todo a" {
		t.Fatalf("expected edit of todo a, got focus %v value %q", m.focus, m.input.Value())
	}

	m, _ = update(t, m, addCmd())
	if m.focus != focusEdit {
		t.Errorf("expected edit focus kept, got %v", m.focus)
	}
	if m.input.Value() != "todo a" {
		t.Fatalf("expected edit text kept after create settled, got %q", m.input.Value())
	}

	m = pressRun(t, m, "enter")

	todos := fake.Todos()
	if len(todos) != 2 || todos[0].ID != 1 || todos[0].Title != "todo a" || todos[1].Title != "buy milk" {
		t.Errorf("expected todo a kept and buy milk created, got %+v", todos)
	}
	if fake.CountCalls("delete") != 0 {
		t.Errorf("expected no delete, got %v", fake.Calls())
	}
	if m.input.Value() != "" {
		t.Errorf("expected add text cleared after successful create, got %q", m.input.Value())
	}
}

func TestEditCancelRestoresAddText(t *testing.T) {
	m, fake := newTestModel(t, false)

	m = press(t, m, "i")
	m.input.SetValue("half typed")
	m = press(t, m, "esc")
	m = press(t, m, "e")
	m = press(t, m, "esc")

	if m.input.Value() != "half typed" {
		t.Errorf("expected add text restored, got %q", m.input.Value())
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("expected no calls, got %v", fake.Calls())
	}
}
