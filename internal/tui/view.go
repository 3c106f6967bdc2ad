package tui

import (
	"strings"

	"todos/internal/filter"
	"todos/internal/output"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n\n")

	if m.focus == focusEdit {
		b.WriteString("edit ")
	}
	b.WriteString(m.input.View())
	if m.snap.Submitting {
		b.WriteString(helpStyle.Render("  adding…"))
	}
	b.WriteString("\n\n")

	switch {
	case !m.snap.Loaded && m.snap.Error == "":
		b.WriteString(helpStyle.Render("loading…"))
		b.WriteString("\n")
	case len(m.snap.Todos) > 0:
		m.writeList(&b)
		b.WriteString("\n")
		m.writeFooter(&b)
	}

	if m.snap.Error != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.snap.Error))
		b.WriteString(helpStyle.Render("  (esc to dismiss)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m model) writeList(b *strings.Builder) {
	for i, t := range m.snap.Visible {
		prefix := "  "
		if i == m.cursor && m.focus == focusList {
			prefix = cursorStyle.Render("> ")
		}

		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		title := output.NormalizeTitle(t.Title)

		line := mark + " " + title
		switch {
		case m.snap.IsPending(t.ID):
			line = pendingStyle.Render("[…] " + title)
		case t.Completed:
			line = doneStyle.Render(line)
		}

		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m model) writeFooter(b *strings.Builder) {
	b.WriteString(output.ItemsLeft(m.snap.ActiveCount()))
	b.WriteString("   ")
	for i, mode := range filter.Modes {
		if i > 0 {
			b.WriteString(" ")
		}
		name := filterLabel(mode)
		if mode == m.snap.Filter {
			name = selectedStyle.Render(name)
		}
		b.WriteString(name)
	}
	if m.snap.CompletedCount() > 0 {
		b.WriteString("   Clear completed")
	}
	b.WriteString("\n")
}

func filterLabel(mode filter.Mode) string {
	switch mode {
	case filter.Active:
		return "Active"
	case filter.Completed:
		return "Completed"
	default:
		return "All"
	}
}

func (m model) helpLine() string {
	switch m.focus {
	case focusInput:
		return "enter: add  esc: back to list  ctrl+c: quit"
	case focusEdit:
		return "enter: save (empty deletes)  esc: cancel"
	}
	return "i: new  space: toggle  e: edit  d: delete  a: toggle all  c: clear completed  f: filter  r: reload  q: quit"
}
