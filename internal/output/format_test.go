package output

import (
	"bytes"
	"testing"

	"todos/internal/filter"
	"todos/internal/service"
	"todos/internal/testutil"
)

func sampleTodos() []service.Todo {
	return []service.Todo{
		{ID: 11, Title: "Buy milk", Completed: false},
		{ID: 12, Title: "Walk\nthe dog", Completed: true},
		{ID: 13, Title: "  ", Completed: false},
	}
}

func TestFormatList_All(t *testing.T) {
	var buf bytes.Buffer
	FormatList(&buf, sampleTodos(), filter.All)
	FormatFooter(&buf, 2)
	testutil.Golden(t, "list_all", buf.String())
}

func TestFormatList_CompletedKeepsRowNumbers(t *testing.T) {
	var buf bytes.Buffer
	FormatList(&buf, sampleTodos(), filter.Completed)
	testutil.Golden(t, "list_completed", buf.String())
}

func TestItemsLeft(t *testing.T) {
	if got := ItemsLeft(1); got != "1 item left" {
		t.Errorf("expected singular, got %q", got)
	}
	if got := ItemsLeft(0); got != "0 items left" {
		t.Errorf("expected plural, got %q", got)
	}
}
