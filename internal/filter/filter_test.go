package filter

import (
	"testing"

	"todos/internal/service"
)

func sample() []service.Todo {
	return []service.Todo{
		{ID: 1, Title: "one", Completed: true},
		{ID: 2, Title: "two", Completed: false},
		{ID: 3, Title: "three", Completed: true},
	}
}

func ids(todos []service.Todo) []int {
	out := make([]int, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_Active(t *testing.T) {
	got := ids(Apply(sample(), Active))
	if !equalInts(got, []int{2}) {
		t.Errorf("expected [2], got %v", got)
	}
}

func TestApply_Completed(t *testing.T) {
	got := ids(Apply(sample(), Completed))
	if !equalInts(got, []int{1, 3}) {
		t.Errorf("expected [1 3], got %v", got)
	}
}

func TestApply_AllKeepsOrder(t *testing.T) {
	got := ids(Apply(sample(), All))
	if !equalInts(got, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	in := sample()
	_ = Apply(in, Active)
	if !equalInts(ids(in), []int{1, 2, 3}) {
		t.Errorf("input modified: %v", ids(in))
	}
}

func TestApply_Empty(t *testing.T) {
	if got := Apply(nil, Completed); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":           All,
		"all":        All,
		"Active":     Active,
		" completed": Completed,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseMode("done"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestMode_NextWraps(t *testing.T) {
	if All.Next() != Active || Active.Next() != Completed || Completed.Next() != All {
		t.Error("expected all -> active -> completed -> all")
	}
}
