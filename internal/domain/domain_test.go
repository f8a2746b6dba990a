package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("t1", "  Buy milk ")
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if task.Title != "  Buy milk " {
		t.Fatalf("expected title kept as typed, got %q", task.Title)
	}
	if task.Completed {
		t.Fatal("expected new task to be pending")
	}
	if task.StatusLabel() != "Pending" {
		t.Fatalf("unexpected status label %q", task.StatusLabel())
	}
}

func TestNewTaskValidation(t *testing.T) {
	if _, err := NewTask(" ", "ok"); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := NewTask("t1", title); err != ErrInvalidTitle {
			t.Fatalf("expected ErrInvalidTitle for %q, got %v", title, err)
		}
	}
}

func TestTaskToggleIsInvolution(t *testing.T) {
	task, _ := NewTask("t1", "Walk the dog")
	task.ToggleComplete()
	if !task.Completed || task.StatusLabel() != "Completed" {
		t.Fatalf("expected completed task, got %#v", task)
	}
	task.ToggleComplete()
	if task.Completed {
		t.Fatal("expected second toggle to restore pending")
	}
}

func TestTaskRenameAllowsEmpty(t *testing.T) {
	task, _ := NewTask("t1", "Old")
	task.Rename("")
	if task.Title != "" || task.ID != "t1" {
		t.Fatalf("unexpected renamed task %#v", task)
	}
}

func TestFilter(t *testing.T) {
	fruits := []string{"coconut", "apple", "banana", "orange", "date", "grapes", "mango"}
	tests := []struct {
		name  string
		items []string
		query string
		want  []string
	}{
		{name: "empty query keeps list", items: fruits, query: "", want: fruits},
		{name: "case insensitive", items: []string{"Apple", "banana"}, query: "AP", want: []string{"Apple"}},
		{name: "substring keeps order", items: fruits, query: "an", want: []string{"banana", "orange", "mango"}},
		{name: "no match", items: fruits, query: "kiwi", want: []string{}},
		{name: "nil items", items: nil, query: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.items, tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterListVisibleTracksQuery(t *testing.T) {
	source := []string{"Apple", "banana", "grape"}
	list := NewFilterList(source)
	source[0] = "mutated"

	if diff := cmp.Diff([]string{"Apple", "banana", "grape"}, list.Visible()); diff != "" {
		t.Fatalf("expected items copied at construction (-want +got):\n%s", diff)
	}
	list.SetQuery("AP")
	if diff := cmp.Diff([]string{"Apple", "grape"}, list.Visible()); diff != "" {
		t.Fatalf("unexpected visible items (-want +got):\n%s", diff)
	}
	list.SetQuery("")
	if len(list.Visible()) != 3 {
		t.Fatalf("expected full list after clearing query, got %v", list.Visible())
	}
}

func TestSwitchFlip(t *testing.T) {
	var s Switch
	if s.On() || s.Label() != "OFF" {
		t.Fatal("expected switch to start off")
	}
	if !s.Flip() || s.Label() != "ON" {
		t.Fatal("expected first flip to turn on")
	}
	if s.Flip() || s.On() {
		t.Fatal("expected second flip to turn off")
	}
}
