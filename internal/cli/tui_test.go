package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tasks/internal/model"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m tuiModel, msgs ...tea.Msg) tuiModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(tuiModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestTUIToggleAndStep(t *testing.T) {
	l := model.NewList(model.NewItem("a"), model.NewItem("b"))
	m := newTUIModel(l)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if it, _ := l.At(0); it.Status() != model.StatusComplete {
		t.Fatalf("space: status = %s, want Complete", it.Status())
	}
	if !m.changed {
		t.Error("changed not set")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if it, _ := l.At(0); it.Status() != model.StatusTodo {
		t.Fatalf("second space: status = %s, want Todo", it.Status())
	}

	m.list.Select(1)
	m = send(t, m, keyRunes("+"), keyRunes("+"), keyRunes("+"))
	it, _ := l.At(1)
	if it.Status() != model.StatusUnderway || it.Progress().Percent() != 30 {
		t.Errorf("after +++: %s %d%%", it.Status(), it.Progress().Percent())
	}
	m = send(t, m, keyRunes("-"), keyRunes("-"), keyRunes("-"), keyRunes("-"))
	if it, _ := l.At(1); !it.Progress().IsZero() {
		t.Errorf("after ----: progress %v, want 0", it.Progress())
	}
	_ = m
}

func TestTUIAddEditDelete(t *testing.T) {
	l := model.NewList(model.NewItem("a"))
	m := newTUIModel(l)

	m = send(t, m, keyRunes("a"))
	if !m.adding {
		t.Fatal("a should start adding")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.inputErr == "" || l.Len() != 1 {
		t.Fatal("empty description should be rejected")
	}
	m = send(t, m, keyRunes("new task"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.adding || l.Len() != 2 {
		t.Fatalf("adding=%v len=%d", m.adding, l.Len())
	}
	if it, _ := l.At(1); it.Description() != "new task" {
		t.Errorf("added %q", it.Description())
	}
	if m.list.Index() != 1 {
		t.Errorf("cursor = %d, want the new item", m.list.Index())
	}

	m = send(t, m, keyRunes("e"), keyRunes("!"), tea.KeyMsg{Type: tea.KeyEnter})
	if it, _ := l.At(1); it.Description() != "new task!" {
		t.Errorf("edited %q", it.Description())
	}

	m = send(t, m, keyRunes("d"))
	if l.Len() != 1 {
		t.Fatalf("len after delete = %d", l.Len())
	}
	if m.list.Index() != 0 {
		t.Errorf("cursor = %d after deleting last item", m.list.Index())
	}

	m = send(t, m, keyRunes("a"), keyRunes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.adding || l.Len() != 1 {
		t.Errorf("esc should cancel add: adding=%v len=%d", m.adding, l.Len())
	}
}

func TestTUIQuitAndView(t *testing.T) {
	m := newTUIModel(model.NewList(model.NewItem("visible item")))
	if !strings.Contains(m.View(), "visible item") {
		t.Errorf("view missing item:\n%s", m.View())
	}
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStepProgress(t *testing.T) {
	tests := []struct {
		from, delta float64
		want        float64
	}{
		{0, 0.1, 0.1},
		{0.9, 0.1, 1},
		{1, 0.1, 1},
		{0, -0.1, 0},
		{0.2, 0.1, 0.3},
		{0.7, -0.1, 0.6},
	}
	for _, tt := range tests {
		p, _ := model.NewProgress(tt.from)
		if got := stepProgress(p, tt.delta).Float(); got != tt.want {
			t.Errorf("stepProgress(%v, %v) = %v, want %v", tt.from, tt.delta, got, tt.want)
		}
	}
}
