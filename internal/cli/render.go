package cli

import (
	"fmt"
	"time"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/ui"
)

const maxDescWidth = 80

// today is swapped in tests.
var today = func() model.Date { return model.DateOf(time.Now()) }

func doList(l *model.List, opt Options) int {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.BoxComplete), l.Count(model.StatusComplete),
		t.Busy.Render(t.BoxUnderway), l.Count(model.StatusUnderway),
		t.Pending.Render(t.BoxTodo), l.Count(model.StatusTodo),
		t.Accent.Render("Total"), l.Len(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(l.Completion(), 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(l)...)
	} else {
		lines = append(lines, flatLines(l, nil)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(lines)
	return exitOK
}

// flatLines renders items keeping their list positions as numbers. When
// keep is non-nil only matching items are shown.
func flatLines(l *model.List, keep func(model.Item) bool) []string {
	t := ui.Current()
	now := today()
	var out []string
	for i, it := range l.All() {
		if keep != nil && !keep(it) {
			continue
		}
		out = append(out, itemLine(t, i, it, now))
	}
	if len(out) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	return out
}

func itemLine(t ui.Theme, i int, it model.Item, now model.Date) string {
	s := it.Status()
	idx := fmt.Sprintf("%2d.", i+1)
	desc := it.Description()
	if len(desc) > maxDescWidth {
		desc = desc[:maxDescWidth-3] + "..."
	}
	line := fmt.Sprintf("%s %s %s", t.Muted.Render(idx), t.StatusStyle(s).Render(t.Box(s)), desc)
	if s == model.StatusUnderway {
		line += " " + t.Busy.Render(fmt.Sprintf("%d%%", it.Progress().Percent()))
	}
	if d, ok := it.Deadline(); ok {
		due := "due " + d.Format(model.UserDateLayout)
		style := t.Muted
		if s != model.StatusComplete && d.Before(now) {
			style = t.Error
			due += " (overdue)"
		}
		line += "  " + style.Render(due)
	}
	return line
}

func groupLines(l *model.List) []string {
	t := ui.Current()
	var lines []string
	for n, s := range []model.Status{model.StatusTodo, model.StatusUnderway, model.StatusComplete} {
		if n > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, t.Accent.Render(string(s)))
		if l.Count(s) == 0 {
			lines = append(lines, t.Muted.Render("(none)"))
			continue
		}
		lines = append(lines, flatLines(l, func(it model.Item) bool { return it.Status() == s })...)
	}
	return lines
}
