package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/jsonstore"
	"github.com/idilsaglam/tasks/internal/ui"
)

// progressStep is how far +/- move an item.
const progressStep = 0.1

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Description() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Description() }

// itemDelegate renders one item per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	s := it.item.Status()
	text := it.item.Description()
	if s == model.StatusComplete {
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s", t.StatusStyle(s).Render(t.Box(s)), text)
	if s == model.StatusUnderway {
		line += " " + t.Busy.Render(fmt.Sprintf("%d%%", it.item.Progress().Percent()))
	}
	if d, ok := it.item.Deadline(); ok {
		line += "  " + t.Muted.Render(d.Format(model.UserDateLayout))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type tuiModel struct {
	todos   *model.List
	list    list.Model
	changed bool

	// Inline add/edit share one text input.
	ti        textinput.Model
	adding    bool
	editing   bool
	editIndex int
	inputErr  string

	width, height int
}

func newTUIModel(l *model.List) tuiModel {
	lm := list.New(nil, itemDelegate{}, 76, 20)
	lm.SetShowHelp(true)
	lm.SetShowPagination(true)
	lm.SetShowStatusBar(true)
	// Filtering would make the cursor index differ from the list position.
	lm.SetFilteringEnabled(false)
	lm.Styles.Title = ui.Current().Title
	lm.Styles.HelpStyle = helpStyle
	lm.Styles.PaginationStyle = helpStyle
	lm.SetStatusBarItemName("item", "items")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/undo")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "progress")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
	lm.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	lm.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := tuiModel{todos: l, list: lm, ti: ti, width: 80, height: 24}
	m.refresh()
	return m
}

// refresh mirrors the todo list into the bubbles list and header.
func (m *tuiModel) refresh() {
	items := make([]list.Item, 0, m.todos.Len())
	for _, it := range m.todos.All() {
		items = append(items, listItem{item: it})
	}
	m.list.SetItems(items)

	t := ui.Current()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		t.Title.Render("Todos"),
		t.Success.Render(t.BoxComplete), m.todos.Count(model.StatusComplete),
		t.Busy.Render(t.BoxUnderway), m.todos.Count(model.StatusUnderway),
		t.Pending.Render(t.BoxTodo), m.todos.Count(model.StatusTodo),
		ui.ProgressBar(m.todos.Completion(), 12),
	)
}

func (m *tuiModel) mutate(fn func(*model.Item)) {
	if err := m.todos.Update(m.list.Index(), fn); err != nil {
		return
	}
	m.changed = true
	m.refresh()
}

func (m *tuiModel) startInput(value, placeholder string) {
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.ti.Focus()
}

func (m *tuiModel) stopInput() {
	m.adding, m.editing = false, false
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		return m, nil
	}
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.mutate(func(it *model.Item) {
				if it.Status() == model.StatusComplete {
					it.SetProgress(model.ProgressZero)
				} else {
					it.SetProgress(model.ProgressOne)
				}
			})
			return m, nil
		case "+", "-":
			step := progressStep
			if km.String() == "-" {
				step = -step
			}
			m.mutate(func(it *model.Item) { it.SetProgress(stepProgress(it.Progress(), step)) })
			return m, nil
		case "d":
			if m.todos.Remove(m.list.Index()) {
				m.changed = true
				m.refresh()
				if n := m.todos.Len(); n > 0 && m.list.Index() >= n {
					m.list.Select(n - 1)
				}
			}
			return m, nil
		case "a":
			m.adding = true
			m.startInput("", "New item description...")
			return m, nil
		case "e":
			if it, ok := m.todos.At(m.list.Index()); ok {
				m.editing = true
				m.editIndex = m.list.Index()
				m.startInput(it.Description(), "Edit item description...")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m tuiModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.inputErr = "Description cannot be empty"
				return m, nil
			}
			if m.adding {
				m.todos.Add(model.NewItem(text))
				m.changed = true
				m.refresh()
				m.list.Select(m.todos.Len() - 1)
			} else if err := m.todos.Update(m.editIndex, func(it *model.Item) { it.SetDescription(text) }); err == nil {
				m.changed = true
				m.refresh()
			}
			m.stopInput()
			return m, nil
		case "esc":
			m.stopInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	listHeight := m.height - 4
	if m.adding || m.editing {
		listHeight = m.height - 7
	}
	m.list.SetSize(m.width-4, max(listHeight, 3))

	content := m.list.View()
	if m.adding || m.editing {
		t := ui.Current()
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + t.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString([]string{content})
}

// stepProgress moves p by delta, clamped to [0, 1] and rounded to a tenth
// so repeated steps land exactly on 0 and 1.
func stepProgress(p model.Progress, delta float64) model.Progress {
	v := p.Float() + delta
	v = float64(int(v*10+0.5)) / 10
	if v <= 0 {
		return model.ProgressZero
	}
	if v >= 1 {
		return model.ProgressOne
	}
	np, err := model.NewProgress(v)
	if err != nil {
		return p
	}
	return np
}

// runInteractiveList starts the Bubble Tea list and persists changes when quitting.
func runInteractiveList(l *model.List, opts ...tea.ProgramOption) (*model.List, bool, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(newTUIModel(l), opts...)
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	fm, ok := final.(tuiModel)
	if !ok {
		return l, false, nil
	}
	return fm.todos, fm.changed, nil
}

func doTUI(opt Options) int {
	l, err := jsonstore.Load(opt.DBPath)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return exitError
	}
	l, changed, err := runInteractiveList(l)
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return exitError
	}
	if !changed {
		return exitOK
	}
	if err := jsonstore.Save(l, opt.DBPath); err != nil {
		ui.Fail("save: " + err.Error())
		return exitError
	}
	ui.OK("saved")
	return exitOK
}
