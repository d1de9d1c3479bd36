package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/jsonstore"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Options tune behavior from root flags and config.
type Options struct {
	DBPath string      // todo file; defaults to jsonstore.DefaultPath
	Group  bool        // list grouped by status
	Logger *log.Logger // diagnostics; nil discards
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1 // load/save failure
	exitUsage = 2 // bad usage or a rejected item/index
)

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return exitUsage
	}
	if opt.DBPath == "" {
		opt.DBPath = jsonstore.DefaultPath
	}
	if opt.Logger == nil {
		opt.Logger = logging.Discard()
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return exitOK

	case "list", "ls":
		if len(a) != 0 {
			ui.Fail("usage: todo list")
			return exitUsage
		}
		return withList(opt, false, func(l *model.List) int { return doList(l, opt) })

	case "add":
		if len(a) == 0 || len(a) > 3 {
			ui.Fail("usage: todo add <description> [date] [progress]")
			return exitUsage
		}
		return doAdd(opt, a)

	case "remove", "rm":
		idx, code := parseIndices(cmd, a)
		if code != exitOK {
			return code
		}
		return withList(opt, true, func(l *model.List) int { return doRemove(l, idx, opt.Logger) })

	case "done", "undo":
		idx, code := parseIndices(cmd, a)
		if code != exitOK {
			return code
		}
		p := model.ProgressOne
		if cmd == "undo" {
			p = model.ProgressZero
		}
		return withList(opt, true, func(l *model.List) int { return doSetProgress(l, cmd, idx, p, opt.Logger) })

	case "update":
		if len(a) < 3 || len(a)%2 == 0 {
			ui.Fail("usage: todo update <index> (date <dd-mm-yyyy> | desc <text> | progress <0..1>)...")
			return exitUsage
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("update: not a number: " + a[0])
			return exitUsage
		}
		return doUpdate(opt, n, a[1:])

	case "clear":
		if len(a) != 0 {
			ui.Fail("usage: todo clear")
			return exitUsage
		}
		return withList(opt, true, func(l *model.List) int { return doClear(l, opt.Logger) })

	case "tui":
		return doTUI(opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stdout())
	PrintHelp()
	return exitUsage
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout(), `todo - a tiny task list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <description> [date] [progress]   Add an item; date is dd-mm-yyyy ("-" to skip), progress 0..1
  remove|rm <index>...                  Remove items at 1-based indexes
  done <index>...                       Mark items complete
  undo <index>...                       Mark items not started
  update <index> <field> <value>...     Fields: date, desc, progress
  list|ls                               List items
  clear                                 Remove all completed items
  tui                                   Interactive list

Flags:
  -db <path>       todo file (default %s)
  -theme <name>    classic, neon or mono
  -group           group list output by status
  -v               verbose diagnostics

Examples:
  todo add "Buy milk"
  todo add "File taxes" 30-04-2026 0.25
  todo done 1 3
  todo update 2 desc "Walk the dog" progress 0.5
  todo clear
`, jsonstore.DefaultPath)
}

// -------------- subcommand impls ----------------

// withList runs fn between a load and, when save is set, a save.
// Load and save failures are fatal for the invocation.
func withList(opt Options, save bool, fn func(*model.List) int) int {
	l, err := jsonstore.Load(opt.DBPath)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return exitError
	}
	opt.Logger.Debug("loaded", "path", opt.DBPath, "items", l.Len())

	code := fn(l)
	if !save {
		return code
	}
	if err := jsonstore.Save(l, opt.DBPath); err != nil {
		ui.Fail("save: " + err.Error())
		return exitError
	}
	opt.Logger.Debug("saved", "path", opt.DBPath, "items", l.Len())
	return code
}

func doAdd(opt Options, a []string) int {
	desc := strings.TrimSpace(a[0])
	if desc == "" {
		ui.Fail("add: empty description")
		return exitUsage
	}
	it := model.NewItem(desc)

	if len(a) > 1 && a[1] != "-" && a[1] != "" {
		d, err := model.ParseDate(model.UserDateLayout, a[1])
		if err != nil {
			ui.Fail("add: " + err.Error())
			return exitUsage
		}
		it.SetDeadline(d)
	}
	if len(a) > 2 {
		p, err := model.ParseProgress(a[2])
		if err != nil {
			ui.Fail("add: " + err.Error())
			return exitUsage
		}
		it.SetProgress(p)
	}

	return withList(opt, true, func(l *model.List) int {
		l.Add(it)
		opt.Logger.Debug("add", "index", l.Len(), "status", it.Status())
		ui.OK(fmt.Sprintf("added #%d", l.Len()))
		return exitOK
	})
}

// parseIndices converts 1-based user indexes to 0-based ones. Values below
// 1 are kept (as negatives or -1) so the list reports them out of range.
func parseIndices(cmd string, a []string) ([]int, int) {
	if len(a) == 0 {
		ui.Fail(fmt.Sprintf("usage: todo %s <index>...", cmd))
		return nil, exitUsage
	}
	out := make([]int, 0, len(a))
	for _, s := range a {
		n, err := strconv.Atoi(s)
		if err != nil {
			ui.Fail(cmd + ": not a number: " + s)
			return nil, exitUsage
		}
		out = append(out, n-1)
	}
	return out, exitOK
}

// failIndex reports ie in the 1-based numbering `todo list` shows.
func failIndex(cmd string, ie *model.IndexError) {
	if ie.Len == 0 {
		ui.Fail(fmt.Sprintf("%s: no item %d: list is empty", cmd, ie.Index+1))
		return
	}
	ui.Fail(fmt.Sprintf("%s: no item %d: valid range 1-%d", cmd, ie.Index+1, ie.Len))
}

// doRemove removes the requested positions as they were numbered before the
// command ran: duplicates collapse and the highest index goes first.
func doRemove(l *model.List, idx []int, logger *log.Logger) int {
	code := exitOK
	n := l.Len()
	idx = slices.Clone(idx)
	slices.Sort(idx)
	idx = slices.Compact(idx)
	slices.Reverse(idx)

	removed := 0
	for _, i := range idx {
		if !l.Remove(i) {
			failIndex("remove", &model.IndexError{Index: i, Len: n})
			code = exitUsage
			continue
		}
		logger.Debug("remove", "index", i+1)
		removed++
	}
	if code != exitOK {
		ui.Hint("Hint: run `todo list` to see valid indexes")
	}
	if removed > 0 {
		ui.OK(fmt.Sprintf("removed %d", removed))
	}
	return code
}

func doSetProgress(l *model.List, cmd string, idx []int, p model.Progress, logger *log.Logger) int {
	code := exitOK
	changed := 0
	for _, i := range idx {
		err := l.Update(i, func(it *model.Item) { it.SetProgress(p) })
		var ie *model.IndexError
		if errors.As(err, &ie) {
			failIndex(cmd, ie)
			code = exitUsage
			continue
		}
		logger.Debug(cmd, "index", i+1)
		changed++
	}
	if code != exitOK {
		ui.Hint("Hint: run `todo list` to see valid indexes")
	}
	if changed > 0 {
		verb := "completed"
		if p.IsZero() {
			verb = "reset"
		}
		ui.OK(fmt.Sprintf("%s %d", verb, changed))
	}
	return code
}

// fieldUpdate is one validated field assignment from `todo update`.
type fieldUpdate struct {
	name  string
	apply func(*model.Item)
}

// parseFieldUpdates validates each field/value pair before anything is
// mutated. Invalid pairs are reported and skipped.
func parseFieldUpdates(pairs []string) ([]fieldUpdate, bool) {
	var ups []fieldUpdate
	ok := true
	for i := 0; i+1 < len(pairs); i += 2 {
		field, value := pairs[i], pairs[i+1]
		switch field {
		case "date", "deadline":
			d, err := model.ParseDate(model.UserDateLayout, value)
			if err != nil {
				ui.Fail("update: " + err.Error())
				ok = false
				continue
			}
			ups = append(ups, fieldUpdate{name: "date", apply: func(it *model.Item) { it.SetDeadline(d) }})
		case "desc", "description":
			ups = append(ups, fieldUpdate{name: "desc", apply: func(it *model.Item) { it.SetDescription(value) }})
		case "progress":
			p, err := model.ParseProgress(value)
			if err != nil {
				ui.Fail("update: " + err.Error())
				ok = false
				continue
			}
			ups = append(ups, fieldUpdate{name: "progress", apply: func(it *model.Item) { it.SetProgress(p) }})
		default:
			ui.Fail(fmt.Sprintf("update: unknown field %q (want date, desc or progress)", field))
			ok = false
		}
	}
	return ups, ok
}

func doUpdate(opt Options, userIndex int, pairs []string) int {
	ups, ok := parseFieldUpdates(pairs)
	code := exitOK
	if !ok {
		code = exitUsage
	}
	if len(ups) == 0 {
		return code
	}

	return withList(opt, true, func(l *model.List) int {
		i := userIndex - 1
		err := l.Update(i, func(it *model.Item) {
			for _, u := range ups {
				u.apply(it)
				opt.Logger.Debug("update", "index", userIndex, "field", u.name)
			}
		})
		var ie *model.IndexError
		if errors.As(err, &ie) {
			failIndex("update", ie)
			ui.Hint("Hint: run `todo list` to see valid indexes")
			return exitUsage
		}
		ui.OK(fmt.Sprintf("updated #%d", userIndex))
		return code
	})
}

func doClear(l *model.List, logger *log.Logger) int {
	n := l.Retain(func(it model.Item) bool { return it.Status() != model.StatusComplete })
	if n == 0 {
		logger.Info("nothing to clear")
	}
	ui.OK(fmt.Sprintf("cleared %d completed", n))
	return exitOK
}
