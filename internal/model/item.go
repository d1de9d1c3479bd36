package model

// Item is one task. Status is computed from progress on every read, so the
// two can never disagree.
type Item struct {
	desc        string
	deadline    Date
	hasDeadline bool
	progress    Progress
}

// NewItem returns a Todo item with no deadline.
func NewItem(desc string) Item {
	return Item{desc: desc}
}

// WithDeadline returns a copy of it due on d.
func (it Item) WithDeadline(d Date) Item {
	it.SetDeadline(d)
	return it
}

func (it *Item) SetDescription(desc string) { it.desc = desc }

func (it *Item) SetDeadline(d Date) {
	it.deadline = d
	it.hasDeadline = true
}

// SetProgress is the only way to change an item's status.
func (it *Item) SetProgress(p Progress) { it.progress = p }

func (it Item) Description() string { return it.desc }

// Deadline reports the deadline and whether one is set.
func (it Item) Deadline() (Date, bool) { return it.deadline, it.hasDeadline }

func (it Item) Progress() Progress { return it.progress }

func (it Item) Status() Status { return StatusOf(it.progress) }
