// Package selection tracks the highlighted row of each navigable list.
package selection

// Cursor is an index into a list, or nothing when the list is empty.
// The zero value selects nothing.
type Cursor struct {
	index int
	valid bool
}

// At returns a cursor on index i.
func At(i int) Cursor {
	if i < 0 {
		return Cursor{}
	}
	return Cursor{index: i, valid: true}
}

func (c Cursor) Selected() (int, bool) {
	return c.index, c.valid
}

// Index returns the selected index or -1.
func (c Cursor) Index() int {
	if !c.valid {
		return -1
	}
	return c.index
}

func (c *Cursor) Select(i int) {
	*c = At(i)
}

func (c *Cursor) Clear() {
	*c = Cursor{}
}

// Next moves down one row, wrapping to the top.
func (c *Cursor) Next(n int) {
	if n <= 0 {
		c.Clear()
		return
	}
	if !c.valid || c.index >= n-1 {
		c.Select(0)
		return
	}
	c.Select(c.index + 1)
}

// Prev moves up one row, wrapping to the bottom.
func (c *Cursor) Prev(n int) {
	if n <= 0 {
		c.Clear()
		return
	}
	if !c.valid {
		c.Select(0)
		return
	}
	if c.index == 0 || c.index > n-1 {
		c.Select(n - 1)
		return
	}
	c.Select(c.index - 1)
}

// Retreat moves up one row without wrapping. It is used after deleting the
// selected row so the highlight lands on the row above.
func (c *Cursor) Retreat() {
	if c.valid && c.index > 0 {
		c.index--
	}
}

// Clamp brings the cursor back inside a list of n rows. An empty list clears
// it; a cleared cursor on a non-empty list selects the first row.
func (c *Cursor) Clamp(n int) {
	switch {
	case n <= 0:
		c.Clear()
	case !c.valid:
		c.Select(0)
	case c.index >= n:
		c.Select(n - 1)
	}
}

// Focus names one of the four lists.
type Focus int

const (
	FocusProjects Focus = iota
	FocusTasks
	FocusStatuses
	FocusPriorities
)

func (f Focus) String() string {
	switch f {
	case FocusProjects:
		return "projects"
	case FocusTasks:
		return "tasks"
	case FocusStatuses:
		return "statuses"
	case FocusPriorities:
		return "priorities"
	default:
		return "unknown"
	}
}

// State holds one cursor per list. Cursors move independently.
type State struct {
	Projects   Cursor
	Tasks      Cursor
	Statuses   Cursor
	Priorities Cursor
}

// New returns a state with every cursor on the first row.
func New() State {
	return State{Projects: At(0), Tasks: At(0), Statuses: At(0), Priorities: At(0)}
}

// Cursor returns the cursor for f.
func (s *State) Cursor(f Focus) *Cursor {
	switch f {
	case FocusTasks:
		return &s.Tasks
	case FocusStatuses:
		return &s.Statuses
	case FocusPriorities:
		return &s.Priorities
	default:
		return &s.Projects
	}
}
