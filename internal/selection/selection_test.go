package selection

import "testing"

func TestCursor_NextPrevWrap(t *testing.T) {
	t.Parallel()

	c := At(0)
	c.Prev(3)
	if got := c.Index(); got != 2 {
		t.Fatalf("prev from 0: got %d, want 2", got)
	}
	c.Next(3)
	if got := c.Index(); got != 0 {
		t.Fatalf("next from last: got %d, want 0", got)
	}
	c.Next(3)
	if got := c.Index(); got != 1 {
		t.Fatalf("next: got %d, want 1", got)
	}
}

func TestCursor_EmptyListSelectsNothing(t *testing.T) {
	t.Parallel()

	c := At(2)
	c.Next(0)
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected no selection on empty list")
	}
	c.Prev(0)
	if c.Index() != -1 {
		t.Fatalf("expected -1, got %d", c.Index())
	}
	c.Clamp(0)
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected no selection after clamp on empty list")
	}
}

func TestCursor_DeleteLastClamps(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 5} {
		c := At(n - 1)
		// Delete the selected (last) element.
		c.Clamp(n - 1)
		want := n - 2
		if got := c.Index(); got != want {
			t.Fatalf("n=%d: got %d, want %d", n, got, want)
		}
	}
}

func TestCursor_RetreatThenClamp(t *testing.T) {
	t.Parallel()

	c := At(3)
	c.Retreat()
	c.Clamp(3)
	if c.Index() != 2 {
		t.Fatalf("got %d, want 2", c.Index())
	}
	c = At(0)
	c.Retreat()
	c.Clamp(0)
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected empty selection")
	}
}

func TestCursor_ClampSelectsFirstWhenListGrows(t *testing.T) {
	t.Parallel()

	var c Cursor
	c.Clamp(4)
	if c.Index() != 0 {
		t.Fatalf("got %d, want 0", c.Index())
	}
}

func TestState_CursorsAreIndependent(t *testing.T) {
	t.Parallel()

	s := New()
	s.Cursor(FocusTasks).Next(5)
	s.Cursor(FocusPriorities).Prev(4)
	if s.Projects.Index() != 0 || s.Tasks.Index() != 1 || s.Statuses.Index() != 0 || s.Priorities.Index() != 3 {
		t.Fatalf("unexpected state %#v", s)
	}
	if FocusStatuses.String() != "statuses" {
		t.Fatalf("unexpected focus name %q", FocusStatuses.String())
	}
}
