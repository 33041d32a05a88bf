package sales

import "testing"

func TestSelectionToggleRow(t *testing.T) {
	sel := NewSelection()
	if !sel.ToggleRow(3) {
		t.Fatalf("expected row 3 selected")
	}
	if sel.ToggleRow(3) {
		t.Fatalf("expected row 3 deselected")
	}
	if sel.Count() != 0 {
		t.Fatalf("expected empty selection, got %d", sel.Count())
	}
}

func TestSelectionToggleAllSelectsThenClears(t *testing.T) {
	sel := NewSelection()
	page := []int64{1, 2, 3}

	sel.ToggleRow(2)
	if got := sel.HeaderState(page); got != HeaderIndeterminate {
		t.Fatalf("expected indeterminate, got %s", got)
	}

	sel.ToggleAll(page)
	if got := sel.HeaderState(page); got != HeaderChecked {
		t.Fatalf("expected checked, got %s", got)
	}
	if sel.Count() != 3 {
		t.Fatalf("expected 3 selected, got %d", sel.Count())
	}

	sel.ToggleAll(page)
	if got := sel.HeaderState(page); got != HeaderUnchecked {
		t.Fatalf("expected unchecked, got %s", got)
	}
}

func TestSelectionToggleAllKeepsOtherPages(t *testing.T) {
	sel := NewSelection()
	sel.ToggleRow(42)
	sel.ToggleAll([]int64{1, 2})
	sel.ToggleAll([]int64{1, 2})
	if !sel.IsSelected(42) {
		t.Fatalf("selection outside the page should survive")
	}
}

func TestSelectionPrune(t *testing.T) {
	sel := NewSelection()
	sel.ToggleAll([]int64{1, 2, 3})
	removed := sel.Prune([]int64{1, 3})
	if removed != 1 {
		t.Fatalf("expected 1 pruned, got %d", removed)
	}
	got := sel.IDs()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestSelectionHeaderStateEmptyPage(t *testing.T) {
	sel := NewSelection()
	if got := sel.HeaderState(nil); got != HeaderUnchecked {
		t.Fatalf("expected unchecked for empty page, got %s", got)
	}
}
