package reorder

import (
	"reflect"
	"testing"
)

func intp(v int) *int { return &v }

func ids(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func ordered(idList ...int) []Item {
	items := make([]Item, len(idList))
	for i, id := range idList {
		items[i] = Item{ID: id, Order: intp(i)}
	}
	return items
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	// Items 4 and 5 lack explicit orders: they must sort after the ordered
	// ones, keeping their relative input order, on every pass.
	items := []Item{
		{ID: 4},
		{ID: 2, Order: intp(1)},
		{ID: 5},
		{ID: 1, Order: intp(0)},
		{ID: 3, Order: intp(2)},
	}

	once := Canonicalize(items)
	twice := Canonicalize(once)

	want := []int{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(ids(once), want) {
		t.Fatalf("canonical order = %v, want %v", ids(once), want)
	}
	if !reflect.DeepEqual(ids(twice), ids(once)) {
		t.Fatalf("second canonicalization changed order: %v -> %v", ids(once), ids(twice))
	}
}

func TestCanonicalizeBreaksTiesByInputPosition(t *testing.T) {
	items := []Item{
		{ID: 10, Order: intp(3)},
		{ID: 20, Order: intp(3)},
		{ID: 30, Order: intp(3)},
	}
	got := ids(Canonicalize(items))
	if !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Fatalf("ties must keep input order, got %v", got)
	}
}

func TestApplyMoveBefore(t *testing.T) {
	items := ordered(1, 2, 3, 4, 5)
	res := Apply(items, Move{SourceID: 4, TargetID: 2, Side: SideBefore})

	if !res.Moved {
		t.Fatal("expected a move")
	}
	want := []int{1, 4, 2, 3, 5}
	if !reflect.DeepEqual(ids(res.Items), want) {
		t.Fatalf("sequence = %v, want %v", ids(res.Items), want)
	}
}

func TestApplyMoveAfter(t *testing.T) {
	items := ordered(1, 2, 3, 4, 5)
	res := Apply(items, Move{SourceID: 1, TargetID: 3, Side: SideAfter})

	want := []int{2, 3, 1, 4, 5}
	if !reflect.DeepEqual(ids(res.Items), want) {
		t.Fatalf("sequence = %v, want %v", ids(res.Items), want)
	}
}

func TestApplyMoveAfterLastAppends(t *testing.T) {
	items := ordered(1, 2, 3)
	res := Apply(items, Move{SourceID: 1, TargetID: 3, Side: SideAfter})

	want := []int{2, 3, 1}
	if !reflect.DeepEqual(ids(res.Items), want) {
		t.Fatalf("sequence = %v, want %v", ids(res.Items), want)
	}
}

func TestApplyMissingTargetMovesToEnd(t *testing.T) {
	items := ordered(1, 2, 3)
	res := Apply(items, Move{SourceID: 2, TargetID: 99})

	want := []int{1, 3, 2}
	if !reflect.DeepEqual(ids(res.Items), want) {
		t.Fatalf("sequence = %v, want %v", ids(res.Items), want)
	}
}

func TestApplyNoTargetMovesToEnd(t *testing.T) {
	items := ordered(1, 2, 3)
	res := Apply(items, Move{SourceID: 1})

	want := []int{2, 3, 1}
	if !reflect.DeepEqual(ids(res.Items), want) {
		t.Fatalf("sequence = %v, want %v", ids(res.Items), want)
	}
}

func TestApplyNoOps(t *testing.T) {
	items := ordered(1, 2, 3)

	tests := []struct {
		name string
		mv   Move
	}{
		{"source onto itself", Move{SourceID: 2, TargetID: 2}},
		{"unknown source", Move{SourceID: 99, TargetID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Apply(items, tt.mv)
			if res.Moved {
				t.Error("expected no-op")
			}
			if len(res.Changed) != 0 {
				t.Errorf("changed set should be empty, got %v", ids(res.Changed))
			}
			if !reflect.DeepEqual(ids(res.Items), []int{1, 2, 3}) {
				t.Errorf("sequence altered: %v", ids(res.Items))
			}
		})
	}
}

func TestApplyMinimalDiff(t *testing.T) {
	// Moving 2 before 1 shifts only those two; 3, 4, 5 keep their orders
	// and must not appear in the changed set.
	items := ordered(1, 2, 3, 4, 5)
	res := Apply(items, Move{SourceID: 2, TargetID: 1, Side: SideBefore})

	if !reflect.DeepEqual(ids(res.Items), []int{2, 1, 3, 4, 5}) {
		t.Fatalf("sequence = %v", ids(res.Items))
	}
	if !reflect.DeepEqual(ids(res.Changed), []int{2, 1}) {
		t.Fatalf("changed set = %v, want [2 1]", ids(res.Changed))
	}
}

func TestApplyRenumberingIsContiguous(t *testing.T) {
	items := []Item{
		{ID: 1, Order: intp(3)},
		{ID: 2, Order: intp(7)},
		{ID: 3},
		{ID: 4, Order: intp(7)},
	}
	res := Apply(items, Move{SourceID: 3, TargetID: 1, Side: SideBefore})

	seen := make(map[int]bool)
	for i, it := range res.Items {
		if it.Order == nil {
			t.Fatalf("item %d has no order after renumbering", it.ID)
		}
		if *it.Order != i {
			t.Fatalf("item %d has order %d at index %d", it.ID, *it.Order, i)
		}
		if seen[*it.Order] {
			t.Fatalf("duplicate order %d", *it.Order)
		}
		seen[*it.Order] = true
	}
}

func TestApplyEndToEnd(t *testing.T) {
	// Moving the last subtask before the first shifts all three.
	items := []Item{
		{ID: 1, Order: intp(0)},
		{ID: 2, Order: intp(1)},
		{ID: 3, Order: intp(2)},
	}
	res := Apply(items, Move{SourceID: 3, TargetID: 1, Side: SideBefore})

	if !reflect.DeepEqual(ids(res.Items), []int{3, 1, 2}) {
		t.Fatalf("sequence = %v, want [3 1 2]", ids(res.Items))
	}
	for i, want := range []int{0, 1, 2} {
		if *res.Items[i].Order != want {
			t.Errorf("item %d order = %d, want %d", res.Items[i].ID, *res.Items[i].Order, want)
		}
	}
	if len(res.Changed) != 3 {
		t.Fatalf("changed set = %v, want all three", ids(res.Changed))
	}
}

func TestApplyUnorderedItemsGetPersistedOrders(t *testing.T) {
	// Legacy items without explicit orders become part of the changed set
	// when their renumbered position differs from their canonical index.
	items := []Item{
		{ID: 1, Order: intp(0)},
		{ID: 2},
		{ID: 3},
	}
	res := Apply(items, Move{SourceID: 3, TargetID: 2, Side: SideBefore})

	if !reflect.DeepEqual(ids(res.Items), []int{1, 3, 2}) {
		t.Fatalf("sequence = %v", ids(res.Items))
	}
	// Canonical effective orders were 1->0, 2->1, 3->2. New orders are
	// 1->0, 3->1, 2->2, so 2 and 3 changed.
	if !reflect.DeepEqual(ids(res.Changed), []int{3, 2}) {
		t.Fatalf("changed set = %v, want [3 2]", ids(res.Changed))
	}
}
