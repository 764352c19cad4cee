// Package reorder computes new ordinal positions when an item is moved
// within an ordered container (a task's subtask list, or any list keyed by a
// persisted order field).
//
// The engine is pure: it produces the full renumbered sequence for immediate
// local application, plus the minimal subset of items whose persisted order
// actually changed, for the caller to write back. It performs no I/O and
// cannot fail; invalid moves degrade to no-ops.
package reorder

import "sort"

// unorderedOffset places items lacking an explicit order after all
// explicitly ordered items while preserving their relative input order.
const unorderedOffset = 10_000

// Side selects which side of the target item the source lands on.
type Side int

const (
	SideBefore Side = iota
	SideAfter
)

// Item is a reorderable list element. Order is nil when the persisted row
// predates ordering support.
type Item struct {
	ID    int
	Order *int
}

// Move describes a single drag gesture. TargetID zero (or unknown) means
// "move to the end of the sequence".
type Move struct {
	SourceID int
	TargetID int
	Side     Side
}

// Result is the outcome of applying a Move.
type Result struct {
	// Items is the full sequence after the move, renumbered 0..N-1.
	// When Moved is false it is the canonical sequence, untouched.
	Items []Item

	// Changed holds only the items whose persisted order differs from
	// their effective order before the move. Empty for no-ops.
	Changed []Item

	// Moved reports whether the move had any effect.
	Moved bool
}

// Canonicalize returns a stable copy of items sorted by effective order:
// the explicit Order when present, otherwise unorderedOffset plus the
// original index. Ties keep input order. Canonicalizing twice yields the
// same sequence.
func Canonicalize(items []Item) []Item {
	type entry struct {
		item  Item
		index int
	}
	entries := make([]entry, len(items))
	for i, it := range items {
		entries[i] = entry{item: it, index: i}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return effectiveOrder(entries[a].item, entries[a].index) <
			effectiveOrder(entries[b].item, entries[b].index)
	})
	out := make([]Item, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

// Apply moves mv.SourceID within items and renumbers the result.
//
// The insertion index is the target's canonical index (end of sequence when
// the target is absent), bumped by one first for SideAfter, then adjusted by
// -1 when the source originally sat before the insertion point — standard
// single-array move semantics.
func Apply(items []Item, mv Move) Result {
	sorted := Canonicalize(items)

	if mv.SourceID == mv.TargetID {
		return Result{Items: sorted}
	}

	fromIndex := indexOf(sorted, mv.SourceID)
	if fromIndex < 0 {
		return Result{Items: sorted}
	}

	toIndex := indexOf(sorted, mv.TargetID)
	if toIndex < 0 {
		toIndex = len(sorted)
	} else if mv.Side == SideAfter {
		toIndex++
	}

	next := make([]Item, 0, len(sorted))
	next = append(next, sorted[:fromIndex]...)
	next = append(next, sorted[fromIndex+1:]...)
	if fromIndex < toIndex {
		toIndex--
	}
	moved := sorted[fromIndex]
	next = append(next[:toIndex], append([]Item{moved}, next[toIndex:]...)...)

	// Full renumbering: contiguous 0..N-1, trading write amplification for
	// collision-free simplicity.
	renumbered := make([]Item, len(next))
	for i, it := range next {
		order := i
		renumbered[i] = Item{ID: it.ID, Order: &order}
	}

	// An item only belongs to the changed set if its new order differs from
	// its effective order under the pre-move canonical sequence.
	previous := make(map[int]int, len(sorted))
	for i, it := range sorted {
		if it.Order != nil {
			previous[it.ID] = *it.Order
		} else {
			previous[it.ID] = i
		}
	}
	var changed []Item
	for _, it := range renumbered {
		if prev, ok := previous[it.ID]; !ok || prev != *it.Order {
			changed = append(changed, it)
		}
	}

	return Result{Items: renumbered, Changed: changed, Moved: true}
}

func effectiveOrder(it Item, index int) int {
	if it.Order != nil {
		return *it.Order
	}
	return unorderedOffset + index
}

func indexOf(items []Item, id int) int {
	if id == 0 {
		return -1
	}
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
