package tbd

// Iterator walks live descriptors bottom-up (oldest first). This is an
// addition beyond the reference implementation: Go has no way to
// statically borrow-check a raw pointer's lifetime the way the original C
// source could get away with, so instead every hunk-invalidating call
// (Fold, Pack, SortByKey, SortByHeap, Clear, Empty, plus a Merge that
// happens to relocate a live descriptor) bumps a generation counter the
// Arena keeps, and an
// Iterator captures the generation at Begin. Once that generation moves
// on, the iterator degrades to a safe empty cursor — End() reports true,
// Key() returns "", Value() returns nil — rather than reading through a
// now-meaningless offset.
type Iterator struct {
	a          *Arena
	generation uint64
	idx        int32
}

// Begin returns an iterator positioned at the first live descriptor.
func (a *Arena) Begin() Iterator {
	it := Iterator{a: a, generation: a.generation, idx: 0}
	it.skipGarbage()
	return it
}

func (it *Iterator) stale() bool { return it.a == nil || it.generation != it.a.generation }

func (it *Iterator) skipGarbage() {
	if it.stale() {
		return
	}
	for it.idx < int32(len(it.a.descriptors)) && it.a.descriptors[it.idx].isGarbage {
		it.idx++
	}
}

// End reports whether the iterator has no more live descriptors to visit,
// or has gone stale.
func (it Iterator) End() bool {
	return it.stale() || it.idx >= int32(len(it.a.descriptors))
}

// Next advances to the following live descriptor. A no-op once End.
func (it *Iterator) Next() {
	if it.End() {
		return
	}
	it.idx++
	it.skipGarbage()
}

// Equal reports whether it and other refer to the same arena, position,
// and generation.
func (it Iterator) Equal(other Iterator) bool {
	return it.a == other.a && it.idx == other.idx && it.generation == other.generation
}

// Key returns the current entry's key, or "" if stale or exhausted.
func (it Iterator) Key() string {
	if it.End() {
		return ""
	}
	return string(it.a.key(it.idx))
}

// ValueSize returns the current entry's value length, or 0 if stale or
// exhausted.
func (it Iterator) ValueSize() int {
	if it.End() {
		return 0
	}
	return int(it.a.descriptors[it.idx].valueSize)
}

// Value returns a copy of the current entry's value, or nil if stale or
// exhausted. A copy, rather than a slice into the arena buffer, so a
// caller can hold it safely across later mutating calls.
func (it Iterator) Value() []byte {
	if it.End() {
		return nil
	}
	v := it.a.value(it.idx)
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
