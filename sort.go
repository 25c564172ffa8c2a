package tbd

import "sort"

// reindexGarbageLinks rebuilds the garbage doubly-linked list and the
// free-list cache from scratch, in current array order. Needed after any
// operation that reorders the descriptor stack in place, since the
// garbage list's links are plain indices into it.
func (a *Arena) reindexGarbageLinks() {
	a.garbageFront = -1
	a.garbageBack = -1
	a.freeList = make(map[uint32][]int32)
	for i := range a.descriptors {
		d := &a.descriptors[i]
		if !d.isGarbage {
			d.prevGarbage = -1
			d.nextGarbage = -1
			continue
		}
		d.prevGarbage = a.garbageBack
		d.nextGarbage = -1
		if a.garbageBack >= 0 {
			a.descriptors[a.garbageBack].nextGarbage = int32(i)
		} else {
			a.garbageFront = int32(i)
		}
		a.garbageBack = int32(i)
		a.freeListAdd(int32(i))
	}
}

// SortByKey reorders the descriptor stack by ascending key, including
// garbage entries (whose key bytes are still sitting in their hunk, even
// though they no longer resolve through Find). Hunk-invalidating: bumps
// the generation counter and clears lastFound.
func (a *Arena) SortByKey() {
	sort.SliceStable(a.descriptors, func(i, j int) bool {
		return bytesLess(a.rawKeyAt(int32(i)), a.rawKeyAt(int32(j)))
	})
	a.reindexGarbageLinks()
	a.invalidateLastFound()
	a.bumpGeneration()
}

// SortByHeap reorders the descriptor stack by ascending heap address, the
// useful precondition for an effective Merge pass (which only coalesces
// stack-adjacent entries). Hunk-invalidating.
func (a *Arena) SortByHeap() {
	sort.SliceStable(a.descriptors, func(i, j int) bool {
		return a.descriptors[i].heapTop < a.descriptors[j].heapTop
	})
	a.reindexGarbageLinks()
	a.invalidateLastFound()
	a.bumpGeneration()
}

// rawKeyAt returns the key bytes at idx regardless of garbage status,
// used only for sorting.
func (a *Arena) rawKeyAt(idx int32) []byte {
	return a.key(idx)
}
