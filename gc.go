package tbd

// Pop reclaims garbage descriptors from the top of the descriptor stack,
// as long as each one's hunk currently abuts the heap's top boundary.
// Stops at the first live descriptor, an empty stack, or when the next
// hunk's size would push cumulative reclamation past limit. Pointer-safe:
// every remaining live descriptor keeps its address, so it never bumps
// the generation counter.
func (a *Arena) Pop(limit int) int {
	lim := uint32(limit)
	reclaimed := uint32(0)
	for {
		top := a.stackTop()
		if top < 0 {
			break
		}
		d := &a.descriptors[top]
		if !d.isGarbage || d.heapTop != a.heapTop {
			break
		}
		if reclaimed+d.heapSize > lim {
			break
		}
		size := d.heapSize
		a.garbageDetach(top)
		a.heapPop(size)
		a.stackPop()
		reclaimed += size
	}
	return int(reclaimed)
}

// mergePair coalesces descriptors i and j if both are garbage and their
// hunks are heap-contiguous. The lower-indexed of the two survives
// (absorbing the other's heap span); the other is removed from the
// descriptor stack outright. Returns the combined hunk size merged (0 if
// the pair didn't qualify) and whether removing the other descriptor
// relocated a live descriptor to its slot.
func (a *Arena) mergePair(i, j int32) (uint32, bool) {
	di, dj := &a.descriptors[i], &a.descriptors[j]
	if !di.isGarbage || !dj.isGarbage {
		return 0, false
	}
	if di.heapTop != dj.heapTop+dj.heapSize && dj.heapTop != di.heapTop+di.heapSize {
		return 0, false
	}

	survivor, gone := i, j
	if j < i {
		survivor, gone = j, i
	}
	ds, dg := &a.descriptors[survivor], &a.descriptors[gone]
	total := ds.heapSize + dg.heapSize

	a.freeListRemove(survivor)
	a.freeListRemove(gone)
	newTop := ds.heapTop
	if dg.heapTop < newTop {
		newTop = dg.heapTop
	}
	ds.heapTop = newTop
	ds.heapSize = total
	a.freeListAdd(survivor)

	a.unlinkGarbage(gone)
	a.garbageCount--
	// garbageSize is unchanged: the same heap bytes are still garbage,
	// now consolidated under one descriptor instead of two.
	relocatedLive := a.removeDescriptorAt(gone)

	return total, relocatedLive
}

// Merge walks the descriptor stack once, top-down, coalescing adjacent
// pairs whose hunks are heap-contiguous garbage. It is most effective
// immediately after SortByHeap: walking top-down means a swap-removal only
// pulls in a descriptor from the already-visited slots above, so the heap
// order below the walk stays intact. Pointer-safe for every live descriptor's hunk in the
// common case, but the swap-removal it uses internally to drop a merged
// descriptor can relocate a live descriptor occupying the stack's last
// slot into the removed one's index. When that happens Merge bumps the
// generation counter, same as any other hunk-moving operation, so a
// stale Iterator degrades safely instead of silently reading through a
// now-unrelated slot.
func (a *Arena) Merge() int {
	merged := uint32(0)
	relocatedLive := false
	for i := int32(len(a.descriptors)) - 1; i > 0; i-- {
		// On a merge the survivor is i-1, which the next step checks
		// against its lower neighbor.
		gained, relocated := a.mergePair(i-1, i)
		if relocated {
			relocatedLive = true
		}
		merged += gained
	}
	a.invalidateLastFound()
	if relocatedLive {
		a.bumpGeneration()
	}
	return int(merged)
}

// findLiveFromTop scans top-down for a live descriptor with the given
// hunk size, skipping indices at or below "below" so Fold never matches a
// live descriptor that sits below the garbage hole it's filling.
func (a *Arena) findLiveFromTop(size uint32, below int32) int32 {
	for i := int32(len(a.descriptors)) - 1; i > below; i-- {
		d := &a.descriptors[i]
		if !d.isGarbage && d.heapSize == size {
			return i
		}
	}
	return -1
}

// foldInto copies live descriptor t's hunk contents into garbage
// descriptor g's hunk (equal size, matched by the caller), then swaps
// their live/garbage roles.
func (a *Arena) foldInto(gIdx, tIdx int32) {
	g, t := &a.descriptors[gIdx], &a.descriptors[tIdx]
	copy(a.buf[g.heapTop:g.heapTop+g.heapSize], a.buf[t.heapTop:t.heapTop+t.heapSize])

	a.garbageDetach(gIdx)
	g.valueSize = t.valueSize

	a.garbagePushBack(tIdx)
	t.valueSize = 0
}

// releaseIfFrontier fully removes the garbage descriptor at idx and shrinks
// the heap by its hunk size, but only if that hunk currently abuts
// a.heapTop. foldInto's chosen t is the most recently created live
// descriptor of the matching size, which is heap-frontier-adjacent unless
// something else has since rearranged the heap; in that common case,
// leaving t flagged garbage merely relocates the hole Fold was supposed to
// close instead of shrinking GarbageSize. idx must already be garbage.
func (a *Arena) releaseIfFrontier(idx int32) {
	d := &a.descriptors[idx]
	if d.heapTop != a.heapTop {
		return
	}
	size := d.heapSize
	a.garbageDetach(idx)
	a.heapPop(size)
	a.removeDescriptorAt(idx)
}

// Fold moves live data into garbage holes of matching hunk size: for each
// bottom-up garbage descriptor g, it scans top-down for a live descriptor
// t with the same hunk size, copies t's bytes into g's hunk, and swaps
// their live/garbage roles. This invalidates any external reference to
// live data (the value that used to live at t's address now lives at g's
// address), so it bumps the generation counter.
func (a *Arena) Fold(limit int) int {
	lim := uint32(limit)
	folded := uint32(0)
	changed := false
	gi := int32(0)
	for gi < int32(len(a.descriptors)) {
		g := &a.descriptors[gi]
		if !g.isGarbage {
			gi++
			continue
		}
		size := g.heapSize
		if folded+size > lim {
			gi++
			continue
		}
		ti := a.findLiveFromTop(size, gi)
		if ti < 0 {
			gi++
			continue
		}
		a.foldInto(gi, ti)
		a.releaseIfFrontier(ti)
		folded += size
		changed = true
		gi++
	}
	if changed {
		a.bumpGeneration()
	}
	a.invalidateLastFound()
	return int(folded)
}

// packPair slides src's live bytes to the high end of dest's (garbage)
// hunk, then hands the combined span's remaining low bytes to src as its
// new garbage hole. Every byte of the combined D+S span is accounted for
// on both sides: no data is lost. dest and src must be heap-contiguous
// with src at the lower address (src.heapTop+src.heapSize==dest.heapTop)
// and dest at least as large as src.
func (a *Arena) packPair(destIdx, srcIdx int32) {
	dest, src := &a.descriptors[destIdx], &a.descriptors[srcIdx]

	combinedTop := src.heapTop
	combinedSize := src.heapSize + dest.heapSize
	liveSize := src.heapSize
	liveValueSize := src.valueSize
	liveTop := dest.heapTop + dest.heapSize - liveSize

	copy(a.buf[liveTop:liveTop+liveSize], a.buf[src.heapTop:src.heapTop+src.heapSize])

	a.garbageDetach(destIdx)
	dest.heapTop = liveTop
	dest.heapSize = liveSize
	dest.valueSize = liveValueSize

	src.heapTop = combinedTop
	src.heapSize = combinedSize - liveSize
	src.valueSize = 0
	a.garbagePushBack(srcIdx)
}

// Pack walks adjacent stack pairs top-down, sliding a live hunk into a
// heap-contiguous garbage hunk beyond it whenever the garbage hunk is at
// least as large, and pushing the resulting (still garbage) leftover
// toward the low end of the combined span. This defragments the heap by
// consolidating garbage toward the frontier, which is what lets later
// Pop calls reclaim it. Invalidates any external reference to live data.
//
// The heap grows downward while the descriptor stack grows upward, so for
// a naturally-created adjacent pair the newer (higher-index) descriptor
// sits at the lower, frontier-side heap address and the older
// (lower-index) one sits at the higher, outer address — the reverse of
// stack order. dest is therefore the older slot (outer, garbage) and src
// is the newer slot (frontier-side, live); packPair requires src's hunk to
// abut the low end of dest's.
func (a *Arena) Pack(limit int) int {
	lim := uint32(limit)
	packed := uint32(0)
	changed := false
	for i := int32(len(a.descriptors)) - 1; i > 0; i-- {
		dest := &a.descriptors[i-1]
		src := &a.descriptors[i]
		if !dest.isGarbage || src.isGarbage {
			continue
		}
		if src.heapTop+src.heapSize != dest.heapTop {
			continue
		}
		if src.heapSize > dest.heapSize {
			continue
		}
		if packed+src.heapSize > lim {
			continue
		}
		packed += src.heapSize
		a.packPair(i-1, i)
		changed = true
	}
	if changed {
		a.bumpGeneration()
	}
	a.invalidateLastFound()
	return int(packed)
}

// Collect runs Pop, Fold, and Pack in rounds, stopping as soon as
// cumulative reclamation meets limit or a full round makes no progress at
// all. Progress is measured by the actual drop in GarbageSize across a
// round, not by summing Pop/Fold/Pack's own return values: Fold and Pack
// mostly reposition garbage rather than freeing it outright (only Pop, and
// Fold's frontier-release case, actually shrink GarbageSize), so counting
// their return values toward limit would let Collect stop before
// GarbageSize had actually dropped. Looping lets a repositioning round set
// up a later Pop that shrinks it, which is what Clean's postcondition
// requires.
func (a *Arena) Collect(limit int) int {
	reclaimed := 0
	for reclaimed < limit {
		before := a.GarbageSize()
		remaining := limit - reclaimed
		popped := a.Pop(remaining)
		remaining -= popped
		folded := a.Fold(remaining)
		remaining -= folded
		packed := a.Pack(remaining)
		reclaimed += before - a.GarbageSize()
		if popped == 0 && folded == 0 && packed == 0 {
			break
		}
	}
	return reclaimed
}

// Clean is equivalent to Collect(GarbageSize()); its postcondition is
// GarbageSize() == 0.
func (a *Arena) Clean() int {
	return a.Collect(int(a.garbageSize))
}
