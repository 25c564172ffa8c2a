package tbd

// descriptor binds one live or garbage key to its hunk of heap memory. It
// lives in Arena.descriptors, indexed by stack position (see stack.go),
// rather than inside the caller's buffer: see the "Header storage" note
// in DESIGN.md for why. A hunk lays out value bytes first,
// then the key bytes, then a single null terminator; descriptors
// deliberately do not store a key length, so key() below has to scan for
// the terminator.
type descriptor struct {
	heapTop     uint32
	heapSize    uint32
	valueSize   uint32
	isGarbage   bool
	prevGarbage int32
	nextGarbage int32
}

func (d *descriptor) valuePtr() uint32 { return d.heapTop }
func (d *descriptor) keyPtr() uint32   { return d.heapTop + d.valueSize }

// key returns the descriptor's key bytes, found by scanning its hunk for
// the null terminator that always follows the key.
func (a *Arena) key(idx int32) []byte {
	d := &a.descriptors[idx]
	start := d.keyPtr()
	end := d.heapTop + d.heapSize
	for i := start; i < end; i++ {
		if a.buf[i] == 0 {
			return a.buf[start:i]
		}
	}
	return a.buf[start:end]
}

// value returns the descriptor's value bytes.
func (a *Arena) value(idx int32) []byte {
	d := &a.descriptors[idx]
	return a.buf[d.valuePtr() : d.valuePtr()+d.valueSize]
}

// garbagePushBack appends idx to the tail of the garbage list, marks it
// garbage, and records it in the free-list cache. idx must not already be
// in the list.
func (a *Arena) garbagePushBack(idx int32) {
	d := &a.descriptors[idx]
	d.isGarbage = true
	d.prevGarbage = a.garbageBack
	d.nextGarbage = -1
	if a.garbageBack >= 0 {
		a.descriptors[a.garbageBack].nextGarbage = idx
	} else {
		a.garbageFront = idx
	}
	a.garbageBack = idx
	a.garbageCount++
	a.garbageSize += d.heapSize
	a.freeListAdd(idx)
}

// unlinkGarbage detaches idx from the garbage list without clearing its
// garbage flag or touching garbageSize/garbageCount. Used directly when a
// garbage descriptor is being merged into another rather than reclaimed
// outright, and by garbageDetach.
func (a *Arena) unlinkGarbage(idx int32) {
	d := &a.descriptors[idx]
	if d.prevGarbage >= 0 {
		a.descriptors[d.prevGarbage].nextGarbage = d.nextGarbage
	} else {
		a.garbageFront = d.nextGarbage
	}
	if d.nextGarbage >= 0 {
		a.descriptors[d.nextGarbage].prevGarbage = d.prevGarbage
	} else {
		a.garbageBack = d.prevGarbage
	}
	d.prevGarbage = -1
	d.nextGarbage = -1
}

// garbageDetach fully removes idx from the garbage list: unlinks it,
// clears its garbage flag, and updates garbageSize/garbageCount and the
// free-list cache. Used by recycle, Pop, and Fold's and Pack's role swaps.
func (a *Arena) garbageDetach(idx int32) {
	d := &a.descriptors[idx]
	a.unlinkGarbage(idx)
	d.isGarbage = false
	a.garbageCount--
	a.garbageSize -= d.heapSize
	a.freeListRemove(idx)
}

// relinkGarbageIndex rewrites every link (garbage-list and free-list) that
// pointed at oldIdx so it points at newIdx instead. Used when
// removeDescriptorAt relocates a descriptor to a different stack slot.
func (a *Arena) relinkGarbageIndex(oldIdx, newIdx int32) {
	d := &a.descriptors[oldIdx]
	if !d.isGarbage {
		return
	}
	if d.prevGarbage >= 0 {
		a.descriptors[d.prevGarbage].nextGarbage = newIdx
	} else {
		a.garbageFront = newIdx
	}
	if d.nextGarbage >= 0 {
		a.descriptors[d.nextGarbage].prevGarbage = newIdx
	} else {
		a.garbageBack = newIdx
	}
	if a.lastFound == oldIdx {
		a.lastFound = newIdx
	}
	bucket := a.freeList[d.heapSize]
	for i, v := range bucket {
		if v == oldIdx {
			bucket[i] = newIdx
			break
		}
	}
}

// removeDescriptorAt deletes the descriptor at idx by swapping in the
// current top of the descriptor stack and truncating. Callers must already
// have detached idx from the garbage list (via unlinkGarbage/garbageDetach)
// before calling this; used by Merge's mergePair and by Fold's
// releaseIfFrontier. Reports whether a live descriptor occupying the
// stack's last slot was relocated to idx as a result: Merge uses this to
// decide whether it must bump the generation counter, since a relocated
// live descriptor's address changes out from under any Iterator holding
// its old index.
func (a *Arena) removeDescriptorAt(idx int32) bool {
	last := int32(len(a.descriptors) - 1)
	relocatedLive := false
	if idx != last {
		relocatedLive = !a.descriptors[last].isGarbage
		a.relinkGarbageIndex(last, idx)
		a.descriptors[idx] = a.descriptors[last]
	}
	a.descriptors = a.descriptors[:last]
	return relocatedLive
}
