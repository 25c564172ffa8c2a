package tbd

// freeListCapPerSize bounds how many recyclable holes of a given hunk
// size the free-list cache remembers. Beyond the cap, recycle falls back
// to its O(n) bottom-up scan of the descriptor stack, so the cache only
// ever changes the constant factor, never correctness.
const freeListCapPerSize = 8

// find scans for a live descriptor with the given key, consulting the
// last-found cache first. Returns the descriptor index, or -1 if absent.
func (a *Arena) find(key []byte) int32 {
	if a.lastFound >= 0 && int(a.lastFound) < len(a.descriptors) {
		d := &a.descriptors[a.lastFound]
		if !d.isGarbage && bytesEqual(a.key(a.lastFound), key) {
			return a.lastFound
		}
	}
	var found int32 = -1
	a.bottomUp(func(idx int32) bool {
		d := &a.descriptors[idx]
		if !d.isGarbage && bytesEqual(a.key(idx), key) {
			found = idx
			return false
		}
		return true
	})
	if found >= 0 {
		a.lastFound = found
	}
	return found
}

func bytesEqual(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func bytesLess(x, y []byte) bool {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		if x[i] != y[i] {
			return x[i] < y[i]
		}
	}
	return len(x) < len(y)
}

// freeListAdd records idx as a recyclable hole of its hunk size, subject
// to freeListCapPerSize; entries beyond the cap simply aren't cached, and
// recycle falls back to scanning the descriptor stack directly.
func (a *Arena) freeListAdd(idx int32) {
	size := a.descriptors[idx].heapSize
	bucket := a.freeList[size]
	if len(bucket) >= a.freeListCap {
		return
	}
	a.freeList[size] = append(bucket, idx)
}

// freeListRemove drops idx from its size bucket if present.
func (a *Arena) freeListRemove(idx int32) {
	size := a.descriptors[idx].heapSize
	bucket := a.freeList[size]
	for i, v := range bucket {
		if v == idx {
			a.freeList[size] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// freeListTake pops a cached garbage descriptor of the exact hunk size,
// or -1 if the cache has none recorded.
func (a *Arena) freeListTake(size uint32) int32 {
	bucket := a.freeList[size]
	for len(bucket) > 0 {
		idx := bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		a.freeList[size] = bucket
		if a.descriptors[idx].isGarbage && a.descriptors[idx].heapSize == size {
			return idx
		}
	}
	return -1
}

// recycle looks for a garbage descriptor with an exact hunkSize match,
// consulting the free-list cache before falling back to a bottom-up scan
// of the descriptor stack. Returns -1 if none exists.
func (a *Arena) recycle(hunkSize uint32) int32 {
	if idx := a.freeListTake(hunkSize); idx >= 0 {
		a.garbageDetach(idx)
		a.invalidateLastFound()
		return idx
	}
	var found int32 = -1
	a.bottomUp(func(idx int32) bool {
		d := &a.descriptors[idx]
		if d.isGarbage && d.heapSize == hunkSize {
			found = idx
			return false
		}
		return true
	})
	if found >= 0 {
		a.garbageDetach(found)
		a.invalidateLastFound()
	}
	return found
}
