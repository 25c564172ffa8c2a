package tbd

import "unsafe"

// descriptorSize is the fixed per-entry cost the descriptor stack charges
// against the arena's shared byte budget, even though descriptors
// themselves live in a preallocated Go slice rather than inside the
// caller's buffer.
var descriptorSize = uint32(unsafe.Sizeof(descriptor{}))

// stackPush appends an uninitialized descriptor to the top of the stack
// and returns its index. Callers must have already checked stackFits.
func (a *Arena) stackPush() int32 {
	a.descriptors = append(a.descriptors, descriptor{prevGarbage: -1, nextGarbage: -1})
	return int32(len(a.descriptors) - 1)
}

// stackPop removes the descriptor at the top of the stack. Callers must
// ensure it is garbage and already detached from the garbage list.
func (a *Arena) stackPop() {
	a.descriptors = a.descriptors[:len(a.descriptors)-1]
}

// stackTop returns the index of the newest descriptor, or -1 if empty.
func (a *Arena) stackTop() int32 {
	if len(a.descriptors) == 0 {
		return -1
	}
	return int32(len(a.descriptors) - 1)
}

// stackBytes is the descriptor stack's current charge against the byte
// budget shared with the heap.
func (a *Arena) stackBytes() uint32 {
	return uint32(len(a.descriptors)) * descriptorSize
}

// stackFits reports whether pushing one more descriptor, together with
// hunkBytes more heap usage, would keep the descriptor stack and the heap
// from overlapping.
func (a *Arena) stackFits(hunkBytes uint32) bool {
	needStack := int64(a.stackBytes()) + int64(descriptorSize)
	remainHeap := int64(a.heapTop) - int64(hunkBytes)
	return remainHeap >= 0 && needStack <= remainHeap
}

// bottomUp iterates live and garbage descriptor indices from oldest
// (index 0) to newest, stopping early if f returns false.
func (a *Arena) bottomUp(f func(idx int32) bool) {
	for i := 0; i < len(a.descriptors); i++ {
		if !f(int32(i)) {
			return
		}
	}
}

// topDown iterates descriptor indices from newest to oldest, stopping
// early if f returns false.
func (a *Arena) topDown(f func(idx int32) bool) {
	for i := len(a.descriptors) - 1; i >= 0; i-- {
		if !f(int32(i)) {
			return
		}
	}
}
