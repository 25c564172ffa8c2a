package tbd

// heapPush reserves n bytes at the top of the downward-growing heap and
// returns the byte offset of the new top. It does not check remaining
// capacity against the descriptor stack; callers must do that first via
// stackFits.
func (a *Arena) heapPush(n uint32) uint32 {
	a.heapTop -= n
	a.heapUsed += n
	return a.heapTop
}

// heapPop is heapPush's inverse: it releases n bytes from the top of the
// heap, moving heapTop back toward the high end of the buffer. Callers
// must only pop a hunk that currently abuts heapTop.
func (a *Arena) heapPop(n uint32) {
	a.heapTop += n
	a.heapUsed -= n
}

func ceilToHunk(n, hunkSize uint32) uint32 {
	if hunkSize == 0 {
		return n
	}
	q := (n + hunkSize - 1) / hunkSize
	if q == 0 {
		q = 1
	}
	return q * hunkSize
}
