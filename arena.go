package tbd

// DefaultMaxKeyLength matches the reference implementation's compile-time
// default; Initialize takes it as a runtime parameter instead.
const DefaultMaxKeyLength = 8

// MaxSize bounds the buffer size Initialize will accept: offsets are
// tracked as uint32, so this keeps every arithmetic operation on them
// comfortably within range.
const MaxSize = 1 << 30

// Arena is the embedded key-value datastore. It owns a caller-supplied
// byte buffer, a descriptor stack, and a value heap.
type Arena struct {
	buf          []byte
	hunkSize     uint32
	maxKeyLength uint32

	descriptors []descriptor

	heapTop  uint32
	heapUsed uint32

	garbageFront int32
	garbageBack  int32
	garbageCount uint32
	garbageSize  uint32

	lastFound int32

	generation uint64

	freeList    map[uint32][]int32
	freeListCap int

	logger Logger
}

// Initialize partitions buf into a fresh arena of the given size, hunk
// granularity, and maximum key length (excluding the null terminator).
// size must be positive and not exceed len(buf) or MaxSize.
func Initialize(buf []byte, size, hunkSize, maxKeyLength int) (*Arena, error) {
	if buf == nil || size <= 0 || size > len(buf) || size > MaxSize {
		return nil, wrapBadBuffer("size must be positive and fit within buf and MaxSize")
	}
	if hunkSize <= 0 {
		return nil, wrapBadBuffer("hunk size must be positive")
	}
	if maxKeyLength <= 0 {
		return nil, wrapBadBuffer("max key length must be positive")
	}
	a := &Arena{}
	a.reset(buf[:size], uint32(hunkSize), uint32(maxKeyLength))
	return a, nil
}

func (a *Arena) reset(buf []byte, hunkSize, maxKeyLength uint32) {
	maxDescriptors := 1 + uint32(len(buf))/(descriptorSize+hunkSize)
	a.buf = buf
	a.hunkSize = hunkSize
	a.maxKeyLength = maxKeyLength
	a.descriptors = make([]descriptor, 0, maxDescriptors)
	a.heapTop = uint32(len(buf))
	a.heapUsed = 0
	a.garbageFront = -1
	a.garbageBack = -1
	a.garbageCount = 0
	a.garbageSize = 0
	a.lastFound = -1
	a.freeList = make(map[uint32][]int32)
	a.freeListCap = freeListCapPerSize
	a.generation++
}

func (a *Arena) invalidateLastFound() { a.lastFound = -1 }
func (a *Arena) bumpGeneration()      { a.generation++ }

// Clear resets the arena to its post-Initialize state; every descriptor
// and hunk is lost. Hunk-invalidating: bumps the generation counter.
func (a *Arena) Clear() {
	a.reset(a.buf, a.hunkSize, a.maxKeyLength)
}

// Empty is Clear's synonym, kept as a distinct name because the reference
// implementation's data model describes emptying the key namespace
// separately from clearing arena state; in this port the two coincide.
func (a *Arena) Empty() {
	a.Clear()
}

// Size returns the total arena size in bytes.
func (a *Arena) Size() int { return len(a.buf) }

// SizeUsed returns the bytes committed to live and garbage hunks, plus the
// descriptor stack's charge against the shared budget.
func (a *Arena) SizeUsed() int { return int(a.stackBytes() + a.heapUsed) }

// HeadSize returns the free bytes between the top of the descriptor stack
// and the bottom of the heap.
func (a *Arena) HeadSize() int { return int(a.heapTop) - int(a.stackBytes()) }

// Count returns the number of live (non-garbage) keys.
func (a *Arena) Count() int { return len(a.descriptors) - int(a.garbageCount) }

// IsEmpty reports whether the arena holds no live keys.
func (a *Arena) IsEmpty() bool { return a.Count() == 0 }

// MaxKeyLength returns the maximum key length, excluding the null
// terminator, this arena was initialized with.
func (a *Arena) MaxKeyLength() int { return int(a.maxKeyLength) }

// MaxCount estimates how many keys this arena could hold if every value
// were kvSize bytes, ignoring key-length variation and fragmentation.
func (a *Arena) MaxCount(kvSize int) int {
	hunk := ceilToHunk(uint32(kvSize), a.hunkSize)
	if hunk == 0 {
		hunk = a.hunkSize
	}
	perKey := descriptorSize + hunk
	if perKey == 0 {
		return 0
	}
	return int(uint32(len(a.buf)) / perKey)
}

// GarbageSize returns the total heap bytes currently held by garbage
// descriptors.
func (a *Arena) GarbageSize() int { return int(a.garbageSize) }

// GarbageCount returns the number of garbage descriptors.
func (a *Arena) GarbageCount() int { return int(a.garbageCount) }
