package tbd

// Create inserts key with the given value. Returns KeyExists if the key
// is already present, or Error if the arena has no room. Key length must
// be between 1 and MaxKeyLength; violating that is a precondition error,
// checked only in debug builds (see assert_debug.go).
func (a *Arena) Create(key string, value []byte) Code {
	debugAssert(len(key) > 0 && uint32(len(key)) <= a.maxKeyLength, "key length out of range")

	kb := []byte(key)
	if a.find(kb) >= 0 {
		return KeyExists
	}

	hunkRequired := ceilToHunk(uint32(len(kb))+1+uint32(len(value)), a.hunkSize)

	if idx := a.recycle(hunkRequired); idx >= 0 {
		a.layout(idx, kb, value)
		return NoError
	}

	if !a.stackFits(hunkRequired) {
		a.logCapacityError("create", key)
		return Error
	}

	idx := a.stackPush()
	top := a.heapPush(hunkRequired)
	a.descriptors[idx].heapTop = top
	a.descriptors[idx].heapSize = hunkRequired
	a.layout(idx, kb, value)
	debugAssert(a.stackBytes() <= a.heapTop, "descriptor stack crossed the heap")
	return NoError
}

// layout writes value bytes then the null-terminated key into idx's hunk.
// The hunk must already be sized to fit both.
func (a *Arena) layout(idx int32, key, value []byte) {
	d := &a.descriptors[idx]
	d.valueSize = uint32(len(value))
	copy(a.buf[d.heapTop:], value)
	keyStart := d.heapTop + d.valueSize
	n := copy(a.buf[keyStart:], key)
	a.buf[keyStart+uint32(n)] = 0
}

// Read copies key's value into out. Returns KeyNotFound if absent, or
// BadSize if len(out) does not match the stored value's size exactly.
func (a *Arena) Read(key string, out []byte) Code {
	idx := a.find([]byte(key))
	if idx < 0 {
		return KeyNotFound
	}
	d := &a.descriptors[idx]
	if d.valueSize != uint32(len(out)) {
		return BadSize
	}
	copy(out, a.value(idx))
	return NoError
}

// Exists reports whether key currently resolves to a live descriptor.
// Useful for callers that need to distinguish "absent" from "present
// with a zero-length value" without a throwaway Read.
func (a *Arena) Exists(key string) bool {
	return a.find([]byte(key)) >= 0
}

// ReadSize returns the stored value size for key, or 0 if the key is
// absent.
func (a *Arena) ReadSize(key string) int {
	idx := a.find([]byte(key))
	if idx < 0 {
		return 0
	}
	return int(a.descriptors[idx].valueSize)
}

// Update overwrites key's value in place. Returns KeyNotFound if absent,
// or BadSize if len(value) does not match the stored value's size
// exactly — Update never resizes a hunk.
func (a *Arena) Update(key string, value []byte) Code {
	idx := a.find([]byte(key))
	if idx < 0 {
		return KeyNotFound
	}
	d := &a.descriptors[idx]
	if d.valueSize != uint32(len(value)) {
		return BadSize
	}
	copy(a.value(idx), value)
	return NoError
}

// Delete marks key's descriptor as garbage. Deleting an absent key is a
// no-op that still reports NoError. Key-index-invalidating: clears
// lastFound but leaves every hunk pointer valid.
func (a *Arena) Delete(key string) Code {
	idx := a.find([]byte(key))
	if idx < 0 {
		return NoError
	}
	a.garbagePushBack(idx)
	a.invalidateLastFound()
	return NoError
}

// Copy iterates every live key in src bottom-up and Creates it in dest,
// stopping and returning Error on the first Create that does not succeed
// with NoError. This is not transactional: a partial copy is left in dest
// on failure. The reference C source never defines a copy operation at
// all (no such symbol exists in tbd.c/tbd.h), so this behavior is this
// port's own design choice rather than a ported one: unwinding a partial
// copy would silently mask the capacity error the caller needs to see.
func Copy(dest, src *Arena) Code {
	it := src.Begin()
	for !it.End() {
		key := it.Key()
		value := it.Value()
		if code := dest.Create(key, value); code != NoError {
			return Error
		}
		it.Next()
	}
	return NoError
}
