// Package tbd implements an embedded key-value datastore over a single
// caller-supplied byte buffer: a bidirectional-growth arena where a
// descriptor stack grows up from the low end and a value heap grows down
// from the high end, with a free gap in the middle. There is no dynamic
// allocation once Initialize returns; Create, Read, Update, and Delete all
// run against the fixed buffer handed in up front.
//
// # Memory layout
//
//	[ descriptor 0 ][ descriptor 1 ] ... free gap ... [ hunk 1 ][ hunk 0 ]
//	^ stack grows up                                    heap grows down ^
//
// A descriptor's hunk lays out its value bytes first, then its key bytes,
// then a single null terminator, sized as a multiple of the arena's hunk
// granularity (rounded up). Deleted keys become garbage descriptors
// linked into a doubly-linked list so their hunks can be recycled by a
// later Create needing the exact same hunk size, or reclaimed outright by
// the garbage collector: Pop, Merge, Fold, Pack, Collect, and Clean.
//
// # Basic usage
//
//	buf := make([]byte, 1<<16)
//	a, err := tbd.Initialize(buf, len(buf), 16, tbd.DefaultMaxKeyLength)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if code := a.Create("hello", []byte("world")); tbd.IsError(code) {
//		log.Fatalf("create failed: %s", code)
//	}
//	value := make([]byte, a.ReadSize("hello"))
//	a.Read("hello", value)
//
// # Concurrency
//
// Arena carries no lock of its own: it is safe for a single goroutine at
// a time, matching the single-writer contract most embedded stores of
// this shape assume. SafeArena wraps an Arena with a sync.Mutex for
// callers that need to share one across goroutines.
//
// # Iterators and garbage collection
//
// Go has no way to statically borrow-check a raw offset's lifetime, so
// Iterator tracks a generation counter instead: any call that moves live
// data around (Fold, Pack, SortByKey, SortByHeap, Clear, Empty) bumps it,
// and an iterator captured before that call quietly becomes a safe empty
// cursor rather than reading through a stale offset. Pop never moves live
// data and does not bump it; Merge bumps it only when removing a merged
// descriptor relocates a live descriptor to a different stack slot.
package tbd
