package tbd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPopReclaimsTopOfStackGarbage(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1111")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("2222")))
	require.Equal(t, NoError, a.Delete("bbbb"))

	garbage := a.GarbageSize()
	require.Greater(t, garbage, 0)

	reclaimed := a.Pop(garbage)
	require.Greater(t, reclaimed, 0)
	require.Equal(t, 0, a.GarbageSize())
	require.Equal(t, 0, a.GarbageCount())

	out := make([]byte, 4)
	require.Equal(t, NoError, a.Read("aaaa", out))
}

func TestPopStopsAtLiveDescriptor(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1111")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("2222")))
	require.Equal(t, NoError, a.Delete("aaaa")) // not on top of stack

	reclaimed := a.Pop(a.GarbageSize())
	require.Equal(t, 0, reclaimed)
	require.Equal(t, 1, a.GarbageCount())
}

func TestPopRespectsLimit(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1111")))
	require.Equal(t, NoError, a.Delete("aaaa"))

	garbage := a.GarbageSize()
	require.Equal(t, 0, a.Pop(garbage-1))
	require.Equal(t, 1, a.GarbageCount())
}

func TestMergeCoalescesContiguousGarbage(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("11")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("22")))
	require.Equal(t, NoError, a.Create("cccc", []byte("33")))
	require.Equal(t, NoError, a.Delete("aaaa"))
	require.Equal(t, NoError, a.Delete("bbbb"))

	countBefore := a.GarbageCount()
	merged := a.Merge()
	require.Greater(t, merged, 0)
	require.Less(t, a.GarbageCount(), countBefore)

	// live data survives untouched.
	out := make([]byte, 2)
	require.Equal(t, NoError, a.Read("cccc", out))
	require.Equal(t, []byte("33"), out)
}

// TestMergeBumpsGenerationWhenALiveDescriptorIsRelocated covers the case
// where mergePair's swap-removal drops the surviving live descriptor
// (cccc, at the stack's last slot) into the index being removed. That
// changes cccc's address, so Merge must bump the generation counter for
// any Iterator holding cccc's old index to detect it.
func TestMergeBumpsGenerationWhenALiveDescriptorIsRelocated(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("11")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("22")))
	require.Equal(t, NoError, a.Create("cccc", []byte("33")))
	require.Equal(t, NoError, a.Delete("aaaa"))
	require.Equal(t, NoError, a.Delete("bbbb"))

	generationBefore := a.generation
	a.Merge()
	require.Greater(t, a.generation, generationBefore, "Merge must bump generation when it relocates a live descriptor")

	out := make([]byte, 2)
	require.Equal(t, NoError, a.Read("cccc", out))
	require.Equal(t, []byte("33"), out)
}

// TestMergeDoesNotBumpGenerationWithoutRelocation covers the opposite
// case: the two garbage descriptors being merged (bbbb, cccc) already
// occupy the stack's top, so removing the merged-away one needs no
// swap-in from the tail and no live descriptor moves.
func TestMergeDoesNotBumpGenerationWithoutRelocation(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("11")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("22")))
	require.Equal(t, NoError, a.Create("cccc", []byte("33")))
	require.Equal(t, NoError, a.Delete("bbbb"))
	require.Equal(t, NoError, a.Delete("cccc"))

	generationBefore := a.generation
	a.Merge()
	require.Equal(t, generationBefore, a.generation, "Merge must not bump generation when no live descriptor was relocated")
}

// TestIteratorSurvivesMergeWithoutRelocation exercises the discipline
// Merge's doc comment describes: an Iterator held across a Merge call
// that doesn't relocate any live descriptor keeps reading correctly.
func TestIteratorSurvivesMergeWithoutRelocation(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("2")))
	require.Equal(t, NoError, a.Create("cccc", []byte("3")))
	require.Equal(t, NoError, a.Delete("bbbb"))
	require.Equal(t, NoError, a.Delete("cccc"))

	it := a.Begin()
	require.Equal(t, "aaaa", it.Key())

	a.Merge()

	require.False(t, it.End())
	require.Equal(t, "aaaa", it.Key())
}

// TestIteratorGoesStaleAfterMergeRelocatesALiveDescriptor exercises the
// other half of that discipline: when Merge does relocate a live
// descriptor, a held Iterator must degrade to a safe empty cursor
// instead of silently reading through a now-unrelated slot.
func TestIteratorGoesStaleAfterMergeRelocatesALiveDescriptor(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("11")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("22")))
	require.Equal(t, NoError, a.Create("cccc", []byte("33")))
	require.Equal(t, NoError, a.Delete("aaaa"))
	require.Equal(t, NoError, a.Delete("bbbb"))

	it := a.Begin()
	require.False(t, it.End())

	a.Merge()

	require.True(t, it.End())
	require.Equal(t, "", it.Key())
	require.Nil(t, it.Value())
}

func TestFoldPreservesLiveValues(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1111")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("2222")))
	require.Equal(t, NoError, a.Create("cccc", []byte("3333")))
	require.Equal(t, NoError, a.Delete("aaaa"))

	garbageBefore := a.GarbageSize()
	require.Greater(t, garbageBefore, 0)

	a.Fold(garbageBefore)
	require.Less(t, a.GarbageSize(), garbageBefore, "Fold must shrink GarbageSize when it folds a hole against the heap-frontier live descriptor")

	out := make([]byte, 4)
	require.Equal(t, NoError, a.Read("bbbb", out))
	require.Equal(t, []byte("2222"), out)
	require.Equal(t, NoError, a.Read("cccc", out))
	require.Equal(t, []byte("3333"), out)
}

func TestFoldBumpsGenerationWhenItActs(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1111")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("2222")))
	require.Equal(t, NoError, a.Delete("aaaa"))

	before := a.generation
	a.Fold(a.GarbageSize())
	require.Greater(t, a.generation, before)
}

func TestPackConservesBytes(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("11")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("22")))
	require.Equal(t, NoError, a.Delete("aaaa"))

	sizeBefore := a.SizeUsed()
	garbageBefore := a.GarbageSize()
	a.Pack(garbageBefore)
	require.Equal(t, sizeBefore, a.SizeUsed())
	require.LessOrEqual(t, a.GarbageSize(), garbageBefore)

	out := make([]byte, 2)
	require.Equal(t, NoError, a.Read("bbbb", out))
	require.Equal(t, []byte("22"), out)
}

// TestPackFiresOnNaturallyOrderedStack covers the case a same-size pair
// like TestPackConservesBytes can't: differently-sized hunks where the
// deleted entry (b, a 32-byte hunk) isn't at the heap frontier and has
// no live descriptor of the same size for Fold to swap into. Only Pack's
// contiguity check, applied to the stack in its natural creation order
// (never sorted by heap address), can make progress here.
func TestPackFiresOnNaturallyOrderedStack(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("a", []byte("11")))     // 16-byte hunk
	require.Equal(t, NoError, a.Create("b", make([]byte, 20))) // 32-byte hunk
	require.Equal(t, NoError, a.Create("c", []byte("33")))     // 16-byte hunk
	require.Equal(t, NoError, a.Delete("b"))                   // not at the frontier, no size-twin

	garbageBefore := a.GarbageSize()
	require.Equal(t, 32, garbageBefore)

	packed := a.Pack(garbageBefore)
	require.Greater(t, packed, 0, "Pack must fire on a naturally-ordered stack, not only after SortByHeap")

	out := make([]byte, 2)
	require.Equal(t, NoError, a.Read("a", out))
	require.Equal(t, []byte("11"), out)
	require.Equal(t, NoError, a.Read("c", out))
	require.Equal(t, []byte("33"), out)
}

// TestCleanReachesZeroGarbageWithDifferentSizedHoles is the Collect/Clean
// side of TestPackFiresOnNaturallyOrderedStack: once Pack can reposition
// a non-frontier, no-size-twin hole toward the frontier, Clean's
// postcondition (GarbageSize == 0) must hold even though neither Pop nor
// Fold alone could reach it.
func TestCleanReachesZeroGarbageWithDifferentSizedHoles(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("a", []byte("11")))
	require.Equal(t, NoError, a.Create("b", make([]byte, 20)))
	require.Equal(t, NoError, a.Create("c", []byte("33")))
	require.Equal(t, NoError, a.Delete("b"))

	require.Greater(t, a.GarbageSize(), 0)
	reclaimed := a.Clean()
	require.Greater(t, reclaimed, 0)
	require.Equal(t, 0, a.GarbageSize())

	out := make([]byte, 2)
	require.Equal(t, NoError, a.Read("a", out))
	require.Equal(t, []byte("11"), out)
	require.Equal(t, NoError, a.Read("c", out))
	require.Equal(t, []byte("33"), out)
}

func TestCollectDrainsAllGarbage(t *testing.T) {
	a := newTestArena(t, 4096)
	for i := 0; i < 8; i++ {
		require.Equal(t, NoError, a.Create(string(rune('a'+i)), []byte{byte(i)}))
	}
	for i := 0; i < 8; i += 2 {
		require.Equal(t, NoError, a.Delete(string(rune('a'+i))))
	}

	require.Greater(t, a.GarbageSize(), 0)
	reclaimed := a.Collect(a.GarbageSize())
	require.Greater(t, reclaimed, 0)

	for i := 1; i < 8; i += 2 {
		out := make([]byte, 1)
		require.Equal(t, NoError, a.Read(string(rune('a'+i)), out))
	}
}

func TestCleanReachesZeroGarbage(t *testing.T) {
	a := newTestArena(t, 4096)
	for i := 0; i < 8; i++ {
		require.Equal(t, NoError, a.Create(string(rune('a'+i)), []byte{byte(i)}))
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, NoError, a.Delete(string(rune('a'+i))))
	}

	a.Clean()
	require.Equal(t, 0, a.GarbageSize())
}

// TestCleanReachesZeroGarbageWithMixedLiveAndGarbage covers the case a
// pure delete-everything arena can't: a single non-frontier deletion left
// among live keys, which Pop alone cannot drain: Fold moves the frontier
// live value into the hole and releases the vacated frontier hunk.
func TestCleanReachesZeroGarbageWithMixedLiveAndGarbage(t *testing.T) {
	a := newTestArena(t, 4096)
	require.Equal(t, NoError, a.Create("aaaa", []byte("1111")))
	require.Equal(t, NoError, a.Create("bbbb", []byte("2222")))
	require.Equal(t, NoError, a.Create("cccc", []byte("3333")))
	require.Equal(t, NoError, a.Delete("aaaa")) // not on top of the stack

	require.Greater(t, a.GarbageSize(), 0)
	reclaimed := a.Clean()
	require.Greater(t, reclaimed, 0)
	require.Equal(t, 0, a.GarbageSize())

	out := make([]byte, 4)
	require.Equal(t, NoError, a.Read("bbbb", out))
	require.Equal(t, []byte("2222"), out)
	require.Equal(t, NoError, a.Read("cccc", out))
	require.Equal(t, []byte("3333"), out)
}

func TestGarbageSizeNonIncreasingUnderCollect(t *testing.T) {
	a := newTestArena(t, 4096)
	for i := 0; i < 10; i++ {
		require.Equal(t, NoError, a.Create(string(rune('a'+i)), []byte{byte(i), byte(i + 1)}))
	}
	for i := 0; i < 10; i += 3 {
		require.Equal(t, NoError, a.Delete(string(rune('a'+i))))
	}

	before := a.GarbageSize()
	a.Collect(before / 2)
	require.LessOrEqual(t, a.GarbageSize(), before)
}
