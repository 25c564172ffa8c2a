package tbd

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for callers that
// share one arena across goroutines. Arena itself carries no lock, per
// the single-writer-at-a-time contract in the package doc; SafeArena
// serializes every call the same way the teacher bump allocator's own
// SafeArena wraps Alloc.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena wraps an already-initialized Arena.
func NewSafeArena(a *Arena) *SafeArena { return &SafeArena{a: a} }

func (s *SafeArena) Create(key string, value []byte) Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Create(key, value)
}

func (s *SafeArena) Read(key string, out []byte) Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Read(key, out)
}

func (s *SafeArena) ReadSize(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.ReadSize(key)
}

func (s *SafeArena) Update(key string, value []byte) Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Update(key, value)
}

func (s *SafeArena) Delete(key string) Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Delete(key)
}

func (s *SafeArena) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Clear()
}

func (s *SafeArena) Pop(limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Pop(limit)
}

func (s *SafeArena) Merge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Merge()
}

func (s *SafeArena) Fold(limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Fold(limit)
}

func (s *SafeArena) Pack(limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Pack(limit)
}

func (s *SafeArena) Collect(limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Collect(limit)
}

func (s *SafeArena) Clean() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Clean()
}

func (s *SafeArena) SortByKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.SortByKey()
}

func (s *SafeArena) SortByHeap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.SortByHeap()
}

func (s *SafeArena) StatsGet() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.StatsGet()
}
