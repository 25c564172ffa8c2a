package tbd

// Stats is a snapshot of arena statistics, generalizing the teacher
// bump-allocator's ArenaMetrics/Utilization observers to this store's own
// bookkeeping.
type Stats struct {
	Size         int
	SizeUsed     int
	HeadSize     int
	Count        int
	GarbageCount int
	GarbageSize  int
	Utilization  float64
}

// StatsGet returns a snapshot of the arena's current statistics.
func (a *Arena) StatsGet() Stats {
	size := a.Size()
	used := a.SizeUsed()
	util := 0.0
	if size > 0 {
		util = float64(used) / float64(size)
	}
	return Stats{
		Size:         size,
		SizeUsed:     used,
		HeadSize:     a.HeadSize(),
		Count:        a.Count(),
		GarbageCount: int(a.garbageCount),
		GarbageSize:  int(a.garbageSize),
		Utilization:  util,
	}
}
