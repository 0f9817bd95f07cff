package pipeline

// RunStats tracks aggregate counters across a batch run. Exactly one of
// Completed, AlreadyDone, or Failed is incremented per unit.
type RunStats struct {
	Total       int // Units discovered after splitting.
	Current     int // 1-based position of the unit being processed.
	Completed   int
	AlreadyDone int
	Failed      int
}

// Attempted returns how many units actually reached the worker.
func (s *RunStats) Attempted() int {
	return s.Completed + s.Failed
}
