package pipeline

// RunStats tracks aggregate counters across a task-file run.
type RunStats struct {
	Total     int
	Current   int
	Succeeded int
	Failed    int

	OutputFiles    int
	OversizedFiles int
	OutputBytes    int64
}

// AllSucceeded reports whether every executed task finished cleanly.
func (s *RunStats) AllSucceeded() bool {
	return s.Failed == 0
}
