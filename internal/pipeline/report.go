package pipeline

// Failure records one unconverted file and why it failed.
type Failure struct {
	Name   string
	Reason string
}

// Report aggregates the outcome of one batch run. It is created fresh per
// run and never persisted.
type Report struct {
	Total       int // Files discovered.
	Converted   int
	Failed      int
	Tracks      int  // Path entries written across all converted files.
	Fallbacks   int  // Files that needed the Windows-1252 decode fallback.
	Interrupted bool // Batch stopped early on context cancellation.

	// Failures lists (filename, reason) pairs in processing order.
	Failures []Failure
}

func (r *Report) recordConverted(tracks int) {
	r.Converted++
	r.Tracks += tracks
}

func (r *Report) recordFailed(name, reason string) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{Name: name, Reason: reason})
}
