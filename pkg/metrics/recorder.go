// Package metrics exposes observability hooks for documentation runs.
package metrics

import "time"

// Outcome labels a per-file or per-run result.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Recorder receives run and file level measurements. The pipeline always
// holds a Recorder; NoopRecorder is used when metrics are not configured.
type Recorder interface {
	IncFileResult(outcome Outcome)
	ObserveRunDuration(mode string, d time.Duration)
	IncIndexBuild(outcome Outcome)
	IncCacheLookup(hit bool)
	IncWatchEvent()
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncFileResult(Outcome)                    {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) IncIndexBuild(Outcome)                    {}
func (NoopRecorder) IncCacheLookup(bool)                      {}
func (NoopRecorder) IncWatchEvent()                           {}

// OutcomeOf maps an error to its Outcome label.
func OutcomeOf(err error) Outcome {
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeSuccess
}
