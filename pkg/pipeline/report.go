package pipeline

import "time"

// FileResult is the outcome of processing one candidate file.
type FileResult struct {
	// Path is the candidate source file.
	Path string
	// Component is the resolved component name, empty when the file could
	// not be read.
	Component string
	// Output is the document name the page was saved under.
	Output string
	// Success reports whether the page was rendered and, outside Check,
	// written.
	Success bool
	Err     error
	// Warnings are non-fatal syntax diagnostics of the behavior zone.
	Warnings []string
	// CacheHit reports whether extraction was served from the cache.
	CacheHit bool
	// Diff is the unified diff against the stored page. Only set by Check.
	Diff string
}

// Report summarizes one batch run.
type Report struct {
	Files []FileResult
	// Processed counts files that succeeded.
	Processed int
	Failed    int
	// IndexErr is set when the index could not be built or saved.
	IndexErr error
	// StageErr is set when generated pages could not be staged in git. It
	// does not affect Success.
	StageErr error
	Duration time.Duration
}

// Success is true when every file and the index succeeded.
func (r *Report) Success() bool {
	return r.Failed == 0 && r.IndexErr == nil
}

// Stale returns the files whose stored page differs from a fresh render.
func (r *Report) Stale() []FileResult {
	var stale []FileResult
	for _, f := range r.Files {
		if f.Diff != "" {
			stale = append(stale, f)
		}
	}
	return stale
}

func (r *Report) add(res FileResult) {
	r.Files = append(r.Files, res)
	if res.Success {
		r.Processed++
	} else {
		r.Failed++
	}
}
