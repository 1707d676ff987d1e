package orchestrator

import "fmt"

// CorpusAccessError means the corpus itself cannot be read. It aborts the
// pass before anything is evaluated.
type CorpusAccessError struct {
	Path string
	Err  error
}

func (e *CorpusAccessError) Error() string {
	return fmt.Sprintf("corpus %s: %v", e.Path, e.Err)
}

func (e *CorpusAccessError) Unwrap() error { return e.Err }

// InferenceError wraps any failure of the inference collaborator for one
// recording.
type InferenceError struct {
	ID  string
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %v", e.ID, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// ScoreError wraps a failure of the metric collaborator for one recording.
type ScoreError struct {
	ID  string
	Err error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score %s: %v", e.ID, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }
