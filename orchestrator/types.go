package orchestrator

import (
	"context"

	"github.com/maastricht-university/edmo-dereval/annotation"
)

type Status string

const (
	StatusScored      Status = "scored"
	StatusNoReference Status = "no_reference"
	StatusFailed      Status = "failed"
)

// Detail carries the DER components in seconds.
type Detail struct {
	Total           float64 `json:"total"`
	Confusion       float64 `json:"confusion"`
	MissedDetection float64 `json:"missed_detection"`
	FalseAlarm      float64 `json:"false_alarm"`
}

type Score struct {
	DER    float64
	Detail Detail
}

// Record is the outcome of one recording. DER and Detail are only
// meaningful when Status is StatusScored.
type Record struct {
	ID          string
	Status      Status
	DER         float64
	Detail      Detail
	RefSpeakers int
	HypSpeakers int
	RefOverlap  float64 // share of reference speech with 2+ speakers
	Err         error
}

func (r Record) Scored() bool { return r.Status == StatusScored }

// Inferrer produces the hypothesis for one recording.
type Inferrer interface {
	Infer(ctx context.Context, audioPath, sessionID string) (*annotation.Annotation, error)
}

// Scorer compares a reference with a hypothesis.
type Scorer interface {
	Score(ctx context.Context, ref, hyp *annotation.Annotation) (Score, error)
}

// ReferenceLoader returns the ground truth stored at path. A missing file
// must yield an empty annotation.
type ReferenceLoader interface {
	Load(path string) (*annotation.Annotation, error)
}

// HypothesisSink persists hypotheses for later audit.
type HypothesisSink interface {
	SaveHypothesis(id string, a *annotation.Annotation) error
}

// Observer is told about every record as soon as it is final.
type Observer interface {
	Record(Record)
}
