package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/maastricht-university/edmo-dereval/orchestrator"
)

const summaryFile = "summary.json"

type RecordRow struct {
	ID          string               `json:"id"`
	Status      orchestrator.Status  `json:"status"`
	DER         *float64             `json:"der"`
	Detail      *orchestrator.Detail `json:"detail,omitempty"`
	RefSpeakers int                  `json:"ref_speakers"`
	HypSpeakers int                  `json:"hyp_speakers"`
	RefOverlap  float64              `json:"ref_overlap_ratio"`
	Error       string               `json:"error,omitempty"`
}

type SummaryBundle struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Records     []RecordRow `json:"records"`
	MeanDER     *float64    `json:"mean_der"` // null when nothing was scored
	Scored      int         `json:"scored"`
	Skipped     int         `json:"skipped"`
	Failed      int         `json:"failed"`
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bundle(res orchestrator.CorpusResult, now time.Time) SummaryBundle {
	b := SummaryBundle{
		RunID:       uuid.NewString(),
		GeneratedAt: now,
		Records:     make([]RecordRow, 0, len(res.Records)),
	}
	for _, rec := range res.Records {
		row := RecordRow{
			ID:          rec.ID,
			Status:      rec.Status,
			RefSpeakers: rec.RefSpeakers,
			HypSpeakers: rec.HypSpeakers,
			RefOverlap:  rec.RefOverlap,
		}
		if rec.Scored() {
			der, detail := rec.DER, rec.Detail
			row.DER, row.Detail = &der, &detail
		}
		if rec.Err != nil {
			row.Error = rec.Err.Error()
		}
		b.Records = append(b.Records, row)
	}
	if mean, ok := res.MeanDER(); ok {
		b.MeanDER = &mean
	}
	b.Scored, b.Skipped, b.Failed = res.Counts()
	return b
}

// WriteSummary writes the records and the aggregate of res to
// <dir>/summary.json and returns the path.
func (r *Reporter) WriteSummary(res orchestrator.CorpusResult) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.dir, summaryFile)
	if err := writeJSON(path, bundle(res, time.Now())); err != nil {
		return "", err
	}
	return path, nil
}
