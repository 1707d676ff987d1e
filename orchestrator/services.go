package orchestrator

import (
	"context"
	"fmt"

	"github.com/maastricht-university/edmo-dereval/annotation"
	"github.com/maastricht-university/edmo-dereval/clients"
)

// ServiceInferrer runs inference on the diarization sidecar.
type ServiceInferrer struct {
	HTTP  *clients.HTTP
	URL   string
	Model string
}

func (s ServiceInferrer) Infer(ctx context.Context, audioPath, sessionID string) (*annotation.Annotation, error) {
	resp, err := s.HTTP.Diarize(ctx, s.URL, audioPath, sessionID, s.Model)
	if err != nil {
		return nil, err
	}
	hyp := annotation.New(sessionID)
	for i, seg := range resp.Segments {
		if err := hyp.Add(annotation.Segment{Start: seg.Start, End: seg.End}, seg.Speaker); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return hyp, nil
}

// ServiceScorer computes DER on the metric sidecar.
type ServiceScorer struct {
	HTTP        *clients.HTTP
	URL         string
	Collar      float64
	SkipOverlap bool
}

func (s ServiceScorer) Score(ctx context.Context, ref, hyp *annotation.Annotation) (Score, error) {
	resp, err := s.HTTP.Score(ctx, s.URL, clients.DERReq{
		URI:         ref.URI(),
		Reference:   toSegs(ref),
		Hypothesis:  toSegs(hyp),
		Collar:      s.Collar,
		SkipOverlap: s.SkipOverlap,
	})
	if err != nil {
		return Score{}, err
	}
	return Score{
		DER: resp.DER,
		Detail: Detail{
			Total:           resp.Total,
			Confusion:       resp.Confusion,
			MissedDetection: resp.MissedDetection,
			FalseAlarm:      resp.FalseAlarm,
		},
	}, nil
}

func toSegs(a *annotation.Annotation) []clients.SpkSeg {
	tracks := a.Tracks()
	out := make([]clients.SpkSeg, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, clients.SpkSeg{Start: t.Segment.Start, End: t.Segment.End, Speaker: t.Label})
	}
	return out
}
