// Package orchestrator runs one evaluation pass over a corpus: infer a
// hypothesis per recording, load its reference, score the pair and
// collect the records in corpus order.
package orchestrator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/edmo-dereval/annotation"
)

type Evaluator struct {
	Inferrer   Inferrer
	Scorer     Scorer
	References ReferenceLoader
	Sink       HypothesisSink // optional
	Observer   Observer       // optional
	Log        logrus.FieldLogger
}

// outcome is the per-recording result: a record, or the error that kept
// the recording from being scored.
type outcome struct {
	rec Record
	err error
}

// Run evaluates the recordings of c one at a time, in order. A failing
// recording is recorded and the pass moves on; only cancellation of ctx
// stops it early, in which case the partial result is returned with
// ctx.Err().
func (e *Evaluator) Run(ctx context.Context, c Corpus) (CorpusResult, error) {
	log := e.logger()
	res := CorpusResult{Records: make([]Record, 0, len(c.IDs))}
	for _, id := range c.IDs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		o := e.evaluate(ctx, c, id)
		rec := o.rec
		if o.err != nil {
			rec.Status = StatusFailed
			rec.Err = o.err
			log.WithField("recording", id).WithError(o.err).Warn("recording failed")
		}
		res.Records = append(res.Records, rec)
		if e.Observer != nil {
			e.Observer.Record(rec)
		}
	}
	return res, nil
}

func (e *Evaluator) evaluate(ctx context.Context, c Corpus, id string) outcome {
	log := e.logger().WithField("recording", id)
	rec := Record{ID: id}

	hyp, err := e.Inferrer.Infer(ctx, c.AudioPath(id), id)
	if err != nil {
		return outcome{rec: rec, err: &InferenceError{ID: id, Err: err}}
	}
	if hyp == nil {
		hyp = annotation.New(id)
	}
	rec.HypSpeakers = len(hyp.Labels())
	defer e.persist(log, id, hyp)

	ref, err := e.References.Load(c.ReferencePath(id))
	if err != nil {
		log.WithError(err).Warn("reference unreadable, treating as missing")
		ref = annotation.New(id)
	}
	if ref.Len() == 0 {
		log.Info("no reference, skipping score")
		rec.Status = StatusNoReference
		return outcome{rec: rec}
	}
	rec.RefSpeakers = len(ref.Labels())
	rec.RefOverlap = ref.OverlapRatio()

	s, err := e.Scorer.Score(ctx, ref, hyp)
	if err != nil {
		return outcome{rec: rec, err: &ScoreError{ID: id, Err: err}}
	}
	rec.Status = StatusScored
	rec.DER = s.DER
	rec.Detail = s.Detail
	log.WithField("der", s.DER).Debug("scored")
	return outcome{rec: rec}
}

// persist saves the hypothesis. Failures are logged and otherwise ignored.
func (e *Evaluator) persist(log logrus.FieldLogger, id string, hyp *annotation.Annotation) {
	if e.Sink == nil {
		return
	}
	if err := e.Sink.SaveHypothesis(id, hyp); err != nil {
		log.WithError(err).Warn("could not save hypothesis")
	}
}

func (e *Evaluator) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}
