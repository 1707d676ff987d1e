package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maastricht-university/edmo-dereval/clients"
	cfg "github.com/maastricht-university/edmo-dereval/config"
	"github.com/maastricht-university/edmo-dereval/orchestrator"
	"github.com/maastricht-university/edmo-dereval/report"
	"github.com/maastricht-university/edmo-dereval/rttm"
)

type loader func() (*cfg.Root, error)

func newRunCommand(v *viper.Viper, load loader) *cobra.Command {
	var only []string
	c := &cobra.Command{
		Use:   "run",
		Short: "Diarize every recording of the corpus and report DER",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			if err := conf.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runEvaluation(ctx, cmd, conf, only)
		},
	}
	f := c.Flags()
	f.String("audio-dir", "", "directory of recordings to evaluate")
	f.String("reference-dir", "", "directory of ground-truth RTTM files")
	f.StringP("output-dir", "o", "", "directory for hypothesis RTTM files and summary.json")
	f.String("diarization-url", "", "diarization service base URL")
	f.String("model", "", "model name passed to the diarization service")
	f.StringSliceVar(&only, "only", nil, "evaluate only these recording ids")
	bind(v, f.Lookup("audio-dir"), cfg.KeyAudioDir)
	bind(v, f.Lookup("reference-dir"), cfg.KeyReferenceDir)
	bind(v, f.Lookup("output-dir"), cfg.KeyOutputDir)
	bind(v, f.Lookup("diarization-url"), cfg.KeyDiarizationURL)
	bind(v, f.Lookup("model"), cfg.KeyModel)
	return c
}

func runEvaluation(ctx context.Context, cmd *cobra.Command, conf *cfg.Root, only []string) error {
	log := newLogger(conf.Pipeline.LogLvl)

	corpus, err := orchestrator.OpenCorpus(conf.Paths.Audio, conf.Paths.References,
		conf.Evaluation.AudioExt, conf.Evaluation.ReferenceExt)
	if err != nil {
		return err
	}
	if len(only) > 0 {
		corpus.IDs = filterIDs(corpus.IDs, only)
	}
	if err := os.MkdirAll(conf.Paths.Outputs, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	log.WithFields(logrus.Fields{
		"recordings":  len(corpus.IDs),
		"audio":       conf.Paths.Audio,
		"references":  conf.Paths.References,
		"diarization": conf.Services.Diarization.URL,
		"model":       conf.Services.Diarization.Model,
	}).Info("starting evaluation")

	rep := report.New(cmd.OutOrStdout(), conf.Paths.Outputs, log)
	ev := &orchestrator.Evaluator{
		Inferrer: orchestrator.ServiceInferrer{
			HTTP:  clients.NewHTTP(cfg.DurSeconds(conf.Services.Diarization.Timeout)),
			URL:   conf.Services.Diarization.URL,
			Model: conf.Services.Diarization.Model,
		},
		Scorer:     newScorer(conf),
		References: rttm.NewReader(log),
		Sink:       rep,
		Observer:   rep,
		Log:        log,
	}

	rep.Header()
	res, runErr := ev.Run(ctx, corpus)
	rep.Summary(res)
	if path, err := rep.WriteSummary(res); err != nil {
		log.WithError(err).Warn("could not write summary")
	} else {
		log.WithField("path", path).Info("summary written")
	}
	return runErr
}

func newScorer(conf *cfg.Root) orchestrator.ServiceScorer {
	return orchestrator.ServiceScorer{
		HTTP:        clients.NewHTTP(cfg.DurSeconds(conf.Services.Metric.Timeout)),
		URL:         conf.Services.Metric.URL,
		Collar:      conf.Evaluation.Collar,
		SkipOverlap: conf.Evaluation.SkipOverlap,
	}
}

// filterIDs keeps the ids listed in only, in corpus order.
func filterIDs(ids, only []string) []string {
	want := make(map[string]bool, len(only))
	for _, id := range only {
		want[id] = true
	}
	out := make([]string, 0, len(only))
	for _, id := range ids {
		if want[id] {
			out = append(out, id)
		}
	}
	return out
}
