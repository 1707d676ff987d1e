package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-dereval/orchestrator"
	"github.com/maastricht-university/edmo-dereval/report"
	"github.com/maastricht-university/edmo-dereval/rttm"
)

func newScoreCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "score <reference.rttm> <hypothesis.rttm>",
		Short: "Score an existing hypothesis RTTM against its reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			if conf.Services.Metric.URL == "" {
				return errors.New("config: services.metric.url is required")
			}
			log := newLogger(conf.Pipeline.LogLvl)
			rd := rttm.NewReader(log)

			ref, err := rd.Load(args[0])
			if err != nil {
				return err
			}
			if ref.Len() == 0 {
				return fmt.Errorf("%s: no reference turns, DER is undefined", args[0])
			}
			hyp, err := rd.Load(args[1])
			if err != nil {
				return err
			}

			s, err := newScorer(conf).Score(cmd.Context(), ref, hyp)
			if err != nil {
				return &orchestrator.ScoreError{ID: ref.URI(), Err: err}
			}
			rep := report.New(cmd.OutOrStdout(), "", log)
			rep.Header()
			rep.Row(orchestrator.Record{
				ID:          ref.URI(),
				Status:      orchestrator.StatusScored,
				DER:         s.DER,
				Detail:      s.Detail,
				RefSpeakers: len(ref.Labels()),
				HypSpeakers: len(hyp.Labels()),
			})
			return nil
		},
	}
}
