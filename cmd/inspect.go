package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/edmo-dereval/rttm"
)

func newInspectCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.rttm>...",
		Short: "Print speaker and overlap statistics of RTTM files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			rd := rttm.NewReader(newLogger(conf.Pipeline.LogLvl))
			out := cmd.OutOrStdout()
			for _, path := range args {
				a, err := rd.Load(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %d turns, %d speakers, speech %.3fs, overlap %.3fs (%.2f%%)\n",
					a.URI(), a.Len(), len(a.Labels()), a.SpeechDuration(), a.OverlapDuration(), a.OverlapRatio()*100)
				st := a.SpeakingTime()
				labels := a.Labels()
				sort.SliceStable(labels, func(i, j int) bool { return st[labels[i]] > st[labels[j]] })
				for _, l := range labels {
					fmt.Fprintf(out, "  %-20s %10.3fs\n", l, st[l])
				}
			}
			return nil
		},
	}
}
