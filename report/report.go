// Package report prints the per-recording DER table and the corpus mean,
// and writes the audit artifacts of a pass to the output directory.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/edmo-dereval/annotation"
	"github.com/maastricht-university/edmo-dereval/orchestrator"
	"github.com/maastricht-university/edmo-dereval/rttm"
)

const (
	ruleWidth = 80
	rowFormat = "%-30s | %-10s | %s\n"
)

var (
	_ orchestrator.Observer       = (*Reporter)(nil)
	_ orchestrator.HypothesisSink = (*Reporter)(nil)
)

type Reporter struct {
	out io.Writer
	dir string
	log logrus.FieldLogger
}

// New returns a reporter printing to out and saving files under dir.
func New(out io.Writer, dir string, log logrus.FieldLogger) *Reporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reporter{out: out, dir: dir, log: log}
}

func (r *Reporter) rule() { fmt.Fprintln(r.out, strings.Repeat("-", ruleWidth)) }

func (r *Reporter) Header() {
	r.rule()
	fmt.Fprintf(r.out, rowFormat, "File", "DER (%)", "Speakers (ref/hyp)")
	r.rule()
}

// Row prints one scored record. Other records are left to the log.
func (r *Reporter) Row(rec orchestrator.Record) {
	if !rec.Scored() {
		return
	}
	fmt.Fprintf(r.out, rowFormat, rec.ID, Percent(rec.DER),
		fmt.Sprintf("%d / %d", rec.RefSpeakers, rec.HypSpeakers))
}

// Record lets the reporter observe an evaluation pass.
func (r *Reporter) Record(rec orchestrator.Record) { r.Row(rec) }

// Summary prints the corpus mean, or says explicitly that there is none.
func (r *Reporter) Summary(res orchestrator.CorpusResult) {
	scored, skipped, failed := res.Counts()
	r.rule()
	if mean, ok := res.MeanDER(); ok {
		fmt.Fprintf(r.out, "Mean DER: %.2f%% over %d scored (%d without reference, %d failed)\n",
			mean*100, scored, skipped, failed)
	} else {
		fmt.Fprintf(r.out, "Mean DER: undefined, no recording was scored (%d without reference, %d failed)\n",
			skipped, failed)
	}
	r.rule()
}

// SaveHypothesis writes a as <dir>/<id>.rttm.
func (r *Reporter) SaveHypothesis(id string, a *annotation.Annotation) error {
	path := filepath.Join(r.dir, id+".rttm")
	if err := rttm.WriteFile(path, a); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{"recording": id, "path": path}).Debug("hypothesis saved")
	return nil
}

// Percent renders a DER ratio as in the table, e.g. 0.0712 -> "07.12%".
func Percent(der float64) string {
	return fmt.Sprintf("%05.2f%%", der*100)
}
