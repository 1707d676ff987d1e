package rttm

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/maastricht-university/edmo-dereval/annotation"
)

const (
	// DefaultChannel is written in the channel field of every record.
	DefaultChannel = "1"
	placeholder    = "<NA>"
)

// Write emits one SPEAKER line per track of a, ordered by time.
func Write(w io.Writer, a *annotation.Annotation) error {
	uri := a.URI()
	if uri == "" {
		uri = placeholder
	}
	bw := bufio.NewWriter(w)
	for _, t := range a.Tracks() {
		_, err := fmt.Fprintf(bw, "%s %s %s %s %s %s %s %s %s %s\n",
			recordType, uri, DefaultChannel,
			formatSeconds(t.Segment.Start), formatDuration(t.Segment.Duration()),
			placeholder, placeholder, t.Label, placeholder, placeholder)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// formatSeconds prints v with three decimals when that is exact, and with
// the shortest exact representation otherwise. Float noise below 1ns is
// dropped first.
func formatSeconds(v float64) string {
	v = math.Round(v*1e9) / 1e9
	if s := strconv.FormatFloat(v, 'f', 3, 64); mustParse(s) == v {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDuration never prints a positive duration as zero.
func formatDuration(d float64) string {
	if s := formatSeconds(d); mustParse(s) > 0 || d <= 0 {
		return s
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func mustParse(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// WriteFile writes a to path, creating parent directories.
func WriteFile(path string, a *annotation.Annotation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, a); err != nil {
		f.Close()
		return fmt.Errorf("rttm write %s: %w", path, err)
	}
	return f.Close()
}
