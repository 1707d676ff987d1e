// Package rttm reads and writes speaker turns in the Rich Transcription
// Time Marked format:
//
//	SPEAKER <uri> <channel> <start> <duration> <NA> <NA> <speaker> <NA> <NA>
//
// Reading is tolerant: lines that are not SPEAKER records with at least
// eight fields are skipped.
package rttm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/maastricht-university/edmo-dereval/annotation"
)

const (
	recordType = "SPEAKER"
	minFields  = 8
)

// Record is one SPEAKER line split into its whitespace fields.
type Record struct {
	Line   int
	Fields []string
}

func (r Record) URI() string     { return r.Fields[1] }
func (r Record) Channel() string { return r.Fields[2] }
func (r Record) Speaker() string { return r.Fields[7] }

// Segment parses the start and duration fields.
func (r Record) Segment() (annotation.Segment, error) {
	start, err := strconv.ParseFloat(r.Fields[3], 64)
	if err != nil {
		return annotation.Segment{}, fmt.Errorf("start: %w", err)
	}
	dur, err := strconv.ParseFloat(r.Fields[4], 64)
	if err != nil {
		return annotation.Segment{}, fmt.Errorf("duration: %w", err)
	}
	return annotation.NewSegment(start, start+dur)
}

// Scanner yields the SPEAKER records of a stream one line at a time.
// Lines have no length limit.
type Scanner struct {
	r    *bufio.Reader
	line int
	rec  Record
	done bool
	err  error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// Scan advances to the next SPEAKER record. It returns false at the end
// of input or on a read error, see Err.
func (s *Scanner) Scan() bool {
	for !s.done {
		text, err := s.r.ReadString('\n')
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.err = err
				return false
			}
			if text == "" {
				return false
			}
		}
		s.line++
		fields := strings.Fields(text)
		if len(fields) < minFields || fields[0] != recordType {
			continue
		}
		s.rec = Record{Line: s.line, Fields: fields}
		return true
	}
	return false
}

func (s *Scanner) Record() Record { return s.rec }

func (s *Scanner) Err() error { return s.err }
