// Package annotation holds the "who spoke when" model of one recording:
// a set of (segment, speaker label) pairs that may overlap in time.
package annotation

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSegment is returned for segments with a non-positive duration.
var ErrInvalidSegment = errors.New("invalid segment")

// Segment is the half-open time span [Start, End) in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewSegment validates the bounds and returns the segment.
func NewSegment(start, end float64) (Segment, error) {
	s := Segment{Start: start, End: end}
	if err := s.validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}

func (s Segment) validate() error {
	if !(s.End > s.Start) {
		return fmt.Errorf("%w: [%g, %g)", ErrInvalidSegment, s.Start, s.End)
	}
	return nil
}

func (s Segment) Duration() float64 { return s.End - s.Start }

// Track is one (segment, label) pair.
type Track struct {
	Segment Segment `json:"segment"`
	Label   string  `json:"label"`
}

// Annotation is the set of tracks of one recording. It is filled once by
// its producer and treated as read-only afterwards.
type Annotation struct {
	uri    string
	tracks []Track
	seen   map[Track]struct{}
}

// New returns an empty annotation for the recording uri.
func New(uri string) *Annotation {
	return &Annotation{uri: uri, seen: map[Track]struct{}{}}
}

func (a *Annotation) URI() string { return a.uri }

// Add inserts the pair. Adding an identical pair twice keeps one copy.
func (a *Annotation) Add(seg Segment, label string) error {
	if err := seg.validate(); err != nil {
		return err
	}
	if a.seen == nil {
		a.seen = map[Track]struct{}{}
	}
	t := Track{Segment: seg, Label: label}
	if _, ok := a.seen[t]; ok {
		return nil
	}
	a.seen[t] = struct{}{}
	a.tracks = append(a.tracks, t)
	return nil
}

// Len is the number of pairs.
func (a *Annotation) Len() int { return len(a.tracks) }

// Labels returns the distinct speaker labels, sorted.
func (a *Annotation) Labels() []string {
	set := map[string]struct{}{}
	for _, t := range a.tracks {
		set[t.Label] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Tracks returns a copy of the pairs ordered by start, end, then label.
func (a *Annotation) Tracks() []Track {
	out := make([]Track, len(a.tracks))
	copy(out, a.tracks)
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].Segment, out[j].Segment
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End < sj.End
		}
		return out[i].Label < out[j].Label
	})
	return out
}
