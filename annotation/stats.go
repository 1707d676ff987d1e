package annotation

import "sort"

type edge struct {
	t     float64
	delta int
}

// sweep walks segment boundaries in time order and calls fn for every
// span between two boundaries with the number of tracks active in it.
func (a *Annotation) sweep(fn func(span float64, active int)) {
	if len(a.tracks) == 0 {
		return
	}
	edges := make([]edge, 0, 2*len(a.tracks))
	for _, t := range a.tracks {
		edges = append(edges, edge{t: t.Segment.Start, delta: +1}, edge{t: t.Segment.End, delta: -1})
	}
	// ends before starts at equal times so touching segments do not overlap
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t != edges[j].t {
			return edges[i].t < edges[j].t
		}
		return edges[i].delta < edges[j].delta
	})
	active := 0
	last := edges[0].t
	for _, e := range edges {
		if span := e.t - last; span > 0 {
			fn(span, active)
		}
		active += e.delta
		last = e.t
	}
}

// SpeechDuration is the length of time covered by at least one track.
func (a *Annotation) SpeechDuration() float64 {
	total := 0.0
	a.sweep(func(span float64, active int) {
		if active > 0 {
			total += span
		}
	})
	return total
}

// OverlapDuration is the length of time covered by two or more tracks.
func (a *Annotation) OverlapDuration() float64 {
	total := 0.0
	a.sweep(func(span float64, active int) {
		if active > 1 {
			total += span
		}
	})
	return total
}

// OverlapRatio is OverlapDuration over SpeechDuration, 0 for silence.
func (a *Annotation) OverlapRatio() float64 {
	speech := a.SpeechDuration()
	if speech == 0 {
		return 0
	}
	return a.OverlapDuration() / speech
}

// SpeakingTime sums segment durations per label.
func (a *Annotation) SpeakingTime() map[string]float64 {
	out := map[string]float64{}
	for _, t := range a.tracks {
		out[t.Label] += t.Segment.Duration()
	}
	return out
}
