package orchestrator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Corpus is the ordered list of recordings of one evaluation pass.
type Corpus struct {
	AudioDir     string
	ReferenceDir string
	AudioExt     string
	ReferenceExt string
	IDs          []string
}

func (c Corpus) AudioPath(id string) string {
	return filepath.Join(c.AudioDir, id+c.AudioExt)
}

func (c Corpus) ReferencePath(id string) string {
	return filepath.Join(c.ReferenceDir, id+c.ReferenceExt)
}

// OpenCorpus lists every audioExt file of audioDir, sorted by name.
func OpenCorpus(audioDir, referenceDir, audioExt, referenceExt string) (Corpus, error) {
	ids, err := ListCorpus(audioDir, audioExt)
	if err != nil {
		return Corpus{}, err
	}
	return Corpus{
		AudioDir:     audioDir,
		ReferenceDir: referenceDir,
		AudioExt:     audioExt,
		ReferenceExt: referenceExt,
		IDs:          ids,
	}, nil
}

// ListCorpus returns the base names, without ext, of the files in dir that
// end in ext, in file name order.
func ListCorpus(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &CorpusAccessError{Path: dir, Err: err}
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == ext || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, name)
	}
	// order by file name, suffix included
	sort.Strings(names)
	ids := make([]string, 0, len(names))
	for _, name := range names {
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	return ids, nil
}

// CorpusResult is the ordered list of records of one pass.
type CorpusResult struct {
	Records []Record
}

// MeanDER averages DER over scored records. ok is false when nothing was
// scored, which is not the same as a mean of zero.
func (c CorpusResult) MeanDER() (mean float64, ok bool) {
	n := 0
	for _, r := range c.Records {
		if !r.Scored() {
			continue
		}
		mean += r.DER
		n++
	}
	if n == 0 {
		return 0, false
	}
	return mean / float64(n), true
}

func (c CorpusResult) Counts() (scored, skipped, failed int) {
	for _, r := range c.Records {
		switch r.Status {
		case StatusScored:
			scored++
		case StatusNoReference:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return scored, skipped, failed
}
