package rttm

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/edmo-dereval/annotation"
)

// Reader builds annotations from RTTM input.
type Reader struct {
	log logrus.FieldLogger
}

func NewReader(log logrus.FieldLogger) *Reader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{log: log}
}

// Read collects every valid SPEAKER record of r into an annotation for uri.
// Records with unparsable numbers or a non-positive duration are dropped
// with a warning; only read errors are returned.
func (rd *Reader) Read(uri string, r io.Reader) (*annotation.Annotation, error) {
	ann := annotation.New(uri)
	sc := NewScanner(r)
	for sc.Scan() {
		rec := sc.Record()
		seg, err := rec.Segment()
		if err == nil {
			err = ann.Add(seg, rec.Speaker())
		}
		if err != nil {
			rd.log.WithFields(logrus.Fields{
				"uri":  uri,
				"line": rec.Line,
			}).WithError(err).Warn("rttm: skipping record")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rttm read %s: %w", uri, err)
	}
	return ann, nil
}

// Load reads the file at path. A missing file yields an empty annotation
// and no error, so callers can treat absent ground truth as "nothing to
// compare against".
func (rd *Reader) Load(path string) (*annotation.Annotation, error) {
	uri := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		rd.log.WithField("path", path).Debug("rttm: no reference file")
		return annotation.New(uri), nil
	}
	if err != nil {
		return nil, fmt.Errorf("rttm open: %w", err)
	}
	defer f.Close()
	return rd.Read(uri, f)
}
