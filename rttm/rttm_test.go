package rttm

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/maastricht-university/edmo-dereval/annotation"
)

func newReader() (*Reader, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewReader(log), hook
}

func TestReader_TwoSpeakers(t *testing.T) {
	in := "SPEAKER a 1 0.0 2.5 <NA> <NA> spk1 <NA> <NA>\n" +
		"SPEAKER a 1 2.5 1.0 <NA> <NA> spk2 <NA> <NA>\n"
	rd, _ := newReader()
	a, err := rd.Read("a", strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a.Len() != 2 {
		t.Errorf("expected 2 tracks, got %d", a.Len())
	}
	if got, want := a.Labels(), []string{"spk1", "spk2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("labels: got %v, want %v", got, want)
	}
}

func TestReader_SkipsNonSpeakerLines(t *testing.T) {
	in := strings.Join([]string{
		"",
		";; comment line",
		"SPKR-INFO a 1 <NA> <NA> <NA> unknown spk1 <NA> <NA>",
		"SPEAKER a 1 0.0 1.0 <NA> <NA>",
		"speaker a 1 0.0 1.0 <NA> <NA> lower <NA> <NA>",
		"   SPEAKER   a 1 4.0 1.0 <NA> <NA> Spk1",
		"SPEAKER a 1 5.0 1.0 <NA> <NA> spk1 <NA> <NA>",
	}, "\n")
	rd, hook := newReader()
	a, err := rd.Read("a", strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a.Len() != 2 {
		t.Fatalf("expected 2 tracks, got %d", a.Len())
	}
	// labels are case-sensitive
	if got, want := a.Labels(), []string{"Spk1", "spk1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("labels: got %v, want %v", got, want)
	}
	for _, e := range hook.AllEntries() {
		if e.Level <= logrus.WarnLevel {
			t.Errorf("shape mismatches must be skipped silently, got %q", e.Message)
		}
	}
}

func TestReader_DropsNonPositiveDuration(t *testing.T) {
	in := "SPEAKER a 1 0.0 0.0 <NA> <NA> spk1 <NA> <NA>\n" +
		"SPEAKER a 1 1.0 -2.0 <NA> <NA> spk2 <NA> <NA>\n" +
		"SPEAKER a 1 1.0 abc <NA> <NA> spk3 <NA> <NA>\n" +
		"SPEAKER a 1 3.0 1.0 <NA> <NA> spk4 <NA> <NA>\n"
	rd, hook := newReader()
	a, err := rd.Read("a", strings.NewReader(in))
	if err != nil {
		t.Fatalf("invalid records must not fail the file: %v", err)
	}
	if got, want := a.Labels(), []string{"spk4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("labels: got %v, want %v", got, want)
	}
	warns := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warns++
		}
	}
	if warns != 3 {
		t.Errorf("expected 3 warnings, got %d", warns)
	}
}

func TestReader_KeepsNegativeStart(t *testing.T) {
	rd, _ := newReader()
	a, err := rd.Read("a", strings.NewReader("SPEAKER a 1 -0.5 1.0 <NA> <NA> spk1 <NA> <NA>\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a.Len() != 1 {
		t.Errorf("positive duration must be kept, got %d tracks", a.Len())
	}
}

func TestReader_OverlongLineIsSkipped(t *testing.T) {
	junk := strings.Repeat("x", 3*1024*1024)
	in := junk + "\n" +
		"SPEAKER a 1 0.0 1.0 <NA> <NA> spk1 <NA> <NA>\n" +
		"SPEAKER a 1 1.0 1.0 <NA> <NA> spk2 <NA> <NA>"
	rd, _ := newReader()
	a, err := rd.Read("a", strings.NewReader(in))
	if err != nil {
		t.Fatalf("overlong line must not fail the file: %v", err)
	}
	if a.Len() != 2 {
		t.Errorf("expected 2 tracks, got %d", a.Len())
	}
}

func TestScanner_LineNumbers(t *testing.T) {
	sc := NewScanner(strings.NewReader("junk\n\nSPEAKER a 1 0 1 <NA> <NA> s\r\nSPEAKER a 1 1 1 <NA> <NA> t"))
	var lines []int
	for sc.Scan() {
		lines = append(lines, sc.Record().Line)
		if sc.Record().Speaker() == "s\r" {
			t.Error("line endings must be stripped")
		}
	}
	if sc.Err() != nil {
		t.Fatal(sc.Err())
	}
	if !reflect.DeepEqual(lines, []int{3, 4}) {
		t.Errorf("got lines %v", lines)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:                   "0.000",
		2.5:                 "2.500",
		0.30000000000000004: "0.300",
		0.12345:             "0.12345",
		-0.5:                "-0.500",
	}
	for in, want := range cases {
		if got := formatSeconds(in); got != want {
			t.Errorf("formatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
	if got := formatDuration(1e-10); mustParse(got) <= 0 {
		t.Errorf("positive duration printed as %q", got)
	}
}

func TestReader_LoadMissingFile(t *testing.T) {
	rd, _ := newReader()
	a, err := rd.Load(filepath.Join(t.TempDir(), "nope.rttm"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if a.Len() != 0 {
		t.Errorf("expected empty annotation, got %d tracks", a.Len())
	}
	if a.URI() != "nope" {
		t.Errorf("expected uri nope, got %q", a.URI())
	}
}

func TestReader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec01.rttm")
	body := "SPEAKER rec01 1 0.500 1.250 <NA> <NA> A <NA> <NA>\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	rd, _ := newReader()
	a, err := rd.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.URI() != "rec01" || a.Len() != 1 {
		t.Errorf("got uri %q with %d tracks", a.URI(), a.Len())
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	lines := []string{
		"SPEAKER rec 1 0.000 2.500 <NA> <NA> spk1 <NA> <NA>",
		"SPEAKER rec 3 1.100 0.300 <NA> <NA> spk2 <NA> <NA>",
		"SPEAKER rec 1 12.345 6.789 <NA> <NA> SPEAKER_00 <NA> <NA>",
		"SPEAKER rec 1 7 1 x y spk3",
		"SPEAKER rec 1 1.0 0.0004 <NA> <NA> short <NA> <NA>",
		"SPEAKER rec 1 0.12345 1.23456 <NA> <NA> fine <NA> <NA>",
		"SPEAKER rec 1 -0.5 1.0 <NA> <NA> early <NA> <NA>",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			rd, _ := newReader()
			a, err := rd.Read("rec", strings.NewReader(line))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if a.Len() != 1 {
				t.Fatalf("expected 1 track, got %d", a.Len())
			}
			var buf bytes.Buffer
			if err := Write(&buf, a); err != nil {
				t.Fatalf("Write: %v", err)
			}
			in := strings.Fields(line)
			out := strings.Fields(buf.String())
			if len(out) != 10 {
				t.Fatalf("expected 10 fields, got %q", buf.String())
			}
			if out[0] != in[0] || out[7] != in[7] {
				t.Errorf("fields 1/8 changed: %q -> %q", line, buf.String())
			}
			for _, i := range []int{3, 4} {
				if !sameSeconds(t, in[i], out[i]) {
					t.Errorf("field %d changed: %s -> %s", i+1, in[i], out[i])
				}
			}
			if out[2] != DefaultChannel {
				t.Errorf("expected channel %s, got %s", DefaultChannel, out[2])
			}
			back, err := rd.Read("rec", &buf)
			if err != nil || back.Len() != 1 {
				t.Errorf("written line must read back as one track: %v", err)
			}
		})
	}
}

func sameSeconds(t *testing.T, a, b string) bool {
	t.Helper()
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		t.Fatal(err)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		t.Fatal(err)
	}
	return math.Abs(x-y) < 1e-9
}

func TestWrite_OrderAndPlaceholderURI(t *testing.T) {
	a := annotation.New("")
	_ = a.Add(annotation.Segment{Start: 3, End: 4}, "B")
	_ = a.Add(annotation.Segment{Start: 0, End: 1}, "A")
	var buf bytes.Buffer
	if err := Write(&buf, a); err != nil {
		t.Fatal(err)
	}
	want := "SPEAKER <NA> 1 0.000 1.000 <NA> <NA> A <NA> <NA>\n" +
		"SPEAKER <NA> 1 3.000 1.000 <NA> <NA> B <NA> <NA>\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteFile_CreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "rec.rttm")
	a := annotation.New("rec")
	_ = a.Add(annotation.Segment{Start: 0, End: 1}, "A")
	if err := WriteFile(path, a); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	rd, _ := newReader()
	back, err := rd.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 1 || back.Labels()[0] != "A" {
		t.Errorf("unexpected round trip: %v", back.Tracks())
	}
}
