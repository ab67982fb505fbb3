package trace

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/dshills/dragstream/internal/input/mouse"
)

// maxLine bounds a single trace line when replaying.
const maxLine = 64 * 1024

// Recorder is a mouse.GestureSink that writes one JSON line per sample.
// After the first write error it stops writing and reports that error
// from Err.
type Recorder struct {
	w     io.Writer
	count int
	err   error
}

var _ mouse.GestureSink = (*Recorder)(nil)

// NewRecorder creates a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// HandleDrag implements mouse.GestureSink.
func (r *Recorder) HandleDrag(s mouse.Sample) {
	if r.err != nil {
		return
	}
	line, err := Encode(s)
	if err != nil {
		r.err = err
		return
	}
	line = append(line, '\n')
	if _, err := r.w.Write(line); err != nil {
		r.err = fmt.Errorf("writing trace: %w", err)
		return
	}
	r.count++
}

// Count returns the number of samples written.
func (r *Recorder) Count() int {
	return r.count
}

// Err returns the first write or encode error.
func (r *Recorder) Err() error {
	return r.err
}

// Flush flushes the underlying writer if it buffers.
func (r *Recorder) Flush() error {
	if f, ok := r.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil && r.err == nil {
			r.err = fmt.Errorf("flushing trace: %w", err)
		}
	}
	return r.err
}

// Replay decodes each line of rd and delivers its sample to sink. Blank
// lines are skipped. It returns the number of samples delivered; on a bad
// line it stops and reports the line number.
func Replay(rd io.Reader, sink mouse.GestureSink) (int, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	n, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := Decode(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if sink != nil {
			sink.HandleDrag(rec.Sample)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading trace: %w", err)
	}
	return n, nil
}
