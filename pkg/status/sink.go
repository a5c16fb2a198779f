package status

import (
	"io"
	"log"
	"sync"

	"github.com/itohio/gopump/pkg/pump"
)

// WriterSink writes one status line per report. Write failures never block
// actuation; the last one is kept for inspection.
type WriterSink struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
	err error
}

var _ pump.Sink = (*WriterSink)(nil)

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w, buf: make([]byte, 0, 32)}
}

// Report writes the encoded status followed by a newline.
func (s *WriterSink) Report(st pump.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = Append(s.buf[:0], st)
	s.buf = append(s.buf, '\n')
	if _, err := s.w.Write(s.buf); err != nil {
		s.err = err
	}
}

// Err returns the last write error, if any.
func (s *WriterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// LogSink logs every report with the standard logger.
type LogSink struct {
	Logger *log.Logger // nil uses the standard logger
}

var _ pump.Sink = LogSink{}

// Report logs st.
func (l LogSink) Report(st pump.Status) {
	if l.Logger != nil {
		l.Logger.Printf("motor %s %s %d%% duty=%d pot=%d flow=%.1f", st.Motor, st.Direction, st.Percent, st.Duty, st.Pot, st.Flow)
		return
	}
	log.Printf("motor %s %s %d%% duty=%d pot=%d flow=%.1f", st.Motor, st.Direction, st.Percent, st.Duty, st.Pot, st.Flow)
}
