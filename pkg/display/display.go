// Package display lays out pump status for small text or pixel screens.
//
// The layout follows the 128x64 OLED of the original board:
//
//	DC %  Dir  ml/min
//	50    F    12.3
//	0     O    0.0
package display

import (
	"sort"
	"strconv"
	"sync"

	"github.com/chewxy/math32"

	"github.com/itohio/gopump/pkg/pump"
)

// Column offsets in pixels.
const (
	ColPercent = 0
	ColDir     = 46
	ColFlow    = 72

	HeaderY    = 0
	FirstRowY  = 16
	RowSpacing = 24
)

// Header labels in column order.
var Header = [3]string{"DC %", "Dir", "ml/min"}

// Row is the rendered state of one assembly.
type Row struct {
	Motor   pump.MotorID
	Percent string
	Dir     string
	Flow    string
}

// Cell is one piece of text placed on a pixel screen.
type Cell struct {
	X, Y  int16
	Large bool // rows are drawn at twice the header size
	Text  string
}

// Screen keeps the latest row per motor. It implements pump.Sink.
type Screen struct {
	mu    sync.RWMutex
	rows  map[pump.MotorID]Row
	dirty bool
}

var _ pump.Sink = (*Screen)(nil)

// New creates an empty screen.
func New() *Screen {
	return &Screen{rows: make(map[pump.MotorID]Row, 2)}
}

// Report replaces the row of st.Motor.
func (s *Screen) Report(st pump.Status) {
	row := Format(st)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows[st.Motor] != row {
		s.rows[st.Motor] = row
		s.dirty = true
	}
}

// Rows returns the current rows ordered by motor.
func (s *Screen) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Motor < rows[j].Motor })
	return rows
}

// Lines renders the header and rows as fixed-width text.
func (s *Screen) Lines() []string {
	rows := s.Rows()
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, pad(Header[0], 6)+pad(Header[1], 5)+Header[2])
	for _, r := range rows {
		lines = append(lines, pad(r.Percent, 6)+pad(r.Dir, 5)+r.Flow)
	}
	return lines
}

// Cells places the header and rows on a pixel screen.
func (s *Screen) Cells() []Cell {
	rows := s.Rows()
	cells := []Cell{
		{X: ColPercent, Y: HeaderY, Text: Header[0]},
		{X: ColDir - 2, Y: HeaderY, Text: Header[1]},
		{X: ColFlow - 2, Y: HeaderY, Text: Header[2]},
	}
	for i, r := range rows {
		y := int16(FirstRowY + i*RowSpacing)
		cells = append(cells,
			Cell{X: ColPercent, Y: y, Large: true, Text: r.Percent},
			Cell{X: ColDir, Y: y, Large: true, Text: r.Dir},
			Cell{X: ColFlow, Y: y, Large: true, Text: r.Flow},
		)
	}
	return cells
}

// TakeDirty reports whether rows changed since the last call and clears the flag.
func (s *Screen) TakeDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.dirty
	s.dirty = false
	return d
}

// Format renders a status as a display row. Flow is shown with one decimal.
func Format(st pump.Status) Row {
	return Row{
		Motor:   st.Motor,
		Percent: strconv.Itoa(st.Percent),
		Dir:     string(st.Direction.Letter()),
		Flow:    FormatFlow(st.Flow),
	}
}

// FormatFlow rounds flow to one decimal in single precision, as the board does.
func FormatFlow(flow float64) string {
	f := math32.Round(float32(flow)*10) / 10
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(float64(f), 'f', 1, 32)
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
