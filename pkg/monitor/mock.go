package monitor

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/itohio/gopump/pkg/clock"
	"github.com/itohio/gopump/pkg/config"
	"github.com/itohio/gopump/pkg/hw"
	"github.com/itohio/gopump/pkg/pump"
)

// Mock runs the pump controller against a simulated pin bank on the actuation
// clock and emits the reports it produces.
type Mock struct {
	cfg *config.Config

	pins       *hw.Mock
	ctrl       *pump.Controller
	assemblies []*pump.Assembly

	reports   chan pump.Status
	mu        sync.RWMutex
	cancel    context.CancelFunc
	done      chan struct{}
	connected bool
	closed    bool
}

// NewMock configures a simulated board from cfg. Configuration errors are
// returned here, never from a tick.
func NewMock(cfg *config.Config) (*Mock, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	m := &Mock{
		cfg:     cfg,
		pins:    hw.NewMock(),
		reports: make(chan pump.Status, DefaultBufferSize),
	}

	ctrl, assemblies, err := cfg.Build(m.pins, pump.SinkFunc(m.emit))
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.assemblies = assemblies

	dir, err := config.ParseDirection(cfg.Mock.Direction)
	if err != nil {
		return nil, fmt.Errorf("mock direction: %w", err)
	}
	for _, a := range assemblies {
		m.pins.Watch(a.Motor())
		m.pins.SetAnalog(a.Switches().Pot, cfg.Mock.Pot)
		m.pins.SetDirection(a.Switches(), dir)
	}

	return m, nil
}

// Pins returns the simulated pin bank so callers can turn knobs and flip switches.
func (m *Mock) Pins() *hw.Mock {
	return m.pins
}

// Assemblies returns the simulated assemblies.
func (m *Mock) Assemblies() []*pump.Assembly {
	return m.assemblies
}

// Connect starts ticking. With a run duration configured the simulation stops
// every motor when the duration elapses.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}
	if m.closed {
		return fmt.Errorf("mock is closed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.connected = true

	go m.run(ctx)

	return nil
}

func (m *Mock) run(ctx context.Context) {
	defer close(m.done)

	interval := m.cfg.Clock.TickInterval
	var err error
	if m.cfg.Clock.RunDuration > 0 {
		err = clock.Timed(ctx, interval, m.cfg.Clock.RunDuration, m.ctrl.TickAll, m.ctrl.StopAll)
		if err == nil {
			log.Printf("Timed run of %v finished", m.cfg.Clock.RunDuration)
		}
		return
	}

	err = clock.Run(ctx, interval, m.ctrl.TickAll)
	m.ctrl.StopAll()
	if err != nil && ctx.Err() == nil {
		log.Printf("Clock stopped: %v", err)
	}
}

// Close stops ticking, stops every motor and closes the reports channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	<-m.done
	m.connected = false
	m.closed = true
	close(m.reports)

	return nil
}

// Reports returns the channel for reading reports.
func (m *Mock) Reports() <-chan pump.Status {
	return m.reports
}

// IsConnected returns whether the simulation is running.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Mock) emit(s pump.Status) {
	select {
	case m.reports <- s:
	default:
		// Channel full, skip
	}
}
