//go:build tinygo

//go:generate tinygo flash -target=arduino

package main

import (
	"context"
	"machine"

	"github.com/itohio/gopump/pkg/clock"
	"github.com/itohio/gopump/pkg/display"
	"github.com/itohio/gopump/pkg/hw"
	"github.com/itohio/gopump/pkg/pump"
	"github.com/itohio/gopump/pkg/status"
)

func main() {
	uart := machine.Serial
	uart.Configure(machine.UARTConfig{BaudRate: UART_BAUD_RATE})

	screen := display.New()
	oled := newOLED(screen)
	sink := pump.MultiSink{screen, status.NewWriterSink(uart)}

	table, err := pump.NewTable(
		pump.Entry{Motor: pump.MotorA, Direction: pump.Forward, Curve: fwdA},
		pump.Entry{Motor: pump.MotorA, Direction: pump.Reverse, Curve: revA},
		pump.Entry{Motor: pump.MotorB, Direction: pump.Forward, Curve: fwdB},
		pump.Entry{Motor: pump.MotorB, Direction: pump.Reverse, Curve: revB},
	)
	if err != nil {
		halt(err)
	}

	io := hw.NewAveraging(newBoardIO(), ANALOG_SAMPLES)
	ctrl := pump.NewController(io, sink, table)
	if _, err := ctrl.Configure(motorA, switchesA); err != nil {
		halt(err)
	}
	if _, err := ctrl.Configure(motorB, switchesB); err != nil {
		halt(err)
	}

	tick := func() {
		ctrl.TickAll()
		oled.Flush()
	}

	ctx := context.Background()
	if RUN_DURATION > 0 {
		clock.Timed(ctx, TICK_INTERVAL, RUN_DURATION, tick, func() {
			ctrl.StopAll()
			oled.Flush()
		})
		select {}
	}
	clock.Run(ctx, TICK_INTERVAL, tick)
}

// halt reports a configuration error and never lets the motors run.
func halt(err error) {
	println("configuration error:", err.Error())
	select {}
}
