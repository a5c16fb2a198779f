//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/itohio/gopump/pkg/pump"
)

const (
	// Control loop
	TICK_INTERVAL  = 100 * time.Millisecond // Actuation clock period
	RUN_DURATION   = 0 * time.Second        // 0 runs forever, otherwise stop both pumps after this long
	ANALOG_SAMPLES = 8                      // Potentiometer reads averaged per tick

	// Serial configuration
	// Status line: "A,F,100,200,1023,-102.3\n" = ~24 bytes, two per tick at 10 Hz = ~480 bytes/sec.
	// 115200 baud (11,520 bytes/sec) leaves ample headroom.
	UART_BAUD_RATE = 115200

	// Display
	OLED_ADDRESS = 0x3C
	OLED_WIDTH   = 128
	OLED_HEIGHT  = 64
)

// Logical pin numbers follow the Arduino Uno header labels (A0 = 14).
var (
	motorA = pump.MotorConfig{ID: pump.MotorA, Enable: 9, Input1: 8, Input2: 7, MinDuty: 40, MaxDuty: 200}
	motorB = pump.MotorConfig{ID: pump.MotorB, Enable: 3, Input1: 5, Input2: 4, MinDuty: 40, MaxDuty: 200}

	switchesA = pump.SwitchConfig{Forward: 10, Reverse: 11, Pot: 14}
	switchesB = pump.SwitchConfig{Forward: 12, Reverse: 13, Pot: 15}
)

// Calibration curves. Reverse curves have not been measured yet and reuse forward.
var (
	fwdA = pump.Curve{A: 4.11331682e-05, B: -2.42744217e-02, C: 5.12851003e+00, D: -3.38448966e+02}
	revA = fwdA
	fwdB = pump.Curve{A: -1.72290739e-05, B: 1.20133993e-02, C: -2.54089495e+00, D: 1.76741358e+02}
	revB = fwdB
)

// boardPins maps logical pins onto the microcontroller.
var boardPins = map[pump.Pin]machine.Pin{
	3:  machine.D3,
	4:  machine.D4,
	5:  machine.D5,
	7:  machine.D7,
	8:  machine.D8,
	9:  machine.D9,
	10: machine.D10,
	11: machine.D11,
	12: machine.D12,
	13: machine.D13,
	14: machine.ADC0,
	15: machine.ADC1,
}

// pwmTimers lists the timer driving each enable pin.
var pwmTimers = map[pump.Pin]*machine.PWM{
	3: machine.Timer2,
	9: machine.Timer1,
}
