//go:build tinygo

package main

import (
	"machine"

	"github.com/itohio/gopump/pkg/pump"
)

type pwmChannel struct {
	pwm *machine.PWM
	ch  uint8
}

// boardIO implements pump.IO on the microcontroller pins.
type boardIO struct {
	adcs map[pump.Pin]machine.ADC
	pwms map[pump.Pin]pwmChannel
}

var _ pump.IO = (*boardIO)(nil)

func newBoardIO() *boardIO {
	machine.InitADC()
	return &boardIO{
		adcs: make(map[pump.Pin]machine.ADC),
		pwms: make(map[pump.Pin]pwmChannel),
	}
}

func (b *boardIO) ConfigurePin(pin pump.Pin, mode pump.PinMode) {
	p, ok := boardPins[pin]
	if !ok {
		println("unmapped pin", pin)
		return
	}

	switch mode {
	case pump.PinInputPullup:
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	case pump.PinAnalog:
		adc := machine.ADC{Pin: p}
		adc.Configure(machine.ADCConfig{})
		b.adcs[pin] = adc
	default:
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		if timer, ok := pwmTimers[pin]; ok {
			if err := timer.Configure(machine.PWMConfig{}); err != nil {
				println("pwm configure failed:", err.Error())
				return
			}
			ch, err := timer.Channel(p)
			if err != nil {
				println("pwm channel failed:", err.Error())
				return
			}
			b.pwms[pin] = pwmChannel{pwm: timer, ch: ch}
		}
	}
}

func (b *boardIO) ReadDigital(pin pump.Pin) bool {
	return boardPins[pin].Get()
}

// ReadAnalog returns a 10-bit reading. TinyGo scales ADC values to 16 bits.
func (b *boardIO) ReadAnalog(pin pump.Pin) int {
	adc, ok := b.adcs[pin]
	if !ok {
		return 0
	}
	return int(adc.Get() >> 6)
}

func (b *boardIO) WriteDigital(pin pump.Pin, high bool) {
	if c, ok := b.pwms[pin]; ok {
		if high {
			c.pwm.Set(c.ch, c.pwm.Top())
		} else {
			c.pwm.Set(c.ch, 0)
		}
		return
	}
	boardPins[pin].Set(high)
}

func (b *boardIO) WritePower(pin pump.Pin, level uint8) {
	c, ok := b.pwms[pin]
	if !ok {
		boardPins[pin].Set(level > 0)
		return
	}
	c.pwm.Set(c.ch, c.pwm.Top()*uint32(level)/pump.PowerMax)
}
