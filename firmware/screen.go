//go:build tinygo

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/itohio/gopump/pkg/display"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// oled draws the status screen on an SSD1306 over I2C.
type oled struct {
	dev    ssd1306.Device
	screen *display.Screen
}

func newOLED(screen *display.Screen) *oled {
	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})

	dev := ssd1306.NewI2C(machine.I2C0)
	dev.Configure(ssd1306.Config{
		Address: OLED_ADDRESS,
		Width:   OLED_WIDTH,
		Height:  OLED_HEIGHT,
	})
	dev.ClearDisplay()

	return &oled{dev: dev, screen: screen}
}

// Flush redraws the display when the screen rows changed.
func (o *oled) Flush() {
	if !o.screen.TakeDirty() {
		return
	}

	o.dev.ClearBuffer()
	for _, c := range o.screen.Cells() {
		if c.Large {
			tinyfont.WriteLine(&o.dev, &freemono.Bold9pt7b, c.X, c.Y+14, c.Text, white)
		} else {
			tinyfont.WriteLine(&o.dev, &proggy.TinySZ8pt7b, c.X, c.Y+7, c.Text, white)
		}
	}
	if err := o.dev.Display(); err != nil {
		println("display failed:", err.Error())
	}
}
