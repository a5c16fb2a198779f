package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gopump/pkg/config"
	"github.com/itohio/gopump/pkg/display"
	"github.com/itohio/gopump/pkg/monitor"
	"github.com/itohio/gopump/pkg/pump"
)

var directionOptions = []string{pump.Off.String(), pump.Forward.String(), pump.Reverse.String()}

// pumpPanel shows the state of one assembly.
type pumpPanel struct {
	percent *widget.Label
	dir     *widget.Label
	flow    *widget.Label
}

func (p *pumpPanel) update(s pump.Status) {
	row := display.Format(s)
	p.percent.SetText(row.Percent + " %")
	p.dir.SetText(s.Direction.String())
	p.flow.SetText(row.Flow + " ml/min")
}

// runGUI opens the pump window. With a simulation, each panel gets a speed
// slider and a direction selector wired to the simulated pins.
func runGUI(cfg *config.Config, device monitor.Device, sim *monitor.Mock) {
	application := app.NewWithID("com.itohio.gopump")

	window := application.NewWindow("Peristaltic Pumps")
	window.Resize(fyne.NewSize(480, 360))
	window.CenterOnScreen()

	panels := make(map[pump.MotorID]*pumpPanel)
	cards := make([]fyne.CanvasObject, 0, len(cfg.Assemblies))

	for _, ac := range cfg.Assemblies {
		m, s, err := ac.Pump()
		if err != nil {
			log.Fatalf("Invalid assembly: %v", err)
		}

		panel := &pumpPanel{
			percent: widget.NewLabel("0 %"),
			dir:     widget.NewLabel(pump.Off.String()),
			flow:    widget.NewLabel("0.0 ml/min"),
		}
		panels[m.ID] = panel

		content := container.NewVBox(
			container.NewGridWithColumns(3, panel.percent, panel.dir, panel.flow),
		)
		if sim != nil {
			content.Add(simControls(cfg, sim, s))
		}

		subtitle := fmt.Sprintf("duty %d-%d", m.MinDuty, m.MaxDuty)
		cards = append(cards, widget.NewCard("Pump "+m.ID.String(), subtitle, content))
	}

	window.SetContent(container.NewVBox(cards...))

	if err := device.Connect(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to connect: %w", err), window)
	} else {
		go func() {
			for s := range device.Reports() {
				panel, ok := panels[s.Motor]
				if !ok {
					continue
				}
				fyne.Do(func() {
					panel.update(s)
				})
			}
		}()
	}

	window.SetOnClosed(func() {
		if err := device.Close(); err != nil {
			log.Printf("Error closing device: %v", err)
		}
	})

	window.ShowAndRun()
}

// simControls builds the potentiometer slider and switch selector of a simulated assembly.
func simControls(cfg *config.Config, sim *monitor.Mock, s pump.SwitchConfig) fyne.CanvasObject {
	pins := sim.Pins()

	slider := widget.NewSlider(0, pump.PotMax)
	slider.Step = 1
	slider.SetValue(float64(cfg.Mock.Pot))
	slider.OnChanged = func(v float64) {
		pins.SetAnalog(s.Pot, int(v))
	}

	radio := widget.NewRadioGroup(directionOptions, func(selected string) {
		d, err := config.ParseDirection(selected)
		if err != nil {
			d = pump.Off
		}
		pins.SetDirection(s, d)
	})
	radio.Horizontal = true
	radio.Required = true
	if d, err := config.ParseDirection(cfg.Mock.Direction); err == nil {
		radio.SetSelected(d.String())
	}

	return container.NewVBox(slider, radio)
}
