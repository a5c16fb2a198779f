package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itohio/gopump/pkg/display"
	"github.com/itohio/gopump/pkg/monitor"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// runConsole prints the status screen whenever it changes until interrupted or
// the device stops reporting.
func runConsole(device monitor.Device) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := device.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer device.Close()

	screen := display.New()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-device.Reports():
			if !ok {
				return nil
			}
			screen.Report(s)
			if screen.TakeDirty() {
				fmt.Println(renderConsole(screen))
			}
		}
	}
}

// renderConsole draws the status screen as a bordered terminal panel.
func renderConsole(screen *display.Screen) string {
	lines := screen.Lines()
	styled := make([]string, 0, len(lines))
	styled = append(styled, titleStyle.Render(lines[0]))

	for i, row := range screen.Rows() {
		style := runningStyle
		if row.Dir == "O" {
			style = stoppedStyle
		}
		styled = append(styled, style.Render(fmt.Sprintf("%s  %s", row.Motor, lines[i+1])))
	}

	// Align the header with the motor label column.
	styled[0] = "   " + styled[0]
	return panelStyle.Render(strings.Join(styled, "\n"))
}
