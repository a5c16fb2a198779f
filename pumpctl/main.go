package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/itohio/gopump/pkg/config"
	"github.com/itohio/gopump/pkg/monitor"
)

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port of a pump board to monitor (e.g., COM3 or /dev/ttyACM0); simulates when empty")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		headlessFlag = flag.Bool("headless", false, "Print status to the terminal instead of opening a window")
		fitFlag      = flag.Bool("fit", false, "Fit calibration points into coefficients, save the configuration and exit")
		listFlag     = flag.Bool("list", false, "List serial ports and exit")
		durationFlag = flag.Duration("duration", -1, "Timed simulation run (0 = until stopped, overrides config)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *listFlag {
		ports, err := monitor.Ports()
		if err != nil {
			log.Fatalf("Failed to list ports: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p.Name)
		}
		return
	}

	if *fitFlag {
		if err := fitCalibration(cfg, *configFlag); err != nil {
			log.Fatalf("Calibration fit failed: %v", err)
		}
		return
	}

	if *durationFlag >= 0 {
		cfg.Clock.RunDuration = *durationFlag
	}

	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	device, sim, err := openDevice(cfg, *portFlag != "")
	if err != nil {
		log.Fatalf("Failed to set up device: %v", err)
	}

	if *headlessFlag {
		if err := runConsole(device); err != nil {
			log.Fatalf("Console failed: %v", err)
		}
		return
	}

	runGUI(cfg, device, sim)
}

// openDevice returns a serial monitor for a real board or a simulation. sim is
// nil for a real board.
func openDevice(cfg *config.Config, useSerial bool) (monitor.Device, *monitor.Mock, error) {
	if useSerial {
		log.Printf("Monitoring pump board on %s", cfg.Serial.Port)
		return monitor.New(cfg.Serial.Port, cfg.Serial.BaudRate, monitor.DefaultBufferSize), nil, nil
	}

	sim, err := monitor.NewMock(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Clock.RunDuration > 0 {
		log.Printf("Simulating pumps for %v", cfg.Clock.RunDuration)
	} else {
		log.Printf("Simulating pumps every %v", cfg.Clock.TickInterval)
	}
	return sim, sim, nil
}

// fitCalibration fits every calibration entry that has points and saves the result.
func fitCalibration(cfg *config.Config, filename string) error {
	start := time.Now()
	results, err := cfg.Fit()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Printf("No calibration points in %s, nothing to fit", filename)
		return nil
	}

	for _, r := range results {
		log.Printf("motor %s %s: a=%.6e b=%.6e c=%.6e d=%.6e R²=%.4f",
			r.Motor, r.Direction, r.Curve.A, r.Curve.B, r.Curve.C, r.Curve.D, r.RSquared)
	}

	if err := cfg.Save(filename); err != nil {
		return err
	}
	log.Printf("Saved %d fitted curves to %s in %v", len(results), filename, time.Since(start))
	return nil
}
