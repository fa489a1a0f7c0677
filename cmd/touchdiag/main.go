// cmd/touchdiag/main.go
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/touchdiag/internal/acquire"
	"github.com/tamzrod/touchdiag/internal/config"
	"github.com/tamzrod/touchdiag/internal/hawkeye"
	"github.com/tamzrod/touchdiag/internal/mxt"
	"github.com/tamzrod/touchdiag/internal/regbus"
	rbi2c "github.com/tamzrod/touchdiag/internal/regbus/i2c"
	rbmodbus "github.com/tamzrod/touchdiag/internal/regbus/modbus"
	"github.com/tamzrod/touchdiag/internal/store"
)

func main() {
	configPath := flag.String("config", "touchdiag.yaml", "path to YAML config")
	modeFlag := flag.String("mode", "", "acquisition mode: delta or ref (empty for interactive menu)")
	framesFlag := flag.Int("frames", -1, "number of frames to acquire (negative to prompt)")
	flag.Parse()

	logger := initLogger("touchdiag")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	if lvl, err := zerolog.ParseLevel(cfg.Touchdiag.Log.Level); err == nil {
		logger = logger.Level(lvl)
	}

	bus, err := openBus(cfg.Touchdiag.Transport)
	if err != nil {
		logger.Fatal().Err(err).Msg("transport bring-up failed")
	}
	defer bus.Close()

	info, err := mxt.ReadInfo(bus)
	if err != nil {
		logger.Fatal().Err(err).Msg("information block read failed")
	}

	logger.Info().
		Hex("family", []byte{info.ID.Family}).
		Hex("variant", []byte{info.ID.Variant}).
		Int("matrix_x", int(info.ID.MatrixX)).
		Int("matrix_y", int(info.ID.MatrixY)).
		Int("objects", len(info.Objects)).
		Msg("device found")

	geo, err := mxt.ResolveGeometry(info.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("unsupported device")
	}

	addrs, err := acquire.ResolveAddresses(info)
	if err != nil {
		logger.Fatal().Err(err).Msg("object address resolution failed")
	}

	app := &app{
		cfg:    cfg.Touchdiag,
		bus:    bus,
		geo:    geo,
		addrs:  addrs,
		logger: logger,
		stdin:  bufio.NewScanner(os.Stdin),
	}

	if *modeFlag != "" {
		mode, err := parseMode(*modeFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid mode")
		}
		if err := app.dump(mode, *framesFlag); err != nil {
			logger.Fatal().Err(err).Msg("acquisition failed")
		}
		return
	}

	app.menu(*framesFlag)
}

func initLogger(name string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", name).Logger()
}

func openBus(t config.TransportConfig) (regbus.Bus, error) {
	switch t.Kind {
	case "i2c":
		return rbi2c.New(rbi2c.Config{
			Bus:  t.I2C.Bus,
			Addr: t.I2C.Address,
		})
	case "modbus":
		return rbmodbus.New(rbmodbus.Config{
			Endpoint: t.Modbus.Endpoint,
			UnitID:   t.Modbus.UnitID,
			Timeout:  time.Duration(t.Modbus.TimeoutMs) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("unknown transport kind %q", t.Kind)
	}
}

type app struct {
	cfg    config.TouchdiagConfig
	bus    regbus.Bus
	geo    mxt.Geometry
	addrs  acquire.Addresses
	logger zerolog.Logger
	stdin  *bufio.Scanner
}

// dump runs one acquisition session and writes the output files. Frames
// already written stay on disk when the session aborts; the control file
// is only produced after a clean run.
func (a *app) dump(mode acquire.Mode, frames int) error {
	if frames < 0 {
		var err error
		frames, err = promptFrames(a.stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Reading %d frames\n", frames)

	writer, err := hawkeye.NewWriter(a.cfg.Output.Frames, a.geo)
	if err != nil {
		return err
	}

	sinks := []acquire.FrameSink{writer}

	if a.cfg.Output.Archive != "" {
		db, err := store.Open(a.cfg.Output.Archive)
		if err != nil {
			writer.Close()
			return fmt.Errorf("open archive: %w", err)
		}
		defer db.Close()
		sinks = append(sinks, db.NewSink(mode.String()))
	}

	sess, err := acquire.NewSession(a.bus, a.geo, a.addrs, mode, acquire.Options{
		Logger: &a.logger,
	})
	if err != nil {
		writer.Close()
		return err
	}

	sum, runErr := sess.Run(frames, sinks...)

	if err := writer.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	if err := hawkeye.WriteControl(a.cfg.Output.Control, a.geo); err != nil {
		return err
	}

	fmt.Printf("%d frames in %d seconds\n", sum.Frames, int(sum.Elapsed.Seconds()))
	return nil
}

// menu is the interactive shell of the dump utility.
func (a *app) menu(frames int) {
	fmt.Println("Diagnostic data dump utility for maXTouch chips")

	for {
		fmt.Println()
		fmt.Println("Select one of the options:")
		fmt.Println()
		fmt.Println("Enter D:   (D)elta dump")
		fmt.Println("Enter R:   (R)eference dump")
		fmt.Println("Enter Q:   (Q)uit the application")

		choice, err := readChoice(a.stdin)
		if err != nil {
			return
		}

		switch choice {
		case 'd', 'D':
			if err := a.dump(acquire.ModeDeltas, frames); err != nil {
				a.logger.Error().Err(err).Msg("delta dump failed")
			}
		case 'r', 'R':
			if err := a.dump(acquire.ModeRefs, frames); err != nil {
				a.logger.Error().Err(err).Msg("reference dump failed")
			}
		case 'q', 'Q':
			fmt.Println("Quitting the dump utility")
			return
		default:
			fmt.Println("Invalid menu option")
		}
	}
}

func parseMode(s string) (acquire.Mode, error) {
	switch s {
	case "delta", "deltas":
		return acquire.ModeDeltas, nil
	case "ref", "refs", "reference":
		return acquire.ModeRefs, nil
	default:
		return 0, fmt.Errorf("mode must be delta or ref, got %q", s)
	}
}

var errNoInput = errors.New("no input")
