package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"qfield/qasm"
	"qfield/quantum"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs qfield and returns its exit status. Failures go to stderr
// through their own logger, since run's logger may discard output or point
// at a log file that is already closed.
func execute(args []string, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := run(cfg, stdout); err != nil {
		log.New(stderr).Error("qfield failed", "err", err)
		return 1
	}
	return 0
}

func run(cfg *Config, out io.Writer) error {
	w, closeLog, err := openLogOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger, err := newLogger(w, cfg.LogLevel)
	if err != nil {
		return err
	}
	prev := log.Default()
	log.SetDefault(logger)
	defer log.SetDefault(prev)

	numQubits, gates := cfg.Qubits, []quantum.Gate(nil)
	if cfg.Circuit != "" {
		prog, err := loadCircuit(cfg.Circuit)
		if err != nil {
			return err
		}
		if prog.NumQubits > 0 {
			numQubits = prog.NumQubits
		}
		gates = prog.Gates
		logger.Info("loaded circuit", "path", cfg.Circuit, "qubits", numQubits, "gates", len(gates))
	}

	sim := quantum.NewSimulator(cfg.MaxQubits, logger)

	if cfg.Headless {
		sv, err := sim.Run(numQubits, gates)
		if err != nil {
			return err
		}
		return printState(out, sv, cfg.Threshold)
	}

	if numQubits > cfg.MaxQubits {
		return errors.Wrapf(quantum.ErrTooManyQubits, "circuit needs %d qubits (max %d)", numQubits, cfg.MaxQubits)
	}
	p := tea.NewProgram(initialModel(cfg, sim, numQubits, gates), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run viewer")
	}
	return nil
}

func loadCircuit(path string) (*qasm.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read circuit")
	}
	prog, err := qasm.Parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return prog, nil
}
