package quantum

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// DefaultMaxQubits is the register limit of RunCircuit.
const DefaultMaxQubits = 20

// Simulator replays gate lists on fresh state vectors. It holds no state
// between runs, so one Simulator may serve concurrent callers.
type Simulator struct {
	// MaxQubits rejects larger registers before allocation. Zero means
	// only the MaxQubits allocation bound applies.
	MaxQubits int
	// Logger receives unknown-gate warnings. Nil uses log.Default().
	Logger *log.Logger
}

func NewSimulator(maxQubits int, logger *log.Logger) *Simulator {
	return &Simulator{MaxQubits: maxQubits, Logger: logger}
}

var defaultSimulator = &Simulator{MaxQubits: DefaultMaxQubits}

// RunCircuit builds |0…0⟩ on numQubits qubits and applies gates in order.
func RunCircuit(numQubits int, gates []Gate) (*StateVector, error) {
	return defaultSimulator.Run(numQubits, gates)
}

func (sim *Simulator) logger() *log.Logger {
	if sim.Logger != nil {
		return sim.Logger
	}
	return log.Default()
}

// Run builds a fresh state vector and applies gates in order. Gates of an
// unknown kind are logged and skipped; the rest of the circuit still runs.
// Gates with out-of-range operands are no-ops.
func (sim *Simulator) Run(numQubits int, gates []Gate) (*StateVector, error) {
	if sim.MaxQubits > 0 && numQubits > sim.MaxQubits {
		return nil, errors.Wrapf(ErrTooManyQubits, "run circuit: %d qubits (limit %d)", numQubits, sim.MaxQubits)
	}
	sv, err := New(numQubits)
	if err != nil {
		return nil, errors.Wrap(err, "run circuit")
	}

	skipped := 0
	for i, g := range gates {
		if err := sv.Apply(g); err != nil {
			sim.logger().Warn("skipping gate", "index", i, "type", string(g.Type), "err", err)
			skipped++
		}
	}
	sv.release()
	sim.logger().Debug("circuit complete", "qubits", numQubits, "gates", len(gates), "skipped", skipped)
	return sv, nil
}
