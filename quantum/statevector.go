// Package quantum simulates an n-qubit register as a dense vector of 2^n
// complex amplitudes.
//
// Basis encoding: bit b of an amplitude index is the value of qubit b, so
// index 0b011 on three qubits is |q2 q1 q0⟩ = |011⟩. Every gate routine
// depends on this little-endian convention.
package quantum

import (
	"math"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"qfield/amp"
)

// MaxQubits bounds the register size New will allocate. At 30 qubits the
// live and scratch buffers already take 32 GiB.
const MaxQubits = 30

var (
	ErrNegativeQubits = errors.New("negative qubit count")
	ErrTooManyQubits  = errors.New("qubit count exceeds allocation limit")
	ErrUnknownGate    = errors.New("unknown gate type")
)

// Matrix is a single-qubit operator [[m00, m01], [m10, m11]].
type Matrix [2][2]amp.Complex

var (
	HMatrix = Matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	XMatrix = Matrix{
		{amp.Zero, amp.One},
		{amp.One, amp.Zero},
	}
	SMatrix = Matrix{
		{amp.One, amp.Zero},
		{amp.Zero, amp.I},
	}
	TMatrix = Matrix{
		{amp.One, amp.Zero},
		{amp.Zero, amp.New(math.Sqrt2/2, math.Sqrt2/2)},
	}
)

// StateVector owns the amplitudes of one simulation run.
type StateVector struct {
	NumQubits  int
	Amplitudes []amp.Complex

	// scratch is the second half of the double buffer used by ApplyGate.
	// It is allocated on demand and may be dropped between applications.
	scratch []amp.Complex
}

// New returns the all-zero basis state |0…0⟩ on numQubits qubits.
func New(numQubits int) (*StateVector, error) {
	if numQubits < 0 {
		return nil, errors.Wrapf(ErrNegativeQubits, "new state vector: %d qubits", numQubits)
	}
	if numQubits > MaxQubits {
		return nil, errors.Wrapf(ErrTooManyQubits, "new state vector: %d qubits (max %d)", numQubits, MaxQubits)
	}
	n := 1 << numQubits
	amps := make([]amp.Complex, n)
	amps[0] = amp.One
	return &StateVector{NumQubits: numQubits, Amplitudes: amps}, nil
}

// release drops the scratch buffer so a finished state holds one copy of
// its amplitudes.
func (s *StateVector) release() {
	s.scratch = nil
}

// Size is 2^NumQubits.
func (s *StateVector) Size() int {
	return len(s.Amplitudes)
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]amp.Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{NumQubits: s.NumQubits, Amplitudes: amps}
}

func (s *StateVector) valid(q int) bool {
	return q >= 0 && q < s.NumQubits
}

// ApplyGate applies a 2×2 operator to the target qubit. An out-of-range
// target is ignored.
//
// Each output pair is computed from the pre-update amplitudes into the
// scratch buffer, then the buffers are swapped. Every index is written
// exactly once, either as idx0 or as the idx1 partner of a lower index.
func (s *StateVector) ApplyGate(target int, m Matrix) {
	if !s.valid(target) {
		return
	}
	n := len(s.Amplitudes)
	if len(s.scratch) != n {
		s.scratch = make([]amp.Complex, n)
	}
	step := 1 << target
	next := s.scratch
	for i := 0; i < n; i++ {
		if i&step == 0 {
			j := i | step
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			next[i] = amp.Add(amp.Mul(m[0][0], a), amp.Mul(m[0][1], b))
			next[j] = amp.Add(amp.Mul(m[1][0], a), amp.Mul(m[1][1], b))
		}
	}
	s.Amplitudes, s.scratch = next, s.Amplitudes
}

func (s *StateVector) ApplyH(target int) { s.ApplyGate(target, HMatrix) }
func (s *StateVector) ApplyX(target int) { s.ApplyGate(target, XMatrix) }
func (s *StateVector) ApplyS(target int) { s.ApplyGate(target, SMatrix) }
func (s *StateVector) ApplyT(target int) { s.ApplyGate(target, TMatrix) }

// ApplyCNOT flips target where control is 1. Out-of-range operands make it
// a no-op.
func (s *StateVector) ApplyCNOT(control, target int) {
	if !s.valid(control) || !s.valid(target) {
		return
	}
	s.swapWhere(1<<control, 1<<target)
}

// ApplyCCNOT flips target where both controls are 1.
func (s *StateVector) ApplyCCNOT(control1, control2, target int) {
	if !s.valid(control1) || !s.valid(control2) || !s.valid(target) {
		return
	}
	s.swapWhere(1<<control1|1<<control2, 1<<target)
}

// swapWhere exchanges the amplitudes of i and i|tBit for every index i that
// has all controlMask bits set and the target bit clear. Acting only from the
// target-clear side swaps each pair once.
func (s *StateVector) swapWhere(controlMask, tBit int) {
	n := len(s.Amplitudes)
	for i := 0; i < n; i++ {
		if i&controlMask == controlMask && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Apply dispatches a gate descriptor to its routine.
func (s *StateVector) Apply(g Gate) error {
	switch g.Type {
	case H:
		s.ApplyH(g.Target)
	case X:
		s.ApplyX(g.Target)
	case S:
		s.ApplyS(g.Target)
	case T:
		s.ApplyT(g.Target)
	case CNOT:
		s.ApplyCNOT(g.Control, g.Target)
	case CCNOT:
		s.ApplyCCNOT(g.Control1, g.Control2, g.Target)
	default:
		return errors.Wrapf(ErrUnknownGate, "%q", string(g.Type))
	}
	return nil
}

// Amplitude returns the amplitude of basis index i, or zero when i is out of range.
func (s *StateVector) Amplitude(i int) amp.Complex {
	if i < 0 || i >= len(s.Amplitudes) {
		return amp.Zero
	}
	return s.Amplitudes[i]
}

func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = amp.AbsSq(a)
	}
	return probs
}

// Norm is the sum of squared magnitudes. Unitary evolution keeps it at 1.
func (s *StateVector) Norm() float64 {
	return floats.Sum(s.Probabilities())
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal probability of each qubit being 0 or 1.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, a := range s.Amplitudes {
		prob := amp.AbsSq(a)
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// BasisState is the read-side view of one basis index.
type BasisState struct {
	Index     int
	Amplitude amp.Complex
	Prob      float64
	Magnitude float64
	Phase     float64
	Hamming   int
}

// BasisStates returns the basis states whose magnitude exceeds threshold,
// in index order.
func (s *StateVector) BasisStates(threshold float64) []BasisState {
	states := make([]BasisState, 0, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		mag := amp.Abs(a)
		if mag <= threshold {
			continue
		}
		states = append(states, BasisState{
			Index:     i,
			Amplitude: a,
			Prob:      mag * mag,
			Magnitude: mag,
			Phase:     amp.Phase(a),
			Hamming:   bits.OnesCount(uint(i)),
		})
	}
	return states
}

// Label renders basis index i as a ket, highest qubit first.
func (s *StateVector) Label(i int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for q := s.NumQubits - 1; q >= 0; q-- {
		if i&(1<<q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString("⟩")
	return sb.String()
}
