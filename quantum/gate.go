package quantum

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// GateType names a gate kind. It is a string rather than a closed enum so
// that gate lists loaded from external data can carry kinds the engine does
// not know; those are skipped at run time.
type GateType string

const (
	H     GateType = "H"
	X     GateType = "X"
	S     GateType = "S"
	T     GateType = "T"
	CNOT  GateType = "CNOT"
	CCNOT GateType = "CCNOT"
)

// GateTypes lists the kinds the engine can apply.
var GateTypes = []GateType{H, X, S, T, CNOT, CCNOT}

// Gate is a gate descriptor. Which operand fields are meaningful depends on
// Type: single-qubit kinds use Target, CNOT uses Control and Target, CCNOT
// uses Control1, Control2 and Target.
//
// A foreign kind lays out its operands the same way, chosen by Arity (2 for
// Control and Target, 3 for Control1, Control2 and Target, anything else
// for Target alone). Params keeps its raw parameter list, e.g. "pi/2".
type Gate struct {
	Type     GateType
	Target   int
	Control  int
	Control1 int
	Control2 int

	Arity  int
	Params string
}

func Hadamard(target int) Gate { return Gate{Type: H, Target: target} }
func PauliX(target int) Gate   { return Gate{Type: X, Target: target} }
func Phase(target int) Gate    { return Gate{Type: S, Target: target} }
func PiOver8(target int) Gate  { return Gate{Type: T, Target: target} }

func Cnot(control, target int) Gate {
	return Gate{Type: CNOT, Control: control, Target: target}
}

func Toffoli(control1, control2, target int) Gate {
	return Gate{Type: CCNOT, Control1: control1, Control2: control2, Target: target}
}

// Known reports whether the engine can apply the gate's kind.
func (g Gate) Known() bool {
	return slices.Contains(GateTypes, g.Type)
}

// Qubits returns the operands the gate's kind uses, controls first.
// Unknown kinds return nil.
func (g Gate) Qubits() []int {
	switch g.Type {
	case H, X, S, T:
		return []int{g.Target}
	case CNOT:
		return []int{g.Control, g.Target}
	case CCNOT:
		return []int{g.Control1, g.Control2, g.Target}
	}
	return nil
}

// InRange reports whether every operand is a valid index for n qubits.
func (g Gate) InRange(n int) bool {
	for _, q := range g.Operands() {
		if q < 0 || q >= n {
			return false
		}
	}
	return true
}

// Operands returns every qubit the gate names, for known and foreign kinds
// alike. The engine uses Qubits; readers and writers of gate lists use this.
func (g Gate) Operands() []int {
	if qubits := g.Qubits(); qubits != nil {
		return qubits
	}
	switch g.Arity {
	case 2:
		return []int{g.Control, g.Target}
	case 3:
		return []int{g.Control1, g.Control2, g.Target}
	}
	return []int{g.Target}
}

func (g Gate) String() string {
	switch g.Type {
	case CNOT:
		return fmt.Sprintf("CNOT(c=%d, t=%d)", g.Control, g.Target)
	case CCNOT:
		return fmt.Sprintf("CCNOT(c1=%d, c2=%d, t=%d)", g.Control1, g.Control2, g.Target)
	}
	name := string(g.Type)
	if g.Params != "" {
		name += "[" + g.Params + "]"
	}
	ops := make([]string, 0, 3)
	for _, q := range g.Operands() {
		ops = append(ops, strconv.Itoa(q))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(ops, ", "))
}

// Prune returns the gates whose operands all fit in n qubits, in order.
// Callers use it when the qubit count shrinks. Foreign kinds that fit are
// kept so the run can report them.
func Prune(gates []Gate, n int) []Gate {
	out := make([]Gate, 0, len(gates))
	for _, g := range gates {
		if g.InRange(n) {
			out = append(out, g)
		}
	}
	return out
}
