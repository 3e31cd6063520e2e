package main

import "qfield/quantum"

// placement is a gate positioned on the circuit diagram. Lo..Hi is the
// vertical span the gate draws over, including qubits it passes through.
type placement struct {
	Index  int
	Gate   quantum.Gate
	Column int
	Lo, Hi int
}

// span returns the qubit range a gate occupies on the diagram and whether it
// can be drawn at all on numQubits wires.
func span(g quantum.Gate, numQubits int) (lo, hi int, ok bool) {
	qubits := g.Operands()
	lo, hi = qubits[0], qubits[0]
	for _, q := range qubits {
		if q < 0 || q >= numQubits {
			return 0, 0, false
		}
		lo, hi = min(lo, q), max(hi, q)
	}
	return lo, hi, true
}

// layoutGates assigns each drawable gate the earliest column after every
// earlier gate sharing a wire in its span, so parallel gates share a column
// without reordering dependent ones. It returns the placements in gate order
// and the number of columns used.
func layoutGates(numQubits int, gates []quantum.Gate) ([]placement, int) {
	next := make([]int, numQubits)
	placed := make([]placement, 0, len(gates))
	columns := 0

	for i, g := range gates {
		lo, hi, ok := span(g, numQubits)
		if !ok {
			continue
		}
		col := 0
		for q := lo; q <= hi; q++ {
			col = max(col, next[q])
		}
		for q := lo; q <= hi; q++ {
			next[q] = col + 1
		}
		columns = max(columns, col+1)
		placed = append(placed, placement{Index: i, Gate: g, Column: col, Lo: lo, Hi: hi})
	}

	return placed, columns
}
