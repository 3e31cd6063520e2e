// Package qasm reads and writes gate lists as OpenQASM 2.0 text.
//
// Only the gates the engine knows get dedicated names (h, x, s, t, cx, ccx).
// Any other gate call is kept under its upper-cased name so the simulator
// can warn about it and skip it.
package qasm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"qfield/quantum"
)

// Pre-compiled regexps for QASM parsing.
var (
	gateCallRegex = regexp.MustCompile(`^(\w+)\s*(?:\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\))?\s+q\[(\d+)\](?:\s*,\s*q\[(\d+)\])?(?:\s*,\s*q\[(\d+)\])?\s*;?$`)
	measureRegex  = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\]\s*;?$`)
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\]\s*;?$`)
)

// engineNames maps the QASM names of engine gates to their kind and operand count.
var engineNames = map[string]struct {
	gateType quantum.GateType
	arity    int
}{
	"H":       {quantum.H, 1},
	"X":       {quantum.X, 1},
	"S":       {quantum.S, 1},
	"T":       {quantum.T, 1},
	"CX":      {quantum.CNOT, 2},
	"CNOT":    {quantum.CNOT, 2},
	"CCX":     {quantum.CCNOT, 3},
	"TOFFOLI": {quantum.CCNOT, 3},
	"CCNOT":   {quantum.CCNOT, 3},
}

// Program is a parsed circuit: a register size and an ordered gate list.
type Program struct {
	NumQubits int
	Gates     []quantum.Gate
}

// Parse reads OpenQASM 2.0 text. Declarations, comments, barriers and
// measurements carry no gates and are skipped. A line that is none of
// these and matches no gate form is an error.
func Parse(src string) (*Program, error) {
	prog := &Program{}

	for n, line := range strings.Split(src, "\n") {
		lineNo := n + 1
		line = strings.TrimSpace(line)
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "barrier") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			matches := qregRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, errors.Errorf("line %d: malformed qreg %q", lineNo, line)
			}
			size, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: qreg size", lineNo)
			}
			prog.NumQubits = size
			continue
		}
		if measureRegex.MatchString(line) {
			continue
		}

		gate, err := parseGateLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		prog.Gates = append(prog.Gates, gate)
	}

	return prog, nil
}

// parseGateLine turns one gate call into a descriptor. Engine gates must be
// called with their own operand count and no parameters. Any other call is
// kept as a foreign gate with its operands and raw parameter list.
func parseGateLine(line string) (quantum.Gate, error) {
	matches := gateCallRegex.FindStringSubmatch(line)
	if matches == nil {
		return quantum.Gate{}, errors.Errorf("unrecognised statement %q", line)
	}
	name := strings.ToUpper(matches[1])
	params := strings.TrimSpace(matches[2])
	if params != "" && ParseParams(params) == nil {
		return quantum.Gate{}, errors.Errorf("invalid parameters %q", params)
	}

	var qubits []int
	for _, field := range matches[3:] {
		if field == "" {
			continue
		}
		q, err := strconv.Atoi(field)
		if err != nil {
			return quantum.Gate{}, errors.Wrapf(err, "qubit index %s", field)
		}
		qubits = append(qubits, q)
	}

	if known, ok := engineNames[name]; ok {
		if params != "" || len(qubits) != known.arity {
			return quantum.Gate{}, errors.Errorf("%s takes %d qubit(s) and no parameters", strings.ToLower(name), known.arity)
		}
		switch known.arity {
		case 3:
			return quantum.Toffoli(qubits[0], qubits[1], qubits[2]), nil
		case 2:
			return quantum.Cnot(qubits[0], qubits[1]), nil
		default:
			return quantum.Gate{Type: known.gateType, Target: qubits[0]}, nil
		}
	}

	g := quantum.Gate{Type: quantum.GateType(name), Params: params}
	switch len(qubits) {
	case 3:
		g.Arity = 3
		g.Control1, g.Control2, g.Target = qubits[0], qubits[1], qubits[2]
	case 2:
		g.Arity = 2
		g.Control, g.Target = qubits[0], qubits[1]
	default:
		g.Target = qubits[0]
	}
	return g, nil
}

// Format writes gates as OpenQASM 2.0 for a register of numQubits.
// The register is widened if a gate references a higher qubit. Foreign
// gates are written back with all their operands and parameters.
func Format(numQubits int, gates []quantum.Gate) string {
	size := max(numQubits, 1)
	for _, g := range gates {
		for _, q := range g.Operands() {
			size = max(size, q+1)
		}
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", size)

	for _, g := range gates {
		switch g.Type {
		case quantum.CNOT:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", g.Control, g.Target)
		case quantum.CCNOT:
			fmt.Fprintf(&sb, "ccx q[%d], q[%d], q[%d];\n", g.Control1, g.Control2, g.Target)
		default:
			name := strings.ToLower(string(g.Type))
			if g.Params != "" {
				name += "(" + g.Params + ")"
			}
			refs := make([]string, 0, 3)
			for _, q := range g.Operands() {
				refs = append(refs, fmt.Sprintf("q[%d]", q))
			}
			fmt.Fprintf(&sb, "%s %s;\n", name, strings.Join(refs, ", "))
		}
	}

	return sb.String()
}
