package qasm

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qfield/quantum"
)

func TestParseKnownGates(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[0];
x q[1];
s q[2];
t q[0];
cx q[0], q[1];
ccx q[0], q[1], q[2];
barrier q[0], q[1], q[2];
measure q[0] -> c[0];`

	prog, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, 3, prog.NumQubits)

	want := []quantum.Gate{
		quantum.Hadamard(0),
		quantum.PauliX(1),
		quantum.Phase(2),
		quantum.PiOver8(0),
		quantum.Cnot(0, 1),
		quantum.Toffoli(0, 1, 2),
	}
	assert.Equal(t, want, prog.Gates, spew.Sdump(prog.Gates))
}

func TestParseForeignGates(t *testing.T) {
	src := `qreg q[3];
y q[0];
swap q[1], q[0];
rx(pi/2) q[1];
cswap q[2], q[0], q[1];
u3(pi, 0, .5) q[2];
h q[1]; // trailing comment`

	prog, err := Parse(src)
	require.NoError(t, err)

	want := []quantum.Gate{
		{Type: "Y", Target: 0},
		{Type: "SWAP", Arity: 2, Control: 1, Target: 0},
		{Type: "RX", Params: "pi/2", Target: 1},
		{Type: "CSWAP", Arity: 3, Control1: 2, Control2: 0, Target: 1},
		{Type: "U3", Params: "pi, 0, .5", Target: 2},
		quantum.Hadamard(1),
	}
	require.Equal(t, want, prog.Gates, spew.Sdump(prog.Gates))

	for i, g := range prog.Gates {
		assert.Equal(t, i == len(want)-1, g.Known(), "gate %d Known()", i)
	}
	assert.Equal(t, []int{1, 0}, prog.Gates[1].Operands())
	assert.Equal(t, []int{2, 0, 1}, prog.Gates[3].Operands())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"garbage", "qreg q[1];\nh q[0];\nfoo bar baz", "line 3"},
		{"bad qreg", "qreg q[x];", "line 1"},
		{"bad param", "qreg q[1];\nrx(pi/0) q[0];", "line 2"},
		{"index overflow", "qreg q[1];\nh q[99999999999999999999];", "line 2"},
		{"engine gate arity", "qreg q[2];\nh q[0], q[1];", "line 2"},
		{"engine gate params", "qreg q[2];\ncx(pi) q[0], q[1];", "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	gates := []quantum.Gate{
		quantum.Hadamard(0),
		quantum.Cnot(2, 1),
		quantum.PiOver8(1),
		quantum.Phase(2),
		quantum.Toffoli(2, 0, 1),
		quantum.PauliX(2),
	}

	text := Format(3, gates)
	for _, line := range []string{"qreg q[3];", "h q[0];", "cx q[2], q[1];", "ccx q[2], q[0], q[1];", "t q[1];"} {
		assert.Contains(t, text, line)
	}

	prog, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 3, prog.NumQubits)
	assert.Equal(t, gates, prog.Gates, spew.Sdump(prog.Gates))
}

func TestFormatRoundTripForeignGates(t *testing.T) {
	src := "qreg q[3];\nswap q[1], q[0];\nrx(pi/2) q[1];\ncswap q[2], q[1], q[0];\ny q[2];\n"

	prog, err := Parse(src)
	require.NoError(t, err)

	text := Format(prog.NumQubits, prog.Gates)
	for _, line := range []string{"swap q[1], q[0];", "rx(pi/2) q[1];", "cswap q[2], q[1], q[0];", "y q[2];"} {
		assert.Contains(t, text, line)
	}

	again, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, prog.Gates, again.Gates, spew.Sdump(again.Gates))
}

func TestFormatWidensRegister(t *testing.T) {
	assert.Contains(t, Format(2, []quantum.Gate{quantum.Cnot(0, 4)}), "qreg q[5];")
	assert.Contains(t, Format(2, []quantum.Gate{{Type: "SWAP", Arity: 2, Control: 6, Target: 0}}), "qreg q[7];")
	assert.Contains(t, Format(0, nil), "qreg q[1];")
}

func TestParsedCircuitSimulates(t *testing.T) {
	prog, err := Parse("qreg q[2];\nx q[0];\nswap q[0], q[1];\ncx q[0], q[1];")
	require.NoError(t, err)

	sv, err := quantum.RunCircuit(prog.NumQubits, prog.Gates)
	require.NoError(t, err)
	assert.InDelta(t, 1, real(sv.Amplitudes[3]), 1e-9, "amplitudes %v", sv.Amplitudes)
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{".5", 0.5, true},
		{"42", 42, true},

		// Pi forms
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"2pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-pi/2", -math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseParamExpr(tt.input)
		if assert.Equal(t, tt.ok, ok, "ParseParamExpr(%q) ok", tt.input) && ok {
			assert.InDelta(t, tt.want, got, 1e-10, "ParseParamExpr(%q)", tt.input)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{-math.Pi / 2, "-pi/2"},
		{1.5, "1.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatParam(tt.input), "FormatParam(%g)", tt.input)
	}
}

func TestParseParams(t *testing.T) {
	assert.Len(t, ParseParams("pi/2,pi/4"), 2)
	assert.Equal(t, []float64{0.5, 0.25}, ParseParams(".5, .25"))
	assert.Nil(t, ParseParams("pi/2,garbage"))
	assert.Nil(t, ParseParams(""))
}
