package main

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qfield/quantum"
)

func newTestModel(t *testing.T, numQubits int, gates []quantum.Gate) Model {
	t.Helper()
	cfg := NewConfig()
	sim := quantum.NewSimulator(cfg.MaxQubits, log.New(io.Discard))
	return initialModel(cfg, sim, numQubits, gates)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func probability(m Model, basis int) float64 {
	return m.state.Probabilities()[basis]
}

func TestInitialModelSimulates(t *testing.T) {
	m := newTestModel(t, 2, []quantum.Gate{quantum.PauliX(1)})
	require.NoError(t, m.simErr)
	assert.InDelta(t, 1, probability(m, 0b10), 1e-9)
	assert.Equal(t, 1, m.cursor, "cursor should sit on the append slot")
	assert.Contains(t, m.qasmEditor.Value(), "x q[1];")
}

func TestAddGatesFromMenu(t *testing.T) {
	m := newTestModel(t, 2, nil)

	// Hadamard is the first menu entry; its only operand defaults to q0.
	m = press(m, "a", "enter", "enter")
	require.Equal(t, focusCircuit, m.focus)
	require.Equal(t, []quantum.Gate{quantum.Hadamard(0)}, m.gates)

	// CNOT: control q0, then the picker moves to the first free qubit, q1.
	m = press(m, "a", "down", "down", "down", "down", "enter", "enter", "enter")
	require.Equal(t, []quantum.Gate{quantum.Hadamard(0), quantum.Cnot(0, 1)}, m.gates)
	for _, basis := range []int{0b00, 0b11} {
		assert.InDelta(t, 0.5, probability(m, basis), 1e-9, "P(%d)", basis)
	}
}

func TestOperandPickSkipsChosenQubits(t *testing.T) {
	m := newTestModel(t, 3, nil)

	// Toffoli: pick q2 as first control, then move up past it.
	m = press(m, "a", "down", "down", "down", "down", "down", "enter")
	require.Equal(t, focusSelectOperand, m.focus)

	m = press(m, "down", "down", "enter")
	require.Equal(t, 0, m.pickQubit)

	m = press(m, "down", "down")
	assert.Equal(t, 1, m.pickQubit, "q2 is taken")

	m = press(m, "enter", "enter")
	assert.Equal(t, []quantum.Gate{quantum.Toffoli(2, 1, 0)}, m.gates)
}

func TestMenuCancelAndDisabled(t *testing.T) {
	m := newTestModel(t, 1, nil)

	m = press(m, "a", "esc")
	assert.Equal(t, focusCircuit, m.focus, "esc should close the menu")

	// CNOT needs two qubits.
	m = press(m, "a", "down", "down", "down", "down", "enter")
	assert.Equal(t, focusMenu, m.focus, "CNOT should not open on one qubit")
	assert.NotEmpty(t, m.statusMsg)

	m = press(m, "esc", "a", "enter", "esc")
	assert.Equal(t, focusCircuit, m.focus, "esc during operand selection should cancel")
	assert.Empty(t, m.gates)
}

func TestCursorInsertAndDelete(t *testing.T) {
	m := newTestModel(t, 2, []quantum.Gate{quantum.PauliX(0), quantum.PauliX(1)})

	m = press(m, "left", "left", "left")
	require.Equal(t, 0, m.cursor)

	// Insert H(0) in front of the first X.
	m = press(m, "a", "enter", "enter")
	assert.Equal(t, []quantum.Gate{quantum.Hadamard(0), quantum.PauliX(0), quantum.PauliX(1)}, m.gates)
	assert.Equal(t, 1, m.cursor)

	m = press(m, "backspace")
	assert.Equal(t, []quantum.Gate{quantum.Hadamard(0), quantum.PauliX(1)}, m.gates)

	m = press(m, "right", "right", "right", "backspace")
	assert.Len(t, m.gates, 2, "delete at the append slot removed a gate")

	m = press(m, "ctrl+r")
	assert.Empty(t, m.gates)
	assert.Zero(t, m.cursor)
	assert.Equal(t, 1.0, probability(m, 0))
}

func TestQubitCountPrunesGates(t *testing.T) {
	m := newTestModel(t, 3, []quantum.Gate{
		quantum.Hadamard(2),
		quantum.PauliX(0),
		quantum.Cnot(0, 2),
		{Type: "FOO", Target: 9},
	})

	m = press(m, "-")
	require.Equal(t, 2, m.numQubits)
	assert.Equal(t, []quantum.Gate{quantum.PauliX(0)}, m.gates)
	assert.Contains(t, m.statusMsg, "Removed 3")
	assert.LessOrEqual(t, m.cursor, len(m.gates))
	assert.Len(t, m.state.Amplitudes, 4)

	m = press(m, "-", "-", "-")
	assert.Equal(t, 1, m.numQubits, "qubit count floors at 1")

	m = press(m, "+", "=")
	assert.Equal(t, 3, m.numQubits)
}

func TestQubitCountLimit(t *testing.T) {
	m := newTestModel(t, 10, nil)
	m = press(m, "+")
	assert.Equal(t, 10, m.numQubits)
}

func TestQASMEditing(t *testing.T) {
	m := newTestModel(t, 2, nil)

	m = press(m, "tab")
	require.Equal(t, focusQASM, m.focus)

	m.qasmEditor.SetValue("qreg q[3];\nx q[2];\n")
	m.parseQASMInput()
	require.Equal(t, 3, m.numQubits)
	require.Equal(t, []quantum.Gate{quantum.PauliX(2)}, m.gates)
	assert.InDelta(t, 1, probability(m, 0b100), 1e-9)

	m.qasmEditor.SetValue("qreg q[3];\nwhat is this\n")
	m.parseQASMInput()
	assert.Contains(t, m.statusMsg, "line 2")
	assert.Len(t, m.gates, 1, "a parse error replaced the circuit")

	m.qasmEditor.SetValue("qreg q[40];\n")
	m.parseQASMInput()
	assert.Equal(t, 3, m.numQubits, "oversized qreg accepted")
	assert.Contains(t, m.statusMsg, "limit")

	m = press(m, "esc")
	assert.Equal(t, focusCircuit, m.focus, "esc should leave the editor")
}

func TestFieldAnimation(t *testing.T) {
	m := newTestModel(t, 1, []quantum.Gate{quantum.Hadamard(0)})
	require.NotNil(t, m.Init(), "Init should start the animation tick")

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.NotNil(t, cmd, "tick should schedule the next frame")
	assert.Equal(t, frameInterval.Seconds(), m.t)

	m = press(m, " ")
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.Equal(t, frameInterval.Seconds(), m.t, "paused field advanced")

	k, omega := m.k, m.omega
	m = press(m, "]", ".")
	assert.Equal(t, k+5, m.k)
	assert.Equal(t, omega+1, m.omega)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t, 3, []quantum.Gate{quantum.Hadamard(0), quantum.Toffoli(0, 1, 2)})
	assert.Equal(t, "Loading...", m.View(), "view before the first WindowSizeMsg")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 44})
	m = next.(Model)
	view := m.View()
	for _, want := range []string{"Quantum Circuit", "QASM Editor", "Interference Field", "State", "q[2]"} {
		assert.Contains(t, view, want)
	}

	m = press(m, "a")
	assert.Contains(t, m.View(), "Add Gate", "menu not shown")
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, 1, nil)
	_, cmd := m.Update(keyMsg("q"))
	assert.NotNil(t, cmd, "q should quit")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd, "ctrl+c should quit")
}
