package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"qfield/qasm"
	"qfield/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectOperand
)

// frameInterval is the field animation period.
const frameInterval = 80 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model represents the TUI application state.
type Model struct {
	sim       *quantum.Simulator
	maxQubits int
	threshold float64

	// The circuit: a register size and an ordered gate list. state is the
	// result of simulating it, recomputed after every edit.
	numQubits int
	gates     []quantum.Gate
	state     *quantum.StateVector
	simErr    error

	cursor     int // selected gate index; len(gates) is the append slot
	width      int
	height     int
	qasmEditor textarea.Model
	focus      focus
	lastQASM   string
	statusMsg  string // transient status message (e.g. save confirmation)

	// Menu and operand-selection state
	menuItem    int
	pendingItem menuItem
	operands    []int
	pickQubit   int

	// Field animation
	k      float64
	omega  float64
	t      float64
	paused bool
}

func initialModel(cfg *Config, sim *quantum.Simulator, numQubits int, gates []quantum.Gate) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(12)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		sim:        sim,
		maxQubits:  cfg.MaxQubits,
		threshold:  cfg.Threshold,
		numQubits:  numQubits,
		gates:      slices.Clone(gates),
		qasmEditor: ta,
		focus:      focusCircuit,
		k:          cfg.K,
		omega:      cfg.Omega,
	}
	m.cursor = len(m.gates)
	m.syncCircuit()
	return m
}

// simulate reruns the circuit on a fresh state vector.
func (m *Model) simulate() {
	m.state, m.simErr = m.sim.Run(m.numQubits, m.gates)
	if m.simErr != nil {
		log.Error("simulation failed", "qubits", m.numQubits, "err", m.simErr)
	}
}

// syncCircuit resimulates and rewrites the QASM view from the gate list.
func (m *Model) syncCircuit() {
	m.simulate()
	text := qasm.Format(m.numQubits, m.gates)
	m.qasmEditor.SetValue(text)
	m.lastQASM = text
}

// parseQASMInput rebuilds the circuit from the editor text when it changed.
// A parse error keeps the previous circuit and shows the error instead.
func (m *Model) parseQASMInput() {
	text := m.qasmEditor.Value()
	if text == m.lastQASM {
		return
	}
	m.lastQASM = text

	prog, err := qasm.Parse(text)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	n := m.numQubits
	if prog.NumQubits > 0 {
		n = prog.NumQubits
	}
	if n > m.maxQubits {
		m.statusMsg = fmt.Sprintf("qreg of %d exceeds the %d-qubit limit", n, m.maxQubits)
		return
	}
	m.numQubits = n
	m.gates = prog.Gates
	m.cursor = len(m.gates)
	m.simulate()
}

// setQubits changes the register size, pruning gates that no longer fit.
func (m *Model) setQubits(n int) {
	n = clampQubits(n, m.maxQubits)
	if n == m.numQubits {
		return
	}
	if n < m.numQubits {
		before := len(m.gates)
		m.gates = quantum.Prune(m.gates, n)
		if removed := before - len(m.gates); removed > 0 {
			m.statusMsg = fmt.Sprintf("Removed %d gate(s) outside q[0..%d]", removed, n-1)
		}
		m.cursor = min(m.cursor, len(m.gates))
		m.pickQubit = min(m.pickQubit, n-1)
	}
	m.numQubits = n
	m.syncCircuit()
}

// insertGate places g before the cursor and moves the cursor past it.
func (m *Model) insertGate(g quantum.Gate) {
	m.gates = slices.Insert(m.gates, m.cursor, g)
	m.cursor++
	m.syncCircuit()
}

// deleteGate removes the gate under the cursor.
func (m *Model) deleteGate() {
	if m.cursor >= len(m.gates) {
		return
	}
	m.gates = slices.Delete(m.gates, m.cursor, m.cursor+1)
	m.syncCircuit()
}

func (m *Model) cancelPick() {
	m.focus = focusCircuit
	m.operands = nil
	m.pendingItem = menuItem{}
}

// startPick begins operand selection for item on the first free qubit.
func (m *Model) startPick(item menuItem) {
	m.pendingItem = item
	m.operands = nil
	m.pickQubit = 0
	m.focus = focusSelectOperand
}

// movePick moves the operand highlight by dir, skipping qubits already picked.
func (m *Model) movePick(dir int) {
	for next := m.pickQubit + dir; next >= 0 && next < m.numQubits; next += dir {
		if !slices.Contains(m.operands, next) {
			m.pickQubit = next
			return
		}
	}
}

// confirmPick records the highlighted qubit as the next operand and places
// the gate once every operand is chosen.
func (m *Model) confirmPick() {
	if slices.Contains(m.operands, m.pickQubit) {
		return
	}
	m.operands = append(m.operands, m.pickQubit)
	if len(m.operands) < len(m.pendingItem.operands) {
		for q := 0; q < m.numQubits; q++ {
			if !slices.Contains(m.operands, q) {
				m.pickQubit = q
				break
			}
		}
		return
	}
	g := m.pendingItem.buildGate(m.operands)
	m.cancelPick()
	m.insertGate(g)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmEditor.SetWidth(max(msg.Width/3-panelChrome, 20))
		m.qasmEditor.SetHeight(max(msg.Height/2-panelChrome-2, 4))

	case tickMsg:
		if !m.paused {
			m.t += frameInterval.Seconds()
		}
		cmds = append(cmds, tick())

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus != focusQASM {
			m.statusMsg = ""
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.gates = nil
				m.cursor = 0
				m.syncCircuit()
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(qasm.Format(m.numQubits, m.gates)), 0o644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "left", "h":
				if m.cursor > 0 {
					m.cursor--
				}
			case "right", "l":
				if m.cursor < len(m.gates) {
					m.cursor++
				}
			case "home":
				m.cursor = 0
			case "end":
				m.cursor = len(m.gates)
			case "+", "=":
				m.setQubits(m.numQubits + 1)
			case "-":
				m.setQubits(m.numQubits - 1)
			case "a":
				m.focus = focusMenu
				m.menuItem = 0
			case "backspace", "delete", "x":
				m.deleteGate()
			case "[":
				m.k = max(m.k-5, 0)
			case "]":
				m.k += 5
			case ",":
				m.omega = max(m.omega-1, 0)
			case ".":
				m.omega++
			case " ":
				m.paused = !m.paused
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu)-1 {
					m.menuItem++
				}
			case "enter":
				item := gateMenu[m.menuItem]
				if len(item.operands) > m.numQubits {
					m.statusMsg = fmt.Sprintf("%s needs %d qubits", item.name, len(item.operands))
					break
				}
				m.startPick(item)
			}

		case focusSelectOperand:
			switch key {
			case "esc":
				m.cancelPick()
			case "up", "k":
				m.movePick(-1)
			case "down", "j":
				m.movePick(1)
			case "enter":
				m.confirmPick()
			}

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.statusMsg = ""
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - panelChrome
	controlsHeight := 4
	topHeight := max((m.height-controlsHeight)/2, 8)
	bottomHeight := max(m.height-controlsHeight-topHeight-panelChrome, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, topHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, topHeight)

	var left string
	if m.focus == focusMenu {
		left = fieldStyle.Width(circuitWidth).Height(bottomHeight).Render(m.renderMenu())
	} else {
		left = m.renderFieldPanel(circuitWidth, bottomHeight)
	}
	statePanel := m.renderStatePanel(qasmWidth, bottomHeight)
	controlsPanel := m.renderControlsPanel(m.width-panelChrome, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, left, statePanel)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, controlsPanel)
}
