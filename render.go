package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qfield/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns the one-character box label for a gate kind.
func gateDisplayName(t quantum.GateType) string {
	if item, ok := menuItemFor(t); ok && len(item.operands) == 1 {
		return item.symbol
	}
	return "?"
}

// bar draws a horizontal bar of frac*width cells.
func bar(frac float64, width int) string {
	n := min(max(int(frac*float64(width)+0.5), 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellRole int

const (
	roleWire cellRole = iota
	roleBox
	roleControl
	roleTarget
	rolePass
)

// cellInfo describes what one diagram column draws on one qubit wire.
type cellInfo struct {
	gate      quantum.Gate
	role      cellRole
	vertAbove bool
	vertBelow bool
	cursor    bool
}

// roleOn returns how a gate appears on wire q.
func roleOn(g quantum.Gate, q int) cellRole {
	switch g.Type {
	case quantum.CNOT:
		switch q {
		case g.Control:
			return roleControl
		case g.Target:
			return roleTarget
		}
		return rolePass
	case quantum.CCNOT:
		switch q {
		case g.Control1, g.Control2:
			return roleControl
		case g.Target:
			return roleTarget
		}
		return rolePass
	default:
		if slices.Contains(g.Operands(), q) {
			return roleBox
		}
		return rolePass
	}
}

// diagramGrid lays out cells[column][qubit] for the circuit.
func diagramGrid(numQubits int, gates []quantum.Gate, cursor int) [][]cellInfo {
	placed, columns := layoutGates(numQubits, gates)
	grid := make([][]cellInfo, columns)
	for c := range grid {
		grid[c] = make([]cellInfo, numQubits)
	}
	for _, p := range placed {
		for q := p.Lo; q <= p.Hi; q++ {
			grid[p.Column][q] = cellInfo{
				gate:      p.Gate,
				role:      roleOn(p.Gate, q),
				vertAbove: q > p.Lo,
				vertBelow: q < p.Hi,
				cursor:    p.Index == cursor,
			}
		}
	}
	return grid
}

// renderCell returns 3 lines (top, mid, bot) for a single cell, each cellW
// visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	style := gateStyle
	if info.cursor {
		style = cursorBoxStyle
	}

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch info.role {
	case roleControl:
		mid = strings.Repeat("─", dashL) + style.Render("●") + strings.Repeat("─", dashR)
	case roleTarget:
		mid = strings.Repeat("─", dashL) + style.Render("⊕") + strings.Repeat("─", dashR)
	case rolePass:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
	case roleBox:
		if !info.gate.Known() && !info.cursor {
			style = unknownGateStyle
		}
		name := gateDisplayName(info.gate.Type)
		top = " " + style.Render("┌─┐") + " "
		mid = "─" + style.Render("┤"+name+"├") + "─"
		bot = " " + style.Render("└─┘") + " "
	default:
		mid = strings.Repeat("─", cellW)
	}
	return top, mid, bot
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit diagram panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	fmt.Fprintf(&sb, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d qubits, %d gates", m.numQubits, len(m.gates))))

	grid := diagramGrid(m.numQubits, m.gates, m.cursor)

	// Column of the cursor; the append slot sits after the last column.
	cursorCol := len(grid)
	appendSlot := m.cursor >= len(m.gates)
	if !appendSlot {
		cursorCol = slices.IndexFunc(grid, func(col []cellInfo) bool {
			return slices.ContainsFunc(col, func(c cellInfo) bool { return c.cursor })
		})
		cursorCol = max(cursorCol, 0)
	}

	availWidth := width - labelVisualW - 4
	maxCols := max(availWidth/cellW, 1)
	totalCols := len(grid) + 1
	startCol := 0
	if cursorCol >= maxCols {
		startCol = cursorCol - maxCols + 1
	}
	endCol := min(startCol+maxCols, totalCols)

	if startCol > 0 {
		fmt.Fprintf(&sb, "  ◀ showing columns %d–%d\n", startCol, endCol-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for c := startCol; c < min(endCol, len(grid)); c++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", c), cellW))
	}
	sb.WriteString(header + "\n")

	for q := 0; q < m.numQubits; q++ {
		label := fmt.Sprintf("q[%d]", q)
		labelStyle := qubitLabelStyle
		if m.focus == focusSelectOperand {
			switch {
			case q == m.pickQubit:
				labelStyle = targetSelectStyle
				label = "▸" + label
			case slices.Contains(m.operands, q):
				labelStyle = activeGateStyle
			}
		}
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := labelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for c := startCol; c < endCol; c++ {
			var top, mid, bot string
			if c < len(grid) {
				top, mid, bot = renderCell(grid[c][q])
			} else {
				top, mid, bot = renderCell(cellInfo{})
				if appendSlot {
					halfW := cellW / 2
					mid = strings.Repeat("─", halfW) + cursorBoxStyle.Render("┃") + strings.Repeat("─", cellW-halfW-1)
				}
			}
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	sb.WriteString("\n")
	switch {
	case m.focus == focusSelectOperand:
		step := len(m.operands)
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingItem.name))
		fmt.Fprintf(&sb, "  Select %s: ", m.pendingItem.operands[step])
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.pickQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	default:
		if m.cursor < len(m.gates) {
			fmt.Fprintf(&sb, "  Gate %d: %s", m.cursor, m.gates[m.cursor])
		} else {
			fmt.Fprintf(&sb, "  Append at %d", m.cursor)
		}
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	if m.focus == focusQASM && m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.statusMsg))
	}

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel lists the basis states above the display threshold.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("State"))
	sb.WriteString("\n")

	if m.simErr != nil {
		sb.WriteString(errorStyle.Render(m.simErr.Error()))
		return stateStyle.Width(width).Height(height).Render(sb.String())
	}

	fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("norm %.6f", m.state.Norm())))

	states := m.state.BasisStates(m.threshold)
	rows := max(height-3, 1)
	barW := max(width-panelChrome-m.numQubits-24, 4)
	for i, st := range states {
		if i == rows-1 && len(states) > rows {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(states)-i)))
			break
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n",
			qubitLabelStyle.Render(m.state.Label(st.Index)),
			fieldInkStyle.Render(bar(st.Prob, barW)),
			fmt.Sprintf("%.3f", st.Prob),
			dimStyle.Render(fmt.Sprintf("∠%+.2f", st.Phase)),
		)
	}

	return stateStyle.Width(width).Height(height).Render(sb.String())
}

// renderFieldPanel draws the interference pattern of the current state.
func (m Model) renderFieldPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Interference Field"))
	fmt.Fprintf(&sb, "  %s\n", dimStyle.Render(fmt.Sprintf("k=%.0f ω=%.0f", m.k, m.omega)))

	w := max(width-panelChrome, 1)
	h := max(height-2, 1)
	if m.state != nil {
		sources := fieldSources(m.state.BasisStates(m.threshold), m.state.Size())
		grid := interferenceField(sources, w, h, fieldParams{
			K:      m.k,
			Omega:  m.omega,
			T:      m.t,
			Aspect: 2 * float64(h) / float64(w),
		})
		sb.WriteString(fieldInkStyle.Render(strings.Join(shadeField(grid), "\n")))
	}

	return fieldStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("←→/hl Move  Home/End Jump  +/- Qubits")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("[ ]"))
	sb.WriteString(" k  ")
	sb.WriteString(activeGateStyle.Render(", ."))
	sb.WriteString(" ω  Space Pause\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  Bksp Delete  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
