package main

import (
	"fmt"
	"strings"

	"qfield/quantum"
)

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name     string
	gateType quantum.GateType
	symbol   string
	operands []string // operand prompts, in the order they are picked
}

// gateMenu lists the gates the engine can apply.
var gateMenu = []menuItem{
	{name: "Hadamard", gateType: quantum.H, symbol: "H", operands: []string{"target"}},
	{name: "Pauli-X (NOT)", gateType: quantum.X, symbol: "X", operands: []string{"target"}},
	{name: "Phase (S)", gateType: quantum.S, symbol: "S", operands: []string{"target"}},
	{name: "π/8 (T)", gateType: quantum.T, symbol: "T", operands: []string{"target"}},
	{name: "CNOT", gateType: quantum.CNOT, symbol: "●─⊕", operands: []string{"control", "target"}},
	{name: "Toffoli (CCNOT)", gateType: quantum.CCNOT, symbol: "●─●─⊕", operands: []string{"control 1", "control 2", "target"}},
}

// menuItemFor returns the picker entry for a gate type.
func menuItemFor(t quantum.GateType) (menuItem, bool) {
	for _, item := range gateMenu {
		if item.gateType == t {
			return item, true
		}
	}
	return menuItem{}, false
}

// buildGate turns picked operands into a descriptor. operands must have the
// length the item asks for.
func (item menuItem) buildGate(operands []int) quantum.Gate {
	switch item.gateType {
	case quantum.CNOT:
		return quantum.Cnot(operands[0], operands[1])
	case quantum.CCNOT:
		return quantum.Toffoli(operands[0], operands[1], operands[2])
	default:
		return quantum.Gate{Type: item.gateType, Target: operands[0]}
	}
}

// renderMenu renders the gate picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 32)))
	sb.WriteString("\n")

	for i, item := range gateMenu {
		disabled := len(item.operands) > m.numQubits
		switch {
		case i == m.menuItem:
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		case disabled:
			sb.WriteString("   ")
			sb.WriteString(dimStyle.Render(fmt.Sprintf("%-18s%s", item.name, item.symbol)))
		default:
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if disabled {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" needs %d qubits", len(item.operands))))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return sb.String()
}
