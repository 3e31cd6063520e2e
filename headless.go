package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"qfield/amp"
	"qfield/quantum"
)

// formatAmplitude renders an amplitude as re±im·i with fixed precision.
func formatAmplitude(a amp.Complex) string {
	return fmt.Sprintf("%+.4f%+.4fi", amp.Re(a), amp.Im(a))
}

// stateRows returns one table row per basis state above threshold.
func stateRows(sv *quantum.StateVector, threshold float64) [][]string {
	states := sv.BasisStates(threshold)
	rows := make([][]string, 0, len(states))
	for _, st := range states {
		rows = append(rows, []string{
			strconv.Itoa(st.Index),
			sv.Label(st.Index),
			formatAmplitude(st.Amplitude),
			fmt.Sprintf("%.4f", st.Prob),
			fmt.Sprintf("%+.4f", st.Phase),
		})
	}
	return rows
}

// printState writes the final state vector as a table.
func printState(w io.Writer, sv *quantum.StateVector, threshold float64) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))).
		Headers("index", "basis", "amplitude", "prob", "phase").
		Rows(stateRows(sv, threshold)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintf(w, "qubits=%d size=%d norm=%.6f\n%s\n", sv.NumQubits, sv.Size(), sv.Norm(), t.Render())
	return err
}
