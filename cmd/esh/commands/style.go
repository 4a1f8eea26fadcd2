// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/esh/model"
)

var (
	primary    = lipgloss.Color("#00ff9f")
	dim        = lipgloss.Color("#6e7681")
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(12)
)

// printModel renders the metadata of m under the given name.
func printModel(w io.Writer, name string, m *model.Model) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(name))
	b.WriteByte('\n')
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	row("id", m.ID)
	row("variant", m.Variant)
	row("shape", fmt.Sprintf("%d features × %d bits", m.Features, m.Bits))
	row("state", fmt.Sprintf("%s after %d iterations", m.State, m.Iterations))
	row("alpha", fmt.Sprintf("%.6g", m.Alpha))
	row("step size", fmt.Sprintf("%.6g", m.StepSize))
	if cost, ok := m.FinalCost(); ok {
		row("cost", fmt.Sprintf("%.6g → %.6g", m.Costs[0], cost))
	}
	row("created", m.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprint(w, b.String())
}
