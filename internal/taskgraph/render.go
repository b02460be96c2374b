package taskgraph

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ruleStyle = lipgloss.NewStyle().Bold(true)
	depStyle  = lipgloss.NewStyle().Faint(true)
)

// Write prints the rules in dependency order, each with the rules it
// depends on. A cyclic graph is reported and printed unordered.
func (g *Graph) Write(w io.Writer) error {
	order, cycleErr := g.TopologicalOrder()
	if cycleErr != nil {
		order = g.Nodes()
	}

	var b strings.Builder
	if cycleErr != nil {
		fmt.Fprintf(&b, "Warning: %v\n", cycleErr)
	}
	for _, id := range order {
		deps, err := g.Dependencies(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(&b, ruleStyle.Render(id))
		for _, dep := range deps {
			fmt.Fprintf(&b, "    <- %s\n", depStyle.Render(dep))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
