package targets

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	moduleStyle = lipgloss.NewStyle().Bold(true)
	nameStyle   = lipgloss.NewStyle().Underline(true)
	classStyle  = lipgloss.NewStyle().Italic(true)
)

type group struct {
	title   string
	entries []Entry
}

// WriteListing prints every target grouped by role.
func (s *Set) WriteListing(w io.Writer) error {
	groups := []group{
		{"Annotation targets", s.Annotate},
		{"Export targets", s.Export},
		{"Install targets", s.Install},
		{"Model targets", s.Model},
		{"Custom rule annotators", s.Custom},
	}

	width := 0
	for _, g := range groups {
		for _, e := range g.entries {
			width = max(width, len(e.Name))
		}
	}

	var b strings.Builder
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render(g.title))
		for _, e := range g.entries {
			line := fmt.Sprintf("    %-*s  %s", width, e.Name, e.Description)
			if len(e.Languages) > 0 {
				line += fmt.Sprintf(" (%s)", strings.Join(e.Languages, ", "))
			}
			fmt.Fprintln(&b, strings.TrimRight(line, " "))
		}
	}
	if b.Len() == 0 {
		b.WriteString("\nNo targets available.\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAnnotations prints the annotations produced per module. A non-empty
// only restricts the listing to those modules.
func (s *Set) WriteAnnotations(w io.Writer, only ...string) error {
	byModule := map[string][]*AnnotatorInfo{}
	var modules []string
	width := 0
	for _, info := range s.Annotators {
		if len(only) > 0 && !slices.Contains(only, info.Module) {
			continue
		}
		if _, seen := byModule[info.Module]; !seen {
			modules = append(modules, info.Module)
		}
		byModule[info.Module] = append(byModule[info.Module], info)
		for _, a := range info.Annotations {
			width = max(width, len(a.Name))
		}
	}
	slices.Sort(modules)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Available annotations"))
	for _, mod := range modules {
		fmt.Fprintf(&b, "\n%s\n", moduleStyle.Render(strings.ToUpper(mod)))
		for _, info := range byModule[mod] {
			fmt.Fprintf(&b, "    %s\n", nameStyle.Render(info.Function))
			if info.Description != "" {
				fmt.Fprintf(&b, "    %s\n", info.Description)
			}
			for _, a := range info.Annotations {
				fmt.Fprintln(&b, strings.TrimRight(fmt.Sprintf("      • %-*s  %s", width, a.Name, a.Description), " "))
				if a.Class != "" {
					fmt.Fprintf(&b, "        %s\n", classStyle.Render("<"+a.Class+">"))
				}
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
