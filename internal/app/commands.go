package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/annograph/internal/compiler"
	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/taskgraph"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	noteStyle   = lipgloss.NewStyle().Faint(true)
)

// ListTargets prints the available targets grouped by role.
func (a *App) ListTargets(ctx context.Context) error {
	rep, err := a.Compile(ctx)
	if err != nil {
		return err
	}
	if err := rep.Targets.WriteListing(a.outW); err != nil {
		return err
	}
	return a.writeDiagnostics(rep)
}

// ListAnnotations prints the annotations produced per module, optionally
// limited to the given modules.
func (a *App) ListAnnotations(ctx context.Context, modules ...string) error {
	rep, err := a.Compile(ctx)
	if err != nil {
		return err
	}
	return rep.Targets.WriteAnnotations(a.outW, modules...)
}

// ListClasses prints the class bindings declared by modules and those set
// in the corpus config.
func (a *App) ListClasses() error {
	var b strings.Builder
	write := func(title string, bindings []corpusconfig.ClassBinding) {
		fmt.Fprintf(&b, "\n%s\n", headerStyle.Render(title))
		if len(bindings) == 0 {
			fmt.Fprintf(&b, "    %s\n", noteStyle.Render("none"))
			return
		}
		width := 0
		for _, cb := range bindings {
			width = max(width, len(cb.Class))
		}
		for _, cb := range bindings {
			fmt.Fprintf(&b, "    %-*s  %s\n", width, cb.Class, strings.Join(cb.Annotations, ", "))
		}
	}
	write("Classes set in corpus config", a.classes.ConfigBindings())
	write("Classes provided by modules", a.classes.ModuleBindings())
	_, err := io.WriteString(a.outW, b.String())
	return err
}

// PrintConfig prints the merged corpus config, module defaults included.
func (a *App) PrintConfig() error {
	out, err := a.corpus.YAML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.outW, out)
	return err
}

// PrintGraph prints the rules in dependency order and the fingerprint of
// the compiled target set.
func (a *App) PrintGraph(ctx context.Context) error {
	ctx = a.Context(ctx)
	rep, err := a.Compile(ctx)
	if err != nil {
		return err
	}
	g := taskgraph.Build(ctx, rep.Targets.Rules(), rep.Ordering)
	if err := g.Write(a.outW); err != nil {
		return err
	}
	fp, err := rep.Targets.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "\n%s %s\n", headerStyle.Render("Fingerprint:"), fp)
	return a.writeDiagnostics(rep)
}

func (a *App) writeDiagnostics(rep *compiler.Report) error {
	if len(rep.Diagnostics) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("Warnings"))
	for _, d := range rep.Diagnostics {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", d.Kind, strings.Join(d.Rules, ", "), strings.ReplaceAll(d.Message, "\n", "\n      "))
	}
	_, err := io.WriteString(a.outW, b.String())
	return err
}
