package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/annograph/internal/compiler"
	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/ruleorder"
	"github.com/vk/annograph/internal/targets"
	"gopkg.in/yaml.v3"
)

// Compile runs a compilation pass and persists its load errors.
func (a *App) Compile(ctx context.Context) (*compiler.Report, error) {
	ctx = a.Context(ctx)
	c := compiler.New(a.registry, a.corpus, a.classes, a.layout, a.sources)
	rep, err := c.Compile(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.writeLoadErrors(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// writeLoadErrors stores the message of every rule with missing
// configuration in the log directory, one file per rule, so the executor can
// report it if the rule is ever run.
func (a *App) writeLoadErrors(ctx context.Context, rep *compiler.Report) error {
	diags := rep.DiagnosticsOf(compiler.MissingConfiguration)
	if len(diags) == 0 {
		return nil
	}
	if err := os.MkdirAll(a.layout.LogDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	pid := os.Getpid()
	for _, d := range diags {
		name := strings.ReplaceAll(d.Rules[0], ":", ".")
		file := filepath.Join(a.layout.LogDir, fmt.Sprintf("%d.load_error.%s.log", pid, name))
		if err := os.WriteFile(file, []byte(d.Message+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write load error log: %w", err)
		}
		ctxlog.FromContext(ctx).Debug("Load error logged.", "rule", d.Rules[0], "file", file)
	}
	return nil
}

// Plan is what the executor receives: the rules, their preferred producers
// and the files the configured installations must create.
type Plan struct {
	Targets       []targets.Target
	Ordered       []ruleorder.Pair
	InstallInputs []string
	Fingerprint   string
}

// Plan compiles the corpus and returns the executor handoff.
func (a *App) Plan(ctx context.Context) (*Plan, error) {
	rep, err := a.Compile(ctx)
	if err != nil {
		return nil, err
	}
	fp, err := rep.Targets.Fingerprint()
	if err != nil {
		return nil, err
	}
	return &Plan{
		Targets:       rep.Targets.Handoff(),
		Ordered:       rep.Ordering.Ordered,
		InstallInputs: rep.Targets.InstallInputs(a.corpus.GetStrings(corpusconfig.KeyInstall)),
		Fingerprint:   fp,
	}, nil
}

type planTarget struct {
	Name    string   `yaml:"name"`
	Order   *int     `yaml:"order,omitempty"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

type planOrder struct {
	Preferred string   `yaml:"preferred"`
	Over      string   `yaml:"over"`
	Outputs   []string `yaml:"outputs"`
}

// PrintPlan renders the executor handoff as YAML.
func (a *App) PrintPlan(ctx context.Context) error {
	p, err := a.Plan(ctx)
	if err != nil {
		return err
	}
	doc := struct {
		Fingerprint string       `yaml:"fingerprint"`
		Targets     []planTarget `yaml:"targets"`
		RuleOrder   []planOrder  `yaml:"ruleorder,omitempty"`
		Install     []string     `yaml:"install_inputs,omitempty"`
	}{Fingerprint: p.Fingerprint, Install: p.InstallInputs}
	for _, t := range p.Targets {
		doc.Targets = append(doc.Targets, planTarget{Name: t.Name, Order: t.Order, Inputs: t.Inputs, Outputs: t.Outputs})
	}
	for _, pair := range p.Ordered {
		doc.RuleOrder = append(doc.RuleOrder, planOrder{Preferred: pair.Preferred.Name, Over: pair.Other.Name, Outputs: pair.Outputs})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	_, err = a.outW.Write(out)
	return err
}
