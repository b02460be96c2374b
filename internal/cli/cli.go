package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/vk/annograph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Globals are the flags shared by every command.
type Globals struct {
	Dir       string   `short:"d" default:"." type:"path" help:"Corpus directory holding config.yaml and the source files."`
	Manifests []string `short:"m" type:"path" help:"HCL module manifests, files or directories."`
	DataDir   string   `name:"data-dir" type:"path" help:"Directory with shared models and binaries. Defaults to the corpus directory."`
	Language  string   `short:"l" help:"Override the corpus language."`
	LogFormat string   `name:"log-format" enum:"text,json" default:"text" help:"Log output format (text, json)."`
	LogLevel  string   `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Logging level (debug, info, warn, error)."`
}

// CLI defines the command-line interface of annograph.
type CLI struct {
	Globals

	Targets     TargetsCmd     `cmd:"" default:"1" help:"List the available targets grouped by role."`
	Annotations AnnotationsCmd `cmd:"" help:"List the annotations produced by each module."`
	Classes     ClassesCmd     `cmd:"" help:"List annotation class bindings."`
	Config      ConfigCmd      `cmd:"" help:"Print the corpus config merged with module defaults."`
	Graph       GraphCmd       `cmd:"" help:"Print the rules in dependency order."`
	Plan        PlanCmd        `cmd:"" help:"Print the executor plan as YAML."`
}

// Env is bound to every command's Run method.
type Env struct {
	Ctx context.Context
	App *app.App
}

// TargetsCmd lists targets.
type TargetsCmd struct{}

func (c *TargetsCmd) Run(env *Env) error { return env.App.ListTargets(env.Ctx) }

// AnnotationsCmd lists produced annotations.
type AnnotationsCmd struct {
	Modules []string `arg:"" optional:"" help:"Only list these modules."`
}

func (c *AnnotationsCmd) Run(env *Env) error {
	return env.App.ListAnnotations(env.Ctx, c.Modules...)
}

// ClassesCmd lists class bindings.
type ClassesCmd struct{}

func (c *ClassesCmd) Run(env *Env) error { return env.App.ListClasses() }

// ConfigCmd prints the merged config.
type ConfigCmd struct{}

func (c *ConfigCmd) Run(env *Env) error { return env.App.PrintConfig() }

// GraphCmd prints the task graph.
type GraphCmd struct{}

func (c *GraphCmd) Run(env *Env) error { return env.App.PrintGraph(env.Ctx) }

// PlanCmd prints the executor plan.
type PlanCmd struct{}

func (c *PlanCmd) Run(env *Env) error { return env.App.PrintPlan(env.Ctx) }

// Invocation is a parsed command line.
type Invocation struct {
	Config *app.Config
	kctx   *kong.Context
}

// Run executes the selected command against a.
func (inv *Invocation) Run(ctx context.Context, a *app.App) error {
	return inv.kctx.Run(&Env{Ctx: ctx, App: a})
}

// Command returns the selected command path, e.g. "annotations <modules>".
func (inv *Invocation) Command() string {
	return inv.kctx.Command()
}

type exitSignal struct{ code int }

// Parse processes command-line arguments. It returns the parsed invocation,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (inv *Invocation, shouldExit bool, err error) {
	slog.Debug("CLI parser started.")
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("annograph"),
		kong.Description("annograph - compiles annotator declarations and a corpus config into pipeline rules."),
		kong.UsageOnError(),
		kong.Writers(output, output),
		kong.Exit(func(code int) { panic(exitSignal{code}) }),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build command line parser: %w", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(exitSignal)
		if !ok {
			panic(r)
		}
		if sig.code == 0 {
			inv, shouldExit, err = nil, true, nil
			return
		}
		inv, shouldExit, err = nil, false, &ExitError{Code: sig.code, Message: "invalid arguments"}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", kctx.Command())

	config, err := app.NewConfig(app.Config{
		CorpusDir:     cli.Dir,
		ManifestPaths: cli.Manifests,
		DataDir:       cli.DataDir,
		Language:      cli.Language,
		LogFormat:     strings.ToLower(cli.LogFormat),
		LogLevel:      strings.ToLower(cli.LogLevel),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return &Invocation{Config: config, kctx: kctx}, false, nil
}
