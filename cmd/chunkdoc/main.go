// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

// chunkdoc compiles API chunk graphs into documentation pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/chunkdoc"
	"github.com/woozymasta/chunkdoc/internal/config"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/chunkdoc"
	_buildTime string
)

// cliOptions describes chunkdoc CLI flags and subcommands.
type cliOptions struct {
	Version versionCommand `command:"version" description:"Print version information"`
	Build   buildCommand   `command:"build" description:"Compile chunk graph into documentation files"`
	Serve   serveCommand   `command:"serve" description:"Compile chunk graph and serve HTML preview"`
	Example exampleCommand `command:"example" description:"Print example payload for schema chunk"`
}

// configFlags selects configuration file.
type configFlags struct {
	ConfigPath string `short:"c" long:"config" description:"Path to YAML config file (optional; CHUNKDOC_* env and defaults when omitted)"`
}

// compileFlags groups compile settings; set flags override config values.
type compileFlags struct {
	OutDir            string `short:"o" long:"out" description:"Output directory prefix of generated paths"`
	Convention        string `long:"convention" description:"Page path convention" choice:"flat" choice:"nested"`
	Dialect           string `short:"d" long:"dialect" description:"Output dialect" choice:"markdown" choice:"mdx" choice:"slots"`
	MaxNesting        int    `short:"n" long:"max-nesting" description:"Inline breakout depth before schemas move to embed pages (0 uses default)"`
	DebugPlaceholders bool   `long:"debug-placeholders" description:"Render visible markers for missing optional data"`
	Responses         string `long:"responses" description:"Rendered responses filter" choice:"all" choice:"explicit" choice:"success"`
	SnippetsPath      string `short:"s" long:"snippets" description:"Path to YAML map of operation id to usage snippet"`
	Widget            string `long:"widget" description:"JSX component name for interactive widget next to usage snippets"`
	ExampleFormat     string `long:"example-format" description:"Generated body example format" choice:"none" choice:"json" choice:"yaml"`
	ExampleMode       string `long:"example-mode" description:"Generated body example property coverage" choice:"all" choice:"required"`
}

// logFlags groups logging flags.
type logFlags struct {
	LogLevel  string `long:"log-level" description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	LogFormat string `long:"log-format" description:"Log format" choice:"console" choice:"json"`
}

// buildCommand compiles chunk graph and writes pages to disk.
type buildCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Input chunk graph file (optional; config input or stdin when omitted)"`
	} `positional-args:"yes"`

	ConfigFlags  configFlags  `group:"Config"`
	CompileFlags compileFlags `group:"Compile"`
	LogFlags     logFlags     `group:"Logging"`

	Watch bool `short:"w" long:"watch" description:"Rebuild when input or snippets files change"`
}

// Execute runs build subcommand.
func (command *buildCommand) Execute(_ []string) error {
	job, err := command.runner.prepareJob(command.ConfigFlags, command.CompileFlags, command.LogFlags, command.Args.Input)
	if err != nil {
		return err
	}

	if !command.Watch {
		return command.runner.runBuild(job)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return command.runner.runBuildWatch(ctx, job)
}

// serveCommand compiles chunk graph in memory and serves preview.
type serveCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Input chunk graph file (optional; config input when omitted)"`
	} `positional-args:"yes"`

	ConfigFlags  configFlags  `group:"Config"`
	CompileFlags compileFlags `group:"Compile"`
	LogFlags     logFlags     `group:"Logging"`

	Addr  string `short:"a" long:"addr" description:"Preview listen address"`
	Watch bool   `short:"w" long:"watch" description:"Recompile served pages when input files change"`
}

// Execute runs serve subcommand.
func (command *serveCommand) Execute(_ []string) error {
	job, err := command.runner.prepareJob(command.ConfigFlags, command.CompileFlags, command.LogFlags, command.Args.Input)
	if err != nil {
		return err
	}

	if command.Addr != "" {
		job.cfg.Preview.Addr = command.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return command.runner.runServe(ctx, job, command.Watch)
}

// exampleCommand prints generated example payload for one schema chunk.
type exampleCommand struct {
	runner *cliRunner
	Args   struct {
		Input   string `positional-arg-name:"input" description:"Input chunk graph file" required:"yes"`
		ChunkID string `positional-arg-name:"chunk" description:"Schema chunk id" required:"yes"`
	} `positional-args:"yes"`

	Format string `short:"f" long:"format" description:"Example payload format" choice:"json" choice:"yaml" default:"yaml"`
	Mode   string `short:"m" long:"mode" description:"Example property coverage" choice:"all" choice:"required" default:"all"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(command.Args.Input, command.Args.ChunkID, command.Format, command.Mode)
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "chunkdoc"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Build.runner = runner
	options.Serve.runner = runner
	options.Example.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"build": strings.TrimSpace(fmt.Sprintf(`
Compile chunk graph into documentation pages and write them to disk.
Reads graph from file argument, config input or stdin.

Examples:
> $ %s build api.chunks.yaml
> $ %s build -d mdx --convention nested -o website/docs api.chunks.yaml
> $ %s build -c chunkdoc.yaml --watch
`, programName, programName, programName)),
		"serve": strings.TrimSpace(fmt.Sprintf(`
Compile chunk graph in memory and serve an HTML preview of every page.

Examples:
> $ %s serve api.chunks.yaml
> $ %s serve -a :9000 --watch api.chunks.yaml
`, programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Print generated example payload for a schema chunk.

Examples:
> $ %s example api.chunks.yaml Pet
> $ %s example -f json -m required api.chunks.yaml Pet
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build metadata.
func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}

// mergeCompileFlags applies explicitly set flags over config values.
func mergeCompileFlags(cfg *config.Config, flagValues compileFlags) {
	if flagValues.OutDir != "" {
		cfg.Output.Dir = flagValues.OutDir
	}
	if flagValues.Convention != "" {
		cfg.Output.Convention = flagValues.Convention
	}
	if flagValues.Dialect != "" {
		cfg.Output.Dialect = flagValues.Dialect
	}
	if flagValues.MaxNesting != 0 {
		cfg.Render.MaxNestingLevel = flagValues.MaxNesting
	}
	if flagValues.DebugPlaceholders {
		cfg.Render.ShowDebugPlaceholders = true
	}
	if flagValues.Responses != "" {
		cfg.Render.VisibleResponses = flagValues.Responses
	}
	if flagValues.SnippetsPath != "" {
		cfg.Snippets = flagValues.SnippetsPath
	}
	if flagValues.Widget != "" {
		cfg.Render.Widget = flagValues.Widget
	}
	if flagValues.ExampleFormat != "" {
		cfg.Examples.Format = flagValues.ExampleFormat
	}
	if flagValues.ExampleMode != "" {
		cfg.Examples.Mode = flagValues.ExampleMode
	}
}

// runExample prints example payload for schema chunk.
func (runner *cliRunner) runExample(inputPath, chunkID, format, mode string) error {
	store, err := chunkdoc.ParseChunkGraphFile(inputPath)
	if err != nil {
		return fmt.Errorf("read chunk graph: %w", err)
	}

	chunk, ok := store.Get(chunkID)
	if !ok || chunk.Type != chunkdoc.ChunkSchema {
		return fmt.Errorf("%w: schema chunk %q", chunkdoc.ErrMissingChunk, chunkID)
	}

	schema := &chunkdoc.SchemaValue{Kind: chunkdoc.KindChunk, ChunkID: chunkID}
	payload, err := chunkdoc.GenerateExample(schema, store, chunkdoc.ExampleMode(mode), chunkdoc.ExampleFormat(format))
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	if _, err := runner.stdout.Write(payload); err != nil {
		return fmt.Errorf("write example to stdout: %w", err)
	}

	return nil
}
