package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/structurerun/structurerun/pkg/agent"
	"github.com/structurerun/structurerun/pkg/bootstrap"
	"github.com/structurerun/structurerun/pkg/command"
	configpkg "github.com/structurerun/structurerun/pkg/config"
	"github.com/structurerun/structurerun/pkg/events"
	loggerpkg "github.com/structurerun/structurerun/pkg/logger"
)

// Exit codes. Validation failures are distinguished so wrappers can tell a
// bad invocation from a failed run.
const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

// run wires bootstrap, parsing, and the provider-backed runner together.
func run(args []string, stdout, stderr io.Writer) int {
	log := loggerpkg.NewWriterLogger(stderr)

	bus := events.NewBus()
	if _, err := bootstrap.Bootstrap(bus, log); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRun
	}

	cfg := configpkg.Normalize(configpkg.FromEnv(os.LookupEnv))
	runner := agent.NewOpenAIRunner(cfg, agent.WithLogger(log))

	return execute(context.Background(), args, runner, bus, stdout, stderr, log)
}

// execute parses the arguments and, only if they validate, invokes the
// runner. No external call happens on a parse failure.
func execute(ctx context.Context, args []string, runner agent.Runner, bus *events.Bus, stdout, stderr io.Writer, log loggerpkg.Logger) int {
	program := "structurerun"
	if len(args) > 0 {
		program = filepath.Base(args[0])
	}

	req, err := command.Parse(args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n\n", err)
		command.Usage(stderr, program)
		return exitUsage
	}

	publish := func(ev events.Event) {
		if err := bus.Publish(ctx, ev); err != nil {
			loggerpkg.Warn(log, "event delivery failed", map[string]any{
				"type":  ev.Type,
				"error": err.Error(),
			})
		}
	}

	publish(events.New(events.TypeRunStarted, map[string]any{
		"prompt_bytes": len(req.Prompt),
		"model":        string(req.Model),
	}))

	output, err := runner.Run(ctx, req.Prompt, req.Model)
	if err != nil {
		publish(events.New(events.TypeRunFailed, map[string]any{"error": err.Error()}))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRun
	}

	publish(events.New(events.TypeRunFinished, map[string]any{"output_bytes": len(output)}))
	_, _ = fmt.Fprintln(stdout, output)
	return exitOK
}
