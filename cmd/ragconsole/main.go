package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/target/mmk-rag-console/config"
	"github.com/target/mmk-rag-console/internal/bootstrap"
	obserrors "github.com/target/mmk-rag-console/internal/observability/errors"
	"github.com/target/mmk-rag-console/internal/router"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	// console marks commands that talk to the backend or the credential store.
	console bool
	run     commandFn
}

type commandContext struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Config  config.AppConfig
	Console *bootstrap.Console

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Prompt asks the operator for credentials. Nil means non-interactive.
	Prompt credentialPrompt
}

// Console routes. Every command except login is a protected screen under home.
const (
	routeUpload  = "upload"
	routeProcess = "process"
	routeQuery   = "query"
	routeReset   = "reset"
)

func consoleRoutes() []router.Route {
	return append(router.DefaultRoutes(),
		router.Route{Name: routeUpload, Path: "/upload", Component: "UploadPanel", RequiresAuth: true},
		router.Route{Name: routeProcess, Path: "/process", Component: "ProcessPanel", RequiresAuth: true},
		router.Route{Name: routeQuery, Path: "/query", Component: "QueryPanel", RequiresAuth: true},
		router.Route{Name: routeReset, Path: "/reset", Component: "ResetPanel", RequiresAuth: true},
	)
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			slog.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: bootstrap.InitLogger(config.ObservabilityConfig{LogLevel: "warn"}, os.Stderr),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Prompt: terminalPrompt(os.Stdin, os.Stderr),
	}

	if cmd.console {
		cfg, err := bootstrap.LoadConfig()
		if err != nil {
			cmdCtx.Logger.ErrorContext(ctx, "load config", "error", err)
			os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
		}
		cmdCtx.Config = cfg
		cmdCtx.Logger = bootstrap.InitLogger(cfg.Observability, os.Stderr)

		console, err := bootstrap.BuildConsole(ctx, bootstrap.ConsoleOptions{
			Config: cfg,
			Logger: cmdCtx.Logger,
			Routes: consoleRoutes(),
		})
		if err != nil {
			cmdCtx.Logger.ErrorContext(ctx, "build console", "error", err)
			os.Exit(1) //nolint:forbidigo // CLI must signal startup failure to shell scripts
		}
		cmdCtx.Console = console
	}

	runErr := cmd.run(cmdCtx, os.Args[2:])
	if closeErr := cmdCtx.Console.Close(); closeErr != nil {
		cmdCtx.Logger.WarnContext(ctx, "console close failed", "error", closeErr)
	}
	if runErr != nil {
		cmdCtx.Logger.ErrorContext(ctx, "command failed",
			"command", cmdName,
			"error_type", obserrors.Classify(runErr),
			"error", runErr)
		if hint := errorHint(runErr); hint != "" {
			_ = writeln(os.Stderr, hint)
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in and store the bearer token for this console session",
			console:     true,
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored token for this console session",
			console:     true,
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Show whether this console session holds a token",
			console:     true,
			run:         runStatus,
		},
		"upload": {
			name:        "upload",
			description: "Upload documents to the RAG backend",
			console:     true,
			run:         runUpload,
		},
		"process": {
			name:        "process",
			description: "Chunk and index uploaded documents",
			console:     true,
			run:         runProcess,
		},
		"query": {
			name:        "query",
			description: "Ask a question against the indexed documents",
			console:     true,
			run:         runQuery,
		},
		"reset": {
			name:        "reset",
			description: "Delete all uploaded documents and the index",
			console:     true,
			run:         runReset,
		},
		"session": {
			name:        "session",
			description: "Manage console session ids (session new)",
			run:         runSession,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: ragconsole <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
