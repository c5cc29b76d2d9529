package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run dispatches a command line and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		if !env.IsTerminal() {
			printUsage(env.Stderr)
			return report(env, ErrNotTerminal)
		}
		return report(env, runInteractive(ctx, env))
	}

	switch args[0] {
	case "convert":
		return report(env, runConvertCmd(ctx, args[1:], env))
	case "inspect":
		return report(env, runInspect(args[1:], env))
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "completion":
		return report(env, runCompletion(args[1:], env))
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "html2pptx %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[1:], env)
		return ExitSuccess
	default:
		return report(env, runConvertCmd(ctx, args, env))
	}
}

// report prints err with its hints and maps it to an exit code.
func report(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error: "+err.Error()+hintFor(err))
	return exitCodeFor(err)
}
