// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/juju/gnuflag"

	"github.com/tomtom215/geosnap/internal/logging"
	"github.com/tomtom215/geosnap/internal/session"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Info describes a command.
type Info struct {
	Name    string
	Args    string
	Purpose string
	// Guard decides whether the current session may run the command.
	// Nil means anyone may.
	Guard func(session.State) session.Decision
}

// Command is one geosnap sub-command. SetFlags and Init run before any
// configuration is loaded, so usage errors never touch the network.
type Command interface {
	Info() *Info
	SetFlags(f *gnuflag.FlagSet)
	Init(args []string) error
	Run(ctx context.Context, app *App) error
}

// commandBase provides no flags and accepts no arguments.
type commandBase struct{}

func (commandBase) SetFlags(*gnuflag.FlagSet) {}

func (commandBase) Init(args []string) error { return checkEmpty(args) }

// errUsage marks an error caused by bad arguments.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func checkEmpty(args []string) error {
	if len(args) > 0 {
		return usageErrorf("unrecognized args: %q", args)
	}
	return nil
}

// commands returns a fresh instance of every command.
func commands() []Command {
	return []Command{
		&loginCommand{},
		&registerCommand{},
		&logoutCommand{},
		&whoamiCommand{},
		&forgotPasswordCommand{},
		&profileCommand{},
		&walletCommand{},
		&transactionsCommand{},
		&redeemCommand{},
		&photosCommand{},
		&uploadCommand{},
		&placesCommand{},
		&blogsCommand{},
		&geocodeCommand{},
		&albumCommand{},
		&adminCommand{},
		&watchCommand{},
	}
}

func lookup(name string) (Command, bool) {
	for _, c := range commands() {
		if c.Info().Name == name {
			return c, true
		}
	}
	return nil, false
}

func printUsage(w io.Writer, global *gnuflag.FlagSet) {
	fmt.Fprintln(w, "usage: geosnap [--config FILE] [--log-level LEVEL] <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	cmds := commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Info().Name < cmds[j].Info().Name })
	t := uitable.New()
	for _, c := range cmds {
		info := c.Info()
		t.AddRow("  "+info.Name, info.Purpose)
	}
	fmt.Fprintln(w, t)
	if global != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "global flags:")
		global.SetOutput(w)
		global.PrintDefaults()
	}
}

func printCommandUsage(w io.Writer, c Command, f *gnuflag.FlagSet) {
	info := c.Info()
	fmt.Fprintf(w, "usage: geosnap %s [flags] %s\n\n%s\n", info.Name, info.Args, info.Purpose)
	f.SetOutput(w)
	f.PrintDefaults()
}

// run parses args, wires the client and runs one command. It returns the
// process exit code.
func run(ctx context.Context, args []string, e env) int {
	global := gnuflag.NewFlagSet("geosnap", gnuflag.ContinueOnError)
	global.SetOutput(io.Discard)
	var configPath, logLevel string
	global.StringVar(&configPath, "config", "", "path to a YAML config file")
	global.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	if err := global.Parse(false, args); err != nil {
		if errors.Is(err, gnuflag.ErrHelp) {
			printUsage(e.stdout, global)
			return exitOK
		}
		fmt.Fprintf(e.stderr, "geosnap: %v\n", err)
		return exitUsage
	}

	rest := global.Args()
	if len(rest) == 0 || rest[0] == "help" {
		if len(rest) > 1 {
			if c, ok := lookup(rest[1]); ok {
				f := gnuflag.NewFlagSet(rest[1], gnuflag.ContinueOnError)
				c.SetFlags(f)
				printCommandUsage(e.stdout, c, f)
				return exitOK
			}
		}
		printUsage(e.stderr, global)
		if len(rest) == 0 {
			return exitUsage
		}
		return exitOK
	}

	cmd, ok := lookup(rest[0])
	if !ok {
		fmt.Fprintf(e.stderr, "geosnap: unknown command %q\n", rest[0])
		return exitUsage
	}
	name := cmd.Info().Name

	f := gnuflag.NewFlagSet(name, gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	cmd.SetFlags(f)
	if err := f.Parse(true, rest[1:]); err != nil {
		if errors.Is(err, gnuflag.ErrHelp) {
			printCommandUsage(e.stdout, cmd, f)
			return exitOK
		}
		fmt.Fprintf(e.stderr, "geosnap %s: %v\n", name, err)
		return exitUsage
	}
	if err := cmd.Init(f.Args()); err != nil {
		fmt.Fprintf(e.stderr, "geosnap %s: %v\n", name, err)
		return exitUsage
	}

	cfg, err := e.loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(e.stderr, "geosnap: %v\n", err)
		return exitError
	}
	if logLevel != "" {
		if !logging.IsValidLevel(logLevel) {
			fmt.Fprintf(e.stderr, "geosnap: invalid log level %q\n", logLevel)
			return exitUsage
		}
		cfg.Logging.Level = logLevel
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: e.stderr,
	})

	app, err := newApp(ctx, cfg, e)
	if err != nil {
		fmt.Fprintf(e.stderr, "geosnap: %v\n", err)
		return exitError
	}
	defer app.Close()

	if guard := cmd.Info().Guard; guard != nil {
		if d := guard(app.session.Snapshot()); !d.Allowed {
			fmt.Fprintf(e.stderr, "geosnap %s: %s\n", name, deniedMessage(d))
			return exitError
		}
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	if err := cmd.Run(ctx, app); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("command", name).Msg("Command failed")
		fmt.Fprintf(e.stderr, "geosnap %s: %v\n", name, err)
		return exitError
	}
	return exitOK
}

func deniedMessage(d session.Decision) string {
	if d.Redirect == session.LoginPath {
		return "not logged in (run `geosnap login`)"
	}
	return "admin access required"
}

// newTable returns a table sized for a terminal.
func newTable(header ...any) *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = 48
	t.Wrap = true
	if len(header) > 0 {
		t.AddRow(header...)
	}
	return t
}

// stringsFlag collects a repeatable string flag.
type stringsFlag []string

func (s *stringsFlag) String() string { return strings.Join(*s, ",") }

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}
