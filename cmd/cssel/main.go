package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssel/config"
	"cssel/manifest"
	"cssel/misc"
	"cssel/state"
	"cssel/stylesheet"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - cli.Exit() looks
// non-transparent and unnecessary. Regular errors are returned from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "assembles CSS stylesheets from selector rule manifests",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Assembles manifest rules into a CSS stylesheet",
				OnUsageError: usageErrorHandler,
				Action:       runBuild,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "MANIFEST [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
MANIFEST:
    path to a selector rules file (YAML)

DESTINATION:
    path to write resulting CSS to, if a directory - output file name is
    derived from the manifest name, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "check",
				Usage:        "Assembles manifest rules and lists resulting selectors without writing CSS",
				OnUsageError: usageErrorHandler,
				Action:       runCheck,
				ArgsUsage:    "MANIFEST",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// assemble loads the manifest and builds a stylesheet from it honoring
// active configuration.
func assemble(env *state.LocalEnv, path string) (*manifest.Manifest, *stylesheet.Stylesheet, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load manifest: %w", err)
	}

	var opts []manifest.Option
	if env.Cfg.Build.SlugifyIdents {
		opts = append(opts, manifest.WithSlugifiedIdents())
	}

	b := manifest.NewBuilder(env.Log.Named("assemble"), opts...)
	sheet, err := b.Stylesheet(m)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to assemble stylesheet: %w", err)
	}
	return m, sheet, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.NArg() == 0 {
		return errors.New("no manifest file specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	src := cmd.Args().Get(0)
	_, sheet, err := assemble(env, src)
	if err != nil {
		return err
	}

	out := os.Stdout
	fname := "STDOUT"
	if dst := cmd.Args().Get(1); len(dst) > 0 {
		if fname, err = outputName(dst, src); err != nil {
			return err
		}
		if _, err := os.Stat(fname); err == nil && !env.Overwrite {
			return fmt.Errorf("destination file '%s' already exists, use --overwrite to replace it", fname)
		}
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if _, err := sheet.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	env.Log.Info("Stylesheet written", zap.String("file", fname), zap.Int("rules", len(sheet.Rules)))
	return nil
}

// outputName resolves the destination path. When dst is an existing
// directory the file name is derived from the manifest name.
func outputName(dst, src string) (string, error) {
	fi, err := os.Stat(dst)
	if err == nil && fi.IsDir() {
		base := filepath.Base(src)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(dst, config.CleanFileName(base)+".css"), nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("unable to access destination '%s': %w", dst, err)
	}
	return dst, nil
}

func runCheck(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.NArg() == 0 {
		return errors.New("no manifest file specified")
	}

	src := cmd.Args().Get(0)
	m, sheet, err := assemble(env, src)
	if err != nil {
		return err
	}

	for _, s := range sheet.Selectors() {
		fmt.Fprintln(os.Stdout, s)
	}

	env.Log.Info("Manifest is valid", zap.String("file", src), zap.Int("rules", len(m.Rules)))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
