// Command shadok-gibby plays Shadok and Gibby.
//
// It supports three commands:
//  1. "play" (default) – interactive game in the terminal
//  2. "mcp" – MCP stdio server exposing the game as tools for AI agents
//  3. "config" – init, show or validate the YAML configuration file
//
// The configuration file defaults to <user config dir>/shadok-gibby.yaml and
// can be moved with --config or SHADOK_GIBBY_CONFIG.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/shadok-gibby/game/config"
	"github.com/wricardo/shadok-gibby/game/driver"
	"github.com/wricardo/shadok-gibby/game/engine"
	"github.com/wricardo/shadok-gibby/game/service"
	"github.com/wricardo/shadok-gibby/game/session"
	"github.com/wricardo/shadok-gibby/transport/mcp"
	"github.com/wricardo/shadok-gibby/transport/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "shadok-gibby"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxIdle         = 24 * time.Hour
)

// main loads .env, builds the command tree and runs it until interrupted.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("error loading .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("shadok-gibby failed")
	}
}

// app carries the streams and logger shared by every command
type app struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

func newApp(in io.Reader, out io.Writer) *cli.Command {
	a := &app{in: in, out: out, logger: log.New()}

	return &cli.Command{
		Name:    AppName,
		Usage:   "eat flowers before the enemies do",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path of the YAML configuration file",
				Sources: cli.EnvVars("SHADOK_GIBBY_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("SHADOK_GIBBY_DEBUG"),
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "seed for reproducible games (0 picks a random one)",
			},
		},
		Before: a.setupLogging,
		Action: a.play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal",
				Action: a.play,
			},
			{
				Name:   "mcp",
				Usage:  "serve the game over MCP stdio",
				Action: a.serveMCP,
			},
			{
				Name:  "config",
				Usage: "manage the configuration file",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "write the default configuration",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
						},
						Action: a.configInit,
					},
					{
						Name:   "show",
						Usage:  "print the effective configuration",
						Action: a.configShow,
					},
					{
						Name:   "validate",
						Usage:  "check the configuration file",
						Action: a.configValidate,
					},
				},
			},
		},
	}
}

// setupLogging sends logs to stderr so stdout stays free for the board or
// the MCP protocol.
func (a *app) setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	a.logger.SetOutput(os.Stderr)
	a.logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	a.logger.SetLevel(log.WarnLevel)
	if cmd.Bool("debug") {
		a.logger.SetLevel(log.DebugLevel)
	}
	return ctx, nil
}

func (a *app) configManager(cmd *cli.Command) (*config.Manager, error) {
	path := cmd.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.NewManager(path, a.logger), nil
}

// newService wires config, sessions and the service the same way for every
// command.
func (a *app) newService(cmd *cli.Command) (service.GameService, *config.Manager, *session.Manager, error) {
	configs, err := a.configManager(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	configs.LoadOrInit()

	var opts []engine.Option
	if seed := cmd.Int("seed"); seed != 0 {
		opts = append(opts, engine.WithSeed(uint64(seed)))
	}

	sessions := session.NewManager(a.logger, opts...)
	return service.NewGameService(sessions, configs, a.logger), configs, sessions, nil
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	svc, configs, _, err := a.newService(cmd)
	if err != nil {
		return err
	}

	info, err := svc.CreateSession(ctx, nil)
	if err != nil {
		return err
	}

	presenter := terminal.NewPresenter(configs.Current(), a.in, a.out, a.logger)
	err = driver.Run(ctx, svc, info.ID, presenter)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) serveMCP(ctx context.Context, cmd *cli.Command) error {
	svc, configs, sessions, err := a.newService(cmd)
	if err != nil {
		return err
	}

	// MCP clients rarely delete sessions, so idle ones are dropped.
	go sessions.RunCleanup(ctx, sessionCleanupInterval, sessionMaxIdle)

	a.logger.WithField("config", configs.Path()).Info("starting MCP stdio server")
	return mcp.NewServer(svc, configs, a.logger).ServeStdio()
}

func (a *app) configInit(ctx context.Context, cmd *cli.Command) error {
	configs, err := a.configManager(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configs.Path()); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite it", configs.Path())
	}
	if err := configs.Save(engine.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Wrote default configuration to %s\n", configs.Path())
	return nil
}

func (a *app) configShow(ctx context.Context, cmd *cli.Command) error {
	configs, err := a.configManager(cmd)
	if err != nil {
		return err
	}

	data, err := config.Marshal(configs.LoadOrInit())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "# %s\n", configs.Path())
	_, err = a.out.Write(data)
	return err
}

func (a *app) configValidate(ctx context.Context, cmd *cli.Command) error {
	configs, err := a.configManager(cmd)
	if err != nil {
		return err
	}

	if _, err := configs.Load(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s is valid\n", configs.Path())
	return nil
}
