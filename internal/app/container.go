package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	configapp "github.com/doeshing/pingbot/internal/application/config"
	"github.com/doeshing/pingbot/internal/application/doctor"
	"github.com/doeshing/pingbot/internal/application/ping"
	"github.com/doeshing/pingbot/internal/application/schedule"
	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/infrastructure/answers"
	"github.com/doeshing/pingbot/internal/infrastructure/config"
	"github.com/doeshing/pingbot/internal/infrastructure/executor"
	"github.com/doeshing/pingbot/internal/infrastructure/opener"
	"github.com/doeshing/pingbot/internal/pkg/filesystem"
	"github.com/doeshing/pingbot/internal/pkg/logger"
	"github.com/doeshing/pingbot/internal/ports"
)

// Options are the persistent command-line settings that shape the graph.
type Options struct {
	ConfigPath string
	LogDir     string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
// Commands receive it before flags are parsed; Load fills it in.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	DoctorService *doctor.Service
	Answers       *answers.FileLog
	Opener        ports.FileOpener
	Verbose       bool
}

// Runtime is the part of the graph that runs cycles. It owns the debug log.
type Runtime struct {
	Logger   ports.Logger
	Strategy string
	Schedule *schedule.Service
	close    func() error
}

// Close releases the debug log.
func (r *Runtime) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	c := &Container{}
	if err := c.Load(ctx, opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Load resolves configuration and builds the services that do not spawn
// processes. It never creates files.
func (c *Container) Load(ctx context.Context, opts Options) error {
	cfgLoader := config.NewFileLoader(opts.ConfigPath, opts.LogDir)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.Config = cfg
	c.ConfigLoader = cfgLoader
	c.Verbose = opts.Verbose
	c.Answers = answers.NewFileLog(cfg.AnswersPath())
	c.Opener = opener.NewBrowserOpener()
	c.DoctorService = &doctor.Service{
		ConfigProvider:  cfgLoader,
		LookPath:        exec.LookPath,
		ResolveStrategy: resolveStrategy,
	}
	return nil
}

// Runtime opens the debug log and assembles the cycle pipeline from the
// current Config. mirror, when non-nil, receives a copy of every debug line.
func (c *Container) Runtime(mirror io.Writer, color bool) (*Runtime, error) {
	if c.ConfigLoader == nil {
		return nil, errors.New("container not loaded")
	}
	strategy, err := executor.StrategyFor(runtime.GOOS, c.Config.Assistant.Invocation)
	if err != nil {
		return nil, err
	}

	debugFile, err := filesystem.OpenAppend(c.Config.DebugPath())
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	log := logger.New(logger.Options{
		File:    debugFile,
		Mirror:  mirror,
		Color:   color,
		Verbose: c.Verbose,
	})

	engine := ping.NewEngine(c.Config, executor.NewRunner(strategy), ping.NewRandomPicker(c.Config.Prompts, nil))
	service := &schedule.Service{
		Engine:  engine,
		Answers: c.Answers,
		Logger:  log,
	}

	return &Runtime{
		Logger:   log,
		Strategy: strategy.Name(),
		Schedule: service,
		close:    debugFile.Close,
	}, nil
}

func resolveStrategy(mode string) (string, error) {
	strategy, err := executor.StrategyFor(runtime.GOOS, mode)
	if err != nil {
		return "", err
	}
	return strategy.Name(), nil
}
