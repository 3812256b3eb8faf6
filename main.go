package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// defaultConfigFiles are tried in order when -config is not given
var defaultConfigFiles = []string{"config.json", "config.yaml", "config.yml"}

type cliOptions struct {
	configPath   string
	envFile      string
	verbose      bool
	listPatterns bool
	overrides    utils.Config
	set          map[string]bool
}

func parseFlags(fs *flag.FlagSet, args []string) (cliOptions, error) {
	opts := cliOptions{overrides: utils.DefaultConfig(), set: map[string]bool{}}
	o := &opts.overrides

	fs.StringVar(&opts.configPath, "config", "", "path to a JSON or YAML config file (default: config.json, config.yaml)")
	fs.StringVar(&opts.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.BoolVar(&opts.verbose, "verbose", false, "log debug events")
	fs.BoolVar(&opts.listPatterns, "list-patterns", false, "print the available patterns and exit")

	fs.IntVar(&o.Width, "width", o.Width, "grid width in cells")
	fs.IntVar(&o.Height, "height", o.Height, "grid height in cells")
	fs.IntVar(&o.Screen, "screen", o.Screen, "screen size index (overrides width/height, -1 to disable)")
	fs.StringVar(&o.Pattern, "pattern", o.Pattern, "pattern to seed (see -list-patterns)")
	fs.Float64Var(&o.RandomDensity, "density", o.RandomDensity, "cell density for the Random pattern")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "random seed (0 = time based)")
	fs.DurationVar(&o.FrameRate, "frame-rate", o.FrameRate, "delay between generations")
	fs.IntVar(&o.MaxGenerations, "generations", o.MaxGenerations, "stop after this many generations (0 = no limit)")
	fs.BoolVar(&o.Bounded, "bounded", o.Bounded, "discard cells leaving the grid")
	fs.BoolVar(&o.TrackAges, "ages", o.TrackAges, "track cell ages for colouring")
	fs.BoolVar(&o.AutoRestart, "restart", o.AutoRestart, "reseed on extinction or stagnation")
	fs.BoolVar(&o.Interactive, "interactive", o.Interactive, "choose screen size and pattern from menus")
	fs.StringVar(&o.Renderer, "renderer", o.Renderer, "renderer: "+strings.Join(utils.Renderers, ", "))

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// applyOverrides copies every explicitly set flag onto config
func (o cliOptions) applyOverrides(config utils.Config) utils.Config {
	src := o.overrides
	for name := range o.set {
		switch name {
		case "width":
			config.Width = src.Width
		case "height":
			config.Height = src.Height
		case "screen":
			config.Screen = src.Screen
		case "pattern":
			config.Pattern = src.Pattern
		case "density":
			config.RandomDensity = src.RandomDensity
		case "seed":
			config.Seed = src.Seed
		case "frame-rate":
			config.FrameRate = src.FrameRate
		case "generations":
			config.MaxGenerations = src.MaxGenerations
		case "bounded":
			config.Bounded = src.Bounded
		case "ages":
			config.TrackAges = src.TrackAges
		case "restart":
			config.AutoRestart = src.AutoRestart
		case "interactive":
			config.Interactive = src.Interactive
		case "renderer":
			config.Renderer = src.Renderer
		}
	}
	return config
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(err, "[loadDotEnv] %s", path)
}

// loadConfig resolves the config file; without -config a missing default file means defaults
func loadConfig(path string, log *slog.Logger) (utils.Config, error) {
	if path != "" {
		return utils.LoadConfig(path)
	}
	for _, candidate := range defaultConfigFiles {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		log.Info("loading configuration", "file", candidate)
		return utils.LoadConfig(candidate)
	}
	log.Info("using default configuration (no config file found)")
	return utils.DefaultConfig(), nil
}

// resolveConfig fills in the grid size, pattern and seed the run will use
func resolveConfig(config utils.Config, now time.Time) (utils.Config, error) {
	if config.Screen >= 0 {
		w, h, err := utils.GridForScreen(config.Screen)
		if err != nil {
			return config, err
		}
		config.Width, config.Height = w, h
	}
	if config.Pattern == "" {
		config.Pattern = model.SelectGlider
	}
	if config.Seed == 0 {
		config.Seed = now.UnixNano()
	}
	return config, config.Validate()
}

func run(ctx context.Context, opts cliOptions, log *slog.Logger) error {
	config, err := loadConfig(opts.configPath, log)
	if err != nil {
		return err
	}
	config = opts.applyOverrides(config)

	if config.Interactive {
		if config, err = runMenus(config); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	if config, err = resolveConfig(config, time.Now()); err != nil {
		return err
	}
	log.Info("seeding", "seed", config.Seed, "renderer", config.Renderer)

	g, err := initializeGame(config, rand.New(rand.NewSource(config.Seed)), log)
	if err != nil {
		return err
	}

	if err = runGame(ctx, g); err != nil {
		return err
	}
	displayFinalStats(os.Stdout, g)
	return nil
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if opts.listPatterns {
		for i, name := range model.Selections() {
			fmt.Printf("%2d. %s\n", i+1, name)
		}
		return
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err = loadDotEnv(opts.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, opts, log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
