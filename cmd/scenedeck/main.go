package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ivlev/scenedeck/internal/config"
	"github.com/ivlev/scenedeck/internal/deck"
	"github.com/ivlev/scenedeck/internal/locale"
	"github.com/ivlev/scenedeck/internal/logging"
	"github.com/ivlev/scenedeck/internal/player"
	"github.com/ivlev/scenedeck/internal/system"
	"github.com/ivlev/scenedeck/internal/tui"
)

var version = "dev"

const defaultConfigPath = "scenedeck.toml"

const usage = `Usage: scenedeck [command] [flags]

Commands:
  play      play a deck in the terminal (default)
  inspect   print the step table of every scene
  validate  report authoring problems, exit 1 if any
  import    build a starter deck from a PDF or an image folder

Run "scenedeck <command> -h" for the flags of a command.
`

func main() {
	cmd, args := "play", os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "play":
		err = runPlay(args)
	case "inspect":
		err = runInspect(args)
	case "validate":
		err = runValidate(args)
	case "import":
		err = runImport(args)
	case "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if errors.Is(err, errIssuesFound) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("[-] %s: %v", cmd, err)
	}
}

// cli holds the flags shared by every command. Flags that were set on the
// command line override the TOML settings file.
type cli struct {
	fs         *flag.FlagSet
	configPath string
	verbose    bool
	flags      config.Config
}

func newCLI(name string) *cli {
	c := &cli{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	def := config.Default()

	c.fs.StringVar(&c.configPath, "config", "", "TOML settings file (default: scenedeck.toml if present)")
	c.fs.BoolVar(&c.verbose, "v", false, "Also write logs to stderr")
	c.fs.StringVar(&c.flags.DeckPath, "deck", "", "Deck YAML file (default: newest .yaml in -deck-dir)")
	c.fs.StringVar(&c.flags.DeckDir, "deck-dir", def.DeckDir, "Directory searched for decks")
	c.fs.StringVar(&c.flags.LogLevel, "log-level", def.LogLevel, "Log level: debug, info, warn, error")
	c.fs.StringVar(&c.flags.LogPath, "log-file", def.LogPath, "Log file path")
	return c
}

func (c *cli) parse(args []string) (config.Config, error) {
	if err := c.fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	cfg.BuildVersion = version

	path := c.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	if path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "deck":
			cfg.DeckPath = c.flags.DeckPath
		case "deck-dir":
			cfg.DeckDir = c.flags.DeckDir
		case "log-level":
			cfg.LogLevel = c.flags.LogLevel
		case "log-file":
			cfg.LogPath = c.flags.LogPath
		case "lang":
			cfg.Language = c.flags.Language
		case "autoplay":
			cfg.AutoPlay = c.flags.AutoPlay
		case "step-duration":
			cfg.DefaultStepDuration = c.flags.DefaultStepDuration
		case "retreat-to-last":
			cfg.RetreatToLastStep = c.flags.RetreatToLastStep
		case "alt-screen":
			cfg.AltScreen = c.flags.AltScreen
		case "workers":
			cfg.Workers = c.flags.Workers
		case "slide-duration":
			cfg.SlideDuration = c.flags.SlideDuration
		}
	})
	return cfg, nil
}

func (c *cli) logger(cfg config.Config) *logging.Logger {
	return logging.New(logging.Options{
		Path:    cfg.LogPath,
		Level:   cfg.LogLevel,
		Console: c.verbose,
	})
}

// resolveDeckPath picks the configured deck or the newest one in DeckDir
func resolveDeckPath(cfg config.Config) (string, error) {
	if cfg.DeckPath != "" {
		return cfg.DeckPath, nil
	}
	latest, err := system.FindLatestFile(cfg.DeckDir, ".yaml", ".yml")
	if err != nil {
		return "", fmt.Errorf("%w (pass -deck or put a deck into %s/)", err, cfg.DeckDir)
	}
	return latest, nil
}

// loadDeck reads the deck and logs every validation issue
func loadDeck(path string, log *logging.Logger) (*deck.Deck, []deck.Issue, error) {
	d, err := deck.Read(path)
	if err != nil {
		return nil, nil, err
	}

	issues := deck.Validate(d)
	for _, issue := range issues {
		log.Warn("deck issue",
			"kind", string(issue.Kind),
			"slide", issue.SlideID,
			"scene", issue.SceneID,
			"widget", issue.WidgetID,
			"detail", issue.Detail,
		)
	}
	log.Info("deck loaded", "path", path, "slides", len(d.Slides), "issues", len(issues))
	return d, issues, nil
}

func runPlay(args []string) error {
	c := newCLI("play")
	def := config.Default()
	c.fs.StringVar(&c.flags.Language, "lang", def.Language, "Interface language: en, ru")
	c.fs.BoolVar(&c.flags.AutoPlay, "autoplay", false, "Start playing immediately")
	c.fs.IntVar(&c.flags.DefaultStepDuration, "step-duration", def.DefaultStepDuration, "Step duration (ms) for scenes without one")
	c.fs.BoolVar(&c.flags.RetreatToLastStep, "retreat-to-last", false, "Retreat lands on the last step of the previous scene")
	c.fs.BoolVar(&c.flags.AltScreen, "alt-screen", def.AltScreen, "Use the terminal's alternate screen")

	cfg, err := c.parse(args)
	if err != nil {
		return err
	}

	logger := c.logger(cfg)
	defer logger.Close()
	logger.Info("scenedeck starting", "version", cfg.BuildVersion, "command", "play")

	path, err := resolveDeckPath(cfg)
	if err != nil {
		return err
	}
	d, _, err := loadDeck(path, logger)
	if err != nil {
		return err
	}

	ctrl := player.New(d.Slides, player.Options{
		Logger:              logger.Logger,
		DefaultStepDuration: time.Duration(cfg.DefaultStepDuration) * time.Millisecond,
		RetreatToLastStep:   cfg.RetreatToLastStep,
		AutoPlay:            cfg.AutoPlay,
	})
	defer ctrl.Close()

	err = tui.Run(tui.Config{
		Deck:       d,
		Controller: ctrl,
		Localizer:  locale.New(cfg.Language),
		Logger:     logger.Logger,
		Load: func() (*deck.Deck, error) {
			d, _, err := loadDeck(path, logger)
			return d, err
		},
		AltScreen: cfg.AltScreen,
	})

	st := ctrl.Stats()
	logger.Info("playback finished",
		"advances", st.Advances,
		"retreats", st.Retreats,
		"timer_fires", st.TimerFires,
		"clicks", st.Clicks,
	)
	return err
}
