// Package main provides the entry point for the thaidrill application.
package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/narongdej/thaidrill/internal/audio"
	"github.com/narongdej/thaidrill/internal/audiocache"
	"github.com/narongdej/thaidrill/internal/card"
	"github.com/narongdej/thaidrill/internal/progress"
	"github.com/narongdej/thaidrill/internal/speech"
	"github.com/narongdej/thaidrill/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	engineName string
	noAudio    bool

	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	rootCmd = &cobra.Command{
		Use:   "thaidrill",
		Short: "Drill Thai vocabulary, script and numbers in your terminal",
		Long: fmt.Sprintf(
			"\nDrill Thai flashcards and %s in your terminal, with spoken audio.",
			keyword("number dictation"),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}
)

func keyword(s string) string {
	return keywordStyle.Render(s)
}

func validateOptions(cmd *cobra.Command) error {
	engineName = viper.GetString("engine")
	noAudio = viper.GetBool("no_audio")

	switch engineName {
	case "azure", "openai", "mock", "":
	default:
		return fmt.Errorf("unknown speech engine %q (want azure, openai or mock)", engineName)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) && cmd.Name() == rootCmd.Name() {
		return errors.New("thaidrill needs an interactive terminal")
	}
	return nil
}

// dataScope resolves per-user paths the way the platform expects.
var dataScope = gap.NewScope(gap.User, "thaidrill")

func dataPath(file string) (string, error) {
	p, err := dataScope.DataPath(file)
	if err == nil {
		return p, nil
	}
	// Fall back to a dotdir in the home directory.
	home, herr := homedir.Dir()
	if herr != nil {
		return "", fmt.Errorf("could not resolve data path: %w", err)
	}
	return filepath.Join(home, ".thaidrill", file), nil
}

func cachePath() (string, error) {
	dir, err := dataScope.CacheDir()
	if err == nil {
		return filepath.Join(dir, "audio"), nil
	}
	home, herr := homedir.Dir()
	if herr != nil {
		return "", fmt.Errorf("could not resolve cache path: %w", err)
	}
	return filepath.Join(home, ".thaidrill", "audio-cache"), nil
}

// buildEngine wires the selected speech backend. Credentials come from
// the environment (a .env file is honored).
func buildEngine() (speech.Engine, audio.Format) {
	switch engineName {
	case "azure":
		return speech.NewAzureEngine(speech.AzureConfig{
			Key:    os.Getenv("AZURE_SPEECH_KEY"),
			Region: os.Getenv("AZURE_SPEECH_REGION"),
		}), audio.AzureFormat
	case "openai":
		return speech.NewOpenAIEngine(speech.OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
		}), audio.OpenAIFormat
	default:
		return speech.NewMockEngine(), audio.AzureFormat
	}
}

// sheetSources returns the configured spreadsheet tabs, falling back
// to the built-in course sheets.
func sheetSources() []card.SheetSource {
	var sources []card.SheetSource
	if err := viper.UnmarshalKey("sheets", &sources); err != nil {
		log.Warn("Invalid sheets configuration", "error", err)
	}
	if len(sources) > 0 {
		return sources
	}
	return card.DefaultSheetSources()
}

func runTUI() error {
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}
	cfg.Engine = engineName
	cfg.NoAudio = cfg.NoAudio || noAudio
	cfg.Delays = ui.Delays{
		Feedback: viper.GetDuration("delay.feedback"),
		PreReset: viper.GetDuration("delay.pre_reset"),
		Autoplay: viper.GetDuration("delay.autoplay"),
		Slide:    viper.GetDuration("delay.slide"),
	}

	synth, format := buildEngine()
	if err := synth.Validate(); err != nil {
		log.Warn("Speech engine not usable, sessions will be silent", "error", err)
		cfg.NoAudio = true
	}
	defer synth.Close()

	var disk *audiocache.DiskStore
	if dir, err := cachePath(); err == nil {
		if disk, err = audiocache.NewDiskStore(dir); err != nil {
			log.Warn("Audio cache will not persist", "error", err)
		}
	}
	if disk != nil {
		defer disk.Close()
	}

	var player audio.Player
	if cfg.NoAudio {
		player = audio.NewMockPlayer()
	} else {
		p, err := audio.NewOtoPlayer(format)
		if err != nil {
			log.Warn("Audio device unavailable, sessions will be silent", "error", err)
			cfg.NoAudio = true
			player = audio.NewMockPlayer()
		} else {
			player = p
		}
	}
	defer player.Close()

	progressFile, err := dataPath("progress.json")
	if err != nil {
		return err
	}
	store, err := progress.Open(progressFile)
	if err != nil {
		return fmt.Errorf("unable to open progress store: %w", err)
	}

	deps := ui.Deps{
		Decks: card.MultiProvider{
			card.NewSheetsProvider(sheetSources()),
			card.NewStaticProvider(card.Letters()),
		},
		Cache:    audiocache.New(synth, disk),
		Player:   player,
		Progress: store,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if _, err := ui.NewProgram(cfg, deps).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// setupLog sends logs to the file named by THAIDRILL_LOGFILE, or
// discards them. Logging to the terminal would fight the TUI.
func setupLog() (func() error, error) {
	if os.Getenv("DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	path := os.Getenv("THAIDRILL_LOGFILE")
	if path == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}
	log.SetOutput(f)
	return f.Close, nil
}

func main() {
	// Credentials and debug switches may live in a local .env file.
	_ = godotenv.Load()

	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	// Assigned here rather than in the rootCmd literal to avoid an
	// initialization cycle: validateOptions refers back to rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return validateOptions(cmd)
	}
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "", "speech engine (azure/openai/mock)")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "run without audio playback")

	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("no_audio", rootCmd.Flags().Lookup("no-audio"))

	viper.SetDefault("engine", "azure")
	viper.SetDefault("no_audio", false)

	// UI timing defaults
	viper.SetDefault("delay.feedback", "1s")
	viper.SetDefault("delay.pre_reset", "2s")
	viper.SetDefault("delay.autoplay", "300ms")
	viper.SetDefault("delay.slide", "400ms")

	rootCmd.AddCommand(configCmd, manCmd, numberCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	dirs, err := dataScope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "thaidrill")}, dirs...)
	}

	if c := os.Getenv("THAIDRILL_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("thaidrill")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("thaidrill")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "thaidrill.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
