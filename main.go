package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sadopc/focusbox/internal/notify"
	"github.com/sadopc/focusbox/internal/playback"
	"github.com/sadopc/focusbox/internal/store"
	"github.com/sadopc/focusbox/internal/tui"
)

var (
	flagLibrary  string
	flagPlaylist string
	flagDB       string
	flagNoAudio  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "focusbox",
	Short: "A focus timer with a built-in music player and task list",
	Long: `focusbox is a terminal focus companion: a countdown timer with
presets, a local music player driven by mpv, a per-session task list,
and daily focus stats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagLibrary, "library", "L", "", "Directory to scan for audio files")
	rootCmd.Flags().StringVarP(&flagPlaylist, "playlist", "P", "", "M3U playlist to load instead of scanning")
	rootCmd.Flags().StringVar(&flagDB, "db", "", "Path to the focusbox database")
	rootCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Run without the mpv audio engine")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// setupLogging sends logrus output to a date-named file next to the
// database. The TUI owns the terminal, so nothing may write to it.
func setupLogging(dbPath string) {
	lvl, err := logrus.ParseLevel(flagLogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	dir := filepath.Dir(dbPath)
	if dbPath == ":memory:" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("focusbox-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetOutput(f)
}

func run() error {
	dbPath := flagDB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	setupLogging(dbPath)

	var engine playback.Engine
	if flagNoAudio {
		engine = playback.NewNull()
	} else {
		engine, err = playback.NewMPV()
		if err != nil {
			// Keep the timer and tasks usable without audio.
			logrus.Warnf("mpv unavailable, audio disabled: %v", err)
			engine = playback.NewNull()
		}
	}
	defer engine.Close()

	notifier := notify.New()
	if v, err := s.GetSetting("notifications"); err == nil && v == "off" {
		notifier = notify.Noop{}
	}

	app := tui.NewApp(s, engine, notifier, flagLibrary, flagPlaylist)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
