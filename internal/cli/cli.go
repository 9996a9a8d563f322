package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bulk-renamer/go/internal/history"
	"github.com/bulk-renamer/go/internal/logging"
	"github.com/bulk-renamer/go/internal/profile"
	"github.com/bulk-renamer/go/internal/settings"
	"github.com/bulk-renamer/go/internal/tui"
)

var (
	verboseFlag bool
	logFileFlag string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "bulk-renamer",
	Short: "Batch rename files with live preview and undo",
	Long: `Batch rename files with live preview and undo.

Pick files or folders, configure naming rules (prefix, suffix, base name,
sequence numbers, cleanup transforms), review the live preview with conflict
detection, then execute the renames. Every executed batch is recorded and
can be undone.`,
	Args: cobra.NoArgs,
	RunE: runApp,
}

func init() {
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", "", "Optional path to write a detailed operation log")
	rootCmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "Override the settings/profiles/history directory")
}

func Execute() error {
	return rootCmd.Execute()
}

func runApp(cmd *cobra.Command, args []string) error {
	level := "info"
	if verboseFlag {
		level = "debug"
	}
	if err := logging.Init(level, logFileFlag); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	dataDir := dataDirFlag
	if dataDir == "" {
		dataDir = settings.DefaultDir()
	}

	fsys := afero.NewOsFs()

	store := settings.NewStore(fsys, dataDir)
	store.Load()

	profiles := profile.NewManager(fsys, filepath.Join(dataDir, "profiles"))

	ledger := history.NewLedger(fsys, store.HistoryFile())
	if err := ledger.Load(); err != nil {
		log.Warn().Err(err).Msg("Could not load history, starting empty")
	}

	model, err := tui.NewModel(fsys, store, profiles, ledger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}
