package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/studiowebux/popfocus/internal/cli"
	"github.com/studiowebux/popfocus/internal/config"
	"github.com/studiowebux/popfocus/internal/journal"
	"github.com/studiowebux/popfocus/internal/keybinds"
	"github.com/studiowebux/popfocus/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "popfocus",
	Short: "Popover editing with focus that follows the child",
	Long: `popfocus is a terminal row editor built on a composable reducer store.

Pressing the gear opens a popover session over a snapshot of the rows, and the
root focus follows the child's editing marker. Tapping the background commits
the session and clears focus.

Examples:
  popfocus                             # Start interactive TUI
  popfocus --items rows.yaml           # Start with a different row list
  popfocus run demo                    # Replay scripts/demo.yaml headlessly
  popfocus run demo.yaml -o json       # Print the final state as JSON
  popfocus journal list -n 20          # Show recent recorded actions
  popfocus keybinds export             # Write the default keybindings`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(tui.RunOptions{
			ItemsPath: flagItems,
			Journal:   flagJournal,
			Debug:     flagDebug,
		})
	},
}

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Replay a script of actions through the store",
	Long: `Replay a YAML or JSON script of actions headlessly and print the result.

The extension is optional and bare names are looked up in the scripts
directory of the configuration home. Without an argument an interactive
picker lists the available scripts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		scriptPath := ""
		if len(args) > 0 {
			scriptPath = args[0]
		} else {
			scripts, err := cli.ListScripts(filepath.Join(config.ConfigDir, "scripts"))
			if err != nil {
				return err
			}
			scriptPath, err = cli.PromptForScript(scripts)
			if err != nil {
				return err
			}
		}

		logger := newCLILogger()

		var j *journal.Manager
		if flagJournal {
			var err error
			j, err = journal.Open(config.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer j.Close()
		}

		return cli.Run(cli.RunOptions{
			ScriptPath:   scriptPath,
			ItemsPath:    flagItems,
			OutputFormat: flagOutput,
			Trace:        flagTrace,
			SavePath:     flagSave,
			Debug:        flagDebug,
			Journal:      j,
			Logger:       logger,
		})
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the recorded action journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded actions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := openJournal()
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.List(cmd.Context(), flagLimit)
		if err != nil {
			return err
		}
		return cli.FormatJournal(cmd.OutOrStdout(), entries, flagOutput, flagDiff)
	},
}

var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := openJournal()
		if err != nil {
			return err
		}
		defer j.Close()

		if err := j.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared")
		return nil
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage keybindings",
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the default keybindings to a file",
	Long: `Write the default keybindings as JSON with comments.

Without a path the file is written to keybinds.jsonc in the configuration
home. Existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		path := config.KeybindsFile
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := keybinds.SaveConfig(keybinds.ExportDefaults(), path); err != nil {
			return fmt.Errorf("failed to export keybinds: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Keybindings written to %s\n", path)
		return nil
	},
}

var keybindsValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a keybindings file for conflicts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		path := config.KeybindsFile
		if len(args) > 0 {
			path = args[0]
		}

		validator := keybinds.NewValidator()
		var result *keybinds.ValidationResult
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s not found, checking defaults\n", path)
			result = validator.ValidateRegistry(keybinds.NewDefaultRegistry())
		} else {
			cfg, err := keybinds.LoadConfig(path)
			if err != nil {
				return err
			}
			result = validator.ValidateConfig(cfg)
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		if result.HasErrors() {
			return fmt.Errorf("keybindings have %d error(s)", len(result.Errors))
		}
		return nil
	},
}

// Flags shared by the root and run commands
var (
	flagItems   string
	flagJournal bool
	flagDebug   bool
)

// Flags for run and journal list
var (
	flagOutput string
	flagTrace  bool
	flagSave   string
	flagLimit  int
	flagDiff   bool
	flagForce  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagItems, "items", "i", "", "Rows file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&flagJournal, "journal", false, "Record every action to the journal database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log every state change")

	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	runCmd.Flags().BoolVarP(&flagTrace, "trace", "t", false, "Include the per-step trace")
	runCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save output to file")

	journalListCmd.Flags().IntVarP(&flagLimit, "limit", "n", 50, "Maximum entries to show")
	journalListCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	journalListCmd.Flags().BoolVar(&flagDiff, "diff", false, "Show state diffs")

	keybindsExportCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing file")

	journalCmd.AddCommand(journalListCmd, journalClearCmd)
	keybindsCmd.AddCommand(keybindsExportCmd, keybindsValidateCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// openJournal initializes config and opens the journal database
func openJournal() (*journal.Manager, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return journal.Open(config.DatabasePath)
}

// newCLILogger logs to stderr so stdout stays machine readable
func newCLILogger() *slog.Logger {
	level := slog.LevelWarn
	if flagDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
