// Package main provides the CLI entrypoint for jb4plot.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/jb4plot/internal/channels"
	"github.com/verte-zerg/jb4plot/internal/config"
	"github.com/verte-zerg/jb4plot/internal/jb4log"
	"github.com/verte-zerg/jb4plot/internal/picker"
	"github.com/verte-zerg/jb4plot/internal/report"
	"github.com/verte-zerg/jb4plot/internal/store"
	"github.com/verte-zerg/jb4plot/internal/viewer"
)

const (
	defaultRecentLimit = 10
	defaultTermWidth   = 80
)

var (
	viewDir         string
	viewLast        bool
	viewNoHistory   bool
	viewPanelHeight int
	viewNoMouse     bool

	columnsJSON bool

	recentLimit int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jb4plot [file]",
		Short:         "Interactive JB4 log plotter",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runViewCmd,
	}

	rootCmd.Flags().StringVar(&viewDir, "dir", "", "initial directory for the file picker (default: executable directory)")
	rootCmd.Flags().BoolVar(&viewLast, "last", false, "open the most recently viewed log")
	rootCmd.Flags().BoolVar(&viewNoHistory, "no-history", false, "do not read or record open history")
	rootCmd.Flags().IntVar(&viewPanelHeight, "panel-height", 0, "plot rows per panel (0 fits the terminal)")
	rootCmd.Flags().BoolVar(&viewNoMouse, "no-mouse", false, "disable mouse tracking")

	rootCmd.AddCommand(newColumnsCmd())
	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dir", &viewDir, fileCfg.Viewer.Dir)
	applyIntConfig(cmd, "panel-height", &viewPanelHeight, fileCfg.Viewer.PanelHeight)
	applyNegatedBoolConfig(cmd, "no-mouse", &viewNoMouse, fileCfg.Viewer.Mouse)
	applyNegatedBoolConfig(cmd, "no-history", &viewNoHistory, fileCfg.History.Enabled)

	if viewPanelHeight < 0 {
		return fmt.Errorf("--panel-height must be >= 0")
	}
	overrides, err := fileCfg.LimitOverrides()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	panels, err := channels.WithLimits(channels.DefaultPanels(), overrides)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var st *store.Store
	if !viewNoHistory {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("history disabled: failed to open db: %v\n", err)
			st = nil
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
		}
	}

	path, err := resolveLogPath(cmd, args, st)
	if cancelled, err := exitOnCancel(cmd.OutOrStdout(), err); cancelled || err != nil {
		return err
	}

	loaded, err := loadLog(path, panels)
	if err != nil {
		return err
	}

	if st != nil {
		if _, err := st.RecordOpen(cmd.Context(), loaded.record()); err != nil {
			logErrf("failed to record history: %v\n", err)
		}
	}

	m := viewer.NewModel(loaded.table.Times(), loaded.panels, viewer.Options{
		FileName:    filepath.Base(path),
		PanelHeight: viewPanelHeight,
		Mouse:       !viewNoMouse,
		Color:       term.IsTerminal(int(os.Stdout.Fd())),
	})
	return viewer.Run(m)
}

// exitOnCancel turns a cancelled picker into a clean exit with a notice.
// Any other error is returned unchanged.
func exitOnCancel(out io.Writer, err error) (bool, error) {
	if !errors.Is(err, picker.ErrCancelled) {
		return false, err
	}
	_, werr := fmt.Fprintln(out, "No file selected. Exiting.")
	return true, werr
}

func resolveLogPath(cmd *cobra.Command, args []string, st *store.Store) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if viewLast {
		if st == nil {
			return "", fmt.Errorf("--last needs open history")
		}
		path, err := st.LastPath(cmd.Context())
		if err != nil {
			return "", fmt.Errorf("failed to read history: %w", err)
		}
		if path == "" {
			return "", fmt.Errorf("no logs in history yet")
		}
		return path, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return "", fmt.Errorf("no log file given and no terminal for the file picker")
	}
	dir := viewDir
	if dir == "" {
		dir = config.DefaultLogDir()
	}
	return picker.Run(config.ExpandHome(dir))
}

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "Show the header, columns and channel mapping of a log",
		Args:  cobra.ExactArgs(1),
		RunE:  runColumnsCmd,
	}
	cmd.Flags().BoolVar(&columnsJSON, "json", false, "print JSON")
	return cmd
}

func runColumnsCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	table, err := jb4log.Open(path)
	if err != nil {
		return err
	}
	aliases := channels.RequiredAliases(channels.DefaultPanels(), channels.DefaultAliases)
	summary := report.NewColumns(path, table, aliases)

	out := cmd.OutOrStdout()
	if columnsJSON {
		if _, err := fmt.Fprintln(out, string(summary.JSON())); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		for _, line := range summary.Lines(outputWidth()) {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	_, err = channels.Resolve(table.Fields, aliases)
	return err
}

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened logs",
		Args:  cobra.NoArgs,
		RunE:  runRecentCmd,
	}
	cmd.Flags().IntVar(&recentLimit, "limit", defaultRecentLimit, "number of logs to list")
	return cmd
}

func runRecentCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "limit", &recentLimit, fileCfg.History.Limit)
	if recentLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	records, err := st.ListRecent(cmd.Context(), recentLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No logs opened yet.")
		return err
	}
	for _, line := range report.RecentLines(records, time.Now()) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}
	editor, err := editorCommand(os.Getenv("EDITOR"), path)
	if err != nil {
		return err
	}
	editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := editor.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless path already exists.
func ensureConfigFile(path string) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// editorCommand splits an $EDITOR value such as "code --wait" and appends
// path. An unset editor falls back to vi.
func editorCommand(editor, path string) (*exec.Cmd, error) {
	if strings.TrimSpace(editor) == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(parts[0], append(parts[1:], path)...), nil
}

func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyNegatedBoolConfig maps a positive config switch onto a --no-* flag.
func applyNegatedBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = !*value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# jb4plot configuration
# Uncomment a value to enable it. CLI flags override config values.

[viewer]
# dir = "~/jb4-logs"      # Initial directory for the file picker
# panel-height = 0        # Plot rows per panel (0 fits the terminal)
# mouse = true            # Track the mouse pointer

[history]
# enabled = true          # Record opened logs
# limit = %d              # Rows listed by "jb4plot recent"

[limits]
# Y-axis limits per channel, [min, max].
# RPM = [0, 7000]
# Boost = [0, 25]
# Pedal = [0, 110]
# AFR = [10, 22]
# IAT = [0, 160]
# Speed = [0, 120]
`,
		defaultRecentLimit,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
