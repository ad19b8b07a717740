package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/wellplan/internal/config"
	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/tui"
)

// tuiCmd launches the interactive tree browser.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit the layout interactively",
	Long: `Launch the tree browser over a layout session. Tab switches between the
component view, the layout view and the oilfield grouping tree; space shows
or hides a node; m and d move a well between sites.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("partition", "", `initial site partition, e.g. "0,1;2,3"`)
	tuiCmd.Flags().Bool("watch", false, "reload datasets when files change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	groups, err := partitionFlag(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so session messages are discarded.
	sess, cleanup, err := openSession(cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()
	if groups != nil {
		sess.LoadPartition(groups)
	}

	p := tui.NewProgram(sess)

	watch, _ := cmd.Flags().GetBool("watch")
	if (watch || cfg.WatchDatasets) && cfg.DatasetDir != "" {
		w, err := dataset.NewWatcher(cfg.DatasetDir)
		if err != nil {
			return fmt.Errorf("dataset watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("dataset watcher: %w", err)
		}
		defer w.Stop()
		go reloadOnChange(w, sess, func(err error) {
			p.Send(tui.MsgDatasetsReloaded{Dir: w.Dir, Err: err})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
