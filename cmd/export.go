package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/wellplan/internal/config"
	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/report"
	"github.com/papapumpkin/wellplan/internal/ui"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

var exportCmd = &cobra.Command{
	Use:   "export <out.xlsx>",
	Short: "Write the layout to an Excel workbook",
	Long: `Writes a workbook with the site grouping, and optionally the well input
and the merged cost surface of the visible contours.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("partition", "", `site partition, e.g. "0,1;2,3"`)
	exportCmd.Flags().String("wells-file", "", "well input TOML to include")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	groups, err := partitionFlag(cmd)
	if err != nil {
		return err
	}

	sess, cleanup, err := openSession(cfg, verboseWriter(cfg.Verbose))
	if err != nil {
		return err
	}
	defer cleanup()
	if groups != nil {
		sess.LoadPartition(groups)
	}

	in := report.Input{
		Field: sess.Field(),
		Label: wellLabel(cfg.WellNames),
	}
	if path, _ := cmd.Flags().GetString("wells-file"); path != "" {
		if in.Wells, err = wellgeom.LoadFile(path); err != nil {
			return err
		}
	}
	if contours := sess.VisibleContours(); len(contours) > 0 {
		in.Cost = dataset.FormatContour(contours)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := report.Export(f, in); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	ui.NewWriter(cmd.ErrOrStderr()).Success("wrote " + args[0])
	return nil
}
