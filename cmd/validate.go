package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/wellplan/internal/ui"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// errInvalid is returned when at least one file fails validation. The
// details have already been printed.
var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate <wells.toml>...",
	Short: "Check well input files",
	Long: `Validates each well input file: well count, target points, entry
directions, dogleg points and parameter ranges.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := ui.NewWriter(cmd.OutOrStdout())
	ok := true
	for _, path := range args {
		d, err := wellgeom.LoadFile(path)
		if err != nil {
			printer.Error(fmt.Sprintf("%s: %v", path, err))
			ok = false
			continue
		}
		res := wellgeom.Validate(d)
		printer.ValidationResult(path, res)
		if !res.Valid {
			ok = false
		}
	}
	if !ok {
		return errInvalid
	}
	return nil
}
