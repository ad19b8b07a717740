package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/wellplan/internal/config"
	"github.com/papapumpkin/wellplan/internal/fieldopt"
	"github.com/papapumpkin/wellplan/internal/ui"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

var computeCmd = &cobra.Command{
	Use:   "compute <input.toml>",
	Short: "Build a FieldOpt request and submit it",
	Long: `Reads a compute input (a [wells] table and a [compute] table), checks it,
builds the FieldOpt request and submits it to the configured solver. With
--dry-run the request is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().Bool("dry-run", false, "print the request without submitting it")
	computeCmd.Flags().String("solver", "", "solver base URL (overrides fieldopt.base_url)")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printer := ui.NewWriter(cmd.ErrOrStderr())

	in, err := fieldopt.LoadInput(args[0])
	if err != nil {
		return err
	}
	d := in.Wells
	if msgs := wellgeom.CheckCompute(d.NumberOfWells, d.TargetPoints, d.EntryDirections, d.DoglegPoints); len(msgs) > 0 {
		printer.ComputeProblems(msgs)
		return errInvalid
	}
	req, err := fieldopt.Build(d, in.Compute)
	if err != nil {
		return err
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(req)
	}

	if v, _ := cmd.Flags().GetString("solver"); v != "" {
		cfg.FieldOpt.BaseURL = v
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := fieldopt.NewClient(fieldopt.ClientConfig{
		BaseURL: cfg.FieldOpt.BaseURL,
		Timeout: cfg.FieldOpt.Timeout,
		Retries: cfg.FieldOpt.Retries,
	}, logger)
	resp, err := client.Submit(cmd.Context(), req)
	if err != nil {
		return err
	}
	printer.ComputeSubmitted(resp)
	if len(resp.Data) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), string(resp.Data))
	}
	return nil
}
