package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/wellplan/internal/config"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/ui"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the oilfield grouping and its visibility trees",
	Long: `Builds a session, applies an optional site partition, drops and toggles,
then prints the grouping followed by the component and layout trees.

Drops take the form DRAG:TARGET[:TYPE] where TYPE is inner (default),
before or after. Toggles name a tree node id; the node is clicked once.`,
	Example: `  wellplan layout --wells 5 --partition "0,1;2,3,4"
  wellplan layout --wells 3 --partition "0,1;2" --drop oil-field1-site1-well-1:oil-field1-site2
  wellplan layout --wells 4 --partition "0,1;2,3" --toggle Site-1`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().String("partition", "", `site partition, e.g. "0,1;2,3"`)
	layoutCmd.Flags().StringArray("drop", nil, "drop DRAG:TARGET[:TYPE] (repeatable)")
	layoutCmd.Flags().StringArray("toggle", nil, "click a tree node id (repeatable)")
	layoutCmd.Flags().Bool("trees", true, "print the component and layout trees")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	groups, err := partitionFlag(cmd)
	if err != nil {
		return err
	}
	drops, _ := cmd.Flags().GetStringArray("drop")
	toggles, _ := cmd.Flags().GetStringArray("toggle")
	showTrees, _ := cmd.Flags().GetBool("trees")

	printer := ui.NewWriter(cmd.OutOrStdout())
	sess, cleanup, err := openSession(cfg, verboseWriter(cfg.Verbose))
	if err != nil {
		return err
	}
	defer cleanup()

	if groups != nil {
		sess.LoadPartition(groups)
	}
	for _, d := range drops {
		drag, target, dt, err := parseDrop(d)
		if err != nil {
			return err
		}
		printer.Notice(sess.Drop(drag, target, dt))
	}
	for _, id := range toggles {
		checked := sess.Checked()
		on := slices.Contains(checked.Components, id) || slices.Contains(checked.Layout, id)
		if !sess.Toggle(id, on) {
			printer.Warning(fmt.Sprintf("%s: no such node", id))
		}
	}

	printer.Field(sess.Field(), wellLabel(cfg.WellNames))
	if showTrees {
		checked := sess.Checked()
		fmt.Fprintln(cmd.OutOrStdout())
		printer.Tree(sess.ComponentTree(), checked.Components)
		fmt.Fprintln(cmd.OutOrStdout())
		printer.Tree(sess.LayoutTree(), checked.Layout)
	}
	return nil
}

// partitionFlag reads the --partition flag. An empty flag yields nil.
func partitionFlag(cmd *cobra.Command) ([][]int, error) {
	s, _ := cmd.Flags().GetString("partition")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return parsePartition(s)
}

// parsePartition parses "0,1;2,3" into [[0 1] [2 3]].
func parsePartition(s string) ([][]int, error) {
	var groups [][]int
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var group []int
		for _, f := range strings.Split(part, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("partition %q: %w", s, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("partition %q: negative well %d", s, n)
			}
			group = append(group, n)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func parseDrop(s string) (drag, target string, dt oilfield.DropType, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("drop %q: want DRAG:TARGET[:TYPE]", s)
	}
	dt = oilfield.DropInner
	if len(parts) == 3 {
		if dt, err = oilfield.ParseDropType(parts[2]); err != nil {
			return "", "", "", err
		}
	}
	return parts[0], parts[1], dt, nil
}

// wellLabel names wells from the configured names, falling back to
// "Well No<k+1>".
func wellLabel(names []string) func(int) string {
	return func(well int) string {
		if well >= 0 && well < len(names) && names[well] != "" {
			return names[well]
		}
		return fmt.Sprintf("Well No%d", well+1)
	}
}
