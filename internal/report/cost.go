package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/papapumpkin/wellplan/internal/dataset"
)

// cost writes the merged cost grid, one cell per grid point, each filled
// with its legend colour. Row 1 holds X, column A holds Y.
func (b *builder) cost(plot dataset.ContourPlot) error {
	if _, err := b.f.NewSheet(SheetCost); err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	if len(plot.Z) == 0 || len(plot.Data) < len(plot.Z)*len(plot.Z[0]) {
		return nil
	}
	cols := len(plot.Z[0])

	if err := b.set(SheetCost, 1, 1, "Y \\ X"); err != nil {
		return err
	}
	for c := 0; c < cols; c++ {
		if err := b.set(SheetCost, c+2, 1, plot.Data[c].X); err != nil {
			return err
		}
	}
	for r, row := range plot.Z {
		if err := b.set(SheetCost, 1, r+2, plot.Data[r*cols].Y); err != nil {
			return err
		}
		for c, v := range row {
			if !v.Set {
				if err := b.set(SheetCost, c+2, r+2, "-"); err != nil {
					return err
				}
				continue
			}
			if err := b.set(SheetCost, c+2, r+2, v.Value); err != nil {
				return err
			}
			style, err := b.fill(v.Value, plot.MinCost, plot.MaxCost)
			if err != nil {
				return err
			}
			cell, _ := excelize.CoordinatesToCellName(c+2, r+2)
			if err := b.f.SetCellStyle(SheetCost, cell, cell, style); err != nil {
				return fmt.Errorf("report: cost style: %w", err)
			}
		}
	}
	return nil
}

// fill returns a style id for the legend colour of value, creating one
// style per distinct colour.
func (b *builder) fill(value, lo, hi float64) (int, error) {
	color, err := dataset.GradientColor(value, lo, hi, dataset.CostLegend)
	if err != nil {
		return 0, fmt.Errorf("report: cost colour: %w", err)
	}
	if id, ok := b.fills[color]; ok {
		return id, nil
	}
	id, err := b.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("report: fill style: %w", err)
	}
	b.fills[color] = id
	return id, nil
}
