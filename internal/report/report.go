// Package report exports an oilfield layout, its well inputs and a merged
// cost surface to an Excel workbook.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
)

// Sheet names.
const (
	SheetLayout = "Layout"
	SheetWells  = "Wells"
	SheetCost   = "Cost Surface"
)

// Input is everything a workbook is built from. Wells and Cost are
// optional; their sheets are omitted when empty.
type Input struct {
	Field oilfield.Oilfield
	// Label names a well. If nil, wells are labelled "Well No<k+1>".
	Label func(well int) string
	Wells wellgeom.WellData
	Cost  dataset.ContourPlot
}

// Export writes the workbook for in to w.
func Export(w io.Writer, in Input) error {
	f := excelize.NewFile()
	defer f.Close()

	b := &builder{f: f, label: in.Label, fills: make(map[string]int)}
	if b.label == nil {
		b.label = func(well int) string { return fmt.Sprintf("Well No%d", well+1) }
	}
	if err := b.init(); err != nil {
		return err
	}

	steps := []func() error{
		func() error { return b.layout(in.Field) },
	}
	if in.Wells.NumberOfWells > 0 {
		steps = append(steps, func() error { return b.wells(in.Wells) })
	}
	if len(in.Cost.Z) > 0 {
		steps = append(steps, func() error { return b.cost(in.Cost) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}
	return nil
}

type builder struct {
	f      *excelize.File
	label  func(int) string
	header int
	fills  map[string]int
}

func (b *builder) init() error {
	idx, err := b.f.NewSheet(SheetLayout)
	if err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	if err := b.f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("report: delete default sheet: %w", err)
	}
	b.f.SetActiveSheet(idx)

	b.header, err = b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("report: create header style: %w", err)
	}
	return nil
}

// table writes headers to row 1, freezes it and sets column widths.
func (b *builder) table(sheet string, headers []string, width float64) error {
	for i, h := range headers {
		if err := b.set(sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := b.f.SetCellStyle(sheet, first, last, b.header); err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := b.f.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return fmt.Errorf("report: column width: %w", err)
	}
	return b.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (b *builder) set(sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := b.f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("report: set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func (b *builder) layout(field oilfield.Oilfield) error {
	if err := b.table(SheetLayout, []string{"Site", "Well No", "Well"}, 18); err != nil {
		return err
	}
	row := 2
	put := func(site string, well int) error {
		for col, v := range []any{site, well + 1, b.label(well)} {
			if err := b.set(SheetLayout, col+1, row, v); err != nil {
				return err
			}
		}
		row++
		return nil
	}
	for _, s := range field.Sites {
		for _, w := range s.Wells {
			if err := put(fmt.Sprintf("Site NO%d", s.ID), w); err != nil {
				return err
			}
		}
	}
	for _, w := range field.Ungrouped {
		if err := put("Ungrouped", w); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) wells(d wellgeom.WellData) error {
	if _, err := b.f.NewSheet(SheetWells); err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	headers := []string{
		"Well", "Target X", "Target Y", "Target Z", "Entry X", "Entry Y", "Entry Z",
		"Kickoff X", "Kickoff Y", "Kickoff Z", "Dogleg", "Radius",
	}
	if err := b.table(SheetWells, headers, 12); err != nil {
		return err
	}
	for i := 0; i < d.NumberOfWells; i++ {
		row := []any{b.label(i)}
		row = append(row, pointCells(d.TargetPoints, i)...)
		row = append(row, pointCells(d.EntryDirections, i)...)
		if i < len(d.KickoffPoints) {
			k := d.KickoffPoints[i]
			row = append(row, optional(k.PKX), optional(k.PKY), optional(k.PKZ))
		} else {
			row = append(row, nil, nil, nil)
		}
		if i < len(d.DoglegPoints) {
			row = append(row, d.DoglegPoints[i].Dogleg, string(d.DoglegPoints[i].Radius))
		}
		for col, v := range row {
			if v == nil {
				continue
			}
			if err := b.set(SheetWells, col+1, i+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// pointCells returns the coordinates of pts[i] as numbers where they
// parse and as text otherwise.
func pointCells(pts []wellgeom.Point, i int) []any {
	if i >= len(pts) {
		return []any{nil, nil, nil}
	}
	out := make([]any, 0, 3)
	for _, s := range []string{pts[i].X, pts[i].Y, pts[i].Z} {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			out = append(out, v)
		} else {
			out = append(out, s)
		}
	}
	return out
}

func optional(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
