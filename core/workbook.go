package core

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"ponto.app/ponto/model"
)

const summarySheet = "Resumo"

// Workbook builds a spreadsheet with a summary sheet and one sheet per day.
// An empty days slice exports every stored day.
func (e *Engine) Workbook(ctx context.Context, days []model.DayKey) (*excelize.File, error) {
	if len(days) == 0 {
		var err error
		if days, err = e.ListHistoryDays(ctx); err != nil {
			return nil, err
		}
	}
	if len(days) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Data", "Horas", "Saldo", "Status", "Registros"}); err != nil {
		return nil, err
	}

	for i, day := range days {
		events, err := e.HistoryDay(ctx, day)
		if err != nil {
			f.Close()
			return nil, err
		}
		summary := ComputeWorkSummary(events, ModeHistorical, e.clock())

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{day.Display(), FormatHoursMinutes(summary.Worked), FormatBalance(summary.Balance), summary.Status().String(), len(events)}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write summary for %s: %w", day, err)
		}

		if err := writeDaySheet(f, day, events); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeDaySheet(f *excelize.File, day model.DayKey, events []model.PunchEvent) error {
	sheet := string(day)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]any{"Horário", "Tipo", "Descrição"}); err != nil {
		return err
	}
	for i, ev := range events {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{ev.Timestamp.Format(timestampLayout), ev.Label.String(), ev.Description}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}
