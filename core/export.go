package core

import (
	"fmt"
	"strings"
	"time"

	"ponto.app/ponto/model"
)

const (
	exportTitle     = "Registros de Ponto Eletrônico"
	timestampLayout = "02/01/2006, 15:04:05"
)

// ExportDay renders a day's punches as the plain text log. Event lines keep
// storage order; timestamps are rendered in now's location. The total is
// computed with mode.
func ExportDay(day model.DayKey, events []model.PunchEvent, mode Mode, now time.Time) (string, error) {
	if len(events) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(exportTitle + "\n")
	fmt.Fprintf(&b, "Data: %s\n\n", day.Display())

	for _, e := range events {
		fmt.Fprintf(&b, "%s - %s\n", e.Timestamp.In(now.Location()).Format(timestampLayout), e.Description)
	}

	summary := ComputeWorkSummary(events, mode, now)
	fmt.Fprintf(&b, "\nTotal de horas: %s\n", FormatHoursMinutes(summary.Worked))
	fmt.Fprintf(&b, "Status: %s 8 horas diárias", summary.Status())

	return b.String(), nil
}

// ExportFileName is the suggested file name for a day's export.
func ExportFileName(day model.DayKey) string {
	return fmt.Sprintf("ponto_eletronico_%s.txt", day)
}
