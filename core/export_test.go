package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ponto.app/ponto/model"
)

func TestExportDay(t *testing.T) {
	events := fullDay(17)
	events[1].Description = "almoço"

	text, err := ExportDay("2026-10-18", events, ModeHistorical, at(20, 0))
	require.NoError(t, err)

	want := "Registros de Ponto Eletrônico\n" +
		"Data: 18/10/2026\n\n" +
		"18/10/2026, 08:00:00 - Primeira Entrada\n" +
		"18/10/2026, 12:00:00 - almoço\n" +
		"18/10/2026, 13:00:00 - Segunda Entrada\n" +
		"18/10/2026, 17:00:00 - Segunda Saída\n" +
		"\nTotal de horas: 08:00\n" +
		"Status: Exatamente 8 horas diárias"
	assert.Equal(t, want, text)
}

func TestExportDayStatus(t *testing.T) {
	text, err := ExportDay("2026-10-18", fullDay(18), ModeHistorical, at(20, 0))
	require.NoError(t, err)
	assert.Contains(t, text, "Total de horas: 09:00\nStatus: Acima de 8 horas diárias")

	text, err = ExportDay("2026-10-18", fullDay(17)[:3], ModeLive, at(14, 30))
	require.NoError(t, err)
	assert.Contains(t, text, "Total de horas: 05:30\nStatus: Abaixo de 8 horas diárias")
}

func TestExportDayEmpty(t *testing.T) {
	text, err := ExportDay("2026-10-18", nil, ModeLive, at(20, 0))
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Empty(t, text)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "ponto_eletronico_2026-10-18.txt", ExportFileName(model.DayKey("2026-10-18")))
}
