package punch

import (
	"time"

	"ponto.app/ponto/core"
	"ponto.app/ponto/model"
)

type PunchDTO struct {
	Index       int       `json:"index"`
	ID          string    `json:"id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

func toPunchDTO(index int, ev model.PunchEvent) PunchDTO {
	return PunchDTO{
		Index:       index,
		ID:          ev.ID,
		Timestamp:   ev.Timestamp,
		Label:       ev.Label.String(),
		Description: ev.Description,
	}
}

type DayDTO struct {
	Day    model.DayKey `json:"day"`
	Next   string       `json:"next"`
	Events []PunchDTO   `json:"events"`
}

type AddPunchDTO struct {
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty" binding:"max=255"`
}

type EditPunchDTO struct {
	Timestamp   string `json:"timestamp" binding:"required"`
	Description string `json:"description" binding:"required,max=255"`
}

type SummaryDTO struct {
	Day               model.DayKey `json:"day"`
	Worked            string       `json:"worked"`
	WorkedMinutes     int64        `json:"workedMinutes"`
	Balance           string       `json:"balance"`
	Status            string       `json:"status"`
	Open              bool         `json:"open"`
	OpenSince         *time.Time   `json:"openSince,omitempty"`
	ProjectedCheckout *time.Time   `json:"projectedCheckout,omitempty"`
	Hint              string       `json:"hint,omitempty"`
}

func toSummaryDTO(day model.DayKey, s core.WorkSummary) SummaryDTO {
	return SummaryDTO{
		Day:               day,
		Worked:            core.FormatHoursMinutes(s.Worked),
		WorkedMinutes:     int64(s.Worked / time.Minute),
		Balance:           core.FormatBalance(s.Balance),
		Status:            s.Status().String(),
		Open:              s.Open,
		OpenSince:         s.OpenSince,
		ProjectedCheckout: s.ProjectedCheckout,
		Hint:              core.CheckoutHint(s),
	}
}
