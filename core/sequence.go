package core

import (
	"ponto.app/ponto/model"
	"ponto.app/ponto/utils"
)

// Relabel assigns the canonical cycle to structural events by their
// position in storage order, in place. Free-form events keep their label
// and do not advance the cycle.
func Relabel(events []model.PunchEvent) {
	i := 0
	for k := range events {
		if events[k].Label == model.Other {
			continue
		}
		events[k].Label = model.Cycle[i%len(model.Cycle)]
		i++
	}
}

// NextLabel returns the label the next punch should receive, based on the
// last structural event in storage order.
func NextLabel(events []model.PunchEvent) model.Label {
	last := utils.FindLast(events, func(e model.PunchEvent) bool { return e.Label.IsStructural() })
	if last < 0 {
		return model.FirstIn
	}
	return events[last].Label.Next()
}
