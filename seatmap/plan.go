package seatmap

import "cinesphere/model"

// Plan tracks one session's seat map and the seats the user has picked.
// The map status and the selection set move in lockstep: a seat is in the
// selection exactly when its map status is selected.
type Plan struct {
	layout   Layout
	seats    []model.Seat
	index    map[string]int
	selected []string
}

// NewPlan wraps a generated seat map in a Plan with an empty selection.
// The plan owns the slice from here on.
func NewPlan(layout Layout, seats []model.Seat) *Plan {
	index := make(map[string]int, len(seats))
	for i, seat := range seats {
		index[seat.Id] = i
	}
	return &Plan{
		layout: layout,
		seats:  seats,
		index:  index,
	}
}

// Layout returns the layout the plan was generated with.
func (p *Plan) Layout() Layout {
	return p.layout
}

// Seats returns the live seat map in row-major order. The returned slice is
// the plan's own state; callers must treat it as read-only.
func (p *Plan) Seats() []model.Seat {
	return p.seats
}

// Seat looks a seat up by id.
func (p *Plan) Seat(id string) (model.Seat, bool) {
	i, ok := p.index[id]
	if !ok {
		return model.Seat{}, false
	}
	return p.seats[i], true
}

// At returns the seat at a zero-based row and one-based column position.
func (p *Plan) At(row int, column int) (model.Seat, bool) {
	if row < 0 || row >= p.layout.Rows || column < 1 || column > p.layout.Columns {
		return model.Seat{}, false
	}
	return p.seats[row*p.layout.Columns+(column-1)], true
}

// Toggle selects or deselects the seat with the given id and reports whether
// anything changed. Unknown ids and occupied seats are no-ops.
func (p *Plan) Toggle(id string) bool {
	i, ok := p.index[id]
	if !ok {
		return false
	}

	switch p.seats[i].Status {
	case model.SeatOccupied:
		return false
	case model.SeatSelected:
		p.seats[i].Status = model.SeatAvailable
		for j, selectedID := range p.selected {
			if selectedID == id {
				p.selected = append(p.selected[:j], p.selected[j+1:]...)
				break
			}
		}
		return true
	default:
		p.seats[i].Status = model.SeatSelected
		p.selected = append(p.selected, id)
		return true
	}
}

// Selected returns the chosen seats in the order they were picked.
func (p *Plan) Selected() []model.Seat {
	out := make([]model.Seat, 0, len(p.selected))
	for _, id := range p.selected {
		out = append(out, p.seats[p.index[id]])
	}
	return out
}

// Total returns the sum of prices over the current selection.
func (p *Plan) Total() float64 {
	var total float64
	for _, id := range p.selected {
		total += p.seats[p.index[id]].Price
	}
	return total
}

// Confirm returns the selection in pick order. Callers gate confirmation on
// a non-empty selection; confirming never mutates the plan.
func (p *Plan) Confirm() []model.Seat {
	return p.Selected()
}
