// Package seatmap generates mock theater layouts and tracks seat selection
// for a single booking session.
package seatmap

import (
	"fmt"
	"math/rand"
	"time"

	"cinesphere/model"
)

const (
	defaultRows         = 8
	defaultColumns      = 10
	defaultVIPRowStart  = 6
	defaultOccupancy    = 0.2
	defaultVIPSurcharge = 5
)

// Layout describes the theater shape and the mock-occupancy knobs used by
// Generate. Occupancy is the probability that a generated seat starts out
// occupied.
type Layout struct {
	Rows         int
	Columns      int
	VIPRowStart  int
	Occupancy    float64
	VIPSurcharge float64
}

// DefaultLayout returns the standard 8x10 hall: rows A-F standard, the two
// back rows VIP at a 5 surcharge, one in five seats already taken.
func DefaultLayout() Layout {
	return Layout{
		Rows:         defaultRows,
		Columns:      defaultColumns,
		VIPRowStart:  defaultVIPRowStart,
		Occupancy:    defaultOccupancy,
		VIPSurcharge: defaultVIPSurcharge,
	}
}

// Generate builds the seat list for one showtime in row-major order, row A
// first. Occupancy is the only source of randomness; pass a seeded rng for
// deterministic layouts, or nil for a time-seeded one.
func Generate(layout Layout, basePrice float64, rng *rand.Rand) []model.Seat {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	seats := make([]model.Seat, 0, layout.Rows*layout.Columns)
	for r := 0; r < layout.Rows; r++ {
		row := rowLabel(r)
		for c := 1; c <= layout.Columns; c++ {
			seatType := model.SeatStandard
			price := basePrice
			if r >= layout.VIPRowStart {
				seatType = model.SeatVIP
				price += layout.VIPSurcharge
			}

			status := model.SeatAvailable
			if rng.Float64() < layout.Occupancy {
				status = model.SeatOccupied
			}

			seats = append(seats, model.Seat{
				Id:     fmt.Sprintf("%s%d", row, c),
				Row:    row,
				Number: c,
				Type:   seatType,
				Status: status,
				Price:  price,
			})
		}
	}
	return seats
}

func rowLabel(index int) string {
	return string(rune('A' + index))
}
