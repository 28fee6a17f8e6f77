// Package booking owns the in-memory session state for one user's pass
// through the flow: home -> details -> booking -> confirmation. All
// mutations go through the defined operations; undefined transitions are
// simply rejected, never raised.
package booking

import (
	"github.com/google/uuid"

	"cinesphere/model"
)

type Step string

const (
	StepHome         Step = "home"
	StepDetails      Step = "details"
	StepBooking      Step = "booking"
	StepConfirmation Step = "confirmation"
)

// Session is the booking state for one app run. The zero value is not
// usable; create one with NewSession.
type Session struct {
	step      Step
	movie     *model.Movie
	date      string
	time      string
	seats     []model.Seat
	reference string
}

func NewSession() *Session {
	return &Session{step: StepHome}
}

func (s *Session) Step() Step          { return s.step }
func (s *Session) Movie() *model.Movie { return s.movie }
func (s *Session) Date() string        { return s.date }
func (s *Session) Time() string        { return s.time }
func (s *Session) Reference() string   { return s.reference }

// Seats returns the confirmed selection in pick order.
func (s *Session) Seats() []model.Seat {
	return s.seats
}

// Total returns the summed price of the confirmed seats.
func (s *Session) Total() float64 {
	var total float64
	for _, seat := range s.seats {
		total += seat.Price
	}
	return total
}

// SelectMovie moves home -> details for the given movie. Any previously
// chosen showtime is discarded with the previous movie.
func (s *Session) SelectMovie(movie model.Movie) bool {
	if s.step != StepHome {
		return false
	}
	m := movie
	s.movie = &m
	s.date = ""
	s.time = ""
	s.step = StepDetails
	return true
}

// ChooseDate records the booking date while on the details screen.
func (s *Session) ChooseDate(date string) bool {
	if s.step != StepDetails {
		return false
	}
	s.date = date
	return true
}

// ChooseTime records the showtime while on the details screen.
func (s *Session) ChooseTime(showtime string) bool {
	if s.step != StepDetails {
		return false
	}
	s.time = showtime
	return true
}

// StartBooking moves details -> booking. A showtime must have been chosen;
// the UI disables the action otherwise.
func (s *Session) StartBooking() bool {
	if s.step != StepDetails || s.time == "" {
		return false
	}
	s.step = StepBooking
	return true
}

// ConfirmSeats carries the seat engine's confirmed selection into the
// session and moves booking -> confirmation, minting a booking reference.
// An empty selection is rejected.
func (s *Session) ConfirmSeats(seats []model.Seat) bool {
	if s.step != StepBooking || len(seats) == 0 {
		return false
	}
	s.seats = append([]model.Seat(nil), seats...)
	s.reference = uuid.NewString()
	s.step = StepConfirmation
	return true
}

// Back walks one step backward along the defined transitions:
// details -> home (clearing the movie), booking -> details, and
// confirmation -> home (clearing movie and seats).
func (s *Session) Back() bool {
	switch s.step {
	case StepDetails:
		s.movie = nil
		s.date = ""
		s.time = ""
		s.step = StepHome
		return true
	case StepBooking:
		s.step = StepDetails
		return true
	case StepConfirmation:
		s.movie = nil
		s.date = ""
		s.time = ""
		s.seats = nil
		s.reference = ""
		s.step = StepHome
		return true
	default:
		return false
	}
}
