package model

type SeatType string

const (
	SeatStandard   SeatType = "standard"
	SeatVIP        SeatType = "vip"
	SeatAccessible SeatType = "accessible"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
	SeatSelected  SeatStatus = "selected"
)

// Seat is one seat in a theater layout. Id is the row label followed by the
// column number, e.g. "C7".
type Seat struct {
	Id     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Type   SeatType   `json:"type"`
	Status SeatStatus `json:"status"`
	Price  float64    `json:"price"`
}
