package models

// BusService is one route/operator pairing currently tracked at a stop.
// Next is always present; Next2 and Next3 are independently optional.
type BusService struct {
	Number   string           `json:"no"`
	Operator string           `json:"operator"`
	Next     ArrivalEstimate  `json:"next"`
	Next2    *ArrivalEstimate `json:"next2,omitempty"`
	Next3    *ArrivalEstimate `json:"next3,omitempty"`
}

// Subsequent returns next2 and next3 in that order, skipping absent entries.
func (s BusService) Subsequent() []ArrivalEstimate {
	out := make([]ArrivalEstimate, 0, 2)
	if s.Next2 != nil {
		out = append(out, *s.Next2)
	}
	if s.Next3 != nil {
		out = append(out, *s.Next3)
	}
	return out
}
