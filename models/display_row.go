package models

// SubsequentArrival is a later arrival of the same service, as displayed.
type SubsequentArrival struct {
	Minutes int    `json:"minutes"`
	Clock   string `json:"clock"`
	Text    string `json:"text"`
}

// DisplayRow is one sorted, filtered table row ready for rendering.
type DisplayRow struct {
	Number          string              `json:"no"`
	Operator        string              `json:"operator"`
	DestinationCode string              `json:"destination_code"`
	NextMinutes     int                 `json:"next_minutes"`
	NextDisplay     string              `json:"next"`
	Subsequent      []SubsequentArrival `json:"subsequent"`
}
