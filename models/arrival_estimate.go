package models

import "time"

// ArrivalEstimate is a single predicted arrival of a bus at the stop.
type ArrivalEstimate struct {
	Time            time.Time `json:"time"`
	DurationMs      int64     `json:"duration_ms,omitempty"`
	OriginCode      string    `json:"origin_code,omitempty"`
	DestinationCode string    `json:"destination_code"`
	Load            string    `json:"load,omitempty"`
	Feature         string    `json:"feature,omitempty"`
	Type            string    `json:"type,omitempty"`
	VisitNumber     int       `json:"visit_number,omitempty"`
}
