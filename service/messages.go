package services

import (
	"fmt"
	"time"
)

const LOADING_MESSAGE = "Loading..."

// TIMESTAMP_LAYOUT matches the en-US locale date string, e.g. "2/3/2025, 6:00:00 PM".
const TIMESTAMP_LAYOUT = "1/2/2006, 3:04:05 PM"

// EmptyServicesMessage is the warning for a stop with no services running.
func EmptyServicesMessage(stopID string) string {
	return fmt.Sprintf("The Bus Stop [ID: %s] currently has no bus service available.", stopID)
}

// UpdatedAtMessage renders t in its own zone with the zone's UTC offset.
// Zones ahead of UTC get "+", everything else "-".
func UpdatedAtMessage(t time.Time) string {
	_, offset := t.Zone()
	sign := "-"
	if offset > 0 {
		sign = "+"
	}
	if offset < 0 {
		offset = -offset
	}
	minutes := offset / 60
	return fmt.Sprintf("Data is updated as of %s, GMT%s%02d:%02d.",
		t.Format(TIMESTAMP_LAYOUT), sign, minutes/60, minutes%60)
}
