// Package pipeline turns raw upstream services into sorted, filtered display rows.
package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"bus-arrival-server/models"
)

const MILLISECONDS_PER_MINUTE = 60000

const NOW_DISPLAY = "Now"

// CLOCK_LAYOUT is the 12-hour clock shown next to subsequent arrivals.
const CLOCK_LAYOUT = "3:04 PM"

// EtaMinutes is ceil((arrival - from) / 1min) over millisecond deltas.
func EtaMinutes(arrival, from time.Time) int {
	ms := arrival.Sub(from).Milliseconds()
	return int(math.Ceil(float64(ms) / MILLISECONDS_PER_MINUTE))
}

// FormatEta shows "Now" for anything under one minute.
func FormatEta(minutes int) string {
	if minutes < 1 {
		return NOW_DISPLAY
	}
	return strconv.Itoa(minutes)
}

// FormatClock renders t in loc as e.g. "3:04 PM".
func FormatClock(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(CLOCK_LAYOUT)
}

// SortServices returns a copy ordered by time to the next arrival relative to
// referenceTime. Equal deltas keep their upstream order.
func SortServices(services []models.BusService, referenceTime time.Time) []models.BusService {
	sorted := make([]models.BusService, len(services))
	copy(sorted, services)
	sort.SliceStable(sorted, func(i, j int) bool {
		di := sorted[i].Next.Time.Sub(referenceTime).Milliseconds()
		dj := sorted[j].Next.Time.Sub(referenceTime).Milliseconds()
		return di < dj
	})
	return sorted
}

// ProcessServices sorts, filters and derives display fields. The primary ETA
// is measured from referenceTime, the snapshot taken at fetch; subsequent
// ETAs are measured from now, the live render time. Clock strings use the
// location of now.
func ProcessServices(services []models.BusService, referenceTime, now time.Time, filter models.FilterSpec) []models.DisplayRow {
	rows := make([]models.DisplayRow, 0, len(services))
	for _, svc := range SortServices(services, referenceTime) {
		if !filter.Matches(svc) {
			continue
		}
		rows = append(rows, buildRow(svc, referenceTime, now))
	}
	return rows
}

func buildRow(svc models.BusService, referenceTime, now time.Time) models.DisplayRow {
	nextMinutes := EtaMinutes(svc.Next.Time, referenceTime)

	subsequent := make([]models.SubsequentArrival, 0, 2)
	for _, est := range svc.Subsequent() {
		minutes := EtaMinutes(est.Time, now)
		clock := FormatClock(est.Time, now.Location())
		subsequent = append(subsequent, models.SubsequentArrival{
			Minutes: minutes,
			Clock:   clock,
			Text:    fmt.Sprintf("%d minutes (%s)", minutes, clock),
		})
	}

	return models.DisplayRow{
		Number:          svc.Number,
		Operator:        svc.Operator,
		DestinationCode: svc.Next.DestinationCode,
		NextMinutes:     nextMinutes,
		NextDisplay:     FormatEta(nextMinutes),
		Subsequent:      subsequent,
	}
}
