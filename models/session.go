package models

import "time"

// Region is a UI region that is either shown with some text or hidden.
type Region struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text,omitempty"`
}

// FilterInput is the filter value field: hidden for FilterNone, numeric for
// destination stops, text otherwise.
type FilterInput struct {
	Visible bool   `json:"visible"`
	Type    string `json:"type"`
	Label   string `json:"label"`
}

// Session is the board state of one viewer. Warning and Info are never
// visible at the same time.
type Session struct {
	ID                 string      `json:"id"`
	Warning            Region      `json:"warning"`
	Info               Region      `json:"info"`
	TableVisible       bool        `json:"table_visible"`
	FilterGroupVisible bool        `json:"filter_group_visible"`
	FilterInput        FilterInput `json:"filter_input"`
	Filter             FilterSpec  `json:"filter"`

	StopID        string       `json:"stop_id,omitempty"`
	Services      []BusService `json:"services,omitempty"`
	ReferenceTime time.Time    `json:"reference_time"`
	Rows          []DisplayRow `json:"rows,omitempty"`
	Generation    int64        `json:"generation"`
}

func NewSession(id string) *Session {
	s := &Session{ID: id}
	s.SetFilterKind(FilterNone)
	return s
}

// HideAll hides every region.
func (s *Session) HideAll() {
	s.Warning.Visible = false
	s.Info.Visible = false
	s.TableVisible = false
	s.FilterGroupVisible = false
}

// ShowWarning shows the warning and hides info.
func (s *Session) ShowWarning(text string) {
	s.Warning = Region{Visible: true, Text: text}
	s.Info.Visible = false
}

// ShowInfo shows info and hides the warning.
func (s *Session) ShowInfo(text string) {
	s.Info = Region{Visible: true, Text: text}
	s.Warning.Visible = false
}

func (s *Session) ShowTable() {
	s.TableVisible = true
}

func (s *Session) ShowFilterGroup() {
	s.FilterGroupVisible = true
}

// BeginQuery drops the data of the previous query.
func (s *Session) BeginQuery(stopID string, generation int64) {
	s.StopID = stopID
	s.Generation = generation
	s.Services = nil
	s.Rows = nil
	s.ReferenceTime = time.Time{}
}

// HasData reports whether a query stored services that can be re-rendered.
func (s *Session) HasData() bool {
	return !s.ReferenceTime.IsZero() && len(s.Services) > 0
}

// SetFilterKind switches the filter type and clears its query.
func (s *Session) SetFilterKind(kind FilterKind) {
	s.Filter = FilterSpec{Kind: kind}
	s.FilterInput = FilterInput{
		Visible: kind != FilterNone,
		Type:    kind.InputType(),
		Label:   kind.Label(),
	}
}
