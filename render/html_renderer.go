package render

import (
	"embed"
	"html/template"
	"io"

	"bus-arrival-server/models"
)

//go:embed templates/board.html
var templateFS embed.FS

var boardTemplate = template.Must(template.ParseFS(templateFS, "templates/board.html"))

// FilterOption is one entry of the filter type selector.
type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

// BoardView is everything the board page needs from a session.
type BoardView struct {
	StopID             string
	Warning            models.Region
	Info               models.Region
	TableVisible       bool
	FilterGroupVisible bool
	FilterInput        models.FilterInput
	FilterQuery        string
	FilterOptions      []FilterOption
	Headers            []string
	Rows               [][]Cell
}

// NewBoardView replays the session rows through RenderRows so the page shows
// exactly what the other backends show.
func NewBoardView(s *models.Session) BoardView {
	options := make([]FilterOption, 0, len(models.FilterKinds))
	for _, kind := range models.FilterKinds {
		options = append(options, FilterOption{
			Value:    string(kind),
			Label:    kind.Label(),
			Selected: kind == s.Filter.Kind,
		})
	}
	return BoardView{
		StopID:             s.StopID,
		Warning:            s.Warning,
		Info:               s.Info,
		TableVisible:       s.TableVisible,
		FilterGroupVisible: s.FilterGroupVisible,
		FilterInput:        s.FilterInput,
		FilterQuery:        s.Filter.Query,
		FilterOptions:      options,
		Headers:            Headers,
		Rows:               Apply(nil, RenderRows(s.Rows)),
	}
}

// WriteBoard renders the board page.
func WriteBoard(w io.Writer, view BoardView) error {
	return boardTemplate.Execute(w, view)
}
