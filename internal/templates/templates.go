package templates

import (
	"embed"
	"html/template"

	"mancalaweb/internal/board"
	"mancalaweb/internal/game"
	"mancalaweb/internal/storage"
)

//go:embed *.html
var files embed.FS

var commit = "dev"

// SetCommit records the build commit shown in page footers.
func SetCommit(c string) {
	if c != "" {
		commit = c
	}
}

// HomePage is the data for the landing page.
type HomePage struct {
	Title       string
	Error       string
	BoardSizes  []int
	StoneCounts []int
	Stats       storage.Stats
	Recent      []storage.Recent
}

// BoardPage is the data for a board page.
type BoardPage struct {
	Title string
	Error string
	State game.State
}

// Pit is the data for one clickable pit.
type Pit struct {
	BoardID  string
	Stone    board.Stone
	Disabled bool
}

// Load parses the embedded page templates.
func Load() (*template.Template, error) {
	funcs := template.FuncMap{
		"commit": func() string { return commit },
		"pit": func(id string, st board.Stone, disabled bool) Pit {
			return Pit{BoardID: id, Stone: st, Disabled: disabled}
		},
	}
	return template.New("pages").Funcs(funcs).ParseFS(files, "*.html")
}
