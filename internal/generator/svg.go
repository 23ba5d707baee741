package generator

import (
	"errors"
	"fmt"
	"strings"

	"wakasvg/internal/markup"
)

var (
	ErrMarkersNotFound  = errors.New("section markers not found in document")
	ErrAmbiguousMarkers = errors.New("section markers occur more than once in document")
)

// Card geometry. The mask width follows the configured bar width.
const (
	CardWidth  = 350
	CardHeight = 170
)

const cardStyle = `
                    .header {
                        font: 600 18px 'Segoe UI', Ubuntu, Sans-Serif;
                        fill: #2f80ed;
                        animation: fadeInAnimation 0.8s ease-in-out forwards;
                    }
                    .lang-name {
                        font: 400 11px 'Segoe UI', Ubuntu, Sans-Serif;
                        fill: #333;
                    }
                `

// Markers delimit the managed region of the document.
type Markers struct {
	Start string
	End   string
}

// Section wraps stats in the marker pair.
func (m Markers) Section(stats string) string {
	return m.Start + "\n" + stats + "\n" + m.End
}

// Region returns the managed region of doc, markers included, as byte offsets.
// Each marker must occur exactly once and the end marker must follow the start.
func (m Markers) Region(doc string) (start, end int, err error) {
	start = strings.Index(doc, m.Start)
	if start < 0 {
		return 0, 0, ErrMarkersNotFound
	}
	rel := strings.Index(doc[start+len(m.Start):], m.End)
	if rel < 0 {
		return 0, 0, ErrMarkersNotFound
	}
	if strings.Count(doc, m.Start) > 1 || strings.Count(doc, m.End) > 1 {
		return 0, 0, ErrAmbiguousMarkers
	}
	end = start + len(m.Start) + rel + len(m.End)
	return start, end, nil
}

// Splice replaces the managed region of doc with stats. Everything outside the
// markers is kept byte for byte.
func Splice(doc, stats string, m Markers) (string, error) {
	start, end, err := m.Region(doc)
	if err != nil {
		return "", err
	}
	return doc[:start] + m.Section(stats) + doc[end:], nil
}

// BuildFresh renders a complete card around stats for a repository that has
// no document yet.
func BuildFresh(stats string, m Markers, barWidth int) string {
	return markup.RenderAll("svg", []string{
		markup.Render("style", cardStyle),
		markup.Render("rect", "",
			markup.A("dataTestid", "card-bg"),
			markup.A("x", 0.5),
			markup.A("y", 0.5),
			markup.A("rx", 4.5),
			markup.A("height", "99%"),
			markup.A("stroke", "#E4E2E2"),
			markup.A("width", CardWidth-1),
			markup.A("fill", "#fffefe"),
			markup.A("strokeOpacity", 1),
		),
		markup.Render("g",
			markup.Render("g",
				markup.Render("text", "Most Used Languages",
					markup.A("x", 0),
					markup.A("y", 0),
					markup.A(markup.ClassName, "header"),
					markup.A("dataTestid", "header"),
				),
				markup.A("transform", "translate(0, 0)"),
			),
			markup.A("dataTestid", "card-title"),
			markup.A("transform", "translate(25, 35)"),
		),
		markup.Render("g",
			markup.RenderAll("svg", []string{
				markup.Render("mask",
					markup.Render("rect", "",
						markup.A("x", 0),
						markup.A("y", 0),
						markup.A("width", barWidth),
						markup.A("height", BarHeight),
						markup.A("fill", "white"),
						markup.A("rx", 5),
					),
					markup.A("id", "rect-mask"),
				),
				m.Section(stats),
			},
				markup.A("dataTestid", "lang-items"),
				markup.A("x", 25),
			),
			markup.A("dataTestid", "main-card-body"),
			markup.A("transform", "translate(0, 55)"),
		),
	},
		markup.A("xmlns", "http://www.w3.org/2000/svg"),
		markup.A("width", CardWidth),
		markup.A("height", CardHeight),
		markup.Raw("viewBox", fmt.Sprintf("0 0 %d %d", CardWidth, CardHeight)),
		markup.A("fill", "none"),
	)
}
