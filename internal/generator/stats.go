package generator

import (
	"fmt"
	"math"
	"strings"

	"wakasvg/internal/markup"
	"wakasvg/internal/wakatime"
)

const (
	// MaxLanguages caps how many languages are drawn; the rest are dropped.
	MaxLanguages = 6

	BarHeight     = 8
	LegendColumns = 2
	ColumnPitch   = 150
	RowPitch      = 25
)

// ColorResolver picks the display color for a language name.
type ColorResolver interface {
	Resolve(name string) string
}

// FormatStats turns the ranked language list into markup fragments. For each
// language it emits a bar segment followed by its legend entry.
func FormatStats(langs []wakatime.Language, colors ColorResolver, totalWidth int) []string {
	if len(langs) > MaxLanguages {
		langs = langs[:MaxLanguages]
	}

	fragments := make([]string, 0, 2*len(langs))
	x := 0.0
	for index, lang := range langs {
		segmentWidth := float64(totalWidth) * lang.Percent / 100
		color := colors.Resolve(lang.Name)

		fragments = append(fragments, markup.Render("rect", "",
			markup.A("mask", "url(#rect-mask)"),
			markup.A("dataTestid", "lang-progress"),
			markup.A("x", x),
			markup.A("y", 0),
			markup.A("width", segmentWidth),
			markup.A("height", BarHeight),
			markup.A("fill", color),
		))

		col, row := LegendCell(index)
		fragments = append(fragments, markup.RenderAll("g", []string{
			markup.Render("circle", "",
				markup.A("cx", 5),
				markup.A("cy", 6),
				markup.A("r", 5),
				markup.A("fill", color),
			),
			markup.Render("text", LegendLabel(lang),
				markup.A("dataTestid", "lang-name"),
				markup.A("x", 15),
				markup.A("y", 10),
				markup.A(markup.ClassName, "lang-name"),
			),
		}, markup.A("transform", fmt.Sprintf("translate(%d, %d)", ColumnPitch*col, RowPitch*row))))

		x += segmentWidth
	}
	return fragments
}

// RenderStats joins the fragments the way they are stored in the document.
func RenderStats(langs []wakatime.Language, colors ColorResolver, totalWidth int) string {
	return strings.Join(FormatStats(langs, colors, totalWidth), "\n")
}

// LegendCell returns the grid cell of the index-th legend entry. The row is
// ceil(index/2), so entries after the first are staggered.
func LegendCell(index int) (col, row int) {
	return index % LegendColumns, int(math.Ceil(float64(index) / LegendColumns))
}

// LegendLabel renders "{name} {text}({percent}%)".
func LegendLabel(lang wakatime.Language) string {
	return fmt.Sprintf("%s %s(%s%%)", lang.Name, lang.Text, FormatPercent(lang.Percent))
}

// FormatPercent prints two decimals, zero-padded to five characters.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%05.2f", p)
}
