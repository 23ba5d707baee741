package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKebabCase(t *testing.T) {
	cases := map[string]string{
		"x":             "x",
		"dataTestid":    "data-testid",
		"strokeOpacity": "stroke-opacity",
		"Fill":          "fill",
		"fontSizeAdj":   "font-size-adj",
	}
	for in, want := range cases {
		assert.Equal(t, want, KebabCase(in), in)
	}
}

func TestRender_Attributes(t *testing.T) {
	out := Render("text", "Go 2 hrs",
		A("dataTestid", "lang-name"),
		A("x", 15),
		A(ClassName, "lang-name"),
		Raw("viewBox", "0 0 350 170"),
	)
	assert.Equal(t, "<text data-testid='lang-name' x='15' class='lang-name' viewBox='0 0 350 170'>Go 2 hrs</text>", out)
}

func TestRender_NoAttributes(t *testing.T) {
	assert.Equal(t, "<style >body{}</style>", Render("style", "body{}"))
}

func TestRenderAll_JoinsWithNewline(t *testing.T) {
	out := RenderAll("g", []string{"<a ></a>", "<b ></b>"}, A("id", "grp"))
	assert.Equal(t, "<g id='grp'><a ></a>\n<b ></b></g>", out)
}

func TestRender_NoEscaping(t *testing.T) {
	out := Render("text", "<&>", A("title", "a'b"))
	assert.Equal(t, "<text title='a'b'><&></text>", out)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "180", FormatValue(180.0))
	assert.Equal(t, "0.5", FormatValue(0.5))
	assert.Equal(t, "99%", FormatValue("99%"))
	assert.Equal(t, "8", FormatValue(8))
	assert.Equal(t, "true", FormatValue(true))
}
