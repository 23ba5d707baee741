// Package colors maps programming-language names to display colors.
package colors

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrEmptyColorMap = errors.New("color map has no usable colors")

//go:embed colors.schema.json
var colorsSchemaJSON string

var colorsSchema = jsonschema.MustCompileString("colors.schema.json", colorsSchemaJSON)

// Entry mirrors one value of the github-colors colors.json file. Color is null
// for languages GitHub does not assign a color to.
type Entry struct {
	Color *string `json:"color"`
	URL   string  `json:"url,omitempty"`
}

// Map is keyed by language name.
type Map map[string]Entry

// Fetch downloads, validates and decodes a color map. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (Map, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("color map request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("color map request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return decode(raw)
}

func decode(raw []byte) (Map, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode color map: %w", err)
	}
	if err := colorsSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("failed to decode color map: %w", err)
	}

	var m Map
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode color map: %w", err)
	}
	return m, nil
}

// Resolver answers color lookups for one run. It is not safe for concurrent
// use because the random source is not.
type Resolver struct {
	colors  Map
	palette []string
	rng     *rand.Rand
}

// NewResolver prepares the fallback palette: one slot per entry of m with a
// non-empty color, so a color shared by several languages is drawn more often.
func NewResolver(m Map, rng *rand.Rand) (*Resolver, error) {
	// map iteration order is random; walk sorted keys so a seeded rng is reproducible
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var palette []string
	for _, name := range names {
		if c := m[name].color(); c != "" {
			palette = append(palette, c)
		}
	}
	if len(palette) == 0 {
		return nil, ErrEmptyColorMap
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resolver{colors: m, palette: palette, rng: rng}, nil
}

// Resolve returns the mapped color for name, or a random color from the map
// when name is unknown or has no color.
func (r *Resolver) Resolve(name string) string {
	if e, ok := r.colors[name]; ok {
		if c := e.color(); c != "" {
			return c
		}
	}
	return r.palette[r.rng.Intn(len(r.palette))]
}

func (e Entry) color() string {
	if e.Color == nil {
		return ""
	}
	return strings.TrimSpace(*e.Color)
}
