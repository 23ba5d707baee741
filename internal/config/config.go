package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Time ranges accepted by the WakaTime stats endpoint.
const (
	RangeLast7Days   = "last_7_days"
	RangeLast30Days  = "last_30_days"
	RangeLast6Months = "last_6_months"
	RangeLastYear    = "last_year"
)

var validTimeRanges = []string{RangeLast7Days, RangeLast30Days, RangeLast6Months, RangeLastYear}

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrMissingRequired  = errors.New("missing required setting")
	ErrInvalidMarkers   = errors.New("invalid section markers")
)

type Config struct {
	Username string `yaml:"username"`

	WakaTime struct {
		APIKey    string `yaml:"api_key"`
		BaseURL   string `yaml:"base_url"`
		TimeRange string `yaml:"time_range"`
	} `yaml:"wakatime"`

	GitHub struct {
		Token         string `yaml:"token"`
		BaseURL       string `yaml:"base_url"` // empty means api.github.com
		Branch        string `yaml:"branch"`
		CommitMessage string `yaml:"commit_message"`
	} `yaml:"github"`

	SVG struct {
		Path         string `yaml:"path"`
		StartComment string `yaml:"start_comment"`
		EndComment   string `yaml:"end_comment"`
		Width        int    `yaml:"width"`
		Height       int    `yaml:"height"`
		ShowTitle    string `yaml:"show_title"` // reserved, not read by any renderer
	} `yaml:"svg"`

	ColorsURL string `yaml:"colors_url"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	var cfg Config
	cfg.WakaTime.BaseURL = "https://wakatime.com"
	cfg.WakaTime.TimeRange = RangeLast7Days
	cfg.GitHub.Branch = "master"
	cfg.GitHub.CommitMessage = "Updated with Dev Metrics"
	cfg.SVG.Path = "waka_stats.svg"
	cfg.SVG.StartComment = "<!--START_SECTION:waka-->"
	cfg.SVG.EndComment = "<!--END_SECTION:waka-->"
	cfg.SVG.Width = 300
	cfg.SVG.Height = 300
	cfg.ColorsURL = "https://raw.githubusercontent.com/ozh/github-colors/master/colors.json"
	return &cfg
}

// LoadConfig builds the run configuration. The YAML file is optional; a missing
// file leaves the defaults in place. Environment variables use the INPUT_* names
// GitHub Actions exposes for action inputs and take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"INPUT_USERNAME":         &c.Username,
		"INPUT_WAKATIME_API_KEY": &c.WakaTime.APIKey,
		"INPUT_WAKATIME_URL":     &c.WakaTime.BaseURL,
		"INPUT_WAKA_TIME_RANGE":  &c.WakaTime.TimeRange,
		"INPUT_GH_TOKEN":         &c.GitHub.Token,
		"INPUT_GITHUB_API_URL":   &c.GitHub.BaseURL,
		"INPUT_BRANCH":           &c.GitHub.Branch,
		"INPUT_COMMIT_MESSAGE":   &c.GitHub.CommitMessage,
		"INPUT_SVG_PATH":         &c.SVG.Path,
		"INPUT_START_COMMENT":    &c.SVG.StartComment,
		"INPUT_END_COMMENT":      &c.SVG.EndComment,
		"INPUT_SHOW_TITLE":       &c.SVG.ShowTitle,
		"INPUT_COLORS_URL":       &c.ColorsURL,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"INPUT_WIDTH":  &c.SVG.Width,
		"INPUT_HEIGHT": &c.SVG.Height,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", name, err)
		}
		*dst = n
	}
	return nil
}

// Validate checks the settings every command needs. It never touches the network.
func (c *Config) Validate() error {
	if !IsValidTimeRange(c.WakaTime.TimeRange) {
		return fmt.Errorf("%w %q, expected one of %s", ErrInvalidTimeRange, c.WakaTime.TimeRange, strings.Join(validTimeRanges, ", "))
	}
	if c.SVG.StartComment == "" || c.SVG.EndComment == "" {
		return fmt.Errorf("%w: start and end comments must be non-empty", ErrInvalidMarkers)
	}
	if c.SVG.StartComment == c.SVG.EndComment ||
		strings.Contains(c.SVG.StartComment, c.SVG.EndComment) ||
		strings.Contains(c.SVG.EndComment, c.SVG.StartComment) {
		return fmt.Errorf("%w: start and end comments must be distinct", ErrInvalidMarkers)
	}
	if c.SVG.Width <= 0 || c.SVG.Height <= 0 {
		return fmt.Errorf("svg width and height must be positive, got %dx%d", c.SVG.Width, c.SVG.Height)
	}
	if strings.TrimSpace(c.WakaTime.APIKey) == "" {
		return fmt.Errorf("%w: WakaTime API key (INPUT_WAKATIME_API_KEY)", ErrMissingRequired)
	}
	return nil
}

// ValidateForPublish additionally requires the GitHub identity used by the run command.
func (c *Config) ValidateForPublish() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%w: username (INPUT_USERNAME)", ErrMissingRequired)
	}
	if strings.TrimSpace(c.GitHub.Token) == "" {
		return fmt.Errorf("%w: GitHub token (INPUT_GH_TOKEN)", ErrMissingRequired)
	}
	if strings.TrimSpace(c.GitHub.Branch) == "" {
		return fmt.Errorf("%w: branch", ErrMissingRequired)
	}
	return nil
}

func IsValidTimeRange(r string) bool {
	for _, v := range validTimeRanges {
		if r == v {
			return true
		}
	}
	return false
}
