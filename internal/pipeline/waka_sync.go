package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"wakasvg/internal/colors"
	"wakasvg/internal/config"
	"wakasvg/internal/generator"
	"wakasvg/internal/github"
	"wakasvg/internal/publisher"
	"wakasvg/internal/wakatime"

	"go.uber.org/zap"
)

const (
	authErrorHint = "Authentication Error. Try saving a GitHub Token in your Repo Secrets or Use the GitHub Actions Token, which is automatically used by the action."
	apiKeyHint    = "Please Add your WakaTime API Key to the Repository Secrets"
)

// StatsSource returns the ranked language breakdown for a time range.
type StatsSource interface {
	Languages(ctx context.Context, timeRange string) ([]wakatime.Language, error)
}

// ColorSource loads the language color map.
type ColorSource func(ctx context.Context) (colors.Map, error)

// RemoteStore is a publisher.Store that can verify access up front.
type RemoteStore interface {
	publisher.Store
	Resolve(ctx context.Context) error
}

// WakaSync runs the whole job: load colors, resolve the repository, fetch
// stats, render them and publish the document.
type WakaSync struct {
	Config *config.Config
	Logger *zap.Logger
	Stats  StatsSource
	Colors ColorSource
	Store  RemoteStore
	Rand   *rand.Rand
	DryRun bool
}

func (s *WakaSync) Run(ctx context.Context) (publisher.Result, error) {
	log := s.logger()

	resolver, err := s.colorStage(ctx)
	if err != nil {
		return publisher.Result{}, err
	}

	if err := s.resolveStage(ctx); err != nil {
		return publisher.Result{}, err
	}

	stats, err := s.renderStage(ctx, resolver)
	if err != nil {
		return publisher.Result{}, err
	}

	pub := publisher.NewPublisher(s.Store, publisher.Options{
		Path:          s.Config.SVG.Path,
		CommitMessage: s.Config.GitHub.CommitMessage,
		Markers:       Markers(s.Config),
		BarWidth:      s.Config.SVG.Width,
		DryRun:        s.DryRun,
	}, log)

	res, err := pub.Publish(ctx, stats)
	if err != nil {
		return res, err
	}
	log.Info("Run complete",
		zap.String("outcome", string(res.Outcome)),
		zap.String("path", res.Path),
		zap.Bool("dry_run", res.DryRun))
	return res, nil
}

// RenderStats fetches colors and stats and returns the managed-region markup
// without touching the remote store.
func (s *WakaSync) RenderStats(ctx context.Context) (string, error) {
	resolver, err := s.colorStage(ctx)
	if err != nil {
		return "", err
	}
	return s.renderStage(ctx, resolver)
}

func (s *WakaSync) colorStage(ctx context.Context) (*colors.Resolver, error) {
	m, err := s.Colors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load color map: %w", err)
	}
	resolver, err := colors.NewResolver(m, s.Rand)
	if err != nil {
		return nil, err
	}
	s.logger().Debug("Color map loaded", zap.Int("languages", len(m)))
	return resolver, nil
}

func (s *WakaSync) resolveStage(ctx context.Context) error {
	err := s.Store.Resolve(ctx)
	if errors.Is(err, github.ErrAuthentication) {
		s.logger().Error(authErrorHint, zap.Error(err))
	}
	return err
}

func (s *WakaSync) renderStage(ctx context.Context, resolver *colors.Resolver) (string, error) {
	log := s.logger()

	langs, err := s.Stats.Languages(ctx, s.Config.WakaTime.TimeRange)
	if err != nil {
		if errors.Is(err, wakatime.ErrInvalidAPIKey) {
			log.Error(apiKeyHint, zap.Error(err))
		}
		return "", err
	}
	log.Info("Fetched language stats",
		zap.String("range", s.Config.WakaTime.TimeRange),
		zap.Int("languages", len(langs)))
	for _, l := range langs {
		log.Debug("Language", zap.String("name", l.Name), zap.Float64("percent", l.Percent), zap.String("text", l.Text))
	}

	return generator.RenderStats(langs, resolver, s.Config.SVG.Width), nil
}

func (s *WakaSync) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Markers returns the configured marker pair. Both the splice and the fresh
// build read it from here.
func Markers(cfg *config.Config) generator.Markers {
	return generator.Markers{Start: cfg.SVG.StartComment, End: cfg.SVG.EndComment}
}
