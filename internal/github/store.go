// Package github stores the managed document in a GitHub repository through
// the contents API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"wakasvg/internal/publisher"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ErrAuthentication is returned when the repository cannot be resolved with
// the configured token.
var ErrAuthentication = errors.New("github authentication failed")

// Store implements publisher.Store for one repository and branch.
type Store struct {
	client *gh.Client
	owner  string
	repo   string
	branch string
}

type StoreOptions struct {
	Token   string
	BaseURL string // empty selects api.github.com
	Owner   string
	Repo    string
	Branch  string
}

func NewStore(ctx context.Context, opts StoreOptions) (*Store, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	client := gh.NewClient(oauth2.NewClient(ctx, ts))

	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &Store{
		client: client,
		owner:  opts.Owner,
		repo:   opts.Repo,
		branch: opts.Branch,
	}, nil
}

// FullName returns "owner/repo".
func (s *Store) FullName() string {
	return s.owner + "/" + s.repo
}

// Resolve checks that the repository is reachable with the token. Any API
// rejection is reported as ErrAuthentication.
func (s *Store) Resolve(ctx context.Context) error {
	_, _, err := s.client.Repositories.Get(ctx, s.owner, s.repo)
	if err == nil {
		return nil
	}
	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: %v", ErrAuthentication, s.FullName(), err)
	}
	return fmt.Errorf("failed to resolve repository %s: %w", s.FullName(), err)
}

func (s *Store) GetFile(ctx context.Context, path string) (*publisher.File, error) {
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path,
		&gh.RepositoryContentGetOptions{Ref: s.branch})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, publisher.ErrNotFound
		}
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &publisher.File{
		Path:    file.GetPath(),
		Content: content,
		SHA:     file.GetSHA(),
	}, nil
}

func (s *Store) UpdateFile(ctx context.Context, path, message string, content []byte, sha string) error {
	_, _, err := s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, path, &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: content,
		SHA:     gh.Ptr(sha),
		Branch:  gh.Ptr(s.branch),
	})
	return err
}

func (s *Store) CreateFile(ctx context.Context, path, message string, content []byte) error {
	_, _, err := s.client.Repositories.CreateFile(ctx, s.owner, s.repo, path, &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: content,
		Branch:  gh.Ptr(s.branch),
	})
	return err
}
