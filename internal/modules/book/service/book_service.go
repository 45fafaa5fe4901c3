package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"readtrack/internal/modules/book/domain"
	bookout "readtrack/internal/modules/book/port/out"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/platform/logging"
	"readtrack/internal/platform/slug"
)

type BookService struct {
	fetcher bookout.TextFetcher
	watcher bookout.ChangeWatcher
	logger  *slog.Logger
}

func NewBookService(fetcher bookout.TextFetcher, watcher bookout.ChangeWatcher, logger *slog.Logger) *BookService {
	return &BookService{
		fetcher: fetcher,
		watcher: watcher,
		logger:  logging.Component(logger, "book"),
	}
}

// Load fetches and parses a book. Every fetch failure surfaces as a
// *apperrors.FetchError.
func (s *BookService) Load(ctx context.Context, location string, policy domain.Policy) (domain.Book, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Book{}, fmt.Errorf("book location is required")
	}
	if policy == "" {
		policy = domain.PolicyHeaderBlocks
	}
	if err := policy.Validate(); err != nil {
		return domain.Book{}, err
	}

	text, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		var fetchErr *apperrors.FetchError
		if !errors.As(err, &fetchErr) {
			err = &apperrors.FetchError{Location: location, Err: err}
		}
		s.logger.Warn("fetch book failed", "location", location, "error", err)
		return domain.Book{}, err
	}

	meta, chapters, err := domain.Parse(text, policy)
	if err != nil {
		s.logger.Warn("parse book failed", "location", location, "policy", string(policy), "error", err)
		return domain.Book{}, err
	}
	s.logger.Info("book loaded", "location", location, "chapters", chapters.Len(), "policy", string(policy))
	return domain.Book{
		ID:       slug.FromLocation(location),
		Location: location,
		Meta:     meta,
		Chapters: chapters,
	}, nil
}

// Watch returns a nil channel for remote books or when no watcher is
// configured; receiving from it blocks forever.
func (s *BookService) Watch(ctx context.Context, location string) (<-chan struct{}, error) {
	if s.watcher == nil || domain.IsRemote(location) {
		return nil, nil
	}
	return s.watcher.Watch(ctx, location)
}
