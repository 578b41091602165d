package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aipapergrader/papergrader/internal/client/api"
	"github.com/aipapergrader/papergrader/internal/client/cache"
	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/common"
	"github.com/aipapergrader/papergrader/internal/logging"
)

// TestService lists and creates tests for the authenticated teacher.
type TestService interface {
	List(ctx context.Context) ([]models.Test, error)
	Create(ctx context.Context, name, description string) (*models.Test, error)
}

type testService struct {
	client api.Client
	cache  *cache.Store
	log    logging.Logger
}

func NewTestService(client api.Client, cacheStore *cache.Store, log logging.Logger) TestService {
	return &testService{client: client, cache: cacheStore, log: log.With("component", "tests")}
}

// List serves the test list from cache, fetching when stale.
func (s *testService) List(ctx context.Context) ([]models.Test, error) {
	return cache.Read(ctx, s.cache, cache.TestsKey(), true, s.client.ListTests)
}

// Create creates a test and, only after the success response, marks the test
// list stale.
func (s *testService) Create(ctx context.Context, name, description string) (*models.Test, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: test name is required", common.ErrValidation)
	}

	created, err := s.client.CreateTest(ctx, name, description)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TestsKey())
	s.log.Info(ctx, "test created", "test_id", created.ID, "name", created.Name)
	return created, nil
}
