package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"appstore_collector/internal/domain"
	"appstore_collector/internal/service/mocks"
)

type AppDetailFetcherTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	client  *mocks.MockStoreClient
	fetcher *AppDetailFetcher
}

func (s *AppDetailFetcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = mocks.NewMockStoreClient(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.fetcher = NewAppDetailFetcher(s.client, logger)
}

func (s *AppDetailFetcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAppDetailFetcherTestSuite(t *testing.T) {
	suite.Run(t, new(AppDetailFetcherTestSuite))
}

func (s *AppDetailFetcherTestSuite) TestFetch_TagsEveryReview() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "Notes", ID: 42, Country: "us"}

	s.client.EXPECT().Lookup(ctx, "us", int64(42)).Return(&domain.AppInfo{
		AppName:         "Notes Pro",
		UserRatingCount: 10,
	}, nil)
	s.client.EXPECT().RecentReviews(ctx, "us", int64(42), 5).Return([]domain.Review{
		{Rating: 5, Title: "great"},
		{Rating: 2, Title: "meh"},
	}, nil)

	result, err := s.fetcher.Fetch(ctx, app, 5)

	s.NoError(err)
	s.Equal("Notes Pro", result.Info.AppName)
	s.Equal(int64(42), result.Info.AppID)
	s.Equal("us", result.Info.CountryCode)
	s.Len(result.Reviews, 2)
	for _, r := range result.Reviews {
		s.Equal("Notes Pro", r.AppName)
		s.Equal("us", r.CountryCode)
		s.Equal(int64(42), r.AppID)
	}
}

func (s *AppDetailFetcherTestSuite) TestFetch_NameFallsBackToInputIdentifier() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "Notes", ID: 42, Country: "us"}

	s.client.EXPECT().Lookup(ctx, "us", int64(42)).Return(&domain.AppInfo{}, nil)
	s.client.EXPECT().RecentReviews(ctx, "us", int64(42), 5).Return(nil, nil)

	result, err := s.fetcher.Fetch(ctx, app, 5)

	s.NoError(err)
	s.Equal("Notes", result.Info.AppName)
}

func (s *AppDetailFetcherTestSuite) TestFetch_ZeroReviewsStillProducesResult() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "Notes", ID: 42, Country: "us"}

	s.client.EXPECT().Lookup(ctx, "us", int64(42)).Return(&domain.AppInfo{AppName: "Notes"}, nil)
	s.client.EXPECT().RecentReviews(ctx, "us", int64(42), 100).Return([]domain.Review{}, nil)

	result, err := s.fetcher.Fetch(ctx, app, 100)

	s.NoError(err)
	s.NotNil(result)
	s.Empty(result.Reviews)
	s.Equal("Notes", result.Info.AppName)
}

func (s *AppDetailFetcherTestSuite) TestFetch_ResolvesNameOnlyIdentifier() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "calm", Country: "us"}

	s.client.EXPECT().Search(ctx, "us", "calm", 1).Return([]domain.CandidateApp{
		{Name: "Calm", ID: 7, Country: "us"},
	}, nil)
	s.client.EXPECT().Lookup(ctx, "us", int64(7)).Return(&domain.AppInfo{AppName: "Calm"}, nil)
	s.client.EXPECT().RecentReviews(ctx, "us", int64(7), 5).Return(nil, nil)

	result, err := s.fetcher.Fetch(ctx, app, 5)

	s.NoError(err)
	s.Equal(int64(7), result.Info.AppID)
}

func (s *AppDetailFetcherTestSuite) TestFetch_ResolveWithoutMatchFails() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "nonexistent", Country: "us"}

	s.client.EXPECT().Search(ctx, "us", "nonexistent", 1).Return(nil, nil)

	result, err := s.fetcher.Fetch(ctx, app, 5)

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "no match")
}

func (s *AppDetailFetcherTestSuite) TestFetch_LookupError() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "Notes", ID: 42, Country: "us"}

	s.client.EXPECT().Lookup(ctx, "us", int64(42)).Return(nil, errors.New("app not found"))

	result, err := s.fetcher.Fetch(ctx, app, 5)

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "lookup app 42")
}

func (s *AppDetailFetcherTestSuite) TestFetch_ReviewsError() {
	ctx := context.Background()
	app := domain.CandidateApp{Name: "Notes", ID: 42, Country: "us"}

	s.client.EXPECT().Lookup(ctx, "us", int64(42)).Return(&domain.AppInfo{AppName: "Notes"}, nil)
	s.client.EXPECT().RecentReviews(ctx, "us", int64(42), 5).Return(nil, errors.New("feed unavailable"))

	result, err := s.fetcher.Fetch(ctx, app, 5)

	s.Error(err)
	s.Nil(result)
}
