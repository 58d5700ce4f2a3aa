package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/service"
	"github.com/iliyamo/movienight/internal/tmdb"
	"github.com/iliyamo/movienight/internal/utils"
)

type mockEvents struct{ mock.Mock }

func (m *mockEvents) CreateEvent(ctx context.Context, ownerID uint64, in service.EventInput) (model.Event, error) {
	args := m.Called(ctx, ownerID, in)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *mockEvents) UpdateEvent(ctx context.Context, eventID, requesterID uint64, in service.EventInput) (model.Event, error) {
	args := m.Called(ctx, eventID, requesterID, in)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *mockEvents) DeleteEvent(ctx context.Context, eventID, requesterID uint64) error {
	return m.Called(ctx, eventID, requesterID).Error(0)
}

func (m *mockEvents) JoinEvent(ctx context.Context, eventID, userID uint64) (model.Participation, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Get(0).(model.Participation), args.Error(1)
}

func (m *mockEvents) LeaveEvent(ctx context.Context, eventID, userID uint64) error {
	return m.Called(ctx, eventID, userID).Error(0)
}

func (m *mockEvents) GetEvent(ctx context.Context, eventID, viewerID uint64) (model.Event, error) {
	args := m.Called(ctx, eventID, viewerID)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *mockEvents) ListParticipants(ctx context.Context, eventID uint64) ([]model.Participant, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]model.Participant), args.Error(1)
}

func (m *mockEvents) ListEvents(ctx context.Context, viewerID uint64) ([]model.Event, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *mockEvents) ListOrganizedEvents(ctx context.Context, userID, viewerID uint64) ([]model.Event, error) {
	args := m.Called(ctx, userID, viewerID)
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *mockEvents) ListJoinedEvents(ctx context.Context, userID, viewerID uint64) ([]model.Event, error) {
	args := m.Called(ctx, userID, viewerID)
	return args.Get(0).([]model.Event), args.Error(1)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Signup(ctx context.Context, in service.SignupInput) (model.UserPublic, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.UserPublic), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (utils.AccessToken, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(utils.AccessToken), args.Error(1)
}

func (m *mockAuth) ListUsers(ctx context.Context) ([]model.UserPublic, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.UserPublic), args.Error(1)
}

type mockMovies struct{ mock.Mock }

func (m *mockMovies) AddMovie(ctx context.Context, userID uint64, title, movieType string) (model.MovieEntry, error) {
	args := m.Called(ctx, userID, title, movieType)
	return args.Get(0).(model.MovieEntry), args.Error(1)
}

func (m *mockMovies) RemoveMovie(ctx context.Context, userID, movieID uint64) error {
	return m.Called(ctx, userID, movieID).Error(0)
}

func (m *mockMovies) ListMovies(ctx context.Context, userID uint64) (model.MovieLists, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.MovieLists), args.Error(1)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) UpsertReview(ctx context.Context, userID uint64, in service.ReviewInput) (model.Review, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(model.Review), args.Error(1)
}

func (m *mockReviews) ListReviews(ctx context.Context, userID uint64) ([]model.Review, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Review), args.Error(1)
}

type mockFinder struct{ mock.Mock }

func (m *mockFinder) Search(ctx context.Context, query string, page int) (tmdb.Page, error) {
	args := m.Called(ctx, query, page)
	return args.Get(0).(tmdb.Page), args.Error(1)
}

func (m *mockFinder) Popular(ctx context.Context, page int) (tmdb.Page, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(tmdb.Page), args.Error(1)
}
