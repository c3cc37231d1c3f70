//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parkingbot/internal/domain/identity"
	"parkingbot/internal/infra/kvstore"
	"parkingbot/internal/pkg/clock"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type directoryMock struct {
	mock.Mock
}

func (m *directoryMock) Lookup(ctx context.Context, userID string) (*identity.Record, error) {
	args := m.Called(ctx, userID)
	rec, _ := args.Get(0).(*identity.Record)
	return rec, args.Error(1)
}

type IdentityCacheTestSuite struct {
	suite.Suite
	clock     *clock.MockClock
	kv        *kvstore.MemoryStore
	directory *directoryMock
	cache     usecase.IdentityCache
	ctx       context.Context
}

func (s *IdentityCacheTestSuite) SetupTest() {
	s.clock = clock.NewMockClock(time.Date(2016, 5, 4, 10, 0, 0, 0, time.UTC))
	s.kv = kvstore.NewMemoryStore(s.clock)
	s.directory = new(directoryMock)
	s.cache = usecase.NewIdentityCache(s.kv, s.directory, discardLogger)
	s.ctx = context.Background()
}

func (s *IdentityCacheTestSuite) TearDownTest() {
	s.directory.AssertExpectations(s.T())
}

func TestIdentityCacheSuite(t *testing.T) {
	suite.Run(t, new(IdentityCacheTestSuite))
}

func (s *IdentityCacheTestSuite) TestResolve() {
	s.Run("directory name is cached", func() {
		s.directory.On("Lookup", mock.Anything, "U1").
			Return(&identity.Record{Name: "mjones", FirstName: "Mike"}, nil).Once()

		name, err := s.cache.Resolve(s.ctx, "U1", false)
		s.Require().NoError(err)
		s.Equal("Mike", name)

		// second read is served from the store
		name, err = s.cache.Resolve(s.ctx, "U1", true)
		s.Require().NoError(err)
		s.Equal("mjones", name)

		raw, found, err := s.kv.Get(s.ctx, "slack_user_names:2:U1")
		s.Require().NoError(err)
		s.True(found)
		s.JSONEq(`{"id":"U1","name":"mjones","first_name":"Mike"}`, raw)
	})

	s.Run("full name prefers real_name", func() {
		s.directory.On("Lookup", mock.Anything, "U2").
			Return(&identity.Record{Name: "ajones", RealName: "Alice Jones", FirstName: "Alice"}, nil).Once()

		name, err := s.cache.Resolve(s.ctx, "U2", true)
		s.Require().NoError(err)
		s.Equal("Alice Jones", name)
	})

	s.Run("directory outage caches the sentinel for 30 days", func() {
		s.directory.On("Lookup", mock.Anything, "U9").
			Return(nil, errs.Mark(errors.New("timeout"), errs.ErrDirectoryUnavailable)).Once()

		name, err := s.cache.Resolve(s.ctx, "U9", false)
		s.Require().NoError(err)
		s.Equal("Sean Connery", name)

		name, err = s.cache.Resolve(s.ctx, "U9", true)
		s.Require().NoError(err)
		s.Equal("Sean Connery", name)

		s.clock.Add(30*24*time.Hour - time.Second)
		_, found, err := s.kv.Get(s.ctx, "slack_user_names:2:U9")
		s.Require().NoError(err)
		s.True(found)

		s.clock.Add(time.Second)
		_, found, err = s.kv.Get(s.ctx, "slack_user_names:2:U9")
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("unknown user resolves to the sentinel", func() {
		s.directory.On("Lookup", mock.Anything, "U404").
			Return(nil, errs.ErrUserNotFound).Once()

		name, err := s.cache.Resolve(s.ctx, "U404", false)
		s.Require().NoError(err)
		s.Equal(identity.SentinelName, name)
	})

	s.Run("empty id skips the directory", func() {
		name, err := s.cache.Resolve(s.ctx, "", false)
		s.Require().NoError(err)
		s.Equal(identity.SentinelName, name)
	})

	s.Run("corrupt cache entry is refetched and overwritten", func() {
		s.Require().NoError(s.kv.Set(s.ctx, "slack_user_names:2:U3", "{not json", identity.CacheTTL))
		s.directory.On("Lookup", mock.Anything, "U3").
			Return(&identity.Record{Name: "bsmith"}, nil).Once()

		name, err := s.cache.Resolve(s.ctx, "U3", false)
		s.Require().NoError(err)
		s.Equal("bsmith", name)

		raw, _, err := s.kv.Get(s.ctx, "slack_user_names:2:U3")
		s.Require().NoError(err)
		s.JSONEq(`{"id":"U3","name":"bsmith"}`, raw)
	})
}

func TestIdentityCacheStoreFailure(t *testing.T) {
	c := clock.NewMockClock(time.Date(2016, 5, 4, 10, 0, 0, 0, time.UTC))
	fs := &failingStore{KeyValueStore: kvstore.NewMemoryStore(c), failGet: true}
	cache := usecase.NewIdentityCache(fs, new(directoryMock), discardLogger)

	_, err := cache.Resolve(context.Background(), "U1", false)
	if !errs.Is(err, usecase.ErrStoreOperationFailed) {
		t.Fatalf("expected store failure, got %v", err)
	}
}
