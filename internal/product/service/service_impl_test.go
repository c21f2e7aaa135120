package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/productify/productify/internal/clock"
	commentdomain "github.com/productify/productify/internal/comment/domain"
	"github.com/productify/productify/internal/product/domain"
	"github.com/productify/productify/internal/product/repository"
	userdomain "github.com/productify/productify/internal/user/domain"
)

// -- Stubs --

type stubUsers struct {
	profile *userdomain.Profile
	err     error
	calls   int
}

func (s *stubUsers) GetProfile(ctx context.Context, userID string) (*userdomain.Profile, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

type stubComments struct {
	summary *commentdomain.Summary
	err     error
	calls   int
}

func (s *stubComments) Summarize(ctx context.Context, productID int64) (*commentdomain.Summary, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

type fixture struct {
	svc      domain.Service
	clock    *clock.FakeClock
	users    *stubUsers
	comments *stubComments
	db       *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	users := &stubUsers{}
	comments := &stubComments{summary: &commentdomain.Summary{Preview: []commentdomain.Comment{}}}

	svc := New(Params{
		DB:       dbConn,
		Log:      zaptest.NewLogger(t),
		Clock:    fc,
		GenID:    node,
		Repo:     repository.Provide(),
		Users:    users,
		Comments: comments,
	})

	return &fixture{svc: svc, clock: fc, users: users, comments: comments, db: dbConn}
}

func (f *fixture) create(t *testing.T, owner, title string) *domain.Response {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), owner, domain.CreateRequest{
		Title:       title,
		Description: "a description",
		ImageURL:    "http://localhost/uploads/x.jpg",
	})
	require.NoError(t, err)
	return resp
}

// -- Tests --

func TestCreateAndGetRoundTrip(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "Wooden chair")

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "user-1", got.OwnerID)
	assert.Equal(t, "Wooden chair", got.Title)
	assert.Equal(t, "a description", got.Description)
	assert.Equal(t, "http://localhost/uploads/x.jpg", got.ImageURL)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestCreateValidationListsEveryMissingField(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "user-1", domain.CreateRequest{
		Title:       "  ",
		Description: "",
		ImageURL:    "",
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 3)
	fields := []string{vErr.Fields[0].Field, vErr.Fields[1].Field, vErr.Fields[2].Field}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "imageUrl")
}

func TestCreateRequiresCaller(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "", domain.CreateRequest{
		Title:       "t",
		Description: "d",
		ImageURL:    "u",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestListEmptyIsNotAnError(t *testing.T) {
	f := newFixture(t)

	items, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, "user-1", "oldest")
	f.clock.Advance(time.Minute)
	second := f.create(t, "user-1", "middle")
	f.clock.Advance(time.Minute)
	third := f.create(t, "user-2", "newest")

	items, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, third.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, first.ID, items[2].ID)
}

func TestListMineFiltersByOwner(t *testing.T) {
	f := newFixture(t)

	mine := f.create(t, "user-1", "mine")
	f.create(t, "user-2", "theirs")

	items, err := f.svc.ListMine(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)

	_, err = f.svc.ListMine(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestGetUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), "123456789")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Get(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "before")
	f.clock.Advance(time.Hour)

	newTitle := "after"
	updated, err := f.svc.Update(context.Background(), "user-1", created.ID, domain.UpdateRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateRejectsBlankSuppliedField(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "before")

	blank := "   "
	_, err := f.svc.Update(context.Background(), "user-1", created.ID, domain.UpdateRequest{
		Title: &blank,
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "title", vErr.Fields[0].Field)

	// Stored record is untouched.
	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)
}

func TestUpdateOwnershipIsImmutable(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "chair")
	newTitle := "stool"
	updated, err := f.svc.Update(context.Background(), "user-1", created.ID, domain.UpdateRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", updated.OwnerID)
}

func TestUpdateByNonOwnerForbiddenAndUnchanged(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "chair")

	newTitle := "stolen"
	_, err := f.svc.Update(context.Background(), "user-2", created.ID, domain.UpdateRequest{
		Title: &newTitle,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "chair", got.Title)
}

func TestUpdateUnknownIDBeforeOwnership(t *testing.T) {
	f := newFixture(t)

	newTitle := "x"
	_, err := f.svc.Update(context.Background(), "user-2", "42", domain.UpdateRequest{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRemovesAndRepeatedDeleteIsNotFound(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "chair")

	require.NoError(t, f.svc.Delete(context.Background(), "user-1", created.ID))

	_, err := f.svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(context.Background(), "user-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, "user-1", "chair")

	err := f.svc.Delete(context.Background(), "user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
}

func TestGetEnrichesOwnerAndComments(t *testing.T) {
	f := newFixture(t)
	f.users.profile = &userdomain.Profile{ID: "user-1", Name: "Alice"}
	f.comments.summary = &commentdomain.Summary{
		Count: 4,
		Preview: []commentdomain.Comment{
			{ID: 1, Content: "nice"},
		},
	}

	created := f.create(t, "user-1", "chair")

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "Alice", got.User.Name)
	assert.Equal(t, int64(4), got.CommentCount)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "nice", got.Comments[0].Content)
}

func TestGetDegradesWhenEnrichmentFails(t *testing.T) {
	f := newFixture(t)
	f.users.err = errors.New("users unavailable")
	f.comments.err = errors.New("comments unavailable")

	created := f.create(t, "user-1", "chair")

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.User)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Comments)
	assert.Zero(t, got.CommentCount)
}

func TestGetAbsentOwnerProfileIsNotAFailure(t *testing.T) {
	f := newFixture(t)
	f.users.profile = nil

	created := f.create(t, "user-1", "chair")

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.User)
}

func TestListMineSkipsEnrichment(t *testing.T) {
	f := newFixture(t)
	f.create(t, "user-1", "chair")

	usersBefore := f.users.calls
	commentsBefore := f.comments.calls

	items, err := f.svc.ListMine(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, usersBefore, f.users.calls)
	assert.Equal(t, commentsBefore, f.comments.calls)
}
