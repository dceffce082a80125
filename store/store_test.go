package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio/api/config"
	"folio/api/database"
	"folio/api/models"
)

func newTestDB(t *testing.T) *database.DBClient {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLDB(ctx, config.DatabaseConfig{Driver: "sqlite", URL: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestProjectStore_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewProjectStore(newTestDB(t), zap.NewNop())

	created, err := s.CreateProject(ctx, models.Project{
		Slug:        "folio",
		Name:        "Folio",
		URL:         "https://folio.dev",
		Description: "portfolio site",
		TechStack:   []string{"Go", "React"},
		Category:    models.CategoryPersonal,
		IsFeatured:  true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, []string{}, created.GalleryImages)

	_, err = s.CreateProject(ctx, models.Project{Slug: "folio", Name: "dup", URL: "https://x.dev", Description: "d", Category: models.CategoryPersonal})
	require.True(t, errors.Is(err, ErrConflict), "got %v", err)

	got, err := s.GetProjectBySlug(ctx, "folio")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, []string{"Go", "React"}, got.TechStack)
	require.True(t, got.IsFeatured)
	require.Equal(t, models.CategoryPersonal, got.Category)
	require.True(t, created.CreatedAt.Equal(got.CreatedAt))

	updated, err := s.UpdateProject(ctx, created.ID, models.Project{
		Slug:        "folio-v2",
		Name:        "Folio v2",
		URL:         "https://folio.dev",
		Description: "rewritten",
		Category:    models.CategoryProfessional,
	})
	require.NoError(t, err)
	require.Equal(t, "Folio v2", updated.Name)
	require.False(t, updated.IsFeatured)
	require.Equal(t, []string{}, updated.TechStack)

	_, err = s.GetProjectBySlug(ctx, "folio")
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = s.UpdateProject(ctx, uuid.New(), models.Project{Slug: "ghost", Category: models.CategoryPersonal})
	require.True(t, errors.Is(err, ErrNotFound))

	all, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, s.DeleteProject(ctx, created.ID))
	require.True(t, errors.Is(s.DeleteProject(ctx, created.ID), ErrNotFound))

	all, err = s.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestTestimonialStore_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewTestimonialStore(newTestDB(t), zap.NewNop())

	acme := "ACME"
	created, err := s.CreateTestimonial(ctx, models.Testimonial{
		Slug: "ann", Name: "Ann", Role: "CTO", Company: &acme, Content: "great work", Rating: 5, Published: true,
	})
	require.NoError(t, err)

	got, err := s.GetTestimonial(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ACME", got.CompanyName())
	require.Equal(t, 5, got.Rating)
	require.True(t, got.Published)

	updated, err := s.UpdateTestimonial(ctx, created.ID, models.Testimonial{
		Slug: "ann", Name: "Ann", Role: "CEO", Content: "still great", Rating: 4,
	})
	require.NoError(t, err)
	require.Nil(t, updated.Company)
	require.False(t, updated.Published)
	require.Equal(t, "CEO", updated.Role)

	_, err = s.CreateTestimonial(ctx, models.Testimonial{Slug: "ann", Name: "x", Role: "y", Content: "z", Rating: 3})
	require.True(t, errors.Is(err, ErrConflict))

	list, err := s.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.DeleteTestimonial(ctx, created.ID))
	_, err = s.GetTestimonial(ctx, created.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestAdminStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewAdminStore(newTestDB(t), zap.NewNop())

	admin, err := s.CreateAdmin(ctx, "me@example.dev", []byte("hash"))
	require.NoError(t, err)

	_, err = s.CreateAdmin(ctx, "me@example.dev", []byte("other"))
	require.True(t, errors.Is(err, ErrConflict))

	byEmail, err := s.GetAdminByEmail(ctx, "me@example.dev")
	require.NoError(t, err)
	require.Equal(t, admin.ID, byEmail.ID)
	require.Equal(t, []byte("hash"), byEmail.HashedPassword)

	byID, err := s.GetAdminByID(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, "me@example.dev", byID.Email)

	_, err = s.GetAdminByEmail(ctx, "nobody@example.dev")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLEventStore_InsertAndListSince(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSQLEventStore(newTestDB(t), zap.NewNop())

	n := time.Now().UTC().Truncate(time.Second)
	country := "DE"
	duration := int64(42)
	events := []models.AnalyticsEvent{
		{ID: uuid.New(), VisitorID: "v1", SessionID: "s1", PagePath: "/", Country: &country, DurationSeconds: &duration, CreatedAt: n.Add(-time.Hour)},
		{ID: uuid.New(), VisitorID: "v2", SessionID: "s2", PagePath: "/projects", CreatedAt: n.Add(-72 * time.Hour)},
	}
	require.NoError(t, s.InsertEvents(ctx, events))
	require.NoError(t, s.InsertEvents(ctx, nil))

	all, err := s.ListEvents(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	recent, err := s.ListEvents(ctx, n.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "v1", recent[0].VisitorID)
	require.Equal(t, "DE", *recent[0].Country)
	require.Equal(t, int64(42), *recent[0].DurationSeconds)
	require.Nil(t, recent[0].DeviceType)
	require.True(t, recent[0].CreatedAt.Equal(n.Add(-time.Hour)))
}
