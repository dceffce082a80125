package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"folio/api/models"
	"folio/api/store"
)

type fakeProjects struct {
	mu    sync.Mutex
	items []models.Project
	err   error
}

func (f *fakeProjects) ListProjects(context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Project(nil), f.items...), nil
}

func (f *fakeProjects) GetProjectBySlug(_ context.Context, slug string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", slug, store.ErrNotFound)
}

func (f *fakeProjects) CreateProject(_ context.Context, p models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Slug == p.Slug {
			return nil, store.ErrConflict
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakeProjects) UpdateProject(_ context.Context, id uuid.UUID, p models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			p.ID = id
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = time.Now().UTC()
			f.items[i] = p
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProjects) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeTestimonials struct {
	mu    sync.Mutex
	items []models.Testimonial
	err   error
}

func (f *fakeTestimonials) ListTestimonials(context.Context) ([]models.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Testimonial(nil), f.items...), nil
}

func (f *fakeTestimonials) CreateTestimonial(_ context.Context, t models.Testimonial) (*models.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	f.items = append(f.items, t)
	return &t, nil
}

func (f *fakeTestimonials) UpdateTestimonial(_ context.Context, id uuid.UUID, t models.Testimonial) (*models.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			t.ID = id
			t.CreatedAt = existing.CreatedAt
			f.items[i] = t
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeTestimonials) DeleteTestimonial(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeEvents struct {
	mu        sync.Mutex
	items     []models.AnalyticsEvent
	err       error
	lastSince time.Time
}

func (f *fakeEvents) InsertEvents(_ context.Context, events []models.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, events...)
	return nil
}

func (f *fakeEvents) ListEvents(_ context.Context, since time.Time) ([]models.AnalyticsEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSince = since
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.AnalyticsEvent(nil), f.items...), nil
}

type fakeAdmins struct {
	admins []models.Admin
	err    error
}

func (f *fakeAdmins) GetAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAdmins) GetAdminByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.admins {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}
