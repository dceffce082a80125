package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"folio/api/database"
	"folio/api/models"
)

type TestimonialStore struct {
	db  *database.DBClient
	log *zap.Logger
}

func NewTestimonialStore(db *database.DBClient, log *zap.Logger) *TestimonialStore {
	return &TestimonialStore{db: db, log: log}
}

const testimonialColumns = `id, slug, name, role, company, content, rating, published, created_at, updated_at`

func scanTestimonial(row rowScanner) (*models.Testimonial, error) {
	var (
		t       models.Testimonial
		company sql.NullString
	)
	if err := row.Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&t.Role,
		&company,
		&t.Content,
		&t.Rating,
		&t.Published,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Company = stringPtr(company)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

func (s *TestimonialStore) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := s.db.DB.QueryContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials`)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during testimonials query: %w", err)
	}
	return testimonials, nil
}

func (s *TestimonialStore) GetTestimonial(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	row := s.db.DB.QueryRowContext(ctx, s.db.Rebind(`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`), id)
	t, err := scanTestimonial(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("testimonial %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}
	return t, nil
}

func (s *TestimonialStore) CreateTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error) {
	t.ID = uuid.New()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt

	_, err := s.db.DB.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO testimonials (`+testimonialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		t.ID, t.Slug, t.Name, t.Role, nullString(t.Company), t.Content,
		t.Rating, t.Published, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("testimonial slug %q: %w", t.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}

	s.log.Info("testimonial created", zap.String("id", t.ID.String()), zap.String("slug", t.Slug))
	return &t, nil
}

func (s *TestimonialStore) UpdateTestimonial(ctx context.Context, id uuid.UUID, t models.Testimonial) (*models.Testimonial, error) {
	res, err := s.db.DB.ExecContext(ctx, s.db.Rebind(`
		UPDATE testimonials
		SET slug = ?, name = ?, role = ?, company = ?, content = ?, rating = ?, published = ?, updated_at = ?
		WHERE id = ?
	`),
		t.Slug, t.Name, t.Role, nullString(t.Company), t.Content, t.Rating, t.Published, now(), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("testimonial slug %q: %w", t.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("testimonial %s: %w", id, ErrNotFound)
	}

	s.log.Info("testimonial updated", zap.String("id", id.String()))
	return s.GetTestimonial(ctx, id)
}

func (s *TestimonialStore) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.DB.ExecContext(ctx, s.db.Rebind(`DELETE FROM testimonials WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("testimonial %s: %w", id, ErrNotFound)
	}
	s.log.Info("testimonial deleted", zap.String("id", id.String()))
	return nil
}
