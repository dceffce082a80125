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

type ProjectStore struct {
	db  *database.DBClient
	log *zap.Logger
}

func NewProjectStore(db *database.DBClient, log *zap.Logger) *ProjectStore {
	return &ProjectStore{db: db, log: log}
}

const projectColumns = `id, slug, name, url, description, tech_stack, cover_image_url, gallery_images, category, is_featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p                  models.Project
		techStack, gallery []byte
		category           string
	)
	if err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.URL,
		&p.Description,
		&techStack,
		&p.CoverImageURL,
		&gallery,
		&category,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if p.TechStack, err = decodeList(techStack); err != nil {
		return nil, err
	}
	if p.GalleryImages, err = decodeList(gallery); err != nil {
		return nil, err
	}
	p.Category = models.ProjectCategory(category)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// ListProjects returns every project in no particular order. Filtering and
// ordering happen in the query engine.
func (s *ProjectStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.DB.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during projects query: %w", err)
	}
	return projects, nil
}

func (s *ProjectStore) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	row := s.db.DB.QueryRowContext(ctx, s.db.Rebind(`SELECT `+projectColumns+` FROM projects WHERE slug = ?`), slug)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by slug: %w", err)
	}
	return p, nil
}

// CreateProject inserts p with a fresh id and timestamps.
func (s *ProjectStore) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	p.ID = uuid.New()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	techStack, err := encodeList(p.TechStack)
	if err != nil {
		return nil, err
	}
	gallery, err := encodeList(p.GalleryImages)
	if err != nil {
		return nil, err
	}

	_, err = s.db.DB.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		p.ID, p.Slug, p.Name, p.URL, p.Description, techStack, p.CoverImageURL,
		gallery, string(p.Category), p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("project slug %q: %w", p.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.GalleryImages == nil {
		p.GalleryImages = []string{}
	}
	s.log.Info("project created", zap.String("id", p.ID.String()), zap.String("slug", p.Slug))
	return &p, nil
}

// UpdateProject replaces every editable field of the project with id.
func (s *ProjectStore) UpdateProject(ctx context.Context, id uuid.UUID, p models.Project) (*models.Project, error) {
	techStack, err := encodeList(p.TechStack)
	if err != nil {
		return nil, err
	}
	gallery, err := encodeList(p.GalleryImages)
	if err != nil {
		return nil, err
	}

	res, err := s.db.DB.ExecContext(ctx, s.db.Rebind(`
		UPDATE projects
		SET slug = ?, name = ?, url = ?, description = ?, tech_stack = ?, cover_image_url = ?,
			gallery_images = ?, category = ?, is_featured = ?, updated_at = ?
		WHERE id = ?
	`),
		p.Slug, p.Name, p.URL, p.Description, techStack, p.CoverImageURL,
		gallery, string(p.Category), p.IsFeatured, now(), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("project slug %q: %w", p.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	s.log.Info("project updated", zap.String("id", id.String()))
	return s.GetProjectBySlug(ctx, p.Slug)
}

func (s *ProjectStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.DB.ExecContext(ctx, s.db.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	s.log.Info("project deleted", zap.String("id", id.String()))
	return nil
}
