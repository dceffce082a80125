package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectCategory string

const (
	CategoryProfessional ProjectCategory = "professional"
	CategoryPersonal     ProjectCategory = "personal"
)

// Valid reports whether c is one of the known categories.
func (c ProjectCategory) Valid() bool {
	return c == CategoryProfessional || c == CategoryPersonal
}

// Project is a portfolio entry shown on the projects page.
type Project struct {
	ID            uuid.UUID       `json:"id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	URL           string          `json:"url"`
	Description   string          `json:"description"`
	TechStack     []string        `json:"tech_stack"`
	CoverImageURL string          `json:"cover_image_url"`
	GalleryImages []string        `json:"gallery_images"`
	Category      ProjectCategory `json:"category"`
	IsFeatured    bool            `json:"is_featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProjectRequest is the dashboard payload for creating or replacing a project.
type ProjectRequest struct {
	Slug          string          `json:"slug" yaml:"slug"`
	Name          string          `json:"name" yaml:"name" binding:"required"`
	URL           string          `json:"url" yaml:"url" binding:"required,url"`
	Description   string          `json:"description" yaml:"description" binding:"required"`
	TechStack     []string        `json:"tech_stack" yaml:"tech_stack"`
	CoverImageURL string          `json:"cover_image_url" yaml:"cover_image_url" binding:"omitempty,url"`
	GalleryImages []string        `json:"gallery_images" yaml:"gallery_images" binding:"omitempty,dive,url"`
	Category      ProjectCategory `json:"category" yaml:"category" binding:"required,oneof=professional personal"`
	IsFeatured    bool            `json:"is_featured" yaml:"is_featured"`
}

// ToProject copies the request fields into a Project. Identity and timestamps are left to the store.
func (r ProjectRequest) ToProject() Project {
	techStack := r.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	gallery := r.GalleryImages
	if gallery == nil {
		gallery = []string{}
	}
	return Project{
		Slug:          r.Slug,
		Name:          r.Name,
		URL:           r.URL,
		Description:   r.Description,
		TechStack:     techStack,
		CoverImageURL: r.CoverImageURL,
		GalleryImages: gallery,
		Category:      r.Category,
		IsFeatured:    r.IsFeatured,
	}
}
