package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Company   *string   `json:"company,omitempty"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyName returns the company or "" when it is not set.
func (t Testimonial) CompanyName() string {
	if t.Company == nil {
		return ""
	}
	return *t.Company
}

type TestimonialRequest struct {
	Slug      string  `json:"slug" yaml:"slug"`
	Name      string  `json:"name" yaml:"name" binding:"required"`
	Role      string  `json:"role" yaml:"role" binding:"required"`
	Company   *string `json:"company" yaml:"company"`
	Content   string  `json:"content" yaml:"content" binding:"required"`
	Rating    int     `json:"rating" yaml:"rating" binding:"required,min=1,max=5"`
	Published bool    `json:"published" yaml:"published"`
}

func (r TestimonialRequest) ToTestimonial() Testimonial {
	company := r.Company
	if company != nil && *company == "" {
		company = nil
	}
	return Testimonial{
		Slug:      r.Slug,
		Name:      r.Name,
		Role:      r.Role,
		Company:   company,
		Content:   r.Content,
		Rating:    r.Rating,
		Published: r.Published,
	}
}
