package query

import (
	"strings"
	"time"

	"folio/api/models"
)

var ProjectSchema = Schema[models.Project]{
	Searchable: func(p models.Project) []string {
		return append([]string{p.Name, p.Description}, p.TechStack...)
	},
	CreatedAt: func(p models.Project) time.Time { return p.CreatedAt },
	ID:        func(p models.Project) string { return p.ID.String() },
	Keys: map[string]Key[models.Project]{
		"name":        {String: func(p models.Project) string { return p.Name }},
		"category":    {String: func(p models.Project) string { return string(p.Category) }},
		"created_at":  {Time: func(p models.Project) time.Time { return p.CreatedAt }},
		"updated_at":  {Time: func(p models.Project) time.Time { return p.UpdatedAt }},
		"is_featured": {Bool: func(p models.Project) bool { return p.IsFeatured }},
	},
}

var TestimonialSchema = Schema[models.Testimonial]{
	Searchable: func(t models.Testimonial) []string {
		return []string{t.Name, t.Role, t.CompanyName(), t.Content}
	},
	CreatedAt: func(t models.Testimonial) time.Time { return t.CreatedAt },
	ID:        func(t models.Testimonial) string { return t.ID.String() },
	Keys: map[string]Key[models.Testimonial]{
		"name":       {String: func(t models.Testimonial) string { return t.Name }},
		"company":    {String: func(t models.Testimonial) string { return t.CompanyName() }},
		"created_at": {Time: func(t models.Testimonial) time.Time { return t.CreatedAt }},
		"updated_at": {Time: func(t models.Testimonial) time.Time { return t.UpdatedAt }},
		"rating":     {Number: func(t models.Testimonial) float64 { return float64(t.Rating) }},
		"published":  {Bool: func(t models.Testimonial) bool { return t.Published }},
	},
}

// ProjectDescriptor normalizes the raw parameters of GET /api/projects.
func ProjectDescriptor(p Params, maxPageSize int) Descriptor[models.Project] {
	var filters []Predicate[models.Project]

	if category := models.ProjectCategory(strings.ToLower(strings.TrimSpace(p.Category))); !isAll(p.Category) && category.Valid() {
		filters = append(filters, func(pr models.Project) bool { return pr.Category == category })
	}
	if featured, ok := ParseBool(p.Featured); ok {
		filters = append(filters, func(pr models.Project) bool { return pr.IsFeatured == featured })
	}

	return Descriptor[models.Project]{
		Filters:   filters,
		Search:    p.Search,
		SortBy:    strings.TrimSpace(p.SortBy),
		SortOrder: ParseDirection(p.SortOrder),
		Page:      ParsePage(p.Page),
		PageSize:  ParsePageSize(p.Limit, maxPageSize),
	}
}

// TestimonialDescriptor normalizes the raw parameters of GET /api/testimonials.
func TestimonialDescriptor(p Params, maxPageSize int) Descriptor[models.Testimonial] {
	var filters []Predicate[models.Testimonial]

	if published, ok := ParseBool(p.Published); ok {
		filters = append(filters, func(t models.Testimonial) bool { return t.Published == published })
	}
	if rating, ok := ParseRating(p.Rating); ok {
		filters = append(filters, func(t models.Testimonial) bool { return t.Rating == rating })
	}

	return Descriptor[models.Testimonial]{
		Filters:   filters,
		Search:    p.Search,
		SortBy:    strings.TrimSpace(p.SortBy),
		SortOrder: ParseDirection(p.SortOrder),
		Page:      ParsePage(p.Page),
		PageSize:  ParsePageSize(p.Limit, maxPageSize),
	}
}
