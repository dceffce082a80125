package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"folio/api/models"
	"folio/api/query"
	"folio/api/store"
)

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, p models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type TestimonialStore interface {
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id uuid.UUID, t models.Testimonial) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error
}

type EventStore interface {
	InsertEvents(ctx context.Context, events []models.AnalyticsEvent) error
	ListEvents(ctx context.Context, since time.Time) ([]models.AnalyticsEvent, error)
}

type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// listResponse is the envelope of the paginated list endpoints.
type listResponse[T any] struct {
	Data       []T              `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

func newListResponse[T any](res query.Result[T]) listResponse[T] {
	return listResponse[T]{Data: res.Items, Pagination: res.Pagination}
}

// listing carries what every list handler needs.
type listing struct {
	log         *zap.Logger
	maxPageSize int
	timeout     time.Duration
}

func (l listing) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), l.timeout)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

// writeStoreError maps store sentinels onto status codes.
func writeStoreError(c *gin.Context, log *zap.Logger, what string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": what + " with this slug already exists"})
	default:
		log.Error("store error", zap.String("entity", what), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + what})
	}
}
