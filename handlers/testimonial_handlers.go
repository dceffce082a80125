package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folio/api/models"
	"folio/api/query"
	"folio/api/utils"
)

type TestimonialHandlers struct {
	listing
	Store TestimonialStore
}

func NewTestimonialHandlers(s TestimonialStore, l listing) *TestimonialHandlers {
	return &TestimonialHandlers{listing: l, Store: s}
}

// List serves GET /api/testimonials. A store failure degrades to an empty page.
func (h *TestimonialHandlers) List(c *gin.Context) {
	var params query.Params
	// Every field is a string, so binding cannot fail; bad values are normalized below.
	_ = c.ShouldBindQuery(&params)
	d := query.TestimonialDescriptor(params, h.maxPageSize)

	ctx, cancel := h.context(c)
	defer cancel()

	testimonials, err := h.Store.ListTestimonials(ctx)
	if err != nil {
		h.log.Error("failed to list testimonials, serving empty page", zap.Error(err))
	}

	c.JSON(http.StatusOK, newListResponse(query.Run(query.TestimonialSchema, testimonials, d)))
}

func (h *TestimonialHandlers) Create(c *gin.Context) {
	t, ok := bindTestimonial(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	created, err := h.Store.CreateTestimonial(ctx, t)
	if err != nil {
		writeStoreError(c, h.log, "Testimonial", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TestimonialHandlers) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, ok := bindTestimonial(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	updated, err := h.Store.UpdateTestimonial(ctx, id, t)
	if err != nil {
		writeStoreError(c, h.log, "Testimonial", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TestimonialHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.Store.DeleteTestimonial(ctx, id); err != nil {
		writeStoreError(c, h.log, "Testimonial", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted"})
}

func bindTestimonial(c *gin.Context) (models.Testimonial, bool) {
	var req models.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return models.Testimonial{}, false
	}
	if req.Slug == "" {
		req.Slug = utils.Slugify(req.Name)
	} else {
		req.Slug = utils.Slugify(req.Slug)
	}
	if req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": "slug cannot be derived from name"})
		return models.Testimonial{}, false
	}
	return req.ToTestimonial(), true
}
