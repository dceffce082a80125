package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folio/api/models"
	"folio/api/query"
	"folio/api/utils"
)

type ProjectHandlers struct {
	listing
	Store ProjectStore
}

func NewProjectHandlers(s ProjectStore, l listing) *ProjectHandlers {
	return &ProjectHandlers{listing: l, Store: s}
}

// List serves GET /api/projects. A store failure degrades to an empty page.
func (h *ProjectHandlers) List(c *gin.Context) {
	var params query.Params
	// Every field is a string, so binding cannot fail; bad values are normalized below.
	_ = c.ShouldBindQuery(&params)
	d := query.ProjectDescriptor(params, h.maxPageSize)

	ctx, cancel := h.context(c)
	defer cancel()

	projects, err := h.Store.ListProjects(ctx)
	if err != nil {
		h.log.Error("failed to list projects, serving empty page", zap.Error(err))
	}

	c.JSON(http.StatusOK, newListResponse(query.Run(query.ProjectSchema, projects, d)))
}

func (h *ProjectHandlers) Get(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	p, err := h.Store.GetProjectBySlug(ctx, c.Param("slug"))
	if err != nil {
		writeStoreError(c, h.log, "Project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandlers) Create(c *gin.Context) {
	p, ok := bindProject(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	created, err := h.Store.CreateProject(ctx, p)
	if err != nil {
		writeStoreError(c, h.log, "Project", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProjectHandlers) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, ok := bindProject(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	updated, err := h.Store.UpdateProject(ctx, id, p)
	if err != nil {
		writeStoreError(c, h.log, "Project", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProjectHandlers) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.Store.DeleteProject(ctx, id); err != nil {
		writeStoreError(c, h.log, "Project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func bindProject(c *gin.Context) (models.Project, bool) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return models.Project{}, false
	}
	if req.Slug == "" {
		req.Slug = utils.Slugify(req.Name)
	} else {
		req.Slug = utils.Slugify(req.Slug)
	}
	if req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": "slug cannot be derived from name"})
		return models.Project{}, false
	}
	return req.ToProject(), true
}
