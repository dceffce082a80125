package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"folio/api/models"
	"folio/api/query"
)

const (
	// maxTrackBatch bounds how many events one POST may carry.
	maxTrackBatch = 100
	maxTrackBody  = 256 << 10
)

type AnalyticsHandlers struct {
	listing
	Store EventStore
	now   func() time.Time
}

func NewAnalyticsHandlers(s EventStore, l listing, now func() time.Time) *AnalyticsHandlers {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsHandlers{listing: l, Store: s, now: now}
}

// TrackEvent records one event object or an array of them.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxTrackBody)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var reqs []models.TrackRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		err = binding.JSON.BindBody(trimmed, &reqs)
	} else {
		var one models.TrackRequest
		err = binding.JSON.BindBody(trimmed, &one)
		reqs = append(reqs, one)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusOK, gin.H{"recorded": 0})
		return
	}
	if len(reqs) > maxTrackBatch {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Too many events in one request"})
		return
	}

	recordedAt := h.now()
	events := make([]models.AnalyticsEvent, 0, len(reqs))
	for _, r := range reqs {
		events = append(events, r.ToEvent(recordedAt))
	}

	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.Store.InsertEvents(ctx, events); err != nil {
		h.log.Error("failed to record analytics events", zap.Int("count", len(events)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record analytics events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": len(events)})
}

// GetAnalytics serves the dashboard analytics table. The range cutoff is
// passed to the store to bound the rows fetched; a store failure degrades to
// an empty result with a zeroed summary.
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	var params query.Params
	// Every field is a string, so binding cannot fail; bad values are normalized below.
	_ = c.ShouldBindQuery(&params)
	d := query.AnalyticsDescriptorFrom(params, h.maxPageSize, h.now().UTC())

	since, _ := d.Range.Cutoff(d.Now)

	ctx, cancel := h.context(c)
	defer cancel()

	events, err := h.Store.ListEvents(ctx, since)
	if err != nil {
		h.log.Error("failed to load analytics events, serving empty result", zap.String("range", string(d.Range)), zap.Error(err))
		c.JSON(http.StatusOK, query.EmptyAnalytics(d.Page))
		return
	}

	c.JSON(http.StatusOK, query.RunAnalytics(events, d))
}
