package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent represents a single page view or section interaction.
type AnalyticsEvent struct {
	ID              uuid.UUID `json:"id"`
	VisitorID       string    `json:"visitor_id"`
	SessionID       string    `json:"session_id"`
	PagePath        string    `json:"page_path"`
	Country         *string   `json:"country,omitempty"`
	DeviceType      *string   `json:"device_type,omitempty"`
	DurationSeconds *int64    `json:"duration_seconds,omitempty"`
	Section         *string   `json:"section,omitempty"`
	Interaction     *string   `json:"interaction,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// MaxDurationSeconds caps one recorded view at a day.
const MaxDurationSeconds = 24 * 60 * 60

// TrackRequest is the payload the site sends for one event.
type TrackRequest struct {
	VisitorID       string  `json:"visitor_id" binding:"required"`
	SessionID       string  `json:"session_id" binding:"required"`
	PagePath        string  `json:"page_path" binding:"required"`
	Country         *string `json:"country"`
	DeviceType      *string `json:"device_type"`
	DurationSeconds *int64  `json:"duration_seconds" binding:"omitempty,min=0,max=86400"`
	Section         *string `json:"section"`
	Interaction     *string `json:"interaction"`
}

func (r TrackRequest) ToEvent(now time.Time) AnalyticsEvent {
	return AnalyticsEvent{
		ID:              uuid.New(),
		VisitorID:       r.VisitorID,
		SessionID:       r.SessionID,
		PagePath:        r.PagePath,
		Country:         nonEmpty(r.Country),
		DeviceType:      nonEmpty(r.DeviceType),
		DurationSeconds: r.DurationSeconds,
		Section:         nonEmpty(r.Section),
		Interaction:     nonEmpty(r.Interaction),
		CreatedAt:       now.UTC(),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// GroupRow is one synthetic aggregation row of the analytics view.
type GroupRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	TotalViews     int `json:"totalViews"`
	UniqueVisitors int `json:"uniqueVisitors"`
	AvgDuration    int `json:"avgDuration"`
}
