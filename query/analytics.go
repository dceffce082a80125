package query

import (
	"sort"
	"strings"
	"time"

	"folio/api/models"
)

type Range string

const (
	Range24h Range = "24h"
	Range7d  Range = "7d"
	Range30d Range = "30d"
	RangeAll Range = "all"
)

// ParseRange defaults to Range7d.
func ParseRange(raw string) Range {
	switch r := Range(strings.ToLower(strings.TrimSpace(raw))); r {
	case Range24h, Range7d, Range30d, RangeAll:
		return r
	}
	return Range7d
}

// Cutoff returns the oldest instant inside the range. ok is false for RangeAll.
func (r Range) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch r {
	case Range24h:
		return now.Add(-24 * time.Hour), true
	case Range7d:
		return now.AddDate(0, 0, -7), true
	case Range30d:
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

type View string

const (
	ViewCountries View = "countries"
	ViewPages     View = "pages"
	ViewDevices   View = "devices"
	ViewSections  View = "sections"
)

// ParseView defaults to ViewPages.
func ParseView(raw string) View {
	switch v := View(strings.ToLower(strings.TrimSpace(raw))); v {
	case ViewCountries, ViewPages, ViewDevices, ViewSections:
		return v
	}
	return ViewPages
}

const unknownLabel = "Unknown"

var GroupSchema = Schema[models.GroupRow]{
	Searchable: func(r models.GroupRow) []string { return []string{r.Label} },
	Keys: map[string]Key[models.GroupRow]{
		"count": {Number: func(r models.GroupRow) float64 { return float64(r.Count) }},
		"label": {String: func(r models.GroupRow) string { return r.Label }},
	},
}

type AnalyticsDescriptor struct {
	Range     Range
	View      View
	Search    string
	SortBy    string
	SortOrder Direction
	Page      int
	PageSize  int
	Now       time.Time
}

// AnalyticsDescriptorFrom normalizes the raw parameters of GET /api/analytics.
func AnalyticsDescriptorFrom(p Params, maxPageSize int, now time.Time) AnalyticsDescriptor {
	sortBy := strings.TrimSpace(p.SortBy)
	order := ParseDirection(p.SortOrder)
	if _, ok := GroupSchema.Keys[sortBy]; !ok {
		sortBy, order = "count", Desc
	}
	return AnalyticsDescriptor{
		Range:     ParseRange(p.Range),
		View:      ParseView(p.View),
		Search:    p.Search,
		SortBy:    sortBy,
		SortOrder: order,
		Page:      ParsePage(p.Page),
		PageSize:  ParsePageSize(p.Limit, maxPageSize),
		Now:       now,
	}
}

// AnalyticsResult is the analytics envelope.
type AnalyticsResult struct {
	Items      []models.GroupRow       `json:"items"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"totalPages"`
	Summary    models.AnalyticsSummary `json:"summary"`
}

// EmptyAnalytics is the degraded answer used when events cannot be loaded.
func EmptyAnalytics(page int) AnalyticsResult {
	if page <= 0 {
		page = DefaultPage
	}
	return AnalyticsResult{Items: []models.GroupRow{}, Page: page}
}

// RunAnalytics filters events by range, summarizes them, groups them by the
// requested view and pages through the groups.
func RunAnalytics(events []models.AnalyticsEvent, d AnalyticsDescriptor) AnalyticsResult {
	var filters []Predicate[models.AnalyticsEvent]
	if cutoff, ok := d.Range.Cutoff(d.Now); ok {
		filters = append(filters, func(e models.AnalyticsEvent) bool { return !e.CreatedAt.Before(cutoff) })
	}
	inRange := Filter(Schema[models.AnalyticsEvent]{}, events, filters, "")

	rows := Group(inRange, d.View)
	rows = Filter(GroupSchema, rows, nil, d.Search)
	Sort(GroupSchema, rows, d.SortBy, d.SortOrder)
	page := Paginate(rows, d.Page, d.PageSize)

	return AnalyticsResult{
		Items:      page.Items,
		Total:      page.Pagination.TotalItems,
		Page:       page.Pagination.CurrentPage,
		TotalPages: page.Pagination.TotalPages,
		Summary:    Summarize(inRange),
	}
}

// Summarize computes the view totals. avgDuration truncates toward zero;
// events without a duration count as zero seconds. Durations above
// models.MaxDurationSeconds count as the cap so the sum cannot overflow.
func Summarize(events []models.AnalyticsEvent) models.AnalyticsSummary {
	if len(events) == 0 {
		return models.AnalyticsSummary{}
	}
	visitors := make(map[string]struct{}, len(events))
	var total int64
	for _, e := range events {
		visitors[e.VisitorID] = struct{}{}
		if e.DurationSeconds != nil && *e.DurationSeconds > 0 {
			total += min(*e.DurationSeconds, models.MaxDurationSeconds)
		}
	}
	return models.AnalyticsSummary{
		TotalViews:     len(events),
		UniqueVisitors: len(visitors),
		AvgDuration:    int(total / int64(len(events))),
	}
}

// Group emits one row per distinct value of the view dimension, ordered by
// label so that later stable sorts are deterministic.
func Group(events []models.AnalyticsEvent, view View) []models.GroupRow {
	counts := make(map[string]int)
	for _, e := range events {
		label, ok := dimension(e, view)
		if !ok {
			continue
		}
		counts[label]++
	}

	rows := make([]models.GroupRow, 0, len(counts))
	for label, n := range counts {
		rows = append(rows, models.GroupRow{Label: label, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func dimension(e models.AnalyticsEvent, view View) (string, bool) {
	switch view {
	case ViewCountries:
		return orUnknown(e.Country), true
	case ViewDevices:
		return orUnknown(e.DeviceType), true
	case ViewSections:
		if e.Section == nil || *e.Section == "" {
			return "", false
		}
		if e.Interaction == nil || *e.Interaction == "" {
			return *e.Section, true
		}
		return *e.Section + " - " + *e.Interaction, true
	}
	if e.PagePath == "" {
		return unknownLabel, true
	}
	return e.PagePath, true
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return unknownLabel
	}
	return *s
}
