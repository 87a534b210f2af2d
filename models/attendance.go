package models

import (
	"fmt"
	"math"
)

// ============================================================================
// EVENT MODELS
// ============================================================================

// EventType is the closed set of event kinds attendance is recorded against.
type EventType string

const (
	EventConcert    EventType = "concert"
	EventRehearsal  EventType = "rehearsal"
	EventSoundcheck EventType = "soundcheck"
)

type EventAttendanceStats struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Half           int     `json:"half"`
	Full           int     `json:"full"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type Event struct {
	ID              int                  `json:"id"`
	Name            string               `json:"name"`
	Date            string               `json:"date"`
	Type            EventType            `json:"type"`
	Season          int                  `json:"season"`
	SeasonName      string               `json:"season_name,omitempty"`
	AttendanceCount int                  `json:"attendance_count"`
	PresentCount    int                  `json:"present_count"`
	AttendanceStats EventAttendanceStats `json:"attendance_stats"`
	CreatedAt       string               `json:"created_at"`
}

type EventDetail struct {
	Event
	CreatedBy *User  `json:"created_by,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// ============================================================================
// ATTENDANCE MODELS
// ============================================================================

// Presence values. Exactly absent, half or full; anything else from the
// backend is rejected at the store boundary.
const (
	PresentAbsent = 0
	PresentHalf   = 0.5
	PresentFull   = 1
)

type Attendance struct {
	ID        int     `json:"id"`
	User      User    `json:"user"`
	Event     Event   `json:"event"`
	Present   float64 `json:"present"`
	IsPresent bool    `json:"is_present"`
	IsHalf    bool    `json:"is_half"`
	IsFull    bool    `json:"is_full"`
	IsAbsent  bool    `json:"is_absent"`
	MarkedBy  *User   `json:"marked_by,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// GridCell is one user/event intersection of the attendance grid.
type GridCell struct {
	EventID      int     `json:"event_id"`
	Present      float64 `json:"present"`
	AttendanceID *int    `json:"attendance_id,omitempty"`
}

type GridUserRow struct {
	User            User            `json:"user"`
	MusicianProfile MusicianProfile `json:"musician_profile"`
	Attendances     []GridCell      `json:"attendances"`
}

type GridSection struct {
	SectionName string        `json:"section_name"`
	UserRows    []GridUserRow `json:"user_rows"`
}

// AttendanceGrid is served by the backend already grouped by instrument
// section; the client renders it as-is.
type AttendanceGrid struct {
	Season         Season        `json:"season"`
	Events         []Event       `json:"events"`
	AttendanceGrid []GridSection `json:"attendance_grid"`
}

// ============================================================================
// EVENT / ATTENDANCE REQUESTS
// ============================================================================

type EventCreateRequest struct {
	Name   string    `json:"name" validate:"required"`
	Date   string    `json:"date" validate:"required"`
	Type   EventType `json:"type" validate:"required"`
	Season int       `json:"season" validate:"required"`
}

type EventUpdateRequest struct {
	Name *string    `json:"name,omitempty"`
	Date *string    `json:"date,omitempty"`
	Type *EventType `json:"type,omitempty"`
}

// AttendanceMarkRow carries one user's presence for a bulk mark call. The
// backend expects both fields as strings.
type AttendanceMarkRow struct {
	UserID  string `json:"user_id" validate:"required"`
	Present string `json:"present" validate:"required"`
}

type AttendanceMarkRequest struct {
	Attendances []AttendanceMarkRow `json:"attendances" validate:"required,min=1"`
}

type AttendanceMarkResponse struct {
	Detail  string `json:"detail"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}

// ============================================================================
// PRESENCE HELPERS
// ============================================================================

// ValidPresent reports whether v is one of the three allowed presence values.
func ValidPresent(v float64) bool {
	return v == PresentAbsent || v == PresentHalf || v == PresentFull
}

// CheckPresent rejects presence values outside the allowed set.
func CheckPresent(v float64) error {
	if !ValidPresent(v) {
		return fmt.Errorf("invalid presence value %v, want 0, 0.5 or 1", v)
	}
	return nil
}

// AttendanceRate computes the percentage of presence over a set of records,
// rounded to the nearest integer. An empty set rates as 0.
func AttendanceRate(present []float64) int {
	if len(present) == 0 {
		return 0
	}
	var sum float64
	for _, v := range present {
		sum += v
	}
	return int(math.Round(100 * sum / float64(len(present))))
}
