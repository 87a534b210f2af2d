package models

// ============================================================================
// SEASON MODELS
// ============================================================================

type Season struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	IsActive       bool   `json:"is_active"`
	IsCurrent      bool   `json:"is_current"`
	EventsCount    int    `json:"events_count"`
	MusiciansCount int    `json:"musicians_count"`
	CreatedAt      string `json:"created_at"`
}

type SeasonAttendanceStats struct {
	TotalEvents        int     `json:"total_events"`
	TotalAttendances   int     `json:"total_attendances"`
	PresentAttendances int     `json:"present_attendances"`
	AttendanceRate     float64 `json:"attendance_rate"`
}

// SeasonMusician links a user to a season membership with their instrument.
type SeasonMusician struct {
	ID           int     `json:"id"`
	User         User    `json:"user"`
	Instrument   string  `json:"instrument"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
	Active       bool    `json:"active"`
}

type SeasonDetail struct {
	Season
	AttendanceStats SeasonAttendanceStats `json:"attendance_stats"`
	Musicians       []SeasonMusician      `json:"musicians"`
	UpdatedAt       string                `json:"updated_at"`
}

// SeasonSection groups a season's musicians by instrument section, the shape
// the backend serves for the musicians listing.
type SeasonSection struct {
	SectionName string           `json:"section_name"`
	Musicians   []SeasonMusician `json:"musicians"`
}

type SeasonMusiciansResponse struct {
	Sections []SeasonSection `json:"sections"`
}

type AvailableMusician struct {
	ID           int     `json:"id"`
	UserID       int     `json:"user_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Instrument   *string `json:"instrument"`
	ProfilePhoto *string `json:"profile_photo"`
}

// ============================================================================
// SEASON REQUESTS
// ============================================================================

type SeasonCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	IsActive    *bool  `json:"is_active,omitempty"`
	MusicianIDs []int  `json:"musician_ids,omitempty"`
}

// SeasonUpdateRequest is a partial update; nil fields are omitted from the
// PATCH body.
type SeasonUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type SetCurrentSeasonResponse struct {
	Detail string       `json:"detail"`
	Season SeasonDetail `json:"season"`
}

type SeasonMembershipResponse struct {
	Detail         string `json:"detail"`
	AddedCount     int    `json:"added_count,omitempty"`
	RemovedCount   int    `json:"removed_count,omitempty"`
	TotalMusicians int    `json:"total_musicians"`
}
