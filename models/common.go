package models

// ============================================================================
// SHARED RESPONSE SHAPES
// ============================================================================

// Paginated is the backend's standard list envelope.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ============================================================================
// AUTH MODELS
// ============================================================================

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Password1  string `json:"password1" validate:"required"`
	Password2  string `json:"password2" validate:"required"`
	Instrument string `json:"instrument" validate:"required"`
	Birthday   string `json:"birthday" validate:"required"`
}

// TokenPair is the backend's token issuance response. Registration responses
// additionally embed the created user.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// ============================================================================
// HOME / DASHBOARD MODELS
// ============================================================================

type HomeStats struct {
	TotalMusicians     int     `json:"total_musicians"`
	ActiveMusicians    int     `json:"active_musicians"`
	UpcomingEvents     int     `json:"upcoming_events"`
	TotalConcerts      int     `json:"total_concerts"`
	UserAttendanceRate float64 `json:"user_attendance_rate"`
	CurrentSeason      *string `json:"current_season"`
}

type UpcomingEvent struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Date   string    `json:"date"`
	Type   EventType `json:"type"`
	Season string    `json:"season"`
}

type RecentActivity struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"`
	Description string `json:"description,omitempty"`
}
