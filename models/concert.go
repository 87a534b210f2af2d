package models

// ============================================================================
// CONCERT MODELS
// ============================================================================

// ConcertStatus is the closed set of concert lifecycle states.
type ConcertStatus string

const (
	ConcertPlanned   ConcertStatus = "planned"
	ConcertConfirmed ConcertStatus = "confirmed"
	ConcertCompleted ConcertStatus = "completed"
	ConcertCancelled ConcertStatus = "cancelled"
)

type Concert struct {
	ID                int           `json:"id"`
	Name              string        `json:"name"`
	Date              string        `json:"date"`
	Location          string        `json:"location,omitempty"`
	Description       string        `json:"description,omitempty"`
	Setlist           string        `json:"setlist,omitempty"`
	Status            ConcertStatus `json:"status"`
	ParticipantsCount int           `json:"participants_count"`
	IsRegistered      bool          `json:"is_registered"`
	CanEdit           bool          `json:"can_edit"`
	CanDelete         bool          `json:"can_delete"`
	CreatedBy         User          `json:"created_by"`
	DateCreated       string        `json:"date_created"`
	DateModified      string        `json:"date_modified"`
}

// ConcertParticipant is one registered musician with their instrument.
type ConcertParticipant struct {
	ID           int     `json:"id"`
	User         User    `json:"user"`
	Instrument   string  `json:"instrument"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
}

type ConcertDetail struct {
	Concert
	Participants []ConcertParticipant `json:"participants"`
}

type ConcertParticipantsResponse struct {
	Participants []ConcertParticipant `json:"participants"`
	Count        int                  `json:"count"`
}

// ConcertRegistrationResponse is the outcome of a register/unregister call;
// the returned counts replace the cached ones.
type ConcertRegistrationResponse struct {
	Message           string `json:"message"`
	ParticipantsCount int    `json:"participants_count"`
	IsRegistered      bool   `json:"is_registered"`
}

// ConcertPermissions is the backend's resolved concert capability set for
// the current user.
type ConcertPermissions struct {
	CanCreate bool `json:"can_create"`
}

// ============================================================================
// CONCERT REQUESTS
// ============================================================================

type ConcertCreateRequest struct {
	Name        string        `json:"name" validate:"required"`
	Date        string        `json:"date" validate:"required"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
	Setlist     string        `json:"setlist,omitempty"`
	Status      ConcertStatus `json:"status,omitempty"`
}

// ConcertUpdateRequest is a partial update; nil fields are omitted from the
// PATCH body.
type ConcertUpdateRequest struct {
	Name        *string        `json:"name,omitempty"`
	Date        *string        `json:"date,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Description *string        `json:"description,omitempty"`
	Setlist     *string        `json:"setlist,omitempty"`
	Status      *ConcertStatus `json:"status,omitempty"`
}
