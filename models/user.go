package models

// ============================================================================
// USER MODELS
// ============================================================================

type MusicianProfile struct {
	ID         int     `json:"id"`
	Instrument string  `json:"instrument"`
	Birthday   *string `json:"birthday"`
	Photo      *string `json:"photo"`
	Active     bool    `json:"active"`
}

type User struct {
	ID              int              `json:"id"`
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	MusicianProfile *MusicianProfile `json:"musician_profile,omitempty"`
}

// UserProfile is the full profile of the signed-in user, including the
// permission groups and permission strings the backend resolved for them.
type UserProfile struct {
	User
	DateJoined      string   `json:"date_joined"`
	Groups          []string `json:"groups"`
	UserPermissions []string `json:"user_permissions"`
}

// UserPermissions is the flat permission set of the current user. All
// authorization decisions are made server-side; the client only does
// membership checks against these lists.
type UserPermissions struct {
	Groups      []string `json:"groups"`
	Permissions []string `json:"permissions"`
}

// ============================================================================
// ACCOUNT ACTIVATION
// ============================================================================

// ActivationUser is the minimal account summary shown on the activation
// confirmation step.
type ActivationUser struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DateJoined string `json:"date_joined"`
}

// ActivationInfo describes a pending activation token: who the account
// belongs to and the confirmation prompt.
type ActivationInfo struct {
	Success bool           `json:"success"`
	Action  string         `json:"action"`
	User    ActivationUser `json:"user"`
	Message string         `json:"message"`
}

// ActivationResult is the outcome of performing an activation.
type ActivationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PhotoUploadResponse carries the refreshed user after a profile photo
// upload.
type PhotoUploadResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// ============================================================================
// PROFILE REQUESTS
// ============================================================================

type ProfileMusicianUpdate struct {
	Instrument string  `json:"instrument" validate:"required"`
	Birthday   *string `json:"birthday"`
}

type ProfileUpdateRequest struct {
	FirstName       string                `json:"first_name" validate:"required"`
	LastName        string                `json:"last_name" validate:"required"`
	Email           string                `json:"email" validate:"required"`
	MusicianProfile ProfileMusicianUpdate `json:"musician_profile"`
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password" validate:"required"`
	NewPassword1 string `json:"new_password1" validate:"required"`
	NewPassword2 string `json:"new_password2" validate:"required"`
}

// InstrumentChoice is a fixed form option for the instrument picker.
type InstrumentChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
