package stores

import (
	"context"
	"io"
	"sync"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

// UserStore caches the signed-in user's profile and the musician roster.
type UserStore struct {
	service *services.UserService

	mu        sync.Mutex
	profile   *models.UserProfile
	musicians []models.UserProfile
	loading   bool
	err       string

	profileGen   uint64
	musiciansGen uint64
}

func NewUserStore(service *services.UserService) *UserStore {
	return &UserStore{service: service}
}

func (s *UserStore) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	profile := *s.profile
	return &profile
}

func (s *UserStore) Musicians() []models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserProfile, len(s.musicians))
	copy(out, s.musicians)
	return out
}

func (s *UserStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *UserStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *UserStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *UserStore) FetchProfile(ctx context.Context) {
	s.mu.Lock()
	s.profileGen++
	gen := s.profileGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	profile, err := s.service.Profile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.profileGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania profilu")
		return
	}
	s.profile = &profile
}

func (s *UserStore) UpdateProfile(ctx context.Context, data models.ProfileUpdateRequest) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	profile, err := s.service.UpdateProfile(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas aktualizacji profilu", []fieldLabel{
			{"email", "Email"},
			{"first_name", "Imię"},
			{"last_name", "Nazwisko"},
		})
		return false
	}
	s.profile = &profile
	return true
}

func (s *UserStore) ChangePassword(ctx context.Context, data models.ChangePasswordRequest) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.service.ChangePassword(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas zmiany hasła", []fieldLabel{
			{"old_password", "Stare hasło"},
			{"new_password1", "Nowe hasło"},
			{"new_password2", "Powtórz hasło"},
		})
		return false
	}
	return true
}

// UploadPhoto replaces the profile photo and refreshes the cached profile's
// user from the server's response.
func (s *UserStore) UploadPhoto(ctx context.Context, filename string, photo io.Reader) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	resp, err := s.service.UploadProfilePhoto(ctx, filename, photo)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas przesyłania zdjęcia")
		return false
	}
	if s.profile != nil {
		s.profile.User = resp.User
	}
	return true
}

func (s *UserStore) FetchMusicians(ctx context.Context) {
	s.mu.Lock()
	s.musiciansGen++
	gen := s.musiciansGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	musicians, err := s.service.Musicians(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.musiciansGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania muzyków")
		return
	}
	s.musicians = musicians
}
