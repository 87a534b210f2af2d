package stores

import (
	"context"
	"sync"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

// SeasonStore caches the season list and the current/selected season
// details.
type SeasonStore struct {
	service *services.SeasonService

	mu             sync.Mutex
	seasons        []models.Season
	totalCount     int
	currentSeason  *models.SeasonDetail
	selectedSeason *models.SeasonDetail
	loading        bool
	err            string

	listGen     uint64
	selectedGen uint64
	currentGen  uint64
}

func NewSeasonStore(service *services.SeasonService) *SeasonStore {
	return &SeasonStore{service: service}
}

// ==================== State accessors ====================

func (s *SeasonStore) Seasons() []models.Season {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Season, len(s.seasons))
	copy(out, s.seasons)
	return out
}

func (s *SeasonStore) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCount
}

func (s *SeasonStore) CurrentSeason() *models.SeasonDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentSeason == nil {
		return nil
	}
	season := *s.currentSeason
	return &season
}

func (s *SeasonStore) SelectedSeason() *models.SeasonDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedSeason == nil {
		return nil
	}
	season := *s.selectedSeason
	return &season
}

func (s *SeasonStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SeasonStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SeasonStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *SeasonStore) ClearSelectedSeason() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSeason = nil
}

// ==================== Actions ====================

func (s *SeasonStore) FetchSeasons(ctx context.Context, filters services.SeasonFilters) {
	s.mu.Lock()
	s.listGen++
	gen := s.listGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	page, err := s.service.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.listGen {
		// A newer fetch replaced this one; drop the stale response.
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania sezonów")
		return
	}
	s.seasons = page.Results
	s.totalCount = page.Count
}

func (s *SeasonStore) FetchSeason(ctx context.Context, id int) {
	s.mu.Lock()
	s.selectedGen++
	gen := s.selectedGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	season, err := s.service.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.selectedGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania sezonu")
		return
	}
	s.selectedSeason = &season
}

// FetchCurrentSeason loads the season flagged current. A 404 means no season
// is current; that is an empty state, not an error.
func (s *SeasonStore) FetchCurrentSeason(ctx context.Context) {
	s.mu.Lock()
	s.currentGen++
	gen := s.currentGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	season, err := s.service.Current(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.currentGen {
		return
	}
	s.loading = false
	if err != nil {
		s.currentSeason = nil
		if !isNotFound(err) {
			s.err = errorMessage(err, "Brak aktywnego sezonu")
		}
		return
	}
	s.currentSeason = &season
}

// CreateSeason creates a season and splices it into the cached list, so list
// views need no refetch.
func (s *SeasonStore) CreateSeason(ctx context.Context, data models.SeasonCreateRequest) (models.SeasonDetail, bool) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	season, err := s.service.Create(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas tworzenia sezonu", []fieldLabel{
			{"name", "Nazwa"},
			{"start_date", "Data rozpoczęcia"},
			{"end_date", "Data zakończenia"},
		})
		return models.SeasonDetail{}, false
	}
	s.seasons = append([]models.Season{season.Season}, s.seasons...)
	s.totalCount++
	return season, true
}

func (s *SeasonStore) UpdateSeason(ctx context.Context, id int, data models.SeasonUpdateRequest) (models.SeasonDetail, bool) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	season, err := s.service.Update(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas aktualizacji sezonu", []fieldLabel{
			{"name", "Nazwa"},
			{"start_date", "Data rozpoczęcia"},
			{"end_date", "Data zakończenia"},
		})
		return models.SeasonDetail{}, false
	}
	for i := range s.seasons {
		if s.seasons[i].ID == id {
			s.seasons[i] = season.Season
			break
		}
	}
	if s.selectedSeason != nil && s.selectedSeason.ID == id {
		s.selectedSeason = &season
	}
	return season, true
}

func (s *SeasonStore) DeleteSeason(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.service.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas usuwania sezonu")
		return false
	}
	kept := s.seasons[:0]
	for _, season := range s.seasons {
		if season.ID != id {
			kept = append(kept, season)
		}
	}
	if len(kept) < len(s.seasons) {
		s.totalCount--
	}
	s.seasons = kept
	if s.selectedSeason != nil && s.selectedSeason.ID == id {
		s.selectedSeason = nil
	}
	if s.currentSeason != nil && s.currentSeason.ID == id {
		s.currentSeason = nil
	}
	return true
}

// SetCurrentSeason marks a season current and rewrites the cached flags
// locally instead of refetching the list: the chosen season becomes the one
// current active season, every other cached season is cleared. The backend
// enforces the real uniqueness; this mirror only saves a round trip.
func (s *SeasonStore) SetCurrentSeason(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	resp, err := s.service.SetCurrent(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas ustawiania aktywnego sezonu")
		return false
	}
	for i := range s.seasons {
		if s.seasons[i].ID == id {
			s.seasons[i].IsCurrent = true
			s.seasons[i].IsActive = true
		} else {
			s.seasons[i].IsCurrent = false
			s.seasons[i].IsActive = false
		}
	}
	season := resp.Season
	s.currentSeason = &season
	if s.selectedSeason != nil && s.selectedSeason.ID == id {
		s.selectedSeason = &season
	}
	return true
}
