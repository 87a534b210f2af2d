package stores

import (
	"context"
	"sync"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

// ConcertStore caches the concert list, the currently viewed concert and the
// user's concert permissions. Registration calls track their in-flight state
// per concert id so one pending signup does not disable the others.
type ConcertStore struct {
	service *services.ConcertService

	mu sync.Mutex

	concerts       []models.Concert
	currentConcert *models.ConcertDetail
	totalCount     int
	currentPage    int
	hasNext        bool
	hasPrevious    bool
	loading        bool
	err            string
	filters        services.ConcertFilters

	registering map[int]bool

	permissions *models.ConcertPermissions
	permLoading bool

	listGen   uint64
	detailGen uint64
}

func NewConcertStore(service *services.ConcertService) *ConcertStore {
	return &ConcertStore{service: service, registering: make(map[int]bool)}
}

// ==================== State accessors ====================

func (s *ConcertStore) Concerts() []models.Concert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Concert, len(s.concerts))
	copy(out, s.concerts)
	return out
}

func (s *ConcertStore) CurrentConcert() *models.ConcertDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentConcert == nil {
		return nil
	}
	concert := *s.currentConcert
	return &concert
}

func (s *ConcertStore) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCount
}

func (s *ConcertStore) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNext
}

func (s *ConcertStore) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPrevious
}

func (s *ConcertStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsRegistering reports whether a register/unregister call for the concert
// is still in flight.
func (s *ConcertStore) IsRegistering(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registering[id]
}

func (s *ConcertStore) Permissions() *models.ConcertPermissions {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.permissions == nil {
		return nil
	}
	perms := *s.permissions
	return &perms
}

func (s *ConcertStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ConcertStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *ConcertStore) ClearCurrentConcert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentConcert = nil
}

// ClearPermissions drops the cached capability set, called when the session
// changes.
func (s *ConcertStore) ClearPermissions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions = nil
}

func (s *ConcertStore) SetFilters(filters services.ConcertFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = mergeConcertFilters(s.filters, filters)
}

func (s *ConcertStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = services.ConcertFilters{}
}

// ==================== Actions ====================

// FetchConcerts loads a page of concerts. With append the new page is
// concatenated onto the cached list; otherwise the list is replaced.
func (s *ConcertStore) FetchConcerts(ctx context.Context, filters services.ConcertFilters, appendPage bool) {
	s.mu.Lock()
	s.listGen++
	gen := s.listGen
	s.loading = true
	s.err = ""
	merged := mergeConcertFilters(s.filters, filters)
	s.filters = merged
	s.mu.Unlock()

	page, err := s.service.List(ctx, merged)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.listGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania koncertów")
		return
	}
	if appendPage {
		s.concerts = append(s.concerts, page.Results...)
	} else {
		s.concerts = page.Results
	}
	s.totalCount = page.Count
	s.hasNext = page.Next != nil
	s.hasPrevious = page.Previous != nil
	if merged.Page > 0 {
		s.currentPage = merged.Page
	} else {
		s.currentPage = 1
	}
}

func (s *ConcertStore) FetchConcert(ctx context.Context, id int) {
	s.mu.Lock()
	s.detailGen++
	gen := s.detailGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	concert, err := s.service.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.detailGen {
		return
	}
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas pobierania koncertu")
		return
	}
	s.currentConcert = &concert
}

// CreateConcert creates a concert and splices it into the cached list.
func (s *ConcertStore) CreateConcert(ctx context.Context, data models.ConcertCreateRequest) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	concert, err := s.service.Create(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas tworzenia koncertu", []fieldLabel{
			{"name", "Nazwa"},
			{"date", "Data"},
			{"location", "Lokalizacja"},
		})
		return false
	}
	s.concerts = append([]models.Concert{concert}, s.concerts...)
	s.totalCount++
	return true
}

func (s *ConcertStore) UpdateConcert(ctx context.Context, id int, data models.ConcertUpdateRequest) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	concert, err := s.service.Update(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = fieldErrorMessage(err, "Błąd podczas aktualizacji koncertu", []fieldLabel{
			{"name", "Nazwa"},
			{"date", "Data"},
			{"location", "Lokalizacja"},
		})
		return false
	}
	for i := range s.concerts {
		if s.concerts[i].ID == id {
			s.concerts[i] = concert
			break
		}
	}
	if s.currentConcert != nil && s.currentConcert.ID == id {
		s.currentConcert.Concert = concert
	}
	return true
}

func (s *ConcertStore) DeleteConcert(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.service.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Błąd podczas usuwania koncertu")
		return false
	}
	kept := s.concerts[:0]
	for _, concert := range s.concerts {
		if concert.ID != id {
			kept = append(kept, concert)
		}
	}
	if len(kept) < len(s.concerts) {
		s.totalCount--
	}
	s.concerts = kept
	if s.currentConcert != nil && s.currentConcert.ID == id {
		s.currentConcert = nil
	}
	return true
}

// RegisterForConcert signs the current user up. The cached list entry takes
// the server's participant count; a loaded detail view is refetched so the
// participants list matches.
func (s *ConcertStore) RegisterForConcert(ctx context.Context, id int) bool {
	return s.registration(ctx, id, s.service.Register, "Błąd podczas zapisywania na koncert")
}

// UnregisterFromConcert withdraws the current user.
func (s *ConcertStore) UnregisterFromConcert(ctx context.Context, id int) bool {
	return s.registration(ctx, id, s.service.Unregister, "Błąd podczas wypisywania z koncertu")
}

func (s *ConcertStore) registration(ctx context.Context, id int, call func(context.Context, int) (models.ConcertRegistrationResponse, error), fallback string) bool {
	s.mu.Lock()
	s.registering[id] = true
	s.err = ""
	s.mu.Unlock()

	result, err := call(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.err = errorMessage(err, fallback)
		delete(s.registering, id)
		s.mu.Unlock()
		return false
	}
	for i := range s.concerts {
		if s.concerts[i].ID == id {
			s.concerts[i].ParticipantsCount = result.ParticipantsCount
			s.concerts[i].IsRegistered = result.IsRegistered
			break
		}
	}
	delete(s.registering, id)
	refetchDetail := s.currentConcert != nil && s.currentConcert.ID == id
	s.mu.Unlock()

	if refetchDetail {
		s.FetchConcert(ctx, id)
	}
	return true
}

// FetchPermissions loads the concert capability set once; a failed fetch
// falls back to no capabilities rather than an error banner.
func (s *ConcertStore) FetchPermissions(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.permLoading || (!force && s.permissions != nil) {
		s.mu.Unlock()
		return
	}
	s.permLoading = true
	s.mu.Unlock()

	perms, err := s.service.Permissions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.permLoading = false
	if err != nil {
		s.permissions = &models.ConcertPermissions{}
		return
	}
	s.permissions = &perms
}

func mergeConcertFilters(base, next services.ConcertFilters) services.ConcertFilters {
	merged := base
	if next.Status != "" {
		merged.Status = next.Status
	}
	if next.DateFrom != "" {
		merged.DateFrom = next.DateFrom
	}
	if next.DateTo != "" {
		merged.DateTo = next.DateTo
	}
	if next.Search != "" {
		merged.Search = next.Search
	}
	if next.Page > 0 {
		merged.Page = next.Page
	}
	if next.PageSize > 0 {
		merged.PageSize = next.PageSize
	}
	return merged
}
