package stores

import (
	"context"
	"sync"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

// AttendanceStore caches events, attendance records and the attendance grid.
// Events and attendances keep separate loading/error tracking so one failing
// listing does not blank out the other.
type AttendanceStore struct {
	events  *services.AttendanceService
	seasons *services.SeasonService

	mu sync.Mutex

	eventList     []models.Event
	currentEvent  *models.EventDetail
	eventsLoading bool
	eventsTotal   int
	eventsPage    int
	eventsHasNext bool
	eventErr      string
	eventFilters  services.EventFilters

	attendances       []models.Attendance
	grid              *models.AttendanceGrid
	gridSeasonID      int
	gridFilters       services.GridFilters
	attendanceLoading bool
	attendanceTotal   int
	attendancePage    int
	attendanceHasNext bool
	attendanceErr     string
	attendanceFilters services.AttendanceFilters

	marking bool

	eventsGen      uint64
	eventGen       uint64
	attendancesGen uint64
	gridGen        uint64
}

func NewAttendanceStore(events *services.AttendanceService, seasons *services.SeasonService) *AttendanceStore {
	return &AttendanceStore{events: events, seasons: seasons}
}

// ==================== State accessors ====================

func (s *AttendanceStore) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.eventList))
	copy(out, s.eventList)
	return out
}

func (s *AttendanceStore) CurrentEvent() *models.EventDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentEvent == nil {
		return nil
	}
	event := *s.currentEvent
	return &event
}

func (s *AttendanceStore) EventsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventsLoading
}

func (s *AttendanceStore) EventsTotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventsTotal
}

func (s *AttendanceStore) EventsHasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventsHasNext
}

func (s *AttendanceStore) EventErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventErr
}

func (s *AttendanceStore) Attendances() []models.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Attendance, len(s.attendances))
	copy(out, s.attendances)
	return out
}

func (s *AttendanceStore) Grid() *models.AttendanceGrid {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return nil
	}
	grid := *s.grid
	return &grid
}

func (s *AttendanceStore) AttendanceLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendanceLoading
}

func (s *AttendanceStore) AttendanceTotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendanceTotal
}

func (s *AttendanceStore) AttendanceErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendanceErr
}

func (s *AttendanceStore) MarkingAttendance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marking
}

func (s *AttendanceStore) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventErr = ""
	s.attendanceErr = ""
}

func (s *AttendanceStore) ClearGrid() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = nil
	s.gridSeasonID = 0
	s.gridFilters = services.GridFilters{}
}

func (s *AttendanceStore) SetEventFilters(filters services.EventFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventFilters = mergeEventFilters(s.eventFilters, filters)
}

func (s *AttendanceStore) SetAttendanceFilters(filters services.AttendanceFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendanceFilters = mergeAttendanceFilters(s.attendanceFilters, filters)
}

// ==================== Event actions ====================

// FetchEvents loads a page of events. With append the new page is
// concatenated onto the cached list; otherwise the list is replaced.
func (s *AttendanceStore) FetchEvents(ctx context.Context, filters services.EventFilters, appendPage bool) {
	s.mu.Lock()
	s.eventsGen++
	gen := s.eventsGen
	s.eventsLoading = true
	s.eventErr = ""
	merged := mergeEventFilters(s.eventFilters, filters)
	s.eventFilters = merged
	s.mu.Unlock()

	page, err := s.events.Events(ctx, merged)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.eventsGen {
		return
	}
	s.eventsLoading = false
	if err != nil {
		s.eventErr = errorMessage(err, "Błąd podczas pobierania wydarzeń")
		return
	}
	if appendPage {
		s.eventList = append(s.eventList, page.Results...)
	} else {
		s.eventList = page.Results
	}
	s.eventsTotal = page.Count
	s.eventsHasNext = page.Next != nil
	if merged.Page > 0 {
		s.eventsPage = merged.Page
	} else {
		s.eventsPage = 1
	}
}

func (s *AttendanceStore) FetchEvent(ctx context.Context, id int) {
	s.mu.Lock()
	s.eventGen++
	gen := s.eventGen
	s.eventsLoading = true
	s.eventErr = ""
	s.mu.Unlock()

	event, err := s.events.Event(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.eventGen {
		return
	}
	s.eventsLoading = false
	if err != nil {
		s.eventErr = errorMessage(err, "Błąd podczas pobierania wydarzenia")
		return
	}
	s.currentEvent = &event
}

func (s *AttendanceStore) CreateEvent(ctx context.Context, data models.EventCreateRequest) bool {
	s.mu.Lock()
	s.eventsLoading = true
	s.eventErr = ""
	s.mu.Unlock()

	event, err := s.events.CreateEvent(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsLoading = false
	if err != nil {
		s.eventErr = fieldErrorMessage(err, "Błąd podczas tworzenia wydarzenia", []fieldLabel{
			{"name", "Nazwa"},
			{"date", "Data"},
			{"type", "Typ"},
		})
		return false
	}
	s.eventList = append([]models.Event{event}, s.eventList...)
	s.eventsTotal++
	detail := models.EventDetail{Event: event, UpdatedAt: event.CreatedAt}
	s.currentEvent = &detail
	return true
}

func (s *AttendanceStore) UpdateEvent(ctx context.Context, id int, data models.EventUpdateRequest) bool {
	s.mu.Lock()
	s.eventsLoading = true
	s.eventErr = ""
	s.mu.Unlock()

	event, err := s.events.UpdateEvent(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsLoading = false
	if err != nil {
		s.eventErr = fieldErrorMessage(err, "Błąd podczas aktualizacji wydarzenia", []fieldLabel{
			{"name", "Nazwa"},
			{"date", "Data"},
			{"type", "Typ"},
		})
		return false
	}
	for i := range s.eventList {
		if s.eventList[i].ID == id {
			s.eventList[i] = event
			break
		}
	}
	if s.currentEvent != nil && s.currentEvent.ID == id {
		s.currentEvent.Event = event
	}
	return true
}

func (s *AttendanceStore) DeleteEvent(ctx context.Context, id int) bool {
	s.mu.Lock()
	s.eventsLoading = true
	s.eventErr = ""
	s.mu.Unlock()

	err := s.events.DeleteEvent(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsLoading = false
	if err != nil {
		s.eventErr = errorMessage(err, "Błąd podczas usuwania wydarzenia")
		return false
	}
	kept := s.eventList[:0]
	for _, event := range s.eventList {
		if event.ID != id {
			kept = append(kept, event)
		}
	}
	if len(kept) < len(s.eventList) {
		s.eventsTotal--
	}
	s.eventList = kept
	if s.currentEvent != nil && s.currentEvent.ID == id {
		s.currentEvent = nil
	}
	return true
}

// ==================== Attendance actions ====================

func (s *AttendanceStore) FetchAttendances(ctx context.Context, filters services.AttendanceFilters, appendPage bool) {
	s.mu.Lock()
	s.attendancesGen++
	gen := s.attendancesGen
	s.attendanceLoading = true
	s.attendanceErr = ""
	merged := mergeAttendanceFilters(s.attendanceFilters, filters)
	s.attendanceFilters = merged
	s.mu.Unlock()

	page, err := s.events.Attendances(ctx, merged)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.attendancesGen {
		return
	}
	s.attendanceLoading = false
	if err != nil {
		s.attendanceErr = errorMessage(err, "Błąd podczas pobierania obecności")
		return
	}
	for _, record := range page.Results {
		if models.CheckPresent(record.Present) != nil {
			s.attendanceErr = "Nieprawidłowa wartość obecności w danych z serwera"
			return
		}
	}
	if appendPage {
		s.attendances = append(s.attendances, page.Results...)
	} else {
		s.attendances = page.Results
	}
	s.attendanceTotal = page.Count
	s.attendanceHasNext = page.Next != nil
	if merged.Page > 0 {
		s.attendancePage = merged.Page
	} else {
		s.attendancePage = 1
	}
}

// FetchGrid replaces the held attendance grid for a season. Grids with
// presence values outside {0, 0.5, 1} are rejected instead of cached.
func (s *AttendanceStore) FetchGrid(ctx context.Context, seasonID int, filters services.GridFilters) {
	s.mu.Lock()
	s.gridGen++
	gen := s.gridGen
	s.attendanceLoading = true
	s.attendanceErr = ""
	s.mu.Unlock()

	grid, err := s.seasons.AttendanceGrid(ctx, seasonID, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gridGen {
		return
	}
	s.attendanceLoading = false
	if err != nil {
		s.attendanceErr = errorMessage(err, "Błąd podczas pobierania siatki obecności")
		return
	}
	if err := checkGrid(&grid); err != nil {
		s.attendanceErr = "Nieprawidłowa wartość obecności w danych z serwera"
		return
	}
	s.grid = &grid
	s.gridSeasonID = seasonID
	s.gridFilters = filters
}

// MarkAttendance records presence for an event, then refetches the grid if
// one is loaded so its counts match the server again. The refetch keeps the
// filters the grid was loaded with.
func (s *AttendanceStore) MarkAttendance(ctx context.Context, eventID int, data models.AttendanceMarkRequest) bool {
	s.mu.Lock()
	s.marking = true
	s.attendanceErr = ""
	gridSeason := s.gridSeasonID
	gridFilters := s.gridFilters
	hasGrid := s.grid != nil
	s.mu.Unlock()

	_, err := s.events.MarkAttendance(ctx, eventID, data)

	s.mu.Lock()
	if err != nil {
		s.attendanceErr = fieldErrorMessage(err, "Błąd podczas oznaczania obecności", []fieldLabel{
			{"attendances", "Obecności"},
		})
		s.marking = false
		s.mu.Unlock()
		return false
	}
	s.marking = false
	s.mu.Unlock()

	if hasGrid {
		s.FetchGrid(ctx, gridSeason, gridFilters)
	}
	return true
}

func checkGrid(grid *models.AttendanceGrid) error {
	for _, section := range grid.AttendanceGrid {
		for _, row := range section.UserRows {
			for _, cell := range row.Attendances {
				if err := models.CheckPresent(cell.Present); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func mergeEventFilters(base, next services.EventFilters) services.EventFilters {
	merged := base
	if next.Season > 0 {
		merged.Season = next.Season
	}
	if next.Type != "" {
		merged.Type = next.Type
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

func mergeAttendanceFilters(base, next services.AttendanceFilters) services.AttendanceFilters {
	merged := base
	if next.User > 0 {
		merged.User = next.User
	}
	if next.Event > 0 {
		merged.Event = next.Event
	}
	if next.Season > 0 {
		merged.Season = next.Season
	}
	if next.Type != "" {
		merged.Type = next.Type
	}
	if next.Page > 0 {
		merged.Page = next.Page
	}
	if next.PageSize > 0 {
		merged.PageSize = next.PageSize
	}
	return merged
}
