package stores

import (
	"context"
	"sync"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

// HomeStore caches the dashboard data.
type HomeStore struct {
	service *services.HomeService

	mu             sync.Mutex
	stats          *models.HomeStats
	upcomingEvents []models.UpcomingEvent
	recentActivity []models.RecentActivity
	loading        bool
	err            string

	gen uint64
}

func NewHomeStore(service *services.HomeService) *HomeStore {
	return &HomeStore{service: service}
}

func (s *HomeStore) Stats() *models.HomeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	return &stats
}

func (s *HomeStore) UpcomingEvents() []models.UpcomingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UpcomingEvent, len(s.upcomingEvents))
	copy(out, s.upcomingEvents)
	return out
}

func (s *HomeStore) RecentActivity() []models.RecentActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RecentActivity, len(s.recentActivity))
	copy(out, s.recentActivity)
	return out
}

func (s *HomeStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *HomeStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *HomeStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// FetchHomeData loads all three dashboard slots in one action.
func (s *HomeStore) FetchHomeData(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	stats, statsErr := s.service.Stats(ctx)
	events, eventsErr := s.service.UpcomingEvents(ctx, 5)
	activity, activityErr := s.service.RecentActivity(ctx, 10)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.loading = false
	if statsErr != nil || eventsErr != nil || activityErr != nil {
		s.err = "Błąd podczas ładowania danych strony głównej"
		return
	}
	s.stats = &stats
	s.upcomingEvents = events
	s.recentActivity = activity
}
