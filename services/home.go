package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// HomeService wraps the dashboard endpoints.
type HomeService struct {
	client *api.Client
}

func NewHomeService(client *api.Client) *HomeService {
	return &HomeService{client: client}
}

func (s *HomeService) Stats(ctx context.Context) (models.HomeStats, error) {
	var stats models.HomeStats
	err := s.client.Get(ctx, "/home/stats/", nil, &stats)
	return stats, err
}

func (s *HomeService) UpcomingEvents(ctx context.Context, limit int) ([]models.UpcomingEvent, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var events []models.UpcomingEvent
	err := s.client.Get(ctx, "/home/upcoming_events/", params, &events)
	return events, err
}

func (s *HomeService) RecentActivity(ctx context.Context, limit int) ([]models.RecentActivity, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var activity []models.RecentActivity
	err := s.client.Get(ctx, "/home/recent_activity/", params, &activity)
	return activity, err
}
