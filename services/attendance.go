package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// EventFilters narrows an event listing.
type EventFilters struct {
	Season   int
	Type     models.EventType
	DateFrom string
	DateTo   string
	Search   string
	Page     int
	PageSize int
}

func (f EventFilters) values() url.Values {
	params := url.Values{}
	if f.Season > 0 {
		params.Set("season", strconv.Itoa(f.Season))
	}
	if f.Type != "" {
		params.Set("type", string(f.Type))
	}
	if f.DateFrom != "" {
		params.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		params.Set("date_to", f.DateTo)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return params
}

// AttendanceFilters narrows an attendance-record listing.
type AttendanceFilters struct {
	User     int
	Event    int
	Season   int
	Type     string
	Page     int
	PageSize int
}

func (f AttendanceFilters) values() url.Values {
	params := url.Values{}
	if f.User > 0 {
		params.Set("user", strconv.Itoa(f.User))
	}
	if f.Event > 0 {
		params.Set("event", strconv.Itoa(f.Event))
	}
	if f.Season > 0 {
		params.Set("season", strconv.Itoa(f.Season))
	}
	if f.Type != "" {
		params.Set("type", f.Type)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return params
}

// AttendanceService maps 1:1 onto the /attendance endpoint family.
type AttendanceService struct {
	client *api.Client
}

func NewAttendanceService(client *api.Client) *AttendanceService {
	return &AttendanceService{client: client}
}

func (s *AttendanceService) Events(ctx context.Context, filters EventFilters) (models.Paginated[models.Event], error) {
	var page models.Paginated[models.Event]
	err := s.client.Get(ctx, "/attendance/events/", filters.values(), &page)
	return page, err
}

func (s *AttendanceService) Event(ctx context.Context, id int) (models.EventDetail, error) {
	var event models.EventDetail
	err := s.client.Get(ctx, fmt.Sprintf("/attendance/events/%d/", id), nil, &event)
	return event, err
}

func (s *AttendanceService) CreateEvent(ctx context.Context, data models.EventCreateRequest) (models.Event, error) {
	if err := checkRequest(data); err != nil {
		return models.Event{}, err
	}
	var event models.Event
	err := s.client.Post(ctx, "/attendance/events/", data, &event)
	return event, err
}

func (s *AttendanceService) UpdateEvent(ctx context.Context, id int, data models.EventUpdateRequest) (models.Event, error) {
	var event models.Event
	err := s.client.Patch(ctx, fmt.Sprintf("/attendance/events/%d/", id), data, &event)
	return event, err
}

func (s *AttendanceService) DeleteEvent(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/attendance/events/%d/", id))
}

func (s *AttendanceService) EventAttendances(ctx context.Context, id int) ([]models.Attendance, error) {
	var attendances []models.Attendance
	err := s.client.Get(ctx, fmt.Sprintf("/attendance/events/%d/attendances/", id), nil, &attendances)
	return attendances, err
}

// MarkAttendance records presence for a batch of users on one event.
func (s *AttendanceService) MarkAttendance(ctx context.Context, eventID int, data models.AttendanceMarkRequest) (models.AttendanceMarkResponse, error) {
	if err := checkRequest(data); err != nil {
		return models.AttendanceMarkResponse{}, err
	}
	var resp models.AttendanceMarkResponse
	err := s.client.Post(ctx, fmt.Sprintf("/attendance/events/%d/mark_attendance/", eventID), data, &resp)
	return resp, err
}

func (s *AttendanceService) Attendances(ctx context.Context, filters AttendanceFilters) (models.Paginated[models.Attendance], error) {
	var page models.Paginated[models.Attendance]
	err := s.client.Get(ctx, "/attendance/attendances/", filters.values(), &page)
	return page, err
}
