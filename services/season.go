package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// SeasonFilters narrows a season listing. Unset fields are left out of the
// query string entirely.
type SeasonFilters struct {
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

func (f SeasonFilters) values() url.Values {
	params := url.Values{}
	if f.Active != nil {
		params.Set("active", strconv.FormatBool(*f.Active))
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

// GridFilters narrows season event listings and the attendance grid.
type GridFilters struct {
	EventType string
	Month     int
}

func (f GridFilters) values(typeParam string) url.Values {
	params := url.Values{}
	if f.EventType != "" {
		params.Set(typeParam, f.EventType)
	}
	if f.Month > 0 {
		params.Set("month", strconv.Itoa(f.Month))
	}
	return params
}

// SeasonService maps 1:1 onto the /seasons endpoint family.
type SeasonService struct {
	client *api.Client
}

func NewSeasonService(client *api.Client) *SeasonService {
	return &SeasonService{client: client}
}

func (s *SeasonService) List(ctx context.Context, filters SeasonFilters) (models.Paginated[models.Season], error) {
	var page models.Paginated[models.Season]
	err := s.client.Get(ctx, "/seasons/", filters.values(), &page)
	return page, err
}

func (s *SeasonService) Get(ctx context.Context, id int) (models.SeasonDetail, error) {
	var season models.SeasonDetail
	err := s.client.Get(ctx, fmt.Sprintf("/seasons/%d/", id), nil, &season)
	return season, err
}

func (s *SeasonService) Current(ctx context.Context) (models.SeasonDetail, error) {
	var season models.SeasonDetail
	err := s.client.Get(ctx, "/seasons/current/", nil, &season)
	return season, err
}

func (s *SeasonService) Create(ctx context.Context, data models.SeasonCreateRequest) (models.SeasonDetail, error) {
	if err := checkRequest(data); err != nil {
		return models.SeasonDetail{}, err
	}
	var season models.SeasonDetail
	err := s.client.Post(ctx, "/seasons/", data, &season)
	return season, err
}

func (s *SeasonService) Update(ctx context.Context, id int, data models.SeasonUpdateRequest) (models.SeasonDetail, error) {
	var season models.SeasonDetail
	err := s.client.Patch(ctx, fmt.Sprintf("/seasons/%d/", id), data, &season)
	return season, err
}

func (s *SeasonService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/seasons/%d/", id))
}

func (s *SeasonService) SetCurrent(ctx context.Context, id int) (models.SetCurrentSeasonResponse, error) {
	var resp models.SetCurrentSeasonResponse
	err := s.client.Post(ctx, fmt.Sprintf("/seasons/%d/set_current/", id), nil, &resp)
	return resp, err
}

// Musicians lists a season's members grouped by instrument section, as the
// backend shapes them.
func (s *SeasonService) Musicians(ctx context.Context, id int) (models.SeasonMusiciansResponse, error) {
	var resp models.SeasonMusiciansResponse
	err := s.client.Get(ctx, fmt.Sprintf("/seasons/%d/musicians/", id), nil, &resp)
	return resp, err
}

func (s *SeasonService) Events(ctx context.Context, id int, filters GridFilters) ([]models.Event, error) {
	var events []models.Event
	err := s.client.Get(ctx, fmt.Sprintf("/seasons/%d/events/", id), filters.values("type"), &events)
	return events, err
}

func (s *SeasonService) AttendanceGrid(ctx context.Context, id int, filters GridFilters) (models.AttendanceGrid, error) {
	var grid models.AttendanceGrid
	err := s.client.Get(ctx, fmt.Sprintf("/seasons/%d/attendance_grid/", id), filters.values("event_type"), &grid)
	return grid, err
}

func (s *SeasonService) AvailableMusicians(ctx context.Context, seasonID int) ([]models.AvailableMusician, error) {
	var resp struct {
		AvailableMusicians []models.AvailableMusician `json:"available_musicians"`
	}
	err := s.client.Get(ctx, fmt.Sprintf("/seasons/%d/available_musicians/", seasonID), nil, &resp)
	return resp.AvailableMusicians, err
}

func (s *SeasonService) AddMusicians(ctx context.Context, seasonID int, musicianIDs []int) (models.SeasonMembershipResponse, error) {
	var resp models.SeasonMembershipResponse
	err := s.client.Post(ctx, fmt.Sprintf("/seasons/%d/add_musicians/", seasonID),
		map[string][]int{"musician_ids": musicianIDs}, &resp)
	return resp, err
}

func (s *SeasonService) RemoveMusicians(ctx context.Context, seasonID int, musicianIDs []int) (models.SeasonMembershipResponse, error) {
	var resp models.SeasonMembershipResponse
	err := s.client.Post(ctx, fmt.Sprintf("/seasons/%d/remove_musicians/", seasonID),
		map[string][]int{"musician_ids": musicianIDs}, &resp)
	return resp, err
}
