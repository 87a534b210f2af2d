package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// ConcertFilters narrows a concert listing.
type ConcertFilters struct {
	Status   models.ConcertStatus
	DateFrom string
	DateTo   string
	Search   string
	Page     int
	PageSize int
}

func (f ConcertFilters) values() url.Values {
	params := url.Values{}
	if f.Status != "" {
		params.Set("status", string(f.Status))
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

// ConcertService maps 1:1 onto the /concerts endpoint family.
type ConcertService struct {
	client *api.Client
}

func NewConcertService(client *api.Client) *ConcertService {
	return &ConcertService{client: client}
}

func (s *ConcertService) List(ctx context.Context, filters ConcertFilters) (models.Paginated[models.Concert], error) {
	var page models.Paginated[models.Concert]
	err := s.client.Get(ctx, "/concerts/", filters.values(), &page)
	return page, err
}

func (s *ConcertService) Get(ctx context.Context, id int) (models.ConcertDetail, error) {
	var concert models.ConcertDetail
	err := s.client.Get(ctx, fmt.Sprintf("/concerts/%d/", id), nil, &concert)
	return concert, err
}

func (s *ConcertService) Create(ctx context.Context, data models.ConcertCreateRequest) (models.Concert, error) {
	if err := checkRequest(data); err != nil {
		return models.Concert{}, err
	}
	var concert models.Concert
	err := s.client.Post(ctx, "/concerts/", data, &concert)
	return concert, err
}

func (s *ConcertService) Update(ctx context.Context, id int, data models.ConcertUpdateRequest) (models.Concert, error) {
	var concert models.Concert
	err := s.client.Patch(ctx, fmt.Sprintf("/concerts/%d/", id), data, &concert)
	return concert, err
}

func (s *ConcertService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/concerts/%d/", id))
}

// Register signs the current user up for a concert.
func (s *ConcertService) Register(ctx context.Context, id int) (models.ConcertRegistrationResponse, error) {
	return s.registration(ctx, id, "register")
}

// Unregister withdraws the current user from a concert.
func (s *ConcertService) Unregister(ctx context.Context, id int) (models.ConcertRegistrationResponse, error) {
	return s.registration(ctx, id, "unregister")
}

func (s *ConcertService) registration(ctx context.Context, id int, action string) (models.ConcertRegistrationResponse, error) {
	var resp models.ConcertRegistrationResponse
	err := s.client.Post(ctx, fmt.Sprintf("/concerts/%d/register/", id),
		map[string]string{"action": action}, &resp)
	return resp, err
}

func (s *ConcertService) Participants(ctx context.Context, id int) (models.ConcertParticipantsResponse, error) {
	var resp models.ConcertParticipantsResponse
	err := s.client.Get(ctx, fmt.Sprintf("/concerts/%d/participants/", id), nil, &resp)
	return resp, err
}

func (s *ConcertService) Permissions(ctx context.Context) (models.ConcertPermissions, error) {
	var perms models.ConcertPermissions
	err := s.client.Get(ctx, "/concerts/permissions/", nil, &perms)
	return perms, err
}
