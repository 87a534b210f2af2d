package services

import (
	"context"
	"io"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
)

// UserService wraps the profile endpoints of the signed-in user.
type UserService struct {
	client *api.Client
}

func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) Profile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.client.Get(ctx, "/users/profile/", nil, &profile)
	return profile, err
}

func (s *UserService) UpdateProfile(ctx context.Context, data models.ProfileUpdateRequest) (models.UserProfile, error) {
	if err := checkRequest(data); err != nil {
		return models.UserProfile{}, err
	}
	var profile models.UserProfile
	err := s.client.Put(ctx, "/users/profile/", data, &profile)
	return profile, err
}

func (s *UserService) ChangePassword(ctx context.Context, data models.ChangePasswordRequest) error {
	if err := checkRequest(data); err != nil {
		return err
	}
	return s.client.Post(ctx, "/users/change-password/", data, nil)
}

// UploadProfilePhoto replaces the signed-in user's profile photo. The
// backend deletes the previous file and returns the refreshed user.
func (s *UserService) UploadProfilePhoto(ctx context.Context, filename string, photo io.Reader) (models.PhotoUploadResponse, error) {
	var resp models.PhotoUploadResponse
	err := s.client.PostMultipart(ctx, "/users/upload-photo/", "photo", filename, photo, &resp)
	return resp, err
}

// Musicians lists every musician profile in the organization.
func (s *UserService) Musicians(ctx context.Context) ([]models.UserProfile, error) {
	var musicians []models.UserProfile
	err := s.client.Get(ctx, "/users/musicians/", nil, &musicians)
	return musicians, err
}

// InstrumentChoices is the fixed option set for instrument form fields.
func (s *UserService) InstrumentChoices() []models.InstrumentChoice {
	return []models.InstrumentChoice{
		{Value: "flet", Label: "Flet"},
		{Value: "klarnet", Label: "Klarnet"},
		{Value: "obój", Label: "Obój"},
		{Value: "saksofon", Label: "Saksofon"},
		{Value: "waltornia", Label: "Waltornia"},
		{Value: "eufonium", Label: "Eufonium"},
		{Value: "trąbka", Label: "Trąbka"},
		{Value: "puzon", Label: "Puzon"},
		{Value: "tuba", Label: "Tuba"},
		{Value: "fagot", Label: "Fagot"},
		{Value: "gitara", Label: "Gitara"},
		{Value: "perkusja", Label: "Perkusja"},
	}
}
