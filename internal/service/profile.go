package service

import (
	"context"
	"strings"

	"movie-web/internal/models"
	"movie-web/internal/movieapi"
)

// ProfileService updates the logged-in visitor's own account.
type ProfileService struct {
	api *movieapi.Client
}

func NewProfileService(api *movieapi.Client) *ProfileService {
	return &ProfileService{api: api}
}

// ProfileChanges returns an update carrying only the fields that differ from current.
func ProfileChanges(current *models.User, username, email string) models.ProfileUpdate {
	var upd models.ProfileUpdate
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if current == nil {
		return upd
	}
	if username != "" && username != current.Username {
		upd.Username = &username
	}
	if email != "" && email != current.Email {
		upd.Email = &email
	}
	return upd
}

// UpdateProfile sends the changed fields. An empty update returns current without a request.
func (s *ProfileService) UpdateProfile(ctx context.Context, token string, current *models.User, upd models.ProfileUpdate) (*models.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if upd.Empty() {
		return current, nil
	}
	if err := Validate(upd); err != nil {
		return nil, err
	}
	return s.api.UpdateCurrentUser(ctx, token, upd)
}

func (s *ProfileService) ChangePassword(ctx context.Context, token string, in models.PasswordChange) error {
	if token == "" {
		return ErrMissingToken
	}
	if err := Validate(in); err != nil {
		return err
	}
	return s.api.ChangePassword(ctx, token, in)
}

func (s *ProfileService) UploadAvatar(ctx context.Context, token string, file movieapi.Upload) (*models.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	return s.api.UploadAvatar(ctx, token, file)
}
