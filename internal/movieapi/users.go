package movieapi

import (
	"context"
	"net/http"
	"net/url"

	"movie-web/internal/models"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, in models.Registration) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/users/register",
		json:   in,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token.
// The API expects an OAuth2 password form where username carries the email.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", creds.Email)
	form.Set("password", creds.Password)

	var tok models.Token
	err := c.do(ctx, request{
		op:     "log in",
		method: http.MethodPost,
		path:   "/users/login/token",
		form:   form,
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// CurrentUser resolves the profile the token belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		op:     "fetch user profile",
		method: http.MethodGet,
		path:   "/users/me",
		token:  token,
		auth:   true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCurrentUser changes the username and/or email of the token's owner.
func (c *Client) UpdateCurrentUser(ctx context.Context, token string, in models.ProfileUpdate) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		op:     "update profile",
		method: http.MethodPut,
		path:   "/users/me",
		token:  token,
		auth:   true,
		json:   in,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the password of the token's owner.
func (c *Client) ChangePassword(ctx context.Context, token string, in models.PasswordChange) error {
	return c.do(ctx, request{
		op:     "update password",
		method: http.MethodPut,
		path:   "/users/me/password",
		token:  token,
		auth:   true,
		json:   in,
	}, nil)
}

// UploadAvatar replaces the avatar and returns the updated profile.
func (c *Client) UploadAvatar(ctx context.Context, token string, file Upload) (*models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		op:     "upload avatar",
		method: http.MethodPost,
		path:   "/users/me/avatar",
		token:  token,
		auth:   true,
		upload: &file,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
