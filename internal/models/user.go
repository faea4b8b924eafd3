package models

// Role is the access level the API assigns to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the profile returned by the users endpoints.
type User struct {
	UserID    int     `json:"UserID"`
	Username  string  `json:"Username"`
	Email     string  `json:"Email"`
	Role      Role    `json:"Role"`
	AvatarURL *string `json:"AvatarURL"`
}

// IsAdmin reports whether the user may enter the admin panel.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Avatar returns the server-relative avatar path, or "" when unset.
func (u *User) Avatar() string {
	if u == nil || u.AvatarURL == nil {
		return ""
	}
	return *u.AvatarURL
}

// Registration is the request body for POST /users/register.
type Registration struct {
	Username string `json:"Username" validate:"required,max=50"`
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Credentials are exchanged for a bearer token at /users/login/token.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ProfileUpdate carries only the profile fields that changed.
type ProfileUpdate struct {
	Username *string `json:"Username,omitempty" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"Email,omitempty" validate:"omitempty,email"`
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Email == nil
}

// PasswordChange is the request body for PUT /users/me/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
