package session

import (
	"context"
	"log/slog"

	"movie-web/internal/models"
	"movie-web/internal/tokenstore"
)

// Verdict is the outcome of an admin check.
type Verdict int

const (
	Authorized Verdict = iota
	RedirectLogin
	RedirectHome
)

func (v Verdict) String() string {
	switch v {
	case Authorized:
		return "authorized"
	case RedirectLogin:
		return "redirect_login"
	default:
		return "redirect_home"
	}
}

// Decision is returned by CheckAdmin. User is set only when Authorized.
type Decision struct {
	Verdict Verdict
	User    *models.User
	Token   string
}

// CheckAdmin decides whether the visitor may enter the admin panel.
// It resolves the stored token on every call.
func CheckAdmin(ctx context.Context, store tokenstore.Store, resolver UserResolver) Decision {
	token, ok := store.Get(ctx)
	if !ok || token == "" {
		return Decision{Verdict: RedirectLogin}
	}

	user, err := resolver.CurrentUser(ctx, token)
	if err != nil || user == nil {
		slog.Debug("admin check could not resolve user", "error", err)
		return Decision{Verdict: RedirectLogin}
	}
	if !user.IsAdmin() {
		return Decision{Verdict: RedirectHome}
	}
	return Decision{Verdict: Authorized, User: user, Token: token}
}
