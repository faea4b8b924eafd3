package tokenstore

import (
	"context"
)

// CookieStore keeps the token itself in an HttpOnly cookie on the visitor's browser.
type CookieStore struct {
	jar  Jar
	opts CookieOptions
}

// NewCookieStore returns a store backed by jar. A nil jar yields a no-op store.
func NewCookieStore(jar Jar, opts CookieOptions) *CookieStore {
	return &CookieStore{jar: jar, opts: opts}
}

func (s *CookieStore) Get(context.Context) (string, bool) {
	if s == nil || s.jar == nil {
		return "", false
	}
	v := s.jar.Cookie(Key)
	return v, v != ""
}

func (s *CookieStore) Save(_ context.Context, token string) error {
	if s == nil || s.jar == nil {
		return nil
	}
	s.jar.SetCookie(Key, token, s.opts.TTL)
	return nil
}

func (s *CookieStore) Remove(context.Context) error {
	if s == nil || s.jar == nil {
		return nil
	}
	s.jar.ExpireCookie(Key)
	return nil
}
