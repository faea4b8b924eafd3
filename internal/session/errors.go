package session

import "errors"

var errNoResolver = errors.New("session: no user resolver configured")
