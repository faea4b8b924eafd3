// Package tokenstore persists the visitor's opaque bearer token between requests.
//
// Every backend keeps exactly one token under the fixed key Key. A store that has
// no storage available behaves as an empty store: Get reports absent and Save or
// Remove succeed without doing anything.
package tokenstore

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Key is the fixed name the token is persisted under.
const Key = "access_token"

// Store gets, saves and removes a single bearer token.
type Store interface {
	Get(ctx context.Context) (string, bool)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// Factory binds a Store to the request being served.
type Factory interface {
	For(c fiber.Ctx) Store
}

// Nop is a Store without storage access.
type Nop struct{}

func (Nop) Get(context.Context) (string, bool) { return "", false }
func (Nop) Save(context.Context, string) error { return nil }
func (Nop) Remove(context.Context) error       { return nil }
