package state

import "context"

// Namespace prefixes every persisted key so the session fields form one
// logical unit in storage.
const Namespace = "aipapergrader"

// Persisted field keys.
const (
	KeyToken = Namespace + ".token"
	KeyRole  = Namespace + ".role"
	KeyEmail = Namespace + ".email"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}
