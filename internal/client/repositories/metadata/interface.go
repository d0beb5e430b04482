package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeySessionToken           = "session_token"
	KeyUserID                 = "user_id"
	KeyUsername               = "username"
	KeyNotificationPermission = "notification_permission"
)

// Repository is a string key/value store. Get reports ok=false for a key
// that was never set.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
