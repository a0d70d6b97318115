// Package ratelimit bounds how often a key (here: a normalized phone number)
// may perform an action inside a rolling window.
package ratelimit

//go:generate mockgen -destination=../mocks/mock_limiter.go -package=mocks github.com/superadriano/hana-backend/internal/ratelimit Limiter

import "context"

// Limiter reports whether the given key may proceed, recording the attempt
// when it does. Implementations differ in where the window lives: in-process
// memory for a single instance, Redis when state must be shared.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
