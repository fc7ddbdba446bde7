package serviceerrors

import (
	"context"
	"errors"
	"fmt"

	"koistore/internal/backend"
	databaseerrors "koistore/internal/database"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrContextCanceled  = errors.New("context canceled")
	ErrDeadlineExceeded = errors.New("deadline exceeded")
	ErrConflict         = errors.New("concurrent modification")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUpstream         = errors.New("backend request failed")
)

// Wrap maps an error from storage or the backend onto the service
// sentinels and prefixes it with op. Backend failures keep the original
// error in the chain so the message can reach the caller.
func Wrap(op string, err error) error {
	var apiErr *backend.Error

	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, ErrContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, ErrDeadlineExceeded)
	case errors.Is(err, databaseerrors.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, databaseerrors.ErrConflict):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, backend.ErrUnauthorized):
		return fmt.Errorf("%s: %w: %w", op, ErrUnauthenticated, err)
	case errors.Is(err, backend.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.As(err, &apiErr):
		return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CheckContext returns a wrapped sentinel if ctx is already done.
func CheckContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return Wrap(op, ctx.Err())
	default:
		return nil
	}
}
