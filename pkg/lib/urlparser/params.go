package urlparser

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var ErrBadParam = errors.New("bad request parameter")

// SessionID returns the {sid} path parameter. Session ids are UUIDs.
func SessionID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "sid")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: session id must be a uuid", ErrBadParam)
	}
	return id.String(), nil
}

// Int returns a positive integer path parameter.
func Int(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive int", ErrBadParam, name)
	}
	return n, nil
}

// QueryInt returns the named query parameter, or def when it is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be int", ErrBadParam, name)
	}
	return n, nil
}

func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be bool", ErrBadParam, name)
	}
	return b, nil
}
