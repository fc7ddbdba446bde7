// Package response writes the {data, message, isSuccess} envelope every
// endpoint answers with and maps service errors to status codes.
package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"koistore/internal/backend"
	"koistore/internal/checkout"
	serviceerrors "koistore/internal/service"
	"koistore/internal/upload"
	"koistore/pkg/lib/logger/sl"
	"koistore/pkg/lib/urlparser"

	"github.com/go-playground/validator/v10"
)

const StatusClientClosedRequest = 499

const maxBodyBytes = 1 << 20

var ErrBadRequest = errors.New("bad request")

var validate = validator.New()

type Envelope struct {
	Data      any    `json:"data"`
	Message   string `json:"message"`
	IsSuccess bool   `json:"isSuccess"`
}

func write(w http.ResponseWriter, log *slog.Logger, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error("Failed to respond user", sl.Err(err))
	}
}

func JSON(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	write(w, log, status, Envelope{Data: data, IsSuccess: true})
}

func OK(w http.ResponseWriter, log *slog.Logger, data any) {
	JSON(w, log, http.StatusOK, data)
}

func Fail(w http.ResponseWriter, log *slog.Logger, status int, message string, data any) {
	write(w, log, status, Envelope{Data: data, Message: message})
}

// Decode reads a JSON body into dst and validates it.
func Decode(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: cannot read request body", ErrBadRequest)
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: cannot unmarshal request body: %v", ErrBadRequest, err)
	}
	return Validate(dst)
}

func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// Error maps err to a status code and writes it. msg is used for failures
// that have no more specific message.
func Error(w http.ResponseWriter, log *slog.Logger, err error, msg string) {
	var (
		invalid *checkout.InvalidCartError
		apiErr  *backend.Error
	)

	switch {
	case errors.Is(err, serviceerrors.ErrContextCanceled), errors.Is(err, context.Canceled):
		log.Warn("Context canceled", sl.Err(err))
		Fail(w, log, StatusClientClosedRequest, "Context canceled", nil)
	case errors.Is(err, serviceerrors.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		log.Warn("Deadline exceeded", sl.Err(err))
		Fail(w, log, http.StatusGatewayTimeout, "Deadline exceeded", nil)
	case errors.As(err, &invalid):
		log.Info("Cart cannot be checked out", sl.Err(err))
		Fail(w, log, http.StatusUnprocessableEntity, invalid.Error(), invalid.Items)
	case errors.Is(err, checkout.ErrEmptyCart):
		log.Info("Cart cannot be checked out", sl.Err(err))
		Fail(w, log, http.StatusUnprocessableEntity, checkout.ErrEmptyCart.Error(), nil)
	case errors.Is(err, ErrBadRequest), errors.Is(err, urlparser.ErrBadParam), errors.Is(err, serviceerrors.ErrInvalidArgument):
		log.Warn("Bad request", sl.Err(err))
		Fail(w, log, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, serviceerrors.ErrUnauthenticated), errors.Is(err, backend.ErrUnauthorized):
		log.Warn("Unauthenticated", sl.Err(err))
		Fail(w, log, http.StatusUnauthorized, "Login required", nil)
	case errors.Is(err, serviceerrors.ErrNotFound), errors.Is(err, backend.ErrNotFound):
		log.Warn("Not found", sl.Err(err))
		Fail(w, log, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, serviceerrors.ErrConflict):
		log.Warn("Conflict", sl.Err(err))
		Fail(w, log, http.StatusConflict, "Cart was changed concurrently, try again", nil)
	case errors.As(err, &apiErr):
		log.Error("Backend failure", sl.Err(err))
		message := apiErr.Message
		if message == "" {
			message = "Backend request failed"
		}
		Fail(w, log, http.StatusBadGateway, message, nil)
	case errors.Is(err, upload.ErrRejected):
		log.Error("Image host failure", sl.Err(err))
		Fail(w, log, http.StatusBadGateway, "Image upload failed", nil)
	default:
		log.Error(msg, sl.Err(err))
		Fail(w, log, http.StatusInternalServerError, msg, nil)
	}
}
