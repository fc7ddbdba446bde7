package sessionservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"koistore/internal/backend"
	databaseerrors "koistore/internal/database"
	"koistore/internal/models"
	serviceerrors "koistore/internal/service"
	"koistore/pkg/lib/logger/sl"

	"github.com/sethvargo/go-retry"
)

type SessionStorage interface {
	CreateSession(ctx context.Context) (string, error)
	DeleteSession(ctx context.Context, sessionId string) error
	GetEntry(ctx context.Context, sessionId, key string) (models.SessionEntry, error)
	PutEntry(ctx context.Context, sessionId, key string, value []byte, expectedRevision int64) (int64, error)
	DeleteEntries(ctx context.Context, sessionId string, keys ...string) error
}

type AuthBackend interface {
	Login(ctx context.Context, email, password string) (models.AuthTokens, error)
	Me(ctx context.Context) (models.User, error)
}

var authKeys = []string{models.KeyJWT, models.KeyJWTRefreshToken, models.KeyUserId, models.KeyUser}

type SessionService struct {
	log     *slog.Logger
	storage SessionStorage
	auth    AuthBackend
	retries uint64
	now     func() time.Time
}

func New(log *slog.Logger, storage SessionStorage, auth AuthBackend, retries uint64) *SessionService {
	return &SessionService{
		log:     log,
		storage: storage,
		auth:    auth,
		retries: retries,
		now:     time.Now,
	}
}

func (s *SessionService) fail(log *slog.Logger, op string, err error, msg string) error {
	wrapped := serviceerrors.Wrap(op, err)
	switch {
	case errors.Is(wrapped, serviceerrors.ErrContextCanceled):
		log.Warn("context canceled", sl.Err(err))
	case errors.Is(wrapped, serviceerrors.ErrDeadlineExceeded):
		log.Warn("deadline exceeded", sl.Err(err))
	case errors.Is(wrapped, serviceerrors.ErrNotFound), errors.Is(wrapped, serviceerrors.ErrUnauthenticated):
		log.Warn(msg, sl.Err(err))
	default:
		log.Error(msg, sl.Err(err))
	}
	return wrapped
}

// put overwrites one key whatever its current revision.
func (s *SessionService) put(ctx context.Context, sessionId, key string, value []byte) error {
	backoff := retry.WithMaxRetries(s.retries, retry.NewConstant(10*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		entry, err := s.storage.GetEntry(ctx, sessionId, key)
		if err != nil {
			return err
		}
		if _, err := s.storage.PutEntry(ctx, sessionId, key, value, entry.Revision); err != nil {
			if errors.Is(err, databaseerrors.ErrConflict) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

func (s *SessionService) Create(ctx context.Context) (string, error) {
	const op = "service.session.Create"
	log := s.log.With("op", op)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return "", err
	}

	id, err := s.storage.CreateSession(ctx)
	if err != nil {
		return "", s.fail(log, op, err, "failed to create session")
	}
	log.Info("session created", slog.String("session", id))
	return id, nil
}

func (s *SessionService) Destroy(ctx context.Context, sessionId string) error {
	const op = "service.session.Destroy"
	log := s.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return err
	}

	if err := s.storage.DeleteSession(ctx, sessionId); err != nil {
		return s.fail(log, op, err, "failed to delete session")
	}
	return nil
}

// Login authenticates against the backend and stores the tokens and the
// profile in the session.
func (s *SessionService) Login(ctx context.Context, sessionId, email, password string) (models.User, error) {
	const op = "service.session.Login"
	log := s.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return models.User{}, err
	}

	// Fail before calling the backend if the session does not exist.
	if _, err := s.storage.GetEntry(ctx, sessionId, models.KeyJWT); err != nil {
		return models.User{}, s.fail(log, op, err, "session lookup failed")
	}

	tokens, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return models.User{}, s.fail(log, op, err, "login rejected")
	}

	info, err := ParseToken(tokens.Token)
	if err != nil {
		log.Error("backend returned an unreadable token", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w: %w", op, serviceerrors.ErrUpstream, err)
	}

	user, err := s.auth.Me(backend.WithToken(ctx, tokens.Token))
	if err != nil {
		return models.User{}, s.fail(log, op, err, "failed to load profile")
	}
	if info.UserId == 0 {
		info.UserId = user.Id
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	values := map[string][]byte{
		models.KeyJWT:             []byte(tokens.Token),
		models.KeyJWTRefreshToken: []byte(tokens.RefreshToken),
		models.KeyUserId:          []byte(strconv.Itoa(info.UserId)),
		models.KeyUser:            profile,
	}
	for _, key := range authKeys {
		if err := s.put(ctx, sessionId, key, values[key]); err != nil {
			return models.User{}, s.fail(log, op, err, "failed to store credentials")
		}
	}

	log.Info("user logged in", slog.Int("user", info.UserId))
	return user, nil
}

func (s *SessionService) Logout(ctx context.Context, sessionId string) error {
	const op = "service.session.Logout"
	log := s.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return err
	}

	if err := s.storage.DeleteEntries(ctx, sessionId, authKeys...); err != nil {
		return s.fail(log, op, err, "failed to clear credentials")
	}
	return nil
}

// Me returns the profile stored at login.
func (s *SessionService) Me(ctx context.Context, sessionId string) (models.User, error) {
	const op = "service.session.Me"
	log := s.log.With("op", op, "session", sessionId)

	if _, err := s.Authorize(ctx, sessionId); err != nil {
		return models.User{}, err
	}

	entry, err := s.storage.GetEntry(ctx, sessionId, models.KeyUser)
	if err != nil {
		return models.User{}, s.fail(log, op, err, "failed to read profile")
	}

	var user models.User
	if len(entry.Value) == 0 || json.Unmarshal(entry.Value, &user) != nil {
		log.Warn("stored profile missing or malformed")
		return models.User{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrUnauthenticated)
	}
	return user, nil
}

// Authorize returns ctx carrying the session's backend token. A session
// without a token, or with an expired one, is unauthenticated.
func (s *SessionService) Authorize(ctx context.Context, sessionId string) (context.Context, error) {
	const op = "service.session.Authorize"
	log := s.log.With("op", op, "session", sessionId)

	if err := serviceerrors.CheckContext(ctx, op); err != nil {
		log.Warn("context done before call", sl.Err(err))
		return ctx, err
	}

	entry, err := s.storage.GetEntry(ctx, sessionId, models.KeyJWT)
	if err != nil {
		return ctx, s.fail(log, op, err, "failed to read token")
	}
	if len(entry.Value) == 0 {
		return ctx, fmt.Errorf("%s: %w", op, serviceerrors.ErrUnauthenticated)
	}

	token := string(entry.Value)
	info, err := ParseToken(token)
	if err != nil {
		log.Warn("stored token is malformed", sl.Err(err))
		return ctx, fmt.Errorf("%s: %w", op, serviceerrors.ErrUnauthenticated)
	}
	if info.Expired(s.now()) {
		log.Info("stored token expired")
		return ctx, fmt.Errorf("%s: %w", op, serviceerrors.ErrUnauthenticated)
	}

	return backend.WithToken(ctx, token), nil
}

// UserId returns the id of the logged-in user.
func (s *SessionService) UserId(ctx context.Context, sessionId string) (int, error) {
	const op = "service.session.UserId"
	log := s.log.With("op", op, "session", sessionId)

	if _, err := s.Authorize(ctx, sessionId); err != nil {
		return 0, err
	}

	entry, err := s.storage.GetEntry(ctx, sessionId, models.KeyUserId)
	if err != nil {
		return 0, s.fail(log, op, err, "failed to read user id")
	}
	id, err := strconv.Atoi(string(entry.Value))
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s: %w", op, serviceerrors.ErrUnauthenticated)
	}
	return id, nil
}
