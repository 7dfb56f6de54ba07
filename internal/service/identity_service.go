package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/session"
	"github.com/simple-lms-api/internal/store"
	"github.com/simple-lms-api/internal/validation"
)

const (
	msgInvalidSignup  = "Please enter a valid name and email address."
	msgInvalidRole    = "Please choose a learner or contributor role."
	msgInvalidEmail   = "Please enter a valid email address."
	msgDuplicateEmail = "A user with this email already exists."
	msgAccountCreated = "Account created successfully!"
)

const avatarURLPrefix = "https://i.pravatar.cc/150?u="

// identityService is the concrete implementation of IdentityService.
// It holds the single active session; concurrent logins are last-write-wins.
type identityService struct {
	store     *store.Store
	audit     *auditService
	persister session.Persister
	latency   time.Duration
	metrics   metrics.Recorder
	log       zerolog.Logger

	mu      sync.RWMutex
	current *models.User
}

// newIdentityService creates a new IdentityService
func newIdentityService(
	st *store.Store,
	audit *auditService,
	persister session.Persister,
	latency time.Duration,
	recorder metrics.Recorder,
	log zerolog.Logger,
) *identityService {
	return &identityService{
		store:     st,
		audit:     audit,
		persister: persister,
		latency:   latency,
		metrics:   recorder,
		log:       log.With().Str("service", "identity").Logger(),
	}
}

// CreateUser registers a self-service learner or contributor
func (s *identityService) CreateUser(name, email string, role models.Role) models.Result {
	if errs := validation.ValidateSignup(name, email, role); len(errs) > 0 {
		for _, e := range errs {
			if e.Field != "role" {
				return models.Fail(msgInvalidSignup)
			}
		}
		return models.Fail(msgInvalidRole)
	}

	user, ok := s.insertUser(name, email, role, models.ActivityUserCreated,
		fmt.Sprintf("New user signed up: %s as %s", email, role))
	if !ok {
		return models.Fail(msgDuplicateEmail)
	}

	return models.Result{Success: true, Message: msgAccountCreated, User: user}
}

// CreateUserByAdmin registers a learner whose name is the email's local part
func (s *identityService) CreateUserByAdmin(email string) models.Result {
	if errs := validation.ValidateInvite(email); len(errs) > 0 {
		return models.Fail(msgInvalidEmail)
	}

	name, _, _ := strings.Cut(email, "@")
	user, ok := s.insertUser(name, email, models.RoleLearner, models.ActivityUserInvited,
		fmt.Sprintf("Admin created new learner: %s", email))
	if !ok {
		return models.Fail(msgDuplicateEmail)
	}

	return models.Result{
		Success: true,
		Message: fmt.Sprintf("Successfully created user for %s.", email),
		User:    user,
	}
}

// insertUser adds the user unless the email is taken, case-insensitively.
// The uniqueness check and the insert happen in the same update.
func (s *identityService) insertUser(name, email string, role models.Role, activity models.ActivityType, details string) (*models.User, bool) {
	lower := strings.ToLower(email)
	user := &models.User{
		ID:        "user-" + uuid.New().String(),
		Name:      name,
		Email:     lower,
		Role:      role,
		AvatarURL: avatarURLPrefix + lower,
	}

	inserted := false
	s.store.Update(func(tx *store.Tx) {
		if tx.UserByEmailFold(email) != nil {
			return
		}
		tx.InsertUser(user)
		s.audit.record(tx, activity, details)
		inserted = true
	})

	if !inserted {
		s.log.Debug().Str("email", lower).Msg("Email already registered")
		return nil, false
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(role)).
		Msg("User created")
	return user, true
}

// Signup creates the user and makes it the active session
func (s *identityService) Signup(ctx context.Context, name, email string, role models.Role) models.Result {
	result := s.CreateUser(name, email, role)
	if result.Success && result.User != nil {
		s.setSession(ctx, result.User)
	}
	return result
}

// Login activates the session of the user with exactly this email.
// It performs no credential check. The simulated latency is not cancellable.
func (s *identityService) Login(ctx context.Context, email string) bool {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	user := s.store.Snapshot().UserByEmail(email)
	s.metrics.RecordLogin(user != nil)
	if user == nil {
		s.log.Info().Str("email", email).Msg("Login failed: no such user")
		return false
	}

	s.setSession(ctx, user)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return true
}

// Logout clears the active session and its persisted copy
func (s *identityService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.persister.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to clear persisted session")
	}
}

// CurrentUser returns the active session user, or nil
func (s *identityService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Bootstrap restores the active session from the persister. A missing
// session leaves no user; an unreadable one is cleared.
func (s *identityService) Bootstrap(ctx context.Context) {
	data, err := s.persister.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load persisted session")
		return
	}

	user, err := s.RestoreSession(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to parse persisted session")
		if err := s.persister.Clear(ctx); err != nil {
			s.log.Error().Err(err).Msg("Failed to clear persisted session")
		}
		return
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	s.log.Info().Str("user_id", user.ID).Msg("Session restored")
}

// SerializeSession encodes the full user record
func (s *identityService) SerializeSession(user *models.User) ([]byte, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// RestoreSession decodes a user record written by SerializeSession
func (s *identityService) RestoreSession(data []byte) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if user.ID == "" {
		return nil, errors.New("failed to decode session: missing user id")
	}
	return &user, nil
}

// Users returns every user in store order
func (s *identityService) Users() []*models.User {
	return slices.Clone(s.store.Snapshot().Users)
}

func (s *identityService) setSession(ctx context.Context, user *models.User) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	data, err := s.SerializeSession(user)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to serialize session")
		return
	}
	if err := s.persister.Save(ctx, data); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist session")
	}
}
