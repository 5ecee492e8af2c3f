package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/repository"
	"news-portal/internal/service/auth"
	"news-portal/internal/usecase/activity"
)

// SignupInput represents the input parameters for creating an account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileInput represents a profile update. Fields with nil values will not be updated.
type ProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Session is a logged-in user with the token issued for it.
type Session struct {
	User  *entity.User
	Token auth.IssuedToken
}

// Service provides account use cases.
type Service struct {
	Repo     repository.UserRepository
	Tokens   repository.TokenRepository
	Issuer   *auth.TokenService
	Hasher   auth.Hasher
	Policy   auth.PasswordPolicy
	Activity activity.Recorder
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) recorder() activity.Recorder {
	if s.Activity == nil {
		return activity.Discard
	}
	return s.Activity
}

// Signup creates a user-role account and logs it in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if err := entity.ValidateName(name); err != nil {
		return nil, err
	}
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.Policy.Check(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		metrics.RecordAuthAttempt("signup", false)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RecordAuthAttempt("signup", true)

	s.recorder().Record(ctx, activity.Entry{
		ActorID:   u.ID,
		Target:    entity.LogTargetUser,
		TargetID:  u.ID,
		Operation: entity.OperationCreate,
		Payload:   activity.UserSnapshot(u),
	})

	tok, err := s.Issuer.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: tok}, nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if u == nil {
		metrics.RecordAuthAttempt("login", false)
		return nil, ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(u.PasswordHash, password); err != nil {
		metrics.RecordAuthAttempt("login", false)
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	metrics.RecordAuthAttempt("login", true)

	tok, err := s.Issuer.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: tok}, nil
}

// Logout revokes the token identified by jti until it would have expired.
func (s *Service) Logout(ctx context.Context, actor entity.Actor, jti string, expiresAt time.Time) error {
	if actor.IsAnonymous() || jti == "" {
		return errAnonymous
	}
	err := s.Tokens.Revoke(ctx, entity.RevokedToken{JTI: jti, UserID: actor.UserID, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been logged out.
func (s *Service) IsRevoked(ctx context.Context, jti string) (bool, error) {
	revoked, err := s.Tokens.IsRevoked(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

// Profile returns the actor's own account.
func (s *Service) Profile(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	if actor.IsAnonymous() {
		return nil, errAnonymous
	}
	u, err := s.Repo.Get(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile changes the actor's name, email and/or password.
func (s *Service) UpdateProfile(ctx context.Context, actor entity.Actor, in ProfileInput) (*entity.User, error) {
	u, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}
	before := activity.UserSnapshot(u)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := entity.ValidateName(name); err != nil {
			return nil, err
		}
		u.Name = name
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if err := entity.ValidateEmail(email); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.Password != nil {
		if err := s.Policy.Check(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	changes := activity.Diff(before, activity.UserSnapshot(u))
	if in.Password != nil {
		changes["password"] = activity.Change{Old: "[redacted]", New: "[redacted]"}
	}
	if len(changes) > 0 {
		s.recorder().Record(ctx, activity.Entry{
			ActorID:   actor.UserID,
			Target:    entity.LogTargetUser,
			TargetID:  u.ID,
			Operation: entity.OperationUpdate,
			Payload:   changes,
		})
	}
	return u, nil
}
