package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/domain/entity"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
	"github.com/javnievic/comparte-tu-tiempo/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

type UserService struct {
	Repo        repository.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Location    string
	Description string
}

// Register creates an account with a bcrypt-hashed password and queues a
// welcome email. The email uniqueness check races with the unique index;
// the index has the last word.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:       in.Email,
		Password:    hash,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Location:    in.Location,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{To: u.Email, Template: "welcome", Data: map[string]any{"Name": u.FirstName}}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}
	return u, nil
}

// Authenticate validates email/password. Deactivated accounts fail exactly
// like a wrong password so callers cannot probe account state.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the token pair and the session id.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil || !u.IsActive {
		return TokenPair{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, u)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

// actor loads the acting principal; a vanished or deactivated actor is
// treated as bad credentials, not as forbidden.
func (s *UserService) actor(ctx context.Context, actorID string) (Actor, error) {
	u, err := s.Repo.GetByID(ctx, actorID)
	if err != nil || !u.IsActive {
		return Actor{}, ErrInvalidCredentials
	}
	return Actor{ID: u.ID, Superuser: u.IsSuperuser}, nil
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Location    *string
	Description *string
}

// UpdateProfile applies a partial update to profile fields. Only the owner
// or a superuser may do this.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, targetID string, in UpdateProfileInput) (*entity.User, error) {
	target, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, target, OwnerOrSuperuser); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		target.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		target.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		target.PhoneNumber = *in.PhoneNumber
	}
	if in.Location != nil {
		target.Location = *in.Location
	}
	if in.Description != nil {
		target.Description = *in.Description
	}
	if err := s.Repo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Deactivate soft-deletes an account: the row stays, the active flag drops
// and the display name becomes the removed-account sentinel. Repeating the
// call on an inactive account succeeds without touching anything.
func (s *UserService) Deactivate(ctx context.Context, actorID, targetID string) (*entity.User, error) {
	target, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !target.IsActive {
		// idempotent: repeating the delete succeeds without writing. The
		// owner's own session is gone by now, so skip the actor lookup
		// when they delete themselves a second time.
		if actorID == targetID {
			return target, nil
		}
		actor, err := s.actor(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if err := Authorize(actor, target, OwnerOrSuperuser); err != nil {
			return nil, err
		}
		return target, nil
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, target, OwnerOrSuperuser); err != nil {
		return nil, err
	}

	target.IsActive = false
	target.FirstName = entity.RemovedAccountName
	target.LastName = ""
	if err := s.Repo.Update(ctx, target); err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, sessionKey(target.ID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", target.ID).Warn("session cleanup failed")
		}
	}
	return target, nil
}
