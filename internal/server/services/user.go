// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, session
// token issuance/invalidation, email verification, and profile updates.
package services

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/config"
	"github.com/dmitrijs2005/contactbook/internal/server/mail"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

// AvatarStore writes an uploaded avatar and returns its public URL.
// The write blocks the calling request.
type AvatarStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// UserService provides authentication-related operations:
//   - Register / Login / Logout: credential lifecycle
//   - Authenticate: bearer-token resolution for the middleware
//   - GetCurrent / UpdateSubscription / UpdateAvatar: self-service profile
//   - Verify / ResendVerification: email verification flow
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	mailer                mail.Mailer
	avatars               AvatarStore
	logger                logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
	baseURL               string
}

// NewUserService constructs a UserService using repositories, collaborators,
// and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer,
	avatars AvatarStore, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		mailer:                mailer,
		avatars:               avatars,
		logger:                logger.With("module", "user_service"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
		baseURL:               strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// GravatarURL derives the avatar location from the email alone, so every
// fresh account gets a stable identicon.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=250&d=retro", sum)
}

// Register creates a new user with a hashed password, a gravatar-derived
// avatar and a fresh verification token, then dispatches the verification
// email best-effort: a failed send is logged, never surfaced.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	digest, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	verificationToken, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:             email,
		PasswordHash:      digest,
		Subscription:      models.SubscriptionStarter,
		VerificationToken: verificationToken,
		AvatarURL:         GravatarURL(email),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	go func() {
		link := s.verificationLink(verificationToken)
		if err := s.mailer.SendVerificationEmail(context.Background(), u.Email, link); err != nil {
			s.logger.Error(context.Background(), "verification email failed", "email", u.Email, "error", err.Error())
		}
	}()

	return u, nil
}

// Login verifies the credentials and, on success, issues a session token and
// persists it as the user's single current token, superseding any earlier
// session. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	if err := repo.UpdateToken(ctx, user.ID, &token); err != nil {
		return "", nil, common.ErrorInternal
	}

	user.Token = token
	return token, user, nil
}

// Authenticate resolves a bearer token to its user. The token must carry a
// valid signature, be unexpired, and match the user's stored current token;
// a logged-out user (empty stored token) rejects every token. All failure
// causes collapse into ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if user.Token == "" || subtle.ConstantTimeCompare([]byte(user.Token), []byte(tokenString)) != 1 {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Logout clears the stored current token, invalidating every token issued
// so far. Safe to repeat: the second call fails upstream at authentication.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	repo := s.repomanager.Users(s.db)
	if err := repo.UpdateToken(ctx, userID, nil); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	return nil
}

// GetCurrent returns the profile of the authenticated user.
func (s *UserService) GetCurrent(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// UpdateSubscription switches the authenticated user to another tier. The
// value is assumed schema-checked by the caller.
func (s *UserService) UpdateSubscription(ctx context.Context, userID, subscription string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.UpdateSubscription(ctx, userID, subscription)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Verify marks the account owning verificationToken as verified and burns
// the token. Lookup and update run in one transaction so two concurrent
// clicks on the same link cannot interleave between them.
func (s *UserService) Verify(ctx context.Context, verificationToken string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		user, err := repo.GetByVerificationToken(ctx, verificationToken)
		if err != nil {
			return err
		}
		return repo.MarkVerified(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// ResendVerification sends a fresh verification email synchronously: unlike
// the registration-time send, delivery is this operation's entire effect,
// so failures surface.
func (s *UserService) ResendVerification(ctx context.Context, email string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if user.Verify {
		return common.ErrAlreadyVerified
	}
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, s.verificationLink(user.VerificationToken)); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// UpdateAvatar stores the uploaded image and persists its URL. The object
// write is synchronous: the response must not report an URL that does not
// exist yet.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, body io.Reader, contentType string) (string, error) {
	key := avatarStorageKey(userID)
	url, err := s.avatars.Put(ctx, key, body, contentType)
	if err != nil {
		return "", common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}
	return user.AvatarURL, nil
}

func (s *UserService) verificationLink(token string) string {
	return s.baseURL + "/api/users/verify/" + token
}
