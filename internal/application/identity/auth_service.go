package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	domainidentity "github.com/autoparts/backend/internal/domain/identity"
	"github.com/autoparts/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultResetCodeTTL is how long a password reset code stays valid
const DefaultResetCodeTTL = 15 * time.Minute

// AuthService handles registration, login and the password reset flow.
// Reset codes are logged instead of mailed; there is no mail integration.
type AuthService struct {
	users        domainidentity.UserRepository
	hasher       PasswordHasher
	tokens       TokenIssuer
	resetCodes   ResetCodeStore
	resetCodeTTL time.Duration
	logger       *zap.Logger
}

// NewAuthService creates an auth service
func NewAuthService(
	users domainidentity.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	resetCodes ResetCodeStore,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		resetCodes:   resetCodes,
		resetCodeTTL: DefaultResetCodeTTL,
		logger:       logger,
	}
}

// Register creates a buyer account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if len(req.Password) < 6 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password must be at least 6 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := domainidentity.NewUser(req.Name, email, hash, domainidentity.RoleBuyer)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.login(user)
}

// Login verifies credentials and mints a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return s.login(user)
}

// ForgotPassword generates a 6-digit reset code for the account.
// The code is written to the log in lieu of email delivery. An unknown
// email gets the same success answer to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	if err := s.resetCodes.Put(ctx, email, code, s.resetCodeTTL); err != nil {
		return err
	}

	s.logger.Info("password reset code issued",
		zap.String("email", email),
		zap.String("code", code),
		zap.Duration("ttl", s.resetCodeTTL))

	return nil
}

// VerifyResetCode checks a code without consuming it
func (s *AuthService) VerifyResetCode(ctx context.Context, req VerifyResetRequest) error {
	return s.checkResetCode(ctx, req.Email, req.Code)
}

// ResetPassword consumes a valid code, updates the password and logs the
// user in
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*AuthResponse, error) {
	if len(req.NewPassword) < 6 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password must be at least 6 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkResetCode(ctx, email, req.Code); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, shared.ErrInvalidResetCode
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := user.ChangePassword(hash); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.resetCodes.Delete(ctx, email); err != nil {
		s.logger.Warn("failed to invalidate reset code", zap.String("email", email), zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID.String()))

	return s.login(user)
}

func (s *AuthService) login(user *domainidentity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

func (s *AuthService) checkResetCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	stored, err := s.resetCodes.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored == "" || code == "" || stored != code {
		return shared.ErrInvalidResetCode
	}
	return nil
}

// generateResetCode produces a 6-digit numeric code
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.New("failed to generate reset code")
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
