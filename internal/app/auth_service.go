package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blogilista/internal/model"
	"blogilista/internal/pkg/jwtutil"
)

type TokenState int

const (
	TokenAbsent TokenState = iota
	TokenValid
	TokenExpired
	TokenInvalid
)

func (s TokenState) String() string {
	switch s {
	case TokenAbsent:
		return "absent"
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Verification is the outcome of checking a token. UserID and Claims are
// only set when State is TokenValid.
type Verification struct {
	State  TokenState
	UserID uint
	Claims *jwtutil.Claims
}

// Err maps the state to the matching sentinel error, nil when valid.
func (v Verification) Err() error {
	switch v.State {
	case TokenValid:
		return nil
	case TokenAbsent:
		return ErrTokenMissing
	case TokenExpired:
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}

type AuthService struct {
	userRepo      UserStore
	denylist      TokenDenylist
	jwtSecret     string
	jwtExpiration time.Duration
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

// NewAuthService builds the auth gate. denylist may be nil, in which case
// tokens cannot be revoked before they expire.
func NewAuthService(userRepo UserStore, denylist TokenDenylist, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		denylist:      denylist,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// VerifyToken checks signature, expiry and revocation without touching the
// user table.
func (s *AuthService) VerifyToken(ctx context.Context, token string) Verification {
	if token == "" {
		return Verification{State: TokenAbsent}
	}

	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		if errors.Is(err, jwtutil.ErrTokenExpired) {
			return Verification{State: TokenExpired}
		}
		return Verification{State: TokenInvalid}
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Printf("check token revocation failed: %v", err)
			return Verification{State: TokenInvalid}
		}
		if revoked {
			return Verification{State: TokenInvalid}
		}
	}

	return Verification{State: TokenValid, UserID: claims.UserID, Claims: claims}
}

// Authenticate verifies the token and resolves it to an existing user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	v := s.VerifyToken(ctx, token)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}
	return user, nil
}

// Authorize authenticates the token and requires its user to be ownerID.
func (s *AuthService) Authorize(ctx context.Context, token string, ownerID uint) (*model.User, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.ID != ownerID {
		return nil, ErrForbidden
	}
	return user, nil
}

// Logout revokes the token for the rest of its lifetime. Without a denylist
// there is nothing to record and the call only validates the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	v := s.VerifyToken(ctx, token)
	if err := v.Err(); err != nil {
		return err
	}
	if s.denylist == nil || v.Claims.ID == "" {
		return nil
	}

	ttl := time.Until(v.Claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, v.Claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token failed: %w", err)
	}
	return nil
}
