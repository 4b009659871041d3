package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shopsync/internal/models"
	"shopsync/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is the single error surfaced for any token verification
// failure. Malformed, expired and tampered tokens are indistinguishable to the
// caller so that none of the sub-reasons leak to clients.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the per-request identity derived from a verified token.
type TokenClaims struct {
	SubjectID string
	Admin     bool
}

// CustomClaims holds the claims persisted on a user record, consulted when a
// token does not assert the admin capability itself.
type CustomClaims struct {
	Admin bool `json:"admin"`
}

// AuthService plays the identity provider: it issues and verifies bearer
// tokens and owns the persisted custom claims.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them.
// Accounts never start with the admin claim; it is granted via SetAdminClaim.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existingUser, err := s.userRepo.GetByUsername(user.Username); err == nil && existingUser != nil {
		return fmt.Errorf("username '%s' already taken", user.Username)
	}
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Admin = false

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a signed token if successful.
// The admin claim held on the record at login time is embedded in the token.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"admin":   user.Admin,
		"exp":     time.Now().Add(s.tokenDuration).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken parses and validates a bearer token, returning the caller
// identity if valid. Every failure collapses to ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token verification error: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subjectID, ok := claims["user_id"].(string)
	if !ok || subjectID == "" {
		return nil, ErrInvalidToken
	}

	admin, _ := claims["admin"].(bool)
	return &TokenClaims{
		SubjectID: subjectID,
		Admin:     admin,
	}, nil
}

// FetchCustomClaims looks up the claims persisted on a subject's record. Used
// as a fallback when the token itself does not assert the admin capability.
func (s *AuthService) FetchCustomClaims(subjectID string) (*CustomClaims, error) {
	user, err := s.userRepo.GetByID(subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch custom claims for %s: %w", subjectID, err)
	}
	return &CustomClaims{Admin: user.Admin}, nil
}

// SetAdminClaim persists the admin custom claim on a subject's record. Tokens
// issued before the grant pick it up through the FetchCustomClaims fallback.
func (s *AuthService) SetAdminClaim(subjectID string) error {
	if err := s.userRepo.SetAdmin(subjectID, true); err != nil {
		return fmt.Errorf("failed to set admin claim for %s: %w", subjectID, err)
	}
	return nil
}
