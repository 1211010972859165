package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Separator splits the user id from the secret in a bearer token.
const Separator = ":"

type Servicer interface {
	Validate(ctx context.Context, token string) (string, error)
}

// Credentials is a freshly issued API token together with the hash to configure.
type Credentials struct {
	UserID string
	Token  string
	Hash   string
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

var _ Servicer = (*Service)(nil)

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "session_service"),
	}
}

// Validate checks a "<user>:<secret>" token and returns the user id.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	userID, secret, ok := strings.Cut(token, Separator)
	if !ok || userID == "" || secret == "" {
		return "", ErrInvalidToken
	}

	hash, err := s.repo.Hash(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("lookup token hash: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		s.log.Debug("token rejected", "user_id", userID)
		return "", ErrInvalidToken
	}
	return userID, nil
}

// HashSecret returns the bcrypt hash of secret.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// Issue generates a random secret for userID.
func Issue(userID string) (Credentials, error) {
	if userID == "" || strings.Contains(userID, Separator) || strings.Contains(userID, ",") {
		return Credentials{}, fmt.Errorf("invalid user id %q", userID)
	}

	// Генерация секрета
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return Credentials{}, fmt.Errorf("generate secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	hash, err := HashSecret(secret)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{
		UserID: userID,
		Token:  userID + Separator + secret,
		Hash:   hash,
	}, nil
}
