package session

import (
	"context"
	"fmt"
)

// Repository resolves the stored bcrypt hash of a user's API secret.
type Repository interface {
	Hash(ctx context.Context, userID string) (string, error)
}

// StaticRepository serves hashes from configuration.
type StaticRepository struct {
	hashes map[string]string
}

func NewStaticRepository(hashes map[string]string) *StaticRepository {
	cp := make(map[string]string, len(hashes))
	for user, hash := range hashes {
		cp[user] = hash
	}
	return &StaticRepository{hashes: cp}
}

func (r *StaticRepository) Hash(_ context.Context, userID string) (string, error) {
	hash, ok := r.hashes[userID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, userID)
	}
	return hash, nil
}

// Len returns the number of configured users.
func (r *StaticRepository) Len() int { return len(r.hashes) }
