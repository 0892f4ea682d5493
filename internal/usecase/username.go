package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
)

// usernameAttempts bounds the checked phase of allocation.
const usernameAttempts = 10

// UsernameAllocator derives a human-readable username from a person's name,
// checking candidates against the account store. The check and the later
// insert are separate round trips, so a concurrent registration with the
// same base name can still collide; the store's unique constraint is the
// backstop.
type UsernameAllocator struct {
	users domain.UserRepository
}

func NewUsernameAllocator(users domain.UserRepository) *UsernameAllocator {
	return &UsernameAllocator{users: users}
}

func fourDigitSuffix() string {
	var b [4]byte
	for i := range b {
		b[i] = byte('0' + rand.Intn(10))
	}
	return string(b[:])
}

// tryAllocate is the bounded-retry phase: up to usernameAttempts candidates
// with a 4-digit suffix, each checked against the store. The second return
// is false when every candidate was taken.
func (a *UsernameAllocator) tryAllocate(ctx context.Context, base string) (string, bool, error) {
	for i := 0; i < usernameAttempts; i++ {
		candidate := base + fourDigitSuffix()
		exists, err := a.users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", false, err
		}
		if !exists {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// Generate returns a username of the form lowercase(first)+lowercase(last)+
// numeric suffix. When the bounded phase exhausts its attempts it falls back
// to a wide random suffix in [10000, 99999] that is deliberately not
// re-checked against the store.
func (a *UsernameAllocator) Generate(ctx context.Context, firstName, lastName string) (string, error) {
	base := strings.ToLower(firstName) + strings.ToLower(lastName)

	username, ok, err := a.tryAllocate(ctx, base)
	if err != nil {
		return "", err
	}
	if ok {
		return username, nil
	}
	return fmt.Sprintf("%s%d", base, 10000+rand.Intn(90000)), nil
}
