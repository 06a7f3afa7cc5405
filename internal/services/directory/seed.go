package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	"github.com/louisbranch/crm-console/internal/services/directory/storage"
)

// seedNamespace scopes seeded user ids so reseeding yields the same ids.
var seedNamespace = uuid.MustParse("0b9c5e9e-6c1f-4d8e-9a55-3f0c7f0a2d11")

var (
	seedNames = []string{"ada", "grace", "linus", "margaret", "ken", "barbara", "dennis", "radia", "edsger", "frances"}
	seedRoles = []string{"admin", "editor", "viewer"}
	seedEpoch = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
)

// SeedUser builds the i-th sample user. Ids are name-based UUIDs so the same
// index always maps to the same user.
func SeedUser(i int) usertable.UserRecord {
	name := seedNames[i%len(seedNames)]
	if round := i / len(seedNames); round > 0 {
		name = fmt.Sprintf("%s%d", name, round+1)
	}
	return usertable.UserRecord{
		UserID:    uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("user-%d", i))).String(),
		Username:  name,
		Email:     strings.ToLower(name) + "@example.com",
		Role:      seedRoles[i%len(seedRoles)],
		CreatedAt: seedEpoch.Add(time.Duration(i) * 36 * time.Hour),
	}
}

// Seed inserts n sample users when the store is empty and reports how many
// were written.
func Seed(ctx context.Context, store storage.UserStore, n int) (int, error) {
	if store == nil || n <= 0 {
		return 0, nil
	}
	count, err := store.CountUsers(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	for i := 0; i < n; i++ {
		if err := store.PutUser(ctx, SeedUser(i)); err != nil {
			return i, fmt.Errorf("seed user %d: %w", i, err)
		}
	}
	return n, nil
}
