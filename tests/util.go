package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/skillboost/core/user"
	"github.com/trezcool/skillboost/storage/database"
)

const testDatabaseURLEnv = "TEST_DATABASE_URL"

// OpenDB opens the test postgres database at a clean schema version.
// The test is skipped when TEST_DATABASE_URL is not set.
func OpenDB(t *testing.T) *sqlx.DB {
	dsn := os.Getenv(testDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	ctx := context.Background()
	db, err := database.OpenURL(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, cmd := range []string{"reset", "up"} {
		if err = database.Migrate(ctx, db, cmd); err != nil {
			t.Fatalf("OpenDB() failed: %v", err)
		}
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, name, email string, role user.Role, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr, err := repo.CreateUser(context.Background(), user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
