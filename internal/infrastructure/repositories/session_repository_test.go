package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/creostudios/studiosvc/domain"
)

func setupSessionRepo(t *testing.T) (domain.SessionRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionRepository(client, time.Hour), mr
}

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_abc",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mr.Exists("session:sess_abc") {
		t.Fatal("expected session key in redis")
	}

	found, err := repo.FindByID(ctx, "sess_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("expected user ID 1, got %d", found.UserID)
	}
}

func TestSessionRepositoryImpl_FindMissing(t *testing.T) {
	repo, _ := setupSessionRepo(t)

	_, err := repo.FindByID(context.Background(), "sess_nope")
	if err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryImpl_ExpiredSessionEvicted(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_old",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.FindByID(ctx, "sess_old")
	if err != domain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	// The stale key is removed on read
	if mr.Exists("session:sess_old") {
		t.Error("expected expired session key to be deleted")
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_gone",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, "sess_gone"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists("session:sess_gone") {
		t.Error("expected session key to be deleted")
	}

	// Deleting an absent session is not an error
	if err := repo.Delete(ctx, "sess_gone"); err != nil {
		t.Errorf("unexpected error on repeated delete: %v", err)
	}
}

func TestSessionRepositoryImpl_TTLApplied(t *testing.T) {
	repo, mr := setupSessionRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_ttl",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ttl := mr.TTL("session:sess_ttl"); ttl != time.Hour {
		t.Errorf("expected one hour TTL, got %v", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := repo.FindByID(ctx, "sess_ttl"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}
