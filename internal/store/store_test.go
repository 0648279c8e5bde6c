package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pritapia/internal/domain"
	"pritapia/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Session{}, &domain.AuditLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return store.New(db)
}

func TestUserStoreRoundTrip(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	u := &domain.User{
		Username: "maria",
		Email:    "maria@example.org",
		Password: "$2a$10$notarealhashnotarealhashnotarealha",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if err := st.Users().Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := st.Users().GetByUsername(ctx, "maria")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got.ID != u.ID || got.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := st.Users().GetByUsername(ctx, "nobody"); err != store.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserStoreLastLoginAndPassword(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	u := &domain.User{Username: "joao", Password: "old"}
	if err := st.Users().Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := st.Users().UpdateLastLogin(ctx, u.ID, at); err != nil {
		t.Fatalf("update last login: %v", err)
	}
	if err := st.Users().UpdatePassword(ctx, u.ID, "new-hash"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	got, err := st.Users().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Fatalf("lastLogin not persisted: %v", got.LastLogin)
	}
	if got.Password != "new-hash" {
		t.Fatalf("password not updated: %q", got.Password)
	}
}

func TestUserStoreActivateByToken(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	token := "deadbeefdeadbeefdeadbeefdeadbeef"
	u := &domain.User{Username: "ana", Password: "x", ActivationToken: &token}
	if err := st.Users().Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := st.Users().ActivateByToken(ctx, token); err != nil {
		t.Fatalf("activate: %v", err)
	}
	got, _ := st.Users().GetByID(ctx, u.ID)
	if !got.IsActive {
		t.Fatal("expected active user")
	}
	if got.ActivationToken != nil {
		t.Fatalf("expected token cleared, got %v", *got.ActivationToken)
	}

	// Second use of the same token must fail.
	if err := st.Users().ActivateByToken(ctx, token); err != store.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound on reuse, got %v", err)
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	sess := &domain.Session{
		Token:     "tok-1",
		UserID:    "202601021504051234",
		Username:  "maria",
		Role:      domain.RoleUser,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := st.Sessions().Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.Sessions().GetByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "maria" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := st.Sessions().RevokeByToken(ctx, "tok-1", now); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := st.Sessions().GetByToken(ctx, "tok-1"); err != store.ErrRecordNotFound {
		t.Fatalf("expected revoked session to be gone, got %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := &domain.Session{
		Token:     "tok-old",
		UserID:    "u1",
		Username:  "maria",
		Role:      domain.RoleUser,
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	if err := st.Sessions().Create(ctx, expired); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := st.Sessions().GetByToken(ctx, "tok-old"); err != store.ErrRecordNotFound {
		t.Fatalf("expected expired session to be invisible, got %v", err)
	}

	n, err := st.Sessions().PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged row, got %d", n)
	}
}

func TestAuditLogStoreListOrderAndFilter(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	rows := []domain.AuditLog{
		{Action: "Authentication operation", Actor: "maria", Module: "Authentication", Details: "User logged in successfully", Timestamp: base},
		{Action: "Authentication operation", Actor: "joao", Module: "Authentication", Details: "Failed login attempt", Timestamp: base.Add(time.Minute)},
		{Action: "User Management operation", Actor: "System", Module: "User Management", Details: "New user created", Timestamp: base.Add(2 * time.Minute)},
	}
	for i := range rows {
		if err := st.AuditLogs().Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := st.AuditLogs().List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	if all[0].Module != "User Management" {
		t.Fatalf("expected newest first, got %+v", all[0])
	}

	auth, err := st.AuditLogs().List(ctx, "Authentication", 1)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(auth) != 1 || auth[0].Actor != "joao" {
		t.Fatalf("unexpected filtered rows: %+v", auth)
	}

	got, err := st.AuditLogs().GetByID(ctx, rows[0].ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Details != "User logged in successfully" {
		t.Fatalf("unexpected row: %+v", got)
	}
}
