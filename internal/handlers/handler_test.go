// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"argeinventory/internal/cache"
	"argeinventory/internal/database"
	"argeinventory/internal/middleware"
	"argeinventory/internal/models"
	"argeinventory/internal/render"
	"argeinventory/internal/session"
	"argeinventory/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "argeinventory")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "argeinventory")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "flash:*", "view:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Renderer   *render.Renderer
	Sessions   *session.Store
	UserStore  *store.UserStore
	Categories *store.CategoryStore
	Snapshots  *cache.SnapshotCache
	Admin      *Admin
	Auth       *Auth
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	categories := store.NewCategoryStore(db)
	snapshots := cache.NewSnapshotCache(vk, time.Minute)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Renderer:   renderer,
		Sessions:   sessions,
		UserStore:  userStore,
		Categories: categories,
		Snapshots:  snapshots,
		Admin:      NewAdmin(renderer, sessions, categories, snapshots, language.English),
		Auth:       NewAuth(renderer, sessions, userStore),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// testUser creates a throwaway account with the given password and removes
// it when the test ends.
func testUser(t *testing.T, env *testEnv, password string) *models.User {
	t.Helper()
	email := "handler-" + uuid.NewString()[:8] + "@test.local"
	u, err := env.UserStore.Create(email, password, "Handler Test", models.RoleStaff)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testCategory inserts a category with a unique name and removes it when
// the test ends.
func testCategory(t *testing.T, env *testEnv, prefix string) *models.Category {
	t.Helper()
	c, err := env.Categories.Create(&models.Category{
		Name:  prefix + " " + uuid.NewString()[:8],
		Color: models.ColorGreen,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM product_categories WHERE id = $1", c.ID)
	})
	return c
}

// sessionRequest attaches a live session cookie to r so that flashes can
// be queued and read back. The session is also placed in the context the
// way LoadSession would.
func sessionRequest(t *testing.T, env *testEnv, r *http.Request, role string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	data := testSession(uuid.New(), role+"@test.local", role, true)
	if _, err := env.Sessions.Create(context.Background(), rec, data); err != nil {
		t.Fatalf("create session: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r.WithContext(ctxWithSession(r.Context(), data))
}

// asRole places a session with role in the context of r, without a cookie.
func asRole(r *http.Request, role string) *http.Request {
	return r.WithContext(ctxWithSession(r.Context(), testSession(uuid.New(), role+"@test.local", role, true)))
}
