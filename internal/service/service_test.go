package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/groceries/internal/auth"
	"github.com/mmynk/groceries/internal/middleware"
	"github.com/mmynk/groceries/internal/storage/sqlite"
	"github.com/mmynk/groceries/pkg/api"
	"github.com/mmynk/groceries/pkg/api/apiconnect"
)

type testEnv struct {
	server  *httptest.Server
	store   *sqlite.SQLiteStore
	grocery *GroceryService
	auth    apiconnect.AuthServiceClient
}

// setupTestServer starts both services over a temp SQLite database with the
// customers alice (token "alice-token") and bob (token "bob-token").
func setupTestServer(t *testing.T, opts ...GroceryOption) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewTokenAuthenticator(store)
	for _, id := range []string{"alice", "bob"} {
		if _, err := authenticator.Register(context.Background(), id, id+"-token"); err != nil {
			t.Fatalf("failed to register %s: %v", id, err)
		}
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	env := &testEnv{store: store}
	env.grocery = NewGroceryService(store, opts...)
	authSvc := NewAuthService(authenticator, jwtManager, slog.Default(), OnLogout(env.grocery.Forget))

	groceryPath, groceryHandler := apiconnect.NewGroceryServiceHandler(env.grocery,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)),
	)
	authPath, authHandler := apiconnect.NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	)

	mux := http.NewServeMux()
	mux.Handle(groceryPath, groceryHandler)
	mux.Handle(authPath, authHandler)

	env.server = httptest.NewServer(mux)
	t.Cleanup(env.server.Close)

	env.auth = apiconnect.NewAuthServiceClient(http.DefaultClient, env.server.URL)
	return env
}

// bearer adds the Authorization header to every request of a client.
func bearer(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

func (env *testEnv) login(t *testing.T, customerID string) string {
	t.Helper()

	resp, err := env.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		CustomerID: customerID,
		AppToken:   customerID + "-token",
	}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", customerID, err)
	}
	return resp.Msg.Token
}

// client logs customerID in and returns a grocery client for the session.
func (env *testEnv) client(t *testing.T, customerID string) apiconnect.GroceryServiceClient {
	t.Helper()
	return apiconnect.NewGroceryServiceClient(http.DefaultClient, env.server.URL, bearer(env.login(t, customerID)))
}

// isOpen reports whether ownerID has a list in memory.
func (env *testEnv) isOpen(ownerID string) bool {
	env.grocery.mu.Lock()
	defer env.grocery.mu.Unlock()
	_, ok := env.grocery.lists[ownerID]
	return ok
}

func ptr[T any](v T) *T { return &v }

func expectCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if connect.CodeOf(err) != code {
		t.Fatalf("expected %v error, got %v", code, err)
	}
}
