package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/groceries/internal/auth"
	"github.com/mmynk/groceries/internal/metrics"
	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/pkg/api"
)

// capture returns a UnaryFunc recording the owner id it was called with.
func capture(owner *string, called *bool) connect.UnaryFunc {
	return func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		*called = true
		*owner = GetOwnerID(ctx)
		return connect.NewResponse(&api.GetViewResponse{}), nil
	}
}

func newRequest(authorization string) *connect.Request[api.GetViewRequest] {
	req := connect.NewRequest(&api.GetViewRequest{})
	if authorization != "" {
		req.Header().Set("Authorization", authorization)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwt.Generate(models.NewCustomer("famille-tremblay", ""))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name      string
		header    string
		wantOwner string
		wantCode  connect.Code
	}{
		{name: "valid token", header: "Bearer " + token, wantOwner: "famille-tremblay"},
		{name: "missing header", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic " + token, wantCode: connect.CodeUnauthenticated},
		{name: "invalid token", header: "Bearer nope", wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var owner string
			var called bool
			_, err := RequireAuth(jwt)(capture(&owner, &called))(context.Background(), newRequest(tt.header))

			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected code %v, got %v", tt.wantCode, err)
				}
				if called {
					t.Error("handler called without authentication")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner != tt.wantOwner {
				t.Errorf("owner = %q, want %q", owner, tt.wantOwner)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	token, _ := jwt.Generate(models.NewCustomer("coloc-plateau", ""))

	tests := []struct{ header, want string }{
		{"", ""},
		{"Bearer garbage", ""},
		{"Bearer " + token, "coloc-plateau"},
		{"Token " + token, ""},
	}
	for _, tt := range tests {
		header, want := tt.header, tt.want
		var owner string
		var called bool
		if _, err := OptionalAuth(jwt)(capture(&owner, &called))(context.Background(), newRequest(header)); err != nil {
			t.Fatalf("unexpected error for %q: %v", header, err)
		}
		if !called || owner != want {
			t.Errorf("header %q: owner = %q, want %q", header, owner, want)
		}
	}
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New()
	failing := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	})
	var owner string
	var called bool

	intercept := MetricsInterceptor(m)
	intercept(capture(&owner, &called))(context.Background(), newRequest(""))
	intercept(failing)(context.Background(), newRequest(""))
	intercept(failing)(context.Background(), newRequest(""))

	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "ok")); got != 1 {
		t.Errorf("ok calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "invalid_argument")); got != 2 {
		t.Errorf("failed calls = %v, want 2", got)
	}
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	var owner string
	var called bool
	ctx := WithOwnerID(context.Background(), "famille-tremblay")

	resp, err := LoggingInterceptor()(capture(&owner, &called))(ctx, newRequest(""))
	if err != nil || resp == nil {
		t.Fatalf("unexpected result %v, %v", resp, err)
	}
	if owner != "famille-tremblay" {
		t.Errorf("owner = %q, want famille-tremblay", owner)
	}
}
