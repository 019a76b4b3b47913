package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStore(t *testing.T) {
	m := New()

	m.ObserveStore("local", "save", nil)
	m.ObserveStore("local", "save", nil)
	m.ObserveStore("drive", "load", errors.New("offline"))

	if got := testutil.ToFloat64(m.StoreOps.WithLabelValues("local", "save", "ok")); got != 2 {
		t.Errorf("local saves = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.StoreOps.WithLabelValues("drive", "load", "error")); got != 1 {
		t.Errorf("drive load errors = %v, want 1", got)
	}
}

func TestObserveLogin(t *testing.T) {
	m := New()

	m.ObserveLogin(nil)
	m.ObserveLogin(errors.New("bad token"))
	m.ObserveLogin(errors.New("bad token"))

	if got := testutil.ToFloat64(m.Logins.WithLabelValues("error")); got != 2 {
		t.Errorf("failed logins = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.Logins); got != 2 {
		t.Errorf("login series = %d, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.OpenLists.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "groceries_open_lists 3") {
		t.Errorf("exposition does not contain open lists gauge:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("exposition does not contain runtime metrics")
	}
}
