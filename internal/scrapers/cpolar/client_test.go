package cpolar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cpolar-export/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "user@example.com"
	testPassword = "hunter2"
	testCsrf     = "tok-123"
)

// fakeDashboard mimics the login + status flow of the dashboard: a login form
// with an anti-forgery token, a session cookie on success, and a redirect
// back to /login on bad credentials.
func fakeDashboard(t *testing.T, statusHtml string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `<html><body><form method="post">
<input type="hidden" name="csrf_token" value="%s" />
<input name="login" /><input name="password" type="password" />
</form></body></html>`, testCsrf)
			return
		}

		if r.PostFormValue("csrf_token") != testCsrf {
			http.Error(w, "bad anti-forgery token", http.StatusForbidden)
			return
		}
		if r.PostFormValue("login") != testEmail || r.PostFormValue("password") != testPassword {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "sess-1", Path: "/"})
		http.Redirect(w, r, "/status", http.StatusFound)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "sess-1" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		fmt.Fprint(w, statusHtml)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClientLoginAndStatusPage(t *testing.T) {
	server := fakeDashboard(t, statusPage)

	client, err := NewClient(server.URL, telemetry.SlogAPI{})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testEmail, testPassword))

	page, err := client.StatusPage(ctx)
	require.NoError(t, err)
	require.Contains(t, page, "svc1")

	records, err := Extract(page)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestClientLoginRejected(t *testing.T) {
	server := fakeDashboard(t, statusPage)

	client, err := NewClient(server.URL, telemetry.NopAPI{})
	require.NoError(t, err)

	err = client.Login(context.Background(), testEmail, "wrong")
	require.True(t, errors.Is(err, ErrAuth), "got %v", err)
}

func TestClientLoginPageUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, telemetry.NopAPI{})
	require.NoError(t, err)

	err = client.Login(context.Background(), testEmail, testPassword)
	require.True(t, errors.Is(err, ErrAuth), "got %v", err)
}

func TestClientStatusPageError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, telemetry.NopAPI{})
	require.NoError(t, err)

	_, err = client.StatusPage(context.Background())
	require.True(t, errors.Is(err, ErrFetch), "got %v", err)
}

func TestClientTunnels(t *testing.T) {
	server := fakeDashboard(t, statusPage)

	client, err := NewClient(server.URL, telemetry.SlogAPI{})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testEmail, testPassword))

	records, err := client.Tunnels(ctx)
	require.NoError(t, err)
	require.Equal(t, "svc1", records[0].Name)
}
