package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_LoginStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" {
			t.Errorf("unexpected body: %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"u1","email":"ada@example.com","role":"user","verified":true}}`))
	})
	mux.HandleFunc("GET /api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing authorization header"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"ada@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL+"/", 5*time.Second)
	ctx := context.Background()

	if _, err := c.Profile(ctx); !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 before login, got %v", err)
	}

	s, err := c.Login(ctx, "ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Token != "tok" || s.User.ID != "u1" {
		t.Fatalf("unexpected session: %+v", s)
	}

	u, err := c.Profile(ctx)
	if err != nil || u.ID != "u1" {
		t.Fatalf("profile: %v %+v", err, u)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
		_, _ = w.Write([]byte(`{"error":"verification code expired or not found"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).VerifyOTP(context.Background(), "ada@example.com", "123456")
	if !IsStatus(err, http.StatusGone) {
		t.Fatalf("expected 410 APIError, got %v", err)
	}
	if err.Error() != "verification code expired or not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestClient_ListJobsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/jobs" || q.Get("department") != "Engineering" || q.Get("open") != "true" || q.Get("limit") != "5" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		if q.Has("location") || q.Has("page") {
			t.Errorf("zero values must be omitted: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"1","title":"Go Intern"}],"pagination":{"total":1,"page":1,"limit":5,"totalPages":1}}`))
	}))
	defer srv.Close()

	page, err := New(srv.URL, time.Second).ListJobs(context.Background(), ListJobsParams{
		Department: "Engineering",
		OpenOnly:   true,
		Limit:      5,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Data) != 1 || page.Pagination.Total != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
