package commands

import (
	"bytes"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/codeblaze/portal/internal/api"
	"github.com/codeblaze/portal/internal/core/ports"
	"github.com/codeblaze/portal/internal/core/service"
	"github.com/codeblaze/portal/internal/infrastructure/db/memory"
)

type mailbox struct {
	mu    sync.Mutex
	mails []ports.Mail
}

func (m *mailbox) Enqueue(mail ports.Mail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, mail)
}

func (m *mailbox) lastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.mails) == 0 {
		return ""
	}
	return m.mails[len(m.mails)-1].Text
}

// otpReader answers the code prompt with the OTP from the last mail.
type otpReader struct {
	box  *mailbox
	done bool
}

var sixDigits = regexp.MustCompile(`\b\d{6}\b`)

func (r *otpReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	r.done = true
	return copy(p, sixDigits.FindString(r.box.lastText())+"\n"), nil
}

func newBackend(t *testing.T) (*httptest.Server, *mailbox) {
	t.Helper()
	log := zerolog.Nop()
	box := &mailbox{}
	reg := prometheus.NewRegistry()
	router := api.NewRouter(api.Dependencies{
		Jobs: service.NewJobService(memory.NewJobRepository(), log),
		Auth: service.NewAuthService(memory.NewUserRepository(), memory.NewCodeStore(), box, nil, service.AuthConfig{
			JWTSecret:   "test-secret",
			FrontendURL: "http://localhost:3000",
		}, log),
		JWTSecret:  "test-secret",
		Logger:     log,
		Registerer: reg,
		Gatherer:   reg,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, box
}

func execute(t *testing.T, srv *httptest.Server, in io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if in != nil {
		cmd.SetIn(in)
	}
	cmd.SetArgs(append([]string{"--backend-url", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAuthctl_RegisterLoginReset(t *testing.T) {
	srv, box := newBackend(t)

	out, err := execute(t, srv, &otpReader{box: box},
		"register", "--name", "Ada", "--email", "ada@example.com", "--password", "secret123")
	if err != nil {
		t.Fatalf("register: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Email verified") {
		t.Fatalf("expected verification notice, got:\n%s", out)
	}

	out, err = execute(t, srv, nil, "login", "--email", "ada@example.com", "--password", "secret123")
	if err != nil || !strings.Contains(out, "Logged in as ada@example.com") {
		t.Fatalf("login: %v\n%s", err, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	token := lines[len(lines)-1]

	out, err = execute(t, srv, nil, "profile", "--token", token)
	if err != nil || !strings.Contains(out, "ada@example.com") {
		t.Fatalf("profile: %v\n%s", err, out)
	}

	if out, err = execute(t, srv, nil, "forgot-password", "--email", "ada@example.com"); err != nil {
		t.Fatalf("forgot-password: %v\n%s", err, out)
	}
	text := box.lastText()
	resetToken := strings.TrimSpace(text[strings.Index(text, "token=")+len("token="):])

	out, err = execute(t, srv, nil, "reset-password", "--token", resetToken, "--password", "brandnew1")
	if err != nil || !strings.Contains(out, "Password reset") {
		t.Fatalf("reset-password: %v\n%s", err, out)
	}

	if _, err = execute(t, srv, nil, "reset-password", "--token", resetToken, "--password", "brandnew1"); err == nil {
		t.Fatal("reusing a reset token must fail")
	}
}

func TestAuthctl_LoginUnknownUser(t *testing.T) {
	srv, _ := newBackend(t)
	_, err := execute(t, srv, nil, "login", "--email", "ghost@example.com", "--password", "secret123")
	if err == nil || err.Error() != "user not found" {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestAuthctl_Jobs(t *testing.T) {
	srv, _ := newBackend(t)

	body := `{"title":"Go Intern","description":"Write Go","department":"Engineering","requirements":["Go basics"]}`
	resp, err := srv.Client().Post(srv.URL+"/api/admin/jobs", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	resp.Body.Close()

	out, err := execute(t, srv, nil, "jobs", "list", "--department", "engineering")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	if !strings.Contains(out, "Go Intern") || !strings.Contains(out, "page 1 of 1 (1 jobs)") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	id := strings.Fields(strings.Split(out, "\n")[1])[0]
	out, err = execute(t, srv, nil, "jobs", "get", id)
	if err != nil || !strings.Contains(out, "Go basics") {
		t.Fatalf("jobs get: %v\n%s", err, out)
	}

	_, err = execute(t, srv, nil, "jobs", "get", "missing-id")
	if err == nil || err.Error() != "no job posting with id missing-id" {
		t.Fatalf("expected not found message, got %v", err)
	}
}
