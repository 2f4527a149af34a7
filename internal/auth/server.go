// Package auth runs the browser side of the OAuth authorization code flow
// on a loopback HTTP server.
package auth

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splashkit/unsplash-cli/internal/api"
	"github.com/splashkit/unsplash-cli/internal/config"
	"github.com/splashkit/unsplash-cli/internal/validation"
)

const (
	// DefaultPort is used when the redirect URI carries no port.
	DefaultPort = "8765"
	// DefaultRedirectURI is suggested to users registering an application.
	DefaultRedirectURI = "http://127.0.0.1:" + DefaultPort + "/callback"
	// DefaultTimeout bounds how long Run waits for the browser.
	DefaultTimeout = 5 * time.Minute
)

// ErrStateMismatch is returned when the callback carries a state other than
// the one sent to the authorize page.
var ErrStateMismatch = errors.New("OAuth state mismatch")

// LoginResult is the outcome of a completed login.
type LoginResult struct {
	Profile string     `json:"profile"`
	Token   *api.Token `json:"-"`
	Scopes  []string   `json:"scopes"`
}

// LoginServer receives the authorization code on the redirect URI,
// exchanges it for a user token and stores the token in a profile.
type LoginServer struct {
	client  *api.Client
	profile string
	scopes  []api.Scope
	state   string
	addr    string
	path    string

	// Timeout overrides DefaultTimeout when non-zero.
	Timeout time.Duration
	// Out receives the authorize URL and progress messages.
	Out io.Writer
	// OpenURL launches the browser. Replaced in tests.
	OpenURL func(string) error
	// Save persists the token. Defaults to storing it in the profile.
	Save func(profile string, token *api.Token) error

	once   sync.Once
	result chan loginOutcome
}

type loginOutcome struct {
	token *api.Token
	err   error
}

// NewLoginServer prepares a login for profile. The client's redirect URI
// must point at the loopback interface over plain http.
func NewLoginServer(client *api.Client, profile string, scopes []api.Scope) (*LoginServer, error) {
	creds := client.Credentials()
	if creds.AccessKey == "" {
		return nil, &api.AuthError{Reason: "an access key is required to log in"}
	}
	if creds.SecretKey == "" {
		return nil, &api.AuthError{Reason: "a secret key is required to log in"}
	}
	addr, path, err := listenAddr(creds.RedirectURI)
	if err != nil {
		return nil, err
	}
	if len(scopes) == 0 {
		scopes = []api.Scope{api.ScopePublic}
	}
	return &LoginServer{
		client:  client,
		profile: profile,
		scopes:  scopes,
		state:   uuid.NewString(),
		addr:    addr,
		path:    path,
		Out:     os.Stdout,
		OpenURL: openBrowser,
		Save:    saveToken,
		result:  make(chan loginOutcome, 1),
	}, nil
}

// listenAddr derives host:port and the callback path from a redirect URI.
func listenAddr(redirectURI string) (string, string, error) {
	if redirectURI == "" {
		return "", "", fmt.Errorf("redirect URI not configured (use %s)", DefaultRedirectURI)
	}
	if err := validation.ValidateRedirectURI(redirectURI); err != nil {
		return "", "", err
	}
	u, err := url.Parse(redirectURI)
	if err != nil || u.Scheme != "http" || !validation.IsLoopback(u.Hostname()) {
		return "", "", fmt.Errorf("browser login needs a loopback redirect URI such as %s, got %q", DefaultRedirectURI, redirectURI)
	}
	port := u.Port()
	if port == "" {
		port = DefaultPort
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	host := u.Hostname()
	if host == "localhost" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port), path, nil
}

// State returns the anti-forgery token sent to the authorize page.
func (s *LoginServer) State() string {
	return s.state
}

// AuthorizeURL returns the page the user is sent to.
func (s *LoginServer) AuthorizeURL() string {
	return s.client.OAuth().AuthorizeURL(s.scopes, s.state)
}

// Handler serves the callback path.
func (s *LoginServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handleCallback)
	return mux
}

// Run listens on the redirect URI, opens the browser and waits for the
// callback, the timeout or ctx.
func (s *LoginServer) Run(ctx context.Context) (*LoginResult, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	go func() {
		_ = server.Serve(listener)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
		}
	}()

	authURL := s.AuthorizeURL()
	_, _ = fmt.Fprintf(s.Out, "Open this URL in your browser to authorize the application:\n  %s\n", authURL)
	if s.OpenURL != nil {
		if err := s.OpenURL(authURL); err != nil {
			_, _ = fmt.Fprintf(s.Out, "Could not open browser automatically: %v\n", err)
		}
	}

	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case outcome := <-s.result:
		if outcome.err != nil {
			return nil, outcome.err
		}
		return &LoginResult{
			Profile: s.profile,
			Token:   outcome.token,
			Scopes:  strings.Fields(outcome.token.Scope),
		}, nil
	case <-timer.C:
		return nil, fmt.Errorf("timed out after %s waiting for the browser", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *LoginServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()

	// A foreign state must not end the flow.
	if q.Get("state") != s.state {
		renderPage(w, http.StatusForbidden, errorTemplate, pageData{Message: ErrStateMismatch.Error()})
		return
	}

	if reason := q.Get("error"); reason != "" {
		msg := q.Get("error_description")
		if msg == "" {
			msg = reason
		}
		err := &api.AuthError{Reason: msg}
		s.finish(loginOutcome{err: err})
		renderPage(w, http.StatusBadRequest, errorTemplate, pageData{Message: msg})
		return
	}

	code := q.Get("code")
	if code == "" {
		renderPage(w, http.StatusBadRequest, errorTemplate, pageData{Message: "missing authorization code"})
		return
	}

	token, err := s.client.OAuth().ExchangeCode(r.Context(), code)
	if err == nil && s.Save != nil {
		if saveErr := s.Save(s.profile, token); saveErr != nil {
			err = fmt.Errorf("failed to save token: %w", saveErr)
		}
	}
	if err != nil {
		s.finish(loginOutcome{err: err})
		renderPage(w, http.StatusBadGateway, errorTemplate, pageData{Message: api.StructuredErrorFromError(err).Message})
		return
	}

	s.finish(loginOutcome{token: token})
	renderPage(w, http.StatusOK, successTemplate, pageData{Profile: s.profile, Scopes: strings.Fields(token.Scope)})
}

func (s *LoginServer) finish(outcome loginOutcome) {
	s.once.Do(func() { s.result <- outcome })
}

// saveToken records the user token on the stored profile.
func saveToken(profile string, token *api.Token) error {
	return config.UpdateProfile(profile, func(p *config.Profile) {
		p.AccessToken = token.AccessToken
		p.Scopes = strings.Fields(token.Scope)
	})
}

type pageData struct {
	Profile string
	Scopes  []string
	Message string
}

func renderPage(w http.ResponseWriter, status int, tmpl *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = tmpl.Execute(w, data)
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	if shouldSkipAutoBrowserOpen() {
		return nil
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}

func shouldSkipAutoBrowserOpen() bool {
	// Always skip browser launch when running under `go test`.
	if flag.Lookup("test.v") != nil {
		return true
	}
	noBrowser := strings.TrimSpace(strings.ToLower(os.Getenv(config.EnvNoBrowser)))
	return noBrowser == "1" || noBrowser == "true" || noBrowser == "yes"
}
