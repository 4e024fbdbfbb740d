package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cacheDirName = "meetslot"

// Refresh outcome values passed to the token refresh hook.
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
)

var (
	refreshHookMu  sync.Mutex
	onTokenRefresh func(result string)
)

// SetTokenRefreshHook registers a callback invoked with the outcome of
// each OAuth token refresh. Passing nil removes the hook.
func SetTokenRefreshHook(fn func(result string)) {
	refreshHookMu.Lock()
	defer refreshHookMu.Unlock()
	onTokenRefresh = fn
}

func notifyTokenRefresh(result string) {
	refreshHookMu.Lock()
	fn := onTokenRefresh
	refreshHookMu.Unlock()
	if fn != nil {
		fn(result)
	}
}

// GetOAuthConfig returns the OAuth2 configuration for the Google Calendar
// APIs. Client credentials come from GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET
// when set, falling back to the built-in desktop client.
func GetOAuthConfig() *oauth2.Config {
	const oob = "urn:ietf:wg:oauth:2.0:oob"

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		clientID = "416943777269-ie7jg6j4tr53j1lqfplvcnhde0rajuls.apps.googleusercontent.com"
	}
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes:       DefaultOAuthScopes,
	}
}

// validateAccountName rejects account names that would escape the cache
// directory or produce unusable file names.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if strings.ContainsAny(account, "/\\") || strings.Contains(account, "..") {
		return fmt.Errorf("invalid account name %q", account)
	}
	return nil
}

// getTokenFilePath returns the token file location for an account.
// The default account keeps the legacy unsuffixed name.
func getTokenFilePath(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	cacheDir := filepath.Join(userCacheDir(), cacheDirName)
	if account == "default" {
		return filepath.Join(cacheDir, "google.token"), nil
	}
	return filepath.Join(cacheDir, fmt.Sprintf("google-%s.token", account)), nil
}

// HasTokenForAccount checks if a stored OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	path, err := getTokenFilePath(account)
	if err != nil {
		return false
	}
	_, err = os.ReadFile(path)
	return err == nil
}

// HasToken checks if a stored OAuth token exists for the default account.
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth URL for user authorization.
func GetAuthURLForAccount(account string) string {
	conf := GetOAuthConfig()
	return conf.AuthCodeURL("state-" + account)
}

// GetAuthURL returns the OAuth URL for the default account.
func GetAuthURL() string {
	return GetAuthURLForAccount("default")
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves
// them for the account.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	conf := GetOAuthConfig()

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	path, err := getTokenFilePath(account)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(path, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// SaveToken exchanges an authorization code for the default account.
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// stored token for the account. Returns an error if no valid token exists.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	conf := GetOAuthConfig()

	path, err := getTokenFilePath(account)
	if err != nil {
		return nil, err
	}
	slurp, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format in %s", path)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	pts := &persistingTokenSource{src: ts, path: path, access: f[0], refresh: f[1]}
	if _, err := pts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for account %s is invalid: %w", account, err)
	}

	return pts, nil
}

// persistingTokenSource writes refreshed tokens back to the account's
// token file so the next process starts from a live access token, and
// reports each refresh outcome through the token refresh hook.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	path string

	mu      sync.Mutex
	access  string
	refresh string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		notifyTokenRefresh(RefreshFailure)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Same access token means the cached one was still live.
	if tok.AccessToken == p.access {
		return tok, nil
	}

	p.access = tok.AccessToken
	if tok.RefreshToken != "" {
		p.refresh = tok.RefreshToken
	}

	data := p.access + " " + p.refresh
	if err := os.WriteFile(p.path, []byte(data), 0600); err != nil {
		notifyTokenRefresh(RefreshFailure)
		return tok, nil
	}

	notifyTokenRefresh(RefreshSuccess)
	return tok, nil
}

// GetTokenSource returns a token source for the default account.
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, "default")
}

// GetHTTPClientForAccount returns an HTTP client configured with OAuth2
// authentication for the account. The client is pinned to HTTP/1.1 to avoid
// HTTP/2 protocol errors against the Google APIs.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client, nil
}

// GetHTTPClient returns an authenticated HTTP client for the default account.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, "default")
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
