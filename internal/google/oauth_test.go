package google

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid work", "work", false},
		{"valid with hyphen", "work-email", false},
		{"valid with underscore", "personal_email", false},
		{"valid alphanumeric", "account123", false},
		{"empty", "", true},
		{"with slash", "work/personal", true},
		{"with backslash", "work\\personal", true},
		{"with parent traversal", "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccountName(tt.account)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAccountName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTokenFilePath(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{"default account keeps legacy name", "default", "google.token"},
		{"work account", "work", "google-work.token"},
		{"personal account", "personal", "google-personal.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFilePath(tt.account)
			if err != nil {
				t.Fatalf("getTokenFilePath() error = %v", err)
			}
			if filepath.Base(got) != tt.want {
				t.Errorf("getTokenFilePath() = %v, want base %v", got, tt.want)
			}
		})
	}

	if _, err := getTokenFilePath("../escape"); err == nil {
		t.Error("getTokenFilePath() should reject traversal in account name")
	}
}

func TestHasTokenForAccount(t *testing.T) {
	if HasTokenForAccount("invalid/account") {
		t.Error("HasTokenForAccount() should return false for invalid account name")
	}

	if HasTokenForAccount("") {
		t.Error("HasTokenForAccount() should return false for empty account name")
	}
}

func TestGetAuthURLForAccount(t *testing.T) {
	url := GetAuthURLForAccount("work")
	if url == "" {
		t.Fatal("GetAuthURLForAccount() should return non-empty URL")
	}
}

func TestDefaultAccountFunctions(t *testing.T) {
	defaultResult := HasTokenForAccount("default")
	legacyResult := HasToken()
	if defaultResult != legacyResult {
		t.Error("HasToken() should return same result as HasTokenForAccount('default')")
	}
}

type staticTokenSource struct {
	tok *oauth2.Token
	err error
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	return s.tok, s.err
}

func TestPersistingTokenSourceWritesRefreshedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "google.token")

	var results []string
	SetTokenRefreshHook(func(result string) { results = append(results, result) })
	t.Cleanup(func() { SetTokenRefreshHook(nil) })

	src := &staticTokenSource{tok: &oauth2.Token{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	pts := &persistingTokenSource{src: src, path: path, access: "old-access", refresh: "old-refresh"}

	tok, err := pts.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "new-access" {
		t.Errorf("AccessToken = %q, want new-access", tok.AccessToken)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("refreshed token was not persisted: %v", err)
	}
	if string(data) != "new-access new-refresh" {
		t.Errorf("token file = %q, want %q", string(data), "new-access new-refresh")
	}

	if len(results) != 1 || results[0] != RefreshSuccess {
		t.Errorf("refresh hook results = %v, want [%s]", results, RefreshSuccess)
	}

	// An unchanged access token is not a refresh.
	if _, err := pts.Token(); err != nil {
		t.Fatalf("Token() error on second call = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("refresh hook called again without a refresh: %v", results)
	}
}

func TestPersistingTokenSourceRefreshFailure(t *testing.T) {
	var results []string
	SetTokenRefreshHook(func(result string) { results = append(results, result) })
	t.Cleanup(func() { SetTokenRefreshHook(nil) })

	src := &staticTokenSource{err: errors.New("invalid_grant")}
	pts := &persistingTokenSource{src: src, path: filepath.Join(t.TempDir(), "google.token")}

	if _, err := pts.Token(); err == nil {
		t.Fatal("Token() expected error from failing source")
	}
	if len(results) != 1 || results[0] != RefreshFailure {
		t.Errorf("refresh hook results = %v, want [%s]", results, RefreshFailure)
	}
}

func TestGetOAuthConfigScopes(t *testing.T) {
	conf := GetOAuthConfig()
	if len(conf.Scopes) != len(DefaultOAuthScopes) {
		t.Fatalf("GetOAuthConfig() scopes = %v, want %v", conf.Scopes, DefaultOAuthScopes)
	}
	found := false
	for _, s := range conf.Scopes {
		if s == "https://www.googleapis.com/auth/calendar.freebusy" {
			found = true
		}
	}
	if !found {
		t.Error("GetOAuthConfig() should request the freebusy scope")
	}
}
