package strava

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/pkg/metrics"
)

// tokenFile is the on-disk layout written by the Strava OAuth token endpoint.
type tokenFile struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// LoadToken reads the token file at path.
func LoadToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", source.ErrToken, path, err)
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", source.ErrToken, path, err)
	}
	if tf.AccessToken == "" && tf.RefreshToken == "" {
		return nil, fmt.Errorf("%w: %s holds neither access nor refresh token", source.ErrToken, path)
	}
	return &oauth2.Token{
		AccessToken:  tf.AccessToken,
		TokenType:    tf.TokenType,
		RefreshToken: tf.RefreshToken,
		Expiry:       time.Unix(tf.ExpiresAt, 0),
	}, nil
}

// SaveToken writes tok to path, replacing the file atomically.
func SaveToken(path string, tok *oauth2.Token) error {
	tf := tokenFile{
		TokenType:    tok.TokenType,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		tf.ExpiresAt = tok.Expiry.Unix()
	}
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", source.ErrToken, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".strava-token-*")
	if err != nil {
		return fmt.Errorf("%w: %w", source.ErrToken, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write: %w", source.ErrToken, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", source.ErrToken, err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("%w: %w", source.ErrToken, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", source.ErrToken, path, err)
	}
	return nil
}

// persistingSource writes every newly issued token back to the token file.
type persistingSource struct {
	mu   sync.Mutex
	path string
	base oauth2.TokenSource
	last string
	save func(path string, tok *oauth2.Token) error
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken == p.last {
		return tok, nil
	}
	if err := p.save(p.path, tok); err != nil {
		return nil, err
	}
	p.last = tok.AccessToken
	metrics.RecordTokenRefresh()
	return tok, nil
}
