package calendar

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// TokenStore keeps OAuth tokens in a JSON file so an authorized session
// survives process restarts. The file matches what the consent-flow callback
// writes, so tokens obtained out of band keep working.
type TokenStore struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	tok *oauth2.Token
}

// NewTokenStore loads any previously persisted tokens from path.
func NewTokenStore(path string, logger *zap.Logger) *TokenStore {
	ts := &TokenStore{path: path, logger: logger}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read OAuth token file", zap.String("path", path), zap.Error(err))
		}
		return ts
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		logger.Warn("Failed to parse OAuth token file", zap.String("path", path), zap.Error(err))
		return ts
	}
	ts.tok = &tok
	return ts
}

// Token returns the current token, or nil when no session exists.
func (s *TokenStore) Token() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

// Save sets the current token and persists it.
func (s *TokenStore) Save(tok *oauth2.Token) {
	s.mu.Lock()
	s.tok = tok
	s.mu.Unlock()

	data, err := json.Marshal(tok)
	if err != nil {
		s.logger.Error("Failed to marshal OAuth tokens", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.logger.Error("Failed to persist OAuth tokens", zap.String("path", s.path), zap.Error(err))
	}
}

// persistingTokenSource wraps an auto-refreshing token source and writes any
// refreshed token back to the store before it is used.
type persistingTokenSource struct {
	src   oauth2.TokenSource
	store *TokenStore
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	current := p.store.Token()
	if current == nil || current.AccessToken != tok.AccessToken {
		p.store.Save(tok)
	}
	return tok, nil
}
