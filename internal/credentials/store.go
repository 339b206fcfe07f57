// Package credentials owns the bearer token shared by all API calls: an
// in-memory copy guarded by a mutex, backed by a durable KEY=value env file.
package credentials

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// tokenKey is the env-file key holding the bearer token.
const tokenKey = "ACCESS_TOKEN"

// Store holds the current bearer token. All operations read the token
// through the store so a refresh is visible to every in-flight worker.
type Store struct {
	path  string
	token string
	mu    sync.RWMutex
}

// NewStore loads the token from the env file at path. A missing file or a
// missing ACCESS_TOKEN entry is not an error: the store starts empty and the
// first authenticated call triggers a refresh.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read credential file %s: %w", path, err)
	}

	s.token = env[tokenKey]
	return s, nil
}

// Token returns the current bearer token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Update replaces the in-memory token and durably persists it before
// returning. Persistence failure leaves the in-memory token unchanged; the
// caller cannot continue without a durable credential.
func (s *Store) Update(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	s.token = token
	return nil
}

// persist rewrites the ACCESS_TOKEN line of the env file in place, appending
// it if absent. All other lines are preserved byte for byte, in order.
func (s *Store) persist(token string) error {
	entry := fmt.Sprintf("%s=%s", tokenKey, token)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(s.path, []byte(entry+"\n"), 0o600)
		}
		return err
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, tokenKey+"=") {
			lines[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		// Drop a single trailing empty line so the appended entry does not
		// leave a gap, then terminate the file with a newline.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		lines = append(lines, entry, "")
	}

	return os.WriteFile(s.path, []byte(strings.Join(lines, "\n")), 0o600)
}
