// Package client is a typed Go client for the Creo Studios API. It keeps
// credentials in a pluggable SessionStore and refreshes expired access
// tokens transparently, so callers just make requests.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/creostudios/studiosvc/domain"
)

// Profile is the cached identity of the signed-in user
type Profile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionKind tags what the stored credentials represent
type SessionKind int

const (
	Anonymous SessionKind = iota
	AuthenticatedClient
	AuthenticatedAdmin
)

// SessionStore holds the credentials between requests. Implementations must
// be safe for concurrent use.
type SessionStore interface {
	AccessToken() string
	SetAccessToken(token string)
	RefreshToken() string
	SetRefreshToken(token string)
	Profile() *Profile
	SetProfile(p *Profile)
	// Clear drops all credentials at once. A partial session never survives.
	Clear()
}

// Kind resolves the session variant from whatever the store currently holds.
// The decision happens at read time; the store itself is untagged.
func Kind(s SessionStore) SessionKind {
	if s.AccessToken() == "" {
		return Anonymous
	}
	if p := s.Profile(); p != nil && p.Role == domain.RoleAdmin {
		return AuthenticatedAdmin
	}
	return AuthenticatedClient
}

// IsAuthenticated reports whether an access token is present. The token is
// not validated locally; the server is the authority on expiry.
func IsAuthenticated(s SessionStore) bool {
	return s.AccessToken() != ""
}

// MemoryStore keeps the session for the lifetime of the process
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	profile *Profile

	// OnCleared, when set, runs after Clear drops the credentials
	OnCleared func()
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

func (m *MemoryStore) SetAccessToken(token string) {
	m.mu.Lock()
	m.access = token
	m.mu.Unlock()
}

func (m *MemoryStore) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

func (m *MemoryStore) SetRefreshToken(token string) {
	m.mu.Lock()
	m.refresh = token
	m.mu.Unlock()
}

func (m *MemoryStore) Profile() *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

func (m *MemoryStore) SetProfile(p *Profile) {
	m.mu.Lock()
	m.profile = p
	m.mu.Unlock()
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	m.access = ""
	m.refresh = ""
	m.profile = nil
	hook := m.OnCleared
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// FileStore persists the session to a JSON file so it survives restarts.
// When the backing file cannot be read or written the store keeps working
// from memory alone.
type FileStore struct {
	path string
	mem  MemoryStore
}

type fileSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Profile      *Profile `json:"profile,omitempty"`
}

// NewFileStore creates a file-backed session store at path, loading any
// session already persisted there.
func NewFileStore(path string) *FileStore {
	fs := &FileStore{path: path}
	fs.load()
	return fs
}

// SetOnCleared installs the hook that runs after Clear
func (f *FileStore) SetOnCleared(hook func()) {
	f.mem.OnCleared = hook
}

func (f *FileStore) load() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return
	}
	var s fileSession
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	f.mem.SetAccessToken(s.AccessToken)
	f.mem.SetRefreshToken(s.RefreshToken)
	f.mem.SetProfile(s.Profile)
}

func (f *FileStore) persist() {
	s := fileSession{
		AccessToken:  f.mem.AccessToken(),
		RefreshToken: f.mem.RefreshToken(),
		Profile:      f.mem.Profile(),
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	// Write failures degrade to memory-only operation
	_ = os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) AccessToken() string  { return f.mem.AccessToken() }
func (f *FileStore) RefreshToken() string { return f.mem.RefreshToken() }
func (f *FileStore) Profile() *Profile    { return f.mem.Profile() }

func (f *FileStore) SetAccessToken(token string) {
	f.mem.SetAccessToken(token)
	f.persist()
}

func (f *FileStore) SetRefreshToken(token string) {
	f.mem.SetRefreshToken(token)
	f.persist()
}

func (f *FileStore) SetProfile(p *Profile) {
	f.mem.SetProfile(p)
	f.persist()
}

func (f *FileStore) Clear() {
	f.mem.Clear()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		// Removing failed; overwrite with an empty session instead
		f.persist()
	}
}

var (
	_ SessionStore = (*MemoryStore)(nil)
	_ SessionStore = (*FileStore)(nil)
)
