package credstore

import (
	"encoding/json"
	"sync"

	"github.com/jrsteele09/ims-console/users"
	"github.com/rs/zerolog/log"
)

var _ Store = (*Memory)(nil)

// Memory is an in-process Store. The profile is kept serialized so that
// Load applies the same schema checks a durable store would.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

func (m *Memory) Save(token string, profile users.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[TokenKey] = token
	m.values[ProfileKey] = string(data)
	return nil
}

func (m *Memory) Load() (string, users.Profile, error) {
	m.mu.RLock()
	token, hasToken := m.values[TokenKey]
	raw, hasProfile := m.values[ProfileKey]
	m.mu.RUnlock()

	if !hasToken || token == "" || !hasProfile {
		return "", users.Profile{}, ErrAbsent
	}

	var profile users.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Debug().Err(err).Msg("credstore: unreadable profile treated as absent")
		return "", users.Profile{}, ErrAbsent
	}
	if err := profile.Validate(); err != nil {
		log.Debug().Err(err).Msg("credstore: invalid profile treated as absent")
		return "", users.Profile{}, ErrAbsent
	}
	return token, profile, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, TokenKey)
	delete(m.values, ProfileKey)
	return nil
}

// Set writes a raw value under key. Tests use it to simulate a corrupted
// or half-written store.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
