package engine

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Persisted keys.
const (
	KeyBestScore   = "towerrun_best_score"
	KeyFastestTime = "towerrun_fastest_time"
	KeySettings    = "towerrun_settings"
)

// KeyValueStore persists small string values across process restarts.
type KeyValueStore interface {
	// Get returns the value of key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Clear removes every key.
	Clear() error
}

// MemoryStore is a KeyValueStore that lives in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

// Settings are the player's preferences.
type Settings struct {
	ReduceMotion bool `json:"reduceMotion"`
	Sound        bool `json:"sound"`
	ShowFPS      bool `json:"showFps"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{Sound: true}
}

// Progress keeps the best score, fastest win and settings. Values are cached
// in memory; store failures are logged and the cached value is used.
type Progress struct {
	mu       sync.Mutex
	store    KeyValueStore
	log      *log.Logger
	best     int
	fastest  int // seconds, 0 when no run was won
	settings Settings
}

// NewProgress loads persisted values from store. A nil store keeps
// everything in memory.
func NewProgress(store KeyValueStore, logger *log.Logger) *Progress {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = discardLogger()
	}
	p := &Progress{store: store, log: logger, settings: DefaultSettings()}
	p.load()
	return p
}

func (p *Progress) load() {
	if v, ok := p.getInt(KeyBestScore); ok && v > 0 {
		p.best = v
	}
	if v, ok := p.getInt(KeyFastestTime); ok && v > 0 {
		p.fastest = v
	}
	raw, ok := p.get(KeySettings)
	if !ok {
		return
	}
	s := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		p.log.Warn("ignoring malformed settings", "err", err)
		return
	}
	p.settings = s
}

func (p *Progress) get(key string) (string, bool) {
	v, ok, err := p.store.Get(key)
	if err != nil {
		p.log.Warn("storage read failed", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

func (p *Progress) getInt(key string) (int, bool) {
	raw, ok := p.get(key)
	if !ok {
		return 0, false
	}
	var v int
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		p.log.Warn("ignoring malformed value", "key", key, "err", err)
		return 0, false
	}
	return v, true
}

func (p *Progress) set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		p.log.Warn("cannot encode value", "key", key, "err", err)
		return
	}
	if err := p.store.Set(key, string(data)); err != nil {
		p.log.Warn("storage write failed", "key", key, "err", err)
	}
}

// BestScore returns the best score seen.
func (p *Progress) BestScore() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.best
}

// RecordBestScore stores score if it beats the best and reports whether it
// did. The stored value is re-read first, so another session sharing the
// store never has its higher best overwritten.
func (p *Progress) RecordBestScore(score int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.getInt(KeyBestScore); ok && v > p.best {
		p.best = v
	}
	if score <= p.best {
		return false
	}
	p.best = score
	p.set(KeyBestScore, score)
	return true
}

// FastestTime returns the fastest winning run in seconds, 0 if none.
func (p *Progress) FastestTime() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fastest
}

// RecordFastest stores secs if it is the fastest win so far.
func (p *Progress) RecordFastest(secs int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.getInt(KeyFastestTime); ok && v > 0 && (p.fastest == 0 || v < p.fastest) {
		p.fastest = v
	}
	if secs <= 0 || (p.fastest > 0 && secs >= p.fastest) {
		return false
	}
	p.fastest = secs
	p.set(KeyFastestTime, secs)
	return true
}

// Settings returns the current settings.
func (p *Progress) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// SaveSettings replaces and persists the settings.
func (p *Progress) SaveSettings(s Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s
	p.set(KeySettings, s)
}

// ClearAll empties the store and restores the defaults.
func (p *Progress) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Clear(); err != nil {
		p.log.Warn("storage clear failed", "err", err)
	}
	p.best = 0
	p.fastest = 0
	p.settings = DefaultSettings()
}

// FormatDuration renders whole seconds as m:ss.
func FormatDuration(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
