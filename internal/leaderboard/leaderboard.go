// Package leaderboard maintains the persisted top-5 board, the ban list used
// to moderate names, and the local best score.
//
// All storage access is best-effort: read failures degrade to defaults and
// write failures are logged while the in-memory state stays authoritative
// for the session.
package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cam-crush/internal/storage"
)

// Storage keys.
const (
	KeyBoard  = "camcrush_leaderboard"
	KeyBanned = "camcrush_banned"
	KeyBest   = "camcrush_best"
)

const (
	// MaxEntries is the board length.
	MaxEntries = 5
	// MaxNameLen is the longest stored name, in characters.
	MaxNameLen = 20
	// DefaultName is used for empty names and timed-out submissions.
	DefaultName = "Coach"
)

var (
	// ErrEmptyName is returned when a submitted name is blank after trimming.
	ErrEmptyName = errors.New("leaderboard: name is empty")
	// ErrBannedName is returned when a name contains a banned substring.
	ErrBannedName = errors.New("leaderboard: name is not allowed")
)

// Record is one leaderboard entry.
type Record struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// storedRecord is a Record as read back from storage. The date is decoded
// per record so one bad timestamp does not cost the rest of the board.
type storedRecord struct {
	Name  string          `json:"name"`
	Score int             `json:"score"`
	Date  json.RawMessage `json:"date"`
}

// Manager owns the board, ban list and best score for one session.
type Manager struct {
	kv      storage.KV
	logger  *log.Logger
	now     func() time.Time
	records []Record
	banned  []string
	best    int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for best-effort storage failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides the timestamp source for new records.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New creates a manager and loads the board, ban list and best score from kv.
func New(kv storage.KV, opts ...Option) *Manager {
	m := &Manager{
		kv:     kv,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.load()
	return m
}

func (m *Manager) load() {
	m.records = m.loadBoard()
	m.banned = m.loadBans()
	m.best = m.loadBest()
}

func (m *Manager) loadBoard() []Record {
	raw, ok := m.read(KeyBoard)
	if !ok {
		return nil
	}
	var stored []storedRecord
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		m.logger.Warn("discarding malformed leaderboard", "error", err)
		return nil
	}
	out := make([]Record, 0, len(stored))
	for _, sr := range stored {
		if sr.Score < 0 {
			continue
		}
		r := Record{Name: SanitizeName(sr.Name), Score: sr.Score}
		if len(sr.Date) > 0 {
			if err := json.Unmarshal(sr.Date, &r.Date); err != nil {
				m.logger.Warn("ignoring malformed leaderboard date", "name", r.Name, "error", err)
			}
		}
		out = append(out, r)
	}
	sortRecords(out)
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

func (m *Manager) loadBest() int {
	raw, ok := m.read(KeyBest)
	if !ok {
		return 0
	}
	best, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || best < 0 {
		m.logger.Warn("discarding malformed best score", "value", raw)
		return 0
	}
	return best
}

// read fetches a key, treating storage errors as a missing value.
func (m *Manager) read(key string) (string, bool) {
	raw, ok, err := m.kv.Get(key)
	if err != nil {
		m.logger.Warn("storage read failed", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

// write stores a key and logs failures. The error is returned for callers
// that surface it (the CLI); the game ignores it.
func (m *Manager) write(key, value string) error {
	if err := m.kv.Set(key, value); err != nil {
		m.logger.Warn("storage write failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Entries returns a copy of the board, best first.
func (m *Manager) Entries() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Qualifies reports whether score earns a place on the board: the board has
// fewer than MaxEntries records, or score beats the last one.
func (m *Manager) Qualifies(score int) bool {
	if len(m.records) < MaxEntries {
		return true
	}
	return score > m.records[len(m.records)-1].Score
}

// SanitizeName trims whitespace and caps the name at MaxNameLen characters.
// It does not apply the default name.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLen]))
	}
	return name
}

// ValidateName sanitizes a user-typed name and rejects empty or banned names.
func (m *Manager) ValidateName(name string) (string, error) {
	name = SanitizeName(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !m.Allowed(name) {
		return "", ErrBannedName
	}
	return name, nil
}

// Persist records score under name. Empty names become DefaultName. Banned
// names are rejected with ErrBannedName and nothing is stored.
// The board is re-sorted, truncated and written through.
func (m *Manager) Persist(name string, score int) (Record, error) {
	name = SanitizeName(name)
	if name == "" {
		name = DefaultName
	}
	if !m.Allowed(name) {
		return Record{}, ErrBannedName
	}
	if score < 0 {
		score = 0
	}

	rec := Record{Name: name, Score: score, Date: m.now().UTC()}
	records := append(m.Entries(), rec)
	sortRecords(records)
	if len(records) > MaxEntries {
		records = records[:MaxEntries]
	}
	m.records = records

	//nolint:errcheck // Best-effort; the in-memory board already has the record.
	m.saveBoard()
	return rec, nil
}

// Reset empties the board.
func (m *Manager) Reset() error {
	m.records = nil
	return m.saveBoard()
}

func (m *Manager) saveBoard() error {
	records := m.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode board: %w", err)
	}
	return m.write(KeyBoard, string(data))
}

// Best returns the best score ever recorded locally.
func (m *Manager) Best() int {
	return m.best
}

// RecordBest stores score as the best score if it beats the current one.
// Returns true if the best score changed.
func (m *Manager) RecordBest(score int) bool {
	if score <= m.best {
		return false
	}
	m.best = score
	//nolint:errcheck // Best-effort; the in-memory value is kept.
	m.write(KeyBest, strconv.Itoa(score))
	return true
}

// sortRecords orders by score descending; equal scores keep insertion order.
func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
}
