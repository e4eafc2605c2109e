package leaderboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultBans is the built-in ban list, used when storage has none or holds
// something that is not a list of strings.
var DefaultBans = []string{"badword1", "badword2", "nasty", "slur"}

func (m *Manager) loadBans() []string {
	raw, ok := m.read(KeyBanned)
	if !ok {
		return defaultBans()
	}
	var bans []string
	if err := json.Unmarshal([]byte(raw), &bans); err != nil || bans == nil {
		m.logger.Warn("discarding malformed ban list", "value", raw)
		return defaultBans()
	}
	return normalizeBans(bans)
}

func defaultBans() []string {
	out := make([]string, len(DefaultBans))
	copy(out, DefaultBans)
	return out
}

// normalizeBans lowercases, trims and de-duplicates, dropping empty entries.
func normalizeBans(bans []string) []string {
	seen := make(map[string]bool, len(bans))
	out := make([]string, 0, len(bans))
	for _, b := range bans {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// Allowed reports whether name contains none of the banned substrings,
// compared case-insensitively.
func (m *Manager) Allowed(name string) bool {
	n := strings.ToLower(name)
	for _, b := range m.banned {
		if b != "" && strings.Contains(n, b) {
			return false
		}
	}
	return true
}

// Bans returns a copy of the active ban list.
func (m *Manager) Bans() []string {
	out := make([]string, len(m.banned))
	copy(out, m.banned)
	return out
}

// SetBans replaces the ban list and writes it through.
func (m *Manager) SetBans(bans []string) error {
	m.banned = normalizeBans(bans)
	data, err := json.Marshal(m.banned)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode ban list: %w", err)
	}
	return m.write(KeyBanned, string(data))
}

// AddBan appends a substring to the ban list.
func (m *Manager) AddBan(word string) error {
	return m.SetBans(append(m.Bans(), word))
}

// RemoveBan drops a substring from the ban list. Returns false if it was not listed.
func (m *Manager) RemoveBan(word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	kept := make([]string, 0, len(m.banned))
	found := false
	for _, b := range m.banned {
		if b == word {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return false, nil
	}
	return true, m.SetBans(kept)
}

// ResetBans deletes the stored ban list, restoring the built-in default.
func (m *Manager) ResetBans() error {
	m.banned = defaultBans()
	if err := m.kv.Delete(KeyBanned); err != nil {
		m.logger.Warn("storage delete failed", "key", KeyBanned, "error", err)
		return err
	}
	return nil
}
