package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/cam-crush/internal/storage"
)

var fixedNow = time.Date(2025, 9, 7, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T, kv storage.KV) *Manager {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemory()
	}
	return New(kv, WithClock(func() time.Time { return fixedNow }))
}

func seedBoard(t *testing.T, kv storage.KV, scores ...int) {
	t.Helper()
	records := make([]Record, len(scores))
	for i, s := range scores {
		records[i] = Record{Name: fmt.Sprintf("P%d", i+1), Score: s, Date: fixedNow}
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(KeyBoard, string(data)); err != nil {
		t.Fatal(err)
	}
}

func TestQualifies(t *testing.T) {
	kv := storage.NewMemory()
	seedBoard(t, kv, 100, 90, 80, 70, 60)
	m := newTestManager(t, kv)

	tests := []struct {
		score    int
		expected bool
	}{
		{65, true},
		{60, false},
		{59, false},
		{101, true},
	}
	for _, tc := range tests {
		if got := m.Qualifies(tc.score); got != tc.expected {
			t.Errorf("Qualifies(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestQualifiesWithShortBoard(t *testing.T) {
	kv := storage.NewMemory()
	seedBoard(t, kv, 100, 90)
	m := newTestManager(t, kv)

	if !m.Qualifies(0) {
		t.Error("any score should qualify while the board has fewer than 5 entries")
	}
}

func TestPersistKeepsTopFiveSorted(t *testing.T) {
	kv := storage.NewMemory()
	m := newTestManager(t, kv)

	scores := []int{30, 120, 5, 77, 77, 300, 1, 64}
	for i, s := range scores {
		if _, err := m.Persist(fmt.Sprintf("Coach %d", i), s); err != nil {
			t.Fatalf("Persist() failed: %v", err)
		}

		entries := m.Entries()
		if len(entries) > MaxEntries {
			t.Fatalf("board length %d exceeds %d", len(entries), MaxEntries)
		}
		for j := 1; j < len(entries); j++ {
			if entries[j-1].Score < entries[j].Score {
				t.Fatalf("board not sorted after persist %d: %+v", i, entries)
			}
		}
	}

	entries := m.Entries()
	want := []int{300, 120, 77, 77, 64}
	for i, w := range want {
		if entries[i].Score != w {
			t.Errorf("entry %d score = %d, expected %d", i, entries[i].Score, w)
		}
	}
	// Equal scores keep insertion order.
	if entries[2].Name != "Coach 3" || entries[3].Name != "Coach 4" {
		t.Errorf("tie order = %q, %q", entries[2].Name, entries[3].Name)
	}

	// Written through to storage.
	reloaded := newTestManager(t, kv)
	if got := reloaded.Entries(); len(got) != 5 || got[0].Score != 300 {
		t.Errorf("reloaded board = %+v", got)
	}
}

func TestPersistSanitizesName(t *testing.T) {
	m := newTestManager(t, nil)

	rec, err := m.Persist("   ", 10)
	if err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}
	if rec.Name != DefaultName {
		t.Errorf("empty name should become %q, got %q", DefaultName, rec.Name)
	}

	rec, _ = m.Persist("  "+strings.Repeat("x", 30)+"  ", 10)
	if len(rec.Name) != MaxNameLen {
		t.Errorf("name length = %d, expected %d", len(rec.Name), MaxNameLen)
	}
	if !rec.Date.Equal(fixedNow) {
		t.Errorf("record date = %v, expected %v", rec.Date, fixedNow)
	}
}

func TestPersistRejectsBannedName(t *testing.T) {
	kv := storage.NewMemory()
	m := newTestManager(t, kv)

	_, err := m.Persist("BADWORD1x", 500)
	if !errors.Is(err, ErrBannedName) {
		t.Fatalf("expected ErrBannedName, got %v", err)
	}
	if len(m.Entries()) != 0 {
		t.Error("banned submission must not be stored")
	}
	if _, ok, _ := kv.Get(KeyBoard); ok {
		t.Error("banned submission must not write storage")
	}
}

func TestValidateName(t *testing.T) {
	m := newTestManager(t, nil)

	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"  Dom  ", "Dom", nil},
		{"", "", ErrEmptyName},
		{"   ", "", ErrEmptyName},
		{"BADWORD1x", "", ErrBannedName},
		{"xNaStYx", "", ErrBannedName},
	}
	for _, tc := range tests {
		got, err := m.ValidateName(tc.in)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ValidateName(%q) error = %v, expected %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ValidateName(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestMalformedStorageFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		board string
		bans  string
	}{
		{"not json", "{{{", "nope"},
		{"wrong shape", `{"name":"x"}`, `{"a":1}`},
		{"non-string bans", `[]`, `[1, 2, 3]`},
		{"null bans", `[]`, `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := storage.NewMemory()
			kv.Set(KeyBoard, tc.board)
			kv.Set(KeyBanned, tc.bans)

			m := newTestManager(t, kv)
			if len(m.Entries()) != 0 {
				t.Errorf("expected empty board, got %+v", m.Entries())
			}
			if got := m.Bans(); strings.Join(got, ",") != strings.Join(DefaultBans, ",") {
				t.Errorf("expected default bans, got %v", got)
			}
		})
	}
}

func TestBadDateKeepsOtherRecords(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(KeyBoard, `[
		{"name":"Dom","score":900,"date":"2025-09-07T12:00:00Z"},
		{"name":"Rico","score":700,"date":"last tuesday"},
		{"name":"Zed","score":500,"date":42},
		{"name":"Ana","score":300},
		{"name":"Bo","score":100,"date":"2025-09-07T12:00:00Z"}
	]`)

	m := newTestManager(t, kv)
	entries := m.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("expected all five records, got %+v", entries)
	}
	if entries[0].Name != "Dom" || !entries[0].Date.Equal(fixedNow) {
		t.Errorf("first entry = %+v, expected Dom with its date", entries[0])
	}
	for _, e := range entries[1:4] {
		if !e.Date.IsZero() {
			t.Errorf("%s date = %v, expected zero time", e.Name, e.Date)
		}
	}
	if !m.Qualifies(101) || m.Qualifies(100) {
		t.Error("kept records should still gate qualification")
	}
}

func TestStoredBansOverrideDefault(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(KeyBanned, `["Voldemort"]`)
	m := newTestManager(t, kv)

	if m.Allowed("lord voldemort") {
		t.Error("stored ban should be applied case-insensitively")
	}
	if !m.Allowed("badword1") {
		t.Error("stored list replaces the default list")
	}
}

func TestBanEditing(t *testing.T) {
	kv := storage.NewMemory()
	m := newTestManager(t, kv)

	if err := m.AddBan("  Sleeper "); err != nil {
		t.Fatalf("AddBan() failed: %v", err)
	}
	if m.Allowed("SLEEPERpick") {
		t.Error("added ban should apply")
	}

	removed, err := m.RemoveBan("nasty")
	if err != nil || !removed {
		t.Fatalf("RemoveBan() = %v, %v", removed, err)
	}
	if removed, _ := m.RemoveBan("never-listed"); removed {
		t.Error("RemoveBan of unknown word should report false")
	}

	reloaded := newTestManager(t, kv)
	if !reloaded.Allowed("nasty") || reloaded.Allowed("sleeper") {
		t.Errorf("edited ban list not persisted: %v", reloaded.Bans())
	}

	if err := reloaded.ResetBans(); err != nil {
		t.Fatalf("ResetBans() failed: %v", err)
	}
	if reloaded.Allowed("nasty") {
		t.Error("ResetBans should restore the default list")
	}
}

func TestRecordBest(t *testing.T) {
	kv := storage.NewMemory()
	m := newTestManager(t, kv)

	if !m.RecordBest(120) {
		t.Error("first best should be recorded")
	}
	if m.RecordBest(80) {
		t.Error("lower score should not replace best")
	}
	if v, _, _ := kv.Get(KeyBest); v != "120" {
		t.Errorf("stored best = %q, expected 120", v)
	}

	kv.Set(KeyBest, "garbage")
	if got := newTestManager(t, kv).Best(); got != 0 {
		t.Errorf("malformed best should load as 0, got %d", got)
	}
}

func TestReset(t *testing.T) {
	kv := storage.NewMemory()
	seedBoard(t, kv, 50, 40)
	m := newTestManager(t, kv)

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if v, _, _ := kv.Get(KeyBoard); v != "[]" {
		t.Errorf("stored board after reset = %q", v)
	}
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingKV) Set(string, string) error         { return errors.New("disk on fire") }
func (failingKV) Delete(string) error              { return errors.New("disk on fire") }

func TestStorageFailuresAreNotFatal(t *testing.T) {
	m := newTestManager(t, failingKV{})

	rec, err := m.Persist("Matt", 42)
	if err != nil {
		t.Fatalf("write failure should not fail Persist: %v", err)
	}
	if entries := m.Entries(); len(entries) != 1 || entries[0] != rec {
		t.Errorf("in-memory board should keep the record, got %+v", entries)
	}
	if !m.RecordBest(42) || m.Best() != 42 {
		t.Error("best should update in memory despite write failure")
	}
}
