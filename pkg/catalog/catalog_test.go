package catalog

import (
	"testing"

	_ "modernc.org/sqlite"
)

func openTestCatalog(t *testing.T) *Catalog {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRecordAndStats(t *testing.T) {
	c := openTestCatalog(t)

	if _, err := c.Record(42, 1, "text", "Telegram/2024-03-09T16-40-00-42.md"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := c.Record(43, 1, "photo", "Telegram/2024-03-09T16-41-00-43.md"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	s, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Notes != 2 {
		t.Errorf("Stats.Notes = %d, want 2", s.Notes)
	}
	if s.LastAt == nil {
		t.Error("Stats.LastAt = nil, want capture time")
	}
}

func TestStatsEmpty(t *testing.T) {
	c := openTestCatalog(t)
	s, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Notes != 0 || s.LastAt != nil {
		t.Errorf("Stats = %+v, want empty", s)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	c := openTestCatalog(t)
	for i := int64(1); i <= 3; i++ {
		if _, err := c.Record(i, 1, "text", "Telegram/note.md"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := c.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].MessageID != 3 || entries[1].MessageID != 2 {
		t.Errorf("order = [%d %d], want newest first", entries[0].MessageID, entries[1].MessageID)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := c.Record(1, 1, "text", "Telegram/a.md"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	c.Close()

	again, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	s, err := again.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Notes != 1 {
		t.Errorf("Stats.Notes = %d after reopen, want 1", s.Notes)
	}
}
