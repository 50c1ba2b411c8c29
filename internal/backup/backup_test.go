package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/constants"
)

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('habits', '[]'), ('lastResetDate', '"2026-10-19"')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("failed to query %s: %v", path, err)
	}
	return count
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"/x/habitual.db", KindSQLite},
		{"/x/habitual", KindSQLite},
		{"/x/habits.json", KindJSON},
		{"/x/HABITS.JSON", KindJSON},
	}
	for _, tt := range tests {
		if got := KindOf(tt.path); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCreate_SQLite(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(fixedClock(time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local)))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := filepath.Base(backupPath); got != "habitual-20261019-083000.db" {
		t.Errorf("backup name = %q", got)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}
	if got := countRows(t, backupPath); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
}

func TestCreate_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected an error for a missing store")
	}
}

func TestCreate_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	stamp := time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local)
	mgr := NewManager(dbPath).WithClock(func() time.Time { return stamp })

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if first == second {
		t.Fatal("backups share a path")
	}
	if got := filepath.Base(second); got != "habitual-20261019-083000-1.db" {
		t.Errorf("second backup name = %q", got)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("List() returned %d backups, want 2", len(backups))
	}
}

func TestList(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups before the directory exists, got %d", len(backups))
	}

	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	files := []string{
		"habitual-20261017-090000.db",
		"habitual-20261019-090000.db",
		"habitual-20261018-090000-3.db",
		"habitual-notatime.db",
		"other-20261019-090000.db",
		"habitual-20261019-100000.json",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{
		"habitual-20261019-090000.db",
		"habitual-20261018-090000-3.db",
		"habitual-20261017-090000.db",
	}
	if len(backups) != len(want) {
		t.Fatalf("List() returned %d backups, want %d", len(backups), len(want))
	}
	for i, name := range want {
		if filepath.Base(backups[i].Path) != name {
			t.Errorf("backups[%d] = %s, want %s", i, filepath.Base(backups[i].Path), name)
		}
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(fixedClock(time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)))

	total := constants.MaxBackups + 3
	for i := 0; i < total; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	newest := fmt.Sprintf("habitual-20261001-0000%02d.db", total-1)
	if filepath.Base(backups[0].Path) != newest {
		t.Errorf("newest backup = %s, want %s", filepath.Base(backups[0].Path), newest)
	}
}

func TestRestore_SQLite(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath).WithClock(fixedClock(time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('settings', '{}')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	safety, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if safety == "" {
		t.Error("expected a safety backup of the current store")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("restored store has %d rows, want 2", got)
	}
	if got := countRows(t, safety); got != 3 {
		t.Errorf("safety backup has %d rows, want 3", got)
	}
}

func TestRestore_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected an error for a missing backup")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not a database, just text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected an error for a corrupted backup")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("store modified by failed restore: %d rows", got)
	}
}
