package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupSnapshot(t *testing.T, content string) (string, *Manager) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path, NewManager(path)
}

func TestCreateAndList(t *testing.T) {
	_, mgr := setupSnapshot(t, `{"plan":[]}`)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %d, want 1", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup reported zero size")
	}
}

func TestCreate_MissingSnapshotFails(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error when snapshot does not exist")
	}
}

func TestCreate_UniqueNamesWithinSameMinute(t *testing.T) {
	_, mgr := setupSnapshot(t, `{}`)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("backups = %d, want 3", len(backups))
	}
}

func TestList_NoBackupDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "snapshot.json"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("list on missing dir errored: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %d, want 0", len(backups))
	}
}

func TestRestore_RoundTripAndPreRestoreBackup(t *testing.T) {
	path, mgr := setupSnapshot(t, `{"user_name":"Mohamed"}`)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Snapshot moves on after the backup was taken.
	if err := os.WriteFile(path, []byte(`{"user_name":"Enji"}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"user_name":"Mohamed"}` {
		t.Errorf("restored content = %s", data)
	}

	// The replaced state was backed up before the overwrite.
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) < 2 {
		t.Errorf("backups = %d, want the pre-restore copy too", len(backups))
	}
}

func TestRestore_RejectsCorruptBackup(t *testing.T) {
	path, mgr := setupSnapshot(t, `{}`)

	corrupt := filepath.Join(mgr.BackupDir(), BackupFilePrefix+"20260101-0000"+BackupFileSuffix)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(corrupt, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Restore(corrupt); err == nil {
		t.Error("corrupt backup restored without error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{}` {
		t.Error("failed restore touched the snapshot")
	}
}

func TestRotate_EvictsOldest(t *testing.T) {
	_, mgr := setupSnapshot(t, `{}`)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	// Seed more than MaxBackups with old timestamped names.
	for day := 1; day <= MaxBackups+3; day++ {
		name := BackupFilePrefix + time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC).Format("20060102-1504") + BackupFileSuffix
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte(`{}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("backups = %d, want at most %d", len(backups), MaxBackups)
	}
	// Newest first, so the fresh backup leads.
	if len(backups) == 0 || backups[0].Timestamp.Year() == 2025 {
		t.Error("newest backup not listed first")
	}
}

func TestStripCounter(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"20260101-1504", "20260101-1504"},
		{"20260101-150405", "20260101-150405"},
		{"20260101-150405-2", "20260101-150405"},
		{"20260101-1504-11", "20260101-1504"},
	}
	for _, tc := range cases {
		if got := stripCounter(tc.in); got != tc.want {
			t.Errorf("stripCounter(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
