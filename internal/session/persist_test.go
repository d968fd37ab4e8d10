package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path, time.Hour)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if creds, err := store.Read(); err != nil || creds != nil {
		t.Fatalf("missing file should read as absent, got %+v err=%v", creds, err)
	}

	if err := store.Write(Credentials{Token: "tok", UserData: `{"_id":"u1"}`}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	creds, err := store.Read()
	if err != nil || creds == nil {
		t.Fatalf("Read: %+v err=%v", creds, err)
	}
	if creds.Token != "tok" {
		t.Fatalf("unexpected token %q", creds.Token)
	}
	if creds.ExpiresAt.IsZero() || creds.Expired(time.Now()) {
		t.Fatalf("expected a future expiry window, got %v", creds.ExpiresAt)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file must be owner-only, got %v", perm)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if creds, _ := store.Read(); creds != nil {
		t.Fatal("credentials must be gone after Clear")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear must be idempotent: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store, err := NewFileStore(path, time.Hour)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := store.Read(); err == nil {
		t.Fatal("corrupt file must surface a read error")
	}
}
