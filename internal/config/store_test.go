package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phkaiser13/phgit/internal/status"
)

func TestStoreSetGetRoundTrip(t *testing.T) {
	s := New()
	if got := s.Set("kube.current_cluster", "dev"); got != status.SUCCESS {
		t.Fatalf("Set() = %v, want SUCCESS", got)
	}
	v, ok := s.Get("kube.current_cluster")
	if !ok || v != "dev" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", v, ok, "dev")
	}
}

func TestStoreGetMissingKey(t *testing.T) {
	s := New()
	if _, ok := s.Get("nope"); ok {
		t.Error("Get() of missing key reported found")
	}
}

func TestStoreSetEmptyKeyRejected(t *testing.T) {
	s := New()
	if got := s.Set("", "v"); got != status.INVALID_ARGS {
		t.Errorf("Set(\"\", ...) = %v, want INVALID_ARGS", got)
	}
}

func TestStoreLoadMissingFileIsSuccess(t *testing.T) {
	s := New()
	if got := s.Load(filepath.Join(t.TempDir(), "absent.conf")); got != status.SUCCESS {
		t.Errorf("Load(missing) = %v, want SUCCESS", got)
	}
	if _, ok := s.Get("anything"); ok {
		t.Error("store should be empty after loading a missing file")
	}
}

func TestStoreLoadParsesAndSkips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ph.conf")
	content := "" +
		"# a comment\n" +
		"\n" +
		"  kube.current_cluster = prod  \n" +
		"provider.vault.address=https://vault.example\n" +
		"malformed line without equals\n" +
		"= missing key\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	if got := s.Load(path); got != status.SUCCESS {
		t.Fatalf("Load() = %v, want SUCCESS", got)
	}

	if v, ok := s.Get("kube.current_cluster"); !ok || v != "prod" {
		t.Errorf("kube.current_cluster = (%q, %v), want (%q, true)", v, ok, "prod")
	}
	if v, ok := s.Get("provider.vault.address"); !ok || v != "https://vault.example" {
		t.Errorf("provider.vault.address = (%q, %v), want (%q, true)", v, ok, "https://vault.example")
	}
	if _, ok := s.Get(""); ok {
		t.Error("empty-key line should not have been stored")
	}
}

func TestStoreLoadClearsPriorState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ph.conf")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	s.Set("stale", "value")
	s.Load(path)

	if _, ok := s.Get("stale"); ok {
		t.Error("Load did not clear prior state")
	}
	if v, ok := s.Get("a"); !ok || v != "1" {
		t.Errorf("a = (%q, %v), want (%q, true)", v, ok, "1")
	}
}

func TestStoreLoadIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ph.conf")
	os.WriteFile(path, []byte("k=v\n"), 0o644)

	s := New()
	s.Load(path)
	first, _ := s.Get("k")
	s.Load(path)
	second, _ := s.Get("k")

	if first != second {
		t.Errorf("repeated Load produced different values: %q vs %q", first, second)
	}
}

func TestStoreDuplicateKeyLastWriteWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ph.conf")
	os.WriteFile(path, []byte("k=first\nk=second\n"), 0o644)

	s := New()
	s.Load(path)
	if v, _ := s.Get("k"); v != "second" {
		t.Errorf("k = %q, want %q (last write wins)", v, "second")
	}
}

func TestProviderAddressAndToken(t *testing.T) {
	s := New()
	s.Set("provider.vault.address", "https://vault.example")
	s.Set("provider.vault.token", "s.abc123")

	addr, ok := s.ProviderAddress("vault")
	if !ok || addr != "https://vault.example" {
		t.Errorf("ProviderAddress() = (%q, %v)", addr, ok)
	}
	tok, ok := s.ProviderToken("vault")
	if !ok || tok != "s.abc123" {
		t.Errorf("ProviderToken() = (%q, %v)", tok, ok)
	}
	if _, ok := s.ProviderToken("unknown"); ok {
		t.Error("ProviderToken(unknown) reported found")
	}
}
