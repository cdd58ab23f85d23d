package storage

import (
	"testing"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

func TestScopedKeepsUsersApart(t *testing.T) {
	store := openTestStore(t)
	alice := store.Scoped("alice")
	bob := store.Scoped("bob")

	if err := alice.Set("best", "500"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := bob.Set("best", "90"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if v, ok, _ := alice.Get("best"); !ok || v != "500" {
		t.Errorf("alice best = %q, %v; want 500", v, ok)
	}
	if v, ok, _ := bob.Get("best"); !ok || v != "90" {
		t.Errorf("bob best = %q, %v; want 90", v, ok)
	}
	if _, ok, _ := store.Get("best"); ok {
		t.Error("unscoped key should not exist")
	}

	if err := alice.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, ok, _ := alice.Get("best"); ok {
		t.Error("alice value should be cleared")
	}
	if _, ok, _ := bob.Get("best"); !ok {
		t.Error("bob value should survive alice's clear")
	}

	if err := bob.Delete("best"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := bob.Get("best"); ok {
		t.Error("bob value should be deleted")
	}
}

func TestScopedClearNonASCII(t *testing.T) {
	store := openTestStore(t)
	tests := []string{"user/josé", "user/山田", "user/alice"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			scope := store.Scoped(name)
			neighbour := store.Scoped(name + "x")
			if err := scope.Set("k", "1"); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			if err := neighbour.Set("k", "2"); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}

			if err := scope.Clear(); err != nil {
				t.Fatalf("Clear() failed: %v", err)
			}
			if _, ok, _ := scope.Get("k"); ok {
				t.Error("key still present after Clear")
			}
			if _, ok, _ := neighbour.Get("k"); !ok {
				t.Error("neighbouring scope should survive Clear")
			}
		})
	}
}

func TestScopedProgressSessions(t *testing.T) {
	store := openTestStore(t)
	first := engine.NewProgress(store.Scoped("user/alice"), nil)
	second := engine.NewProgress(store.Scoped("user/alice"), nil)
	bob := engine.NewProgress(store.Scoped("user/bob"), nil)

	second.RecordBestScore(500)
	first.RecordBestScore(300)
	bob.RecordBestScore(50)

	if got := engine.NewProgress(store.Scoped("user/alice"), nil).BestScore(); got != 500 {
		t.Errorf("alice best after runs 500 then 300 = %d, expected 500", got)
	}

	first.ClearAll()
	if got := engine.NewProgress(store.Scoped("user/alice"), nil).BestScore(); got != 0 {
		t.Errorf("alice best after ClearAll = %d, expected 0", got)
	}
	if got := engine.NewProgress(store.Scoped("user/bob"), nil).BestScore(); got != 50 {
		t.Errorf("bob best after alice's ClearAll = %d, expected 50", got)
	}
}
