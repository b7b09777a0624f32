package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func storeContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("load from empty store", func(t *testing.T) {
		st := newStore(t)
		_, err := st.Load(ctx, "Rena")
		if !errors.Is(err, ErrNoSavedGames) {
			t.Fatalf("expected ErrNoSavedGames, got %v", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		st := newStore(t)
		sn := Capture(testSession(t), 7, 3)
		if err := st.Save(ctx, sn); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := st.Load(ctx, "Rena")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !got.Equal(sn) {
			t.Errorf("loaded snapshot differs:\n%+v\n%+v", sn, got)
		}
	})

	t.Run("overwrite keeps one save per name", func(t *testing.T) {
		st := newStore(t)
		s := testSession(t)
		st.Save(ctx, Capture(s, 0, 0))
		s.Scene = "Later."
		if err := st.Save(ctx, Capture(s, 0, 5)); err != nil {
			t.Fatal(err)
		}

		names, err := st.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(names) != 1 || names[0] != "Rena" {
			t.Errorf("expected [Rena], got %v", names)
		}
		got, _ := st.Load(ctx, "Rena")
		if got.Scene != "Later." || got.RNGPosition != 5 {
			t.Errorf("expected latest save, got %+v", got)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		st := newStore(t)
		st.Save(ctx, Capture(testSession(t), 0, 0))
		_, err := st.Load(ctx, "Nobody")
		if !errors.Is(err, ErrSaveNotFound) {
			t.Fatalf("expected ErrSaveNotFound, got %v", err)
		}
	})

	t.Run("names with path characters", func(t *testing.T) {
		st := newStore(t)
		s := testSession(t)
		s.PlayerName = "Sir / Lancelot"
		if err := st.Save(ctx, Capture(s, 0, 0)); err != nil {
			t.Fatal(err)
		}
		names, _ := st.List(ctx)
		if len(names) != 1 || names[0] != "Sir / Lancelot" {
			t.Errorf("expected name preserved, got %v", names)
		}
		if _, err := st.Load(ctx, "Sir / Lancelot"); err != nil {
			t.Errorf("Load failed: %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		st := newStore(t)
		sn := Capture(testSession(t), 0, 0)
		sn.PlayerName = " "
		if err := st.Save(ctx, sn); !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestFileStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "saves"))
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		st, err := OpenSQLite(filepath.Join(t.TempDir(), "saves.db"))
		if err != nil {
			t.Fatalf("OpenSQLite: %v", err)
		}
		t.Cleanup(func() { st.Close() })
		return st
	})
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	ctx := context.Background()

	st, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	sn := Capture(testSession(t), 1, 2)
	if err := st.Save(ctx, sn); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()
	got, err := st2.Load(ctx, "Rena")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(sn) {
		t.Error("snapshot changed across reopen")
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Rena.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(dir).Load(context.Background(), "Rena")
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(dir)
	if err := st.Save(context.Background(), Capture(testSession(t), 0, 0)); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "Rena.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected files: %v", names)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	st := NewFileStore(t.TempDir())
	cctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		call func() error
	}{
		{"save", func() error { return st.Save(cctx, Capture(testSession(t), 0, 0)) }},
		{"list", func() error { _, err := st.List(cctx); return err }},
		{"load", func() error { _, err := st.Load(cctx, "Rena"); return err }},
	}
	for _, tt := range tests {
		err := tt.call()
		if !errors.Is(err, ErrPersistence) || !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected ErrPersistence wrapping context.Canceled, got %v", tt.name, err)
		}
	}
}
