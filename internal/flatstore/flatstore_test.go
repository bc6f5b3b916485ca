package flatstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devdash/dev-dashboard/internal/flatstore"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := flatstore.Open(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var out []string
	ok, err := s.Get("todos", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected absent key in empty store")
	}
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")

	s, err := flatstore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set("migrationComplete", true); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := flatstore.Open(path)
	if err != nil {
		t.Fatalf("Open (reopen): %v", err)
	}
	done, err := reopened.GetBool("migrationComplete")
	if err != nil {
		t.Fatalf("GetBool: %v", err)
	}
	if !done {
		t.Error("flag did not survive reopen")
	}
}

func TestOpenExistingBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	blob := `{"todos": [{"id": "a", "title": "first"}], "migrationComplete": false}`
	if err := os.WriteFile(path, []byte(blob), 0o660); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	s, err := flatstore.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var todos []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	ok, err := s.Get("todos", &todos)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || len(todos) != 1 || todos[0].Title != "first" {
		t.Errorf("todos = %v (present=%v)", todos, ok)
	}

	done, err := s.GetBool("migrationComplete")
	if err != nil {
		t.Fatalf("GetBool: %v", err)
	}
	if done {
		t.Error("flag should read false")
	}
}

func TestGetBoolAbsent(t *testing.T) {
	s, err := flatstore.Open(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	done, err := s.GetBool("migrationComplete")
	if err != nil {
		t.Fatalf("GetBool: %v", err)
	}
	if done {
		t.Error("absent flag should read false")
	}
}
