package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/index"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	"github.com/MrSnakeDoc/navsite/internal/store/sitesfile"
)

func writeDocument(t *testing.T, path string, ids ...string) {
	t.Helper()
	sites := make([]domain.Site, 0, len(ids))
	for _, id := range ids {
		sites = append(sites, domain.Site{ID: id, Name: id, URL: "https://" + id + ".test"})
	}
	doc := &domain.Document{Categories: []domain.Category{{ID: "all", Name: "All", Sites: sites}}}
	if err := sitesfile.Save(path, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestDocumentReloader_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	writeDocument(t, path, "github", "gitlab")

	memIndex := index.NewMemoryIndex()
	reloader := NewDocumentReloader(path, nil, memIndex, logger.Nop(), time.Hour, nil)

	if err := reloader.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if memIndex.Count() != 2 {
		t.Errorf("index has %d sites, want 2", memIndex.Count())
	}

	// A broken file keeps the previous document
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := reloader.Reload(context.Background())
	var malformed *sitesfile.MalformedError
	if !errors.As(err, &malformed) {
		t.Errorf("Reload() error = %v, want MalformedError", err)
	}
	if memIndex.Count() != 2 {
		t.Errorf("index has %d sites after failed reload, want 2", memIndex.Count())
	}
}

func TestDocumentReloader_StartMissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	memIndex := index.NewMemoryIndex()
	reloader := NewDocumentReloader(filepath.Join(t.TempDir(), "sites.json"), nil, memIndex, logger.Nop(), time.Hour, nil)

	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start() with missing file should not fail: %v", err)
	}
	reloader.Stop()

	if memIndex.Count() != 0 {
		t.Errorf("index has %d sites, want 0", memIndex.Count())
	}
}

func TestDocumentReloader_StartMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloader := NewDocumentReloader(path, nil, index.NewMemoryIndex(), logger.Nop(), time.Hour, nil)
	if err := reloader.Start(context.Background()); err == nil {
		t.Error("Start() with malformed file should fail")
	}
}

func TestDocumentReloader_ManualTrigger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "sites.json")
	writeDocument(t, path, "github")

	memIndex := index.NewMemoryIndex()
	trigger := make(chan struct{}, 1)
	reloader := NewDocumentReloader(path, nil, memIndex, logger.Nop(), time.Hour, trigger)
	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer reloader.Stop()

	writeDocument(t, path, "github", "gitlab", "bitbucket")
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for memIndex.Count() != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("manual trigger did not reload, index has %d sites", memIndex.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
