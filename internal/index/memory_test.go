package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

func testDocument() *domain.Document {
	return &domain.Document{Categories: []domain.Category{
		{ID: "dev", Name: "Dev", Sites: []domain.Site{
			{ID: "github", Name: "GitHub", URL: "https://github.com"},
			{ID: "gitlab", Name: "GitLab", URL: "https://gitlab.com"},
		}},
		{ID: "search", Name: "Search", Sites: []domain.Site{
			{ID: "google", Name: "Google", URL: "https://google.com"},
		}},
	}}
}

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if index.Count() != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v sites", index.Count())
	}
	if doc := index.Document(); doc == nil || doc.Categories == nil {
		t.Error("NewMemoryIndex() should serve an empty document, not nil")
	}
	if !index.GetLastReload().IsZero() {
		t.Error("NewMemoryIndex() should not have a reload time")
	}
}

func TestUpdateDocument(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())

	if index.Count() != 3 {
		t.Errorf("UpdateDocument() indexed %v sites, want 3", index.Count())
	}
	if index.CategoryCount() != 2 {
		t.Errorf("UpdateDocument() indexed %v categories, want 2", index.CategoryCount())
	}
	site, ok := index.GetSite("gitlab")
	if !ok || site.URL != "https://gitlab.com" {
		t.Errorf("GetSite(gitlab) = %+v, %v", site, ok)
	}
	if index.GetLastReload().IsZero() {
		t.Error("UpdateDocument() should set the reload time")
	}
}

func TestUpdateDocumentOverwrites(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())
	index.UpdateDocument(&domain.Document{Categories: []domain.Category{
		{ID: "only", Sites: []domain.Site{{ID: "one", URL: "https://one.test"}}},
	}})

	if index.Count() != 1 {
		t.Errorf("UpdateDocument() should overwrite, got %v sites want 1", index.Count())
	}
	if index.HasSite("github") {
		t.Error("github should be gone after overwrite")
	}
}

func TestUpdateDocumentCopiesInput(t *testing.T) {
	index := NewMemoryIndex()
	doc := testDocument()
	index.UpdateDocument(doc)

	doc.Categories[0].Sites[0].URL = "https://changed.test"

	site, _ := index.GetSite("github")
	if site.URL != "https://github.com" {
		t.Errorf("index shares memory with the caller: %s", site.URL)
	}
}

func TestIncrementCounter(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())

	if got := index.IncrementCounter("github"); got != 1 {
		t.Errorf("IncrementCounter() = %v, want 1", got)
	}
	if got := index.IncrementCounter("github"); got != 2 {
		t.Errorf("IncrementCounter() = %v, want 2", got)
	}
	if got := index.Counter("github"); got != 2 {
		t.Errorf("Counter() = %v, want 2", got)
	}
}

func TestIncrementCounterNonExistent(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())

	// Increment counter for non-existent site should not panic
	if got := index.IncrementCounter("nonexistent"); got != 0 {
		t.Errorf("IncrementCounter() on non-existent = %v, want 0", got)
	}
	if len(index.Counters()) != 0 {
		t.Errorf("IncrementCounter() on non-existent should not create a counter, got %v", index.Counters())
	}
}

func TestMergeCountersKeepsLarger(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())
	index.IncrementCounter("github")
	index.IncrementCounter("github")

	index.MergeCounters(map[string]int64{"github": 1, "google": 7})

	if got := index.Counter("github"); got != 2 {
		t.Errorf("Counter(github) = %v, want 2", got)
	}
	if got := index.Counter("google"); got != 7 {
		t.Errorf("Counter(google) = %v, want 7", got)
	}

	index.DeleteCounter("google")
	if got := index.Counter("google"); got != 0 {
		t.Errorf("Counter(google) after delete = %v, want 0", got)
	}
}

func TestCountersReturnsCopy(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())
	index.IncrementCounter("google")

	counters := index.Counters()
	counters["google"] = 99

	if got := index.Counter("google"); got != 1 {
		t.Errorf("Counters() should return a copy, counter = %v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateDocument(testDocument())

	var wg sync.WaitGroup

	// Concurrent reads and reloads
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = domain.Filter(index.Document(), domain.FilterQuery{Query: "git"})
		}()
		go func() {
			defer wg.Done()
			index.UpdateDocument(testDocument())
		}()
	}

	// Concurrent counter increments
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			index.IncrementCounter("github")
		}()
	}

	wg.Wait()

	if got := index.Counter("github"); got != 100 {
		t.Errorf("Concurrent IncrementCounter() counter = %v, want 100", got)
	}
}
