package domain

import "testing"

func TestScoreSite(t *testing.T) {
	tests := []struct {
		name           string
		queryStr       string
		siteName       string
		expectPositive bool
	}{
		{
			name:           "exact match",
			queryStr:       "github",
			siteName:       "GitHub",
			expectPositive: true,
		},
		{
			name:           "prefix match",
			queryStr:       "git",
			siteName:       "GitHub",
			expectPositive: true,
		},
		{
			name:           "substring match",
			queryStr:       "hub",
			siteName:       "GitHub",
			expectPositive: true,
		},
		{
			name:           "no match",
			queryStr:       "xyz",
			siteName:       "GitHub",
			expectPositive: false,
		},
		{
			name:           "multi-word match",
			queryStr:       "docker hub",
			siteName:       "Docker Hub",
			expectPositive: true,
		},
		{
			name:           "cjk substring",
			queryStr:       "翻译",
			siteName:       "谷歌翻译",
			expectPositive: true,
		},
		{
			name:           "empty name",
			queryStr:       "a",
			siteName:       "",
			expectPositive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := &Site{ID: "test-id", Name: tt.siteName, URL: "https://example.com"}

			score := ScoreSite(tt.queryStr, site)

			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}
			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreSiteOrdering(t *testing.T) {
	site := &Site{Name: "GitHub", URL: "https://github.com"}

	exact := ScoreSite("github", site)
	prefix := ScoreSite("git", site)
	substring := ScoreSite("hub", site)

	if !(exact > prefix && prefix > substring) {
		t.Errorf("expected exact > prefix > substring, got %f, %f, %f", exact, prefix, substring)
	}
}

func TestRankSitesSkipsSitesWithoutURL(t *testing.T) {
	sites := []Site{
		{ID: "chat-draft", Name: "Chat Draft"},
		{ID: "chatgpt", Name: "ChatGPT", URL: "https://chat.openai.com"},
	}

	candidates := RankSites("chat", sites, nil)

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Site.ID != "chatgpt" {
		t.Errorf("Expected chatgpt, got %s", candidates[0].Site.ID)
	}
}

func TestRankSitesUsageBreaksTies(t *testing.T) {
	sites := []Site{
		{ID: "jellyfin", Name: "jellyfin", URL: "https://jellyfin.example.com"},
		{ID: "jellyseerr", Name: "jellyseerr", URL: "https://jellyseerr.example.com"},
	}

	best := FindBestSite("jelly", sites, nil)
	if best == nil || best.ID != "jellyfin" {
		t.Fatalf("without usage, document order should win, got %v", best)
	}

	usage := map[string]int64{"jellyseerr": 42}
	best = FindBestSite("jelly", sites, usage)
	if best == nil || best.ID != "jellyseerr" {
		t.Fatalf("usage should promote jellyseerr, got %v", best)
	}
}

func TestFindBestSiteNoMatch(t *testing.T) {
	sites := []Site{{ID: "a", Name: "Alpha", URL: "https://a.test"}}
	if got := FindBestSite("zzz", sites, nil); got != nil {
		t.Errorf("FindBestSite() = %v, want nil", got)
	}
}
