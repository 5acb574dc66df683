package domain

import (
	"math"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier substring is better)
	ScorePositionBonus = 10.0

	// Exact name match bonus (huge boost)
	ScoreExactNameBonus = 200.0

	// Usage weight (click counter contributes to final score)
	ScoreUsageWeight = 0.1
)

// SiteCandidate represents a site with its match score.
type SiteCandidate struct {
	Site         *Site
	LexicalScore float64 // Score from fuzzy matching on the name
	UsageScore   float64 // Score from click counts
	TotalScore   float64 // Combined score
}

// ScoreSite calculates the lexical match score of a site against a query string.
func ScoreSite(queryStr string, site *Site) float64 {
	if site == nil || queryStr == "" {
		return 0.0
	}

	queryStr = strings.ToLower(strings.TrimSpace(queryStr))
	name := strings.ToLower(strings.TrimSpace(site.Name))
	if queryStr == "" || name == "" {
		return 0.0
	}

	// Exact match (highest score)
	if queryStr == name {
		return ScoreExactMatch + ScoreExactNameBonus
	}

	// Prefix match
	if strings.HasPrefix(name, queryStr) {
		return ScorePrefixMatch
	}

	// Substring match
	if index := strings.Index(name, queryStr); index >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(name)))
		return ScoreSubstringMatch + substringBonus
	}

	// Word-based: every query word appears in the name
	queryWords := strings.Fields(queryStr)
	if len(queryWords) > 1 {
		allMatch := true
		for _, word := range queryWords {
			if !strings.Contains(name, word) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return ScoreFuzzyMatch
		}
	}

	// Character similarity
	similarity := calculateSimilarity(queryStr, name)
	if similarity > 0.5 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// RankSites ranks sites by lexical score plus a logarithmic usage bonus.
// usage may be nil. Sites without a URL cannot be jumped to and are skipped.
func RankSites(queryStr string, sites []Site, usage map[string]int64) []*SiteCandidate {
	candidates := make([]*SiteCandidate, 0, len(sites))

	for i := range sites {
		site := &sites[i]
		if site.URL == "" {
			continue
		}

		lexicalScore := ScoreSite(queryStr, site)
		if lexicalScore == 0.0 {
			continue
		}

		// Logarithmic to prevent popular sites from dominating
		usageScore := 0.0
		if count := usage[site.ID]; count > 0 {
			usageScore = math.Log10(float64(count)+1) * ScoreUsageWeight * 100
		}

		candidates = append(candidates, &SiteCandidate{
			Site:         site,
			LexicalScore: lexicalScore,
			UsageScore:   usageScore,
			TotalScore:   lexicalScore + usageScore,
		})
	}

	sortSiteCandidates(candidates)

	return candidates
}

// sortSiteCandidates sorts candidates by total score (descending), stable on ties
// so document order decides between equal scores.
func sortSiteCandidates(candidates []*SiteCandidate) {
	// Insertion sort, lists hold a few hundred entries at most
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j-1].TotalScore < candidates[j].TotalScore; j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}
}

// FindBestSite finds the best matching site for a query.
func FindBestSite(queryStr string, sites []Site, usage map[string]int64) *Site {
	candidates := RankSites(queryStr, sites, usage)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0].Site
}

// calculateSimilarity returns the ratio of query runes found in s2.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	total, matches := 0, 0
	for _, c := range s1 {
		total++
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(total)
}
