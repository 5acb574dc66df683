package merge

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/navsite/internal/domain"
)

// Change records one category written by a merge.
type Change struct {
	CategoryID string
	Sites      int
}

// Rename records a site id suffixed to stay unique.
type Rename struct {
	CategoryID string
	From       string
	To         string
}

// Report describes the outcome of a merge for the operator.
type Report struct {
	Created  bool // no document existed before
	Replaced []Change
	Appended []Change
	Renamed  []Rename

	ParsedSites      int           // sites in the fresh batch, repeated categories counted once
	PlaceholderSites []domain.Site // fresh sites left with the placeholder icon

	TotalCategories int // in the merged document
	TotalSites      int
}

// Categories returns the number of fresh categories written.
func (r *Report) Categories() int {
	return len(r.Replaced) + len(r.Appended)
}

// Summary renders the report as operator-facing lines.
func (r *Report) Summary() string {
	var b strings.Builder

	if r.Created {
		fmt.Fprintf(&b, "Created new document with %d categories\n", r.Categories())
	}
	for _, c := range r.Replaced {
		fmt.Fprintf(&b, "Replaced category: %s with %d sites (icon preserved if present)\n", c.CategoryID, c.Sites)
	}
	for _, c := range r.Appended {
		if r.Created {
			continue
		}
		fmt.Fprintf(&b, "Added category: %s with %d sites\n", c.CategoryID, c.Sites)
	}
	for _, rn := range r.Renamed {
		fmt.Fprintf(&b, "Renamed site id: %s -> %s (%s)\n", rn.From, rn.To, rn.CategoryID)
	}

	fmt.Fprintf(&b, "Total sites parsed: %d\n", r.ParsedSites)
	fmt.Fprintf(&b, "Sites using placeholder icon: %d\n", len(r.PlaceholderSites))
	for _, s := range r.PlaceholderSites {
		fmt.Fprintf(&b, " - %s %s\n", s.Name, s.URL)
	}

	return b.String()
}
