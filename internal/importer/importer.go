// Package importer runs the offline conversion: read an export, extract
// categories, merge them into sites.json and write it back.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/MrSnakeDoc/navsite/internal/domain"
	"github.com/MrSnakeDoc/navsite/internal/icons"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	"github.com/MrSnakeDoc/navsite/internal/merge"
	"github.com/MrSnakeDoc/navsite/internal/sources/homepage"
	"github.com/MrSnakeDoc/navsite/internal/sources/legacyhtml"
	"github.com/MrSnakeDoc/navsite/internal/store/sitesfile"
	"github.com/MrSnakeDoc/navsite/internal/utils"
)

// ErrMissingInput is returned when the export file does not exist.
var ErrMissingInput = errors.New("input file not found")

// Format names the kind of export being imported.
type Format string

const (
	FormatLegacy            Format = "legacy"
	FormatHomepageServices  Format = "homepage-services"
	FormatHomepageBookmarks Format = "homepage-bookmarks"
)

// Options configures one import run.
type Options struct {
	SourcePath string // export file, e.g. data.txt
	SitesPath  string // sites.json to merge into
	Root       string // project root local icons are looked up under
	Format     Format // defaults to FormatLegacy

	PlaceholderIcon string // defaults to domain.PlaceholderSiteIcon

	// Legacy carries selectors and the empty-url policy for FormatLegacy.
	Legacy legacyhtml.Options

	StableIDs bool // see merge.Engine.ReleaseReplaced
	DryRun    bool // merge and report, but do not write
}

// Result is the outcome of Run.
type Result struct {
	Report   *merge.Report    // nil when nothing was parsed
	Document *domain.Document // merged document, nil when nothing was parsed
	Written  bool
}

// Extractor turns an export into categories.
type Extractor interface {
	Extract(r io.Reader) ([]domain.Category, error)
}

// Importer wires the extractor, merge engine and sites file together.
type Importer struct {
	log logger.Logger
}

func New(log logger.Logger) *Importer {
	return &Importer{log: log}
}

// Run executes the pipeline. Fatal conditions (missing input, unreadable or
// malformed sites file, failed write) are returned as errors and leave the
// sites file untouched. Record-level anomalies never fail the run.
func (im *Importer) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = FormatLegacy
	}
	if opts.PlaceholderIcon == "" {
		opts.PlaceholderIcon = domain.PlaceholderSiteIcon
	}

	extractor, err := NewExtractor(opts)
	if err != nil {
		return nil, err
	}

	categories, err := im.extract(opts.SourcePath, extractor)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		im.log.Warn("no categories parsed", logger.String("source", opts.SourcePath))
		return &Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existing, err := sitesfile.Load(opts.SitesPath)
	switch {
	case errors.Is(err, sitesfile.ErrNotFound):
		existing = nil
	case err != nil:
		return nil, err
	}

	engine := merge.Engine{ReleaseReplaced: opts.StableIDs, PlaceholderIcon: opts.PlaceholderIcon}
	doc, report := engine.Merge(existing, categories)

	result := &Result{Report: report, Document: doc}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.DryRun {
		im.log.Info("dry run, sites file not written", logger.String("path", opts.SitesPath))
	} else {
		if err := sitesfile.Save(opts.SitesPath, doc); err != nil {
			return nil, err
		}
		result.Written = true
	}

	im.logReport(opts, report)
	return result, nil
}

// NewExtractor builds the extractor for opts.Format.
func NewExtractor(opts Options) (Extractor, error) {
	resolver := icons.NewResolver(opts.Root, opts.PlaceholderIcon)

	switch opts.Format {
	case FormatLegacy, "":
		return legacyhtml.NewExtractor(resolver, opts.Legacy), nil
	case FormatHomepageServices:
		return homepage.NewExtractor(homepage.KindServices, resolver)
	case FormatHomepageBookmarks:
		return homepage.NewExtractor(homepage.KindBookmarks, resolver)
	default:
		return nil, fmt.Errorf("unknown import format %q", opts.Format)
	}
}

func (im *Importer) extract(path string, extractor Extractor) ([]domain.Category, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer utils.Close(f)

	categories, err := extractor.Extract(f)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return categories, nil
}

func (im *Importer) logReport(opts Options, report *merge.Report) {
	if report.Created {
		im.log.Info("created new sites file",
			logger.String("path", opts.SitesPath),
			logger.Int("categories", report.Categories()))
	}
	for _, c := range report.Replaced {
		im.log.Info("replaced category (icon preserved if present)",
			logger.String("category", c.CategoryID), logger.Int("sites", c.Sites))
	}
	if !report.Created {
		for _, c := range report.Appended {
			im.log.Info("added category",
				logger.String("category", c.CategoryID), logger.Int("sites", c.Sites))
		}
	}
	for _, r := range report.Renamed {
		im.log.Debug("site id suffixed",
			logger.String("category", r.CategoryID), logger.String("from", r.From), logger.String("to", r.To))
	}

	im.log.Info("import finished",
		logger.Bool("dry_run", opts.DryRun),
		logger.Int("categories", report.Categories()),
		logger.Int("sites_parsed", report.ParsedSites),
		logger.Int("sites_total", report.TotalSites),
		logger.Int("placeholder_icons", len(report.PlaceholderSites)))

	for _, s := range report.PlaceholderSites {
		im.log.Warn("site uses placeholder icon",
			logger.String("name", s.Name), logger.String("url", s.URL))
	}
}
