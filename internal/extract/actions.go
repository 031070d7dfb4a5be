package extract

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/software-meta-parser/internal/common"
	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/db"
	"github.com/dtnitsch/software-meta-parser/pkg/detector"
	"github.com/dtnitsch/software-meta-parser/pkg/extractor"
	"github.com/dtnitsch/software-meta-parser/pkg/extractors"
	"github.com/dtnitsch/software-meta-parser/pkg/fetcher"
	"github.com/dtnitsch/software-meta-parser/pkg/language"
	"github.com/dtnitsch/software-meta-parser/pkg/parser"
	"github.com/dtnitsch/software-meta-parser/pkg/storage"
	"github.com/urfave/cli/v2"
)

// DetectAction prints the item type of an eligible URL and fails otherwise.
func DetectAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: No URL provided\n\nUsage:\n  smp detect <url>", 1)
	}

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	d, err := detector.New(cfg.Profile)
	if err != nil {
		return err
	}

	rawURL := common.SanitizeURL(c.Args().First())
	itemType, ok := d.Detect(rawURL)
	if !ok {
		return cli.Exit(fmt.Sprintf("not eligible: %s", rawURL), 1)
	}
	fmt.Fprintln(c.App.Writer, itemType)
	return nil
}

// ExtractAction fetches (or reads) one page, extracts its record and prints it.
func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	if c.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URL provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  smp extract "https://www.meta.com/experiences/gorilla-tag/4979055762136823/"`)
		fmt.Fprintln(os.Stderr, `  smp extract --file page.html "https://www.meta.com/experiences/..."   # Use saved HTML`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: smp extract --help")
		return cli.Exit("", 1)
	}

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	pageURL, err := common.SanitizeAndValidateURL(c.Args().First())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	strategy, err := extractor.ParseStrategy(c.String("strategy"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	ext, err := extractors.NewSoftwareExtractor(cfg.Profile)
	if err != nil {
		return err
	}
	if _, ok := ext.Detect(pageURL); !ok {
		return cli.Exit(fmt.Sprintf("not eligible: %s", pageURL), 1)
	}

	var database *db.DB
	if c.Bool("save") {
		database, err = db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()
	}

	html, page, err := loadHTML(c, cfg, logger, pageURL, database)
	if err != nil {
		return err
	}

	p := &parser.Parser{}
	req := models.ParseRequest{URL: pageURL, HTML: string(html)}
	doc, err := p.Parse(req)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	result, ok := ext.Extract(doc, strategy)
	if !ok {
		return cli.Exit(fmt.Sprintf("not eligible: %s", pageURL), 1)
	}
	if result.Record.Title == "" {
		logger.Warn("no title found", "url", pageURL)
	}
	if result.Trace.StructuredDataError != "" {
		logger.Debug("structured data ignored", "url", pageURL, "error", result.Trace.StructuredDataError)
	}
	logger.Info("extracted",
		"url", pageURL,
		"strategy", result.Trace.Strategy,
		"summary", result.Record.Summary(),
	)

	page.SiteName = doc.Meta("og:site_name")
	if c.Bool("language") {
		if tag, ok := language.NewDetector().Detect(result.Record.AbstractNote); ok {
			page.Language = tag.Code
			page.LanguageConfidence = tag.Confidence
		}
	}

	out := ExtractOutput{Record: result.Record, Page: &page}
	if c.Bool("trace") {
		out.Trace = &result.Trace
	}
	if c.Bool("snapshot") {
		snap, err := p.Snapshot(req)
		if err != nil {
			logger.Warn("snapshot failed", "url", pageURL, "error", err)
		} else {
			out.Snapshot = &snap
		}
	}

	if database != nil {
		out.RecordID, err = saveResult(database, pageURL, result, page, out.Snapshot)
		if err != nil {
			return err
		}
		logger.Info("record saved", "record_id", out.RecordID, "db", database.Path())
	}

	var v any = result.Record
	if c.Bool("trace") || c.Bool("snapshot") || c.Bool("language") || c.Bool("save") {
		v = out
	}
	return writeOutput(c, cfg.Output.Format, v)
}

// loadHTML reads --file when given, otherwise fetches pageURL. Fetches are
// recorded when a database is open.
func loadHTML(c *cli.Context, cfg *models.Config, logger *slog.Logger, pageURL string, database *db.DB) ([]byte, models.PageMetadata, error) {
	s := &storage.Storage{}

	if path := c.String("file"); path != "" {
		html, err := s.ReadFile(path)
		if err != nil {
			return nil, models.PageMetadata{}, err
		}
		logger.Debug("read HTML from file", "path", path, "bytes", len(html))
		return html, pageMetadata("file", 0, html), nil
	}

	f := fetcher.NewFetcher(fetcher.Options{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
		Logger:    logger,
	})
	html, err := f.GetHtmlBytes(c.Context, pageURL)
	if err != nil {
		logger.Error("fetch failed", "url", pageURL, "error", err)
		if database != nil {
			errorType, statusCode := fetchFailure(err)
			if recErr := database.RecordFetch(pageURL, statusCode, errorType, false); recErr != nil {
				logger.Warn("failed to record fetch", "url", pageURL, "error", recErr)
			}
		}
		return nil, models.PageMetadata{}, err
	}

	if database != nil {
		if err := database.RecordFetch(pageURL, 200, "", true); err != nil {
			logger.Warn("failed to record fetch", "url", pageURL, "error", err)
		}
	}
	return html, pageMetadata("http", 200, html), nil
}

func pageMetadata(source string, statusCode int, html []byte) models.PageMetadata {
	return models.PageMetadata{
		Source:      source,
		StatusCode:  statusCode,
		SizeBytes:   len(html),
		ContentHash: common.ContentHash(html),
	}
}

func writeOutput(c *cli.Context, format string, v any) error {
	s := &storage.Storage{}
	if path := c.String("output"); path != "" {
		data, err := s.Encode(v, format)
		if err != nil {
			return err
		}
		return s.SaveFile(path, data)
	}
	return s.Write(c.App.Writer, v, format)
}
