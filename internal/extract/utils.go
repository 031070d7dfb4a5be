package extract

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/software-meta-parser/models"
	"github.com/dtnitsch/software-meta-parser/pkg/db"
	"github.com/dtnitsch/software-meta-parser/pkg/extractors"
	"github.com/dtnitsch/software-meta-parser/pkg/fetcher"
)

// Metadata namespaces used in record_meta.
const (
	NamespaceTrace    = "trace"
	NamespacePage     = "page"
	NamespaceSnapshot = "snapshot"
)

// saveResult stores the record and everything known about how it was
// extracted. It returns the record id.
func saveResult(database *db.DB, pageURL string, result extractors.Result, page models.PageMetadata, snap *models.Snapshot) (int64, error) {
	recordID, err := database.SaveRecord(pageURL, result.Record, recordMeta(result.Trace, page, snap)...)
	if err != nil {
		return 0, err
	}
	return recordID, nil
}

// recordMeta collects the non-empty metadata pairs of one extraction.
func recordMeta(trace extractors.Trace, page models.PageMetadata, snap *models.Snapshot) []db.Meta {
	namespaces := map[string]map[string]string{
		NamespaceTrace: tracePairs(trace),
		NamespacePage:  page.Pairs(),
	}
	if snap != nil {
		namespaces[NamespaceSnapshot] = map[string]string{
			"title":     snap.Title,
			"excerpt":   snap.Excerpt,
			"site_name": snap.SiteName,
			"text":      snap.Text,
		}
	}

	var meta []db.Meta
	for namespace, pairs := range namespaces {
		for key, value := range pairs {
			if value == "" {
				continue
			}
			meta = append(meta, db.Meta{Namespace: namespace, Key: key, Value: value})
		}
	}
	return meta
}

// tracePairs flattens a trace into record_meta keys such as "strategy" and
// "source.company".
func tracePairs(t extractors.Trace) map[string]string {
	out := map[string]string{
		"strategy":           string(t.Strategy),
		"source.title":       string(t.Title),
		"source.description": string(t.Description),
		"source.url":         string(t.URL),
	}
	for field, src := range t.Sources {
		out["source."+string(field)] = string(src)
	}
	if t.Skipped > 0 {
		out["skipped_groupings"] = fmt.Sprint(t.Skipped)
	}
	if t.StructuredDataError != "" {
		out["structured_data_error"] = t.StructuredDataError
	}
	return out
}

// fetchFailure classifies a failed fetch for the fetches table.
func fetchFailure(err error) (errorType string, statusCode int) {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		return "http_status", statusErr.StatusCode
	}
	return "fetch_error", 0
}
