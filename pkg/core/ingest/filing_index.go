package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IndexEntry is one document row from an EDGAR Archives filing index page.
type IndexEntry struct {
	Sequence    string `json:"sequence"`
	Description string `json:"description"`
	Document    string `json:"document"`
	DocType     string `json:"doc_type"`
	URL         string `json:"url"`
}

// ParseFilingIndex extracts the document table from an EDGAR filing index
// page. baseURL is prefixed onto each document link to form an absolute URL.
func ParseFilingIndex(r io.Reader, baseURL string) ([]IndexEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing index: %w", err)
	}

	entries := make([]IndexEntry, 0)
	doc.Find("table.tableFile tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header row or spacer
		}

		link := cells.Eq(2).Find("a")
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		entries = append(entries, IndexEntry{
			Sequence:    strings.TrimSpace(cells.Eq(0).Text()),
			Description: strings.TrimSpace(cells.Eq(1).Text()),
			Document:    strings.TrimSpace(link.Text()),
			DocType:     strings.TrimSpace(cells.Eq(3).Text()),
			URL:         strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/"),
		})
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("no documents found in filing index")
	}
	return entries, nil
}

// PrimaryDocument returns the first entry matching the form type (e.g.
// "10-K"), or nil when the index has none.
func PrimaryDocument(entries []IndexEntry, formType string) *IndexEntry {
	for i := range entries {
		if strings.EqualFold(entries[i].DocType, formType) {
			return &entries[i]
		}
	}
	return nil
}
