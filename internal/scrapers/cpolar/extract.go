package cpolar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cpolar-export/internal/tunnel"
	"cpolar-export/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable means the status page held no recognizable tunnel table. Either
// the site layout changed or the login silently landed somewhere unexpected.
var ErrNoTable = errors.New("no tunnel table found in the status page; the page structure may have changed")

// The dashboard tags regions with short codes, upper or lower case. Mixed
// case is deliberately not matched and the matched casing is reported as-is.
var regionRegex = regexp.MustCompile(`\b(CN|HK|US|TW|EUR|cn|hk|us|tw|eur)\b`)

var urlSchemes = []string{"http://", "https://", "tcp://"}

// Extract parses the status page html into tunnel records, one per data row
// of the first table-like element. Row order is preserved; rows contributing
// neither a name nor a url are dropped.
func Extract(rawHtml string) ([]tunnel.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHtml))
	if err != nil {
		return nil, fmt.Errorf("parse status page: %w", err)
	}

	table := findTunnelTable(doc)
	if table == nil {
		return nil, ErrNoTable
	}

	rows := table.Find("tr")
	// the first row is the header whenever there is more than one row
	start := 0
	if rows.Length() >= 2 {
		start = 1
	}

	var records []tunnel.Record
	rows.Slice(start, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		rec := recordFromRow(row, cells)
		if rec.Name == "" && rec.Url == nil {
			return
		}
		records = append(records, rec)
	})

	return records, nil
}

// findTunnelTable locates the first <table>, falling back to the first
// element whose class attribute contains "table" (case-insensitive).
func findTunnelTable(doc *goquery.Document) *goquery.Selection {
	table := doc.Find("table").First()
	if table.Length() > 0 {
		return table
	}

	fallback := doc.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && strings.Contains(strings.ToLower(class), "table")
	}).First()
	if fallback.Length() > 0 {
		return fallback
	}

	return nil
}

func recordFromRow(row, cells *goquery.Selection) tunnel.Record {
	rec := tunnel.Record{
		Name: htmlutil.Text(cells.Nodes[0]),
	}

	if href, ok := row.Find("a[href]").First().Attr("href"); ok {
		link := strings.TrimSpace(href)
		rec.Url = &link
		rec.Proto = tunnel.ProtoForUrl(link)
	}

	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := htmlutil.SelectionText(cell)
		if isLocalAddr(text) {
			rec.Local = &text
			return false
		}
		return true
	})

	if m := regionRegex.FindString(htmlutil.SelectionText(cells)); m != "" {
		rec.Region = &m
	}

	return rec
}

// isLocalAddr reports whether text looks like a host:port pair: it ends in a
// decimal segment after the last colon and does not start with a url scheme.
func isLocalAddr(text string) bool {
	if !strings.Contains(text, ":") {
		return false
	}
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(text, scheme) {
			return false
		}
	}
	port := text[strings.LastIndex(text, ":")+1:]
	if port == "" {
		return false
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
