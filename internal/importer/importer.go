package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// maxItemLength drops list entries that are paragraphs rather than food names.
	maxItemLength = 60
	// maxPageBytes caps how much of a page is read; anything past it is ignored.
	maxPageBytes = 2 << 20
)

// ErrUnsupportedScheme is returned for URLs that are not http or https.
var ErrUnsupportedScheme = errors.New("only http and https URLs can be imported")

// Importer pulls candidate food items out of web pages.
type Importer struct {
	client *http.Client
}

// NewImporter creates a new Importer. A nil client gets a 15s timeout default.
func NewImporter(client *http.Client) *Importer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Importer{client: client}
}

// FetchItems downloads rawURL and returns the text of its list items, trimmed
// and de-duplicated without regard to case.
func (i *Importer) FetchItems(ctx context.Context, rawURL string) ([]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove noise
	doc.Find("script, style, nav, header, footer, iframe, ads, .ads, #ads, aside").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	seen := make(map[string]bool)
	items := []string{}
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" || len(text) > maxItemLength {
			return
		}
		key := strings.ToLower(text)
		if seen[key] {
			return
		}
		seen[key] = true
		items = append(items, text)
	})
	return items, nil
}
