package biznest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dealscout/internal/ingest"
	"dealscout/pkg/config"
	"dealscout/pkg/httputil"
	"dealscout/pkg/logger"
)

// SourceName is the provenance tag prefix for BizNest records.
const SourceName = "biznest"

// Client scrapes the BizNest brokerage marketplace's search result
// pages. BizNest is a verified platform: listings carry stable numeric
// ids and broker contact details.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	maxPages   int
}

// NewClient creates a new BizNest client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", SourceName),
		baseURL:    strings.TrimRight(cfg.BizNest.BaseURL, "/"),
		maxPages:   cfg.BizNest.MaxPages,
	}
}

// Name returns the source name used in provenance tags.
func (c *Client) Name() string {
	return SourceName
}

// Fetch walks the paginated search results until a page comes back
// empty or the page cap is reached.
func (c *Client) Fetch(ctx context.Context, filters ingest.Filters) ([]ingest.RawRecord, error) {
	var all []ingest.RawRecord

	maxPages := c.maxPages
	if filters.MaxPages > 0 && filters.MaxPages < maxPages {
		maxPages = filters.MaxPages
	}

	for page := 1; page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		records, err := c.fetchPage(ctx, page, filters)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(records) == 0 {
			break
		}

		all = append(all, records...)

		c.logger.WithFields(map[string]interface{}{
			"page":  page,
			"count": len(records),
		}).Debug("Fetched listings page")
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int, filters ingest.Filters) ([]ingest.RawRecord, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))
	if filters.Keyword != "" {
		params.Set("q", filters.Keyword)
	}
	if filters.Industry != "" {
		params.Set("industry", filters.Industry)
	}
	if filters.State != "" {
		params.Set("state", filters.State)
	}

	fullURL := fmt.Sprintf("%s/businesses-for-sale/?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	})
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return parseListings(resp.Body, c.baseURL)
}

// parseListings extracts raw records from a search results page.
func parseListings(html io.Reader, baseURL string) ([]ingest.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(html)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	var records []ingest.RawRecord

	doc.Find("div.listing-card").Each(func(i int, card *goquery.Selection) {
		id, ok := card.Attr("data-listing-id")
		if !ok || strings.TrimSpace(id) == "" {
			return
		}

		rec := ingest.RawRecord{
			ExternalID:  strings.TrimSpace(id),
			Name:        text(card, "h3.listing-title"),
			Industry:    text(card, "span.listing-industry"),
			AskingPrice: text(card, "span.asking-price"),
			CashFlow:    text(card, "span.cash-flow"),
			Description: text(card, "p.listing-teaser"),
			BrokerName:  text(card, "span.broker-name"),
			BrokerPhone: text(card, "span.broker-phone"),
		}

		// "Austin, TX" or "Remote"
		rec.City, rec.State = splitLocation(text(card, "span.listing-location"))

		if year := text(card, "span.established"); year != "" {
			rec.EstablishedYear = strings.TrimPrefix(year, "Est. ")
		}

		if href, ok := card.Find("a.listing-link").Attr("href"); ok {
			if strings.HasPrefix(href, "/") {
				href = baseURL + href
			}
			rec.ListingURL = href
		}

		records = append(records, rec)
	})

	return records, nil
}

func text(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// splitLocation splits "City, ST" into its parts. A single token is
// treated as the city ("Remote", "Online").
func splitLocation(loc string) (city, state string) {
	parts := strings.SplitN(loc, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}
