package dealboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dealscout/internal/ingest"
	"dealscout/pkg/config"
	"dealscout/pkg/httputil"
	"dealscout/pkg/logger"
)

// SourceName is the provenance tag prefix for DealBoard records.
const SourceName = "dealboard"

// Client reads the DealBoard community export. DealBoard is an
// informal seller board: posts are sparse, figures are free text and
// sellers are unverified, which the scoring profile penalizes.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new DealBoard client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", SourceName),
		baseURL:    strings.TrimRight(cfg.DealBoard.BaseURL, "/"),
	}
}

// Name returns the source name used in provenance tags.
func (c *Client) Name() string {
	return SourceName
}

// boardPost is one post in the export feed.
type boardPost struct {
	PostID    string `json:"post_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Category  string `json:"category"`
	PriceText string `json:"price_text"`   // free text, e.g. "$85k obo"
	Revenue   string `json:"revenue_text"` // free text
	Location  string `json:"location"`     // free text, often "online"
	Contact   string `json:"contact"`
	Link      string `json:"link"`
}

// Fetch reads the full export in one request; the feed is small.
func (c *Client) Fetch(ctx context.Context, filters ingest.Filters) ([]ingest.RawRecord, error) {
	fullURL := c.baseURL + "/listings.json"

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var posts []boardPost
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("decode export failed: %w", err)
	}

	var records []ingest.RawRecord
	for _, post := range posts {
		if post.PostID == "" {
			// No stable identifier at all; skip rather than fabricate
			// a provenance tag.
			continue
		}
		if filters.Keyword != "" && !strings.Contains(strings.ToLower(post.Title+" "+post.Body), strings.ToLower(filters.Keyword)) {
			continue
		}

		records = append(records, toRawRecord(post))
	}

	c.logger.WithField("count", len(records)).Debug("Fetched export")

	return records, nil
}

func toRawRecord(post boardPost) ingest.RawRecord {
	rec := ingest.RawRecord{
		ExternalID:    post.PostID,
		Name:          strings.TrimSpace(post.Title),
		Industry:      strings.TrimSpace(post.Category),
		AskingPrice:   cleanFigure(post.PriceText),
		AnnualRevenue: cleanFigure(post.Revenue),
		Description:   strings.TrimSpace(post.Body),
		BrokerEmail:   extractEmail(post.Contact),
		ListingURL:    strings.TrimSpace(post.Link),
	}

	city, state := parseLocation(post.Location)
	rec.City = city
	rec.State = state

	return rec
}

// cleanFigure strips community-post noise ("obo", "firm", "/yr") off a
// money figure. Whatever remains is still raw; the normalizer decides
// whether it parses.
func cleanFigure(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, noise := range []string{"obo", "firm", "negotiable", "/yr", "/year", "per year"} {
		s = strings.ReplaceAll(s, noise, "")
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseLocation interprets free-text locations. Anything that reads as
// online maps to the remote marker.
func parseLocation(loc string) (city, state string) {
	loc = strings.TrimSpace(loc)
	lower := strings.ToLower(loc)
	if lower == "" || strings.Contains(lower, "online") || strings.Contains(lower, "remote") || strings.Contains(lower, "anywhere") {
		return "Online", ""
	}

	parts := strings.SplitN(loc, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}

// extractEmail pulls an email address out of a free-text contact line.
func extractEmail(contact string) string {
	for _, field := range strings.Fields(contact) {
		if strings.Count(field, "@") == 1 && strings.Contains(field, ".") {
			return strings.Trim(field, "<>(),;")
		}
	}
	return ""
}
