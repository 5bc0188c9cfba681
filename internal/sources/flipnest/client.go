package flipnest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"dealscout/internal/ingest"
	"dealscout/pkg/config"
	"dealscout/pkg/httputil"
	"dealscout/pkg/logger"
)

// SourceName is the provenance tag prefix for FlipNest records.
const SourceName = "flipnest"

// Client consumes the FlipNest marketplace JSON API. FlipNest deals in
// online businesses, so most records are location-independent.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new FlipNest client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("source", SourceName),
		baseURL:    strings.TrimRight(cfg.FlipNest.BaseURL, "/"),
		apiKey:     cfg.FlipNest.APIKey,
	}
}

// Name returns the source name used in provenance tags.
func (c *Client) Name() string {
	return SourceName
}

// apiListing is one listing in FlipNest's API shape.
type apiListing struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Price          *float64 `json:"price"`
	RevenueMonthly *float64 `json:"revenue_per_month"`
	ProfitMonthly  *float64 `json:"profit_per_month"`
	Established    *int     `json:"established_year"`
	Multiple       *float64 `json:"multiple"`
	URL            string   `json:"listing_url"`
	Summary        string   `json:"summary"`
	SellerName     string   `json:"seller_name"`
	SellerEmail    string   `json:"contact_email"`
}

// apiPage is one page of the paginated listings endpoint.
type apiPage struct {
	Listings []apiListing `json:"listings"`
	Page     int          `json:"page"`
	HasMore  bool         `json:"has_more"`
}

const maxAPIPages = 50

// Fetch walks the paginated listings endpoint.
func (c *Client) Fetch(ctx context.Context, filters ingest.Filters) ([]ingest.RawRecord, error) {
	var all []ingest.RawRecord

	maxPages := maxAPIPages
	if filters.MaxPages > 0 && filters.MaxPages < maxPages {
		maxPages = filters.MaxPages
	}

	for page := 1; page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		result, err := c.fetchPage(ctx, page, filters)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		for _, item := range result.Listings {
			all = append(all, toRawRecord(item))
		}

		c.logger.WithFields(map[string]interface{}{
			"page":  page,
			"count": len(result.Listings),
		}).Debug("Fetched listings page")

		if !result.HasMore {
			break
		}
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int, filters ingest.Filters) (*apiPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if filters.Keyword != "" {
		params.Set("q", filters.Keyword)
	}
	if filters.Industry != "" {
		params.Set("category", filters.Industry)
	}

	fullURL := fmt.Sprintf("%s/listings?%s", c.baseURL, params.Encode())

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var result apiPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	return &result, nil
}

// toRawRecord maps an API listing to the adapter-neutral raw shape.
// FlipNest businesses are online: the remote marker drives URL-based
// deduplication downstream.
func toRawRecord(item apiListing) ingest.RawRecord {
	rec := ingest.RawRecord{
		ExternalID:  strconv.FormatInt(item.ID, 10),
		Name:        item.Title,
		Industry:    item.Category,
		City:        "Online",
		ListingURL:  item.URL,
		Description: item.Summary,
		BrokerName:  item.SellerName,
		BrokerEmail: item.SellerEmail,
	}

	rec.AskingPrice = formatAmount(item.Price)
	rec.MonthlyRevenue = formatAmount(item.RevenueMonthly)
	rec.MonthlyProfit = formatAmount(item.ProfitMonthly)
	rec.AskingMultiple = formatAmount(item.Multiple)

	if item.Established != nil {
		rec.EstablishedYear = strconv.Itoa(*item.Established)
	}

	return rec
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
