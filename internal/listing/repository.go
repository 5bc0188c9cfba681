package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lookup is the read surface the deduplication policy runs against.
// During an insert it is backed by the same transaction as the insert,
// so check-then-insert is atomic per provenance tag.
type Lookup interface {
	// HasProvenance reports whether any stored listing already carries
	// one of the given provenance tags.
	HasProvenance(ctx context.Context, tags []string) (bool, error)

	// ExistsByListingURL reports whether a listing with the exact
	// listing URL exists.
	ExistsByListingURL(ctx context.Context, url string) (bool, error)

	// ExistsByName reports whether a listing with the same name exists
	// (case-insensitive exact match).
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByNameCityState reports whether a listing with the same
	// name, city and state exists (case-insensitive exact match).
	ExistsByNameCityState(ctx context.Context, name, city, state string) (bool, error)
}

// DuplicateCheck decides whether the candidate being inserted already
// exists, given transactional read access to the store.
type DuplicateCheck func(ctx context.Context, store Lookup) (bool, error)

// Repository handles listing persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Pool returns the underlying database pool.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.db
}

// CreateIfNew inserts the listing unless isDuplicate says it already
// exists. The duplicate check and the insert run in one transaction,
// serialized per provenance tag with an advisory lock, so two
// concurrent imports of the same tag cannot both insert.
// Returns true when a row was inserted, false on a duplicate skip.
func (r *Repository) CreateIfNew(ctx context.Context, l *Listing, isDuplicate DuplicateCheck) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent writers touching the same provenance tag.
	for _, tag := range l.Sources {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, tag); err != nil {
			return false, fmt.Errorf("acquire tag lock: %w", err)
		}
	}

	dup, err := isDuplicate(ctx, &txLookup{tx: tx})
	if err != nil {
		return false, fmt.Errorf("duplicate check: %w", err)
	}
	if dup {
		return false, nil
	}

	locationJSON, err := json.Marshal(l.Location)
	if err != nil {
		return false, fmt.Errorf("marshal location: %w", err)
	}
	financialJSON, err := json.Marshal(l.Financial)
	if err != nil {
		return false, fmt.Errorf("marshal financial data: %w", err)
	}
	contactJSON, err := json.Marshal(l.Contact)
	if err != nil {
		return false, fmt.Errorf("marshal contact info: %w", err)
	}

	query := `
		INSERT INTO listings (
			name, industry, location, financial_data, contact_info,
			price_range, quality_score, risk_score, data_sources,
			created_at, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, last_updated
	`

	err = tx.QueryRow(ctx, query,
		l.Name, l.Industry, locationJSON, financialJSON, contactJSON,
		l.PriceRange, l.QualityScore, l.RiskScore, l.Sources,
	).Scan(&l.ID, &l.CreatedAt, &l.LastUpdated)
	if err != nil {
		return false, fmt.Errorf("insert listing: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return true, nil
}

// txLookup implements Lookup against an open transaction.
type txLookup struct {
	tx pgx.Tx
}

func (t *txLookup) HasProvenance(ctx context.Context, tags []string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE data_sources && $1)`, tags,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query provenance: %w", err)
	}
	return exists, nil
}

func (t *txLookup) ExistsByListingURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE contact_info->>'listing_url' = $1)`, url,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query listing url: %w", err)
	}
	return exists, nil
}

func (t *txLookup) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE LOWER(name) = LOWER($1))`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query name: %w", err)
	}
	return exists, nil
}

func (t *txLookup) ExistsByNameCityState(ctx context.Context, name, city, state string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM listings
			WHERE LOWER(name) = LOWER($1)
			  AND LOWER(location->>'city') = LOWER($2)
			  AND LOWER(location->>'state') = LOWER($3)
		)`, name, city, state,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query name/city/state: %w", err)
	}
	return exists, nil
}

// GetByID retrieves one listing by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*Listing, error) {
	query := `
		SELECT id, name, industry, location, financial_data, contact_info,
		       price_range, quality_score, risk_score, data_sources,
		       created_at, last_updated
		FROM listings
		WHERE id = $1
	`

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query listing by id: %w", err)
	}

	return l, nil
}

// SearchQuery holds listing search filters.
type SearchQuery struct {
	Keyword  string
	Industry string
	City     string
	State    string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

// SearchResult is one page of search results.
type SearchResult struct {
	Listings   []Listing `json:"listings"`
	TotalCount int       `json:"total_count"`
	HasMore    bool      `json:"has_more"`
}

const defaultSearchLimit = 25

// Search returns listings matching the query, paginated by
// limit/offset, newest first.
func (r *Repository) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	where, args := buildSearchFilter(q)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT COUNT(*) FROM listings` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, name, industry, location, financial_data, contact_info,
		       price_range, quality_score, risk_score, data_sources,
		       created_at, last_updated
		FROM listings%s
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d
	`, where, limit, offset)

	rows, err := r.db.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	result := &SearchResult{
		Listings:   []Listing{},
		TotalCount: total,
	}

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		result.Listings = append(result.Listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	result.HasMore = offset+len(result.Listings) < total

	return result, nil
}

// buildSearchFilter assembles the WHERE clause and args for Search.
func buildSearchFilter(q SearchQuery) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Keyword != "" {
		p := arg("%" + q.Keyword + "%")
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE %s OR industry ILIKE %s OR contact_info->>'description' ILIKE %s)", p, p, p))
	}
	if q.Industry != "" {
		conds = append(conds, fmt.Sprintf("LOWER(industry) = LOWER(%s)", arg(q.Industry)))
	}
	if q.City != "" {
		conds = append(conds, fmt.Sprintf("LOWER(location->>'city') = LOWER(%s)", arg(q.City)))
	}
	if q.State != "" {
		conds = append(conds, fmt.Sprintf("LOWER(location->>'state') = LOWER(%s)", arg(q.State)))
	}
	if q.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("(financial_data->>'asking_price')::numeric >= %s", arg(*q.MinPrice)))
	}
	if q.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("(financial_data->>'asking_price')::numeric <= %s", arg(*q.MaxPrice)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanListing scans one listing row including its JSON columns.
func scanListing(row pgx.Row) (*Listing, error) {
	var (
		l             Listing
		locationJSON  []byte
		financialJSON []byte
		contactJSON   []byte
		createdAt     time.Time
		lastUpdated   time.Time
	)

	err := row.Scan(
		&l.ID, &l.Name, &l.Industry, &locationJSON, &financialJSON, &contactJSON,
		&l.PriceRange, &l.QualityScore, &l.RiskScore, &l.Sources,
		&createdAt, &lastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(locationJSON, &l.Location); err != nil {
		return nil, fmt.Errorf("unmarshal location: %w", err)
	}
	if err := json.Unmarshal(financialJSON, &l.Financial); err != nil {
		return nil, fmt.Errorf("unmarshal financial data: %w", err)
	}
	if err := json.Unmarshal(contactJSON, &l.Contact); err != nil {
		return nil, fmt.Errorf("unmarshal contact info: %w", err)
	}

	l.CreatedAt = createdAt
	l.LastUpdated = lastUpdated

	return &l, nil
}
