package ingest

import (
	"context"

	"dealscout/internal/listing"
)

// IsDuplicate decides whether the normalized candidate already exists
// in storage. First match wins:
//
//  1. Exact provenance match: authoritative, always a duplicate.
//  2. Remote/online business: exact listing URL; when no URL exists,
//     case-insensitive exact name. The name fallback is a weak signal,
//     accepted for sources with no stable identifier.
//  3. Physically located business: case-insensitive exact match on
//     (name, city, state).
//
// No fuzzy matching: the policy is deliberately conservative and
// tolerates false negatives rather than merging two different
// businesses.
func IsDuplicate(ctx context.Context, candidate listing.Listing, store listing.Lookup) (bool, error) {
	dup, err := store.HasProvenance(ctx, candidate.Sources)
	if err != nil || dup {
		return dup, err
	}

	if candidate.Location.IsRemote() {
		if url := candidate.Contact.ListingURL; url != "" {
			return store.ExistsByListingURL(ctx, url)
		}
		return store.ExistsByName(ctx, candidate.Name)
	}

	return store.ExistsByNameCityState(ctx, candidate.Name, candidate.Location.City, candidate.Location.State)
}
