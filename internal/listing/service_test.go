package listing

import "testing"

func TestHashQueryStable(t *testing.T) {
	min := 50_000.0
	q := SearchQuery{Keyword: "coffee", State: "TX", MinPrice: &min, Limit: 25}

	first := hashQuery(q)
	second := hashQuery(q)

	if first != second {
		t.Errorf("Expected stable hash, got %q and %q", first, second)
	}

	if len(first) != 16 {
		t.Errorf("Expected 16 hex chars, got %d", len(first))
	}
}

func TestHashQueryDistinguishesFilters(t *testing.T) {
	base := SearchQuery{Keyword: "coffee", Limit: 25}

	variants := []SearchQuery{
		{Keyword: "laundromat", Limit: 25},
		{Keyword: "coffee", Industry: "Food & Beverage", Limit: 25},
		{Keyword: "coffee", Limit: 25, Offset: 25},
		{Keyword: "coffee", Limit: 50},
	}

	baseHash := hashQuery(base)
	for _, v := range variants {
		if hashQuery(v) == baseHash {
			t.Errorf("Expected different hash for %+v", v)
		}
	}
}

func TestHashQueryPriceBounds(t *testing.T) {
	min := 50_000.0
	withMin := SearchQuery{MinPrice: &min}
	without := SearchQuery{}

	if hashQuery(withMin) == hashQuery(without) {
		t.Error("Expected min price to change the hash")
	}
}
