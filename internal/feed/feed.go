// Package feed implements the ad feed engine: a pure projection from an
// unordered ad collection plus a filter specification to the ordered page the
// client displays. It performs no I/O; callers fetch the candidate set and
// supply the current time.
package feed

import (
	"sort"
	"strings"
	"time"

	"github.com/viniciustorricelli/pensell/internal/domain"
)

// TimeFilter restricts results to a trailing creation window.
type TimeFilter string

const (
	TimeAll  TimeFilter = "all"
	TimeDay  TimeFilter = "24h"
	Time3d   TimeFilter = "3d"
	TimeWeek TimeFilter = "7d"
)

// Window returns the trailing duration for the filter, or 0 for TimeAll.
func (t TimeFilter) Window() time.Duration {
	switch t {
	case TimeDay:
		return 24 * time.Hour
	case Time3d:
		return 72 * time.Hour
	case TimeWeek:
		return 168 * time.Hour
	}
	return 0
}

// SortBy selects the feed ordering.
type SortBy string

const (
	SortRecent    SortBy = "recent"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortViews     SortBy = "views"
)

// Default price bounds of the search slider.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 50000
)

// Spec is the full filter/sort/pagination specification for one feed query.
type Spec struct {
	TextQuery   string
	Category    string
	Location    string
	PriceMin    float64
	PriceMax    float64
	TimeFilter  TimeFilter
	OnlyBoosted bool
	SortBy      SortBy
	CommunityID string
	Page        int
	PageSize    int
}

// DefaultSpec returns the spec the search screen opens with.
func DefaultSpec() Spec {
	return Spec{
		PriceMin:   DefaultPriceMin,
		PriceMax:   DefaultPriceMax,
		TimeFilter: TimeAll,
		SortBy:     SortRecent,
		Page:       1,
		PageSize:   20,
	}
}

// Page is one page of the filtered and sorted feed.
type Page struct {
	Ads []*domain.Ad
	// Total is the size of the filtered set before pagination.
	Total int
	// HasMore is true when the returned slice is exactly PageSize long,
	// which is how the client decides to request the next page.
	HasMore bool
}

// Apply filters, sorts and paginates ads according to spec.
// All predicates are conjunctive; sorting is stable so ties preserve the
// incoming relative order.
func Apply(ads []*domain.Ad, spec Spec, now time.Time) Page {
	filtered := Filter(ads, spec, now)
	Sort(filtered, spec.SortBy)
	return paginate(filtered, spec.Page, spec.PageSize)
}

// Filter returns the subset of ads matching every active predicate, in input order.
func Filter(ads []*domain.Ad, spec Spec, now time.Time) []*domain.Ad {
	query := strings.ToLower(strings.TrimSpace(spec.TextQuery))
	location := strings.ToLower(strings.TrimSpace(spec.Location))
	cutoff := time.Time{}
	if w := spec.TimeFilter.Window(); w > 0 {
		cutoff = now.Add(-w)
	}

	out := make([]*domain.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Status != domain.AdStatusActive {
			continue
		}
		if spec.CommunityID != "" && ad.CommunityID != spec.CommunityID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(ad.Title), query) &&
			!strings.Contains(strings.ToLower(ad.Description), query) {
			continue
		}
		if spec.Category != "" && ad.Category != spec.Category {
			continue
		}
		if location != "" &&
			!strings.Contains(strings.ToLower(ad.LocationCity), location) &&
			!strings.Contains(strings.ToLower(ad.LocationNeighborhood), location) {
			continue
		}
		if ad.Price < spec.PriceMin || ad.Price > spec.PriceMax {
			continue
		}
		if !cutoff.IsZero() && ad.CreatedAt.Before(cutoff) {
			continue
		}
		// The search screen's "only boosted" toggle matches the flag alone;
		// expired boosts are not dropped here. The carousel is stricter, see Boosted.
		if spec.OnlyBoosted && !ad.IsBoosted {
			continue
		}
		out = append(out, ad)
	}
	return out
}

// Sort orders ads in place by the given key, stably.
func Sort(ads []*domain.Ad, by SortBy) {
	switch by {
	case SortPriceAsc:
		sort.SliceStable(ads, func(i, j int) bool { return ads[i].Price < ads[j].Price })
	case SortPriceDesc:
		sort.SliceStable(ads, func(i, j int) bool { return ads[i].Price > ads[j].Price })
	case SortViews:
		sort.SliceStable(ads, func(i, j int) bool { return ads[i].ViewsCount > ads[j].ViewsCount })
	default:
		sort.SliceStable(ads, func(i, j int) bool { return ads[i].CreatedAt.After(ads[j].CreatedAt) })
	}
}

func paginate(ads []*domain.Ad, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(ads) {
		return Page{Ads: []*domain.Ad{}, Total: len(ads)}
	}
	end := start + pageSize
	if end > len(ads) {
		end = len(ads)
	}
	slice := ads[start:end]
	return Page{
		Ads:     slice,
		Total:   len(ads),
		HasMore: len(slice) == pageSize,
	}
}

// Boosted is the carousel query: active boosted ads, newest first, with ads
// whose boost expired at or before now dropped. Unlike the OnlyBoosted search
// filter this does check expiry; the carousel shows "featured now".
func Boosted(ads []*domain.Ad, communityID string, now time.Time) []*domain.Ad {
	out := make([]*domain.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Status != domain.AdStatusActive || !ad.IsBoosted {
			continue
		}
		if communityID != "" && ad.CommunityID != communityID {
			continue
		}
		if ad.BoostExpiresAt == nil || !ad.BoostExpiresAt.After(now) {
			continue
		}
		out = append(out, ad)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
