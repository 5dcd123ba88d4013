package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func makeAd(id string, mutate func(*domain.Ad)) *domain.Ad {
	ad := &domain.Ad{
		ID:                   id,
		Title:                "Ad " + id,
		Description:          "description",
		Price:                100,
		Category:             "outros",
		LocationCity:         "São Paulo",
		LocationNeighborhood: "Pinheiros",
		Status:               domain.AdStatusActive,
		CommunityID:          "c1",
		CreatedAt:            testNow.Add(-1 * time.Hour),
	}
	if mutate != nil {
		mutate(ad)
	}
	return ad
}

func TestFilter_OnlyActiveAds(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", nil),
		makeAd("b", func(ad *domain.Ad) { ad.Status = domain.AdStatusPaused }),
		makeAd("c", func(ad *domain.Ad) { ad.Status = domain.AdStatusSold }),
		makeAd("d", func(ad *domain.Ad) { ad.Status = domain.AdStatusPendingActivation }),
	}
	got := Filter(ads, DefaultSpec(), testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilter_CommunityScope(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", nil),
		makeAd("b", func(ad *domain.Ad) { ad.CommunityID = "c2" }),
	}
	spec := DefaultSpec()
	spec.CommunityID = "c1"
	got := Filter(ads, spec, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilter_TextQueryMatchesTitleOrDescription(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", func(ad *domain.Ad) { ad.Title = "iPhone 15 Pro" }),
		makeAd("b", func(ad *domain.Ad) { ad.Description = "vendo iphone usado" }),
		makeAd("c", func(ad *domain.Ad) { ad.Title = "Sofá retrátil" }),
	}
	spec := DefaultSpec()
	spec.TextQuery = "IPHONE"
	got := Filter(ads, spec, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestFilter_LocationMatchesCityOrNeighborhood(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", func(ad *domain.Ad) { ad.LocationCity = "Campinas" }),
		makeAd("b", func(ad *domain.Ad) { ad.LocationNeighborhood = "Barão Geraldo, Campinas" }),
		makeAd("c", nil),
	}
	spec := DefaultSpec()
	spec.Location = "campinas"
	got := Filter(ads, spec, testNow)
	require.Len(t, got, 2)
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("low", func(ad *domain.Ad) { ad.Price = 50 }),
		makeAd("min", func(ad *domain.Ad) { ad.Price = 100 }),
		makeAd("max", func(ad *domain.Ad) { ad.Price = 500 }),
		makeAd("high", func(ad *domain.Ad) { ad.Price = 500.01 }),
	}
	spec := DefaultSpec()
	spec.PriceMin = 100
	spec.PriceMax = 500
	got := Filter(ads, spec, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, "min", got[0].ID)
	assert.Equal(t, "max", got[1].ID)
}

func TestFilter_TimeWindows(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("fresh", func(ad *domain.Ad) { ad.CreatedAt = testNow.Add(-1 * time.Hour) }),
		makeAd("twodays", func(ad *domain.Ad) { ad.CreatedAt = testNow.Add(-48 * time.Hour) }),
		makeAd("old", func(ad *domain.Ad) { ad.CreatedAt = testNow.Add(-240 * time.Hour) }),
	}

	cases := []struct {
		filter TimeFilter
		want   int
	}{
		{TimeAll, 3},
		{TimeDay, 1},
		{Time3d, 2},
		{TimeWeek, 2},
	}
	for _, tc := range cases {
		t.Run(string(tc.filter), func(t *testing.T) {
			spec := DefaultSpec()
			spec.TimeFilter = tc.filter
			assert.Len(t, Filter(ads, spec, testNow), tc.want)
		})
	}
}

func TestFilter_OnlyBoostedIgnoresExpiry(t *testing.T) {
	expired := testNow.Add(-1 * time.Hour)
	ads := []*domain.Ad{
		makeAd("plain", nil),
		makeAd("boosted-expired", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &expired
		}),
	}
	spec := DefaultSpec()
	spec.OnlyBoosted = true
	got := Filter(ads, spec, testNow)
	// The search toggle matches the flag alone, expired or not.
	require.Len(t, got, 1)
	assert.Equal(t, "boosted-expired", got[0].ID)
}

func TestFilter_Monotonicity(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", func(ad *domain.Ad) { ad.Price = 100 }),
		makeAd("b", func(ad *domain.Ad) { ad.Price = 900 }),
		makeAd("c", func(ad *domain.Ad) { ad.Price = 2500 }),
	}
	wide := DefaultSpec()
	narrow := wide
	narrow.PriceMax = 1000

	wideSet := Filter(ads, wide, testNow)
	narrowSet := Filter(ads, narrow, testNow)

	assert.LessOrEqual(t, len(narrowSet), len(wideSet))
	for _, ad := range narrowSet {
		assert.Contains(t, wideSet, ad)
	}
}

func TestSort_PriceAscending(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", func(ad *domain.Ad) { ad.Price = 300 }),
		makeAd("b", func(ad *domain.Ad) { ad.Price = 100 }),
		makeAd("c", func(ad *domain.Ad) { ad.Price = 200 }),
	}
	Sort(ads, SortPriceAsc)
	for i := 1; i < len(ads); i++ {
		assert.LessOrEqual(t, ads[i-1].Price, ads[i].Price)
	}
}

func TestSort_ViewsDescending(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("a", func(ad *domain.Ad) { ad.ViewsCount = 5 }),
		makeAd("b", func(ad *domain.Ad) { ad.ViewsCount = 50 }),
		makeAd("c", func(ad *domain.Ad) { ad.ViewsCount = 20 }),
	}
	Sort(ads, SortViews)
	for i := 1; i < len(ads); i++ {
		assert.GreaterOrEqual(t, ads[i-1].ViewsCount, ads[i].ViewsCount)
	}
}

func TestSort_StableOnTies(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("first", func(ad *domain.Ad) { ad.Price = 100 }),
		makeAd("second", func(ad *domain.Ad) { ad.Price = 100 }),
		makeAd("third", func(ad *domain.Ad) { ad.Price = 100 }),
	}
	Sort(ads, SortPriceAsc)
	assert.Equal(t, "first", ads[0].ID)
	assert.Equal(t, "second", ads[1].ID)
	assert.Equal(t, "third", ads[2].ID)
}

func TestApply_PaginationCoversAllWithoutDuplicates(t *testing.T) {
	var ads []*domain.Ad
	for i := 0; i < 47; i++ {
		ads = append(ads, makeAd(fmt.Sprintf("ad-%02d", i), func(ad *domain.Ad) {
			ad.CreatedAt = testNow.Add(-time.Duration(i) * time.Minute)
		}))
	}

	spec := DefaultSpec()
	spec.PageSize = 10

	seen := map[string]bool{}
	var collected []*domain.Ad
	for page := 1; page <= 5; page++ {
		spec.Page = page
		result := Apply(ads, spec, testNow)
		assert.Equal(t, 47, result.Total)
		if page < 5 {
			assert.True(t, result.HasMore)
			assert.Len(t, result.Ads, 10)
		} else {
			assert.False(t, result.HasMore)
			assert.Len(t, result.Ads, 7)
		}
		for _, ad := range result.Ads {
			assert.False(t, seen[ad.ID], "duplicate ad %s across pages", ad.ID)
			seen[ad.ID] = true
			collected = append(collected, ad)
		}
	}
	require.Len(t, collected, 47)

	// Concatenated pages reproduce the sorted set in order.
	full := Apply(ads, Spec{PriceMax: DefaultPriceMax, TimeFilter: TimeAll, SortBy: SortRecent, Page: 1, PageSize: 47}, testNow)
	for i, ad := range full.Ads {
		assert.Equal(t, ad.ID, collected[i].ID)
	}
}

func TestApply_EmptyInput(t *testing.T) {
	result := Apply(nil, DefaultSpec(), testNow)
	assert.Empty(t, result.Ads)
	assert.Zero(t, result.Total)
	assert.False(t, result.HasMore)
}

func TestApply_SearchScenario(t *testing.T) {
	ads := []*domain.Ad{
		makeAd("iphone", func(ad *domain.Ad) {
			ad.Title = "iPhone 15"
			ad.Price = 4000
			ad.Category = "eletronicos"
			ad.CreatedAt = testNow.Add(-1 * time.Hour)
		}),
		makeAd("sofa", func(ad *domain.Ad) {
			ad.Title = "Sofá"
			ad.Price = 800
			ad.Category = "moveis"
			ad.CreatedAt = testNow.Add(-10 * 24 * time.Hour)
		}),
	}

	spec := DefaultSpec()
	spec.Category = "eletronicos"
	spec.TimeFilter = TimeWeek

	result := Apply(ads, spec, testNow)
	require.Len(t, result.Ads, 1)
	assert.Equal(t, "iphone", result.Ads[0].ID)
}

func TestBoosted_DropsExpiredAndSortsRecentFirst(t *testing.T) {
	future := testNow.Add(3 * time.Hour)
	past := testNow.Add(-1 * time.Minute)
	exactly := testNow

	ads := []*domain.Ad{
		makeAd("older", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &future
			ad.CreatedAt = testNow.Add(-5 * time.Hour)
		}),
		makeAd("expired", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &past
		}),
		makeAd("boundary", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &exactly
		}),
		makeAd("newer", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &future
			ad.CreatedAt = testNow.Add(-1 * time.Hour)
		}),
		makeAd("paused", func(ad *domain.Ad) {
			ad.Status = domain.AdStatusPaused
			ad.IsBoosted = true
			ad.BoostExpiresAt = &future
		}),
		makeAd("plain", nil),
	}

	got := Boosted(ads, "", testNow)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].ID)
	assert.Equal(t, "older", got[1].ID)
}

func TestBoosted_CommunityScope(t *testing.T) {
	future := testNow.Add(1 * time.Hour)
	ads := []*domain.Ad{
		makeAd("in", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &future
		}),
		makeAd("out", func(ad *domain.Ad) {
			ad.IsBoosted = true
			ad.BoostExpiresAt = &future
			ad.CommunityID = "c2"
		}),
	}
	got := Boosted(ads, "c1", testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].ID)
}
