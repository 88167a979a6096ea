package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/repositories/memory"
)

// catalogFixture loads a small catalog: two sarees, a kurti, and a sherwani,
// with inventory and reviews arranged to exercise every filter stage.
func catalogFixture(t *testing.T) (repositories.Datastore, *CatalogService) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	categories := []models.Category{
		{Name: "sarees", Label: "Sarees", Gender: "women"},
		{Name: "lehengas", Label: "Lehengas", Gender: "women"},
		{Name: "kurtis", Label: "Kurtis", Gender: "women"},
		{Name: "tops", Label: "Tops", Gender: "women"},
		{Name: "sherwanis", Label: "Sherwanis", Gender: "men"},
	}
	for i := range categories {
		require.NoError(t, store.CreateCategory(ctx, &categories[i]))
	}
	brands := []models.Brand{
		{Name: "vastra", Label: "Vastra Originals"},
		{Name: "rangmahal", Label: "Rang Mahal"},
	}
	for i := range brands {
		require.NoError(t, store.CreateBrand(ctx, &brands[i]))
	}

	discounted := 500
	products := []models.Product{
		{Name: "Cotton Saree", Price: 1000, DiscountedPrice: &discounted, CategoryID: categories[0].ID, BrandID: brands[0].ID, Gender: "women"},
		{Name: "Silk Saree", Price: 1000, CategoryID: categories[0].ID, BrandID: brands[1].ID, Gender: "women"},
		{Name: "Office Kurti", Price: 750, CategoryID: categories[2].ID, BrandID: brands[0].ID, Gender: "women"},
		{Name: "Wedding Sherwani", Price: 5000, CategoryID: categories[4].ID, BrandID: brands[1].ID, Gender: "men"},
	}
	for i := range products {
		require.NoError(t, store.CreateProduct(ctx, &products[i]))
	}

	// Cotton Saree has size M out of stock, L in stock. Silk Saree has M in
	// stock. The kurti and sherwani carry no inventory at all.
	for _, item := range []models.Inventory{
		{ProductID: products[0].ID, Size: "M", Quantity: 0},
		{ProductID: products[0].ID, Size: "L", Quantity: 3},
		{ProductID: products[1].ID, Size: "M", Quantity: 5},
	} {
		row := item
		require.NoError(t, store.CreateInventory(ctx, &row))
	}

	// Silk Saree averages 4.5, the kurti averages 2.
	for _, review := range []models.Review{
		{ProductID: products[1].ID, UserID: 1, Rating: 4},
		{ProductID: products[1].ID, UserID: 1, Rating: 5},
		{ProductID: products[2].ID, UserID: 1, Rating: 2},
	} {
		r := review
		require.NoError(t, store.CreateReview(ctx, &r))
	}

	return store, NewCatalogService(store)
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestFilterProductsNoConstraints(t *testing.T) {
	_, catalog := catalogFixture(t)
	products, err := catalog.FilterProducts(context.Background(), FilterParams{})
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestFilterProductsGender(t *testing.T) {
	_, catalog := catalogFixture(t)
	ctx := context.Background()

	men, err := catalog.FilterProducts(ctx, FilterParams{Gender: "men"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wedding Sherwani"}, names(men))

	// "all" and "search" are sentinels, not stored genders.
	all, err := catalog.FilterProducts(ctx, FilterParams{Gender: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	search, err := catalog.FilterProducts(ctx, FilterParams{Gender: "search"})
	require.NoError(t, err)
	assert.Len(t, search, 4)
}

func TestFilterProductsPriceBoundary(t *testing.T) {
	_, catalog := catalogFixture(t)
	ctx := context.Background()

	// Cotton Saree's effective price is its 500 discount, not its 1000 list.
	exact, err := catalog.FilterProducts(ctx, FilterParams{MinPrice: 500, MaxPrice: 500})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cotton Saree"}, names(exact))

	above, err := catalog.FilterProducts(ctx, FilterParams{MinPrice: 501, MaxPrice: 600})
	require.NoError(t, err)
	assert.Empty(t, above)

	// MaxPrice 0 means unbounded.
	unbounded, err := catalog.FilterProducts(ctx, FilterParams{MinPrice: 2000})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wedding Sherwani"}, names(unbounded))
}

func TestFilterProductsSizeInStockOnly(t *testing.T) {
	_, catalog := catalogFixture(t)

	// Cotton Saree's M row is quantity zero, so only Silk Saree qualifies.
	products, err := catalog.FilterProducts(context.Background(), FilterParams{Sizes: []string{"M"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Silk Saree"}, names(products))

	large, err := catalog.FilterProducts(context.Background(), FilterParams{Sizes: []string{"L"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cotton Saree"}, names(large))
}

func TestFilterProductsRatingFromReviews(t *testing.T) {
	_, catalog := catalogFixture(t)
	ctx := context.Background()

	fourUp, err := catalog.FilterProducts(ctx, FilterParams{Rating: "4-up"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Silk Saree"}, names(fourUp))

	twoUp, err := catalog.FilterProducts(ctx, FilterParams{Rating: "2-up"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Silk Saree", "Office Kurti"}, names(twoUp))

	// Unparseable constraints leave the set untouched.
	junk, err := catalog.FilterProducts(ctx, FilterParams{Rating: "best"})
	require.NoError(t, err)
	assert.Len(t, junk, 4)
}

func TestFilterProductsRatingPrefersPrecomputedAverage(t *testing.T) {
	store, catalog := catalogFixture(t)
	ctx := context.Background()

	// Give the kurti a precomputed 4.8 that contradicts its 2-star review.
	products, err := store.GetAllProducts(ctx)
	require.NoError(t, err)
	for _, p := range products {
		if p.Name == "Office Kurti" {
			avg := 4.8
			p.AverageRating = &avg
			require.NoError(t, store.UpdateProduct(ctx, &p))
		}
	}

	fourUp, err := catalog.FilterProducts(ctx, FilterParams{Rating: "4-up"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Silk Saree", "Office Kurti"}, names(fourUp))
}

func TestFilterProductsUnknownCategoryMatchesNothing(t *testing.T) {
	_, catalog := catalogFixture(t)
	products, err := catalog.FilterProducts(context.Background(), FilterParams{Categories: []string{"gowns"}})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFilterProductsQueryMatchesBrand(t *testing.T) {
	_, catalog := catalogFixture(t)
	products, err := catalog.FilterProducts(context.Background(), FilterParams{Query: "rang mahal"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Silk Saree", "Wedding Sherwani"}, names(products))
}

func TestFilterProductsLegacyCollectionTag(t *testing.T) {
	_, catalog := catalogFixture(t)
	ctx := context.Background()

	festival, err := catalog.FilterProducts(ctx, FilterParams{Collection: "festival"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cotton Saree", "Silk Saree"}, names(festival))

	summer, err := catalog.FilterProducts(ctx, FilterParams{Collection: "summer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Office Kurti"}, names(summer))

	// Unknown tags pass everything through.
	unknown, err := catalog.FilterProducts(ctx, FilterParams{Collection: "monsoon"})
	require.NoError(t, err)
	assert.Len(t, unknown, 4)
}

func TestFilterProductsNumericCollectionUsesMembership(t *testing.T) {
	store, catalog := catalogFixture(t)
	ctx := context.Background()

	collection := models.Collection{Name: "Festival Ready", Active: true}
	require.NoError(t, store.CreateCollection(ctx, &collection))
	products, err := store.GetAllProducts(ctx)
	require.NoError(t, err)
	_, err = store.AddProductToCollection(ctx, products[3].ID, collection.ID)
	require.NoError(t, err)

	got, err := catalog.FilterProducts(ctx, FilterParams{Collection: "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wedding Sherwani"}, names(got))
}

func TestFilterProductsIdempotent(t *testing.T) {
	_, catalog := catalogFixture(t)
	ctx := context.Background()
	params := FilterParams{Gender: "women", MinPrice: 400, MaxPrice: 900, Sizes: []string{"M", "L"}}

	first, err := catalog.FilterProducts(ctx, params)
	require.NoError(t, err)
	second, err := catalog.FilterProducts(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, names(first), names(second))
}

func TestFeaturedProductsAreDiscounted(t *testing.T) {
	_, catalog := catalogFixture(t)
	featured, err := catalog.FeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Cotton Saree", featured[0].Name)
}

func TestRecommendationsSameCategory(t *testing.T) {
	store, catalog := catalogFixture(t)
	ctx := context.Background()

	products, err := store.GetAllProducts(ctx)
	require.NoError(t, err)

	related, err := catalog.Recommendations(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Silk Saree"}, names(related))

	missing, err := catalog.Recommendations(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseFilterParams(t *testing.T) {
	params := ParseFilterParams(map[string][]string{
		"gender":     {"women"},
		"category":   {"sarees", "kurtis"},
		"size":       {"M"},
		"rating":     {"4-up"},
		"minPrice":   {"100"},
		"maxPrice":   {"2000"},
		"q":          {"silk"},
		"collection": {"festival"},
	})
	assert.Equal(t, "women", params.Gender)
	assert.Equal(t, []string{"sarees", "kurtis"}, params.Categories)
	assert.Equal(t, []string{"M"}, params.Sizes)
	assert.Equal(t, "4-up", params.Rating)
	assert.Equal(t, 100, params.MinPrice)
	assert.Equal(t, 2000, params.MaxPrice)
	assert.Equal(t, "silk", params.Query)
	assert.Equal(t, "festival", params.Collection)

	empty := ParseFilterParams(map[string][]string{"minPrice": {"abc"}})
	assert.Zero(t, empty.MinPrice)
	assert.Zero(t, empty.MaxPrice)
}
