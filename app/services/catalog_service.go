package services

import (
	"context"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
	"github.com/vastrakart/go-storefront/app/utils/calc"
)

// FilterParams is the bag of optional catalog constraints. Zero values mean
// "unconstrained"; MaxPrice 0 means unbounded.
type FilterParams struct {
	Gender     string
	Categories []string
	Brands     []string
	Sizes      []string
	Rating     string
	MinPrice   int
	MaxPrice   int
	Query      string
	Collection string
}

// ParseFilterParams reads the GET /api/products query string.
func ParseFilterParams(values url.Values) FilterParams {
	p := FilterParams{
		Gender:     values.Get("gender"),
		Categories: values["category"],
		Brands:     values["brand"],
		Sizes:      values["size"],
		Rating:     values.Get("rating"),
		Query:      values.Get("q"),
		Collection: values.Get("collection"),
	}
	if v, err := strconv.Atoi(values.Get("minPrice")); err == nil {
		p.MinPrice = v
	}
	if v, err := strconv.Atoi(values.Get("maxPrice")); err == nil {
		p.MaxPrice = v
	}
	return p
}

type CatalogService struct {
	store repositories.Datastore
}

func NewCatalogService(store repositories.Datastore) *CatalogService {
	return &CatalogService{store: store}
}

// FilterProducts narrows the candidate set through a fixed sequence of
// independent stages. Every stage only removes products, so the stages
// commute and applying the same constraints twice is a no-op.
func (s *CatalogService) FilterProducts(ctx context.Context, params FilterParams) ([]models.Product, error) {
	products, collectionIsID, err := s.candidateSet(ctx, params.Collection)
	if err != nil {
		return nil, err
	}

	if params.Gender != "" && params.Gender != "all" && params.Gender != "search" {
		products = keep(products, func(p models.Product) bool {
			return p.Gender == params.Gender
		})
	}

	if len(params.Categories) > 0 {
		ids, err := s.categoryIDsByName(ctx, params.Categories)
		if err != nil {
			return nil, err
		}
		products = keep(products, func(p models.Product) bool {
			return ids[p.CategoryID]
		})
	}

	if len(params.Brands) > 0 {
		ids, err := s.brandIDsByName(ctx, params.Brands)
		if err != nil {
			return nil, err
		}
		products = keep(products, func(p models.Product) bool {
			return ids[p.BrandID]
		})
	}

	if len(params.Sizes) > 0 {
		products, err = s.filterBySizes(ctx, products, params.Sizes)
		if err != nil {
			return nil, err
		}
	}

	if params.Rating != "" {
		products, err = s.filterByRating(ctx, products, params.Rating)
		if err != nil {
			return nil, err
		}
	}

	minPrice := params.MinPrice
	maxPrice := params.MaxPrice
	if maxPrice <= 0 {
		maxPrice = math.MaxInt
	}
	products = keep(products, func(p models.Product) bool {
		price := calc.EffectivePrice(p)
		return price >= minPrice && price <= maxPrice
	})

	if params.Query != "" {
		products, err = s.filterByQuery(ctx, products, params.Query)
		if err != nil {
			return nil, err
		}
	}

	if params.Collection != "" && !collectionIsID {
		products, err = s.filterByLegacyCollection(ctx, products, params.Collection)
		if err != nil {
			return nil, err
		}
	}

	return products, nil
}

// candidateSet resolves the initial working set: the whole catalog, or the
// members of a collection when the constraint parses as a numeric id.
func (s *CatalogService) candidateSet(ctx context.Context, collection string) ([]models.Product, bool, error) {
	if collection != "" {
		if id, err := strconv.Atoi(collection); err == nil {
			products, err := s.store.GetProductsByCollection(ctx, id)
			return products, true, err
		}
	}
	products, err := s.store.GetAllProducts(ctx)
	return products, false, err
}

func keep(products []models.Product, pred func(models.Product) bool) []models.Product {
	out := products[:0:0]
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// categoryIDsByName translates requested category names to ids. Names that do
// not resolve contribute nothing; they are not an error.
func (s *CatalogService) categoryIDsByName(ctx context.Context, names []string) (map[int]bool, error) {
	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(categories))
	for _, c := range categories {
		byName[strings.ToLower(c.Name)] = c.ID
	}
	ids := make(map[int]bool, len(names))
	for _, name := range names {
		if id, ok := byName[strings.ToLower(name)]; ok {
			ids[id] = true
		}
	}
	return ids, nil
}

func (s *CatalogService) brandIDsByName(ctx context.Context, names []string) (map[int]bool, error) {
	brands, err := s.store.GetAllBrands(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(brands))
	for _, b := range brands {
		byName[strings.ToLower(b.Name)] = b.ID
	}
	ids := make(map[int]bool, len(names))
	for _, name := range names {
		if id, ok := byName[strings.ToLower(name)]; ok {
			ids[id] = true
		}
	}
	return ids, nil
}

// filterBySizes keeps products with at least one in-stock inventory row for a
// requested size. One inventory lookup per candidate; fine at this scale.
func (s *CatalogService) filterBySizes(ctx context.Context, products []models.Product, sizes []string) ([]models.Product, error) {
	wanted := make(map[string]bool, len(sizes))
	for _, size := range sizes {
		wanted[strings.ToLower(size)] = true
	}
	out := products[:0:0]
	for _, p := range products {
		rows, err := s.store.GetInventoryByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if wanted[strings.ToLower(row.Size)] && row.Quantity > 0 {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// filterByRating applies a "<N>-up" minimum. Products with a precomputed
// average use it directly; the rest get their review mean computed on demand.
// An unparseable constraint leaves the set untouched.
func (s *CatalogService) filterByRating(ctx context.Context, products []models.Product, rating string) ([]models.Product, error) {
	minRating, err := strconv.Atoi(strings.SplitN(rating, "-", 2)[0])
	if err != nil {
		return products, nil
	}
	out := products[:0:0]
	for _, p := range products {
		if p.AverageRating != nil {
			if *p.AverageRating >= float64(minRating) {
				out = append(out, p)
			}
			continue
		}
		reviews, err := s.store.GetReviewsByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(reviews) == 0 {
			continue
		}
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		if float64(sum)/float64(len(reviews)) >= float64(minRating) {
			out = append(out, p)
		}
	}
	return out, nil
}

// filterByQuery is a case-insensitive substring match over the product name,
// description, and the resolved brand/category names and labels.
func (s *CatalogService) filterByQuery(ctx context.Context, products []models.Product, query string) ([]models.Product, error) {
	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := s.store.GetAllBrands(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[int]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = strings.ToLower(c.Name + " " + c.Label)
	}
	brandNames := make(map[int]string, len(brands))
	for _, b := range brands {
		brandNames[b.ID] = strings.ToLower(b.Name + " " + b.Label)
	}

	needle := strings.ToLower(query)
	return keep(products, func(p models.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			return true
		}
		if strings.Contains(brandNames[p.BrandID], needle) {
			return true
		}
		return strings.Contains(categoryNames[p.CategoryID], needle)
	}), nil
}

// legacyCollectionCategories maps the pre-collections tag strings to category
// name pairs. Only consulted when the collection constraint is non-numeric.
var legacyCollectionCategories = map[string][]string{
	"festival": {"lehengas", "sarees"},
	"summer":   {"kurtis", "tops"},
}

func (s *CatalogService) filterByLegacyCollection(ctx context.Context, products []models.Product, tag string) ([]models.Product, error) {
	names, ok := legacyCollectionCategories[tag]
	if !ok {
		return products, nil
	}
	ids, err := s.categoryIDsByName(ctx, names)
	if err != nil {
		return nil, err
	}
	return keep(products, func(p models.Product) bool {
		return ids[p.CategoryID]
	}), nil
}

// FeaturedProducts returns the first eight discounted products.
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	featured := keep(products, func(p models.Product) bool {
		return p.DiscountedPrice != nil
	})
	if len(featured) > 8 {
		featured = featured[:8]
	}
	return featured, nil
}

// NewArrivals returns the six newest products by creation time.
func (s *CatalogService) NewArrivals(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > 6 {
		sorted = sorted[:6]
	}
	return sorted, nil
}

// Recommendations returns up to four other products from the same category.
func (s *CatalogService) Recommendations(ctx context.Context, productID int) ([]models.Product, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	products, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	related := keep(products, func(p models.Product) bool {
		return p.ID != productID && p.CategoryID == product.CategoryID
	})
	if len(related) > 4 {
		related = related[:4]
	}
	return related, nil
}
