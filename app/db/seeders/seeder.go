package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/vastrakart/go-storefront/app/auth"
	"github.com/vastrakart/go-storefront/app/models"
	"github.com/vastrakart/go-storefront/app/repositories"
)

// Seed loads the demo catalog into an empty store. Safe to call twice: it is
// a no-op once products exist.
func Seed(ctx context.Context, store repositories.Datastore) error {
	existing, err := store.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Seed: store already has products, skipping")
		return nil
	}

	categories := map[string]*models.Category{}
	for _, c := range []models.Category{
		{Name: "sarees", Label: "Sarees", Gender: "women"},
		{Name: "lehengas", Label: "Lehengas", Gender: "women"},
		{Name: "kurtis", Label: "Kurtis", Gender: "women"},
		{Name: "tops", Label: "Tops", Gender: "women"},
		{Name: "sherwanis", Label: "Sherwanis", Gender: "men"},
		{Name: "kurtas", Label: "Kurtas", Gender: "men"},
	} {
		category := c
		if err := store.CreateCategory(ctx, &category); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		categories[category.Name] = &category
	}

	brands := map[string]*models.Brand{}
	for _, b := range []models.Brand{
		{Name: "vastra", Label: "Vastra Originals"},
		{Name: "rangmahal", Label: "Rang Mahal"},
		{Name: "meera", Label: "Meera Couture"},
		{Name: "dhaaga", Label: "Dhaaga & Co"},
	} {
		brand := b
		if err := store.CreateBrand(ctx, &brand); err != nil {
			return fmt.Errorf("seed brand %s: %w", b.Name, err)
		}
		brands[brand.Name] = &brand
	}

	adminPassword, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Password: adminPassword,
		Email:    "admin@vastrakart.in",
		FullName: "Store Admin",
		Role:     models.RoleAdmin,
	}
	if err := store.CreateUser(ctx, &admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	customerPassword, err := auth.HashPassword("priya123")
	if err != nil {
		return err
	}
	customer := models.User{
		Username: "priya",
		Password: customerPassword,
		Email:    "priya@example.com",
		FullName: "Priya Nair",
		Gender:   "women",
		Role:     models.RoleCustomer,
	}
	if err := store.CreateUser(ctx, &customer); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	discount := func(v int) *int { return &v }
	catalog := []struct {
		product models.Product
		stock   map[string]int
	}{
		{
			product: models.Product{
				Name:            "Banarasi Silk Saree",
				Description:     "Handwoven Banarasi silk saree with zari border",
				Price:           12500,
				DiscountedPrice: discount(9999),
				CategoryID:      categories["sarees"].ID,
				BrandID:         brands["rangmahal"].ID,
				Gender:          "women",
				ImageURLs:       []string{"/uploads/demo/banarasi-silk.jpg"},
				Featured:        true,
			},
			stock: map[string]int{"Free Size": 12},
		},
		{
			product: models.Product{
				Name:        "Bridal Lehenga Choli",
				Description: "Embroidered bridal lehenga with dupatta",
				Price:       24500,
				CategoryID:  categories["lehengas"].ID,
				BrandID:     brands["meera"].ID,
				Gender:      "women",
				ImageURLs:   []string{"/uploads/demo/bridal-lehenga.jpg"},
				Featured:    true,
			},
			stock: map[string]int{"S": 3, "M": 5, "L": 2},
		},
		{
			product: models.Product{
				Name:            "Chikankari Cotton Kurti",
				Description:     "Lucknowi chikankari kurti in breathable cotton",
				Price:           1800,
				DiscountedPrice: discount(1499),
				CategoryID:      categories["kurtis"].ID,
				BrandID:         brands["vastra"].ID,
				Gender:          "women",
				ImageURLs:       []string{"/uploads/demo/chikankari-kurti.jpg"},
				IsNew:           true,
			},
			stock: map[string]int{"S": 10, "M": 14, "L": 9, "XL": 4},
		},
		{
			product: models.Product{
				Name:        "Printed Crop Top",
				Description: "Block-printed crop top for casual summer wear",
				Price:       950,
				CategoryID:  categories["tops"].ID,
				BrandID:     brands["dhaaga"].ID,
				Gender:      "women",
				ImageURLs:   []string{"/uploads/demo/crop-top.jpg"},
				IsNew:       true,
			},
			stock: map[string]int{"XS": 6, "S": 8, "M": 0},
		},
		{
			product: models.Product{
				Name:            "Royal Sherwani Set",
				Description:     "Wedding sherwani with churidar and stole",
				Price:           18900,
				DiscountedPrice: discount(15900),
				CategoryID:      categories["sherwanis"].ID,
				BrandID:         brands["rangmahal"].ID,
				Gender:          "men",
				ImageURLs:       []string{"/uploads/demo/royal-sherwani.jpg"},
				Featured:        true,
			},
			stock: map[string]int{"M": 4, "L": 6, "XL": 3},
		},
		{
			product: models.Product{
				Name:        "Linen Straight Kurta",
				Description: "Everyday straight-cut linen kurta",
				Price:       2200,
				CategoryID:  categories["kurtas"].ID,
				BrandID:     brands["vastra"].ID,
				Gender:      "men",
				ImageURLs:   []string{"/uploads/demo/linen-kurta.jpg"},
			},
			stock: map[string]int{"M": 11, "L": 12, "XXL": 5},
		},
		{
			product: models.Product{
				Name:        "Kanjivaram Silk Saree",
				Description: "Temple-border Kanjivaram saree in deep maroon",
				Price:       16800,
				CategoryID:  categories["sarees"].ID,
				BrandID:     brands["meera"].ID,
				Gender:      "women",
				ImageURLs:   []string{"/uploads/demo/kanjivaram.jpg"},
			},
			stock: map[string]int{"Free Size": 7},
		},
		{
			product: models.Product{
				Name:            "Georgette Party Lehenga",
				Description:     "Sequined georgette lehenga for sangeet nights",
				Price:           9800,
				DiscountedPrice: discount(7499),
				CategoryID:      categories["lehengas"].ID,
				BrandID:         brands["dhaaga"].ID,
				Gender:          "women",
				ImageURLs:       []string{"/uploads/demo/party-lehenga.jpg"},
				IsNew:           true,
			},
			stock: map[string]int{"S": 5, "M": 7},
		},
	}

	for i := range catalog {
		entry := &catalog[i]
		if err := store.CreateProduct(ctx, &entry.product); err != nil {
			return fmt.Errorf("seed product %s: %w", entry.product.Name, err)
		}
		for size, qty := range entry.stock {
			item := models.Inventory{ProductID: entry.product.ID, Size: size, Quantity: qty}
			if err := store.CreateInventory(ctx, &item); err != nil {
				return fmt.Errorf("seed inventory for %s: %w", entry.product.Name, err)
			}
		}
	}

	reviews := []models.Review{
		{ProductID: catalog[0].product.ID, UserID: customer.ID, Rating: 5, Comment: "Gorgeous weave, fast delivery"},
		{ProductID: catalog[0].product.ID, UserID: customer.ID, Rating: 4, Comment: "Blouse piece slightly short"},
		{ProductID: catalog[2].product.ID, UserID: customer.ID, Rating: 4, Comment: "Very comfortable for office wear"},
		{ProductID: catalog[4].product.ID, UserID: customer.ID, Rating: 5, Comment: "Wore it at my brother's wedding"},
	}
	for i := range reviews {
		if err := store.CreateReview(ctx, &reviews[i]); err != nil {
			return err
		}
	}

	festival := models.Collection{
		Name:        "Festival Ready",
		Description: "Elegant ethnic wear for celebrating special occasions in style",
		Active:      true,
	}
	if err := store.CreateCollection(ctx, &festival); err != nil {
		return err
	}
	summer := models.Collection{
		Name:        "Summer Essentials",
		Description: "Stay cool and elegant with our summer ethnic fashion collection",
		Active:      true,
	}
	if err := store.CreateCollection(ctx, &summer); err != nil {
		return err
	}

	for _, productID := range []int{catalog[0].product.ID, catalog[1].product.ID, catalog[4].product.ID} {
		if _, err := store.AddProductToCollection(ctx, productID, festival.ID); err != nil {
			return err
		}
	}
	for _, productID := range []int{catalog[2].product.ID, catalog[3].product.ID} {
		if _, err := store.AddProductToCollection(ctx, productID, summer.ID); err != nil {
			return err
		}
	}

	log.Printf("Seed: loaded %d products, %d categories, %d brands", len(catalog), len(categories), len(brands))
	return nil
}
