package service

import (
	"context"
	"errors"

	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/repository"
)

// FeaturedProductCount is how many products the home page shows.
const FeaturedProductCount = 8

// CatalogService assembles the read-only page data for browsing.
type CatalogService struct {
	catalog *repository.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// HomePage holds the data rendered on the storefront home page.
type HomePage struct {
	Categories       []model.Category
	FeaturedProducts []model.Product
}

// ProductsPage holds the data rendered on the product listing page.
type ProductsPage struct {
	Categories      []model.Category
	Products        []model.Product
	CurrentCategory *model.Category
}

// Home loads the categories and the newest products.
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, infrastructureError(err)
	}

	featured, err := s.catalog.ListFeaturedProducts(ctx, FeaturedProductCount)
	if err != nil {
		return nil, infrastructureError(err)
	}

	return &HomePage{Categories: categories, FeaturedProducts: featured}, nil
}

// Products loads the listing page, filtered by category slug when non-empty.
// An unknown slug yields an empty listing rather than an error, matching the
// category filter links on the page.
func (s *CatalogService) Products(ctx context.Context, categorySlug string) (*ProductsPage, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, infrastructureError(err)
	}

	page := &ProductsPage{Categories: categories}

	if categorySlug == "" {
		page.Products, err = s.catalog.ListProducts(ctx)
		if err != nil {
			return nil, infrastructureError(err)
		}
		return page, nil
	}

	for i := range categories {
		if categories[i].Slug == categorySlug {
			page.CurrentCategory = &categories[i]
			break
		}
	}

	page.Products, err = s.catalog.ListProductsByCategory(ctx, categorySlug)
	if err != nil {
		return nil, infrastructureError(err)
	}
	return page, nil
}

// Product loads a single product. Returns repository.ErrProductNotFound for
// an unknown ID so the handler can render a 404.
func (s *CatalogService) Product(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.catalog.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, infrastructureError(err)
	}
	return product, nil
}
