package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/devgear/devgear-go/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

// CatalogRepository reads the categories and products reference data.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories returns all categories ordered by title.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `SELECT id, title, slug, description, img_src, created_at FROM categories ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.ImgSrc, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoryBySlug returns a single category, or ErrCategoryNotFound.
func (r *CatalogRepository) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := `SELECT id, title, slug, description, img_src, created_at FROM categories WHERE slug = ?`

	c := &model.Category{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.ImgSrc, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListProducts returns all products, newest first.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, title, price, description, img_src, category_id, is_on_sale, features, created_at
		FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListProductsByCategory returns the products in the category with the given
// slug, newest first.
func (r *CatalogRepository) ListProductsByCategory(ctx context.Context, slug string) ([]model.Product, error) {
	query := `SELECT p.id, p.title, p.price, p.description, p.img_src, p.category_id, p.is_on_sale, p.features, p.created_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE c.slug = ?
		ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListFeaturedProducts returns the newest limit products for the home page.
func (r *CatalogRepository) ListFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	query := `SELECT id, title, price, description, img_src, category_id, is_on_sale, features, created_at
		FROM products ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetProductByID returns a single product, or ErrProductNotFound.
func (r *CatalogRepository) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT id, title, price, description, img_src, category_id, is_on_sale, features, created_at
		FROM products WHERE id = ?`

	var p model.Product
	var features []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Price, &p.Description, &p.ImgSrc, &p.CategoryID, &p.IsOnSale, &features, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := unmarshalFeatures(features, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		var features []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Description, &p.ImgSrc, &p.CategoryID, &p.IsOnSale, &features, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalFeatures(features, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func unmarshalFeatures(raw []byte, p *model.Product) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &p.Features)
}
