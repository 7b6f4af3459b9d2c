// Command migrate creates the devgear schema and, with -seed, loads the
// starter catalog data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/devgear/devgear-go/internal/config"
	"github.com/devgear/devgear-go/internal/repository"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		description TEXT,
		img_src VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_categories_slug (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		description TEXT,
		img_src VARCHAR(255),
		category_id BIGINT,
		is_on_sale BOOLEAN DEFAULT FALSE,
		features JSON,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	)`,
}

type seedCategory struct {
	title, slug, description, imgSrc string
}

type seedProduct struct {
	title       string
	price       float64
	description string
	imgSrc      string
	categoryID  int64
	isOnSale    bool
	features    []string
}

var seedCategories = []seedCategory{
	{"Polos", "polos", "Polo shirts every developer will want to wear.", "/images/polos.jpg"},
	{"Mugs", "mugs", "Mugs that pair perfectly with your morning coffee and your code.", "/images/mugs.jpg"},
	{"Stickers", "stickers", "Personalize your workspace with our unique stickers.", "/images/stickers.jpg"},
}

var seedProducts = []seedProduct{
	{"React Polo", 20.00, "Wear your React pride in comfort.", "/images/polo-react.png", 1, false,
		[]string{"Durable print", "Soft cotton", "Reinforced seams"}},
	{"JavaScript Polo", 20.00, "Let your love for JavaScript speak through every thread.", "/images/polo-js.png", 1, false,
		[]string{"Embroidered logo", "Premium fabric", "Multiple colors"}},
	{"JavaScript Mug", 14.99, "Enjoy your coffee behind the JavaScript logo.", "/images/mug-js.png", 2, false,
		[]string{"High-quality ceramic", "325ml", "Microwave safe"}},
	{"Go Mug", 14.99, "The gopher keeps your coffee company.", "/images/mug-go.png", 2, true,
		[]string{"High-quality ceramic", "325ml", "Dishwasher safe"}},
	{"React Sticker", 2.49, "Decorate your devices with the iconic React atom.", "/images/sticker-react.png", 3, false,
		[]string{"Weatherproof vinyl", "Residue-free removal", "Vibrant colors"}},
	{"Git Sticker", 2.49, "Commit to your laptop lid.", "/images/sticker-git.png", 3, false,
		[]string{"Weatherproof vinyl", "Residue-free removal"}},
}

func main() {
	seed := flag.Bool("seed", false, "insert starter categories and products after migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("schema migrated")

	if !*seed {
		return
	}

	for _, c := range seedCategories {
		_, err := db.ExecContext(ctx,
			`INSERT IGNORE INTO categories (title, slug, description, img_src) VALUES (?, ?, ?, ?)`,
			c.title, c.slug, c.description, c.imgSrc)
		if err != nil {
			slog.Error("seeding categories failed", "error", err)
			os.Exit(1)
		}
	}

	for _, p := range seedProducts {
		features, err := json.Marshal(p.features)
		if err != nil {
			slog.Error("seeding products failed", "error", err)
			os.Exit(1)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO products (title, price, description, img_src, category_id, is_on_sale, features)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.title, p.price, p.description, p.imgSrc, p.categoryID, p.isOnSale, features)
		if err != nil {
			slog.Error("seeding products failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("seed data inserted", "categories", len(seedCategories), "products", len(seedProducts))
}
