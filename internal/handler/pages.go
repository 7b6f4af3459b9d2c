package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devgear/devgear-go/internal/middleware"
	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/repository"
	"github.com/devgear/devgear-go/internal/service"
)

// PageHandler renders the storefront browsing pages.
type PageHandler struct {
	catalog *service.CatalogService
	render  *Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(catalog *service.CatalogService, render *Renderer) *PageHandler {
	return &PageHandler{catalog: catalog, render: render}
}

type homeView struct {
	User *model.User
	Page *service.HomePage
}

type productsView struct {
	User *model.User
	Page *service.ProductsPage
}

type productView struct {
	User    *model.User
	Product *model.Product
}

// Home handles GET /. A catalog failure renders the error page; it must not
// redirect back to / or the route would loop on its own errors.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	page, err := h.catalog.Home(r.Context())
	if err != nil {
		h.render.renderFailure(w, user, err)
		return
	}

	h.render.Render(w, http.StatusOK, "home.html", homeView{User: user, Page: page})
}

// Products handles GET /products with an optional ?category= filter.
func (h *PageHandler) Products(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	page, err := h.catalog.Products(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.render.renderFailure(w, user, err)
		return
	}

	h.render.Render(w, http.StatusOK, "products.html", productsView{User: user, Page: page})
}

// ProductDetail handles GET /products/{id}.
func (h *PageHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.render.renderFailure(w, user, repository.ErrProductNotFound)
		return
	}

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		h.render.renderFailure(w, user, err)
		return
	}

	h.render.Render(w, http.StatusOK, "product.html", productView{User: user, Product: product})
}
