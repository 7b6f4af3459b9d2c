package handler

import (
	"log/slog"
	"net/http"

	"github.com/devgear/devgear-go/internal/middleware"
	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/service"
	"github.com/devgear/devgear-go/internal/session"
)

// AuthHandler handles the signup, login and logout routes.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Store
	render   *Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Store, render *Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, render: render}
}

// formView is the template data for the login and signup forms. Name and
// Email re-fill the signup form after a failed submission.
type formView struct {
	User  *model.User
	Error string
	Name  string
	Email string
}

// ShowLogin handles GET /login. An already authenticated visitor is sent
// home without seeing the form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	h.render.Render(w, http.StatusOK, "login.html", formView{})
}

// ShowSignup handles GET /signup with the same guard as ShowLogin.
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	h.render.Render(w, http.StatusOK, "signup.html", formView{})
}

// HandleLogin handles POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Render(w, http.StatusBadRequest, "login.html", formView{Error: "Invalid form submission"})
		return
	}

	user, err := h.auth.Login(r.Context(), model.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("login failed", "error", err)
		}
		h.render.Render(w, status, "login.html", formView{Error: message})
		return
	}

	h.commitAndRedirect(w, r, user)
}

// HandleSignup handles POST /signup.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Render(w, http.StatusBadRequest, "signup.html", formView{Error: "Invalid form submission"})
		return
	}

	req := model.SignupRequest{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	user, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("signup failed", "error", err)
		}
		h.render.Render(w, status, "signup.html", formView{Error: message, Name: req.Name, Email: req.Email})
		return
	}

	h.commitAndRedirect(w, r, user)
}

// HandleLogout handles POST /logout: the cookie is expired immediately.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// commitAndRedirect stores the user in the session, commits it as a
// Set-Cookie header and redirects home.
func (h *AuthHandler) commitAndRedirect(w http.ResponseWriter, r *http.Request, user *model.User) {
	sess := middleware.SessionFromContext(r.Context())
	sess.Set(session.KeyUserID, user.ID)
	sess.Set(session.KeyEmail, user.Email)

	if err := h.sessions.Save(w, sess); err != nil {
		h.render.renderFailure(w, nil, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// redirectAuthenticated implements the guard on the login and signup pages.
func (h *AuthHandler) redirectAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	sess := middleware.SessionFromContext(r.Context())
	if sess.Get(session.KeyUserID) == "" {
		return false
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return true
}
