package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/warbler/internal/middleware"
	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/views"
	"github.com/anonto42/warbler/validators"
	"github.com/labstack/echo/v4"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	credentials *services.CredentialService
	verifier    TokenVerifier
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil, which disables
// Firebase sign-in.
func NewAuthHandler(credentials *services.CredentialService, verifier TokenVerifier) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		verifier:    verifier,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/signup", h.SignupForm)
	g.POST("/signup", h.Signup)
	g.GET("/login", h.LoginForm)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	if h.verifier != nil {
		g.POST("/login/firebase", h.FirebaseLogin)
	}
}

func (h *AuthHandler) SignupForm(c echo.Context) error {
	if alreadyLoggedIn(c) {
		return redirect(c, "/")
	}
	return render(c, http.StatusOK, "users/signup", views.Page{Form: models.CreateUserRequest{}})
}

// Signup creates the account and logs it in
func (h *AuthHandler) Signup(c echo.Context) error {
	if alreadyLoggedIn(c) {
		return redirect(c, "/")
	}

	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	page := views.Page{Form: req}

	if err := c.Validate(&req); err != nil {
		page.Errors = validators.FieldErrors(err)
		return render(c, http.StatusOK, "users/signup", page)
	}
	if req.Password != req.Password2 {
		page.Errors = map[string]string{"password": "Passwords do not match. Please try again"}
		return render(c, http.StatusOK, "users/signup", page)
	}

	user, err := h.credentials.Signup(c.Request().Context(), services.SignupInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	})
	if err != nil {
		if fields := duplicateFields(err); fields != nil {
			page.Errors = fields
			return render(c, http.StatusOK, "users/signup", page)
		}
		return serviceError(err)
	}

	middleware.Current(c).Login(user)
	return redirect(c, "/")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	if alreadyLoggedIn(c) {
		return redirect(c, "/")
	}
	return render(c, http.StatusOK, "users/login", views.Page{Form: models.LoginRequest{}})
}

// Login checks credentials and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	if alreadyLoggedIn(c) {
		return redirect(c, "/")
	}

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	page := views.Page{Form: models.LoginRequest{Username: req.Username}}

	if err := c.Validate(&req); err != nil {
		page.Errors = validators.FieldErrors(err)
		return render(c, http.StatusOK, "users/login", page)
	}

	user, err := h.credentials.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			flash(c, "Invalid credentials.", "danger")
			return render(c, http.StatusOK, "users/login", page)
		}
		return serviceError(err)
	}

	middleware.Current(c).Login(user)
	flash(c, fmt.Sprintf("Hello, %s!", user.Username), "success")
	return redirect(c, "/")
}

// Logout ends the session. Logging out twice is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	rc := middleware.Current(c)
	if !rc.LoggedIn() {
		return redirect(c, "/login")
	}
	rc.Logout()
	rc.Flash("You have logged out.", "success")
	return redirect(c, "/login")
}

// FirebaseLogin logs in the account whose email a verified Firebase ID token vouches for
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if alreadyLoggedIn(c) {
		return redirect(c, "/")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return invalidCredentials(c)
	}

	ctx := c.Request().Context()
	token, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return invalidCredentials(c)
	}
	email, _ := token.Claims["email"].(string)
	verified, _ := token.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return invalidCredentials(c)
	}

	user, err := h.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return invalidCredentials(c)
		}
		return serviceError(err)
	}

	middleware.Current(c).Login(user)
	flash(c, fmt.Sprintf("Hello, %s!", user.Username), "success")
	return redirect(c, "/")
}

func alreadyLoggedIn(c echo.Context) bool {
	rc := middleware.Current(c)
	if !rc.LoggedIn() {
		return false
	}
	rc.Flash("You are already logged in.", "danger")
	return true
}

func invalidCredentials(c echo.Context) error {
	flash(c, "Invalid credentials.", "danger")
	return redirect(c, "/login")
}

// duplicateFields reports which unique field an account clashed on, or nil.
func duplicateFields(err error) map[string]string {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return map[string]string{"email": "Email already taken"}
	case errors.Is(err, services.ErrDuplicateUsername):
		return map[string]string{"username": "Username already taken"}
	}
	return nil
}
