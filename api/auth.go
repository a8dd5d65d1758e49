package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/skillsnap/pkg/errs"
	"github.com/garnizeh/skillsnap/pkg/models"
	"github.com/garnizeh/skillsnap/pkg/repository"
)

type AuthHandler struct {
	accounts      repository.AccountRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ar repository.AccountRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{accounts: ar, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  uint   `json:"userId"`
	Email   string `json:"email"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "Invalid request.", http.StatusBadRequest)
		return
	}
	if msg := validationMessage(req); msg != "" {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		writeMessage(w, "Passwords do not match.", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, err, "An error occurred during registration.")
		return
	}

	account := models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "User",
	}
	id, err := h.accounts.CreateAccount(r.Context(), &account)
	if err != nil {
		writeError(w, err, "An error occurred during registration.")
		return
	}

	token, err := h.issueToken(id, req.Email, account.Role)
	if err != nil {
		writeError(w, err, "An error occurred during registration.")
		return
	}

	writeJSON(w, authResponse{
		Message: "User registered successfully",
		Token:   token,
		UserID:  id,
		Email:   req.Email,
	}, http.StatusOK)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "Invalid request.", http.StatusBadRequest)
		return
	}
	if msg := validationMessage(req); msg != "" {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetAccountByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err, "An error occurred during login.")
		return
	}
	if account == nil {
		writeError(w, errs.E(errs.KindAuth, "Invalid email or password."), "")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, errs.E(errs.KindAuth, "Invalid email or password."), "")
		return
	}

	token, err := h.issueToken(account.ID, account.Email, account.Role)
	if err != nil {
		writeError(w, err, "An error occurred during login.")
		return
	}

	writeJSON(w, authResponse{
		Message: "Login successful",
		Token:   token,
		UserID:  account.ID,
		Email:   account.Email,
	}, http.StatusOK)
}

// Logout is client-side for stateless bearer tokens: the client drops
// the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "Logout successful", http.StatusOK)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := r.Context().Value(CtxAccountID).(uint)
	if !ok {
		writeError(w, errs.E(errs.KindAuth, "User not authenticated."), "")
		return
	}

	account, err := h.accounts.GetAccountByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving user information.")
		return
	}
	if account == nil {
		writeError(w, errs.E(errs.KindNotFound, "User not found."), "")
		return
	}

	writeJSON(w, map[string]any{
		"userId": account.ID,
		"email":  account.Email,
		"role":   account.Role,
	}, http.StatusOK)
}

func (h *AuthHandler) issueToken(accountID uint, email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   accountID,
		"email": email,
		"role":  role,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(h.tokenDuration).Unix(),
	})

	return token.SignedString([]byte(h.jwtSecret))
}
