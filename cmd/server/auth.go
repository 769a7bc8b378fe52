package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// JWTClaims are the session token claims.
type JWTClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type contextKey string

const userContextKey contextKey = "user"

// registerHandler creates a local account.
func registerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "all fields required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not hash password"})
		return
	}

	user := User{
		Username:     ugcPolicy.Sanitize(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user already exists"})
		return
	}

	renderJSON(w, http.StatusCreated, MessageResponse{Message: "user registered"})
}

// loginHandler checks credentials and issues a session token.
func loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	var user User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		renderJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		renderJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(opts.JWTSecret))
	if err != nil {
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not sign token"})
		return
	}

	renderJSON(w, http.StatusOK, map[string]string{"token": signed})
}

// authMiddleware requires a valid bearer token and stores its claims in the
// request context.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			renderJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(opts.JWTSecret), nil
			})
		if err != nil || !token.Valid {
			renderJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the claims authMiddleware stored. Calling it
// outside a protected route is a programming error.
func userFromContext(r *http.Request) *JWTClaims {
	claims, ok := r.Context().Value(userContextKey).(*JWTClaims)
	if !ok {
		panic("userFromContext called outside authMiddleware")
	}
	return claims
}
