package apifake

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/users"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 2 * 24 * time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken mints a bearer token for the account with userID
func (a *API) IssueToken(userID string) (string, error) {
	a.mu.RLock()
	acc := a.accountByID(userID)
	a.mu.RUnlock()
	if acc == nil {
		return "", errors.ErrNotFound
	}
	return a.issue(acc)
}

func (a *API) issue(acc *account) (string, error) {
	now := NowTimeFunc()
	claims := tokenClaims{
		Role: acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey())
}

func (a *API) signingKey() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.secret
}

func (a *API) parse(raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(NowTimeFunc))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Revoke invalidates a token issued earlier. Later requests carrying it get
// the token-invalid 401.
func (a *API) Revoke(raw string) error {
	claims, err := a.parse(raw)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// RevokeAll rotates the signing secret, invalidating every token issued so far
func (a *API) RevokeAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.secret = []byte(uuid.NewString())
}

func (a *API) isRevoked(jti string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := NowTimeFunc()
	for id, exp := range a.revoked {
		if now.After(exp) {
			delete(a.revoked, id)
		}
	}
	_, ok := a.revoked[jti]
	return ok
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, caller *account)

// authed admits requests carrying a live token whose account holds one of
// roles. No roles means any signed-in account.
func (a *API) authed(h handlerFunc, roles ...users.RoleType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Unauthorized - No Token Provided"})
			return
		}

		claims, err := a.parse(raw)
		if err != nil || a.isRevoked(claims.ID) {
			tokenInvalid(w)
			return
		}

		a.mu.RLock()
		acc := a.accountByID(claims.Subject)
		a.mu.RUnlock()
		if acc == nil {
			tokenInvalid(w)
			return
		}

		if len(roles) > 0 {
			role, err := users.ParseRole(acc.Role)
			if err != nil || !lo.Contains(roles, role) {
				writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "Forbidden - Insufficient Role"})
				return
			}
		}
		h(w, r, acc)
	}
}

func tokenInvalid(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": gateway.SentinelTokenInvalid})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	a.mu.RLock()
	acc := a.accountByEmail(req.Email)
	a.mu.RUnlock()
	if acc == nil {
		writeError(w, http.StatusNotFound, "User Not Found")
		return
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Wrong Password")
		return
	}

	token, err := a.issue(acc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": map[string]any{
			"_id":   acc.ID,
			"name":  acc.Name,
			"email": acc.Email,
			"role":  acc.Role,
		},
	})
}
