package users

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/samber/lo"
)

// RoleType is the canonical role of a console user
type RoleType string

const (
	RoleAdministrator RoleType = "Administrator" // Manages categories, products, suppliers, users and orders
	RoleOperator      RoleType = "Operator"      // Browses products and places orders
)

// roleAliases maps every spelling the inventory API has been seen to send
// onto a canonical role. Keys are lower case.
var roleAliases = map[string]RoleType{
	"admin":         RoleAdministrator,
	"administrator": RoleAdministrator,
	"customer":      RoleOperator,
	"employee":      RoleOperator,
	"operator":      RoleOperator,
}

// ParseRole is the single place where role strings are compared.
// Matching is case-insensitive; anything unrecognised is an error.
func ParseRole(s string) (RoleType, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownRole, s)
	}
	return role, nil
}

func (r RoleType) Valid() bool {
	return r == RoleAdministrator || r == RoleOperator
}

func (r RoleType) String() string {
	return string(r)
}

func (r *RoleType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Profile is the last-known identity of the signed-in user
type Profile struct {
	ID    string   `json:"id"`              // API user id
	Name  string   `json:"name"`            // Display name
	Email string   `json:"email,omitempty"` // Optional email address
	Role  RoleType `json:"role"`            // Canonical role
}

// UnmarshalJSON accepts the id under any of the keys the API uses (id, _id, userId).
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string   `json:"id"`
		MongoID string   `json:"_id"`
		UserID  string   `json:"userId"`
		Name    string   `json:"name"`
		Email   string   `json:"email"`
		Role    RoleType `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id := raw.ID
	if id == "" {
		id = raw.MongoID
	}
	if id == "" {
		id = raw.UserID
	}

	*p = Profile{
		ID:    id,
		Name:  raw.Name,
		Email: raw.Email,
		Role:  raw.Role,
	}
	return nil
}

// Validate enforces the persisted profile schema
func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", errors.ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", errors.ErrInvalidProfile)
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: role %q", errors.ErrInvalidProfile, p.Role)
	}
	return nil
}

// IsAdmin returns true if the user holds the administrator role
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdministrator
}

// HasRole reports whether the profile's role is one of roles
func (p Profile) HasRole(roles ...RoleType) bool {
	return lo.Contains(roles, p.Role)
}
