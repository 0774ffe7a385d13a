package inventory

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/users"
)

const (
	maxCategoryName        = 50
	maxCategoryDescription = 500
)

// ValidationError is a form value the API would reject. Message is fit to
// show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return errors.ErrInvalidInput.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return errors.ErrInvalidInput
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Normalize trims the fields in place and validates them
func (in *CategoryInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.Name == "":
		return invalid("Category name is required")
	case utf8.RuneCountInString(in.Name) > maxCategoryName:
		return invalid("Category name must be 50 characters or fewer.")
	case utf8.RuneCountInString(in.Description) > maxCategoryDescription:
		return invalid("Description must be 500 characters or fewer.")
	}
	return nil
}

// CheckDuplicate rejects a name already used by another category. id is the
// category being edited, or empty when adding.
func (in CategoryInput) CheckDuplicate(existing []Category, id string) error {
	for _, c := range existing {
		if c.ID != id && strings.EqualFold(strings.TrimSpace(c.Name), in.Name) {
			return invalid("A category with this name already exists.")
		}
	}
	return nil
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Supplier    string  `json:"supplier"`
}

func (in *ProductInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.Name == "":
		return invalid("Product name is required")
	case in.Price < 0:
		return invalid("Price cannot be negative")
	case in.Stock < 0:
		return invalid("Stock cannot be negative")
	case in.Category == "":
		return invalid("Select a category")
	case in.Supplier == "":
		return invalid("Select a supplier")
	}
	return nil
}

type SupplierInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (in *SupplierInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return invalid("Supplier name is required")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return invalid("Invalid supplier email")
		}
	}
	return nil
}

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// Normalize validates the form and rewrites Role to the spelling the API
// stores for that role.
func (in *UserInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Address == "" || in.Role == "" {
		return invalid("Please fill out all fields before submitting.")
	}
	role, err := users.ParseRole(in.Role)
	if err != nil {
		return invalid("Select a valid role")
	}
	in.Role = APIRoleName(role)
	return nil
}

// APIRoleName is the role string the API stores for role
func APIRoleName(role users.RoleType) string {
	if role == users.RoleAdministrator {
		return "Admin"
	}
	return "Customer"
}

type OrderInput struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

func (in *OrderInput) Normalize() error {
	if in.ProductID == "" {
		return invalid("Select a product")
	}
	if in.Quantity < 1 {
		return invalid("Quantity must be at least 1")
	}
	return nil
}
