package inventory_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/inventory"
	"github.com/stretchr/testify/require"
)

func TestCategoryInput_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      inventory.CategoryInput
		wantErr string
	}{
		{"valid", inventory.CategoryInput{Name: "  Tools ", Description: "hand tools"}, ""},
		{"missing name", inventory.CategoryInput{Name: "   "}, "Category name is required"},
		{"long name", inventory.CategoryInput{Name: strings.Repeat("a", 51)}, "50 characters"},
		{"long description", inventory.CategoryInput{Name: "x", Description: strings.Repeat("d", 501)}, "500 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			err := in.Normalize()
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.Equal(t, strings.TrimSpace(tt.in.Name), in.Name)
				return
			}
			require.ErrorIs(t, err, errors.ErrInvalidInput)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCategoryInput_CheckDuplicate(t *testing.T) {
	existing := []inventory.Category{{ID: "c-1", Name: "Tools"}, {ID: "c-2", Name: "Paint"}}
	in := inventory.CategoryInput{Name: "tools"}

	require.Error(t, in.CheckDuplicate(existing, ""))
	require.Error(t, in.CheckDuplicate(existing, "c-2"))
	require.NoError(t, in.CheckDuplicate(existing, "c-1"), "renaming a category to its own name")
}

func TestUserInput_Normalize(t *testing.T) {
	in := inventory.UserInput{Name: "Olu", Email: "olu@example.com", Password: "pw", Address: "2 Loop", Role: "employee"}
	require.NoError(t, in.Normalize())
	require.Equal(t, "Customer", in.Role)

	in = inventory.UserInput{Name: "Ada", Email: "ada@example.com", Password: "pw", Address: "1 Loop", Role: "ADMIN"}
	require.NoError(t, in.Normalize())
	require.Equal(t, "Admin", in.Role)

	in = inventory.UserInput{Name: "Olu", Email: "olu@example.com", Password: "pw", Address: "2 Loop", Role: "auditor"}
	require.ErrorIs(t, in.Normalize(), errors.ErrInvalidInput)

	in = inventory.UserInput{Name: "Olu"}
	err := in.Normalize()
	require.ErrorIs(t, err, errors.ErrInvalidInput)
	require.Contains(t, err.Error(), "Please fill out all fields")
}

func TestProductAndOrderInput_Normalize(t *testing.T) {
	p := inventory.ProductInput{Name: "Hammer", Price: 1, Stock: 1, Category: "c", Supplier: "s"}
	require.NoError(t, p.Normalize())
	p.Stock = -1
	require.ErrorIs(t, p.Normalize(), errors.ErrInvalidInput)

	o := inventory.OrderInput{ProductID: "p", Quantity: 0}
	require.ErrorIs(t, o.Normalize(), errors.ErrInvalidInput)
	o.Quantity = 2
	require.NoError(t, o.Normalize())
}

func TestSupplierInput_Normalize(t *testing.T) {
	s := inventory.SupplierInput{Name: "Acme", Email: "not-an-email"}
	require.ErrorIs(t, s.Normalize(), errors.ErrInvalidInput)
	s.Email = "acme@example.com"
	require.NoError(t, s.Normalize())
}
