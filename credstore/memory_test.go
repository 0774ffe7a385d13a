package credstore_test

import (
	"testing"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/users"
	"github.com/stretchr/testify/require"
)

var (
	adminProfile    = users.Profile{ID: "u-admin", Name: "Ada Admin", Email: "ada@example.com", Role: users.RoleAdministrator}
	operatorProfile = users.Profile{ID: "u-op", Name: "Otto Operator", Role: users.RoleOperator}
)

func TestMemory_SaveLoad(t *testing.T) {
	for _, p := range []users.Profile{adminProfile, operatorProfile} {
		t.Run(string(p.Role), func(t *testing.T) {
			s := credstore.NewMemory()
			require.NoError(t, s.Save("tok-"+p.ID, p))

			token, got, err := s.Load()
			require.NoError(t, err)
			require.Equal(t, "tok-"+p.ID, token)
			require.Equal(t, p, got)
		})
	}
}

func TestMemory_SaveOverwrites(t *testing.T) {
	s := credstore.NewMemory()
	require.NoError(t, s.Save("first", adminProfile))
	require.NoError(t, s.Save("second", operatorProfile))

	token, got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "second", token)
	require.Equal(t, operatorProfile, got)
}

func TestMemory_Absent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, err := credstore.NewMemory().Load()
		require.ErrorIs(t, err, credstore.ErrAbsent)
	})

	t.Run("token only", func(t *testing.T) {
		s := credstore.NewMemory()
		s.Set(credstore.TokenKey, "tok")
		_, _, err := s.Load()
		require.ErrorIs(t, err, credstore.ErrAbsent)
	})

	t.Run("profile only", func(t *testing.T) {
		s := credstore.NewMemory()
		s.Set(credstore.ProfileKey, `{"id":"1","name":"A","role":"Admin"}`)
		_, _, err := s.Load()
		require.ErrorIs(t, err, credstore.ErrAbsent)
	})

	t.Run("corrupted profile", func(t *testing.T) {
		s := credstore.NewMemory()
		s.Set(credstore.TokenKey, "tok")
		s.Set(credstore.ProfileKey, `{"id":`)
		_, _, err := s.Load()
		require.ErrorIs(t, err, credstore.ErrAbsent)
	})

	t.Run("schema violation", func(t *testing.T) {
		s := credstore.NewMemory()
		s.Set(credstore.TokenKey, "tok")
		s.Set(credstore.ProfileKey, `{"id":"1","role":"Admin"}`)
		_, _, err := s.Load()
		require.ErrorIs(t, err, credstore.ErrAbsent)
	})
}

func TestMemory_ClearIsIdempotent(t *testing.T) {
	s := credstore.NewMemory()
	require.NoError(t, s.Save("tok", adminProfile))

	require.NoError(t, s.Clear())
	_, _, err := s.Load()
	require.ErrorIs(t, err, credstore.ErrAbsent)

	require.NoError(t, s.Clear())
	_, _, err = s.Load()
	require.ErrorIs(t, err, credstore.ErrAbsent)
}
