package rbac_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/pkg/rbac"
)

func testRoles() map[string]rbac.Role {
	return map[string]rbac.Role{
		"Warga": {
			Permissions: []string{"users.read.self", "users.update.self"},
		},
		"OperatorDesa": {
			Permissions: []string{"desa.read"},
			Inherits:    []string{"Warga"},
		},
		"PetugasBPBD": {
			Permissions: []string{"users.read.any", "reports.*"},
			Inherits:    []string{"OperatorDesa"},
		},
		"Admin": {
			Permissions: []string{"*"},
		},
	}
}

func newAuthorizer(t *testing.T) *rbac.Authorizer {
	t.Helper()
	auth, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(testRoles()))
	require.NoError(t, err)
	return auth
}

func TestAuthorizer_Can(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	tests := []struct {
		name       string
		role       string
		permission string
		wantErr    error
	}{
		{"direct permission", "Warga", "users.update.self", nil},
		{"inherited permission", "OperatorDesa", "users.read.self", nil},
		{"inherited through two levels", "PetugasBPBD", "users.update.self", nil},
		{"scope wildcard", "PetugasBPBD", "reports.flood.create", nil},
		{"global wildcard", "Admin", "anything.at.all", nil},
		{"denied", "Warga", "users.update.any", rbac.ErrInsufficientPermissions},
		{"wildcard does not match prefix itself", "PetugasBPBD", "reports", rbac.ErrInsufficientPermissions},
		{"empty permission", "Admin", "", rbac.ErrInsufficientPermissions},
		{"unknown role", "Tamu", "users.read.self", rbac.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Can(tt.role, tt.permission)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorizer_CanAny(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)
	assert.NoError(t, auth.CanAny("Warga"))
	assert.NoError(t, auth.CanAny("Warga", "users.update.any", "users.update.self"))
	assert.ErrorIs(t, auth.CanAny("Warga", "users.update.any", "desa.read"), rbac.ErrInsufficientPermissions)
	assert.ErrorIs(t, auth.CanAny("Tamu", "desa.read"), rbac.ErrInvalidRole)
}

func TestAuthorizer_CanFromContext(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)

	err := auth.CanFromContext(context.Background(), "desa.read")
	assert.ErrorIs(t, err, rbac.ErrActorNotInContext)
	assert.ErrorIs(t, err, rbac.ErrInsufficientPermissions)

	ctx := rbac.WithActor(context.Background(), rbac.Actor{ID: 1, Role: "OperatorDesa"})
	assert.NoError(t, auth.CanFromContext(ctx, "desa.read"))
}

func TestAuthorizer_RolesAndPermissions(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)
	assert.Equal(t, []string{"Admin", "Warga", "OperatorDesa", "PetugasBPBD"}, auth.Roles())
	assert.Equal(t, []string{"*"}, auth.Permissions("Admin"))
	assert.Equal(t,
		[]string{"desa.read", "reports.*", "users.read.any", "users.read.self", "users.update.self"},
		auth.Permissions("PetugasBPBD"))
	assert.NoError(t, auth.VerifyRole("Warga"))
	assert.ErrorIs(t, auth.VerifyRole("Tamu"), rbac.ErrInvalidRole)
}

func TestAuthorizer_PermissionsAreNormalized(t *testing.T) {
	t.Parallel()

	auth, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(map[string]rbac.Role{
		"r": {Permissions: []string{"users.read", " users.* ", "users.read", ""}},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"users.*"}, auth.Permissions("r"))
}

func TestAuthorizer_InheritanceValidation(t *testing.T) {
	t.Parallel()

	t.Run("cycle", func(t *testing.T) {
		_, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(map[string]rbac.Role{
			"a": {Inherits: []string{"b"}},
			"b": {Inherits: []string{"c"}},
			"c": {Inherits: []string{"a"}},
		}))
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})

	t.Run("self", func(t *testing.T) {
		_, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(map[string]rbac.Role{
			"a": {Inherits: []string{"a"}},
		}))
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})

	t.Run("too deep", func(t *testing.T) {
		roles := make(map[string]rbac.Role)
		for i := range rbac.MaxInheritanceDepth + 2 {
			roles[fmt.Sprintf("r%d", i)] = rbac.Role{Inherits: []string{fmt.Sprintf("r%d", i+1)}}
		}
		_, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(roles))
		assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
	})

	t.Run("unknown parent is ignored", func(t *testing.T) {
		auth, err := rbac.NewAuthorizer(context.Background(), rbac.NewInMemRoleSource(map[string]rbac.Role{
			"a": {Permissions: []string{"x"}, Inherits: []string{"ghost"}},
		}))
		require.NoError(t, err)
		assert.NoError(t, auth.Can("a", "x"))
	})
}

type errSource struct{ err error }

func (s errSource) Load(context.Context) (map[string]rbac.Role, error) { return nil, s.err }

func TestNewAuthorizer_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := rbac.NewAuthorizer(context.Background(), errSource{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestInMemRoleSource_CopiesInput(t *testing.T) {
	t.Parallel()

	roles := map[string]rbac.Role{"r": {Permissions: []string{"a"}}}
	source := rbac.NewInMemRoleSource(roles)
	roles["r"].Permissions[0] = "b"

	loaded, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, loaded["r"].Permissions)
}

func TestAuthorizer_Concurrent(t *testing.T) {
	t.Parallel()

	auth := newAuthorizer(t)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, auth.Can("PetugasBPBD", "users.update.self"))
			assert.ErrorIs(t, auth.Can("Warga", "users.update.any"), rbac.ErrInsufficientPermissions)
		}()
	}
	wg.Wait()
}

func TestRole_Can(t *testing.T) {
	t.Parallel()

	r := rbac.Role{Permissions: []string{"users.*"}, Inherits: []string{"Admin"}}
	assert.True(t, r.Can("users.read"))
	assert.False(t, r.Can("desa.read"))
}
