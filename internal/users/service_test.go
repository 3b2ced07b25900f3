package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuvault/docuvault/internal/models"
	"github.com/docuvault/docuvault/internal/roles"
)

func newService(t *testing.T) (*Service, *models.Role) {
	t.Helper()
	roleRepo := roles.NewMemoryRepository()
	role := &models.Role{Title: "Supervisor"}
	_, err := roleRepo.Create(context.Background(), role)
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), roleRepo), role
}

func TestRegisterHashesPasswordAndSetsRole(t *testing.T) {
	svc, role := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "kendra", "k@example.com", "hunter2", role.ID)
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, role.ID, u.Role)
	assert.NotEqual(t, "hunter2", u.Password, "password must be stored hashed")
	assert.False(t, u.CreatedAt.IsZero())
}

func TestRegisterUnknownRole(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), "kendra", "", "pw", "no-such-role")
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, role := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "kendra", "", "pw", role.ID)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "kendra", "other@example.com", "pw2", role.ID)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, role := newService(t)
	ctx := context.Background()
	reg, err := svc.Register(ctx, "kendra", "", "hunter2", role.ID)
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "kendra", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	_, err = svc.Authenticate(ctx, "kendra", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown user is indistinguishable from a bad password
	_, err = svc.Authenticate(ctx, "nobody", "hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
