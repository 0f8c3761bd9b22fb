package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain"
	"stockpos/internal/domain/billing"
	"stockpos/internal/domain/users"
)

type fakeUserRepo struct {
	byID map[id.ID]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[id.ID]*users.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *users.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, entityID id.ID) (*users.User, error) {
	u, ok := r.byID[entityID]
	if !ok {
		return nil, apperror.NewNotFound("user", entityID)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *users.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SetDeleted(_ context.Context, entityID id.ID, deleted bool) error {
	u, ok := r.byID[entityID]
	if !ok {
		return apperror.NewNotFound("user", entityID)
	}
	if deleted {
		u.MarkDeleted()
	} else {
		u.Base.Restore()
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*users.User], error) {
	return domain.ListResult[*users.User]{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	u, ok := r.byID[entityID]
	return ok && !u.IsDeleted(), nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*users.User, error) {
	for _, u := range r.byID {
		if !u.IsDeleted() && u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (r *fakeUserRepo) FindByUsernameIncludingDeleted(_ context.Context, username string) (*users.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (r *fakeUserRepo) FindByDocument(_ context.Context, document string) (*users.User, error) {
	for _, u := range r.byID {
		if u.Document == document {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", document)
}

func (r *fakeUserRepo) CountActiveByRole(_ context.Context, roleID id.ID) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if !u.IsDeleted() && u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

type fakeRoleRepo struct {
	byID map[id.ID]*users.Role
}

func newFakeRoleRepo(roles ...*users.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{byID: make(map[id.ID]*users.Role)}
	for _, role := range roles {
		r.byID[role.ID] = role
	}
	return r
}

func (r *fakeRoleRepo) Create(_ context.Context, role *users.Role) error {
	r.byID[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, entityID id.ID) (*users.Role, error) {
	role, ok := r.byID[entityID]
	if !ok {
		return nil, apperror.NewNotFound("role", entityID)
	}
	return role, nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *users.Role) error {
	r.byID[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) SetDeleted(_ context.Context, entityID id.ID, deleted bool) error {
	role, ok := r.byID[entityID]
	if !ok {
		return apperror.NewNotFound("role", entityID)
	}
	if deleted {
		role.MarkDeleted()
	} else {
		role.Base.Restore()
	}
	return nil
}

func (r *fakeRoleRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*users.Role], error) {
	return domain.ListResult[*users.Role]{Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (r *fakeRoleRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	role, ok := r.byID[entityID]
	return ok && !role.IsDeleted(), nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*users.Role, error) {
	for _, role := range r.byID {
		if !role.IsDeleted() && role.Name == name {
			return role, nil
		}
	}
	return nil, apperror.NewNotFound("role", name)
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newTestService(userRepo users.Repository, roleRepo users.RoleRepository) *Service {
	jwt := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(userRepo, roleRepo, passTxManager{}, jwt, DefaultServiceConfig())
}

func TestRegister_AssignsClientRole(t *testing.T) {
	client := users.NewRole("Client")
	userRepo := newFakeUserRepo()
	svc := newTestService(userRepo, newFakeRoleRepo(client))

	user, err := svc.Register(context.Background(), RegisterInput{
		Username:  "maria",
		Password:  "Sup3rSecret",
		FirstName: "Maria",
		LastName:  "Lopez",
		Document:  "44556677",
	})
	require.NoError(t, err)
	assert.Equal(t, client.ID, user.RoleID)
}

func TestRegister_DefaultRoleMatchesWalkInRole(t *testing.T) {
	assert.Equal(t,
		billing.DefaultResolverConfig().ClientRoleName,
		DefaultServiceConfig().DefaultRoleName,
	)
}

func TestRegister_UsernameHeldByDeactivatedAccount(t *testing.T) {
	client := users.NewRole("Client")
	userRepo := newFakeUserRepo()
	svc := newTestService(userRepo, newFakeRoleRepo(client))

	taken := users.NewUser("maria", "44556677", client.ID)
	taken.MarkDeleted()
	require.NoError(t, userRepo.Create(context.Background(), taken))

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  "maria",
		Password:  "Sup3rSecret",
		FirstName: "Maria",
		LastName:  "Lopez",
		Document:  "99887766",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeRoleRepo(users.NewRole("Client")))

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "maria",
		Password: "short",
		Document: "44556677",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
