package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain"
)

type fakeRepo struct {
	byID map[id.ID]*Category
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*Category)}
}

func (r *fakeRepo) Create(_ context.Context, c *Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, entityID id.ID) (*Category, error) {
	c, ok := r.byID[entityID]
	if !ok {
		return nil, apperror.NewNotFound("category", entityID)
	}
	return c, nil
}

func (r *fakeRepo) Update(_ context.Context, c *Category) error {
	existing, ok := r.byID[c.ID]
	if !ok {
		return apperror.NewNotFound("category", c.ID)
	}
	if existing.Version != c.Version {
		return apperror.NewConcurrentModification("category", c.ID)
	}
	c.Version++
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) SetDeleted(_ context.Context, entityID id.ID, deleted bool) error {
	c, ok := r.byID[entityID]
	if !ok {
		return apperror.NewNotFound("category", entityID)
	}
	if deleted {
		c.MarkDeleted()
	} else {
		c.Base.Restore()
	}
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	result := domain.ListResult[*Category]{Limit: filter.Limit, Offset: filter.Offset}
	for _, c := range r.byID {
		if c.IsDeleted() && !filter.IncludeDeleted {
			continue
		}
		result.Items = append(result.Items, c)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	c, ok := r.byID[entityID]
	return ok && !c.IsDeleted(), nil
}

func (r *fakeRepo) FindByName(_ context.Context, name string) (*Category, error) {
	for _, c := range r.byID {
		if !c.IsDeleted() && c.Name == name {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("category", name)
}

type fakeProductCounter struct {
	count int64
}

func (f *fakeProductCounter) CountActiveByCategory(context.Context, id.ID) (int64, error) {
	return f.count, nil
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestCreate_RejectsDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProductCounter{}, passTxManager{})
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, NewCategory("Beverages")))

	err := svc.Create(ctx, NewCategory("Beverages"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProductCounter{}, passTxManager{})

	err := svc.Create(context.Background(), NewCategory(""))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_AllowsSameEntityKeepingName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProductCounter{}, passTxManager{})
	ctx := context.Background()

	c := NewCategory("Beverages")
	require.NoError(t, svc.Create(ctx, c))

	desc := "drinks and juices"
	c.Description = &desc
	assert.NoError(t, svc.Update(ctx, c))
}

func TestDelete_ProtectedWhileProductsExist(t *testing.T) {
	repo := newFakeRepo()
	counter := &fakeProductCounter{count: 3}
	svc := NewService(repo, counter, passTxManager{})
	ctx := context.Background()

	c := NewCategory("Beverages")
	require.NoError(t, svc.Create(ctx, c))

	err := svc.Delete(ctx, c.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.False(t, c.IsDeleted())

	counter.count = 0
	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, c.IsDeleted())
}

func TestRestore_ClearsDeletionMark(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProductCounter{}, passTxManager{})
	ctx := context.Background()

	c := NewCategory("Beverages")
	require.NoError(t, svc.Create(ctx, c))
	require.NoError(t, svc.Delete(ctx, c.ID))

	require.NoError(t, svc.Restore(ctx, c.ID))
	assert.False(t, c.IsDeleted())
}

func TestCreate_NameFreedAfterDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProductCounter{}, passTxManager{})
	ctx := context.Background()

	c := NewCategory("Beverages")
	require.NoError(t, svc.Create(ctx, c))
	require.NoError(t, svc.Delete(ctx, c.ID))

	// Uniqueness applies to active rows only
	assert.NoError(t, svc.Create(ctx, NewCategory("Beverages")))
}
