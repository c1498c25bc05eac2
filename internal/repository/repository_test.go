package repository

import (
	"context"
	"testing"
	"time"

	"video-catalog/internal/models"
	"video-catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategories(t *testing.T, repo CrudRepository[models.Category], names ...string) []models.Category {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var out []models.Category
	for i, name := range names {
		c := models.Category{Name: name, IsActive: i%2 == 0, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, &c))
		out = append(out, c)
	}
	return out
}

func TestCrudRepository_ListPagination(t *testing.T) {
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	seedCategories(t, repo, "a", "b", "c", "d", "e")

	items, total, err := repo.List(context.Background(), ListQuery{Page: 2, PerPage: 2}, CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	// created_at desc: e d | c b | a
	assert.Equal(t, "c", items[0].Name)
	assert.Equal(t, "b", items[1].Name)

	items, total, err = repo.List(context.Background(), ListQuery{All: true}, CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, items, 5)
}

func TestCrudRepository_ListSearchAndFilters(t *testing.T) {
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	seedCategories(t, repo, "Drama", "Comedy", "Documentary")

	items, total, err := repo.List(context.Background(), ListQuery{Search: "DO", Page: 1, PerPage: 15}, CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Documentary", items[0].Name)

	items, _, err = repo.List(context.Background(), ListQuery{
		Page: 1, PerPage: 15,
		Params: map[string]string{"is_active": "false"},
	}, CategoryFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Comedy", items[0].Name)
}

func TestCrudRepository_Sort(t *testing.T) {
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	seedCategories(t, repo, "b", "c", "a")

	items, _, err := repo.List(context.Background(), ListQuery{Page: 1, PerPage: 15, Sort: "name", Dir: "asc"}, CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(items))

	items, _, err = repo.List(context.Background(), ListQuery{Page: 1, PerPage: 15, Sort: "name"}, CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, names(items))

	// unknown columns fall back to newest first
	items, _, err = repo.List(context.Background(), ListQuery{Page: 1, PerPage: 15, Sort: "name; DROP TABLE categories", Dir: "asc"}, CategoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, names(items))
}

func TestSortOrder(t *testing.T) {
	col, dir := sortOrder(ListQuery{Sort: "title", Dir: "ASC"}, VideoFilter{})
	assert.Equal(t, "title", col)
	assert.Equal(t, "asc", dir)

	col, dir = sortOrder(ListQuery{Sort: "title", Dir: "sideways"}, VideoFilter{})
	assert.Equal(t, "title", col)
	assert.Equal(t, "desc", dir)

	col, dir = sortOrder(ListQuery{Sort: "password"}, VideoFilter{})
	assert.Equal(t, "created_at", col)
	assert.Equal(t, "desc", dir)
}

func TestCrudRepository_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	c := seedCategories(t, repo, "Drama")[0]

	_, err := repo.FindTrashed(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, &c))

	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	trashed, err := repo.FindTrashed(ctx, c.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Restore(ctx, trashed))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", found.Name)
	assert.False(t, found.DeletedAt.Valid)
}

func TestCrudRepository_Save(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	c := seedCategories(t, repo, "Drama")[0]

	c.Name = "Thriller"
	c.IsActive = false
	require.NoError(t, repo.Save(ctx, &c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thriller", found.Name)
	assert.False(t, found.IsActive)
}

func TestCrudRepository_Revert(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	c := seedCategories(t, repo, "Drama")[0]

	before, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	snapshot := *before

	desc := "changed"
	before.Name = "Thriller"
	before.Description = &desc
	before.IsActive = false
	require.NoError(t, repo.Save(ctx, before))

	require.NoError(t, repo.Revert(ctx, &snapshot))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", found.Name)
	assert.Nil(t, found.Description)
	assert.True(t, found.IsActive)
	assert.True(t, found.UpdatedAt.Equal(snapshot.UpdatedAt))
}

func TestCrudRepository_ForceDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	c := seedCategories(t, repo, "Drama")[0]

	require.NoError(t, repo.ForceDelete(ctx, &c))

	var n int64
	require.NoError(t, db.Unscoped().Model(&models.Category{}).Count(&n).Error)
	assert.Zero(t, n)
	_, err := repo.FindTrashed(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCrudRepository_CountExisting(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	repo := NewCrudRepository[models.Category](db)
	cats := seedCategories(t, repo, "a", "b")
	require.NoError(t, repo.Delete(ctx, &cats[1]))

	n, err := repo.CountExisting(ctx, []string{cats[0].ID, cats[1].ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountExisting(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRelationRepository_Sync(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	categories := NewCrudRepository[models.Category](db)
	genres := NewCrudRepository[models.Genre](db, "Categories")
	relations := NewRelationRepository(db)

	cats := seedCategories(t, categories, "a", "b", "c")
	g := models.Genre{Name: "Action", IsActive: true}
	require.NoError(t, genres.Create(ctx, &g))

	require.NoError(t, relations.Sync(ctx, CategoryGenre, g.ID, []string{cats[0].ID, cats[1].ID, cats[0].ID}))
	ids, err := relations.CategoryIDsForGenre(ctx, g.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{cats[0].ID, cats[1].ID}, ids)

	require.NoError(t, relations.Sync(ctx, CategoryGenre, g.ID, []string{cats[2].ID}))
	ids, err = relations.RelatedIDs(ctx, CategoryGenre, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{cats[2].ID}, ids)

	// related rows are loaded even when soft deleted
	require.NoError(t, categories.Delete(ctx, &cats[2]))
	found, err := genres.FindByID(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, found.Categories, 1)
	assert.Equal(t, cats[2].ID, found.Categories[0].ID)

	require.NoError(t, relations.Sync(ctx, CategoryGenre, g.ID, []string{}))
	ids, err = relations.RelatedIDs(ctx, CategoryGenre, g.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRelationRepository_SyncUnknownID(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	genres := NewCrudRepository[models.Genre](db)
	relations := NewRelationRepository(db)

	g := models.Genre{Name: "Action", IsActive: true}
	require.NoError(t, genres.Create(ctx, &g))

	err := relations.Sync(ctx, CategoryGenre, g.ID, []string{"does-not-exist"})
	assert.Error(t, err)
}

func TestVideoFilter_Relations(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	categories := NewCrudRepository[models.Category](db)
	videos := NewCrudRepository[models.Video](db, "Categories", "Genres")
	relations := NewRelationRepository(db)

	cats := seedCategories(t, categories, "a", "b")
	v1 := models.Video{Title: "First", Description: "d", YearLaunched: 2020, Rating: "L", Duration: 90}
	v2 := models.Video{Title: "Second", Description: "d", YearLaunched: 2021, Rating: "18", Duration: 120}
	require.NoError(t, videos.Create(ctx, &v1))
	require.NoError(t, videos.Create(ctx, &v2))
	require.NoError(t, relations.Sync(ctx, CategoryVideo, v1.ID, []string{cats[0].ID}))
	require.NoError(t, relations.Sync(ctx, CategoryVideo, v2.ID, []string{cats[1].ID}))

	items, total, err := videos.List(ctx, ListQuery{
		Page: 1, PerPage: 15,
		Params: map[string]string{"categories": cats[1].ID},
	}, VideoFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Second", items[0].Title)
	require.Len(t, items[0].Categories, 1)

	items, _, err = videos.List(ctx, ListQuery{
		Page: 1, PerPage: 15,
		Params: map[string]string{"rating": "L"},
	}, VideoFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "First", items[0].Title)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a, ,b,"))
	assert.Nil(t, splitIDs(""))
}

func names(items []models.Category) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Name)
	}
	return out
}
