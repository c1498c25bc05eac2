package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	rows  map[string][]string
	calls []string
	err   error
}

func (f *fakeLookup) CategoryIDsForGenre(ctx context.Context, genreID string) ([]string, error) {
	f.calls = append(f.calls, genreID)
	return f.rows[genreID], f.err
}

func TestNew_DedupesCategories(t *testing.T) {
	rule := NewGenresHasCategoriesRule(&fakeLookup{}, []string{"1", "1", "2", "2"})
	assert.Equal(t, []string{"1", "2"}, rule.categoriesID)
}

func TestPasses_DedupesGenres(t *testing.T) {
	lookup := &fakeLookup{rows: map[string][]string{"1": {"1"}, "2": {"1"}}}
	rule := NewGenresHasCategoriesRule(lookup, []string{"1"})

	ok, err := rule.Passes(context.Background(), []string{"1", "1", "2", "2"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, rule.genresID)
	assert.Equal(t, []string{"1", "2"}, lookup.calls)
}

func TestPasses_FalseWhenCategoriesOrGenresEmpty(t *testing.T) {
	ctx := context.Background()
	lookup := &fakeLookup{rows: map[string][]string{"1": {"1"}}}

	ok, err := NewGenresHasCategoriesRule(lookup, nil).Passes(ctx, []string{"1"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = NewGenresHasCategoriesRule(lookup, []string{"1", "2"}).Passes(ctx, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, lookup.calls)
}

func TestPasses_FalseWhenGenreHasNoCategories(t *testing.T) {
	rule := NewGenresHasCategoriesRule(&fakeLookup{}, []string{"1"})

	ok, err := rule.Passes(context.Background(), []string{"1"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasses_FalseWithoutIntersection(t *testing.T) {
	lookup := &fakeLookup{rows: map[string][]string{"2": {"1"}}}
	rule := NewGenresHasCategoriesRule(lookup, []string{"2"})

	ok, err := rule.Passes(context.Background(), []string{"2"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasses_Valid(t *testing.T) {
	ctx := context.Background()

	lookup := &fakeLookup{rows: map[string][]string{"1": {"1", "2"}}}
	ok, err := NewGenresHasCategoriesRule(lookup, []string{"1", "2"}).Passes(ctx, []string{"1"})
	require.NoError(t, err)
	assert.True(t, ok)

	lookup = &fakeLookup{rows: map[string][]string{"1": {"1", "2"}, "2": {"1"}}}
	ok, err = NewGenresHasCategoriesRule(lookup, []string{"1", "2"}).Passes(ctx, []string{"1", "2"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasses_OneBadGenreFailsAll(t *testing.T) {
	lookup := &fakeLookup{rows: map[string][]string{"1": {"1"}, "2": {"3"}}}

	ok, err := NewGenresHasCategoriesRule(lookup, []string{"1"}).Passes(context.Background(), []string{"1", "2"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasses_LookupError(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("connection reset")}

	ok, err := NewGenresHasCategoriesRule(lookup, []string{"1"}).Passes(context.Background(), []string{"1"})
	assert.False(t, ok)
	assert.EqualError(t, err, "connection reset")
}

func TestMessage(t *testing.T) {
	assert.NotEmpty(t, NewGenresHasCategoriesRule(&fakeLookup{}, nil).Message())
}
