package view

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/seedstudio/internal/model"
)

func seedRows() []model.SeedDetails {
	return []model.SeedDetails{
		{Seed: model.Seed{ID: "1", Source: "Shop", PacketCount: 3, Tags: []string{"heirloom", "tomato"}}, Name: "Cherry Tomato"},
		{Seed: model.Seed{ID: "2", Source: "Swap", PacketCount: 5}, Name: "basil"},
		{Seed: model.Seed{ID: "3", Source: "Shop", PacketCount: 3, Tags: []string{"heirloom"}}, Name: "Carrot"},
		{Seed: model.Seed{ID: "4", Source: "Farm", PacketCount: 1, IsWishlist: true}, Name: "Kale"},
	}
}

func ids(rows []model.SeedDetails) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestToggle(t *testing.T) {
	var s Sort
	s = s.Toggle("name")
	assert.Equal(t, Sort{Key: "name", Direction: Asc}, s)
	s = s.Toggle("name")
	assert.Equal(t, Sort{Key: "name", Direction: Desc}, s)
	s = s.Toggle("packetCount")
	assert.Equal(t, Sort{Key: "packetCount", Direction: Asc}, s)
}

func TestProjectSearchIsCaseInsensitive(t *testing.T) {
	got, err := Project(seedRows(), Seeds, Query{Search: "SHOP"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestProjectTagsRequireAll(t *testing.T) {
	got, err := Project(seedRows(), Seeds, Query{Tags: []string{"heirloom"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got, err = Project(seedRows(), Seeds, Query{Tags: []string{"heirloom", "Tomato"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestSortIsStableAcrossToggles(t *testing.T) {
	rows := seedRows()
	var s Sort

	s = s.Toggle("packetCount")
	asc, err := Project(rows, Seeds, Query{Sort: s})
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "1", "3", "2"}, ids(asc))

	s = s.Toggle("packetCount")
	desc, err := Project(rows, Seeds, Query{Sort: s})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids(desc))

	s = s.Toggle("packetCount")
	again, err := Project(rows, Seeds, Query{Sort: s})
	require.NoError(t, err)
	assert.Equal(t, ids(asc), ids(again))
}

func TestSortTextIgnoresCase(t *testing.T) {
	got, err := Project(seedRows(), Seeds, Query{Sort: Sort{Key: "name", Direction: Asc}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1", "4"}, ids(got))
}

func TestUnknownSortKey(t *testing.T) {
	_, err := Project(seedRows(), Seeds, Query{Sort: Sort{Key: "color"}})
	assert.True(t, errors.Is(err, ErrUnknownSortKey))
}

func TestFilterWishlist(t *testing.T) {
	rows := seedRows()
	assert.Equal(t, []string{"4"}, ids(FilterWishlist(rows, WishlistOnly)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterWishlist(rows, WishlistOwned)))
	assert.Len(t, FilterWishlist(rows, WishlistAll), 4)
}

func TestParseQuery(t *testing.T) {
	v := url.Values{}
	v.Set("q", "tom")
	v.Add("tag", "a, b")
	v.Add("tag", "c")
	v.Set("sort", "name")
	v.Set("dir", "DESC")

	q := ParseQuery(v, Sort{Key: "date", Direction: Desc})
	assert.Equal(t, "tom", q.Search)
	assert.Equal(t, []string{"a", "b", "c"}, q.Tags)
	assert.Equal(t, Sort{Key: "name", Direction: Desc}, q.Sort)

	q = ParseQuery(url.Values{}, Sort{Key: "date", Direction: Desc})
	assert.Equal(t, Sort{Key: "date", Direction: Desc}, q.Sort)
}
