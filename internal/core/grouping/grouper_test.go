package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

func items(names ...string) []domain.Item {
	out := make([]domain.Item, len(names))
	for i, name := range names {
		out[i] = domain.Item{ID: name, DisplayName: name, AspectRatio: domain.DefaultAspectRatio}
	}
	return out
}

func displayNames(g domain.Group) []string {
	names := make([]string, len(g.Items))
	for i := range g.Items {
		names[i] = g.Items[i].DisplayName
	}
	return names
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]domain.Item{}))
}

func TestGroup_PrefixVariantsShareGroup(t *testing.T) {
	groups := Group(items("CR5681.jpg", "cr5681-1.png", "CR5681_02.jpeg"))

	require.Len(t, groups, 1)
	assert.Equal(t, "CR5681", groups[0].Key)
	assert.Len(t, groups[0].Items, 3)
	for _, item := range groups[0].Items {
		assert.Equal(t, "CR5681", item.GroupKey)
	}
}

func TestGroup_NumericAwareItemOrder(t *testing.T) {
	groups := Group(items("IMG_10.jpg", "IMG_2.jpg", "IMG_1.jpg"))

	require.Len(t, groups, 1)
	assert.Equal(t, "IMG", groups[0].Key)
	assert.Equal(t, []string{"IMG_1.jpg", "IMG_2.jpg", "IMG_10.jpg"}, displayNames(groups[0]))
}

func TestGroup_KeyOrder(t *testing.T) {
	groups := Group(items("G10-1.jpg", "g2_b.jpg", "G2-a.jpg", "beta.jpg", "alpha.jpg"))

	assert.Equal(t, []string{"ALPHA", "BETA", "G2", "G10"}, Keys(groups))
	assert.Equal(t, []string{"G2-a.jpg", "g2_b.jpg"}, displayNames(groups[2]))
}

func TestGroup_EmptyKeySortsFirst(t *testing.T) {
	groups := Group(items("b.jpg", ".jpg", "a1.jpg"))
	assert.Equal(t, []string{"", "A1", "B"}, Keys(groups))
}

func TestGroup_DuplicateNamesOrderedByID(t *testing.T) {
	in := []domain.Item{
		{ID: "z", DisplayName: "a.jpg", AspectRatio: 1},
		{ID: "y", DisplayName: "a.jpg", AspectRatio: 1},
	}
	groups := Group(in)

	require.Len(t, groups, 1)
	assert.Equal(t, "y", groups[0].Items[0].ID)
	assert.Equal(t, "z", groups[0].Items[1].ID)
}

func TestGroup_Idempotent(t *testing.T) {
	in := items("G10-1.jpg", "g2_b.jpg", "G2-a.jpg", "beta.jpg", "alpha.jpg", "20240101.jpg")

	first := Group(in)
	second := Group(in)
	assert.Equal(t, first, second)
}

func TestGroup_IndependentOfInputOrder(t *testing.T) {
	// B1 < A2 numerically but A2 < AA < B1 lexically; the result must still
	// depend only on the set of names.
	perms := [][]string{
		{"b1.jpg", "a2.jpg", "aa.jpg"},
		{"aa.jpg", "b1.jpg", "a2.jpg"},
		{"a2.jpg", "aa.jpg", "b1.jpg"},
		{"aa.jpg", "a2.jpg", "b1.jpg"},
	}

	want := Keys(Group(items(perms[0]...)))
	for _, p := range perms[1:] {
		assert.Equal(t, want, Keys(Group(items(p...))), p)
	}
}

func TestGroup_DoesNotModifyInput(t *testing.T) {
	in := items("img10.jpg", "img2.jpg")
	Group(in)

	assert.Equal(t, "img10.jpg", in[0].DisplayName)
	assert.Empty(t, in[0].GroupKey)
}

func TestGroup_EveryItemInExactlyOneGroup(t *testing.T) {
	in := items("a1.jpg", "a1-2.jpg", "b2.jpg", "c.jpg", "c_1.jpg", "d10.jpg")
	groups := Group(in)

	seen := make(map[string]int)
	for _, g := range groups {
		for _, item := range g.Items {
			seen[item.ID]++
			assert.Equal(t, g.Key, item.GroupKey)
		}
	}
	assert.Len(t, seen, len(in))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}
