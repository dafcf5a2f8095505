package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jredh-dev/velox/internal/money"
)

func TestSessionSelection(t *testing.T) {
	sess := NewSession(seeded(t))

	_, ok := sess.Selected()
	assert.False(t, ok)

	assert.ErrorIs(t, sess.Select("missing"), ErrNotFound)
	require.NoError(t, sess.Select("2"))

	it, ok := sess.Selected()
	require.True(t, ok)
	assert.Equal(t, "2", it.ID)

	sess.Clear()
	_, ok = sess.Selected()
	assert.False(t, ok)
}

func TestSessionReadYourWrite(t *testing.T) {
	sess := NewSession(seeded(t))
	require.NoError(t, sess.Select("2"))

	res, err := sess.PlaceBid(money.Reais(200000), "Você", t0)
	require.NoError(t, err)

	it, ok := sess.Selected()
	require.True(t, ok)
	assert.Equal(t, money.Reais(200000), it.CurrentBid)
	assert.Equal(t, res.Bid, it.LastBids(1)[0])

	for _, listed := range sess.Items() {
		if listed.ID == "2" {
			assert.Equal(t, money.Reais(200000), listed.CurrentBid)
		}
	}
}

func TestSessionBidWithoutSelection(t *testing.T) {
	sess := NewSession(seeded(t))
	_, err := sess.PlaceBid(money.Reais(1000000), "x", t0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionFilters(t *testing.T) {
	sess := NewSession(seeded(t))
	assert.Equal(t, AllCategories, sess.Category())
	assert.Len(t, sess.Items(), 6)

	sess.SetCategory(CategoryJudicial)
	assert.Equal(t, []string{"3", "5"}, ids(sess.Items()))

	sess.SetQuery("rolex")
	assert.Equal(t, "rolex", sess.Query())
	assert.Equal(t, []string{"3"}, ids(sess.Items()))

	sess.ResetFilters()
	assert.Equal(t, AllCategories, sess.Category())
	assert.Empty(t, sess.Query())
	assert.Len(t, sess.Items(), 6)
}
