package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/bjtrainer/internal/deck"
)

func parse(s string) Hand {
	return New(deck.MustParseCards(s)...)
}

func TestValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  Value
	}{
		{"AsAh9d", Value{21, true}},
		{"AsAhAd8c", Value{21, true}},
		{"Ts9h", Value{19, false}},
		{"As6h", Value{17, true}},
		{"As6h9d", Value{16, false}},
		{"AsKh", Value{21, true}},
		{"AsAh", Value{12, true}},
		{"KsQhJd", Value{30, false}},
		{"AsAhAdAc", Value{14, true}},
		{"AsAhAdAcTs", Value{14, false}},
		{"5s5h", Value{10, false}},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parse(tt.cards).Value())
		})
	}
}

func TestValueIsOrderIndependent(t *testing.T) {
	t.Parallel()
	hands := []string{"AsAh9d", "As6h9d", "2s3hAd5cAc", "TsAh", "9s2d3hAc4s"}
	for _, s := range hands {
		h := parse(s)
		want := h.Value()
		permute(h, 0, func(p Hand) {
			assert.Equal(t, want, p.Value(), "permutation %s of %s", p, s)
		})
	}
}

func permute(h Hand, k int, visit func(Hand)) {
	if k == len(h) {
		visit(h)
		return
	}
	for i := k; i < len(h); i++ {
		h[k], h[i] = h[i], h[k]
		permute(h, k+1, visit)
		h[k], h[i] = h[i], h[k]
	}
}

func TestIsPair(t *testing.T) {
	t.Parallel()
	assert.True(t, parse("8s8h").IsPair())
	assert.True(t, parse("TsKh").IsPair(), "ten-valued cards pair")
	assert.True(t, parse("AsAh").IsPair())
	assert.False(t, parse("8s9h").IsPair())
	assert.False(t, parse("8s8h8d").IsPair(), "three cards are never a pair")
	assert.False(t, parse("As").IsPair())
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	h := parse("8s8h")
	c := h.Clone()
	c[0] = deck.NewCard(deck.Clubs, deck.Two)
	c = append(c, deck.NewCard(deck.Clubs, deck.Three))
	assert.Equal(t, parse("8s8h"), h)
	assert.Len(t, c, 3)
	assert.Nil(t, Hand(nil).Clone())
}

func TestValueString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "soft 18", parse("As7h").Value().String())
	assert.Equal(t, "hard 16", parse("Ts6h").Value().String())
	assert.True(t, parse("TsQh5d").Value().Bust())
	assert.Equal(t, "A♠ 7♥", parse("As7h").String())
}
