package rating

import (
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"github.com/dinkside/rally-core/pkg/testsetup"
)

func TestExpectedScore_EqualRatingsIsHalf(t *testing.T) {
	for _, r := range []int{0, 400, 1000, 1487, 2600, -50} {
		assert.Equal(t, 0.5, ExpectedScore(r, r), "rating %d", r)
	}
}

func TestExpectedScore_Symmetric(t *testing.T) {
	t.Parallel()
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := random.Intn(3000)
		b := random.Intn(3000)
		sum := ExpectedScore(a, b) + ExpectedScore(b, a)
		assert.InDelta(t, 1.0, sum, 1e-12, "a=%d b=%d", a, b)
		score := ExpectedScore(a, b)
		assert.True(t, score > 0 && score < 1)
	}
}

func TestExpectedScore_FavoursHigherRating(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	g.Expect(ExpectedScore(1400, 1000)).To(BeNumerically(">", 0.9))
	g.Expect(ExpectedScore(1000, 1400)).To(BeNumerically("<", 0.1))
}

func TestNewRating_EqualPlayers(t *testing.T) {
	assert.Equal(t, 1016, NewRating(1000, 1000, true, 32))
	assert.Equal(t, 984, NewRating(1000, 1000, false, 32))
}

func TestNewRating_UnderdogGainsMore(t *testing.T) {
	underdogWin := NewRating(1000, 1200, true, 32) - 1000
	favouriteWin := NewRating(1200, 1000, true, 32) - 1200

	assert.Equal(t, 24, underdogWin)
	assert.Equal(t, 8, favouriteWin)
	assert.Equal(t, 1000, NewRating(1000, 1000, true, 0))
}

func TestEngine_OutcomeIsZeroSum(t *testing.T) {
	engine := NewEngine(0)
	assert.Equal(t, float64(32), engine.KFactor)

	cases := [][2]int{{1000, 1000}, {1000, 1200}, {1510, 1320}, {800, 2100}}
	for _, c := range cases {
		winner, loser := engine.Outcome(c[0], c[1])
		assert.Equal(t, 0, winner+loser, "ratings %v", c)
		assert.Positive(t, winner)
	}
}
