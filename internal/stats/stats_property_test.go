package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trading-journal/internal/models"
)

func tradesGen() gopter.Gen {
	return gen.SliceOf(
		gopter.CombineGens(
			gen.Float64Range(-500, 500),
			gen.Float64Range(0, 5),
			gen.IntRange(-400, 0),
		).Map(func(v []interface{}) models.Trade {
			return trade(v[0].(float64), v[1].(float64), now.AddDate(0, 0, v[2].(int)))
		}),
	)
}

// Property: aggregates do not depend on the order trades were logged in.
func TestProperty_SummaryIsOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("shuffled trades give the same summary", prop.ForAll(
		func(trades []models.Trade, seed int64) bool {
			shuffled := make([]models.Trade, len(trades))
			copy(shuffled, trades)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			for _, f := range []models.TimeFilter{models.FilterWeek, models.FilterMonth, models.FilterYear, models.FilterAll} {
				if Compute(trades, nil, f, now) != Compute(shuffled, nil, f, now) {
					return false
				}
			}
			return true
		},
		tradesGen(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// Property: win rate stays within [0, 100] and never becomes NaN.
func TestProperty_WinRateBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("0 <= winRate <= 100", prop.ForAll(
		func(trades []models.Trade) bool {
			wr := WinRate(trades)
			return wr >= 0 && wr <= 100
		},
		tradesGen(),
	))

	properties.Property("profit factor is infinite only without losses", prop.ForAll(
		func(trades []models.Trade) bool {
			pf := ComputeProfitFactor(trades)
			if pf.IsInfinite() {
				return GrossLoss(trades) == 0 && GrossProfit(trades) > 0
			}
			return pf >= 0
		},
		tradesGen(),
	))

	properties.TestingRun(t)
}
