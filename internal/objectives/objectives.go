// Package objectives derives objective progress and completion from the
// trade history, manual input and deposited funds.
package objectives

import (
	"reflect"

	"trading-journal/internal/models"
	"trading-journal/internal/stats"
	"trading-journal/pkg/utils"
)

// Result is the outcome of a recomputation pass.
type Result struct {
	// Objectives is the recomputed list, in input order.
	Objectives []models.Objective
	// Events holds one ObjectiveCompleted event per objective that moved
	// into Completed during this pass.
	Events []models.Event
	// Changed is false when Objectives deep-equals the input, in which case
	// the caller should skip writing it back.
	Changed bool
}

// Recompute refreshes CurrentValue and Status of every objective. It does
// not modify its inputs. Running it again on its own output with the same
// trades yields Changed == false and no events.
func Recompute(objectives []models.Objective, trades []models.Trade) Result {
	if len(objectives) == 0 {
		return Result{Objectives: objectives}
	}

	out := make([]models.Objective, len(objectives))
	var events []models.Event

	for i, obj := range objectives {
		value := CurrentValue(obj, trades)
		status := models.ObjectiveInProgress
		if value >= obj.TargetValue {
			status = models.ObjectiveCompleted
		}
		if status == models.ObjectiveCompleted && obj.Status != models.ObjectiveCompleted {
			events = append(events, models.Event{
				Kind:  models.EventObjectiveCompleted,
				ID:    obj.ID,
				Label: obj.Title,
			})
		}
		obj.CurrentValue = value
		obj.Status = status
		out[i] = obj
	}

	return Result{
		Objectives: out,
		Events:     events,
		Changed:    !reflect.DeepEqual(out, objectives),
	}
}

// CurrentValue is the objective's base value plus its deposited funds.
func CurrentValue(obj models.Objective, trades []models.Trade) float64 {
	return utils.Float(utils.Decimal(BaseValue(obj, trades)).Add(utils.Decimal(obj.DepositedFunds)))
}

// BaseValue measures progress by objective type over trades dated on or
// after the objective's start:
//   - Financial: sum of results
//   - Performance: win rate in percent, 0 without trades
//   - Personal: the manual progress, 0 when unset
func BaseValue(obj models.Objective, trades []models.Trade) float64 {
	switch obj.Type {
	case models.ObjectiveFinancial:
		return stats.TotalPnL(Since(trades, obj))
	case models.ObjectivePerformance:
		return stats.WinRate(Since(trades, obj))
	default:
		if obj.ManualProgress == nil {
			return 0
		}
		return *obj.ManualProgress
	}
}

// Since returns the trades dated at or after the objective's start date.
// There is no upper bound: objectives keep counting past their end date.
func Since(trades []models.Trade, obj models.Objective) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if !t.Date.Before(obj.StartDate) {
			out = append(out, t)
		}
	}
	return out
}

// Next returns the in-progress objective closest to completion, the first
// one winning ties. ok is false when nothing is in progress.
func Next(objectives []models.Objective) (next models.Objective, ok bool) {
	for _, obj := range objectives {
		if obj.Status != models.ObjectiveInProgress {
			continue
		}
		if !ok || obj.Progress() > next.Progress() {
			next, ok = obj, true
		}
	}
	return next, ok
}
