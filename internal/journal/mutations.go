package journal

import (
	"context"
	"fmt"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
	"trading-journal/internal/trading"
	"trading-journal/pkg/utils"
)

// DepositDescriptionPrefix starts the description of the expense recorded
// for a deposit to an objective.
const DepositDescriptionPrefix = "Deposit to objective: "

// AddTrade evaluates and records a closed trade. A zero Date is replaced by
// the journal clock. Winning and losing trades emit a trade event;
// breakeven trades emit none.
func (j *Journal) AddTrade(ctx context.Context, in models.TradeInput) (models.Trade, error) {
	if err := validateTrade(in); err != nil {
		return models.Trade{}, err
	}
	if ev := trading.Evaluate(in); !finite(ev.Result) || !finite(ev.RiskReward) {
		return models.Trade{}, errors.NewValidationError("lot_size", in.LotSize,
			"result is out of range for these prices")
	}

	j.mu.Lock()
	if in.Date.IsZero() {
		in.Date = j.now()
	}
	trade := trading.NewTrade(j.newID(), in)
	j.trades = append([]models.Trade{trade}, j.trades...)
	j.persist(ctx, store.KeyTrades)

	events, changed := j.recompute()
	if changed {
		j.persist(ctx, store.KeyObjectives)
	}
	switch trade.Status {
	case models.StatusWin:
		events = append([]models.Event{tradeEvent(models.EventTradeWon, trade)}, events...)
	case models.StatusLoss:
		events = append([]models.Event{tradeEvent(models.EventTradeLost, trade)}, events...)
	}
	settings := j.settings
	j.mu.Unlock()

	j.logger.Debug().
		Str("event", "trade_added").
		Str("trade_id", trade.ID).
		Str("pair", trade.Pair).
		Float64("result", trade.Result).
		Str("status", string(trade.Status)).
		Msg("Trade recorded")

	j.dispatch(ctx, settings, events)
	return trade, nil
}

func tradeEvent(kind models.EventKind, t models.Trade) models.Event {
	return models.Event{Kind: kind, ID: t.ID, Label: t.Pair, Amount: t.Result}
}

// AddTransaction records a wallet movement. An empty category is recorded
// as Autre. A zero Date is replaced by the journal clock.
func (j *Journal) AddTransaction(ctx context.Context, in models.TransactionInput) (models.Transaction, error) {
	if in.Category == "" {
		in.Category = models.CategoryOther
	}
	if err := validateTransaction(in); err != nil {
		return models.Transaction{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if in.Date.IsZero() {
		in.Date = j.now()
	}
	tx := models.Transaction{
		ID:          j.newID(),
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}
	j.transactions = append([]models.Transaction{tx}, j.transactions...)
	j.persist(ctx, store.KeyTransactions)

	j.logger.Debug().
		Str("event", "transaction_added").
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Float64("amount", tx.Amount).
		Msg("Transaction recorded")
	return tx, nil
}

// AddObjective creates an objective with no progress. A zero StartDate is
// replaced by the journal clock. The new objective is evaluated against the
// existing trades right away; one that starts out completed emits its
// completion event.
func (j *Journal) AddObjective(ctx context.Context, in models.ObjectiveInput) (models.Objective, error) {
	if err := validateObjective(in); err != nil {
		return models.Objective{}, err
	}

	j.mu.Lock()
	if in.StartDate.IsZero() {
		in.StartDate = j.now()
	}
	obj := models.Objective{
		ID:          j.newID(),
		Title:       in.Title,
		Description: in.Description,
		TargetValue: in.TargetValue,
		Type:        in.Type,
		ImageURL:    in.ImageURL,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      models.ObjectiveInProgress,
	}
	j.objectives = append(j.objectives, obj)
	events, _ := j.recompute()
	j.persist(ctx, store.KeyObjectives)

	obj = cloneObjectives(j.objectives[len(j.objectives)-1:])[0]
	settings := j.settings
	j.mu.Unlock()

	j.logger.Debug().
		Str("event", "objective_added").
		Str("objective_id", obj.ID).
		Str("type", string(obj.Type)).
		Float64("target", obj.TargetValue).
		Msg("Objective created")

	j.dispatch(ctx, settings, events)
	return obj, nil
}

// DepositToObjective adds amount to the objective's deposited funds and
// records the matching Expense transaction in the Objectif category.
func (j *Journal) DepositToObjective(ctx context.Context, id string, amount float64) (models.Objective, models.Transaction, error) {
	if !finite(amount) || amount <= 0 {
		return models.Objective{}, models.Transaction{}, invalidAmount("amount", amount)
	}

	j.mu.Lock()
	i := j.objectiveIndex(id)
	if i < 0 {
		j.mu.Unlock()
		return models.Objective{}, models.Transaction{}, fmt.Errorf("%w: %s", errors.ErrObjectiveNotFound, id)
	}

	deposited := utils.Float(utils.Decimal(j.objectives[i].DepositedFunds).Add(utils.Decimal(amount)))

	objs := cloneObjectives(j.objectives)
	objs[i].DepositedFunds = deposited
	j.objectives = objs

	tx := models.Transaction{
		ID:          j.newID(),
		Type:        models.TransactionExpense,
		Amount:      amount,
		Category:    models.CategoryObjective,
		Description: DepositDescriptionPrefix + objs[i].Title,
		Date:        j.now(),
	}
	j.transactions = append([]models.Transaction{tx}, j.transactions...)

	events, _ := j.recompute()
	j.persist(ctx, store.KeyObjectives, store.KeyTransactions)
	obj := cloneObjectives(j.objectives[i : i+1])[0]
	settings := j.settings
	j.mu.Unlock()

	j.logger.Debug().
		Str("event", "objective_deposit").
		Str("objective_id", id).
		Str("transaction_id", tx.ID).
		Float64("amount", amount).
		Msg("Deposit recorded")

	j.dispatch(ctx, settings, events)
	return obj, tx, nil
}

// UpdatePersonalObjective sets the manual progress of an objective. Only
// Personal objectives read it, but any objective accepts the value.
func (j *Journal) UpdatePersonalObjective(ctx context.Context, id string, value float64) (models.Objective, error) {
	if !finite(value) {
		return models.Objective{}, errors.NewValidationError("manual_progress", value, "must be a number")
	}

	j.mu.Lock()
	i := j.objectiveIndex(id)
	if i < 0 {
		j.mu.Unlock()
		return models.Objective{}, fmt.Errorf("%w: %s", errors.ErrObjectiveNotFound, id)
	}

	objs := cloneObjectives(j.objectives)
	v := value
	objs[i].ManualProgress = &v
	j.objectives = objs

	events, _ := j.recompute()
	j.persist(ctx, store.KeyObjectives)
	obj := cloneObjectives(j.objectives[i : i+1])[0]
	settings := j.settings
	j.mu.Unlock()

	j.logger.Debug().
		Str("event", "objective_progress").
		Str("objective_id", id).
		Float64("value", value).
		Msg("Manual progress updated")

	j.dispatch(ctx, settings, events)
	return obj, nil
}

// UpdateSettings replaces the settings record.
func (j *Journal) UpdateSettings(ctx context.Context, s models.Settings) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.settings = s
	j.persist(ctx, store.KeySettings)
	j.logger.Debug().Str("event", "settings_updated").Msg("Settings updated")
}
