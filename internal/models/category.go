package models

import "strings"

// Category tags a wallet transaction. The wire values are the labels used by
// existing backups and must not change.
type Category string

const (
	// Income
	CategorySalary       Category = "Salaire"
	CategoryFreelance    Category = "Freelance"
	CategoryDividends    Category = "Dividendes"
	CategorySale         Category = "Vente"
	CategoryGiftReceived Category = "Cadeau Recu"

	// Expense
	CategoryFood          Category = "Alimentation"
	CategoryTransport     Category = "Transport"
	CategorySubscription  Category = "Abonnement"
	CategoryShopping      Category = "Shopping"
	CategoryLeisure       Category = "Loisirs"
	CategoryEntertainment Category = "Divertissement"
	CategoryBills         Category = "Factures"
	CategoryGiftGiven     Category = "Cadeau Offert"
	CategoryHealth        Category = "Santé"
	CategorySport         Category = "Sport"
	CategoryTravel        Category = "Voyages"
	CategoryEquipment     Category = "Matériel"
	CategoryEducation     Category = "Formation"

	// Shared
	CategoryOther           Category = "Autre"
	CategoryWithdrawnProfit Category = "Profit Retiré"
	CategoryDeposit         Category = "Dépôt"
	CategoryObjective       Category = "Objectif"
)

// CategoryGroup says which transaction kinds may use a category.
type CategoryGroup int

const (
	GroupIncome CategoryGroup = iota
	GroupExpense
	GroupShared
	GroupSystem
)

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	Category Category
	Label    string
	Icon     string
	Color    string
	Group    CategoryGroup
}

var categoryCatalogue = []CategoryInfo{
	{CategorySalary, "Salary", "payments", "emerald", GroupIncome},
	{CategoryFreelance, "Freelance", "work", "blue", GroupIncome},
	{CategoryDividends, "Dividends", "savings", "amber", GroupIncome},
	{CategorySale, "Sale", "sell", "purple", GroupIncome},
	{CategoryGiftReceived, "Gift received", "card_giftcard", "pink", GroupIncome},
	{CategoryFood, "Food", "lunch_dining", "orange", GroupExpense},
	{CategoryTransport, "Transport", "commute", "sky", GroupExpense},
	{CategorySubscription, "Subscription", "box_edit", "indigo", GroupExpense},
	{CategoryShopping, "Shopping", "shopping_bag", "rose", GroupExpense},
	{CategoryLeisure, "Leisure", "sports_esports", "emerald", GroupExpense},
	{CategoryEntertainment, "Entertainment", "theater_comedy", "violet", GroupExpense},
	{CategoryBills, "Bills", "receipt_long", "slate", GroupExpense},
	{CategoryGiftGiven, "Gift given", "redeem", "pink", GroupExpense},
	{CategoryHealth, "Health", "medical_services", "red", GroupExpense},
	{CategorySport, "Sport", "fitness_center", "lime", GroupExpense},
	{CategoryTravel, "Travel", "flight", "cyan", GroupExpense},
	{CategoryEquipment, "Equipment", "inventory_2", "slate", GroupExpense},
	{CategoryEducation, "Education", "auto_stories", "amber", GroupExpense},
	{CategoryOther, "Other", "category", "slate", GroupShared},
	{CategoryWithdrawnProfit, "Withdrawn profit", "account_balance_wallet", "primary", GroupSystem},
	{CategoryDeposit, "Deposit", "add_card", "primary", GroupSystem},
	{CategoryObjective, "Objective", "track_changes", "primary", GroupSystem},
}

var categoryIndex = func() map[Category]CategoryInfo {
	idx := make(map[Category]CategoryInfo, len(categoryCatalogue))
	for _, info := range categoryCatalogue {
		if _, dup := idx[info.Category]; dup {
			panic("models: duplicate category " + string(info.Category))
		}
		idx[info.Category] = info
	}
	return idx
}()

// Categories returns the full catalogue in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryCatalogue))
	copy(out, categoryCatalogue)
	return out
}

// Info returns the metadata of c. ok is false for values outside the catalogue.
func (c Category) Info() (CategoryInfo, bool) {
	info, ok := categoryIndex[c]
	return info, ok
}

// Valid reports whether c belongs to the catalogue.
func (c Category) Valid() bool {
	_, ok := categoryIndex[c]
	return ok
}

// AllowedFor reports whether c may tag a transaction of kind t. System
// categories are accepted for both kinds.
func (c Category) AllowedFor(t TransactionType) bool {
	info, ok := categoryIndex[c]
	if !ok {
		return false
	}
	switch info.Group {
	case GroupShared, GroupSystem:
		return true
	case GroupIncome:
		return t == TransactionIncome
	case GroupExpense:
		return t == TransactionExpense
	}
	return false
}

// CategoriesFor returns the user-selectable categories for kind t.
func CategoriesFor(t TransactionType) []Category {
	var out []Category
	for _, info := range categoryCatalogue {
		if info.Group == GroupSystem {
			continue
		}
		if info.Category.AllowedFor(t) {
			out = append(out, info.Category)
		}
	}
	return out
}

// ParseCategory resolves either a wire value or an English label.
func ParseCategory(s string) (Category, bool) {
	if c := Category(s); c.Valid() {
		return c, true
	}
	for _, info := range categoryCatalogue {
		if strings.EqualFold(info.Label, s) {
			return info.Category, true
		}
	}
	return "", false
}
