// Package cost implements the cost engine: totals, per-category
// breakdown, budget status, and cheaper-alternative suggestions, all
// derived from the current build state. Everything here is a pure
// computation over its inputs.
package cost

import (
	"sort"

	"github.com/kartwerks/kartpick/internal/catalog"
	"github.com/kartwerks/kartpick/internal/model"
)

// Budget status thresholds, as percentage of budget.
const (
	approachingThreshold = 80
	overThreshold        = 100
)

// BudgetState classifies total cost against the user's budget.
type BudgetState string

// Budget state constants.
const (
	BudgetUnder       BudgetState = "under"
	BudgetApproaching BudgetState = "approaching"
	BudgetOver        BudgetState = "over"
)

// BreakdownPart is one part's contribution inside a breakdown entry.
type BreakdownPart struct {
	Name     string
	Cost     float64
	HasPrice bool
}

// BreakdownItem is one category's contribution to the total.
type BreakdownItem struct {
	Category   model.PartCategory
	Label      string
	Parts      []BreakdownPart
	Cost       float64
	Percentage float64
}

// BudgetStatus reports where total cost sits relative to the budget.
// Remaining and Overage are mutually exclusive: one of them is always
// zero.
type BudgetStatus struct {
	Status     BudgetState
	Percentage float64
	Remaining  float64
	Overage    float64
}

// ExpensivePart flags a selected part as a savings candidate, with up to
// two cheaper alternatives from the catalog.
type ExpensivePart struct {
	Part         model.Part
	Category     model.PartCategory
	Alternatives []model.Part
}

// Summary is the full cost engine output.
type Summary struct {
	BudgetStatus     *BudgetStatus
	Breakdown        []BreakdownItem
	ExpensiveParts   []ExpensivePart
	TotalCost        float64
	HasUnpricedItems bool
}

// Options configures a cost computation. Budget enables budget status and
// savings suggestions when positive; Catalog enables alternative lookups.
type Options struct {
	Budget  *float64
	Catalog *catalog.Snapshot
}

// Compute derives the cost summary for the given build state.
func Compute(power model.PowerSource, selection *model.Selection, opts Options) Summary {
	if selection == nil {
		selection = model.NewSelection()
	}

	summary := Summary{}
	summary.TotalCost, summary.HasUnpricedItems = totalPrice(power, selection)
	summary.Breakdown = breakdown(power, selection, summary.TotalCost)

	var budget float64
	if opts.Budget != nil && *opts.Budget > 0 {
		budget = *opts.Budget
		summary.BudgetStatus = budgetStatus(summary.TotalCost, budget)
	}
	summary.ExpensiveParts = expensiveParts(selection, budget, summary.TotalCost, opts.Catalog)

	return summary
}

func totalPrice(power model.PowerSource, selection *model.Selection) (total float64, hasUnpriced bool) {
	if !power.IsNone() {
		price, ok := power.Price()
		if ok {
			total += price
		} else {
			hasUnpriced = true
		}
	}
	for _, part := range selection.All() {
		if part.Price != nil {
			total += *part.Price
		} else {
			hasUnpriced = true
		}
	}
	return total, hasUnpriced
}

// breakdown builds one entry per category with at least one selected part
// and a nonzero summed price, sorted descending by cost. Ties keep
// category declaration order, with the power source entry first.
func breakdown(power model.PowerSource, selection *model.Selection, totalCost float64) []BreakdownItem {
	var items []BreakdownItem

	if price, ok := power.Price(); ok && price > 0 {
		category := model.CategoryEngineSlot
		label := "Engine"
		if _, isMotor := power.Motor(); isMotor {
			category = model.CategoryMotorSlot
			label = "Motor"
		}
		items = append(items, BreakdownItem{
			Category: category,
			Label:    label,
			Cost:     price,
			Parts:    []BreakdownPart{{Name: power.Label(), Cost: price, HasPrice: true}},
		})
	}

	// Category declaration order, so the later stable sort breaks cost
	// ties deterministically.
	for _, info := range model.CategoryTable {
		parts := selection.Parts(info.Category)
		if len(parts) == 0 {
			continue
		}
		item := BreakdownItem{Category: info.Category, Label: info.Label}
		for _, part := range parts {
			bp := BreakdownPart{Name: part.Name}
			if part.Price != nil {
				bp.Cost = *part.Price
				bp.HasPrice = true
				item.Cost += *part.Price
			}
			item.Parts = append(item.Parts, bp)
		}
		if item.Cost > 0 {
			items = append(items, item)
		}
	}

	for i := range items {
		if totalCost > 0 {
			items[i].Percentage = items[i].Cost / totalCost * 100
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Cost > items[j].Cost
	})
	return items
}

func budgetStatus(totalCost, budget float64) *BudgetStatus {
	percentage := totalCost / budget * 100

	status := BudgetUnder
	switch {
	case percentage >= overThreshold:
		status = BudgetOver
	case percentage >= approachingThreshold:
		status = BudgetApproaching
	}

	bs := &BudgetStatus{
		Status:     status,
		Percentage: percentage,
	}
	if totalCost <= budget {
		bs.Remaining = budget - totalCost
	} else {
		bs.Overage = totalCost - budget
	}
	return bs
}

// expensiveParts flags savings candidates: any part priced above an even
// per-category share of the budget, plus the single most expensive part
// when the build is over budget. Alternatives come from the catalog,
// same category, cheaper, capped at two.
func expensiveParts(selection *model.Selection, budget, totalCost float64, snap *catalog.Snapshot) []ExpensivePart {
	if budget <= 0 {
		return nil
	}

	type priced struct {
		part     model.Part
		category model.PartCategory
	}
	var candidates []priced
	pricedCategories := 0
	for _, category := range selection.Categories() {
		hasPriced := false
		for _, part := range selection.Parts(category) {
			if part.Price != nil && *part.Price > 0 {
				hasPriced = true
				candidates = append(candidates, priced{part: part, category: category})
			}
		}
		if hasPriced {
			pricedCategories++
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Most expensive first; stable to preserve selection order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return *candidates[i].part.Price > *candidates[j].part.Price
	})

	share := budget / float64(pricedCategories)
	overBudget := totalCost > budget

	var out []ExpensivePart
	for i, c := range candidates {
		flagged := *c.part.Price > share || (overBudget && i == 0)
		if !flagged {
			continue
		}
		entry := ExpensivePart{Part: c.part, Category: c.category}
		if snap != nil {
			entry.Alternatives = snap.CheaperAlternatives(c.part, 2)
		}
		out = append(out, entry)
	}
	return out
}
