package bargain

import (
	"github.com/shopspring/decimal"

	"github.com/furnikart/FurniBargain/models"
)

var decimalZero = decimal.Zero

// Snapshot is the derived pricing view of an activity. Every field is
// recomputed from the activity terms and the ledger sum on each read; none
// of them are stored, so they can never drift apart.
type Snapshot struct {
	CutAmount       decimal.Decimal `json:"cut_amount"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	ProgressPercent int             `json:"progress_percent"`
	CanDeal         bool            `json:"can_deal"`
	DealPrice       decimal.Decimal `json:"deal_price"`
}

// TargetSave is the maximum possible reduction: originPrice - targetPrice.
func TargetSave(a *models.BargainActivity) decimal.Decimal {
	return a.OriginPrice.Sub(a.TargetPrice)
}

// CutAmount clamps the raw ledger sum to the target save. The controller
// never lets the sum exceed the save; the clamp is kept so a bad ledger can
// only understate progress, never push the price below the floor.
func CutAmount(a *models.BargainActivity, ledgerSum decimal.Decimal) decimal.Decimal {
	save := TargetSave(a)
	if ledgerSum.GreaterThan(save) {
		return save
	}
	return ledgerSum
}

// ProgressPercent is the cut as a rounded percentage of the target save.
// A zero save means there was never anything to cut, which counts as done.
func ProgressPercent(a *models.BargainActivity, ledgerSum decimal.Decimal) int {
	save := TargetSave(a)
	if save.IsZero() {
		return 100
	}
	cut := CutAmount(a, ledgerSum)
	pct := cut.Mul(decimal.NewFromInt(100)).Div(save)
	return int(pct.Round(0).IntPart())
}

// Derive computes the full snapshot for an activity given its ledger sum.
func Derive(a *models.BargainActivity, ledgerSum decimal.Decimal) Snapshot {
	save := TargetSave(a)
	cut := CutAmount(a, ledgerSum)
	progress := ProgressPercent(a, ledgerSum)

	dealPrice := a.OriginPrice.Sub(cut)
	if !save.IsZero() {
		// Named separately from current price: callers treat "price if I
		// deal now" as its own quantity even though this policy makes the
		// two coincide.
		dealPrice = a.OriginPrice.Sub(save.Mul(cut.Div(save)).Round(2))
	}

	return Snapshot{
		CutAmount:       cut,
		CurrentPrice:    a.OriginPrice.Sub(cut),
		ProgressPercent: progress,
		CanDeal:         progress >= a.DealThresholdPercent,
		DealPrice:       dealPrice,
	}
}

// ClampIncrement trims a proposed cut so the ledger sum never exceeds the
// target save. Returns zero when nothing remains.
func ClampIncrement(a *models.BargainActivity, ledgerSum, proposed decimal.Decimal) decimal.Decimal {
	remaining := TargetSave(a).Sub(CutAmount(a, ledgerSum))
	if proposed.GreaterThan(remaining) {
		return remaining
	}
	return proposed
}
