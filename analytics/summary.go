package analytics

import (
	"context"
	"sort"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/holdings"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
)

// HoldingSummary is the per-asset slice of a portfolio summary.
type HoldingSummary struct {
	Asset            asset.Asset
	Amount           money.Quantity
	CurrentValue     money.Money
	TotalInvested    money.Money
	CostBasisPerUnit money.Money
	// SellProceeds supplements the documented formula with the raw
	// proceeds figure GainLoss is derived from, since the spec's
	// currentValue + sellProceeds - totalInvested formula is otherwise
	// opaque without it.
	SellProceeds  money.Money
	GainLoss      money.Money
	ReturnPct     money.Percent
	AllocationPct money.Percent
}

// Summary is the full portfolioSummary(date) result.
type Summary struct {
	TotalInvested  money.Money
	TotalReturned  money.Money
	TotalValue     money.Money
	TotalGainLoss  money.Money
	TotalReturnPct money.Percent
	Holdings       []HoldingSummary
}

// PortfolioSummary computes the full analytics summary as of date d, per
// spec §4.5. Per-asset cost basis follows totalInvested/totalUnitsBought
// verbatim (spec §9 design note): it does not resolve FIFO/average-cost
// tax-lot semantics for positions that were fully sold and re-bought.
func (e *Engine) PortfolioSummary(ctx context.Context, d date.Date) (Summary, error) {
	invested := make(map[asset.Key]money.Money)
	returned := make(map[asset.Key]money.Money)
	unitsBought := make(map[asset.Key]money.Quantity)
	seen := make(map[asset.Key]asset.Asset)

	totalInvested := money.Zero(e.currency)
	totalReturned := money.Zero(e.currency)

	for _, ev := range e.events {
		if ev.Date.After(d) {
			continue
		}
		k := ev.Asset.Identity()
		seen[k] = ev.Asset
		p, err := e.price(ctx, ev.Asset, e.currency, ev.Date)
		if err != nil {
			return Summary{}, err
		}
		value := money.M(p, e.currency).Mul(ev.Amount)

		switch ev.Type {
		case ledger.Buy:
			invested[k] = zeroIfAbsent(invested, k, e.currency).Add(value)
			unitsBought[k] = unitsBought[k].Add(ev.Amount)
			totalInvested = totalInvested.Add(value)
		case ledger.Sell:
			returned[k] = zeroIfAbsent(returned, k, e.currency).Add(value)
			totalReturned = totalReturned.Add(value)
		}
	}

	totalValue, err := e.PortfolioValue(ctx, d)
	if err != nil {
		return Summary{}, err
	}

	totalGainLoss := totalValue.Add(totalReturned).Sub(totalInvested)
	totalReturnPct := money.Percent(0)
	if !totalInvested.IsZero() {
		totalReturnPct = money.Percent(100 * totalGainLoss.AsFloat() / totalInvested.AsFloat())
	}

	h := holdings.At(e.events, d)
	summaries := make([]HoldingSummary, 0, len(h))
	for k, pos := range h {
		p, err := e.price(ctx, pos.Asset, e.currency, d)
		if err != nil {
			return Summary{}, err
		}
		currentValue := money.M(p, e.currency).Mul(pos.Amount)
		assetInvested := zeroIfAbsent(invested, k, e.currency)
		assetReturned := zeroIfAbsent(returned, k, e.currency)

		costBasisPerUnit := money.Zero(e.currency)
		if units, ok := unitsBought[k]; ok && !units.IsZero() {
			costBasisPerUnit = assetInvested.Div(units)
		}

		gainLoss := currentValue.Add(assetReturned).Sub(assetInvested)
		returnPct := money.Percent(0)
		if !assetInvested.IsZero() {
			returnPct = money.Percent(100 * gainLoss.AsFloat() / assetInvested.AsFloat())
		}
		allocationPct := money.Percent(0)
		if !totalValue.IsZero() {
			allocationPct = money.Percent(100 * currentValue.AsFloat() / totalValue.AsFloat())
		}

		summaries = append(summaries, HoldingSummary{
			Asset:            pos.Asset,
			Amount:           pos.Amount,
			CurrentValue:     currentValue,
			TotalInvested:    assetInvested,
			CostBasisPerUnit: costBasisPerUnit,
			SellProceeds:     assetReturned,
			GainLoss:         gainLoss,
			ReturnPct:        returnPct,
			AllocationPct:    allocationPct,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].AllocationPct.Equal(summaries[j].AllocationPct) {
			return summaries[i].AllocationPct > summaries[j].AllocationPct
		}
		return summaries[i].Asset.Symbol < summaries[j].Asset.Symbol
	})

	return Summary{
		TotalInvested:  totalInvested,
		TotalReturned:  totalReturned,
		TotalValue:     totalValue,
		TotalGainLoss:  totalGainLoss,
		TotalReturnPct: totalReturnPct,
		Holdings:       summaries,
	}, nil
}

func zeroIfAbsent(m map[asset.Key]money.Money, k asset.Key, currency string) money.Money {
	if v, ok := m[k]; ok {
		return v
	}
	return money.Zero(currency)
}
