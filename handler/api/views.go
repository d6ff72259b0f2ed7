package api

import (
	"math/big"
	"time"

	"github.com/mintdao/issuer/core"
	"github.com/shopspring/decimal"
)

type assetView struct {
	Handle        string    `json:"handle"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Decimals      uint8     `json:"decimals"`
	IconURL       string    `json:"icon_url,omitempty"`
	ProjectURL    string    `json:"project_url,omitempty"`
	Supply        uint64    `json:"supply"`
	DisplaySupply string    `json:"display_supply"`
	CreatedAt     time.Time `json:"created_at"`
}

func viewAsset(asset *core.Asset) *assetView {
	return &assetView{
		Handle:        asset.Handle,
		Symbol:        asset.Symbol,
		Name:          asset.Name,
		Decimals:      asset.Decimals,
		IconURL:       asset.IconURL,
		ProjectURL:    asset.ProjectURL,
		Supply:        asset.Supply,
		DisplaySupply: displayAmount(asset.Supply, asset.Decimals),
		CreatedAt:     asset.CreatedAt,
	}
}

type entryView struct {
	Account       string `json:"account"`
	Amount        uint64 `json:"amount"`
	DisplayAmount string `json:"display_amount"`
	Frozen        bool   `json:"frozen"`
}

func viewEntry(entry *core.BalanceEntry, decimals uint8) *entryView {
	return &entryView{
		Account:       entry.Account,
		Amount:        entry.Amount,
		DisplayAmount: displayAmount(entry.Amount, decimals),
		Frozen:        entry.Frozen,
	}
}

// displayAmount scales a base-unit amount into display units.
func displayAmount(amount uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals)).String()
}
