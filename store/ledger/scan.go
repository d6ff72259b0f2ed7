package ledger

import "github.com/mintdao/issuer/core"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(scanner scanner, asset *core.Asset) error {
	return scanner.Scan(
		&asset.Handle,
		&asset.Symbol,
		&asset.Name,
		&asset.Decimals,
		&asset.IconURL,
		&asset.ProjectURL,
		&asset.Supply,
		&asset.CreatedAt,
	)
}

func scanEntry(scanner scanner, entry *core.BalanceEntry) error {
	return scanner.Scan(
		&entry.Handle,
		&entry.Account,
		&entry.Amount,
		&entry.Frozen,
		&entry.CreatedAt,
	)
}

var assetColumns = []string{
	"handle",
	"symbol",
	"name",
	"decimals",
	"icon_url",
	"project_url",
	"supply",
	"created_at",
}

var entryColumns = []string{
	"handle",
	"account",
	"amount",
	"frozen",
	"created_at",
}
