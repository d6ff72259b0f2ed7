package ledger

import (
	"context"
	"database/sql"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/mintdao/issuer/core"
	"github.com/mintdao/issuer/store"
	"github.com/pandodao/generic"
	"github.com/tsenart/nap"
)

func New(db *nap.DB) core.LedgerStore {
	return &ledgerStore{db: db}
}

type ledgerStore struct {
	db *nap.DB
}

func (s *ledgerStore) CreateAsset(ctx context.Context, asset *core.Asset) error {
	b := sq.Insert("assets").
		Columns(assetColumns...).
		Values(asset.Handle, asset.Symbol, asset.Name, asset.Decimals, asset.IconURL, asset.ProjectURL, asset.Supply, asset.CreatedAt)

	if _, err := b.RunWith(s.db).ExecContext(ctx); err != nil {
		if store.IsErrDuplicate(err) {
			return core.ErrAlreadyInitialized
		}

		return err
	}

	return nil
}

func (s *ledgerStore) FindAsset(ctx context.Context, handle string) (*core.Asset, error) {
	b := sq.Select(assetColumns...).From("assets").Where(sq.Eq{"handle": handle})
	row := b.RunWith(s.db).QueryRowContext(ctx)

	var asset core.Asset
	if err := scanAsset(row, &asset); err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrNotInitialized
		}

		return nil, err
	}

	return &asset, nil
}

func (s *ledgerStore) ListAssets(ctx context.Context) ([]*core.Asset, error) {
	b := sq.Select(assetColumns...).From("assets").OrderBy("created_at")
	rows, err := b.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var assets []*core.Asset
	for rows.Next() {
		var asset core.Asset
		if err := scanAsset(rows, &asset); err != nil {
			return nil, err
		}

		assets = append(assets, &asset)
	}

	return assets, rows.Err()
}

func ensureEntry(ctx context.Context, r sq.BaseRunner, handle, account string) error {
	b := sq.Insert("entries").
		Options("IGNORE").
		Columns("handle", "account").
		Values(handle, account)

	_, err := b.RunWith(r).ExecContext(ctx)
	return err
}

func (s *ledgerStore) EnsureEntry(ctx context.Context, handle, account string) error {
	return ensureEntry(ctx, s.db, handle, account)
}

func findEntry(ctx context.Context, r sq.BaseRunner, handle, account string) (*core.BalanceEntry, error) {
	b := sq.Select(entryColumns...).
		From("entries").
		Where("`handle` = ? AND `account` = ?", handle, account)
	row := b.RunWith(r).QueryRowContext(ctx)

	var entry core.BalanceEntry
	if err := scanEntry(row, &entry); err != nil {
		if store.IsErrNotFound(err) {
			// never touched: reads as the default entry.
			return &core.BalanceEntry{Handle: handle, Account: account}, nil
		}

		return nil, err
	}

	return &entry, nil
}

func (s *ledgerStore) FindEntry(ctx context.Context, handle, account string) (*core.BalanceEntry, error) {
	return findEntry(ctx, s.db, handle, account)
}

func (s *ledgerStore) SumBalances(ctx context.Context, handle string) (uint64, error) {
	b := sq.Select("COALESCE(SUM(`amount`), 0)").
		From("entries").
		Where(sq.Eq{"handle": handle})
	stmt, args := b.MustSql()
	row := s.db.QueryRowContext(ctx, stmt, args...)

	var sum uint64
	if err := row.Scan(&sum); err != nil {
		return 0, err
	}

	return sum, nil
}

func (s *ledgerStore) Credit(ctx context.Context, cap core.MintCapability, account string, amount uint64) error {
	handle := cap.Handle()
	if handle == "" {
		return core.ErrBadCapability
	}

	if amount == 0 {
		return nil
	}

	tx := generic.Must(s.db.Begin())
	defer tx.Rollback()

	if err := growSupply(ctx, tx, handle, amount); err != nil {
		return err
	}

	if err := creditEntry(ctx, tx, handle, account, amount); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *ledgerStore) Debit(ctx context.Context, cap core.BurnCapability, account string, amount uint64) error {
	handle := cap.Handle()
	if handle == "" {
		return core.ErrBadCapability
	}

	if amount == 0 {
		return nil
	}

	tx := generic.Must(s.db.Begin())
	defer tx.Rollback()

	if err := debitEntry(ctx, tx, handle, account, amount, false); err != nil {
		return err
	}

	if err := shrinkSupply(ctx, tx, handle, amount); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *ledgerStore) Move(ctx context.Context, cap core.TransferCapability, from, to string, amount uint64) error {
	handle := cap.Handle()
	if handle == "" {
		return core.ErrBadCapability
	}

	if amount == 0 {
		return nil
	}

	tx := generic.Must(s.db.Begin())
	defer tx.Rollback()

	if err := ensureEntry(ctx, tx, handle, to); err != nil {
		return err
	}

	// frozen flags are deliberately ignored on both ends.
	if err := debitEntry(ctx, tx, handle, from, amount, false); err != nil {
		return err
	}

	if err := creditEntry(ctx, tx, handle, to, amount); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *ledgerStore) SetFrozen(ctx context.Context, cap core.TransferCapability, account string, frozen bool) error {
	handle := cap.Handle()
	if handle == "" {
		return core.ErrBadCapability
	}

	b := sq.Insert("entries").
		Columns("handle", "account", "amount", "frozen").
		Values(handle, account, 0, frozen).
		Suffix("ON DUPLICATE KEY UPDATE `frozen` = VALUES(`frozen`)")

	_, err := b.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *ledgerStore) Transfer(ctx context.Context, handle, from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}

	tx := generic.Must(s.db.Begin())
	defer tx.Rollback()

	if err := ensureEntry(ctx, tx, handle, to); err != nil {
		return err
	}

	if err := debitEntry(ctx, tx, handle, from, amount, true); err != nil {
		return err
	}

	result, err := creditUnfrozenQuery(handle, to, amount).RunWith(tx).ExecContext(ctx)
	if err != nil {
		return err
	}

	if n := generic.Must(result.RowsAffected()); n == 0 {
		return core.ErrAccountFrozen
	}

	return tx.Commit()
}

// u64 renders an amount as a decimal SQL literal. Amounts never travel as
// bind parameters: the driver rejects uint64 args with the high bit set,
// and amounts span the full unsigned range.
func u64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func growSupplyQuery(handle string, amount uint64) sq.UpdateBuilder {
	// the predicate guards against wrap-around, so an oversized mint
	// leaves the row unchanged.
	return sq.Update("assets").
		Set("supply", sq.Expr("`supply` + "+u64(amount))).
		Where("`handle` = ? AND `supply` <= 18446744073709551615 - "+u64(amount), handle)
}

func growSupply(ctx context.Context, tx *sql.Tx, handle string, amount uint64) error {
	result, err := growSupplyQuery(handle, amount).RunWith(tx).ExecContext(ctx)
	if err != nil {
		return err
	}

	if n := generic.Must(result.RowsAffected()); n == 0 {
		if _, err := findSupply(ctx, tx, handle); err != nil {
			return err
		}

		return core.ErrSupplyOverflow
	}

	return nil
}

func shrinkSupplyQuery(handle string, amount uint64) sq.UpdateBuilder {
	return sq.Update("assets").
		Set("supply", sq.Expr("`supply` - "+u64(amount))).
		Where("`handle` = ? AND `supply` >= "+u64(amount), handle)
}

func shrinkSupply(ctx context.Context, tx *sql.Tx, handle string, amount uint64) error {
	result, err := shrinkSupplyQuery(handle, amount).RunWith(tx).ExecContext(ctx)
	if err != nil {
		return err
	}

	// supply conservation makes a miss here an asset that was never backed.
	if n := generic.Must(result.RowsAffected()); n == 0 {
		return core.ErrNotInitialized
	}

	return nil
}

func findSupply(ctx context.Context, tx *sql.Tx, handle string) (uint64, error) {
	b := sq.Select("supply").From("assets").Where(sq.Eq{"handle": handle})
	row := b.RunWith(tx).QueryRowContext(ctx)

	var supply uint64
	if err := row.Scan(&supply); err != nil {
		if store.IsErrNotFound(err) {
			return 0, core.ErrNotInitialized
		}

		return 0, err
	}

	return supply, nil
}

func creditEntryQuery(handle, account string, amount uint64) sq.InsertBuilder {
	return sq.Insert("entries").
		Columns("handle", "account", "amount").
		Values(handle, account, sq.Expr(u64(amount))).
		Suffix("ON DUPLICATE KEY UPDATE `amount` = `amount` + VALUES(`amount`)")
}

func creditEntry(ctx context.Context, tx *sql.Tx, handle, account string, amount uint64) error {
	_, err := creditEntryQuery(handle, account, amount).RunWith(tx).ExecContext(ctx)
	return err
}

// creditUnfrozenQuery is the receiving side of an ordinary transfer: the
// credit only lands while the destination is not frozen.
func creditUnfrozenQuery(handle, account string, amount uint64) sq.UpdateBuilder {
	return sq.Update("entries").
		Set("amount", sq.Expr("`amount` + "+u64(amount))).
		Where("`handle` = ? AND `account` = ? AND `frozen` = 0", handle, account)
}

func debitEntryQuery(handle, account string, amount uint64, rejectFrozen bool) sq.UpdateBuilder {
	pred := "`handle` = ? AND `account` = ? AND `amount` >= " + u64(amount)
	if rejectFrozen {
		pred += " AND `frozen` = 0"
	}

	return sq.Update("entries").
		Set("amount", sq.Expr("`amount` - "+u64(amount))).
		Where(pred, handle, account)
}

// debitEntry withdraws amount from one entry. The amount predicate is what
// keeps balances non-negative; a missed update is diagnosed into the error
// taxonomy afterwards.
func debitEntry(ctx context.Context, tx *sql.Tx, handle, account string, amount uint64, rejectFrozen bool) error {
	result, err := debitEntryQuery(handle, account, amount, rejectFrozen).RunWith(tx).ExecContext(ctx)
	if err != nil {
		return err
	}

	if n := generic.Must(result.RowsAffected()); n > 0 {
		return nil
	}

	entry, err := findEntry(ctx, tx, handle, account)
	if err != nil {
		return err
	}

	switch {
	case entry.CreatedAt.IsZero():
		return core.ErrNoSuchAccount
	case rejectFrozen && entry.Frozen:
		return core.ErrAccountFrozen
	default:
		return core.ErrInsufficientBalance
	}
}
