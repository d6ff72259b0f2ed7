package auditor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mintdao/issuer/core"
	"golang.org/x/sync/errgroup"
)

const propertyAuditCheckpoint = "audit_checkpoint"

// Auditor periodically verifies supply conservation: for every asset the
// entry amounts must total exactly the recorded supply (minted minus
// burned). Drift means a broken ledger and is only reported, never repaired.
func New(
	ledger core.LedgerStore,
	properties core.PropertyStore,
	logger *slog.Logger,
) *Auditor {
	return &Auditor{
		ledger:     ledger,
		properties: properties,
		logger:     logger.With("worker", "auditor"),
	}
}

type Auditor struct {
	ledger     core.LedgerStore
	properties core.PropertyStore
	logger     *slog.Logger
}

func (w *Auditor) Run(ctx context.Context) error {
	w.logger.Info("auditor start")

	for {
		dur := time.Minute
		if err := w.run(ctx); err != nil {
			dur = 10 * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
		}
	}
}

func (w *Auditor) run(ctx context.Context) error {
	assets, err := w.ledger.ListAssets(ctx)
	if err != nil {
		w.logger.Error("ledger.ListAssets", "err", err)
		return err
	}

	var g errgroup.Group
	g.SetLimit(4)

	for idx := range assets {
		asset := assets[idx]
		g.Go(func() error {
			return w.audit(ctx, asset)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := w.properties.Set(ctx, propertyAuditCheckpoint, time.Now()); err != nil {
		w.logger.Error("properties.Set", "err", err)
		return err
	}

	return nil
}

func (w *Auditor) audit(ctx context.Context, asset *core.Asset) error {
	sum, err := w.ledger.SumBalances(ctx, asset.Handle)
	if err != nil {
		w.logger.Error("ledger.SumBalances", "asset", asset.Handle, "err", err)
		return err
	}

	if sum != asset.Supply {
		w.logger.Error("supply drift", "asset", asset.Handle, "symbol", asset.Symbol, "supply", asset.Supply, "sum", sum)
		return fmt.Errorf("supply drift on %s: supply %d, balances %d", asset.Symbol, asset.Supply, sum)
	}

	w.logger.Debug("supply conserved", "asset", asset.Handle, "supply", asset.Supply)
	return nil
}
