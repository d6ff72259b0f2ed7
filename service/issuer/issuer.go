package issuer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/mintdao/issuer/core"
	"github.com/zyedidia/generic/cache"
)

type Config struct {
	// Authority is the identity that deploys assets and holds administrative
	// control over every one of them for its lifetime.
	Authority string `valid:"uuid,required"`
}

func New(
	registries core.RegistryStore,
	ledger core.LedgerStore,
	logger *slog.Logger,
	cfg Config,
) core.IssuerService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &service{
		registries: registries,
		ledger:     ledger,
		logger:     logger.With("service", "issuer"),
		authority:  cfg.Authority,
		names:      cache.New[string, string](1024),
	}
}

type service struct {
	registries core.RegistryStore
	ledger     core.LedgerStore
	logger     *slog.Logger
	authority  string

	// display names are immutable once initialized; cache them by handle.
	names *cache.Cache[string, string]
	mux   sync.Mutex
}

func (s *service) Authority() string {
	return s.authority
}

func (s *service) ResolveHandle(symbol string) string {
	return core.DeriveHandle(s.authority, symbol)
}

// authorize is the single gate in front of every privileged operation: load
// the registry for the handle and match the caller against its owner. It is
// evaluated fresh on every call and always before any ledger mutation.
func (s *service) authorize(ctx context.Context, caller, handle string) (*core.AssetRegistry, error) {
	registry, err := s.registries.Find(ctx, handle)
	if err != nil {
		return nil, err
	}

	if registry.Owner != caller {
		return nil, core.ErrPermissionDenied
	}

	return registry, nil
}

func (s *service) Initialize(ctx context.Context, caller string, input core.InitializeInput) (string, error) {
	if caller != s.authority {
		return "", core.ErrPermissionDenied
	}

	handle := core.DeriveHandle(s.authority, input.Symbol)
	logger := s.logger.With("asset", handle, "symbol", input.Symbol)

	now := time.Now()
	registry := core.NewAssetRegistry(handle, input.Symbol, s.authority, now)
	if err := s.registries.Create(ctx, registry); err != nil {
		logger.Error("registries.Create", "err", err)
		return "", err
	}

	asset := &core.Asset{
		Handle:     handle,
		Symbol:     input.Symbol,
		Name:       input.Name,
		Decimals:   input.Decimals,
		IconURL:    input.IconURL,
		ProjectURL: input.ProjectURL,
		CreatedAt:  now,
	}

	if err := s.ledger.CreateAsset(ctx, asset); err != nil {
		logger.Error("ledger.CreateAsset", "err", err)
		return "", err
	}

	logger.Info("asset initialized", "owner", s.authority)
	return handle, nil
}

func (s *service) GetAsset(ctx context.Context, handle string) (*core.Asset, error) {
	return s.ledger.FindAsset(ctx, handle)
}

func (s *service) GetName(ctx context.Context, handle string) (string, error) {
	s.mux.Lock()
	name, ok := s.names.Get(handle)
	s.mux.Unlock()
	if ok {
		return name, nil
	}

	asset, err := s.ledger.FindAsset(ctx, handle)
	if err != nil {
		return "", err
	}

	s.mux.Lock()
	s.names.Put(handle, asset.Name)
	s.mux.Unlock()

	return asset.Name, nil
}

func (s *service) Mint(ctx context.Context, caller, handle, to string, amount uint64) error {
	registry, err := s.authorize(ctx, caller, handle)
	if err != nil {
		return err
	}

	logger := s.logger.With("op", "mint", "asset", handle)

	if err := s.ledger.EnsureEntry(ctx, handle, to); err != nil {
		logger.Error("ledger.EnsureEntry", "err", err)
		return err
	}

	if err := s.ledger.Credit(ctx, registry.MintCapability(), to, amount); err != nil {
		logger.Error("ledger.Credit", "err", err)
		return err
	}

	logger.Info("minted", "to", to, "amount", amount)
	return nil
}

func (s *service) Burn(ctx context.Context, caller, handle, from string, amount uint64) error {
	registry, err := s.authorize(ctx, caller, handle)
	if err != nil {
		return err
	}

	logger := s.logger.With("op", "burn", "asset", handle)

	// no EnsureEntry here: burning from an account that never held the
	// asset is an error, not a lazy creation.
	if err := s.ledger.Debit(ctx, registry.BurnCapability(), from, amount); err != nil {
		logger.Error("ledger.Debit", "err", err)
		return err
	}

	logger.Info("burned", "from", from, "amount", amount)
	return nil
}

func (s *service) ForceTransfer(ctx context.Context, caller, handle, from, to string, amount uint64) error {
	registry, err := s.authorize(ctx, caller, handle)
	if err != nil {
		return err
	}

	logger := s.logger.With("op", "force_transfer", "asset", handle)

	if err := s.ledger.Move(ctx, registry.TransferCapability(), from, to, amount); err != nil {
		logger.Error("ledger.Move", "err", err)
		return err
	}

	logger.Info("force transferred", "from", from, "to", to, "amount", amount)
	return nil
}

func (s *service) FreezeAccount(ctx context.Context, caller, handle, account string) error {
	return s.setFrozen(ctx, caller, handle, account, true)
}

func (s *service) UnfreezeAccount(ctx context.Context, caller, handle, account string) error {
	return s.setFrozen(ctx, caller, handle, account, false)
}

func (s *service) setFrozen(ctx context.Context, caller, handle, account string, frozen bool) error {
	registry, err := s.authorize(ctx, caller, handle)
	if err != nil {
		return err
	}

	logger := s.logger.With("op", "set_frozen", "asset", handle)

	if err := s.ledger.SetFrozen(ctx, registry.TransferCapability(), account, frozen); err != nil {
		logger.Error("ledger.SetFrozen", "err", err)
		return err
	}

	logger.Info("frozen flag set", "account", account, "frozen", frozen)
	return nil
}
