package registry

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mintdao/issuer/core"
	"github.com/mintdao/issuer/store"
	"github.com/tsenart/nap"
)

func New(db *nap.DB) core.RegistryStore {
	registries, err := lru.New[string, *core.AssetRegistry](256)
	if err != nil {
		panic(err)
	}

	return &registryStore{
		db:         db,
		registries: registries,
	}
}

type registryStore struct {
	db         *nap.DB
	registries *lru.Cache[string, *core.AssetRegistry]
}

var columns = []string{"handle", "symbol", "owner", "created_at"}

func (s *registryStore) Create(ctx context.Context, registry *core.AssetRegistry) error {
	b := sq.Insert("registries").
		Columns(columns...).
		Values(registry.Handle, registry.Symbol, registry.Owner, registry.CreatedAt)

	if _, err := b.RunWith(s.db).ExecContext(ctx); err != nil {
		if store.IsErrDuplicate(err) {
			return core.ErrAlreadyInitialized
		}

		return err
	}

	return nil
}

func (s *registryStore) Find(ctx context.Context, handle string) (*core.AssetRegistry, error) {
	if r, ok := s.registries.Get(handle); ok {
		return r, nil
	}

	r, err := s.find(ctx, handle)
	if err != nil {
		return nil, err
	}

	// registries are immutable after creation, so caching is safe forever.
	s.registries.Add(handle, r)
	return r, nil
}

func (s *registryStore) find(ctx context.Context, handle string) (*core.AssetRegistry, error) {
	b := sq.Select(columns...).From("registries").Where(sq.Eq{"handle": handle})
	row := b.RunWith(s.db).QueryRowContext(ctx)

	r, err := scanRegistry(row)
	if err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrNotInitialized
		}

		return nil, err
	}

	return r, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistry(scanner scanner) (*core.AssetRegistry, error) {
	var (
		handle, symbol, owner string
		createdAt             time.Time
	)

	if err := scanner.Scan(&handle, &symbol, &owner, &createdAt); err != nil {
		return nil, err
	}

	// capabilities are reissued through the constructor; they never hit disk.
	return core.NewAssetRegistry(handle, symbol, owner, createdAt), nil
}
