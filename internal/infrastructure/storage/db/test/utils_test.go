package db_test

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-custody/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-custody/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

var (
	readOnly  = true
	ctx       = context.Background()
	programID = domain.DefaultEscrowProgramID
)

type repoManager struct {
	Name string
	ports.RepoManager
}

func (r repoManager) read(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RunTransaction(ctx, readOnly, query)
}

func (r repoManager) write(
	query func(context.Context) (interface{}, error),
) (interface{}, error) {
	return r.RunTransaction(ctx, !readOnly, query)
}

func createRepoManagers(t *testing.T) []repoManager {
	badgerRepoManager, err := dbbadger.NewRepoManager(t.TempDir(), nil, 10)
	require.NoError(t, err)
	t.Cleanup(badgerRepoManager.Close)

	inmemoryRepoManager := inmemory.NewRepoManager()
	t.Cleanup(inmemoryRepoManager.Close)

	return []repoManager{
		{Name: "badger", RepoManager: badgerRepoManager},
		{Name: "inmemory", RepoManager: inmemoryRepoManager},
	}
}

func randomAddress() address.Address {
	b := make([]byte, address.Size)
	//nolint
	rand.Read(b)
	addr, _ := address.NewFromBytes(b)
	return addr
}

func randomUint64() uint64 {
	b := make([]byte, 8)
	//nolint
	rand.Read(b)
	var n uint64
	for _, v := range b {
		n = n<<8 | uint64(v)
	}
	return n
}

func makeRandomEscrow(t *testing.T) *domain.Escrow {
	escrow, err := domain.NewEscrow(
		programID, randomAddress(), randomAddress(), randomAddress(),
		randomUint64(), 1+randomUint64()%1000,
	)
	require.NoError(t, err)
	return escrow
}

func makeRandomMarketplace(t *testing.T, name string) *domain.Marketplace {
	marketplace, err := domain.NewMarketplace(
		domain.DefaultMarketplaceProgramID, randomAddress(), name, 100,
	)
	require.NoError(t, err)
	return marketplace
}
