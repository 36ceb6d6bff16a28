package inmemdb

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/finance"
)

type financeRepository struct {
	db *financeTable
}

var _ finance.Repository = (*financeRepository)(nil) // interface compliance check

func NewFinanceRepository(db *DB) finance.Repository {
	return &financeRepository{db: db.finance}
}

func (repo *financeRepository) QueryTransactions(ctx context.Context, filter finance.Filter) ([]finance.Transaction, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	txs := make([]finance.Transaction, 0, len(repo.db.table))
	for _, tx := range repo.db.table {
		if !filter.Date.IsZero() {
			start := core.StartOfDay(filter.Date)
			if tx.Date.Before(start) || !tx.Date.Before(start.AddDate(0, 0, 1)) {
				continue
			}
		}
		txs = append(txs, *tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	return txs, nil
}

func (repo *financeRepository) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (finance.Transaction, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tx, ok := repo.db.table[id]; ok {
		return *tx, nil
	}
	return finance.Transaction{}, finance.ErrNotFound
}

func (repo *financeRepository) CreateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tx.ID = primitive.NewObjectID()
	repo.db.table[tx.ID] = &tx
	return tx, nil
}

func (repo *financeRepository) UpdateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tx.ID]; !ok {
		return finance.Transaction{}, finance.ErrNotFound
	}
	repo.db.table[tx.ID] = &tx
	return tx, nil
}

func (repo *financeRepository) DeleteTransaction(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return finance.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *financeRepository) AggregateTransactions(ctx context.Context, from, to time.Time) (finance.Stats, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var stats finance.Stats
	for _, tx := range repo.db.table {
		if tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !tx.Date.Before(to) {
			continue
		}
		stats.TotalOffering += tx.OfferingAmount
		stats.TotalTithe += tx.TitheAmount
		stats.TotalSeed += tx.SeedAmount
		stats.TotalSeedOfFaith += tx.SeedOfFaithAmount
		stats.TotalAmount += tx.Total()
	}
	return stats, nil
}
