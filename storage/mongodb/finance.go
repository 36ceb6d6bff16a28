package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/finance"
)

type financeRepository struct {
	coll *mongo.Collection
}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository(db *mongo.Database) finance.Repository {
	return &financeRepository{coll: db.Collection(financeCollection)}
}

func (repo *financeRepository) QueryTransactions(ctx context.Context, filter finance.Filter) ([]finance.Transaction, error) {
	query := bson.M{}
	if !filter.Date.IsZero() {
		start := core.StartOfDay(filter.Date)
		query["date"] = bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying transactions")
	}
	txs := make([]finance.Transaction, 0)
	if err := cur.All(ctx, &txs); err != nil {
		return nil, errors.Wrap(err, "decoding transactions")
	}
	return txs, nil
}

func (repo *financeRepository) GetTransactionByID(ctx context.Context, id primitive.ObjectID) (finance.Transaction, error) {
	var tx finance.Transaction
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if err == mongo.ErrNoDocuments {
		return finance.Transaction{}, finance.ErrNotFound
	}
	if err != nil {
		return finance.Transaction{}, errors.Wrap(err, "getting transaction")
	}
	return tx, nil
}

func (repo *financeRepository) CreateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	res, err := repo.coll.InsertOne(ctx, tx)
	if err != nil {
		return finance.Transaction{}, errors.Wrap(err, "inserting transaction")
	}
	tx.ID = res.InsertedID.(primitive.ObjectID)
	return tx, nil
}

func (repo *financeRepository) UpdateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": tx.ID}, tx)
	if err != nil {
		return finance.Transaction{}, errors.Wrap(err, "updating transaction")
	}
	if res.MatchedCount == 0 {
		return finance.Transaction{}, finance.ErrNotFound
	}
	return tx, nil
}

func (repo *financeRepository) DeleteTransaction(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting transaction")
	}
	if res.DeletedCount == 0 {
		return finance.ErrNotFound
	}
	return nil
}

func (repo *financeRepository) AggregateTransactions(ctx context.Context, from, to time.Time) (finance.Stats, error) {
	dateMatch := bson.M{"$gte": from}
	if !to.IsZero() {
		dateMatch["$lt"] = to
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": dateMatch}}},
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"totalOffering":    bson.M{"$sum": "$offeringAmount"},
			"totalTithe":       bson.M{"$sum": "$titheAmount"},
			"totalSeed":        bson.M{"$sum": "$seedAmount"},
			"totalSeedOfFaith": bson.M{"$sum": "$seedOfFaithAmount"},
			"totalAmount": bson.M{"$sum": bson.M{"$add": bson.A{
				"$offeringAmount", "$titheAmount", "$seedAmount", "$seedOfFaithAmount",
			}}},
		}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return finance.Stats{}, errors.Wrap(err, "aggregating transactions")
	}
	var rows []struct {
		TotalOffering    float64 `bson:"totalOffering"`
		TotalTithe       float64 `bson:"totalTithe"`
		TotalSeed        float64 `bson:"totalSeed"`
		TotalSeedOfFaith float64 `bson:"totalSeedOfFaith"`
		TotalAmount      float64 `bson:"totalAmount"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return finance.Stats{}, errors.Wrap(err, "decoding finance stats")
	}
	if len(rows) == 0 {
		return finance.Stats{}, nil // zero-filled, never absent
	}
	return finance.Stats{
		TotalOffering:    rows[0].TotalOffering,
		TotalTithe:       rows[0].TotalTithe,
		TotalSeed:        rows[0].TotalSeed,
		TotalSeedOfFaith: rows[0].TotalSeedOfFaith,
		TotalAmount:      rows[0].TotalAmount,
	}, nil
}
