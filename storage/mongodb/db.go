package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/abovethehill/churchadmin/core"
)

// Collection names, one per entity.
const (
	attendanceCollection    = "attendance"
	financeCollection       = "finance"
	memberCollection        = "members"
	communicationCollection = "communications"
)

const connectTimeout = 10 * time.Second

// Open connects to the configured MongoDB deployment and pings it.
func Open(conf *core.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging mongodb")
	}
	return client.Database(conf.Database.Name), nil
}

// EnsureIndexes creates the collections' indexes. It is run once by an
// operator (`admin migrate`), never tied to connection lifecycle.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range map[string][]mongo.IndexModel{
		attendanceCollection: {
			{Keys: bson.D{{Key: "serviceDate", Value: -1}}},
		},
		financeCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		memberCollection: {
			{Keys: bson.D{{Key: "membershipStatus", Value: 1}}},
			{Keys: bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}},
		},
		communicationCollection: {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	} {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}
