package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abovethehill/churchadmin/core/communication"
)

type communicationRepository struct {
	coll *mongo.Collection
}

var _ communication.Repository = (*communicationRepository)(nil)

func NewCommunicationRepository(db *mongo.Database) communication.Repository {
	return &communicationRepository{coll: db.Collection(communicationCollection)}
}

func (repo *communicationRepository) QueryCommunications(ctx context.Context, commType string) ([]communication.Communication, error) {
	query := bson.M{}
	if commType != "" {
		query["type"] = commType
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying communications")
	}
	comms := make([]communication.Communication, 0)
	if err := cur.All(ctx, &comms); err != nil {
		return nil, errors.Wrap(err, "decoding communications")
	}
	return comms, nil
}

func (repo *communicationRepository) GetCommunicationByID(ctx context.Context, id primitive.ObjectID) (communication.Communication, error) {
	var comm communication.Communication
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comm)
	if err == mongo.ErrNoDocuments {
		return communication.Communication{}, communication.ErrNotFound
	}
	if err != nil {
		return communication.Communication{}, errors.Wrap(err, "getting communication")
	}
	return comm, nil
}

func (repo *communicationRepository) CreateCommunication(ctx context.Context, comm communication.Communication) (communication.Communication, error) {
	res, err := repo.coll.InsertOne(ctx, comm)
	if err != nil {
		return communication.Communication{}, errors.Wrap(err, "inserting communication")
	}
	comm.ID = res.InsertedID.(primitive.ObjectID)
	return comm, nil
}

func (repo *communicationRepository) UpdateCommunication(ctx context.Context, comm communication.Communication) (communication.Communication, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": comm.ID}, comm)
	if err != nil {
		return communication.Communication{}, errors.Wrap(err, "updating communication")
	}
	if res.MatchedCount == 0 {
		return communication.Communication{}, communication.ErrNotFound
	}
	return comm, nil
}

func (repo *communicationRepository) DeleteCommunication(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting communication")
	}
	if res.DeletedCount == 0 {
		return communication.ErrNotFound
	}
	return nil
}
