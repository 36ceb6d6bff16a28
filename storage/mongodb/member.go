package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abovethehill/churchadmin/core/member"
)

type memberRepository struct {
	coll *mongo.Collection
}

var _ member.Repository = (*memberRepository)(nil)

func NewMemberRepository(db *mongo.Database) member.Repository {
	return &memberRepository{coll: db.Collection(memberCollection)}
}

func (repo *memberRepository) QueryAllMembers(ctx context.Context) ([]member.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying members")
	}
	members := make([]member.Member, 0)
	if err := cur.All(ctx, &members); err != nil {
		return nil, errors.Wrap(err, "decoding members")
	}
	return members, nil
}

func (repo *memberRepository) GetMemberByID(ctx context.Context, id primitive.ObjectID) (member.Member, error) {
	var mbr member.Member
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mbr)
	if err == mongo.ErrNoDocuments {
		return member.Member{}, member.ErrNotFound
	}
	if err != nil {
		return member.Member{}, errors.Wrap(err, "getting member")
	}
	return mbr, nil
}

func (repo *memberRepository) CreateMember(ctx context.Context, mbr member.Member) (member.Member, error) {
	res, err := repo.coll.InsertOne(ctx, mbr)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "inserting member")
	}
	mbr.ID = res.InsertedID.(primitive.ObjectID)
	return mbr, nil
}

func (repo *memberRepository) UpdateMember(ctx context.Context, mbr member.Member) (member.Member, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": mbr.ID}, mbr)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "updating member")
	}
	if res.MatchedCount == 0 {
		return member.Member{}, member.ErrNotFound
	}
	return mbr, nil
}

func (repo *memberRepository) DeleteMember(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting member")
	}
	if res.DeletedCount == 0 {
		return member.ErrNotFound
	}
	return nil
}
