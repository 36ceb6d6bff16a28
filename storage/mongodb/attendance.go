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
	"github.com/abovethehill/churchadmin/core/attendance"
)

type attendanceRepository struct {
	coll *mongo.Collection
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *mongo.Database) attendance.Repository {
	return &attendanceRepository{coll: db.Collection(attendanceCollection)}
}

func (repo *attendanceRepository) QueryAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	query := bson.M{}
	if !filter.Date.IsZero() {
		start := core.StartOfDay(filter.Date)
		query["serviceDate"] = bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "serviceDate", Value: -1}})
	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	records := make([]attendance.Attendance, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "decoding attendance")
	}
	return records, nil
}

func (repo *attendanceRepository) GetAttendanceByID(ctx context.Context, id primitive.ObjectID) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&att)
	if err == mongo.ErrNoDocuments {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "getting attendance")
	}
	return att, nil
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	res, err := repo.coll.InsertOne(ctx, att)
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "inserting attendance")
	}
	att.ID = res.InsertedID.(primitive.ObjectID)
	return att, nil
}

func (repo *attendanceRepository) UpdateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": att.ID}, att)
	if err != nil {
		return attendance.Attendance{}, errors.Wrap(err, "updating attendance")
	}
	if res.MatchedCount == 0 {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	return att, nil
}

func (repo *attendanceRepository) DeleteAttendance(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	if res.DeletedCount == 0 {
		return attendance.ErrNotFound
	}
	return nil
}

func (repo *attendanceRepository) AggregateAttendance(ctx context.Context, from, to time.Time) (attendance.Stats, error) {
	dateMatch := bson.M{"$gte": from}
	if !to.IsZero() {
		dateMatch["$lt"] = to
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"serviceDate": dateMatch}}},
		{{Key: "$group", Value: bson.M{
			"_id":              nil,
			"totalAttendance":  bson.M{"$sum": "$totalAttendance"},
			"totalFirstTimers": bson.M{"$sum": "$noOfFirstTimers"},
			"avgAttendance":    bson.M{"$avg": "$totalAttendance"},
			"services":         bson.M{"$sum": 1},
		}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return attendance.Stats{}, errors.Wrap(err, "aggregating attendance")
	}
	var rows []struct {
		TotalAttendance  int     `bson:"totalAttendance"`
		TotalFirstTimers int     `bson:"totalFirstTimers"`
		AvgAttendance    float64 `bson:"avgAttendance"`
		Services         int     `bson:"services"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return attendance.Stats{}, errors.Wrap(err, "decoding attendance stats")
	}
	if len(rows) == 0 {
		return attendance.Stats{}, nil // zero-filled, never absent
	}
	return attendance.Stats{
		TotalAttendance:  rows[0].TotalAttendance,
		TotalFirstTimers: rows[0].TotalFirstTimers,
		AvgAttendance:    rows[0].AvgAttendance,
		Services:         rows[0].Services,
	}, nil
}
