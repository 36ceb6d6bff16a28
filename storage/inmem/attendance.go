package inmemdb

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
	"github.com/abovethehill/churchadmin/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) QueryAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Attendance, 0, len(repo.db.table))
	for _, att := range repo.db.table {
		if !filter.Date.IsZero() {
			start := core.StartOfDay(filter.Date)
			if att.ServiceDate.Before(start) || !att.ServiceDate.Before(start.AddDate(0, 0, 1)) {
				continue
			}
		}
		records = append(records, *att)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ServiceDate.After(records[j].ServiceDate) })
	return records, nil
}

func (repo *attendanceRepository) GetAttendanceByID(ctx context.Context, id primitive.ObjectID) (attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if att, ok := repo.db.table[id]; ok {
		return *att, nil
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	att.ID = primitive.NewObjectID()
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) UpdateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) DeleteAttendance(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return attendance.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *attendanceRepository) AggregateAttendance(ctx context.Context, from, to time.Time) (attendance.Stats, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var stats attendance.Stats
	for _, att := range repo.db.table {
		if att.ServiceDate.Before(from) {
			continue
		}
		if !to.IsZero() && !att.ServiceDate.Before(to) {
			continue
		}
		stats.TotalAttendance += att.TotalAttendance
		stats.TotalFirstTimers += att.NoOfFirstTimers
		stats.Services++
	}
	if stats.Services > 0 {
		stats.AvgAttendance = float64(stats.TotalAttendance) / float64(stats.Services)
	}
	return stats, nil
}
