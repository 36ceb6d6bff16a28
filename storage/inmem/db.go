package inmemdb

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core/attendance"
	"github.com/abovethehill/churchadmin/core/communication"
	"github.com/abovethehill/churchadmin/core/finance"
	"github.com/abovethehill/churchadmin/core/member"
)

// DB is an in-memory document store used by tests and local hacking.
type (
	DB struct {
		attendance     *attendanceTable
		finance        *financeTable
		members        *memberTable
		communications *communicationTable
	}

	attendanceTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*attendance.Attendance
	}

	financeTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*finance.Transaction
	}

	memberTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*member.Member
	}

	communicationTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*communication.Communication
	}
)

func Open() (*DB, error) {
	db := &DB{
		attendance:     &attendanceTable{table: make(map[primitive.ObjectID]*attendance.Attendance)},
		finance:        &financeTable{table: make(map[primitive.ObjectID]*finance.Transaction)},
		members:        &memberTable{table: make(map[primitive.ObjectID]*member.Member)},
		communications: &communicationTable{table: make(map[primitive.ObjectID]*communication.Communication)},
	}
	return db, nil
}
