package inmemdb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core/communication"
)

type communicationRepository struct {
	db *communicationTable
}

var _ communication.Repository = (*communicationRepository)(nil) // interface compliance check

func NewCommunicationRepository(db *DB) communication.Repository {
	return &communicationRepository{db: db.communications}
}

func (repo *communicationRepository) QueryCommunications(ctx context.Context, commType string) ([]communication.Communication, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	comms := make([]communication.Communication, 0, len(repo.db.table))
	for _, comm := range repo.db.table {
		if commType != "" && comm.Type != commType {
			continue
		}
		comms = append(comms, *comm)
	}
	sort.Slice(comms, func(i, j int) bool { return comms[i].CreatedAt.After(comms[j].CreatedAt) })
	return comms, nil
}

func (repo *communicationRepository) GetCommunicationByID(ctx context.Context, id primitive.ObjectID) (communication.Communication, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if comm, ok := repo.db.table[id]; ok {
		return *comm, nil
	}
	return communication.Communication{}, communication.ErrNotFound
}

func (repo *communicationRepository) CreateCommunication(ctx context.Context, comm communication.Communication) (communication.Communication, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	comm.ID = primitive.NewObjectID()
	repo.db.table[comm.ID] = &comm
	return comm, nil
}

func (repo *communicationRepository) UpdateCommunication(ctx context.Context, comm communication.Communication) (communication.Communication, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[comm.ID]; !ok {
		return communication.Communication{}, communication.ErrNotFound
	}
	repo.db.table[comm.ID] = &comm
	return comm, nil
}

func (repo *communicationRepository) DeleteCommunication(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return communication.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
