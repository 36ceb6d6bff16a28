package inmemdb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core/member"
)

type memberRepository struct {
	db *memberTable
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) member.Repository {
	return &memberRepository{db: db.members}
}

func (repo *memberRepository) QueryAllMembers(ctx context.Context) ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := make([]member.Member, 0, len(repo.db.table))
	for _, mbr := range repo.db.table {
		members = append(members, *mbr)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].LastName != members[j].LastName {
			return members[i].LastName < members[j].LastName
		}
		return members[i].FirstName < members[j].FirstName
	})
	return members, nil
}

func (repo *memberRepository) GetMemberByID(ctx context.Context, id primitive.ObjectID) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mbr, ok := repo.db.table[id]; ok {
		return *mbr, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) CreateMember(ctx context.Context, mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	mbr.ID = primitive.NewObjectID()
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) UpdateMember(ctx context.Context, mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[mbr.ID]; !ok {
		return member.Member{}, member.ErrNotFound
	}
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) DeleteMember(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return member.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
