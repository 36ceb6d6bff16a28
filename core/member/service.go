package member

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abovethehill/churchadmin/core"
)

var ErrNotFound = core.NotFoundError("Member not found")

type (
	Repository interface {
		QueryAllMembers(ctx context.Context) ([]Member, error)
		GetMemberByID(ctx context.Context, id primitive.ObjectID) (Member, error)
		CreateMember(ctx context.Context, mbr Member) (Member, error)
		UpdateMember(ctx context.Context, mbr Member) (Member, error)
		DeleteMember(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Member, error) {
	return svc.repo.QueryAllMembers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Member, error) {
	return svc.repo.GetMemberByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nm NewMember) (Member, error) {
	if err := nm.Validate(); err != nil {
		return Member{}, err
	}

	now := time.Now().UTC()
	mbr := Member{
		FirstName:        nm.FirstName,
		LastName:         nm.LastName,
		Phone:            nm.Phone,
		Address:          fillAddress(nm.Address),
		Gender:           nm.Gender,
		MembershipDate:   now,
		MembershipStatus: nm.MembershipStatus,
		Department:       nm.Department,
		FamilyMembers:    nm.FamilyMembers,
		Notes:            nm.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if nm.DateOfBirth != "" {
		dob, _ := core.ParseDate(nm.DateOfBirth)
		mbr.DateOfBirth = &dob
	}
	if nm.MembershipDate != "" {
		mbr.MembershipDate, _ = core.ParseDate(nm.MembershipDate)
	}
	if mbr.Gender == "" {
		mbr.Gender = GenderOther
	}
	if mbr.MembershipStatus == "" {
		mbr.MembershipStatus = StatusActive
	}
	if mbr.Department == nil {
		mbr.Department = []string{}
	}
	if mbr.FamilyMembers == nil {
		mbr.FamilyMembers = []FamilyMember{}
	}
	return svc.repo.CreateMember(ctx, mbr)
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, um UpdateMember) (Member, error) {
	if err := um.Validate(); err != nil {
		return Member{}, err
	}
	mbr, err := svc.repo.GetMemberByID(ctx, id)
	if err != nil {
		return Member{}, err
	}

	if um.FirstName != "" {
		mbr.FirstName = um.FirstName
	}
	if um.LastName != "" {
		mbr.LastName = um.LastName
	}
	if um.Phone != "" {
		mbr.Phone = um.Phone
	}
	if um.Address != nil {
		mbr.Address = fillAddress(*um.Address)
	}
	if um.DateOfBirth != "" {
		dob, _ := core.ParseDate(um.DateOfBirth)
		mbr.DateOfBirth = &dob
	}
	if um.Gender != "" {
		mbr.Gender = um.Gender
	}
	if um.MembershipStatus != "" {
		mbr.MembershipStatus = um.MembershipStatus
	}
	if um.Department != nil {
		mbr.Department = um.Department
	}
	if um.FamilyMembers != nil {
		mbr.FamilyMembers = um.FamilyMembers
	}
	if um.Notes != "" {
		mbr.Notes = um.Notes
	}
	mbr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateMember(ctx, mbr)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteMember(ctx, id)
}

func fillAddress(a Address) Address {
	if a.Street == "" {
		a.Street = addressPlaceholder
	}
	if a.City == "" {
		a.City = addressPlaceholder
	}
	if a.State == "" {
		a.State = addressPlaceholder
	}
	if a.ZipCode == "" {
		a.ZipCode = addressPlaceholder
	}
	return a
}
