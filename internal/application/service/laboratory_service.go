package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/pkg/apperror"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// LaboratoryService handles laboratory-related operations
type LaboratoryService struct {
	laboratoryRepo repository.LaboratoryRepository
}

// NewLaboratoryService creates a new laboratory service
func NewLaboratoryService(laboratoryRepo repository.LaboratoryRepository) *LaboratoryService {
	return &LaboratoryService{laboratoryRepo: laboratoryRepo}
}

// CreateLaboratoryInput represents input for creating a laboratory
type CreateLaboratoryInput struct {
	Name     string
	Slug     string
	OwnerID  uuid.UUID
	Settings *entity.LaboratorySettings
}

// CreateLaboratory creates a new laboratory
func (s *LaboratoryService) CreateLaboratory(ctx context.Context, input *CreateLaboratoryInput) (*entity.Laboratory, error) {
	// Check if slug already exists
	existing, err := s.laboratoryRepo.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Laboratory slug already exists")
	}

	settings := entity.DefaultLaboratorySettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	laboratory := &entity.Laboratory{
		Name:     input.Name,
		Slug:     input.Slug,
		OwnerID:  input.OwnerID,
		Settings: settings,
	}

	if err := s.laboratoryRepo.Create(ctx, laboratory); err != nil {
		return nil, err
	}

	// Add owner as member
	membership := &entity.LaboratoryMembership{
		LaboratoryID: laboratory.ID,
		UserID:       input.OwnerID,
		Role:         "owner",
	}
	_ = s.laboratoryRepo.AddMember(ctx, membership)

	return laboratory, nil
}

// GetLaboratory retrieves a laboratory by ID
func (s *LaboratoryService) GetLaboratory(ctx context.Context, id uuid.UUID) (*entity.Laboratory, error) {
	laboratory, err := s.laboratoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if laboratory == nil {
		return nil, apperror.ErrNotFound
	}
	return laboratory, nil
}

// GetUserLaboratories retrieves all laboratories a user belongs to
func (s *LaboratoryService) GetUserLaboratories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Laboratory], error) {
	laboratories, total, err := s.laboratoryRepo.GetUserLaboratories(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(laboratories, pag), nil
}

// UpdateLaboratoryInput represents input for updating a laboratory
type UpdateLaboratoryInput struct {
	ID       uuid.UUID
	Name     string
	Settings *entity.LaboratorySettings
}

// UpdateLaboratory updates a laboratory
func (s *LaboratoryService) UpdateLaboratory(ctx context.Context, input *UpdateLaboratoryInput) (*entity.Laboratory, error) {
	laboratory, err := s.laboratoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if laboratory == nil {
		return nil, apperror.ErrNotFound
	}

	if input.Name != "" {
		laboratory.Name = input.Name
	}
	if input.Settings != nil {
		laboratory.Settings = *input.Settings
	}

	if err := s.laboratoryRepo.Update(ctx, laboratory); err != nil {
		return nil, err
	}

	return laboratory, nil
}

// InviteMemberInput represents input for inviting a user to a laboratory
type InviteMemberInput struct {
	LaboratoryID uuid.UUID
	UserID       uuid.UUID
	Role         string
}

// InviteMember adds a user to a laboratory
func (s *LaboratoryService) InviteMember(ctx context.Context, input *InviteMemberInput) error {
	// Check if user is already a member
	isMember, _ := s.laboratoryRepo.IsMember(ctx, input.LaboratoryID, input.UserID)
	if isMember {
		return apperror.NewConflictError("User is already a member of this laboratory")
	}

	membership := &entity.LaboratoryMembership{
		LaboratoryID: input.LaboratoryID,
		UserID:       input.UserID,
		Role:         input.Role,
	}

	return s.laboratoryRepo.AddMember(ctx, membership)
}

// RemoveMember removes a user from a laboratory
func (s *LaboratoryService) RemoveMember(ctx context.Context, laboratoryID, userID uuid.UUID) error {
	return s.laboratoryRepo.RemoveMember(ctx, laboratoryID, userID)
}

// GetLaboratoryMembers retrieves all members of a laboratory
func (s *LaboratoryService) GetLaboratoryMembers(ctx context.Context, laboratoryID uuid.UUID) ([]entity.LaboratoryMembership, error) {
	members, err := s.laboratoryRepo.GetMembers(ctx, laboratoryID)
	if err != nil {
		return nil, err
	}

	// Populate user details for JSON response
	for i := range members {
		members[i].PopulateUserDetails()
	}

	return members, nil
}

// UpdateMemberRole updates a member's role in a laboratory
func (s *LaboratoryService) UpdateMemberRole(ctx context.Context, laboratoryID, userID uuid.UUID, role string) error {
	return s.laboratoryRepo.UpdateMemberRole(ctx, laboratoryID, userID, role)
}

// ListAllLaboratories retrieves all laboratories (for super admin use)
func (s *LaboratoryService) ListAllLaboratories(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Laboratory], error) {
	laboratories, total, err := s.laboratoryRepo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(laboratories, pag), nil
}

// AssignUserToLaboratoryInput represents input for assigning a user to a laboratory
type AssignUserToLaboratoryInput struct {
	LaboratoryID uuid.UUID
	UserID       uuid.UUID
	Role         string
}

// AssignUserToLaboratory assigns a user to a laboratory (for super admin use)
func (s *LaboratoryService) AssignUserToLaboratory(ctx context.Context, input *AssignUserToLaboratoryInput) error {
	// Check if laboratory exists
	laboratory, err := s.laboratoryRepo.GetByID(ctx, input.LaboratoryID)
	if err != nil {
		return err
	}
	if laboratory == nil {
		return apperror.ErrNotFound
	}

	// Check if user is already a member
	isMember, _ := s.laboratoryRepo.IsMember(ctx, input.LaboratoryID, input.UserID)
	if isMember {
		return apperror.NewConflictError("User is already a member of this laboratory")
	}

	// Default role to member if not specified
	role := input.Role
	if role == "" {
		role = "member"
	}

	membership := &entity.LaboratoryMembership{
		LaboratoryID: input.LaboratoryID,
		UserID:       input.UserID,
		Role:         role,
	}

	return s.laboratoryRepo.AddMember(ctx, membership)
}
