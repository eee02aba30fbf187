package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	domainRepo "github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
	"gorm.io/gorm"
)

type laboratoryRepository struct {
	db *gorm.DB
}

// NewLaboratoryRepository creates a new laboratory repository
func NewLaboratoryRepository(db *gorm.DB) domainRepo.LaboratoryRepository {
	return &laboratoryRepository{db: db}
}

func (r *laboratoryRepository) Create(ctx context.Context, laboratory *entity.Laboratory) error {
	return r.db.WithContext(ctx).Create(laboratory).Error
}

func (r *laboratoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Laboratory, error) {
	var laboratory entity.Laboratory
	err := r.db.WithContext(ctx).First(&laboratory, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &laboratory, err
}

func (r *laboratoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Laboratory, error) {
	var laboratory entity.Laboratory
	err := r.db.WithContext(ctx).First(&laboratory, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &laboratory, err
}

func (r *laboratoryRepository) GetByName(ctx context.Context, name string) (*entity.Laboratory, error) {
	var laboratory entity.Laboratory
	err := r.db.WithContext(ctx).First(&laboratory, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &laboratory, err
}

func (r *laboratoryRepository) Update(ctx context.Context, laboratory *entity.Laboratory) error {
	return r.db.WithContext(ctx).Save(laboratory).Error
}

func (r *laboratoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Laboratory{}, "id = ?", id).Error
}

func (r *laboratoryRepository) GetUserLaboratories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Laboratory, int64, error) {
	var laboratories []entity.Laboratory
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Laboratory{}).
		Joins("JOIN laboratory_memberships ON laboratory_memberships.laboratory_id = laboratories.id").
		Where("laboratory_memberships.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("laboratories.name ASC").
		Find(&laboratories).Error

	return laboratories, total, err
}

func (r *laboratoryRepository) AddMember(ctx context.Context, membership *entity.LaboratoryMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *laboratoryRepository) RemoveMember(ctx context.Context, laboratoryID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.LaboratoryMembership{}, "laboratory_id = ? AND user_id = ?", laboratoryID, userID).Error
}

func (r *laboratoryRepository) GetMembers(ctx context.Context, laboratoryID uuid.UUID) ([]entity.LaboratoryMembership, error) {
	var members []entity.LaboratoryMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("laboratory_id = ?", laboratoryID).
		Find(&members).Error
	return members, err
}

func (r *laboratoryRepository) IsMember(ctx context.Context, laboratoryID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.LaboratoryMembership{}).
		Where("laboratory_id = ? AND user_id = ?", laboratoryID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *laboratoryRepository) GetMembership(ctx context.Context, laboratoryID, userID uuid.UUID) (*entity.LaboratoryMembership, error) {
	var membership entity.LaboratoryMembership
	err := r.db.WithContext(ctx).
		First(&membership, "laboratory_id = ? AND user_id = ?", laboratoryID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *laboratoryRepository) UpdateMemberRole(ctx context.Context, laboratoryID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Model(&entity.LaboratoryMembership{}).
		Where("laboratory_id = ? AND user_id = ?", laboratoryID, userID).
		Update("role", role).Error
}

func (r *laboratoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Laboratory{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *laboratoryRepository) ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Laboratory, int64, error) {
	var laboratories []entity.Laboratory
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Laboratory{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&laboratories).Error

	return laboratories, total, err
}

func (r *laboratoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Laboratory{}).Count(&count).Error
	return count, err
}
