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

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).Scopes(LaboratoryScope(ctx)).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) GetByName(ctx context.Context, name string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).Scopes(LaboratoryScope(ctx)).First(&client, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error
}

func (r *clientRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{}).Scopes(LaboratoryScope(ctx))
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&clients).Error

	return clients, total, err
}

type representativeRepository struct {
	db *gorm.DB
}

// NewRepresentativeRepository creates a new representative repository
func NewRepresentativeRepository(db *gorm.DB) domainRepo.RepresentativeRepository {
	return &representativeRepository{db: db}
}

func (r *representativeRepository) Create(ctx context.Context, representative *entity.Representative) error {
	return r.db.WithContext(ctx).Create(representative).Error
}

func (r *representativeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Representative, error) {
	var representative entity.Representative
	err := r.db.WithContext(ctx).Scopes(LaboratoryScope(ctx)).First(&representative, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &representative, err
}

func (r *representativeRepository) GetByName(ctx context.Context, name string) (*entity.Representative, error) {
	var representative entity.Representative
	err := r.db.WithContext(ctx).Scopes(LaboratoryScope(ctx)).First(&representative, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &representative, err
}

func (r *representativeRepository) Update(ctx context.Context, representative *entity.Representative) error {
	return r.db.WithContext(ctx).Save(representative).Error
}

func (r *representativeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Representative{}, "id = ?", id).Error
}

func (r *representativeRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Representative, int64, error) {
	var representatives []entity.Representative
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Representative{}).Scopes(LaboratoryScope(ctx))
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR zone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&representatives).Error

	return representatives, total, err
}

type distributorRepository struct {
	db *gorm.DB
}

// NewDistributorRepository creates a new distributor repository
func NewDistributorRepository(db *gorm.DB) domainRepo.DistributorRepository {
	return &distributorRepository{db: db}
}

func (r *distributorRepository) Create(ctx context.Context, distributor *entity.Distributor) error {
	return r.db.WithContext(ctx).Create(distributor).Error
}

func (r *distributorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Distributor, error) {
	var distributor entity.Distributor
	err := r.db.WithContext(ctx).Scopes(LaboratoryScope(ctx)).First(&distributor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &distributor, err
}

func (r *distributorRepository) GetByName(ctx context.Context, name string) (*entity.Distributor, error) {
	var distributor entity.Distributor
	err := r.db.WithContext(ctx).Scopes(LaboratoryScope(ctx)).First(&distributor, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &distributor, err
}

func (r *distributorRepository) Update(ctx context.Context, distributor *entity.Distributor) error {
	return r.db.WithContext(ctx).Save(distributor).Error
}

func (r *distributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Distributor{}, "id = ?", id).Error
}

func (r *distributorRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Distributor, int64, error) {
	var distributors []entity.Distributor
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Distributor{}).Scopes(LaboratoryScope(ctx))
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&distributors).Error

	return distributors, total, err
}
