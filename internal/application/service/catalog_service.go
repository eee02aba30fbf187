package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	infraRepo "github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
	"github.com/ventafarma/ventafarma-api/pkg/apperror"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	TaxID   *string
	Address *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	laboratoryID, ok := infraRepo.GetLaboratoryID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Laboratory context required")
	}

	client := &entity.Client{
		LaboratoryID: laboratoryID,
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		TaxID:        input.TaxID,
		Address:      input.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients. If isSuperAdmin is true, returns all clients.
func (s *ClientService) ListClients(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	Email        *string
	Phone        *string
	TaxID        *string
	Address      *string
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	// Super-admin can update any client, regular users can only update their own
	if !input.IsSuperAdmin && client.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.TaxID != nil {
		client.TaxID = input.TaxID
	}
	if input.Address != nil {
		client.Address = input.Address
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}

	if !isSuperAdmin && client.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.clientRepo.Delete(ctx, id)
}

// RepresentativeService handles sales representative operations
type RepresentativeService struct {
	representativeRepo repository.RepresentativeRepository
}

// NewRepresentativeService creates a new representative service
func NewRepresentativeService(representativeRepo repository.RepresentativeRepository) *RepresentativeService {
	return &RepresentativeService{representativeRepo: representativeRepo}
}

// CreateRepresentativeInput represents the create representative input
type CreateRepresentativeInput struct {
	UserID uuid.UUID
	Name   string
	Email  *string
	Phone  *string
	Zone   *string
}

// CreateRepresentative creates a new representative
func (s *RepresentativeService) CreateRepresentative(ctx context.Context, input *CreateRepresentativeInput) (*entity.Representative, error) {
	laboratoryID, ok := infraRepo.GetLaboratoryID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Laboratory context required")
	}

	representative := &entity.Representative{
		LaboratoryID: laboratoryID,
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Zone:         input.Zone,
	}

	if err := s.representativeRepo.Create(ctx, representative); err != nil {
		return nil, err
	}

	return representative, nil
}

// GetRepresentative retrieves a representative by ID
func (s *RepresentativeService) GetRepresentative(ctx context.Context, id uuid.UUID) (*entity.Representative, error) {
	representative, err := s.representativeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if representative == nil {
		return nil, apperror.NewNotFoundError("Representative")
	}
	return representative, nil
}

// ListRepresentatives lists representatives. If isSuperAdmin is true, returns all of them.
func (s *RepresentativeService) ListRepresentatives(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Representative], error) {
	representatives, total, err := s.representativeRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(representatives, pag), nil
}

// UpdateRepresentativeInput represents the update representative input
type UpdateRepresentativeInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	Email        *string
	Phone        *string
	Zone         *string
}

// UpdateRepresentative updates a representative
func (s *RepresentativeService) UpdateRepresentative(ctx context.Context, input *UpdateRepresentativeInput) (*entity.Representative, error) {
	representative, err := s.representativeRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if representative == nil {
		return nil, apperror.NewNotFoundError("Representative")
	}

	if !input.IsSuperAdmin && representative.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		representative.Name = *input.Name
	}
	if input.Email != nil {
		representative.Email = input.Email
	}
	if input.Phone != nil {
		representative.Phone = input.Phone
	}
	if input.Zone != nil {
		representative.Zone = input.Zone
	}

	if err := s.representativeRepo.Update(ctx, representative); err != nil {
		return nil, err
	}

	return representative, nil
}

// DeleteRepresentative deletes a representative
func (s *RepresentativeService) DeleteRepresentative(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	representative, err := s.representativeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if representative == nil {
		return apperror.NewNotFoundError("Representative")
	}

	if !isSuperAdmin && representative.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.representativeRepo.Delete(ctx, id)
}

// DistributorService handles distributor-related operations
type DistributorService struct {
	distributorRepo repository.DistributorRepository
}

// NewDistributorService creates a new distributor service
func NewDistributorService(distributorRepo repository.DistributorRepository) *DistributorService {
	return &DistributorService{distributorRepo: distributorRepo}
}

// CreateDistributorInput represents the create distributor input
type CreateDistributorInput struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// CreateDistributor creates a new distributor
func (s *DistributorService) CreateDistributor(ctx context.Context, input *CreateDistributorInput) (*entity.Distributor, error) {
	laboratoryID, ok := infraRepo.GetLaboratoryID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Laboratory context required")
	}

	distributor := &entity.Distributor{
		LaboratoryID: laboratoryID,
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
	}

	if err := s.distributorRepo.Create(ctx, distributor); err != nil {
		return nil, err
	}

	return distributor, nil
}

// GetDistributor retrieves a distributor by ID
func (s *DistributorService) GetDistributor(ctx context.Context, id uuid.UUID) (*entity.Distributor, error) {
	distributor, err := s.distributorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, apperror.NewNotFoundError("Distributor")
	}
	return distributor, nil
}

// ListDistributors lists distributors. If isSuperAdmin is true, returns all of them.
func (s *DistributorService) ListDistributors(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Distributor], error) {
	distributors, total, err := s.distributorRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(distributors, pag), nil
}

// UpdateDistributorInput represents the update distributor input
type UpdateDistributorInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
}

// UpdateDistributor updates a distributor
func (s *DistributorService) UpdateDistributor(ctx context.Context, input *UpdateDistributorInput) (*entity.Distributor, error) {
	distributor, err := s.distributorRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, apperror.NewNotFoundError("Distributor")
	}

	if !input.IsSuperAdmin && distributor.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		distributor.Name = *input.Name
	}
	if input.Email != nil {
		distributor.Email = input.Email
	}
	if input.Phone != nil {
		distributor.Phone = input.Phone
	}
	if input.Address != nil {
		distributor.Address = input.Address
	}

	if err := s.distributorRepo.Update(ctx, distributor); err != nil {
		return nil, err
	}

	return distributor, nil
}

// DeleteDistributor deletes a distributor
func (s *DistributorService) DeleteDistributor(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	distributor, err := s.distributorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if distributor == nil {
		return apperror.NewNotFoundError("Distributor")
	}

	if !isSuperAdmin && distributor.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.distributorRepo.Delete(ctx, id)
}
