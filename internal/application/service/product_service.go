package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	infraRepo "github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
	"github.com/ventafarma/ventafarma-api/pkg/apperror"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
	"github.com/ventafarma/ventafarma-api/pkg/utils"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID    uuid.UUID
	Name      string
	SKU       string
	UnitPrice float64
	Active    *bool
	Notes     *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	laboratoryID, ok := infraRepo.GetLaboratoryID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Laboratory context required")
	}

	// Auto-generate SKU if not provided
	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	existingProduct, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product SKU already exists")
	}

	slug := utils.Slugify(input.Name)

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product := &entity.Product{
		LaboratoryID: laboratoryID,
		UserID:       input.UserID,
		Name:         input.Name,
		Slug:         slug,
		SKU:          sku,
		Active:       active,
		Notes:        input.Notes,
	}
	product.SetUnitPriceFromDecimal(input.UnitPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductNames returns the distinct active product names of the current
// laboratory, used to pick products for the sales report.
func (s *ProductService) ListProductNames(ctx context.Context) ([]string, error) {
	return s.productRepo.ListNames(ctx)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	UserID        uuid.UUID
	ProductSlug   string
	SkipUserCheck bool // If true (super-admin), skip ownership check
	Name          *string
	SKU           *string
	UnitPrice     *float64
	Active        *bool
	Notes         *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, input.ProductSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Ensure user owns the product (unless super-admin)
	if !input.SkipUserCheck && product.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	// Check if new SKU is unique
	if input.SKU != nil && *input.SKU != product.SKU {
		existingProduct, err := s.productRepo.GetBySKU(ctx, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existingProduct != nil && existingProduct.ID != product.ID {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}
		product.SKU = *input.SKU
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.UnitPrice != nil {
		product.SetUnitPriceFromDecimal(*input.UnitPrice)
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
// If skipOwnerCheck is true (e.g., for super-admins), ownership check is bypassed
func (s *ProductService) DeleteProduct(ctx context.Context, userID uuid.UUID, slug string, skipOwnerCheck bool) error {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	if !skipOwnerCheck && product.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name      string
	SKU       string
	UnitPrice float64
	Notes     string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and bulk-creates products from parsed import rows
func (s *ProductService) ImportProducts(ctx context.Context, userID uuid.UUID, rows []ImportProductRow) (*ImportResult, error) {
	laboratoryID, ok := infraRepo.GetLaboratoryID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Laboratory context required")
	}

	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	// Track SKUs seen in this import batch to detect duplicates within the file
	seenSKUs := make(map[string]int) // sku -> row number (1-indexed)

	var validProducts []entity.Product

	for i, row := range rows {
		rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

		if strings.TrimSpace(row.Name) == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		sku := strings.TrimSpace(row.SKU)
		if sku == "" {
			sku = utils.GenerateSKU()
		}

		if prevRow, exists := seenSKUs[sku]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "sku",
				Message: fmt.Sprintf("Duplicate SKU '%s' (same as row %d)", sku, prevRow),
			})
			continue
		}

		existingProduct, err := s.productRepo.GetBySKU(ctx, sku)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "sku", Message: "Error checking SKU: " + err.Error()})
			continue
		}
		if existingProduct != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "sku",
				Message: fmt.Sprintf("Product SKU '%s' already exists", sku),
			})
			continue
		}

		seenSKUs[sku] = rowNum

		// Generate slug with uniqueness suffix
		slug := utils.Slugify(row.Name) + "-" + strings.ToLower(uuid.New().String()[:8])

		product := entity.Product{
			LaboratoryID: laboratoryID,
			UserID:       userID,
			Name:         strings.TrimSpace(row.Name),
			Slug:         slug,
			SKU:          sku,
			Active:       true,
		}
		product.SetUnitPriceFromDecimal(row.UnitPrice)

		if row.Notes != "" {
			notes := row.Notes
			product.Notes = &notes
		}

		validProducts = append(validProducts, product)
	}

	// Batch create valid products
	if len(validProducts) > 0 {
		if err := s.productRepo.CreateBatch(ctx, validProducts); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import products: "+err.Error())
		}
	}

	result.Successful = len(validProducts)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}
