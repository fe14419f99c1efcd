package service

import (
	"fmt"
	"strings"

	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.ProductVariantRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务实例
func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts 分页查询商品
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 查询商品详情（前台，含规格）
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetActiveProduct 查询上架商品（前台详情页）
func (s *ProductService) GetActiveProduct(id uint) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ProductInput 商品创建/更新入参
type ProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	Price       models.Money
	Images      models.StringArray
	IsPreorder  bool
	IsActive    bool
	SortOrder   int
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		PriceAmount: input.Price,
		Images:      input.Images,
		IsPreorder:  input.IsPreorder,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateProductInput(input); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.PriceAmount = input.Price
	product.Images = input.Images
	product.IsPreorder = input.IsPreorder
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if input.Price.Decimal.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

// VariantInput 规格创建/更新入参
type VariantInput struct {
	Name            string
	PriceMultiplier decimal.Decimal
	AdditionalPrice models.Money
	IsActive        bool
	SortOrder       int
}

// ListVariants 查询商品规格
func (s *ProductService) ListVariants(productID uint) ([]models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.variantRepo.ListByProduct(productID)
}

// CreateVariant 为商品新增规格
func (s *ProductService) CreateVariant(productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := validateVariantInput(input); err != nil {
		return nil, err
	}

	variant := &models.ProductVariant{
		ProductID:       productID,
		Name:            strings.TrimSpace(input.Name),
		PriceMultiplier: input.PriceMultiplier,
		AdditionalPrice: input.AdditionalPrice,
		IsActive:        input.IsActive,
		SortOrder:       input.SortOrder,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant 更新商品规格
func (s *ProductService) UpdateVariant(productID, variantID uint, input VariantInput) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByIDAndProduct(variantID, productID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	if err := validateVariantInput(input); err != nil {
		return nil, err
	}

	variant.Name = strings.TrimSpace(input.Name)
	variant.PriceMultiplier = input.PriceMultiplier
	variant.AdditionalPrice = input.AdditionalPrice
	variant.IsActive = input.IsActive
	variant.SortOrder = input.SortOrder
	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant 删除商品规格
func (s *ProductService) DeleteVariant(productID, variantID uint) error {
	variant, err := s.variantRepo.GetByIDAndProduct(variantID, productID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantNotFound
	}
	return s.variantRepo.Delete(variant.ID)
}

func validateVariantInput(input VariantInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: variant name is required", ErrInvalidInput)
	}
	if !input.PriceMultiplier.IsPositive() {
		return fmt.Errorf("%w: price multiplier must be positive", ErrInvalidInput)
	}
	if input.AdditionalPrice.Decimal.IsNegative() {
		return fmt.Errorf("%w: additional price cannot be negative", ErrInvalidInput)
	}
	return nil
}
