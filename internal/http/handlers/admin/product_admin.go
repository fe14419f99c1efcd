package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品请求
type ProductRequest struct {
	CategoryID  uint               `json:"category_id" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       models.Money       `json:"price" binding:"required"`
	Images      models.StringArray `json:"images"`
	IsPreorder  bool               `json:"is_preorder"`
	IsActive    *bool              `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.ProductInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Images:      r.Images,
		IsPreorder:  r.IsPreorder,
		IsActive:    isActive,
		SortOrder:   r.SortOrder,
	}
}

// ListAdminProducts 获取商品列表（含下架）
func (h *Handler) ListAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       c.Query("search"),
		PreorderOnly: c.Query("preorder") == "true",
		WithCategory: true,
		WithVariants: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load products", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, gin.H{"products": products}, pagination)
}

// GetAdminProduct 获取商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	product, svcErr := h.ProductService.GetProduct(uint(id))
	if svcErr != nil {
		respondProductError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"product": product})
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	product, err := h.ProductService.CreateProduct(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, gin.H{"product": product})
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	product, svcErr := h.ProductService.UpdateProduct(uint(id), req.toInput())
	if svcErr != nil {
		respondProductError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"product": product})
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.ProductService.DeleteProduct(uint(id)); err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// VariantRequest 定制规格请求
type VariantRequest struct {
	Name            string          `json:"name" binding:"required"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
	AdditionalPrice models.Money    `json:"additional_price"`
	IsActive        *bool           `json:"is_active"`
	SortOrder       int             `json:"sort_order"`
}

func (r VariantRequest) toInput() service.VariantInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.VariantInput{
		Name:            r.Name,
		PriceMultiplier: r.PriceMultiplier,
		AdditionalPrice: r.AdditionalPrice,
		IsActive:        isActive,
		SortOrder:       r.SortOrder,
	}
}

// ListVariants 获取商品规格列表
func (h *Handler) ListVariants(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	variants, svcErr := h.ProductService.ListVariants(uint(productID))
	if svcErr != nil {
		respondProductError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"variants": variants})
}

// CreateVariant 新增商品规格
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	variant, svcErr := h.ProductService.CreateVariant(uint(productID), req.toInput())
	if svcErr != nil {
		respondProductError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"variant": variant})
}

// UpdateVariant 更新商品规格
func (h *Handler) UpdateVariant(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}
	variantID, err := strconv.ParseUint(c.Param("variant_id"), 10, 64)
	if err != nil || variantID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	variant, svcErr := h.ProductService.UpdateVariant(uint(productID), uint(variantID), req.toInput())
	if svcErr != nil {
		respondProductError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"variant": variant})
}

// DeleteVariant 删除商品规格
func (h *Handler) DeleteVariant(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}
	variantID, err := strconv.ParseUint(c.Param("variant_id"), 10, 64)
	if err != nil || variantID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.ProductService.DeleteVariant(uint(productID), uint(variantID)); err != nil {
		respondProductError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "Product not found", nil)
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeNotFound, "Variant not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "Category not found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save product", err)
	}
}
