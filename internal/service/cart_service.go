package service

import (
	"fmt"

	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务实例
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartItemDetail 购物车项明细（单价为当前商品价格）
type CartItemDetail struct {
	ID        uint               `json:"id"`
	ProductID uint               `json:"product_id"`
	Name      string             `json:"name"`
	UnitPrice models.Money       `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	LineTotal models.Money       `json:"line_total"`
	Images    models.StringArray `json:"images"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items    []CartItemDetail `json:"items"`
	Subtotal models.Money     `json:"subtotal"`
	Count    int              `json:"count"`
}

// AddItems 批量加入购物车
// 入参中重复出现的商品 ID 累加数量，已在购物车中的商品在原数量上叠加
func (s *CartService) AddItems(userID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return fmt.Errorf("%w: no products given", ErrInvalidInput)
	}

	quantities := make(map[uint]int, len(productIDs))
	ordered := make([]uint, 0, len(productIDs))
	for _, id := range productIDs {
		if id == 0 {
			return fmt.Errorf("%w: invalid product id", ErrInvalidInput)
		}
		if _, seen := quantities[id]; !seen {
			ordered = append(ordered, id)
		}
		quantities[id]++
	}

	products, err := s.productRepo.ListByIDs(ordered)
	if err != nil {
		return err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ordered {
		product, ok := byID[id]
		if !ok {
			return ErrProductNotFound
		}
		if !product.IsActive {
			return ErrProductNotAvailable
		}
	}

	for _, id := range ordered {
		if err := s.cartRepo.AddQuantity(userID, id, quantities[id]); err != nil {
			return err
		}
	}
	return nil
}

// RemoveItem 按购物车项 ID 删除（仅限本人）
func (s *CartService) RemoveItem(userID, itemID uint) error {
	rows, err := s.cartRepo.DeleteByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// GetCart 查询购物车汇总（下架商品不计入）
func (s *CartService) GetCart(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: make([]CartItemDetail, 0, len(items))}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		lineTotal := item.Product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Items = append(summary.Items, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.PriceAmount,
			Quantity:  item.Quantity,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Images:    item.Product.Images,
		})
		summary.Count += item.Quantity
		subtotal = subtotal.Add(lineTotal)
	}
	summary.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return summary, nil
}
