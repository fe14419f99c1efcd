package service

import (
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务实例
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List 查询心愿单（下架商品不展示）
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	visible := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		visible = append(visible, item)
	}
	return visible, nil
}

// Add 加入心愿单（重复加入不报错）
func (s *WishlistService) Add(userID, productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductNotAvailable
	}
	return s.wishlistRepo.Add(userID, productID)
}

// Remove 从心愿单移除
func (s *WishlistService) Remove(userID, productID uint) error {
	rows, err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
