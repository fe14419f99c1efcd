package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCreateCategoryNameTaken(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	if _, err := svc.CreateCategory(CategoryInput{Name: "Brass Idols", IsActive: true}); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	_, err := svc.CreateCategory(CategoryInput{Name: "  Brass Idols ", IsActive: true})
	if !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCreateCategoryEmptyName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)
	_, err := svc.CreateCategory(CategoryInput{Name: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateCategoryKeepsOwnName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	created, err := svc.CreateCategory(CategoryInput{Name: "Home Decor", IsActive: true})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	if _, err := svc.CreateCategory(CategoryInput{Name: "Diyas", IsActive: true}); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	// 改回自身名称允许，占用他人名称拒绝
	if _, err := svc.UpdateCategory(created.ID, CategoryInput{Name: "Home Decor", IsActive: false, SortOrder: 5}); err != nil {
		t.Fatalf("UpdateCategory same name error: %v", err)
	}
	if _, err := svc.UpdateCategory(created.ID, CategoryInput{Name: "Diyas"}); !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	created, err := svc.CreateCategory(CategoryInput{Name: "Diyas & Lamps", IsActive: true})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	product := models.Product{
		CategoryID:  created.ID,
		Name:        "Peacock Diya",
		PriceAmount: moneyFromInt(899),
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.DeleteCategory(created.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := db.Delete(&product).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.DeleteCategory(created.ID); err != nil {
		t.Fatalf("DeleteCategory error: %v", err)
	}
	if _, err := svc.GetCategory(created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestListCategoriesOnlyActive(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	if _, err := svc.CreateCategory(CategoryInput{Name: "Active", IsActive: true}); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	if _, err := svc.CreateCategory(CategoryInput{Name: "Hidden", IsActive: false}); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	active, err := svc.ListCategories(true)
	if err != nil {
		t.Fatalf("ListCategories error: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Active" {
		t.Fatalf("unexpected active categories: %+v", active)
	}

	all, err := svc.ListCategories(false)
	if err != nil {
		t.Fatalf("ListCategories error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(all))
	}
}
