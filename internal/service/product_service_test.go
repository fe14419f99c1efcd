package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductVariantRepository(db),
		repository.NewCategoryRepository(db),
	)
	return svc, db
}

func createProductTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	return category
}

func TestCreateProductValidation(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Brass Idols")

	cases := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{
			name:  "空名称",
			input: ProductInput{CategoryID: category.ID, Name: "   ", Price: moneyFromInt(100)},
			want:  ErrInvalidInput,
		},
		{
			name: "负价格",
			input: ProductInput{
				CategoryID: category.ID,
				Name:       "Brass Diya",
				Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(-1)),
			},
			want: ErrInvalidInput,
		},
		{
			name:  "分类不存在",
			input: ProductInput{CategoryID: 9999, Name: "Brass Diya", Price: moneyFromInt(100)},
			want:  ErrCategoryNotFound,
		},
	}

	for _, tc := range cases {
		if _, err := svc.CreateProduct(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: 期望 %v, 实际 %v", tc.name, tc.want, err)
		}
	}
}

func TestCreateAndUpdateProduct(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Home Decor")

	product, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        "  Engraved Brass Vase  ",
		Description: "Hand engraved",
		Price:       moneyFromInt(1799),
		Images:      models.StringArray{"/uploads/products/vase.jpg"},
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	if product.Name != "Engraved Brass Vase" {
		t.Fatalf("商品名称应去除首尾空格, 实际 %q", product.Name)
	}

	updated, err := svc.UpdateProduct(product.ID, ProductInput{
		CategoryID: category.ID,
		Name:       "Engraved Brass Vase",
		Price:      moneyFromInt(1999),
		IsPreorder: true,
		IsActive:   false,
	})
	if err != nil {
		t.Fatalf("更新商品失败: %v", err)
	}
	if !updated.PriceAmount.Decimal.Equal(decimal.NewFromInt(1999)) {
		t.Fatalf("更新后价格应为 1999, 实际 %s", updated.PriceAmount.Decimal)
	}
	if !updated.IsPreorder || updated.IsActive {
		t.Fatalf("更新后的预订/上架状态不符: preorder=%v active=%v", updated.IsPreorder, updated.IsActive)
	}

	if _, err := svc.UpdateProduct(9999, ProductInput{CategoryID: category.ID, Name: "x", Price: moneyFromInt(1)}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("更新不存在商品应返回 ErrProductNotFound, 实际 %v", err)
	}
}

func TestGetActiveProductHidesInactive(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Pooja Essentials")

	product, err := svc.CreateProduct(ProductInput{
		CategoryID: category.ID,
		Name:       "Pooja Thali Set",
		Price:      moneyFromInt(1299),
		IsActive:   false,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if _, err := svc.GetProduct(product.ID); err != nil {
		t.Fatalf("后台查询下架商品应成功: %v", err)
	}
	if _, err := svc.GetActiveProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("前台查询下架商品应返回 ErrProductNotFound, 实际 %v", err)
	}
}

func TestListProductsFilter(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	idols := createProductTestCategory(t, db, "Brass Idols")
	lamps := createProductTestCategory(t, db, "Diyas & Lamps")

	seed := []ProductInput{
		{CategoryID: idols.ID, Name: "Brass Ganesha Idol", Price: moneyFromInt(2499), IsPreorder: true, IsActive: true},
		{CategoryID: idols.ID, Name: "Nataraja Statue", Price: moneyFromInt(5999), IsActive: false},
		{CategoryID: lamps.ID, Name: "Peacock Diya Set", Price: moneyFromInt(899), IsActive: true},
	}
	for _, input := range seed {
		if _, err := svc.CreateProduct(input); err != nil {
			t.Fatalf("创建商品失败: %v", err)
		}
	}

	products, total, err := svc.ListProducts(repository.ProductListFilter{CategoryID: idols.ID, OnlyActive: true})
	if err != nil {
		t.Fatalf("查询商品列表失败: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Name != "Brass Ganesha Idol" {
		t.Fatalf("按分类过滤应只返回上架的 Ganesha, 实际 total=%d len=%d", total, len(products))
	}

	products, total, err = svc.ListProducts(repository.ProductListFilter{Search: "diya"})
	if err != nil {
		t.Fatalf("搜索商品失败: %v", err)
	}
	if total != 1 || products[0].Name != "Peacock Diya Set" {
		t.Fatalf("搜索 diya 应命中 Peacock Diya Set, 实际 total=%d", total)
	}

	_, total, err = svc.ListProducts(repository.ProductListFilter{PreorderOnly: true})
	if err != nil {
		t.Fatalf("查询预订商品失败: %v", err)
	}
	if total != 1 {
		t.Fatalf("预订商品应只有 1 个, 实际 %d", total)
	}
}

func TestVariantLifecycle(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Brass Idols")
	product, err := svc.CreateProduct(ProductInput{
		CategoryID: category.ID,
		Name:       "Brass Ganesha Idol",
		Price:      moneyFromInt(2499),
		IsPreorder: true,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	variant, err := svc.CreateVariant(product.ID, VariantInput{
		Name:            "  Large  ",
		PriceMultiplier: decimal.NewFromFloat(2.4),
		IsActive:        true,
	})
	if err != nil {
		t.Fatalf("创建规格失败: %v", err)
	}
	if variant.Name != "Large" {
		t.Fatalf("规格名称应去除首尾空格, 实际 %q", variant.Name)
	}

	updated, err := svc.UpdateVariant(product.ID, variant.ID, VariantInput{
		Name:            "Large",
		PriceMultiplier: decimal.NewFromFloat(2.5),
		AdditionalPrice: moneyFromInt(200),
		IsActive:        true,
	})
	if err != nil {
		t.Fatalf("更新规格失败: %v", err)
	}
	if !updated.AdditionalPrice.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("更新后加价应为 200, 实际 %s", updated.AdditionalPrice.Decimal)
	}

	variants, err := svc.ListVariants(product.ID)
	if err != nil {
		t.Fatalf("查询规格失败: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("规格数量应为 1, 实际 %d", len(variants))
	}

	if err := svc.DeleteVariant(product.ID, variant.ID); err != nil {
		t.Fatalf("删除规格失败: %v", err)
	}
	if err := svc.DeleteVariant(product.ID, variant.ID); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("重复删除规格应返回 ErrVariantNotFound, 实际 %v", err)
	}
}

func TestVariantValidationAndScoping(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createProductTestCategory(t, db, "Brass Idols")
	first, err := svc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "Brass Ganesha Idol", Price: moneyFromInt(2499), IsActive: true})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	second, err := svc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "Nataraja Statue", Price: moneyFromInt(5999), IsActive: true})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if _, err := svc.CreateVariant(first.ID, VariantInput{Name: "", PriceMultiplier: decimal.NewFromInt(1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("空规格名应返回 ErrInvalidInput, 实际 %v", err)
	}
	if _, err := svc.CreateVariant(first.ID, VariantInput{Name: "Small", PriceMultiplier: decimal.Zero}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("非正倍率应返回 ErrInvalidInput, 实际 %v", err)
	}
	if _, err := svc.CreateVariant(9999, VariantInput{Name: "Small", PriceMultiplier: decimal.NewFromInt(1)}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("商品不存在应返回 ErrProductNotFound, 实际 %v", err)
	}

	variant, err := svc.CreateVariant(first.ID, VariantInput{Name: "Small", PriceMultiplier: decimal.NewFromInt(1), IsActive: true})
	if err != nil {
		t.Fatalf("创建规格失败: %v", err)
	}

	// 规格操作必须限定在其所属商品内
	if _, err := svc.UpdateVariant(second.ID, variant.ID, VariantInput{Name: "Small", PriceMultiplier: decimal.NewFromInt(1)}); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("跨商品更新规格应返回 ErrVariantNotFound, 实际 %v", err)
	}
	if err := svc.DeleteVariant(second.ID, variant.ID); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("跨商品删除规格应返回 ErrVariantNotFound, 实际 %v", err)
	}
}
