package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/queue"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// preorderTransitions 预订单状态机
// 生产链路 pending → confirmed → in_production → ready → completed
// pending/confirmed 可取消，进入生产后不可取消
var preorderTransitions = map[string]map[string]bool{
	constants.PreorderStatusPending: {
		constants.PreorderStatusConfirmed: true,
		constants.PreorderStatusCancelled: true,
	},
	constants.PreorderStatusConfirmed: {
		constants.PreorderStatusInProduction: true,
		constants.PreorderStatusCancelled:    true,
	},
	constants.PreorderStatusInProduction: {
		constants.PreorderStatusReady: true,
	},
	constants.PreorderStatusReady: {
		constants.PreorderStatusCompleted: true,
	},
	constants.PreorderStatusCompleted: {},
	constants.PreorderStatusCancelled: {},
}

// PreorderService 定制预订服务
type PreorderService struct {
	cfg          *config.PreorderConfig
	preorderRepo repository.PreorderRepository
	productRepo  repository.ProductRepository
	variantRepo  repository.ProductVariantRepository
	userRepo     repository.UserRepository
	queueClient  *queue.Client
}

// NewPreorderService 创建预订服务实例
func NewPreorderService(
	cfg *config.PreorderConfig,
	preorderRepo repository.PreorderRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
) *PreorderService {
	return &PreorderService{
		cfg:          cfg,
		preorderRepo: preorderRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		userRepo:     userRepo,
		queueClient:  queueClient,
	}
}

// PreorderInput 预订创建入参
type PreorderInput struct {
	UserID       uint
	ProductID    uint
	VariantID    *uint
	Quantity     int
	Notes        string
	ContactEmail string
}

// CreatePreorder 创建定制预订单
// 单价 = 基价 × 规格乘数 + 规格附加价，定金按配置百分比计算
func (s *PreorderService) CreatePreorder(input PreorderInput) (*models.Preorder, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if !product.IsPreorder {
		return nil, ErrPreorderNotSupported
	}

	unitPrice := product.PriceAmount.Decimal
	variantName := ""
	if input.VariantID != nil {
		variant, varErr := s.variantRepo.GetByIDAndProduct(*input.VariantID, product.ID)
		if varErr != nil {
			return nil, varErr
		}
		if variant == nil || !variant.IsActive {
			return nil, ErrVariantNotFound
		}
		unitPrice = unitPrice.Mul(variant.PriceMultiplier).Add(variant.AdditionalPrice.Decimal)
		variantName = variant.Name
	}

	contactEmail := strings.TrimSpace(input.ContactEmail)
	if contactEmail == "" {
		user, userErr := s.userRepo.GetByID(input.UserID)
		if userErr != nil {
			return nil, userErr
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		contactEmail = user.Email
	}

	total := unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
	advance := total.Mul(decimal.NewFromInt(int64(s.advancePercent()))).Div(decimalHundred)
	estimate := time.Now().AddDate(0, 0, s.deliveryEstimateDays())

	preorder := &models.Preorder{
		PreorderNo:        generatePreorderNo(),
		UserID:            input.UserID,
		ProductID:         product.ID,
		VariantID:         input.VariantID,
		VariantName:       variantName,
		Quantity:          input.Quantity,
		UnitPrice:         models.NewMoneyFromDecimal(unitPrice),
		TotalAmount:       models.NewMoneyFromDecimal(total),
		AdvanceAmount:     models.NewMoneyFromDecimal(advance),
		Status:            constants.PreorderStatusPending,
		Notes:             strings.TrimSpace(input.Notes),
		ContactEmail:      contactEmail,
		EstimatedDelivery: &estimate,
	}
	if err := s.preorderRepo.Create(preorder); err != nil {
		return nil, err
	}

	s.enqueueStatusEmail(preorder, constants.PreorderStatusPending)
	return preorder, nil
}

// GetPreorder 查询用户本人预订单
func (s *PreorderService) GetPreorder(preorderID, userID uint) (*models.Preorder, error) {
	preorder, err := s.preorderRepo.GetByIDAndUser(preorderID, userID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	return preorder, nil
}

// ListUserPreorders 分页查询用户预订单
func (s *PreorderService) ListUserPreorders(filter repository.PreorderListFilter) ([]models.Preorder, int64, error) {
	return s.preorderRepo.ListByUser(filter)
}

// ListPreorders 分页查询预订单（后台）
func (s *PreorderService) ListPreorders(filter repository.PreorderListFilter) ([]models.Preorder, int64, error) {
	return s.preorderRepo.ListAdmin(filter)
}

// UpdatePreorderStatus 后台推进预订单状态
func (s *PreorderService) UpdatePreorderStatus(preorderID uint, target string) (*models.Preorder, error) {
	if _, ok := preorderTransitions[target]; !ok {
		return nil, ErrPreorderStatusInvalid
	}

	preorder, err := s.preorderRepo.GetByID(preorderID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	if preorder.Status == target {
		return preorder, nil
	}
	if !preorderTransitions[preorder.Status][target] {
		return nil, ErrPreorderStatusInvalid
	}

	updates := map[string]interface{}{}
	if target == constants.PreorderStatusCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}
	if err := s.preorderRepo.UpdateStatus(preorder.ID, target, updates); err != nil {
		return nil, err
	}

	preorder, err = s.preorderRepo.GetByID(preorderID)
	if err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(preorder, target)
	return preorder, nil
}

// CancelPreorder 用户取消预订（仅 pending/confirmed 可取消）
func (s *PreorderService) CancelPreorder(preorderID, userID uint) (*models.Preorder, error) {
	preorder, err := s.preorderRepo.GetByIDAndUser(preorderID, userID)
	if err != nil {
		return nil, err
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	if preorder.Status != constants.PreorderStatusPending && preorder.Status != constants.PreorderStatusConfirmed {
		return nil, ErrPreorderCancelNotAllowed
	}

	now := time.Now()
	updates := map[string]interface{}{"cancelled_at": &now}
	if err := s.preorderRepo.UpdateStatus(preorder.ID, constants.PreorderStatusCancelled, updates); err != nil {
		return nil, err
	}

	preorder, err = s.preorderRepo.GetByIDAndUser(preorderID, userID)
	if err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(preorder, constants.PreorderStatusCancelled)
	return preorder, nil
}

func (s *PreorderService) enqueueStatusEmail(preorder *models.Preorder, status string) {
	if s.queueClient == nil || preorder == nil {
		return
	}
	payload := queue.PreorderStatusEmailPayload{
		PreorderID: preorder.ID,
		Status:     status,
	}
	if err := s.queueClient.EnqueuePreorderStatusEmail(payload); err != nil {
		logger.Warnw("preorder_enqueue_status_email_failed",
			"preorder_id", preorder.ID,
			"status", status,
			"error", err,
		)
	}
}

func (s *PreorderService) advancePercent() int {
	if s.cfg != nil && s.cfg.AdvancePercent > 0 && s.cfg.AdvancePercent <= 100 {
		return s.cfg.AdvancePercent
	}
	return 20
}

func (s *PreorderService) deliveryEstimateDays() int {
	if s.cfg != nil && s.cfg.DeliveryEstimDays > 0 {
		return s.cfg.DeliveryEstimDays
	}
	return 30
}

// generatePreorderNo 生成预订单编号（PR + 时间戳 + 6 位随机数）
func generatePreorderNo() string {
	return "PR" + time.Now().Format("20060102150405") + randNumeric(6)
}
