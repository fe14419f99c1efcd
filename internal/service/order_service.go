package service

import (
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/queue"
	"github.com/brasscraft-shop/internal/repository"
)

// allowedTransitions 订单状态机
// processing/pending 可发货或取消，shipped 只能签收，终态不可再变更
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPending: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务实例
func NewOrderService(orderRepo repository.OrderRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// GetOrder 查询用户本人订单
func (s *OrderService) GetOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderAdmin 查询订单（后台）
func (s *OrderService) GetOrderAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders 分页查询用户订单
func (s *OrderService) ListUserOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrders 分页查询订单（后台）
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateOrderStatus 后台更新订单状态
// 状态变更成功后向下单时的收件邮箱发送通知邮件
func (s *OrderService) UpdateOrderStatus(orderID uint, target string) (*models.Order, error) {
	if !isValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return order, nil
	}

	updates := map[string]interface{}{}
	if target == constants.OrderStatusCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, err
	}

	order, err = s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(order, target)
	return order, nil
}

// CancelOrder 用户取消订单（仅 processing/pending 可取消）
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusProcessing && order.Status != constants.OrderStatusPending {
		return nil, ErrOrderCancelNotAllowed
	}

	now := time.Now()
	updates := map[string]interface{}{"cancelled_at": &now}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
		return nil, err
	}

	order, err = s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(order, constants.OrderStatusCancelled)
	return order, nil
}

func (s *OrderService) enqueueStatusEmail(order *models.Order, status string) {
	if s.queueClient == nil || order == nil {
		return
	}
	payload := queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  status,
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(payload); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", order.ID,
			"status", status,
			"error", err,
		)
	}
}

func isValidOrderStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	targets, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return targets[target]
}
