package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceService 发票渲染服务
// 核心字体不含卢比符号，金额统一以 INR 前缀标注
type InvoiceService struct {
	cfg       *config.InvoiceConfig
	orderRepo repository.OrderRepository
}

// NewInvoiceService 创建发票服务实例
func NewInvoiceService(cfg *config.InvoiceConfig, orderRepo repository.OrderRepository) *InvoiceService {
	return &InvoiceService{
		cfg:       cfg,
		orderRepo: orderRepo,
	}
}

// RenderOrderInvoice 渲染用户本人订单的 PDF 发票
// 返回 PDF 内容与下载文件名
func (s *InvoiceService) RenderOrderInvoice(orderID, userID uint) ([]byte, string, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", ErrOrderNotFound
	}

	content, err := s.render(order)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvoiceRenderFailed, err)
	}
	filename := fmt.Sprintf("invoice-%s.pdf", order.OrderNo)
	return content, filename, nil
}

func (s *InvoiceService) render(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s-%s", constants.InvoiceNoPrefix, order.OrderNo), false)
	pdf.AddPage()

	// 抬头
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, s.sellerName())
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range s.sellerLines() {
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// 发票信息
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice %s-%s", constants.InvoiceNoPrefix, order.OrderNo))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)

	// 收件人
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Bill To")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, order.RecipientName)
	pdf.Ln(5)
	pdf.Cell(0, 5, order.Street)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("%s %s, %s", order.City, order.Zip, order.Country))
	pdf.Ln(5)
	pdf.Cell(0, 5, order.RecipientEmail)
	pdf.Ln(5)
	pdf.Cell(0, 5, order.RecipientPhone)
	pdf.Ln(8)

	// 明细表
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(90, 7, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, formatInvoiceAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, formatInvoiceAmount(item.TotalPrice), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// 汇总
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(150, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, formatInvoiceAmount(order.SubtotalAmount), "", 1, "R", false, 0, "")
	if order.DiscountAmount.Decimal.IsPositive() {
		label := "Discount"
		if order.CouponCode != "" {
			label = fmt.Sprintf("Discount (%s)", order.CouponCode)
		}
		pdf.CellFormat(150, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "-"+formatInvoiceAmount(order.DiscountAmount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 7, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, formatInvoiceAmount(order.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 5, "Thank you for shopping with us.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *InvoiceService) sellerName() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.SellerName) != "" {
		return strings.TrimSpace(s.cfg.SellerName)
	}
	return "Nandini Brass & Metal Crafts"
}

func (s *InvoiceService) sellerLines() []string {
	if s.cfg == nil {
		return nil
	}
	lines := make([]string, 0, 3)
	if addr := strings.TrimSpace(s.cfg.SellerAddress); addr != "" {
		lines = append(lines, addr)
	}
	cityCountry := strings.TrimSpace(strings.TrimPrefix(
		fmt.Sprintf("%s, %s", strings.TrimSpace(s.cfg.SellerCity), strings.TrimSpace(s.cfg.SellerCountry)), ", "))
	if cityCountry != "" && cityCountry != "," {
		lines = append(lines, strings.Trim(cityCountry, ", "))
	}
	if email := strings.TrimSpace(s.cfg.SellerEmail); email != "" {
		lines = append(lines, email)
	}
	return lines
}

func formatInvoiceAmount(amount models.Money) string {
	return constants.SiteCurrency + " " + amount.String()
}
