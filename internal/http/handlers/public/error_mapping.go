package public

import (
	"errors"

	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var couponValidateErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "Invalid coupon code"},
	{target: service.ErrCouponAlreadyUsed, code: response.CodeBadRequest, msg: "Coupon already used"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, msg: "Coupon usage limit reached"},
	{target: service.ErrCouponMinimumNotMet, code: response.CodeBadRequest, msg: "Order amount does not meet coupon minimum"},
}

var checkoutExtraErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "Cart is empty"},
	{target: service.ErrInvalidAddress, code: response.CodeBadRequest, msg: "Invalid address"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "Product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "Product is not available"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

var userOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "Order not found"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, msg: "Order cannot be cancelled"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "Invalid order status"},
	{target: service.ErrInvoiceRenderFailed, code: response.CodeInternal, msg: "Failed to generate invoice"},
}

var preorderErrorRules = []mappedHandlerError{
	{target: service.ErrPreorderNotFound, code: response.CodeNotFound, msg: "Preorder not found"},
	{target: service.ErrPreorderNotSupported, code: response.CodeBadRequest, msg: "Product does not accept preorders"},
	{target: service.ErrPreorderCancelNotAllowed, code: response.CodeBadRequest, msg: "Preorder cannot be cancelled"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "Product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "Product is not available"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "Variant not found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(couponValidateErrorRules, checkoutExtraErrorRules), response.CodeInternal, "Failed to place order")
}

func respondCouponValidateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, couponValidateErrorRules, response.CodeInternal, "Failed to apply coupon")
}

func respondUserOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "Failed to load order")
}

func respondPreorderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, preorderErrorRules, response.CodeInternal, "Failed to process preorder")
}
