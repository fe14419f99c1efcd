package public

import (
	"errors"
	"strconv"

	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址请求
type AddressRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Name:      r.Name,
		Phone:     r.Phone,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Country:   r.Country,
		IsDefault: r.IsDefault,
	}
}

// ListMyAddresses 获取当前用户收货地址
func (h *Handler) ListMyAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.ListAddresses(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load addresses", err)
		return
	}

	response.Success(c, gin.H{"addresses": addresses})
}

// CreateMyAddress 新增收货地址
func (h *Handler) CreateMyAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	address, err := h.AddressService.CreateAddress(uid, req.toInput())
	if err != nil {
		respondAddressError(c, err)
		return
	}

	response.Success(c, gin.H{"address": address})
}

// UpdateMyAddress 更新收货地址
func (h *Handler) UpdateMyAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	address, svcErr := h.AddressService.UpdateAddress(uid, uint(addressID), req.toInput())
	if svcErr != nil {
		respondAddressError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"address": address})
}

// DeleteMyAddress 删除收货地址
func (h *Handler) DeleteMyAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.AddressService.DeleteAddress(uid, uint(addressID)); err != nil {
		respondAddressError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		respondError(c, response.CodeNotFound, "Address not found", nil)
	case errors.Is(err, service.ErrInvalidAddress):
		respondError(c, response.CodeBadRequest, "Invalid address", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save address", err)
	}
}
