package service

import (
	"fmt"
	"strings"

	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务实例
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListAddresses 查询用户地址（默认地址排在最前）
func (s *AddressService) ListAddresses(userID uint) ([]models.UserAddress, error) {
	return s.addressRepo.ListByUser(userID)
}

// AddressInput 地址创建/更新入参
type AddressInput struct {
	Name      string
	Phone     string
	Street    string
	City      string
	State     string
	Zip       string
	Country   string
	IsDefault bool
}

// CreateAddress 新增收货地址
func (s *AddressService) CreateAddress(userID uint, input AddressInput) (*models.UserAddress, error) {
	normalized, err := validateAddressInput(input)
	if err != nil {
		return nil, err
	}

	if normalized.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	address := &models.UserAddress{
		UserID:    userID,
		Name:      normalized.Name,
		Phone:     normalized.Phone,
		Street:    normalized.Street,
		City:      normalized.City,
		State:     normalized.State,
		Zip:       normalized.Zip,
		Country:   normalized.Country,
		IsDefault: normalized.IsDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress 更新收货地址（仅限本人）
func (s *AddressService) UpdateAddress(userID, addressID uint, input AddressInput) (*models.UserAddress, error) {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	normalized, err := validateAddressInput(input)
	if err != nil {
		return nil, err
	}
	if normalized.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	address.Name = normalized.Name
	address.Phone = normalized.Phone
	address.Street = normalized.Street
	address.City = normalized.City
	address.State = normalized.State
	address.Zip = normalized.Zip
	address.Country = normalized.Country
	address.IsDefault = normalized.IsDefault
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress 删除收货地址（仅限本人）
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	rows, err := s.addressRepo.DeleteByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func validateAddressInput(input AddressInput) (AddressInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Street = strings.TrimSpace(input.Street)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.Zip = strings.TrimSpace(input.Zip)
	input.Country = strings.TrimSpace(input.Country)
	if input.Name == "" || input.Phone == "" || input.Street == "" || input.City == "" || input.Zip == "" {
		return input, fmt.Errorf("%w: name, phone, street, city and zip are required", ErrInvalidAddress)
	}
	if input.Country == "" {
		input.Country = "India"
	}
	return input, nil
}
