package service

import (
	"fmt"
	"strings"

	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
)

// PhotoService 工艺展示相册服务
type PhotoService struct {
	photoRepo repository.PhotoRepository
}

// NewPhotoService 创建相册服务实例
func NewPhotoService(photoRepo repository.PhotoRepository) *PhotoService {
	return &PhotoService{photoRepo: photoRepo}
}

// ListPhotos 分页查询照片
func (s *PhotoService) ListPhotos(filter repository.PhotoListFilter) ([]models.Photo, int64, error) {
	return s.photoRepo.List(filter)
}

// PhotoInput 照片创建/更新入参
type PhotoInput struct {
	Title     string
	Filename  string
	Path      string
	IsActive  bool
	SortOrder int
}

// CreatePhoto 新增照片
func (s *PhotoService) CreatePhoto(input PhotoInput) (*models.Photo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: photo title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Path) == "" {
		return nil, fmt.Errorf("%w: photo path is required", ErrInvalidInput)
	}

	photo := &models.Photo{
		Title:     strings.TrimSpace(input.Title),
		Filename:  strings.TrimSpace(input.Filename),
		Path:      strings.TrimSpace(input.Path),
		IsActive:  input.IsActive,
		SortOrder: input.SortOrder,
	}
	if err := s.photoRepo.Create(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// UpdatePhoto 更新照片
func (s *PhotoService) UpdatePhoto(id uint, input PhotoInput) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: photo title is required", ErrInvalidInput)
	}

	photo.Title = strings.TrimSpace(input.Title)
	if strings.TrimSpace(input.Filename) != "" {
		photo.Filename = strings.TrimSpace(input.Filename)
	}
	if strings.TrimSpace(input.Path) != "" {
		photo.Path = strings.TrimSpace(input.Path)
	}
	photo.IsActive = input.IsActive
	photo.SortOrder = input.SortOrder
	if err := s.photoRepo.Update(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// DeletePhoto 删除照片
func (s *PhotoService) DeletePhoto(id uint) error {
	photo, err := s.photoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if photo == nil {
		return ErrPhotoNotFound
	}
	return s.photoRepo.Delete(id)
}
