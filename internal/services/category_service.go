package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// categoryService handles category configuration.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category.
func (s *categoryService) CreateCategory(name string, kind models.CategoryKind, position int) (*models.Category, error) {
	category := &models.Category{
		Name:     name,
		Kind:     kind,
		Position: position,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories returns all categories by position then creation.
func (s *categoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("position ASC, created_at ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// RenameCategory renames a category. Renaming is the only edit allowed
// once transactions reference a category.
func (s *categoryService) RenameCategory(categoryID, name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&category).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}
