package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// portfolioService handles asset configuration and portfolio aggregation.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreateAsset creates a new asset under the given category.
func (s *portfolioService) CreateAsset(categoryID, name, unit, notes string) (*models.Asset, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	asset := &models.Asset{
		CategoryID: categoryID,
		Name:       name,
		Unit:       unit,
		Notes:      notes,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetAssets returns all assets with their categories preloaded.
func (s *portfolioService) GetAssets() ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Preload("Category").Order("created_at ASC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// RecordHolding appends a quantity observation for an asset.
func (s *portfolioService) RecordHolding(assetID string, quantity decimal.Decimal, recordedAt time.Time) (*models.AssetHolding, error) {
	var asset models.Asset
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	holding := &models.AssetHolding{
		AssetID:    assetID,
		Quantity:   quantity,
		RecordedAt: recordedAt,
	}
	if err := s.db.Create(holding).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding, nil
}

// ComputePortfolio builds a snapshot of every asset's most recent holding
// at or before asOf, grouped by category. Ordering is stable: categories
// by position then creation, assets by creation. Assets with no eligible
// holding are omitted rather than zero-filled, and so are categories left
// with no assets.
func (s *portfolioService) ComputePortfolio(asOf time.Time) ([]PortfolioGroup, error) {
	var assets []models.Asset
	if err := s.db.Preload("Category").
		Joins("JOIN categories ON categories.id = assets.category_id").
		Order("categories.position ASC, categories.created_at ASC, assets.created_at ASC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	latest, err := s.latestHoldings(asOf)
	if err != nil {
		return nil, err
	}

	groups := make([]PortfolioGroup, 0)
	for i := range assets {
		asset := &assets[i]
		holding, ok := latest[asset.ID]
		if !ok {
			continue
		}

		if len(groups) == 0 || groups[len(groups)-1].Category.ID != asset.CategoryID {
			groups = append(groups, PortfolioGroup{Category: asset.Category})
		}
		group := &groups[len(groups)-1]
		group.Holdings = append(group.Holdings, PortfolioHolding{
			Asset:      *asset,
			Quantity:   holding.Quantity,
			RecordedAt: holding.RecordedAt,
		})
	}

	return groups, nil
}

// latestHoldings returns, per asset, the holding with the maximum
// recorded_at not exceeding asOf. Future-dated holdings are invisible
// until their time comes.
func (s *portfolioService) latestHoldings(asOf time.Time) (map[string]models.AssetHolding, error) {
	var holdings []models.AssetHolding
	if err := s.db.Where("recorded_at <= ?", asOf).
		Order("recorded_at ASC").
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	latest := make(map[string]models.AssetHolding, len(holdings))
	for _, h := range holdings {
		prev, ok := latest[h.AssetID]
		if !ok || h.RecordedAt.After(prev.RecordedAt) {
			latest[h.AssetID] = h
		}
	}
	return latest, nil
}
