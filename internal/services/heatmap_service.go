package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

const dayFormat = "2006-01-02"

// heatmapService aggregates habit completion logs into per-day intensity.
type heatmapService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewHeatmapService creates a new HeatmapServicer. The location is the
// fixed ledger time zone used to resolve a habit's creation day.
func NewHeatmapService(db *gorm.DB, loc *time.Location) HeatmapServicer {
	return &heatmapService{db: db, loc: loc}
}

// ComputeHeatmap maps each calendar day of the window to the fraction of
// eligible habits completed that day. Eligible means non-archived and
// created on or before the day, so habits created later do not deflate
// earlier days. Days with zero eligible habits are omitted. The result
// depends only on store state and the explicit window.
func (s *heatmapService) ComputeHeatmap(year int, month *int) (map[string]float64, error) {
	if year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPeriod, "Year must be positive")
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, apperrors.ErrInvalidPeriod
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	if month != nil {
		start = time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	}

	var habits []models.Habit
	if err := s.db.Where("archived = ?", false).Find(&habits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Creation days in the ledger zone, so eligibility counting below is
	// a plain day-string comparison.
	createdDays := make([]string, 0, len(habits))
	for i := range habits {
		createdDays = append(createdDays, habits[i].CreatedAt.In(s.loc).Format(dayFormat))
	}

	var logs []models.HabitLog
	if err := s.db.
		Joins("JOIN habits ON habits.id = habit_logs.habit_id AND habits.archived = ?", false).
		Where("habit_logs.completed = ? AND habit_logs.date >= ? AND habit_logs.date < ?", true, start, end).
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	completedByDay := make(map[string]int)
	for i := range logs {
		completedByDay[logs[i].Date.UTC().Format(dayFormat)]++
	}

	heatmap := make(map[string]float64)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(dayFormat)
		eligible := 0
		for _, created := range createdDays {
			if created <= day {
				eligible++
			}
		}
		if eligible == 0 {
			continue
		}
		heatmap[day] = float64(completedByDay[day]) / float64(eligible)
	}

	return heatmap, nil
}
