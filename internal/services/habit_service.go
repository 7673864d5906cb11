package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// habitService handles habit lifecycle, completion logging, and streaks.
type habitService struct {
	db *gorm.DB
}

// NewHabitService creates a new HabitServicer.
func NewHabitService(db *gorm.DB) HabitServicer {
	return &habitService{db: db}
}

// normalizeDay truncates a timestamp to its UTC calendar day. Habit log
// dates are day-precision; storing them normalized keeps the
// (habit_id, date) uniqueness constraint meaningful.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateHabit creates a habit appended to the end of the active ranking.
func (s *habitService) CreateHabit(name string) (*models.Habit, error) {
	var habit *models.Habit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.Habit{}).Where("archived = ?", false).Count(&active).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		habit = &models.Habit{
			Name:         name,
			DisplayOrder: int(active),
		}
		if err := tx.Create(habit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// GetActiveHabits returns non-archived habits in display order.
func (s *habitService) GetActiveHabits() ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.db.Where("archived = ?", false).
		Order("display_order ASC").
		Find(&habits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return habits, nil
}

// getActiveHabit fetches a habit that is not archived. Archived habits
// are indistinguishable from missing ones to callers.
func (s *habitService) getActiveHabit(db *gorm.DB, habitID string) (*models.Habit, error) {
	var habit models.Habit
	if err := db.Where("id = ? AND archived = ?", habitID, false).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHabitNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &habit, nil
}

// LogCompletion upserts the completion flag for (habit, day). The write
// is a single atomic insert-or-update on the unique (habit_id, date)
// key, so concurrent logs of the same day cannot duplicate the row and
// the last write wins. Repeating identical arguments is a no-op.
func (s *habitService) LogCompletion(habitID string, date time.Time, completed bool) (*models.HabitLog, error) {
	if _, err := s.getActiveHabit(s.db, habitID); err != nil {
		return nil, err
	}

	day := normalizeDay(date)
	log := &models.HabitLog{
		HabitID:   habitID,
		Date:      day,
		Completed: completed,
		LoggedAt:  time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "logged_at", "updated_at"}),
	}).Create(log).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so the returned row carries the stored ID on the update path.
	var stored models.HabitLog
	if err := s.db.Where("habit_id = ? AND date = ?", habitID, day).First(&stored).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stored, nil
}

// ReorderHabits assigns display_order = index for each id, as one atomic
// batch. The list must contain every active habit exactly once: an
// unknown or archived id fails with HABIT_NOT_FOUND, duplicates or a
// partial list with ORDER_CONFLICT, and in both cases the prior ordering
// is untouched. Two concurrent reorders serialize on the store
// transaction; the last commit wins in full.
func (s *habitService) ReorderHabits(habitIDs []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var active []models.Habit
		if err := tx.Where("archived = ?", false).Find(&active).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		known := make(map[string]bool, len(active))
		for i := range active {
			known[active[i].ID] = true
		}

		seen := make(map[string]bool, len(habitIDs))
		for _, id := range habitIDs {
			if !known[id] {
				return apperrors.ErrHabitNotFound
			}
			if seen[id] {
				return apperrors.ErrOrderConflict
			}
			seen[id] = true
		}
		if len(habitIDs) != len(active) {
			return apperrors.ErrOrderConflict
		}

		for idx, id := range habitIDs {
			if err := tx.Model(&models.Habit{}).
				Where("id = ?", id).
				Update("display_order", idx).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}

// ArchiveHabit removes a habit from the active ranking. Its last order
// value is kept; ranking-aware reads filter on the archived flag, so the
// gap left behind is harmless. Archiving an already archived habit is a
// no-op.
func (s *habitService) ArchiveHabit(habitID string) error {
	var habit models.Habit
	if err := s.db.Where("id = ?", habitID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHabitNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if habit.Archived {
		return nil
	}

	if err := s.db.Model(&habit).Update("archived", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetArchivedHabits returns archived habits, most recently created first.
func (s *habitService) GetArchivedHabits() ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.db.Where("archived = ?", true).
		Order("created_at DESC").
		Find(&habits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return habits, nil
}

// GetStreak derives the current and longest runs of consecutive
// completed days. Purely read-time: backfilled or edited logs are always
// reflected, nothing is cached. The current streak ends at today, or at
// yesterday when today has not been logged yet.
func (s *habitService) GetStreak(habitID string, today time.Time) (*StreakSummary, error) {
	if _, err := s.getActiveHabit(s.db, habitID); err != nil {
		return nil, err
	}

	var logs []models.HabitLog
	if err := s.db.Where("habit_id = ? AND completed = ?", habitID, true).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &StreakSummary{HabitID: habitID}
	if len(logs) == 0 {
		return summary, nil
	}

	day := normalizeDay(today)
	// Allow the streak to end at yesterday while today is still loggable.
	if !logs[0].Date.Equal(day) {
		day = day.AddDate(0, 0, -1)
	}
	for i := range logs {
		if !logs[i].Date.Equal(day) {
			break
		}
		summary.Current++
		day = day.AddDate(0, 0, -1)
	}

	run := 1
	summary.Longest = 1
	for i := 1; i < len(logs); i++ {
		if logs[i-1].Date.Sub(logs[i].Date) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > summary.Longest {
			summary.Longest = run
		}
	}

	return summary, nil
}
