package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/logger"
	"kakeibo/internal/notifier"
	"kakeibo/internal/services"
)

// HabitHandler handles habit lifecycle and completion requests.
type HabitHandler struct {
	habitService services.HabitServicer
	facade       *services.Facade
	notifier     notifier.Servicer
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService services.HabitServicer, facade *services.Facade, notifier notifier.Servicer) *HabitHandler {
	return &HabitHandler{habitService: habitService, facade: facade, notifier: notifier}
}

// CreateHabitRequest represents the request payload for creating a habit.
type CreateHabitRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// LogCompletionRequest represents the request payload for logging a completion.
// Completed defaults to true when omitted.
type LogCompletionRequest struct {
	Date      string `json:"date" binding:"required,log_date"`
	Completed *bool  `json:"completed"`
}

// ReorderRequest represents the full active habit ranking.
type ReorderRequest struct {
	HabitIDs []string `json:"habit_ids" binding:"required,min=1,dive,uuid"`
}

// CreateHabit handles the creation of a new habit.
// @Summary     Create a habit
// @Description Create a habit appended to the end of the active ranking
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHabitRequest true "Habit details"
// @Success     201 {object} models.Habit "Habit created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	habit, err := h.habitService.CreateHabit(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

// GetHabits handles listing active habits in display order.
// @Summary     Get active habits
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Habit "Active habits in display order"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [get]
func (h *HabitHandler) GetHabits(c *gin.Context) {
	habits, err := h.habitService.GetActiveHabits()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// LogCompletion handles the idempotent completion upsert for one day.
// @Summary     Log habit completion
// @Description Upsert the completion flag for a habit and calendar day
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Habit ID"
// @Param       request body LogCompletionRequest true "Completion details"
// @Success     200 {object} models.HabitLog "Resulting log row"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found or archived"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/logs [post]
func (h *HabitHandler) LogCompletion(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LogCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	log, err := h.facade.LogHabitCompletion(habitID, req.Date, completed)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Streak milestones are worth a ping. Best effort only.
	if h.notifier.Enabled() && completed {
		if streak, err := h.facade.HabitStreak(habitID); err == nil && streak.Current > 0 && streak.Current%7 == 0 {
			msg := fmt.Sprintf("Habit streak: %d days in a row", streak.Current)
			if err := h.notifier.Send(msg); err != nil {
				logger.Get().Warnw("streak notification not delivered", "habit_id", habitID)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"log": log})
}

// Reorder handles replacing the active habit ranking.
// @Summary     Update habit order
// @Description Replace the full active ranking in one atomic batch
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ReorderRequest true "Ordered habit IDs"
// @Success     200 {object} MessageResponse "Order updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Unknown or archived habit in list"
// @Failure     409 {object} ErrorResponse "List does not cover the active set"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/order [put]
func (h *HabitHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.facade.UpdateHabitOrder(req.HabitIDs); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit order updated successfully"})
}

// Archive handles removing a habit from the active ranking.
// @Summary     Archive habit
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Habit ID"
// @Success     200 {object} MessageResponse "Habit archived"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/archive [post]
func (h *HabitHandler) Archive(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.habitService.ArchiveHabit(habitID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit archived successfully"})
}

// GetArchivedHabits handles listing archived habits.
// @Summary     Get archived habits
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Habit "Archived habits"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/archived [get]
func (h *HabitHandler) GetArchivedHabits(c *gin.Context) {
	habits, err := h.facade.ArchivedHabits()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// GetStreak handles the streak derivation query.
// @Summary     Get habit streak
// @Description Current and longest runs of consecutive completed days
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Habit ID"
// @Success     200 {object} services.StreakSummary "Streak summary"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found or archived"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/streak [get]
func (h *HabitHandler) GetStreak(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	streak, err := h.facade.HabitStreak(habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
