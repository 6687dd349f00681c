package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// ListReminders handles GET /api/v1/clinics/:clinicID/reminders
func (h *Handlers) ListReminders(c *gin.Context) {
	reminders, err := h.reminderService.List(c.Request.Context(), c.Param("clinicID"))
	if err != nil {
		h.respondError(c, err, "failed to list reminders")
		return
	}

	resp := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		resp = append(resp, toReminderResponse(r))
	}
	h.respondOK(c, resp)
}

// CreateReminder handles POST /api/v1/clinics/:clinicID/reminders
func (h *Handlers) CreateReminder(c *gin.Context) {
	in, ok := h.bindReminder(c)
	if !ok {
		return
	}

	reminder, err := h.reminderService.Create(c.Request.Context(), c.Param("clinicID"), in)
	if err != nil {
		h.respondError(c, err, "failed to create reminder")
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    toReminderResponse(reminder),
	})
}

// UpdateReminder handles PUT /api/v1/clinics/:clinicID/reminders/:id
func (h *Handlers) UpdateReminder(c *gin.Context) {
	in, ok := h.bindReminder(c)
	if !ok {
		return
	}
	existing, ok := h.clinicReminder(c)
	if !ok {
		return
	}

	reminder, err := h.reminderService.Update(c.Request.Context(), existing.ID, in)
	if err != nil {
		h.respondError(c, err, "failed to update reminder")
		return
	}

	h.respondOK(c, toReminderResponse(reminder))
}

// DeleteReminder handles DELETE /api/v1/clinics/:clinicID/reminders/:id
func (h *Handlers) DeleteReminder(c *gin.Context) {
	existing, ok := h.clinicReminder(c)
	if !ok {
		return
	}

	if err := h.reminderService.Delete(c.Request.Context(), existing.ID); err != nil {
		h.respondError(c, err, "failed to delete reminder")
		return
	}

	h.respondOK(c, gin.H{"id": existing.ID})
}

func (h *Handlers) bindReminder(c *gin.Context) (service.ReminderInput, bool) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return service.ReminderInput{}, false
	}
	in, err := toReminderInput(req)
	if err != nil {
		h.badRequest(c, err.Error())
		return service.ReminderInput{}, false
	}
	return in, true
}

func (h *Handlers) clinicReminder(c *gin.Context) (*entity.FiscalReminder, bool) {
	reminder, err := h.reminderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to load reminder")
		return nil, false
	}
	if reminder.ClinicID != c.Param("clinicID") {
		h.respondError(c, service.ErrNotFound, "")
		return nil, false
	}
	return reminder, true
}
