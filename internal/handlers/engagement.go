package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"airea-platform/internal/database"
	"airea-platform/internal/models"
	"airea-platform/internal/search"

	"github.com/gin-gonic/gin"
)

// EngagementHandler serves favorites, inquiries, saved searches,
// notifications and agent calendar endpoints.
type EngagementHandler struct {
	store    *database.GormDB
	pipeline *search.Pipeline
}

func NewEngagementHandler(store *database.GormDB, pipeline *search.Pipeline) *EngagementHandler {
	return &EngagementHandler{store: store, pipeline: pipeline}
}

// AddFavorite saves a listing for a user. Saving twice is a no-op.
func (h *EngagementHandler) AddFavorite(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		PropertyID string `json:"propertyId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.store.GetPropertyByID(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	fav, err := h.store.AddFavorite(userID, req.PropertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fav)
}

// RemoveFavorite deletes a saved listing
func (h *EngagementHandler) RemoveFavorite(c *gin.Context) {
	userID := c.Param("id")
	propertyID := c.Param("propertyId")

	if err := h.store.RemoveFavorite(userID, propertyID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// GetFavorites lists a user's saved listings
func (h *EngagementHandler) GetFavorites(c *gin.Context) {
	userID := c.Param("id")

	properties, err := h.store.GetFavorites(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// CreateInquiry records a buyer message and notifies the listing agent
func (h *EngagementHandler) CreateInquiry(c *gin.Context) {
	var req struct {
		PropertyID  string `json:"propertyId" binding:"required"`
		SenderName  string `json:"senderName" binding:"required"`
		SenderEmail string `json:"senderEmail" binding:"required"`
		SenderPhone string `json:"senderPhone"`
		Message     string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.store.GetPropertyByID(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	inq := &models.Inquiry{
		PropertyID:  req.PropertyID,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		SenderPhone: req.SenderPhone,
		Message:     req.Message,
		Status:      models.InquiryStatusNew,
	}
	if err := h.store.CreateInquiry(inq); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload, _ := json.Marshal(gin.H{"inquiryId": inq.ID, "propertyId": req.PropertyID})
	_ = h.store.CreateNotification(&models.Notification{
		RecipientID: property.AgentID,
		Kind:        models.NotificationKindInquiry,
		Title:       "New inquiry for " + property.Title,
		Payload:     string(payload),
	})

	c.JSON(http.StatusCreated, inq)
}

// GetInquiries lists inquiries for an agent's listings
func (h *EngagementHandler) GetInquiries(c *gin.Context) {
	agentID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	inquiries, err := h.store.GetInquiriesForAgent(agentID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// SetInquiryStatus moves an inquiry through new -> read -> replied
func (h *EngagementHandler) SetInquiryStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inquiry id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.InquiryStatus(req.Status)
	if !models.ValidInquiryStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + req.Status})
		return
	}

	if err := h.store.SetInquiryStatus(uint(id), status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// CreateCalendarEvent schedules a viewing or appointment for an agent
func (h *EngagementHandler) CreateCalendarEvent(c *gin.Context) {
	agentID := c.Param("id")

	var req struct {
		PropertyID *string   `json:"propertyId"`
		Title      string    `json:"title" binding:"required"`
		StartsAt   time.Time `json:"startsAt" binding:"required"`
		EndsAt     time.Time `json:"endsAt" binding:"required"`
		Notes      string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endsAt must be after startsAt"})
		return
	}

	ev := &models.CalendarEvent{
		AgentID:    agentID,
		PropertyID: req.PropertyID,
		Title:      req.Title,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Notes:      req.Notes,
	}
	if err := h.store.CreateCalendarEvent(ev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// GetCalendarEvents lists an agent's appointments within a window
func (h *EngagementHandler) GetCalendarEvents(c *gin.Context) {
	agentID := c.Param("id")

	from := time.Now().AddDate(0, 0, -7)
	to := time.Now().AddDate(0, 0, 30)
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			to = t
		}
	}

	events, err := h.store.GetCalendarEvents(agentID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// CreateSavedSearch stores a query with its extracted filters so the
// daily job can alert on new matches
func (h *EngagementHandler) CreateSavedSearch(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Query         string `json:"query" binding:"required"`
		AlertsEnabled *bool  `json:"alertsEnabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters := search.ParseHeuristic(req.Query, h.pipeline.Dictionary())
	filtersJSON, _ := json.Marshal(filters)

	alerts := true
	if req.AlertsEnabled != nil {
		alerts = *req.AlertsEnabled
	}

	ss := &models.SavedSearch{
		UserID:        userID,
		Query:         req.Query,
		FiltersJSON:   string(filtersJSON),
		AlertsEnabled: alerts,
	}
	if err := h.store.CreateSavedSearch(ss); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ss)
}

// GetSavedSearches lists a user's saved searches
func (h *EngagementHandler) GetSavedSearches(c *gin.Context) {
	userID := c.Param("id")

	searches, err := h.store.GetSavedSearches(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"saved_searches": searches,
		"count":          len(searches),
	})
}

// GetNotifications lists a user's notifications, newest first
func (h *EngagementHandler) GetNotifications(c *gin.Context) {
	userID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.store.GetNotifications(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead marks one notification as read
func (h *EngagementHandler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.store.MarkNotificationRead(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
}

// GetAgentStats returns listing and inquiry counts plus remaining credits
func (h *EngagementHandler) GetAgentStats(c *gin.Context) {
	agentID := c.Param("id")

	stats, err := h.store.GetAgentStats(agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GrantCredits tops up an agent's AI search credits
func (h *EngagementHandler) GrantCredits(c *gin.Context) {
	agentID := c.Param("id")

	var req struct {
		Amount int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 || req.Amount > 10000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be between 1 and 10000"})
		return
	}

	if err := h.store.GrantAICredits(agentID, req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.store.GetAgentByID(agentID)
	if err != nil || agent == nil {
		c.JSON(http.StatusOK, gin.H{"granted": req.Amount})
		return
	}

	c.JSON(http.StatusOK, gin.H{"granted": req.Amount, "aiCredits": agent.AICredits})
}
