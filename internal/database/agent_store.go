package database

import (
	"errors"

	"airea-platform/internal/models"

	"gorm.io/gorm"
)

// GetAgentByID retrieves an agent
func (gdb *GormDB) GetAgentByID(id string) (*models.Agent, error) {
	var agent models.Agent
	err := gdb.db.Where("id = ?", id).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateAgent inserts a new agent
func (gdb *GormDB) CreateAgent(a *models.Agent) error {
	return gdb.db.Create(a).Error
}

// SpendAICredit atomically decrements an agent's credit balance.
// Returns false when the balance is already zero; the balance never
// goes negative.
func (gdb *GormDB) SpendAICredit(agentID string) (bool, error) {
	result := gdb.db.Model(&models.Agent{}).
		Where("id = ? AND ai_credits > 0", agentID).
		UpdateColumn("ai_credits", gorm.Expr("ai_credits - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GrantAICredits adds credits to an agent's balance
func (gdb *GormDB) GrantAICredits(agentID string, amount int) error {
	if amount <= 0 {
		return errors.New("credit grant must be positive")
	}
	return gdb.db.Model(&models.Agent{}).
		Where("id = ?", agentID).
		UpdateColumn("ai_credits", gorm.Expr("ai_credits + ?", amount)).Error
}

// AgentStats summarizes an agent's activity
type AgentStats struct {
	AgentID        string           `json:"agentId"`
	AICredits      int              `json:"aiCredits"`
	ListingCounts  map[string]int64 `json:"listingCounts"`
	TotalInquiries int64            `json:"totalInquiries"`
	NewInquiries   int64            `json:"newInquiries"`
}

// GetAgentStats aggregates listing and inquiry counts for an agent
func (gdb *GormDB) GetAgentStats(agentID string) (*AgentStats, error) {
	agent, err := gdb.GetAgentByID(agentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, nil
	}

	stats := &AgentStats{
		AgentID:       agentID,
		AICredits:     agent.AICredits,
		ListingCounts: make(map[string]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err = gdb.db.Model(&models.Property{}).
		Select("status, count(*) as count").
		Where("agent_id = ?", agentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ListingCounts[r.Status] = r.Count
	}

	err = gdb.db.Model(&models.Inquiry{}).
		Joins("JOIN properties ON properties.id = inquiries.property_id").
		Where("properties.agent_id = ?", agentID).
		Count(&stats.TotalInquiries).Error
	if err != nil {
		return nil, err
	}

	err = gdb.db.Model(&models.Inquiry{}).
		Joins("JOIN properties ON properties.id = inquiries.property_id").
		Where("properties.agent_id = ? AND inquiries.status = ?", agentID, models.InquiryStatusNew).
		Count(&stats.NewInquiries).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
