package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// Request models

// OperatingHoursRuleRequest is one weekday entry of a bulk hours update
type OperatingHoursRuleRequest struct {
	DayOfWeek int     `json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "HH:MM", required when isOpen
	CloseTime *string `json:"closeTime,omitempty"` // "HH:MM", required when isOpen
}

// UpdateOperatingHoursRequest replaces the weekly ruleset
type UpdateOperatingHoursRequest struct {
	Rules []OperatingHoursRuleRequest `json:"rules"`
}

// CreateDateBlockRequest adds an unavailability range
type CreateDateBlockRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	BlockType   string     `json:"blockType"`
	StartDate   string     `json:"startDate"` // "2025-10-15"
	EndDate     string     `json:"endDate"`
	StartTime   *string    `json:"startTime,omitempty"` // both or neither; omitted = all-day
	EndTime     *string    `json:"endTime,omitempty"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
}

// Response models

// OperatingHoursRuleResponse is one weekday rule
type OperatingHoursRuleResponse struct {
	ID        int64   `json:"id"`
	DayOfWeek int     `json:"dayOfWeek"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// DateBlockResponse is one unavailability range
type DateBlockResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	BlockType   string    `json:"blockType"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	StartTime   *string   `json:"startTime,omitempty"`
	EndTime     *string   `json:"endTime,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ScheduleResponse is the combined public schedule view
type ScheduleResponse struct {
	OperatingHours []OperatingHoursRuleResponse `json:"operatingHours"`
	DateBlocks     []DateBlockResponse          `json:"dateBlocks"`
}

// Conversion helpers

// FromDomainOperatingHours converts weekly rules to DTOs
func FromDomainOperatingHours(rules []domain.OperatingHoursRule) []OperatingHoursRuleResponse {
	result := make([]OperatingHoursRuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, OperatingHoursRuleResponse{
			ID:        rule.ID,
			DayOfWeek: rule.DayOfWeek,
			IsOpen:    rule.IsOpen,
			OpenTime:  timeStringPtr(rule.OpenTime),
			CloseTime: timeStringPtr(rule.CloseTime),
		})
	}
	return result
}

// FromDomainDateBlock converts one block to a DTO
func FromDomainDateBlock(block *domain.DateBlock) *DateBlockResponse {
	if block == nil {
		return nil
	}
	return &DateBlockResponse{
		ID:          block.ID,
		Title:       block.Title,
		Description: block.Description,
		BlockType:   string(block.BlockType),
		StartDate:   block.StartDate.Format(domain.DateFormat),
		EndDate:     block.EndDate.Format(domain.DateFormat),
		StartTime:   timeStringPtr(block.StartTime),
		EndTime:     timeStringPtr(block.EndTime),
		CreatedAt:   block.CreatedAt,
	}
}

// FromDomainDateBlocks converts a slice of blocks to DTOs
func FromDomainDateBlocks(blocks []domain.DateBlock) []DateBlockResponse {
	result := make([]DateBlockResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *FromDomainDateBlock(&blocks[i]))
	}
	return result
}

func timeStringPtr(ts *types.TimeString) *string {
	if ts == nil {
		return nil
	}
	s := ts.String()
	return &s
}
