package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"tharwa/internal/logger"
	"tharwa/internal/models"
)

// auditService writes audit log entries for mutating operations.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit entry. Failures are logged and swallowed so that
// auditing never breaks the operation being audited.
func (s *auditService) Log(action, resourceType string, resourceID uint, ipAddress string, changes map[string]any) {
	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}

	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit changes",
				"action", action,
				"resource_type", resourceType,
				"error", err,
			)
		} else {
			entry.Changes = string(data)
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("failed to write audit log",
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"error", err,
		)
	}
}
