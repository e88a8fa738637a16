package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ImportStatusProcessing          = "processing"
	ImportStatusCompleted           = "completed"
	ImportStatusCompletedWithErrors = "completed_with_errors"
	ImportStatusFailed              = "failed"
	ImportStatusRolledBack          = "rolled_back"
)

const (
	SourceTypeCSV = "csv"
	SourceTypeOFX = "ofx"
	SourceTypeQFX = "qfx"
)

var (
	ErrInvalidSourceType   = errors.New("invalid import source type")
	ErrInvalidImportStatus = errors.New("invalid import status")
)

// ImportBatch groups the transactions created by one import so they can be
// reported on and rolled back together.
type ImportBatch struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
	SourceType     string     `gorm:"type:varchar(10);not null" json:"source_type"`
	FileName       string     `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	FileFormat     string     `gorm:"type:varchar(50)" json:"file_format,omitempty"`
	TotalRows      int        `gorm:"not null;default:0" json:"total_rows"`
	ImportedCount  int        `gorm:"not null;default:0" json:"imported_count"`
	DuplicateCount int        `gorm:"not null;default:0" json:"duplicate_count"`
	SkippedCount   int        `gorm:"not null;default:0" json:"skipped_count"`
	ErrorCount     int        `gorm:"not null;default:0" json:"error_count"`
	Status         string     `gorm:"type:varchar(30);not null;index" json:"status"`
	OriginalFile   []byte     `json:"-"`
	OriginalSize   int        `gorm:"not null;default:0" json:"original_size"`
	IsCompressed   bool       `gorm:"not null;default:false" json:"is_compressed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	RolledBackAt   *time.Time `json:"rolled_back_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for ImportBatch
func (b *ImportBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = ImportStatusProcessing
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
	return b.Validate()
}

// BeforeUpdate hook for ImportBatch
func (b *ImportBatch) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return nil
}

// Validate validates the import batch fields
func (b *ImportBatch) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if b.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}
	if !IsValidSourceType(b.SourceType) {
		return ErrInvalidSourceType
	}
	if !IsValidImportStatus(b.Status) {
		return ErrInvalidImportStatus
	}
	return nil
}

// Finalize sets the terminal status from the counts.
func (b *ImportBatch) Finalize(now time.Time) {
	if b.ErrorCount > 0 {
		b.Status = ImportStatusCompletedWithErrors
	} else {
		b.Status = ImportStatusCompleted
	}
	b.CompletedAt = &now
}

func (b *ImportBatch) IsRolledBack() bool {
	return b.Status == ImportStatusRolledBack
}

func (b *ImportBatch) HasOriginalFile() bool {
	return len(b.OriginalFile) > 0
}

func IsValidSourceType(sourceType string) bool {
	switch sourceType {
	case SourceTypeCSV, SourceTypeOFX, SourceTypeQFX:
		return true
	}
	return false
}

func IsValidImportStatus(status string) bool {
	switch status {
	case ImportStatusProcessing, ImportStatusCompleted, ImportStatusCompletedWithErrors,
		ImportStatusFailed, ImportStatusRolledBack:
		return true
	}
	return false
}

// TableName specifies the table name for GORM
func (ImportBatch) TableName() string {
	return "import_batches"
}
