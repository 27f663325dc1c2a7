package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassModel adalah agregat kelas (read-only untuk engine rekap):
// sumber resolusi branch & tahun ajaran saat provisioning slot.
type ClassModel struct {
	ClassID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`

	ClassName           string    `gorm:"not null;column:class_name"                  json:"class_name"`
	ClassBranchID       uuid.UUID `gorm:"type:uuid;not null;column:class_branch_id"   json:"class_branch_id"`
	ClassAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:class_academic_year_id" json:"class_academic_year_id"`
	ClassIsActive       bool      `gorm:"not null;default:true;column:class_is_active" json:"class_is_active"`

	ClassCreatedAt time.Time  `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt *time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
