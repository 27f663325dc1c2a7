package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Penanda slot virtual: slot yang dibuat otomatis oleh engine rekap
// supaya nilai selalu punya referensi jadwal yang sah.
const VirtualBuilding = "VIRTUAL"

// TimetableModel merepresentasikan satu slot jadwal (riil atau virtual).
// Slot dimiliki agregat kelas/tahun ajaran — banyak nilai boleh menunjuk
// ke satu slot yang sama.
type TimetableModel struct {
	TimetableID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:timetable_id" json:"timetable_id"`

	TimetableBranchID       uuid.UUID `gorm:"type:uuid;not null;column:timetable_branch_id"        json:"timetable_branch_id"`
	TimetableClassID        uuid.UUID `gorm:"type:uuid;not null;column:timetable_class_id;uniqueIndex:uq_timetables_active_class_subject,where:timetable_is_active" json:"timetable_class_id"`
	TimetableAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:timetable_academic_year_id" json:"timetable_academic_year_id"`
	TimetableSubjectID      uuid.UUID `gorm:"type:uuid;not null;column:timetable_subject_id;uniqueIndex:uq_timetables_active_class_subject,where:timetable_is_active" json:"timetable_subject_id"`

	TimetableStartTime datatypes.Time `gorm:"column:timetable_start_time" json:"timetable_start_time"`
	TimetableEndTime   datatypes.Time `gorm:"column:timetable_end_time"   json:"timetable_end_time"`

	// Nomor les yang dicakup slot ini (virtual: {1,2})
	TimetableLessonNumbers pq.Int64Array `gorm:"column:timetable_lesson_numbers;type:int[]" json:"timetable_lesson_numbers"`

	TimetableBuilding string `gorm:"not null;default:'';column:timetable_building"    json:"timetable_building"`
	TimetableIsActive bool   `gorm:"not null;default:true;column:timetable_is_active" json:"timetable_is_active"`

	TimetableCreatedAt time.Time  `gorm:"column:timetable_created_at;autoCreateTime" json:"timetable_created_at"`
	TimetableUpdatedAt *time.Time `gorm:"column:timetable_updated_at;autoUpdateTime" json:"timetable_updated_at,omitempty"`
}

func (TimetableModel) TableName() string { return "timetables" }

// IsVirtual: slot hasil provisioning otomatis, bukan jadwal riil.
func (t TimetableModel) IsVirtual() bool { return t.TimetableBuilding == VirtualBuilding }
