package model

import (
	"time"

	"github.com/google/uuid"
)

// Kategori nilai default untuk input harian guru.
const GradeTypeDaily = "DAILY"

// GradeModel: satu baris nilai.
// Jalur single di-resolve via (student, class, subject, tanggal);
// jalur bulk via (student, timetable, tanggal) — unique index mengikuti
// jalur bulk, jalur single pakai lookup index biasa.
// grade_date disimpan ternormalisasi ke awal hari zona sekolah.
type GradeModel struct {
	GradeID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_id" json:"grade_id"`

	GradeStudentID uuid.UUID `gorm:"type:uuid;not null;column:grade_student_id;uniqueIndex:uq_grades_timetable_key;index:idx_grades_day_key" json:"grade_student_id"`
	GradeClassID   uuid.UUID `gorm:"type:uuid;not null;column:grade_class_id;index:idx_grades_day_key"   json:"grade_class_id"`
	GradeSubjectID uuid.UUID `gorm:"type:uuid;not null;column:grade_subject_id;index:idx_grades_day_key" json:"grade_subject_id"`
	GradeDate      time.Time `gorm:"type:timestamptz;not null;column:grade_date;uniqueIndex:uq_grades_timetable_key;index:idx_grades_day_key" json:"grade_date"`

	GradeTimetableID uuid.UUID `gorm:"type:uuid;not null;column:grade_timetable_id;uniqueIndex:uq_grades_timetable_key" json:"grade_timetable_id"`

	GradeValue       float64 `gorm:"not null;column:grade_value"  json:"grade_value"`
	GradeDescription *string `gorm:"column:grade_description"     json:"grade_description,omitempty"`
	GradeType        string  `gorm:"not null;default:'DAILY';column:grade_type" json:"grade_type"`

	GradeTeacherID      uuid.UUID `gorm:"type:uuid;not null;column:grade_teacher_id"       json:"grade_teacher_id"`
	GradeAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:grade_academic_year_id" json:"grade_academic_year_id"`
	GradeBranchID       uuid.UUID `gorm:"type:uuid;not null;column:grade_branch_id"        json:"grade_branch_id"`

	// Denormalisasi dari grade_date (zona sekolah) untuk query rekap bulanan.
	GradeYear  int `gorm:"not null;column:grade_year"  json:"grade_year"`
	GradeMonth int `gorm:"not null;column:grade_month" json:"grade_month"`

	GradeCreatedAt time.Time  `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt *time.Time `gorm:"column:grade_updated_at;autoUpdateTime" json:"grade_updated_at,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }
