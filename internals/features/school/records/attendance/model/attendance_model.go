package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus adalah enumerasi status kehadiran harian.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// ParseAttendanceStatus menormalkan input (case-insensitive) ke enum.
func ParseAttendanceStatus(raw string) (AttendanceStatus, bool) {
	s := AttendanceStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return s, true
	default:
		return "", false
	}
}

// AttendanceModel: satu baris kehadiran per natural key
// (student, class, subject, tanggal, nomor les).
// attendance_date disimpan ternormalisasi ke awal hari zona sekolah
// sehingga unique index natural key bekerja dengan equality biasa.
type AttendanceModel struct {
	AttendanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`

	AttendanceStudentID    uuid.UUID `gorm:"type:uuid;not null;column:attendance_student_id;uniqueIndex:uq_attendances_natural_key" json:"attendance_student_id"`
	AttendanceClassID      uuid.UUID `gorm:"type:uuid;not null;column:attendance_class_id;uniqueIndex:uq_attendances_natural_key"   json:"attendance_class_id"`
	AttendanceSubjectID    uuid.UUID `gorm:"type:uuid;not null;column:attendance_subject_id;uniqueIndex:uq_attendances_natural_key" json:"attendance_subject_id"`
	AttendanceDate         time.Time `gorm:"type:timestamptz;not null;column:attendance_date;uniqueIndex:uq_attendances_natural_key" json:"attendance_date"`
	AttendanceLessonNumber int       `gorm:"not null;default:1;column:attendance_lesson_number;uniqueIndex:uq_attendances_natural_key" json:"attendance_lesson_number"`

	AttendanceStatus AttendanceStatus `gorm:"type:varchar(10);not null;column:attendance_status" json:"attendance_status"`
	AttendanceNotes  *string          `gorm:"column:attendance_notes" json:"attendance_notes,omitempty"`

	AttendanceTeacherID      uuid.UUID `gorm:"type:uuid;not null;column:attendance_teacher_id"       json:"attendance_teacher_id"`
	AttendanceAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:attendance_academic_year_id" json:"attendance_academic_year_id"`
	AttendanceBranchID       uuid.UUID `gorm:"type:uuid;not null;column:attendance_branch_id"        json:"attendance_branch_id"`

	AttendanceCreatedAt time.Time  `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt *time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }
