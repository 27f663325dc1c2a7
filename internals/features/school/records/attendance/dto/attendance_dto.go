// file: internals/features/school/records/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/records/attendance/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON) — jalur single record
type CreateAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id"   validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Date      string    `json:"date"       validate:"required"`

	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes"  validate:"omitempty,max=500"`

	// Opsional; default 1. Selain 1/2 ditolak.
	LessonNumber *int `json:"lesson_number" validate:"omitempty,oneof=1 2"`
}

// Item jalur bulk. StudentID sengaja string mentah: baris tidak valid
// dilaporkan di invalid_rows, bukan menggagalkan parsing body.
type BulkAttendanceItem struct {
	StudentID string  `json:"student_id"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

// Bulk (JSON) — satu (class, subject) per body, by construction.
type BulkAttendanceRequest struct {
	ClassID      uuid.UUID            `json:"class_id"   validate:"required"`
	SubjectID    uuid.UUID            `json:"subject_id" validate:"required"`
	Date         string               `json:"date"       validate:"required"`
	LessonNumber *int                 `json:"lesson_number" validate:"omitempty,oneof=1 2"`
	Attendance   []BulkAttendanceItem `json:"attendance" validate:"required,min=1,dive"`
}

// Update by surrogate id (PUT)
type UpdateAttendanceRequest struct {
	ID     uuid.UUID `json:"id"     validate:"required"`
	Status string    `json:"status" validate:"required"`
	Notes  *string   `json:"notes"  validate:"omitempty,max=500"`
}

// Delete per-hari (range, tanpa lesson_number)
type DeleteAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id"   validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Date      string    `json:"date"       validate:"required"`
}

// List (query) — layar register harian
type ListAttendanceQuery struct {
	ClassID   uuid.UUID `query:"class_id"   validate:"required"`
	SubjectID uuid.UUID `query:"subject_id" validate:"required"`
	Date      string    `query:"date"       validate:"required"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AttendanceResponse struct {
	AttendanceID uuid.UUID `json:"attendance_id"`

	AttendanceStudentID    uuid.UUID `json:"attendance_student_id"`
	AttendanceClassID      uuid.UUID `json:"attendance_class_id"`
	AttendanceSubjectID    uuid.UUID `json:"attendance_subject_id"`
	AttendanceDate         time.Time `json:"attendance_date"`
	AttendanceLessonNumber int       `json:"attendance_lesson_number"`

	AttendanceStatus m.AttendanceStatus `json:"attendance_status"`
	AttendanceNotes  *string            `json:"attendance_notes,omitempty"`

	AttendanceTeacherID uuid.UUID `json:"attendance_teacher_id"`

	AttendanceCreatedAt time.Time  `json:"attendance_created_at"`
	AttendanceUpdatedAt *time.Time `json:"attendance_updated_at,omitempty"`
}

func NewAttendanceResponse(mdl m.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:           mdl.AttendanceID,
		AttendanceStudentID:    mdl.AttendanceStudentID,
		AttendanceClassID:      mdl.AttendanceClassID,
		AttendanceSubjectID:    mdl.AttendanceSubjectID,
		AttendanceDate:         mdl.AttendanceDate,
		AttendanceLessonNumber: mdl.AttendanceLessonNumber,
		AttendanceStatus:       mdl.AttendanceStatus,
		AttendanceNotes:        mdl.AttendanceNotes,
		AttendanceTeacherID:    mdl.AttendanceTeacherID,
		AttendanceCreatedAt:    mdl.AttendanceCreatedAt,
		AttendanceUpdatedAt:    mdl.AttendanceUpdatedAt,
	}
}

// InvalidRow: baris bulk yang gugur di filter awal — tetap dilaporkan
// ke caller sebagai jejak audit, tapi tidak dihitung di total_records.
type InvalidRow struct {
	Index     int    `json:"index"`
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// BulkAttendanceResult: kontrak respons bulk —
// zero saved = gagal total, sebagian = sukses dengan errors terlampir.
type BulkAttendanceResult struct {
	SavedRecords int          `json:"saved_records"`
	TotalRecords int          `json:"total_records"`
	Errors       []string     `json:"errors,omitempty"`
	InvalidRows  []InvalidRow `json:"invalid_rows,omitempty"`
}
