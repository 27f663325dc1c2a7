// file: internals/features/school/records/grades/dto/grade_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/records/grades/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON) — jalur single. Batas nilai create: [0, 100]
// (0 dan 100 sah; pointer supaya 0 tidak tertelan required).
type CreateGradeRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id"   validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Date      string    `json:"date"       validate:"required"`

	Value       *float64 `json:"value"       validate:"required,min=0,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
}

// Item jalur bulk; points <= 0 digugurkan filter (dilaporkan di invalid_rows).
type BulkGradeItem struct {
	StudentID string  `json:"student_id"`
	Points    float64 `json:"points"`
	Comments  *string `json:"comments" validate:"omitempty,max=1000"`
}

// Bulk (JSON) — satu (class, subject) per body. timetable_id opsional:
// kalau kosong, slot di-provision otomatis.
type BulkGradeRequest struct {
	TimetableID *uuid.UUID      `json:"timetable_id"`
	ClassID     uuid.UUID       `json:"class_id"   validate:"required"`
	SubjectID   uuid.UUID       `json:"subject_id" validate:"required"`
	Date        string          `json:"date"       validate:"required"`
	Grades      []BulkGradeItem `json:"grades"     validate:"required,min=1,dive"`
}

// Update (PUT) — batas bawah di jalur update memang 1, bukan 0;
// perbedaan dengan jalur create dipertahankan apa adanya.
type UpdateGradeRequest struct {
	GradeID     uuid.UUID `json:"grade_id"    validate:"required"`
	Value       *float64  `json:"value"       validate:"required,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
}

// Delete per-hari
type DeleteGradeRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id"   validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Date      string    `json:"date"       validate:"required"`
}

// List (query): (timetable_id + date) ATAU (class_id + subject_id + month[+year]),
// opsional dipersempit academic_year_id.
type ListGradesQuery struct {
	TimetableID *uuid.UUID `query:"timetable_id"`
	Date        *string    `query:"date"`

	ClassID   *uuid.UUID `query:"class_id"`
	SubjectID *uuid.UUID `query:"subject_id"`
	Month     *int       `query:"month" validate:"omitempty,min=1,max=12"`
	Year      *int       `query:"year"  validate:"omitempty,min=2000,max=2100"`

	AcademicYearID *uuid.UUID `query:"academic_year_id"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type GradeResponse struct {
	GradeID uuid.UUID `json:"grade_id"`

	GradeStudentID   uuid.UUID `json:"grade_student_id"`
	GradeClassID     uuid.UUID `json:"grade_class_id"`
	GradeSubjectID   uuid.UUID `json:"grade_subject_id"`
	GradeDate        time.Time `json:"grade_date"`
	GradeTimetableID uuid.UUID `json:"grade_timetable_id"`

	GradeValue       float64 `json:"grade_value"`
	GradeDescription *string `json:"grade_description,omitempty"`
	GradeType        string  `json:"grade_type"`

	GradeTeacherID uuid.UUID `json:"grade_teacher_id"`
	GradeYear      int       `json:"grade_year"`
	GradeMonth     int       `json:"grade_month"`

	GradeCreatedAt time.Time  `json:"grade_created_at"`
	GradeUpdatedAt *time.Time `json:"grade_updated_at,omitempty"`
}

func NewGradeResponse(mdl m.GradeModel) GradeResponse {
	return GradeResponse{
		GradeID:          mdl.GradeID,
		GradeStudentID:   mdl.GradeStudentID,
		GradeClassID:     mdl.GradeClassID,
		GradeSubjectID:   mdl.GradeSubjectID,
		GradeDate:        mdl.GradeDate,
		GradeTimetableID: mdl.GradeTimetableID,
		GradeValue:       mdl.GradeValue,
		GradeDescription: mdl.GradeDescription,
		GradeType:        mdl.GradeType,
		GradeTeacherID:   mdl.GradeTeacherID,
		GradeYear:        mdl.GradeYear,
		GradeMonth:       mdl.GradeMonth,
		GradeCreatedAt:   mdl.GradeCreatedAt,
		GradeUpdatedAt:   mdl.GradeUpdatedAt,
	}
}

// InvalidRow: baris bulk yang gugur di filter awal (jejak audit).
type InvalidRow struct {
	Index     int    `json:"index"`
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

type BulkGradeResult struct {
	SavedRecords int          `json:"saved_records"`
	TotalRecords int          `json:"total_records"`
	Errors       []string     `json:"errors,omitempty"`
	InvalidRows  []InvalidRow `json:"invalid_rows,omitempty"`
}
