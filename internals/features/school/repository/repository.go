// Package repository mendefinisikan kontrak penyimpanan per-agregat
// untuk engine rekap kehadiran & nilai, plus implementasi GORM-nya.
// Implementasi in-memory untuk test ada di sub-package inmem.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	classmodel "sekolahku_backend/internals/features/school/academics/classes/model"
	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
	attendancemodel "sekolahku_backend/internals/features/school/records/attendance/model"
	grademodel "sekolahku_backend/internals/features/school/records/grades/model"
)

var (
	// ErrNotFound: record tidak ada untuk key/id yang diminta.
	ErrNotFound = errors.New("repository: record tidak ditemukan")
	// ErrDuplicateKey: pelanggaran unique index natural key (SQLSTATE 23505).
	ErrDuplicateKey = errors.New("repository: duplikat natural key")
)

// AttendanceKey adalah natural key satu baris kehadiran.
// Date wajib sudah ternormalisasi ke awal hari zona sekolah.
type AttendanceKey struct {
	StudentID    uuid.UUID
	ClassID      uuid.UUID
	SubjectID    uuid.UUID
	Date         time.Time
	LessonNumber int
}

// DayDeleteFilter: cakupan delete per-hari (range, bukan exact key).
type DayDeleteFilter struct {
	StudentID uuid.UUID
	ClassID   uuid.UUID
	SubjectID uuid.UUID
	TeacherID uuid.UUID
	From      time.Time
	To        time.Time
}

// GradeFilter: kombinasi query GET /grades.
type GradeFilter struct {
	TimetableID *uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time

	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	Year      *int
	Month     *int

	AcademicYearID *uuid.UUID
	BranchID       *uuid.UUID
}

type AttendanceRepository interface {
	FindByKey(ctx context.Context, key AttendanceKey) (*attendancemodel.AttendanceModel, error)
	FindByID(ctx context.Context, id, branchID uuid.UUID) (*attendancemodel.AttendanceModel, error)
	// UpsertByKey: lookup+write dalam satu transaksi di atas unique index
	// natural key. Mengembalikan true bila baris baru dibuat.
	UpsertByKey(ctx context.Context, rec *attendancemodel.AttendanceModel) (bool, error)
	Update(ctx context.Context, rec *attendancemodel.AttendanceModel) error
	DeleteDay(ctx context.Context, f DayDeleteFilter) (int64, error)
	ListDay(ctx context.Context, classID, subjectID, branchID uuid.UUID, from, to time.Time) ([]attendancemodel.AttendanceModel, error)
}

type GradeRepository interface {
	// FindByDayKey: jalur single — (student, class, subject, hari).
	FindByDayKey(ctx context.Context, studentID, classID, subjectID uuid.UUID, from, to time.Time) (*grademodel.GradeModel, error)
	FindByID(ctx context.Context, id, branchID uuid.UUID) (*grademodel.GradeModel, error)
	// UpsertByTimetableKey: jalur bulk — (student, timetable, hari),
	// transaksional di atas unique index.
	UpsertByTimetableKey(ctx context.Context, rec *grademodel.GradeModel) (bool, error)
	Update(ctx context.Context, rec *grademodel.GradeModel) error
	DeleteDay(ctx context.Context, f DayDeleteFilter) (int64, error)
	List(ctx context.Context, f GradeFilter) ([]grademodel.GradeModel, error)
}

type TimetableRepository interface {
	FindActive(ctx context.Context, classID, subjectID uuid.UUID) (*timetablemodel.TimetableModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*timetablemodel.TimetableModel, error)
	// CreateIfAbsent: insert dengan ON CONFLICT DO NOTHING pada partial
	// unique index (class, subject, active) — race provisioning jadi
	// single-winner.
	CreateIfAbsent(ctx context.Context, t *timetablemodel.TimetableModel) error
}

type ClassRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*classmodel.ClassModel, error)
}
