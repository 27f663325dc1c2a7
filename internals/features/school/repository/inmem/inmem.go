// Package inmem menyediakan implementasi in-memory dari kontrak
// repository untuk test dan pengembangan lokal tanpa PostgreSQL.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	classmodel "sekolahku_backend/internals/features/school/academics/classes/model"
	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
	attendancemodel "sekolahku_backend/internals/features/school/records/attendance/model"
	grademodel "sekolahku_backend/internals/features/school/records/grades/model"
	"sekolahku_backend/internals/features/school/repository"
)

/* =========================================================
 * Attendance
 * ========================================================= */

type AttendanceRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]attendancemodel.AttendanceModel

	// FailStudents: student id yang dipaksa gagal saat upsert,
	// untuk simulasi kegagalan store per-item di test bulk.
	FailStudents map[uuid.UUID]error
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{
		rows:         make(map[uuid.UUID]attendancemodel.AttendanceModel),
		FailStudents: make(map[uuid.UUID]error),
	}
}

func (r *AttendanceRepo) All() []attendancemodel.AttendanceModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]attendancemodel.AttendanceModel, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, rec)
	}
	return out
}

func (r *AttendanceRepo) FindByKey(_ context.Context, key repository.AttendanceKey) (*attendancemodel.AttendanceModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.findByKeyLocked(key); ok {
		cp := rec
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *AttendanceRepo) FindByID(_ context.Context, id, branchID uuid.UUID) (*attendancemodel.AttendanceModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok || rec.AttendanceBranchID != branchID {
		return nil, repository.ErrNotFound
	}
	cp := rec
	return &cp, nil
}

func (r *AttendanceRepo) UpsertByKey(_ context.Context, rec *attendancemodel.AttendanceModel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailStudents[rec.AttendanceStudentID]; ok {
		return false, err
	}

	key := repository.AttendanceKey{
		StudentID:    rec.AttendanceStudentID,
		ClassID:      rec.AttendanceClassID,
		SubjectID:    rec.AttendanceSubjectID,
		Date:         rec.AttendanceDate,
		LessonNumber: rec.AttendanceLessonNumber,
	}
	if existing, ok := r.findByKeyLocked(key); ok {
		existing.AttendanceStatus = rec.AttendanceStatus
		existing.AttendanceNotes = rec.AttendanceNotes
		existing.AttendanceTeacherID = rec.AttendanceTeacherID
		now := time.Now()
		existing.AttendanceUpdatedAt = &now
		r.rows[existing.AttendanceID] = existing
		*rec = existing
		return false, nil
	}

	if rec.AttendanceID == uuid.Nil {
		rec.AttendanceID = uuid.New()
	}
	if rec.AttendanceCreatedAt.IsZero() {
		rec.AttendanceCreatedAt = time.Now()
	}
	r.rows[rec.AttendanceID] = *rec
	return true, nil
}

func (r *AttendanceRepo) Update(_ context.Context, rec *attendancemodel.AttendanceModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[rec.AttendanceID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	rec.AttendanceUpdatedAt = &now
	r.rows[rec.AttendanceID] = *rec
	return nil
}

func (r *AttendanceRepo) DeleteDay(_ context.Context, f repository.DayDeleteFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rec := range r.rows {
		if rec.AttendanceStudentID == f.StudentID &&
			rec.AttendanceClassID == f.ClassID &&
			rec.AttendanceSubjectID == f.SubjectID &&
			rec.AttendanceTeacherID == f.TeacherID &&
			!rec.AttendanceDate.Before(f.From) && rec.AttendanceDate.Before(f.To) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *AttendanceRepo) ListDay(_ context.Context, classID, subjectID, branchID uuid.UUID, from, to time.Time) ([]attendancemodel.AttendanceModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendancemodel.AttendanceModel
	for _, rec := range r.rows {
		if rec.AttendanceClassID == classID &&
			rec.AttendanceSubjectID == subjectID &&
			rec.AttendanceBranchID == branchID &&
			!rec.AttendanceDate.Before(from) && rec.AttendanceDate.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *AttendanceRepo) findByKeyLocked(key repository.AttendanceKey) (attendancemodel.AttendanceModel, bool) {
	for _, rec := range r.rows {
		if rec.AttendanceStudentID == key.StudentID &&
			rec.AttendanceClassID == key.ClassID &&
			rec.AttendanceSubjectID == key.SubjectID &&
			rec.AttendanceDate.Equal(key.Date) &&
			rec.AttendanceLessonNumber == key.LessonNumber {
			return rec, true
		}
	}
	return attendancemodel.AttendanceModel{}, false
}

/* =========================================================
 * Grade
 * ========================================================= */

type GradeRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]grademodel.GradeModel

	FailStudents map[uuid.UUID]error
}

func NewGradeRepo() *GradeRepo {
	return &GradeRepo{
		rows:         make(map[uuid.UUID]grademodel.GradeModel),
		FailStudents: make(map[uuid.UUID]error),
	}
}

func (r *GradeRepo) All() []grademodel.GradeModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]grademodel.GradeModel, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, rec)
	}
	return out
}

func (r *GradeRepo) FindByDayKey(_ context.Context, studentID, classID, subjectID uuid.UUID, from, to time.Time) (*grademodel.GradeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.rows {
		if rec.GradeStudentID == studentID &&
			rec.GradeClassID == classID &&
			rec.GradeSubjectID == subjectID &&
			!rec.GradeDate.Before(from) && rec.GradeDate.Before(to) {
			cp := rec
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *GradeRepo) FindByID(_ context.Context, id, branchID uuid.UUID) (*grademodel.GradeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok || rec.GradeBranchID != branchID {
		return nil, repository.ErrNotFound
	}
	cp := rec
	return &cp, nil
}

func (r *GradeRepo) UpsertByTimetableKey(_ context.Context, rec *grademodel.GradeModel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailStudents[rec.GradeStudentID]; ok {
		return false, err
	}

	for id, existing := range r.rows {
		if existing.GradeStudentID == rec.GradeStudentID &&
			existing.GradeTimetableID == rec.GradeTimetableID &&
			existing.GradeDate.Equal(rec.GradeDate) {
			existing.GradeValue = rec.GradeValue
			existing.GradeDescription = rec.GradeDescription
			existing.GradeTeacherID = rec.GradeTeacherID
			now := time.Now()
			existing.GradeUpdatedAt = &now
			r.rows[id] = existing
			*rec = existing
			return false, nil
		}
	}

	if rec.GradeID == uuid.Nil {
		rec.GradeID = uuid.New()
	}
	if rec.GradeCreatedAt.IsZero() {
		rec.GradeCreatedAt = time.Now()
	}
	r.rows[rec.GradeID] = *rec
	return true, nil
}

func (r *GradeRepo) Update(_ context.Context, rec *grademodel.GradeModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[rec.GradeID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	rec.GradeUpdatedAt = &now
	r.rows[rec.GradeID] = *rec
	return nil
}

func (r *GradeRepo) DeleteDay(_ context.Context, f repository.DayDeleteFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rec := range r.rows {
		if rec.GradeStudentID == f.StudentID &&
			rec.GradeClassID == f.ClassID &&
			rec.GradeSubjectID == f.SubjectID &&
			rec.GradeTeacherID == f.TeacherID &&
			!rec.GradeDate.Before(f.From) && rec.GradeDate.Before(f.To) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *GradeRepo) List(_ context.Context, f repository.GradeFilter) ([]grademodel.GradeModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []grademodel.GradeModel
	for _, rec := range r.rows {
		if f.TimetableID != nil && rec.GradeTimetableID != *f.TimetableID {
			continue
		}
		if f.DateFrom != nil && f.DateTo != nil &&
			(rec.GradeDate.Before(*f.DateFrom) || !rec.GradeDate.Before(*f.DateTo)) {
			continue
		}
		if f.ClassID != nil && rec.GradeClassID != *f.ClassID {
			continue
		}
		if f.SubjectID != nil && rec.GradeSubjectID != *f.SubjectID {
			continue
		}
		if f.Year != nil && rec.GradeYear != *f.Year {
			continue
		}
		if f.Month != nil && rec.GradeMonth != *f.Month {
			continue
		}
		if f.AcademicYearID != nil && rec.GradeAcademicYearID != *f.AcademicYearID {
			continue
		}
		if f.BranchID != nil && rec.GradeBranchID != *f.BranchID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

/* =========================================================
 * Timetable
 * ========================================================= */

type TimetableRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]timetablemodel.TimetableModel
}

func NewTimetableRepo() *TimetableRepo {
	return &TimetableRepo{rows: make(map[uuid.UUID]timetablemodel.TimetableModel)}
}

func (r *TimetableRepo) All() []timetablemodel.TimetableModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]timetablemodel.TimetableModel, 0, len(r.rows))
	for _, t := range r.rows {
		out = append(out, t)
	}
	return out
}

func (r *TimetableRepo) Seed(t timetablemodel.TimetableModel) timetablemodel.TimetableModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.TimetableID == uuid.Nil {
		t.TimetableID = uuid.New()
	}
	r.rows[t.TimetableID] = t
	return t
}

func (r *TimetableRepo) FindActive(_ context.Context, classID, subjectID uuid.UUID) (*timetablemodel.TimetableModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.findActiveLocked(classID, subjectID); ok {
		cp := t
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *TimetableRepo) FindByID(_ context.Context, id uuid.UUID) (*timetablemodel.TimetableModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (r *TimetableRepo) CreateIfAbsent(_ context.Context, t *timetablemodel.TimetableModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// semantik ON CONFLICT DO NOTHING pada (class, subject, active)
	if _, ok := r.findActiveLocked(t.TimetableClassID, t.TimetableSubjectID); ok {
		return nil
	}
	if t.TimetableID == uuid.Nil {
		t.TimetableID = uuid.New()
	}
	if t.TimetableCreatedAt.IsZero() {
		t.TimetableCreatedAt = time.Now()
	}
	r.rows[t.TimetableID] = *t
	return nil
}

func (r *TimetableRepo) findActiveLocked(classID, subjectID uuid.UUID) (timetablemodel.TimetableModel, bool) {
	for _, t := range r.rows {
		if t.TimetableClassID == classID && t.TimetableSubjectID == subjectID && t.TimetableIsActive {
			return t, true
		}
	}
	return timetablemodel.TimetableModel{}, false
}

/* =========================================================
 * Class
 * ========================================================= */

type ClassRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]classmodel.ClassModel
}

func NewClassRepo() *ClassRepo {
	return &ClassRepo{rows: make(map[uuid.UUID]classmodel.ClassModel)}
}

func (r *ClassRepo) Seed(cls classmodel.ClassModel) classmodel.ClassModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cls.ClassID == uuid.Nil {
		cls.ClassID = uuid.New()
	}
	r.rows[cls.ClassID] = cls
	return cls
}

func (r *ClassRepo) FindByID(_ context.Context, id uuid.UUID) (*classmodel.ClassModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cls, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := cls
	return &cp, nil
}
