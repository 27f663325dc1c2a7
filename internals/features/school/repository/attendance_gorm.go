package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendancemodel "sekolahku_backend/internals/features/school/records/attendance/model"
)

type attendanceGorm struct {
	db *gorm.DB
}

func NewAttendanceGorm(db *gorm.DB) AttendanceRepository {
	return &attendanceGorm{db: db}
}

func (r *attendanceGorm) FindByKey(ctx context.Context, key AttendanceKey) (*attendancemodel.AttendanceModel, error) {
	var rec attendancemodel.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("attendance_student_id = ?", key.StudentID).
		Where("attendance_class_id = ?", key.ClassID).
		Where("attendance_subject_id = ?", key.SubjectID).
		Where("attendance_date = ?", key.Date).
		Where("attendance_lesson_number = ?", key.LessonNumber).
		Take(&rec).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

func (r *attendanceGorm) FindByID(ctx context.Context, id, branchID uuid.UUID) (*attendancemodel.AttendanceModel, error) {
	var rec attendancemodel.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("attendance_id = ? AND attendance_branch_id = ?", id, branchID).
		Take(&rec).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

// UpsertByKey: satu transaksi lookup+write supaya tidak ada jendela
// TOCTOU antar dua submit dengan natural key sama. Kalau race tetap
// lolos (create paralel), unique index yang jadi penentu → 23505.
func (r *attendanceGorm) UpsertByKey(ctx context.Context, rec *attendancemodel.AttendanceModel) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing attendancemodel.AttendanceModel
		err := tx.
			Where("attendance_student_id = ?", rec.AttendanceStudentID).
			Where("attendance_class_id = ?", rec.AttendanceClassID).
			Where("attendance_subject_id = ?", rec.AttendanceSubjectID).
			Where("attendance_date = ?", rec.AttendanceDate).
			Where("attendance_lesson_number = ?", rec.AttendanceLessonNumber).
			Take(&existing).Error
		switch {
		case err == nil:
			existing.AttendanceStatus = rec.AttendanceStatus
			existing.AttendanceNotes = rec.AttendanceNotes
			existing.AttendanceTeacherID = rec.AttendanceTeacherID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*rec = existing
			return nil
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, translateErr(err)
	}
	return created, nil
}

func (r *attendanceGorm) Update(ctx context.Context, rec *attendancemodel.AttendanceModel) error {
	return translateErr(r.db.WithContext(ctx).Save(rec).Error)
}

func (r *attendanceGorm) DeleteDay(ctx context.Context, f DayDeleteFilter) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("attendance_student_id = ?", f.StudentID).
		Where("attendance_class_id = ?", f.ClassID).
		Where("attendance_subject_id = ?", f.SubjectID).
		Where("attendance_teacher_id = ?", f.TeacherID).
		Where("attendance_date >= ? AND attendance_date < ?", f.From, f.To).
		Delete(&attendancemodel.AttendanceModel{})
	if tx.Error != nil {
		return 0, translateErr(tx.Error)
	}
	return tx.RowsAffected, nil
}

func (r *attendanceGorm) ListDay(ctx context.Context, classID, subjectID, branchID uuid.UUID, from, to time.Time) ([]attendancemodel.AttendanceModel, error) {
	var rows []attendancemodel.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("attendance_class_id = ?", classID).
		Where("attendance_subject_id = ?", subjectID).
		Where("attendance_branch_id = ?", branchID).
		Where("attendance_date >= ? AND attendance_date < ?", from, to).
		Order("attendance_lesson_number ASC, attendance_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return rows, nil
}
