package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	grademodel "sekolahku_backend/internals/features/school/records/grades/model"
)

type gradeGorm struct {
	db *gorm.DB
}

func NewGradeGorm(db *gorm.DB) GradeRepository {
	return &gradeGorm{db: db}
}

func (r *gradeGorm) FindByDayKey(ctx context.Context, studentID, classID, subjectID uuid.UUID, from, to time.Time) (*grademodel.GradeModel, error) {
	var rec grademodel.GradeModel
	err := r.db.WithContext(ctx).
		Where("grade_student_id = ?", studentID).
		Where("grade_class_id = ?", classID).
		Where("grade_subject_id = ?", subjectID).
		Where("grade_date >= ? AND grade_date < ?", from, to).
		Order("grade_created_at ASC").
		Take(&rec).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

func (r *gradeGorm) FindByID(ctx context.Context, id, branchID uuid.UUID) (*grademodel.GradeModel, error) {
	var rec grademodel.GradeModel
	err := r.db.WithContext(ctx).
		Where("grade_id = ? AND grade_branch_id = ?", id, branchID).
		Take(&rec).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

// UpsertByTimetableKey: transaksi lookup+write di atas unique index
// (student, timetable, tanggal). Race create paralel diputus index → 23505.
func (r *gradeGorm) UpsertByTimetableKey(ctx context.Context, rec *grademodel.GradeModel) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing grademodel.GradeModel
		err := tx.
			Where("grade_student_id = ?", rec.GradeStudentID).
			Where("grade_timetable_id = ?", rec.GradeTimetableID).
			Where("grade_date = ?", rec.GradeDate).
			Take(&existing).Error
		switch {
		case err == nil:
			existing.GradeValue = rec.GradeValue
			existing.GradeDescription = rec.GradeDescription
			existing.GradeTeacherID = rec.GradeTeacherID
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

func (r *gradeGorm) Update(ctx context.Context, rec *grademodel.GradeModel) error {
	return translateErr(r.db.WithContext(ctx).Save(rec).Error)
}

func (r *gradeGorm) DeleteDay(ctx context.Context, f DayDeleteFilter) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("grade_student_id = ?", f.StudentID).
		Where("grade_class_id = ?", f.ClassID).
		Where("grade_subject_id = ?", f.SubjectID).
		Where("grade_teacher_id = ?", f.TeacherID).
		Where("grade_date >= ? AND grade_date < ?", f.From, f.To).
		Delete(&grademodel.GradeModel{})
	if tx.Error != nil {
		return 0, translateErr(tx.Error)
	}
	return tx.RowsAffected, nil
}

func (r *gradeGorm) List(ctx context.Context, f GradeFilter) ([]grademodel.GradeModel, error) {
	q := r.db.WithContext(ctx).Model(&grademodel.GradeModel{})

	if f.TimetableID != nil {
		q = q.Where("grade_timetable_id = ?", *f.TimetableID)
	}
	if f.DateFrom != nil && f.DateTo != nil {
		q = q.Where("grade_date >= ? AND grade_date < ?", *f.DateFrom, *f.DateTo)
	}
	if f.ClassID != nil {
		q = q.Where("grade_class_id = ?", *f.ClassID)
	}
	if f.SubjectID != nil {
		q = q.Where("grade_subject_id = ?", *f.SubjectID)
	}
	if f.Year != nil {
		q = q.Where("grade_year = ?", *f.Year)
	}
	if f.Month != nil {
		q = q.Where("grade_month = ?", *f.Month)
	}
	if f.AcademicYearID != nil {
		q = q.Where("grade_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.BranchID != nil {
		q = q.Where("grade_branch_id = ?", *f.BranchID)
	}

	var rows []grademodel.GradeModel
	if err := q.Order("grade_date ASC, grade_created_at ASC").Find(&rows).Error; err != nil {
		return nil, translateErr(err)
	}
	return rows, nil
}
