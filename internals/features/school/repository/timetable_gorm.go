package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
)

type timetableGorm struct {
	db *gorm.DB
}

func NewTimetableGorm(db *gorm.DB) TimetableRepository {
	return &timetableGorm{db: db}
}

func (r *timetableGorm) FindActive(ctx context.Context, classID, subjectID uuid.UUID) (*timetablemodel.TimetableModel, error) {
	var t timetablemodel.TimetableModel
	err := r.db.WithContext(ctx).
		Where("timetable_class_id = ?", classID).
		Where("timetable_subject_id = ?", subjectID).
		Where("timetable_is_active = ?", true).
		Take(&t).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

func (r *timetableGorm) FindByID(ctx context.Context, id uuid.UUID) (*timetablemodel.TimetableModel, error) {
	var t timetablemodel.TimetableModel
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		Take(&t).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

func (r *timetableGorm) CreateIfAbsent(ctx context.Context, t *timetablemodel.TimetableModel) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(t).Error
	return translateErr(err)
}
