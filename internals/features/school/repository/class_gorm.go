package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classmodel "sekolahku_backend/internals/features/school/academics/classes/model"
)

type classGorm struct {
	db *gorm.DB
}

func NewClassGorm(db *gorm.DB) ClassRepository {
	return &classGorm{db: db}
}

func (r *classGorm) FindByID(ctx context.Context, id uuid.UUID) (*classmodel.ClassModel, error) {
	var cls classmodel.ClassModel
	err := r.db.WithContext(ctx).
		Where("class_id = ?", id).
		Take(&cls).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &cls, nil
}
