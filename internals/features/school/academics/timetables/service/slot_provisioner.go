package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
	"sekolahku_backend/internals/features/school/repository"
)

// SlotProvisioner menjamin setiap nilai punya referensi slot jadwal:
// pakai slot aktif (class, subject) kalau ada, kalau tidak buat slot
// virtual sekali lalu dipakai ulang semua submit berikutnya.
type SlotProvisioner struct {
	Timetables repository.TimetableRepository
	Classes    repository.ClassRepository
}

func NewSlotProvisioner(timetables repository.TimetableRepository, classes repository.ClassRepository) *SlotProvisioner {
	return &SlotProvisioner{Timetables: timetables, Classes: classes}
}

// EnsureSlot me-resolve slot aktif untuk (class, subject), membuat slot
// virtual bila belum ada. Insert pakai ON CONFLICT DO NOTHING di partial
// unique index lalu dibaca ulang, jadi dua request paralel berakhir di
// slot yang sama.
func (s *SlotProvisioner) EnsureSlot(ctx context.Context, classID, subjectID, branchID uuid.UUID) (*timetablemodel.TimetableModel, error) {
	t, err := s.Timetables.FindActive(ctx, classID, subjectID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca slot jadwal")
	}

	cls, err := s.Classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Kelas tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data kelas")
	}
	// guard lintas cabang: guru hanya boleh menulis untuk kelas cabangnya
	if branchID != uuid.Nil && cls.ClassBranchID != branchID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Kelas di luar cakupan cabang Anda")
	}

	virtual := &timetablemodel.TimetableModel{
		TimetableBranchID:       cls.ClassBranchID,
		TimetableClassID:        cls.ClassID,
		TimetableAcademicYearID: cls.ClassAcademicYearID,
		TimetableSubjectID:      subjectID,
		TimetableStartTime:      datatypes.NewTime(0, 0, 0, 0), // placeholder
		TimetableEndTime:        datatypes.NewTime(0, 0, 0, 0),
		TimetableLessonNumbers:  pq.Int64Array{1, 2},
		TimetableBuilding:       timetablemodel.VirtualBuilding,
		TimetableIsActive:       true,
	}
	if err := s.Timetables.CreateIfAbsent(ctx, virtual); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat slot jadwal virtual")
	}

	// baca ulang: kalau ada race, pemenangnya yang dipakai
	t, err = s.Timetables.FindActive(ctx, classID, subjectID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Slot jadwal tidak ditemukan setelah provisioning")
	}
	return t, nil
}

// VerifySlot memvalidasi timetable_id yang dikirim klien pada jalur bulk.
func (s *SlotProvisioner) VerifySlot(ctx context.Context, id uuid.UUID) (*timetablemodel.TimetableModel, error) {
	t, err := s.Timetables.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Slot jadwal tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca slot jadwal")
	}
	return t, nil
}
