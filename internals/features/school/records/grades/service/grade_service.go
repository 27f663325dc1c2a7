package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
	timetableservice "sekolahku_backend/internals/features/school/academics/timetables/service"
	"sekolahku_backend/internals/features/school/records/grades/dto"
	"sekolahku_backend/internals/features/school/records/grades/model"
	"sekolahku_backend/internals/features/school/repository"
	helper "sekolahku_backend/internals/helpers"
)

// GradeService: resolver create-or-update nilai + pemroses batch.
// Jalur single di-resolve via (student, class, subject, hari);
// jalur bulk via (student, timetable, hari) — slot di-resolve sekali
// per batch dan dipakai bersama semua item.
type GradeService struct {
	Grades repository.GradeRepository
	Slots  *timetableservice.SlotProvisioner
}

func NewGradeService(grades repository.GradeRepository, slots *timetableservice.SlotProvisioner) *GradeService {
	return &GradeService{Grades: grades, Slots: slots}
}

/* ===================== SINGLE ===================== */

func (s *GradeService) SubmitOne(ctx context.Context, teacherID, branchID uuid.UUID, req dto.CreateGradeRequest) (dto.GradeResponse, bool, error) {
	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return dto.GradeResponse{}, false, err
	}
	dayStart, dayEnd := helper.DayRange(date)

	existing, err := s.Grades.FindByDayKey(ctx, req.StudentID, req.ClassID, req.SubjectID, dayStart, dayEnd)
	switch {
	case err == nil:
		if branchID != uuid.Nil && existing.GradeBranchID != branchID {
			return dto.GradeResponse{}, false, fiber.NewError(fiber.StatusForbidden, "Nilai di luar cakupan cabang Anda")
		}
		// UPDATE: identitas & metadata create tidak disentuh
		existing.GradeValue = *req.Value
		if req.Description != nil {
			existing.GradeDescription = req.Description
		}
		existing.GradeTeacherID = teacherID
		if err := s.Grades.Update(ctx, existing); err != nil {
			return dto.GradeResponse{}, false, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah nilai")
		}
		return dto.NewGradeResponse(*existing), false, nil

	case errors.Is(err, repository.ErrNotFound):
		slot, err := s.Slots.EnsureSlot(ctx, req.ClassID, req.SubjectID, branchID)
		if err != nil {
			return dto.GradeResponse{}, false, err
		}
		// EnsureSlot hanya cek cabang saat provisioning; slot aktif yang
		// sudah ada tetap harus dicek di sini
		if branchID != uuid.Nil && slot.TimetableBranchID != branchID {
			return dto.GradeResponse{}, false, fiber.NewError(fiber.StatusForbidden, "Slot jadwal di luar cakupan cabang Anda")
		}
		rec := s.buildRecord(teacherID, req.StudentID, req.ClassID, req.SubjectID, dayStart, *req.Value, req.Description, slot)
		created, err := s.Grades.UpsertByTimetableKey(ctx, rec)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return dto.GradeResponse{}, false, fiber.NewError(fiber.StatusConflict, "Record nilai duplikat untuk key yang sama")
			}
			return dto.GradeResponse{}, false, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan nilai")
		}
		return dto.NewGradeResponse(*rec), created, nil

	default:
		return dto.GradeResponse{}, false, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data nilai")
	}
}

/* ===================== BULK ===================== */

// SubmitBulk: filter validitas (student id sah, points > 0 — batas bulk
// memang lebih longgar dari jalur single), lalu resolve slot SEKALI untuk
// seluruh batch, lalu proses berurutan dengan isolasi error per-item.
func (s *GradeService) SubmitBulk(ctx context.Context, teacherID, branchID uuid.UUID, req dto.BulkGradeRequest) (dto.BulkGradeResult, error) {
	var result dto.BulkGradeResult

	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return result, err
	}
	dayStart, _ := helper.DayRange(date)

	type validItem struct {
		studentID uuid.UUID
		raw       dto.BulkGradeItem
	}
	var valid []validItem
	for i, item := range req.Grades {
		sid := strings.TrimSpace(item.StudentID)
		if sid == "" {
			result.InvalidRows = append(result.InvalidRows, dto.InvalidRow{Index: i, StudentID: item.StudentID, Reason: "student_id kosong"})
			continue
		}
		studentID, err := uuid.Parse(sid)
		if err != nil || studentID == uuid.Nil {
			result.InvalidRows = append(result.InvalidRows, dto.InvalidRow{Index: i, StudentID: item.StudentID, Reason: "student_id bukan UUID yang sah"})
			continue
		}
		if item.Points <= 0 {
			result.InvalidRows = append(result.InvalidRows, dto.InvalidRow{Index: i, StudentID: item.StudentID, Reason: "points harus > 0"})
			continue
		}
		valid = append(valid, validItem{studentID: studentID, raw: item})
	}

	if len(valid) == 0 {
		return result, fiber.NewError(fiber.StatusBadRequest, "Tidak ada data nilai yang valid untuk disimpan")
	}
	result.TotalRecords = len(valid)

	// satu slot untuk seluruh batch (prasyarat: satu pasang class/subject per body)
	var slot *timetablemodel.TimetableModel
	if req.TimetableID != nil {
		slot, err = s.Slots.VerifySlot(ctx, *req.TimetableID)
	} else {
		slot, err = s.Slots.EnsureSlot(ctx, req.ClassID, req.SubjectID, branchID)
	}
	if err != nil {
		return result, err
	}
	if branchID != uuid.Nil && slot.TimetableBranchID != branchID {
		return result, fiber.NewError(fiber.StatusForbidden, "Slot jadwal di luar cakupan cabang Anda")
	}
	// timetable_id eksplisit harus menunjuk slot pasangan class/subject
	// yang sama dengan body, supaya denormalisasi record tidak silang
	if slot.TimetableClassID != req.ClassID || slot.TimetableSubjectID != req.SubjectID {
		return result, fiber.NewError(fiber.StatusBadRequest, "Slot jadwal tidak sesuai dengan class_id/subject_id pada body")
	}

	for _, it := range valid {
		rec := s.buildRecord(teacherID, it.studentID, req.ClassID, req.SubjectID, dayStart, it.raw.Points, it.raw.Comments, slot)
		if _, err := s.Grades.UpsertByTimetableKey(ctx, rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("student %s: %v", it.studentID, err))
			continue
		}
		result.SavedRecords++
	}

	return result, nil
}

/* ===================== UPDATE BY ID ===================== */

func (s *GradeService) UpdateByID(ctx context.Context, teacherID, branchID uuid.UUID, req dto.UpdateGradeRequest) (dto.GradeResponse, error) {
	rec, err := s.Grades.FindByID(ctx, req.GradeID, branchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.GradeResponse{}, fiber.NewError(fiber.StatusNotFound, "Data nilai tidak ditemukan")
		}
		return dto.GradeResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data nilai")
	}

	rec.GradeValue = *req.Value
	if req.Description != nil {
		rec.GradeDescription = req.Description
	}
	rec.GradeTeacherID = teacherID

	if err := s.Grades.Update(ctx, rec); err != nil {
		return dto.GradeResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah nilai")
	}
	return dto.NewGradeResponse(*rec), nil
}

/* ===================== DELETE PER-HARI ===================== */

func (s *GradeService) DeleteDay(ctx context.Context, teacherID uuid.UUID, req dto.DeleteGradeRequest) (int64, error) {
	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return 0, err
	}
	from, to := helper.DayRange(date)

	n, err := s.Grades.DeleteDay(ctx, repository.DayDeleteFilter{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TeacherID: teacherID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus data nilai")
	}
	return n, nil
}

/* ===================== LIST ===================== */

// List mendukung dua kombinasi query: (timetable_id + date) atau
// (class_id + subject_id + month[+year, default tahun berjalan]).
func (s *GradeService) List(ctx context.Context, branchID uuid.UUID, q dto.ListGradesQuery) ([]dto.GradeResponse, error) {
	f := repository.GradeFilter{AcademicYearID: q.AcademicYearID}
	if branchID != uuid.Nil {
		f.BranchID = &branchID
	}

	switch {
	case q.TimetableID != nil && q.Date != nil:
		date, err := helper.ParseDate(*q.Date)
		if err != nil {
			return nil, err
		}
		from, to := helper.DayRange(date)
		f.TimetableID = q.TimetableID
		f.DateFrom, f.DateTo = &from, &to

	case q.ClassID != nil && q.SubjectID != nil && q.Month != nil:
		f.ClassID, f.SubjectID, f.Month = q.ClassID, q.SubjectID, q.Month
		year := time.Now().Year()
		if q.Year != nil {
			year = *q.Year
		}
		f.Year = &year

	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Query harus (timetable_id + date) atau (class_id + subject_id + month)")
	}

	rows, err := s.Grades.List(ctx, f)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data nilai")
	}
	out := make([]dto.GradeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewGradeResponse(r))
	}
	return out, nil
}

func (s *GradeService) buildRecord(teacherID, studentID, classID, subjectID uuid.UUID, dayStart time.Time, value float64, desc *string, slot *timetablemodel.TimetableModel) *model.GradeModel {
	year, month := helper.YearMonth(dayStart)
	return &model.GradeModel{
		GradeStudentID:      studentID,
		GradeClassID:        classID,
		GradeSubjectID:      subjectID,
		GradeDate:           dayStart,
		GradeTimetableID:    slot.TimetableID,
		GradeValue:          value,
		GradeDescription:    desc,
		GradeType:           model.GradeTypeDaily,
		GradeTeacherID:      teacherID,
		GradeAcademicYearID: slot.TimetableAcademicYearID,
		GradeBranchID:       slot.TimetableBranchID,
		GradeYear:           year,
		GradeMonth:          month,
	}
}
