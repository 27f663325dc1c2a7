package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	classmodel "sekolahku_backend/internals/features/school/academics/classes/model"
	"sekolahku_backend/internals/features/school/records/attendance/dto"
	"sekolahku_backend/internals/features/school/records/attendance/model"
	"sekolahku_backend/internals/features/school/repository"
	helper "sekolahku_backend/internals/helpers"
)

// AttendanceService: resolver create-or-update satu record kehadiran
// per natural key + pemroses batch dengan isolasi kegagalan per-item.
type AttendanceService struct {
	Attendance repository.AttendanceRepository
	Classes    repository.ClassRepository
}

func NewAttendanceService(attendance repository.AttendanceRepository, classes repository.ClassRepository) *AttendanceService {
	return &AttendanceService{Attendance: attendance, Classes: classes}
}

/* ===================== SINGLE ===================== */

// SubmitOne me-resolve satu record: key sudah ada → update in place,
// belum ada → create. Mengembalikan flag created (hanya untuk pesan/log).
func (s *AttendanceService) SubmitOne(ctx context.Context, teacherID, branchID uuid.UUID, req dto.CreateAttendanceRequest) (dto.AttendanceResponse, bool, error) {
	status, ok := model.ParseAttendanceStatus(req.Status)
	if !ok {
		return dto.AttendanceResponse{}, false, fiber.NewError(fiber.StatusBadRequest, "Status kehadiran tidak valid: "+req.Status)
	}

	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return dto.AttendanceResponse{}, false, err
	}
	dayStart, _ := helper.DayRange(date)

	lesson := 1
	if req.LessonNumber != nil {
		lesson = *req.LessonNumber
	}

	cls, err := s.guardClass(ctx, req.ClassID, branchID)
	if err != nil {
		return dto.AttendanceResponse{}, false, err
	}

	rec := &model.AttendanceModel{
		AttendanceStudentID:      req.StudentID,
		AttendanceClassID:        req.ClassID,
		AttendanceSubjectID:      req.SubjectID,
		AttendanceDate:           dayStart,
		AttendanceLessonNumber:   lesson,
		AttendanceStatus:         status,
		AttendanceNotes:          req.Notes,
		AttendanceTeacherID:      teacherID,
		AttendanceAcademicYearID: cls.ClassAcademicYearID,
		AttendanceBranchID:       cls.ClassBranchID,
	}

	created, err := s.Attendance.UpsertByKey(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return dto.AttendanceResponse{}, false, fiber.NewError(fiber.StatusConflict, "Record kehadiran duplikat untuk key yang sama")
		}
		return dto.AttendanceResponse{}, false, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}
	return dto.NewAttendanceResponse(*rec), created, nil
}

/* ===================== BULK ===================== */

// SubmitBulk memproses array kehadiran secara berurutan.
// Filter awal hanya menggugurkan baris tanpa student id yang sah
// (dilaporkan di invalid_rows); status dicek per-item di loop sehingga
// satu status rusak tidak membatalkan sisa batch.
func (s *AttendanceService) SubmitBulk(ctx context.Context, teacherID, branchID uuid.UUID, req dto.BulkAttendanceRequest) (dto.BulkAttendanceResult, error) {
	var result dto.BulkAttendanceResult

	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return result, err
	}
	dayStart, _ := helper.DayRange(date)

	lesson := 1
	if req.LessonNumber != nil {
		lesson = *req.LessonNumber
	}

	type validItem struct {
		studentID uuid.UUID
		raw       dto.BulkAttendanceItem
	}
	var valid []validItem
	for i, item := range req.Attendance {
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
		valid = append(valid, validItem{studentID: studentID, raw: item})
	}

	// gagal total tanpa satu pun tulisan ke store
	if len(valid) == 0 {
		return result, fiber.NewError(fiber.StatusBadRequest, "Tidak ada data kehadiran yang valid untuk disimpan")
	}
	result.TotalRecords = len(valid)

	cls, err := s.guardClass(ctx, req.ClassID, branchID)
	if err != nil {
		return result, err
	}

	// strictly sequential; kegagalan satu item tidak menghentikan loop
	for _, it := range valid {
		status, ok := model.ParseAttendanceStatus(it.raw.Status)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("student %s: status kehadiran tidak valid: %s", it.studentID, it.raw.Status))
			continue
		}

		rec := &model.AttendanceModel{
			AttendanceStudentID:      it.studentID,
			AttendanceClassID:        req.ClassID,
			AttendanceSubjectID:      req.SubjectID,
			AttendanceDate:           dayStart,
			AttendanceLessonNumber:   lesson,
			AttendanceStatus:         status,
			AttendanceNotes:          it.raw.Notes,
			AttendanceTeacherID:      teacherID,
			AttendanceAcademicYearID: cls.ClassAcademicYearID,
			AttendanceBranchID:       cls.ClassBranchID,
		}
		if _, err := s.Attendance.UpsertByKey(ctx, rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("student %s: %v", it.studentID, err))
			continue
		}
		result.SavedRecords++
	}

	return result, nil
}

/* ===================== UPDATE BY ID ===================== */

func (s *AttendanceService) UpdateByID(ctx context.Context, teacherID, branchID uuid.UUID, req dto.UpdateAttendanceRequest) (dto.AttendanceResponse, error) {
	status, ok := model.ParseAttendanceStatus(req.Status)
	if !ok {
		return dto.AttendanceResponse{}, fiber.NewError(fiber.StatusBadRequest, "Status kehadiran tidak valid: "+req.Status)
	}

	rec, err := s.Attendance.FindByID(ctx, req.ID, branchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AttendanceResponse{}, fiber.NewError(fiber.StatusNotFound, "Data kehadiran tidak ditemukan")
		}
		return dto.AttendanceResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data kehadiran")
	}

	rec.AttendanceStatus = status
	if req.Notes != nil {
		rec.AttendanceNotes = req.Notes
	}
	rec.AttendanceTeacherID = teacherID

	if err := s.Attendance.Update(ctx, rec); err != nil {
		return dto.AttendanceResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah data kehadiran")
	}
	return dto.NewAttendanceResponse(*rec), nil
}

/* ===================== DELETE PER-HARI ===================== */

// DeleteDay menghapus semua varian lesson_number untuk satu hari
// (range delete [awal hari, hari berikutnya), recorder = pemanggil).
// Nol baris terhapus bukan error.
func (s *AttendanceService) DeleteDay(ctx context.Context, teacherID uuid.UUID, req dto.DeleteAttendanceRequest) (int64, error) {
	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return 0, err
	}
	from, to := helper.DayRange(date)

	n, err := s.Attendance.DeleteDay(ctx, repository.DayDeleteFilter{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TeacherID: teacherID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus data kehadiran")
	}
	return n, nil
}

/* ===================== LIST ===================== */

func (s *AttendanceService) ListDay(ctx context.Context, branchID uuid.UUID, q dto.ListAttendanceQuery) ([]dto.AttendanceResponse, error) {
	date, err := helper.ParseDate(q.Date)
	if err != nil {
		return nil, err
	}
	from, to := helper.DayRange(date)

	rows, err := s.Attendance.ListDay(ctx, q.ClassID, q.SubjectID, branchID, from, to)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data kehadiran")
	}
	out := make([]dto.AttendanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewAttendanceResponse(r))
	}
	return out, nil
}

func (s *AttendanceService) guardClass(ctx context.Context, classID, branchID uuid.UUID) (*classmodel.ClassModel, error) {
	cls, err := s.Classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Kelas tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca data kelas")
	}
	if branchID != uuid.Nil && cls.ClassBranchID != branchID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Kelas di luar cakupan cabang Anda")
	}
	return cls, nil
}
