// internals/features/school/records/attendance/controller/attendance_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/records/attendance/dto"
	"sekolahku_backend/internals/features/school/records/attendance/service"
	helper "sekolahku_backend/internals/helpers"
)

var validate = validator.New()

type AttendanceController struct {
	Service *service.AttendanceService
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Service: svc}
}

/* ===================== CREATE (single / bulk) ===================== */
// POST /attendance — body single record, atau bulk {attendance: [...]}
func (ctrl *AttendanceController) Post(c *fiber.Ctx) error {
	teacherID, err := helper.GetTeacherIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// deteksi bentuk body: array attendance → jalur bulk
	var bulkReq dto.BulkAttendanceRequest
	if err := c.BodyParser(&bulkReq); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if len(bulkReq.Attendance) > 0 {
		return ctrl.postBulk(c, teacherID, branchID, bulkReq)
	}

	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	resp, created, err := ctrl.Service.SubmitOne(c.UserContext(), teacherID, branchID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if created {
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Data kehadiran berhasil dibuat", resp)
	}
	return helper.Success(c, "Data kehadiran berhasil diperbarui", resp)
}

func (ctrl *AttendanceController) postBulk(c *fiber.Ctx, teacherID, branchID uuid.UUID, req dto.BulkAttendanceRequest) error {
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Service.SubmitBulk(c.UserContext(), teacherID, branchID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// kontrak: nol tersimpan = gagal total; sebagian = soft success
	if result.SavedRecords == 0 {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Semua data kehadiran gagal disimpan", result)
	}
	if len(result.Errors) > 0 {
		return helper.Success(c, "Sebagian data kehadiran tersimpan", result)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Semua data kehadiran tersimpan", result)
}

/* ===================== UPDATE (by surrogate id) ===================== */
// PUT /attendance
func (ctrl *AttendanceController) Put(c *fiber.Ctx) error {
	teacherID, err := helper.GetTeacherIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	resp, err := ctrl.Service.UpdateByID(c.UserContext(), teacherID, branchID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Data kehadiran berhasil diubah", resp)
}

/* ===================== DELETE (per-hari) ===================== */
// DELETE /attendance
func (ctrl *AttendanceController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetTeacherIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.DeleteAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	n, err := ctrl.Service.DeleteDay(c.UserContext(), teacherID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Data kehadiran berhasil dihapus", fiber.Map{"deleted_count": n})
}

/* ===================== LIST ===================== */
// GET /attendance?class_id=&subject_id=&date=
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var q dto.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	rows, err := ctrl.Service.ListDay(c.UserContext(), branchID, q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Data kehadiran berhasil diambil", rows)
}
