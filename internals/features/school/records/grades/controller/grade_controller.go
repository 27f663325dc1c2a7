// internals/features/school/records/grades/controller/grade_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/records/grades/dto"
	"sekolahku_backend/internals/features/school/records/grades/service"
	helper "sekolahku_backend/internals/helpers"
)

var validate = validator.New()

type GradeController struct {
	Service *service.GradeService
}

func NewGradeController(svc *service.GradeService) *GradeController {
	return &GradeController{Service: svc}
}

/* ===================== CREATE (single / bulk) ===================== */
// POST /grades — body single record, atau bulk {grades: [...], timetable_id?}
func (ctrl *GradeController) Post(c *fiber.Ctx) error {
	teacherID, err := helper.GetTeacherIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var bulkReq dto.BulkGradeRequest
	if err := c.BodyParser(&bulkReq); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if len(bulkReq.Grades) > 0 {
		return ctrl.postBulk(c, teacherID, branchID, bulkReq)
	}

	var req dto.CreateGradeRequest
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
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Data nilai berhasil dibuat", resp)
	}
	return helper.Success(c, "Data nilai berhasil diperbarui", resp)
}

func (ctrl *GradeController) postBulk(c *fiber.Ctx, teacherID, branchID uuid.UUID, req dto.BulkGradeRequest) error {
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Service.SubmitBulk(c.UserContext(), teacherID, branchID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if result.SavedRecords == 0 {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Semua data nilai gagal disimpan", result)
	}
	if len(result.Errors) > 0 {
		return helper.Success(c, "Sebagian data nilai tersimpan", result)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Semua data nilai tersimpan", result)
}

/* ===================== LIST ===================== */
// GET /grades?timetable_id=&date=  |  ?class_id=&subject_id=&month=&year=
func (ctrl *GradeController) List(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var q dto.ListGradesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	rows, err := ctrl.Service.List(c.UserContext(), branchID, q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Data nilai berhasil diambil", rows)
}

/* ===================== UPDATE (by surrogate id) ===================== */
// PUT /grades — catatan: batas bawah nilai di jalur ini 1, bukan 0
func (ctrl *GradeController) Put(c *fiber.Ctx) error {
	teacherID, err := helper.GetTeacherIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateGradeRequest
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
	return helper.Success(c, "Data nilai berhasil diubah", resp)
}

/* ===================== DELETE (per-hari) ===================== */
// DELETE /grades
func (ctrl *GradeController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetTeacherIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.DeleteGradeRequest
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
	return helper.Success(c, "Data nilai berhasil dihapus", fiber.Map{"deleted_count": n})
}
