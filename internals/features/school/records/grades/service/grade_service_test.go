package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classmodel "sekolahku_backend/internals/features/school/academics/classes/model"
	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
	timetableservice "sekolahku_backend/internals/features/school/academics/timetables/service"
	"sekolahku_backend/internals/features/school/records/grades/dto"
	"sekolahku_backend/internals/features/school/repository/inmem"
)

type fixture struct {
	svc        *GradeService
	grades     *inmem.GradeRepo
	timetables *inmem.TimetableRepo
	cls        classmodel.ClassModel
	teacherID  uuid.UUID
}

func setup(t *testing.T) fixture {
	t.Helper()
	grades := inmem.NewGradeRepo()
	timetables := inmem.NewTimetableRepo()
	classes := inmem.NewClassRepo()
	cls := classes.Seed(classmodel.ClassModel{
		ClassName:           "9A",
		ClassBranchID:       uuid.New(),
		ClassAcademicYearID: uuid.New(),
		ClassIsActive:       true,
	})
	return fixture{
		svc:        NewGradeService(grades, timetableservice.NewSlotProvisioner(timetables, classes)),
		grades:     grades,
		timetables: timetables,
		cls:        cls,
		teacherID:  uuid.New(),
	}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

/* ===================== single ===================== */

func TestSubmitOne_CreatesWithVirtualSlot(t *testing.T) {
	f := setup(t)
	req := dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(87.5),
	}

	resp, created, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 87.5, resp.GradeValue)
	assert.Equal(t, 2024, resp.GradeYear)
	assert.Equal(t, 3, resp.GradeMonth)

	slots := f.timetables.All()
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsVirtual())
	assert.Equal(t, slots[0].TimetableID, resp.GradeTimetableID)
}

func TestSubmitOne_SecondSubmitUpdatesInPlace(t *testing.T) {
	f := setup(t)
	req := dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(70),
	}
	resp, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	require.NoError(t, err)

	req.Value = floatPtr(95)
	req.Description = strPtr("remedial")
	resp2, created, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, resp.GradeID, resp2.GradeID)
	assert.Equal(t, float64(95), resp2.GradeValue)
	require.NotNil(t, resp2.GradeDescription)
	assert.Equal(t, "remedial", *resp2.GradeDescription)

	assert.Len(t, f.grades.All(), 1)
	// update tidak bikin slot baru
	assert.Len(t, f.timetables.All(), 1)
}

func TestSubmitOne_ReusesRealSlot(t *testing.T) {
	f := setup(t)
	subjectID := uuid.New()
	real := f.timetables.Seed(timetablemodel.TimetableModel{
		TimetableClassID:        f.cls.ClassID,
		TimetableSubjectID:      subjectID,
		TimetableBranchID:       f.cls.ClassBranchID,
		TimetableAcademicYearID: f.cls.ClassAcademicYearID,
		TimetableBuilding:       "Gedung A",
		TimetableIsActive:       true,
	})

	resp, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: subjectID,
		Date:      "2024-03-15",
		Value:     floatPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, real.TimetableID, resp.GradeTimetableID)
	assert.Len(t, f.timetables.All(), 1)
}

func TestSubmitOne_ZeroValueIsValid(t *testing.T) {
	f := setup(t)
	resp, created, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(0),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, float64(0), resp.GradeValue)
}

func TestSubmitOne_ClassNotFound(t *testing.T) {
	f := setup(t)
	_, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   uuid.New(),
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(80),
	})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Empty(t, f.grades.All())
}

func TestSubmitOne_BranchMismatch(t *testing.T) {
	f := setup(t)
	_, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, uuid.New(), dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(80),
	})
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestSubmitOne_ExistingSlotOutsideBranch(t *testing.T) {
	f := setup(t)
	subjectID := uuid.New()
	// slot aktif milik cabang lain sudah ada: jalur create tidak lewat
	// provisioning, guard cabang tetap harus menolak
	f.timetables.Seed(timetablemodel.TimetableModel{
		TimetableClassID:        f.cls.ClassID,
		TimetableSubjectID:      subjectID,
		TimetableBranchID:       uuid.New(),
		TimetableAcademicYearID: uuid.New(),
		TimetableIsActive:       true,
	})

	_, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: subjectID,
		Date:      "2024-03-15",
		Value:     floatPtr(50),
	})
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
	assert.Empty(t, f.grades.All())
}

func TestSubmitOne_CrossBranchUpdateRejected(t *testing.T) {
	f := setup(t)
	req := dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(50),
	}
	_, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	require.NoError(t, err)

	// caller dari cabang lain tidak boleh menimpa nilai yang sudah ada
	req.Value = floatPtr(10)
	_, _, err = f.svc.SubmitOne(context.Background(), uuid.New(), uuid.New(), req)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	all := f.grades.All()
	require.Len(t, all, 1)
	assert.Equal(t, float64(50), all[0].GradeValue)
}

/* ===================== bulk ===================== */

func TestSubmitBulk_SharesOneSlot(t *testing.T) {
	f := setup(t)
	req := dto.BulkGradeRequest{
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Grades: []dto.BulkGradeItem{
			{StudentID: uuid.New().String(), Points: 80},
			{StudentID: uuid.New().String(), Points: 90},
			{StudentID: uuid.New().String(), Points: 75.5},
		},
	}

	result, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, result.SavedRecords)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Empty(t, result.Errors)

	// semua record di batch memakai slot virtual yang sama
	require.Len(t, f.timetables.All(), 1)
	slotID := f.timetables.All()[0].TimetableID
	for _, g := range f.grades.All() {
		assert.Equal(t, slotID, g.GradeTimetableID)
	}
}

func TestSubmitBulk_FiltersNonPositivePoints(t *testing.T) {
	f := setup(t)
	s1 := uuid.New()
	req := dto.BulkGradeRequest{
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Grades: []dto.BulkGradeItem{
			{StudentID: s1.String(), Points: 80},
			{StudentID: uuid.New().String(), Points: 0},
			{StudentID: uuid.New().String(), Points: -5},
		},
	}

	result, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SavedRecords)
	assert.Equal(t, 1, result.TotalRecords)
	require.Len(t, result.InvalidRows, 2)
	assert.Equal(t, "points harus > 0", result.InvalidRows[0].Reason)
}

func TestSubmitBulk_ZeroValidRowsIsFatal(t *testing.T) {
	f := setup(t)
	req := dto.BulkGradeRequest{
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Grades: []dto.BulkGradeItem{
			{StudentID: "not-a-uuid", Points: 80},
			{StudentID: uuid.New().String(), Points: 0},
		},
	}

	result, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, req)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Len(t, result.InvalidRows, 2)
	assert.Empty(t, f.grades.All())
	// slot tidak boleh di-provision kalau batch gagal total
	assert.Empty(t, f.timetables.All())
}

func TestSubmitBulk_WithExplicitTimetableID(t *testing.T) {
	f := setup(t)
	subjectID := uuid.New()
	real := f.timetables.Seed(timetablemodel.TimetableModel{
		TimetableClassID:        f.cls.ClassID,
		TimetableSubjectID:      subjectID,
		TimetableBranchID:       f.cls.ClassBranchID,
		TimetableAcademicYearID: f.cls.ClassAcademicYearID,
		TimetableIsActive:       true,
	})

	result, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.BulkGradeRequest{
		TimetableID: &real.TimetableID,
		ClassID:     f.cls.ClassID,
		SubjectID:   subjectID,
		Date:        "2024-03-15",
		Grades:      []dto.BulkGradeItem{{StudentID: uuid.New().String(), Points: 66}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SavedRecords)
	require.Len(t, f.grades.All(), 1)
	assert.Equal(t, real.TimetableID, f.grades.All()[0].GradeTimetableID)
}

func TestSubmitBulk_UnknownTimetableID(t *testing.T) {
	f := setup(t)
	bogus := uuid.New()
	_, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.BulkGradeRequest{
		TimetableID: &bogus,
		ClassID:     f.cls.ClassID,
		SubjectID:   uuid.New(),
		Date:        "2024-03-15",
		Grades:      []dto.BulkGradeItem{{StudentID: uuid.New().String(), Points: 66}},
	})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestSubmitBulk_TimetableOutsideBranch(t *testing.T) {
	f := setup(t)
	foreign := f.timetables.Seed(timetablemodel.TimetableModel{
		TimetableClassID:   uuid.New(),
		TimetableSubjectID: uuid.New(),
		TimetableBranchID:  uuid.New(),
		TimetableIsActive:  true,
	})

	_, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.BulkGradeRequest{
		TimetableID: &foreign.TimetableID,
		ClassID:     f.cls.ClassID,
		SubjectID:   uuid.New(),
		Date:        "2024-03-15",
		Grades:      []dto.BulkGradeItem{{StudentID: uuid.New().String(), Points: 66}},
	})
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
	assert.Empty(t, f.grades.All())
}

func TestSubmitBulk_TimetableClassSubjectMismatch(t *testing.T) {
	f := setup(t)
	real := f.timetables.Seed(timetablemodel.TimetableModel{
		TimetableClassID:        f.cls.ClassID,
		TimetableSubjectID:      uuid.New(),
		TimetableBranchID:       f.cls.ClassBranchID,
		TimetableAcademicYearID: f.cls.ClassAcademicYearID,
		TimetableIsActive:       true,
	})

	// timetable_id sah, tapi subject_id body berbeda dengan milik slot
	_, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.BulkGradeRequest{
		TimetableID: &real.TimetableID,
		ClassID:     f.cls.ClassID,
		SubjectID:   uuid.New(),
		Date:        "2024-03-15",
		Grades:      []dto.BulkGradeItem{{StudentID: uuid.New().String(), Points: 66}},
	})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Empty(t, f.grades.All())
}

func TestSubmitBulk_StoreFailureDoesNotAbortLoop(t *testing.T) {
	f := setup(t)
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()
	f.grades.FailStudents[s2] = errors.New("constraint violation")

	result, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.BulkGradeRequest{
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Grades: []dto.BulkGradeItem{
			{StudentID: s1.String(), Points: 80},
			{StudentID: s2.String(), Points: 85},
			{StudentID: s3.String(), Points: 90},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SavedRecords)
	assert.Equal(t, 3, result.TotalRecords)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], s2.String())
}

func TestSubmitBulk_ResubmitUpdatesInPlace(t *testing.T) {
	f := setup(t)
	s1 := uuid.New()
	subjectID := uuid.New()
	mk := func(points float64) dto.BulkGradeRequest {
		return dto.BulkGradeRequest{
			ClassID:   f.cls.ClassID,
			SubjectID: subjectID,
			Date:      "2024-03-15",
			Grades:    []dto.BulkGradeItem{{StudentID: s1.String(), Points: points}},
		}
	}

	_, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, mk(70))
	require.NoError(t, err)
	_, err = f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, mk(92))
	require.NoError(t, err)

	all := f.grades.All()
	require.Len(t, all, 1)
	assert.Equal(t, float64(92), all[0].GradeValue)
	assert.Len(t, f.timetables.All(), 1)
}

/* ===================== update by id ===================== */

func TestUpdateByID(t *testing.T) {
	f := setup(t)
	resp, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(60),
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateByID(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.UpdateGradeRequest{
		GradeID: resp.GradeID,
		Value:   floatPtr(77),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(77), updated.GradeValue)
}

func TestUpdateByID_NotFound(t *testing.T) {
	f := setup(t)
	_, err := f.svc.UpdateByID(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.UpdateGradeRequest{
		GradeID: uuid.New(),
		Value:   floatPtr(77),
	})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestUpdateByID_WrongBranch(t *testing.T) {
	f := setup(t)
	resp, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
		Value:     floatPtr(60),
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateByID(context.Background(), f.teacherID, uuid.New(), dto.UpdateGradeRequest{
		GradeID: resp.GradeID,
		Value:   floatPtr(77),
	})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

/* ===================== delete per-hari ===================== */

func TestDeleteDay(t *testing.T) {
	f := setup(t)
	studentID, subjectID := uuid.New(), uuid.New()
	for _, date := range []string{"2024-03-15", "2024-03-16"} {
		_, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
			StudentID: studentID,
			ClassID:   f.cls.ClassID,
			SubjectID: subjectID,
			Date:      date,
			Value:     floatPtr(80),
		})
		require.NoError(t, err)
	}

	n, err := f.svc.DeleteDay(context.Background(), f.teacherID, dto.DeleteGradeRequest{
		StudentID: studentID,
		ClassID:   f.cls.ClassID,
		SubjectID: subjectID,
		Date:      "2024-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, f.grades.All(), 1)
}

func TestDeleteDay_ZeroIsNotError(t *testing.T) {
	f := setup(t)
	n, err := f.svc.DeleteDay(context.Background(), f.teacherID, dto.DeleteGradeRequest{
		StudentID: uuid.New(),
		ClassID:   f.cls.ClassID,
		SubjectID: uuid.New(),
		Date:      "2024-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

/* ===================== list ===================== */

func TestList_ByTimetableAndDate(t *testing.T) {
	f := setup(t)
	subjectID := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := f.svc.SubmitBulk(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.BulkGradeRequest{
			ClassID:   f.cls.ClassID,
			SubjectID: subjectID,
			Date:      "2024-03-15",
			Grades:    []dto.BulkGradeItem{{StudentID: uuid.New().String(), Points: 80}},
		})
		require.NoError(t, err)
	}
	slotID := f.timetables.All()[0].TimetableID

	date := "2024-03-15"
	rows, err := f.svc.List(context.Background(), f.cls.ClassBranchID, dto.ListGradesQuery{
		TimetableID: &slotID,
		Date:        &date,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	other := "2024-03-16"
	rows, err = f.svc.List(context.Background(), f.cls.ClassBranchID, dto.ListGradesQuery{
		TimetableID: &slotID,
		Date:        &other,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestList_ByClassSubjectMonth(t *testing.T) {
	f := setup(t)
	subjectID := uuid.New()
	for _, date := range []string{"2024-03-15", "2024-03-20", "2024-04-02"} {
		_, _, err := f.svc.SubmitOne(context.Background(), f.teacherID, f.cls.ClassBranchID, dto.CreateGradeRequest{
			StudentID: uuid.New(),
			ClassID:   f.cls.ClassID,
			SubjectID: subjectID,
			Date:      date,
			Value:     floatPtr(80),
		})
		require.NoError(t, err)
	}

	month, year := 3, 2024
	rows, err := f.svc.List(context.Background(), f.cls.ClassBranchID, dto.ListGradesQuery{
		ClassID:   &f.cls.ClassID,
		SubjectID: &subjectID,
		Month:     &month,
		Year:      &year,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestList_InvalidQueryCombination(t *testing.T) {
	f := setup(t)
	month := 3
	_, err := f.svc.List(context.Background(), f.cls.ClassBranchID, dto.ListGradesQuery{Month: &month})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}
