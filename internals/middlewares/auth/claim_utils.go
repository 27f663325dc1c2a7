package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "sekolahku_backend/internals/helpers"
)

// validateTokenExpiry cek klaim exp dengan leeway.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("klaim exp tidak ada")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("klaim exp bukan angka")
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

// storeClaimsToLocals menyalin klaim identitas ke Locals:
// teacher_id (wajib), role, branch_id, academic_year_id.
func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) error {
	teacherID, err := claimUUID(claims, "teacher_id")
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Teacher ID tidak valid di token")
	}
	c.Locals(helper.LocTeacherID, teacherID.String())

	if role, ok := claims["role"].(string); ok {
		c.Locals(helper.LocRole, strings.ToLower(strings.TrimSpace(role)))
	}
	if id, err := claimUUID(claims, "branch_id"); err == nil {
		c.Locals(helper.LocBranchID, id.String())
	}
	if id, err := claimUUID(claims, "academic_year_id"); err == nil {
		c.Locals(helper.LocAcademicYearID, id.String())
	}
	return nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, errors.New("klaim kosong: " + key)
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("klaim bukan UUID: " + key)
	}
	return id, nil
}
