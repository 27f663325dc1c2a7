// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Nama locals, diisi oleh middleware auth setelah verifikasi JWT.
const (
	LocRawToken       = "raw_token"
	LocTeacherID      = "teacher_id"
	LocRole           = "role"
	LocBranchID       = "branch_id"
	LocAcademicYearID = "academic_year_id"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) cookie "access_token"
// 2) Locals("raw_token") yang diset middleware
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetRawAccessToken menyimpan raw token ke Locals (diisi middleware auth).
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// GetTeacherIDFromToken mengambil teacher_id (UUID) dari locals.
// Error 401 kalau tidak ada → auth guard wajib jalan sebelum engine.
func GetTeacherIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, LocTeacherID, "Unauthorized - Teacher ID tidak ditemukan di token")
}

// GetBranchIDFromToken mengambil branch_id (UUID) dari locals.
func GetBranchIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, LocBranchID, "Unauthorized - Branch ID tidak ditemukan di token")
}

// GetAcademicYearIDFromToken mengambil academic_year_id aktif dari locals.
func GetAcademicYearIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, LocAcademicYearID, "Unauthorized - Academic Year ID tidak ditemukan di token")
}

func localsUUID(c *fiber.Ctx, key, msg string) (uuid.UUID, error) {
	raw, ok := c.Locals(key).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, msg)
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, msg)
	}
	return id, nil
}
