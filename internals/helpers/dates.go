// file: internals/helpers/dates.go
package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/configs"
)

// Format tanggal yang diterima dari klien.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate menerima "2006-01-02" atau RFC3339 dan menormalkan
// ke zona waktu sekolah.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	loc := configs.SchoolLocation()
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid (pakai YYYY-MM-DD)")
}

// DayRange mengembalikan [awal hari, awal hari berikutnya) untuk tanggal t
// pada zona waktu sekolah. Dipakai oleh delete per-hari dan lookup natural key.
func DayRange(t time.Time) (time.Time, time.Time) {
	loc := configs.SchoolLocation()
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// YearMonth mengembalikan (tahun, bulan) tanggal t pada zona waktu sekolah.
// Dipakai untuk denormalisasi kolom grade_year / grade_month.
func YearMonth(t time.Time) (int, int) {
	lt := t.In(configs.SchoolLocation())
	return lt.Year(), int(lt.Month())
}
