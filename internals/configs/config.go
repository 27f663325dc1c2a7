package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	SchoolTimezone string

	schoolLoc *time.Location
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file tidak ditemukan, menggunakan ENV dari sistem")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}

	SchoolTimezone = GetEnvOr("SCHOOL_TIMEZONE", "Asia/Jakarta")
	loc, err := time.LoadLocation(SchoolTimezone)
	if err != nil {
		log.Printf("⚠️ SCHOOL_TIMEZONE %q tidak valid, fallback ke UTC", SchoolTimezone)
		loc = time.UTC
	}
	schoolLoc = loc
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// SchoolLocation mengembalikan *time.Location sekolah (default Asia/Jakarta).
// Dipakai untuk hitung batas hari lokal (delete per-hari, denormalisasi bulan).
func SchoolLocation() *time.Location {
	if schoolLoc == nil {
		return time.UTC
	}
	return schoolLoc
}
