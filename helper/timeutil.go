package helper

import (
	"time"

	"fiber/kp/app/model"
)

const (
	layoutTanggal = "2006-01-02"
	layoutJam     = "15:04"
)

// IsTimeOverlapping memakai interval setengah terbuka [mulai, selesai):
// jadwal yang bersentuhan tepat di batas tidak dianggap bentrok.
func IsTimeOverlapping(mulai, selesai, existingMulai, existingSelesai time.Time) bool {
	return existingMulai.Before(selesai) && existingSelesai.After(mulai)
}

func ParseTanggal(s string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutTanggal, s, time.Local)
	if err != nil {
		return time.Time{}, model.BadRequest("Format tanggal tidak valid, gunakan YYYY-MM-DD")
	}
	return t, nil
}

// CombineDateTime menggabungkan tanggal "2006-01-02" dan jam "15:04"
// menjadi satu time.Time.
func CombineDateTime(tanggal, jam string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutTanggal+" "+layoutJam, tanggal+" "+jam, time.Local)
	if err != nil {
		return time.Time{}, model.BadRequest("Format waktu tidak valid, gunakan HH:MM")
	}
	return t, nil
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// WeekRange mengembalikan awal (Minggu) dan akhir (Sabtu) pekan berjalan.
func WeekRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
	end := EndOfDay(start.AddDate(0, 0, 6))
	return start, end
}

func FormatWaktu(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}
