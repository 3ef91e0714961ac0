package helper

import (
	"errors"
	"testing"
	"time"

	"fiber/kp/app/model"
)

func mustWaktu(t *testing.T, tanggal, jam string) time.Time {
	t.Helper()
	waktu, err := CombineDateTime(tanggal, jam)
	if err != nil {
		t.Fatalf("CombineDateTime(%s %s): %v", tanggal, jam, err)
	}
	return waktu
}

func TestIsTimeOverlapping(t *testing.T) {
	const tanggal = "2026-09-07"

	tests := []struct {
		name                           string
		mulai, selesai                 string
		existingMulai, existingSelesai string
		want                           bool
	}{
		{"tumpang tindih sebagian", "09:30", "10:30", "09:00", "10:00", true},
		{"sentuhan tepat di batas akhir", "10:00", "11:00", "09:00", "10:00", false},
		{"sentuhan tepat di batas awal", "08:00", "09:00", "09:00", "10:00", false},
		{"interval identik", "09:00", "10:00", "09:00", "10:00", true},
		{"interval di dalam interval lain", "09:15", "09:45", "09:00", "10:00", true},
		{"interval membungkus interval lain", "08:00", "11:00", "09:00", "10:00", true},
		{"terpisah jauh", "13:00", "14:00", "09:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsTimeOverlapping(
				mustWaktu(t, tanggal, tt.mulai),
				mustWaktu(t, tanggal, tt.selesai),
				mustWaktu(t, tanggal, tt.existingMulai),
				mustWaktu(t, tanggal, tt.existingSelesai),
			)
			if got != tt.want {
				t.Errorf("IsTimeOverlapping(%s-%s vs %s-%s) = %v, want %v",
					tt.mulai, tt.selesai, tt.existingMulai, tt.existingSelesai, got, tt.want)
			}
		})
	}
}

func TestParseTanggalInvalid(t *testing.T) {
	_, err := ParseTanggal("07-09-2026")
	if err == nil {
		t.Fatal("expected error for invalid date format")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 400 {
		t.Errorf("expected APIError 400, got %v", err)
	}
}

func TestCombineDateTime(t *testing.T) {
	waktu, err := CombineDateTime("2026-09-07", "13:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if waktu.Hour() != 13 || waktu.Minute() != 45 || waktu.Day() != 7 {
		t.Errorf("unexpected result: %v", waktu)
	}

	if _, err := CombineDateTime("2026-09-07", "25:00"); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestStartOfDayHariLokal(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)

	// 06:00 dan 08:00 WIB berada di hari UTC yang berbeda (batas UTC jatuh
	// pada 07:00 WIB), tapi tetap satu hari lokal.
	pagi := time.Date(2026, 8, 31, 6, 0, 0, 0, wib)
	siang := time.Date(2026, 8, 31, 8, 0, 0, 0, wib)

	if !StartOfDay(pagi).Equal(StartOfDay(siang)) {
		t.Errorf("StartOfDay(%v) != StartOfDay(%v)", pagi, siang)
	}

	want := time.Date(2026, 8, 31, 0, 0, 0, 0, wib)
	if got := StartOfDay(pagi); !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}

	besok := time.Date(2026, 9, 1, 6, 0, 0, 0, wib)
	if StartOfDay(besok).Equal(StartOfDay(pagi)) {
		t.Error("different local days must not share a day key")
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-09-09 jatuh pada Rabu.
	rabu := time.Date(2026, 9, 9, 15, 0, 0, 0, time.Local)
	start, end := WeekRange(rabu)

	if start.Weekday() != time.Sunday {
		t.Errorf("week start = %v, want Sunday", start.Weekday())
	}
	if end.Weekday() != time.Saturday {
		t.Errorf("week end = %v, want Saturday", end.Weekday())
	}
	if start.Day() != 6 || end.Day() != 12 {
		t.Errorf("week range = %v..%v, want 6..12 Sep", start, end)
	}
	if rabu.Before(start) || rabu.After(end) {
		t.Error("reference day falls outside its own week range")
	}
}
