package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/config"
	"fiber/kp/helper"
)

const testEmailPembimbingInstansi = "pembimbing@instansi.co.id"

func newDailyReportFixture() (*DailyReportService, *mockDailyReportRepo, *mockMahasiswaRepo, *mockNilaiRepo) {
	emailPembimbing := testEmailPembimbingInstansi
	mahasiswaRepo := &mockMahasiswaRepo{
		findByNIMFn: func(nim string) (*model.Mahasiswa, error) {
			return &model.Mahasiswa{NIM: nim, Nama: "Budi Santoso", Email: "budi@students.ac.id"}, nil
		},
		findByEmailFn: func(email string) (*model.Mahasiswa, error) {
			return &model.Mahasiswa{NIM: testNIM, Nama: "Budi Santoso", Email: email}, nil
		},
		getPendaftaranFn: func(nim string) (*model.PendaftaranKP, error) {
			return &model.PendaftaranKP{
				ID:                      testIDPendaftaran,
				NIM:                     nim,
				Status:                  model.PendaftaranBaru,
				EmailPembimbingInstansi: &emailPembimbing,
			}, nil
		},
	}
	dailyReportRepo := &mockDailyReportRepo{}
	nilaiRepo := &mockNilaiRepo{}

	svc := NewDailyReportService(dailyReportRepo, mahasiswaRepo, nilaiRepo, config.Log)
	return svc, dailyReportRepo, mahasiswaRepo, nilaiRepo
}

func nilaiInstansiBody() map[string]any {
	return map[string]any{
		"nim":             testNIM,
		"deliverables":    90,
		"ketepatan_waktu": 85,
		"kedisiplinan":    88,
		"attitude":        92,
		"kerjasama_tim":   87,
		"inisiatif":       90,
		"masukan":         "Kinerja baik",
	}
}

func TestPostNilaiInstansiGateDailyReport(t *testing.T) {
	t.Run("22 daily report ditolak", func(t *testing.T) {
		svc, dailyReportRepo, _, _ := newDailyReportFixture()
		dailyReportRepo.countFn = func(string) (int64, error) { return 22, nil }

		app := newAuthedApp(testEmailPembimbingInstansi, model.RolePembimbingInstansi)
		app.Post("/nilai", svc.PostNilaiInstansi)

		resp := performRequest(t, app, http.MethodPost, "/nilai", nilaiInstansiBody())
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		want := "Mahasiswa belum memenuhi syarat jumlah daily report (lebih dari 22)!"
		if msg := decodeError(t, resp); msg != want {
			t.Errorf("error = %q, want %q", msg, want)
		}
	})

	t.Run("23 daily report diterima", func(t *testing.T) {
		svc, dailyReportRepo, _, _ := newDailyReportFixture()
		dailyReportRepo.countFn = func(string) (int64, error) { return 23, nil }

		app := newAuthedApp(testEmailPembimbingInstansi, model.RolePembimbingInstansi)
		app.Post("/nilai", svc.PostNilaiInstansi)

		resp := performRequest(t, app, http.MethodPost, "/nilai", nilaiInstansiBody())
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201", resp.StatusCode)
		}
	})
}

func TestPostNilaiInstansiBukanPembimbing(t *testing.T) {
	svc, dailyReportRepo, _, _ := newDailyReportFixture()
	dailyReportRepo.countFn = func(string) (int64, error) { return 30, nil }

	app := newAuthedApp("oranglain@instansi.co.id", model.RolePembimbingInstansi)
	app.Post("/nilai", svc.PostNilaiInstansi)

	resp := performRequest(t, app, http.MethodPost, "/nilai", nilaiInstansiBody())
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestPostNilaiInstansiSudahPernah(t *testing.T) {
	svc, dailyReportRepo, _, nilaiRepo := newDailyReportFixture()
	dailyReportRepo.countFn = func(string) (int64, error) { return 30, nil }
	sudah := 80.0
	nilaiRepo.findByNIMFn = func(nim string) (*model.Nilai, error) {
		return &model.Nilai{NIM: nim, NilaiInstansi: &sudah}, nil
	}

	app := newAuthedApp(testEmailPembimbingInstansi, model.RolePembimbingInstansi)
	app.Post("/nilai", svc.PostNilaiInstansi)

	resp := performRequest(t, app, http.MethodPost, "/nilai", nilaiInstansiBody())
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPostPresensiDuaKaliSehari(t *testing.T) {
	svc, dailyReportRepo, _, _ := newDailyReportFixture()
	dailyReportRepo.getByDateFn = func(nim string, tanggal time.Time) (*model.DailyReport, error) {
		return &model.DailyReport{ID: uuid.New(), NIM: nim, Tanggal: tanggal}, nil
	}

	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/presensi", svc.PostPresensi)

	resp := performRequest(t, app, http.MethodPost, "/presensi",
		map[string]any{"latitude": 0.51, "longitude": 101.44})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if msg := decodeError(t, resp); msg != "Presensi hari ini sudah dilakukan!" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestPostPresensiKunciHariLokal(t *testing.T) {
	svc, dailyReportRepo, _, _ := newDailyReportFixture()

	var captured time.Time
	dailyReportRepo.getByDateFn = func(nim string, tanggal time.Time) (*model.DailyReport, error) {
		captured = tanggal
		return nil, gorm.ErrRecordNotFound
	}

	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/presensi", svc.PostPresensi)

	resp := performRequest(t, app, http.MethodPost, "/presensi",
		map[string]any{"latitude": 0.51, "longitude": 101.44})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	// Kunci duplikat mengikuti tengah malam waktu lokal, bukan batas hari UTC.
	if want := helper.StartOfDay(time.Now()); !captured.Equal(want) {
		t.Errorf("kunci tanggal = %v, want %v", captured, want)
	}
	if captured.Hour() != 0 || captured.Minute() != 0 {
		t.Errorf("kunci tanggal %v bukan tengah malam lokal", captured)
	}
}

func TestPostPresensiLuarRadiusInstansi(t *testing.T) {
	svc, _, mahasiswaRepo, _ := newDailyReportFixture()

	idInstansi := uuid.New()
	emailPembimbing := testEmailPembimbingInstansi
	mahasiswaRepo.getPendaftaranFn = func(nim string) (*model.PendaftaranKP, error) {
		return &model.PendaftaranKP{
			ID:                      testIDPendaftaran,
			NIM:                     nim,
			IDInstansi:              &idInstansi,
			EmailPembimbingInstansi: &emailPembimbing,
		}, nil
	}
	mahasiswaRepo.findInstansiFn = func(uuid.UUID) (*model.Instansi, error) {
		return &model.Instansi{ID: idInstansi, Nama: "PT Contoh", Latitude: 0.51, Longitude: 101.44}, nil
	}

	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/presensi", svc.PostPresensi)

	// Kira-kira 11 km dari titik instansi.
	resp := performRequest(t, app, http.MethodPost, "/presensi",
		map[string]any{"latitude": 0.61, "longitude": 101.44})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}

	// Di titik instansi: diterima.
	resp = performRequest(t, app, http.MethodPost, "/presensi",
		map[string]any{"latitude": 0.5101, "longitude": 101.4401})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
}
