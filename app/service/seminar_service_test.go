package service

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"fiber/kp/app/model"
	"fiber/kp/config"
)

func laporanDisetujui(n int) []model.DailyReport {
	reports := make([]model.DailyReport, 0, n)
	for i := 0; i < n; i++ {
		reports = append(reports, model.DailyReport{
			ID:      uuid.New(),
			NIM:     testNIM,
			Tanggal: time.Now().AddDate(0, 0, -i),
			Status:  model.DailyReportDisetujui,
		})
	}
	return reports
}

// newSeminarFixture: mahasiswa login yang seluruh persyaratan seminarnya
// sudah terpenuhi.
func newSeminarFixture() (*SeminarService, *mockMahasiswaRepo, *mockSeminarRepo, *mockMurojaahRepo) {
	emailPembimbing := "pembimbing@instansi.co.id"
	nilaiInstansi := 85.0

	mahasiswaRepo := &mockMahasiswaRepo{
		findByEmailFn: func(email string) (*model.Mahasiswa, error) {
			return &model.Mahasiswa{NIM: testNIM, Nama: "Budi Santoso", Email: email}, nil
		},
		getPendaftaranFn: func(nim string) (*model.PendaftaranKP, error) {
			return &model.PendaftaranKP{
				ID:                      testIDPendaftaran,
				NIM:                     nim,
				Status:                  model.PendaftaranBaru,
				LevelAkses:              model.LevelAksesSeminar,
				EmailPembimbingInstansi: &emailPembimbing,
			}, nil
		},
		countBimbinganFn: func(string) (int64, error) { return 5, nil },
		getDailyReportsFn: func(string) ([]model.DailyReport, error) {
			return laporanDisetujui(23), nil
		},
		getNilaiFn: func(nim string) (*model.Nilai, error) {
			return &model.Nilai{NIM: nim, NilaiInstansi: &nilaiInstansi}, nil
		},
	}
	murojaahRepo := &mockMurojaahRepo{done: true}
	seminarRepo := &mockSeminarRepo{}
	jadwalRepo := &mockJadwalRepo{
		getPendaftaranByIDFn: func(id uuid.UUID) (*model.PendaftaranKP, error) {
			return &model.PendaftaranKP{ID: id, NIM: testNIM}, nil
		},
	}

	mahasiswaService := NewMahasiswaService(mahasiswaRepo, murojaahRepo)
	svc := NewSeminarService(seminarRepo, mahasiswaRepo, jadwalRepo, mahasiswaService, config.Log)
	return svc, mahasiswaRepo, seminarRepo, murojaahRepo
}

func postDokumenBody() map[string]string {
	return map[string]string{
		"link_path":         "https://drive.example.com/d/abc123",
		"id_pendaftaran_kp": testIDPendaftaran.String(),
	}
}

func TestPostDokumenBaru(t *testing.T) {
	svc, _, _, _ := newSeminarFixture()
	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/dokumen/:jenis", svc.PostDokumen)

	resp := performRequest(t, app, http.MethodPost,
		"/dokumen/SURAT_KETERANGAN_SELESAI_KP", postDokumenBody())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
}

func TestPostDokumenJenisTidakDikenal(t *testing.T) {
	svc, _, _, _ := newSeminarFixture()
	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/dokumen/:jenis", svc.PostDokumen)

	resp := performRequest(t, app, http.MethodPost, "/dokumen/IJAZAH", postDokumenBody())
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPostDokumenPersyaratanBelumTerpenuhi(t *testing.T) {
	tests := []struct {
		name  string
		patch func(*mockMahasiswaRepo, *mockMurojaahRepo)
	}{
		{"murojaah belum selesai", func(m *mockMahasiswaRepo, mu *mockMurojaahRepo) {
			mu.done = false
		}},
		{"bimbingan kurang dari lima", func(m *mockMahasiswaRepo, _ *mockMurojaahRepo) {
			m.countBimbinganFn = func(string) (int64, error) { return 4, nil }
		}},
		{"daily report hanya 20", func(m *mockMahasiswaRepo, _ *mockMurojaahRepo) {
			m.getDailyReportsFn = func(string) ([]model.DailyReport, error) {
				return laporanDisetujui(20), nil
			}
		}},
		{"ada daily report belum disetujui", func(m *mockMahasiswaRepo, _ *mockMurojaahRepo) {
			m.getDailyReportsFn = func(string) ([]model.DailyReport, error) {
				reports := laporanDisetujui(23)
				reports[5].Status = model.DailyReportMenunggu
				return reports, nil
			}
		}},
		{"status pendaftaran Gagal", func(m *mockMahasiswaRepo, _ *mockMurojaahRepo) {
			base := m.getPendaftaranFn
			m.getPendaftaranFn = func(nim string) (*model.PendaftaranKP, error) {
				pendaftaran, err := base(nim)
				if err != nil {
					return nil, err
				}
				pendaftaran.Status = model.PendaftaranGagal
				return pendaftaran, nil
			}
		}},
		{"nilai instansi belum ada", func(m *mockMahasiswaRepo, _ *mockMurojaahRepo) {
			m.getNilaiFn = func(nim string) (*model.Nilai, error) {
				return &model.Nilai{NIM: nim}, nil
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mahasiswaRepo, _, murojaahRepo := newSeminarFixture()
			tt.patch(mahasiswaRepo, murojaahRepo)

			app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
			app.Post("/dokumen/:jenis", svc.PostDokumen)

			resp := performRequest(t, app, http.MethodPost,
				"/dokumen/SURAT_KETERANGAN_SELESAI_KP", postDokumenBody())
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", resp.StatusCode)
			}
		})
	}
}

func TestPostDokumenStepBelumTerbuka(t *testing.T) {
	svc, _, _, _ := newSeminarFixture()
	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/dokumen/:jenis", svc.PostDokumen)

	// Step 2 diminta padahal belum ada satu pun dokumen step 1.
	resp := performRequest(t, app, http.MethodPost,
		"/dokumen/ID_PENGAJUAN_SURAT_UNDANGAN", postDokumenBody())
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if msg := decodeError(t, resp); !strings.Contains(msg, "Step 2") {
		t.Errorf("error message %q should name the blocked step", msg)
	}
}

func TestPostDokumenKirimUlangMenimpa(t *testing.T) {
	svc, _, seminarRepo, _ := newSeminarFixture()

	idLama := uuid.New()
	seminarRepo.getByJenisFn = func(jenis model.JenisDokumen, _ uuid.UUID) (*model.DokumenSeminarKP, error) {
		return &model.DokumenSeminarKP{
			ID:           idLama,
			JenisDokumen: jenis,
			LinkPath:     "https://drive.example.com/d/lama",
			Status:       model.DokumenDitolak,
		}, nil
	}

	var resubmittedID uuid.UUID
	var resubmittedLink string
	seminarRepo.resubmitFn = func(id uuid.UUID, linkPath string) (*model.DokumenSeminarKP, error) {
		resubmittedID = id
		resubmittedLink = linkPath
		return &model.DokumenSeminarKP{ID: id, LinkPath: linkPath, Status: model.DokumenTerkirim}, nil
	}

	app := newAuthedApp("budi@students.ac.id", model.RoleMahasiswa)
	app.Post("/dokumen/:jenis", svc.PostDokumen)

	resp := performRequest(t, app, http.MethodPost,
		"/dokumen/SURAT_KETERANGAN_SELESAI_KP", postDokumenBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for resubmission", resp.StatusCode)
	}
	if resubmittedID != idLama {
		t.Error("resubmission must overwrite the existing row, not create a new one")
	}
	if resubmittedLink != "https://drive.example.com/d/abc123" {
		t.Errorf("resubmitted link = %q", resubmittedLink)
	}
}

func TestTolakDokumenTanpaKomentar(t *testing.T) {
	svc, _, seminarRepo, _ := newSeminarFixture()
	seminarRepo.getByIDFn = func(id uuid.UUID) (*model.DokumenSeminarKP, error) {
		return &model.DokumenSeminarKP{ID: id, NIM: testNIM}, nil
	}

	app := newAuthedApp("koordinator@kampus.ac.id", model.RoleKoordinator)
	app.Post("/dokumen/:id/tolak", svc.TolakDokumen)

	resp := performRequest(t, app, http.MethodPost,
		"/dokumen/"+uuid.New().String()+"/tolak", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 when rejection comment missing", resp.StatusCode)
	}
}
