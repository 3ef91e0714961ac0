package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
	"fiber/kp/config"
)

func init() {
	config.Log = zap.NewNop()
}

// newAuthedApp membangun app uji dengan identitas yang sudah terpasang di
// locals, seperti yang dilakukan middleware auth.
func newAuthedApp(email, role string) *fiber.App {
	app := config.NewApp()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("email", email)
		c.Locals("role", role)
		return c.Next()
	})
	return app
}

func performRequest(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body model.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

type mockMahasiswaRepo struct {
	findByNIMFn       func(string) (*model.Mahasiswa, error)
	findByEmailFn     func(string) (*model.Mahasiswa, error)
	getPendaftaranFn  func(string) (*model.PendaftaranKP, error)
	countBimbinganFn  func(string) (int64, error)
	getDailyReportsFn func(string) ([]model.DailyReport, error)
	getNilaiFn        func(string) (*model.Nilai, error)
	getJadwalOnDateFn func(string, time.Time) ([]model.Jadwal, error)
	findInstansiFn    func(uuid.UUID) (*model.Instansi, error)
}

func (m *mockMahasiswaRepo) FindByNIM(nim string) (*model.Mahasiswa, error) {
	if m.findByNIMFn != nil {
		return m.findByNIMFn(nim)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMahasiswaRepo) FindByEmail(email string) (*model.Mahasiswa, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMahasiswaRepo) GetPendaftaranKP(nim string) (*model.PendaftaranKP, error) {
	if m.getPendaftaranFn != nil {
		return m.getPendaftaranFn(nim)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMahasiswaRepo) CountBimbingan(nim string) (int64, error) {
	if m.countBimbinganFn != nil {
		return m.countBimbinganFn(nim)
	}
	return 0, nil
}

func (m *mockMahasiswaRepo) GetDailyReports(nim string) ([]model.DailyReport, error) {
	if m.getDailyReportsFn != nil {
		return m.getDailyReportsFn(nim)
	}
	return nil, nil
}

func (m *mockMahasiswaRepo) GetNilai(nim string) (*model.Nilai, error) {
	if m.getNilaiFn != nil {
		return m.getNilaiFn(nim)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMahasiswaRepo) GetJadwalOnDate(nim string, tanggal time.Time) ([]model.Jadwal, error) {
	if m.getJadwalOnDateFn != nil {
		return m.getJadwalOnDateFn(nim, tanggal)
	}
	return nil, nil
}

func (m *mockMahasiswaRepo) FindInstansiByID(id uuid.UUID) (*model.Instansi, error) {
	if m.findInstansiFn != nil {
		return m.findInstansiFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

type mockDosenRepo struct {
	findByNIPFn       func(string) (*model.Dosen, error)
	findByEmailFn     func(string) (*model.Dosen, error)
	findAllFn         func() ([]model.Dosen, error)
	getJadwalOnDateFn func(string, time.Time) ([]model.Jadwal, error)
}

func (m *mockDosenRepo) FindByNIP(nip string) (*model.Dosen, error) {
	if m.findByNIPFn != nil {
		return m.findByNIPFn(nip)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDosenRepo) FindByEmail(email string) (*model.Dosen, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDosenRepo) FindAll() ([]model.Dosen, error) {
	if m.findAllFn != nil {
		return m.findAllFn()
	}
	return nil, nil
}

func (m *mockDosenRepo) GetJadwalOnDate(nip string, tanggal time.Time) ([]model.Jadwal, error) {
	if m.getJadwalOnDateFn != nil {
		return m.getJadwalOnDateFn(nip, tanggal)
	}
	return nil, nil
}

type mockJadwalRepo struct {
	createFn              func(repo.CreateJadwalInput) (*model.Jadwal, error)
	updateFn              func(repo.UpdateJadwalInput) (*model.Jadwal, error)
	getByIDFn             func(uuid.UUID) (*model.Jadwal, error)
	getByPendaftaranFn    func(uuid.UUID) (*model.Jadwal, error)
	getPendaftaranByIDFn  func(uuid.UUID) (*model.PendaftaranKP, error)
	getRuanganJadwalFn    func(string, time.Time) ([]model.Jadwal, error)
	getAllFn              func(int, *time.Time, *time.Time) ([]model.Jadwal, error)
	getPengujiFn          func(string, int) ([]model.Jadwal, error)
	updateStatusSelesaiFn func() (int64, error)
	totalUlangFn          func(int) (int64, error)
	getLogFn              func() ([]model.LogJadwal, error)
	findRuanganFn         func(string) (*model.Ruangan, error)
	getAllRuanganFn       func() ([]model.Ruangan, error)
	createRuanganFn       func(string) error
	deleteRuanganFn       func(string) error
	tahunByIDFn           func(int) (*model.TahunAjaran, error)
	latestTahunFn         func() (*model.TahunAjaran, error)
	allTahunFn            func() ([]model.TahunAjaran, error)
}

func (m *mockJadwalRepo) CreateJadwal(input repo.CreateJadwalInput) (*model.Jadwal, error) {
	if m.createFn != nil {
		return m.createFn(input)
	}
	return &model.Jadwal{
		ID:              uuid.New(),
		Tanggal:         input.Tanggal,
		WaktuMulai:      input.WaktuMulai,
		WaktuSelesai:    input.WaktuSelesai,
		Status:          model.JadwalMenunggu,
		NIM:             input.NIM,
		NamaRuangan:     input.NamaRuangan,
		IDPendaftaranKP: input.IDPendaftaranKP,
	}, nil
}

func (m *mockJadwalRepo) UpdateJadwal(input repo.UpdateJadwalInput) (*model.Jadwal, error) {
	if m.updateFn != nil {
		return m.updateFn(input)
	}
	return &model.Jadwal{
		ID:           input.ID,
		Tanggal:      input.Tanggal,
		WaktuMulai:   input.WaktuMulai,
		WaktuSelesai: input.WaktuSelesai,
		NIM:          input.NIM,
		NamaRuangan:  input.NamaRuangan,
	}, nil
}

func (m *mockJadwalRepo) GetJadwalByID(id uuid.UUID) (*model.Jadwal, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJadwalRepo) GetJadwalByPendaftaranID(id uuid.UUID) (*model.Jadwal, error) {
	if m.getByPendaftaranFn != nil {
		return m.getByPendaftaranFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJadwalRepo) GetPendaftaranByID(id uuid.UUID) (*model.PendaftaranKP, error) {
	if m.getPendaftaranByIDFn != nil {
		return m.getPendaftaranByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJadwalRepo) GetRuanganJadwalOnDate(nama string, tanggal time.Time) ([]model.Jadwal, error) {
	if m.getRuanganJadwalFn != nil {
		return m.getRuanganJadwalFn(nama, tanggal)
	}
	return nil, nil
}

func (m *mockJadwalRepo) GetAllJadwalSeminar(tahunAjaranID int, from, to *time.Time) ([]model.Jadwal, error) {
	if m.getAllFn != nil {
		return m.getAllFn(tahunAjaranID, from, to)
	}
	return nil, nil
}

func (m *mockJadwalRepo) GetJadwalPenguji(nip string, tahunAjaranID int) ([]model.Jadwal, error) {
	if m.getPengujiFn != nil {
		return m.getPengujiFn(nip, tahunAjaranID)
	}
	return nil, nil
}

func (m *mockJadwalRepo) UpdateStatusSelesai() (int64, error) {
	if m.updateStatusSelesaiFn != nil {
		return m.updateStatusSelesaiFn()
	}
	return 0, nil
}

func (m *mockJadwalRepo) TotalJadwalUlang(tahunAjaranID int) (int64, error) {
	if m.totalUlangFn != nil {
		return m.totalUlangFn(tahunAjaranID)
	}
	return 0, nil
}

func (m *mockJadwalRepo) GetLogJadwal() ([]model.LogJadwal, error) {
	if m.getLogFn != nil {
		return m.getLogFn()
	}
	return nil, nil
}

func (m *mockJadwalRepo) FindRuanganByName(nama string) (*model.Ruangan, error) {
	if m.findRuanganFn != nil {
		return m.findRuanganFn(nama)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJadwalRepo) GetAllRuangan() ([]model.Ruangan, error) {
	if m.getAllRuanganFn != nil {
		return m.getAllRuanganFn()
	}
	return nil, nil
}

func (m *mockJadwalRepo) CreateRuangan(nama string) error {
	if m.createRuanganFn != nil {
		return m.createRuanganFn(nama)
	}
	return nil
}

func (m *mockJadwalRepo) DeleteRuangan(nama string) error {
	if m.deleteRuanganFn != nil {
		return m.deleteRuanganFn(nama)
	}
	return nil
}

func (m *mockJadwalRepo) GetTahunAjaranByID(id int) (*model.TahunAjaran, error) {
	if m.tahunByIDFn != nil {
		return m.tahunByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJadwalRepo) GetLatestTahunAjaran() (*model.TahunAjaran, error) {
	if m.latestTahunFn != nil {
		return m.latestTahunFn()
	}
	return &model.TahunAjaran{ID: 1, Nama: "2026/2027 Ganjil"}, nil
}

func (m *mockJadwalRepo) GetAllTahunAjaran() ([]model.TahunAjaran, error) {
	if m.allTahunFn != nil {
		return m.allTahunFn()
	}
	return nil, nil
}

type mockSeminarRepo struct {
	getByJenisFn              func(model.JenisDokumen, uuid.UUID) (*model.DokumenSeminarKP, error)
	createDokumenFn           func(*model.DokumenSeminarKP) error
	resubmitFn                func(uuid.UUID, string) (*model.DokumenSeminarKP, error)
	updateStatusFn            func(uuid.UUID, model.StatusDokumen, *string) (*model.DokumenSeminarKP, error)
	getByIDFn                 func(uuid.UUID) (*model.DokumenSeminarKP, error)
	getByPendaftaranFn        func(uuid.UUID) ([]model.DokumenSeminarKP, error)
	getMahasiswaWithDokumenFn func(int) ([]model.Mahasiswa, error)
	getMahasiswaSeminarFn     func(string) (*model.Mahasiswa, error)
}

func (m *mockSeminarRepo) GetDokumenByJenisAndPendaftaran(jenis model.JenisDokumen, id uuid.UUID) (*model.DokumenSeminarKP, error) {
	if m.getByJenisFn != nil {
		return m.getByJenisFn(jenis, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeminarRepo) CreateDokumen(dokumen *model.DokumenSeminarKP) error {
	if m.createDokumenFn != nil {
		return m.createDokumenFn(dokumen)
	}
	dokumen.ID = uuid.New()
	dokumen.Status = model.DokumenTerkirim
	return nil
}

func (m *mockSeminarRepo) ResubmitDokumen(id uuid.UUID, linkPath string) (*model.DokumenSeminarKP, error) {
	if m.resubmitFn != nil {
		return m.resubmitFn(id, linkPath)
	}
	return &model.DokumenSeminarKP{ID: id, LinkPath: linkPath, Status: model.DokumenTerkirim}, nil
}

func (m *mockSeminarRepo) UpdateStatusDokumen(id uuid.UUID, status model.StatusDokumen, komentar *string) (*model.DokumenSeminarKP, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(id, status, komentar)
	}
	return &model.DokumenSeminarKP{ID: id, Status: status, Komentar: komentar}, nil
}

func (m *mockSeminarRepo) GetDokumenByID(id uuid.UUID) (*model.DokumenSeminarKP, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeminarRepo) GetDokumenByPendaftaran(id uuid.UUID) ([]model.DokumenSeminarKP, error) {
	if m.getByPendaftaranFn != nil {
		return m.getByPendaftaranFn(id)
	}
	return nil, nil
}

func (m *mockSeminarRepo) GetMahasiswaWithDokumen(tahunAjaranID int) ([]model.Mahasiswa, error) {
	if m.getMahasiswaWithDokumenFn != nil {
		return m.getMahasiswaWithDokumenFn(tahunAjaranID)
	}
	return nil, nil
}

func (m *mockSeminarRepo) GetMahasiswaSeminarByNIM(nim string) (*model.Mahasiswa, error) {
	if m.getMahasiswaSeminarFn != nil {
		return m.getMahasiswaSeminarFn(nim)
	}
	return nil, gorm.ErrRecordNotFound
}

type mockNilaiRepo struct {
	findByJadwalFn     func(uuid.UUID) (*model.Nilai, error)
	findByNIMFn        func(string) (*model.Nilai, error)
	findByIDFn         func(uuid.UUID) (*model.Nilai, error)
	findAllFn          func() ([]model.Nilai, error)
	upsertPengujiFn    func(repo.NilaiPengujiInput) (*model.Nilai, error)
	upsertPembimbingFn func(repo.NilaiPembimbingInput) (*model.Nilai, error)
	createInstansiFn   func(repo.NilaiInstansiInput) (*model.Nilai, error)
	setValidasiFn      func(uuid.UUID, model.StatusNilai) error
}

func (m *mockNilaiRepo) FindByJadwalID(id uuid.UUID) (*model.Nilai, error) {
	if m.findByJadwalFn != nil {
		return m.findByJadwalFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNilaiRepo) FindByNIM(nim string) (*model.Nilai, error) {
	if m.findByNIMFn != nil {
		return m.findByNIMFn(nim)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNilaiRepo) FindByID(id uuid.UUID) (*model.Nilai, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNilaiRepo) FindAll() ([]model.Nilai, error) {
	if m.findAllFn != nil {
		return m.findAllFn()
	}
	return nil, nil
}

func (m *mockNilaiRepo) UpsertNilaiPenguji(input repo.NilaiPengujiInput) (*model.Nilai, error) {
	if m.upsertPengujiFn != nil {
		return m.upsertPengujiFn(input)
	}
	return &model.Nilai{NIM: input.NIM, NilaiPenguji: &input.NilaiPenguji}, nil
}

func (m *mockNilaiRepo) UpsertNilaiPembimbing(input repo.NilaiPembimbingInput) (*model.Nilai, error) {
	if m.upsertPembimbingFn != nil {
		return m.upsertPembimbingFn(input)
	}
	return &model.Nilai{NIM: input.NIM, NilaiPembimbing: &input.NilaiPembimbing}, nil
}

func (m *mockNilaiRepo) CreateNilaiInstansi(input repo.NilaiInstansiInput) (*model.Nilai, error) {
	if m.createInstansiFn != nil {
		return m.createInstansiFn(input)
	}
	return &model.Nilai{NIM: input.NIM, NilaiInstansi: &input.NilaiInstansi}, nil
}

func (m *mockNilaiRepo) SetValidasi(id uuid.UUID, status model.StatusNilai) error {
	if m.setValidasiFn != nil {
		return m.setValidasiFn(id, status)
	}
	return nil
}

type mockDailyReportRepo struct {
	createFn       func(string, float64, float64) (*model.DailyReport, error)
	getByDateFn    func(string, time.Time) (*model.DailyReport, error)
	getAllFn       func(string) ([]model.DailyReport, error)
	getByIDFn      func(uuid.UUID) (*model.DailyReport, error)
	countFn        func(string) (int64, error)
	evaluateFn     func(uuid.UUID, string, model.StatusDailyReport) (*model.DailyReport, error)
	createDetailFn func(context.Context, model.DetailDailyReportMongo) (*model.DetailDailyReportMongo, error)
	updateDetailFn func(context.Context, string, string, string) error
	getDetailsFn   func(context.Context, uuid.UUID) ([]model.DetailDailyReportMongo, error)
}

func (m *mockDailyReportRepo) CreateDailyReport(nim string, latitude, longitude float64) (*model.DailyReport, error) {
	if m.createFn != nil {
		return m.createFn(nim, latitude, longitude)
	}
	return &model.DailyReport{ID: uuid.New(), NIM: nim, Latitude: latitude, Longitude: longitude, Status: model.DailyReportMenunggu}, nil
}

func (m *mockDailyReportRepo) GetDailyReportByDate(nim string, tanggal time.Time) (*model.DailyReport, error) {
	if m.getByDateFn != nil {
		return m.getByDateFn(nim, tanggal)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyReportRepo) GetDailyReports(nim string) ([]model.DailyReport, error) {
	if m.getAllFn != nil {
		return m.getAllFn(nim)
	}
	return nil, nil
}

func (m *mockDailyReportRepo) GetDailyReportByID(id uuid.UUID) (*model.DailyReport, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyReportRepo) CountDailyReport(nim string) (int64, error) {
	if m.countFn != nil {
		return m.countFn(nim)
	}
	return 0, nil
}

func (m *mockDailyReportRepo) EvaluateDailyReport(id uuid.UUID, catatan string, status model.StatusDailyReport) (*model.DailyReport, error) {
	if m.evaluateFn != nil {
		return m.evaluateFn(id, catatan, status)
	}
	return &model.DailyReport{ID: id, Status: status, CatatanEvaluasi: &catatan}, nil
}

func (m *mockDailyReportRepo) CreateDetail(ctx context.Context, detail model.DetailDailyReportMongo) (*model.DetailDailyReportMongo, error) {
	if m.createDetailFn != nil {
		return m.createDetailFn(ctx, detail)
	}
	return &detail, nil
}

func (m *mockDailyReportRepo) UpdateDetail(ctx context.Context, idHex, judul, deskripsi string) error {
	if m.updateDetailFn != nil {
		return m.updateDetailFn(ctx, idHex, judul, deskripsi)
	}
	return nil
}

func (m *mockDailyReportRepo) GetDetails(ctx context.Context, id uuid.UUID) ([]model.DetailDailyReportMongo, error) {
	if m.getDetailsFn != nil {
		return m.getDetailsFn(ctx, id)
	}
	return nil, nil
}

type mockBimbinganRepo struct {
	findPendaftaranFn   func(string) (*model.PendaftaranKP, error)
	findMahasiswaFn     func(string) ([]model.PendaftaranKP, error)
	createFn            func(*model.Bimbingan) error
	findByPendaftaranFn func(uuid.UUID) ([]model.Bimbingan, error)
}

func (m *mockBimbinganRepo) FindPendaftaranWithBimbingan(nim string) (*model.PendaftaranKP, error) {
	if m.findPendaftaranFn != nil {
		return m.findPendaftaranFn(nim)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBimbinganRepo) FindMahasiswaBimbingan(nip string) ([]model.PendaftaranKP, error) {
	if m.findMahasiswaFn != nil {
		return m.findMahasiswaFn(nip)
	}
	return nil, nil
}

func (m *mockBimbinganRepo) CreateBimbingan(bimbingan *model.Bimbingan) error {
	if m.createFn != nil {
		return m.createFn(bimbingan)
	}
	bimbingan.ID = uuid.New()
	return nil
}

func (m *mockBimbinganRepo) FindBimbinganByPendaftaran(id uuid.UUID) ([]model.Bimbingan, error) {
	if m.findByPendaftaranFn != nil {
		return m.findByPendaftaranFn(id)
	}
	return nil, nil
}

type mockMurojaahRepo struct {
	done bool
	err  error
}

func (m *mockMurojaahRepo) CheckMurojaah(ctx context.Context, nim string) (bool, error) {
	return m.done, m.err
}
