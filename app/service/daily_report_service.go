package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
	"fiber/kp/helper"
)

// Radius maksimal presensi dari titik instansi, dalam meter.
const presensiRadiusMeters = 500

type DailyReportService struct {
	dailyReportRepo repo.DailyReportRepository
	mahasiswaRepo   repo.MahasiswaRepository
	nilaiRepo       repo.NilaiRepository
	log             *zap.Logger
}

func NewDailyReportService(
	dailyReportRepo repo.DailyReportRepository,
	mahasiswaRepo repo.MahasiswaRepository,
	nilaiRepo repo.NilaiRepository,
	log *zap.Logger,
) *DailyReportService {
	return &DailyReportService{
		dailyReportRepo: dailyReportRepo,
		mahasiswaRepo:   mahasiswaRepo,
		nilaiRepo:       nilaiRepo,
		log:             log,
	}
}

func (s *DailyReportService) currentMahasiswa(c *fiber.Ctx) (*model.Mahasiswa, error) {
	email, _ := c.Locals("email").(string)
	mahasiswa, err := s.mahasiswaRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("Mahasiswa tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}
	return mahasiswa, nil
}

// PostPresensi mencatat kehadiran harian, maksimal sekali per hari, dan
// menolak presensi di luar radius lokasi instansi.
func (s *DailyReportService) PostPresensi(c *fiber.Ctx) error {
	mahasiswa, err := s.currentMahasiswa(c)
	if err != nil {
		return err
	}

	var req model.CreatePresensiRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	today := helper.StartOfDay(time.Now())
	_, err = s.dailyReportRepo.GetDailyReportByDate(mahasiswa.NIM, today)
	if err == nil {
		return model.BadRequest("Presensi hari ini sudah dilakukan!")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pendaftaran, err := s.mahasiswaRepo.GetPendaftaranKP(mahasiswa.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Kamu belum terdaftar kerja praktik!")
	}
	if err != nil {
		return err
	}
	if pendaftaran.IDInstansi != nil {
		instansi, err := s.mahasiswaRepo.FindInstansiByID(*pendaftaran.IDInstansi)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if instansi != nil && (instansi.Latitude != 0 || instansi.Longitude != 0) {
			jarak := helper.DistanceMeters(req.Latitude, req.Longitude, instansi.Latitude, instansi.Longitude)
			if jarak > presensiRadiusMeters {
				return model.Forbidden("Presensi hanya bisa dilakukan di sekitar lokasi instansi!")
			}
		}
	}

	report, err := s.dailyReportRepo.CreateDailyReport(mahasiswa.NIM, req.Latitude, req.Longitude)
	if err != nil {
		return err
	}

	s.log.Info("presensi daily report dicatat",
		zap.String("nim", mahasiswa.NIM),
		zap.Time("tanggal", report.Tanggal))

	return c.Status(fiber.StatusCreated).JSON(model.Response[*model.DailyReport]{
		Response: true,
		Message:  "Presensi berhasil dicatat",
		Data:     report,
	})
}

func (s *DailyReportService) GetDailyReportSaya(c *fiber.Ctx) error {
	mahasiswa, err := s.currentMahasiswa(c)
	if err != nil {
		return err
	}

	reports, err := s.dailyReportRepo.GetDailyReports(mahasiswa.NIM)
	if err != nil {
		return err
	}

	return c.JSON(model.Response[[]model.DailyReport]{
		Response: true,
		Message:  "Daily report berhasil diambil",
		Data:     reports,
	})
}

func (s *DailyReportService) GetDetailDailyReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id daily report tidak valid")
	}

	report, err := s.dailyReportRepo.GetDailyReportByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Daily report tidak ditemukan")
	}
	if err != nil {
		return err
	}

	details, err := s.dailyReportRepo.GetDetails(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(model.Response[model.DailyReportWithDetail]{
		Response: true,
		Message:  "Detail daily report berhasil diambil",
		Data: model.DailyReportWithDetail{
			DailyReport: *report,
			Detail:      details,
		},
	})
}

func (s *DailyReportService) PostDetail(c *fiber.Ctx) error {
	mahasiswa, err := s.currentMahasiswa(c)
	if err != nil {
		return err
	}

	var req model.CreateDetailDailyReportRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	id, err := uuid.Parse(req.IDDailyReport)
	if err != nil {
		return model.BadRequest("Id daily report tidak valid")
	}

	report, err := s.dailyReportRepo.GetDailyReportByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Daily report tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if report.NIM != mahasiswa.NIM {
		return model.Forbidden("Daily report bukan milik kamu")
	}

	detail, err := s.dailyReportRepo.CreateDetail(c.Context(), model.DetailDailyReportMongo{
		IDDailyReport:   id.String(),
		JudulAgenda:     req.JudulAgenda,
		DeskripsiAgenda: req.DeskripsiAgenda,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(model.Response[*model.DetailDailyReportMongo]{
		Response: true,
		Message:  "Detail daily report berhasil ditambahkan",
		Data:     detail,
	})
}

func (s *DailyReportService) PutDetail(c *fiber.Ctx) error {
	var req model.UpdateDetailDailyReportRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	if err := s.dailyReportRepo.UpdateDetail(c.Context(), c.Params("id"), req.JudulAgenda, req.DeskripsiAgenda); err != nil {
		return err
	}

	return c.JSON(model.Response[any]{
		Response: true,
		Message:  "Detail daily report berhasil diubah",
	})
}

// PostEvaluasi dipakai pembimbing instansi untuk menyetujui atau menolak
// satu daily report.
func (s *DailyReportService) PostEvaluasi(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id daily report tidak valid")
	}

	var req model.EvaluasiDailyReportRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	if _, err := s.dailyReportRepo.GetDailyReportByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Daily report tidak ditemukan")
		}
		return err
	}

	report, err := s.dailyReportRepo.EvaluateDailyReport(id, req.CatatanEvaluasi, model.StatusDailyReport(req.Status))
	if err != nil {
		return err
	}

	s.log.Info("daily report dievaluasi",
		zap.String("nim", report.NIM),
		zap.String("status", req.Status))

	return c.JSON(model.Response[*model.DailyReport]{
		Response: true,
		Message:  "Evaluasi daily report berhasil disimpan",
		Data:     report,
	})
}

// PostNilaiInstansi hanya bisa dilakukan pembimbing instansi mahasiswa itu,
// sekali saja, setelah lebih dari 22 daily report terkumpul.
func (s *DailyReportService) PostNilaiInstansi(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)

	var req model.CreateNilaiInstansiRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	if _, err := s.mahasiswaRepo.FindByNIM(req.NIM); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Mahasiswa tidak ditemukan")
		}
		return err
	}

	pendaftaran, err := s.mahasiswaRepo.GetPendaftaranKP(req.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Pendaftaran KP mahasiswa tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if pendaftaran.EmailPembimbingInstansi == nil || *pendaftaran.EmailPembimbingInstansi != email {
		return model.Forbidden("Kamu bukan pembimbing instansi mahasiswa ini!")
	}

	nilai, err := s.nilaiRepo.FindByNIM(req.NIM)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if nilai != nil && nilai.NilaiInstansi != nil {
		return model.BadRequest("Nilai instansi sudah pernah diinput!")
	}

	count, err := s.dailyReportRepo.CountDailyReport(req.NIM)
	if err != nil {
		return err
	}
	if count <= 22 {
		return model.BadRequest("Mahasiswa belum memenuhi syarat jumlah daily report (lebih dari 22)!")
	}

	komposit, err := helper.HitungNilaiInstansi(req)
	if err != nil {
		return err
	}

	hasil, err := s.nilaiRepo.CreateNilaiInstansi(repo.NilaiInstansiInput{
		NIM:   req.NIM,
		Email: email,
		Komponen: model.KomponenPenilaianInstansi{
			Deliverables:   req.Deliverables,
			KetepatanWaktu: req.KetepatanWaktu,
			Kedisiplinan:   req.Kedisiplinan,
			Attitude:       req.Attitude,
			KerjasamaTim:   req.KerjasamaTim,
			Inisiatif:      req.Inisiatif,
			Masukan:        req.Masukan,
		},
		NilaiInstansi: komposit,
	})
	if err != nil {
		return err
	}

	s.log.Info("nilai instansi disimpan",
		zap.String("nim", req.NIM),
		zap.Float64("nilai", komposit))

	return c.Status(fiber.StatusCreated).JSON(model.Response[*model.Nilai]{
		Response: true,
		Message:  "Nilai instansi berhasil disimpan",
		Data:     hasil,
	})
}

func (s *DailyReportService) GetNilaiSaya(c *fiber.Ctx) error {
	mahasiswa, err := s.currentMahasiswa(c)
	if err != nil {
		return err
	}

	nilai, err := s.nilaiRepo.FindByNIM(mahasiswa.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Nilai belum tersedia")
	}
	if err != nil {
		return err
	}

	return c.JSON(model.Response[model.NilaiWithHuruf]{
		Response: true,
		Message:  "Nilai berhasil diambil",
		Data: model.NilaiWithHuruf{
			Nilai:      *nilai,
			NilaiHuruf: helper.NilaiHuruf(nilai.NilaiAkhir),
		},
	})
}
