package service

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
	"fiber/kp/helper"
)

type SeminarService struct {
	seminarRepo      repo.SeminarRepository
	mahasiswaRepo    repo.MahasiswaRepository
	jadwalRepo       repo.JadwalRepository
	mahasiswaService *MahasiswaService
	log              *zap.Logger
}

func NewSeminarService(
	seminarRepo repo.SeminarRepository,
	mahasiswaRepo repo.MahasiswaRepository,
	jadwalRepo repo.JadwalRepository,
	mahasiswaService *MahasiswaService,
	log *zap.Logger,
) *SeminarService {
	return &SeminarService{
		seminarRepo:      seminarRepo,
		mahasiswaRepo:    mahasiswaRepo,
		jadwalRepo:       jadwalRepo,
		mahasiswaService: mahasiswaService,
		log:              log,
	}
}

// PostDokumen menerima pengiriman dokumen seminar. Jenis dokumen menentukan
// step-nya; step hanya bisa diakses setelah step sebelumnya beres, dan
// pengiriman ulang menimpa dokumen lama alih-alih menambah baris baru.
func (s *SeminarService) PostDokumen(c *fiber.Ctx) error {
	jenis := model.JenisDokumen(c.Params("jenis"))
	step := helper.StepForDokumen(jenis)
	if step == 0 {
		return model.BadRequest("Jenis dokumen tidak dikenal")
	}

	email, _ := c.Locals("email").(string)
	mahasiswa, err := s.mahasiswaRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Mahasiswa tidak ditemukan")
	}
	if err != nil {
		return err
	}

	var req model.CreateDokumenRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	idPendaftaran, err := uuid.Parse(req.IDPendaftaranKP)
	if err != nil {
		return model.BadRequest("Id pendaftaran KP tidak valid")
	}

	pendaftaran, err := s.jadwalRepo.GetPendaftaranByID(idPendaftaran)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Pendaftaran KP tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if pendaftaran.NIM != mahasiswa.NIM {
		return model.Forbidden("Pendaftaran KP bukan milik kamu")
	}

	persyaratan, err := s.mahasiswaService.ValidasiPersyaratan(c.Context(), mahasiswa.NIM)
	if err != nil {
		return err
	}
	if !persyaratan.SemuaSyaratTerpenuhi {
		return model.Forbidden("Persyaratan seminar KP belum terpenuhi!")
	}

	dokumen, err := s.seminarRepo.GetDokumenByPendaftaran(idPendaftaran)
	if err != nil {
		return err
	}
	if !helper.StepAccessible(step, dokumen) {
		return model.Forbidden("Step %d belum bisa diakses, selesaikan step sebelumnya terlebih dahulu!", step)
	}

	existing, err := s.seminarRepo.GetDokumenByJenisAndPendaftaran(jenis, idPendaftaran)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing != nil {
		updated, err := s.seminarRepo.ResubmitDokumen(existing.ID, req.LinkPath)
		if err != nil {
			return err
		}

		s.log.Info("dokumen seminar dikirim ulang",
			zap.String("nim", mahasiswa.NIM),
			zap.String("jenis", string(jenis)))

		return c.JSON(model.Response[*model.DokumenSeminarKP]{
			Response: true,
			Message:  "Dokumen berhasil dikirim ulang",
			Data:     updated,
		})
	}

	baru := model.DokumenSeminarKP{
		JenisDokumen:    jenis,
		LinkPath:        req.LinkPath,
		NIM:             mahasiswa.NIM,
		IDPendaftaranKP: idPendaftaran,
	}
	if err := s.seminarRepo.CreateDokumen(&baru); err != nil {
		return err
	}

	s.log.Info("dokumen seminar dikirim",
		zap.String("nim", mahasiswa.NIM),
		zap.String("jenis", string(jenis)))

	return c.Status(fiber.StatusCreated).JSON(model.Response[model.DokumenSeminarKP]{
		Response: true,
		Message:  "Dokumen berhasil dikirim",
		Data:     baru,
	})
}

func groupDokumenByStep(dokumen []model.DokumenSeminarKP) model.DokumenByStep {
	grouped := model.DokumenByStep{
		Step1: []model.DokumenSeminarKP{},
		Step2: []model.DokumenSeminarKP{},
		Step3: []model.DokumenSeminarKP{},
		Step5: []model.DokumenSeminarKP{},
	}
	for _, doc := range dokumen {
		switch helper.StepForDokumen(doc.JenisDokumen) {
		case 1:
			grouped.Step1 = append(grouped.Step1, doc)
		case 2:
			grouped.Step2 = append(grouped.Step2, doc)
		case 3:
			grouped.Step3 = append(grouped.Step3, doc)
		case 5:
			grouped.Step5 = append(grouped.Step5, doc)
		}
	}
	return grouped
}

func (s *SeminarService) buildSeminarSaya(c *fiber.Ctx, nim string) (*model.SeminarKPSayaResponse, error) {
	mahasiswa, err := s.seminarRepo.GetMahasiswaSeminarByNIM(nim)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("Mahasiswa tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}

	persyaratan, err := s.mahasiswaService.ValidasiPersyaratan(c.Context(), nim)
	if err != nil {
		return nil, err
	}

	dokumen := mahasiswa.DokumenSeminarKP
	nilai := make([]model.NilaiWithHuruf, 0, len(mahasiswa.Nilai))
	for _, n := range mahasiswa.Nilai {
		nilai = append(nilai, model.NilaiWithHuruf{
			Nilai:      n,
			NilaiHuruf: helper.NilaiHuruf(n.NilaiAkhir),
		})
	}

	return &model.SeminarKPSayaResponse{
		NIM:         mahasiswa.NIM,
		Nama:        mahasiswa.Nama,
		Email:       mahasiswa.Email,
		Persyaratan: persyaratan,
		Dokumen:     groupDokumenByStep(dokumen),
		Jadwal:      mahasiswa.Jadwal,
		Nilai:       nilai,
		StepsInfo: model.StepInfo{
			Step1Accessible: helper.StepAccessible(1, dokumen),
			Step2Accessible: helper.StepAccessible(2, dokumen),
			Step3Accessible: helper.StepAccessible(3, dokumen),
			Step4Accessible: helper.StepAccessible(4, dokumen),
			Step5Accessible: helper.StepAccessible(5, dokumen),
			Step6Accessible: helper.StepAccessible(6, dokumen),
		},
	}, nil
}

// GetSeminarSaya mengembalikan seluruh keadaan seminar KP mahasiswa yang
// sedang login: syarat, dokumen per step, jadwal, dan nilai.
func (s *SeminarService) GetSeminarSaya(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	mahasiswa, err := s.mahasiswaRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Mahasiswa tidak ditemukan")
	}
	if err != nil {
		return err
	}

	resp, err := s.buildSeminarSaya(c, mahasiswa.NIM)
	if err != nil {
		return err
	}

	return c.JSON(model.Response[*model.SeminarKPSayaResponse]{
		Response: true,
		Message:  "Data seminar KP kamu berhasil diambil",
		Data:     resp,
	})
}

// GetDokumenMahasiswa adalah tampilan koordinator untuk satu mahasiswa.
func (s *SeminarService) GetDokumenMahasiswa(c *fiber.Ctx) error {
	resp, err := s.buildSeminarSaya(c, c.Params("nim"))
	if err != nil {
		return err
	}

	return c.JSON(model.Response[*model.SeminarKPSayaResponse]{
		Response: true,
		Message:  "Data seminar KP mahasiswa berhasil diambil",
		Data:     resp,
	})
}

func (s *SeminarService) GetAllDokumen(c *fiber.Ctx) error {
	tahunAjaranID := c.QueryInt("tahun_ajaran")
	var tahunAjaran *model.TahunAjaran
	var err error
	if tahunAjaranID == 0 {
		tahunAjaran, err = s.jadwalRepo.GetLatestTahunAjaran()
	} else {
		tahunAjaran, err = s.jadwalRepo.GetTahunAjaranByID(tahunAjaranID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Tahun ajaran tidak ditemukan")
	}
	if err != nil {
		return err
	}

	mahasiswaList, err := s.seminarRepo.GetMahasiswaWithDokumen(tahunAjaran.ID)
	if err != nil {
		return err
	}

	stats := model.DokumenStatistics{
		TotalMahasiswa: len(mahasiswaList),
		Status: map[string]int{
			string(model.DokumenTerkirim):   0,
			string(model.DokumenDivalidasi): 0,
			string(model.DokumenDitolak):    0,
		},
		Step: map[string]int{},
	}

	rows := make([]model.MahasiswaDokumenRow, 0, len(mahasiswaList))
	for _, m := range mahasiswaList {
		dokumen := m.DokumenSeminarKP
		step := helper.CurrentStep(dokumen)
		stats.Step[fmt.Sprintf("step%d", step)]++

		row := model.MahasiswaDokumenRow{
			NIM:            m.NIM,
			Nama:           m.Nama,
			Email:          m.Email,
			StepSekarang:   step,
			LastStatus:     "-",
			LastSubmission: "-",
		}

		var terbaru *model.DokumenSeminarKP
		for i := range dokumen {
			if terbaru == nil || dokumen[i].TanggalUpload.After(terbaru.TanggalUpload) {
				terbaru = &dokumen[i]
			}
		}
		if terbaru != nil {
			row.LastStatus = string(terbaru.Status)
			row.LastSubmission = helper.FormatWaktu(terbaru.TanggalUpload)
			stats.Status[string(terbaru.Status)]++
		}

		rows = append(rows, row)
	}

	return c.JSON(model.Response[model.AllDokumenResponse]{
		Response: true,
		Message:  "Dokumen seminar KP berhasil diambil",
		Data: model.AllDokumenResponse{
			Statistics:  stats,
			Mahasiswa:   rows,
			TahunAjaran: *tahunAjaran,
		},
	})
}

func (s *SeminarService) TerimaDokumen(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id dokumen tidak valid")
	}

	if _, err := s.seminarRepo.GetDokumenByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Dokumen tidak ditemukan")
		}
		return err
	}

	// Komentar saat validasi opsional.
	var req model.KomentarDokumenRequest
	_ = c.BodyParser(&req)
	var komentar *string
	if req.Komentar != "" {
		komentar = &req.Komentar
	}

	dokumen, err := s.seminarRepo.UpdateStatusDokumen(id, model.DokumenDivalidasi, komentar)
	if err != nil {
		return err
	}

	s.log.Info("dokumen seminar divalidasi",
		zap.String("id_dokumen", id.String()),
		zap.String("nim", dokumen.NIM))

	return c.JSON(model.Response[*model.DokumenSeminarKP]{
		Response: true,
		Message:  "Dokumen berhasil divalidasi",
		Data:     dokumen,
	})
}

func (s *SeminarService) TolakDokumen(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id dokumen tidak valid")
	}

	var req model.TolakDokumenRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	if _, err := s.seminarRepo.GetDokumenByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Dokumen tidak ditemukan")
		}
		return err
	}

	dokumen, err := s.seminarRepo.UpdateStatusDokumen(id, model.DokumenDitolak, &req.Komentar)
	if err != nil {
		return err
	}

	s.log.Info("dokumen seminar ditolak",
		zap.String("id_dokumen", id.String()),
		zap.String("nim", dokumen.NIM))

	return c.JSON(model.Response[*model.DokumenSeminarKP]{
		Response: true,
		Message:  "Dokumen berhasil ditolak",
		Data:     dokumen,
	})
}
