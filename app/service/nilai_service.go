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

type NilaiService struct {
	nilaiRepo     repo.NilaiRepository
	dosenRepo     repo.DosenRepository
	mahasiswaRepo repo.MahasiswaRepository
	jadwalRepo    repo.JadwalRepository
	seminarRepo   repo.SeminarRepository
	log           *zap.Logger
}

func NewNilaiService(
	nilaiRepo repo.NilaiRepository,
	dosenRepo repo.DosenRepository,
	mahasiswaRepo repo.MahasiswaRepository,
	jadwalRepo repo.JadwalRepository,
	seminarRepo repo.SeminarRepository,
	log *zap.Logger,
) *NilaiService {
	return &NilaiService{
		nilaiRepo:     nilaiRepo,
		dosenRepo:     dosenRepo,
		mahasiswaRepo: mahasiswaRepo,
		jadwalRepo:    jadwalRepo,
		seminarRepo:   seminarRepo,
		log:           log,
	}
}

func (s *NilaiService) currentDosen(c *fiber.Ctx) (*model.Dosen, error) {
	email, _ := c.Locals("email").(string)
	dosen, err := s.dosenRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("Dosen tidak ditemukan")
	}
	if err != nil {
		return nil, err
	}
	return dosen, nil
}

// PostNilaiPenguji menyimpan komponen penilaian penguji. Input ulang oleh
// penguji yang sama menimpa komponen lama dan menghitung ulang komposit.
func (s *NilaiService) PostNilaiPenguji(c *fiber.Ctx) error {
	dosen, err := s.currentDosen(c)
	if err != nil {
		return err
	}

	var req model.CreateNilaiPengujiRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	idJadwal, err := uuid.Parse(req.IDJadwalSeminar)
	if err != nil {
		return model.BadRequest("Id jadwal seminar tidak valid")
	}

	jadwal, err := s.jadwalRepo.GetJadwalByID(idJadwal)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Jadwal seminar tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if jadwal.NIM != req.NIM {
		return model.BadRequest("Jadwal bukan milik mahasiswa tersebut")
	}
	if jadwal.PendaftaranKP == nil || jadwal.PendaftaranKP.NIPPenguji == nil ||
		*jadwal.PendaftaranKP.NIPPenguji != dosen.NIP {
		return model.Forbidden("Kamu bukan dosen penguji mahasiswa ini!")
	}
	if !helper.CanInputNilai(&jadwal.WaktuMulai, time.Now()) {
		return model.Forbidden("Nilai baru bisa diinput setelah seminar dimulai!")
	}

	komposit, err := helper.HitungNilaiPenguji(req.PenguasaanKeilmuan, req.KemampuanPresentasi, req.KesesuaianUrgensi)
	if err != nil {
		return err
	}

	nilai, err := s.nilaiRepo.UpsertNilaiPenguji(repo.NilaiPengujiInput{
		NIM:             req.NIM,
		NIP:             dosen.NIP,
		IDJadwalSeminar: &idJadwal,
		Komponen: model.KomponenPenilaianPenguji{
			PenguasaanKeilmuan:  req.PenguasaanKeilmuan,
			KemampuanPresentasi: req.KemampuanPresentasi,
			KesesuaianUrgensi:   req.KesesuaianUrgensi,
			Catatan:             req.Catatan,
		},
		NilaiPenguji: komposit,
	})
	if err != nil {
		return err
	}

	s.log.Info("nilai penguji disimpan",
		zap.String("nim", req.NIM),
		zap.String("nip", dosen.NIP),
		zap.Float64("nilai", komposit))

	return c.Status(fiber.StatusCreated).JSON(model.Response[*model.Nilai]{
		Response: true,
		Message:  "Nilai penguji berhasil disimpan",
		Data:     nilai,
	})
}

func (s *NilaiService) PostNilaiPembimbing(c *fiber.Ctx) error {
	dosen, err := s.currentDosen(c)
	if err != nil {
		return err
	}

	var req model.CreateNilaiPembimbingRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	idJadwal, err := uuid.Parse(req.IDJadwalSeminar)
	if err != nil {
		return model.BadRequest("Id jadwal seminar tidak valid")
	}

	jadwal, err := s.jadwalRepo.GetJadwalByID(idJadwal)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Jadwal seminar tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if jadwal.NIM != req.NIM {
		return model.BadRequest("Jadwal bukan milik mahasiswa tersebut")
	}
	if jadwal.PendaftaranKP == nil || jadwal.PendaftaranKP.NIPPembimbing == nil ||
		*jadwal.PendaftaranKP.NIPPembimbing != dosen.NIP {
		return model.Forbidden("Kamu bukan dosen pembimbing mahasiswa ini!")
	}

	komposit, err := helper.HitungNilaiPembimbing(req.PenyelesaianMasalah, req.BimbinganSikap, req.KualitasLaporan)
	if err != nil {
		return err
	}

	nilai, err := s.nilaiRepo.UpsertNilaiPembimbing(repo.NilaiPembimbingInput{
		NIM:             req.NIM,
		NIP:             dosen.NIP,
		IDJadwalSeminar: &idJadwal,
		Komponen: model.KomponenPenilaianPembimbing{
			PenyelesaianMasalah: req.PenyelesaianMasalah,
			BimbinganSikap:      req.BimbinganSikap,
			KualitasLaporan:     req.KualitasLaporan,
			Catatan:             req.Catatan,
		},
		NilaiPembimbing: komposit,
	})
	if err != nil {
		return err
	}

	s.log.Info("nilai pembimbing disimpan",
		zap.String("nim", req.NIM),
		zap.String("nip", dosen.NIP),
		zap.Float64("nilai", komposit))

	return c.Status(fiber.StatusCreated).JSON(model.Response[*model.Nilai]{
		Response: true,
		Message:  "Nilai pembimbing berhasil disimpan",
		Data:     nilai,
	})
}

func (s *NilaiService) GetAllNilai(c *fiber.Ctx) error {
	nilaiList, err := s.nilaiRepo.FindAll()
	if err != nil {
		return err
	}

	withHuruf := make([]model.NilaiWithHuruf, 0, len(nilaiList))
	for _, n := range nilaiList {
		withHuruf = append(withHuruf, model.NilaiWithHuruf{
			Nilai:      n,
			NilaiHuruf: helper.NilaiHuruf(n.NilaiAkhir),
		})
	}

	return c.JSON(model.Response[[]model.NilaiWithHuruf]{
		Response: true,
		Message:  "Nilai berhasil diambil",
		Data:     withHuruf,
	})
}

func (s *NilaiService) GetNilaiByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id nilai tidak valid")
	}

	nilai, err := s.nilaiRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Nilai tidak ditemukan")
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

// ValidasiNilai memfinalkan nilai: ketiga komposit harus sudah terisi dan
// seluruh dokumen seminar mahasiswa sudah Divalidasi.
func (s *NilaiService) ValidasiNilai(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id nilai tidak valid")
	}

	nilai, err := s.nilaiRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Nilai tidak ditemukan")
	}
	if err != nil {
		return err
	}

	pendaftaran, err := s.mahasiswaRepo.GetPendaftaranKP(nilai.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Pendaftaran KP mahasiswa tidak ditemukan")
	}
	if err != nil {
		return err
	}

	dokumen, err := s.seminarRepo.GetDokumenByPendaftaran(pendaftaran.ID)
	if err != nil {
		return err
	}

	result := helper.CanValidateNilai(nilai.NilaiPenguji, nilai.NilaiPembimbing, nilai.NilaiInstansi, dokumen)
	if !result.Valid {
		return model.BadRequest("%s", result.Message)
	}

	if err := s.nilaiRepo.SetValidasi(id, model.NilaiValid); err != nil {
		return err
	}

	s.log.Info("nilai divalidasi", zap.String("nim", nilai.NIM))

	return c.JSON(model.Response[model.ValidasiNilaiResult]{
		Response: true,
		Message:  "Nilai berhasil divalidasi",
		Data:     result,
	})
}

func (s *NilaiService) ApproveNilai(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return model.BadRequest("Id nilai tidak valid")
	}

	nilai, err := s.nilaiRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Nilai tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if nilai.Validasi != model.NilaiValid {
		return model.BadRequest("Nilai harus divalidasi terlebih dahulu!")
	}

	if err := s.nilaiRepo.SetValidasi(id, model.NilaiApprove); err != nil {
		return err
	}

	s.log.Info("nilai diapprove", zap.String("nim", nilai.NIM))

	return c.JSON(model.Response[any]{
		Response: true,
		Message:  "Nilai berhasil diapprove",
	})
}
