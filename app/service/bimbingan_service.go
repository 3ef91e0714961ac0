package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
	"fiber/kp/helper"
)

type BimbinganService struct {
	bimbinganRepo repo.BimbinganRepository
	mahasiswaRepo repo.MahasiswaRepository
	dosenRepo     repo.DosenRepository
}

func NewBimbinganService(
	bimbinganRepo repo.BimbinganRepository,
	mahasiswaRepo repo.MahasiswaRepository,
	dosenRepo repo.DosenRepository,
) *BimbinganService {
	return &BimbinganService{
		bimbinganRepo: bimbinganRepo,
		mahasiswaRepo: mahasiswaRepo,
		dosenRepo:     dosenRepo,
	}
}

// GetBimbinganSaya mengembalikan riwayat bimbingan mahasiswa yang login;
// tahap bimbingan baru terbuka pada level akses tertentu.
func (s *BimbinganService) GetBimbinganSaya(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	mahasiswa, err := s.mahasiswaRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Mahasiswa tidak ditemukan")
	}
	if err != nil {
		return err
	}

	pendaftaran, err := s.bimbinganRepo.FindPendaftaranWithBimbingan(mahasiswa.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Kamu belum terdaftar kerja praktik!")
	}
	if err != nil {
		return err
	}
	if pendaftaran.LevelAkses < model.LevelAksesSeminar {
		return model.Forbidden("Level akses kamu belum cukup untuk tahap bimbingan!")
	}

	return c.JSON(model.Response[*model.PendaftaranKP]{
		Response: true,
		Message:  "Bimbingan berhasil diambil",
		Data:     pendaftaran,
	})
}

// GetMahasiswaBimbingan menampilkan seluruh mahasiswa bimbingan dosen yang
// login beserta riwayat bimbingannya.
func (s *BimbinganService) GetMahasiswaBimbingan(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	dosen, err := s.dosenRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Dosen tidak ditemukan")
	}
	if err != nil {
		return err
	}

	pendaftaran, err := s.bimbinganRepo.FindMahasiswaBimbingan(dosen.NIP)
	if err != nil {
		return err
	}

	return c.JSON(model.Response[[]model.PendaftaranKP]{
		Response: true,
		Message:  "Mahasiswa bimbingan berhasil diambil",
		Data:     pendaftaran,
	})
}

func (s *BimbinganService) PostBimbingan(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	dosen, err := s.dosenRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Dosen tidak ditemukan")
	}
	if err != nil {
		return err
	}

	var req model.CreateBimbinganRequest
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

	pendaftaran, err := s.bimbinganRepo.FindPendaftaranWithBimbingan(req.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Pendaftaran KP mahasiswa tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if pendaftaran.ID != idPendaftaran {
		return model.BadRequest("Id pendaftaran tidak sesuai dengan pendaftaran aktif mahasiswa")
	}
	if pendaftaran.NIPPembimbing == nil || *pendaftaran.NIPPembimbing != dosen.NIP {
		return model.Forbidden("Kamu bukan dosen pembimbing mahasiswa ini!")
	}

	bimbingan := model.Bimbingan{
		NIM:              req.NIM,
		NIP:              dosen.NIP,
		TanggalBimbingan: time.Now(),
		CatatanBimbingan: req.CatatanBimbingan,
		IDPendaftaranKP:  pendaftaran.ID,
	}
	if err := s.bimbinganRepo.CreateBimbingan(&bimbingan); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(model.Response[model.Bimbingan]{
		Response: true,
		Message:  "Bimbingan berhasil dicatat",
		Data:     bimbingan,
	})
}
