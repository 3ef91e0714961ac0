package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
)

type MahasiswaService struct {
	mahasiswaRepo repo.MahasiswaRepository
	murojaahRepo  repo.MurojaahRepository
}

func NewMahasiswaService(mahasiswaRepo repo.MahasiswaRepository, murojaahRepo repo.MurojaahRepository) *MahasiswaService {
	return &MahasiswaService{
		mahasiswaRepo: mahasiswaRepo,
		murojaahRepo:  murojaahRepo,
	}
}

func (s *MahasiswaService) currentMahasiswa(c *fiber.Ctx) (*model.Mahasiswa, error) {
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

// ValidasiPersyaratan mengecek lima syarat komposit sekaligus. Kelimanya
// independen sehingga dijalankan paralel; hasil per syarat tetap dilaporkan
// satu per satu supaya mahasiswa tahu mana yang kurang.
func (s *MahasiswaService) ValidasiPersyaratan(ctx context.Context, nim string) (model.PersyaratanSeminarKP, error) {
	var (
		murojaahDone   bool
		pendaftaran    *model.PendaftaranKP
		totalBimbingan int64
		reports        []model.DailyReport
		nilai          *model.Nilai
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		murojaahDone, err = s.murojaahRepo.CheckMurojaah(gctx, nim)
		return err
	})
	g.Go(func() error {
		var err error
		pendaftaran, err = s.mahasiswaRepo.GetPendaftaranKP(nim)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pendaftaran = nil
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		totalBimbingan, err = s.mahasiswaRepo.CountBimbingan(nim)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = s.mahasiswaRepo.GetDailyReports(nim)
		return err
	})
	g.Go(func() error {
		var err error
		nilai, err = s.mahasiswaRepo.GetNilai(nim)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			nilai = nil
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return model.PersyaratanSeminarKP{}, err
	}

	masihTerdaftar := pendaftaran != nil &&
		(pendaftaran.Status == model.PendaftaranBaru || pendaftaran.Status == model.PendaftaranLanjut)

	dailyReportOk := len(reports) > 22
	for _, report := range reports {
		if report.Status != model.DailyReportDisetujui {
			dailyReportOk = false
			break
		}
	}

	persyaratan := model.PersyaratanSeminarKP{
		SudahSelesaiMurojaah:       murojaahDone,
		MasihTerdaftarKP:           masihTerdaftar,
		MinimalLimaBimbingan:       totalBimbingan >= 5,
		DailyReportSudahDisetujui:  dailyReportOk,
		SudahMendapatNilaiInstansi: nilai != nil && nilai.NilaiInstansi != nil,
	}
	persyaratan.SemuaSyaratTerpenuhi = persyaratan.SudahSelesaiMurojaah &&
		persyaratan.MasihTerdaftarKP &&
		persyaratan.MinimalLimaBimbingan &&
		persyaratan.DailyReportSudahDisetujui &&
		persyaratan.SudahMendapatNilaiInstansi
	return persyaratan, nil
}

// GetPersyaratanSaya mengembalikan rincian syarat seminar milik mahasiswa
// yang sedang login.
func (s *MahasiswaService) GetPersyaratanSaya(c *fiber.Ctx) error {
	mahasiswa, err := s.currentMahasiswa(c)
	if err != nil {
		return err
	}

	persyaratan, err := s.ValidasiPersyaratan(c.Context(), mahasiswa.NIM)
	if err != nil {
		return err
	}

	return c.JSON(model.Response[model.PersyaratanSeminarKP]{
		Response: true,
		Message:  "Persyaratan seminar KP berhasil diambil",
		Data:     persyaratan,
	})
}

func (s *MahasiswaService) CheckLevelAkses(c *fiber.Ctx) error {
	mahasiswa, err := s.currentMahasiswa(c)
	if err != nil {
		return err
	}

	pendaftaran, err := s.mahasiswaRepo.GetPendaftaranKP(mahasiswa.NIM)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Kamu belum terdaftar kerja praktik!")
	}
	if err != nil {
		return err
	}

	return c.JSON(model.Response[model.LevelAksesResponse]{
		Response: true,
		Message:  "Level akses berhasil diambil",
		Data: model.LevelAksesResponse{
			ID:          pendaftaran.ID,
			NIM:         pendaftaran.NIM,
			AccessLevel: pendaftaran.LevelAkses,
			HasAccess:   pendaftaran.LevelAkses >= model.LevelAksesSeminar,
		},
	})
}
