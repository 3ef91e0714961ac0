package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
)

type MahasiswaRepository interface {
	FindByNIM(nim string) (*model.Mahasiswa, error)
	FindByEmail(email string) (*model.Mahasiswa, error)
	GetPendaftaranKP(nim string) (*model.PendaftaranKP, error)
	CountBimbingan(nim string) (int64, error)
	GetDailyReports(nim string) ([]model.DailyReport, error)
	GetNilai(nim string) (*model.Nilai, error)
	GetJadwalOnDate(nim string, tanggal time.Time) ([]model.Jadwal, error)
	FindInstansiByID(id uuid.UUID) (*model.Instansi, error)
}

type MahasiswaRepo struct {
	DB *gorm.DB
}

func NewMahasiswaRepo(db *gorm.DB) *MahasiswaRepo {
	return &MahasiswaRepo{DB: db}
}

func (r *MahasiswaRepo) FindByNIM(nim string) (*model.Mahasiswa, error) {
	var mahasiswa model.Mahasiswa
	err := r.DB.Where("nim = ?", nim).First(&mahasiswa).Error
	if err != nil {
		return nil, err
	}
	return &mahasiswa, nil
}

func (r *MahasiswaRepo) FindByEmail(email string) (*model.Mahasiswa, error) {
	var mahasiswa model.Mahasiswa
	err := r.DB.Where("email = ?", email).First(&mahasiswa).Error
	if err != nil {
		return nil, err
	}
	return &mahasiswa, nil
}

// GetPendaftaranKP mengambil pendaftaran terbaru milik mahasiswa.
func (r *MahasiswaRepo) GetPendaftaranKP(nim string) (*model.PendaftaranKP, error) {
	var pendaftaran model.PendaftaranKP
	err := r.DB.Where("nim = ?", nim).Order("created_at DESC").First(&pendaftaran).Error
	if err != nil {
		return nil, err
	}
	return &pendaftaran, nil
}

func (r *MahasiswaRepo) CountBimbingan(nim string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Bimbingan{}).Where("nim = ?", nim).Count(&count).Error
	return count, err
}

func (r *MahasiswaRepo) GetDailyReports(nim string) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.DB.Where("nim = ?", nim).Order("tanggal ASC").Find(&reports).Error
	return reports, err
}

func (r *MahasiswaRepo) GetNilai(nim string) (*model.Nilai, error) {
	var nilai model.Nilai
	err := r.DB.Where("nim = ?", nim).First(&nilai).Error
	if err != nil {
		return nil, err
	}
	return &nilai, nil
}

func (r *MahasiswaRepo) FindInstansiByID(id uuid.UUID) (*model.Instansi, error) {
	var instansi model.Instansi
	err := r.DB.First(&instansi, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instansi, nil
}

func (r *MahasiswaRepo) GetJadwalOnDate(nim string, tanggal time.Time) ([]model.Jadwal, error) {
	var jadwal []model.Jadwal
	err := r.DB.Where("nim = ? AND tanggal = ?", nim, tanggal).Find(&jadwal).Error
	return jadwal, err
}
