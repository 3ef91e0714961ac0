package repo

import (
	"time"

	"gorm.io/gorm"

	"fiber/kp/app/model"
)

type DosenRepository interface {
	FindByNIP(nip string) (*model.Dosen, error)
	FindByEmail(email string) (*model.Dosen, error)
	FindAll() ([]model.Dosen, error)
	GetJadwalOnDate(nip string, tanggal time.Time) ([]model.Jadwal, error)
}

type DosenRepo struct {
	DB *gorm.DB
}

func NewDosenRepo(db *gorm.DB) *DosenRepo {
	return &DosenRepo{DB: db}
}

func (r *DosenRepo) FindByNIP(nip string) (*model.Dosen, error) {
	var dosen model.Dosen
	err := r.DB.Where("nip = ?", nip).First(&dosen).Error
	if err != nil {
		return nil, err
	}
	return &dosen, nil
}

func (r *DosenRepo) FindByEmail(email string) (*model.Dosen, error) {
	var dosen model.Dosen
	err := r.DB.Where("email = ?", email).First(&dosen).Error
	if err != nil {
		return nil, err
	}
	return &dosen, nil
}

func (r *DosenRepo) FindAll() ([]model.Dosen, error) {
	var dosen []model.Dosen
	err := r.DB.Order("nama ASC").Find(&dosen).Error
	return dosen, err
}

// GetJadwalOnDate mengambil jadwal pada tanggal itu yang melibatkan dosen
// sebagai penguji maupun pembimbing.
func (r *DosenRepo) GetJadwalOnDate(nip string, tanggal time.Time) ([]model.Jadwal, error) {
	var jadwal []model.Jadwal
	err := r.DB.
		Joins("JOIN pendaftaran_kp ON pendaftaran_kp.id = jadwal.id_pendaftaran_kp").
		Where("jadwal.tanggal = ? AND (pendaftaran_kp.nip_penguji = ? OR pendaftaran_kp.nip_pembimbing = ?)",
			tanggal, nip, nip).
		Find(&jadwal).Error
	return jadwal, err
}
