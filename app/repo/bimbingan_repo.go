package repo

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
)

type BimbinganRepository interface {
	FindPendaftaranWithBimbingan(nim string) (*model.PendaftaranKP, error)
	FindMahasiswaBimbingan(nip string) ([]model.PendaftaranKP, error)
	CreateBimbingan(bimbingan *model.Bimbingan) error
	FindBimbinganByPendaftaran(idPendaftaran uuid.UUID) ([]model.Bimbingan, error)
}

type BimbinganRepo struct {
	DB *gorm.DB
}

func NewBimbinganRepo(db *gorm.DB) *BimbinganRepo {
	return &BimbinganRepo{DB: db}
}

func (r *BimbinganRepo) FindPendaftaranWithBimbingan(nim string) (*model.PendaftaranKP, error) {
	var pendaftaran model.PendaftaranKP
	err := r.DB.
		Preload("Bimbingan").
		Preload("Bimbingan.Dosen").
		Preload("DosenPembimbing").
		Where("nim = ?", nim).
		Order("created_at DESC").
		First(&pendaftaran).Error
	if err != nil {
		return nil, err
	}
	return &pendaftaran, nil
}

// FindMahasiswaBimbingan mengambil seluruh pendaftaran yang dibimbing dosen itu.
func (r *BimbinganRepo) FindMahasiswaBimbingan(nip string) ([]model.PendaftaranKP, error) {
	var pendaftaran []model.PendaftaranKP
	err := r.DB.
		Preload("Mahasiswa").
		Preload("Instansi").
		Preload("Bimbingan").
		Where("nip_pembimbing = ?", nip).
		Find(&pendaftaran).Error
	return pendaftaran, err
}

func (r *BimbinganRepo) CreateBimbingan(bimbingan *model.Bimbingan) error {
	return r.DB.Create(bimbingan).Error
}

func (r *BimbinganRepo) FindBimbinganByPendaftaran(idPendaftaran uuid.UUID) ([]model.Bimbingan, error) {
	var bimbingan []model.Bimbingan
	err := r.DB.Where("id_pendaftaran_kp = ?", idPendaftaran).
		Order("tanggal_bimbingan ASC").Find(&bimbingan).Error
	return bimbingan, err
}
