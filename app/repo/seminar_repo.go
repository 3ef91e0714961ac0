package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
)

type SeminarRepository interface {
	GetDokumenByJenisAndPendaftaran(jenis model.JenisDokumen, idPendaftaran uuid.UUID) (*model.DokumenSeminarKP, error)
	CreateDokumen(dokumen *model.DokumenSeminarKP) error
	ResubmitDokumen(id uuid.UUID, linkPath string) (*model.DokumenSeminarKP, error)
	UpdateStatusDokumen(id uuid.UUID, status model.StatusDokumen, komentar *string) (*model.DokumenSeminarKP, error)
	GetDokumenByID(id uuid.UUID) (*model.DokumenSeminarKP, error)
	GetDokumenByPendaftaran(idPendaftaran uuid.UUID) ([]model.DokumenSeminarKP, error)
	GetMahasiswaWithDokumen(tahunAjaranID int) ([]model.Mahasiswa, error)
	GetMahasiswaSeminarByNIM(nim string) (*model.Mahasiswa, error)
}

type SeminarRepo struct {
	DB *gorm.DB
}

func NewSeminarRepo(db *gorm.DB) *SeminarRepo {
	return &SeminarRepo{DB: db}
}

func (r *SeminarRepo) GetDokumenByJenisAndPendaftaran(jenis model.JenisDokumen, idPendaftaran uuid.UUID) (*model.DokumenSeminarKP, error) {
	var dokumen model.DokumenSeminarKP
	err := r.DB.Where("jenis_dokumen = ? AND id_pendaftaran_kp = ?", jenis, idPendaftaran).First(&dokumen).Error
	if err != nil {
		return nil, err
	}
	return &dokumen, nil
}

func (r *SeminarRepo) CreateDokumen(dokumen *model.DokumenSeminarKP) error {
	dokumen.TanggalUpload = time.Now()
	dokumen.Status = model.DokumenTerkirim
	return r.DB.Create(dokumen).Error
}

// ResubmitDokumen menimpa link dokumen lama dan mengembalikan statusnya ke
// Terkirim; tidak pernah membuat baris duplikat untuk jenis yang sama.
func (r *SeminarRepo) ResubmitDokumen(id uuid.UUID, linkPath string) (*model.DokumenSeminarKP, error) {
	err := r.DB.Model(&model.DokumenSeminarKP{}).Where("id = ?", id).Updates(map[string]interface{}{
		"link_path":      linkPath,
		"status":         model.DokumenTerkirim,
		"komentar":       nil,
		"tanggal_upload": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return r.GetDokumenByID(id)
}

func (r *SeminarRepo) UpdateStatusDokumen(id uuid.UUID, status model.StatusDokumen, komentar *string) (*model.DokumenSeminarKP, error) {
	err := r.DB.Model(&model.DokumenSeminarKP{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":   status,
		"komentar": komentar,
	}).Error
	if err != nil {
		return nil, err
	}
	return r.GetDokumenByID(id)
}

func (r *SeminarRepo) GetDokumenByID(id uuid.UUID) (*model.DokumenSeminarKP, error) {
	var dokumen model.DokumenSeminarKP
	err := r.DB.First(&dokumen, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dokumen, nil
}

func (r *SeminarRepo) GetDokumenByPendaftaran(idPendaftaran uuid.UUID) ([]model.DokumenSeminarKP, error) {
	var dokumen []model.DokumenSeminarKP
	err := r.DB.Where("id_pendaftaran_kp = ?", idPendaftaran).Order("tanggal_upload ASC").Find(&dokumen).Error
	return dokumen, err
}

// GetMahasiswaWithDokumen mengambil mahasiswa yang terdaftar KP pada tahun
// ajaran itu beserta seluruh dokumen seminarnya.
func (r *SeminarRepo) GetMahasiswaWithDokumen(tahunAjaranID int) ([]model.Mahasiswa, error) {
	var mahasiswa []model.Mahasiswa
	err := r.DB.
		Joins("JOIN pendaftaran_kp ON pendaftaran_kp.nim = mahasiswa.nim").
		Where("pendaftaran_kp.id_tahun_ajaran = ?", tahunAjaranID).
		Preload("DokumenSeminarKP").
		Find(&mahasiswa).Error
	return mahasiswa, err
}

func (r *SeminarRepo) GetMahasiswaSeminarByNIM(nim string) (*model.Mahasiswa, error) {
	var mahasiswa model.Mahasiswa
	err := r.DB.
		Preload("DokumenSeminarKP").
		Preload("PendaftaranKP").
		Preload("Jadwal").
		Preload("Jadwal.Ruangan").
		Preload("Nilai").
		First(&mahasiswa, "nim = ?", nim).Error
	if err != nil {
		return nil, err
	}
	return &mahasiswa, nil
}
