package repo

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/helper"
)

type NilaiPengujiInput struct {
	NIM             string
	NIP             string
	IDJadwalSeminar *uuid.UUID
	Komponen        model.KomponenPenilaianPenguji
	NilaiPenguji    float64
}

type NilaiPembimbingInput struct {
	NIM             string
	NIP             string
	IDJadwalSeminar *uuid.UUID
	Komponen        model.KomponenPenilaianPembimbing
	NilaiPembimbing float64
}

type NilaiInstansiInput struct {
	NIM           string
	Email         string
	Komponen      model.KomponenPenilaianInstansi
	NilaiInstansi float64
}

type NilaiRepository interface {
	FindByJadwalID(idJadwal uuid.UUID) (*model.Nilai, error)
	FindByNIM(nim string) (*model.Nilai, error)
	FindByID(id uuid.UUID) (*model.Nilai, error)
	FindAll() ([]model.Nilai, error)
	UpsertNilaiPenguji(input NilaiPengujiInput) (*model.Nilai, error)
	UpsertNilaiPembimbing(input NilaiPembimbingInput) (*model.Nilai, error)
	CreateNilaiInstansi(input NilaiInstansiInput) (*model.Nilai, error)
	SetValidasi(id uuid.UUID, status model.StatusNilai) error
}

type NilaiRepo struct {
	DB *gorm.DB
}

func NewNilaiRepo(db *gorm.DB) *NilaiRepo {
	return &NilaiRepo{DB: db}
}

func (r *NilaiRepo) FindByJadwalID(idJadwal uuid.UUID) (*model.Nilai, error) {
	var nilai model.Nilai
	err := r.DB.First(&nilai, "id_jadwal_seminar = ?", idJadwal).Error
	if err != nil {
		return nil, err
	}
	return &nilai, nil
}

func (r *NilaiRepo) FindByNIM(nim string) (*model.Nilai, error) {
	var nilai model.Nilai
	err := r.DB.
		Preload("KomponenPenilaianPenguji").
		Preload("KomponenPenilaianPembimbing").
		Preload("KomponenPenilaianInstansi").
		First(&nilai, "nim = ?", nim).Error
	if err != nil {
		return nil, err
	}
	return &nilai, nil
}

func (r *NilaiRepo) FindByID(id uuid.UUID) (*model.Nilai, error) {
	var nilai model.Nilai
	err := r.DB.
		Preload("Mahasiswa").
		Preload("KomponenPenilaianPenguji").
		Preload("KomponenPenilaianPembimbing").
		Preload("KomponenPenilaianInstansi").
		First(&nilai, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &nilai, nil
}

func (r *NilaiRepo) FindAll() ([]model.Nilai, error) {
	var nilai []model.Nilai
	err := r.DB.
		Preload("Mahasiswa").
		Preload("KomponenPenilaianPenguji").
		Preload("KomponenPenilaianPembimbing").
		Preload("KomponenPenilaianInstansi").
		Order("updated_at DESC").
		Find(&nilai).Error
	return nilai, err
}

// findOrCreateTx mengambil baris nilai milik mahasiswa atau membuatnya
// jika rater pertama yang masuk.
func (r *NilaiRepo) findOrCreateTx(tx *gorm.DB, nim string, idJadwal *uuid.UUID) (*model.Nilai, error) {
	var nilai model.Nilai
	err := tx.First(&nilai, "nim = ?", nim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		nilai = model.Nilai{NIM: nim, IDJadwalSeminar: idJadwal, Validasi: model.NilaiBelumValid}
		if err := tx.Create(&nilai).Error; err != nil {
			return nil, err
		}
		return &nilai, nil
	}
	if err != nil {
		return nil, err
	}
	if nilai.IDJadwalSeminar == nil && idJadwal != nil {
		if err := tx.Model(&nilai).Update("id_jadwal_seminar", idJadwal).Error; err != nil {
			return nil, err
		}
	}
	return &nilai, nil
}

func (r *NilaiRepo) recomputeAkhirTx(tx *gorm.DB, nilai *model.Nilai) error {
	akhir := helper.HitungNilaiAkhir(nilai.NilaiPenguji, nilai.NilaiPembimbing, nilai.NilaiInstansi)
	return tx.Model(&model.Nilai{}).Where("id = ?", nilai.ID).Updates(map[string]interface{}{
		"nilai_akhir": akhir,
		"updated_at":  time.Now(),
	}).Error
}

func (r *NilaiRepo) UpsertNilaiPenguji(input NilaiPengujiInput) (*model.Nilai, error) {
	var result *model.Nilai
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		nilai, err := r.findOrCreateTx(tx, input.NIM, input.IDJadwalSeminar)
		if err != nil {
			return err
		}

		var komponen model.KomponenPenilaianPenguji
		err = tx.First(&komponen, "id_nilai = ?", nilai.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			komponen = input.Komponen
			komponen.NIP = input.NIP
			komponen.IDNilai = nilai.ID
			if err := tx.Create(&komponen).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&komponen).Updates(map[string]interface{}{
				"penguasaan_keilmuan":  input.Komponen.PenguasaanKeilmuan,
				"kemampuan_presentasi": input.Komponen.KemampuanPresentasi,
				"kesesuaian_urgensi":   input.Komponen.KesesuaianUrgensi,
				"catatan":              input.Komponen.Catatan,
				"nip":                  input.NIP,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.Nilai{}).Where("id = ?", nilai.ID).
			Update("nilai_penguji", input.NilaiPenguji).Error; err != nil {
			return err
		}

		nilai.NilaiPenguji = &input.NilaiPenguji
		if err := r.recomputeAkhirTx(tx, nilai); err != nil {
			return err
		}

		result, err = r.findByIDTx(tx, nilai.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *NilaiRepo) UpsertNilaiPembimbing(input NilaiPembimbingInput) (*model.Nilai, error) {
	var result *model.Nilai
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		nilai, err := r.findOrCreateTx(tx, input.NIM, input.IDJadwalSeminar)
		if err != nil {
			return err
		}

		var komponen model.KomponenPenilaianPembimbing
		err = tx.First(&komponen, "id_nilai = ?", nilai.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			komponen = input.Komponen
			komponen.NIP = input.NIP
			komponen.IDNilai = nilai.ID
			if err := tx.Create(&komponen).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&komponen).Updates(map[string]interface{}{
				"penyelesaian_masalah": input.Komponen.PenyelesaianMasalah,
				"bimbingan_sikap":      input.Komponen.BimbinganSikap,
				"kualitas_laporan":     input.Komponen.KualitasLaporan,
				"catatan":              input.Komponen.Catatan,
				"nip":                  input.NIP,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.Nilai{}).Where("id = ?", nilai.ID).
			Update("nilai_pembimbing", input.NilaiPembimbing).Error; err != nil {
			return err
		}

		nilai.NilaiPembimbing = &input.NilaiPembimbing
		if err := r.recomputeAkhirTx(tx, nilai); err != nil {
			return err
		}

		result, err = r.findByIDTx(tx, nilai.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *NilaiRepo) CreateNilaiInstansi(input NilaiInstansiInput) (*model.Nilai, error) {
	var result *model.Nilai
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		nilai, err := r.findOrCreateTx(tx, input.NIM, nil)
		if err != nil {
			return err
		}

		komponen := input.Komponen
		komponen.EmailPembimbingInstansi = input.Email
		komponen.IDNilai = nilai.ID
		if err := tx.Create(&komponen).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Nilai{}).Where("id = ?", nilai.ID).
			Update("nilai_instansi", input.NilaiInstansi).Error; err != nil {
			return err
		}

		nilai.NilaiInstansi = &input.NilaiInstansi
		if err := r.recomputeAkhirTx(tx, nilai); err != nil {
			return err
		}

		result, err = r.findByIDTx(tx, nilai.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *NilaiRepo) findByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Nilai, error) {
	var nilai model.Nilai
	err := tx.
		Preload("KomponenPenilaianPenguji").
		Preload("KomponenPenilaianPembimbing").
		Preload("KomponenPenilaianInstansi").
		First(&nilai, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &nilai, nil
}

func (r *NilaiRepo) SetValidasi(id uuid.UUID, status model.StatusNilai) error {
	return r.DB.Model(&model.Nilai{}).Where("id = ?", id).Updates(map[string]interface{}{
		"validasi":   status,
		"updated_at": time.Now(),
	}).Error
}
