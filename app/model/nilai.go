package model

import (
	"time"

	"github.com/google/uuid"
)

type StatusNilai string

const (
	NilaiBelumValid StatusNilai = "NilaiBelumValid"
	NilaiValid      StatusNilai = "NilaiValid"
	NilaiApprove    StatusNilai = "NilaiApprove"
)

// Nilai menampung tiga nilai komposit dari pihak yang berbeda. NilaiAkhir
// hanya terisi jika ketiganya sudah ada.
type Nilai struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NIM             string      `gorm:"column:nim;type:varchar(20);not null" json:"nim"`
	IDJadwalSeminar *uuid.UUID  `gorm:"type:uuid" json:"id_jadwal_seminar"`
	NilaiPenguji    *float64    `json:"nilai_penguji"`
	NilaiPembimbing *float64    `json:"nilai_pembimbing"`
	NilaiInstansi   *float64    `json:"nilai_instansi"`
	NilaiAkhir      *float64    `json:"nilai_akhir"`
	Validasi        StatusNilai `gorm:"size:20;default:'NilaiBelumValid'" json:"validasi"`
	CreatedAt       time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relasi
	Mahasiswa                   *Mahasiswa                   `gorm:"foreignKey:NIM;references:NIM" json:"mahasiswa,omitempty"`
	KomponenPenilaianPenguji    *KomponenPenilaianPenguji    `gorm:"foreignKey:IDNilai" json:"komponen_penilaian_penguji,omitempty"`
	KomponenPenilaianPembimbing *KomponenPenilaianPembimbing `gorm:"foreignKey:IDNilai" json:"komponen_penilaian_pembimbing,omitempty"`
	KomponenPenilaianInstansi   *KomponenPenilaianInstansi   `gorm:"foreignKey:IDNilai" json:"komponen_penilaian_instansi,omitempty"`
}

func (Nilai) TableName() string { return "nilai" }

type KomponenPenilaianPenguji struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PenguasaanKeilmuan  float64   `json:"penguasaan_keilmuan"`
	KemampuanPresentasi float64   `json:"kemampuan_presentasi"`
	KesesuaianUrgensi   float64   `json:"kesesuaian_urgensi"`
	Catatan             string    `gorm:"type:text" json:"catatan"`
	NIP                 string    `gorm:"column:nip;type:varchar(20);not null" json:"nip"`
	IDNilai             uuid.UUID `gorm:"type:uuid;not null" json:"id_nilai"`
	CreatedAt           time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (KomponenPenilaianPenguji) TableName() string { return "komponen_penilaian_penguji" }

type KomponenPenilaianPembimbing struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PenyelesaianMasalah float64   `json:"penyelesaian_masalah"`
	BimbinganSikap      float64   `json:"bimbingan_sikap"`
	KualitasLaporan     float64   `json:"kualitas_laporan"`
	Catatan             string    `gorm:"type:text" json:"catatan"`
	NIP                 string    `gorm:"column:nip;type:varchar(20);not null" json:"nip"`
	IDNilai             uuid.UUID `gorm:"type:uuid;not null" json:"id_nilai"`
	CreatedAt           time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (KomponenPenilaianPembimbing) TableName() string { return "komponen_penilaian_pembimbing" }

type KomponenPenilaianInstansi struct {
	ID                      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Deliverables            float64   `json:"deliverables"`
	KetepatanWaktu          float64   `json:"ketepatan_waktu"`
	Kedisiplinan            float64   `json:"kedisiplinan"`
	Attitude                float64   `json:"attitude"`
	KerjasamaTim            float64   `json:"kerjasama_tim"`
	Inisiatif               float64   `json:"inisiatif"`
	Masukan                 string    `gorm:"type:text" json:"masukan"`
	EmailPembimbingInstansi string    `gorm:"size:100;not null" json:"email_pembimbing_instansi"`
	IDNilai                 uuid.UUID `gorm:"type:uuid;not null" json:"id_nilai"`
	CreatedAt               time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (KomponenPenilaianInstansi) TableName() string { return "komponen_penilaian_instansi" }

type NilaiWithHuruf struct {
	Nilai
	NilaiHuruf string `json:"nilai_huruf"`
}

type CreateNilaiPengujiRequest struct {
	NIM                 string  `json:"nim" validate:"required"`
	IDJadwalSeminar     string  `json:"id_jadwal_seminar" validate:"required"`
	PenguasaanKeilmuan  float64 `json:"penguasaan_keilmuan" validate:"min=0,max=100"`
	KemampuanPresentasi float64 `json:"kemampuan_presentasi" validate:"min=0,max=100"`
	KesesuaianUrgensi   float64 `json:"kesesuaian_urgensi" validate:"min=0,max=100"`
	Catatan             string  `json:"catatan"`
}

type CreateNilaiPembimbingRequest struct {
	NIM                 string  `json:"nim" validate:"required"`
	IDJadwalSeminar     string  `json:"id_jadwal_seminar" validate:"required"`
	PenyelesaianMasalah float64 `json:"penyelesaian_masalah" validate:"min=0,max=100"`
	BimbinganSikap      float64 `json:"bimbingan_sikap" validate:"min=0,max=100"`
	KualitasLaporan     float64 `json:"kualitas_laporan" validate:"min=0,max=100"`
	Catatan             string  `json:"catatan"`
}

type CreateNilaiInstansiRequest struct {
	NIM            string  `json:"nim" validate:"required"`
	Deliverables   float64 `json:"deliverables" validate:"min=0,max=100"`
	KetepatanWaktu float64 `json:"ketepatan_waktu" validate:"min=0,max=100"`
	Kedisiplinan   float64 `json:"kedisiplinan" validate:"min=0,max=100"`
	Attitude       float64 `json:"attitude" validate:"min=0,max=100"`
	KerjasamaTim   float64 `json:"kerjasama_tim" validate:"min=0,max=100"`
	Inisiatif      float64 `json:"inisiatif" validate:"min=0,max=100"`
	Masukan        string  `json:"masukan"`
}

type ValidasiNilaiResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
