package model

import (
	"time"

	"github.com/google/uuid"
)

type StatusPendaftaran string

const (
	PendaftaranBaru    StatusPendaftaran = "Baru"
	PendaftaranLanjut  StatusPendaftaran = "Lanjut"
	PendaftaranGagal   StatusPendaftaran = "Gagal"
	PendaftaranSelesai StatusPendaftaran = "Selesai"
)

// Level akses minimal sebelum mahasiswa bisa masuk tahap bimbingan,
// daily report, dan seminar KP.
const LevelAksesSeminar = 5

type PendaftaranKP struct {
	ID                      uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NIM                     string            `gorm:"column:nim;type:varchar(20);not null" json:"nim"`
	Status                  StatusPendaftaran `gorm:"size:20;default:'Baru'" json:"status"`
	LevelAkses              int               `gorm:"default:0" json:"level_akses"`
	IDInstansi              *uuid.UUID        `gorm:"type:uuid" json:"id_instansi"`
	EmailPembimbingInstansi *string           `gorm:"size:100" json:"email_pembimbing_instansi"`
	NIPPembimbing           *string           `gorm:"column:nip_pembimbing;type:varchar(20)" json:"nip_pembimbing"`
	NIPPenguji              *string           `gorm:"column:nip_penguji;type:varchar(20)" json:"nip_penguji"`
	IDTahunAjaran           int               `gorm:"not null" json:"id_tahun_ajaran"`
	CreatedAt               time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relasi
	Mahasiswa          *Mahasiswa          `gorm:"foreignKey:NIM;references:NIM" json:"mahasiswa,omitempty"`
	Instansi           *Instansi           `gorm:"foreignKey:IDInstansi" json:"instansi,omitempty"`
	PembimbingInstansi *PembimbingInstansi `gorm:"foreignKey:EmailPembimbingInstansi;references:Email" json:"pembimbing_instansi,omitempty"`
	DosenPembimbing    *Dosen              `gorm:"foreignKey:NIPPembimbing;references:NIP" json:"dosen_pembimbing,omitempty"`
	DosenPenguji       *Dosen              `gorm:"foreignKey:NIPPenguji;references:NIP" json:"dosen_penguji,omitempty"`
	TahunAjaran        *TahunAjaran        `gorm:"foreignKey:IDTahunAjaran" json:"tahun_ajaran,omitempty"`
	Bimbingan          []Bimbingan         `gorm:"foreignKey:IDPendaftaranKP" json:"bimbingan,omitempty"`
	DokumenSeminarKP   []DokumenSeminarKP  `gorm:"foreignKey:IDPendaftaranKP" json:"dokumen_seminar_kp,omitempty"`
}

func (PendaftaranKP) TableName() string { return "pendaftaran_kp" }
