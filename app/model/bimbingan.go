package model

import (
	"time"

	"github.com/google/uuid"
)

type Bimbingan struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NIM              string    `gorm:"column:nim;type:varchar(20);not null" json:"nim"`
	NIP              string    `gorm:"column:nip;type:varchar(20);not null" json:"nip"`
	TanggalBimbingan time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"tanggal_bimbingan"`
	CatatanBimbingan string    `gorm:"type:text;not null" json:"catatan_bimbingan"`
	IDPendaftaranKP  uuid.UUID `gorm:"type:uuid;not null" json:"id_pendaftaran_kp"`

	// Relasi
	Mahasiswa *Mahasiswa `gorm:"foreignKey:NIM;references:NIM" json:"mahasiswa,omitempty"`
	Dosen     *Dosen     `gorm:"foreignKey:NIP;references:NIP" json:"dosen,omitempty"`
}

func (Bimbingan) TableName() string { return "bimbingan" }

type CreateBimbinganRequest struct {
	NIM              string `json:"nim" validate:"required"`
	IDPendaftaranKP  string `json:"id_pendaftaran_kp" validate:"required"`
	CatatanBimbingan string `json:"catatan_bimbingan" validate:"required"`
}
