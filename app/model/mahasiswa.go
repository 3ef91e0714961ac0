package model

import (
	"github.com/google/uuid"
)

type Mahasiswa struct {
	NIM   string `gorm:"column:nim;type:varchar(20);primaryKey" json:"nim"`
	Nama  string `gorm:"size:100;not null" json:"nama"`
	Email string `gorm:"size:100;unique;not null" json:"email"`

	// Relasi
	PendaftaranKP    []PendaftaranKP    `gorm:"foreignKey:NIM;references:NIM" json:"pendaftaran_kp,omitempty"`
	DokumenSeminarKP []DokumenSeminarKP `gorm:"foreignKey:NIM;references:NIM" json:"dokumen_seminar_kp,omitempty"`
	Jadwal           []Jadwal           `gorm:"foreignKey:NIM;references:NIM" json:"jadwal,omitempty"`
	Nilai            []Nilai            `gorm:"foreignKey:NIM;references:NIM" json:"nilai,omitempty"`
}

func (Mahasiswa) TableName() string { return "mahasiswa" }

type Dosen struct {
	NIP   string `gorm:"column:nip;type:varchar(20);primaryKey" json:"nip"`
	Nama  string `gorm:"size:100;not null" json:"nama"`
	Email string `gorm:"size:100;unique;not null" json:"email"`
}

func (Dosen) TableName() string { return "dosen" }

type PembimbingInstansi struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nama  string    `gorm:"size:100;not null" json:"nama"`
	Email string    `gorm:"size:100;unique;not null" json:"email"`
}

func (PembimbingInstansi) TableName() string { return "pembimbing_instansi" }

type Instansi struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nama      string    `gorm:"size:100;not null" json:"nama"`
	Alamat    string    `gorm:"type:text" json:"alamat"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

func (Instansi) TableName() string { return "instansi" }

type TahunAjaran struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Nama string `gorm:"size:20;not null" json:"nama"`
}

func (TahunAjaran) TableName() string { return "tahun_ajaran" }
