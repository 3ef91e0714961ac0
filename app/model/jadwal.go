package model

import (
	"time"

	"github.com/google/uuid"
)

type StatusJadwal string

const (
	JadwalMenunggu StatusJadwal = "Menunggu"
	JadwalSelesai  StatusJadwal = "Selesai"
)

type Jadwal struct {
	ID              uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Tanggal         time.Time    `gorm:"type:date;not null" json:"tanggal"`
	WaktuMulai      time.Time    `gorm:"not null" json:"waktu_mulai"`
	WaktuSelesai    time.Time    `gorm:"not null" json:"waktu_selesai"`
	Status          StatusJadwal `gorm:"size:20;default:'Menunggu'" json:"status"`
	NIM             string       `gorm:"column:nim;type:varchar(20);not null" json:"nim"`
	NamaRuangan     string       `gorm:"size:50;not null" json:"nama_ruangan"`
	IDPendaftaranKP uuid.UUID    `gorm:"type:uuid;not null" json:"id_pendaftaran_kp"`
	CreatedAt       time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relasi
	Mahasiswa     *Mahasiswa     `gorm:"foreignKey:NIM;references:NIM" json:"mahasiswa,omitempty"`
	Ruangan       *Ruangan       `gorm:"foreignKey:NamaRuangan;references:Nama" json:"ruangan,omitempty"`
	PendaftaranKP *PendaftaranKP `gorm:"foreignKey:IDPendaftaranKP" json:"pendaftaran_kp,omitempty"`
	Nilai         *Nilai         `gorm:"foreignKey:IDJadwalSeminar" json:"nilai,omitempty"`
}

func (Jadwal) TableName() string { return "jadwal" }

type LogJadwalType string

const (
	LogJadwalCreate LogJadwalType = "CREATE"
	LogJadwalUpdate LogJadwalType = "UPDATE"
)

// LogJadwal adalah catatan append-only, tidak pernah diubah atau dihapus.
type LogJadwal struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LogType        LogJadwalType `gorm:"size:10;not null" json:"log_type"`
	TanggalLama    *time.Time    `gorm:"type:date" json:"tanggal_lama"`
	TanggalBaru    time.Time     `gorm:"type:date;not null" json:"tanggal_baru"`
	RuanganLama    *string       `gorm:"size:50" json:"ruangan_lama"`
	RuanganBaru    string        `gorm:"size:50;not null" json:"ruangan_baru"`
	NIPPengujiLama *string       `gorm:"column:nip_penguji_lama;type:varchar(20)" json:"nip_penguji_lama"`
	NIPPengujiBaru *string       `gorm:"column:nip_penguji_baru;type:varchar(20)" json:"nip_penguji_baru"`
	Keterangan     string        `gorm:"type:text" json:"keterangan"`
	IDJadwal       uuid.UUID     `gorm:"type:uuid;not null" json:"id_jadwal"`
	CreatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LogJadwal) TableName() string { return "log_jadwal" }

type Ruangan struct {
	Nama string `gorm:"size:50;primaryKey" json:"nama"`
}

func (Ruangan) TableName() string { return "ruangan" }

type CreateJadwalRequest struct {
	Tanggal         string `json:"tanggal" validate:"required"`
	WaktuMulai      string `json:"waktu_mulai" validate:"required"`
	WaktuSelesai    string `json:"waktu_selesai"`
	NIM             string `json:"nim" validate:"required"`
	NamaRuangan     string `json:"nama_ruangan" validate:"required"`
	IDPendaftaranKP string `json:"id_pendaftaran_kp" validate:"required"`
	NIPPenguji      string `json:"nip_penguji" validate:"required"`
}

type UpdateJadwalRequest struct {
	ID           string `json:"id" validate:"required"`
	Tanggal      string `json:"tanggal"`
	WaktuMulai   string `json:"waktu_mulai"`
	WaktuSelesai string `json:"waktu_selesai"`
	NamaRuangan  string `json:"nama_ruangan"`
	NIPPenguji   string `json:"nip_penguji"`
}

type CreateRuanganRequest struct {
	Nama string `json:"nama" validate:"required"`
}

// DataJadwalSeminar adalah satu baris jadwal yang sudah diratakan untuk
// tampilan koordinator.
type DataJadwalSeminar struct {
	ID                 uuid.UUID    `json:"id"`
	NIM                string       `json:"nim"`
	NamaMahasiswa      string       `json:"nama_mahasiswa"`
	StatusKP           string       `json:"status_kp"`
	Ruangan            string       `json:"ruangan"`
	Tanggal            time.Time    `json:"tanggal"`
	WaktuMulai         time.Time    `json:"waktu_mulai"`
	WaktuSelesai       time.Time    `json:"waktu_selesai"`
	DosenPenguji       string       `json:"dosen_penguji"`
	DosenPembimbing    string       `json:"dosen_pembimbing"`
	Instansi           string       `json:"instansi"`
	PembimbingInstansi string       `json:"pembimbing_instansi"`
	Status             StatusJadwal `json:"status"`
}

type JadwalSeminarResponse struct {
	TotalSeminar          int                            `json:"total_seminar"`
	TotalSeminarMingguIni int                            `json:"total_seminar_minggu_ini"`
	TotalJadwalUlang      int64                          `json:"total_jadwal_ulang"`
	Semua                 []DataJadwalSeminar            `json:"semua"`
	HariIni               []DataJadwalSeminar            `json:"hari_ini"`
	MingguIni             []DataJadwalSeminar            `json:"minggu_ini"`
	ByRuangan             map[string][]DataJadwalSeminar `json:"by_ruangan"`
	TahunAjaran           TahunAjaran                    `json:"tahun_ajaran"`
}

type LogJadwalEntry struct {
	LogJadwal
	NamaPengujiLama *string `json:"nama_penguji_lama"`
	NamaPengujiBaru *string `json:"nama_penguji_baru"`
}

type JadwalSayaStatistics struct {
	TotalMahasiswa        int `json:"total_mahasiswa"`
	MahasiswaDinilai      int `json:"mahasiswa_dinilai"`
	MahasiswaBelumDinilai int `json:"mahasiswa_belum_dinilai"`
	PersentaseDinilai     int `json:"persentase_dinilai"`
}

type JadwalSayaResponse struct {
	TahunAjaran   TahunAjaran          `json:"tahun_ajaran"`
	Statistics    JadwalSayaStatistics `json:"statistics"`
	JadwalHariIni []Jadwal             `json:"jadwal_hari_ini"`
	SemuaJadwal   []Jadwal             `json:"semua_jadwal"`
}
