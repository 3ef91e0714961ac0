package model

import (
	"time"

	"github.com/google/uuid"
)

type JenisDokumen string

const (
	SuratKeteranganSelesaiKp JenisDokumen = "SURAT_KETERANGAN_SELESAI_KP"
	LaporanTambahanKp        JenisDokumen = "LAPORAN_TAMBAHAN_KP"
	FormKehadiranSeminar     JenisDokumen = "FORM_KEHADIRAN_SEMINAR"
	IdPengajuanSuratUndangan JenisDokumen = "ID_PENGAJUAN_SURAT_UNDANGAN"
	SuratUndanganSeminarKp   JenisDokumen = "SURAT_UNDANGAN_SEMINAR_KP"
	BeritaAcaraSeminar       JenisDokumen = "BERITA_ACARA_SEMINAR"
	DaftarHadirSeminar       JenisDokumen = "DAFTAR_HADIR_SEMINAR"
	LembarPengesahanKp       JenisDokumen = "LEMBAR_PENGESAHAN_KP"
)

type StatusDokumen string

const (
	DokumenTerkirim   StatusDokumen = "Terkirim"
	DokumenDivalidasi StatusDokumen = "Divalidasi"
	DokumenDitolak    StatusDokumen = "Ditolak"
)

type DokumenSeminarKP struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JenisDokumen    JenisDokumen  `gorm:"size:40;not null" json:"jenis_dokumen"`
	LinkPath        string        `gorm:"type:text;not null" json:"link_path"`
	TanggalUpload   time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"tanggal_upload"`
	Status          StatusDokumen `gorm:"size:20;default:'Terkirim'" json:"status"`
	Komentar        *string       `gorm:"type:text" json:"komentar"`
	NIM             string        `gorm:"column:nim;type:varchar(20);not null" json:"nim"`
	IDPendaftaranKP uuid.UUID     `gorm:"type:uuid;not null" json:"id_pendaftaran_kp"`
}

func (DokumenSeminarKP) TableName() string { return "dokumen_seminar_kp" }

type CreateDokumenRequest struct {
	LinkPath        string `json:"link_path" validate:"required,url"`
	IDPendaftaranKP string `json:"id_pendaftaran_kp" validate:"required"`
}

type KomentarDokumenRequest struct {
	Komentar string `json:"komentar"`
}

type TolakDokumenRequest struct {
	Komentar string `json:"komentar" validate:"required"`
}

// PersyaratanSeminarKP merinci hasil tiap syarat komposit sebelum mahasiswa
// boleh mengirim dokumen seminar.
type PersyaratanSeminarKP struct {
	SudahSelesaiMurojaah       bool `json:"sudah_selesai_murojaah"`
	MasihTerdaftarKP           bool `json:"masih_terdaftar_kp"`
	MinimalLimaBimbingan       bool `json:"minimal_lima_bimbingan"`
	DailyReportSudahDisetujui  bool `json:"daily_report_sudah_disetujui"`
	SudahMendapatNilaiInstansi bool `json:"sudah_mendapat_nilai_instansi"`
	SemuaSyaratTerpenuhi       bool `json:"semua_syarat_terpenuhi"`
}

type StepInfo struct {
	Step1Accessible bool `json:"step1_accessible"`
	Step2Accessible bool `json:"step2_accessible"`
	Step3Accessible bool `json:"step3_accessible"`
	Step4Accessible bool `json:"step4_accessible"`
	Step5Accessible bool `json:"step5_accessible"`
	Step6Accessible bool `json:"step6_accessible"`
}

type DokumenByStep struct {
	Step1 []DokumenSeminarKP `json:"step1"`
	Step2 []DokumenSeminarKP `json:"step2"`
	Step3 []DokumenSeminarKP `json:"step3"`
	Step5 []DokumenSeminarKP `json:"step5"`
}

type SeminarKPSayaResponse struct {
	NIM         string               `json:"nim"`
	Nama        string               `json:"nama"`
	Email       string               `json:"email"`
	Persyaratan PersyaratanSeminarKP `json:"persyaratan_seminar_kp"`
	Dokumen     DokumenByStep        `json:"dokumen_seminar_kp"`
	Jadwal      []Jadwal             `json:"jadwal"`
	Nilai       []NilaiWithHuruf     `json:"nilai"`
	StepsInfo   StepInfo             `json:"steps_info"`
}

type DokumenStatistics struct {
	TotalMahasiswa int            `json:"total_mahasiswa"`
	Status         map[string]int `json:"status"`
	Step           map[string]int `json:"step"`
}

type MahasiswaDokumenRow struct {
	NIM            string `json:"nim"`
	Nama           string `json:"nama"`
	Email          string `json:"email"`
	StepSekarang   int    `json:"step_sekarang"`
	LastStatus     string `json:"last_status"`
	LastSubmission string `json:"last_submission"`
}

type AllDokumenResponse struct {
	Statistics  DokumenStatistics     `json:"statistics"`
	Mahasiswa   []MahasiswaDokumenRow `json:"mahasiswa"`
	TahunAjaran TahunAjaran           `json:"tahun_ajaran"`
}
