package repo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fiber/kp/app/model"
)

type CreateJadwalInput struct {
	Tanggal         time.Time
	WaktuMulai      time.Time
	WaktuSelesai    time.Time
	NIM             string
	NamaRuangan     string
	IDPendaftaranKP uuid.UUID
	NIPPenguji      string
	NIPPembimbing   *string
	Keterangan      string
}

type UpdateJadwalInput struct {
	ID             uuid.UUID
	Tanggal        time.Time
	WaktuMulai     time.Time
	WaktuSelesai   time.Time
	NamaRuangan    string
	NIM            string
	NIPPenguji     *string
	NIPPembimbing  *string
	TanggalLama    time.Time
	RuanganLama    string
	NIPPengujiLama *string
	Keterangan     string
}

type JadwalRepository interface {
	CreateJadwal(input CreateJadwalInput) (*model.Jadwal, error)
	UpdateJadwal(input UpdateJadwalInput) (*model.Jadwal, error)
	GetJadwalByID(id uuid.UUID) (*model.Jadwal, error)
	GetJadwalByPendaftaranID(idPendaftaran uuid.UUID) (*model.Jadwal, error)
	GetPendaftaranByID(id uuid.UUID) (*model.PendaftaranKP, error)
	GetRuanganJadwalOnDate(namaRuangan string, tanggal time.Time) ([]model.Jadwal, error)
	GetAllJadwalSeminar(tahunAjaranID int, from, to *time.Time) ([]model.Jadwal, error)
	GetJadwalPenguji(nip string, tahunAjaranID int) ([]model.Jadwal, error)
	UpdateStatusSelesai() (int64, error)
	TotalJadwalUlang(tahunAjaranID int) (int64, error)
	GetLogJadwal() ([]model.LogJadwal, error)
	FindRuanganByName(nama string) (*model.Ruangan, error)
	GetAllRuangan() ([]model.Ruangan, error)
	CreateRuangan(nama string) error
	DeleteRuangan(nama string) error
	GetTahunAjaranByID(id int) (*model.TahunAjaran, error)
	GetLatestTahunAjaran() (*model.TahunAjaran, error)
	GetAllTahunAjaran() ([]model.TahunAjaran, error)
}

type JadwalRepo struct {
	DB *gorm.DB
}

func NewJadwalRepo(db *gorm.DB) *JadwalRepo {
	return &JadwalRepo{DB: db}
}

// hasConflictTx mengecek ulang bentrok di dalam transaksi. Interval
// setengah terbuka: sentuhan tepat di batas bukan bentrok.
func (r *JadwalRepo) hasConflictTx(tx *gorm.DB, input CreateJadwalInput, excludeID *uuid.UUID) (string, error) {
	type check struct {
		label string
		query *gorm.DB
	}

	checks := []check{
		{"mahasiswa", tx.Model(&model.Jadwal{}).Where("nim = ?", input.NIM)},
		{"ruangan", tx.Model(&model.Jadwal{}).Where("nama_ruangan = ?", input.NamaRuangan)},
		{"dosen penguji", tx.Model(&model.Jadwal{}).
			Joins("JOIN pendaftaran_kp ON pendaftaran_kp.id = jadwal.id_pendaftaran_kp").
			Where("pendaftaran_kp.nip_penguji = ? OR pendaftaran_kp.nip_pembimbing = ?", input.NIPPenguji, input.NIPPenguji)},
	}
	if input.NIPPembimbing != nil {
		checks = append(checks, check{"dosen pembimbing", tx.Model(&model.Jadwal{}).
			Joins("JOIN pendaftaran_kp ON pendaftaran_kp.id = jadwal.id_pendaftaran_kp").
			Where("pendaftaran_kp.nip_penguji = ? OR pendaftaran_kp.nip_pembimbing = ?", *input.NIPPembimbing, *input.NIPPembimbing)})
	}

	for _, c := range checks {
		q := c.query.
			Where("jadwal.tanggal = ? AND jadwal.waktu_mulai < ? AND jadwal.waktu_selesai > ?",
				input.Tanggal, input.WaktuSelesai, input.WaktuMulai)
		if excludeID != nil {
			q = q.Where("jadwal.id <> ?", *excludeID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			return c.label, nil
		}
	}
	return "", nil
}

// CreateJadwal menjalankan cek bentrok ulang, insert jadwal, penetapan
// penguji, dan penulisan log dalam satu transaksi serializable supaya dua
// request bersamaan tidak bisa sama-sama lolos.
func (r *JadwalRepo) CreateJadwal(input CreateJadwalInput) (*model.Jadwal, error) {
	var jadwal model.Jadwal

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		label, err := r.hasConflictTx(tx, input, nil)
		if err != nil {
			return err
		}
		if label != "" {
			return model.Conflict("Jadwal %s konflik pada waktu yang dipilih", label)
		}

		jadwal = model.Jadwal{
			Tanggal:         input.Tanggal,
			WaktuMulai:      input.WaktuMulai,
			WaktuSelesai:    input.WaktuSelesai,
			Status:          model.JadwalMenunggu,
			NIM:             input.NIM,
			NamaRuangan:     input.NamaRuangan,
			IDPendaftaranKP: input.IDPendaftaranKP,
		}
		if err := tx.Create(&jadwal).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.PendaftaranKP{}).
			Where("id = ?", input.IDPendaftaranKP).
			Update("nip_penguji", input.NIPPenguji).Error; err != nil {
			return err
		}

		logEntry := model.LogJadwal{
			LogType:        model.LogJadwalCreate,
			TanggalBaru:    input.Tanggal,
			RuanganBaru:    input.NamaRuangan,
			NIPPengujiBaru: &input.NIPPenguji,
			Keterangan:     input.Keterangan,
			IDJadwal:       jadwal.ID,
		}
		return tx.Create(&logEntry).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

func (r *JadwalRepo) UpdateJadwal(input UpdateJadwalInput) (*model.Jadwal, error) {
	var jadwal model.Jadwal

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		nipPenguji := ""
		if input.NIPPenguji != nil {
			nipPenguji = *input.NIPPenguji
		} else if input.NIPPengujiLama != nil {
			nipPenguji = *input.NIPPengujiLama
		}

		label, err := r.hasConflictTx(tx, CreateJadwalInput{
			Tanggal:       input.Tanggal,
			WaktuMulai:    input.WaktuMulai,
			WaktuSelesai:  input.WaktuSelesai,
			NIM:           input.NIM,
			NamaRuangan:   input.NamaRuangan,
			NIPPenguji:    nipPenguji,
			NIPPembimbing: input.NIPPembimbing,
		}, &input.ID)
		if err != nil {
			return err
		}
		if label != "" {
			return model.Conflict("Jadwal %s konflik pada waktu yang dipilih", label)
		}

		if err := tx.Model(&model.Jadwal{}).Where("id = ?", input.ID).Updates(map[string]interface{}{
			"tanggal":       input.Tanggal,
			"waktu_mulai":   input.WaktuMulai,
			"waktu_selesai": input.WaktuSelesai,
			"nama_ruangan":  input.NamaRuangan,
		}).Error; err != nil {
			return err
		}

		if input.NIPPenguji != nil {
			var idPendaftaran uuid.UUID
			if err := tx.Model(&model.Jadwal{}).Where("id = ?", input.ID).
				Pluck("id_pendaftaran_kp", &idPendaftaran).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.PendaftaranKP{}).
				Where("id = ?", idPendaftaran).
				Update("nip_penguji", *input.NIPPenguji).Error; err != nil {
				return err
			}
		}

		logEntry := model.LogJadwal{
			LogType:        model.LogJadwalUpdate,
			TanggalLama:    &input.TanggalLama,
			TanggalBaru:    input.Tanggal,
			RuanganLama:    &input.RuanganLama,
			RuanganBaru:    input.NamaRuangan,
			NIPPengujiLama: input.NIPPengujiLama,
			NIPPengujiBaru: input.NIPPenguji,
			Keterangan:     input.Keterangan,
			IDJadwal:       input.ID,
		}
		if err := tx.Create(&logEntry).Error; err != nil {
			return err
		}

		return tx.First(&jadwal, "id = ?", input.ID).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

func (r *JadwalRepo) GetJadwalByID(id uuid.UUID) (*model.Jadwal, error) {
	var jadwal model.Jadwal
	err := r.DB.
		Preload("Mahasiswa").
		Preload("Ruangan").
		Preload("PendaftaranKP").
		Preload("PendaftaranKP.DosenPembimbing").
		Preload("PendaftaranKP.DosenPenguji").
		First(&jadwal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

func (r *JadwalRepo) GetJadwalByPendaftaranID(idPendaftaran uuid.UUID) (*model.Jadwal, error) {
	var jadwal model.Jadwal
	err := r.DB.Preload("Ruangan").First(&jadwal, "id_pendaftaran_kp = ?", idPendaftaran).Error
	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

func (r *JadwalRepo) GetPendaftaranByID(id uuid.UUID) (*model.PendaftaranKP, error) {
	var pendaftaran model.PendaftaranKP
	err := r.DB.First(&pendaftaran, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pendaftaran, nil
}

func (r *JadwalRepo) GetRuanganJadwalOnDate(namaRuangan string, tanggal time.Time) ([]model.Jadwal, error) {
	var jadwal []model.Jadwal
	err := r.DB.Where("nama_ruangan = ? AND tanggal = ?", namaRuangan, tanggal).Find(&jadwal).Error
	return jadwal, err
}

func (r *JadwalRepo) GetAllJadwalSeminar(tahunAjaranID int, from, to *time.Time) ([]model.Jadwal, error) {
	q := r.DB.
		Joins("JOIN pendaftaran_kp ON pendaftaran_kp.id = jadwal.id_pendaftaran_kp").
		Where("pendaftaran_kp.id_tahun_ajaran = ?", tahunAjaranID).
		Preload("Mahasiswa").
		Preload("Ruangan").
		Preload("PendaftaranKP").
		Preload("PendaftaranKP.Instansi").
		Preload("PendaftaranKP.PembimbingInstansi").
		Preload("PendaftaranKP.DosenPembimbing").
		Preload("PendaftaranKP.DosenPenguji").
		Order("jadwal.tanggal ASC")

	if from != nil && to != nil {
		q = q.Where("jadwal.tanggal BETWEEN ? AND ?", *from, *to)
	}

	var jadwal []model.Jadwal
	err := q.Find(&jadwal).Error
	return jadwal, err
}

func (r *JadwalRepo) GetJadwalPenguji(nip string, tahunAjaranID int) ([]model.Jadwal, error) {
	var jadwal []model.Jadwal
	err := r.DB.
		Joins("JOIN pendaftaran_kp ON pendaftaran_kp.id = jadwal.id_pendaftaran_kp").
		Where("pendaftaran_kp.id_tahun_ajaran = ? AND pendaftaran_kp.nip_penguji = ?", tahunAjaranID, nip).
		Preload("Mahasiswa").
		Preload("Ruangan").
		Preload("PendaftaranKP").
		Preload("PendaftaranKP.Instansi").
		Preload("PendaftaranKP.PembimbingInstansi").
		Preload("PendaftaranKP.DosenPembimbing").
		Preload("PendaftaranKP.TahunAjaran").
		Preload("Nilai").
		Preload("Nilai.KomponenPenilaianPenguji").
		Order("jadwal.tanggal ASC").
		Find(&jadwal).Error
	return jadwal, err
}

// UpdateStatusSelesai menandai jadwal Menunggu yang sudah lewat waktu
// selesainya sebagai Selesai.
func (r *JadwalRepo) UpdateStatusSelesai() (int64, error) {
	result := r.DB.Model(&model.Jadwal{}).
		Where("status = ? AND waktu_selesai <= ?", model.JadwalMenunggu, time.Now()).
		Update("status", model.JadwalSelesai)
	return result.RowsAffected, result.Error
}

func (r *JadwalRepo) TotalJadwalUlang(tahunAjaranID int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LogJadwal{}).
		Joins("JOIN jadwal ON jadwal.id = log_jadwal.id_jadwal").
		Joins("JOIN pendaftaran_kp ON pendaftaran_kp.id = jadwal.id_pendaftaran_kp").
		Where("log_jadwal.log_type = ? AND pendaftaran_kp.id_tahun_ajaran = ?", model.LogJadwalUpdate, tahunAjaranID).
		Count(&count).Error
	return count, err
}

func (r *JadwalRepo) GetLogJadwal() ([]model.LogJadwal, error) {
	var logs []model.LogJadwal
	err := r.DB.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *JadwalRepo) FindRuanganByName(nama string) (*model.Ruangan, error) {
	var ruangan model.Ruangan
	err := r.DB.First(&ruangan, "nama = ?", nama).Error
	if err != nil {
		return nil, err
	}
	return &ruangan, nil
}

func (r *JadwalRepo) GetAllRuangan() ([]model.Ruangan, error) {
	var ruangan []model.Ruangan
	err := r.DB.Order("nama ASC").Find(&ruangan).Error
	return ruangan, err
}

func (r *JadwalRepo) CreateRuangan(nama string) error {
	return r.DB.Create(&model.Ruangan{Nama: nama}).Error
}

func (r *JadwalRepo) DeleteRuangan(nama string) error {
	return r.DB.Delete(&model.Ruangan{}, "nama = ?", nama).Error
}

func (r *JadwalRepo) GetTahunAjaranByID(id int) (*model.TahunAjaran, error) {
	var tahunAjaran model.TahunAjaran
	err := r.DB.First(&tahunAjaran, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tahunAjaran, nil
}

func (r *JadwalRepo) GetLatestTahunAjaran() (*model.TahunAjaran, error) {
	var tahunAjaran model.TahunAjaran
	err := r.DB.Order("id DESC").First(&tahunAjaran).Error
	if err != nil {
		return nil, err
	}
	return &tahunAjaran, nil
}

func (r *JadwalRepo) GetAllTahunAjaran() ([]model.TahunAjaran, error) {
	var tahunAjaran []model.TahunAjaran
	err := r.DB.Find(&tahunAjaran).Error
	return tahunAjaran, err
}
