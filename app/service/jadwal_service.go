package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
	"fiber/kp/helper"
)

type JadwalService struct {
	jadwalRepo    repo.JadwalRepository
	mahasiswaRepo repo.MahasiswaRepository
	dosenRepo     repo.DosenRepository
	seminarRepo   repo.SeminarRepository
	nilaiRepo     repo.NilaiRepository
	log           *zap.Logger
}

func NewJadwalService(
	jadwalRepo repo.JadwalRepository,
	mahasiswaRepo repo.MahasiswaRepository,
	dosenRepo repo.DosenRepository,
	seminarRepo repo.SeminarRepository,
	nilaiRepo repo.NilaiRepository,
	log *zap.Logger,
) *JadwalService {
	return &JadwalService{
		jadwalRepo:    jadwalRepo,
		mahasiswaRepo: mahasiswaRepo,
		dosenRepo:     dosenRepo,
		seminarRepo:   seminarRepo,
		nilaiRepo:     nilaiRepo,
		log:           log,
	}
}

type conflictParams struct {
	NIM           string
	NIPPenguji    string
	NIPPembimbing *string
	NamaRuangan   string
	Tanggal       time.Time
	WaktuMulai    time.Time
	WaktuSelesai  time.Time
	ExcludeID     *uuid.UUID
}

// validateScheduleConflicts menjalankan keempat cek bentrok sekaligus dan
// baru mengevaluasinya setelah semua selesai, supaya pesan 409 menunjuk
// pihak yang benar meski ada lebih dari satu bentrok.
func (s *JadwalService) validateScheduleConflicts(ctx context.Context, p conflictParams) error {
	var jadwalMahasiswa, jadwalRuangan, jadwalPenguji, jadwalPembimbing []model.Jadwal

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jadwalMahasiswa, err = s.mahasiswaRepo.GetJadwalOnDate(p.NIM, p.Tanggal)
		return err
	})
	g.Go(func() error {
		var err error
		jadwalRuangan, err = s.jadwalRepo.GetRuanganJadwalOnDate(p.NamaRuangan, p.Tanggal)
		return err
	})
	g.Go(func() error {
		var err error
		jadwalPenguji, err = s.dosenRepo.GetJadwalOnDate(p.NIPPenguji, p.Tanggal)
		return err
	})
	if p.NIPPembimbing != nil {
		nip := *p.NIPPembimbing
		g.Go(func() error {
			var err error
			jadwalPembimbing, err = s.dosenRepo.GetJadwalOnDate(nip, p.Tanggal)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	checks := []struct {
		label  string
		jadwal []model.Jadwal
	}{
		{"Mahasiswa", jadwalMahasiswa},
		{"Ruangan", jadwalRuangan},
		{"Dosen penguji", jadwalPenguji},
		{"Dosen pembimbing", jadwalPembimbing},
	}
	for _, check := range checks {
		if bentrok := overlappingJadwal(check.jadwal, p); len(bentrok) > 0 {
			return model.Conflict("%s sudah memiliki jadwal seminar pada %s", check.label, formatBentrok(bentrok))
		}
	}
	return nil
}

func overlappingJadwal(jadwal []model.Jadwal, p conflictParams) []model.Jadwal {
	var bentrok []model.Jadwal
	for _, j := range jadwal {
		if p.ExcludeID != nil && j.ID == *p.ExcludeID {
			continue
		}
		if helper.IsTimeOverlapping(p.WaktuMulai, p.WaktuSelesai, j.WaktuMulai, j.WaktuSelesai) {
			bentrok = append(bentrok, j)
		}
	}
	return bentrok
}

func formatBentrok(jadwal []model.Jadwal) string {
	parts := make([]string, 0, len(jadwal))
	for _, j := range jadwal {
		parts = append(parts, fmt.Sprintf("%s - %s",
			helper.FormatWaktu(j.WaktuMulai), j.WaktuSelesai.Format("15:04")))
	}
	return strings.Join(parts, ", ")
}

func (s *JadwalService) PostJadwal(c *fiber.Ctx) error {
	var req model.CreateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	idPendaftaran, err := uuid.Parse(req.IDPendaftaranKP)
	if err != nil {
		return model.BadRequest("Id pendaftaran KP tidak valid")
	}

	tanggal, err := helper.ParseTanggal(req.Tanggal)
	if err != nil {
		return err
	}
	waktuMulai, err := helper.CombineDateTime(req.Tanggal, req.WaktuMulai)
	if err != nil {
		return err
	}
	waktuSelesai := waktuMulai.Add(time.Hour)
	if req.WaktuSelesai != "" {
		waktuSelesai, err = helper.CombineDateTime(req.Tanggal, req.WaktuSelesai)
		if err != nil {
			return err
		}
	}

	if !waktuSelesai.After(waktuMulai) {
		return model.BadRequest("Waktu selesai harus setelah waktu mulai!")
	}
	if waktuMulai.Before(time.Now()) {
		return model.BadRequest("Jadwal seminar tidak boleh di masa lalu!")
	}

	pendaftaran, err := s.jadwalRepo.GetPendaftaranByID(idPendaftaran)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Pendaftaran KP tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if pendaftaran.NIM != req.NIM {
		return model.BadRequest("Pendaftaran KP bukan milik mahasiswa tersebut")
	}
	if pendaftaran.NIPPembimbing != nil && *pendaftaran.NIPPembimbing == req.NIPPenguji {
		return model.BadRequest("Dosen penguji tidak boleh sama dengan dosen pembimbing!")
	}

	if _, err := s.mahasiswaRepo.FindByNIM(req.NIM); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Mahasiswa tidak ditemukan")
		}
		return err
	}
	if _, err := s.dosenRepo.FindByNIP(req.NIPPenguji); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Dosen penguji tidak ditemukan")
		}
		return err
	}

	dokumen, err := s.seminarRepo.GetDokumenByPendaftaran(idPendaftaran)
	if err != nil {
		return err
	}
	if !helper.StepAccessible(4, dokumen) {
		return model.Forbidden("Dokumen seminar KP mahasiswa belum lengkap atau belum divalidasi!")
	}

	if err := s.validateScheduleConflicts(c.Context(), conflictParams{
		NIM:           req.NIM,
		NIPPenguji:    req.NIPPenguji,
		NIPPembimbing: pendaftaran.NIPPembimbing,
		NamaRuangan:   req.NamaRuangan,
		Tanggal:       tanggal,
		WaktuMulai:    waktuMulai,
		WaktuSelesai:  waktuSelesai,
	}); err != nil {
		return err
	}

	jadwal, err := s.jadwalRepo.CreateJadwal(repo.CreateJadwalInput{
		Tanggal:         tanggal,
		WaktuMulai:      waktuMulai,
		WaktuSelesai:    waktuSelesai,
		NIM:             req.NIM,
		NamaRuangan:     req.NamaRuangan,
		IDPendaftaranKP: idPendaftaran,
		NIPPenguji:      req.NIPPenguji,
		NIPPembimbing:   pendaftaran.NIPPembimbing,
		Keterangan:      fmt.Sprintf("Jadwal seminar KP mahasiswa %s dibuat", req.NIM),
	})
	if err != nil {
		return err
	}

	s.log.Info("jadwal seminar dibuat",
		zap.String("nim", req.NIM),
		zap.String("ruangan", req.NamaRuangan),
		zap.Time("waktu_mulai", waktuMulai))

	return c.Status(fiber.StatusCreated).JSON(model.Response[*model.Jadwal]{
		Response: true,
		Message:  "Jadwal seminar berhasil dibuat",
		Data:     jadwal,
	})
}

func (s *JadwalService) PutJadwal(c *fiber.Ctx) error {
	var req model.UpdateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return model.BadRequest("Id jadwal tidak valid")
	}

	existing, err := s.jadwalRepo.GetJadwalByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Jadwal tidak ditemukan")
	}
	if err != nil {
		return err
	}

	// Jadwal terkunci begitu nilai seminar masuk.
	nilai, err := s.nilaiRepo.FindByJadwalID(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if nilai != nil {
		var sudahDinilai []string
		if nilai.NilaiPenguji != nil {
			sudahDinilai = append(sudahDinilai, "penguji")
		}
		if nilai.NilaiPembimbing != nil {
			sudahDinilai = append(sudahDinilai, "pembimbing")
		}
		if len(sudahDinilai) > 0 {
			return model.BadRequest("Jadwal tidak dapat diubah karena nilai %s sudah diinput!",
				strings.Join(sudahDinilai, " dan "))
		}
	}

	pendaftaran, err := s.jadwalRepo.GetPendaftaranByID(existing.IDPendaftaranKP)
	if err != nil {
		return err
	}

	tanggalStr := req.Tanggal
	if tanggalStr == "" {
		tanggalStr = existing.Tanggal.Format("2006-01-02")
	}
	mulaiStr := req.WaktuMulai
	if mulaiStr == "" {
		mulaiStr = existing.WaktuMulai.Format("15:04")
	}
	selesaiStr := req.WaktuSelesai
	if selesaiStr == "" {
		selesaiStr = existing.WaktuSelesai.Format("15:04")
	}

	tanggal, err := helper.ParseTanggal(tanggalStr)
	if err != nil {
		return err
	}
	waktuMulai, err := helper.CombineDateTime(tanggalStr, mulaiStr)
	if err != nil {
		return err
	}
	waktuSelesai, err := helper.CombineDateTime(tanggalStr, selesaiStr)
	if err != nil {
		return err
	}
	if !waktuSelesai.After(waktuMulai) {
		return model.BadRequest("Waktu selesai harus setelah waktu mulai!")
	}
	// Seminar yang sedang berjalan masih boleh diubah, yang sudah berakhir tidak.
	if waktuSelesai.Before(time.Now()) {
		return model.BadRequest("Jadwal seminar tidak boleh berakhir di masa lalu!")
	}

	ruangan := req.NamaRuangan
	if ruangan == "" {
		ruangan = existing.NamaRuangan
	}

	var nipPengujiBaru *string
	nipPengujiEfektif := ""
	if pendaftaran.NIPPenguji != nil {
		nipPengujiEfektif = *pendaftaran.NIPPenguji
	}
	if req.NIPPenguji != "" {
		if _, err := s.dosenRepo.FindByNIP(req.NIPPenguji); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.NotFound("Dosen penguji tidak ditemukan")
			}
			return err
		}
		if pendaftaran.NIPPembimbing != nil && *pendaftaran.NIPPembimbing == req.NIPPenguji {
			return model.BadRequest("Dosen penguji tidak boleh sama dengan dosen pembimbing!")
		}
		nipPengujiBaru = &req.NIPPenguji
		nipPengujiEfektif = req.NIPPenguji
	}

	if err := s.validateScheduleConflicts(c.Context(), conflictParams{
		NIM:           existing.NIM,
		NIPPenguji:    nipPengujiEfektif,
		NIPPembimbing: pendaftaran.NIPPembimbing,
		NamaRuangan:   ruangan,
		Tanggal:       tanggal,
		WaktuMulai:    waktuMulai,
		WaktuSelesai:  waktuSelesai,
		ExcludeID:     &id,
	}); err != nil {
		return err
	}

	jadwal, err := s.jadwalRepo.UpdateJadwal(repo.UpdateJadwalInput{
		ID:             id,
		Tanggal:        tanggal,
		WaktuMulai:     waktuMulai,
		WaktuSelesai:   waktuSelesai,
		NamaRuangan:    ruangan,
		NIM:            existing.NIM,
		NIPPenguji:     nipPengujiBaru,
		NIPPembimbing:  pendaftaran.NIPPembimbing,
		TanggalLama:    existing.Tanggal,
		RuanganLama:    existing.NamaRuangan,
		NIPPengujiLama: pendaftaran.NIPPenguji,
		Keterangan:     fmt.Sprintf("Jadwal seminar KP mahasiswa %s diubah", existing.NIM),
	})
	if err != nil {
		return err
	}

	s.log.Info("jadwal seminar diubah",
		zap.String("nim", existing.NIM),
		zap.String("id_jadwal", id.String()))

	return c.JSON(model.Response[*model.Jadwal]{
		Response: true,
		Message:  "Jadwal seminar berhasil diubah",
		Data:     jadwal,
	})
}

func (s *JadwalService) resolveTahunAjaran(id int) (*model.TahunAjaran, error) {
	if id == 0 {
		tahunAjaran, err := s.jadwalRepo.GetLatestTahunAjaran()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFound("Tahun ajaran belum tersedia")
		}
		return tahunAjaran, err
	}

	tahunAjaran, err := s.jadwalRepo.GetTahunAjaranByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NotFound("Tahun ajaran tidak ditemukan")
	}
	return tahunAjaran, err
}

func mapJadwalRow(j model.Jadwal) model.DataJadwalSeminar {
	row := model.DataJadwalSeminar{
		ID:           j.ID,
		NIM:          j.NIM,
		Ruangan:      j.NamaRuangan,
		Tanggal:      j.Tanggal,
		WaktuMulai:   j.WaktuMulai,
		WaktuSelesai: j.WaktuSelesai,
		Status:       j.Status,
	}
	if j.Mahasiswa != nil {
		row.NamaMahasiswa = j.Mahasiswa.Nama
	}
	if p := j.PendaftaranKP; p != nil {
		row.StatusKP = string(p.Status)
		if p.DosenPenguji != nil {
			row.DosenPenguji = p.DosenPenguji.Nama
		}
		if p.DosenPembimbing != nil {
			row.DosenPembimbing = p.DosenPembimbing.Nama
		}
		if p.Instansi != nil {
			row.Instansi = p.Instansi.Nama
		}
		if p.PembimbingInstansi != nil {
			row.PembimbingInstansi = p.PembimbingInstansi.Nama
		}
	}
	return row
}

func mapJadwalRows(jadwal []model.Jadwal) []model.DataJadwalSeminar {
	rows := make([]model.DataJadwalSeminar, 0, len(jadwal))
	for _, j := range jadwal {
		rows = append(rows, mapJadwalRow(j))
	}
	return rows
}

// GetAllJadwalSeminar adalah tampilan koordinator: seluruh jadwal tahun
// ajaran itu, irisan hari ini dan minggu ini, dan pengelompokan per ruangan
// termasuk ruangan yang kosong.
func (s *JadwalService) GetAllJadwalSeminar(c *fiber.Ctx) error {
	tahunAjaran, err := s.resolveTahunAjaran(c.QueryInt("tahun_ajaran"))
	if err != nil {
		return err
	}

	// Sapu status dulu supaya jadwal yang sudah lewat tampil Selesai.
	if _, err := s.jadwalRepo.UpdateStatusSelesai(); err != nil {
		return err
	}

	now := time.Now()
	todayStart := helper.StartOfDay(now)
	todayEnd := helper.EndOfDay(now)
	weekStart, weekEnd := helper.WeekRange(now)

	var (
		semua, hariIni, mingguIni []model.Jadwal
		totalUlang                int64
	)
	g, _ := errgroup.WithContext(c.Context())
	g.Go(func() error {
		var err error
		semua, err = s.jadwalRepo.GetAllJadwalSeminar(tahunAjaran.ID, nil, nil)
		return err
	})
	g.Go(func() error {
		var err error
		hariIni, err = s.jadwalRepo.GetAllJadwalSeminar(tahunAjaran.ID, &todayStart, &todayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		mingguIni, err = s.jadwalRepo.GetAllJadwalSeminar(tahunAjaran.ID, &weekStart, &weekEnd)
		return err
	})
	g.Go(func() error {
		var err error
		totalUlang, err = s.jadwalRepo.TotalJadwalUlang(tahunAjaran.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	ruanganList, err := s.jadwalRepo.GetAllRuangan()
	if err != nil {
		return err
	}

	semuaRows := mapJadwalRows(semua)
	byRuangan := make(map[string][]model.DataJadwalSeminar, len(ruanganList))
	for _, ruangan := range ruanganList {
		byRuangan[ruangan.Nama] = []model.DataJadwalSeminar{}
	}
	for _, row := range semuaRows {
		byRuangan[row.Ruangan] = append(byRuangan[row.Ruangan], row)
	}

	mingguRows := mapJadwalRows(mingguIni)
	resp := model.JadwalSeminarResponse{
		TotalSeminar:          len(semuaRows),
		TotalSeminarMingguIni: len(mingguRows),
		TotalJadwalUlang:      totalUlang,
		Semua:                 semuaRows,
		HariIni:               mapJadwalRows(hariIni),
		MingguIni:             mingguRows,
		ByRuangan:             byRuangan,
		TahunAjaran:           *tahunAjaran,
	}

	return c.JSON(model.Response[model.JadwalSeminarResponse]{
		Response: true,
		Message:  "Jadwal seminar berhasil diambil",
		Data:     resp,
	})
}

func (s *JadwalService) namaDosen(cache map[string]*string, nip *string) *string {
	if nip == nil {
		return nil
	}
	if nama, ok := cache[*nip]; ok {
		return nama
	}

	dosen, err := s.dosenRepo.FindByNIP(*nip)
	if err != nil {
		cache[*nip] = nil
		return nil
	}
	cache[*nip] = &dosen.Nama
	return &dosen.Nama
}

func (s *JadwalService) GetLogJadwal(c *fiber.Ctx) error {
	logs, err := s.jadwalRepo.GetLogJadwal()
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		return model.NotFound("Belum ada log jadwal")
	}

	cache := make(map[string]*string)
	entries := make([]model.LogJadwalEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, model.LogJadwalEntry{
			LogJadwal:       l,
			NamaPengujiLama: s.namaDosen(cache, l.NIPPengujiLama),
			NamaPengujiBaru: s.namaDosen(cache, l.NIPPengujiBaru),
		})
	}

	return c.JSON(model.Response[[]model.LogJadwalEntry]{
		Response: true,
		Message:  "Log jadwal berhasil diambil",
		Data:     entries,
	})
}

// GetJadwalSaya adalah dasbor dosen penguji: jadwal mengujinya beserta
// progres penilaian.
func (s *JadwalService) GetJadwalSaya(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	dosen, err := s.dosenRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFound("Dosen tidak ditemukan")
	}
	if err != nil {
		return err
	}

	tahunAjaran, err := s.resolveTahunAjaran(c.QueryInt("tahun_ajaran"))
	if err != nil {
		return err
	}

	if _, err := s.jadwalRepo.UpdateStatusSelesai(); err != nil {
		return err
	}

	jadwal, err := s.jadwalRepo.GetJadwalPenguji(dosen.NIP, tahunAjaran.ID)
	if err != nil {
		return err
	}

	dinilai := 0
	for _, j := range jadwal {
		if j.Nilai != nil && j.Nilai.NilaiPenguji != nil {
			dinilai++
		}
	}
	total := len(jadwal)
	persentase := 0
	if total > 0 {
		persentase = dinilai * 100 / total
	}

	// Jadwal "hari ini" mencakup dua hari ke depan sebagai pengingat.
	now := time.Now()
	rangeStart := helper.StartOfDay(now)
	rangeEnd := helper.EndOfDay(now.AddDate(0, 0, 2))
	hariIni := make([]model.Jadwal, 0)
	for _, j := range jadwal {
		if !j.Tanggal.Before(rangeStart) && !j.Tanggal.After(rangeEnd) {
			hariIni = append(hariIni, j)
		}
	}

	resp := model.JadwalSayaResponse{
		TahunAjaran: *tahunAjaran,
		Statistics: model.JadwalSayaStatistics{
			TotalMahasiswa:        total,
			MahasiswaDinilai:      dinilai,
			MahasiswaBelumDinilai: total - dinilai,
			PersentaseDinilai:     persentase,
		},
		JadwalHariIni: hariIni,
		SemuaJadwal:   jadwal,
	}

	return c.JSON(model.Response[model.JadwalSayaResponse]{
		Response: true,
		Message:  "Jadwal seminar kamu berhasil diambil",
		Data:     resp,
	})
}

func (s *JadwalService) GetAllRuangan(c *fiber.Ctx) error {
	ruangan, err := s.jadwalRepo.GetAllRuangan()
	if err != nil {
		return err
	}

	return c.JSON(model.Response[[]model.Ruangan]{
		Response: true,
		Message:  "Ruangan berhasil diambil",
		Data:     ruangan,
	})
}

func (s *JadwalService) PostRuangan(c *fiber.Ctx) error {
	var req model.CreateRuanganRequest
	if err := c.BodyParser(&req); err != nil {
		return model.BadRequest("Body request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return model.BadRequest("%s", helper.FormatValidationErrors(err))
	}

	_, err := s.jadwalRepo.FindRuanganByName(req.Nama)
	if err == nil {
		return model.BadRequest("Ruangan sudah ada.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.jadwalRepo.CreateRuangan(req.Nama); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(model.Response[model.Ruangan]{
		Response: true,
		Message:  "Ruangan berhasil ditambahkan",
		Data:     model.Ruangan{Nama: req.Nama},
	})
}

func (s *JadwalService) DeleteRuangan(c *fiber.Ctx) error {
	nama := c.Params("nama")
	if _, err := s.jadwalRepo.FindRuanganByName(nama); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NotFound("Ruangan tidak ditemukan")
		}
		return err
	}

	if err := s.jadwalRepo.DeleteRuangan(nama); err != nil {
		return err
	}

	return c.JSON(model.Response[any]{
		Response: true,
		Message:  "Ruangan berhasil dihapus",
	})
}

func (s *JadwalService) GetAllDosen(c *fiber.Ctx) error {
	dosen, err := s.dosenRepo.FindAll()
	if err != nil {
		return err
	}

	return c.JSON(model.Response[[]model.Dosen]{
		Response: true,
		Message:  "Dosen berhasil diambil",
		Data:     dosen,
	})
}

func (s *JadwalService) GetAllTahunAjaran(c *fiber.Ctx) error {
	tahunAjaran, err := s.jadwalRepo.GetAllTahunAjaran()
	if err != nil {
		return err
	}

	return c.JSON(model.Response[[]model.TahunAjaran]{
		Response: true,
		Message:  "Tahun ajaran berhasil diambil",
		Data:     tahunAjaran,
	})
}
