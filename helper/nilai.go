package helper

import (
	"fmt"
	"math"
	"time"

	"fiber/kp/app/model"
)

// Tabel bobot dimuat sekali saat start, tidak pernah diubah saat runtime.
var bobotPenguji = struct {
	PenguasaanKeilmuan  float64
	KemampuanPresentasi float64
	KesesuaianUrgensi   float64
}{0.4, 0.2, 0.4}

var bobotPembimbing = struct {
	PenyelesaianMasalah float64
	BimbinganSikap      float64
	KualitasLaporan     float64
}{0.4, 0.35, 0.25}

var bobotInstansi = struct {
	Deliverables   float64
	KetepatanWaktu float64
	Kedisiplinan   float64
	Attitude       float64
	KerjasamaTim   float64
	Inisiatif      float64
}{0.15, 0.10, 0.15, 0.15, 0.25, 0.20}

var bobotNilaiAkhir = struct {
	NilaiPenguji    float64
	NilaiPembimbing float64
	NilaiInstansi   float64
}{0.2, 0.4, 0.4}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateNilaiInput menolak nilai di luar 0-100, tidak memotongnya.
func ValidateNilaiInput(nilai float64, fieldName string) error {
	if nilai < 0 || nilai > 100 {
		return model.BadRequest("%s harus bernilai dari 0 hingga 100!", fieldName)
	}
	return nil
}

func HitungNilaiPenguji(penguasaanKeilmuan, kemampuanPresentasi, kesesuaianUrgensi float64) (float64, error) {
	if err := ValidateNilaiInput(penguasaanKeilmuan, "Penguasaan Keilmuan"); err != nil {
		return 0, err
	}
	if err := ValidateNilaiInput(kemampuanPresentasi, "Kemampuan Presentasi"); err != nil {
		return 0, err
	}
	if err := ValidateNilaiInput(kesesuaianUrgensi, "Kesesuaian Urgensi"); err != nil {
		return 0, err
	}

	return round2(
		penguasaanKeilmuan*bobotPenguji.PenguasaanKeilmuan +
			kemampuanPresentasi*bobotPenguji.KemampuanPresentasi +
			kesesuaianUrgensi*bobotPenguji.KesesuaianUrgensi), nil
}

func HitungNilaiPembimbing(penyelesaianMasalah, bimbinganSikap, kualitasLaporan float64) (float64, error) {
	if err := ValidateNilaiInput(penyelesaianMasalah, "Penyelesaian Masalah"); err != nil {
		return 0, err
	}
	if err := ValidateNilaiInput(bimbinganSikap, "Bimbingan Sikap"); err != nil {
		return 0, err
	}
	if err := ValidateNilaiInput(kualitasLaporan, "Kualitas Laporan"); err != nil {
		return 0, err
	}

	return round2(
		penyelesaianMasalah*bobotPembimbing.PenyelesaianMasalah +
			bimbinganSikap*bobotPembimbing.BimbinganSikap +
			kualitasLaporan*bobotPembimbing.KualitasLaporan), nil
}

func HitungNilaiInstansi(req model.CreateNilaiInstansiRequest) (float64, error) {
	komponen := []struct {
		nilai float64
		nama  string
	}{
		{req.Deliverables, "Deliverables"},
		{req.KetepatanWaktu, "Ketepatan Waktu"},
		{req.Kedisiplinan, "Kedisiplinan"},
		{req.Attitude, "Attitude"},
		{req.KerjasamaTim, "Kerjasama Tim"},
		{req.Inisiatif, "Inisiatif"},
	}
	for _, k := range komponen {
		if err := ValidateNilaiInput(k.nilai, k.nama); err != nil {
			return 0, err
		}
	}

	return round2(
		req.Deliverables*bobotInstansi.Deliverables +
			req.KetepatanWaktu*bobotInstansi.KetepatanWaktu +
			req.Kedisiplinan*bobotInstansi.Kedisiplinan +
			req.Attitude*bobotInstansi.Attitude +
			req.KerjasamaTim*bobotInstansi.KerjasamaTim +
			req.Inisiatif*bobotInstansi.Inisiatif), nil
}

// HitungNilaiAkhir mengembalikan nil selama salah satu komposit masih
// kosong; itu status "menunggu", bukan error.
func HitungNilaiAkhir(nilaiPenguji, nilaiPembimbing, nilaiInstansi *float64) *float64 {
	if nilaiPenguji == nil || nilaiPembimbing == nil || nilaiInstansi == nil {
		return nil
	}

	akhir := round2(
		*nilaiPenguji*bobotNilaiAkhir.NilaiPenguji +
			*nilaiPembimbing*bobotNilaiAkhir.NilaiPembimbing +
			*nilaiInstansi*bobotNilaiAkhir.NilaiInstansi)
	return &akhir
}

// NilaiHuruf memetakan nilai akhir ke huruf; batas bawah inklusif.
func NilaiHuruf(nilai *float64) string {
	if nilai == nil {
		return "-"
	}

	switch {
	case *nilai >= 85:
		return "A"
	case *nilai >= 80:
		return "A-"
	case *nilai >= 75:
		return "B+"
	case *nilai >= 70:
		return "B"
	case *nilai >= 65:
		return "B-"
	case *nilai >= 60:
		return "C+"
	case *nilai >= 55:
		return "C"
	case *nilai >= 50:
		return "D"
	default:
		return "E"
	}
}

// CanInputNilai: penguji baru boleh menilai setelah seminar dimulai.
func CanInputNilai(waktuMulai *time.Time, now time.Time) bool {
	if waktuMulai == nil {
		return false
	}
	return now.After(*waktuMulai)
}

// CanValidateNilai memeriksa gate finalisasi: tiga komposit terisi dan
// seluruh dokumen seminar sudah Divalidasi.
func CanValidateNilai(nilaiPenguji, nilaiPembimbing, nilaiInstansi *float64, dokumen []model.DokumenSeminarKP) model.ValidasiNilaiResult {
	if nilaiPenguji == nil {
		return model.ValidasiNilaiResult{Valid: false, Message: "Nilai dari penguji belum diinput"}
	}
	if nilaiPembimbing == nil {
		return model.ValidasiNilaiResult{Valid: false, Message: "Nilai dari pembimbing belum diinput"}
	}
	if nilaiInstansi == nil {
		return model.ValidasiNilaiResult{Valid: false, Message: "Nilai dari instansi belum diinput"}
	}

	belumDivalidasi := 0
	for _, doc := range dokumen {
		if doc.Status != model.DokumenDivalidasi {
			belumDivalidasi++
		}
	}
	if belumDivalidasi > 0 {
		return model.ValidasiNilaiResult{
			Valid:   false,
			Message: fmt.Sprintf("%d dokumen seminar belum divalidasi", belumDivalidasi),
		}
	}

	return model.ValidasiNilaiResult{Valid: true, Message: "Semua persyaratan validasi terpenuhi"}
}
