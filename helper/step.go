package helper

import (
	"fiber/kp/app/model"
)

// Step 4 dan 6 tidak punya jenis dokumen: step 4 menunggu penjadwalan
// seminar, step 6 adalah tahap akhir.
var stepByJenisDokumen = map[model.JenisDokumen]int{
	model.SuratKeteranganSelesaiKp: 1,
	model.LaporanTambahanKp:        1,
	model.FormKehadiranSeminar:     1,
	model.IdPengajuanSuratUndangan: 2,
	model.SuratUndanganSeminarKp:   3,
	model.BeritaAcaraSeminar:       5,
	model.DaftarHadirSeminar:       5,
	model.LembarPengesahanKp:       5,
}

var jenisDokumenByStep = map[int][]model.JenisDokumen{
	1: {model.SuratKeteranganSelesaiKp, model.LaporanTambahanKp, model.FormKehadiranSeminar},
	2: {model.IdPengajuanSuratUndangan},
	3: {model.SuratUndanganSeminarKp},
	5: {model.BeritaAcaraSeminar, model.DaftarHadirSeminar, model.LembarPengesahanKp},
}

// StepForDokumen mengembalikan 0 untuk jenis yang tidak dikenal.
func StepForDokumen(jenis model.JenisDokumen) int {
	return stepByJenisDokumen[jenis]
}

func JenisDokumenForStep(step int) []model.JenisDokumen {
	return jenisDokumenByStep[step]
}

// StepSatisfied adalah kebijakan tunggal penentu "step n sudah beres":
// setiap jenis dokumen step n harus ada dan semua dokumen step n berstatus
// Divalidasi. Karena pengiriman ulang menimpa baris lama, satu jenis hanya
// punya satu baris.
func StepSatisfied(step int, dokumen []model.DokumenSeminarKP) bool {
	jenisList := jenisDokumenByStep[step]
	if len(jenisList) == 0 {
		// Step tanpa dokumen bersifat pass-through.
		return StepAccessible(step, dokumen)
	}

	byJenis := make(map[model.JenisDokumen]model.DokumenSeminarKP, len(dokumen))
	for _, doc := range dokumen {
		if StepForDokumen(doc.JenisDokumen) == step {
			byJenis[doc.JenisDokumen] = doc
		}
	}

	for _, jenis := range jenisList {
		doc, ok := byJenis[jenis]
		if !ok || doc.Status != model.DokumenDivalidasi {
			return false
		}
	}
	return true
}

// StepAccessible: step 1 selalu boleh (syarat komposit dicek terpisah),
// step n>1 boleh jika step n-1 sudah beres.
func StepAccessible(step int, dokumen []model.DokumenSeminarKP) bool {
	if step <= 1 {
		return step == 1
	}
	if step > 6 {
		return false
	}
	return StepSatisfied(step-1, dokumen)
}

// CurrentStep adalah step tertinggi yang sudah punya dokumen, minimal 1.
func CurrentStep(dokumen []model.DokumenSeminarKP) int {
	current := 1
	for _, doc := range dokumen {
		if step := StepForDokumen(doc.JenisDokumen); step > current {
			current = step
		}
	}
	return current
}
