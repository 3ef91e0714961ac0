package route

import (
	"github.com/gofiber/fiber/v2"

	"fiber/kp/app/model"
	"fiber/kp/app/repo"
	"fiber/kp/app/service"
	"fiber/kp/config"
	"fiber/kp/db"
	"fiber/kp/middleware"
)

func SetupRoutes(app *fiber.App) {
	gormDB := db.GetDB()
	mongoDB := db.GetMongo()

	mahasiswaRepo := repo.NewMahasiswaRepo(gormDB)
	dosenRepo := repo.NewDosenRepo(gormDB)
	jadwalRepo := repo.NewJadwalRepo(gormDB)
	seminarRepo := repo.NewSeminarRepo(gormDB)
	nilaiRepo := repo.NewNilaiRepo(gormDB)
	dailyReportRepo := repo.NewDailyReportRepo(gormDB, mongoDB)
	bimbinganRepo := repo.NewBimbinganRepo(gormDB)
	murojaahRepo := repo.NewMurojaahRepo(config.Env.MurojaahAPIURL)

	mahasiswaService := service.NewMahasiswaService(mahasiswaRepo, murojaahRepo)
	jadwalService := service.NewJadwalService(jadwalRepo, mahasiswaRepo, dosenRepo, seminarRepo, nilaiRepo, config.Log)
	seminarService := service.NewSeminarService(seminarRepo, mahasiswaRepo, jadwalRepo, mahasiswaService, config.Log)
	nilaiService := service.NewNilaiService(nilaiRepo, dosenRepo, mahasiswaRepo, jadwalRepo, seminarRepo, config.Log)
	dailyReportService := service.NewDailyReportService(dailyReportRepo, mahasiswaRepo, nilaiRepo, config.Log)
	bimbinganService := service.NewBimbinganService(bimbinganRepo, mahasiswaRepo, dosenRepo)

	api := app.Group("/api/v1", middleware.AuthRequired())

	// Mahasiswa
	mahasiswa := api.Group("/mahasiswa", middleware.RoleRequired(model.RoleMahasiswa))
	mahasiswa.Get("/level-akses", mahasiswaService.CheckLevelAkses)
	mahasiswa.Get("/persyaratan-seminar-kp", mahasiswaService.GetPersyaratanSaya)
	mahasiswa.Get("/seminar-kp", seminarService.GetSeminarSaya)
	mahasiswa.Post("/seminar-kp/dokumen/:jenis", seminarService.PostDokumen)
	mahasiswa.Get("/bimbingan", bimbinganService.GetBimbinganSaya)
	mahasiswa.Get("/nilai", dailyReportService.GetNilaiSaya)
	mahasiswa.Post("/daily-report/presensi", dailyReportService.PostPresensi)
	mahasiswa.Get("/daily-report", dailyReportService.GetDailyReportSaya)
	mahasiswa.Post("/daily-report/detail", dailyReportService.PostDetail)
	mahasiswa.Put("/daily-report/detail/:id", dailyReportService.PutDetail)

	// Daily report dibaca mahasiswa pemiliknya maupun pembimbing instansi.
	api.Get("/daily-report/:id",
		middleware.RoleRequired(model.RoleMahasiswa, model.RolePembimbingInstansi),
		dailyReportService.GetDetailDailyReport)

	// Koordinator KP
	koordinator := api.Group("/koordinator-kp", middleware.RoleRequired(model.RoleKoordinator))
	koordinator.Get("/jadwal", jadwalService.GetAllJadwalSeminar)
	koordinator.Post("/jadwal", jadwalService.PostJadwal)
	koordinator.Put("/jadwal", jadwalService.PutJadwal)
	koordinator.Get("/jadwal/log", jadwalService.GetLogJadwal)
	koordinator.Get("/ruangan", jadwalService.GetAllRuangan)
	koordinator.Post("/ruangan", jadwalService.PostRuangan)
	koordinator.Delete("/ruangan/:nama", jadwalService.DeleteRuangan)
	koordinator.Get("/dosen", jadwalService.GetAllDosen)
	koordinator.Get("/tahun-ajaran", jadwalService.GetAllTahunAjaran)
	koordinator.Get("/dokumen-seminar-kp", seminarService.GetAllDokumen)
	koordinator.Get("/dokumen-seminar-kp/:nim", seminarService.GetDokumenMahasiswa)
	koordinator.Post("/dokumen-seminar-kp/:id/terima", seminarService.TerimaDokumen)
	koordinator.Post("/dokumen-seminar-kp/:id/tolak", seminarService.TolakDokumen)
	koordinator.Get("/nilai", nilaiService.GetAllNilai)
	koordinator.Get("/nilai/:id", nilaiService.GetNilaiByID)
	koordinator.Post("/nilai/:id/validasi", nilaiService.ValidasiNilai)
	koordinator.Post("/nilai/:id/approve", nilaiService.ApproveNilai)

	// Dosen
	dosen := api.Group("/dosen", middleware.RoleRequired(model.RoleDosen))
	dosen.Get("/jadwal-seminar", jadwalService.GetJadwalSaya)
	dosen.Get("/mahasiswa-bimbingan", bimbinganService.GetMahasiswaBimbingan)
	dosen.Post("/bimbingan", bimbinganService.PostBimbingan)
	dosen.Post("/nilai/penguji", nilaiService.PostNilaiPenguji)
	dosen.Post("/nilai/pembimbing", nilaiService.PostNilaiPembimbing)

	// Pembimbing instansi
	instansi := api.Group("/pembimbing-instansi", middleware.RoleRequired(model.RolePembimbingInstansi))
	instansi.Post("/daily-report/:id/evaluasi", dailyReportService.PostEvaluasi)
	instansi.Post("/nilai", dailyReportService.PostNilaiInstansi)
}
