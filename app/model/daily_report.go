package model

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StatusDailyReport string

const (
	DailyReportMenunggu  StatusDailyReport = "Menunggu"
	DailyReportDisetujui StatusDailyReport = "Disetujui"
	DailyReportDitolak   StatusDailyReport = "Ditolak"
)

// DailyReport adalah baris referensi presensi di Postgres; detail agenda
// per hari disimpan sebagai dokumen di MongoDB.
type DailyReport struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NIM             string            `gorm:"column:nim;type:varchar(20);not null" json:"nim"`
	Tanggal         time.Time         `gorm:"type:date;not null" json:"tanggal"`
	Latitude        float64           `json:"latitude"`
	Longitude       float64           `json:"longitude"`
	Status          StatusDailyReport `gorm:"size:20;default:'Menunggu'" json:"status"`
	CatatanEvaluasi *string           `gorm:"type:text" json:"catatan_evaluasi"`
	CreatedAt       time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (DailyReport) TableName() string { return "daily_report" }

type DetailDailyReportMongo struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IDDailyReport   string             `bson:"idDailyReport" json:"id_daily_report"`
	JudulAgenda     string             `bson:"judulAgenda" json:"judul_agenda"`
	DeskripsiAgenda string             `bson:"deskripsiAgenda" json:"deskripsi_agenda"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

type DailyReportWithDetail struct {
	DailyReport
	Detail []DetailDailyReportMongo `json:"detail"`
}

type CreatePresensiRequest struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
}

type CreateDetailDailyReportRequest struct {
	IDDailyReport   string `json:"id_daily_report" validate:"required"`
	JudulAgenda     string `json:"judul_agenda" validate:"required"`
	DeskripsiAgenda string `json:"deskripsi_agenda" validate:"required"`
}

type UpdateDetailDailyReportRequest struct {
	JudulAgenda     string `json:"judul_agenda" validate:"required"`
	DeskripsiAgenda string `json:"deskripsi_agenda" validate:"required"`
}

type EvaluasiDailyReportRequest struct {
	CatatanEvaluasi string `json:"catatan_evaluasi"`
	Status          string `json:"status" validate:"required,oneof=Disetujui Ditolak"`
}

type LevelAksesResponse struct {
	ID          uuid.UUID `json:"id"`
	NIM         string    `json:"nim"`
	AccessLevel int       `json:"access_level"`
	HasAccess   bool      `json:"has_access"`
}
