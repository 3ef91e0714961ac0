package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"fiber/kp/app/model"
	"fiber/kp/helper"
)

type DailyReportRepository interface {
	CreateDailyReport(nim string, latitude, longitude float64) (*model.DailyReport, error)
	GetDailyReportByDate(nim string, tanggal time.Time) (*model.DailyReport, error)
	GetDailyReports(nim string) ([]model.DailyReport, error)
	GetDailyReportByID(id uuid.UUID) (*model.DailyReport, error)
	CountDailyReport(nim string) (int64, error)
	EvaluateDailyReport(id uuid.UUID, catatan string, status model.StatusDailyReport) (*model.DailyReport, error)
	CreateDetail(ctx context.Context, detail model.DetailDailyReportMongo) (*model.DetailDailyReportMongo, error)
	UpdateDetail(ctx context.Context, idHex, judul, deskripsi string) error
	GetDetails(ctx context.Context, idDailyReport uuid.UUID) ([]model.DetailDailyReportMongo, error)
}

// DailyReportRepo memakai pola hibrid: baris presensi di Postgres, detail
// agenda per hari sebagai dokumen di MongoDB.
type DailyReportRepo struct {
	DB    *gorm.DB
	Mongo *mongo.Database
}

func NewDailyReportRepo(db *gorm.DB, mongoDB *mongo.Database) *DailyReportRepo {
	return &DailyReportRepo{DB: db, Mongo: mongoDB}
}

func (r *DailyReportRepo) collection() *mongo.Collection {
	return r.Mongo.Collection("detail_daily_report")
}

func (r *DailyReportRepo) CreateDailyReport(nim string, latitude, longitude float64) (*model.DailyReport, error) {
	report := model.DailyReport{
		NIM:       nim,
		Tanggal:   helper.StartOfDay(time.Now()),
		Latitude:  latitude,
		Longitude: longitude,
		Status:    model.DailyReportMenunggu,
	}
	if err := r.DB.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DailyReportRepo) GetDailyReportByDate(nim string, tanggal time.Time) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.DB.Where("nim = ? AND tanggal = ?", nim, tanggal).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DailyReportRepo) GetDailyReports(nim string) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	err := r.DB.Where("nim = ?", nim).Order("tanggal ASC").Find(&reports).Error
	return reports, err
}

func (r *DailyReportRepo) GetDailyReportByID(id uuid.UUID) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.DB.First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *DailyReportRepo) CountDailyReport(nim string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.DailyReport{}).Where("nim = ?", nim).Count(&count).Error
	return count, err
}

func (r *DailyReportRepo) EvaluateDailyReport(id uuid.UUID, catatan string, status model.StatusDailyReport) (*model.DailyReport, error) {
	err := r.DB.Model(&model.DailyReport{}).Where("id = ?", id).Updates(map[string]interface{}{
		"catatan_evaluasi": catatan,
		"status":           status,
	}).Error
	if err != nil {
		return nil, err
	}
	return r.GetDailyReportByID(id)
}

func (r *DailyReportRepo) CreateDetail(ctx context.Context, detail model.DetailDailyReportMongo) (*model.DetailDailyReportMongo, error) {
	now := time.Now()
	detail.CreatedAt = now
	detail.UpdatedAt = now

	res, err := r.collection().InsertOne(ctx, detail)
	if err != nil {
		return nil, err
	}
	detail.ID = res.InsertedID.(primitive.ObjectID)
	return &detail, nil
}

func (r *DailyReportRepo) UpdateDetail(ctx context.Context, idHex, judul, deskripsi string) error {
	objID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return model.BadRequest("Id detail daily report tidak valid")
	}

	_, err = r.collection().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"judulAgenda":     judul,
		"deskripsiAgenda": deskripsi,
		"updatedAt":       time.Now(),
	}})
	return err
}

func (r *DailyReportRepo) GetDetails(ctx context.Context, idDailyReport uuid.UUID) ([]model.DetailDailyReportMongo, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"idDailyReport": idDailyReport.String()})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var details []model.DetailDailyReportMongo
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}
