package repository

import (
	"time"

	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// OrangTuaRepository menangani data orang tua dan relasinya ke siswa.
// Relasi many-to-many dibaca lewat join table siswa_orang_tua secara
// eksplisit, tidak lewat asosiasi ORM.
type OrangTuaRepository interface {
	FindByUsername(username string) (*model.OrangTua, error)

	// FindAnak mengembalikan semua siswa yang terhubung ke orang tua
	// lewat siswa_orang_tua, lengkap dengan kelasnya.
	FindAnak(orangTuaID uint) ([]model.Siswa, error)

	// IsWaliDari mengecek apakah orang tua memang wali dari siswa tertentu.
	// Dipakai sebelum membuka riwayat/statistik anak.
	IsWaliDari(orangTuaID, siswaID uint) (bool, error)

	// FindRiwayatAbsensi mengembalikan absensi seorang siswa (terbaru dulu,
	// maksimal limit), opsional dibatasi rentang created_at.
	FindRiwayatAbsensi(siswaID uint, mulai, selesai *time.Time, limit int) ([]model.Absensi, error)

	// FindAbsensiInWindow mengembalikan absensi siswa yang jurnalnya jatuh
	// pada rentang tanggal tertentu, untuk statistik bulanan per-record.
	FindAbsensiInWindow(siswaID uint, start, end time.Time) ([]model.Absensi, error)
}

type orangTuaRepository struct {
	db *gorm.DB
}

// NewOrangTuaRepository membuat instance baru orangTuaRepository.
func NewOrangTuaRepository(db *gorm.DB) OrangTuaRepository {
	return &orangTuaRepository{db}
}

func (r *orangTuaRepository) FindByUsername(username string) (*model.OrangTua, error) {
	var ortu model.OrangTua
	if err := r.db.Where("username = ?", username).First(&ortu).Error; err != nil {
		return nil, err
	}
	return &ortu, nil
}

func (r *orangTuaRepository) FindAnak(orangTuaID uint) ([]model.Siswa, error) {
	var anak []model.Siswa
	err := r.db.
		Joins("JOIN siswa_orang_tua ON siswa_orang_tua.siswa_id = siswa.id").
		Where("siswa_orang_tua.orang_tua_id = ?", orangTuaID).
		Preload("Kelas").
		Order("siswa.nama ASC").
		Find(&anak).Error
	return anak, err
}

func (r *orangTuaRepository) IsWaliDari(orangTuaID, siswaID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.SiswaOrangTua{}).
		Where("orang_tua_id = ? AND siswa_id = ?", orangTuaID, siswaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *orangTuaRepository) FindRiwayatAbsensi(siswaID uint, mulai, selesai *time.Time, limit int) ([]model.Absensi, error) {
	q := r.db.
		Preload("Jurnal").
		Preload("Jurnal.Kelas").
		Where("siswa_id = ?", siswaID)

	if mulai != nil && selesai != nil {
		q = q.Where("absensi.created_at BETWEEN ? AND ?", *mulai, *selesai)
	}

	var riwayat []model.Absensi
	err := q.Order("created_at DESC").Limit(limit).Find(&riwayat).Error
	return riwayat, err
}

func (r *orangTuaRepository) FindAbsensiInWindow(siswaID uint, start, end time.Time) ([]model.Absensi, error) {
	var absensi []model.Absensi
	err := r.db.
		Joins("JOIN jurnal ON jurnal.id = absensi.jurnal_id").
		Where("absensi.siswa_id = ?", siswaID).
		Where("jurnal.tanggal BETWEEN ? AND ?", start, end).
		Find(&absensi).Error
	return absensi, err
}
