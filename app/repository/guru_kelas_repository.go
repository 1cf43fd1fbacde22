package repository

import (
	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// GuruKelasRepository menangani relasi guru-mengajar-kelas
// (join table guru_kelas dengan override mata pelajaran opsional).
type GuruKelasRepository interface {
	Create(gk *model.GuruKelas) error
	Update(gk *model.GuruKelas) error
	Delete(id uint) error
	FindAll() ([]model.GuruKelas, error)
	FindByID(id uint) (*model.GuruKelas, error)
	FindByGuru(guruID uint) ([]model.GuruKelas, error)

	// Exists mengecek apakah pasangan (guru, kelas) sudah terdaftar,
	// untuk menjaga maksimal satu baris per pasangan.
	Exists(guruID, kelasID uint) (bool, error)
}

type guruKelasRepository struct {
	db *gorm.DB
}

// NewGuruKelasRepository membuat instance baru guruKelasRepository.
func NewGuruKelasRepository(db *gorm.DB) GuruKelasRepository {
	return &guruKelasRepository{db}
}

func (r *guruKelasRepository) Create(gk *model.GuruKelas) error {
	return r.db.Create(gk).Error
}

func (r *guruKelasRepository) Update(gk *model.GuruKelas) error {
	return r.db.Save(gk).Error
}

func (r *guruKelasRepository) Delete(id uint) error {
	return r.db.Delete(&model.GuruKelas{}, id).Error
}

func (r *guruKelasRepository) FindAll() ([]model.GuruKelas, error) {
	var list []model.GuruKelas
	err := r.db.
		Preload("Guru").
		Preload("Kelas").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *guruKelasRepository) FindByID(id uint) (*model.GuruKelas, error) {
	var gk model.GuruKelas
	if err := r.db.First(&gk, id).Error; err != nil {
		return nil, err
	}
	return &gk, nil
}

// FindByGuru mengembalikan daftar kelas yang diajar seorang guru,
// dipakai untuk menentukan mata pelajaran per kelas di form absen.
func (r *guruKelasRepository) FindByGuru(guruID uint) ([]model.GuruKelas, error) {
	var list []model.GuruKelas
	err := r.db.
		Preload("Kelas").
		Where("guru_id = ?", guruID).
		Find(&list).Error
	return list, err
}

func (r *guruKelasRepository) Exists(guruID, kelasID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.GuruKelas{}).
		Where("guru_id = ? AND kelas_id = ?", guruID, kelasID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
