package repository

import (
	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// JurusanRepository menangani operasi database untuk entity Jurusan.
type JurusanRepository interface {
	Create(jurusan *model.Jurusan) error
	Update(jurusan *model.Jurusan) error
	FindAll() ([]model.Jurusan, error)
	FindByID(id uint) (*model.Jurusan, error)
	ExistsByNama(nama string, excludeID uint) (bool, error)

	// DeleteWithNullifyKelas menghapus jurusan dalam satu transaksi:
	// jurusan_id semua kelas di bawahnya di-set NULL dulu, lalu baris
	// jurusan dihapus. Kelas TIDAK ikut terhapus.
	DeleteWithNullifyKelas(id uint) error
}

type jurusanRepository struct {
	db *gorm.DB
}

// NewJurusanRepository membuat instance baru jurusanRepository.
func NewJurusanRepository(db *gorm.DB) JurusanRepository {
	return &jurusanRepository{db}
}

func (r *jurusanRepository) Create(jurusan *model.Jurusan) error {
	return r.db.Create(jurusan).Error
}

func (r *jurusanRepository) Update(jurusan *model.Jurusan) error {
	return r.db.Save(jurusan).Error
}

func (r *jurusanRepository) FindAll() ([]model.Jurusan, error) {
	var jurusans []model.Jurusan
	err := r.db.Order("nama ASC").Find(&jurusans).Error
	return jurusans, err
}

func (r *jurusanRepository) FindByID(id uint) (*model.Jurusan, error) {
	var jurusan model.Jurusan
	if err := r.db.First(&jurusan, id).Error; err != nil {
		return nil, err
	}
	return &jurusan, nil
}

func (r *jurusanRepository) ExistsByNama(nama string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Jurusan{}).Where("nama = ?", nama)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *jurusanRepository) DeleteWithNullifyKelas(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Kelas{}).
			Where("jurusan_id = ?", id).
			Update("jurusan_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Jurusan{}, id).Error
	})
}
