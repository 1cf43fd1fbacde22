package repository

import (
	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// KelasRepository menangani operasi database untuk entity Kelas.
type KelasRepository interface {
	Create(kelas *model.Kelas) error
	Update(kelas *model.Kelas) error
	Delete(id uint) error
	FindAll() ([]model.Kelas, error)
	FindAllWithJurusan() ([]model.Kelas, error)
	FindByID(id uint) (*model.Kelas, error)
	FindByIDWithJurusan(id uint) (*model.Kelas, error)
	ExistsByNama(nama string, excludeID uint) (bool, error)

	// CountSiswa dan CountJurnal dipakai untuk aturan bisnis
	// "kelas dengan siswa atau jurnal tidak boleh dihapus".
	CountSiswa(kelasID uint) (int64, error)
	CountJurnal(kelasID uint) (int64, error)
}

type kelasRepository struct {
	db *gorm.DB
}

// NewKelasRepository membuat instance baru kelasRepository.
func NewKelasRepository(db *gorm.DB) KelasRepository {
	return &kelasRepository{db}
}

func (r *kelasRepository) Create(kelas *model.Kelas) error {
	return r.db.Create(kelas).Error
}

func (r *kelasRepository) Update(kelas *model.Kelas) error {
	return r.db.Save(kelas).Error
}

func (r *kelasRepository) Delete(id uint) error {
	return r.db.Delete(&model.Kelas{}, id).Error
}

func (r *kelasRepository) FindAll() ([]model.Kelas, error) {
	var kelasList []model.Kelas
	err := r.db.Order("nama ASC").Find(&kelasList).Error
	return kelasList, err
}

func (r *kelasRepository) FindAllWithJurusan() ([]model.Kelas, error) {
	var kelasList []model.Kelas
	err := r.db.Preload("Jurusan").Order("nama ASC").Find(&kelasList).Error
	return kelasList, err
}

func (r *kelasRepository) FindByID(id uint) (*model.Kelas, error) {
	var kelas model.Kelas
	if err := r.db.First(&kelas, id).Error; err != nil {
		return nil, err
	}
	return &kelas, nil
}

func (r *kelasRepository) FindByIDWithJurusan(id uint) (*model.Kelas, error) {
	var kelas model.Kelas
	if err := r.db.Preload("Jurusan").First(&kelas, id).Error; err != nil {
		return nil, err
	}
	return &kelas, nil
}

func (r *kelasRepository) ExistsByNama(nama string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Kelas{}).Where("nama = ?", nama)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *kelasRepository) CountSiswa(kelasID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Siswa{}).Where("kelas_id = ?", kelasID).Count(&count).Error
	return count, err
}

func (r *kelasRepository) CountJurnal(kelasID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Jurnal{}).Where("kelas_id = ?", kelasID).Count(&count).Error
	return count, err
}
