package repository

import (
	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// GuruRepository mendefinisikan kontrak operasi database untuk entity Guru.
type GuruRepository interface {
	Create(guru *model.Guru) error
	Update(guru *model.Guru) error
	Delete(id uint) error
	FindAll() ([]model.Guru, error)
	FindByID(id uint) (*model.Guru, error)
	FindByUsername(username string) (*model.Guru, error)

	// ExistsByUsernameOrNIP mengecek duplikat unique key, dengan pengecualian
	// satu id (dipakai saat update supaya tidak bentrok dengan dirinya sendiri;
	// kirim 0 saat create).
	ExistsByUsernameOrNIP(username, nip string, excludeID uint) (bool, error)

	// CountJurnal menghitung jurnal milik guru, untuk aturan bisnis
	// "guru dengan jurnal tidak boleh dihapus".
	CountJurnal(guruID uint) (int64, error)
}

type guruRepository struct {
	db *gorm.DB
}

// NewGuruRepository membuat instance baru guruRepository.
func NewGuruRepository(db *gorm.DB) GuruRepository {
	return &guruRepository{db}
}

func (r *guruRepository) Create(guru *model.Guru) error {
	return r.db.Create(guru).Error
}

func (r *guruRepository) Update(guru *model.Guru) error {
	return r.db.Save(guru).Error
}

func (r *guruRepository) Delete(id uint) error {
	return r.db.Delete(&model.Guru{}, id).Error
}

// FindAll mengembalikan semua guru terurut nama (password ikut terbaca,
// handler yang memastikan tidak bocor lewat json:"-").
func (r *guruRepository) FindAll() ([]model.Guru, error) {
	var gurus []model.Guru
	err := r.db.Order("nama ASC").Find(&gurus).Error
	return gurus, err
}

func (r *guruRepository) FindByID(id uint) (*model.Guru, error) {
	var guru model.Guru
	if err := r.db.First(&guru, id).Error; err != nil {
		return nil, err
	}
	return &guru, nil
}

// FindByUsername dipakai saat login guru/admin.
func (r *guruRepository) FindByUsername(username string) (*model.Guru, error) {
	var guru model.Guru
	if err := r.db.Where("username = ?", username).First(&guru).Error; err != nil {
		return nil, err
	}
	return &guru, nil
}

func (r *guruRepository) ExistsByUsernameOrNIP(username, nip string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Guru{}).Where("username = ? OR nip = ?", username, nip)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *guruRepository) CountJurnal(guruID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Jurnal{}).Where("guru_id = ?", guruID).Count(&count).Error
	return count, err
}
