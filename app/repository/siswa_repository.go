package repository

import (
	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// SiswaRepository menangani operasi database untuk entity Siswa.
type SiswaRepository interface {
	Create(siswa *model.Siswa) error
	Update(siswa *model.Siswa) error
	Delete(id uint) error
	FindAllWithKelas() ([]model.Siswa, error)
	FindByID(id uint) (*model.Siswa, error)
	FindByIDWithKelas(id uint) (*model.Siswa, error)
	FindByKelas(kelasID uint) ([]model.Siswa, error)
	ExistsByNIS(nis string, excludeID uint) (bool, error)

	// CountAbsensi dipakai untuk aturan bisnis
	// "siswa dengan data absensi tidak boleh dihapus".
	CountAbsensi(siswaID uint) (int64, error)
}

type siswaRepository struct {
	db *gorm.DB
}

// NewSiswaRepository membuat instance baru siswaRepository.
func NewSiswaRepository(db *gorm.DB) SiswaRepository {
	return &siswaRepository{db}
}

func (r *siswaRepository) Create(siswa *model.Siswa) error {
	return r.db.Create(siswa).Error
}

func (r *siswaRepository) Update(siswa *model.Siswa) error {
	return r.db.Save(siswa).Error
}

// Delete menghapus siswa. Baris siswa_orang_tua yatim ikut dibersihkan
// dalam transaksi yang sama (join table dikelola eksplisit, bukan cascade ORM).
func (r *siswaRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("siswa_id = ?", id).Delete(&model.SiswaOrangTua{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Siswa{}, id).Error
	})
}

func (r *siswaRepository) FindAllWithKelas() ([]model.Siswa, error) {
	var siswaList []model.Siswa
	err := r.db.Preload("Kelas").Order("nama ASC").Find(&siswaList).Error
	return siswaList, err
}

func (r *siswaRepository) FindByID(id uint) (*model.Siswa, error) {
	var siswa model.Siswa
	if err := r.db.First(&siswa, id).Error; err != nil {
		return nil, err
	}
	return &siswa, nil
}

func (r *siswaRepository) FindByIDWithKelas(id uint) (*model.Siswa, error) {
	var siswa model.Siswa
	if err := r.db.Preload("Kelas").First(&siswa, id).Error; err != nil {
		return nil, err
	}
	return &siswa, nil
}

// FindByKelas mengembalikan siswa satu kelas terurut nama,
// dipakai guru saat menyiapkan form absen.
func (r *siswaRepository) FindByKelas(kelasID uint) ([]model.Siswa, error) {
	var siswaList []model.Siswa
	err := r.db.Where("kelas_id = ?", kelasID).Order("nama ASC").Find(&siswaList).Error
	return siswaList, err
}

func (r *siswaRepository) ExistsByNIS(nis string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&model.Siswa{}).Where("nis = ?", nis)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *siswaRepository) CountAbsensi(siswaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Absensi{}).Where("siswa_id = ?", siswaID).Count(&count).Error
	return count, err
}
