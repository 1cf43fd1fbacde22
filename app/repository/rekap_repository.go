package repository

import (
	"time"

	"absensi-sekolah-backend/app/model"

	"gorm.io/gorm"
)

// RekapRepository memuat data mentah yang dibutuhkan mesin rekap:
// daftar kelas (dengan siswa terdaftar) dan jurnal (dengan absensi + siswa)
// pada jendela waktu tertentu. Agregasinya sendiri murni di service.
type RekapRepository interface {
	// FindKelasWithSiswa mengembalikan kelas sesuai filter opsional,
	// masing-masing dengan jurusan dan seluruh siswanya, terurut nama.
	FindKelasWithSiswa(kelasID, jurusanID uint) ([]model.Kelas, error)

	// FindJurnalInWindow mengembalikan jurnal yang tanggalnya jatuh pada
	// [start, end], lengkap dengan guru, kelas, dan absensi + siswa.
	FindJurnalInWindow(start, end time.Time) ([]model.Jurnal, error)
}

type rekapRepository struct {
	db *gorm.DB
}

// NewRekapRepository membuat instance baru rekapRepository.
func NewRekapRepository(db *gorm.DB) RekapRepository {
	return &rekapRepository{db}
}

func (r *rekapRepository) FindKelasWithSiswa(kelasID, jurusanID uint) ([]model.Kelas, error) {
	q := r.db.
		Preload("Jurusan").
		Preload("Siswa")

	if kelasID != 0 {
		q = q.Where("id = ?", kelasID)
	}
	if jurusanID != 0 {
		q = q.Where("jurusan_id = ?", jurusanID)
	}

	var kelasList []model.Kelas
	err := q.Order("nama ASC").Find(&kelasList).Error
	return kelasList, err
}

func (r *rekapRepository) FindJurnalInWindow(start, end time.Time) ([]model.Jurnal, error) {
	var jurnalList []model.Jurnal
	err := r.db.
		Preload("Guru").
		Preload("Kelas").
		Preload("Absensi.Siswa").
		Where("tanggal BETWEEN ? AND ?", start, end).
		Order("tanggal ASC, id ASC").
		Find(&jurnalList).Error
	return jurnalList, err
}
