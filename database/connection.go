package database

import (
	"fmt"
	"log"
	"os"

	"absensi-sekolah-backend/app/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB membuka koneksi PostgreSQL dan menjalankan migrasi skema.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke postgres: %v", err)
	}

	log.Println("Menjalankan migrasi database PostgreSQL...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("gagal migrasi database: %v", err)
	}

	log.Println("Berhasil terhubung ke PostgreSQL!")
	return db, nil
}

// Migrate menjalankan AutoMigrate untuk seluruh tabel core:
// 5 tabel referensi + 2 tabel transaksional + 2 join table.
// Dipisah dari InitDB supaya bisa dipakai juga oleh test (sqlite in-memory).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Guru{},
		&model.Jurusan{},
		&model.Kelas{},
		&model.Siswa{},
		&model.OrangTua{},
		&model.SiswaOrangTua{},
		&model.GuruKelas{},
		&model.Jurnal{},
		&model.Absensi{},
	)
}
