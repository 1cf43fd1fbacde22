package database

import (
	"log"

	"absensi-sekolah-backend/app/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil ini sekali di main.go setelah InitDB berhasil.
// Semua seeder idempotent: skip kalau tabelnya sudah terisi.
func RunSeeders(db *gorm.DB) {
	SeedJurusan(db)
	SeedGuru(db)
	SeedKelas(db)
	SeedSiswa(db)
	SeedOrangTua(db)
	SeedGuruKelas(db)
}

func strptr(s string) *string { return &s }

// ===============================
//  SEED JURUSAN
// ===============================

func SeedJurusan(db *gorm.DB) {
	var count int64
	db.Model(&model.Jurusan{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Jurusan sudah ada, skip seeding jurusan.")
		return
	}

	jurusans := []model.Jurusan{
		{Nama: "Teknik Jaringan Komputer dan Telekomunikasi", Singkatan: strptr("TJKT")},
		{Nama: "Pengembangan Perangkat Lunak dan Gim", Singkatan: strptr("PPLG")},
	}

	if err := db.Create(&jurusans).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed jurusan: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed jurusan: TJKT, PPLG")
}

// ===============================
//  SEED GURU (ADMIN + GURU)
// ===============================

// SeedGuru menambahkan 1 admin dan 3 guru.
// Admin adalah Guru dengan role=admin, tidak ada tabel terpisah.
func SeedGuru(db *gorm.DB) {
	var count int64
	db.Model(&model.Guru{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Guru sudah ada, skip seeding guru.")
		return
	}

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	guruHash, _ := bcrypt.GenerateFromPassword([]byte("guru123"), 10)

	gurus := []model.Guru{
		{
			Username: "admin",
			Password: string(adminHash),
			Nama:     "Administrator Sekolah",
			NIP:      "198001012010011001",
			Mapel:    "Administrasi",
			Role:     model.RoleAdmin,
		},
		{
			Username: "sari",
			Password: string(guruHash),
			Nama:     "Sari Indrawati",
			NIP:      "198505152010122001",
			Mapel:    "Pemrograman Web",
			JamMulai: strptr("09:00:00"),
			Role:     model.RoleGuru,
		},
		{
			Username: "budi",
			Password: string(guruHash),
			Nama:     "Budi Santoso",
			NIP:      "197903102008011002",
			Mapel:    "Jaringan Komputer",
			JamMulai: strptr("08:00:00"),
			Role:     model.RoleGuru,
		},
		{
			Username: "ani",
			Password: string(guruHash),
			Nama:     "Ani Wulandari",
			NIP:      "198807252012012001",
			Mapel:    "Basis Data",
			JamMulai: strptr("10:00:00"),
			Role:     model.RoleGuru,
		},
	}

	if err := db.Create(&gurus).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed guru: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 4 guru (1 admin), password: admin123 / guru123")
}

// ===============================
//  SEED KELAS
// ===============================

func SeedKelas(db *gorm.DB) {
	var count int64
	db.Model(&model.Kelas{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Kelas sudah ada, skip seeding kelas.")
		return
	}

	var tjkt model.Jurusan
	db.Where("singkatan = ?", "TJKT").First(&tjkt)

	kelasList := []model.Kelas{
		{Nama: "X TJKT A", Tingkat: "X", TahunAjaran: "2024/2025", JurusanID: &tjkt.ID},
		{Nama: "XI TJKT A", Tingkat: "XI", TahunAjaran: "2024/2025", JurusanID: &tjkt.ID},
		{Nama: "XII TJKT A", Tingkat: "XII", TahunAjaran: "2024/2025", JurusanID: &tjkt.ID},
	}

	if err := db.Create(&kelasList).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed kelas: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 3 kelas")
}

// ===============================
//  SEED SISWA
// ===============================

func SeedSiswa(db *gorm.DB) {
	var count int64
	db.Model(&model.Siswa{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Siswa sudah ada, skip seeding siswa.")
		return
	}

	var kelasXII model.Kelas
	if err := db.Where("nama = ?", "XII TJKT A").First(&kelasXII).Error; err != nil {
		log.Println("[SEEDER] Kelas 'XII TJKT A' tidak ditemukan, skip seeding siswa.")
		return
	}

	siswaList := []model.Siswa{
		{NIS: "2021001", Nama: "Ahmad Santoso", KelasID: kelasXII.ID},
		{NIS: "2021002", Nama: "Budi Pratama", KelasID: kelasXII.ID},
		{NIS: "2021003", Nama: "Citra Dewi", KelasID: kelasXII.ID},
		{NIS: "2021004", Nama: "Dian Permata", KelasID: kelasXII.ID},
		{NIS: "2021005", Nama: "Eko Wijaya", KelasID: kelasXII.ID},
	}

	if err := db.Create(&siswaList).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed siswa: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 5 siswa di XII TJKT A")
}

// ===============================
//  SEED ORANG TUA
// ===============================

// SeedOrangTua membuat 1 orang tua yang terhubung ke siswa pertama
// lewat join table siswa_orang_tua, supaya fitur monitoring wali
// bisa langsung dicoba.
func SeedOrangTua(db *gorm.DB) {
	var count int64
	db.Model(&model.OrangTua{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Orang tua sudah ada, skip seeding orang tua.")
		return
	}

	var siswa model.Siswa
	if err := db.Where("nis = ?", "2021001").First(&siswa).Error; err != nil {
		log.Println("[SEEDER] Siswa '2021001' tidak ditemukan, skip seeding orang tua.")
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("ortu123"), 10)

	ortu := model.OrangTua{
		Username: "ortu_ahmad",
		Password: string(hash),
		Nama:     "Hasan Santoso",
		Email:    "hasan@example.com",
		Phone:    strptr("081234567890"),
	}
	if err := db.Create(&ortu).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed orang tua: %v", err)
	}

	relasi := model.SiswaOrangTua{SiswaID: siswa.ID, OrangTuaID: ortu.ID}
	if err := db.Create(&relasi).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed relasi siswa-orang tua: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 1 orang tua (ortu_ahmad), password: ortu123")
}

// ===============================
//  SEED GURU-KELAS
// ===============================

// SeedGuruKelas mengaitkan guru 'sari' ke kelas XII TJKT A dengan
// override mata pelajaran, sebagai contoh relasi mengajar.
func SeedGuruKelas(db *gorm.DB) {
	var count int64
	db.Model(&model.GuruKelas{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Guru-kelas sudah ada, skip seeding.")
		return
	}

	var guru model.Guru
	if err := db.Where("username = ?", "sari").First(&guru).Error; err != nil {
		log.Println("[SEEDER] Guru 'sari' tidak ditemukan, skip seeding guru-kelas.")
		return
	}
	var kelas model.Kelas
	if err := db.Where("nama = ?", "XII TJKT A").First(&kelas).Error; err != nil {
		log.Println("[SEEDER] Kelas 'XII TJKT A' tidak ditemukan, skip seeding guru-kelas.")
		return
	}

	gk := model.GuruKelas{
		GuruID:        guru.ID,
		KelasID:       kelas.ID,
		MataPelajaran: strptr("Pemrograman Web Lanjut"),
	}
	if err := db.Create(&gk).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed guru-kelas: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed relasi guru-kelas")
}
