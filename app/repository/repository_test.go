package repository

import (
	"fmt"
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB membuka database sqlite in-memory terpisah per test
// (nama unik supaya test paralel tidak saling menumpang).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestGuru(t *testing.T, db *gorm.DB, username string) *model.Guru {
	t.Helper()
	guru := model.Guru{
		Username: username,
		Password: "hashed",
		Nama:     "Guru " + username,
		NIP:      "nip-" + username,
		Mapel:    "Matematika",
		Role:     model.RoleGuru,
	}
	require.NoError(t, db.Create(&guru).Error)
	return &guru
}

func createTestKelas(t *testing.T, db *gorm.DB, nama string, jurusanID *uint) *model.Kelas {
	t.Helper()
	kelas := model.Kelas{
		Nama:        nama,
		Tingkat:     "XII",
		TahunAjaran: "2025/2026",
		JurusanID:   jurusanID,
	}
	require.NoError(t, db.Create(&kelas).Error)
	return &kelas
}

func createTestSiswa(t *testing.T, db *gorm.DB, nis, nama string, kelasID uint) *model.Siswa {
	t.Helper()
	siswa := model.Siswa{NIS: nis, Nama: nama, KelasID: kelasID}
	require.NoError(t, db.Create(&siswa).Error)
	return &siswa
}

func createTestJurnal(t *testing.T, db *gorm.DB, guruID, kelasID uint, tanggal time.Time) *model.Jurnal {
	t.Helper()
	jurnal := model.Jurnal{
		Tanggal:       tanggal,
		JamMulai:      "07:00:00",
		JamSelesai:    "08:30:00",
		MataPelajaran: "Matematika",
		Materi:        "Aljabar linear",
		GuruID:        guruID,
		KelasID:       kelasID,
	}
	require.NoError(t, db.Create(&jurnal).Error)
	return &jurnal
}
