package repository

import (
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestOrangTua(t *testing.T, db *gorm.DB, username string) *model.OrangTua {
	t.Helper()
	ortu := model.OrangTua{
		Username: username,
		Password: "hashed",
		Nama:     "Ortu " + username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(&ortu).Error)
	return &ortu
}

func TestFindAnakLewatJoinTable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrangTuaRepository(db)

	kelas := createTestKelas(t, db, "XII TJKT A", nil)
	anak := createTestSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	bukanAnak := createTestSiswa(t, db, "2021002", "Budi", kelas.ID)

	ortu := createTestOrangTua(t, db, "ortu_ahmad")
	require.NoError(t, db.Create(&model.SiswaOrangTua{SiswaID: anak.ID, OrangTuaID: ortu.ID}).Error)

	hasil, err := repo.FindAnak(ortu.ID)
	require.NoError(t, err)
	require.Len(t, hasil, 1)
	assert.Equal(t, anak.ID, hasil[0].ID)
	require.NotNil(t, hasil[0].Kelas)
	assert.Equal(t, kelas.Nama, hasil[0].Kelas.Nama)

	ok, err := repo.IsWaliDari(ortu.ID, anak.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsWaliDari(ortu.ID, bukanAnak.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindAbsensiInWindowMengikutiTanggalJurnal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrangTuaRepository(db)

	guru := createTestGuru(t, db, "sari")
	kelas := createTestKelas(t, db, "XII TJKT A", nil)
	siswa := createTestSiswa(t, db, "2021001", "Ahmad", kelas.ID)

	dalam := createTestJurnal(t, db, guru.ID, kelas.ID, time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local))
	luar := createTestJurnal(t, db, guru.ID, kelas.ID, time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local))
	require.NoError(t, db.Create(&model.Absensi{JurnalID: dalam.ID, SiswaID: siswa.ID, Status: model.StatusHadir}).Error)
	require.NoError(t, db.Create(&model.Absensi{JurnalID: luar.ID, SiswaID: siswa.ID, Status: model.StatusIzin}).Error)

	start, end := MonthWindow(3, 2026)
	hasil, err := repo.FindAbsensiInWindow(siswa.ID, start, end)
	require.NoError(t, err)
	require.Len(t, hasil, 1)
	assert.Equal(t, model.StatusHadir, hasil[0].Status)
}
