package repository

import (
	"testing"

	"absensi-sekolah-backend/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hapus jurusan harus melepas kelas di bawahnya (jurusan_id jadi NULL),
// bukan ikut menghapus kelasnya.
func TestDeleteWithNullifyKelas(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJurusanRepository(db)

	jurusan := model.Jurusan{Nama: "Teknik Jaringan Komputer dan Telekomunikasi"}
	require.NoError(t, repo.Create(&jurusan))

	kelasA := createTestKelas(t, db, "XII TJKT A", &jurusan.ID)
	kelasB := createTestKelas(t, db, "XII TJKT B", &jurusan.ID)
	kelasLain := createTestKelas(t, db, "XII PPLG A", nil)

	require.NoError(t, repo.DeleteWithNullifyKelas(jurusan.ID))

	_, err := repo.FindByID(jurusan.ID)
	assert.Error(t, err, "jurusan harus benar-benar terhapus")

	var kelasCount int64
	db.Model(&model.Kelas{}).Count(&kelasCount)
	assert.Equal(t, int64(3), kelasCount, "tidak ada kelas yang ikut terhapus")

	for _, id := range []uint{kelasA.ID, kelasB.ID} {
		var kelas model.Kelas
		require.NoError(t, db.First(&kelas, id).Error)
		assert.Nil(t, kelas.JurusanID)
	}

	var utuh model.Kelas
	require.NoError(t, db.First(&utuh, kelasLain.ID).Error)
	assert.Nil(t, utuh.JurusanID)
}

func TestExistsByNamaDenganPengecualian(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJurusanRepository(db)

	jurusan := model.Jurusan{Nama: "PPLG"}
	require.NoError(t, repo.Create(&jurusan))

	exists, err := repo.ExistsByNama("PPLG", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// Dirinya sendiri tidak dihitung duplikat saat update.
	exists, err = repo.ExistsByNama("PPLG", jurusan.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
