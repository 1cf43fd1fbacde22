package service

import (
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrangTuaDenganAnak(t *testing.T, db *gorm.DB, username string, anakIDs ...uint) *model.OrangTua {
	t.Helper()
	ortu := model.OrangTua{
		Username: username,
		Password: "hashed",
		Nama:     "Ortu " + username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(&ortu).Error)
	for _, siswaID := range anakIDs {
		require.NoError(t, db.Create(&model.SiswaOrangTua{SiswaID: siswaID, OrangTuaID: ortu.ID}).Error)
	}
	return &ortu
}

func TestRiwayatAnakHanyaUntukWalinya(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrangTuaService(repository.NewOrangTuaRepository(db))

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	anak := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	anakLain := seedSiswa(t, db, "2021002", "Budi", kelas.ID)

	ortu := seedOrangTuaDenganAnak(t, db, "ortu_ahmad", anak.ID)
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, time.Now(), "Matematika", map[uint]string{
		anak.ID:     model.StatusHadir,
		anakLain.ID: model.StatusIzin,
	})

	riwayat, err := svc.RiwayatAnak(ortu.ID, anak.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, riwayat, 1)
	assert.Equal(t, model.StatusHadir, riwayat[0].Status)
	assert.Equal(t, "Matematika", riwayat[0].MataPelajaran)
	assert.Equal(t, kelas.Nama, riwayat[0].Kelas)

	// Anak orang lain -> forbidden, bukan sekadar daftar kosong.
	_, err = svc.RiwayatAnak(ortu.ID, anakLain.ID, nil, nil)
	assertKind(t, err, utils.KindForbidden)
}

func TestStatistikAnakMenghitungPerRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrangTuaService(repository.NewOrangTuaRepository(db))

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	anak := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	ortu := seedOrangTuaDenganAnak(t, db, "ortu_ahmad", anak.ID)

	maret := func(day int) time.Time { return time.Date(2026, 3, day, 8, 0, 0, 0, time.Local) }
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(3), "Matematika", map[uint]string{anak.ID: model.StatusHadir})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(3), "Fisika", map[uint]string{anak.ID: model.StatusHadir})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(5), "Kimia", map[uint]string{anak.ID: model.StatusIzin})
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, maret(9), "Biologi", map[uint]string{anak.ID: model.StatusTanpaKet})
	// Di luar bulan: diabaikan.
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local), "Sejarah", map[uint]string{anak.ID: model.StatusHadir})

	stat, err := svc.StatistikAnak(ortu.ID, anak.ID, 3, 2026)
	require.NoError(t, err)

	// Statistik ini per-record (beda dengan rekap bulanan yang per-hari).
	assert.Equal(t, 2, stat.Hadir)
	assert.Equal(t, 1, stat.Izin)
	assert.Equal(t, 1, stat.TanpaKet)
	assert.Equal(t, 4, stat.Total)
}

func TestAnakKosongKalauBelumTerhubung(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrangTuaService(repository.NewOrangTuaRepository(db))

	ortu := seedOrangTuaDenganAnak(t, db, "ortu_baru")

	anak, err := svc.Anak(ortu.ID)
	require.NoError(t, err)
	assert.Empty(t, anak)
}
