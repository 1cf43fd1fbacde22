package service

import (
	"testing"
	"time"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newMasterService(db *gorm.DB) MasterService {
	return NewMasterService(
		repository.NewJurusanRepository(db),
		repository.NewGuruRepository(db),
		repository.NewSiswaRepository(db),
		repository.NewKelasRepository(db),
		repository.NewGuruKelasRepository(db),
	)
}

func assertKind(t *testing.T, err error, kind utils.Kind) {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
}

func TestCreateGuruHashPasswordDanCekDuplikat(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	guru, err := svc.CreateGuru(GuruInput{
		Username: "sari",
		Password: "rahasia123",
		Nama:     "Sari Dewi",
		NIP:      "198001012005012001",
		Mapel:    "Matematika",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuru, guru.Role, "role default guru")
	assert.NotEqual(t, "rahasia123", guru.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guru.Password), []byte("rahasia123")))

	// Username sama -> Conflict.
	_, err = svc.CreateGuru(GuruInput{
		Username: "sari",
		Password: "lainnya1",
		Nama:     "Sari Kedua",
		NIP:      "nip-lain",
		Mapel:    "Fisika",
	})
	assertKind(t, err, utils.KindConflict)

	// NIP sama -> Conflict juga.
	_, err = svc.CreateGuru(GuruInput{
		Username: "sari2",
		Password: "lainnya1",
		Nama:     "Sari Kedua",
		NIP:      "198001012005012001",
		Mapel:    "Fisika",
	})
	assertKind(t, err, utils.KindConflict)
}

func TestUpdateGuruPasswordKosongDipertahankan(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	guru, err := svc.CreateGuru(GuruInput{
		Username: "budi",
		Password: "password1",
		Nama:     "Budi",
		NIP:      "nip-budi",
		Mapel:    "Kimia",
	})
	require.NoError(t, err)
	hashLama := guru.Password

	updated, err := svc.UpdateGuru(guru.ID, GuruUpdateInput{
		Username: "budi",
		Nama:     "Budi Santoso",
		NIP:      "nip-budi",
		Mapel:    "Kimia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", updated.Nama)
	assert.Equal(t, hashLama, updated.Password)
}

func TestDeleteGuruDitolakKalauMasihPunyaJurnal(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	siswa := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, time.Now(), "Matematika", map[uint]string{siswa.ID: model.StatusHadir})

	err := svc.DeleteGuru(guru.ID)
	assertKind(t, err, utils.KindConflict)

	// Guru tanpa jurnal boleh dihapus.
	lain := seedGuru(t, db, "budi", model.RoleGuru)
	require.NoError(t, svc.DeleteGuru(lain.ID))
}

func TestDeleteSiswaDitolakKalauMasihPunyaAbsensi(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)
	siswa := seedSiswa(t, db, "2021001", "Ahmad", kelas.ID)
	seedJurnalAbsensi(t, db, guru.ID, kelas.ID, time.Now(), "Matematika", map[uint]string{siswa.ID: model.StatusHadir})

	err := svc.DeleteSiswa(siswa.ID)
	assertKind(t, err, utils.KindConflict)

	bersih := seedSiswa(t, db, "2021002", "Budi", kelas.ID)
	require.NoError(t, svc.DeleteSiswa(bersih.ID))
}

func TestDeleteKelasDitolakKalauMasihDipakai(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)

	// Kelas dengan siswa.
	kelasSiswa := seedKelas(t, db, "X A", nil)
	seedSiswa(t, db, "2023001", "Eka", kelasSiswa.ID)
	assertKind(t, svc.DeleteKelas(kelasSiswa.ID), utils.KindConflict)

	// Kelas tanpa siswa tapi punya jurnal.
	kelasJurnal := seedKelas(t, db, "X B", nil)
	seedJurnalAbsensi(t, db, guru.ID, kelasJurnal.ID, time.Now(), "Matematika", nil)
	assertKind(t, svc.DeleteKelas(kelasJurnal.ID), utils.KindConflict)

	// Kelas kosong boleh dihapus.
	kosong := seedKelas(t, db, "X C", nil)
	require.NoError(t, svc.DeleteKelas(kosong.ID))
}

func TestDeleteJurusanMelepasKelas(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	jurusan, err := svc.CreateJurusan(JurusanInput{Nama: "TJKT"})
	require.NoError(t, err)

	kelas := seedKelas(t, db, "XII TJKT A", &jurusan.ID)

	require.NoError(t, svc.DeleteJurusan(jurusan.ID))

	var tersisa model.Kelas
	require.NoError(t, db.First(&tersisa, kelas.ID).Error)
	assert.Nil(t, tersisa.JurusanID, "kelas dilepas, tidak dihapus")
}

func TestCreateSiswaKelasHarusAda(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	_, err := svc.CreateSiswa(SiswaInput{NIS: "2021001", Nama: "Ahmad", KelasID: 999})
	assertKind(t, err, utils.KindNotFound)
}

func TestCreateGuruKelasPasanganUnik(t *testing.T) {
	db := setupTestDB(t)
	svc := newMasterService(db)

	guru := seedGuru(t, db, "sari", model.RoleGuru)
	kelas := seedKelas(t, db, "XII TJKT A", nil)

	_, err := svc.CreateGuruKelas(GuruKelasInput{GuruID: guru.ID, KelasID: kelas.ID})
	require.NoError(t, err)

	_, err = svc.CreateGuruKelas(GuruKelasInput{GuruID: guru.ID, KelasID: kelas.ID})
	assertKind(t, err, utils.KindConflict)
}
