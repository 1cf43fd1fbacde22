package service

import (
	"testing"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginGuru(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewGuruRepository(db), repository.NewOrangTuaRepository(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("guru123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	guru := model.Guru{
		Username: "sari",
		Password: string(hash),
		Nama:     "Sari Dewi",
		NIP:      "nip-sari",
		Mapel:    "Matematika",
		Role:     model.RoleGuru,
	}
	require.NoError(t, db.Create(&guru).Error)

	hasil, err := svc.LoginGuru("sari", "guru123")
	require.NoError(t, err)
	assert.Equal(t, guru.ID, hasil.ID)

	// Password salah dan user tidak ada harus menghasilkan pesan yang sama.
	_, errSalah := svc.LoginGuru("sari", "bukan-passwordnya")
	_, errHilang := svc.LoginGuru("tidak-ada", "guru123")
	require.Error(t, errSalah)
	require.Error(t, errHilang)
	assert.Equal(t, errSalah.Error(), errHilang.Error())
}

func TestLoginOrangTua(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewGuruRepository(db), repository.NewOrangTuaRepository(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("ortu123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	ortu := model.OrangTua{
		Username: "ortu_ahmad",
		Password: string(hash),
		Nama:     "Bapak Ahmad",
		Email:    "ortu@example.com",
	}
	require.NoError(t, db.Create(&ortu).Error)

	hasil, err := svc.LoginOrangTua("ortu_ahmad", "ortu123")
	require.NoError(t, err)
	assert.Equal(t, ortu.ID, hasil.ID)

	_, err = svc.LoginOrangTua("ortu_ahmad", "salah")
	assert.Error(t, err)
}
