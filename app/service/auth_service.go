package service

import (
	"errors"

	"absensi-sekolah-backend/app/model"
	"absensi-sekolah-backend/app/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService memeriksa kredensial guru/admin dan orang tua.
// Core hanya menerima identitas yang sudah lolos dari sini; pembuatan
// token JWT dilakukan di handler.
type AuthService interface {
	LoginGuru(username, password string) (*model.Guru, error)
	LoginOrangTua(username, password string) (*model.OrangTua, error)
}

type authService struct {
	guruRepo repository.GuruRepository
	ortuRepo repository.OrangTuaRepository
}

// NewAuthService menghubungkan Service dengan Repository.
func NewAuthService(guruRepo repository.GuruRepository, ortuRepo repository.OrangTuaRepository) AuthService {
	return &authService{
		guruRepo: guruRepo,
		ortuRepo: ortuRepo,
	}
}

// LoginGuru memeriksa username + password guru/admin.
// Pesan error sengaja tidak membedakan "user tidak ada" dan "password salah".
func (s *authService) LoginGuru(username, password string) (*model.Guru, error) {
	guru, err := s.guruRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(guru.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return guru, nil
}

// LoginOrangTua memeriksa username + password orang tua.
func (s *authService) LoginOrangTua(username, password string) (*model.OrangTua, error) {
	ortu, err := s.ortuRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ortu.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return ortu, nil
}
