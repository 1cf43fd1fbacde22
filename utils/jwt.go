package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/*
 JWTCustomClaims

 Token menyimpan identitas pemanggil yang sudah terverifikasi:
 - ID   : id guru (tabel guru) atau id orang tua (tabel orang_tua)
 - Role : "guru", "admin", atau "orang_tua"
 - Nama : nama tampilan, dipakai di payload notifikasi realtime

 Core service hanya menerima identitas dari klaim ini, tidak pernah
 kredensial mentah.
*/
type JWTCustomClaims struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
	Nama string `json:"nama"`
	jwt.RegisteredClaims
}

// getJWTSecret membaca JWT_SECRET dari environment setiap kali dipanggil.
// Ini menghindari masalah ketika .env baru di-load setelah package di-import.
func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return []byte(secret), nil
}

// GenerateToken membuat JWT access token berisi id, role, dan nama.
// Masa berlaku 24 jam, mengikuti perilaku sistem lama.
func GenerateToken(id uint, role string, nama string) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := JWTCustomClaims{
		ID:   id,
		Role: role,
		Nama: nama,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken mem-validasi JWT dan mengembalikan *JWTCustomClaims jika valid.
// - Mengecek signing method (HMAC).
// - Menggunakan JWT_SECRET dari environment.
// - Mengecek expiration dan validitas klaim.
func ValidateToken(tokenString string) (*JWTCustomClaims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTCustomClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
