package routes

import (
	"net/http"

	"absensi-sekolah-backend/app/service"
	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler adalah struct pengelola request untuk fitur Autentikasi.
// Struct ini menyimpan dependency ke AuthService.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler adalah constructor untuk membuat instance handler baru.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mengatur routing autentikasi.
// Guru/admin dan orang tua punya endpoint login terpisah karena tabelnya beda.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login/guru", h.LoginGuru)
		authGroup.POST("/login/orang-tua", h.LoginOrangTua)
	}
}

// loginInput adalah DTO login untuk kedua jenis user.
type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginGuru menangani login guru dan admin (tabel guru, dibedakan field role).
func (h *AuthHandler) LoginGuru(ctx *gin.Context) {
	var input loginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input login tidak valid", err.Error(), nil))
		return
	}

	guru, err := h.authService.LoginGuru(input.Username, input.Password)
	if err != nil {
		// Pesan sengaja seragam: tidak membedakan user tidak ada / password salah.
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Username atau password salah", err.Error(), nil))
		return
	}

	token, err := utils.GenerateToken(guru.ID, guru.Role, guru.Nama)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat token", err.Error(), nil))
		return
	}

	data := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       guru.ID,
			"username": guru.Username,
			"nama":     guru.Nama,
			"nip":      guru.NIP,
			"mapel":    guru.Mapel,
			"role":     guru.Role,
		},
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Login berhasil", data))
}

// LoginOrangTua menangani login orang tua (tabel orang_tua, role selalu orang_tua).
func (h *AuthHandler) LoginOrangTua(ctx *gin.Context) {
	var input loginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input login tidak valid", err.Error(), nil))
		return
	}

	ortu, err := h.authService.LoginOrangTua(input.Username, input.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Username atau password salah", err.Error(), nil))
		return
	}

	token, err := utils.GenerateToken(ortu.ID, "orang_tua", ortu.Nama)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat token", err.Error(), nil))
		return
	}

	data := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       ortu.ID,
			"username": ortu.Username,
			"nama":     ortu.Nama,
			"email":    ortu.Email,
			"role":     "orang_tua",
		},
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Login berhasil", data))
}
