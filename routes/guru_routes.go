package routes

import (
	"net/http"

	"absensi-sekolah-backend/app/service"
	"absensi-sekolah-backend/middleware"
	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// GuruHandler adalah struct pengelola request untuk fitur guru:
// daftar kelas, roster siswa, submit absen, riwayat, dan settings profil.
type GuruHandler struct {
	absenService service.AbsenService
}

// NewGuruHandler adalah constructor untuk membuat instance handler baru.
func NewGuruHandler(absenService service.AbsenService) *GuruHandler {
	return &GuruHandler{absenService: absenService}
}

// SetupGuruRoutes mengatur routing fitur guru. Semua endpoint wajib JWT.
func (h *GuruHandler) SetupGuruRoutes(r *gin.Engine) {
	guruGroup := r.Group("/api/guru")
	guruGroup.Use(middleware.AuthMiddleware())
	{
		guruGroup.GET("/kelas", h.GetKelas)
		guruGroup.GET("/kelas/:id/siswa", h.GetSiswaByKelas)
		guruGroup.GET("/settings", h.GetSettings)
		guruGroup.POST("/absen", h.SubmitAbsen)
		guruGroup.GET("/riwayat", h.GetRiwayat)
	}
}

// GetKelas mengembalikan daftar kelas beserta mapel efektif guru yang login.
func (h *GuruHandler) GetKelas(ctx *gin.Context) {
	guruID := ctx.GetUint("userID")

	kelasList, err := h.absenService.KelasForGuru(guruID)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data kelas berhasil diambil", kelasList))
}

// GetSiswaByKelas mengembalikan roster siswa untuk form absen.
func (h *GuruHandler) GetSiswaByKelas(ctx *gin.Context) {
	kelasID, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID kelas tidak valid", "invalid_id", nil))
		return
	}

	siswaList, err := h.absenService.SiswaByKelas(kelasID)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data siswa berhasil diambil", siswaList))
}

// GetSettings mengembalikan profil singkat guru yang login.
func (h *GuruHandler) GetSettings(ctx *gin.Context) {
	guruID := ctx.GetUint("userID")

	guru, err := h.absenService.Settings(guruID)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data settings berhasil diambil", guru))
}

// SubmitAbsen menerima satu sesi jurnal + roster absensi lengkap.
// Penyimpanannya atomik: semua tersimpan atau tidak ada sama sekali.
func (h *GuruHandler) SubmitAbsen(ctx *gin.Context) {
	var input service.SubmitAbsenInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Data tidak lengkap: kelas_id dan siswa_list wajib ada", err.Error(), nil))
		return
	}

	guruID := ctx.GetUint("userID")
	guruNama := ctx.GetString("nama")

	jurnalID, err := h.absenService.SubmitAbsen(guruID, guruNama, input)
	if err != nil {
		failJSON(ctx, err)
		return
	}

	data := map[string]interface{}{
		"jurnal_id":   jurnalID,
		"total_siswa": len(input.SiswaList),
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Absen berhasil disubmit", data))
}

// GetRiwayat mengembalikan jurnal terakhir milik guru yang login.
func (h *GuruHandler) GetRiwayat(ctx *gin.Context) {
	guruID := ctx.GetUint("userID")

	riwayat, err := h.absenService.RiwayatGuru(guruID)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Riwayat absen berhasil diambil", riwayat))
}
