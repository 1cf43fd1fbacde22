package routes

import (
	"net/http"
	"strconv"
	"time"

	"absensi-sekolah-backend/app/service"
	"absensi-sekolah-backend/middleware"
	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// OrangTuaHandler adalah struct pengelola request portal orang tua.
type OrangTuaHandler struct {
	ortuService service.OrangTuaService
}

// NewOrangTuaHandler adalah constructor untuk membuat instance handler baru.
func NewOrangTuaHandler(ortuService service.OrangTuaService) *OrangTuaHandler {
	return &OrangTuaHandler{ortuService: ortuService}
}

// SetupOrangTuaRoutes mengatur routing portal orang tua. Semua endpoint
// wajib JWT; kepemilikan anak dicek lagi di service per request.
func (h *OrangTuaHandler) SetupOrangTuaRoutes(r *gin.Engine) {
	ortuGroup := r.Group("/api/orang-tua")
	ortuGroup.Use(middleware.AuthMiddleware())
	{
		ortuGroup.GET("/anak", h.GetAnak)
		ortuGroup.GET("/anak/:id/riwayat", h.GetRiwayatAnak)
		ortuGroup.GET("/anak/:id/statistik", h.GetStatistikAnak)
	}
}

// GetAnak mengembalikan daftar siswa yang terhubung ke orang tua yang login.
func (h *OrangTuaHandler) GetAnak(ctx *gin.Context) {
	orangTuaID := ctx.GetUint("userID")

	anak, err := h.ortuService.Anak(orangTuaID)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data anak berhasil diambil", anak))
}

// GetRiwayatAnak mengembalikan riwayat absensi seorang anak,
// opsional dibatasi rentang tanggal (?start_date=&end_date=).
func (h *OrangTuaHandler) GetRiwayatAnak(ctx *gin.Context) {
	siswaID, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID siswa tidak valid", "invalid_id", nil))
		return
	}

	mulai, err := queryDate(ctx, "start_date")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format start_date tidak valid (YYYY-MM-DD)", err.Error(), nil))
		return
	}
	selesai, err := queryDate(ctx, "end_date")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format end_date tidak valid (YYYY-MM-DD)", err.Error(), nil))
		return
	}
	// end_date inklusif satu hari penuh.
	if selesai != nil {
		akhir := selesai.Add(24*time.Hour - time.Millisecond)
		selesai = &akhir
	}

	orangTuaID := ctx.GetUint("userID")
	riwayat, err := h.ortuService.RiwayatAnak(orangTuaID, siswaID, mulai, selesai)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Riwayat absensi berhasil diambil", riwayat))
}

// GetStatistikAnak mengembalikan rekap kehadiran anak untuk satu bulan
// (?bulan=&tahun=, default bulan berjalan).
func (h *OrangTuaHandler) GetStatistikAnak(ctx *gin.Context) {
	siswaID, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID siswa tidak valid", "invalid_id", nil))
		return
	}

	now := time.Now()
	bulan, err := strconv.Atoi(ctx.DefaultQuery("bulan", strconv.Itoa(int(now.Month()))))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Parameter bulan tidak valid", err.Error(), nil))
		return
	}
	tahun, err := strconv.Atoi(ctx.DefaultQuery("tahun", strconv.Itoa(now.Year())))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Parameter tahun tidak valid", err.Error(), nil))
		return
	}

	orangTuaID := ctx.GetUint("userID")
	statistik, err := h.ortuService.StatistikAnak(orangTuaID, siswaID, bulan, tahun)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Statistik absensi berhasil diambil", statistik))
}
