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

// RekapHandler adalah struct pengelola request laporan rekap absensi.
type RekapHandler struct {
	rekapService service.RekapService
}

// NewRekapHandler adalah constructor untuk membuat instance handler baru.
func NewRekapHandler(rekapService service.RekapService) *RekapHandler {
	return &RekapHandler{rekapService: rekapService}
}

// SetupRekapRoutes mengatur routing laporan rekap. Wajib JWT + role admin.
func (h *RekapHandler) SetupRekapRoutes(r *gin.Engine) {
	rekapGroup := r.Group("/api/rekap")
	rekapGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		rekapGroup.GET("/harian", h.GetRekapHarian)
		rekapGroup.GET("/bulanan", h.GetRekapBulanan)
		rekapGroup.GET("/filter-options", h.GetFilterOptions)
	}
}

// GetRekapHarian mengembalikan rekap absensi satu hari
// (?tanggal=&kelas_id=&jurusan_id=, tanggal default hari ini).
func (h *RekapHandler) GetRekapHarian(ctx *gin.Context) {
	tanggal, err := queryDate(ctx, "tanggal")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format tanggal tidak valid (YYYY-MM-DD)", err.Error(), nil))
		return
	}
	if tanggal == nil {
		now := time.Now()
		tanggal = &now
	}

	report, err := h.rekapService.RekapHarian(*tanggal, queryUint(ctx, "kelas_id"), queryUint(ctx, "jurusan_id"))
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Rekap harian berhasil diambil", report))
}

// GetRekapBulanan mengembalikan rekap absensi satu bulan
// (?bulan=&tahun=&kelas_id=&jurusan_id=, default bulan berjalan).
func (h *RekapHandler) GetRekapBulanan(ctx *gin.Context) {
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

	report, err := h.rekapService.RekapBulanan(bulan, tahun, queryUint(ctx, "kelas_id"), queryUint(ctx, "jurusan_id"))
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Rekap bulanan berhasil diambil", report))
}

// GetFilterOptions mengembalikan daftar kelas dan jurusan untuk dropdown filter.
func (h *RekapHandler) GetFilterOptions(ctx *gin.Context) {
	options, err := h.rekapService.FilterOptions()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Filter options berhasil diambil", options))
}
