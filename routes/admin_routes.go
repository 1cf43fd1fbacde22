package routes

import (
	"net/http"
	"time"

	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/app/service"
	"absensi-sekolah-backend/middleware"
	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler adalah struct pengelola request monitoring admin:
// dashboard hari ini, daftar jurnal terfilter, dan export.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler adalah constructor untuk membuat instance handler baru.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// SetupAdminRoutes mengatur routing monitoring admin. Wajib JWT + role admin.
func (h *AdminHandler) SetupAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		adminGroup.GET("/dashboard", h.GetDashboard)
		adminGroup.GET("/jurnal", h.GetJurnal)
		adminGroup.GET("/export", h.Export)
	}
}

// GetDashboard mengembalikan ringkasan absensi hari ini.
func (h *AdminHandler) GetDashboard(ctx *gin.Context) {
	data, err := h.adminService.Dashboard()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data dashboard berhasil diambil", data))
}

// GetJurnal mengembalikan daftar jurnal sesuai filter
// (?tanggal=&kelas_id=&guru_id=, semua opsional).
func (h *AdminHandler) GetJurnal(ctx *gin.Context) {
	tanggal, err := queryDate(ctx, "tanggal")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format tanggal tidak valid (YYYY-MM-DD)", err.Error(), nil))
		return
	}

	filter := repository.JurnalFilter{
		Tanggal: tanggal,
		KelasID: queryUint(ctx, "kelas_id"),
		GuruID:  queryUint(ctx, "guru_id"),
	}

	jurnalList, err := h.adminService.JurnalByFilter(filter)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data jurnal berhasil diambil", jurnalList))
}

// Export mengembalikan baris datar absensi dalam rentang tanggal
// (?start_date=&end_date=, default 30 hari terakhir). Frontend yang
// mengubahnya menjadi file unduhan.
func (h *AdminHandler) Export(ctx *gin.Context) {
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

	now := time.Now()
	if selesai == nil {
		selesai = &now
	}
	if mulai == nil {
		awal := selesai.AddDate(0, 0, -30)
		mulai = &awal
	}

	rows, err := h.adminService.Export(*mulai, *selesai)
	if err != nil {
		failJSON(ctx, err)
		return
	}

	data := map[string]interface{}{
		"start_date": mulai.Format(tanggalLayout),
		"end_date":   selesai.Format(tanggalLayout),
		"total_rows": len(rows),
		"rows":       rows,
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data export berhasil diambil", data))
}
