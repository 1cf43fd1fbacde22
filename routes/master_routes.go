package routes

import (
	"net/http"

	"absensi-sekolah-backend/app/service"
	"absensi-sekolah-backend/middleware"
	"absensi-sekolah-backend/utils"

	"github.com/gin-gonic/gin"
)

// MasterHandler adalah struct pengelola request CRUD data master oleh admin:
// jurusan, guru, siswa, kelas, dan penugasan guru-kelas.
type MasterHandler struct {
	masterService service.MasterService
}

// NewMasterHandler adalah constructor untuk membuat instance handler baru.
func NewMasterHandler(masterService service.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// SetupMasterRoutes mengatur routing data master. Wajib JWT + role admin.
func (h *MasterHandler) SetupMasterRoutes(r *gin.Engine) {
	masterGroup := r.Group("/api/admin/master")
	masterGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		masterGroup.GET("/jurusan", h.ListJurusan)
		masterGroup.POST("/jurusan", h.CreateJurusan)
		masterGroup.PUT("/jurusan/:id", h.UpdateJurusan)
		masterGroup.DELETE("/jurusan/:id", h.DeleteJurusan)

		masterGroup.GET("/guru", h.ListGuru)
		masterGroup.POST("/guru", h.CreateGuru)
		masterGroup.PUT("/guru/:id", h.UpdateGuru)
		masterGroup.DELETE("/guru/:id", h.DeleteGuru)

		masterGroup.GET("/siswa", h.ListSiswa)
		masterGroup.POST("/siswa", h.CreateSiswa)
		masterGroup.PUT("/siswa/:id", h.UpdateSiswa)
		masterGroup.DELETE("/siswa/:id", h.DeleteSiswa)

		masterGroup.GET("/kelas", h.ListKelas)
		masterGroup.POST("/kelas", h.CreateKelas)
		masterGroup.PUT("/kelas/:id", h.UpdateKelas)
		masterGroup.DELETE("/kelas/:id", h.DeleteKelas)

		masterGroup.GET("/guru-kelas", h.ListGuruKelas)
		masterGroup.POST("/guru-kelas", h.CreateGuruKelas)
		masterGroup.PUT("/guru-kelas/:id", h.UpdateGuruKelas)
		masterGroup.DELETE("/guru-kelas/:id", h.DeleteGuruKelas)
	}
}

// ---------- Jurusan ----------

func (h *MasterHandler) ListJurusan(ctx *gin.Context) {
	jurusans, err := h.masterService.ListJurusan()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data jurusan berhasil diambil", jurusans))
}

func (h *MasterHandler) CreateJurusan(ctx *gin.Context) {
	var input service.JurusanInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input jurusan tidak valid", err.Error(), nil))
		return
	}

	jurusan, err := h.masterService.CreateJurusan(input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Jurusan berhasil dibuat", jurusan))
}

func (h *MasterHandler) UpdateJurusan(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID jurusan tidak valid", "invalid_id", nil))
		return
	}

	var input service.JurusanInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input jurusan tidak valid", err.Error(), nil))
		return
	}

	jurusan, err := h.masterService.UpdateJurusan(id, input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Jurusan berhasil diperbarui", jurusan))
}

func (h *MasterHandler) DeleteJurusan(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID jurusan tidak valid", "invalid_id", nil))
		return
	}

	if err := h.masterService.DeleteJurusan(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Jurusan berhasil dihapus", nil))
}

// ---------- Guru ----------

func (h *MasterHandler) ListGuru(ctx *gin.Context) {
	gurus, err := h.masterService.ListGuru()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data guru berhasil diambil", gurus))
}

func (h *MasterHandler) CreateGuru(ctx *gin.Context) {
	var input service.GuruInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input guru tidak valid", err.Error(), nil))
		return
	}

	guru, err := h.masterService.CreateGuru(input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Guru berhasil dibuat", guru))
}

func (h *MasterHandler) UpdateGuru(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID guru tidak valid", "invalid_id", nil))
		return
	}

	var input service.GuruUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input guru tidak valid", err.Error(), nil))
		return
	}

	guru, err := h.masterService.UpdateGuru(id, input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Guru berhasil diperbarui", guru))
}

func (h *MasterHandler) DeleteGuru(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID guru tidak valid", "invalid_id", nil))
		return
	}

	if err := h.masterService.DeleteGuru(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Guru berhasil dihapus", nil))
}

// ---------- Siswa ----------

func (h *MasterHandler) ListSiswa(ctx *gin.Context) {
	siswaList, err := h.masterService.ListSiswa()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data siswa berhasil diambil", siswaList))
}

func (h *MasterHandler) CreateSiswa(ctx *gin.Context) {
	var input service.SiswaInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input siswa tidak valid", err.Error(), nil))
		return
	}

	siswa, err := h.masterService.CreateSiswa(input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Siswa berhasil dibuat", siswa))
}

func (h *MasterHandler) UpdateSiswa(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID siswa tidak valid", "invalid_id", nil))
		return
	}

	var input service.SiswaInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input siswa tidak valid", err.Error(), nil))
		return
	}

	siswa, err := h.masterService.UpdateSiswa(id, input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Siswa berhasil diperbarui", siswa))
}

func (h *MasterHandler) DeleteSiswa(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID siswa tidak valid", "invalid_id", nil))
		return
	}

	if err := h.masterService.DeleteSiswa(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Siswa berhasil dihapus", nil))
}

// ---------- Kelas ----------

func (h *MasterHandler) ListKelas(ctx *gin.Context) {
	kelasList, err := h.masterService.ListKelas()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data kelas berhasil diambil", kelasList))
}

func (h *MasterHandler) CreateKelas(ctx *gin.Context) {
	var input service.KelasInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input kelas tidak valid", err.Error(), nil))
		return
	}

	kelas, err := h.masterService.CreateKelas(input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Kelas berhasil dibuat", kelas))
}

func (h *MasterHandler) UpdateKelas(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID kelas tidak valid", "invalid_id", nil))
		return
	}

	var input service.KelasInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input kelas tidak valid", err.Error(), nil))
		return
	}

	kelas, err := h.masterService.UpdateKelas(id, input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Kelas berhasil diperbarui", kelas))
}

func (h *MasterHandler) DeleteKelas(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID kelas tidak valid", "invalid_id", nil))
		return
	}

	if err := h.masterService.DeleteKelas(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Kelas berhasil dihapus", nil))
}

// ---------- GuruKelas ----------

func (h *MasterHandler) ListGuruKelas(ctx *gin.Context) {
	list, err := h.masterService.ListGuruKelas()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data guru-kelas berhasil diambil", list))
}

func (h *MasterHandler) CreateGuruKelas(ctx *gin.Context) {
	var input service.GuruKelasInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input guru-kelas tidak valid", err.Error(), nil))
		return
	}

	gk, err := h.masterService.CreateGuruKelas(input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Guru-kelas berhasil dibuat", gk))
}

func (h *MasterHandler) UpdateGuruKelas(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID guru-kelas tidak valid", "invalid_id", nil))
		return
	}

	var input service.GuruKelasInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input guru-kelas tidak valid", err.Error(), nil))
		return
	}

	gk, err := h.masterService.UpdateGuruKelas(id, input)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Guru-kelas berhasil diperbarui", gk))
}

func (h *MasterHandler) DeleteGuruKelas(ctx *gin.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("ID guru-kelas tidak valid", "invalid_id", nil))
		return
	}

	if err := h.masterService.DeleteGuruKelas(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Guru-kelas berhasil dihapus", nil))
}
