package main

import (
	"log"
	"net/http"
	"os"

	"absensi-sekolah-backend/app/repository"
	"absensi-sekolah-backend/app/service"
	"absensi-sekolah-backend/database"
	"absensi-sekolah-backend/realtime"
	"absensi-sekolah-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}

	// =================================================================
	// INIT DB (POSTGRES + AUTO MIGRATE)
	// =================================================================
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA AWAL (idempotent, aman dijalankan berulang)
	// =================================================================
	database.RunSeeders(db)

	// =================================================================
	// REALTIME HUB
	// =================================================================
	hub := realtime.NewHub()

	// =================================================================
	// REPOSITORIES
	// =================================================================
	guruRepo := repository.NewGuruRepository(db)
	jurusanRepo := repository.NewJurusanRepository(db)
	kelasRepo := repository.NewKelasRepository(db)
	siswaRepo := repository.NewSiswaRepository(db)
	guruKelasRepo := repository.NewGuruKelasRepository(db)
	jurnalRepo := repository.NewJurnalRepository(db)
	ortuRepo := repository.NewOrangTuaRepository(db)
	rekapRepo := repository.NewRekapRepository(db)

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(guruRepo, ortuRepo)
	absenService := service.NewAbsenService(jurnalRepo, kelasRepo, siswaRepo, guruRepo, guruKelasRepo, hub)
	rekapService := service.NewRekapService(rekapRepo, kelasRepo, jurusanRepo)
	adminService := service.NewAdminService(jurnalRepo)
	masterService := service.NewMasterService(jurusanRepo, guruRepo, siswaRepo, kelasRepo, guruKelasRepo)
	ortuService := service.NewOrangTuaService(ortuRepo)

	// =================================================================
	// HTTP SERVER + ROUTES
	// =================================================================
	r := gin.Default()

	// Endpoint root untuk health check sederhana.
	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Absensi Sekolah API berjalan",
			"status":  "ok",
		})
	})

	routes.NewAuthHandler(authService).SetupAuthRoutes(r)
	routes.NewGuruHandler(absenService).SetupGuruRoutes(r)
	routes.NewOrangTuaHandler(ortuService).SetupOrangTuaRoutes(r)
	routes.NewAdminHandler(adminService).SetupAdminRoutes(r)
	routes.NewMasterHandler(masterService).SetupMasterRoutes(r)
	routes.NewRekapHandler(rekapService).SetupRekapRoutes(r)

	// Websocket notifikasi realtime (identitas dibawa client lewat frame
	// join setelah tersambung, bukan lewat middleware, supaya handshake
	// tetap sederhana).
	r.GET("/ws", func(ctx *gin.Context) {
		hub.ServeWS(ctx.Writer, ctx.Request)
	})

	// =================================================================
	// RUN
	// =================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server berjalan di port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
