package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "dealerdesk-backend/internal/adapter/http"
	appmw "dealerdesk-backend/internal/adapter/middleware"
	"dealerdesk-backend/internal/adapter/repository/mysql"
	"dealerdesk-backend/internal/config"
	bankdom "dealerdesk-backend/internal/domain/bank"
	clientdom "dealerdesk-backend/internal/domain/client"
	"dealerdesk-backend/internal/domain/pricing"
	proposaldom "dealerdesk-backend/internal/domain/proposal"
	reservationdom "dealerdesk-backend/internal/domain/reservation"
	simulationdom "dealerdesk-backend/internal/domain/simulation"
	vehicledom "dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/internal/infrastructure/cache"
	"dealerdesk-backend/internal/infrastructure/db"
	bankuc "dealerdesk-backend/internal/usecase/bank"
	clientuc "dealerdesk-backend/internal/usecase/client"
	proposaluc "dealerdesk-backend/internal/usecase/proposal"
	reservationuc "dealerdesk-backend/internal/usecase/reservation"
	simulationuc "dealerdesk-backend/internal/usecase/simulation"
	vehicleuc "dealerdesk-backend/internal/usecase/vehicle"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&vehicledom.Vehicle{}, &vehicledom.Photo{},
		&bankdom.Bank{},
		&clientdom.Client{},
		&simulationdom.Simulation{},
		&proposaldom.Proposal{},
		&reservationdom.Reservation{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}

	// repositories and transactional boundary
	vehicles := mysql.NewVehicleRepository(gdb)
	banks := mysql.NewBankRepository(gdb)
	clients := mysql.NewClientRepository(gdb)
	proposals := mysql.NewProposalRepository(gdb)
	reservations := mysql.NewReservationRepository(gdb)
	simulations := mysql.NewSimulationRepository(gdb)
	unitOfWork := mysql.NewGormUoW(gdb)

	pricer := pricing.NewPricer(cfg.DirectTermCapMonths)

	// usecases
	vehicleUC := vehicleuc.NewUsecase(vehicles)
	bankUC := bankuc.NewUsecase(banks)
	clientUC := clientuc.NewUsecase(clients)
	simulationUC := simulationuc.NewUsecase(vehicles, banks, simulations, pricer, log)
	proposalUC := proposaluc.NewUsecase(proposals, vehicles, banks, clients, simulations, unitOfWork, pricer, log)
	reservationUC := reservationuc.NewUsecase(reservations, unitOfWork)

	// handlers
	base := httpadp.NewHandler()
	vehicleH := httpadp.NewVehicleHandler(vehicleUC)
	bankH := httpadp.NewBankHandler(bankUC)
	clientH := httpadp.NewClientHandler(clientUC)
	simulationH := httpadp.NewSimulationHandler(simulationUC)
	proposalH := httpadp.NewProposalHandler(proposalUC)
	reservationH := httpadp.NewReservationHandler(reservationUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	e.GET("/health", base.Health)

	e.POST("/vehicles", vehicleH.Create)
	e.GET("/vehicles", vehicleH.List)
	e.GET("/vehicles/:vehicle_id", vehicleH.Get)
	e.PATCH("/vehicles/:vehicle_id", vehicleH.Update)
	e.PUT("/vehicles/:vehicle_id/photos", vehicleH.SetPhotos)

	e.POST("/banks", bankH.Create)
	e.GET("/banks", bankH.List)
	e.GET("/banks/:bank_id", bankH.Get)
	e.PATCH("/banks/:bank_id", bankH.Update)

	e.POST("/clients", clientH.Create)
	e.GET("/clients", clientH.List)
	e.GET("/clients/:client_id", clientH.Get)
	e.PATCH("/clients/:client_id", clientH.Update)

	e.POST("/simulations/quote", simulationH.Quote)
	e.POST("/simulations", simulationH.Save, idemp)
	e.GET("/simulations", simulationH.List)
	e.GET("/simulations/:simulation_id", simulationH.Get)

	e.POST("/proposals", proposalH.Create, idemp)
	e.POST("/proposals/from-simulation", proposalH.CreateFromSimulation, idemp)
	e.GET("/proposals", proposalH.List)
	e.GET("/proposals/:proposal_id", proposalH.Get)
	e.POST("/proposals/:proposal_id/send", proposalH.Send, idemp)
	e.POST("/proposals/:proposal_id/approve", proposalH.Approve, idemp)
	e.POST("/proposals/:proposal_id/reject", proposalH.Reject, idemp)
	e.POST("/proposals/:proposal_id/cancel", proposalH.Cancel, idemp)
	e.POST("/proposals/:proposal_id/finalize", proposalH.FinalizeSale, idemp)
	e.PUT("/proposals/:proposal_id/signature", proposalH.AttachSignature, idemp)

	e.POST("/reservations", reservationH.Create, idemp)
	e.GET("/reservations", reservationH.List)
	e.GET("/reservations/:reservation_id", reservationH.Get)
	e.POST("/reservations/:reservation_id/convert", reservationH.Convert, idemp)
	e.POST("/reservations/:reservation_id/cancel", reservationH.Cancel, idemp)
	e.DELETE("/reservations/:reservation_id", reservationH.Delete, idemp)

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
