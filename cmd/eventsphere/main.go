package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"eventsphere/internal/attendees"
	"eventsphere/internal/attendees/attendee_api"
	attendee_db "eventsphere/internal/attendees/db"
	"eventsphere/internal/attendees/pass"
	"eventsphere/internal/auth"
	"eventsphere/internal/cache"
	"eventsphere/internal/config"
	"eventsphere/internal/database"
	"eventsphere/internal/database/migrations"
	"eventsphere/internal/events"
	event_db "eventsphere/internal/events/db"
	"eventsphere/internal/events/event_api"
	"eventsphere/internal/kafka"
	"eventsphere/internal/logger"
	"eventsphere/internal/organizers"
	organizer_db "eventsphere/internal/organizers/db"
	"eventsphere/internal/organizers/organizer_api"
	ticket_db "eventsphere/internal/tickets/db"
	tickets "eventsphere/internal/tickets/service"
	"eventsphere/internal/tickets/ticket_api"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	bunDB, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("failed to connect: %v", err))
	}
	defer bunDB.Close()
	log.Info("DATABASE", "Postgres connection established")

	migrateOpts := migrations.DefaultOptions()
	if migrateOpts.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrateOpts)
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("migrations failed: %v", err))
		}
	}

	var appCache cache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("CACHE", fmt.Sprintf("failed to connect to Redis at %s: %v", cfg.Redis.Addr, err))
		}
		defer redisClient.Close()
		appCache = cache.NewRedisCache(redisClient)
		log.Info("CACHE", fmt.Sprintf("Redis cache at %s", cfg.Redis.Addr))
	} else {
		appCache = cache.NewMemoryCache()
		log.Warn("CACHE", "Redis disabled, using in-process cache")
	}

	ticketService := tickets.NewTicketService(&ticket_db.DB{Bun: bunDB})
	ticketService.Logger = log
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		ticketService.Publisher = producer
		log.Info("KAFKA", fmt.Sprintf("inventory events on topic %s", cfg.Kafka.Topic))
	}

	eventService := events.NewEventService(&event_db.DB{Bun: bunDB})
	organizerService := organizers.NewOrganizerService(&organizer_db.DB{Bun: bunDB})
	attendeeService := attendees.NewAttendeeService(&attendee_db.DB{Bun: bunDB})
	passGenerator := pass.NewGenerator(os.Getenv("PASS_SECRET_KEY"))

	ticketHandler := ticket_api.NewHandler(ticketService, appCache, cfg.Cache, log)
	eventHandler := event_api.NewHandler(eventService, appCache, cfg.Cache, log)
	organizerHandler := organizer_api.NewHandler(organizerService, appCache, cfg.Cache, log)
	attendeeHandler := attendee_api.NewHandler(attendeeService, appCache, cfg.Cache, passGenerator, log)

	authenticate := auth.Middleware(cfg.Auth)
	adminOnly := auth.RequireRoles("Admin")
	adminOrOrganizer := auth.RequireRoles("Admin", "Organizer")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Route("/api/ticket", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/{id}", ticketHandler.GetTicketByID)
		r.Get("/ticketsByEvent/{eventId}", ticketHandler.GetTicketsByEvent)
		r.Get("/available/{eventId}", ticketHandler.GetAvailableTickets)
		r.With(adminOrOrganizer).Get("/revenue/{eventId}", ticketHandler.GetRevenueForEvent)
		r.With(adminOrOrganizer).Post("/", ticketHandler.AddTicket)
		r.With(adminOrOrganizer).Delete("/{id}", ticketHandler.DeleteTicket)
		r.With(adminOnly).Put("/{id}", ticketHandler.UpdateTicket)
		r.With(adminOnly).Patch("/sell/{id}/{quantity}", ticketHandler.SellTicket)
		r.With(adminOnly).Patch("/refund/{id}/{quantity}", ticketHandler.RefundTicket)
	})

	r.Route("/api/event", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", eventHandler.GetAllEvents)
		r.Get("/eventById/{id}", eventHandler.GetEventByID)
		r.Get("/eventByOrganizer/{organizerId}", eventHandler.GetEventsByOrganizer)
		r.Get("/upcoming/popularity", eventHandler.GetUpcomingEventsByPopularity)
		r.With(adminOrOrganizer).Post("/", eventHandler.AddEvent)
		r.With(adminOrOrganizer).Put("/{eventId}", eventHandler.UpdateEvent)
		r.With(adminOrOrganizer).Delete("/{id}", eventHandler.DeleteEvent)
	})

	r.Route("/api/organizer", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", organizerHandler.GetAllOrganizers)
		r.Get("/{id}", organizerHandler.GetOrganizerByID)
		r.With(adminOnly).Post("/", organizerHandler.AddOrganizer)
		r.With(adminOnly).Put("/{id}", organizerHandler.UpdateOrganizer)
		r.With(adminOnly).Delete("/{id}", organizerHandler.DeleteOrganizer)
	})

	r.Route("/api/attendee", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", attendeeHandler.GetAllAttendees)
		r.Get("/{id}", attendeeHandler.GetAttendeeByID)
		r.Get("/attendeesByEvent/{eventId}", attendeeHandler.GetAttendeesByEvent)
		r.Get("/{id}/pass/{eventId}", attendeeHandler.GetRegistrationPass)
		r.Post("/", attendeeHandler.AddAttendee)
		r.Put("/{id}", attendeeHandler.UpdateAttendee)
		r.With(adminOnly).Delete("/{id}", attendeeHandler.DeleteAttendee)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("EventSphere API on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "shutdown complete")
}
