package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/api"
	"github.com/bgpaten/ahyarpattani/auth"
	"github.com/bgpaten/ahyarpattani/config"
	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/logger"
	"github.com/bgpaten/ahyarpattani/services"
	"github.com/bgpaten/ahyarpattani/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	env := config.New()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := config.ResolveSecrets(ctx, env); err != nil {
		fmt.Printf("Error resolving secrets: %v\n", err)
		os.Exit(1)
	}

	settings, err := config.Load(env)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(settings.Env, settings.LogLevel)

	db, err := database.Open(settings.Database)
	if err != nil {
		log.Fatal().Err(err).Str("dbType", settings.Database.Type).Msg("Error connecting to database")
	}
	currentDB := database.New(db)

	if settings.Database.AutoMigrate {
		if err := currentDB.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
		log.Info().Msg("Database migrated")
	}

	deps := api.Dependencies{Database: currentDB}

	switch settings.Storage.Driver {
	case "local":
		store, err := storage.NewLocalStore(settings.Storage.LocalDir, settings.Storage.PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Error preparing local storage")
		}
		deps.LocalStore = store
		deps.Uploader = storage.NewUploader(store, settings.Storage.MaxUploadBytes)
	default:
		store, err := storage.NewS3Store(ctx, settings.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("Error configuring object storage")
		}
		deps.Uploader = storage.NewUploader(store, settings.Storage.MaxUploadBytes)
	}

	switch settings.Auth.Provider {
	case "descope":
		verifier, err := auth.NewDescopeVerifier(settings.Auth.DescopeProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Error configuring Descope")
		}
		deps.Verifier = verifier
	default:
		issuer, err := auth.NewTokenIssuer(settings.Auth.JWTSecret, settings.Auth.JWTIssuer, settings.Auth.TokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Error configuring token issuer")
		}
		deps.Verifier = issuer
		deps.Issuer = issuer
	}

	deps.Notifier = newNotifier(settings.Notify)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(settings.Server, settings.Contact, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(settings.Server.ShutdownTimeout)
}

// newNotifier wires the contact notification channels that are configured.
func newNotifier(n config.NotifySettings) services.Notifier {
	notifier := services.NewContactNotifier()
	if n.EmailEnabled() {
		notifier.WithEmail(services.NewEmailSender(n.ResendAPIKey, n.ResendFromEmail), n.OwnerEmail)
	}
	if n.SMSEnabled() {
		notifier.WithSMS(services.NewSMSSender(n.TwilioAccountSID, n.TwilioAuthToken, n.TwilioFromNumber), n.OwnerPhone)
	}
	log.Info().Strs("channels", notifier.Channels()).Msg("Contact notifications configured")
	return notifier
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
