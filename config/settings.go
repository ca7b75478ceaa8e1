package config

import (
	"fmt"
	"time"

	"github.com/bgpaten/ahyarpattani/errs"
)

// Settings is the typed view of the environment the server runs with.
type Settings struct {
	Env      string
	LogLevel string

	Server   ServerSettings
	Database DatabaseSettings
	Storage  StorageSettings
	Auth     AuthSettings
	Notify   NotifySettings
	Contact  ContactSettings
}

type ServerSettings struct {
	Port            string
	AcceptedOrigins []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseSettings struct {
	// Type is "supa" or "postgres" for a hosted database and "sqlite" for
	// local development.
	Type        string
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	ReplicaHost string
	SQLitePath  string
	AutoMigrate bool
}

type StorageSettings struct {
	// Driver is "s3" or "local".
	Driver          string
	Bucket          string
	Region          string
	Endpoint        string
	PublicBaseURL   string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	LocalDir        string
	MaxUploadBytes  int64
}

type AuthSettings struct {
	// Provider is "jwt" (local bcrypt login) or "descope".
	Provider         string
	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	DescopeProjectID string
}

type NotifySettings struct {
	ResendAPIKey     string
	ResendFromEmail  string
	OwnerEmail       string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	OwnerPhone       string
}

type ContactSettings struct {
	RatePerMinute int
	Burst         int
}

// Load assembles Settings from an env map and checks the combinations the
// server cannot start without.
func Load(env map[string]string) (Settings, error) {
	s := Settings{
		Env:      GetString(env, "ENV", "production"),
		LogLevel: GetString(env, "LOG_LEVEL", "info"),
		Server: ServerSettings{
			Port:            GetString(env, "PORT", "8080"),
			AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS", []string{"http://localhost:5173"}),
			ReadTimeout:     GetDuration(env, "SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    GetDuration(env, "SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     GetDuration(env, "SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: GetDuration(env, "SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: LoadDatabase(env),
		Storage: StorageSettings{
			Driver:          GetString(env, "STORAGE_DRIVER", "s3"),
			Bucket:          GetString(env, "STORAGE_BUCKET", "portfolio"),
			Region:          GetString(env, "AWS_REGION", "us-east-1"),
			Endpoint:        GetString(env, "STORAGE_ENDPOINT", ""),
			PublicBaseURL:   GetString(env, "STORAGE_PUBLIC_BASE_URL", ""),
			AccessKeyID:     GetString(env, "STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: GetString(env, "STORAGE_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    GetBool(env, "STORAGE_USE_PATH_STYLE", false),
			LocalDir:        GetString(env, "STORAGE_LOCAL_DIR", "uploads"),
			MaxUploadBytes:  GetInt64(env, "MAX_UPLOAD_BYTES", 50<<20),
		},
		Auth: AuthSettings{
			Provider:         GetString(env, "AUTH_PROVIDER", "jwt"),
			JWTSecret:        GetString(env, "JWT_SECRET", ""),
			JWTIssuer:        GetString(env, "JWT_ISSUER", "portfolio"),
			TokenTTL:         GetDuration(env, "TOKEN_TTL", 12*time.Hour),
			DescopeProjectID: GetString(env, "DESCOPE_PROJECT_ID", ""),
		},
		Notify: NotifySettings{
			ResendAPIKey:     GetString(env, "RESEND_API_KEY", ""),
			ResendFromEmail:  GetString(env, "RESEND_FROM_EMAIL", ""),
			OwnerEmail:       GetString(env, "OWNER_EMAIL", ""),
			TwilioAccountSID: GetString(env, "TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  GetString(env, "TWILIO_AUTH_TOKEN", ""),
			TwilioFromNumber: GetString(env, "TWILIO_FROM_NUMBER", ""),
			OwnerPhone:       GetString(env, "OWNER_PHONE", ""),
		},
		Contact: ContactSettings{
			RatePerMinute: GetInt(env, "CONTACT_RATE_PER_MINUTE", 5),
			Burst:         GetInt(env, "CONTACT_RATE_BURST", 3),
		},
	}

	switch s.Auth.Provider {
	case "jwt":
		if s.Auth.JWTSecret == "" {
			return s, errs.NewEnvironmentVariableError("JWT_SECRET")
		}
	case "descope":
		if s.Auth.DescopeProjectID == "" {
			return s, errs.NewEnvironmentVariableError("DESCOPE_PROJECT_ID")
		}
	default:
		return s, errs.NewConfigError("AUTH_PROVIDER", fmt.Errorf("unknown provider %q", s.Auth.Provider))
	}

	switch s.Storage.Driver {
	case "s3", "local":
	default:
		return s, errs.NewConfigError("STORAGE_DRIVER", fmt.Errorf("unknown driver %q", s.Storage.Driver))
	}

	return s, nil
}

// LoadDatabase reads only the database settings, for tools that do not run
// the server.
func LoadDatabase(env map[string]string) DatabaseSettings {
	return DatabaseSettings{
		Type:        GetString(env, "DB_TYPE", "supa"),
		Host:        GetString(env, "SUPABASE_DB_HOST", ""),
		User:        GetString(env, "SUPABASE_DB_USER", ""),
		Password:    GetString(env, "SUPABASE_DB_PASSWORD", ""),
		Name:        GetString(env, "SUPABASE_DB_NAME", ""),
		Port:        GetString(env, "SUPABASE_DB_PORT", "5432"),
		SSLMode:     GetString(env, "SUPABASE_DB_SSLMODE", "require"),
		ReplicaHost: GetString(env, "SUPABASE_DB_REPLICA_HOST", ""),
		SQLitePath:  GetString(env, "SQLITE_PATH", "portfolio.db"),
		AutoMigrate: GetBool(env, "AUTO_MIGRATE", false),
	}
}

func (s Settings) Development() bool {
	return s.Env == "development"
}

// EmailEnabled reports whether contact notifications can go out by email.
func (n NotifySettings) EmailEnabled() bool {
	return n.ResendAPIKey != "" && n.ResendFromEmail != "" && n.OwnerEmail != ""
}

func (n NotifySettings) SMSEnabled() bool {
	return n.TwilioAccountSID != "" && n.TwilioAuthToken != "" && n.TwilioFromNumber != "" && n.OwnerPhone != ""
}
