package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Platform     Platform     `mapstructure:",squash"`
	Feed         Feed         `mapstructure:",squash"`
	AssetStore   AssetStore   `mapstructure:",squash"`
	PlatformSync PlatformSync `mapstructure:",squash"`
	FeedSync     FeedSync     `mapstructure:",squash"`
	HealthCheck  HealthCheck  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	TimeZone string `mapstructure:"app_timezone"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Platform concentra as credenciais e limites de acesso à API da plataforma
// de anúncios (paginada por cursor, com endpoint de batch).
type Platform struct {
	BaseURL        string    `mapstructure:"platform_base_url"`
	Version        string    `mapstructure:"platform_version"`
	URL            string    `mapstructure:"-"`
	AccessToken    string    `mapstructure:"platform_access_token"`
	AppID          string    `mapstructure:"platform_app_id"`
	AppSecret      string    `mapstructure:"platform_app_secret"`
	LongLivedToken string    `mapstructure:"platform_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`
	BatchSize      int       `mapstructure:"platform_batch_size"`
	PageDelayMs    int       `mapstructure:"platform_page_delay_ms"`
	BatchDelayMs   int       `mapstructure:"platform_batch_delay_ms"`
	MaxRetries     int       `mapstructure:"platform_max_retries"`
}

// Feed configura a ingestão do feed tabular (CSV exportado).
type Feed struct {
	ExportURL              string `mapstructure:"feed_export_url"`
	Source                 string `mapstructure:"feed_source"`
	ChunkSize              int    `mapstructure:"feed_chunk_size"`
	DownloadTimeoutSeconds int    `mapstructure:"feed_download_timeout_seconds"`
	MaxRetries             int    `mapstructure:"feed_max_retries"`
}

// AssetStore configura o serviço externo de armazenamento de criativos.
type AssetStore struct {
	URL           string `mapstructure:"asset_store_url"`
	APIKey        string `mapstructure:"asset_store_api_key"`
	PublicBaseURL string `mapstructure:"asset_store_public_base_url"`
}

type PlatformSync struct {
	CronSchedule string `mapstructure:"platform_sync_cron"`
	Enabled      bool   `mapstructure:"platform_sync_enabled"`
	Incremental  bool   `mapstructure:"platform_sync_incremental"`
}

type FeedSync struct {
	CronSchedule string `mapstructure:"feed_sync_cron"`
	Enabled      bool   `mapstructure:"feed_sync_enabled"`
}

type HealthCheck struct {
	CronSchedule   string `mapstructure:"health_check_cron"`
	Enabled        bool   `mapstructure:"health_check_enabled"`
	StalenessHours int    `mapstructure:"health_check_staleness_hours"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaign_audit")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("PLATFORM_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("PLATFORM_VERSION", "v22.0")
	viper.SetDefault("PLATFORM_APP_ID", "your_app_id")
	viper.SetDefault("PLATFORM_APP_SECRET", "your_app_secret")
	viper.SetDefault("PLATFORM_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("PLATFORM_BATCH_SIZE", 50)                    // Limite da API para sub-requisições por chamada
	viper.SetDefault("PLATFORM_PAGE_DELAY_MS", 200)                // Espera entre páginas
	viper.SetDefault("PLATFORM_BATCH_DELAY_MS", 1000)              // Espera entre chunks de batch
	viper.SetDefault("PLATFORM_MAX_RETRIES", 3)

	viper.SetDefault("FEED_EXPORT_URL", "")
	viper.SetDefault("FEED_SOURCE", "feed")
	viper.SetDefault("FEED_CHUNK_SIZE", 1000)
	viper.SetDefault("FEED_DOWNLOAD_TIMEOUT_SECONDS", 120)
	viper.SetDefault("FEED_MAX_RETRIES", 3)

	viper.SetDefault("ASSET_STORE_URL", "")
	viper.SetDefault("ASSET_STORE_API_KEY", "")
	viper.SetDefault("ASSET_STORE_PUBLIC_BASE_URL", "")

	// Defaults dos jobs agendados
	viper.SetDefault("PLATFORM_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("PLATFORM_SYNC_ENABLED", false)
	viper.SetDefault("PLATFORM_SYNC_INCREMENTAL", true)

	viper.SetDefault("FEED_SYNC_CRON", "0 4 * * *") // Todos os dias às 4h da manhã
	viper.SetDefault("FEED_SYNC_ENABLED", false)

	viper.SetDefault("HEALTH_CHECK_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("HEALTH_CHECK_ENABLED", true)
	viper.SetDefault("HEALTH_CHECK_STALENESS_HOURS", 25)

	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Platform.URL = fmt.Sprintf("%s/%s", config.Platform.BaseURL, config.Platform.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
