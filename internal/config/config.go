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

const (
	BackendDriverREST     = "rest"
	BackendDriverPostgres = "postgres"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Backend    Backend    `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	QueryCache QueryCache `mapstructure:",squash"`
	Chart      Chart      `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Backend guarda as credenciais públicas do serviço de dados hospedado.
// URL e AnonKey podem estar ausentes: nesse caso o gateway opera desabilitado.
type Backend struct {
	Driver         string `mapstructure:"backend_driver"`
	URL            string `mapstructure:"supabase_url"`
	AnonKey        string `mapstructure:"supabase_anon_key"`
	TimeoutSeconds int    `mapstructure:"backend_timeout_seconds"`
	// JWTSecret valida os tokens de usuário. Vazio aceita tokens sem verificar a assinatura.
	JWTSecret      string `mapstructure:"supabase_jwt_secret"`
}

func (b Backend) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Missing retorna os nomes das variáveis obrigatórias do driver REST que estão vazias
func (b Backend) Missing() []string {
	missing := make([]string, 0, 2)
	if b.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if b.AnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	return missing
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type QueryCache struct {
	StaleSeconds int    `mapstructure:"query_cache_stale_seconds"`
	GCSeconds    int    `mapstructure:"query_cache_gc_seconds"`
	SweepCron    string `mapstructure:"query_cache_sweep_cron"`
	SweepEnabled bool   `mapstructure:"query_cache_sweep_enabled"`
}

func (q QueryCache) StaleTime() time.Duration {
	return time.Duration(q.StaleSeconds) * time.Second
}

func (q QueryCache) GCTime() time.Duration {
	return time.Duration(q.GCSeconds) * time.Second
}

type Chart struct {
	Locale string `mapstructure:"chart_locale"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", 8000)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("BACKEND_DRIVER", BackendDriverREST)
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	v.SetDefault("SUPABASE_JWT_SECRET", "")

	// Sem URL padrão: banco ausente significa modo desabilitado
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")

	v.SetDefault("QUERY_CACHE_STALE_SECONDS", 0)          // Refaz a consulta a cada nova requisição
	v.SetDefault("QUERY_CACHE_GC_SECONDS", 300)           // Remove entradas sem acesso há 5 minutos
	v.SetDefault("QUERY_CACHE_SWEEP_CRON", "*/5 * * * *") // A cada 5 minutos
	v.SetDefault("QUERY_CACHE_SWEEP_ENABLED", true)

	v.SetDefault("CHART_LOCALE", "pt-BR")

	v.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	switch config.Backend.Driver {
	case BackendDriverREST, BackendDriverPostgres:
	default:
		return nil, fmt.Errorf("BACKEND_DRIVER inválido: %q (valores aceitos: rest, postgres)", config.Backend.Driver)
	}

	if config.Database.URL != "" {
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
