package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN    string
	Driver string // "postgres" or "document"
}

type AuthConfig struct {
	AccessSecret string
}

type BlobConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
	PublicURL string
}

type ReportConfig struct {
	OrgName string
	OrgUnit string
}

type UploadConfig struct {
	MaxBytes int64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Blob        BlobConfig
	Report      ReportConfig
	Upload      UploadConfig
}

const (
	DriverPostgres = "postgres"
	DriverDocument = "document"
)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:    v.GetString("DB_DSN"),
			Driver: v.GetString("STORE_DRIVER"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Blob: BlobConfig{
			Bucket:    v.GetString("BLOB_S3_BUCKET"),
			Region:    v.GetString("BLOB_S3_REGION"),
			Endpoint:  v.GetString("BLOB_S3_ENDPOINT"),
			PathStyle: v.GetBool("BLOB_S3_PATH_STYLE"),
			PublicURL: v.GetString("BLOB_PUBLIC_URL"),
		},
		Report: ReportConfig{
			OrgName: v.GetString("REPORT_ORG_NAME"),
			OrgUnit: v.GetString("REPORT_ORG_UNIT"),
		},
		Upload: UploadConfig{
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverDocument
	}
	if cfg.Report.OrgName == "" {
		cfg.Report.OrgName = "RAM CIVIL"
	}
	if cfg.Report.OrgUnit == "" {
		cfg.Report.OrgUnit = "PEP Field Subang"
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = 10 << 20
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverDocument {
		return fmt.Errorf("STORE_DRIVER must be %q or %q", DriverPostgres, DriverDocument)
	}
	return nil
}
