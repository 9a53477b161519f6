package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"lrn/internal/structures"
)

const AppName = "LotteryResultNotifier"

var envBindings = map[string]string{
	"logger.level":                    "LRN_LOG_LEVEL",
	"logger.dir":                      "LRN_LOG_DIR",
	"persistence.storePath":           "LRN_STORE_PATH",
	"persistence.sendCachePath":       "LRN_SEND_CACHE_PATH",
	"persistence.compress":            "LRN_STORE_COMPRESS",
	"persistence.compressionLevel":    "LRN_STORE_COMPRESSION_LEVEL",
	"timezone.offset":                 "LRN_TZ_OFFSET",
	"sendCache.retention":             "LRN_SEND_CACHE_RETENTION",
	"dispatch.globalTopic":            "LRN_GLOBAL_TOPIC",
	"fcm.projectId":                   "LRN_FCM_PROJECT_ID",
	"fcm.credentialsJSON":             "LRN_FCM_SERVICE_ACCOUNT_JSON",
	"cache.enabled":                   "LRN_CACHE_ENABLED",
	"cache.size":                      "LRN_CACHE_SIZE",
	"metrics.enabled":                 "LRN_METRICS_ENABLED",
	"metrics.pushgatewayUrl":          "LRN_PUSHGATEWAY_URL",
	"sources.loteriasDominicanas.url": "LRN_LOTERIAS_DOMINICANAS_URL",
	"sources.tusNumerosRD.url":        "LRN_TUSNUMEROSRD_URL",
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env next to the config file, then in the working directory; both optional.
	_ = godotenv.Load(filepath.Join(filepath.Dir(flags.ConfigPath), ".env"))
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("unable to bind %s: %w", env, err)
		}
	}
	if err := v.BindEnv("fcm.credentialsFile", "LRN_FCM_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		return nil, fmt.Errorf("unable to bind credentials file: %w", err)
	}

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	if conf.Debug && os.Getenv("LRN_LOG_LEVEL") == "" {
		conf.Logger.Level = "debug"
	}

	return &conf, nil
}
