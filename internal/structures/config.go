package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Persistence struct {
	StorePath        string        `yaml:"storePath" mapstructure:"storePath" validate:"required|unixPath"`
	SendCachePath    string        `yaml:"sendCachePath" mapstructure:"sendCachePath" validate:"required|unixPath"`
	Compress         bool          `yaml:"compress" mapstructure:"compress"`
	CompressionLevel string        `yaml:"compressionLevel" mapstructure:"compressionLevel" validate:"in:fastest,default,better,best"`
	LockTimeout      time.Duration `yaml:"lockTimeout" mapstructure:"lockTimeout" validate:"required"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode       uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir        string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
	MaxSizeMB  int    `yaml:"maxSizeMB" mapstructure:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups" mapstructure:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays" mapstructure:"maxAgeDays"`
}

// TimezoneConfig pins every date comparison to one fixed UTC offset.
type TimezoneConfig struct {
	Offset string `yaml:"offset" mapstructure:"offset" validate:"required"`
}

type SendCacheConfig struct {
	Retention time.Duration `yaml:"retention" mapstructure:"retention" validate:"required"`
}

type DispatchConfig struct {
	GlobalTopic   string        `yaml:"globalTopic" mapstructure:"globalTopic" validate:"required"`
	TopicPrefix   string        `yaml:"topicPrefix" mapstructure:"topicPrefix" validate:"required"`
	TTL           time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"required"`
	RatePerSecond float64       `yaml:"ratePerSecond" mapstructure:"ratePerSecond"`
}

type FCMConfig struct {
	ProjectID       string        `yaml:"projectId" mapstructure:"projectId"`
	CredentialsFile string        `yaml:"credentialsFile" mapstructure:"credentialsFile"`
	CredentialsJSON string        `yaml:"credentialsJSON" mapstructure:"credentialsJSON"`
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"required"`
}

type SourceConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	WaitFor time.Duration `yaml:"waitFor" mapstructure:"waitFor"`
}

type SourcesConfig struct {
	LoteriasDominicanas SourceConfig `yaml:"loteriasDominicanas" mapstructure:"loteriasDominicanas"`
	TusNumerosRD        SourceConfig `yaml:"tusNumerosRD" mapstructure:"tusNumerosRD"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Size    int           `yaml:"size" mapstructure:"size"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	PushgatewayURL string `yaml:"pushgatewayUrl" mapstructure:"pushgatewayUrl"`
	Job            string `yaml:"job" mapstructure:"job"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Persistence Persistence     `yaml:"persistence" mapstructure:"persistence"`
	Logger      LoggerConfig    `yaml:"logger" mapstructure:"logger"`
	Timezone    TimezoneConfig  `yaml:"timezone" mapstructure:"timezone"`
	SendCache   SendCacheConfig `yaml:"sendCache" mapstructure:"sendCache"`
	Dispatch    DispatchConfig  `yaml:"dispatch" mapstructure:"dispatch"`
	FCM         FCMConfig       `yaml:"fcm" mapstructure:"fcm"`
	Sources     SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Cache       CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
}
