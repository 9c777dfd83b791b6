package config

// Config 配置主体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Elastic    ElasticConfig    `mapstructure:"elastic"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Logstash   LogstashConfig   `mapstructure:"logstash"`
	Analytics  AnalyticsConfig  `mapstructure:"analytics"`
	Automation AutomationConfig `mapstructure:"automation"`
	Importer   ImporterConfig   `mapstructure:"importer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	ApplicationIndex string `mapstructure:"application_index"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	TempBucket       string `mapstructure:"temp_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	UsePublicLink    bool   `mapstructure:"use_public_link"`
}

type LLMConfig struct {
	ApiKey         string           `mapstructure:"api_key"`
	TextModel      string           `mapstructure:"text_model"`
	MaxRetries     int              `mapstructure:"max_retries"`
	TimeoutSeconds int              `mapstructure:"timeout_seconds"`
	PromptsPath    PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	JobMatch       string `mapstructure:"job_match"`
	ResumeReview   string `mapstructure:"resume_review"`
	SalarySuggest  string `mapstructure:"salary_suggest"`
	PostingExtract string `mapstructure:"posting_extract"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// AnalyticsConfig 报表缓存与排行配置
type AnalyticsConfig struct {
	DashboardTTLMinutes int `mapstructure:"dashboard_ttl_minutes"`
	UserTTLMinutes      int `mapstructure:"user_ttl_minutes"`
	CompanyTTLMinutes   int `mapstructure:"company_ttl_minutes"`
	TopCompanyLimit     int `mapstructure:"top_company_limit"`
	TopSkillLimit       int `mapstructure:"top_skill_limit"`
}

// AutomationConfig 自动化引擎配置
type AutomationConfig struct {
	AlertCooldownMinutes int `mapstructure:"alert_cooldown_minutes"`
}

// ImporterConfig 职位导入配置
type ImporterConfig struct {
	UserAgent string `mapstructure:"user_agent"`
	Proxy     string `mapstructure:"proxy"`
}
