package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"hershield"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8888"` // 用于拼接账号激活链接

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"hershield"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"hshd"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// JWT 配置
	JWTSecret        string `env:"JWT_SECRET"` // 必填，用于签名 JWT
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"30"`
	JWTRefreshDays   int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`

	// SMTP 配置，紧急邮件与激活邮件共用同一发件账号
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"TEAM HerShield"`
	MailProvider string `env:"MAIL_PROVIDER" envDefault:"smtp"` // smtp, mock

	// 短信服务配置
	SMSProvider string `env:"SMS_PROVIDER" envDefault:"twilio"` // twilio, aliyun, mock

	// Twilio 配置
	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`

	// 阿里云短信配置
	// AccessKey 通过阿里云 SDK 的环境变量自动获取：
	// ALIBABA_CLOUD_ACCESS_KEY_ID 和 ALIBABA_CLOUD_ACCESS_KEY_SECRET
	SMSSignName     string `env:"SMS_SIGN_NAME"`     // 短信签名名称
	SMSTemplateCode string `env:"SMS_TEMPLATE_CODE"` // 短信模板代码

	// 手机号解析配置
	// 留空表示不补全国家码：联系人手机号必须自带国家码才能通过校验
	DefaultPhoneRegion string `env:"DEFAULT_PHONE_REGION" envDefault:""`

	// 位置缓存配置
	LocationTTLMinutes int `env:"LOCATION_TTL_MINUTES" envDefault:"1440"`

	// 加密配置
	EncryptionKey string `env:"ENCRYPTION_KEY"` // 用于加密联系人手机号，32字节 AES-256
	PhoneHashSalt string `env:"PHONEHASH_SALT"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// OpenTelemetry 配置
	OTelEnabled  bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelSampler  float64 `env:"OTEL_SAMPLER" envDefault:"0.1"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"100"` // 每秒请求数

	// 激活链接有效期
	ActivationTTLHours int `env:"ACTIVATION_TTL_HOURS" envDefault:"24"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	// 生产环境缺关键配置直接退出，开发环境降级为不安全的默认值
	if Cfg.JWTSecret == "" {
		if Cfg.IsProduction() {
			log.Fatal("JWT_SECRET is required")
		}
		log.Printf("WARN: JWT_SECRET not set, using insecure development secret")
		Cfg.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	if len(Cfg.EncryptionKey) != 32 {
		if Cfg.IsProduction() {
			log.Fatal("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
		}
		log.Printf("WARN: ENCRYPTION_KEY not set or wrong length, using development key")
		Cfg.EncryptionKey = "0123456789abcdef0123456789abcdef"
	}

	if Cfg.SMTPUser == "" || Cfg.SMTPPassword == "" {
		log.Printf("WARN: SMTP_USER / SMTP_PASSWORD not set, outbound email will not work")
	}
	if Cfg.MailFrom == "" {
		log.Printf("WARN: MAIL_FROM is not set, falling back to SMTP_USER as sender")
	}

	switch Cfg.SMSProvider {
	case "twilio":
		if Cfg.TwilioAccountSID == "" || Cfg.TwilioAuthToken == "" || Cfg.TwilioPhoneNumber == "" {
			log.Printf("WARN: Twilio credentials incomplete, SMS service may not work properly")
		}
	case "aliyun":
		if Cfg.SMSSignName == "" || Cfg.SMSTemplateCode == "" {
			log.Printf("WARN: SMS_SIGN_NAME / SMS_TEMPLATE_CODE not set, SMS service may not work properly")
		}
	}
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

// SenderAddress 返回外发邮件的发件地址
func (c *Config) SenderAddress() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return c.SMTPUser
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
