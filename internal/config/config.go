package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// AppBaseURL is used to build links embedded in outgoing emails.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"tiendax"`
	DBPath     string `env:"DBPath" envDefault:"datas/tiendax.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	StorageType          string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir      string `env:"STORAGE_LOCAL_DIR" envDefault:"datas/images"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"/files"`

	// S3-compatible storage
	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// Aliyun OSS storage
	StorageOSSEndpoint        string `env:"STORAGE_OSS_ENDPOINT"`
	StorageOSSBucket          string `env:"STORAGE_OSS_BUCKET"`
	StorageOSSPrefix          string `env:"STORAGE_OSS_PREFIX"`
	StorageOSSAccessKeyID     string `env:"STORAGE_OSS_ACCESS_KEY_ID"`
	StorageOSSAccessKeySecret string `env:"STORAGE_OSS_ACCESS_KEY_SECRET"`

	// Tencent COS storage
	StorageCOSBucketURL string `env:"STORAGE_COS_BUCKET_URL"`
	StorageCOSPrefix    string `env:"STORAGE_COS_PREFIX"`
	StorageCOSSecretID  string `env:"STORAGE_COS_SECRET_ID"`
	StorageCOSSecretKey string `env:"STORAGE_COS_SECRET_KEY"`

	// Cloudflare R2 storage
	StorageR2AccountID       string `env:"STORAGE_R2_ACCOUNT_ID"`
	StorageR2Endpoint        string `env:"STORAGE_R2_ENDPOINT"`
	StorageR2Region          string `env:"STORAGE_R2_REGION" envDefault:"auto"`
	StorageR2Bucket          string `env:"STORAGE_R2_BUCKET"`
	StorageR2Prefix          string `env:"STORAGE_R2_PREFIX"`
	StorageR2AccessKeyID     string `env:"STORAGE_R2_ACCESS_KEY_ID"`
	StorageR2SecretAccessKey string `env:"STORAGE_R2_SECRET_ACCESS_KEY"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"tiendax"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`

	// Seeded admin account. The password is bcrypt-hashed before it is stored.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@tiendax.local"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Tienda X Admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"change-me-9244"`

	// Cart pricing rules, amounts in MXN.
	FreeShippingThreshold float64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"2000"`
	FlatShippingFee       float64 `env:"FLAT_SHIPPING_FEE" envDefault:"150"`

	// Destination for the WhatsApp order handoff.
	OrderWhatsAppNumber string `env:"ORDER_WHATSAPP_NUMBER" envDefault:"5215512345678"`

	// Fallback SMTP settings used until an email configuration is saved.
	MailHost        string `env:"MAIL_HOST" envDefault:""`
	MailPort        int    `env:"MAIL_PORT" envDefault:"587"`
	MailUsername    string `env:"MAIL_USERNAME" envDefault:""`
	MailPassword    string `env:"MAIL_PASSWORD" envDefault:""`
	MailEncryption  string `env:"MAIL_ENCRYPTION" envDefault:"tls"`
	MailFromAddress string `env:"MAIL_FROM_ADDRESS" envDefault:""`
	MailFromName    string `env:"MAIL_FROM_NAME" envDefault:"Tienda X"`
	MailMailer      string `env:"MAIL_MAILER" envDefault:"smtp"`
	MailAPIKey      string `env:"MAIL_API_KEY" envDefault:""`

	ResetTokenTTLMinutes  int `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"1440"`
	VerifyTokenTTLMinutes int `env:"VERIFY_TOKEN_TTL_MINUTES" envDefault:"4320"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
