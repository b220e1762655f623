package config

const (
	EnvPrefix = "SHAR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "SHAR_APP_ENV"
	EnvPort                   = "SHAR_APP_PORT"
	EnvDBDSN                  = "SHAR_DB_DSN"
	EnvRedisURL               = "SHAR_REDIS_URL"
	EnvJWTSecret              = "SHAR_JWT_SECRET"
	EnvJWTIssuer              = "SHAR_JWT_ISSUER"
	EnvJWTExpMins             = "SHAR_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "SHAR_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "SHAR_GCP_PROJECT_ID"
	EnvPubSubAlertsTopic      = "SHAR_PUBSUB_ALERTS_TOPIC"
)
