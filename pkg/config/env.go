package config

// EnvPrefix is handed to envconfig; every field carries an explicit key so the
// prefix only matters for unkeyed fields.
const EnvPrefix = "SHOPBALANCE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	RemittanceFormulaGross          = "gross"
	RemittanceFormulaNetOfPackaging = "net_of_packaging"
)

const (
	EnvAppEnv            = "SHOPBALANCE_APP_ENV"
	EnvPort              = "SHOPBALANCE_APP_PORT"
	EnvLogLevel          = "SHOPBALANCE_LOG_LEVEL"
	EnvDBDSN             = "SHOPBALANCE_DB_DSN"
	EnvDBHost            = "SHOPBALANCE_DB_HOST"
	EnvDBPort            = "SHOPBALANCE_DB_PORT"
	EnvDBUser            = "SHOPBALANCE_DB_USER"
	EnvDBPassword        = "SHOPBALANCE_DB_PASSWORD"
	EnvDBName            = "SHOPBALANCE_DB_NAME"
	EnvRedisURL          = "SHOPBALANCE_REDIS_URL"
	EnvReportTimezone    = "SHOPBALANCE_REPORT_TIMEZONE"
	EnvRemittanceFormula = "SHOPBALANCE_REMITTANCE_FORMULA"
	EnvCronInterval      = "SHOPBALANCE_CRON_INTERVAL"
	EnvLookbackDays      = "SHOPBALANCE_LOOKBACK_DAYS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
