package config

import "github.com/ilyakaznacheev/cleanenv"

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	SMTP struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"25"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER" env-default:"Athenaeum <no-reply@athenaeum.dev>"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"AWSACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"AWSSECRETACCESSKEY"`
		Region          string `yaml:"region" env:"AWSS3REGION"`
		Bucket          string `yaml:"bucket" env:"AWSS3BUCKET"`
	} `yaml:"s3"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"LIMITERRPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"LIMITERBURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LIMITERENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICSENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"BASICAUTHUSERNAME"`
		Password string `yaml:"password" env:"BASICAUTHPASSWORD"`
	} `yaml:"basic_auth"`
	Loans struct {
		PeriodDays         int    `yaml:"period_days" env:"LOANPERIODDAYS" env-default:"14"`
		MaxActivePerUser   int    `yaml:"max_active_per_user" env:"LOANMAXACTIVE" env-default:"5"`
		MaxPerDay          int    `yaml:"max_per_day" env:"LOANMAXPERDAY" env-default:"3"`
		MaxExtensionDays   int    `yaml:"max_extension_days" env:"LOANMAXEXTENSIONDAYS" env-default:"14"`
		MaxTotalDays       int    `yaml:"max_total_days" env:"LOANMAXTOTALDAYS" env-default:"30"`
		OverdueReturnLimit int    `yaml:"overdue_return_limit" env:"LOANOVERDUERETURNLIMIT" env-default:"5"`
		OverdueWindowDays  int    `yaml:"overdue_window_days" env:"LOANOVERDUEWINDOWDAYS" env-default:"90"`
		DueSoonDays        int    `yaml:"due_soon_days" env:"LOANDUESOONDAYS" env-default:"3"`
		SweepInterval      string `yaml:"sweep_interval" env:"LOANSWEEPINTERVAL" env-default:"1h"`
	} `yaml:"loans"`
}

// Load populates a Config from an optional YAML file plus the environment.
// A blank path means the environment and the env-default values alone are
// enough to boot a development instance.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
