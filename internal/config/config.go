package config

type Config struct {
	Bank     BankConfig     `mapstructure:"bank"`
	Database DatabaseConfig `mapstructure:"database"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Report   ReportConfig   `mapstructure:"report"`
	Mail     MailConfig     `mapstructure:"mail"`
}

type BankConfig struct {
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
	BaseURL        string `mapstructure:"base_url"`
	AuthURL        string `mapstructure:"auth_url"`
	AccountNumber  string `mapstructure:"account_number"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type BatchConfig struct {
	BranchCode   string `mapstructure:"branch_code"`
	OperatorName string `mapstructure:"operator_name"`
}

type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

type MailConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Username       string   `mapstructure:"username"`
	Password       string   `mapstructure:"password"`
	From           string   `mapstructure:"from"`
	Recipients     []string `mapstructure:"recipients"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

func NewDefault() *Config {
	return &Config{
		Bank: BankConfig{
			TimeoutSeconds: 30,
		},
		Database: DatabaseConfig{Path: ""},
		Batch: BatchConfig{
			BranchCode:   "BR001",
			OperatorName: "Finance (Bot)",
		},
		Report: ReportConfig{OutputDir: "."},
		Mail: MailConfig{
			Port:           587,
			TimeoutSeconds: 30,
		},
	}
}
