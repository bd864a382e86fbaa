package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kagisom/bankrecon/internal/bankapi"
	"github.com/kagisom/bankrecon/internal/config"
	"github.com/kagisom/bankrecon/internal/domain"
	"github.com/kagisom/bankrecon/internal/logger"
	"github.com/kagisom/bankrecon/internal/notify"
	"github.com/kagisom/bankrecon/internal/report"
	"github.com/kagisom/bankrecon/internal/service"
	"github.com/kagisom/bankrecon/internal/store"
)

const dateFormat = "2006-01-02"

var (
	cfgFile string
	cfg     *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bankrecon",
		Short:         "bankrecon reconciles bank transactions into posted accounting batches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		account    string
		fromStr    string
		toStr      string
		outputFile string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one reconciliation pass for the configured settlement account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}

			if account == "" {
				account = cfg.Bank.AccountNumber
			}
			if account == "" {
				return fmt.Errorf("no settlement account configured (flag --account or bank.account_number)")
			}

			from, to, err := parseDateRange(fromStr, toStr)
			if err != nil {
				return err
			}

			return runReconciliation(account, from, to, outputFile, pretty)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "settlement account number (defaults to config)")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date YYYY-MM-DD (defaults to tomorrow)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the run result JSON to a file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print the run result JSON")

	return cmd
}

// parseDateRange defaults to the daily window: today through tomorrow.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	today := time.Now().Truncate(24 * time.Hour)

	from := today
	to := today.AddDate(0, 0, 1)

	var err error
	if fromStr != "" {
		if from, err = time.Parse(dateFormat, fromStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.Parse(dateFormat, toStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date must not be before from date")
	}

	return from, to, nil
}

func runReconciliation(account string, from, to time.Time, outputFile string, pretty bool) error {
	log := logger.New()

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = "bankrecon.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	bankClient := bankapi.NewClient(bankapi.Config{
		ClientID:     cfg.Bank.ClientID,
		ClientSecret: cfg.Bank.ClientSecret,
		BaseURL:      cfg.Bank.BaseURL,
		AuthURL:      cfg.Bank.AuthURL,
		Timeout:      time.Duration(cfg.Bank.TimeoutSeconds) * time.Second,
	})

	reporter, err := report.NewWriter(cfg.Report.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing report writer: %w", err)
	}

	mailer := notify.NewMailer(notify.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		Timeout:  time.Duration(cfg.Mail.TimeoutSeconds) * time.Second,
	})

	svc := service.NewRunService(service.Params{
		Source:     bankClient,
		Customers:  db,
		Batches:    db,
		Reporter:   reporter,
		Notifier:   mailer,
		BranchCode: cfg.Batch.BranchCode,
		Operator:   cfg.Batch.OperatorName,
		Recipients: cfg.Mail.Recipients,
		Logger:     log,
	})

	result, err := svc.Run(context.Background(), account, from, to)
	if err != nil {
		if errors.Is(err, bankapi.ErrNoTransactions) {
			pterm.Warning.Println("No transactions to process for the requested period")
			return nil
		}
		return fmt.Errorf("reconciliation run failed: %w", err)
	}

	printOutcomes(result)

	formatter := report.NewJSONFormatter(pretty)
	output, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting run result: %w", err)
	}

	if outputFile != "" {
		if !strings.Contains(outputFile, ".") {
			outputFile = fmt.Sprintf("%s.%s", outputFile, formatter.FileExtension())
		}
		if err := os.WriteFile(outputFile, output, 0644); err != nil {
			return fmt.Errorf("writing run result: %w", err)
		}
		return nil
	}

	fmt.Println(string(output))
	return nil
}

func printOutcomes(result domain.RunResult) {
	for _, outcome := range result.Outcomes {
		label := outcome.Category.Label

		switch {
		case outcome.State == domain.StateNotified:
			pterm.Success.Printf("%s: batch %d posted and notified (%d transactions)\n", label, outcome.BatchID, outcome.TxnCount)
		case outcome.Err != "":
			pterm.Warning.Printf("%s: stopped at %s: %s\n", label, stateOrStart(outcome.State), outcome.Err)
		default:
			pterm.Info.Printf("%s: finished in state %s\n", label, outcome.State)
		}
	}

	if n := len(result.UnmatchedTxns); n > 0 {
		pterm.Warning.Printf("%d unmatched transaction(s) exported to %s\n", n, result.UnmatchedExport)
	}
}

func stateOrStart(s domain.BatchState) string {
	if s == "" {
		return "batch creation"
	}
	return string(s)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("bankrecon")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BANKRECON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return nil
}
