package main

import (
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/finreport/pkg/adapters"
	"github.com/de-tools/finreport/pkg/server"
	"github.com/de-tools/finreport/pkg/services/analysis"
	"github.com/de-tools/finreport/pkg/services/config"
	"github.com/de-tools/finreport/pkg/services/llm"
	"github.com/de-tools/finreport/pkg/services/report"
)

var (
	settingsPath string
	profilesPath string
	profileName  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the financial report web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to a settings file (yaml, json or toml)")
	rootCmd.Flags().StringVar(&profilesPath, "profiles-file", config.DefaultProfilesPath(), "Path to the credential profiles file")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "", "Credential profile to use for text generation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	llmSettings := settings.LLM
	if profileName != "" {
		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		profile, err := registry.GetConfig(ctx, profileName)
		if err != nil {
			return err
		}
		llmSettings = config.ApplyProfile(llmSettings, *profile)
		logger.Info().Msgf("Using profile `%s` with provider `%s`", profileName, llmSettings.Provider)
	}

	providers := llm.NewDefaultRegistry()
	generator, err := providers.Create(adapters.MapLLMSettingsToConfig(llmSettings))
	if err != nil {
		logger.Warn().Err(err).Str("provider", llmSettings.Provider).Msg("narrative reports disabled")
		generator = nil
	}

	assembler := report.NewAssembler(report.Options{Currency: settings.Report.Currency})
	service := analysis.NewService(assembler, generator)

	addr := net.JoinHostPort(settings.Server.Host, settings.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		RateLimit:       settings.Server.RateLimit,
		RateBurst:       settings.Server.RateBurst,
		MaxUploadBytes:  settings.Server.MaxUploadBytes,
		Currency:        settings.Report.Currency,
		Dependencies: server.Dependencies{
			Analyzer:  service,
			Assembler: assembler,
			Providers: providers.ListProviders(),
		},
	})

	return api.Start()
}
