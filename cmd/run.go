package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/theworkedge/contract-scout/internal/ai"
	"github.com/theworkedge/contract-scout/internal/ai/anthropic"
	"github.com/theworkedge/contract-scout/internal/ai/gemini"
	"github.com/theworkedge/contract-scout/internal/classify"
	"github.com/theworkedge/contract-scout/internal/logger"
	"github.com/theworkedge/contract-scout/internal/mail"
	"github.com/theworkedge/contract-scout/internal/report"
	"github.com/theworkedge/contract-scout/internal/samgov"
	"github.com/theworkedge/contract-scout/internal/secrets"
	"github.com/theworkedge/contract-scout/internal/track"
)

const (
	PromptSend         = "Send the report"
	PromptReportToFile = "Dump report to file"
	PromptNo           = "No"

	defaultWindowDays  = 2
	defaultSearchLimit = 100
	// Solicitations and combined synopsis/solicitation notices.
	defaultPType = "o,k"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptSend, PromptReportToFile, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily opportunity scout",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before sending the report (for cron)")
	runCmd.Flags().Bool("dry-run", false, "build the report but write no CSV and send no email")
	runCmd.Flags().String("csv-file", "", "path of the append-only CSV log (default opportunities_log.csv)")

	viper.BindPFlag("csv-file", runCmd.Flags().Lookup("csv-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the contract-scout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	samKey, err := resolveSAMKey(config)
	if err != nil {
		logger.Fatal("loading SAM.gov api key",
			zap.Error(err),
			zap.String("hint", "set SAM_API_KEY_FILE environment variable or the 'sam-api-key-file' key in the configuration file"),
		)
	}

	scorer, err := newScorer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}

	tracks := track.All()
	sam := samgov.New(ctx, logger, samKey)

	opportunities, err := searchOpportunities(sam, config, tracks, logger)
	if err != nil {
		logger.Fatal("searching SAM.gov", zap.Error(err))
	}

	if opportunities.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no opportunities found"))
		return
	}

	sam.ResolveDescriptions(opportunities)

	now := time.Now().UTC()
	thresholds := normalizeThresholds(config.Thresholds)

	trackReports, attempted := scoreTracks(ctx, scorer, tracks, opportunities, thresholds, logger)
	if attempted > 0 && len(trackReports) == 0 {
		logger.Fatal("exiting", zap.String("reason", "scoring failed for every track"))
	}
	if len(trackReports) == 0 {
		logger.Info("exiting", zap.String("reason", "no opportunities matched any track"))
		return
	}

	rep := report.New(trackReports, thresholds, now)

	if cmd.Flag("dry-run").Value.String() == "true" {
		logger.Info("dry run: skipping CSV log and email",
			zap.String("subject", rep.Subject()),
			zap.Int("rows", len(rep.Rows(now))),
		)
		return
	}

	csvFile := csvPath(config)
	rows := rep.Rows(now)
	if err := report.AppendCSV(csvFile, rows); err != nil {
		logger.Fatal("writing the CSV log", zap.Error(err))
	}
	logger.Info("appended opportunities to CSV log",
		zap.String("file", csvFile),
		zap.Int("rows", len(rows)),
	)

	action := PromptSend
	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err = prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if err := handleAction(ctx, action, rep, config, logger); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}
}

func handleAction(ctx context.Context, action string, rep *report.Report, config *Config, logger *zap.Logger) error {
	switch action {
	case PromptSend:
		return sendReport(ctx, rep, config, logger)
	case PromptReportToFile:
		filename, err := dumpReport(rep)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumped report to file", zap.String("filename", filename))
		return nil
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func sendReport(ctx context.Context, rep *report.Report, config *Config, logger *zap.Logger) error {
	if config.Email == nil {
		logger.Warn("email transport not configured, skipping send",
			zap.String("hint", "set the email section in the configuration file"),
		)
		return nil
	}

	password, err := secrets.Load(secrets.Source{
		Name: "smtp password",
		File: firstNonEmpty(config.Email.PasswordFile, viper.GetString("email.password-file")),
	})
	if err != nil {
		logger.Warn("smtp password not available, skipping send", zap.Error(err))
		return nil
	}

	sender := mail.NewSender(config.Email.mailConfig(password), logger)
	if !sender.Enabled() {
		logger.Warn("email transport incomplete, skipping send",
			zap.String("hint", "email.host, email.from and email.recipient are required"),
		)
		return nil
	}

	// A send failure is logged but never fails the run: the CSV log is
	// already written by this point.
	if err := sender.Send(ctx, rep.Subject(), rep.RenderPlain(), rep.RenderHTML()); err != nil {
		logger.Error("sending the report email", zap.Error(err))
	}
	return nil
}

func dumpReport(rep *report.Report) (string, error) {
	file, err := os.CreateTemp("", app+"-report-*.txt")
	if err != nil {
		return "", err
	}

	if _, err := file.WriteString(rep.RenderPlain()); err != nil {
		file.Close()
		return "", err
	}

	return file.Name(), file.Close()
}

// scoreTracks runs the scorer for each track independently. A failed track is
// logged and excluded; the run only dies when every attempted track failed.
func scoreTracks(
	ctx context.Context,
	scorer ai.Scorer,
	tracks []track.Track,
	opportunities *samgov.Opportunities,
	thresholds report.Thresholds,
	logger *zap.Logger,
) ([]*report.TrackReport, int) {
	var reports []*report.TrackReport
	attempted := 0

	for _, tr := range tracks {
		scoped := opportunities.FilterByNAICS(tr.NAICSCodes)
		if scoped.Len() == 0 {
			logger.Info("no opportunities for track", zap.String("track", tr.Key))
			continue
		}
		attempted++

		cards, err := scorer.Score(ctx, tr, scoped)
		if err != nil {
			logger.Error("scoring track failed, excluding it from the report",
				zap.String("track", tr.Key),
				zap.Error(err),
			)
			continue
		}

		classifier, err := classify.New(tr.Vocabulary)
		if err != nil {
			logger.Error("compiling track vocabulary, excluding it from the report",
				zap.String("track", tr.Key),
				zap.Error(err),
			)
			continue
		}

		items := report.Merge(scoped, cards, classifier, logger)
		trackReport := report.NewTrackReport(tr, items, thresholds)

		logger.Info("track report built",
			zap.String("track", tr.Key),
			zap.Int("scored", len(items)),
			zap.Int("qualified", len(trackReport.Buckets.Qualified)),
			zap.Int("monitor", len(trackReport.Buckets.Monitor)),
		)
		reports = append(reports, trackReport)
	}

	return reports, attempted
}

func searchOpportunities(sam *samgov.Client, config *Config, tracks []track.Track, logger *zap.Logger) (*samgov.Opportunities, error) {
	windowDays := defaultWindowDays
	limit := defaultSearchLimit
	if config.Search != nil {
		if config.Search.WindowDays > 0 {
			windowDays = config.Search.WindowDays
		}
		if config.Search.Limit > 0 {
			limit = config.Search.Limit
		}
	}

	now := time.Now().UTC()
	params := &samgov.SearchParams{
		PostedFrom: now.AddDate(0, 0, -windowDays).Format("01/02/2006"),
		PostedTo:   now.Format("01/02/2006"),
		NAICS:      track.CombinedNAICS(tracks),
		PType:      defaultPType,
		Limit:      limit,
	}

	logger.Info("starting the search",
		zap.String("posted_from", params.PostedFrom),
		zap.String("posted_to", params.PostedTo),
		zap.Int("naics_codes", len(params.NAICS)),
	)

	results, err := sam.Search(params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("getting opportunities", zap.Int("count", results.Len()))
	return results, nil
}

func newScorer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Scorer, error) {
	provider := "anthropic"
	maxLogLength := 0
	if cfg != nil {
		if p := strings.TrimSpace(strings.ToLower(cfg.Provider)); p != "" {
			provider = p
		}
		maxLogLength = cfg.MaxLogLength
	}

	var (
		generator ai.Generator
		err       error
	)

	switch provider {
	case "anthropic":
		generator, err = newAnthropicGenerator(cfg)
	case "gemini":
		generator, err = newGeminiGenerator(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	engineLogger := logger.With(
		zap.String("provider", provider),
		zap.String("model", generator.Model()),
	)

	return ai.NewEngine(generator, engineLogger, maxLogLength), nil
}

func newAnthropicGenerator(cfg *AIConfig) (ai.Generator, error) {
	keyFile := viper.GetString("ai.anthropic.api-key-file")
	model := ""
	maxRetries := 0
	if cfg != nil && cfg.Anthropic != nil {
		keyFile = firstNonEmpty(cfg.Anthropic.APIKeyFile, keyFile)
		model = cfg.Anthropic.Model
		maxRetries = cfg.Anthropic.MaxRetries
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "anthropic api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.anthropic.api-key-file or ANTHROPIC_API_KEY_FILE)", err)
	}

	return anthropic.NewGenerator(apiKey, model, maxRetries)
}

func newGeminiGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	keyFile := viper.GetString("ai.gemini.api-key-file")
	model := ""
	maxRetries := 0
	if cfg != nil && cfg.Gemini != nil {
		keyFile = firstNonEmpty(cfg.Gemini.APIKeyFile, keyFile)
		model = cfg.Gemini.Model
		maxRetries = cfg.Gemini.MaxRetries
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	return gemini.NewGenerator(ctx, logger, apiKey, model, maxRetries)
}

func resolveSAMKey(config *Config) (string, error) {
	keyFile := firstNonEmpty(strings.TrimSpace(config.SAMAPIKeyFile), strings.TrimSpace(viper.GetString("sam-api-key-file")))
	if keyFile == "" {
		return "", errors.New("SAM.gov api key file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "SAM.gov api key",
		File: keyFile,
	})
}

func csvPath(config *Config) string {
	path := firstNonEmpty(viper.GetString("csv-file"), config.CSVFile)
	if path == "" {
		path = "opportunities_log.csv"
	}
	return path
}

func normalizeThresholds(th report.Thresholds) report.Thresholds {
	defaults := report.DefaultThresholds()
	if th.MinScore <= 0 {
		th.MinScore = defaults.MinScore
	}
	if th.MonitorMinScore <= 0 {
		th.MonitorMinScore = defaults.MonitorMinScore
	}
	if th.MaxMonitorShown <= 0 {
		th.MaxMonitorShown = defaults.MaxMonitorShown
	}
	return th
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
