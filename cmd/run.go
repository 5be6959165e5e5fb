package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/loader"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/ner"
	"github.com/spigell/resume-analyzer/internal/ner/gemini"
	"github.com/spigell/resume-analyzer/internal/output"
	"github.com/spigell/resume-analyzer/internal/pipeline"
	"github.com/spigell/resume-analyzer/internal/resume"
	"github.com/spigell/resume-analyzer/internal/secrets"
	"github.com/spigell/resume-analyzer/internal/table"
)

const (
	PromptYes     = "Yes"
	PromptNo      = "No"
	PromptBack    = "back"
	PromptReport  = "Show scores report"
	PromptDetails = "Show resume details"

	providerHeuristic = "heuristic"
	providerGemini    = "gemini"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Save the analysis?",
	Items: []string{PromptYes, PromptNo, PromptReport, PromptDetails},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyse every resume in a folder and save the table",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("source", "s", "", "folder with resumes: a local path, gs:// or s3:// location")
	runCmd.Flags().StringP("output", "o", "", "folder to save the analysis to")
	runCmd.Flags().String("gen-ai", "", "comma-separated Gen AI keywords")
	runCmd.Flags().String("ai-ml", "", "comma-separated AI/ML keywords")
	runCmd.Flags().String("format", "", "output format: csv or xlsx")
	runCmd.Flags().String("recognizer", "", "name recognizer: heuristic or gemini")
	runCmd.Flags().IntP("workers", "w", 0, "number of resumes analysed at once")
	runCmd.Flags().BoolP("auto-approve", "y", false, "save the analysis without asking for confirmation")

	viper.BindPFlag("source", runCmd.Flags().Lookup("source"))
	viper.BindPFlag("output.path", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("keywords.gen-ai", runCmd.Flags().Lookup("gen-ai"))
	viper.BindPFlag("keywords.ai-ml", runCmd.Flags().Lookup("ai-ml"))
	viper.BindPFlag("output.format", runCmd.Flags().Lookup("format"))
	viper.BindPFlag("recognizer.provider", runCmd.Flags().Lookup("recognizer"))
	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	zlog := logger.WithFields(base, zap.String(logger.FieldRunID, uuid.NewString()))

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the resume-analyzer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if err := completeConfig(config); err != nil {
		zlog.Fatal("reading missing settings", zap.Error(err))
	}

	if err := validateSource(config.Source); err != nil {
		zlog.Fatal("checking the resume source", zap.Error(err),
			zap.String("hint", "use a local folder, gs:// or s3:// location"),
		)
	}

	format, err := output.ParseFormat(config.Output.Format)
	if err != nil {
		zlog.Fatal("checking the output format", zap.Error(err))
	}

	recognizer, recLogger, err := newRecognizer(ctx, config.Recognizer, zlog)
	if err != nil {
		zlog.Fatal("building name recognizer", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE, GEMINI_API_KEY or use the heuristic recognizer"),
		)
	}

	fs := afs.New()

	docs, stats, err := loader.New(fs, zlog).Load(ctx, config.Source)
	if err != nil {
		zlog.Fatal("loading resumes", zap.Error(err))
	}

	zlog.Info("loading resumes",
		zap.Int("listed", stats.Listed),
		zap.Int("unsupported", stats.Unsupported),
		zap.Int("unreadable", stats.Unreadable),
		zap.Int("loaded", stats.Loaded),
	)

	if len(docs) == 0 {
		zlog.Info("exiting", zap.String("reason", "no readable resumes found"))
		return
	}

	genAI, aiML := keywordSets(config.Keywords)

	builder := pipeline.New(recognizer, genAI, aiML,
		pipeline.WithLogger(recLogger),
		pipeline.WithWorkers(config.Workers),
	)

	for _, status := range pipeline.Describe(builder.Steps()) {
		zlog.Debug("pipeline step", zap.String("name", status.Name), zap.Any("details", status.Details))
	}

	tbl, err := builder.Run(ctx, docs)
	if err != nil {
		zlog.Fatal("analysing resumes", zap.Error(err))
	}

	result := tbl.Finalize()
	writer := output.New(fs, format)

	action := PromptYes
	for {
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				zlog.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(ctx, action, zlog, config, writer, tbl, docs, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, zlog *zap.Logger, config *Config, writer *output.Writer, tbl *table.Table, docs []resume.Document, result table.Result) error {
	switch action {
	case PromptYes:
		target, err := writer.Write(ctx, config.Output.Path, config.Output.BaseName, result)
		if err != nil {
			return fmt.Errorf("saving the analysis: %w", err)
		}
		zlog.Info("resume analysis saved", zap.String("path", target), zap.Int("resumes count", len(result.Rows)))
		return errExit
	case PromptNo:
		zlog.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReport:
		pretty, err := json.MarshalIndent(scoreReport(tbl), "", "  ")
		if err != nil {
			return err
		}
		zlog.Info(string(pretty), zap.Int("resumes count", tbl.Len()))
		return nil
	case PromptDetails:
		return showDetails(zlog, tbl, docs)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

type reportLine struct {
	Seq          int      `json:"seq"`
	Name         string   `json:"name"`
	GenAIScore   int      `json:"gen_ai_score"`
	AIMLScore    int      `json:"ai_ml_score"`
	GenAIMatched []string `json:"gen_ai_matched"`
	AIMLMatched  []string `json:"ai_ml_matched"`
}

func scoreReport(tbl *table.Table) []reportLine {
	rows := tbl.Rows()
	report := make([]reportLine, 0, len(rows))
	for _, row := range rows {
		report = append(report, reportLine{
			Seq:          row.Seq,
			Name:         row.Record.Name,
			GenAIScore:   row.Record.GenAI.Score,
			AIMLScore:    row.Record.AIML.Score,
			GenAIMatched: row.Record.GenAI.Matched,
			AIMLMatched:  row.Record.AIML.Matched,
		})
	}
	return report
}

func showDetails(zlog *zap.Logger, tbl *table.Table, docs []resume.Document) error {
	rows := tbl.Rows()

	for {
		items := make([]string, 0, len(rows)+1)
		for i, row := range rows {
			items = append(items, fmt.Sprintf("%d %s / %s", row.Seq, row.Record.Name, docs[i].Filename))
		}

		rowPrompt := promptui.Select{
			Label: "Choose a resume and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := rowPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		cells := rows[idx].Cells()
		fields := make([]zap.Field, 0, len(table.Columns))
		for i, column := range table.Columns {
			fields = append(fields, zap.String(column, cells[i]))
		}
		zlog.Info("resume details", fields...)
	}
}

// completeConfig fills defaults and asks for the settings that neither the
// config file nor flags provided.
func completeConfig(config *Config) error {
	if config == nil {
		return errors.New("config is required")
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.Keywords == nil {
		config.Keywords = &KeywordsConfig{}
	}
	if config.Recognizer == nil {
		config.Recognizer = &RecognizerConfig{}
	}
	if config.Recognizer.Gemini == nil {
		config.Recognizer.Gemini = &GeminiConfig{}
	}

	var err error

	if strings.TrimSpace(config.Source) == "" {
		if config.Source, err = ask("Enter the folder with resumes (local path, gs:// or s3://)", notBlank); err != nil {
			return err
		}
	}

	if strings.TrimSpace(config.Output.Path) == "" {
		if config.Output.Path, err = ask("Enter the folder to save the analysis to", notBlank); err != nil {
			return err
		}
	}

	if !viper.IsSet("keywords.gen-ai") {
		if config.Keywords.GenAI, err = ask("Enter Gen AI keywords (comma-separated)", nil); err != nil {
			return err
		}
	}

	if !viper.IsSet("keywords.ai-ml") {
		if config.Keywords.AIML, err = ask("Enter AI/ML keywords (comma-separated)", nil); err != nil {
			return err
		}
	}

	return nil
}

func ask(label string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{Label: label, Validate: validate}
	return p.Run()
}

func notBlank(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("value is required")
	}
	return nil
}

// validateSource rejects locations the loader cannot list.
func validateSource(source string) error {
	source = strings.TrimSpace(source)
	if source == "" {
		return errors.New("resume source is required")
	}
	if strings.Contains(strings.ToLower(source), "drive.google.com") {
		return fmt.Errorf("google drive links are not supported: %s", source)
	}
	return nil
}

func keywordSets(cfg *KeywordsConfig) (keywords.Set, keywords.Set) {
	if cfg == nil {
		cfg = &KeywordsConfig{}
	}
	return keywords.Set{Name: "gen_ai", Keywords: keywords.Parse(cfg.GenAI)},
		keywords.Set{Name: "ai_ml", Keywords: keywords.Parse(cfg.AIML)}
}

// newRecognizer builds the configured name recognizer and a logger scoped to it.
func newRecognizer(ctx context.Context, cfg *RecognizerConfig, base *zap.Logger) (ner.Recognizer, *zap.Logger, error) {
	if cfg == nil {
		cfg = &RecognizerConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", providerHeuristic:
		return ner.NewHeuristic(cfg.Stopwords...), logger.WithRecognizer(base, providerHeuristic, ""), nil
	case providerGemini:
	default:
		return nil, nil, fmt.Errorf("unsupported name recognizer: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gcfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set recognizer.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := base.With(
		zap.String("provider", providerGemini),
		zap.String("model", gcfg.Model),
		zap.Int("ai_retry_attempts", gcfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
	if err != nil {
		return nil, nil, err
	}

	recLogger := logger.WithRecognizer(base, providerGemini, generator.Model())

	return gemini.NewRecognizer(generator, gcfg.MaxLogLength, recLogger), recLogger, nil
}
