package cmd

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/ner"
	"github.com/spigell/resume-analyzer/internal/resume"
	"github.com/spigell/resume-analyzer/internal/table"
)

func TestValidateSource(t *testing.T) {
	cases := map[string]bool{
		"./resumes":                                 true,
		"/srv/resumes":                              true,
		"gs://bucket/resumes":                       true,
		"s3://bucket/resumes":                       true,
		"":                                          false,
		"   ":                                       false,
		"https://drive.google.com/drive/folders/id": false,
	}

	for source, ok := range cases {
		err := validateSource(source)
		if ok {
			require.NoError(t, err, source)
		} else {
			require.Error(t, err, source)
		}
	}
}

func TestKeywordSets(t *testing.T) {
	genAI, aiML := keywordSets(&KeywordsConfig{GenAI: "LLM,RAG", AIML: ""})

	require.Equal(t, "gen_ai", genAI.Name)
	require.Equal(t, []string{"LLM", "RAG"}, genAI.Keywords)
	require.Equal(t, "ai_ml", aiML.Name)
	require.Empty(t, aiML.Keywords)

	genAI, aiML = keywordSets(nil)
	require.Empty(t, genAI.Keywords)
	require.Empty(t, aiML.Keywords)
}

func TestNewRecognizer(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	rec, recLogger, err := newRecognizer(context.Background(), &RecognizerConfig{Stopwords: []string{"Acme"}}, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &ner.Heuristic{}, rec)
	require.NotNil(t, recLogger)

	_, _, err = newRecognizer(context.Background(), &RecognizerConfig{Provider: "spacy"}, zap.NewNop())
	require.ErrorContains(t, err, "unsupported name recognizer")

	_, _, err = newRecognizer(context.Background(), &RecognizerConfig{Provider: "Gemini"}, zap.NewNop())
	require.ErrorContains(t, err, "gemini api key")
}

func TestScoreReport(t *testing.T) {
	tbl := table.New()
	tbl.Append(resume.Record{
		Name:  "Jane Doe",
		GenAI: keywords.Result{Score: 2, Matched: []string{"LLM", "RAG"}},
		AIML:  keywords.Result{Score: 0, Matched: []string{}},
	})
	tbl.Append(resume.Record{Name: ner.Unknown})

	report := scoreReport(tbl)
	require.Len(t, report, 2)
	require.Equal(t, reportLine{
		Seq:          1,
		Name:         "Jane Doe",
		GenAIScore:   2,
		GenAIMatched: []string{"LLM", "RAG"},
		AIMLMatched:  []string{},
	}, report[0])
	require.Equal(t, 2, report[1].Seq)
}

func TestCompleteConfigKeepsProvidedValues(t *testing.T) {
	viper.Set("keywords.gen-ai", "LLM")
	viper.Set("keywords.ai-ml", "PyTorch")
	t.Cleanup(func() {
		viper.Set("keywords.gen-ai", nil)
		viper.Set("keywords.ai-ml", nil)
	})

	config := &Config{
		Source:   "./resumes",
		Output:   &OutputConfig{Path: "./reports"},
		Keywords: &KeywordsConfig{GenAI: "LLM", AIML: "PyTorch"},
	}

	require.NoError(t, completeConfig(config))
	require.Equal(t, "./resumes", config.Source)
	require.Equal(t, "./reports", config.Output.Path)
	require.Equal(t, "LLM", config.Keywords.GenAI)
	require.NotNil(t, config.Recognizer)
	require.NotNil(t, config.Recognizer.Gemini)

	require.Error(t, completeConfig(nil))
}
