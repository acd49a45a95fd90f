package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/formfiller/resume-matcher/internal/extract"
	"github.com/formfiller/resume-matcher/internal/match"
	"github.com/formfiller/resume-matcher/internal/store"
	"github.com/formfiller/resume-matcher/internal/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description and list missing keywords",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "resume file or stored resume id (interactive picker when omitted)")
	matchCmd.Flags().String("jd", "", "job description file (required)")
	matchCmd.Flags().StringP("method", "m", "", "matching method: tfidf or embedding")

	matchCmd.MarkFlagRequired("jd")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jdText, err := extract.File(cmd.Flag("jd").Value.String())
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	resumeText, err := resolveResumeText(ctx, cmd.Flag("resume").Value.String(), config)
	if err != nil {
		logger.Fatal("resolving resume", zap.Error(err))
	}

	factory, err := newMatcherFactory(ctx, config, logger)
	if err != nil {
		logger.Fatal("building matcher", zap.Error(err))
	}

	method := cmd.Flag("method").Value.String()
	if method == "" {
		method = config.Matcher.Method
	}

	strategy := factory.Pick(method)
	logger.Debug("matching",
		zap.String("method", strategy.Name()),
		zap.String("jd_preview", utils.TruncateForLog(jdText, 120)),
		zap.String("resume_preview", utils.TruncateForLog(resumeText, 120)),
	)

	result, err := strategy.Match(ctx, resumeText, jdText)
	if err != nil {
		if errors.Is(err, match.ErrEmptyVocabulary) {
			logger.Fatal("nothing to compare",
				zap.Error(err),
				zap.String("hint", "both documents are empty or contain only stop words"),
			)
		}
		logger.Fatal("matching failed", zap.Error(err))
	}

	result.Score = utils.Round(result.Score, 3)
	for i := range result.Missing {
		result.Missing[i].Weight = utils.Round(result.Missing[i].Weight, 3)
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))
}

// resolveResumeText accepts a file path, a stored resume id, or nothing, in
// which case the user picks interactively from the store.
func resolveResumeText(ctx context.Context, arg string, config *Config) (string, error) {
	if arg != "" {
		if _, err := os.Stat(arg); err == nil {
			return extract.File(arg)
		}

		s, err := openStore(ctx, config)
		if err != nil {
			return "", err
		}
		defer s.Close()

		resume, err := s.Get(ctx, arg)
		if err != nil {
			return "", err
		}
		return resume.Text, nil
	}

	s, err := openStore(ctx, config)
	if err != nil {
		return "", err
	}
	defer s.Close()

	resume, err := pickStoredResume(ctx, s)
	if err != nil {
		return "", err
	}
	return resume.Text, nil
}

func pickStoredResume(ctx context.Context, s *store.Store) (*store.Resume, error) {
	resumes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(resumes) == 0 {
		return nil, errors.New("no stored resumes: pass --resume or add one with 'resume add'")
	}

	items := make([]string, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, fmt.Sprintf("%s %s", r.ID, r.Name))
	}

	prompt := promptui.Select{
		Label: "Choose a resume and press ENTER",
		Items: items,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return &resumes[idx], nil
}
