package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/formfiller/resume-matcher/internal/extract"
	"github.com/formfiller/resume-matcher/internal/selector"
	"github.com/formfiller/resume-matcher/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var selectCmd = &cobra.Command{
	Use:   "select [resume files...]",
	Short: "Rank resumes against a job description and pick the best one",
	Long: "Rank resumes against a job description and pick the best one.\n" +
		"Resumes are read from the given files, or from the store when no files are given.",
	Run: func(cmd *cobra.Command, args []string) {
		runSelect(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().String("jd", "", "job description file (required)")
	selectCmd.MarkFlagRequired("jd")
}

type rankedResume struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}

type selectOutput struct {
	Best    *rankedResume  `json:"best"`
	Ranking []rankedResume `json:"ranking"`
}

func runSelect(cmd *cobra.Command, args []string) {
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

	candidates, names, err := loadCandidates(ctx, args, config)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	logger.Info("ranking candidates", zap.Int("count", len(candidates)))

	best, ranking, err := selector.New(config.Selector.BumpTerms).Select(jdText, candidates)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	out := selectOutput{Ranking: make([]rankedResume, 0, len(ranking))}
	for _, entry := range ranking {
		out.Ranking = append(out.Ranking, rankedResume{
			ID:    entry.ID,
			Name:  names[entry.ID],
			Score: utils.Round(entry.Score, 4),
		})
	}
	if best != nil {
		out.Best = &rankedResume{ID: best.ID, Name: names[best.ID], Score: out.Ranking[0].Score}
	}

	pretty, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(pretty))
}

// loadCandidates reads resumes from files, falling back to the store when no
// files are given. It returns the candidates plus an id-to-name mapping for
// the output.
func loadCandidates(ctx context.Context, files []string, config *Config) ([]selector.Candidate, map[string]string, error) {
	names := make(map[string]string)

	if len(files) > 0 {
		candidates := make([]selector.Candidate, 0, len(files))
		for _, file := range files {
			text, err := extract.File(file)
			if err != nil {
				return nil, nil, err
			}
			id := filepath.Base(file)
			candidates = append(candidates, selector.Candidate{ID: id, Text: text})
			names[id] = file
		}
		return candidates, names, nil
	}

	s, err := openStore(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	defer s.Close()

	resumes, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	candidates := make([]selector.Candidate, 0, len(resumes))
	for _, r := range resumes {
		candidates = append(candidates, selector.Candidate{ID: r.ID, Text: r.Text})
		names[r.ID] = r.Name
	}
	return candidates, names, nil
}
