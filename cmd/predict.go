package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/formfiller/resume-matcher/internal/classifier"
	"github.com/formfiller/resume-matcher/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var predictCmd = &cobra.Command{
	Use:   "predict [labels...]",
	Short: "Classify form field labels into canonical field types",
	Run: func(cmd *cobra.Command, args []string) {
		runPredict(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().String("model", "", "model artifact file (default from config)")
	predictCmd.Flags().String("file", "", "newline-delimited file with one label per line")
}

type predictOutput struct {
	Label string `json:"label"`
	// Category is null for labels that could not be classified.
	Category   *string `json:"category"`
	Confidence float64 `json:"confidence"`
}

func runPredict(cmd *cobra.Command, args []string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if labelsFile := cmd.Flag("file").Value.String(); labelsFile != "" {
		fromFile, err := readLabels(labelsFile)
		if err != nil {
			logger.Fatal("reading labels file", zap.Error(err))
		}
		args = append(args, fromFile...)
	}
	if len(args) == 0 {
		logger.Fatal("no labels given", zap.String("hint", "pass labels as arguments or via --file"))
	}

	modelFile := cmd.Flag("model").Value.String()
	if modelFile == "" {
		modelFile = config.Classifier.ModelFile
	}

	c, err := classifier.Load(modelFile)
	if err != nil {
		logger.Fatal("loading model", zap.Error(err))
	}

	logger.Debug("classifying labels",
		zap.String("model", modelFile),
		zap.Int("labels", len(args)),
		zap.Int("classes", len(c.Classes())),
	)

	out := make([]predictOutput, 0, len(args))
	for _, pred := range c.PredictBatch(args) {
		entry := predictOutput{
			Label:      pred.Label,
			Confidence: utils.Round(pred.Confidence, 3),
		}
		if pred.Category != "" {
			category := pred.Category
			entry.Category = &category
		}
		out = append(out, entry)
	}

	pretty, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(pretty))
}

func readLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, 16)
	for _, line := range strings.Split(string(data), "\n") {
		if line := strings.TrimSpace(line); line != "" {
			labels = append(labels, line)
		}
	}
	return labels, nil
}
