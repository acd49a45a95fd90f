package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/formfiller/resume-matcher/internal/skills"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var skillsCmd = &cobra.Command{
	Use:   "skills [file or stored resume id]",
	Short: "Extract known skill terms from a resume or job description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSkills(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().String("terms", "", "skill dictionary file, one term per line (default is the built-in dictionary)")
}

func runSkills(cmd *cobra.Command, args []string) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	termsFile := cmd.Flag("terms").Value.String()
	if termsFile == "" {
		termsFile = config.Skills.TermsFile
	}

	dict := skills.DefaultDictionary()
	if termsFile != "" {
		dict, err = skills.LoadFile(termsFile)
		if err != nil {
			logger.Fatal("loading skill dictionary", zap.Error(err))
		}
	}

	text, err := resolveResumeText(context.Background(), args[0], config)
	if err != nil {
		logger.Fatal("reading document", zap.Error(err))
	}

	found := skills.Extract(text, dict)
	logger.Debug("extracted skills",
		zap.Int("dictionary_terms", dict.Len()),
		zap.Int("found", len(found)),
	)

	pretty, _ := json.MarshalIndent(map[string][]string{"skills": found}, "", "  ")
	fmt.Println(string(pretty))
}
