package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/formfiller/resume-matcher/internal/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage stored resumes",
}

var resumeAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Extract a resume file and store its text",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runResumeAdd(cmd, args)
	},
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	Run: func(_ *cobra.Command, _ []string) {
		runResumeList()
	},
}

var resumeRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a stored resume",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runResumeRm(args[0])
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.AddCommand(resumeAddCmd, resumeListCmd, resumeRmCmd)

	resumeAddCmd.Flags().StringP("name", "n", "", "display name (default is the file name)")
}

func runResumeAdd(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	text, err := extract.File(args[0])
	if err != nil {
		logger.Fatal("extracting resume text", zap.Error(err))
	}

	name := cmd.Flag("name").Value.String()
	if name == "" {
		name = filepath.Base(args[0])
	}

	s, err := openStore(ctx, config)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer s.Close()

	resume, err := s.Add(ctx, name, text)
	if err != nil {
		logger.Fatal("storing resume", zap.Error(err))
	}

	logger.Info("resume stored",
		zap.String("id", resume.ID),
		zap.String("name", resume.Name),
		zap.Int("chars", len(resume.Text)),
	)
}

func runResumeList() {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	s, err := openStore(ctx, config)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer s.Close()

	resumes, err := s.List(ctx)
	if err != nil {
		logger.Fatal("listing resumes", zap.Error(err))
	}

	type entry struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Chars     int    `json:"chars"`
		CreatedAt string `json:"created_at"`
	}

	out := make([]entry, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, entry{
			ID:        r.ID,
			Name:      r.Name,
			Chars:     len(r.Text),
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}

	pretty, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(pretty))
}

func runResumeRm(id string) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	s, err := openStore(ctx, config)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer s.Close()

	if err := s.Delete(ctx, id); err != nil {
		logger.Fatal("removing resume", zap.Error(err))
	}

	logger.Info("resume removed", zap.String("id", id))
}
