package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/murtezataher/AgenticAIFYP/internal/config"
)

const app = "recruiter"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "recruiter screens resumes, runs scripted interviews and builds shortlists",
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("scorer", "", "fit scorer: lexical, semantic or vector (default from SCORER)")
	rootCmd.PersistentFlags().String("jobs", "", "YAML job catalog (default from JOBS_FILE)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed, 0 picks one from the clock")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("scorer", rootCmd.PersistentFlags().Lookup("scorer"))
	viper.BindPFlag("jobs", rootCmd.PersistentFlags().Lookup("jobs"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
}

// loadConfig reads the environment configuration and applies flag
// overrides on top of it.
func loadConfig() *config.Config {
	return applyFlags(config.Load(), viper.GetViper())
}

func applyFlags(cfg *config.Config, v *viper.Viper) *config.Config {
	if v.GetBool("debug") {
		cfg.Log.Debug = true
	}
	if v.GetBool("json") {
		cfg.Log.JSON = true
	}
	if scorer := strings.TrimSpace(v.GetString("scorer")); scorer != "" {
		cfg.Scoring.Scorer = strings.ToLower(scorer)
	}
	if jobs := v.GetString("jobs"); jobs != "" {
		cfg.JobsFile = jobs
	}
	if seed := v.GetUint64("seed"); seed != 0 {
		cfg.Scoring.RandomSeed = seed
	}

	return cfg
}
