// Copyright 2025 Axelwave Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/axelwave/dealerscout/ai"
	"github.com/axelwave/dealerscout/ai/openai"
	"github.com/axelwave/dealerscout/core"
	"github.com/axelwave/dealerscout/discovery"
	"github.com/axelwave/dealerscout/export"
	"github.com/axelwave/dealerscout/kb"
)

func main() {
	app := &cli.App{
		Name:  "dealerscout",
		Usage: "Company discovery pipeline for dealership and partner prospecting",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "discover",
				Usage:  "Run a discovery pipeline and print the ranked shortlist",
				Action: discoverCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Discovery mode (customers, partners)",
						Value:   "customers",
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Shortlist size",
						Value:   10,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum composite score in [0,1]",
						Value: 0.3,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "generator-model",
						Usage:    "Generative model name for rationales",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "profile",
						Aliases: []string{"p"},
						Usage:   "Path to a TOML vendor profile (built-in profile if omitted)",
					},
					&cli.StringFlag{
						Name:  "corpus",
						Usage: "Path to a JSON company corpus (built-in seed corpus if omitted)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (table, json, csv)",
						Value:   "table",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (stdout if omitted)",
					},
				},
			},
			{
				Name:   "corpus",
				Usage:  "Print the built-in seed corpus as JSON",
				Action: corpusCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func discoverCommand(c *cli.Context) error {
	ctx := context.Background()
	logger := slog.Default()

	mode, err := core.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	profile, weights, err := loadProfile(c.String("profile"), mode)
	if err != nil {
		return err
	}

	knowledgeBase, err := openCorpus(c.String("corpus"), logger)
	if err != nil {
		return err
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	engineConfig := discovery.DefaultConfig()
	engineConfig.K = c.Int("top")
	engineConfig.MinScore = c.Float64("min-score")
	engineConfig.Weights = weights

	engine, err := discovery.NewEngine(provider, knowledgeBase.Records(), engineConfig,
		discovery.WithLogger(logger))
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Run(ctx, profile)
	if err != nil {
		return fmt.Errorf("discovery run failed: %w", err)
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch formatName := c.String("format"); formatName {
	case "table":
		if err := printTable(out, result); err != nil {
			return err
		}
	default:
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if err := export.Write(out, result, format); err != nil {
			return err
		}
	}

	logger.Info("run summary",
		"runId", result.Meta.RunID,
		"entries", len(result.Entries),
		"considered", result.Meta.Considered,
		"rejected", result.Meta.Rejected.Total,
		"shortfall", result.Meta.Shortfall,
		"rounds", result.Meta.SearchRounds,
		"searchTime", result.Meta.Stages.Search,
		"analysisTime", result.Meta.Stages.Analysis,
		"validationTime", result.Meta.Stages.Validation)

	return nil
}

func corpusCommand(c *cli.Context) error {
	knowledgeBase := kb.Seed(slog.Default())
	return kb.Dump(os.Stdout, knowledgeBase)
}

func openCorpus(path string, logger *slog.Logger) (*kb.KnowledgeBase, error) {
	if path == "" {
		return kb.Seed(logger), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer file.Close()

	knowledgeBase, stats, err := kb.Load(file, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if stats.Rejected > 0 {
		logger.Warn("corpus records rejected at load", "rejected", stats.Rejected)
	}
	return knowledgeBase, nil
}

func printTable(out *os.File, result *core.DiscoveryResult) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tCATEGORY\tSCORE\tRATIONALE")
	for _, row := range export.Entries(result) {
		rationale := row.Rationale
		if row.RationaleFailed {
			rationale = "(generation failed)"
		}
		if len(rationale) > 100 {
			rationale = rationale[:100] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%s\n",
			row.Rank, row.Name, row.Category, row.Composite, rationale)
	}
	return w.Flush()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
