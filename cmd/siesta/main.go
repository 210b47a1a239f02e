// Copyright 2025 Poiesic Systems
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/siesta"
	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/ingestion"
	"github.com/poiesic/siesta/orchestrator"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "siesta",
		Usage: "Conversational shopping assistant for a mattress store",
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
				Name:   "chat",
				Usage:  "Talk to the assistant interactively",
				Action: chatCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:  "user",
						Usage: "User ID for the conversation",
						Value: "cli",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Chat model name",
					},
					&cli.StringFlag{
						Name:  "classifier-model",
						Usage: "Intent classifier model name",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest text files into the knowledge base",
				ArgsUsage: "FILE...",
				Action:    ingestCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
				),
			},
			{
				Name:      "fetch",
				Usage:     "Fetch site pages and ingest them into the knowledge base",
				ArgsUsage: "PATH...",
				Action:    fetchCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:     "base-url",
						Usage:    "Site base URL to fetch pages from",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Recompute the vectors of all stored chunks",
				Action: reembedCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
				),
			},
			{
				Name:   "users",
				Usage:  "List users with conversation history",
				Action: usersCommand,
				Flags:  storeFlags(),
			},
			{
				Name:   "recent",
				Usage:  "Show the latest recorded interactions",
				Action: recentCommand,
				Flags: append(storeFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of interactions to show",
						Value: 20,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the data directory",
			Required: true,
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	var opts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if m := c.String("chat-model"); m != "" {
		opts = append(opts, ai.WithChatModel(m))
	}
	if m := c.String("classifier-model"); m != "" {
		opts = append(opts, ai.WithClassifierModel(m))
	}
	if m := c.String("embedding-model"); m != "" {
		opts = append(opts, ai.WithEmbeddingModel(m))
	}
	return ai.NewConfig(opts...)
}

func openAssistant(c *cli.Context) (*siesta.Assistant, error) {
	assistant, err := siesta.New(c.String("db"), siesta.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return nil, fmt.Errorf("failed to open assistant: %w", err)
	}
	return assistant, nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	userID := c.String("user")
	fmt.Fprintln(os.Stderr, "Escribe tu pregunta. Línea vacía para salir.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		resp, err := assistant.Ask(ctx, &orchestrator.Request{
			UserID:  userID,
			Message: question,
		})
		if err != nil {
			return err
		}

		fmt.Println(resp.Answer)
		if resp.Tool != "" {
			fmt.Fprintf(os.Stderr, "[%s via %s]\n", resp.Intent, resp.Tool)
		} else {
			fmt.Fprintf(os.Stderr, "[%s]\n", resp.Intent)
		}
	}

	return scanner.Err()
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	var docs []ingestion.Document
	for _, path := range c.Args().Slice() {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, ingestion.Document{
			Source: filepath.Base(path),
			Text:   string(text),
		})
	}

	return reportResults(assistant.Ingest(ctx, docs))
}

func fetchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one page path is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	fetcher, err := assistant.NewFetcher(c.String("base-url"))
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	docs := fetcher.FetchAll(ctx, c.Args().Slice())
	if len(docs) == 0 {
		return fmt.Errorf("no pages could be fetched")
	}

	return reportResults(assistant.Ingest(ctx, docs))
}

func reportResults(results []ingestion.Result) error {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Source, r.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d chunks\n", r.Source, r.Chunks)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	if err := assistant.Reembed(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func usersCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	users, err := assistant.Users(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		fmt.Println(user)
	}
	return nil
}

func recentCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	records, err := assistant.RecentInteractions(ctx, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, r := range records {
		marker := " "
		if r.IsError {
			marker = "!"
		}
		fmt.Printf("%s %s [%s] %s\n  Q: %s\n  A: %s\n",
			marker, r.CreatedAt.Format("2006-01-02 15:04:05"), r.UserID, r.Tool, r.Question, r.Answer)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
