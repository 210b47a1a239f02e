package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLoggerLevels(t *testing.T) {
	app := &cli.App{
		Name: "siesta",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			err := app.Run([]string{"siesta", "--log-level", level})
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := app.Run([]string{"siesta", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestAIConfigFromFlags(t *testing.T) {
	var captured *cli.Context
	app := &cli.App{
		Name: "siesta",
		Commands: []*cli.Command{
			{
				Name: "chat",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host"},
					&cli.StringFlag{Name: "chat-model"},
					&cli.StringFlag{Name: "classifier-model"},
					&cli.StringFlag{Name: "embedding-model"},
				},
				Action: func(c *cli.Context) error {
					captured = c
					return nil
				},
			},
		},
	}

	t.Run("flags override the defaults", func(t *testing.T) {
		err := app.Run([]string{"siesta", "chat",
			"--host", "http://models.example.com",
			"--chat-model", "qwen2.5:32b",
		})
		require.NoError(t, err)

		config := aiConfigFromFlags(captured)
		require.NoError(t, config.Validate())
		assert.Equal(t, "http://models.example.com/v1", config.ChatHost)
		assert.Equal(t, "http://models.example.com/v1", config.EmbeddingHost)
		assert.Equal(t, "qwen2.5:32b", config.ChatModel)
	})

	t.Run("defaults survive absent flags", func(t *testing.T) {
		err := app.Run([]string{"siesta", "chat"})
		require.NoError(t, err)

		config := aiConfigFromFlags(captured)
		assert.NotEmpty(t, config.ChatHost)
		assert.NotEmpty(t, config.ChatModel)
		require.NoError(t, config.Validate())
	})
}
