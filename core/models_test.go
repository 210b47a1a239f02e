package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("sobre-garantias.php_0")
		b := IDFromContent("sobre-garantias.php_0")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct IDs", func(t *testing.T) {
		a := IDFromContent("sobre-garantias.php_0")
		b := IDFromContent("sobre-garantias.php_1")
		assert.NotEqual(t, a, b)
	})
}

func TestChunkStableID(t *testing.T) {
	chunk := &Chunk{Source: "sobre-como-comprar.php", Index: 3, Text: "..."}
	assert.Equal(t, "sobre-como-comprar.php_3", chunk.StableID())

	record := &ChunkRecord{Source: "sobre-como-comprar.php", Index: 3}
	assert.Equal(t, chunk.StableID(), record.StableID())
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		label string
		want  Intent
	}{
		{"RECOMMEND", IntentRecommend},
		{"SEARCH", IntentSearch},
		{"PRODUCT_SHEET", IntentProductSheet},
		{"GENERAL", IntentGeneral},
		{"BRAND_GENERAL", IntentBrandGeneral},
		{"OFF_TOPIC", IntentOffTopic},
		{" off_topic \n", IntentOffTopic},
		{"recommend", IntentRecommend},
		{"", IntentGeneral},
		{"SOMETHING_ELSE", IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.label))
		})
	}
}

func TestIntentString(t *testing.T) {
	for _, label := range IntentLabels() {
		assert.Equal(t, label, ParseIntent(label).String())
	}
	assert.Equal(t, "GENERAL", Intent(0).String())
}

func TestMessageRecordMessage(t *testing.T) {
	record := &MessageRecord{Role: RoleAssistant, Content: "hola"}
	msg := record.Message()
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Equal(t, "hola", msg.Content)
}
