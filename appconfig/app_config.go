package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoURI         string `env:"MONGO-URI" ini:"mongo_uri"`
	ComplaintAPIBase string `env:"COMPLAINT-API-BASE" ini:"complaint_api_base"`

	FuzzyThreshold       float64 `ini:"fuzzy_threshold"`
	TopicSwitchThreshold float64 `ini:"topic_switch_threshold"`
	HistoryWindow        int     `ini:"history_window"`
	MaxTurns             int     `ini:"max_turns"`
	RefineFollowups      bool    `ini:"refine_followups"`

	OllamaModel    string `ini:"ollama_model"`
	EmbeddingModel string `ini:"embedding_model"`
}
