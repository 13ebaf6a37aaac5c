package signalscan

// Config holds all environment variables
var Config struct {
	OpenAIAPIKey   string
	EmbeddingModel string
	DataDir        string
	TablesDir      string
}
