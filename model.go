package signalscan

import (
	"log"
	"time"

	"github.com/spf13/cobra"
)

// ModelCmd: Inspects and switches the embedding backend
var ModelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage the embedding backend",
}

var modelInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the configured embedding backend and known models",
	Run: func(cmd *cobra.Command, args []string) {
		provider := NewProvider(Config.EmbeddingModel, NewOpenAIEncoder)
		info := provider.Info()
		log.Printf("Current model: %s", info.CurrentModel)
		log.Printf("Status: %s", info.Status)
		if info.Error != "" {
			log.Printf("Last error: %s", info.Error)
		}
		log.Println("Known models:")
		for _, m := range info.KnownModels {
			log.Printf("  %s", m)
		}
	},
}

// loadTimeout bounds how long a switch waits for the backend to settle.
const loadTimeout = 2 * time.Minute

var modelSwitchCmd = &cobra.Command{
	Use:   "switch <model>",
	Short: "Verify that an embedding backend loads",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		provider := NewProvider(Config.EmbeddingModel, NewOpenAIEncoder)
		if err := provider.Switch(args[0]); err != nil {
			log.Fatalf("Failed to switch backend: %v", err)
		}
		info := waitForLoad(provider, loadTimeout)
		if info.Status == StatusLoading {
			log.Fatalf("Timed out waiting for backend %s to load", args[0])
		}
		if info.Status != StatusReady {
			log.Fatalf("Backend %s did not load: %s", args[0], info.Error)
		}
		log.Printf("Backend ready: %s", info.CurrentModel)
	},
}

// waitForLoad polls until the in-flight load settles or the timeout
// elapses; a Loading status in the returned info means the wait gave up.
func waitForLoad(provider *Provider, timeout time.Duration) ProviderInfo {
	deadline := time.Now().Add(timeout)
	for {
		info := provider.Info()
		if info.Status != StatusLoading || !time.Now().Before(deadline) {
			return info
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func init() {
	ModelCmd.AddCommand(modelInfoCmd)
	ModelCmd.AddCommand(modelSwitchCmd)
}
