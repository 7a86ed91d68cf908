/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the vector index from the document directory",
	Long: `Extracts text from every PDF in the document directory, splits it
into chunks, embeds the chunks and replaces the persisted vector index.
The previous index stays in place if the build fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		pdfService := service.NewPDFService()
		chunkService := service.NewChunkService(types.DocumentServiceConfig{
			MaxChunkSize: cfg.MaxChunkSize,
			OverlapSize:  cfg.OverlapSize,
		})
		embedder := service.NewOpenAIEmbedder(cfg.EmbedEndpoint, cfg.OpenAIAPIKey, cfg.EmbedModel)
		indexManager := database.NewIndexManager(cfg.IndexPath, cfg.EmbedModel)
		ingestService, err := service.NewIngestService(cfg.DocumentDir, pdfService, chunkService, embedder, indexManager)
		if err != nil {
			log.Fatalf("Failed to initialize ingestion: %v", err)
		}

		count, err := ingestService.Ingest(context.Background())
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		log.Printf("Ingestion completed, %d chunks indexed at %s", count, cfg.IndexPath)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
