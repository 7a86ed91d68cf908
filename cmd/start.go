/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/handler"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document Q&A server",
	Long:  `Starts the HTTP server that handles document uploads and questions`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
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

		redisStore := database.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}

		aiService := service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenRouterAPIKey, cfg.Model)
		answerService := service.NewAnswerService(
			redisStore,
			redisStore,
			indexManager,
			embedder,
			service.NewPromptBuilder(),
			aiService,
			cfg.TopK,
		)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		healthHandler := handler.NewHealthHandler()
		uploadHandler := handler.NewUploadHandler(ingestService)
		questionHandler := handler.NewQuestionHandler(answerService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", healthHandler.HandleHealth)
		router.POST("/upload-docs", uploadHandler.HandleUpload)
		router.POST("/ask-question", questionHandler.HandleQuestion)

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
