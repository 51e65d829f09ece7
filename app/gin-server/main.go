package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/config"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/api/handlers"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/api/middleware"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/api/routes"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/cache"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/knowledge"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/logger"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/providers/ai"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/services"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// Postgres backs the knowledge base; the server cannot answer without it
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.EnsurePgvector(); err != nil {
		log.Fatalf("pgvector init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&knowledge.KnowledgeChunk{}); err != nil {
		log.Fatalf("knowledge migration error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Gemini classifies queries and generates answers
	gemini, err := ai.NewVertexGemini(ctx,
		os.Getenv("GCP_PROJECT_ID"),
		os.Getenv("GCP_LOCATION"),
		os.Getenv("GEMINI_MODEL"),
	)
	if err != nil {
		log.Fatalf("Vertex AI init error: %v", err)
	}
	defer gemini.Close()

	embedder := ai.NewOllamaEmbedder(os.Getenv("EMBEDDING_URL"), os.Getenv("EMBEDDING_MODEL"))

	// Redis is optional: with it, classifications are memoized
	var classifier ai.Classifier = gemini
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URI") != "" {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		classifier = ai.NewCachedClassifier(gemini, cache.NewRedisCache(config.RedisClient), log)
		log.Info("Redis connected, classification cache enabled")
	}

	// Mongo is optional: with it, conversations survive restarts
	var convs store.ConversationStore = store.NewMemoryStore()
	if os.Getenv("MONGO_URI") != "" {
		if err := config.InitMongo(); err != nil {
			log.Fatalf("MongoDB init error: %v", err)
		}
		if err := config.EnsureMongoIndexes(); err != nil {
			log.Fatalf("MongoDB index error: %v", err)
		}
		convs = store.NewMongoStore(config.MongoDatabase())
		log.Info("MongoDB connected, persistent conversation store enabled")
	}

	engine := knowledge.NewPgvectorEngine(config.PostgresDB, embedder)
	retriever := knowledge.NewRetriever(engine, log)

	policy := services.NewEscalationPolicy(services.DefaultPolicyConfig())
	priorities := services.NewPriorityResolver(nil)

	chatSvc := services.NewChatService(classifier, gemini, retriever, policy, priorities, convs, log)
	statsSvc := services.NewStatsService(convs)
	knowledgeSvc := services.NewKnowledgeService(engine, retriever, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Chat:         handlers.NewChatHandler(chatSvc),
		Conversation: handlers.NewConversationHandler(chatSvc),
		Stats:        handlers.NewStatsHandler(statsSvc),
		Knowledge:    handlers.NewKnowledgeHandler(knowledgeSvc),
		WS:           handlers.NewWSHandler(chatSvc, log),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
