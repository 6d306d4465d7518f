package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

const DefaultVectorSize = 768

// QdrantService stores job description embeddings and scores candidate
// embeddings against them.
type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertJob(ctx context.Context, jobKey, jobID string, embedding []float32) error
	ScoreAgainstJob(ctx context.Context, embedding []float32, jobKey string) ([]SearchResult, error)
}

type SearchResult struct {
	JobKey string
	JobID  string
	Score  float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

var jobNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("agentic-recruiter/jobs"))

// JobKey identifies a job description in the vector index.
func JobKey(description string) string {
	sum := sha256.Sum256([]byte(description))
	return hex.EncodeToString(sum[:])
}

// jobPointID derives the point id of a job description from its key.
func jobPointID(jobKey string) *qdrant.PointId {
	return qdrant.NewID(uuid.NewSHA1(jobNamespace, []byte(jobKey)).String())
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize uint64, logger *zap.Logger) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one from the URL default.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	if vectorSize == 0 {
		vectorSize = DefaultVectorSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		logger:         logger.With(zap.String("collection", collectionName)),
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Debug("collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("collection created", zap.Uint64("vector_size", q.vectorSize))
	return nil
}

// UpsertJob implements QdrantService. The point id is derived from jobKey
// so indexing the same description twice overwrites the earlier point.
func (q *qdrantService) UpsertJob(ctx context.Context, jobKey, jobID string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      jobPointID(jobKey),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"job_key": jobKey,
			"job_id":  jobID,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert job point: %w", err)
	}

	return nil
}

// ScoreAgainstJob implements QdrantService.
func (q *qdrantService) ScoreAgainstJob(ctx context.Context, embedding []float32, jobKey string) ([]SearchResult, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_key", jobKey),
			},
		},
		Limit:       qdrant.PtrOf(uint64(1)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query job point: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, SearchResult{
			JobKey: payloadString(point.Payload, "job_key"),
			JobID:  payloadString(point.Payload, "job_id"),
			Score:  point.Score,
		})
	}

	return results, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	value, ok := payload[key]
	if !ok {
		return ""
	}
	if s, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
		return s.StringValue
	}
	return ""
}
