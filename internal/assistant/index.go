package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/telemetry/tracing"
)

const upsertBatchSize = 64

// KnowledgeIndex is the persisted vector index over the knowledge base
// chunks, backed by a qdrant collection.
type KnowledgeIndex struct {
	client         *qdrant.Client
	collectionName string
}

func NewKnowledgeIndex(host string, port int, collectionName string) (*KnowledgeIndex, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}
	return &KnowledgeIndex{
		client:         client,
		collectionName: collectionName,
	}, nil
}

// EnsureIndexed creates the collection and embeds+indexes all chunks, but
// only when the collection does not exist yet. An existing collection is
// reused as is, so restarts skip the expensive embedding pass.
func (i *KnowledgeIndex) EnsureIndexed(
	ctx context.Context,
	chunks []Chunk,
	embed func(ctx context.Context, text string) ([]float32, error),
) error {
	exists, err := i.client.CollectionExists(ctx, i.collectionName)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", i.collectionName, err)
	}
	if exists {
		log.Infof("qdrant collection %s already present, skipping indexing", i.collectionName)
		return nil
	}

	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to index")
	}

	firstVector, err := embed(ctx, chunks[0].Text)
	if err != nil {
		return fmt.Errorf("embed first chunk: %w", err)
	}

	if err := i.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: i.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(len(firstVector)),
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("create collection %s: %w", i.collectionName, err)
	}

	log.Infof("indexing %d knowledge chunks into qdrant collection %s", len(chunks), i.collectionName)

	points := make([]*qdrant.PointStruct, 0, upsertBatchSize)
	for chunkIdx, chunk := range chunks {
		var vector []float32
		if chunkIdx == 0 {
			vector = firstVector
		} else {
			vector, err = embed(ctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embed chunk %d from %s: %w", chunkIdx, chunk.Source, err)
			}
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content": chunk.Text,
				"source":  chunk.Source,
			}),
		})

		if len(points) == upsertBatchSize || chunkIdx == len(chunks)-1 {
			if _, err := i.client.Upsert(ctx, &qdrant.UpsertPoints{
				CollectionName: i.collectionName,
				Points:         points,
			}); err != nil {
				return fmt.Errorf("upsert points: %w", err)
			}
			points = points[:0]
		}
	}

	return nil
}

// Search returns the contents of the limit closest chunks.
func (i *KnowledgeIndex) Search(ctx context.Context, vector []float32, limit int) ([]string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "knowledgeIndex.Search")
	defer span.End()

	limitUint64 := uint64(limit)
	points, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limitUint64,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	contents := make([]string, 0, len(points))
	for _, point := range points {
		if point.Payload == nil {
			continue
		}
		if content := point.Payload["content"].GetStringValue(); content != "" {
			contents = append(contents, content)
		}
	}
	return contents, nil
}

func (i *KnowledgeIndex) Close() error {
	return i.client.Close()
}
