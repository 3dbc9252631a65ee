package pattern

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/luckcraft/wagercore/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch
// archive repository
type ElasticsearchConfig struct {
	URL             string
	Username        string
	Password        string
	IndexPrefix     string
	RotationPeriod  time.Duration // how often to roll to a fresh index
	RetentionPeriod time.Duration // how long rotated indices are kept, 0 keeps forever
}

// DefaultElasticsearchConfig returns a default configuration
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:            "http://localhost:9200",
		IndexPrefix:    "wagercore",
		RotationPeriod: 30 * 24 * time.Hour,
	}
}

// ElasticsearchRepository decorates a base Repository and mirrors every
// appended outcome into a time-rotated Elasticsearch index for audit and
// analytics. Reads are always served by the base repository; archive writes
// are best-effort and never fail the bet that produced them.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	config   *ElasticsearchConfig

	mu           sync.Mutex
	currentIndex string
	lastRotation time.Time
}

// outcomeDocument is the indexed shape of an outcome
type outcomeDocument struct {
	OutcomeID       string    `json:"outcome_id"`
	GameID          int       `json:"game_id"`
	BetAmount       float64   `json:"bet_amount"`
	Win             bool      `json:"win"`
	Payout          float64   `json:"payout"`
	ProbabilityUsed float64   `json:"probability_used"`
	RandomValue     float64   `json:"random_value"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewElasticsearchRepository creates a new archive repository around a base
// repository
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	if config == nil {
		config = DefaultElasticsearchConfig()
	}
	if config.IndexPrefix == "" {
		config.IndexPrefix = "wagercore"
	}
	if config.RotationPeriod == 0 {
		config.RotationPeriod = 30 * 24 * time.Hour
	}

	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	r := &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		config:   config,
	}
	r.rotateIndex(time.Now())
	return r, nil
}

// rotateIndex returns the index to write to, rolling to a fresh one when the
// rotation period has elapsed. Appends run concurrently, so the rotation
// state is read and advanced under one lock.
func (r *ElasticsearchRepository) rotateIndex(now time.Time) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentIndex == "" || now.Sub(r.lastRotation) >= r.config.RotationPeriod {
		r.currentIndex = fmt.Sprintf("%s-outcomes-%s", r.config.IndexPrefix, now.Format("2006.01"))
		r.lastRotation = now
	}
	return r.currentIndex
}

// Append records the outcome in the base repository, then indexes an audit
// document. Indexing failures are logged, not returned.
func (r *ElasticsearchRepository) Append(ctx context.Context, outcome *entities.Outcome) error {
	if err := r.baseRepo.Append(ctx, outcome); err != nil {
		return err
	}

	index := r.rotateIndex(time.Now())

	doc := outcomeDocument{
		OutcomeID:       outcome.ID,
		GameID:          outcome.GameID,
		BetAmount:       outcome.BetAmount,
		Win:             outcome.Win,
		Payout:          outcome.Payout,
		ProbabilityUsed: outcome.ProbabilityUsed,
		RandomValue:     outcome.RandomValue,
		Timestamp:       outcome.Timestamp,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		log.Printf("Error marshaling outcome %s for archive: %v", outcome.ID, err)
		return nil
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: outcome.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		log.Printf("Error archiving outcome %s: %v", outcome.ID, err)
		return nil
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("Error archiving outcome %s: %s", outcome.ID, res.String())
	}
	return nil
}

// Indices lists the archive indices matching the repository's prefix
func (r *ElasticsearchRepository) Indices(ctx context.Context) ([]string, error) {
	req := esapi.CatIndicesRequest{
		Index:  []string{fmt.Sprintf("%s-outcomes-*", r.config.IndexPrefix)},
		Format: "json",
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("error listing archive indices: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error listing archive indices: %s", res.String())
	}

	var rows []struct {
		Index string `json:"index"`
	}
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("error decoding index listing: %w", err)
	}

	indices := make([]string, 0, len(rows))
	for _, row := range rows {
		indices = append(indices, row.Index)
	}
	return indices, nil
}

// PruneOldIndices deletes archive indices whose month falls outside the
// configured retention period. With no retention configured it does nothing.
func (r *ElasticsearchRepository) PruneOldIndices(ctx context.Context) error {
	if r.config.RetentionPeriod <= 0 {
		return nil
	}

	indices, err := r.Indices(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	cutoff := now.Add(-r.config.RetentionPeriod)
	current := r.rotateIndex(now)
	suffixPrefix := fmt.Sprintf("%s-outcomes-", r.config.IndexPrefix)

	var stale []string
	for _, index := range indices {
		if index == current {
			continue
		}
		stamp, err := time.Parse("2006.01", strings.TrimPrefix(index, suffixPrefix))
		if err != nil {
			log.Printf("Skipping archive index with unrecognized name %s: %v", index, err)
			continue
		}
		// Compare against the end of the index's month so a partially
		// retained month is kept
		if stamp.AddDate(0, 1, 0).Before(cutoff) {
			stale = append(stale, index)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	req := esapi.IndicesDeleteRequest{Index: stale}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error deleting archive indices: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error deleting archive indices: %s", res.String())
	}
	log.Printf("Pruned %d archive indices older than %s", len(stale), cutoff.Format("2006.01"))
	return nil
}

// Recent delegates to the base repository
func (r *ElasticsearchRepository) Recent(ctx context.Context, gameID int, limit int) ([]*entities.Outcome, error) {
	return r.baseRepo.Recent(ctx, gameID, limit)
}

// Count delegates to the base repository
func (r *ElasticsearchRepository) Count(ctx context.Context, gameID int) (int, error) {
	return r.baseRepo.Count(ctx, gameID)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
