package activity

import (
	"fmt"
	"os"
	"strings"
	"time"

	"authflow/internal/configuration"
	"authflow/internal/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const schemaVersion = "1"

var schemaVersionKey = []byte("schema_version")

// FilesystemActivityEntry is the document shape indexed in bleve.
type FilesystemActivityEntry struct {
	Operation string    `json:"operation"`
	Email     string    `json:"email"`
	Outcome   string    `json:"outcome"`
	Status    float64   `json:"status"`
	RequestID string    `json:"request_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// FilesystemClient implements IActivityLogger using a local bleve index.
type FilesystemClient struct {
	index bleve.Index
}

// NewFilesystemClient opens the attempt history at the configured directory.
// An index written with another schema version is discarded and recreated.
func NewFilesystemClient(config models.ActivityConfiguration) IActivityLogger {
	dir := config.Directory

	index, err := bleve.Open(dir)
	if err == nil {
		storedVersion, versionErr := index.GetInternal(schemaVersionKey)
		if versionErr != nil {
			zap.L().Fatal("Failed to get schema version", zap.Error(versionErr))
		}
		if string(storedVersion) == schemaVersion {
			return &FilesystemClient{index: index}
		}

		zap.L().Info("Schema version mismatch, recreating attempt history",
			zap.String("old_version", string(storedVersion)),
			zap.String("new_version", schemaVersion),
		)
		if err = index.Close(); err != nil {
			zap.L().Fatal("Failed to close old index", zap.Error(err))
		}
		if err = os.RemoveAll(dir); err != nil {
			zap.L().Fatal("Failed to remove old index", zap.Error(err))
		}
	}

	index, err = bleve.New(dir, buildIndexMapping())
	if err != nil {
		zap.L().Fatal("Failed to create attempt history index", zap.Error(err))
	}
	if err = index.SetInternal(schemaVersionKey, []byte(schemaVersion)); err != nil {
		zap.L().Fatal("Failed to set schema version", zap.Error(err))
	}
	return &FilesystemClient{index: index}
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	keywordMapping := bleve.NewKeywordFieldMapping()
	dateMapping := bleve.NewDateTimeFieldMapping()
	numericMapping := bleve.NewNumericFieldMapping()
	textMapping := bleve.NewTextFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("operation", keywordMapping)
	docMapping.AddFieldMappingsAt("email", keywordMapping)
	docMapping.AddFieldMappingsAt("outcome", keywordMapping)
	docMapping.AddFieldMappingsAt("request_id", keywordMapping)
	docMapping.AddFieldMappingsAt("status", numericMapping)
	docMapping.AddFieldMappingsAt("timestamp", dateMapping)
	docMapping.AddFieldMappingsAt("message", textMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func (c *FilesystemClient) Close() error {
	return c.index.Close()
}

func (c *FilesystemClient) Send(activity models.Activity) error {
	timestamp := activity.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	entry := FilesystemActivityEntry{
		Operation: activity.Operation,
		Email:     strings.ToLower(activity.Email),
		Outcome:   activity.Outcome,
		Status:    float64(activity.Status),
		RequestID: activity.RequestID,
		Message:   activity.Message,
		Timestamp: timestamp.UTC(),
	}

	if err := c.index.Index(uuid.New().String(), entry); err != nil {
		return fmt.Errorf("failed to index activity: %w", err)
	}
	return nil
}

// Search returns the attempts of the retention window matching searchCriteria, newest first.
func (c *FilesystemClient) Search(searchCriteria map[string][]string) ([]models.Activity, error) {
	now := time.Now()
	dateQuery := bleve.NewDateRangeQuery(now.AddDate(0, 0, -configuration.ActivityRetentionDays), now)
	dateQuery.SetField("timestamp")

	searchRequest := bleve.NewSearchRequest(bleve.NewConjunctionQuery(buildBleveQuery(searchCriteria), dateQuery))
	searchRequest.Size = configuration.ActivitySearchLimit
	searchRequest.SortBy([]string{"-timestamp"})
	searchRequest.Fields = []string{"*"}

	result, err := c.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search activity: %w", err)
	}

	activities := make([]models.Activity, 0, len(result.Hits))
	for _, hit := range result.Hits {
		operation, _ := hit.Fields["operation"].(string)
		email, _ := hit.Fields["email"].(string)
		outcome, _ := hit.Fields["outcome"].(string)
		requestID, _ := hit.Fields["request_id"].(string)
		message, _ := hit.Fields["message"].(string)
		status, _ := hit.Fields["status"].(float64)

		activities = append(activities, models.Activity{
			Operation: operation,
			Email:     email,
			Outcome:   outcome,
			Status:    int(status),
			RequestID: requestID,
			Message:   message,
			Timestamp: parseTimestamp(hit.Fields),
		})
	}

	return activities, nil
}

func parseTimestamp(fields map[string]any) time.Time {
	if s, ok := fields["timestamp"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (c *FilesystemClient) CountByDay(searchCriteria map[string][]string, days int) ([]models.TimeSeriesPoint, error) {
	now := time.Now()
	dateQuery := bleve.NewDateRangeQuery(now.AddDate(0, 0, -days), now)
	dateQuery.SetField("timestamp")

	searchRequest := bleve.NewSearchRequest(bleve.NewConjunctionQuery(buildBleveQuery(searchCriteria), dateQuery))
	searchRequest.Size = 0

	facet := bleve.NewFacetRequest("timestamp", days+1)
	for i := days; i >= 0; i-- {
		dayStart := now.AddDate(0, 0, -i).Truncate(24 * time.Hour)
		facet.AddDateTimeRange(dayStart.Format(time.DateOnly), dayStart, dayStart.Add(24*time.Hour))
	}
	searchRequest.AddFacet("daily_counts", facet)

	result, err := c.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to count activity by day: %w", err)
	}

	dailyFacet, ok := result.Facets["daily_counts"]
	if !ok {
		return []models.TimeSeriesPoint{}, nil
	}

	points := make([]models.TimeSeriesPoint, 0, len(dailyFacet.DateRanges))
	for _, dr := range dailyFacet.DateRanges {
		if dr.Count > 0 {
			points = append(points, models.TimeSeriesPoint{Date: dr.Name, Count: int64(dr.Count)})
		}
	}
	return points, nil
}

func buildBleveQuery(searchCriteria map[string][]string) query.Query {
	var queries []query.Query

	for key, values := range searchCriteria {
		var termQueries []query.Query
		for _, v := range values {
			if key == "email" {
				v = strings.ToLower(v)
			}
			tq := bleve.NewTermQuery(v)
			tq.SetField(key)
			termQueries = append(termQueries, tq)
		}

		switch len(termQueries) {
		case 0:
		case 1:
			queries = append(queries, termQueries[0])
		default:
			disjunction := bleve.NewDisjunctionQuery(termQueries...)
			disjunction.SetMin(1)
			queries = append(queries, disjunction)
		}
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}
