package search

import (
	"github.com/meilisearch/meilisearch-go"

	"home-horizon/internal/models"
)

// SearchClient indexes verified properties for full-text search
type SearchClient struct {
	client *meilisearch.Client
	index  string
}

// Document is the indexed shape of a property. Meilisearch needs a plain
// string primary key, so the ObjectID is flattened to hex.
type Document struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	PropertyType string  `json:"property_type"`
	AgentName    string  `json:"agent_name"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	ImageURL     string  `json:"image_url,omitempty"`
	IsAdvertised bool    `json:"is_advertised"`
}

// NewSearchClient creates a client for the given Meilisearch host
func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"location",
		"description",
		"property_type",
		"agent_name",
	})
	if err != nil {
		return err
	}

	// Configure filterable attributes
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"property_type",
		"min_price",
		"max_price",
		"is_advertised",
	})
	if err != nil {
		return err
	}

	// Configure sortable attributes
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"min_price",
		"max_price",
	})
	return err
}

// FromProperty flattens a property into its indexed document
func FromProperty(p *models.Property) Document {
	doc := Document{
		ID:           p.ID.Hex(),
		Title:        p.Title,
		Location:     p.Location,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		AgentName:    p.AgentName,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		IsAdvertised: p.IsAdvertised,
	}
	if len(p.Images) > 0 {
		doc.ImageURL = p.Images[0].URL
	}
	return doc
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(p *models.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]Document{FromProperty(p)})
	return err
}

// IndexProperties indexes multiple properties
func (s *SearchClient) IndexProperties(props []models.Property) error {
	if len(props) == 0 {
		return nil
	}
	docs := make([]Document, 0, len(props))
	for i := range props {
		docs = append(docs, FromProperty(&props[i]))
	}
	_, err := s.client.Index(s.index).AddDocuments(docs)
	return err
}

// RemoveProperty drops a property from the index
func (s *SearchClient) RemoveProperty(hexID string) error {
	_, err := s.client.Index(s.index).DeleteDocument(hexID)
	return err
}

// Search returns indexed properties matching the query
func (s *SearchClient) Search(query string, limit int64) ([]Document, error) {
	if limit == 0 {
		limit = 20
	}

	res, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		docs = append(docs, parseHit(hit))
	}
	return docs, nil
}

// parseHit converts a search hit to a Document
func parseHit(hit interface{}) Document {
	hitMap, ok := hit.(map[string]interface{})
	if !ok {
		return Document{}
	}
	doc := Document{
		ID:           getString(hitMap, "id"),
		Title:        getString(hitMap, "title"),
		Location:     getString(hitMap, "location"),
		Description:  getString(hitMap, "description"),
		PropertyType: getString(hitMap, "property_type"),
		AgentName:    getString(hitMap, "agent_name"),
		ImageURL:     getString(hitMap, "image_url"),
	}
	if v, ok := hitMap["min_price"].(float64); ok {
		doc.MinPrice = v
	}
	if v, ok := hitMap["max_price"].(float64); ok {
		doc.MaxPrice = v
	}
	if v, ok := hitMap["is_advertised"].(bool); ok {
		doc.IsAdvertised = v
	}
	return doc
}

// getString safely extracts a string from map
func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
