package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/samaj-issue/api/internal/models"
)

// IssueIndex mirrors issues into Elasticsearch for full-text search. Indexing
// is best effort: callers log failures and keep going, the relational store
// stays the source of truth.
type IssueIndex struct {
	ES   *elasticsearch.Client
	Name string
}

func NewIssueIndex(es *elasticsearch.Client, name string) *IssueIndex {
	return &IssueIndex{ES: es, Name: name}
}

func (ix *IssueIndex) Index(ctx context.Context, issue *models.Issue) error {
	doc, err := json.Marshal(issue)
	if err != nil {
		return err
	}

	res, err := ix.ES.Index(
		ix.Name,
		bytes.NewReader(doc),
		ix.ES.Index.WithDocumentID(fmt.Sprint(issue.ID)),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index issue %d: %s", issue.ID, res.Status())
	}
	return nil
}

func (ix *IssueIndex) Remove(ctx context.Context, id uint) error {
	res, err := ix.ES.Delete(
		ix.Name,
		fmt.Sprint(id),
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove issue %d: %s", id, res.Status())
	}
	return nil
}

func (ix *IssueIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Issue, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description", "location"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search %q: %s", query, res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Issue `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	issues := make([]models.Issue, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		issues[i] = hit.Source
	}
	return r.Hits.Total.Value, issues, nil
}

// NewClient builds the Elasticsearch client and verifies connectivity.
func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", strings.TrimSpace(res.Status()))
	}
	return client, nil
}
