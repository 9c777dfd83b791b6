package es

import (
	"Huntboard/internal/pkg/util"
	"context"
	"errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type ApplicationRepo interface {
	Search(ctx context.Context, userID uint64, queryText, status, company string, lastSortValues []interface{}, size int) ([]*ApplicationES, error)
	SuggestCompanies(ctx context.Context, userID uint64, prefix string, size int) ([]string, error)
	IndexApplication(ctx context.Context, app *ApplicationES) error
	DeleteApplication(ctx context.Context, id string) error
}

type ApplicationRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewApplicationRepo(client *elasticsearch.TypedClient) ApplicationRepo {
	return &ApplicationRepoImpl{client: client}
}

// Search 全文检索 + 条件过滤，SearchAfter 游标翻页
func (s *ApplicationRepoImpl) Search(ctx context.Context, userID uint64, queryText, status, company string, lastSortValues []interface{}, size int) ([]*ApplicationES, error) {
	if size > MaxSearchDepth {
		size = MaxSearchDepth
	}

	filters := []types.Query{
		{Term: map[string]types.TermQuery{"user_id": {Value: userID}}},
	}
	if status != "" {
		filters = append(filters, types.Query{
			Term: map[string]types.TermQuery{"status": {Value: status}},
		})
	}
	if company != "" {
		filters = append(filters, types.Query{
			Term: map[string]types.TermQuery{"company.keyword": {Value: company}},
		})
	}

	boolQuery := &types.BoolQuery{Filter: filters}
	if queryText != "" {
		boolQuery.Must = []types.Query{
			{
				MultiMatch: &types.MultiMatchQuery{
					Query:     queryText,
					Fields:    []string{"position^3", "company^2", "skills^2", "notes", "location"},
					Fuzziness: util.PtrString("AUTO"),
				},
			},
		}
	}

	req := s.client.Search().Index(ApplicationIndex).
		Query(&types.Query{Bool: boolQuery}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"applied_at": {Order: &sortorder.Desc},
			"id":         {Order: &sortorder.Asc},
		}}).
		Size(size)

	// 注入游标
	if len(lastSortValues) > 0 {
		searchAfterValues := make([]types.FieldValue, len(lastSortValues))
		for i, v := range lastSortValues {
			searchAfterValues[i] = v
		}
		req.SearchAfter(searchAfterValues...)
	}

	return s.executeSearch(ctx, req)
}

// SuggestCompanies 公司名前缀联想，限定在当前用户的投递记录内
func (s *ApplicationRepoImpl) SuggestCompanies(ctx context.Context, userID uint64, prefix string, size int) ([]string, error) {
	resp, err := s.client.Search().
		Index(ApplicationIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{
					{MatchPhrasePrefix: map[string]types.MatchPhrasePrefixQuery{
						"company": {Query: prefix},
					}},
				},
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"user_id": {Value: userID}}},
				},
			},
		}).
		Aggregations(map[string]types.Aggregations{
			"companies": {
				Terms: &types.TermsAggregation{
					Field: util.PtrString("company.keyword"),
					Size:  util.PtrInt(size),
				},
			},
		}).
		Size(0).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	companies := make([]string, 0)
	if agg, ok := resp.Aggregations["companies"]; ok {
		if terms, ok := agg.(*types.StringTermsAggregate); ok {
			if buckets, ok := terms.Buckets.([]types.StringTermsBucket); ok {
				for _, b := range buckets {
					if name, ok := b.Key.(string); ok {
						companies = append(companies, name)
					}
				}
			}
		}
	}
	return companies, nil
}

func (s *ApplicationRepoImpl) IndexApplication(ctx context.Context, app *ApplicationES) error {
	_, err := s.client.Index(ApplicationIndex).
		Id(app.ID).
		Document(app).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *ApplicationRepoImpl) DeleteApplication(ctx context.Context, id string) error {
	_, err := s.client.Delete(ApplicationIndex, id).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *ApplicationRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*ApplicationES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*ApplicationES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var app ApplicationES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &app); err != nil {
			continue
		}
		if len(hit.Sort) > 0 {
			app.Sort = make([]interface{}, len(hit.Sort))
			for i, v := range hit.Sort {
				app.Sort[i] = v
			}
		}
		results = append(results, &app)
	}
	return results, nil
}
