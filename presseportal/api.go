package presseportal

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	pathAllStories        = "article/all"
	pathPublicService     = "article/publicservice"
	pathPublicRegion      = "article/publicservice/region"
	pathTopic             = "article/topic"
	pathKeyword           = "article/keyword"
	pathCompanyStories    = "article/company"
	pathOfficeStories     = "article/office"
	pathInvestorRelations = "ir"
	pathSearch            = "search"

	minSearchTermLength = 4
)

// API defines the presseportal query operations
type API interface {
	// TestConnection verifies the key and connectivity
	TestConnection(ctx context.Context) error

	// GetStories retrieves the latest stories of all publishers
	GetStories(ctx context.Context, opts ...QueryOption) ([]Story, error)

	// GetPublicServiceNews retrieves the latest public service stories
	GetPublicServiceNews(ctx context.Context, opts ...QueryOption) ([]Story, error)

	// GetPublicServiceRegion retrieves public service stories of one region
	GetPublicServiceRegion(ctx context.Context, region string, opts ...QueryOption) ([]Story, error)

	// GetStoriesByTopic retrieves stories of one topic
	GetStoriesByTopic(ctx context.Context, topic string, opts ...QueryOption) ([]Story, error)

	// GetStoriesByKeywords retrieves stories tagged with any of the keywords
	GetStoriesByKeywords(ctx context.Context, keywords []string, opts ...QueryOption) ([]Story, error)

	// GetInvestorRelationsNews retrieves investor relations stories of one category
	GetInvestorRelationsNews(ctx context.Context, category string, opts ...QueryOption) ([]Story, error)

	// GetCompanyStories retrieves stories published by one company
	GetCompanyStories(ctx context.Context, id string, opts ...QueryOption) ([]Story, error)

	// GetOfficeStories retrieves stories published by one public service office
	GetOfficeStories(ctx context.Context, id string, opts ...QueryOption) ([]Story, error)

	// SearchEntities searches companies or offices by a single term
	SearchEntities(ctx context.Context, entity, term string, opts ...QueryOption) ([]Entity, error)

	// SearchEntitiesAny searches companies or offices matching any of the terms
	SearchEntitiesAny(ctx context.Context, entity string, terms []string, opts ...QueryOption) ([]Entity, error)
}

var _ API = (*Client)(nil)

// GetStories retrieves the latest stories, optionally restricted to a media type
func (c *Client) GetStories(ctx context.Context, opts ...QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := checkMedia(q.Media, c.allow.MediaTypes); err != nil {
		return nil, err
	}
	return c.stories(ctx, pathAllStories, q)
}

// GetPublicServiceNews retrieves public service stories. Only image and
// document media filters are supported by this endpoint.
func (c *Client) GetPublicServiceNews(ctx context.Context, opts ...QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := checkMedia(q.Media, c.allow.PublicServiceMediaTypes); err != nil {
		return nil, err
	}
	return c.stories(ctx, pathPublicService, q)
}

// GetPublicServiceRegion retrieves public service stories located in region
func (c *Client) GetPublicServiceRegion(ctx context.Context, region string, opts ...QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := c.checkRegion(region, q); err != nil {
		return nil, err
	}
	return c.stories(ctx, pathPublicRegion+"/"+region, q)
}

func (c *Client) checkRegion(region string, q Query) error {
	if err := checkMedia(q.Media, c.allow.PublicServiceMediaTypes); err != nil {
		return err
	}
	return checkMember(KindRegion, region, c.allow.Regions)
}

// GetStoriesByTopic retrieves stories of topic
func (c *Client) GetStoriesByTopic(ctx context.Context, topic string, opts ...QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := checkMedia(q.Media, c.allow.MediaTypes); err != nil {
		return nil, err
	}
	if err := checkMember(KindTopic, topic, c.allow.Topics); err != nil {
		return nil, err
	}
	return c.stories(ctx, pathTopic+"/"+topic, q)
}

// GetStoriesByKeywords retrieves stories tagged with any of keywords
func (c *Client) GetStoriesByKeywords(ctx context.Context, keywords []string, opts ...QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := checkMedia(q.Media, c.allow.MediaTypes); err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, &ArgumentError{Kind: KindKeyword, Value: "", Allowed: c.allow.Keywords}
	}
	for _, keyword := range keywords {
		if err := checkMember(KindKeyword, keyword, c.allow.Keywords); err != nil {
			return nil, err
		}
	}
	return c.stories(ctx, pathKeyword+"/"+strings.Join(keywords, ","), q)
}

// GetInvestorRelationsNews retrieves investor relations stories of category.
// The category is matched case-insensitively; media filters are rejected.
func (c *Client) GetInvestorRelationsNews(ctx context.Context, category string, opts ...QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := checkMedia(q.Media, nil); err != nil {
		return nil, err
	}
	category = strings.ToLower(category)
	if err := checkMember(KindNewsCategory, category, c.allow.NewsCategories); err != nil {
		return nil, err
	}
	return c.stories(ctx, pathInvestorRelations+"/"+category, q)
}

// GetCompanyStories retrieves stories published by the company with id
func (c *Client) GetCompanyStories(ctx context.Context, id string, opts ...QueryOption) ([]Story, error) {
	return c.ownerStories(ctx, pathCompanyStories, id, opts)
}

// GetOfficeStories retrieves stories published by the office with id
func (c *Client) GetOfficeStories(ctx context.Context, id string, opts ...QueryOption) ([]Story, error) {
	return c.ownerStories(ctx, pathOfficeStories, id, opts)
}

func (c *Client) ownerStories(ctx context.Context, basePath, id string, opts []QueryOption) ([]Story, error) {
	q := newQuery(opts)
	if err := checkMedia(q.Media, c.allow.MediaTypes); err != nil {
		return nil, err
	}
	if !isNumeric(id) {
		return nil, &ArgumentError{Kind: KindIdentifier, Value: id}
	}
	return c.stories(ctx, basePath+"/"+id, q)
}

// SearchEntities searches companies or offices whose name or city matches term.
// The term must be longer than 3 characters. The search endpoint has no offset
// or teaser parameter, so Start and Teaser options are not sent; Limit is.
func (c *Client) SearchEntities(ctx context.Context, entity, term string, opts ...QueryOption) ([]Entity, error) {
	if utf8.RuneCountInString(term) < minSearchTermLength {
		return nil, &ArgumentError{Kind: KindSearchTerm, Value: term}
	}
	return c.search(ctx, entity, strings.ToLower(term), opts)
}

// SearchEntitiesAny searches companies or offices matching any of terms.
// Start and Teaser options are not sent, as for SearchEntities.
func (c *Client) SearchEntitiesAny(ctx context.Context, entity string, terms []string, opts ...QueryOption) ([]Entity, error) {
	if len(terms) == 0 {
		return nil, &ArgumentError{Kind: KindSearchTerm, Value: ""}
	}
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			return nil, &ArgumentError{Kind: KindSearchTerm, Value: strings.Join(terms, ",")}
		}
	}
	return c.search(ctx, entity, strings.ToLower(strings.Join(terms, ",")), opts)
}

func (c *Client) search(ctx context.Context, entity, term string, opts []QueryOption) ([]Entity, error) {
	entityType := EntityType(strings.ToLower(entity))
	if entityType != EntityCompany && entityType != EntityOffice {
		return nil, &ArgumentError{
			Kind:    KindSearchEntity,
			Value:   entity,
			Allowed: []string{string(EntityCompany), string(EntityOffice)},
		}
	}

	q := newQuery(opts)
	if err := checkMedia(q.Media, nil); err != nil {
		return nil, err
	}
	q.Start = nil
	q.Teaser = nil
	q.SearchTerm = &term

	env, err := c.Fetch(ctx, c.BuildRequest(pathSearch+"/"+string(entityType), q))
	if err != nil {
		return nil, err
	}

	entities, err := MapEntities(env)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("entity", string(entityType)).
		Int("count", len(entities)).
		Msg("Retrieved search results from presseportal")

	return entities, nil
}

func (c *Client) stories(ctx context.Context, basePath string, q Query) ([]Story, error) {
	env, err := c.Fetch(ctx, c.BuildRequest(basePath, q))
	if err != nil {
		return nil, err
	}

	stories, err := MapStories(env)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", basePath, err)
	}

	c.logger.Debug().
		Str("endpoint", basePath).
		Int("count", len(stories)).
		Msg("Retrieved stories from presseportal")

	return stories, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
