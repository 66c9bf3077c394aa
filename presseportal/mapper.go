package presseportal

import (
	"encoding/json"
	"fmt"
	"time"
)

// publishedLayout is used when the timestamp offset has no colon
const publishedLayout = "2006-01-02T15:04:05-0700"

var (
	storyRequiredKeys  = []string{"id", "url", "title", "published", "highlight", "short"}
	entityRequiredKeys = []string{"id", "url", "name", "type"}
	ownerRequiredKeys  = []string{"id", "url", "name"}
)

// MapStories converts the content.story list of env into stories, in API order.
func MapStories(env *Envelope) ([]Story, error) {
	items, err := contentList(env, "story")
	if err != nil {
		return nil, err
	}

	stories := make([]Story, 0, len(items))
	for i, item := range items {
		story, err := NewStory(item)
		if err != nil {
			return nil, fmt.Errorf("story %d: %w", i, err)
		}
		stories = append(stories, story)
	}
	return stories, nil
}

// MapEntities converts the content.result list of env into search results, in API order.
func MapEntities(env *Envelope) ([]Entity, error) {
	items, err := contentList(env, "result")
	if err != nil {
		return nil, err
	}

	entities := make([]Entity, 0, len(items))
	for i, item := range items {
		entity, err := NewEntity(item)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func contentList(env *Envelope, key string) ([]map[string]json.RawMessage, error) {
	if env == nil || !present(env.Content) {
		return nil, missingKey("content")
	}

	var content map[string]json.RawMessage
	if err := json.Unmarshal(env.Content, &content); err != nil {
		return nil, &DataError{Reason: "content is not an object", Err: err}
	}

	raw, ok := content[key]
	if !ok || !present(raw) {
		return nil, missingKey(key)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DataError{Reason: fmt.Sprintf("%s is not a list of objects", key), Err: err}
	}
	return items, nil
}

// NewStory builds a Story from one raw API item.
func NewStory(item map[string]json.RawMessage) (Story, error) {
	if err := requireKeys(item, storyRequiredKeys); err != nil {
		return Story{}, err
	}

	var (
		story     Story
		id        flexString
		highlight flexString
		published string
	)
	fields := []struct {
		key string
		dst any
	}{
		{"id", &id},
		{"url", &story.URL},
		{"title", &story.Title},
		{"published", &published},
		{"highlight", &highlight},
		{"short", &story.Short},
	}
	for _, f := range fields {
		if err := decodeField(item, f.key, f.dst); err != nil {
			return Story{}, err
		}
	}
	story.ID = string(id)
	story.Highlight = string(highlight)

	ts, err := parsePublished(published)
	if err != nil {
		return Story{}, &DataError{Reason: fmt.Sprintf("invalid published timestamp %q", published), Err: err}
	}
	story.Published = ts

	// Body wins over teaser when both are present
	switch {
	case has(item, "body"):
		if story.Body, err = optionalString(item, "body"); err != nil {
			return Story{}, err
		}
	case has(item, "teaser"):
		if story.Teaser, err = optionalString(item, "teaser"); err != nil {
			return Story{}, err
		}
	default:
		return Story{}, &DataError{Reason: "'body' or 'teaser' not included in response"}
	}

	if story.Language, err = optionalString(item, "language"); err != nil {
		return Story{}, err
	}
	if story.Ressort, err = optionalString(item, "ressort"); err != nil {
		return Story{}, err
	}

	switch {
	case has(item, "company"):
		if story.Company, err = newOwner(item["company"], "company"); err != nil {
			return Story{}, err
		}
	case has(item, "office"):
		if story.Office, err = newOwner(item["office"], "office"); err != nil {
			return Story{}, err
		}
	default:
		return Story{}, &DataError{Reason: "'company' or 'office' data not included in response"}
	}

	story.Keywords = keywords(item["keywords"])

	if story.Media, err = media(item["media"]); err != nil {
		return Story{}, err
	}

	return story, nil
}

// NewEntity builds an Entity from one raw search result.
func NewEntity(item map[string]json.RawMessage) (Entity, error) {
	if err := requireKeys(item, entityRequiredKeys); err != nil {
		return Entity{}, err
	}

	var (
		entity     Entity
		id         flexString
		entityType string
	)
	if err := decodeField(item, "id", &id); err != nil {
		return Entity{}, err
	}
	if err := decodeField(item, "url", &entity.URL); err != nil {
		return Entity{}, err
	}
	if err := decodeField(item, "name", &entity.Name); err != nil {
		return Entity{}, err
	}
	if err := decodeField(item, "type", &entityType); err != nil {
		return Entity{}, err
	}
	entity.ID = string(id)
	entity.Type = EntityType(entityType)

	return entity, nil
}

func newOwner(raw json.RawMessage, key string) (*Owner, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &DataError{Reason: fmt.Sprintf("%s is not an object", key), Err: err}
	}
	for _, k := range ownerRequiredKeys {
		if !has(fields, k) {
			return nil, missingKey(key + "." + k)
		}
	}

	var (
		owner Owner
		id    flexString
	)
	if err := decodeField(fields, "id", &id); err != nil {
		return nil, err
	}
	if err := decodeField(fields, "url", &owner.URL); err != nil {
		return nil, err
	}
	if err := decodeField(fields, "name", &owner.Name); err != nil {
		return nil, err
	}
	owner.ID = string(id)

	homepage, err := optionalString(fields, "homepage")
	if err != nil {
		return nil, err
	}
	owner.Homepage = homepage

	return &owner, nil
}

// keywords reads {"keyword": [...]}; any other shape yields nil.
func keywords(raw json.RawMessage) []string {
	if !present(raw) {
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	inner, ok := wrapper["keyword"]
	if !ok {
		return nil
	}

	var list []string
	if err := json.Unmarshal(inner, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(inner, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

func media(raw json.RawMessage) (Media, error) {
	var m Media
	if !present(raw) {
		return m, nil
	}

	var kinds map[string]json.RawMessage
	if err := json.Unmarshal(raw, &kinds); err != nil {
		// An empty media block is sent as [] by the API
		return m, nil
	}

	for _, t := range mediaTypes {
		value, ok := kinds[string(t)]
		if !ok || !present(value) {
			continue
		}

		var list []Attachment
		if err := json.Unmarshal(value, &list); err != nil {
			var single Attachment
			if err := json.Unmarshal(value, &single); err != nil {
				return Media{}, &DataError{Reason: fmt.Sprintf("media.%s is not a list of objects", t), Err: err}
			}
			list = []Attachment{single}
		}
		m.set(t, list)
	}
	return m, nil
}

func parsePublished(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse(publishedLayout, s)
}

func requireKeys(item map[string]json.RawMessage, keys []string) error {
	for _, k := range keys {
		if !has(item, k) {
			return missingKey(k)
		}
	}
	return nil
}

func has(item map[string]json.RawMessage, key string) bool {
	_, ok := item[key]
	return ok
}

func decodeField(item map[string]json.RawMessage, key string, dst any) error {
	if err := json.Unmarshal(item[key], dst); err != nil {
		return &DataError{Reason: fmt.Sprintf("invalid value for key %s", key), Err: err}
	}
	return nil
}

func optionalString(item map[string]json.RawMessage, key string) (*string, error) {
	if !has(item, key) {
		return nil, nil
	}
	var s string
	if err := decodeField(item, key, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
