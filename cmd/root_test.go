package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/presseportal/config"
	"github.com/s0up4200/presseportal/filter"
	"github.com/s0up4200/presseportal/presseportal"
)

func resetFlags(t *testing.T) {
	t.Helper()

	media, start, limit, teaser = "", 0, 0, false
	filterExpr, preset = "", ""
	t.Cleanup(func() {
		media, start, limit, teaser = "", 0, 0, false
		filterExpr, preset = "", ""
	})
}

func buildQuery(opts []presseportal.QueryOption) presseportal.Query {
	var q presseportal.Query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

func TestQueryOptions(t *testing.T) {
	enabled := true

	t.Run("config defaults", func(t *testing.T) {
		resetFlags(t)
		cfg = &config.Config{Query: config.QueryConfig{Limit: 25, Teaser: &enabled}}

		c := &cobra.Command{}
		addQueryFlags(c)

		q := buildQuery(queryOptions(c))
		assert.Empty(t, q.Media)
		assert.Nil(t, q.Start)
		require.NotNil(t, q.Limit)
		assert.Equal(t, 25, *q.Limit)
		require.NotNil(t, q.Teaser)
		assert.True(t, *q.Teaser)
	})

	t.Run("flags override config", func(t *testing.T) {
		resetFlags(t)
		cfg = &config.Config{Query: config.QueryConfig{Limit: 25, Teaser: &enabled}}

		c := &cobra.Command{}
		addQueryFlags(c)
		require.NoError(t, c.ParseFlags([]string{"--media", "image", "--start", "0", "--limit", "5", "--teaser=false"}))

		q := buildQuery(queryOptions(c))
		assert.Equal(t, "image", q.Media)
		require.NotNil(t, q.Start)
		assert.Equal(t, 0, *q.Start)
		assert.Equal(t, 5, *q.Limit)
		assert.False(t, *q.Teaser)
	})

	t.Run("nothing set", func(t *testing.T) {
		resetFlags(t)
		cfg = &config.Config{}

		c := &cobra.Command{}
		addQueryFlags(c)

		assert.Empty(t, queryOptions(c))
	})
}

func TestApplyFilter(t *testing.T) {
	var err error
	presets, err = filter.NewPresets(filter.NewCompiler(10), map[string]string{"blaulicht": "isOffice()"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		expression string
		preset     string
		fallback   string
		expected   []string
		wantErr    bool
	}{
		{name: "no filter", expected: []string{"1234567", "7654321"}},
		{name: "expression", expression: `hasKeyword("umwelt")`, expected: []string{"1234567"}},
		{name: "preset", preset: "blaulicht", expected: []string{"7654321"}},
		{name: "default", fallback: `hasMedia("document")`, expected: []string{"1234567"}},
		{name: "unknown preset", preset: "missing", wantErr: true},
		{name: "invalid expression", expression: `Title ==`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			filterExpr, preset = tt.expression, tt.preset
			cfg = &config.Config{Filter: config.FilterConfig{Default: tt.fallback}}

			stories, err := applyFilter(sampleStories())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(stories))
			for _, s := range stories {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}
