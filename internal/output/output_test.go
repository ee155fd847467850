package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteJSON(t *testing.T) {
	var useCases = []struct {
		description string
		result      Result
		expect      string
	}{
		{
			description: "records",
			result:      Result{Source: "a.csv", Records: [][]string{{"a", "b"}, {"c", ""}}},
			expect:      `{"source":"a.csv","rows":[["a","b"],["c",""]]}`,
		},
		{
			description: "objects",
			result: Result{
				Source:  "-",
				Columns: []string{"x"},
				Objects: []map[string]string{{"x": "1"}},
				Mapped:  true,
			},
			expect: `{"source":"-","rows":[{"x":"1"}]}`,
		},
		{
			description: "empty records",
			result:      Result{Source: "empty.csv"},
			expect:      `{"source":"empty.csv","rows":[]}`,
		},
		{
			description: "empty objects",
			result:      Result{Source: "h.csv", Mapped: true},
			expect:      `{"source":"h.csv","rows":[]}`,
		},
	}

	for _, useCase := range useCases {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, "json", []Result{useCase.result}), useCase.description)
		assert.JSONEq(t, useCase.expect, buf.String(), useCase.description)
	}
}

func TestWriteYAML(t *testing.T) {
	results := []Result{
		{Source: "a.csv", Records: [][]string{{"a", "multi\nline"}}},
		{Source: "b.csv", Records: [][]string{{"z"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", results))

	dec := yaml.NewDecoder(&buf)
	var got []struct {
		Source string     `yaml:"source"`
		Rows   [][]string `yaml:"rows"`
	}
	for {
		var doc struct {
			Source string     `yaml:"source"`
			Rows   [][]string `yaml:"rows"`
		}
		if err := dec.Decode(&doc); err != nil {
			break
		}
		got = append(got, doc)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "a.csv", got[0].Source)
	assert.Equal(t, [][]string{{"a", "multi\nline"}}, got[0].Rows)
	assert.Equal(t, "b.csv", got[1].Source)
}

func TestWriteTable(t *testing.T) {
	var useCases = []struct {
		description string
		results     []Result
		expect      string
	}{
		{
			description: "wide characters align by display width",
			results: []Result{{Records: [][]string{
				{"name", "city"},
				{"Ann", "東京"},
				{"日本", "x"},
			}}},
			expect: "name  city\nAnn   東京\n日本  x\n",
		},
		{
			description: "line breaks are escaped",
			results:     []Result{{Records: [][]string{{"a\r\nb", "c"}}}},
			expect:      "a\\r\\nb  c\n",
		},
		{
			description: "mapped records print a header and skip duplicate keys",
			results: []Result{{
				Columns: []string{"id", "id", "v"},
				Objects: []map[string]string{{"id": "2", "v": "x"}},
				Mapped:  true,
			}},
			expect: "id  v\n2   x\n",
		},
		{
			description: "several inputs get a banner",
			results: []Result{
				{Source: "a.csv", Records: [][]string{{"1"}}},
				{Source: "b.csv", Records: [][]string{{"2"}}},
			},
			expect: "==> a.csv <==\n1\n\n==> b.csv <==\n2\n",
		},
	}

	for _, useCase := range useCases {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, "table", useCase.results), useCase.description)
		assert.Equal(t, useCase.expect, buf.String(), useCase.description)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "xml", nil))
}
