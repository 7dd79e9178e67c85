package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releaseJSON = `{
  "url": "https://api.github.com/repos/egerke001/HalfOp/releases/1",
  "tag_name": "v1.2.0",
  "name": "HalfOp 1.2.0",
  "author": {"login": "egerke001", "id": 1},
  "assets": [
    {"name": "checksums.txt", "browser_download_url": "https://example.test/dl/checksums.txt"},
    {"name": "HalfOp.jar", "browser_download_url": "https://example.test/dl/HalfOp.jar"},
    {"name": "sources.zip", "browser_download_url": "https://example.test/dl/sources.zip"},
    {"name": "HalfOp-all.jar", "browser_download_url": "https://example.test/dl/HalfOp-all.jar"}
  ]
}`

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		key     string
		want    string
		wantErr error
	}{
		{"compact", `{"tag_name":"vX"}`, "tag_name", "vX", nil},
		{"pretty", releaseJSON, "tag_name", "v1.2.0", nil},
		{"first match wins", `{"name":"a","nested":{"name":"b"}}`, "name", "a", nil},
		{"name does not match tag_name", `{"tag_name":"v1"}`, "name", "", ErrNotFound},
		{"absent", `{"other":"x"}`, "tag_name", "", ErrNotFound},
		{"blank value", `{"tag_name":""}`, "tag_name", "", nil},
		{"missing closing quote", `{"tag_name":"v1.0`, "tag_name", "", ErrNotFound},
		{"null skipped", `{"tag_name":null,"x":{"tag_name":"v3"}}`, "tag_name", "v3", nil},
		{"null only", `{"tag_name":null,"name":"v2"}`, "tag_name", "", ErrNotFound},
		{"escaped quote", `{"name":"say \"hi\""}`, "name", `say \"hi\"`, nil},
		{"key at end of text", `{"tag_name":`, "tag_name", "", ErrNotFound},
		{"empty text", ``, "tag_name", "", ErrNotFound},
		{"not json at all", `garbage "tag_name":"v9" trailing`, "tag_name", "v9", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.text, tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllWithSuffix_PreservesOrder(t *testing.T) {
	got, err := AllWithSuffix(releaseJSON, "browser_download_url", ".jar")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.test/dl/HalfOp.jar",
		"https://example.test/dl/HalfOp-all.jar",
	}, got)
}

func TestAllWithSuffix_NoMatch(t *testing.T) {
	_, err := AllWithSuffix(releaseJSON, "browser_download_url", ".exe")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = AllWithSuffix(`{"assets":[]}`, "browser_download_url", ".jar")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllWithSuffix_StopsAtMalformedTail(t *testing.T) {
	text := `{"browser_download_url":"https://a/x.jar"},{"browser_download_url":"https://a/y.ja`
	got, err := AllWithSuffix(text, "browser_download_url", ".jar")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a/x.jar"}, got)
}

func TestScanner_Resumes(t *testing.T) {
	sc := NewScanner(`{"k":"1"} {"k":"2"} {"k":"3"}`)

	var got []string
	for {
		v, ok := sc.Next("k")
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []string{"1", "2", "3"}, got)

	_, ok := sc.Next("k")
	assert.False(t, ok, "exhausted scanner stays exhausted")
}

func TestAllWithSuffix_CountsMatchingOnly(t *testing.T) {
	text := `[`
	urls := []string{"a.jar", "b.txt", "c.jar", "d.zip", "e.jar"}
	for i, u := range urls {
		if i > 0 {
			text += ","
		}
		text += `{"browser_download_url":"` + u + `"}`
	}
	text += `]`

	got, err := AllWithSuffix(text, "browser_download_url", ".jar")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jar", "c.jar", "e.jar"}, got)
}
