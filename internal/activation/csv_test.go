package activation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "Username,Email,Activation URL\n" +
		"jane, jane@example.org ,http://callhub.test/activate/abc\n" +
		"bob,bob@example.org,http://callhub.test/activate/def\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		URL:      "http://callhub.test/activate/abc",
		Username: "jane",
		Email:    "jane@example.org",
	}, records[0])
}

func TestParseCSVNoUsernameColumn(t *testing.T) {
	input := "Name,Activation URL,Email Address\n" +
		"Jane,http://x/y,jane@x.com\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	// "Name" is not a username column; only url and email detected.
	assert.Equal(t, Record{URL: "http://x/y", Email: "jane@x.com"}, records[0])
}

func TestParseCSVLastURLColumnWins(t *testing.T) {
	input := "Old Link,Activation URL\n" +
		"http://old/1,http://new/1\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "http://new/1", records[0].URL)
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseCSVMissingURLColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Name,Email\nJane,j@x.com\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseCSVSkipsRaggedRows(t *testing.T) {
	input := "Username,Email,Activation URL\n" +
		"jane,jane@x.com\n" + // too short to hold the URL column
		"bob,bob@x.com,http://x/b\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bob", records[0].Username)
}

func TestParseCSVPreservesOrder(t *testing.T) {
	input := "url\nhttp://x/1\nhttp://x/2\nhttp://x/3\n"
	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	urls := make([]string, len(records))
	for i, r := range records {
		urls[i] = r.URL
	}
	assert.Equal(t, []string{"http://x/1", "http://x/2", "http://x/3"}, urls)
}
