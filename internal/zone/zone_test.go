package zone

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnsdhcpapi/pkg/models"
)

const sampleZone = `$ORIGIN example.com.
$TTL 86400
; zone for example.com
@	IN	SOA	ns1.example.com. admin.example.com. (
		2024011001 ; serial
		3600       ; refresh
		)
@	IN	NS	ns1.example.com.
@	IN	MX	10 mail.example.com.
ns1	IN	A	10.0.0.2
www IN A 10.0.0.5
  mail   IN  A  10.0.0.9
blog IN CNAME www
www IN A 10.0.0.5
ftp	IN	CNAME	www.example.com.
host	3600	IN	A	10.0.0.10
`

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Classification
	}{
		{"empty", "", Classification{Kind: LineSkipped}},
		{"comment", "; www IN A 10.0.0.1", Classification{Kind: LineSkipped}},
		{"origin", "$ORIGIN example.com.", Classification{Kind: LineSkipped}},
		{"ttl", "$TTL 3600", Classification{Kind: LineSkipped}},
		{"a", "www IN A 10.0.0.5", Classification{Kind: LineA, Name: "www", Value: "10.0.0.5"}},
		{"a_tabs", "ns1\tIN\tA\t10.0.0.2", Classification{Kind: LineA, Name: "ns1", Value: "10.0.0.2"}},
		{"a_leading_space", "   www IN A 10.0.0.5  ", Classification{Kind: LineA, Name: "www", Value: "10.0.0.5"}},
		{"a_crlf", "www IN A 10.0.0.5\r", Classification{Kind: LineA, Name: "www", Value: "10.0.0.5"}},
		{"cname", "blog IN CNAME www", Classification{Kind: LineCNAME, Name: "blog", Value: "www"}},
		{"soa", "@ IN SOA ns1.example.com. admin.example.com. (", Classification{Kind: LineIgnored}},
		{"ns", "@ IN NS ns1.example.com.", Classification{Kind: LineIgnored}},
		{"mx", "@ IN MX 10 mail.example.com.", Classification{Kind: LineIgnored}},
		{"aaaa", "www IN AAAA ::1", Classification{Kind: LineIgnored}},
		{"ttl_field", "host 3600 IN A 10.0.0.10", Classification{Kind: LineIgnored}},
		{"trailing_comment", "www IN A 10.0.0.5 ; web", Classification{Kind: LineIgnored}},
		{"lower_case_class", "www in a 10.0.0.5", Classification{Kind: LineIgnored}},
		{"indented_comment", "  ; note", Classification{Kind: LineIgnored}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLine(tt.line))
		})
	}
}

func TestExtractRecords(t *testing.T) {
	aRecords, cnames := ExtractRecords(sampleZone)

	assert.Equal(t, []models.ARecord{
		{Name: "ns1", IP: "10.0.0.2"},
		{Name: "www", IP: "10.0.0.5"},
		{Name: "mail", IP: "10.0.0.9"},
		{Name: "www", IP: "10.0.0.5"},
	}, aRecords)

	assert.Equal(t, []models.CNAMERecord{
		{Name: "blog", Alias: "www"},
		{Name: "ftp", Alias: "www.example.com."},
	}, cnames)
}

func TestExtractRecordsEmpty(t *testing.T) {
	aRecords, cnames := ExtractRecords("; nothing\n$TTL 60\n")

	assert.NotNil(t, aRecords)
	assert.NotNil(t, cnames)
	assert.Empty(t, aRecords)
	assert.Empty(t, cnames)
}

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return NewLoader(dir, "db.")
}

func TestLoaderLoad(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"db.example.com": sampleZone})
	mtime := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(loader.Path("example.com"), mtime, mtime))

	set, err := loader.Load("example.com")
	require.NoError(t, err)

	assert.Equal(t, "example.com", set.Domain)
	assert.Equal(t, mtime.Local().Format(modificationDateLayout), set.ModificationDate)
	assert.Len(t, set.ARecords, 4)
	assert.Len(t, set.CNAMEs, 2)
}

func TestLoaderLoadInvalidDomain(t *testing.T) {
	loader := newTestLoader(t, nil)
	loader.modTime = func(string) (time.Time, error) {
		t.Fatal("no file access expected for an invalid domain")
		return time.Time{}, nil
	}

	for _, name := range []string{"", "localhost", "../db.example.com", "a/b.com"} {
		set, err := loader.Load(name)
		assert.Nil(t, set)
		assert.ErrorIs(t, err, ErrInvalidDomain, name)
	}
}

func TestLoaderLoadZoneNotFound(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"db.example.com": sampleZone})

	set, err := loader.Load("example.org")
	assert.Nil(t, set)
	assert.True(t, errors.Is(err, ErrZoneNotFound))
	assert.False(t, errors.Is(err, ErrInvalidDomain))
}

func TestLoaderLoadUnreadable(t *testing.T) {
	loader := newTestLoader(t, nil)
	// a directory exists but can't be read as a file
	require.NoError(t, os.Mkdir(loader.Path("example.com"), 0o755))

	set, err := loader.Load("example.com")
	assert.Nil(t, set)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestLoaderLoadUnknownModificationDate(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"db.example.com": "www IN A 10.0.0.5\n"})
	loader.modTime = func(string) (time.Time, error) {
		return time.Time{}, errors.New("stat failed")
	}

	set, err := loader.Load("example.com")
	require.NoError(t, err)
	assert.Equal(t, UnknownModificationDate, set.ModificationDate)
	assert.Equal(t, []models.ARecord{{Name: "www", IP: "10.0.0.5"}}, set.ARecords)
}

func TestLoaderLoadEmptyZone(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"db.example.com": ""})

	set, err := loader.Load("example.com")
	require.NoError(t, err)
	assert.Empty(t, set.ARecords)
	assert.Empty(t, set.CNAMEs)
}
