package export

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"cpolar-export/internal/tunnel"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func sampleRecords() []tunnel.Record {
	return []tunnel.Record{
		{
			Name:   "样例-web",
			Url:    strptr("https://a.example.com"),
			Proto:  strptr(tunnel.ProtoHttps),
			Local:  strptr("192.168.1.2:8080"),
			Region: strptr("CN"),
		},
		{
			Name:  "",
			Url:   strptr("tcp://b.example.com:10022"),
			Proto: strptr(tunnel.ProtoTcp),
		},
		{
			Name: "bare",
			Url:  strptr("ftp://c.example.com"),
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	records := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, records))

	decoded, err := ReadJSON(&buf)
	require.NoError(t, err)

	diff := cmp.Diff(records, decoded)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))
	out := buf.String()

	// non-ASCII names stay unescaped
	require.Contains(t, out, "样例-web")
	// absent fields are explicit nulls, never omitted keys
	require.Contains(t, out, `"proto": null`)
	require.Contains(t, out, `"local": null`)
	require.Contains(t, out, `"region": null`)
	// indented
	require.Contains(t, out, "\n  {")
}

func TestJSONEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	require.Equal(t, "[]\n", buf.String())

	// a filter that matches nothing still exports a list
	buf.Reset()
	filtered := tunnel.FilterByName([]tunnel.Record{{Name: "web"}}, "nomatch")
	require.NoError(t, WriteJSON(&buf, filtered))
	require.Equal(t, "[]\n", buf.String())

	decoded, err := ReadJSON(strings.NewReader("[]"))
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, utf8Bom))

	lines := strings.Split(strings.TrimRight(string(out[len(utf8Bom):]), "\n"), "\n")
	require.Equal(t, []string{
		"name,proto,url,local,region",
		"样例-web,https,https://a.example.com,192.168.1.2:8080,CN",
		",tcp,tcp://b.example.com:10022,,",
		"bare,,ftp://c.example.com,,",
	}, lines)
}

func TestWriteReport(t *testing.T) {
	generatedAt := time.Date(2025, 3, 9, 14, 30, 5, 0, time.Local)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleRecords(), generatedAt))
	out := buf.String()

	require.Contains(t, out, "Generated 2025-03-09 14:30:05")
	require.Contains(t, out, `<span class="count">3</span>`)

	// one section per group, unnamed records under the placeholder label
	require.Contains(t, out, "Tunnel: 样例-web (1 addresses)")
	require.Contains(t, out, "Tunnel: "+tunnel.UnnamedLabel+" (1 addresses)")
	require.Contains(t, out, "Tunnel: bare (1 addresses)")

	// badge classes per protocol, neutral badge for unknown
	require.Contains(t, out, `<span class="proto proto-https">HTTPS</span>`)
	require.Contains(t, out, `<span class="proto proto-tcp">TCP</span>`)
	require.Contains(t, out, `<span class="proto">unknown</span>`)

	// tcp urls survive as real hyperlinks
	require.Contains(t, out, `<a href="tcp://b.example.com:10022">`)
	require.NotContains(t, out, "ZgotmplZ")

	// self-contained: embedded style, no external references
	require.Contains(t, out, "<style>")
	require.NotContains(t, out, "<link")
	require.NotContains(t, out, "<script")
}

func TestWriteReportDeterministic(t *testing.T) {
	generatedAt := time.Date(2025, 3, 9, 14, 30, 5, 0, time.Local)

	var first, second bytes.Buffer
	require.NoError(t, WriteReport(&first, sampleRecords(), generatedAt))
	require.NoError(t, WriteReport(&second, sampleRecords(), generatedAt))
	require.Equal(t, first.String(), second.String())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleRecords())
	out := buf.String()

	require.Contains(t, out, "NAME")
	require.Contains(t, out, "https://a.example.com")
	require.Contains(t, out, "192.168.1.2:8080")
}

func TestSaveArtifacts(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()

	jsonPath := dir + "/tunnels.json"
	require.NoError(t, SaveJSON(jsonPath, records))
	require.NoError(t, SaveCSV(dir+"/tunnels.csv", records))
	require.NoError(t, SaveReport(dir+"/tunnels.html", records, time.Now()))

	f, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	decoded, err := ReadJSON(bytes.NewReader(f))
	require.NoError(t, err)
	diff := cmp.Diff(records, decoded)
	if diff != "" {
		t.Fatal(diff)
	}
}
