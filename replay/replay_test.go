package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxmeter/ctxmeter/platform"
	"github.com/ctxmeter/ctxmeter/usage"
)

func writeCapture(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func TestReadAll_SkipsMalformedLines(t *testing.T) {
	path := writeCapture(t, `{"type":"context","context":"tab-1","platform":"claude"}
{not json
{"type":"text","context":"tab-1","chars":4000}

{"missing":"type"}
{"type":"location","context":"tab-1","url":"https://claude.ai/chat/abc"}
`)

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, TypeContext, records[0].Type)
	assert.Equal(t, 4000, records[1].Chars)
	assert.Equal(t, "https://claude.ai/chat/abc", records[2].URL)
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"type":"ui","context":"tab-1","profile":"Pro plan"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeUI, rec.Type)
	assert.Equal(t, "Pro plan", rec.Profile)

	_, err = ParseRecord([]byte(`{"context":"tab-1"}`))
	assert.Error(t, err)

	_, err = ParseRecord([]byte(`garbage`))
	assert.Error(t, err)
}

func newTestRunner() *Runner {
	store := usage.NewStore(usage.Options{ThrottleInterval: time.Nanosecond})
	return NewRunner(store, nil)
}

func TestRunner_FullSession(t *testing.T) {
	path := writeCapture(t, `{"type":"context","context":"tab-1","platform":"claude"}
{"type":"location","context":"tab-1","url":"https://claude.ai/chat/abc"}
{"type":"ui","context":"tab-1","profile":"Pro plan"}
{"type":"network","context":"tab-1","url":"https://claude.ai/api/organizations/x/completion","payload":"data: {\"usage\":{\"input_tokens\":100,\"output_tokens\":50}}"}
`)

	runner := newTestRunner()
	applied, err := runner.Run(path)
	require.NoError(t, err)
	assert.Equal(t, 3, applied, "location first-observation does not count as a change")

	tracker, ok := runner.Store().Get("tab-1")
	require.True(t, ok)
	snap := tracker.Snapshot()
	assert.Equal(t, platform.PlanPro, snap.Plan)
	assert.Equal(t, 200000, snap.ContextLimit)
	assert.Equal(t, 150, snap.Total)
}

func TestRunner_UnknownContextDropped(t *testing.T) {
	runner := newTestRunner()
	assert.False(t, runner.Feed(Record{Type: TypeText, Context: "nope", Chars: 4000}))
	assert.Equal(t, 0, runner.Store().Len())
}

func TestRunner_UnknownPlatformDropped(t *testing.T) {
	runner := newTestRunner()
	assert.False(t, runner.Feed(Record{Type: TypeContext, Context: "tab-1", Platform: "copilot"}))
	assert.Equal(t, 0, runner.Store().Len())
}

func TestRunner_LocationChangeResets(t *testing.T) {
	runner := newTestRunner()
	runner.Feed(Record{Type: TypeContext, Context: "tab-1", Platform: "gemini"})
	runner.Feed(Record{Type: TypeLocation, Context: "tab-1", URL: "https://gemini.google.com/app/1"})
	runner.Feed(Record{Type: TypeText, Context: "tab-1", Chars: 8000})

	tracker, _ := runner.Store().Get("tab-1")
	require.Positive(t, tracker.Snapshot().Total)

	assert.True(t, runner.Feed(Record{Type: TypeLocation, Context: "tab-1", URL: "https://gemini.google.com/app/2"}))
	assert.Zero(t, tracker.Snapshot().Total)
}

func TestRunner_UIWithNoInferableSignal(t *testing.T) {
	runner := newTestRunner()
	runner.Feed(Record{Type: TypeContext, Context: "tab-1", Platform: "chatgpt"})
	assert.False(t, runner.Feed(Record{Type: TypeUI, Context: "tab-1", Profile: "signed in"}))
}
