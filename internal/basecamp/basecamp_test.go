package basecamp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/chatbots/internal/chatbot"
	"github.com/ziadkadry99/chatbots/internal/textresource"
)

const samplePayload = `{
  "command": "/about",
  "callback_url": "https://3.basecamp.com/195539477/integrations/2uH9aHLEVhhaXKPaqrj8yw8P/buckets/2085958501/chats/9007199254741775/lines",
  "creator": {
    "id": 1049715914,
    "attachable_sgid": "BAh7CEkiCGdpZAY6BkVUSSI",
    "name": "Victor Cooper",
    "email_address": "victor@honchodesign.com",
    "personable_type": "User",
    "title": "Chief Strategist",
    "bio": "Don't let your dreams be dreams",
    "created_at": "2022-11-22T08:23:21.732Z",
    "updated_at": "2022-11-22T08:23:21.904Z",
    "admin": true,
    "owner": true,
    "client": false,
    "time_zone": "America/Chicago",
    "avatar_url": "https://3.basecamp-static.com/195539477/people/BAhpBEoqkD4=--f8b42aa6c5f0d4d2c1f0a0b1f7d1fd0d6e6e4b1e/avatar",
    "company": {"id": 1033447817, "name": "Honcho Design"}
  }
}`

const basecampUA = "Basecamp 3 (https://basecamp.com)"

type fakeAnswerer struct {
	answer string
	err    error
}

func (f fakeAnswerer) Answer(context.Context, string) (string, error) { return f.answer, f.err }

func testLoader() *textresource.Loader {
	return textresource.New(fstest.MapFS{
		"botcommands/about.md":  {Data: []byte("# About\n\nHello **there**")},
		"botcommands/help.html": {Data: []byte("<p>Help</p>")},
		"botcommands/rules.txt": {Data: []byte("a < b")},
	}, textresource.DefaultFolder)
}

func newDispatcher(t *testing.T, extra ...Handler) *chatbot.Dispatcher[Query, string] {
	t.Helper()
	handlers, err := StaticCommandHandlers(testLoader(), textresource.NewRenderer())
	require.NoError(t, err)
	handlers = append(handlers, UnknownCommandHandler{})
	handlers = append(handlers, extra...)
	return chatbot.NewDispatcher(chatbot.NewRegistry(handlers...), nil)
}

func TestQueryDecoding(t *testing.T) {
	var q Query
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &q))
	assert.Equal(t, "/about", q.Command)
	require.NotNil(t, q.Creator)
	assert.Equal(t, "Victor Cooper", q.Creator.Name)
	assert.True(t, q.Creator.Admin)
	require.NotNil(t, q.Creator.Company)
	assert.Equal(t, "Honcho Design", q.Creator.Company.Name)
	assert.Equal(t, 2022, q.Creator.CreatedAt.Year())
}

func TestStaticCommands(t *testing.T) {
	d := newDispatcher(t)
	cases := []struct {
		command string
		want    string
	}{
		{"/about", "<h1>About</h1>\n<p>Hello <strong>there</strong></p>"},
		{"/ABOUT", "<h1>About</h1>\n<p>Hello <strong>there</strong></p>"},
		{"  /help  ", "<p>Help</p>"},
		{"/rules", "a &lt; b"},
		{"/weather", "I don't know how to handle your query: /weather"},
		{"<script>", "I don't know how to handle your query: &lt;script&gt;"},
	}
	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			out, ok, err := d.Dispatch(context.Background(), nil, Query{Command: tc.command})
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestOverlappingCommandNames(t *testing.T) {
	loader := textresource.New(fstest.MapFS{
		"botcommands/help.txt":   {Data: []byte("HELP")},
		"botcommands/helpme.txt": {Data: []byte("HELPME")},
	}, textresource.DefaultFolder)
	handlers, err := StaticCommandHandlers(loader, textresource.NewRenderer())
	require.NoError(t, err)
	d := chatbot.NewDispatcher(chatbot.NewRegistry(append(handlers, UnknownCommandHandler{})...), nil)

	cases := []struct {
		command string
		want    string
	}{
		{"/help", "HELP"},
		{"/HelpMe", "HELPME"},
		{"/helpme please", "HELPME"},
		{"/helpless", "I don't know how to handle your query: /helpless"},
	}
	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			out, ok, err := d.Dispatch(context.Background(), nil, Query{Command: tc.command})
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestAssistantHandler(t *testing.T) {
	d := newDispatcher(t, &AssistantHandler{Answerer: fakeAnswerer{answer: "It is **sunny**."}, Renderer: textresource.NewRenderer()})

	out, ok, err := d.Dispatch(context.Background(), nil, Query{Command: "how is the weather?"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<p>It is <strong>sunny</strong>.</p>", out)

	out, ok, err = d.Dispatch(context.Background(), nil, Query{Command: "/nope"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, out, "I don't know how to handle")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "/about", Describe(Query{Command: "/about the team"}))
	assert.Equal(t, "(text)", Describe(Query{Command: "hello"}))
	assert.Equal(t, "(empty)", Describe(Query{}))
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ep := NewEndpoint(chatbot.NewMarkerValidator(Marker, nil), &chatbot.Bot{Name: "helper", Enabled: true}, newDispatcher(t), nil, nil)
	r := chi.NewRouter()
	RegisterRoutes(r, "", ep)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, userAgent, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestWebhookEndToEnd(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv.URL+DefaultPath, basecampUA, samplePayload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	assert.Contains(t, body, "<h1>About</h1>")
}

func TestWebhookStatuses(t *testing.T) {
	srv := newServer(t)
	cases := []struct {
		name string
		ua   string
		body string
		want int
	}{
		{"foreign user agent", "curl/8.4.0", samplePayload, http.StatusUnauthorized},
		{"lowercase marker", "basecamp", samplePayload, http.StatusUnauthorized},
		{"malformed", basecampUA, `{"command":`, http.StatusBadRequest},
		{"null", basecampUA, `null`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := post(t, srv.URL+DefaultPath, tc.ua, tc.body)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
