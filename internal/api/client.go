package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/teskalabs/asab-console/internal/library"
	"github.com/teskalabs/asab-console/internal/logging/events"
)

// resultOK is the success marker of the library service's envelope.
const resultOK = "OK"

// disabledHeader is the side-channel carrying an item's disabled state.
const disabledHeader = "x-splang-disabled"

// DisabledState is the tri-state disabled flag of a library item. Items
// fetched without the side-channel header report DisabledUnknown and the
// enable/disable control stays hidden.
type DisabledState int

const (
	DisabledUnknown DisabledState = iota
	ItemEnabled
	ItemDisabled
)

// Item is the content of a single library item plus its disabled state.
type Item struct {
	Content  string
	Disabled DisabledState
}

// Client is a tenant-scoped HTTP client for the library service. All
// calls take a context; timeouts are the transport's concern and no
// call retries automatically.
type Client struct {
	baseURL string
	tenant  string
	httpc   *http.Client
}

// NewClient builds a client for the given service URL and tenant.
func NewClient(baseURL, tenant string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tenant:  tenant,
		httpc:   &http.Client{},
	}
}

// Tenant returns the tenant scope threaded through every call.
func (c *Client) Tenant() string {
	return c.tenant
}

type listEnvelope struct {
	Result string           `json:"result"`
	Data   []library.Record `json:"data"`
}

type resultEnvelope struct {
	Result string `json:"result"`
}

// List fetches the recursive library listing for the client's tenant.
func (c *Client) List(ctx context.Context) ([]library.Record, error) {
	const op = "list library"
	query := url.Values{"recursive": {"true"}, "tenant": {c.tenant}}
	body, _, err := c.get(ctx, op, "/library/list/", query)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &DomainError{Op: op}
	}
	if envelope.Result != resultOK {
		return nil, &DomainError{Op: op, Result: envelope.Result}
	}
	return envelope.Data, nil
}

// Item fetches the content of a single library item. JSON payloads are
// pretty-printed with 4-space indentation for display; anything else
// passes through verbatim. The disabled state comes from a response
// header and defaults to unknown when the header is absent.
func (c *Client) Item(ctx context.Context, path string) (Item, error) {
	const op = "fetch item"
	query := url.Values{"tenant": {c.tenant}}
	body, header, err := c.get(ctx, op, "/library/item/"+escapePath(path), query)
	if err != nil {
		return Item{}, err
	}
	if len(body) == 0 {
		return Item{Disabled: DisabledUnknown}, nil
	}
	item := Item{Content: displayContent(body, header.Get("Content-Type"))}
	switch header.Get(disabledHeader) {
	case "":
		item.Disabled = DisabledUnknown
	case "True":
		item.Disabled = ItemDisabled
	default:
		item.Disabled = ItemEnabled
	}
	return item, nil
}

// SaveItem writes new content for a library item.
func (c *Client) SaveItem(ctx context.Context, path, content string) error {
	const op = "save item"
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("%s: encode payload: %w", op, err)
	}
	query := url.Values{"tenant": {c.tenant}}
	body, err := c.put(ctx, op, "/library/item/"+escapePath(path), query, payload)
	if err != nil {
		return err
	}
	return checkResult(op, body)
}

// SetItemDisabled flips the remote disabled state of a library item.
func (c *Client) SetItemDisabled(ctx context.Context, path string, disabled bool) error {
	const op = "toggle item state"
	disable := "no"
	if disabled {
		disable = "yes"
	}
	query := url.Values{"tenant": {c.tenant}, "disable": {disable}}
	body, err := c.put(ctx, op, "/library/item-disable/"+escapePath(path), query, nil)
	if err != nil {
		return err
	}
	return checkResult(op, body)
}

var extensionPattern = regexp.MustCompile(`\.[^/.]+$`)

// Help fetches help content for a topic path. Topics without an
// extension resolve to their .json counterpart.
func (c *Client) Help(ctx context.Context, topic string) (string, error) {
	const op = "fetch help"
	withExtension := topic
	if !extensionPattern.MatchString(topic) {
		withExtension = topic + ".json"
	}
	body, _, err := c.get(ctx, op, "/library/item/Help/"+escapePath(withExtension), nil)
	if err != nil {
		return "", err
	}
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &DomainError{Op: op}
	}
	return payload.Content, nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path, query), nil)
	if err != nil {
		return nil, nil, &NetworkError{Op: op, Err: err}
	}
	return c.do(op, req)
}

func (c *Client) put(ctx context.Context, op, path string, query url.Values, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.requestURL(path, query), body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	data, _, err := c.do(op, req)
	return data, err
}

func (c *Client) do(op string, req *http.Request) ([]byte, http.Header, error) {
	id := uuid.NewString()
	events.API.Request(id, req.Method, req.URL.String())
	resp, err := c.httpc.Do(req)
	if err != nil {
		events.API.Error(id, err)
		return nil, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	events.API.Response(id, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}
	return body, resp.Header, nil
}

func (c *Client) requestURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func checkResult(op string, body []byte) error {
	var envelope resultEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &DomainError{Op: op}
	}
	if envelope.Result != resultOK {
		return &DomainError{Op: op, Result: envelope.Result}
	}
	return nil
}

// displayContent shapes a fetched body for the editor: JSON bodies are
// re-indented with 4 spaces (key order preserved), others pass through.
func displayContent(body []byte, contentType string) string {
	if !strings.Contains(contentType, "application/json") {
		return string(body)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "    "); err != nil {
		return string(body)
	}
	return out.String()
}

// escapePath escapes an item path for use in a URL while keeping the
// slashes that separate its segments.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
