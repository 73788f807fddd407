/* Copyright (c) 2025 Jonah Largen
 * SPDX-License-Identifier: BSD-3-Clause */
package taiga

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strconv"
    "strings"
    "sync"
    "time"

    "github.com/JonahLargen/TaigaDashboard/internal/config"
    "github.com/JonahLargen/TaigaDashboard/internal/domain"
    "github.com/rs/zerolog"
)

type Client struct {
    baseURL  string
    username string
    password string
    http     *http.Client
    log      zerolog.Logger

    mu    sync.Mutex
    token string
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        baseURL:  strings.TrimRight(cfg.TaigaBaseURL, "/"),
        username: cfg.TaigaUsername,
        password: cfg.TaigaPassword,
        http:     &http.Client{Timeout: cfg.HTTPTimeout},
        log:      log,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := c.baseURL + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

// authenticate exchanges username/password for a bearer token.
func (c *Client) authenticate(ctx context.Context) error {
    if c.baseURL == "" { return errors.New("taiga: empty baseURL") }
    body, err := json.Marshal(map[string]any{
        "username": c.username,
        "password": c.password,
        "type":     "normal",
    })
    if err != nil { return err }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/api/v1/auth", nil), strings.NewReader(string(body)))
    if err != nil { return err }
    req.Header.Set("Content-Type", "application/json")
    resp, err := c.http.Do(req)
    if err != nil { return err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        b, _ := io.ReadAll(resp.Body)
        return fmt.Errorf("taiga auth status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
    }
    var out map[string]any
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return err }
    token := toStr(out["auth_token"])
    if token == "" { return errors.New("taiga auth: response missing auth_token") }
    c.mu.Lock()
    c.token = token
    c.mu.Unlock()
    return nil
}

func (c *Client) bearer(ctx context.Context) (string, error) {
    c.mu.Lock()
    t := c.token
    c.mu.Unlock()
    if t != "" { return t, nil }
    if err := c.authenticate(ctx); err != nil { return "", err }
    c.mu.Lock()
    t = c.token
    c.mu.Unlock()
    return t, nil
}

// get runs an authenticated GET with up to three attempts: 401 discards the
// token and re-authenticates, 429/5xx back off and retry, any other failure
// returns immediately.
func (c *Client) get(ctx context.Context, u string) ([]byte, http.Header, error) {
    var lastErr error
    for attempt := 0; attempt < 3; attempt++ {
        token, err := c.bearer(ctx)
        if err != nil { return nil, nil, err }
        req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
        if err != nil { return nil, nil, err }
        req.Header.Set("Authorization", "Bearer "+token)
        resp, err := c.http.Do(req)
        if err != nil { lastErr = err } else {
            b, rerr := io.ReadAll(resp.Body)
            resp.Body.Close()
            if rerr != nil { return nil, nil, rerr }
            switch {
            case resp.StatusCode == http.StatusUnauthorized:
                // token expired; re-auth and retry
                c.mu.Lock()
                c.token = ""
                c.mu.Unlock()
                lastErr = fmt.Errorf("taiga api status=401 body=%s", strings.TrimSpace(string(b)))
            case resp.StatusCode == 429 || resp.StatusCode >= 500:
                lastErr = fmt.Errorf("taiga api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
            case resp.StatusCode >= 300:
                return nil, nil, fmt.Errorf("taiga api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
            default:
                return b, resp.Header, nil
            }
        }
        // backoff
        time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
    }
    return nil, nil, lastErr
}

// getPage fetches one page of a list endpoint. The second return value reports
// whether the x-pagination-next header named a further page.
func (c *Client) getPage(ctx context.Context, u string) ([]map[string]any, bool, error) {
    b, hdr, err := c.get(ctx, u)
    if err != nil { return nil, false, err }
    var out []map[string]any
    if err := json.Unmarshal(b, &out); err != nil { return nil, false, err }
    return out, hdr.Get("x-pagination-next") != "", nil
}

// getList walks every page of a project-scoped list endpoint.
func (c *Client) getList(ctx context.Context, path string, projectID int64) ([]map[string]any, error) {
    var all []map[string]any
    for page := 1; ; page++ {
        q := url.Values{}
        q.Set("project", strconv.FormatInt(projectID, 10))
        if page > 1 { q.Set("page", strconv.Itoa(page)) }
        rows, more, err := c.getPage(ctx, c.apiURL(path, q))
        if err != nil { return nil, err }
        all = append(all, rows...)
        if !more { break }
    }
    return all, nil
}

func (c *Client) getObject(ctx context.Context, path string) (map[string]any, error) {
    b, _, err := c.get(ctx, c.apiURL(path, nil))
    if err != nil { return nil, err }
    var out map[string]any
    if err := json.Unmarshal(b, &out); err != nil { return nil, err }
    return out, nil
}

func (c *Client) Project(ctx context.Context, projectID int64) (domain.Project, error) {
    m, err := c.getObject(ctx, "/api/v1/projects/"+strconv.FormatInt(projectID, 10))
    if err != nil { return domain.Project{}, err }
    return projectFromJSON(m), nil
}

func (c *Client) Epics(ctx context.Context, projectID int64) ([]domain.Epic, error) {
    rows, err := c.getList(ctx, "/api/v1/epics", projectID)
    if err != nil { return nil, err }
    out := make([]domain.Epic, 0, len(rows))
    for _, r := range rows { out = append(out, epicFromJSON(r)) }
    return out, nil
}

func (c *Client) UserStories(ctx context.Context, projectID int64) ([]domain.UserStory, error) {
    rows, err := c.getList(ctx, "/api/v1/userstories", projectID)
    if err != nil { return nil, err }
    out := make([]domain.UserStory, 0, len(rows))
    for _, r := range rows { out = append(out, storyFromJSON(r)) }
    return out, nil
}

func (c *Client) Tasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
    rows, err := c.getList(ctx, "/api/v1/tasks", projectID)
    if err != nil { return nil, err }
    out := make([]domain.Task, 0, len(rows))
    for _, r := range rows { out = append(out, taskFromJSON(r)) }
    return out, nil
}

func (c *Client) Issues(ctx context.Context, projectID int64) ([]domain.Issue, error) {
    rows, err := c.getList(ctx, "/api/v1/issues", projectID)
    if err != nil { return nil, err }
    out := make([]domain.Issue, 0, len(rows))
    for _, r := range rows { out = append(out, issueFromJSON(r)) }
    return out, nil
}

func (c *Client) Sprints(ctx context.Context, projectID int64) ([]domain.Sprint, error) {
    rows, err := c.getList(ctx, "/api/v1/milestones", projectID)
    if err != nil { return nil, err }
    out := make([]domain.Sprint, 0, len(rows))
    for _, r := range rows { out = append(out, sprintFromJSON(r)) }
    return out, nil
}

func (c *Client) Users(ctx context.Context, projectID int64) ([]domain.User, error) {
    rows, err := c.getList(ctx, "/api/v1/users", projectID)
    if err != nil { return nil, err }
    out := make([]domain.User, 0, len(rows))
    for _, r := range rows { out = append(out, userFromJSON(r)) }
    return out, nil
}

func (c *Client) IssueTypes(ctx context.Context, projectID int64) ([]domain.Lookup, error) {
    return c.lookups(ctx, "/api/v1/issue-types", projectID)
}

func (c *Client) IssueSeverities(ctx context.Context, projectID int64) ([]domain.Lookup, error) {
    return c.lookups(ctx, "/api/v1/severities", projectID)
}

func (c *Client) IssuePriorities(ctx context.Context, projectID int64) ([]domain.Lookup, error) {
    return c.lookups(ctx, "/api/v1/priorities", projectID)
}

func (c *Client) lookups(ctx context.Context, path string, projectID int64) ([]domain.Lookup, error) {
    rows, err := c.getList(ctx, path, projectID)
    if err != nil { return nil, err }
    out := make([]domain.Lookup, 0, len(rows))
    for _, r := range rows { out = append(out, lookupFromJSON(r)) }
    return out, nil
}
