// Package strava fetches activity records from the Strava REST API.
//
// Tokens live in a JSON file in the format returned by the Strava token endpoint.
// An expired access token is refreshed with the refresh_token grant and the new
// token is written back to the same file.
package strava

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
	"time"

	"golang.org/x/oauth2"

	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/pkg/logger"
	"github.com/okian/pacetrend/pkg/metrics"
)

// Name is the source label used in logs and metrics.
const Name = "strava"

// Default endpoint settings.
const (
	DefaultBaseURL  = "https://www.strava.com/api/v3"
	DefaultTokenURL = "https://www.strava.com/oauth/token"
	DefaultPerPage  = 200

	maxErrorBody = 4 << 10
)

// Client pages through /athlete/activities.
type Client struct {
	baseURL    string
	perPage    int
	maxPages   int
	tokenFile  string
	oauth      *oauth2.Config
	httpClient *http.Client
	log        logger.Logger
	saveToken  func(path string, tok *oauth2.Token) error
}

var _ source.Source = (*Client)(nil)

// New constructs a Client for the given OAuth application and token file.
func New(clientID, clientSecret, tokenFile string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		perPage:    DefaultPerPage,
		tokenFile:  tokenFile,
		httpClient: http.DefaultClient,
		saveToken:  SaveToken,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  DefaultTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named(Name)
	}
	return c
}

// Name implements source.Source.
func (c *Client) Name() string { return Name }

// Fetch returns every activity of the authenticated athlete, newest first as served.
func (c *Client) Fetch(ctx context.Context) ([]model.Activity, error) {
	start := time.Now()
	out, err := c.fetch(ctx)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordSourceFetch(Name, status, float64(time.Since(start).Microseconds())/1000)
	return out, err
}

func (c *Client) fetch(ctx context.Context) ([]model.Activity, error) {
	tok, err := LoadToken(c.tokenFile)
	if err != nil {
		return nil, err
	}

	// Token refresh goes through the same transport as the API calls.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	ts := &persistingSource{
		path: c.tokenFile,
		base: c.oauth.TokenSource(ctx, tok),
		last: tok.AccessToken,
		save: c.saveToken,
	}
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrToken, err)
	}
	hc := oauth2.NewClient(ctx, ts)

	var out []model.Activity
	for page := 1; c.maxPages <= 0 || page <= c.maxPages; page++ {
		batch, err := c.page(ctx, hc, page)
		if err != nil {
			return nil, err
		}
		c.log.Debug(ctx, "fetched activity page",
			logger.Int("page", page),
			logger.Int("records", len(batch)),
		)
		if len(batch) == 0 {
			break
		}
		out = append(out, batch...)
	}

	c.log.Info(ctx, "strava activities fetched", logger.Int("records", len(out)))
	return out, nil
}

func (c *Client) page(ctx context.Context, hc *http.Client, page int) ([]model.Activity, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.perPage))
	endpoint := strings.TrimRight(c.baseURL, "/") + "/athlete/activities?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, fmt.Errorf("%w: %w", source.ErrToken, err)
		}
		return nil, fmt.Errorf("%w: page %d: %w", source.ErrFetch, page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: page %d: status %d: %s",
			source.ErrFetch, page, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []activity
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: page %d: %w", source.ErrParse, page, err)
	}
	out := make([]model.Activity, 0, len(raw))
	for _, a := range raw {
		out = append(out, a.toModel(ctx, c.log))
	}
	return out, nil
}

// activity is the subset of the Strava SummaryActivity payload this service reads.
// Metric fields decode leniently; an unreadable one is left absent for validation to reject.
type activity struct {
	ID             json.Number      `json:"id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Distance       source.Float     `json:"distance"`
	MovingTime     source.Float     `json:"moving_time"`
	StartDateLocal source.Timestamp `json:"start_date_local"`
}

func (a activity) toModel(ctx context.Context, l logger.Logger) model.Activity {
	m := model.Activity{
		ID:                a.ID.String(),
		Name:              a.Name,
		Type:              a.Type,
		DistanceMeters:    a.Distance.Ptr(),
		MovingTimeSeconds: a.MovingTime.Ptr(),
		StartDateLocal:    a.StartDateLocal.Ptr(),
	}
	for _, f := range []struct{ name, raw string }{
		{"distance", a.Distance.Raw},
		{"moving_time", a.MovingTime.Raw},
		{"start_date_local", a.StartDateLocal.Raw},
	} {
		if f.raw != "" {
			l.Debug(ctx, "malformed activity field dropped",
				logger.String("id", m.ID),
				logger.String("field", f.name),
				logger.String("value", f.raw),
			)
		}
	}
	return m
}
