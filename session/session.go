// Package session implements the REST transport used to talk to the switch
// management API. It knows how to log in and how to issue GET requests whose
// responses carry the imdata record envelope; retries, pagination and status
// code policy are intentionally out of scope.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/packethost/pkg/env"
	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opsmesh/fabinv/mo"
)

const loginPath = "/api/aaaLogin.json"

// Config carries the endpoint and credentials for a Session.
type Config struct {
	// URL is the base url of the management endpoint, e.g. https://switch1.
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// FromEnv reads the session configuration from FABINV_URL, FABINV_USERNAME,
// FABINV_PASSWORD and FABINV_TIMEOUT.
func FromEnv() Config {
	return Config{
		URL:      env.Get("FABINV_URL"),
		Username: env.Get("FABINV_USERNAME", "admin"),
		Password: env.Get("FABINV_PASSWORD"),
		Timeout:  env.Duration("FABINV_TIMEOUT", 30*time.Second),
	}
}

// Session is a synchronous client for the management API. It is not safe for
// concurrent use while logging in; established sessions may be shared for
// reads.
type Session struct {
	base   *url.URL
	cfg    Config
	client *http.Client
	logger log.Logger
	token  string
}

// New returns a Session for the configured endpoint. No network traffic
// happens until Login or Get is called.
func New(logger log.Logger, cfg Config) (*Session, error) {
	if cfg.URL == "" {
		return nil, errors.New("session url is required")
	}
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse session url")
	}

	return &Session{
		base:   base,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Package("session"),
	}, nil
}

// Client exposes the underlying http client, mostly so tests can intercept
// its transport.
func (s *Session) Client() *http.Client {
	return s.client
}

// Login authenticates against the management endpoint and stores the session
// token for use on later requests.
func (s *Session) Login(ctx context.Context) error {
	labels := prometheus.Labels{"op": "login"}
	requestCount.With(labels).Inc()
	timer := prometheus.NewTimer(requestDuration.With(labels))
	defer timer.ObserveDuration()

	body, err := json.Marshal(map[string]interface{}{
		"aaaUser": map[string]interface{}{
			"attributes": map[string]string{
				"name": s.cfg.Username,
				"pwd":  s.cfg.Password,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "marshal login body")
	}

	req, err := http.NewRequest("POST", s.endpoint(loginPath), bytes.NewReader(body))
	if err != nil {
		requestErrors.With(labels).Inc()
		return errors.Wrap(err, "create login request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	records, err := s.do(req, labels)
	if err != nil {
		return errors.Wrap(err, "login")
	}
	if len(records) == 0 || records[0].Class != "aaaLogin" {
		requestErrors.With(labels).Inc()
		return errors.New("login response missing aaaLogin record")
	}

	token, err := records[0].Attr("token")
	if err != nil {
		requestErrors.With(labels).Inc()
		return errors.Wrap(err, "login")
	}
	s.token = token
	s.logger.With("user", s.cfg.Username).Info("logged in")

	return nil
}

// Get issues one blocking GET for the given API path and returns the decoded
// imdata records. An error record in the body surfaces as *mo.APIError; every
// failure is fatal to the current operation and propagates unchanged.
func (s *Session) Get(ctx context.Context, path string) ([]mo.Record, error) {
	labels := prometheus.Labels{"op": "get"}
	requestCount.With(labels).Inc()
	timer := prometheus.NewTimer(requestDuration.With(labels))
	defer timer.ObserveDuration()

	req, err := http.NewRequest("GET", s.endpoint(path), nil)
	if err != nil {
		requestErrors.With(labels).Inc()
		return nil, errors.Wrap(err, "create get request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.AddCookie(&http.Cookie{Name: "APIC-cookie", Value: s.token})
	}

	return s.do(req, labels)
}

func (s *Session) do(req *http.Request, labels prometheus.Labels) ([]mo.Record, error) {
	l := s.logger.With("reqid", uuid.New().String(), "path", req.URL.Path)
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		requestErrors.With(labels).Inc()
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		requestErrors.With(labels).Inc()
		return nil, errors.Wrap(err, "read response body")
	}

	records, err := mo.DecodeImdata(body)
	if err != nil {
		requestErrors.With(labels).Inc()
		l.With("status", resp.StatusCode).Error(err)
		return nil, err
	}

	l.With("status", resp.StatusCode, "records", len(records), "duration", time.Since(start)).
		Info("request done")

	return records, nil
}

func (s *Session) endpoint(path string) string {
	u := *s.base
	if i := bytes.IndexByte([]byte(path), '?'); i >= 0 {
		u.Path = path[:i]
		u.RawQuery = path[i+1:]
	} else {
		u.Path = path
	}
	return u.String()
}
