// Package cpolar scrapes the cpolar web dashboard: an authenticated session
// against the login endpoint and a heuristic parse of the status page's
// tunnel table.
package cpolar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"cpolar-export/internal/assert"
	"cpolar-export/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// BaseUrl is the dashboard origin. Overridable in NewClient for tests only.
const BaseUrl = "https://dashboard.cpolar.com"

const (
	loginPath  = "/login"
	statusPath = "/status"

	// Per-call deadlines. These are properties of the dashboard, not
	// tunables: the login page is small, the submission and status page can
	// be slower.
	loginPageTimeout   = 15 * time.Second
	loginSubmitTimeout = 20 * time.Second
	statusFetchTimeout = 20 * time.Second

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

const (
	report_client_login       = "client.login"
	report_client_status_page = "client.status-page"
)

var (
	// ErrAuth covers both a rejected login and an unreachable login
	// endpoint. The message is shown to the user verbatim.
	ErrAuth = errors.New("dashboard login failed: check your email/password (or retry later)")
	// ErrFetch covers an unreachable or non-success status page after a
	// successful login.
	ErrFetch = errors.New("failed to fetch the dashboard status page")
)

// Client owns one authenticated dashboard session. The cookie jar accumulates
// state across Login and StatusPage, so a Client must not be shared between
// concurrent login attempts.
type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	tel     telemetry.API
}

// NewClient builds a session client for the dashboard at baseUrl (pass
// BaseUrl outside of tests).
func NewClient(baseUrl string, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(baseUrl)

	tel = telemetry.NewScopedAPI("cpolar_scraper", tel)

	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))

	// 2 requests max per second, burst 2 so nothing is dropped
	rateLimiter := rate.NewLimiter(2, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		baseUrl: parsedBaseUrl,
		http:    httpClient,
		tel:     tel,
	}, nil
}

// Login authenticates the session. The login page is fetched first so that an
// anti-forgery token, when the form carries one, can be included in the
// submission. Rejection is detected by the submission resolving back to the
// login URL after redirects.
func (c *Client) Login(ctx context.Context, email, password string) error {
	authError := func(err error) error {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}

	pageCtx, cancelPage := context.WithTimeout(ctx, loginPageTimeout)
	defer cancelPage()

	res, err := c.http.R().
		SetContext(pageCtx).
		Get(loginPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login page request: %w", err),
		)
		return authError(err)
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("login page returned %s", res.Status())
		c.tel.ReportBroken(report_client_login, err)
		return authError(err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("parse login page: %w", err),
		)
		return authError(err)
	}

	form := map[string]string{
		"login":    email,
		"password": password,
	}
	if csrf := doc.Find("input[name=csrf_token]").AttrOr("value", ""); csrf != "" {
		form["csrf_token"] = csrf
	}

	submitCtx, cancelSubmit := context.WithTimeout(ctx, loginSubmitTimeout)
	defer cancelSubmit()

	res, err = c.http.R().
		SetContext(submitCtx).
		SetFormData(form).
		Post(loginPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login request: %w", err),
		)
		return authError(err)
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("login submission returned %s", res.Status())
		c.tel.ReportBroken(report_client_login, err)
		return authError(err)
	}

	finalUrl := res.Request.URL
	if raw := res.RawResponse; raw != nil && raw.Request != nil {
		finalUrl = raw.Request.URL.String()
	}
	if strings.TrimRight(finalUrl, "/") == strings.TrimRight(c.baseUrl.JoinPath(loginPath).String(), "/") {
		c.tel.ReportWarning(report_client_login, "submission resolved back to the login url")
		return ErrAuth
	}

	return nil
}

// StatusPage fetches the raw html of the authenticated status page.
func (c *Client) StatusPage(ctx context.Context) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, statusFetchTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(fetchCtx).
		Get(statusPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_status_page,
			fmt.Errorf("fetch: %w", err),
		)
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("status page returned %s", res.Status())
		c.tel.ReportBroken(report_client_status_page, err)
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return res.String(), nil
}
