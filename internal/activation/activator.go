package activation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Activator drives one activation URL to completion or failure. A non-nil
// error means an infrastructure failure (the whole batch should stop), not a
// failed activation; those are reported through the Outcome.
type Activator interface {
	Activate(ctx context.Context, rec Record, password string) (Outcome, error)
}

// Classifier decides whether a post-submit page indicates success. The
// activation flow has no API contract, so detection is keyword sniffing over
// the returned HTML; keeping it behind an interface makes the strategy
// replaceable when CallHub changes the page.
type Classifier interface {
	Classify(finalURL, body string) (success bool, message string)
}

// KeywordClassifier is the default detection strategy: a fixed set of
// success keywords in the page body, or a redirect to a known home location.
type KeywordClassifier struct {
	Success []string
	Home    []string
}

// DefaultClassifier returns the keyword set observed on live activation pages.
func DefaultClassifier() KeywordClassifier {
	return KeywordClassifier{
		Success: []string{"success", "activated", "thank you", "welcome", "dashboard"},
		Home:    []string{"/dashboard"},
	}
}

var pageErrorRe = regexp.MustCompile(`(?is)class="[^"]*(?:set-password-error|\berror\b|\balert\b)[^"]*"[^>]*>\s*([^<]+)`)

// Classify implements Classifier.
func (k KeywordClassifier) Classify(finalURL, body string) (bool, string) {
	lower := strings.ToLower(body)
	for _, kw := range k.Success {
		if strings.Contains(lower, kw) {
			return true, "Successfully activated"
		}
	}
	for _, home := range k.Home {
		if strings.Contains(finalURL, home) {
			return true, "Successfully activated"
		}
	}
	if m := pageErrorRe.FindStringSubmatch(body); m != nil {
		if msg := strings.TrimSpace(m[1]); msg != "" {
			return false, msg
		}
	}
	return false, "Activation completed but no success confirmation found"
}

// HTTPActivator performs an activation over plain HTTP: fetch the activation
// page, fill the set-password form, submit, and classify the result.
// Each call uses a fresh cookie session.
type HTTPActivator struct {
	Timeout    time.Duration
	Classifier Classifier
	Logger     *slog.Logger
}

// NewHTTPActivator creates an activator with the default classifier.
func NewHTTPActivator(timeout time.Duration, logger *slog.Logger) *HTTPActivator {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPActivator{Timeout: timeout, Classifier: DefaultClassifier(), Logger: logger}
}

const maxPageBytes = 1 << 20

// Activate implements Activator. Network and page-shape problems are soft
// failures recorded in the Outcome; only context cancellation is returned as
// an error.
func (a *HTTPActivator) Activate(ctx context.Context, rec Record, password string) (Outcome, error) {
	out := Outcome{Username: rec.Username, Email: rec.Email}

	if rec.URL == "" {
		out.Message = "Missing activation URL"
		return out, nil
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return out, fmt.Errorf("create cookie jar: %w", err)
	}
	client := &http.Client{Timeout: a.Timeout, Jar: jar}

	pageURL, body, err := a.fetch(ctx, client, rec.URL)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out.Message = fmt.Sprintf("failed to load activation page: %v", err)
		return out, nil
	}

	form, ok := parseActivationForm(body)
	if !ok {
		a.Logger.Warn("no password field on activation page", "url", rec.URL, "username", rec.Username)
		out.Message = "No password field found on activation page"
		return out, nil
	}

	values := url.Values{}
	values.Set(form.passwordField, password)
	if form.confirmField != "" {
		values.Set(form.confirmField, password)
	}
	if form.csrfToken != "" {
		values.Set("csrfmiddlewaretoken", form.csrfToken)
	}

	submitURL := resolveRef(pageURL, form.action)
	finalURL, finalBody, err := a.submit(ctx, client, submitURL, pageURL.String(), values)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out.Message = fmt.Sprintf("failed to submit password: %v", err)
		return out, nil
	}

	out.Success, out.Message = a.Classifier.Classify(finalURL, finalBody)
	a.Logger.Info("activation attempt finished",
		"username", rec.Username,
		"success", out.Success,
		"message", out.Message,
	)
	return out, nil
}

func (a *HTTPActivator) fetch(ctx context.Context, client *http.Client, rawURL string) (*url.URL, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, "", err
	}
	return resp.Request.URL, string(body), nil
}

func (a *HTTPActivator) submit(ctx context.Context, client *http.Client, submitURL, referer string, values url.Values) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitURL, strings.NewReader(values.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", referer)

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", "", err
	}
	return resp.Request.URL.String(), string(body), nil
}

func resolveRef(base *url.URL, action string) string {
	if action == "" {
		return base.String()
	}
	ref, err := url.Parse(action)
	if err != nil {
		return base.String()
	}
	return base.ResolveReference(ref).String()
}

// activationForm is what we need from the set-password page.
type activationForm struct {
	action        string
	passwordField string
	confirmField  string
	csrfToken     string
}

var (
	inputTagRe  = regexp.MustCompile(`(?is)<input\b[^>]*>`)
	formTagRe   = regexp.MustCompile(`(?is)<form\b[^>]*>`)
	passwordRe  = regexp.MustCompile(`(?i)password`)
	mustBeRe    = regexp.MustCompile(`(?i)placeholder\s*=\s*["'][^"']*must be`)
	csrfValueRe = regexp.MustCompile(`(?is)<input\b[^>]*name\s*=\s*["']csrfmiddlewaretoken["'][^>]*>`)
)

// passwordLocators are tried in order; the first matching input wins. The
// exact-name and class matches come from inspecting the live set-password
// page, the rest are generic fallbacks.
var passwordLocators = []func(tag string) bool{
	func(tag string) bool { return attrEquals(tag, "name", "new_password1") },
	func(tag string) bool { return strings.Contains(attr(tag, "class"), "set-password-input") },
	func(tag string) bool { return mustBeRe.MatchString(tag) },
	func(tag string) bool { return strings.EqualFold(attr(tag, "type"), "password") },
	func(tag string) bool {
		return passwordRe.MatchString(attr(tag, "id")) || passwordRe.MatchString(attr(tag, "name"))
	},
}

// parseActivationForm locates the password input, an optional confirmation
// input, the CSRF token and the form action.
func parseActivationForm(html string) (activationForm, bool) {
	inputs := inputTagRe.FindAllString(html, -1)

	var form activationForm
	for _, locate := range passwordLocators {
		for _, tag := range inputs {
			if !locate(tag) {
				continue
			}
			form.passwordField = attr(tag, "name")
			if form.passwordField == "" {
				form.passwordField = "new_password1"
			}
			break
		}
		if form.passwordField != "" {
			break
		}
	}
	if form.passwordField == "" {
		return activationForm{}, false
	}

	// Confirmation field, when the form asks for the password twice.
	for _, tag := range inputs {
		name := attr(tag, "name")
		if name != form.passwordField && (strings.EqualFold(name, "new_password2") ||
			(strings.EqualFold(attr(tag, "type"), "password") && name != "")) {
			form.confirmField = name
			break
		}
	}

	if m := csrfValueRe.FindString(html); m != "" {
		form.csrfToken = attr(m, "value")
	}
	if m := formTagRe.FindString(html); m != "" {
		form.action = attr(m, "action")
	}
	return form, true
}

// attr extracts an attribute value from a single HTML tag.
func attr(tag, name string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\s*=\s*["']([^"']*)["']`)
	if m := re.FindStringSubmatch(tag); m != nil {
		return m[1]
	}
	return ""
}

func attrEquals(tag, name, want string) bool {
	return strings.EqualFold(attr(tag, name), want)
}
