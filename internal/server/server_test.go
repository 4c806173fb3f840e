package server

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"portfolio-web/internal/bootstrap"
	"portfolio-web/internal/config"
	"portfolio-web/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			Host:        "localhost",
			Port:        "0",
			Environment: config.EnvTesting,
		},
		Session: config.SessionConfig{
			SecretKey:         "test-secret",
			Backend:           bootstrap.SessionBackendCookie,
			CookieName:        "session",
			CookieHTTPOnly:    true,
			CookieSameSite:    "Lax",
			PermanentLifetime: 7 * 24 * time.Hour,
			IdleTimeout:       time.Hour,
		},
		Upload: config.UploadConfig{
			Directory:         t.TempDir(),
			MaxContentLength:  1 << 20,
			AllowedExtensions: config.AllowedExtensions,
		},
		Auth: config.AuthConfig{SharedPassword: "password123"},
	}
}

// client drives the app like a browser that keeps cookies but does not
// follow redirects.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, cfg *config.Config) *client {
	t.Helper()
	container, err := bootstrap.NewContainer(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	return &client{
		t:       t,
		app:     New(cfg, container).GetApp(),
		cookies: make(map[string]*http.Cookie),
	}
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)

	for _, ck := range resp.Cookies() {
		if ck.Value == "" || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return resp
}

func (c *client) get(target string) *http.Response {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) postForm(target string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postFile(target, field, filename string, content []byte, fields map[string]string) *http.Response {
	c.t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(c.t, w.WriteField(k, v))
	}
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(c.t, err)
		_, err = part.Write(content)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func (c *client) login(user string) {
	c.t.Helper()
	resp := c.postForm("/login", url.Values{"username": {user}, "password": {"password123"}})
	require.Equal(c.t, fiber.StatusFound, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func TestHomeCountsVisits(t *testing.T) {
	c := newClient(t, testConfig(t))

	for i := 0; i < 2; i++ {
		c.get("/")
	}
	resp := c.get("/")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "You have visited this page 3 time(s).")
	assert.Contains(t, body, "E-Commerce Platform")
}

func TestStaticPages(t *testing.T) {
	c := newClient(t, testConfig(t))

	tests := []struct {
		path string
		want string
	}{
		{"/about", "Hello, Guest!"},
		{"/portfolio", "Task Management App"},
		{"/skills", "Databases"},
		{"/services", "Database Design"},
		{"/contact", `name="subject"`},
		{"/login", `name="remember"`},
		{"/resume", "No files uploaded yet."},
		{"/feedback", `name="attachment"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := c.get(tt.path)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), tt.want)
		})
	}
}

func TestProjectDetail(t *testing.T) {
	c := newClient(t, testConfig(t))

	for _, id := range []string{"1", "2", "3"} {
		resp := c.get("/project/" + id)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, id)
	}

	resp := c.get("/project/99")
	assertRedirect(t, resp, "/portfolio")
	assert.Contains(t, readBody(t, c.get("/portfolio")), "Project not found!")

	resp = c.get("/project/abc")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "404 - Page Not Found")
}

func TestUnknownRouteRendersNotFoundPage(t *testing.T) {
	c := newClient(t, testConfig(t))

	resp := c.get("/does-not-exist")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, readBody(t, resp), "404 - Page Not Found")
}

func TestHealthz(t *testing.T) {
	c := newClient(t, testConfig(t))

	resp := c.get("/healthz")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readBody(t, resp))
}

func TestContactForm(t *testing.T) {
	c := newClient(t, testConfig(t))
	c.login("alice")

	resp := c.postForm("/contact", url.Values{
		"name": {"Ann"}, "email": {"ann@example.com"}, "subject": {"Hi"}, "message": {""},
	})
	assertRedirect(t, resp, "/contact")
	assert.Contains(t, readBody(t, c.get("/contact")), "Please fill in all required fields!")
	assert.Contains(t, readBody(t, c.get("/dashboard")), "Contact messages (0)")

	resp = c.postForm("/contact", url.Values{
		"name": {"Ann"}, "email": {"ann@example.com"}, "subject": {"Hi"}, "message": {"Hello there"},
	})
	assertRedirect(t, resp, "/contact")
	assert.Contains(t, readBody(t, c.get("/contact")), "Thank you Ann! Your message has been received.")

	// Reloading the page after the redirect does not resubmit
	c.get("/contact")
	body := readBody(t, c.get("/dashboard"))
	assert.Contains(t, body, "Contact messages (1)")
	assert.Contains(t, body, "Hello there")
}

func TestDashboardRequiresLogin(t *testing.T) {
	c := newClient(t, testConfig(t))

	resp := c.get("/dashboard")
	assertRedirect(t, resp, "/login")
	assert.Contains(t, readBody(t, c.get("/login")), "Please login first!")

	c.login("alice")
	resp = c.get("/dashboard")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Welcome back, alice!")
	assert.Contains(t, body, "Logged in as <strong>alice</strong>")
}

func TestLogin(t *testing.T) {
	c := newClient(t, testConfig(t))

	resp := c.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid username or password!")
	assertRedirect(t, c.get("/dashboard"), "/login")

	resp = c.postForm("/login", url.Values{"username": {""}, "password": {"password123"}})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = c.postForm("/login", url.Values{"username": {"alice"}, "password": {"password123"}})
	assertRedirect(t, resp, "/dashboard")
	assert.True(t, c.cookies["session"].Expires.IsZero(), "without remember the cookie ends with the browser")
}

func TestLoginRememberMe(t *testing.T) {
	c := newClient(t, testConfig(t))

	resp := c.postForm("/login", url.Values{"username": {"bob"}, "password": {"password123"}, "remember": {"on"}})
	assertRedirect(t, resp, "/dashboard")

	cookie := c.cookies["session"]
	require.NotNil(t, cookie)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), cookie.Expires, time.Minute)
}

func TestLogoutClearsSession(t *testing.T) {
	cfg := testConfig(t)
	c := newClient(t, cfg)

	c.get("/")
	c.get("/")
	c.login("alice")
	c.postForm("/contact", url.Values{
		"name": {"Ann"}, "email": {"ann@example.com"}, "subject": {"Hi"}, "message": {"Hello"},
	})
	c.postFile("/feedback", "", "", nil, map[string]string{"feedback": "Nice site", "rating": "5"})
	c.postFile("/resume", "resume_file", "resume.pdf", []byte("%PDF"), nil)

	body := readBody(t, c.get("/dashboard"))
	assert.Contains(t, body, "Contact messages (1)")
	assert.Contains(t, body, "Feedback (1)")
	assert.Contains(t, body, "Uploaded files (1)")

	resp := c.get("/logout")
	assertRedirect(t, resp, "/?message="+url.QueryEscape("alice logged out successfully!"))

	body = readBody(t, c.get(resp.Header.Get("Location")))
	assert.Contains(t, body, "Goodbye, alice! You have been logged out.")
	assert.Contains(t, body, "alice logged out successfully!")
	assert.Contains(t, body, "You have visited this page 1 time(s).")

	assertRedirect(t, c.get("/dashboard"), "/login")
	c.login("alice")
	body = readBody(t, c.get("/dashboard"))
	assert.Contains(t, body, "Contact messages (0)")
	assert.Contains(t, body, "Feedback (0)")
	assert.Contains(t, body, "Uploaded files (0)")
}

func TestLogoutWithoutLogin(t *testing.T) {
	c := newClient(t, testConfig(t))

	resp := c.get("/logout")
	assertRedirect(t, resp, "/?message="+url.QueryEscape("User logged out successfully!"))
}

func TestResumeUpload(t *testing.T) {
	cfg := testConfig(t)
	c := newClient(t, cfg)

	resp := c.postFile("/resume", "resume_file", "resume.exe", []byte("MZ"), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid file type! Allowed types: pdf, txt, doc, docx, png, jpg, jpeg, gif")
	entries, err := os.ReadDir(cfg.Upload.Directory)
	require.NoError(t, err)
	assert.Empty(t, entries)

	resp = c.postFile("/resume", "", "", nil, nil)
	assertRedirect(t, resp, "/resume")
	assert.Contains(t, readBody(t, c.get("/resume")), "No file selected!")

	resp = c.postFile("/resume", "resume_file", "resume.pdf", []byte("%PDF-1.4"), nil)
	assertRedirect(t, resp, "/resume")

	entries, err = os.ReadDir(cfg.Upload.Directory)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	stored := entries[0].Name()
	assert.Regexp(t, `^\d{8}_\d{6}_resume\.pdf$`, stored)

	body := readBody(t, c.get("/resume"))
	assert.Contains(t, body, "Resume uploaded successfully!")
	assert.Contains(t, body, "/download/"+stored)

	resp = c.get("/download/" + stored)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", readBody(t, resp))
}

func TestDownloadMissingFile(t *testing.T) {
	c := newClient(t, testConfig(t))

	assertRedirect(t, c.get("/download/nope.pdf"), "/resume")
	assert.Contains(t, readBody(t, c.get("/resume")), "File not found!")

}

func TestDownloadUnreadableUploadDirectory(t *testing.T) {
	cfg := testConfig(t)
	c := newClient(t, cfg)

	require.NoError(t, os.RemoveAll(cfg.Upload.Directory))
	require.NoError(t, os.WriteFile(cfg.Upload.Directory, []byte("not a directory"), 0o644))

	assertRedirect(t, c.get("/download/resume.pdf"), "/resume")
	body := readBody(t, c.get("/resume"))
	assert.Contains(t, body, "Error downloading file:")
	assert.NotContains(t, body, "File not found!")
}

// The body limit is enforced by the HTTP server before routing, so this test
// goes over a real listener instead of app.Test.
func TestUploadOverBodyLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxContentLength = 1024
	c := newClient(t, cfg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = c.app.Listener(ln) }()
	t.Cleanup(func() { _ = c.app.Shutdown() })

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("resume_file", "big.pdf")
	require.NoError(t, err)
	// Larger than the limit but small enough to arrive in one read, so the
	// server answers before the connection is torn down.
	_, err = part.Write(bytes.Repeat([]byte("x"), 2048))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp, err := http.Post("http://"+ln.Addr().String()+"/resume", w.FormDataContentType(), body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	entries, err := os.ReadDir(cfg.Upload.Directory)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeedbackForm(t *testing.T) {
	cfg := testConfig(t)
	c := newClient(t, cfg)

	resp := c.postFile("/feedback", "", "", nil, map[string]string{"feedback": ""})
	assertRedirect(t, resp, "/feedback")
	assert.Contains(t, readBody(t, c.get("/feedback")), "Please provide feedback!")

	resp = c.postFile("/feedback", "attachment", "shot.png", []byte("png"), map[string]string{"feedback": "Great", "rating": "4"})
	assertRedirect(t, resp, "/feedback")
	assert.Contains(t, readBody(t, c.get("/feedback")), "Thank you for your feedback!")

	resp = c.postFile("/feedback", "attachment", "virus.exe", []byte("MZ"), map[string]string{"feedback": "Bad file"})
	assertRedirect(t, resp, "/feedback")

	entries, err := os.ReadDir(cfg.Upload.Directory)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_shot.png"))

	c.login("alice")
	body := readBody(t, c.get("/dashboard"))
	assert.Contains(t, body, "Feedback (2)")
	assert.Contains(t, body, "Rating 4")
}

func TestSessionBackends(t *testing.T) {
	backends := map[string]func(*config.Config){
		"memory": func(cfg *config.Config) { cfg.Session.Backend = bootstrap.SessionBackendMemory },
		"encrypted cookie": func(cfg *config.Config) {
			cfg.Session.EncryptionKey = encryptcookie.GenerateKey()
		},
	}
	for name, configure := range backends {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			configure(cfg)
			c := newClient(t, cfg)

			c.get("/")
			c.login("alice")
			resp := c.get("/dashboard")
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), `<span id="visits">1</span>`)

			c.get("/logout")
			assertRedirect(t, c.get("/dashboard"), "/login")
		})
	}
}

func TestTamperedCookieStartsFreshSession(t *testing.T) {
	c := newClient(t, testConfig(t))
	c.login("alice")

	c.cookies["session"].Value += "x"
	assertRedirect(t, c.get("/dashboard"), "/login")
}

func TestUnknownSessionBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.Backend = "memcached"
	_, err := bootstrap.NewContainer(cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestErrorPages(t *testing.T) {
	c := newClient(t, testConfig(t))
	c.app.Get("/forbidden", func(ctx *fiber.Ctx) error {
		return fiber.ErrForbidden
	})
	c.app.Get("/boom", func(ctx *fiber.Ctx) error {
		panic("boom")
	})
	c.app.Get("/fail", func(ctx *fiber.Ctx) error {
		return errors.New("database unavailable")
	})

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/forbidden", fiber.StatusForbidden, "403 - Forbidden"},
		{"/boom", fiber.StatusInternalServerError, "500 - Internal Server Error"},
		{"/fail", fiber.StatusInternalServerError, "500 - Internal Server Error"},
		{"/missing", fiber.StatusNotFound, "404 - Page Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := c.get(tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
			body := readBody(t, resp)
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, "database unavailable")
		})
	}

	// The app keeps serving after a panic.
	assert.Equal(t, fiber.StatusOK, c.get("/").StatusCode)
}
