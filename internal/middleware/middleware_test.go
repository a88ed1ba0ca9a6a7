package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/auth"
	"github.com/arzan03/TalentBridge/internal/storage"
)

// minimalPDF builds a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")

type part struct {
	field, filename string
	content         []byte
}

func multipartRequest(t *testing.T, target string, parts ...part) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		fw.Write(p.content)
	}
	w.WriteField("name", "Ana")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func uploadApp(t *testing.T, fields ...string) (*fiber.App, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	app := fiber.New()
	app.Post("/upload", Upload(store, fields...), func(c *fiber.Ctx) error {
		out := fiber.Map{}
		for _, f := range fields {
			if obj, ok := Uploaded(c, f); ok {
				out[f] = obj.Path
			}
		}
		return c.JSON(out)
	})
	return app, root
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return out
}

func TestUploadStoresValidFiles(t *testing.T) {
	app, root := uploadApp(t, FieldCV, FieldProfilePhoto)

	req := multipartRequest(t, "/upload",
		part{FieldCV, "My Resume.pdf", minimalPDF()},
		part{FieldProfilePhoto, "me.png", pngHeader},
	)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, decode(t, resp))
	}

	body := decode(t, resp)
	cv, _ := body[FieldCV].(string)
	if !regexp.MustCompile(`^/uploads/cvs/My_Resume-\d+-[0-9a-f]{8}\.pdf$`).MatchString(cv) {
		t.Errorf("unexpected cv path %q", cv)
	}
	photo, _ := body[FieldProfilePhoto].(string)
	if !strings.HasPrefix(photo, "/uploads/profile-photos/me-") {
		t.Errorf("unexpected photo path %q", photo)
	}
	if n := countFiles(t, root); n != 2 {
		t.Errorf("expected 2 stored files, got %d", n)
	}
}

func TestUploadRejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name  string
		parts []part
	}{
		{"executable as cv", []part{{FieldCV, "resume.exe", []byte("MZ\x90\x00")}}},
		{"renamed text as pdf", []part{{FieldCV, "resume.pdf", []byte("just some text, not a pdf at all")}}},
		{"truncated pdf", []part{{FieldCV, "resume.pdf", minimalPDF()[:60]}}},
		{"image as video", []part{{FieldVideo, "clip.mp4", pngHeader}}},
		// A valid photo alongside a bad CV must not be written either.
		{"one bad file of two", []part{
			{FieldProfilePhoto, "me.png", pngHeader},
			{FieldCV, "resume.exe", []byte("MZ")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, root := uploadApp(t, FieldCV, FieldProfilePhoto, FieldVideo)
			resp, err := app.Test(multipartRequest(t, "/upload", tt.parts...), -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			if msg, _ := decode(t, resp)["message"].(string); msg == "" {
				t.Error("expected a message in the rejection body")
			}
			if n := countFiles(t, root); n != 0 {
				t.Errorf("expected nothing written, found %d files", n)
			}
		})
	}
}

func TestUploadSizeCeiling(t *testing.T) {
	padded := append(minimalPDF(), bytes.Repeat([]byte("\n"), 5*mb)...)

	root := t.TempDir()
	store, _ := storage.NewLocalStore(root)
	app := fiber.New(fiber.Config{BodyLimit: 8 * mb})
	app.Post("/upload", Upload(store, FieldCV), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(multipartRequest(t, "/upload", part{FieldCV, "big.pdf", padded}), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for oversized cv, got %d", resp.StatusCode)
	}
	if n := countFiles(t, root); n != 0 {
		t.Errorf("expected nothing written, found %d files", n)
	}
}

func TestUploadPassesNonMultipart(t *testing.T) {
	app, _ := uploadApp(t, FieldCV)
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestStoredName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tests := map[string]*regexp.Regexp{
		"CV Final (2).PDF":     regexp.MustCompile(`^CV_Final_2-1700000000123-[0-9a-f]{8}\.pdf$`),
		"../../etc/passwd.png": regexp.MustCompile(`^passwd-1700000000123-[0-9a-f]{8}\.png$`),
		".png":                 regexp.MustCompile(`^file-1700000000123-[0-9a-f]{8}\.png$`),
	}
	for in, want := range tests {
		if got := storedName(in, now); !want.MatchString(got) {
			t.Errorf("storedName(%q) = %q", in, got)
		}
	}
	if storedName("a.pdf", now) == storedName("a.pdf", now) {
		t.Error("names generated in the same millisecond should differ")
	}
}

func TestAuthMiddleware(t *testing.T) {
	verifier := auth.VerifierFunc(func(_ context.Context, token string) (*auth.Principal, error) {
		if token != "good" {
			return nil, auth.ErrInvalidToken
		}
		return &auth.Principal{UID: "uid-1", Email: "ana@example.com"}, nil
	})

	app := fiber.New()
	app.Get("/me", AuthMiddleware(verifier), func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return errors.New("principal missing")
		}
		return c.JSON(fiber.Map{"uid": p.UID, "email": c.Locals("email")})
	})

	tests := []struct {
		header string
		status int
	}{
		{"", fiber.StatusUnauthorized},
		{"good", fiber.StatusUnauthorized},
		{"Bearer ", fiber.StatusUnauthorized},
		{"Bearer bad", fiber.StatusUnauthorized},
		{"Bearer good", fiber.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("header %q: expected %d, got %d", tt.header, tt.status, resp.StatusCode)
		}
		body := decode(t, resp)
		if tt.status == fiber.StatusUnauthorized && body["message"] != "unauthorized" {
			t.Errorf("header %q: unexpected body %v", tt.header, body)
		}
		if tt.status == fiber.StatusOK && body["uid"] != "uid-1" {
			t.Errorf("expected principal uid in locals, got %v", body)
		}
	}
}

type availability bool

func (a availability) Available() bool { return bool(a) }

func TestRequireStore(t *testing.T) {
	for _, up := range []bool{true, false} {
		app := fiber.New()
		app.Get("/x", RequireStore(availability(up)), func(c *fiber.Ctx) error { return c.SendString("ok") })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		io.Copy(io.Discard, resp.Body)

		want := fiber.StatusOK
		if !up {
			want = fiber.StatusServiceUnavailable
		}
		if resp.StatusCode != want {
			t.Errorf("available=%v: expected %d, got %d", up, want, resp.StatusCode)
		}
	}
}
