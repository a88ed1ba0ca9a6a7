package middleware

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/arzan03/TalentBridge/internal/storage"
)

const (
	FieldVideo        = "video"
	FieldCourseVideo  = "courseVideo"
	FieldCV           = "cv"
	FieldProfilePhoto = "profilePhoto"
	FieldFile         = "file"

	uploadsKey = "uploads"
	mb         = 1 << 20
)

// UploadCategory is the destination and allow-list for one multipart field.
type UploadCategory struct {
	Dir        string
	Extensions []string
	MaxSize    int64
}

var (
	videoExts    = []string{".mp4", ".mov", ".avi"}
	documentExts = []string{".pdf", ".doc", ".docx"}
	imageExts    = []string{".jpg", ".jpeg", ".png"}
)

var Categories = map[string]UploadCategory{
	FieldVideo:        {Dir: "videos", Extensions: videoExts, MaxSize: 50 * mb},
	FieldCourseVideo:  {Dir: "course-videos", Extensions: videoExts, MaxSize: 500 * mb},
	FieldCV:           {Dir: "cvs", Extensions: documentExts, MaxSize: 5 * mb},
	FieldProfilePhoto: {Dir: "profile-photos", Extensions: imageExts, MaxSize: 50 * mb},
	FieldFile:         {Dir: "files", Extensions: concat(videoExts, documentExts, imageExts), MaxSize: 50 * mb},
}

// contentTypes lists the sniffed types accepted for each extension. A file
// matches when its detected type or any ancestor of it is listed.
var contentTypes = map[string][]string{
	".mp4":  {"video/mp4"},
	".mov":  {"video/quicktime"},
	".avi":  {"video/x-msvideo"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
}

// UploadError is a rejected file; nothing has been written when it is returned.
type UploadError struct {
	Field    string
	Filename string
	Reason   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Filename, e.Reason)
}

// Upload accepts the first file of each given multipart field. Every file is checked
// before any is stored; the stored objects are available through Uploaded.
// Requests that are not multipart pass through untouched.
func Upload(store storage.Store, fields ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			return c.Next()
		}
		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid multipart form"})
		}

		type pending struct {
			field  string
			header *multipart.FileHeader
			ctype  string
		}
		var queue []pending
		for _, field := range fields {
			category, ok := Categories[field]
			if !ok {
				return fmt.Errorf("upload field %q has no category", field)
			}
			files := form.File[field]
			if len(files) == 0 {
				continue
			}
			ctype, err := checkFile(field, category, files[0])
			if err != nil {
				return rejectUpload(c, err)
			}
			queue = append(queue, pending{field: field, header: files[0], ctype: ctype})
		}

		uploads := make(map[string]storage.Object, len(queue))
		for _, p := range queue {
			obj, err := put(c.UserContext(), store, Categories[p.field].Dir, p.header, p.ctype)
			if err != nil {
				removeAll(store, uploads)
				log.Errorw("Failed to store upload", "field", p.field, "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to store upload"})
			}
			uploads[p.field] = obj
		}

		c.Locals(uploadsKey, uploads)
		return c.Next()
	}
}

// Uploaded returns the object stored for field by Upload.
func Uploaded(c *fiber.Ctx, field string) (storage.Object, bool) {
	uploads, _ := c.Locals(uploadsKey).(map[string]storage.Object)
	obj, ok := uploads[field]
	return obj, ok
}

// DiscardUploads removes every object stored for the request.
func DiscardUploads(c *fiber.Ctx, store storage.Store) {
	uploads, _ := c.Locals(uploadsKey).(map[string]storage.Object)
	removeAll(store, uploads)
}

func rejectUpload(c *fiber.Ctx, err error) error {
	var uerr *UploadError
	if errors.As(err, &uerr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "file rejected: " + uerr.Reason,
			"field":   uerr.Field,
		})
	}
	log.Errorw("Failed to inspect upload", "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unreadable upload"})
}

func checkFile(field string, category UploadCategory, fh *multipart.FileHeader) (string, error) {
	reject := func(format string, args ...interface{}) error {
		return &UploadError{Field: field, Filename: fh.Filename, Reason: fmt.Sprintf(format, args...)}
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowed(category.Extensions, ext) {
		return "", reject("extension %q not allowed, expected one of %s", ext, strings.Join(category.Extensions, ", "))
	}
	if fh.Size > category.MaxSize {
		return "", reject("file exceeds %d MB", category.MaxSize/mb)
	}
	if fh.Size == 0 {
		return "", reject("file is empty")
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if !matchesType(mtype, contentTypes[ext]) {
		return "", reject("content is %s, not %s", mtype.String(), ext)
	}

	if ext == ".pdf" {
		if err := checkPDF(f, fh.Size); err != nil {
			return "", reject("unreadable PDF: %v", err)
		}
	}
	return mtype.String(), nil
}

func matchesType(mtype *mimetype.MIME, accepted []string) bool {
	for m := mtype; m != nil; m = m.Parent() {
		for _, a := range accepted {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

// checkPDF parses the cross-reference table and page tree.
func checkPDF(f multipart.File, size int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	r, err := pdf.NewReader(f, size)
	if err != nil {
		return err
	}
	if r.NumPage() < 1 {
		return errors.New("no pages")
	}
	return nil
}

func put(ctx context.Context, store storage.Store, dir string, fh *multipart.FileHeader, ctype string) (storage.Object, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.Object{}, err
	}
	defer f.Close()

	return store.Put(ctx, dir+"/"+storedName(fh.Filename, time.Now()), f, fh.Size, ctype)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// storedName is "<basename>-<unix millis>-<8 hex>.<ext>".
func storedName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "file"
	}
	if len(base) > 64 {
		base = base[:64]
	}
	return fmt.Sprintf("%s-%d-%s%s", base, now.UnixMilli(), uuid.NewString()[:8], ext)
}

func removeAll(store storage.Store, uploads map[string]storage.Object) {
	for _, obj := range uploads {
		if err := store.Remove(context.Background(), obj.Key); err != nil {
			log.Warnw("Failed to remove upload", "key", obj.Key, "error", err)
		}
	}
}

func allowed(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
