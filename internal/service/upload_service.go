package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio-web/internal/entity"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/pkg/events"
	"portfolio-web/pkg/store"

	"golang.org/x/text/unicode/norm"
)

// Prefix layout that makes stored names unique to the second
const storedNameLayout = "20060102_150405"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

type IUploadService interface {
	// Accept validates and stores one uploaded file.
	Accept(ctx context.Context, file *multipart.FileHeader) (*entity.FileRecord, error)
	// Open returns the stored file and its size. The caller closes it.
	Open(ctx context.Context, storedName string) (io.ReadCloser, int64, error)

	SaveResume(ctx context.Context, sess *store.Session, file *multipart.FileHeader) (*entity.FileRecord, error)
	ListResumes(sess *store.Session) []entity.FileRecord
	AllowedExtensions() []string
}

type uploadService struct {
	dir       string
	allowed   map[string]struct{}
	allowList []string
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewUploadService(dir string, allowedExtensions []string, publisher IPublisherService, log logger.ILogger) IUploadService {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &uploadService{
		dir:       dir,
		allowed:   allowed,
		allowList: allowedExtensions,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *uploadService) AllowedExtensions() []string {
	return s.allowList
}

// SanitizeFilename reduces a client supplied name to a safe storage key:
// ASCII only, no path components, whitespace collapsed to underscores and
// anything outside [A-Za-z0-9_.-] dropped. The result may be empty.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

func (s *uploadService) isAllowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := s.allowed[strings.ToLower(filename[i+1:])]
	return ok
}

func (s *uploadService) Accept(ctx context.Context, file *multipart.FileHeader) (*entity.FileRecord, error) {
	if file == nil || file.Filename == "" {
		return nil, ErrNoFile
	}
	if !s.isAllowed(file.Filename) {
		return nil, ErrInvalidFileType
	}

	safe := SanitizeFilename(file.Filename)
	if safe == "" {
		return nil, ErrInvalidFileType
	}

	now := s.now()
	storedName := now.Format(storedNameLayout) + "_" + safe

	if err := s.write(file, storedName); err != nil {
		return nil, err
	}

	s.logger.Info("Upload", "File stored", map[string]interface{}{
		"stored_name":   storedName,
		"original_name": file.Filename,
		"size":          file.Size,
	})

	return &entity.FileRecord{
		Filename:     storedName,
		OriginalName: file.Filename,
		UploadTime:   now.Format(recordTimeLayout),
	}, nil
}

func (s *uploadService) write(file *multipart.FileHeader, storedName string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return fmt.Errorf("open upload directory: %w", err)
	}
	defer root.Close()

	dst, err := root.OpenFile(storedName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", storedName, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write %s: %w", storedName, err)
	}
	return dst.Close()
}

func (s *uploadService) Open(ctx context.Context, storedName string) (io.ReadCloser, int64, error) {
	// Stored names are always in sanitized form; anything else cannot exist.
	if storedName == "" || SanitizeFilename(storedName) != storedName {
		return nil, 0, ErrFileNotFound
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, 0, fmt.Errorf("open upload directory: %w", err)
	}
	defer root.Close()

	f, err := root.Open(storedName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrFileNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, ErrFileNotFound
	}
	return f, info.Size(), nil
}

func (s *uploadService) SaveResume(ctx context.Context, sess *store.Session, file *multipart.FileHeader) (*entity.FileRecord, error) {
	record, err := s.Accept(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := store.Append(sess, store.KeyUploadedFiles, *record); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeResumeUploaded, map[string]interface{}{
		"filename":      record.Filename,
		"original_name": record.OriginalName,
		"upload_time":   record.UploadTime,
	}))
	return record, nil
}

func (s *uploadService) ListResumes(sess *store.Session) []entity.FileRecord {
	return store.Get(sess, store.KeyUploadedFiles, []entity.FileRecord(nil))
}
