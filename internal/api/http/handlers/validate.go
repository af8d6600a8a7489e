package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/service"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bind parses the body into dst and validates its tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}

func principal(c *fiber.Ctx) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.Principal{}, apperrors.NewUnauthorized("authentication required")
	}
	return *p, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// uploads reads every file of a multipart request keyed by field name.
func uploads(c *fiber.Ctx) (map[string][]service.FileUpload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewValidationError("invalid multipart form", nil)
	}
	out := make(map[string][]service.FileUpload, len(form.File))
	for field, headers := range form.File {
		for _, fh := range headers {
			up, err := readUpload(fh)
			if err != nil {
				return nil, apperrors.NewValidationError("unreadable file", map[string]any{"field": field})
			}
			out[field] = append(out[field], up)
		}
	}
	return out, nil
}

func readUpload(fh *multipart.FileHeader) (service.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.FileUpload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return service.FileUpload{}, err
	}
	return service.FileUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// formValue returns a pointer to a multipart field, or nil when the field was not sent.
func formValue(form *multipart.Form, key string) *string {
	if form == nil {
		return nil
	}
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate accepts RFC 3339 or YYYY-MM-DD. Empty input is nil.
func parseDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.NewValidationError("invalid date", map[string]any{field: v})
}

func parseOptionalFloat(field, v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid number", map[string]any{field: v})
	}
	return &f, nil
}

func parseOptionalInt(field, v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid integer", map[string]any{field: v})
	}
	return &n, nil
}

// documentUploads keeps the first file of each multipart field, keyed as a document kind.
func documentUploads(files map[string][]service.FileUpload) map[domain.DocumentKind]service.FileUpload {
	if len(files) == 0 {
		return nil
	}
	out := make(map[domain.DocumentKind]service.FileUpload, len(files))
	for field, list := range files {
		if len(list) > 0 {
			out[domain.DocumentKind(field)] = list[0]
		}
	}
	return out
}
