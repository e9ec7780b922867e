package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records the tenant identifier under the key "tenant_id".
// An empty id yields an empty Attr.
func TenantID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_id", id)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// DocumentID records the generated document identifier.
func DocumentID(id string) slog.Attr {
	return slog.String("document_id", id)
}

// CatalogVersion records the catalog version label.
func CatalogVersion(v string) slog.Attr {
	return slog.String("catalog_version", v)
}

// Template records a template name.
func Template(name string) slog.Attr {
	return slog.String("template", name)
}

// DRD records a DRD number.
func DRD(number string) slog.Attr {
	return slog.String("drd", number)
}

// Requirement records a requirement identifier.
func Requirement(id string) slog.Attr {
	return slog.String("requirement", id)
}

// Project records a project identifier.
func Project(id string) slog.Attr {
	return slog.String("project", id)
}

// Tailoring records a tailoring identifier.
func Tailoring(id string) slog.Attr {
	return slog.String("tailoring", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
