package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/tailoring/pkg/catalog"
	"github.com/dmitrymomot/tailoring/pkg/drd"
	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/template"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Template variables always provided to document templates. Caller
// placeholders are merged in but never replace these keys.
const (
	VarCatalog      = "catalog"
	VarVersion      = "version"
	VarRequirements = "requirements"
	VarDRDs         = "drds"
	VarDocumentID   = "documentId"
	VarCreatedAt    = "createdAt"
	VarPlaceholders = "placeholders"
)

// Creator runs the generation pipeline for one template: variables, render,
// XHTML normalisation, conversion.
type Creator struct {
	engine    template.Engine
	converter Converter
	template  string
	log       *slog.Logger
	metrics   *Metrics
	strict    bool
}

// CreatorOption configures a Creator.
type CreatorOption func(*Creator)

// WithLogger sets the logger. Default slog.Default().
func WithLogger(l *slog.Logger) CreatorOption {
	return func(c *Creator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records generation metrics.
func WithMetrics(m *Metrics) CreatorOption {
	return func(c *Creator) { c.metrics = m }
}

// WithStrictDRDs makes a dangling DRD reference abort generation with
// ErrDanglingReference instead of being logged and omitted.
func WithStrictDRDs(strict bool) CreatorOption {
	return func(c *Creator) { c.strict = strict }
}

// NewCreator creates a Creator rendering templateName through engine.
func NewCreator(engine template.Engine, converter Converter, templateName string, opts ...CreatorOption) (*Creator, error) {
	if engine == nil || converter == nil || templateName == "" {
		return nil, fmt.Errorf("%w: engine, converter and template are required", ErrInvalidConfig)
	}
	c := &Creator{
		engine:    engine,
		converter: converter,
		template:  templateName,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateDocument renders cat into a File named documentID. A missing or
// broken template fails the whole call; no partial document is returned.
func (c *Creator) CreateDocument(ctx context.Context, documentID string, cat catalog.Catalog, placeholders map[string]any) (*File, error) {
	started := time.Now()
	tenantID, _ := tenant.IDFromContext(ctx)

	file, err := c.create(ctx, documentID, cat, placeholders)
	c.metrics.observe(tenantID, started, err)

	if err != nil {
		c.log.ErrorContext(ctx, "document generation failed",
			logger.Component("document"),
			logger.DocumentID(documentID),
			logger.CatalogVersion(cat.Version),
			logger.Error(err),
		)
		return nil, err
	}

	c.log.InfoContext(ctx, "document generated",
		logger.Component("document"),
		logger.DocumentID(documentID),
		logger.CatalogVersion(cat.Version),
		slog.Int("size", len(file.Content)),
		logger.Duration(time.Since(started)),
	)
	return file, nil
}

func (c *Creator) create(ctx context.Context, documentID string, cat catalog.Catalog, placeholders map[string]any) (*File, error) {
	xhtml, err := c.render(ctx, documentID, cat, placeholders)
	if err != nil {
		return nil, err
	}

	content, err := c.converter.Convert(ctx, xhtml)
	if err != nil {
		return nil, errors.Join(ErrGeneration, err)
	}

	return &File{
		Name:        documentID,
		Extension:   c.converter.Extension(),
		ContentType: c.converter.ContentType(),
		Content:     content,
	}, nil
}

// render produces the normalised XHTML of the document.
func (c *Creator) render(ctx context.Context, documentID string, cat catalog.Catalog, placeholders map[string]any) (string, error) {
	if err := cat.Validate(); err != nil {
		return "", errors.Join(ErrGeneration, ErrInvalidCatalog, err)
	}

	vars, err := c.variables(ctx, documentID, cat, placeholders)
	if err != nil {
		return "", err
	}

	out, err := c.engine.Process(ctx, c.template, vars)
	if err != nil {
		return "", errors.Join(ErrGeneration, err)
	}

	xhtml, err := c.engine.ToXHTML(out, placeholders)
	if err != nil {
		return "", errors.Join(ErrGeneration, err)
	}
	return xhtml, nil
}

func (c *Creator) variables(ctx context.Context, documentID string, cat catalog.Catalog, placeholders map[string]any) (map[string]any, error) {
	elements, dangling := drd.Aggregate(cat)

	if len(dangling) > 0 {
		tenantID, _ := tenant.IDFromContext(ctx)
		c.metrics.dangling(tenantID, len(dangling))
		for _, d := range dangling {
			c.log.WarnContext(ctx, "dangling drd reference",
				logger.Component("document"),
				logger.DocumentID(documentID),
				logger.Requirement(d.Requirement),
				logger.DRD(d.DRD),
			)
		}
		if c.strict {
			d := dangling[0]
			return nil, errors.Join(ErrGeneration,
				fmt.Errorf("%w: requirement %q references %q", ErrDanglingReference, d.Requirement, d.DRD))
		}
	}

	vars := make(map[string]any, len(placeholders)+7)
	maps.Copy(vars, placeholders)
	vars[VarCatalog] = cat
	vars[VarVersion] = cat.Version
	vars[VarRequirements] = cat.Requirements
	vars[VarDRDs] = elements
	vars[VarDocumentID] = documentID
	vars[VarCreatedAt] = placeholders[PlaceholderCreationDate]
	vars[VarPlaceholders] = maps.Clone(placeholders)
	return vars, nil
}

// Preview returns a templ.Component that writes the document's XHTML
// without converting it.
func (c *Creator) Preview(documentID string, cat catalog.Catalog, placeholders map[string]any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		xhtml, err := c.render(ctx, documentID, cat, placeholders)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, xhtml)
		return err
	})
}
