package document

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Converter turns normalised XHTML into the final artifact format.
type Converter interface {
	Convert(ctx context.Context, xhtml string) ([]byte, error)
	ContentType() string
	Extension() string
}

// XHTMLConverter emits the XHTML unchanged, prefixed with an XML declaration.
type XHTMLConverter struct{}

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Convert prefixes xhtml with an XML declaration.
func (XHTMLConverter) Convert(ctx context.Context, xhtml string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(xmlDeclaration + xhtml), nil
}

// ContentType returns ContentTypeXHTML.
func (XHTMLConverter) ContentType() string { return ContentTypeXHTML }

// Extension returns "xhtml".
func (XHTMLConverter) Extension() string { return "xhtml" }

var pdfMagic = []byte("%PDF-")

// PDFConverter posts XHTML to an external HTML-to-PDF renderer.
type PDFConverter struct {
	client   *resty.Client
	endpoint string
}

// PDFOption configures a PDFConverter.
type PDFOption func(*pdfOptions)

type pdfOptions struct {
	endpoint   string
	timeout    time.Duration
	retries    int
	httpClient *http.Client
}

// WithPDFEndpoint sets the render path relative to the base URL. Default "/render".
func WithPDFEndpoint(path string) PDFOption {
	return func(o *pdfOptions) { o.endpoint = path }
}

// WithPDFTimeout sets the per-request timeout. Default 60s.
func WithPDFTimeout(d time.Duration) PDFOption {
	return func(o *pdfOptions) { o.timeout = d }
}

// WithPDFRetries sets how often a failed render is retried. Default 2.
func WithPDFRetries(n int) PDFOption {
	return func(o *pdfOptions) { o.retries = n }
}

// WithPDFHTTPClient sets the underlying HTTP client.
func WithPDFHTTPClient(c *http.Client) PDFOption {
	return func(o *pdfOptions) { o.httpClient = c }
}

// NewPDFConverter creates a converter for the renderer at baseURL.
func NewPDFConverter(baseURL string, opts ...PDFOption) (*PDFConverter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: pdf renderer url is empty", ErrInvalidConfig)
	}

	o := pdfOptions{endpoint: "/render", timeout: 60 * time.Second, retries: 2}
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New()
	if o.httpClient != nil {
		client = resty.NewWithClient(o.httpClient)
	}
	client.
		SetBaseURL(baseURL).
		SetTimeout(o.timeout).
		SetRetryCount(o.retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})

	return &PDFConverter{client: client, endpoint: o.endpoint}, nil
}

// Convert posts xhtml to the renderer and returns the PDF bytes. Responses
// that are not a PDF fail with ErrConvert.
func (c *PDFConverter) Convert(ctx context.Context, xhtml string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/xhtml+xml; charset=utf-8").
		SetHeader("Accept", "application/pdf").
		SetBody(xhtml).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConvert, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: renderer responded %d", ErrConvert, resp.StatusCode())
	}

	body := resp.Body()
	if !bytes.HasPrefix(body, pdfMagic) {
		return nil, fmt.Errorf("%w: renderer returned no pdf", ErrConvert)
	}
	return body, nil
}

// ContentType returns ContentTypePDF.
func (c *PDFConverter) ContentType() string { return ContentTypePDF }

// Extension returns "pdf".
func (c *PDFConverter) Extension() string { return "pdf" }
