package tailoring

import (
	"time"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/httpserver"
	"github.com/dmitrymomot/tailoring/pkg/redis"
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"tailoringd"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	TemplateHome string `env:"TEMPLATE_HOME,required"`
	TenantsFile  string `env:"TENANTS_FILE" envDefault:"tenants.yaml"`
	StrictDRDs   bool   `env:"STRICT_DRDS" envDefault:"false"`

	// TenantResolver is one of header, subdomain, path or composite.
	// TenantDomain is the parent domain of tenant subdomains.
	TenantResolver string `env:"TENANT_RESOLVER" envDefault:"header"`
	TenantHeader   string `env:"TENANT_HEADER" envDefault:"X-Tenant-ID"`
	TenantDomain   string `env:"TENANT_DOMAIN"`

	PDFRendererURL string        `env:"PDF_RENDERER_URL"`
	PDFEndpoint    string        `env:"PDF_RENDERER_ENDPOINT" envDefault:"/render"`
	PDFTimeout     time.Duration `env:"PDF_RENDERER_TIMEOUT" envDefault:"60s"`
	PDFRetries     int           `env:"PDF_RENDERER_RETRIES" envDefault:"2"`

	StorageDriver  string `env:"STORAGE_DRIVER" envDefault:"local"`
	StorageDir     string `env:"STORAGE_DIR" envDefault:"./artifacts"`
	StorageBaseURL string `env:"STORAGE_BASE_URL" envDefault:"/artifacts/"`

	HTTP  httpserver.Config
	Redis redis.Config
	S3    artifact.S3Config
}
