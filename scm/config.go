package scm

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mainframe-ci/endevor-scm/share/logger"
)

// Field names as they appear in the job configuration.
const (
	FieldHostPort      = "host_port"
	FieldFilterPattern = "filter_pattern"
	FieldFileExtension = "file_extension"
	FieldCredentialsID = "credentials_id"
	FieldCodePage      = "code_page"
)

// EndevorConfig holds the per-job retrieval fields. It is captured once at
// job configuration time and read-only for the lifetime of a build.
type EndevorConfig struct {
	HostPort      string `mapstructure:"host_port"`
	FilterPattern string `mapstructure:"filter_pattern"`
	FileExtension string `mapstructure:"file_extension"`
	CredentialsID string `mapstructure:"credentials_id"`
	CodePage      string `mapstructure:"code_page"`
}

type CLIConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CredentialsConfig struct {
	File     string `mapstructure:"file"`
	Database string `mapstructure:"database"`
	DBType   string `mapstructure:"db_type"`
	Table    string `mapstructure:"table"`
}

type LogConfig struct {
	LogOutput logger.LogOutput `mapstructure:"log_file"`
	LogLevel  logger.LogLevel  `mapstructure:"log_level"`
}

type Config struct {
	Endevor       EndevorConfig     `mapstructure:"endevor"`
	CLI           CLIConfig         `mapstructure:"cli"`
	Credentials   CredentialsConfig `mapstructure:"credentials"`
	Logging       LogConfig         `mapstructure:"logging"`
	TargetFolder  string            `mapstructure:"target_folder"`
	ChangelogFile string            `mapstructure:"changelog_file"`

	host string
	port string
}

// Host returns the host segment of host_port, valid after ParseAndValidate.
func (c *Config) Host() string {
	return c.host
}

// Port returns the port segment of host_port, valid after ParseAndValidate.
func (c *Config) Port() string {
	return c.port
}

// ParseAndValidate checks every retrieval field and normalizes the ones that
// pass. All field failures are reported together; any failure blocks the
// retrieval attempt entirely.
func (c *Config) ParseAndValidate() error {
	var result error

	host, port, err := ValidateHostPort(c.Endevor.HostPort)
	if err != nil {
		result = multierror.Append(result, err)
	} else {
		c.host = host
		c.port = port
	}

	if filter, err := ValidateFilterPattern(c.Endevor.FilterPattern); err != nil {
		result = multierror.Append(result, err)
	} else {
		c.Endevor.FilterPattern = filter
	}

	if ext, err := ValidateFileExtension(c.Endevor.FileExtension); err != nil {
		result = multierror.Append(result, err)
	} else {
		c.Endevor.FileExtension = ext
	}

	if id, err := ValidateCredentialsID(c.Endevor.CredentialsID); err != nil {
		result = multierror.Append(result, err)
	} else {
		c.Endevor.CredentialsID = id
	}

	if cp, err := ValidateCodePage(c.Endevor.CodePage); err != nil {
		result = multierror.Append(result, err)
	} else {
		c.Endevor.CodePage = cp
	}

	if strings.TrimSpace(c.CLI.Path) == "" {
		result = multierror.Append(result, errors.New("cli: path to the Topaz Workbench CLI installation is required"))
	}

	if c.CLI.Timeout <= 0 {
		c.CLI.Timeout = 10 * time.Minute
	}

	return result
}

// ValidateHostPort splits "HOST:PORT" into its normalized segments. The port
// is only checked to be numeric, no range check is applied.
func ValidateHostPort(raw string) (host, port string, err error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", "", newValidationError(FieldHostPort, ReasonEmpty)
	}

	segments := strings.Split(value, ":")
	if len(segments) != 2 {
		return "", "", newValidationError(FieldHostPort, ReasonWrongSegmentCount)
	}

	host = strings.TrimSpace(segments[0])
	if host == "" {
		return "", "", newValidationError(FieldHostPort, ReasonMissingHost)
	}

	port = strings.TrimSpace(segments[1])
	if port == "" {
		return "", "", newValidationError(FieldHostPort, ReasonMissingPort)
	}
	if !govalidator.IsNumeric(port) {
		return "", "", newValidationError(FieldHostPort, ReasonNonNumericPort)
	}

	return host, port, nil
}

// ValidateFilterPattern trims the filter. The pattern itself is opaque, the
// CLI interprets it server-side.
func ValidateFilterPattern(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", newValidationError(FieldFilterPattern, ReasonEmpty)
	}
	return value, nil
}

// ValidateFileExtension accepts a non-empty alphanumeric extension.
func ValidateFileExtension(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", newValidationError(FieldFileExtension, ReasonEmpty)
	}
	if !govalidator.IsAlphanumeric(value) {
		return "", newValidationError(FieldFileExtension, ReasonNotAlphanumeric)
	}
	return value, nil
}

// ValidateCredentialsID accepts any non-empty reference. Resolution against
// the credential store happens at retrieval time.
func ValidateCredentialsID(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", newValidationError(FieldCredentialsID, ReasonEmpty)
	}
	return value, nil
}

// ValidateCodePage accepts a code page number present in the catalog.
func ValidateCodePage(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", newValidationError(FieldCodePage, ReasonEmpty)
	}
	if _, ok := codePageDescriptions[value]; !ok {
		return "", newValidationError(FieldCodePage, ReasonUnknownCodePage)
	}
	return value, nil
}
