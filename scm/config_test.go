package scm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Endevor: EndevorConfig{
			HostPort:      "cw01:16196",
			FilterPattern: "PROD.COBOL.*",
			FileExtension: "cbl",
			CredentialsID: "mainframe",
			CodePage:      "1047",
		},
		CLI: CLIConfig{
			Path: "/opt/topaz",
		},
	}
}

func requireReason(t *testing.T, err error, field string, reason Reason) {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, field, vErr.Field)
	assert.Equal(t, reason, vErr.Reason)
}

func TestValidateHostPort(t *testing.T) {
	testCases := []struct {
		Name           string
		Input          string
		ExpectedHost   string
		ExpectedPort   string
		ExpectedReason Reason
		WantErr        bool
	}{
		{
			Name:         "valid",
			Input:        "host:8080",
			ExpectedHost: "host",
			ExpectedPort: "8080",
		}, {
			Name:         "padded segments",
			Input:        "  cw01 : 16196  ",
			ExpectedHost: "cw01",
			ExpectedPort: "16196",
		}, {
			Name:           "empty",
			Input:          "",
			WantErr:        true,
			ExpectedReason: ReasonEmpty,
		}, {
			Name:           "blank",
			Input:          "   ",
			WantErr:        true,
			ExpectedReason: ReasonEmpty,
		}, {
			Name:           "no delimiter",
			Input:          "host",
			WantErr:        true,
			ExpectedReason: ReasonWrongSegmentCount,
		}, {
			Name:           "too many segments",
			Input:          "host:8080:extra",
			WantErr:        true,
			ExpectedReason: ReasonWrongSegmentCount,
		}, {
			Name:           "missing host",
			Input:          ":8080",
			WantErr:        true,
			ExpectedReason: ReasonMissingHost,
		}, {
			Name:           "missing port",
			Input:          "host:",
			WantErr:        true,
			ExpectedReason: ReasonMissingPort,
		}, {
			Name:           "alpha port",
			Input:          "host:abc",
			WantErr:        true,
			ExpectedReason: ReasonNonNumericPort,
		}, {
			Name:           "mixed port",
			Input:          "host:8a0",
			WantErr:        true,
			ExpectedReason: ReasonNonNumericPort,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			host, port, err := ValidateHostPort(tc.Input)

			if tc.WantErr {
				requireReason(t, err, FieldHostPort, tc.ExpectedReason)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedHost, host)
			assert.Equal(t, tc.ExpectedPort, port)
		})
	}
}

func TestValidateFilterPattern(t *testing.T) {
	value, err := ValidateFilterPattern("  PROD.COBOL.*  ")
	require.NoError(t, err)
	assert.Equal(t, "PROD.COBOL.*", value)

	_, err = ValidateFilterPattern("   ")
	requireReason(t, err, FieldFilterPattern, ReasonEmpty)
}

func TestValidateFileExtension(t *testing.T) {
	testCases := []struct {
		Name           string
		Input          string
		Expected       string
		ExpectedReason Reason
		WantErr        bool
	}{
		{
			Name:     "alphanumeric",
			Input:    "txt1",
			Expected: "txt1",
		}, {
			Name:     "padded",
			Input:    " cbl ",
			Expected: "cbl",
		}, {
			Name:           "empty",
			Input:          "",
			WantErr:        true,
			ExpectedReason: ReasonEmpty,
		}, {
			Name:           "dash",
			Input:          "t-1",
			WantErr:        true,
			ExpectedReason: ReasonNotAlphanumeric,
		}, {
			Name:           "dot",
			Input:          ".cbl",
			WantErr:        true,
			ExpectedReason: ReasonNotAlphanumeric,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			value, err := ValidateFileExtension(tc.Input)

			if tc.WantErr {
				requireReason(t, err, FieldFileExtension, tc.ExpectedReason)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.Expected, value)
		})
	}
}

func TestValidateCredentialsID(t *testing.T) {
	value, err := ValidateCredentialsID(" mainframe ")
	require.NoError(t, err)
	assert.Equal(t, "mainframe", value)

	_, err = ValidateCredentialsID("")
	requireReason(t, err, FieldCredentialsID, ReasonEmpty)
}

func TestValidatorsIdempotent(t *testing.T) {
	host, port, err := ValidateHostPort(" cw01 : 16196 ")
	require.NoError(t, err)
	host2, port2, err := ValidateHostPort(host + ":" + port)
	require.NoError(t, err)
	assert.Equal(t, host, host2)
	assert.Equal(t, port, port2)

	filter, err := ValidateFilterPattern(" A.B.* ")
	require.NoError(t, err)
	filter2, err := ValidateFilterPattern(filter)
	require.NoError(t, err)
	assert.Equal(t, filter, filter2)

	ext, err := ValidateFileExtension(" cbl ")
	require.NoError(t, err)
	ext2, err := ValidateFileExtension(ext)
	require.NoError(t, err)
	assert.Equal(t, ext, ext2)
}

func TestConfigParseAndValidate(t *testing.T) {
	config := validConfig()

	err := config.ParseAndValidate()
	require.NoError(t, err)

	assert.Equal(t, "cw01", config.Host())
	assert.Equal(t, "16196", config.Port())
	assert.Equal(t, 10*time.Minute, config.CLI.Timeout)
}

func TestConfigParseAndValidateCollectsAllFailures(t *testing.T) {
	config := &Config{
		Endevor: EndevorConfig{
			HostPort:      "host",
			FileExtension: "t-1",
		},
	}

	err := config.ParseAndValidate()
	require.Error(t, err)

	for _, field := range []string{
		FieldHostPort,
		FieldFilterPattern,
		FieldFileExtension,
		FieldCredentialsID,
		FieldCodePage,
	} {
		assert.Contains(t, err.Error(), field)
	}
	assert.Contains(t, err.Error(), "Topaz Workbench CLI")
}
