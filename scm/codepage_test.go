package scm

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodePagesNumericOrder(t *testing.T) {
	pages, err := codePagesFrom(map[string]string{
		"9":  "nine",
		"37": "thirty-seven",
		"10": "ten",
	})
	require.NoError(t, err)

	var numbers []string
	for _, page := range pages {
		numbers = append(numbers, page.Number)
	}
	assert.Equal(t, []string{"9", "10", "37"}, numbers)
}

func TestCodePagesNonNumericKey(t *testing.T) {
	_, err := codePagesFrom(map[string]string{
		"1047": "CP 1047",
		"utf8": "not a code page",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "utf8")
}

func TestCodePagesCatalog(t *testing.T) {
	pages, err := CodePages()
	require.NoError(t, err)
	require.NotEmpty(t, pages)

	prev := 0
	for _, page := range pages {
		n, err := strconv.Atoi(page.Number)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		assert.NotEmpty(t, page.Description)
		prev = n
	}

	assert.Equal(t, "37", pages[0].Number)
}

func TestValidateCodePage(t *testing.T) {
	value, err := ValidateCodePage(" 1047 ")
	require.NoError(t, err)
	assert.Equal(t, "1047", value)

	_, err = ValidateCodePage("")
	requireReason(t, err, FieldCodePage, ReasonEmpty)

	_, err = ValidateCodePage("9999")
	requireReason(t, err, FieldCodePage, ReasonUnknownCodePage)
}
