package scm

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// CodePage is one entry of the supported code page catalog.
type CodePage struct {
	Number      string
	Description string
}

// Code pages the Topaz CLI can interpret retrieved text with.
var codePageDescriptions = map[string]string{
	"37":   "CP 0037 - United States, Canada",
	"273":  "CP 0273 - Germany, Austria",
	"277":  "CP 0277 - Denmark, Norway",
	"278":  "CP 0278 - Finland, Sweden",
	"280":  "CP 0280 - Italy",
	"284":  "CP 0284 - Spain, Latin America",
	"285":  "CP 0285 - United Kingdom",
	"297":  "CP 0297 - France",
	"500":  "CP 0500 - International",
	"871":  "CP 0871 - Iceland",
	"930":  "CP 0930 - Japan (Katakana extended)",
	"937":  "CP 0937 - Traditional Chinese",
	"939":  "CP 0939 - Japan (Latin extended)",
	"1025": "CP 1025 - Cyrillic",
	"1026": "CP 1026 - Turkey",
	"1047": "CP 1047 - Latin-1, Open Systems",
	"1140": "CP 1140 - United States, Canada (Euro)",
	"1141": "CP 1141 - Germany, Austria (Euro)",
	"1142": "CP 1142 - Denmark, Norway (Euro)",
	"1143": "CP 1143 - Finland, Sweden (Euro)",
	"1144": "CP 1144 - Italy (Euro)",
	"1145": "CP 1145 - Spain, Latin America (Euro)",
	"1146": "CP 1146 - United Kingdom (Euro)",
	"1147": "CP 1147 - France (Euro)",
	"1148": "CP 1148 - International (Euro)",
}

// CodePages returns the catalog ordered by the numeric value of the code
// page number. Identifiers are numeric strings, a plain string sort would
// put "1047" before "37".
func CodePages() ([]CodePage, error) {
	return codePagesFrom(codePageDescriptions)
}

func codePagesFrom(catalog map[string]string) ([]CodePage, error) {
	numbers := make([]int, 0, len(catalog))
	byNumber := make(map[int]CodePage, len(catalog))
	for number, description := range catalog {
		n, err := strconv.Atoi(number)
		if err != nil {
			return nil, errors.Errorf("non-numeric code page number %q in catalog", number)
		}
		numbers = append(numbers, n)
		byNumber[n] = CodePage{Number: number, Description: description}
	}
	sort.Ints(numbers)

	pages := make([]CodePage, 0, len(numbers))
	for _, n := range numbers {
		pages = append(pages, byNumber[n])
	}
	return pages, nil
}
