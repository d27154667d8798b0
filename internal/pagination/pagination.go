// Package pagination computes page windows over ordered result sets.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Window describes one page of a result set of Total items.
type Window struct {
	Number      int   `json:"number"`
	PerPage     int   `json:"per_page"`
	NumPages    int   `json:"num_pages"`
	Total       int64 `json:"count"`
	Offset      int   `json:"-"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Paginate returns the window for the requested 1-based page. Requests below
// 1 yield the first page and requests past the end yield the last one. An
// empty result set still has one (empty) page.
func Paginate(total int64, perPage, requested int) Window {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}

	numPages := 1
	if total > 0 {
		numPages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Window{
		Number:      number,
		PerPage:     perPage,
		NumPages:    numPages,
		Total:       total,
		Offset:      (number - 1) * perPage,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

// ParsePage reads a ?page= value. Anything that is not an integer means page 1.
// A positive integer too large for int reads as math.MaxInt, which Paginate
// clamps to the last page.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt
		}
		return 1
	}
	return n
}

// NextNumber returns the following page number, or 0 when there is none.
func (w Window) NextNumber() int {
	if !w.HasNext {
		return 0
	}
	return w.Number + 1
}

// PreviousNumber returns the preceding page number, or 0 when there is none.
func (w Window) PreviousNumber() int {
	if !w.HasPrevious {
		return 0
	}
	return w.Number - 1
}

// MarshalJSON adds next_page_number and previous_page_number when those pages exist.
func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Number      int   `json:"number"`
		PerPage     int   `json:"per_page"`
		NumPages    int   `json:"num_pages"`
		Total       int64 `json:"count"`
		HasNext     bool  `json:"has_next"`
		HasPrevious bool  `json:"has_previous"`
		Next        int   `json:"next_page_number,omitempty"`
		Previous    int   `json:"previous_page_number,omitempty"`
	}{w.Number, w.PerPage, w.NumPages, w.Total, w.HasNext, w.HasPrevious, w.NextNumber(), w.PreviousNumber()})
}
