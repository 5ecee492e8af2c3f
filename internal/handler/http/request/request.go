// Package request decodes JSON bodies and the query parameters shared by the
// /v1 listing endpoints.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// ErrInvalidBody is returned for empty, oversized or malformed JSON bodies.
var ErrInvalidBody = errors.New("invalid request body")

// DateLayout is the format of the start_*/end_* query parameters.
const DateLayout = "2006-01-02"

// DecodeJSON reads one JSON value from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrInvalidBody
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", ErrInvalidBody)
		case errors.As(err, &mbe):
			return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, mbe.Limit)
		default:
			return fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}
	return nil
}

// Listing parses page, limit, sort_by and sort.
func Listing(r *http.Request, cfg pagination.Config, sortable []string) (pagination.Params, pagination.Sort, error) {
	params, err := pagination.ParseQueryParams(r, cfg)
	if err != nil {
		return params, pagination.Sort{}, &entity.ValidationError{Field: "page", Message: err.Error()}
	}
	sort, err := pagination.ParseSort(r, sortable)
	if err != nil {
		return params, pagination.Sort{}, &entity.ValidationError{Field: "sort_by", Message: err.Error()}
	}
	return params, sort, nil
}

// PositiveInt64 parses an optional positive integer parameter.
func PositiveInt64(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, &entity.ValidationError{Field: key, Message: key + " must be a positive integer"}
	}
	return &v, nil
}

// DateRange parses start_<column> and end_<column>.
// The start bound is the beginning of its day and the end bound the last
// microsecond of its day, both in UTC.
func DateRange(q url.Values, column string) (repository.TimeRange, error) {
	var tr repository.TimeRange

	startKey, endKey := "start_"+column, "end_"+column
	if raw := strings.TrimSpace(q.Get(startKey)); raw != "" {
		d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
		if err != nil {
			return tr, &entity.ValidationError{Field: startKey, Message: startKey + " must be a date in YYYY-MM-DD format"}
		}
		tr.From = &d
	}
	if raw := strings.TrimSpace(q.Get(endKey)); raw != "" {
		d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
		if err != nil {
			return tr, &entity.ValidationError{Field: endKey, Message: endKey + " must be a date in YYYY-MM-DD format"}
		}
		end := d.Add(24*time.Hour - time.Microsecond)
		tr.To = &end
	}
	if tr.From != nil && tr.To != nil && tr.From.After(*tr.To) {
		return tr, &entity.ValidationError{Field: endKey, Message: endKey + " must not be before " + startKey}
	}
	return tr, nil
}
