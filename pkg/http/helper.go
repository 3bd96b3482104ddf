package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"estatehub/pkg/config"
	apperrors "estatehub/pkg/errors"
)

const DateLayout = "2006-01-02"

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDateRange reads startDate and endDate (YYYY-MM-DD, UTC). The end is returned as the
// first instant of the following day so callers can filter with $lt and include the whole day.
func ExtractDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	query := r.URL.Query()

	var from, to *time.Time
	if s := query.Get("startDate"); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, nil, apperrors.InvalidInput("invalid startDate, expected YYYY-MM-DD: " + s)
		}
		from = &t
	}
	if s := query.Get("endDate"); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, nil, apperrors.InvalidInput("invalid endDate, expected YYYY-MM-DD: " + s)
		}
		next := t.AddDate(0, 0, 1)
		to = &next
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, apperrors.InvalidInput("startDate must not be after endDate")
	}
	return from, to, nil
}

// DecodeJSON reads a request body into dst. Oversized bodies and malformed JSON are both
// reported as 400 "Invalid request body".
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.InvalidInput("Request body too large")
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}
