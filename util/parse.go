package util

import (
	"net/http"
	"strconv"
	"time"
)

func ParseTime(val string) (time.Time, error) {
	return time.Parse(time.RFC3339, val)
}

func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

func ParseLimit(val string) (int, *HTTPError) {
	limit, err := strconv.Atoi(val)
	if err != nil || limit <= 0 || limit > 200 {
		return 0, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "limit malformed",
		}
	}
	return limit, nil
}
