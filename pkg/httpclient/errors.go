package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// detailResponse mirrors the error body shape returned by the Sabor Real
// backend: {"detail": "..."} where detail is either a plain message or a
// list of field validation entries.
type detailResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. If the body carries the backend's "detail" field, its
// message is preserved; otherwise the raw body text is used. The response
// body is fully consumed and closed.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx).
func ParseResponseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("backend returned status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	msg := extractDetail(bodyBytes)
	if msg == "" {
		msg = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return apperrors.FromStatus(resp.StatusCode, msg)
}

// extractDetail pulls a human-readable message out of an error body. It
// handles the plain-string detail, the structured validation-error list, and
// falls back to the raw body text.
func extractDetail(body []byte) string {
	var parsed detailResponse
	if json.Unmarshal(body, &parsed) == nil && len(parsed.Detail) > 0 {
		var s string
		if json.Unmarshal(parsed.Detail, &s) == nil {
			return s
		}

		var entries []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(parsed.Detail, &entries) == nil && len(entries) > 0 {
			msgs := make([]string, 0, len(entries))
			for _, e := range entries {
				if e.Msg != "" {
					msgs = append(msgs, e.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}

		return string(parsed.Detail)
	}

	return strings.TrimSpace(string(body))
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors are not the transport's fault and must never be retried.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
