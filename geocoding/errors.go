// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeocodingError represents a geocoding specific failure.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding errors.
type ErrorType int

const (
	// ErrorTypeUnknown unknown error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit rate limit reached.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded quota exceeded.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout connection timeout.
	ErrorTypeTimeout
	// ErrorTypeNotFound location not found.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest invalid request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError network error.
	ErrorTypeNetworkError
	// ErrorTypeMissingKey no API key configured.
	ErrorTypeMissingKey
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeQuotaExceeded:
		return "quota_exceeded"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeInvalidRequest:
		return "invalid_request"
	case ErrorTypeNetworkError:
		return "network_error"
	case ErrorTypeMissingKey:
		return "missing_key"
	default:
		return "unknown"
	}
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

func hasType(err error, t ErrorType) (matched, typed bool) {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == t, true
	}

	return false, false
}

// IsNotFoundError reports whether the address could not be resolved.
func IsNotFoundError(err error) bool {
	matched, _ := hasType(err, ErrorTypeNotFound)

	return matched
}

// IsMissingKeyError reports whether the geocoder had no API key.
func IsMissingKeyError(err error) bool {
	matched, _ := hasType(err, ErrorTypeMissingKey)

	return matched
}

// IsRateLimitError reports whether the error is due to rate limiting.
func IsRateLimitError(err error) bool {
	if matched, typed := hasType(err, ErrorTypeRateLimit); typed {
		return matched
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether the error is due to an exhausted quota.
func IsQuotaExceededError(err error) bool {
	if matched, typed := hasType(err, ErrorTypeQuotaExceeded); typed {
		return matched
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether the error is a timeout.
func IsTimeoutError(err error) bool {
	if matched, typed := hasType(err, ErrorTypeTimeout); typed {
		return matched
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps an HTTP status code to a geocoding error.
func ClassifyHTTPError(statusCode int) *GeocodingError {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden:
		return &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound:
		return &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "location not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// classifyStatus maps the status field of a geocoding response.
func classifyStatus(status string) *GeocodingError {
	switch status {
	case "ZERO_RESULTS":
		return &GeocodingError{Type: ErrorTypeNotFound, Message: "no results found"}
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "google maps status: " + status}
	case "REQUEST_DENIED", "INVALID_REQUEST":
		return &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "google maps status: " + status}
	default:
		return &GeocodingError{Type: ErrorTypeUnknown, Message: "google maps status: " + status}
	}
}
