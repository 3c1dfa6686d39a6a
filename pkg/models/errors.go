package models

import (
	"errors"
	"fmt"
)

// ErrCode classifies repository failures so handlers can map them to HTTP
// statuses without string matching.
type ErrCode string

const (
	ErrNotFound         ErrCode = "not_found"
	ErrConflict         ErrCode = "conflict"
	ErrTransportFailure ErrCode = "transport_failure"
	ErrUnknown          ErrCode = "unknown"
)

// RepoError is a storage-layer error tagged with an ErrCode.
type RepoError struct {
	Code ErrCode
	Err  error
}

func (e *RepoError) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *RepoError) Unwrap() error { return e.Err }

// NewRepoError wraps err with the given code.
func NewRepoError(code ErrCode, err error) *RepoError {
	return &RepoError{Code: code, Err: err}
}

// CodeOf extracts the ErrCode from err, defaulting to ErrUnknown.
func CodeOf(err error) ErrCode {
	var re *RepoError
	if errors.As(err, &re) {
		return re.Code
	}
	return ErrUnknown
}
