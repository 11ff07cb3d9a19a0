// Package paging validates page requests and shapes paged results.
package paging

import (
	"math"
	"strconv"
	"strings"

	"github.com/eaglebank/user-registry/shared/apperror"
)

const (
	DefaultPage = 0
	DefaultSize = 10
)

// Request is a zero-based page index and a positive page size.
type Request struct {
	Page int
	Size int
}

// NewRequest validates page and size.
func NewRequest(page, size int) (Request, error) {
	if page < 0 {
		return Request{}, apperror.New(apperror.ErrInvalidArgument, "page index must not be less than zero")
	}
	if size <= 0 {
		return Request{}, apperror.New(apperror.ErrInvalidArgument, "page size must not be less than one")
	}
	return Request{Page: page, Size: size}, nil
}

// ParseRequest reads raw query values, applying the defaults to empty ones.
func ParseRequest(pageRaw, sizeRaw string) (Request, error) {
	page, err := parseInt("page", pageRaw, DefaultPage)
	if err != nil {
		return Request{}, err
	}
	size, err := parseInt("size", sizeRaw, DefaultSize)
	if err != nil {
		return Request{}, err
	}
	return NewRequest(page, size)
}

// Offset saturates at math.MaxInt, so a page index past any stored data
// still yields an empty page.
func (r Request) Offset() int {
	if r.Size > 0 && r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

func (r Request) Limit() int { return r.Size }

// Page is one slice of an ordered result set plus totals.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage wraps content fetched for req out of total matching records.
func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    TotalPages(total, req.Size),
	}
}

// TotalPages is ceil(total/size).
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Slice pages an already ordered slice.
func Slice[T any](items []T, req Request) Page[T] {
	total := int64(len(items))
	start := req.Offset()
	if start >= len(items) {
		return NewPage[T](nil, req, total)
	}
	end := start + req.Limit()
	if end > len(items) {
		end = len(items)
	}
	return NewPage(items[start:end], req, total)
}

func parseInt(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.New(apperror.ErrInvalidArgument, name+" must be an integer, got \""+raw+"\"")
	}
	return n, nil
}
