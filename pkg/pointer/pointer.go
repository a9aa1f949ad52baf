// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

// Package pointer provides generic helpers for optional values expressed as
// pointers — the convention used by partial-update inputs, where nil means
// "leave this field untouched".
package pointer

// To returns a pointer to v. Useful for filling optional struct fields from
// literals (e.g. pointer.To("name")).
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback when p is nil. This is the
// delta-application primitive: current values pass through untouched fields.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
