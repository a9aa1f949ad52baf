// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beaconcms/beacon/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Summer Launch", "summer-launch"},
		{"accents", "Café Réunion", "cafe-reunion"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"multiple_spaces", "a   b", "a-b"},
		{"leading_trailing", " trimmed ", "trimmed"},
		{"digits", "Launch 2026", "launch-2026"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
