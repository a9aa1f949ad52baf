// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestPgx5URL verifies the DSN scheme rewrite for golang-migrate's pgx/v5 driver.
*/
func TestPgx5URL(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		expected string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/beacon", "pgx5://u:p@db:5432/beacon"},
		{"postgresql_scheme", "postgresql://u:p@db:5432/beacon", "pgx5://u:p@db:5432/beacon"},
		{"already_pgx5", "pgx5://u:p@db:5432/beacon", "pgx5://u:p@db:5432/beacon"},
		{"other_input", "host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pgx5URL(tt.dsn))
		})
	}
}
