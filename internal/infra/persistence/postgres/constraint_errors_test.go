package postgres

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_lower_key"}
	foreignKey := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	check := &pgconn.PgError{Code: pgerrcode.CheckViolation}

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		check      bool
	}{
		{name: "pg unique", err: unique, unique: true},
		{name: "wrapped pg unique", err: errors.Wrap(unique, "insert account"), unique: true},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, unique: true},
		{name: "pg foreign key", err: foreignKey, foreignKey: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, foreignKey: true},
		{name: "pg check", err: check, check: true},
		{name: "gorm check", err: gorm.ErrCheckConstraintViolated, check: true},
		{name: "other", err: errors.New("connection reset")},
		{name: "record not found", err: gorm.ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}
}
