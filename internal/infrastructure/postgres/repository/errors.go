package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// wrapErr turns a gorm/driver error into the domain vocabulary. A missing row becomes
// notFound when one is given; everything else becomes a classified DataAccessError.
func wrapErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, domain.ErrMissingParticipant) || errors.Is(err, domain.ErrEmptyOrder) {
		return err
	}
	code := sqlState(err)
	return &domain.DataAccessError{
		Op:    op,
		Code:  code,
		Cause: classify(err, code),
		Err:   err,
	}
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func classify(err error, code string) domain.FailureCause {
	switch {
	case strings.HasPrefix(code, "28"), code == "42501":
		return domain.CauseAuth
	case code == "42P01":
		return domain.CauseMissingTable
	case strings.HasPrefix(code, "08"):
		return domain.CauseNetwork
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		// pgx reports a rejected password as a connect error wrapping the server error.
		if code != "" && strings.HasPrefix(code, "28") {
			return domain.CauseAuth
		}
		return domain.CauseNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return domain.CauseNetwork
	}
	return domain.CauseUnknown
}

func isUniqueViolation(err error) bool {
	return sqlState(err) == uniqueViolation
}
