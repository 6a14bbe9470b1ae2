package account

import (
	"errors"
	"testing"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

func asDomain(err error, dst **domain.Error) bool {
	return errors.As(err, dst)
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
