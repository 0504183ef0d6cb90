//go:build unit

package booking_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	collisions int
	calls      int
	err        error
}

func (c *stubChecker) CodeExists(_ context.Context, _ booking.Code) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.calls <= c.collisions, nil
}

func TestCodeFormat(t *testing.T) {
	t.Run("valid code formats with dashes", func(t *testing.T) {
		code := booking.Code("ATPQ5CHM5")
		assert.True(t, code.IsValid())
		assert.Equal(t, "ATP-Q5C-HM5", code.Format())
	})

	t.Run("parse is the inverse of format", func(t *testing.T) {
		code := booking.Code("ATPXYZ234")
		assert.Equal(t, code, booking.ParseCode(code.Format()))
	})

	t.Run("parse uppercases and strips dashes", func(t *testing.T) {
		assert.Equal(t, booking.Code("ATPQ5CHM5"), booking.ParseCode("atp-q5c-hm5"))
	})

	t.Run("fallback-length code formats unchanged", func(t *testing.T) {
		code := booking.Code("ATPABCD1234")
		assert.Equal(t, "ATPABCD1234", code.Format())
	})

	t.Run("validity", func(t *testing.T) {
		cases := []struct {
			name  string
			code  booking.Code
			valid bool
		}{
			{"well-formed", "ATPQ5CHM5", true},
			{"wrong prefix", "XXXQ5CHM5", false},
			{"too short", "ATPQ5C", false},
			{"too long", "ATPQ5CHM5X", false},
			{"ambiguous character 0", "ATPQ5CHM0", false},
			{"ambiguous character I", "ATPQ5CHMI", false},
			{"ambiguous character L", "ATPQ5CHML", false},
			{"lowercase suffix", "ATPq5chm5", false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.valid, tc.code.IsValid())
			})
		}
	})
}

func TestCodeGenerator(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	t.Run("first attempt without collision", func(t *testing.T) {
		checker := &stubChecker{}
		gen := booking.NewCodeGenerator(checker, clk)

		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.True(t, code.IsValid())
		assert.Equal(t, 1, checker.calls)
	})

	t.Run("retries until a free code is found", func(t *testing.T) {
		checker := &stubChecker{collisions: 3}
		gen := booking.NewCodeGenerator(checker, clk)

		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.True(t, code.IsValid())
		assert.Equal(t, 4, checker.calls)
	})

	t.Run("falls back to timestamp code after exhausting attempts", func(t *testing.T) {
		checker := &stubChecker{collisions: 1000}
		gen := booking.NewCodeGenerator(checker, clk)

		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, checker.calls)
		assert.True(t, strings.HasPrefix(code.String(), booking.CodePrefix))

		// Suffix ends with the last 4 characters of the base-36 unix timestamp.
		ts := strings.ToUpper(strconv.FormatInt(clk.Now().Unix(), 36))
		assert.True(t, strings.HasSuffix(code.String(), ts[len(ts)-4:]))
	})

	t.Run("existence check failures surface", func(t *testing.T) {
		checker := &stubChecker{err: assert.AnError}
		gen := booking.NewCodeGenerator(checker, clk)

		_, err := gen.Generate(context.Background())
		require.Error(t, err)
	})

	t.Run("generated codes never repeat within a run", func(t *testing.T) {
		checker := &stubChecker{}
		gen := booking.NewCodeGenerator(checker, clk)

		seen := make(map[booking.Code]struct{})
		for range 200 {
			code, err := gen.Generate(context.Background())
			require.NoError(t, err)
			_, dup := seen[code]
			assert.False(t, dup, "duplicate code %s", code)
			seen[code] = struct{}{}
		}
	})
}
