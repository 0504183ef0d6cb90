package booking

import (
	"context"
	"crypto/rand"
	"strconv"
	"strings"

	"transfer-portal/internal/pkg/clock"
	"transfer-portal/internal/pkg/errs"
)

const (
	// CodePrefix marks every reference code issued by this platform.
	CodePrefix = "ATP"

	// CodeLength is prefix + suffix; codes are immutable once assigned.
	CodeLength = 9

	codeSuffixLength = 6

	// Excludes visually ambiguous characters (0/O, 1/I/L). 32 symbols, so a
	// byte mod 32 mapping over crypto/rand output is unbiased (256 % 32 == 0).
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 10
)

var ErrCodeGeneration = errs.New("booking code generation failed")

// Code is the public booking reference, e.g. "ATPQ5CHM5".
type Code string

func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is a well-formed non-fallback code: the fixed
// prefix, total length 9, and every suffix character from the safe alphabet.
func (c Code) IsValid() bool {
	if len(c) != CodeLength {
		return false
	}
	if !strings.HasPrefix(string(c), CodePrefix) {
		return false
	}
	for _, r := range c[len(CodePrefix):] {
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}
	return true
}

// Format renders a 9-character code for human display: "ATPQ5CHM5" ->
// "ATP-Q5C-HM5". Codes of any other length are returned unchanged; this is a
// documented leniency rather than an error.
func (c Code) Format() string {
	if len(c) != CodeLength {
		return string(c)
	}
	return string(c[0:3]) + "-" + string(c[3:6]) + "-" + string(c[6:9])
}

// ParseCode strips display dashes, uppercases, and returns the canonical
// code. Lossless inverse of Format for valid 9-character codes.
func ParseCode(s string) Code {
	return Code(strings.ToUpper(strings.ReplaceAll(s, "-", "")))
}

// CodeChecker is the storage existence check a generator needs. Implemented
// by the booking repository.
type CodeChecker interface {
	CodeExists(ctx context.Context, code Code) (bool, error)
}

type CodeGenerator struct {
	checker CodeChecker
	clock   clock.Clock
}

func NewCodeGenerator(checker CodeChecker, clk clock.Clock) *CodeGenerator {
	return &CodeGenerator{checker: checker, clock: clk}
}

// Generate issues a collision-checked booking code. It retries random codes
// up to 10 times against storage; if all attempts collide it falls back to a
// timestamp-suffixed code that is unique without a further existence check.
// Fails only when the existence check itself fails.
func (g *CodeGenerator) Generate(ctx context.Context) (Code, error) {
	for range maxCodeAttempts {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		exists, err := g.checker.CodeExists(ctx, code)
		if err != nil {
			return "", errs.Wrap(err, "booking code existence check")
		}
		if !exists {
			return code, nil
		}
	}
	return fallbackCode(g.clock.Now().Unix())
}

func randomCode() (Code, error) {
	suffix, err := randomChars(codeSuffixLength)
	if err != nil {
		return "", err
	}
	return Code(CodePrefix + suffix), nil
}

// fallbackCode combines 4 random characters with the last 4 characters of the
// base-36 unix timestamp, guaranteeing uniqueness deterministically.
func fallbackCode(unix int64) (Code, error) {
	random, err := randomChars(4)
	if err != nil {
		return "", err
	}
	ts := strings.ToUpper(strconv.FormatInt(unix, 36))
	if len(ts) > 4 {
		ts = ts[len(ts)-4:]
	}
	return Code(CodePrefix + random + ts), nil
}

func randomChars(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Mark(err, ErrCodeGeneration)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
