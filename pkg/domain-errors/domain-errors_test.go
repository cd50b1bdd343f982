package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeValidation, Message: "data cannot be empty"}
		s.Equal("data cannot be empty", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeValidation}
		s.Equal("validation_failed", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("png encode failed")
		err := &Error{Code: CodeRender, Message: "render error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeValidation, Message: "invalid"}
		s.Nil(err.Unwrap())
	})

	s.Run("works with errors.Unwrap", func() {
		inner := errors.New("root cause")
		err := &Error{Code: CodeInternal, Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeCapacityExceeded, Message: "too large for level M"}
		err2 := &Error{Code: CodeCapacityExceeded, Message: "too large for level H"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeValidation}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeValidation}
		err2 := errors.New("validation_failed")
		s.False(err1.Is(err2))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeCapacityExceeded, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		target := &Error{Code: CodeCapacityExceeded}

		// errors.Is should find the inner error through the chain
		s.True(errors.Is(wrapped, target))
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesCode() {
	inner := New(CodeCapacityExceeded, "data too large")
	wrapped := Wrap(inner, CodeInternal, "generation failed")

	var de *Error
	s.Require().True(errors.As(wrapped, &de))
	s.Equal(CodeCapacityExceeded, de.Code)
	s.Equal("generation failed", de.Message)
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := New(CodeUnauthorized, "invalid or expired token")
	s.True(HasCode(err, CodeUnauthorized))
	s.False(HasCode(err, CodeValidation))
	s.False(HasCode(errors.New("plain"), CodeUnauthorized))
}
