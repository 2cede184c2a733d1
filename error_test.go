package cargo

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeWalksTheChain(t *testing.T) {

	base := &Error{Code: ENOTFOUND, Message: "order not found"}
	wrapped := OpError("usecase.order.GetById", base)

	assert.Equal(t, ENOTFOUND, ErrorCode(wrapped))
	assert.Equal(t, "order not found", ErrorMessage(wrapped))
	assert.True(t, errors.Is(wrapped, base))
}

func TestErrorCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("boom")))
	assert.Equal(t, EINTERNAL, ErrorCode(OpError("op", errors.New("boom"))))
}

func TestErrorWithCode(t *testing.T) {

	err := ErrorWithCode(OpError("op", errors.New("bad input")), EINVALID)
	assert.Equal(t, EINVALID, ErrorCode(err))
	assert.Nil(t, ErrorWithCode(nil, EINVALID))
}

func TestErrorWithCodeLeavesTheOriginalAlone(t *testing.T) {

	sentinel := &Error{Code: ENOTFOUND, Message: "application not found"}

	recoded := ErrorWithCode(sentinel, ECONFLICT)
	assert.Equal(t, ECONFLICT, ErrorCode(recoded))

	// The sentinel keeps its code for every later caller.
	assert.Equal(t, ENOTFOUND, sentinel.Code)
	assert.Equal(t, ENOTFOUND, ErrorCode(sentinel))
}

func TestErrCodeToHTTPStatus(t *testing.T) {

	cases := map[string]int{
		EINVALID:  http.StatusBadRequest,
		ENOTFOUND: http.StatusNotFound,
		ECONFLICT: http.StatusConflict,
		EINTERNAL: http.StatusInternalServerError,
	}

	for code, status := range cases {
		assert.Equal(t, status, ErrCodeToHTTPStatus(&Error{Code: code}))
	}
	assert.Equal(t, http.StatusInternalServerError, ErrCodeToHTTPStatus(errors.New("boom")))
}
