// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exceptions_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadakatsu/util/exceptions"
)

type notFoundError struct{ exceptions.Base }

type upstreamError struct{ exceptions.Base }

type rejectingError struct{ message string }

func (e *rejectingError) Error() string { return e.message }

func (e *rejectingError) InitMessage(string) error {
	return errors.New("message rejected")
}

type panickingError struct{}

func (e *panickingError) Error() string { return "panicking" }

func (e *panickingError) InitMessage(string) error {
	panic("boom")
}

func (e *panickingError) InitCause(string, error) error {
	panic(io.ErrUnexpectedEOF)
}

func TestThrow_ReturnsRequestedType(t *testing.T) {
	err := exceptions.Throw[notFoundError]("no item %d in %s", 7, "bag")
	require.Error(t, err)

	var target *notFoundError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "no item 7 in bag", target.Error())
	assert.NotErrorIs(t, err, exceptions.ErrConstruction)
	assert.Nil(t, errors.Unwrap(err))
}

func TestThrow_Messages(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{
			name:   "no arguments",
			format: "plain message",
			want:   "plain message",
		},
		{
			name:   "percent literal",
			format: "100%% done",
			want:   "100% done",
		},
		{
			name:   "newline produced by formatting",
			format: "line one\nline %d",
			args:   []any{2},
			want:   `line one\nline 2`,
		},
		{
			name:   "quotes in argument are escaped after formatting",
			format: "value: %s",
			args:   []any{`say "hi"`},
			want:   `value: say \"hi\"`,
		},
		{
			name:   "backslash in template",
			format: `C:\dir %d`,
			args:   []any{1},
			want:   `C:\\dir 1`,
		},
		{
			name:   "quoted verb output is escaped again",
			format: "key %q",
			args:   []any{"a\tb"},
			want:   `key \"a\\tb\"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exceptions.Throw[notFoundError](tt.format, tt.args...)

			var target *notFoundError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestThrowCause_WrapsCause(t *testing.T) {
	cause := io.EOF
	err := exceptions.ThrowCause[upstreamError](cause, "reading %s failed", "header")

	var target *upstreamError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "reading header failed", err.Error())
	assert.ErrorIs(t, err, io.EOF)
	assert.Same(t, target, err.(*upstreamError))
}

func TestThrowCause_NilCause(t *testing.T) {
	err := exceptions.ThrowCause[upstreamError](nil, "no cause")

	var target *upstreamError
	require.ErrorAs(t, err, &target)
	assert.Nil(t, errors.Unwrap(err))
}

func TestThrow_InitializerFailure(t *testing.T) {
	err := exceptions.Throw[rejectingError]("will %s", "fail")
	require.Error(t, err)

	var rejected *rejectingError
	assert.False(t, errors.As(err, &rejected), "requested type must not escape a failed construction")

	var construction *exceptions.ConstructionError
	require.ErrorAs(t, err, &construction)
	assert.Equal(t, "exceptions_test.rejectingError", construction.TypeName)
	assert.EqualError(t, construction.Cause, "message rejected")
	assert.ErrorIs(t, err, exceptions.ErrConstruction)
	assert.Contains(t, err.Error(), "probably a programming error")
}

func TestThrow_InitializerPanic(t *testing.T) {
	err := exceptions.Throw[panickingError]("anything")

	var construction *exceptions.ConstructionError
	require.ErrorAs(t, err, &construction)
	assert.ErrorIs(t, err, exceptions.ErrConstruction)
	assert.Contains(t, construction.Cause.Error(), "boom")

	var panicking *panickingError
	assert.False(t, errors.As(err, &panicking))
}

func TestThrowCause_InitializerPanicWithError(t *testing.T) {
	err := exceptions.ThrowCause[panickingError](io.EOF, "anything")

	assert.ErrorIs(t, err, exceptions.ErrConstruction)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { exceptions.Must(nil) })

	err := exceptions.Throw[notFoundError]("gone")
	assert.PanicsWithError(t, "gone", func() { exceptions.Must(err) })
}
