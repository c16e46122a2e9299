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

package testhelper

import (
	"fmt"
	"reflect"
	"testing"
)

// FailForReturn fails the test with ReportUnexpectedSuccess.
func FailForReturn(tb testing.TB, method, expected string, returned any, args ...any) {
	tb.Helper()
	tb.Fatal(ReportUnexpectedSuccess(method, expected, returned, args...))
}

// FailForWrongError fails the test with ReportWrongFailure.
func FailForWrongError(tb testing.TB, method, expected string, actual error, args ...any) {
	tb.Helper()
	tb.Fatal(ReportWrongFailure(method, expected, actual, args...))
}

// DefaultString identifies v by type, plus its address for pointer-shaped
// values. Useful when a value's own String method is what is under test.
func DefaultString(v any) string {
	if isNil(v) {
		return nullText
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%x", v, rv.Pointer())
	}
	return fmt.Sprintf("%T", v)
}
