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

// Package testhelper renders failure messages for tests that expected a call
// to fail but saw it return, or fail with the wrong error.
//
//	got, err := strconv.Atoi(input)
//	if err == nil {
//		testhelper.FailForReturn(t, "strconv.Atoi", "*strconv.NumError", got, input)
//	}
package testhelper

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	nullText = "null"

	listOpen  = "[ "
	listClose = " ]"
	separator = ", "

	// Rendered in place of a slice already being expanded.
	truncated = "[ ... ]"
)

// ReportUnexpectedSuccess describes a call that should have failed with
// expected but returned returned instead.
func ReportUnexpectedSuccess(method, expected string, returned any, args ...any) string {
	var b strings.Builder
	startReport(&b, method, expected, args)
	b.WriteString("returned ")
	writeArg(&b, returned, nil)
	b.WriteString(".")
	return b.String()
}

// ReportWrongFailure describes a call that should have failed with expected
// but failed with actual.
func ReportWrongFailure(method, expected string, actual error, args ...any) string {
	var b strings.Builder
	startReport(&b, method, expected, args)
	b.WriteString("threw ")
	b.WriteString(ErrorKindName(actual))
	b.WriteString(": ")
	if actual == nil {
		b.WriteString(nullText)
	} else {
		b.WriteString(actual.Error())
	}
	return b.String()
}

// FormatArgs joins the representations of args with ", ".
func FormatArgs(args ...any) string {
	var b strings.Builder
	writeArgs(&b, args)
	return b.String()
}

// FormatArg renders a single argument. Slices and arrays expand recursively
// as "[ a, b ]", an empty one as "[  ]". Nil values render as "null" and
// everything else uses its fmt.Sprint form.
func FormatArg(arg any) string {
	var b strings.Builder
	writeArg(&b, arg, nil)
	return b.String()
}

// ErrorKindName is the dynamic type name of err without pointers or package
// qualifier, e.g. "PathError" for *fs.PathError.
func ErrorKindName(err error) string {
	if err == nil {
		return nullText
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

func startReport(b *strings.Builder, method, expected string, args []any) {
	b.WriteString(method)
	b.WriteString("(")
	writeArgs(b, args)
	b.WriteString(") should have thrown ")
	b.WriteString(expected)
	b.WriteString(", but instead ")
}

func writeArgs(b *strings.Builder, args []any) {
	for i, arg := range args {
		if i > 0 {
			b.WriteString(separator)
		}
		writeArg(b, arg, nil)
	}
}

// listKey identifies a slice by its backing array, length and type.
type listKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// path holds the slices on the current recursion path.
type path map[listKey]struct{}

func writeArg(b *strings.Builder, arg any, seen path) {
	if isNil(arg) {
		b.WriteString(nullText)
		return
	}

	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		writeList(b, v, seen)
	default:
		b.WriteString(fmt.Sprint(arg))
	}
}

func writeList(b *strings.Builder, v reflect.Value, seen path) {
	if v.Kind() == reflect.Slice && v.Len() > 0 {
		key := listKey{ptr: v.Pointer(), len: v.Len(), typ: v.Type()}
		if _, ok := seen[key]; ok {
			b.WriteString(truncated)
			return
		}
		if seen == nil {
			seen = path{}
		}
		seen[key] = struct{}{}
		defer delete(seen, key)
	}

	b.WriteString(listOpen)
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteString(separator)
		}
		writeArg(b, v.Index(i).Interface(), seen)
	}
	b.WriteString(listClose)
}

func isNil(arg any) bool {
	if arg == nil {
		return true
	}
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
