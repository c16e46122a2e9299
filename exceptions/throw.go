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

// Package exceptions builds errors of a caller-chosen type from a format
// string, escaping the resulting message.
//
// The requested type is a type parameter; the constraint guarantees at
// compile time that it can be built from a message (Throw) or a message plus
// a cause (ThrowCause):
//
//	type NotFoundError struct{ exceptions.Base }
//
//	if item == nil {
//		return exceptions.Throw[NotFoundError]("no item %q", key)
//	}
package exceptions

import (
	"fmt"
	"reflect"
)

// MessageConstructible is satisfied by *T when T can be initialized from a
// message alone.
type MessageConstructible[T any] interface {
	*T
	error
	InitMessage(message string) error
}

// CauseConstructible is satisfied by *T when T can be initialized from a
// message and an underlying cause.
type CauseConstructible[T any] interface {
	*T
	error
	InitCause(message string, cause error) error
}

type errorPointer[T any] interface {
	*T
	error
}

// Throw returns a new *T whose message is format rendered against args and
// then escaped. The caller raises it by returning it.
//
// If T's initializer fails or panics, a *ConstructionError is returned
// instead.
func Throw[T any, PT MessageConstructible[T]](format string, args ...any) error {
	message := buildMessage(format, args)
	return construct[T, PT](func(target PT) error {
		return target.InitMessage(message)
	})
}

// ThrowCause is Throw for types that carry an underlying cause.
func ThrowCause[T any, PT CauseConstructible[T]](cause error, format string, args ...any) error {
	message := buildMessage(format, args)
	return construct[T, PT](func(target PT) error {
		return target.InitCause(message, cause)
	})
}

// Must panics with err if it is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

func buildMessage(format string, args []any) string {
	return Escape(fmt.Sprintf(format, args...))
}

func construct[T any, PT errorPointer[T]](initialize func(PT) error) (err error) {
	target := PT(new(T))

	defer func() {
		if r := recover(); r != nil {
			err = newConstructionError(typeName[T](), panicError(r))
		}
	}()

	if initErr := initialize(target); initErr != nil {
		return newConstructionError(typeName[T](), initErr)
	}
	return target
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("initializer panicked: %w", err)
	}
	return fmt.Errorf("initializer panicked: %v", r)
}
