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

package exceptions

import (
	"errors"
	"fmt"
)

// ErrConstruction indicates that a requested error type could not be built.
var ErrConstruction = errors.New("error construction failed")

// ConstructionError is returned in place of the requested error when its
// initializer fails or panics. It signals a caller programming error.
type ConstructionError struct {
	TypeName string
	Cause    error
}

func (e *ConstructionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to create the requested error type %s: this is probably a programming error: %v", e.TypeName, e.Cause)
	}
	return fmt.Sprintf("failed to create the requested error type %s: this is probably a programming error", e.TypeName)
}

func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

func (e *ConstructionError) Is(target error) bool {
	return errors.Is(target, ErrConstruction)
}

func newConstructionError(typeName string, cause error) *ConstructionError {
	return &ConstructionError{
		TypeName: typeName,
		Cause:    cause,
	}
}

// Base is meant to be embedded by caller-defined error types. A pointer to
// the embedding struct satisfies both MessageConstructible and
// CauseConstructible.
//
//	type NotFoundError struct{ exceptions.Base }
type Base struct {
	message string
	cause   error
}

func (b *Base) InitMessage(message string) error {
	b.message = message
	return nil
}

func (b *Base) InitCause(message string, cause error) error {
	b.message = message
	b.cause = cause
	return nil
}

func (b *Base) Error() string {
	return b.message
}

func (b *Base) Unwrap() error {
	return b.cause
}
