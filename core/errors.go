// Copyright 2025 Poiesic Systems
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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidRequest indicates a chat request failed boundary validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRole indicates an unknown Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptySource indicates the chunk Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrNegativeIndex indicates a negative chunk index.
	ErrNegativeIndex = errors.New("chunk index cannot be negative")

	// ErrEmptyUserID indicates the request carries no user identifier.
	ErrEmptyUserID = errors.New("user id is required")

	// ErrEmptyQuestion indicates the request carries no question text.
	ErrEmptyQuestion = errors.New("question is required")
)
