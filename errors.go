// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwwdecode

import "fmt"

// ErrorKind is a closed set of causes a decode can fail with.
type ErrorKind int

const (
	// ErrUnexpectedEnd means a read requested more bytes than remain.
	ErrUnexpectedEnd ErrorKind = iota
	// ErrInvalidHeader means a required header field is out of range.
	ErrInvalidHeader
	// ErrUnknownEntityTag means the dispatcher saw an unrecognized class tag.
	ErrUnknownEntityTag
	// ErrInvalidTextEncoding is reserved for malformed length prefixes; text
	// content itself is never rejected (see sjis.go).
	ErrInvalidTextEncoding
	// ErrMissingBlockDefinition means a Block insertion references a
	// definition number not present in block_defs.
	ErrMissingBlockDefinition
	// ErrInvalidImageTrailer means a declared embedded-image file_size runs
	// past the end of input.
	ErrInvalidImageTrailer
	// ErrUnmatchedBlockEnd means a CDataBlockEnd tag was encountered with
	// no CDataBlockDef currently open.
	ErrUnmatchedBlockEnd
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedEnd:
		return "UnexpectedEnd"
	case ErrInvalidHeader:
		return "InvalidHeader"
	case ErrUnknownEntityTag:
		return "UnknownEntityTag"
	case ErrInvalidTextEncoding:
		return "InvalidTextEncoding"
	case ErrMissingBlockDefinition:
		return "MissingBlockDefinition"
	case ErrInvalidImageTrailer:
		return "InvalidImageTrailer"
	case ErrUnmatchedBlockEnd:
		return "UnmatchedBlockEnd"
	default:
		return "Unknown"
	}
}

// ParseError is the sole error type returned by Parse and every decoder
// function. It always carries the byte offset at which the failure was
// detected.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Tag    string // set for ErrUnknownEntityTag
	Number int32  // set for ErrMissingBlockDefinition
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnknownEntityTag:
		return fmt.Sprintf("jwwdecode: unknown entity tag %q at offset %d", e.Tag, e.Offset)
	case ErrMissingBlockDefinition:
		return fmt.Sprintf("jwwdecode: missing block definition %d at offset %d", e.Number, e.Offset)
	default:
		return fmt.Sprintf("jwwdecode: %s at offset %d", e.Kind, e.Offset)
	}
}

func errUnexpectedEnd(offset int) error {
	return &ParseError{Kind: ErrUnexpectedEnd, Offset: offset}
}

func errInvalidHeader(offset int) error {
	return &ParseError{Kind: ErrInvalidHeader, Offset: offset}
}

func errUnknownEntityTag(offset int, tag string) error {
	return &ParseError{Kind: ErrUnknownEntityTag, Offset: offset, Tag: tag}
}

func errMissingBlockDefinition(offset int, number int32) error {
	return &ParseError{Kind: ErrMissingBlockDefinition, Offset: offset, Number: number}
}

func errInvalidImageTrailer(offset int) error {
	return &ParseError{Kind: ErrInvalidImageTrailer, Offset: offset}
}

func errUnmatchedBlockEnd(offset int) error {
	return &ParseError{Kind: ErrUnmatchedBlockEnd, Offset: offset}
}
