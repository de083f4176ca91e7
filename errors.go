/*
 * errors.go, part of orbkit.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package orbkit

import (
	"errors"
	"fmt"
)

// The error kinds a read can fail with. Use errors.Is against these; the
// error actually returned is a *ParseError wrapping one of them.
var (
	//ErrUnsupportedFormat is returned for a format tag Read does not know.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	//ErrInvalidFormat means the file cannot be what the tag says it is.
	ErrInvalidFormat = errors.New("not a valid file of the requested format")
	//ErrUnsupportedConstruct marks a recognized but unimplemented feature,
	//such as Slater-type orbitals or a non-cartesian basis.
	ErrUnsupportedConstruct = errors.New("unsupported construct in input file")
	//ErrInconsistentBasis means two atoms of one element advertise
	//different contracted basis sets.
	ErrInconsistentBasis = errors.New("different basis sets for the same atom type")
	//ErrOrdering means a section appeared before one it depends on.
	ErrOrdering = errors.New("section encountered before a section it requires")
	//ErrSectionNotFound means a requested section occurrence does not exist.
	ErrSectionNotFound = errors.New("requested section not found")
)

// ParseError is the error type returned by all readers in this package.
// It carries the offending file and format next to the error kind.
type ParseError struct {
	kind     error
	format   string
	filename string
	message  string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("orbkit: %s file %s: %v: %s", err.format, err.filename, err.kind, err.message)
}

// Unwrap exposes the error kind so errors.Is works on a ParseError.
func (err *ParseError) Unwrap() error { return err.kind }

// FileName returns the input file the failing read was associated with.
func (err *ParseError) FileName() string { return err.filename }

// Format returns the format tag of the failing read.
func (err *ParseError) Format() string { return err.format }

func parseError(kind error, format, filename, message string) *ParseError {
	return &ParseError{kind: kind, format: format, filename: filename, message: message}
}
