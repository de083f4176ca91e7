/*
 * display.go, part of orbkit.
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
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Progress and diagnostic text for the user. Nothing in the parsers depends
// on any of it being seen; it is fire-and-forget.
var displog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
	With().Timestamp().Logger()

// display reports progress to the user-facing sink.
func display(format string, args ...interface{}) {
	displog.Info().Msgf(format, args...)
}

// displayWarning reports a recovered, non-fatal problem.
func displayWarning(format string, args ...interface{}) {
	displog.Warn().Msgf(format, args...)
}

// SetDisplayWriter redirects all progress and diagnostic output to w.
func SetDisplayWriter(w io.Writer) {
	displog = displog.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
}

// Quiet silences all progress and diagnostic output.
func Quiet() {
	displog = displog.Level(zerolog.Disabled)
}
