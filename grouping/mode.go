// This file is part of pgscompile.
//
// pgscompile is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// pgscompile is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with pgscompile.  If not, see <https://www.gnu.org/licenses/>.

package grouping

// Mode selects how the two-window search picks among equally-valid
// partitions of the flat connected components (spec.md §4.1, "Mode
// selection").
type Mode int

const (
	// SmallestWindows returns the partition with the smallest summed hull
	// area.
	SmallestWindows Mode = iota
	// LeastAcquisitions returns, among the first Candidates partitions
	// sorted by area, the one minimising Σ area(WoB) · Σ update_mask(WoB).
	LeastAcquisitions
)

func (m Mode) String() string {
	switch m {
	case SmallestWindows:
		return "smallest-windows"
	case LeastAcquisitions:
		return "least-acquisitions"
	default:
		return "unknown"
	}
}
