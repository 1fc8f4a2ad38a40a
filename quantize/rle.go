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

package quantize

// ReferenceRLEEncoder implements the PG run-length scheme used by ODS
// payloads: each row is encoded as a sequence of (color, run-length) pairs
// terminated by a 0x00 0x00 end-of-line marker, per the documented PGS
// bitstream layout. It is the default RLEEncoder wired in when no richer
// collaborator is supplied (spec.md §6, `PGraphics.encode_rle`).
type ReferenceRLEEncoder struct{}

// EncodeRLE implements RLEEncoder.
func (ReferenceRLEEncoder) EncodeRLE(indexed [][]uint8) []byte {
	var out []byte
	for _, row := range indexed {
		out = append(out, encodeRow(row)...)
		out = append(out, 0x00, 0x00)
	}
	return out
}

// encodeRow emits one row's run-length codes. Color 0 runs use the 2/3-byte
// short/long forms; non-zero colors use the single-pixel or run forms,
// splitting any run longer than 16383 pixels (the 14-bit length field's
// capacity) into multiple codes.
func encodeRow(row []uint8) []byte {
	var out []byte
	i := 0
	for i < len(row) {
		c := row[i]
		j := i + 1
		for j < len(row) && row[j] == c {
			j++
		}
		run := j - i
		out = append(out, encodeRun(c, run)...)
		i = j
	}
	return out
}

func encodeRun(color uint8, run int) []byte {
	var out []byte
	for run > 0 {
		n := run
		if color == 0 {
			if n > 0x3fff {
				n = 0x3fff
			}
			if n <= 0x3f {
				out = append(out, 0x00, byte(n))
			} else {
				out = append(out, 0x00, byte(0x40|((n>>8)&0x3f)), byte(n&0xff))
			}
		} else {
			if n == 1 {
				out = append(out, color)
				run--
				continue
			}
			if n > 0x3fff {
				n = 0x3fff
			}
			if n <= 0x3f {
				out = append(out, 0x00, byte(0x80|n), color)
			} else {
				out = append(out, 0x00, byte(0xc0|((n>>8)&0x3f)), byte(n&0xff), color)
			}
		}
		run -= n
	}
	return out
}
