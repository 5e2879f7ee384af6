// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package cpufeat probes the host CPU for the instruction set
// extensions the scan kernel can exploit, mirroring the teacher's
// vm/avx512level.go use of golang.org/x/sys/cpu.
package cpufeat

import "golang.org/x/sys/cpu"

// Level names the widest vector width the scan kernel may assume is
// available on this host.
type Level int

const (
	// LevelScalar means no usable SIMD width was detected; callers
	// must fall back to the per-byte scalar path.
	LevelScalar Level = iota
	// LevelSSE2 corresponds to a 16-byte block width.
	LevelSSE2
	// LevelAVX2 corresponds to a 32-byte block width.
	LevelAVX2
)

// Width returns the scan-kernel block width in bytes for level.
func (l Level) Width() int {
	switch l {
	case LevelAVX2:
		return 32
	case LevelSSE2:
		return 16
	default:
		return 0
	}
}

// Detect probes the running CPU and returns the widest Level it
// supports, in the order AVX2 > SSE2 > scalar, matching
// vm/avx512level.go's tiered feature-gate checks.
func Detect() Level {
	if cpu.X86.HasAVX2 {
		return LevelAVX2
	}
	if cpu.X86.HasSSE2 {
		return LevelSSE2
	}
	return LevelScalar
}
