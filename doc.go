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

// Package pstring implements a polymorphic byte-string value with
// inline (small-string), heap-owned, and non-owning-slice storage
// behind one observational API.
//
// The companion packages alloc, scan, dict, stream, pfmt, codec and
// pattern build the allocator capability, SIMD-ish scan kernel, hash
// dictionary, stream abstraction, formatted printer, byte codecs and
// pattern engine that operate on String values.
package pstring
