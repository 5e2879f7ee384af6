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

//go:build pstring_utf8_overlong

package codec

// overlongAllowed flags that this build was compiled with
// pstring_utf8_overlong; DecodeUTF8 still delegates classification to
// stdlib unicode/utf8 (which never accepts overlong forms), so this
// tag does not change decoding: overlong forms are rejected in this
// build too.
const overlongAllowed = true
