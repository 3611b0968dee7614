/*
 * Copyright (c) 2026 The MiniDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package banner provides the startup banner for the MiniDB shell.
package banner

import (
	"fmt"
	"io"
	"runtime"
)

const art = `
             _       _     _ _
   _ __ ___ (_)_ __ (_) __| | |__
  | '_ ` + "`" + ` _ \| | '_ \| |/ _` + "`" + ` | '_ \
  | | | | | | | | | | | (_| | |_) |
  |_| |_| |_|_|_| |_|_|\__,_|_.__/
`

// Version is the release version stamped into the banner.
const Version = "0.3.0"

// Fprint writes the banner and environment summary to w.
func Fprint(w io.Writer) {
	fmt.Fprint(w, art)
	fmt.Fprintf(w, "\n  MiniDB %s - in-memory relational store (%s/%s, %s)\n",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	fmt.Fprintf(w, "  Type \\h for help, \\q to quit.\n\n")
}
