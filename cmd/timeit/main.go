// Copyright 2025 Nguyen Nhat Nguyen
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

// Command timeit runs a command and logs how long it took.
//
//	timeit [-label format] [-mode debug|release] -- command [args...]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	var (
		label = flag.String("label", "%s", "label format, rendered with the command line")
		mode  = flag.String("mode", "", "override MODE (debug|release)")
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: timeit [-label format] [-mode debug|release] -- command [args...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	code, err := run(context.Background(), options{
		Label:   *label,
		Mode:    *mode,
		Command: flag.Args(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	if err != nil {
		slog.Error("timeit failed", "error", err)
	}
	os.Exit(code)
}
