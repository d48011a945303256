// Copyright 2017-26 the original author or authors.
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

// Package cli holds the root command and shared terminal helpers for the
// pbf tool.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the root of the pbf command tree.  Subcommands register
// themselves in their package init functions.
var RootCmd = &cobra.Command{
	Use:   "pbf",
	Short: "Inspect OpenStreetMap PBF files",
	Long:  "Inspect OpenStreetMap PBF files: file metadata, element counts, and blob layout.",
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
