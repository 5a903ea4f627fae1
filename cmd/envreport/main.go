// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirseerhq/azdo-envreport/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	// A .env file in the working directory may carry AZDO_PAT; absence
	// is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "envreport",
		Short: "Export Azure DevOps environment approval gates to CSV",
		Long: `envreport enumerates the deployment environments configured in an
Azure DevOps project, resolves the approvers of each environment's approval
checks, and flattens the result into a CSV report suitable for audits and
access reviews.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newReportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}
