/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/colecto/internal/state"
	"github.com/Paintersrp/colecto/pkg/cmd/root"
)

func main() {
	s, err := state.NewState()
	cobra.CheckErr(err)

	rootCmd, err := root.NewCmdRoot(s)
	if err != nil {
		s.Close()
		cobra.CheckErr(err)
	}

	execErr := rootCmd.Execute()
	s.Close()
	if execErr != nil {
		os.Exit(1)
	}
}
