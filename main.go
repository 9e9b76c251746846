// ABOUTME: Entry point for the pickbazar CLI
// ABOUTME: Terminal client for the PickBazar storefront and admin API

package main

import (
	"fmt"
	"os"

	"github.com/markalston/pickbazar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
