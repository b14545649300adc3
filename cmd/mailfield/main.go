package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailfield/cmd/mailfield/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
