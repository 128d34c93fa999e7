package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "dandy",
	Short: "Compute and apply JSON patches",
	Long:  `dandy produces RFC 6902 JSON patches which move and copy existing values instead of rebuilding them`,
}

func main() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(applyCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}

func readJSON(path string) (interface{}, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer jsonFile.Close()

	decoder := json.NewDecoder(jsonFile)
	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
