package main

import (
	"os"

	"tabprep/internal/cli"
)

//
// ---------------------- USAGE ----------------------
//
// tabprep run data.csv                  : clean, fit and save preprocessor.gob + header.csv
// tabprep run data.csv -o ready.csv     : also write the transformed matrix
// tabprep apply new.csv -o ready.csv    : transform new data with the saved artifacts
// tabprep inspect data.csv              : show column kinds and the saved transformer
//
// Settings come from ./tabprep.yaml, TABPREP_* environment variables and flags.
//
// ---------------------------------------------------
//

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
